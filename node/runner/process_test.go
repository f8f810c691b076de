package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dataflow-dl/mlnode/node/domain"
	"github.com/dataflow-dl/mlnode/node/runner"
)

// writeScript materializes a shell script the runner can execute in place of
// a python interpreter.
func writeScript(dir string, name string, body string) string {
	path := filepath.Join(dir, name)
	Expect(os.WriteFile(path, []byte(body), 0o755)).To(Succeed())
	return path
}

func newShellNodeContext(workDir string, entryScript string) *domain.NodeContext {
	nodeCtx := domain.NewNodeContext("test-job", 0, workDir)
	nodeCtx.Properties[domain.PropPythonExec] = "/bin/sh"
	nodeCtx.Properties[domain.PropEntryScriptFile] = entryScript
	return nodeCtx
}

var _ = Describe("Process Runner Tests", func() {
	var workDir string

	BeforeEach(func() {
		workDir = GinkgoT().TempDir()
	})

	It("Should succeed when the workload exits cleanly", func() {
		script := writeScript(workDir, "entry.sh", "#!/bin/sh\nexit 0\n")
		r := runner.NewProcessRunner(newShellNodeContext(workDir, script))

		Expect(r.ResultStatus()).To(Equal(runner.StatusInitializing))
		Expect(r.Run(context.Background())).To(Succeed())
		Expect(r.ResultStatus()).To(Equal(runner.StatusSucceeded))
	})

	It("Should fail when the workload exits with a non-zero code", func() {
		script := writeScript(workDir, "entry.sh", "#!/bin/sh\nexit 3\n")
		r := runner.NewProcessRunner(newShellNodeContext(workDir, script))

		Expect(r.Run(context.Background())).To(HaveOccurred())
		Expect(r.ResultStatus()).To(Equal(runner.StatusFailed))
	})

	It("Should fail when no entry script is configured", func() {
		nodeCtx := domain.NewNodeContext("test-job", 0, workDir)
		r := runner.NewProcessRunner(nodeCtx)

		Expect(r.Run(context.Background())).To(HaveOccurred())
		Expect(r.ResultStatus()).To(Equal(runner.StatusFailed))
	})

	It("Should let the workload terminate cooperatively on NotifyStop", func() {
		script := writeScript(workDir, "entry.sh",
			"#!/bin/sh\ntrap 'exit 0' INT TERM\nwhile true; do sleep 0.1; done\n")
		r := runner.NewProcessRunner(newShellNodeContext(workDir, script))

		finished := make(chan error, 1)
		go func() {
			finished <- r.Run(context.Background())
		}()

		Eventually(r.ResultStatus, 5*time.Second).Should(Equal(runner.StatusRunning))
		r.NotifyStop()

		Eventually(finished, 5*time.Second).Should(Receive(BeNil()))
		Expect(r.ResultStatus()).To(Equal(runner.StatusSucceeded))
	})

	It("Should kill the workload when the context is cancelled", func() {
		script := writeScript(workDir, "entry.sh", "#!/bin/sh\nsleep 30\n")
		r := runner.NewProcessRunner(newShellNodeContext(workDir, script))

		ctx, cancel := context.WithCancel(context.Background())
		finished := make(chan error, 1)
		go func() {
			finished <- r.Run(ctx)
		}()

		Eventually(r.ResultStatus, 5*time.Second).Should(Equal(runner.StatusRunning))
		cancel()

		Eventually(finished, 5*time.Second).Should(Receive(HaveOccurred()))
		Expect(r.ResultStatus()).To(Equal(runner.StatusFailed))
	})

	It("Should tolerate NotifyStop before the process is launched", func() {
		script := writeScript(workDir, "entry.sh", "#!/bin/sh\nexit 0\n")
		r := runner.NewProcessRunner(newShellNodeContext(workDir, script))

		r.NotifyStop()
		Expect(r.Run(context.Background())).To(Succeed())
	})
})
