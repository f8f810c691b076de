package runner

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"

	"github.com/Scusemua/go-utils/config"
	"github.com/Scusemua/go-utils/logger"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/dataflow-dl/mlnode/node/domain"
)

// ProcessRunner executes the node's training workload as a python child
// process rooted in the node's working directory. The child is launched with
// exec.CommandContext, so cancelling the submission context kills it;
// NotifyStop delivers SIGINT first so the workload can flush checkpoints.
type ProcessRunner struct {
	log logger.Logger

	nodeCtx *domain.NodeContext
	id      string

	mu        sync.Mutex
	cmd       *exec.Cmd
	status    ExecutionStatus
	createdAt time.Time
}

func NewProcessRunner(nodeCtx *domain.NodeContext) *ProcessRunner {
	r := &ProcessRunner{
		nodeCtx:   nodeCtx,
		id:        uuid.New().String(),
		status:    StatusInitializing,
		createdAt: time.Now(),
	}
	config.InitLogger(&r.log, r)
	return r
}

func (r *ProcessRunner) ID() string {
	return r.id
}

// Run launches the workload process and blocks until it exits. A non-zero
// exit moves the runner to StatusFailed and returns the exit error.
func (r *ProcessRunner) Run(ctx context.Context) error {
	argv, err := r.buildArgv()
	if err != nil {
		r.setStatus(StatusFailed)
		return err
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = r.nodeCtx.WorkDir
	cmd.Env = append(os.Environ(),
		fmt.Sprintf("ML_NODE_IDENTITY=%s", r.nodeCtx.Identity()),
		fmt.Sprintf("ML_NODE_JOB_NAME=%s", r.nodeCtx.JobName),
		fmt.Sprintf("ML_NODE_TASK_INDEX=%d", r.nodeCtx.Index),
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	r.log.Debug("Launching runner %s for %s: %v", r.id, r.nodeCtx.Identity(), argv)
	if err := cmd.Start(); err != nil {
		r.setStatus(StatusFailed)
		return errors.Wrapf(err, "failed to launch runner %s", r.id)
	}

	r.mu.Lock()
	r.cmd = cmd
	r.status = StatusRunning
	r.mu.Unlock()

	err = cmd.Wait()

	r.mu.Lock()
	r.cmd = nil
	if err != nil {
		r.status = StatusFailed
	} else {
		r.status = StatusSucceeded
	}
	r.mu.Unlock()

	if err != nil {
		r.log.Warn("Runner %s for %s exited: %v", r.id, r.nodeCtx.Identity(), err)
		return errors.Wrapf(err, "runner %s exited abnormally", r.id)
	}

	r.log.Info("Runner %s for %s finished successfully after %v.", r.id, r.nodeCtx.Identity(), time.Since(r.createdAt))
	return nil
}

// ResultStatus reports the runner's current status without blocking.
func (r *ProcessRunner) ResultStatus() ExecutionStatus {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.status
}

func (r *ProcessRunner) setStatus(status ExecutionStatus) {
	r.mu.Lock()
	r.status = status
	r.mu.Unlock()
}

// NotifyStop asks the workload to terminate by sending SIGINT to the child
// process. It is a no-op if the process is not running.
func (r *ProcessRunner) NotifyStop() {
	r.mu.Lock()
	cmd := r.cmd
	r.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		r.log.Debug("NotifyStop on runner %s: %v", r.id, domain.ErrRunnerNotLaunched)
		return
	}

	r.log.Debug("Interrupting runner %s (pid %d).", r.id, cmd.Process.Pid)
	if err := cmd.Process.Signal(syscall.SIGINT); err != nil {
		r.log.Warn("Failed to interrupt runner %s: %v", r.id, err)
	}
}

// buildArgv assembles the python command line. When a startup script is
// configured it wraps the entry script; otherwise the entry script runs
// directly.
func (r *ProcessRunner) buildArgv() ([]string, error) {
	python := r.nodeCtx.Property(domain.PropPythonExec, domain.DefaultPythonExec)
	entry := r.nodeCtx.Property(domain.PropEntryScriptFile, "")
	if entry == "" {
		return nil, errors.Errorf("no entry script configured for %s", r.nodeCtx.Identity())
	}

	if startup := r.nodeCtx.Property(domain.PropStartupScriptFile, ""); startup != "" {
		return []string{python, startup, entry}, nil
	}
	return []string{python, entry}, nil
}
