package node_test

import (
	"context"
	"strconv"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"

	"github.com/dataflow-dl/mlnode/common/proto"
	"github.com/dataflow-dl/mlnode/common/queue"
	"github.com/dataflow-dl/mlnode/node"
	"github.com/dataflow-dl/mlnode/node/domain"
	"github.com/dataflow-dl/mlnode/node/runner"
)

// scriptedRunner is a configurable in-process stand-in for a training
// workload.
type scriptedRunner struct {
	// delay is how long the workload runs before exiting on its own.
	delay time.Duration
	// fail makes the workload exit unsuccessfully after delay.
	fail bool
	// blockUntilStopped makes the workload run until stopped or cancelled.
	blockUntilStopped bool
	// release, when set, makes the workload ignore stop requests and
	// cancellation entirely and run until the channel is closed.
	release chan struct{}

	stopCh   chan struct{}
	stopOnce sync.Once

	mu     sync.Mutex
	status runner.ExecutionStatus
}

func newScriptedRunner() *scriptedRunner {
	return &scriptedRunner{stopCh: make(chan struct{})}
}

func (r *scriptedRunner) Run(ctx context.Context) error {
	r.setStatus(runner.StatusRunning)

	if r.release != nil {
		<-r.release
		r.setStatus(runner.StatusFailed)
		return errors.New("workload finally let go")
	}

	if r.blockUntilStopped {
		select {
		case <-ctx.Done():
		case <-r.stopCh:
		}
		r.setStatus(runner.StatusFailed)
		return errors.New("workload was stopped")
	}

	timer := time.NewTimer(r.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		r.setStatus(runner.StatusFailed)
		return ctx.Err()
	case <-r.stopCh:
		r.setStatus(runner.StatusFailed)
		return errors.New("workload was stopped")
	case <-timer.C:
	}

	if r.fail {
		r.setStatus(runner.StatusFailed)
		return errors.New("workload failed")
	}
	r.setStatus(runner.StatusSucceeded)
	return nil
}

func (r *scriptedRunner) ResultStatus() runner.ExecutionStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *scriptedRunner) NotifyStop() {
	r.stopOnce.Do(func() { close(r.stopCh) })
}

func (r *scriptedRunner) setStatus(status runner.ExecutionStatus) {
	r.mu.Lock()
	r.status = status
	r.mu.Unlock()
}

// staticFactory hands out pre-scripted runners in submission order and
// remembers how many were launched.
type staticFactory struct {
	mu       sync.Mutex
	runners  []*scriptedRunner
	next     int
	launched int
}

func (f *staticFactory) New(_ *domain.NodeContext) runner.Runner {
	f.mu.Lock()
	defer f.mu.Unlock()

	r := f.runners[f.next]
	if f.next >= f.launched {
		f.launched = f.next + 1
	}
	if f.next < len(f.runners)-1 {
		f.next++
	}
	return r
}

func (f *staticFactory) Launched() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.launched
}

// failingPreparer simulates a broken runtime environment.
type failingPreparer struct{}

func (failingPreparer) Prepare(_ context.Context, _ *domain.NodeContext) error {
	return errors.Wrap(domain.ErrEnvPreparation, "no startup artifact")
}

func newTestNodeContext(idleTimeout time.Duration) *domain.NodeContext {
	nodeCtx := domain.NewNodeContext("test-job", 0, GinkgoT().TempDir())
	nodeCtx.Properties[domain.PropIdleTimeoutMs] = strconv.FormatInt(idleTimeout.Milliseconds(), 10)
	nodeCtx.InputQueue = queue.NewFinishable[[]byte](16)
	return nodeCtx
}

var _ = Describe("Node Supervisor Tests", func() {
	runSupervisor := func(s *node.NodeSupervisor, ctx context.Context) chan error {
		finished := make(chan error, 1)
		go func() {
			finished <- s.Run(ctx)
		}()
		return finished
	}

	It("Should finish cleanly when the runner succeeds", func() {
		workload := newScriptedRunner()
		workload.delay = 50 * time.Millisecond
		factory := &staticFactory{runners: []*scriptedRunner{workload}}

		supervisor := node.NewNodeSupervisor(newTestNodeContext(time.Minute), factory.New)
		supervisor.SetIntervals(50*time.Millisecond, 100*time.Millisecond)

		finished := runSupervisor(supervisor, context.Background())
		Eventually(finished, 10*time.Second).Should(Receive(BeNil()))
		Expect(workload.ResultStatus()).To(Equal(runner.StatusSucceeded))
	})

	It("Should fail with a timeout error when the runner fails and no command arrives", func() {
		workload := newScriptedRunner()
		workload.delay = 50 * time.Millisecond
		workload.fail = true
		factory := &staticFactory{runners: []*scriptedRunner{workload}}

		supervisor := node.NewNodeSupervisor(newTestNodeContext(800*time.Millisecond), factory.New)
		supervisor.SetIntervals(50*time.Millisecond, 100*time.Millisecond)

		finished := runSupervisor(supervisor, context.Background())

		var err error
		Eventually(finished, 10*time.Second).Should(Receive(&err))
		var timeoutErr *domain.ExecutionTimeoutError
		Expect(errors.As(err, &timeoutErr)).To(BeTrue())
		Expect(timeoutErr.Identity).To(Equal("test-job:0"))
		Expect(timeoutErr.Idle).To(BeNumerically(">", 800*time.Millisecond))
	})

	It("Should stop the runner and exit when commanded to STOP", func() {
		workload := newScriptedRunner()
		workload.blockUntilStopped = true
		factory := &staticFactory{runners: []*scriptedRunner{workload}}

		nodeCtx := newTestNodeContext(time.Minute)
		supervisor := node.NewNodeSupervisor(nodeCtx, factory.New)
		supervisor.SetIntervals(50*time.Millisecond, 100*time.Millisecond)

		finished := runSupervisor(supervisor, context.Background())
		Eventually(workload.ResultStatus, 5*time.Second).Should(Equal(runner.StatusRunning))

		supervisor.SetCommand(proto.AMCommand_STOP)
		Eventually(finished, 10*time.Second).Should(Receive(BeNil()))
		Expect(workload.ResultStatus()).To(Equal(runner.StatusFailed))
		Expect(nodeCtx.InputQueue.Finished()).To(BeTrue())
	})

	It("Should abort before launching anything when environment preparation fails", func() {
		workload := newScriptedRunner()
		factory := &staticFactory{runners: []*scriptedRunner{workload}}

		supervisor := node.NewNodeSupervisor(newTestNodeContext(time.Minute), factory.New)
		supervisor.SetPreparer(failingPreparer{})

		err := supervisor.Run(context.Background())
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, domain.ErrEnvPreparation)).To(BeTrue())
		Expect(workload.ResultStatus()).To(Equal(runner.StatusInitializing))
	})

	It("Should replace a failed runner on RESTART and finish with the new one", func() {
		failed := newScriptedRunner()
		failed.delay = 50 * time.Millisecond
		failed.fail = true
		replacement := newScriptedRunner()
		replacement.delay = 50 * time.Millisecond
		factory := &staticFactory{runners: []*scriptedRunner{failed, replacement}}

		supervisor := node.NewNodeSupervisor(newTestNodeContext(time.Minute), factory.New)
		supervisor.SetIntervals(50*time.Millisecond, 100*time.Millisecond)

		finished := runSupervisor(supervisor, context.Background())
		Eventually(failed.ResultStatus, 5*time.Second).Should(Equal(runner.StatusFailed))

		supervisor.SetCommand(proto.AMCommand_RESTART)
		Eventually(finished, 10*time.Second).Should(Receive(BeNil()))
		Expect(factory.Launched()).To(Equal(2))
		Expect(replacement.ResultStatus()).To(Equal(runner.StatusSucceeded))
	})

	It("Should defer a RESTART until a stubborn runner finally quiesces", func() {
		stubborn := newScriptedRunner()
		stubborn.release = make(chan struct{})
		replacement := newScriptedRunner()
		replacement.delay = 50 * time.Millisecond
		factory := &staticFactory{runners: []*scriptedRunner{stubborn, replacement}}

		supervisor := node.NewNodeSupervisor(newTestNodeContext(time.Minute), factory.New)
		supervisor.SetIntervals(50*time.Millisecond, 100*time.Millisecond)

		finished := runSupervisor(supervisor, context.Background())
		Eventually(stubborn.ResultStatus, 5*time.Second).Should(Equal(runner.StatusRunning))

		supervisor.SetCommand(proto.AMCommand_RESTART)

		// The old runner ignores stop requests past the 5s quiesce window,
		// so the node must keep running with the restart deferred rather
		// than fail.
		Consistently(finished, 7*time.Second).ShouldNot(Receive())

		close(stubborn.release)
		Eventually(finished, 10*time.Second).Should(Receive(BeNil()))
		Expect(factory.Launched()).To(Equal(2))
		Expect(replacement.ResultStatus()).To(Equal(runner.StatusSucceeded))
	})

	It("Should fail an already-expired idle timeout before honoring a late RESTART", func() {
		workload := newScriptedRunner()
		workload.delay = 50 * time.Millisecond
		workload.fail = true
		factory := &staticFactory{runners: []*scriptedRunner{workload, newScriptedRunner()}}

		supervisor := node.NewNodeSupervisor(newTestNodeContext(150*time.Millisecond), factory.New)
		supervisor.SetIntervals(600*time.Millisecond, 100*time.Millisecond)

		finished := runSupervisor(supervisor, context.Background())
		Eventually(workload.ResultStatus, 5*time.Second).Should(Equal(runner.StatusFailed))

		// Land the command inside the idle poll, after the timeout has
		// already elapsed but before the loop re-evaluates it.
		time.Sleep(200 * time.Millisecond)
		supervisor.SetCommand(proto.AMCommand_RESTART)

		var err error
		Eventually(finished, 10*time.Second).Should(Receive(&err))
		var timeoutErr *domain.ExecutionTimeoutError
		Expect(errors.As(err, &timeoutErr)).To(BeTrue())
		Expect(factory.Launched()).To(Equal(1))
	})

	It("Should honor only the most recent of two back-to-back commands", func() {
		workload := newScriptedRunner()
		workload.blockUntilStopped = true
		replacement := newScriptedRunner()
		replacement.delay = 50 * time.Millisecond
		factory := &staticFactory{runners: []*scriptedRunner{workload, replacement}}

		supervisor := node.NewNodeSupervisor(newTestNodeContext(time.Minute), factory.New)
		supervisor.SetIntervals(50*time.Millisecond, 500*time.Millisecond)

		finished := runSupervisor(supervisor, context.Background())
		Eventually(workload.ResultStatus, 5*time.Second).Should(Equal(runner.StatusRunning))

		// STOP is immediately superseded by RESTART, so the node must end up
		// with a fresh runner instead of idling.
		supervisor.SetCommand(proto.AMCommand_STOP)
		supervisor.SetCommand(proto.AMCommand_RESTART)

		Eventually(finished, 10*time.Second).Should(Receive(BeNil()))
		Expect(factory.Launched()).To(Equal(2))
	})

	It("Should unwind quietly when its context is cancelled", func() {
		workload := newScriptedRunner()
		workload.blockUntilStopped = true
		factory := &staticFactory{runners: []*scriptedRunner{workload}}

		nodeCtx := newTestNodeContext(time.Minute)
		supervisor := node.NewNodeSupervisor(nodeCtx, factory.New)
		supervisor.SetIntervals(50*time.Millisecond, 100*time.Millisecond)

		ctx, cancel := context.WithCancel(context.Background())
		finished := runSupervisor(supervisor, ctx)
		Eventually(workload.ResultStatus, 5*time.Second).Should(Equal(runner.StatusRunning))

		cancel()
		Eventually(finished, 10*time.Second).Should(Receive(BeNil()))

		// Cleanup ran: the input queue no longer accepts records, and running
		// cleanup again is harmless.
		Expect(nodeCtx.InputQueue.Finished()).To(BeTrue())
		supervisor.Cleanup()
	})
})
