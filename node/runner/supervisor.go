package runner

import (
	"context"
	"sync"
	"time"

	"github.com/Scusemua/go-utils/config"
	"github.com/Scusemua/go-utils/logger"

	"github.com/dataflow-dl/mlnode/common/utils"
	"github.com/dataflow-dl/mlnode/node/domain"
)

const (
	// How long Stop waits for a runner to quiesce after being interrupted.
	stopTimeout = 5 * time.Second

	// How long Shutdown waits for the in-flight runner before giving up.
	shutdownTimeout = 5 * time.Second
)

// Supervisor executes runners one at a time. Submit hands a runner to the
// worker goroutine and returns a Future; at most one runner is ever executing,
// and once Shutdown has been called further submissions are rejected.
type Supervisor struct {
	log logger.Logger

	identity string

	mu       sync.Mutex
	current  *Future
	shutdown bool
}

func NewSupervisor(identity string) *Supervisor {
	s := &Supervisor{identity: identity}
	config.InitLogger(&s.log, s)
	return s
}

// Submit starts executing the runner on a fresh worker goroutine and returns
// the Future tracking it. It fails with ErrSupervisorShutdown after Shutdown
// and with ErrRunnerStillActive while a previous runner is still executing.
func (s *Supervisor) Submit(ctx context.Context, r Runner) (*Future, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.shutdown {
		return nil, domain.ErrSupervisorShutdown
	}
	if s.current != nil && !s.current.Done() {
		return nil, domain.ErrRunnerStillActive
	}

	runCtx, cancel := context.WithCancel(ctx)
	future := &Future{
		runner: r,
		cancel: cancel,
		done:   make(chan struct{}),
	}
	s.current = future

	s.log.Debug("Submitting runner for %s.", s.identity)
	go func() {
		future.setErr(r.Run(runCtx))
		cancel()
		close(future.done)
	}()

	return future, nil
}

// Active reports whether a previously submitted runner is still executing.
func (s *Supervisor) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current != nil && !s.current.Done()
}

// Stop terminates the runner tracked by the given future: it first requests
// cooperative termination, then cancels the submission context, and finally
// waits a bounded amount of time for the worker to quiesce. Stopping a nil or
// already-finished future is a no-op, so Stop is safe to call repeatedly.
func (s *Supervisor) Stop(future *Future) {
	if future == nil || future.Done() {
		return
	}

	s.log.Debug("Stopping runner for %s.", s.identity)
	future.Runner().NotifyStop()
	future.Cancel()

	if !future.Wait(stopTimeout) {
		s.log.Warn(utils.YellowStyle.Render("Runner for %s did not quiesce within %v of being stopped."), s.identity, stopTimeout)
		return
	}
	s.log.Debug("Runner for %s stopped.", s.identity)
}

// Shutdown rejects all future submissions and stops the in-flight runner, if
// any, waiting at most shutdownTimeout for it to finish. Shutdown is
// idempotent.
func (s *Supervisor) Shutdown() {
	s.mu.Lock()
	if s.shutdown {
		s.mu.Unlock()
		return
	}
	s.shutdown = true
	current := s.current
	s.mu.Unlock()

	if current == nil || current.Done() {
		s.log.Debug("Runner supervisor for %s shut down; no runner in flight.", s.identity)
		return
	}

	current.Runner().NotifyStop()
	current.Cancel()
	if !current.Wait(shutdownTimeout) {
		s.log.Warn(utils.YellowStyle.Render("Runner for %s still executing %v after shutdown was requested."), s.identity, shutdownTimeout)
		return
	}
	s.log.Debug("Runner supervisor for %s shut down.", s.identity)
}
