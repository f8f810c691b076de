package runner

import (
	"context"
	"sync"
	"time"
)

// ExecutionStatus describes the runner's terminal or non-terminal condition.
// It is produced by the Runner and polled (never pushed) by the control loop.
type ExecutionStatus int32

const (
	StatusInitializing ExecutionStatus = iota
	StatusRunning
	StatusSucceeded
	StatusFailed
)

func (s ExecutionStatus) String() string {
	switch s {
	case StatusInitializing:
		return "Initializing"
	case StatusRunning:
		return "Running"
	case StatusSucceeded:
		return "Succeeded"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Runner is the unit of work executing the training workload on a node.
//
// Run blocks until the workload finishes and is executed on the Supervisor's
// worker goroutine. ResultStatus must be callable from any goroutine at any
// time without blocking. NotifyStop requests cooperative termination; it is
// best-effort and may race with natural completion.
type Runner interface {
	Run(ctx context.Context) error
	ResultStatus() ExecutionStatus
	NotifyStop()
}

// Future is the handle to one in-flight runner submission: queryable for
// completion and cancellable. A new Future is created for every submission;
// restarts replace it.
type Future struct {
	runner Runner
	cancel context.CancelFunc
	done   chan struct{}

	mu  sync.Mutex
	err error
}

// Runner returns the runner this future tracks.
func (f *Future) Runner() Runner {
	return f.runner
}

// Done reports, without blocking, whether the runner has finished.
func (f *Future) Done() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the runner finishes or the given bound elapses.
// It returns true if the runner finished within the bound.
func (f *Future) Wait(bound time.Duration) bool {
	timer := time.NewTimer(bound)
	defer timer.Stop()

	select {
	case <-f.done:
		return true
	case <-timer.C:
		return false
	}
}

// Cancel forcefully cancels the submission context. Callers should request
// cooperative termination through the runner's NotifyStop first.
func (f *Future) Cancel() {
	f.cancel()
}

// Err returns the error the runner's Run returned, if any. Err is only
// meaningful once Done reports true.
func (f *Future) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.err
}

func (f *Future) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}
