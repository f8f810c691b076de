package domain

import (
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// gRPC errors

	ErrInvalidCommand = status.Errorf(codes.InvalidArgument, "unsupported command")

	// Internal errors

	ErrSupervisorShutdown = errors.New("runner supervisor has been shut down")
	ErrRunnerStillActive  = errors.New("a runner is still executing")
	ErrRunnerNotLaunched  = errors.New("runner process has not been launched")
	ErrEndpointNotStarted = errors.New("control endpoint has not been started")
	ErrEnvPreparation     = errors.New("could not prepare runtime environment")
)

// ExecutionTimeoutError is raised when the runner exited without success and
// the node remained idle past the configured timeout. It is fatal and ends the
// supervisor's life.
type ExecutionTimeoutError struct {
	// Identity of the node that timed out.
	Identity string

	// Idle is how long the node had been idle when the timeout fired.
	Idle time.Duration
}

func (e *ExecutionTimeoutError) Error() string {
	return fmt.Sprintf("%s has been idle for %d seconds", e.Identity, int64(e.Idle.Seconds()))
}
