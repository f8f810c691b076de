package node

import (
	"context"
	"sync"
	"time"

	"github.com/Scusemua/go-utils/config"
	"github.com/Scusemua/go-utils/logger"
	"github.com/pkg/errors"

	"github.com/dataflow-dl/mlnode/common/proto"
	"github.com/dataflow-dl/mlnode/common/utils"
	"github.com/dataflow-dl/mlnode/node/domain"
	"github.com/dataflow-dl/mlnode/node/runner"
)

const (
	// idlePollInterval paces the control loop while no runner is executing.
	idlePollInterval = 1 * time.Second

	// executorAwaitInterval bounds each wait on the executing runner so
	// commands are still noticed while the workload runs.
	executorAwaitInterval = 10 * time.Second

	// endpointStopGrace bounds how long cleanup lets in-flight RPCs drain.
	endpointStopGrace = 2 * time.Minute
)

// RunnerFactory creates a fresh runner for each launch and relaunch.
type RunnerFactory func(nodeCtx *domain.NodeContext) runner.Runner

// EnvPreparer resolves the node's runtime environment before the runner is
// first launched.
type EnvPreparer interface {
	Prepare(ctx context.Context, nodeCtx *domain.NodeContext) error
}

// NodeSupervisor owns one worker node's lifecycle: it launches the runner,
// serves the control endpoint, reacts to steering commands, and fails the node
// when it idles past its timeout. Run drives everything; Cleanup releases
// everything and may additionally be invoked from a shutdown hook.
type NodeSupervisor struct {
	log logger.Logger

	nodeCtx   *domain.NodeContext
	runners   *runner.Supervisor
	endpoint  *ControlEndpoint
	metrics   *NodePrometheusManager
	newRunner RunnerFactory
	preparer  EnvPreparer

	pollInterval  time.Duration
	awaitInterval time.Duration

	// cmdMu guards the one-slot command mailbox. A later command overwrites
	// an unconsumed earlier one.
	cmdMu sync.Mutex
	cmd   proto.AMCommand

	mu     sync.Mutex
	future *runner.Future

	cleanupMu sync.Mutex
	cleaned   bool
}

// NewNodeSupervisor creates a supervisor for the given node. A nil factory
// defaults to launching python child processes.
func NewNodeSupervisor(nodeCtx *domain.NodeContext, factory RunnerFactory) *NodeSupervisor {
	if factory == nil {
		factory = func(nodeCtx *domain.NodeContext) runner.Runner {
			return runner.NewProcessRunner(nodeCtx)
		}
	}

	s := &NodeSupervisor{
		nodeCtx:       nodeCtx,
		runners:       runner.NewSupervisor(nodeCtx.Identity()),
		newRunner:     factory,
		pollInterval:  idlePollInterval,
		awaitInterval: executorAwaitInterval,
	}
	s.endpoint = NewControlEndpoint(nodeCtx.Identity(), s)
	config.InitLogger(&s.log, s)
	return s
}

// SetMetricsManager attaches an optional metrics manager. It must be called
// before Run.
func (s *NodeSupervisor) SetMetricsManager(m *NodePrometheusManager) {
	s.metrics = m
}

// SetPreparer attaches the environment-preparation collaborator invoked at
// the start of Run. It must be called before Run.
func (s *NodeSupervisor) SetPreparer(p EnvPreparer) {
	s.preparer = p
}

// SetIntervals overrides the control loop's pacing. It must be called before
// Run.
func (s *NodeSupervisor) SetIntervals(poll time.Duration, await time.Duration) {
	s.pollInterval = poll
	s.awaitInterval = await
}

// Port returns the control endpoint's bound port once Run (or the endpoint)
// has started.
func (s *NodeSupervisor) Port() (int, error) {
	return s.endpoint.Port()
}

// SetCommand records a steering command for the next control-loop iteration.
// The mailbox holds a single command; an unconsumed command is overwritten.
func (s *NodeSupervisor) SetCommand(cmd proto.AMCommand) {
	s.cmdMu.Lock()
	if s.cmd != proto.AMCommand_NOPE && s.cmd != cmd {
		s.log.Warn("Command %s for %s overwrites unconsumed command %s.", cmd, s.nodeCtx.Identity(), s.cmd)
	}
	s.cmd = cmd
	s.cmdMu.Unlock()

	if s.metrics != nil {
		s.metrics.CommandReceived(cmd.String())
	}
}

// takeCommand drains the mailbox, leaving NOPE behind.
func (s *NodeSupervisor) takeCommand() proto.AMCommand {
	s.cmdMu.Lock()
	defer s.cmdMu.Unlock()

	cmd := s.cmd
	s.cmd = proto.AMCommand_NOPE
	return cmd
}

// Run prepares the environment, starts the control endpoint and the runner,
// then loops until the runner succeeds, a STOP command arrives, the node times
// out idle, or the context is cancelled. Cleanup always runs before Run
// returns.
func (s *NodeSupervisor) Run(ctx context.Context) error {
	defer s.Cleanup()

	if s.preparer != nil {
		if err := s.preparer.Prepare(ctx, s.nodeCtx); err != nil {
			s.log.Error(utils.RedStyle.Render("Failed to prepare runtime environment for %s: %v"), s.nodeCtx.Identity(), err)
			return err
		}
	}

	if err := s.endpoint.Start(); err != nil {
		s.log.Error(utils.RedStyle.Render("Failed to start control endpoint for %s: %v"), s.nodeCtx.Identity(), err)
		return err
	}

	if err := s.launchRunner(ctx); err != nil {
		s.log.Error(utils.RedStyle.Render("Failed to launch runner for %s: %v"), s.nodeCtx.Identity(), err)
		return err
	}

	// idleStart stays zero while a runner is making progress; it is stamped
	// the moment the node goes idle and reset on every relaunch.
	var idleStart time.Time

	// pendingRestart is set when a RESTART could not be honored yet because
	// the previous runner had not quiesced; it is retried each iteration.
	pendingRestart := false

	for {
		if ctx.Err() != nil {
			s.log.Info("Supervisor for %s interrupted; shutting down.", s.nodeCtx.Identity())
			return nil
		}

		future := s.currentFuture()
		if future != nil && future.Done() {
			if future.Runner().ResultStatus() == runner.StatusSucceeded {
				s.log.Info(utils.GreenStyle.Render("Runner for %s finished successfully."), s.nodeCtx.Identity())
				return nil
			}
			if idleStart.IsZero() {
				idleStart = time.Now()
				s.log.Warn(utils.LightOrangeStyle.Render("Runner for %s exited without success; awaiting instructions."), s.nodeCtx.Identity())
			}
			future = nil
		}

		if future != nil {
			// The runner is still active, so the node is not idle.
			idleStart = time.Time{}
			// Bounded so a command never waits longer than one interval.
			future.Wait(s.awaitInterval)
		} else {
			sleepCtx(ctx, s.pollInterval)
			if idleStart.IsZero() {
				idleStart = time.Now()
			}
		}

		// Idle accounting runs before the command switch, so a node that is
		// already past its timeout fails even if a command just arrived.
		if !idleStart.IsZero() {
			idle := time.Since(idleStart)
			if s.metrics != nil {
				s.metrics.IdleSecondsGauge.Set(idle.Seconds())
			}
			if idle > s.nodeCtx.IdleTimeout() {
				err := &domain.ExecutionTimeoutError{Identity: s.nodeCtx.Identity(), Idle: idle}
				s.log.Error(utils.RedStyle.Render("%v"), err)
				return err
			}
		} else if s.metrics != nil {
			s.metrics.IdleSecondsGauge.Set(0)
		}

		switch cmd := s.takeCommand(); cmd {
		case proto.AMCommand_NOPE:
			if pendingRestart {
				started, err := s.relaunchRunner(ctx)
				if err != nil {
					if errors.Is(err, domain.ErrSupervisorShutdown) {
						s.log.Info("Supervisor for %s shut down mid-restart; exiting.", s.nodeCtx.Identity())
						return nil
					}
					return err
				}
				if started {
					pendingRestart = false
					idleStart = time.Time{}
				}
			}
		case proto.AMCommand_STOP:
			// STOP is terminal: the node honors it and exits.
			s.log.Info("Stopping runner for %s on command.", s.nodeCtx.Identity())
			s.stopRunner()
			return nil
		case proto.AMCommand_RESTART:
			s.log.Info("Restarting runner for %s on command.", s.nodeCtx.Identity())
			s.stopRunner()
			started, err := s.relaunchRunner(ctx)
			if err != nil {
				if errors.Is(err, domain.ErrSupervisorShutdown) {
					s.log.Info("Supervisor for %s shut down mid-restart; exiting.", s.nodeCtx.Identity())
					return nil
				}
				return err
			}
			pendingRestart = !started
			if started {
				idleStart = time.Time{}
			}
		}

		if s.metrics != nil {
			if future := s.currentFuture(); future != nil {
				s.metrics.RunnerStatusGauge.Set(float64(future.Runner().ResultStatus()))
			}
		}
	}
}

// launchRunner creates a fresh runner and submits it for execution.
func (s *NodeSupervisor) launchRunner(ctx context.Context) error {
	future, err := s.runners.Submit(ctx, s.newRunner(s.nodeCtx))
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.future = future
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RunnerSubmissionsCounter.Inc()
	}
	return nil
}

// relaunchRunner submits a replacement runner after a RESTART. A previous
// runner that has not quiesced yet is not fatal; the caller retries on a
// later iteration.
func (s *NodeSupervisor) relaunchRunner(ctx context.Context) (bool, error) {
	err := s.launchRunner(ctx)
	if err == nil {
		if s.metrics != nil {
			s.metrics.RunnerRestartsCounter.Inc()
		}
		return true, nil
	}
	if errors.Is(err, domain.ErrRunnerStillActive) {
		s.log.Warn(utils.OrangeStyle.Render("Previous runner for %s has not quiesced yet; restart deferred."), s.nodeCtx.Identity())
		return false, nil
	}
	if !errors.Is(err, domain.ErrSupervisorShutdown) {
		s.log.Error(utils.RedStyle.Render("Failed to relaunch runner for %s: %v"), s.nodeCtx.Identity(), err)
	}
	return false, err
}

// stopRunner stops the in-flight runner, if any, and clears the handle.
func (s *NodeSupervisor) stopRunner() {
	s.mu.Lock()
	future := s.future
	s.future = nil
	s.mu.Unlock()

	s.runners.Stop(future)
}

func (s *NodeSupervisor) currentFuture() *runner.Future {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.future
}

// Cleanup releases the node's resources: the runner, the runner supervisor,
// the control endpoint, the metrics server, and the input queue. It is
// idempotent and safe to invoke concurrently from a shutdown hook while Run
// is still unwinding.
func (s *NodeSupervisor) Cleanup() {
	s.cleanupMu.Lock()
	defer s.cleanupMu.Unlock()

	if s.cleaned {
		return
	}
	s.cleaned = true

	s.log.Info("Cleaning up node %s.", s.nodeCtx.Identity())

	s.stopRunner()
	s.runners.Shutdown()
	s.endpoint.Stop(endpointStopGrace)

	if s.metrics != nil && s.metrics.IsRunning() {
		_ = s.metrics.Stop()
	}

	if s.nodeCtx.InputQueue != nil {
		s.nodeCtx.InputQueue.MarkFinished()
	}

	s.log.Info(utils.GrayStyle.Render("Node %s cleaned up."), s.nodeCtx.Identity())
}

// sleepCtx sleeps for d or until the context is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
