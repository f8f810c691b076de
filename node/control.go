package node

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/Scusemua/go-utils/config"
	"github.com/Scusemua/go-utils/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/keepalive"

	"github.com/dataflow-dl/mlnode/common/proto"
	"github.com/dataflow-dl/mlnode/node/domain"
)

// CommandSink receives commands accepted by the control endpoint. The node
// supervisor is the only implementation.
type CommandSink interface {
	SetCommand(cmd proto.AMCommand)
}

// ControlEndpoint is the gRPC surface through which the application master
// steers a node. It accepts steering commands and answers port discovery; all
// state it touches belongs to the supervisor behind the CommandSink.
type ControlEndpoint struct {
	proto.UnimplementedNodeServiceServer
	log logger.Logger

	identity string
	sink     CommandSink

	mu      sync.Mutex
	srv     *grpc.Server
	lis     net.Listener
	port    int
	started bool
}

func NewControlEndpoint(identity string, sink CommandSink) *ControlEndpoint {
	e := &ControlEndpoint{
		identity: identity,
		sink:     sink,
	}
	config.InitLogger(&e.log, e)
	return e
}

// Start binds an ephemeral TCP port and begins serving. The bound port is
// queryable through Port once Start returns.
func (e *ControlEndpoint) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return nil
	}

	lis, err := net.Listen("tcp", ":0")
	if err != nil {
		return err
	}

	srv := grpc.NewServer(
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Timeout: 120 * time.Second,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			PermitWithoutStream: true,
		}),
	)
	proto.RegisterNodeServiceServer(srv, e)

	e.srv = srv
	e.lis = lis
	e.port = lis.Addr().(*net.TCPAddr).Port
	e.started = true

	go func() {
		if err := srv.Serve(lis); err != nil {
			e.log.Warn("Control endpoint for %s stopped serving: %v", e.identity, err)
		}
	}()

	e.log.Info("Control endpoint for %s listening at %v.", e.identity, lis.Addr())
	return nil
}

// Port returns the bound control port. It fails until Start has succeeded.
func (e *ControlEndpoint) Port() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.started {
		return 0, domain.ErrEndpointNotStarted
	}
	return e.port, nil
}

// Stop drains the endpoint gracefully, falling back to a hard stop if
// in-flight RPCs do not finish within grace. Stopping an endpoint that never
// started is a no-op.
func (e *ControlEndpoint) Stop(grace time.Duration) {
	e.mu.Lock()
	srv := e.srv
	e.srv = nil
	e.started = false
	e.mu.Unlock()

	if srv == nil {
		return
	}

	drained := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(drained)
	}()

	select {
	case <-drained:
		e.log.Debug("Control endpoint for %s stopped.", e.identity)
	case <-time.After(grace):
		e.log.Warn("Control endpoint for %s did not drain within %v; stopping hard.", e.identity, grace)
		srv.Stop()
	}
}

// SendCommand records a steering command for the supervisor's next poll.
// Unknown command values are rejected without disturbing node state.
func (e *ControlEndpoint) SendCommand(_ context.Context, in *proto.CommandRequest) (*proto.Void, error) {
	if in == nil || !in.Command.Valid() {
		e.log.Warn("Rejecting unsupported command for %s: %v", e.identity, in.GetCommand())
		return nil, domain.ErrInvalidCommand
	}

	e.log.Debug("Received command %s for %s.", in.Command, e.identity)
	e.sink.SetCommand(in.Command)
	return proto.VOID, nil
}

// GetPort reports the endpoint's own bound port.
func (e *ControlEndpoint) GetPort(_ context.Context, _ *proto.Void) (*proto.PortResponse, error) {
	port, err := e.Port()
	if err != nil {
		return nil, err
	}
	return &proto.PortResponse{Port: int32(port)}, nil
}
