package node_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/dataflow-dl/mlnode/common/proto"
	"github.com/dataflow-dl/mlnode/node"
	"github.com/dataflow-dl/mlnode/node/domain"
)

// recordingSink captures every command the endpoint accepts.
type recordingSink struct {
	mu       sync.Mutex
	commands []proto.AMCommand
}

func (s *recordingSink) SetCommand(cmd proto.AMCommand) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commands = append(s.commands, cmd)
}

func (s *recordingSink) Commands() []proto.AMCommand {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]proto.AMCommand(nil), s.commands...)
}

var _ = Describe("Control Endpoint Tests", func() {
	var (
		sink     *recordingSink
		endpoint *node.ControlEndpoint
		conn     *grpc.ClientConn
		client   proto.NodeServiceClient
	)

	BeforeEach(func() {
		sink = &recordingSink{}
		endpoint = node.NewControlEndpoint("test-job:0", sink)
		Expect(endpoint.Start()).To(Succeed())

		port, err := endpoint.Port()
		Expect(err).To(BeNil())

		conn, err = grpc.NewClient(fmt.Sprintf("localhost:%d", port),
			grpc.WithTransportCredentials(insecure.NewCredentials()))
		Expect(err).To(BeNil())
		client = proto.NewNodeServiceClient(conn)
	})

	AfterEach(func() {
		if conn != nil {
			_ = conn.Close()
		}
		endpoint.Stop(time.Second)
	})

	It("Should report its port before reporting ready", func() {
		fresh := node.NewControlEndpoint("test-job:1", sink)
		_, err := fresh.Port()
		Expect(err).To(Equal(domain.ErrEndpointNotStarted))
	})

	It("Should acknowledge each supported command", func() {
		for _, cmd := range []proto.AMCommand{proto.AMCommand_NOPE, proto.AMCommand_STOP, proto.AMCommand_RESTART} {
			ack, err := client.SendCommand(context.Background(), &proto.CommandRequest{Command: cmd})
			Expect(err).To(BeNil())
			Expect(ack).NotTo(BeNil())
		}
		Expect(sink.Commands()).To(Equal([]proto.AMCommand{
			proto.AMCommand_NOPE, proto.AMCommand_STOP, proto.AMCommand_RESTART,
		}))
	})

	It("Should reject unknown command values without touching the sink", func() {
		_, err := client.SendCommand(context.Background(), &proto.CommandRequest{Command: proto.AMCommand(42)})
		Expect(err).To(HaveOccurred())
		Expect(status.Code(err)).To(Equal(codes.InvalidArgument))
		Expect(sink.Commands()).To(BeEmpty())
	})

	It("Should answer port discovery with its own bound port", func() {
		expected, err := endpoint.Port()
		Expect(err).To(BeNil())

		resp, err := client.GetPort(context.Background(), proto.VOID)
		Expect(err).To(BeNil())
		Expect(resp.Port).To(Equal(int32(expected)))
	})

	It("Should stop serving after Stop", func() {
		endpoint.Stop(time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_, err := client.SendCommand(ctx, &proto.CommandRequest{Command: proto.AMCommand_NOPE})
		Expect(err).To(HaveOccurred())

		// Stopping again is harmless.
		endpoint.Stop(time.Second)
	})
})
