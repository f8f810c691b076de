package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/Scusemua/go-utils/config"
	"github.com/google/uuid"

	"github.com/dataflow-dl/mlnode/common/consul"
	"github.com/dataflow-dl/mlnode/node"
	"github.com/dataflow-dl/mlnode/node/domain"
	"github.com/dataflow-dl/mlnode/node/env"
)

const (
	ServiceName = "mlnode"
)

var (
	options domain.NodeOptions = domain.NodeOptions{}
	logger                     = config.GetLogger("")
	sig                        = make(chan os.Signal, 1)
)

func init() {
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM, syscall.SIGABRT)
	// Set default options.
	options.PythonExec = domain.DefaultPythonExec
}

func main() {
	defer finalize(false)

	var done sync.WaitGroup

	flags, err := config.ValidateOptions(&options)
	if err == config.ErrPrintUsage {
		flags.PrintDefaults()
		os.Exit(0)
	} else if err != nil {
		log.Fatal(err)
	}
	if err := options.Validate(); err != nil {
		log.Fatal(err)
	}

	logger.Info("Started %s with options: %v", ServiceName, options.String())

	nodeCtx := domain.NewNodeContext(options.JobName, options.TaskIndex, options.WorkDir)
	nodeCtx.Properties[domain.PropIdleTimeoutMs] = strconv.Itoa(options.IdleTimeoutMs)
	nodeCtx.Properties[domain.PropPythonExec] = options.PythonExec
	if options.CodeZipFile != "" {
		nodeCtx.Properties[domain.PropRemoteCodeZipFile] = options.CodeZipFile
	}
	if options.EntryScript != "" {
		nodeCtx.Properties[domain.PropEntryScriptFile] = options.EntryScript
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var consulClient *consul.Client
	if options.ConsulAddr != "" {
		logger.Info("Initializing consul agent [host: %v]...", options.ConsulAddr)
		consulClient, err = consul.NewClient(options.ConsulAddr)
		if err != nil {
			log.Fatalf("Got error while initializing consul agent: %v", err)
		}
		logger.Info("Consul agent initialized")
	}

	supervisor := node.NewNodeSupervisor(nodeCtx, nil)
	supervisor.SetPreparer(env.NewPreparer())

	if options.PrometheusPort > 0 {
		metrics := node.NewNodePrometheusManager(options.PrometheusPort, nodeCtx.Identity())
		if err := metrics.Start(); err != nil {
			log.Fatalf("Failed to start Prometheus manager: %v", err)
		}
		supervisor.SetMetricsManager(metrics)
	}

	// Run the supervisor's control loop.
	done.Add(1)
	go func() {
		defer finalize(true)
		defer done.Done()
		if err := supervisor.Run(ctx); err != nil {
			log.Fatalf("Node %s failed: %v", nodeCtx.Identity(), err)
		}
		logger.Info("Node %s finished.", nodeCtx.Identity())
	}()

	// Register the control endpoint in consul once its port is bound.
	serviceId := uuid.New().String()
	if consulClient != nil {
		// Environment preparation (code fetch, extraction) runs before the
		// endpoint binds, so allow it a generous head start.
		var port int
		for i := 0; i < 600; i++ {
			if port, err = supervisor.Port(); err == nil {
				break
			}
			time.Sleep(100 * time.Millisecond)
		}
		if err != nil {
			log.Fatalf("Control endpoint never bound a port: %v", err)
		}
		if err = consulClient.Register(ServiceName, serviceId, "", port); err != nil {
			log.Fatalf("Failed to register in consul: %v", err)
		}
		logger.Info("Successfully registered in consul")
	}

	// Start detecting stop signals
	go func() {
		<-sig
		logger.Info("Shutting down...")
		if consulClient != nil {
			if err := consulClient.Deregister(serviceId); err != nil {
				logger.Warn("Failed to deregister from consul: %v", err)
			}
		}
		cancel()
		supervisor.Cleanup()
	}()

	done.Wait()
}

func finalize(fix bool) {
	if err := recover(); err != nil {
		logger.Error("Recovered from panic: %v", err)
	}
	if fix {
		// Unblock the signal handler so the process unwinds.
		sig <- syscall.SIGINT
	}
}
