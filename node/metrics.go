package node

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/Scusemua/go-utils/config"
	"github.com/Scusemua/go-utils/logger"
	"github.com/gin-gonic/contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dataflow-dl/mlnode/common/utils"
)

var (
	ErrNodePrometheusManagerAlreadyRunning = errors.New("NodePrometheusManager is already running")
	ErrNodePrometheusManagerNotRunning     = errors.New("NodePrometheusManager is not running")
)

// NodePrometheusManager registers the node's metrics with Prometheus and
// serves them via HTTP.
type NodePrometheusManager struct {
	log      logger.Logger
	identity string // identity is the job:index label of the node this manager serves.

	// serving indicates whether the manager has been started and is serving requests.
	serving            bool
	metricsInitialized bool
	mu                 sync.Mutex
	port               int
	engine             *gin.Engine
	httpServer         *http.Server
	prometheusHandler  http.Handler

	RunnerStatusGaugeVec *prometheus.GaugeVec
	RunnerStatusGauge    prometheus.Gauge // RunnerStatusGauge is a cached return of RunnerStatusGaugeVec.With(<label for this node>)

	IdleSecondsGaugeVec *prometheus.GaugeVec
	IdleSecondsGauge    prometheus.Gauge // IdleSecondsGauge is a cached return of IdleSecondsGaugeVec.With(<label for this node>)

	CommandsReceivedCounterVec *prometheus.CounterVec // CommandsReceivedCounterVec is labeled per command so NOPE/STOP/RESTART can be told apart.

	RunnerSubmissionsCounterVec *prometheus.CounterVec
	RunnerSubmissionsCounter    prometheus.Counter // RunnerSubmissionsCounter is a cached return of RunnerSubmissionsCounterVec.With(<label for this node>)

	RunnerRestartsCounterVec *prometheus.CounterVec
	RunnerRestartsCounter    prometheus.Counter // RunnerRestartsCounter is a cached return of RunnerRestartsCounterVec.With(<label for this node>)
}

func NewNodePrometheusManager(port int, identity string) *NodePrometheusManager {
	manager := &NodePrometheusManager{
		port:              port,
		prometheusHandler: promhttp.Handler(),
		identity:          identity,
	}
	config.InitLogger(&manager.log, manager)
	return manager
}

// Start registers metrics with Prometheus and begins serving them via an HTTP endpoint.
func (m *NodePrometheusManager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.serving {
		m.log.Warn("NodePrometheusManager for node %s is already running.", m.identity)
		return ErrNodePrometheusManagerAlreadyRunning
	}

	if !m.metricsInitialized {
		err := m.initMetrics()
		if err != nil {
			return err
		}
	}
	m.initializeHttpServer()
	m.serving = true

	return nil
}

// IsRunning returns true if the NodePrometheusManager has been started and is serving metrics.
func (m *NodePrometheusManager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.serving
}

// Stop instructs the NodePrometheusManager to shut down its HTTP server.
func (m *NodePrometheusManager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.serving {
		m.log.Warn("NodePrometheusManager for node %s is not running.", m.identity)
		return ErrNodePrometheusManagerNotRunning
	}

	m.serving = false
	if err := m.httpServer.Shutdown(context.Background()); err != nil {
		m.log.Error("Failed to cleanly shutdown the HTTP server: %v", err)
		return err
	}

	return nil
}

// CommandReceived bumps the per-command counter.
func (m *NodePrometheusManager) CommandReceived(command string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.metricsInitialized {
		return
	}
	m.CommandsReceivedCounterVec.With(prometheus.Labels{"node": m.identity, "command": command}).Inc()
}

func (m *NodePrometheusManager) initMetrics() error {
	m.RunnerStatusGaugeVec = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "ml_node",
		Name:      "runner_status",
		Help:      "Current runner status (0=initializing, 1=running, 2=succeeded, 3=failed)",
	}, []string{"node"})
	m.IdleSecondsGaugeVec = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "ml_node",
		Name:      "idle_seconds",
		Help:      "How long the node has been idle with no runner executing",
	}, []string{"node"})
	m.CommandsReceivedCounterVec = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ml_node",
		Name:      "commands_received_total",
		Help:      "Steering commands received from the application master",
	}, []string{"node", "command"})
	m.RunnerSubmissionsCounterVec = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ml_node",
		Name:      "runner_submissions_total",
		Help:      "Total number of runners ever submitted on this node",
	}, []string{"node"})
	m.RunnerRestartsCounterVec = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ml_node",
		Name:      "runner_restarts_total",
		Help:      "Runner restarts requested by the application master",
	}, []string{"node"})

	if err := prometheus.Register(m.RunnerStatusGaugeVec); err != nil {
		m.log.Error("Failed to register Runner Status metric because: %v", err)
		return err
	}
	if err := prometheus.Register(m.IdleSecondsGaugeVec); err != nil {
		m.log.Error("Failed to register Idle Seconds metric because: %v", err)
		return err
	}
	if err := prometheus.Register(m.CommandsReceivedCounterVec); err != nil {
		m.log.Error("Failed to register Commands Received metric because: %v", err)
		return err
	}
	if err := prometheus.Register(m.RunnerSubmissionsCounterVec); err != nil {
		m.log.Error("Failed to register Runner Submissions metric because: %v", err)
		return err
	}
	if err := prometheus.Register(m.RunnerRestartsCounterVec); err != nil {
		m.log.Error("Failed to register Runner Restarts metric because: %v", err)
		return err
	}

	// We publish these metrics with the same label every single time on this
	// node, so we can just cache the Gauge returned by <GaugeVec>.With(...).
	m.RunnerStatusGauge = m.RunnerStatusGaugeVec.With(prometheus.Labels{"node": m.identity})
	m.IdleSecondsGauge = m.IdleSecondsGaugeVec.With(prometheus.Labels{"node": m.identity})
	m.RunnerSubmissionsCounter = m.RunnerSubmissionsCounterVec.With(prometheus.Labels{"node": m.identity})
	m.RunnerRestartsCounter = m.RunnerRestartsCounterVec.With(prometheus.Labels{"node": m.identity})

	m.metricsInitialized = true
	return nil
}

func (m *NodePrometheusManager) HandleRequest(c *gin.Context) {
	m.prometheusHandler.ServeHTTP(c.Writer, c.Request)
}

func (m *NodePrometheusManager) initializeHttpServer() {
	m.engine = gin.New()

	m.engine.Use(gin.Logger())
	m.engine.Use(cors.Default())

	m.engine.GET("/prometheus", m.HandleRequest)

	address := fmt.Sprintf("0.0.0.0:%d", m.port)
	m.httpServer = &http.Server{
		Addr:    address,
		Handler: m.engine,
	}

	go func() {
		m.log.Debug("Serving Prometheus metrics at %s", address)
		if err := m.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.log.Error(utils.RedStyle.Render("HTTP Server failed to listen on '%s'. Error: %v"), address, err)
		}
	}()
}
