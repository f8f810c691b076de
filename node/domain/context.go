package domain

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dataflow-dl/mlnode/common/queue"
)

// NodeContext carries one worker's identity, configuration, and runtime state.
// It is created by the cluster launcher before the supervisor starts and lives
// for the supervisor's whole lifetime.
//
// Properties is mutated by the environment-preparation step before the control
// loop starts; afterwards it is read-only, so no locking is required post-start.
type NodeContext struct {
	JobName string
	Index   int

	Properties map[string]string

	// Filesystem locations resolved during environment preparation.
	WorkDir     string
	PythonDir   string
	PythonFiles []string

	// InputQueue is the optional shared record queue handed to the runner.
	// The supervisor never produces or consumes it; it only marks it finished
	// during cleanup.
	InputQueue *queue.Finishable[[]byte]
}

// NewNodeContext creates a context for the worker with the given identity.
func NewNodeContext(jobName string, index int, workDir string) *NodeContext {
	return &NodeContext{
		JobName:    jobName,
		Index:      index,
		WorkDir:    workDir,
		Properties: make(map[string]string),
	}
}

// Identity returns the stable label of this worker: job name plus task index.
func (c *NodeContext) Identity() string {
	return fmt.Sprintf("%s:%d", c.JobName, c.Index)
}

// Property returns the named property, or def if it is unset.
func (c *NodeContext) Property(key string, def string) string {
	if val, ok := c.Properties[key]; ok && val != "" {
		return val
	}

	return def
}

// IdleTimeout returns the configured idle timeout for this node. Values are
// carried as milliseconds in the properties map. Malformed or missing values
// fall back to DefaultIdleTimeout.
func (c *NodeContext) IdleTimeout() time.Duration {
	raw := c.Property(PropIdleTimeoutMs, "")
	if raw == "" {
		return DefaultIdleTimeout
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || ms <= 0 {
		return DefaultIdleTimeout
	}

	return time.Duration(ms) * time.Millisecond
}
