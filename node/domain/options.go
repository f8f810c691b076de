package domain

import (
	"encoding/json"
	"strings"

	"github.com/Scusemua/go-utils/config"
)

// NodeOptions is the full configuration surface of the per-node supervisor.
type NodeOptions struct {
	config.LoggerOptions `yaml:",inline" json:"logger_options"`

	JobName        string `name:"job_name" description:"Name of the training job this worker belongs to." yaml:"job_name" json:"job_name"`
	WorkDir        string `name:"work_dir" description:"Working directory for the runner process." yaml:"work_dir" json:"work_dir"`
	CodeZipFile    string `name:"code_zip_file" description:"Location of the user code archive (local path, s3:// or hdfs:// URL)." yaml:"code_zip_file" json:"code_zip_file"`
	EntryScript    string `name:"entry_script" description:"User entry python file executed by the runner." yaml:"entry_script" json:"entry_script"`
	PythonExec     string `name:"python_exec" description:"Python interpreter used to launch the training process." yaml:"python_exec" json:"python_exec"`
	ConsulAddr     string `name:"consul" description:"Consul agent address." yaml:"consul" json:"consul"`
	TaskIndex      int    `name:"task_index" description:"Index of this worker within the job." yaml:"task_index" json:"task_index"`
	IdleTimeoutMs  int    `name:"idle_timeout_ms" description:"How long a runner may sit idle after exiting without success before the node fails itself, in milliseconds." yaml:"idle_timeout_ms" json:"idle_timeout_ms"`
	PrometheusPort int    `name:"prometheus_port" description:"Port on which the node serves Prometheus metrics. Disabled when <= 0." yaml:"prometheus_port" json:"prometheus_port"`
}

func (o *NodeOptions) Validate() error {
	if o.PythonExec == "" {
		o.PythonExec = DefaultPythonExec
	}

	if o.IdleTimeoutMs <= 0 {
		o.IdleTimeoutMs = int(DefaultIdleTimeout.Milliseconds())
	}

	return nil
}

// PrettyString is the same as String, except that PrettyString calls json.MarshalIndent instead of json.Marshal.
func (o *NodeOptions) PrettyString(indentSize int) string {
	indentBuilder := strings.Builder{}
	for i := 0; i < indentSize; i++ {
		indentBuilder.WriteString(" ")
	}

	m, err := json.MarshalIndent(o, "", indentBuilder.String())
	if err != nil {
		panic(err)
	}

	return string(m)
}

func (o *NodeOptions) String() string {
	m, err := json.Marshal(o)
	if err != nil {
		panic(err)
	}

	return string(m)
}
