package domain

import "time"

const (
	// Property keys consumed from NodeContext.Properties. The launcher and the
	// environment-preparation step populate these; the supervisor only reads them.

	PropIdleTimeoutMs     = "node.idle.timeout.ms"
	PropRemoteCodeZipFile = "node.code.zip.file"
	PropCodeDir           = "node.code.dir"
	PropCodeDirName       = "node.code.dir.name"
	PropScriptDir         = "node.script.dir"
	PropEntryScriptFile   = "node.entry.script.file"
	PropStartupScriptFile = "node.startup.script.file"
	PropPythonExec        = "node.python.exec"

	// StartupScriptName is the bootstrap script materialized into each work dir.
	StartupScriptName = "startup.py"

	DefaultPythonExec = "python"

	// DefaultIdleTimeout bounds how long a node whose runner exited without
	// success will wait for an AM command before failing itself.
	DefaultIdleTimeout = 5 * time.Minute
)
