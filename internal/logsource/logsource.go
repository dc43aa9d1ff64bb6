package logsource

// Envelope is one raw log line tagged with the source that produced it.
type Envelope struct {
	Source string
	Line   string
}

// LogSource is a unified interface for all log input sources (file, stdin).
type LogSource interface {
	Lines() <-chan Envelope // read-only channel of log lines
	Stop()                  // graceful shutdown
	Name() string           // "file", "stdin"
}
