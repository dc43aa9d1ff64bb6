package logsource

import (
	"context"
	"fmt"
	"os"
)

// DefaultFileBuffer is the default channel buffer size for file lines.
const DefaultFileBuffer = 50_000

// FileConfig holds tunable parameters for the file source.
type FileConfig struct {
	BufferSize  int
	MaxLineSize int
}

// FileSource reads log lines from a file on disk.
type FileSource struct {
	path   string
	ch     chan Envelope
	cancel context.CancelFunc
}

// NewFileSource creates a FileSource that reads path in a background goroutine.
// It returns an error when the file cannot be opened, so a bad path is
// reported before the pipeline starts.
func NewFileSource(ctx context.Context, path string, conf ...FileConfig) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("logsource: open %s: %w", path, err)
	}

	bufferSize := DefaultFileBuffer
	maxLineSize := DefaultMaxLineSize
	if len(conf) > 0 {
		if conf[0].BufferSize > 0 {
			bufferSize = conf[0].BufferSize
		}
		if conf[0].MaxLineSize > 0 {
			maxLineSize = conf[0].MaxLineSize
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &FileSource{
		path:   path,
		ch:     make(chan Envelope, bufferSize),
		cancel: cancel,
	}
	go s.read(ctx, f, maxLineSize)
	return s, nil
}

func (s *FileSource) read(ctx context.Context, f *os.File, maxLineSize int) {
	defer close(s.ch)
	defer f.Close()
	scanLines(ctx, f, s.Name(), s.ch, maxLineSize)
}

func (s *FileSource) Lines() <-chan Envelope { return s.ch }
func (s *FileSource) Stop()                  { s.cancel() }
func (s *FileSource) Name() string           { return "file" }
