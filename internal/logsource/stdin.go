package logsource

import (
	"bufio"
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/log"
)

const (
	// DefaultStdinBuffer is the default channel buffer size for stdin lines.
	DefaultStdinBuffer = 50_000

	// DefaultMaxLineSize is the default maximum size (in bytes) of a single line.
	DefaultMaxLineSize = 1024 * 1024 // 1MB
)

// StdinConfig holds tunable parameters for the stdin source.
type StdinConfig struct {
	BufferSize  int
	MaxLineSize int
}

// StdinSource reads log lines from stdin.
type StdinSource struct {
	ch     chan Envelope
	cancel context.CancelFunc
}

// NewStdinSource creates a StdinSource that reads from stdin in a background goroutine.
func NewStdinSource(ctx context.Context, conf ...StdinConfig) *StdinSource {
	return newStdinSourceWithReader(ctx, os.Stdin, conf...)
}

func newStdinSourceWithReader(ctx context.Context, r *os.File, conf ...StdinConfig) *StdinSource {
	bufferSize := DefaultStdinBuffer
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
	s := &StdinSource{
		ch:     make(chan Envelope, bufferSize),
		cancel: cancel,
	}
	go s.read(ctx, r, maxLineSize)
	return s
}

func (s *StdinSource) read(ctx context.Context, r *os.File, maxLineSize int) {
	defer close(s.ch)
	scanLines(ctx, r, s.Name(), s.ch, maxLineSize)
}

func (s *StdinSource) Lines() <-chan Envelope { return s.ch }
func (s *StdinSource) Stop()                  { s.cancel() }
func (s *StdinSource) Name() string           { return "stdin" }

// scanLines reads lines from r into ch until EOF or ctx cancellation.
// Empty lines are skipped; a line exceeding maxLineSize stops the source.
// The blocking scan runs in its own goroutine so cancellation closes the
// source promptly even while a read is pending.
func scanLines(ctx context.Context, r *os.File, source string, ch chan<- Envelope, maxLineSize int) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, maxLineSize)
	scanner.Buffer(buf, maxLineSize)

	lines := make(chan string)
	go func() {
		defer close(lines)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			if errors.Is(err, bufio.ErrTooLong) {
				log.Warn("line exceeded max size, stopping source", "source", source, "max_bytes", maxLineSize)
				return
			}
			log.Warn("scanner error", "source", source, "err", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			select {
			case ch <- Envelope{Source: source, Line: line}:
			case <-ctx.Done():
				return
			}
		}
	}
}
