package errorlog

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// FileSink appends entry lines to a text file, creating it on first use.
// The file is opened per append so an external rotation is picked up.
type FileSink struct {
	path string
	mu   sync.Mutex
}

// NewFileSink returns a sink appending to path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

func (s *FileSink) Name() string { return "file" }
func (s *FileSink) Path() string { return s.path }

// Append writes the entry line and a newline.
func (s *FileSink) Append(_ context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open error log: %w", err)
	}

	if _, err := fmt.Fprintln(f, e.Line()); err != nil {
		f.Close()
		return fmt.Errorf("write error log: %w", err)
	}
	return f.Close()
}
