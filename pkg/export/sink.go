package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
)

// Sink delivers a rendered export somewhere the user can pick it up.
type Sink interface {
	Deliver(ctx context.Context, filename string, content []byte) error
}

// FileSink writes exports into a directory, creating it when missing.
type FileSink struct {
	Dir string
}

func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

func (s *FileSink) Deliver(ctx context.Context, filename string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create export directory %s: %w", s.Dir, err)
	}
	path := filepath.Join(s.Dir, filename)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write export %s: %w", path, err)
	}
	log.Debugf("Wrote %d bytes to %s", len(content), path)
	return nil
}

// MemorySink keeps the last delivered export. Useful when no filesystem is available.
type MemorySink struct {
	Filename string
	Content  []byte
	// Err, when set, is returned by Deliver instead of storing anything.
	Err error
}

func (s *MemorySink) Deliver(ctx context.Context, filename string, content []byte) error {
	if s.Err != nil {
		return s.Err
	}
	s.Filename = filename
	s.Content = append([]byte(nil), content...)
	return nil
}
