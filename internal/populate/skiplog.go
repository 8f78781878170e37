package populate

import (
	"bufio"
	"fmt"
	"os"
	"sync"
)

// SkipLog is the append-only report of rejected records. Lines are
// written whole under a lock, so concurrent writers can never interleave
// partial lines. The file is created at run start and overwrites any
// previous report.
type SkipLog struct {
	mu     sync.Mutex
	file   *os.File
	w      *bufio.Writer
	count  int
	closed bool
}

// NewSkipLog creates (or truncates) the report at path.
func NewSkipLog(path string) (*SkipLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create skip report %s: %w", path, err)
	}
	return &SkipLog{file: f, w: bufio.NewWriter(f)}, nil
}

// Append writes one rejected raw line.
func (l *SkipLog) Append(line string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, err := l.w.WriteString(line); err != nil {
		return err
	}
	if err := l.w.WriteByte('\n'); err != nil {
		return err
	}
	l.count++
	return nil
}

// Count returns the number of lines written so far.
func (l *SkipLog) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Close flushes and releases the report file. Closing an already closed
// log is a no-op, so an error-path defer may overlap an explicit close.
func (l *SkipLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	if err := l.w.Flush(); err != nil {
		l.file.Close()
		return err
	}
	return l.file.Close()
}
