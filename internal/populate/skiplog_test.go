package populate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func TestSkipLog_AppendAndCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skipped.txt")
	log, err := NewSkipLog(path)
	if err != nil {
		t.Fatalf("NewSkipLog: %v", err)
	}

	if err := log.Append("first,line"); err != nil {
		t.Fatal(err)
	}
	if err := log.Append("second,line"); err != nil {
		t.Fatal(err)
	}
	if log.Count() != 2 {
		t.Errorf("count = %d, want 2", log.Count())
	}
	if err := log.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "first,line\nsecond,line\n" {
		t.Errorf("report = %q", string(data))
	}
}

func TestSkipLog_CloseIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skipped.txt")
	log, err := NewSkipLog(path)
	if err != nil {
		t.Fatalf("NewSkipLog: %v", err)
	}
	if err := log.Append("dropped,record"); err != nil {
		t.Fatal(err)
	}

	if err := log.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := log.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "dropped,record\n" {
		t.Errorf("report = %q", string(data))
	}
}

func TestSkipLog_TruncatesPreviousReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skipped.txt")
	if err := os.WriteFile(path, []byte("stale content\n"), 0644); err != nil {
		t.Fatal(err)
	}

	log, err := NewSkipLog(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := log.Close(); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if len(data) != 0 {
		t.Errorf("previous report must be overwritten, got %q", string(data))
	}
}

func TestSkipLog_ConcurrentAppendsStayWhole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skipped.txt")
	log, err := NewSkipLog(path)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	const writers = 16
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				if err := log.Append(fmt.Sprintf("writer-%02d,row-%02d", n, j)); err != nil {
					t.Errorf("Append: %v", err)
					return
				}
			}
		}(i)
	}
	wg.Wait()
	if err := log.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	if len(lines) != writers*25 {
		t.Fatalf("expected %d lines, got %d", writers*25, len(lines))
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "writer-") || !strings.Contains(line, ",row-") {
			t.Errorf("interleaved or torn line: %q", line)
		}
	}
}
