package model

import (
	"time"

	"github.com/google/uuid"
)

// Report summarizes one population run.
type Report struct {
	RunID      string         `json:"run_id"`
	Dir        string         `json:"dir"`                  // scanned input directory
	Ontology   string         `json:"ontology"`             // loaded ontology path
	StartedAt  time.Time      `json:"started_at"`
	Duration   time.Duration  `json:"duration_ns"`
	Categories int            `json:"categories"`           // header column count
	Records    int            `json:"records"`              // body lines processed
	Inserted   int            `json:"inserted"`             // label facts committed
	Skipped    int            `json:"skipped"`              // rejected records
	Corrected  int            `json:"corrected,omitempty"`  // individuals re-typed by the pre-pass
	PerClass   map[string]int `json:"per_class,omitempty"`  // inserts per category local name
}

// NewReport starts a report for a run over the given directory.
func NewReport(dir string) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Dir:       dir,
		StartedAt: time.Now().UTC(),
		PerClass:  make(map[string]int),
	}
}
