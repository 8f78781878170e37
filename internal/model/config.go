package model

import "runtime"

// Config holds the settings of one population run.
type Config struct {
	Workers       int    `yaml:"workers" json:"workers"`               // record-processing workers
	Correction    bool   `yaml:"correction" json:"correction"`         // named-individual correction pre-pass
	TransformPath string `yaml:"transform" json:"transform,omitempty"` // transformation config YAML ("" = baseline chain)
	Output        Output `yaml:"output" json:"output"`
}

// Output configures the run artifacts.
type Output struct {
	Ontology string `yaml:"ontology" json:"ontology"` // regenerated ontology document
	Skipped  string `yaml:"skipped" json:"skipped"`   // skip report
	Report   string `yaml:"report" json:"report,omitempty"`
	Verbose  bool   `yaml:"verbose" json:"-"`
}

// DefaultConfig returns the built-in defaults. Output names match the
// historical ones, written relative to the working directory.
func DefaultConfig() *Config {
	return &Config{
		Workers:    runtime.NumCPU(),
		Correction: false,
		Output: Output{
			Ontology: "generated.owl",
			Skipped:  "skipped.txt",
		},
	}
}
