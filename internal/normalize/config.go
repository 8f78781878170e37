package normalize

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// configFile is the YAML shape of a transformation config document:
//
//	trim: true
//	casing: upper
//	transformations:
//	  - pattern: "[\")(]+"
//	    replacement: ""
type configFile struct {
	Trim            bool   `yaml:"trim"`
	Casing          string `yaml:"casing"`
	Transformations []struct {
		Pattern     string `yaml:"pattern"`
		Replacement string `yaml:"replacement"`
	} `yaml:"transformations"`
}

// LoadConfig reads and validates a transformation config. Patterns are
// compiled once here; the returned Config is immutable from the caller's
// point of view.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transformation config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig builds a Config from raw YAML.
func ParseConfig(data []byte) (*Config, error) {
	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid transformation config: %w", err)
	}

	casing, err := parseCasing(file.Casing)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Trim:   file.Trim,
		Casing: casing,
	}
	for i, t := range file.Transformations {
		re, err := regexp.Compile(t.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid transformation config: rule %d: %w", i, err)
		}
		cfg.Rules = append(cfg.Rules, Rule{Pattern: re, Replacement: t.Replacement})
	}
	return cfg, nil
}

func parseCasing(s string) (Casing, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return CasingNone, nil
	case "upper":
		return CasingUpper, nil
	case "lower":
		return CasingLower, nil
	default:
		return CasingNone, fmt.Errorf("invalid transformation config: unknown casing %q", s)
	}
}
