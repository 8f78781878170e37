// Package normalize turns raw CSV field values into identifiers that are
// safe to append to an ontology namespace. Without configuration it applies
// a fixed baseline chain; with a transformation config the chain is fully
// caller-defined.
package normalize

import (
	"regexp"
	"strings"
)

// Casing is the case directive of a transformation config, decided at
// parse time.
type Casing int

const (
	CasingNone Casing = iota
	CasingUpper
	CasingLower
)

// Rule is a single pattern -> replacement substitution, applied globally
// over the whole value.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// Config is an immutable transformation pipeline: trim, then casing, then
// each rule in declaration order.
type Config struct {
	Trim   bool
	Casing Casing
	Rules  []Rule
}

// Normalizer derives identifiers from raw values. A nil config selects the
// baseline chain. The zero value normalizes with the baseline chain and no
// anchor stripping.
type Normalizer struct {
	config       *Config
	stripAnchors bool
}

// New returns a Normalizer for the given namespace prefix. When the prefix
// ends with the fragment separator '#', literal '#' runs are removed from
// values before anything else, so generated identifiers cannot introduce a
// second fragment.
func New(nsPrefix string, config *Config) *Normalizer {
	return &Normalizer{
		config:       config,
		stripAnchors: strings.HasSuffix(nsPrefix, "#"),
	}
}

var (
	anchorRuns = regexp.MustCompile(`#+`)

	// Baseline chain, matching the historical defaults.
	strippedChars = regexp.MustCompile(`["\)]+`)
	punctRuns     = regexp.MustCompile(`\s*[/\-.,'(=]+\s*`)
	ampersandRuns = regexp.MustCompile(`\s*&+\s*`)
	spaceRuns     = regexp.MustCompile(`\s+`)
)

// Normalize sanitizes a raw value. An empty result means the caller must
// drop the field. Pure function of value and configuration.
func (n *Normalizer) Normalize(value string) string {
	if n.stripAnchors {
		value = anchorRuns.ReplaceAllString(value, "")
	}
	if n.config == nil {
		return baseline(value)
	}
	return n.config.apply(value)
}

// baseline is the fixed chain used when no configuration is supplied:
// trim, lowercase, strip '"' and ')', collapse separator runs to '_',
// collapse '&' runs to '_and_', collapse remaining whitespace to '_'.
func baseline(value string) string {
	v := strings.TrimSpace(value)
	v = strings.ToLower(v)
	v = strippedChars.ReplaceAllString(v, "")
	v = punctRuns.ReplaceAllString(v, "_")
	v = ampersandRuns.ReplaceAllString(v, "_and_")
	v = spaceRuns.ReplaceAllString(v, "_")
	return v
}

func (c *Config) apply(value string) string {
	if c.Trim {
		value = strings.TrimSpace(value)
	}
	switch c.Casing {
	case CasingUpper:
		value = strings.ToUpper(value)
	case CasingLower:
		value = strings.ToLower(value)
	}
	for _, rule := range c.Rules {
		value = rule.Pattern.ReplaceAllString(value, rule.Replacement)
	}
	return value
}
