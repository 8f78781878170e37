// Package populate implements the record-to-entity population engine: it
// reads the category header, streams instance records through a worker
// pool, and commits the resulting statements to the graph model in one
// bulk batch per category.
package populate

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/kturhan/ontofill/internal/cache"
	"github.com/kturhan/ontofill/internal/csvline"
	"github.com/kturhan/ontofill/internal/graph"
	"github.com/kturhan/ontofill/internal/normalize"
	"github.com/kturhan/ontofill/internal/vocab"
	"github.com/kturhan/ontofill/internal/worker"
)

// maxLineBytes bounds a single record line.
const maxLineBytes = 1 << 20

// Graph is the slice of the graph model the engine needs. Class lookups
// run concurrently from workers; mutation happens only through AddAll,
// which the engine calls single-threaded.
type Graph interface {
	NamespacePrefix() string
	Class(iri string) (string, bool)
	AddAll(sts []graph.Statement)
}

// Config carries the per-run inputs of the engine, assembled by the
// caller and passed by value.
type Config struct {
	CategoriesPath string
	InstancesPath  string
	SkippedPath    string
	Workers        int
}

// Result reports what a run inserted and rejected.
type Result struct {
	Categories int
	Records    int
	Inserted   int
	Skipped    int
	PerClass   map[string]int
}

// Engine populates a graph model from one CSV file pair.
type Engine struct {
	cfg        Config
	graph      Graph
	normalizer *normalize.Normalizer
	categories cache.Cache
	ns         string
}

// NewEngine wires an engine against a loaded graph model.
func NewEngine(cfg Config, g Graph, n *normalize.Normalizer) *Engine {
	return &Engine{
		cfg:        cfg,
		graph:      g,
		normalizer: n,
		categories: cache.NewMemoryCache(),
		ns:         g.NamespacePrefix(),
	}
}

// recordResult is what one record job hands back to the merge step.
type recordResult struct {
	index    int
	skipped  bool
	line     string                       // raw line, only set when skipped
	labels   int                          // label statements in pending
	pending  map[string][]graph.Statement // statements per class IRI
}

// Run processes the categories and instances files and commits the
// generated statements. Per-record anomalies are skipped or logged, never
// errors; the returned error covers only setup and I/O failures.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	categories, err := e.readCategories()
	if err != nil {
		return nil, err
	}

	skipLog, err := NewSkipLog(e.cfg.SkippedPath)
	if err != nil {
		return nil, err
	}
	defer skipLog.Close()

	instances, err := os.Open(e.cfg.InstancesPath)
	if err != nil {
		return nil, fmt.Errorf("read instances file %s: %w", e.cfg.InstancesPath, err)
	}
	defer instances.Close()

	pool := worker.NewPool[recordResult](e.cfg.Workers)
	pool.Start()

	records := 0
	scanner := bufio.NewScanner(instances)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := scanner.Text()
		index := records
		records++
		pool.Submit(func(ctx context.Context) recordResult {
			return e.processRecord(index, line, categories)
		})
	}
	if err := scanner.Err(); err != nil {
		pool.Shutdown()
		return nil, fmt.Errorf("read instances file %s: %w", e.cfg.InstancesPath, err)
	}

	results := pool.Wait()

	merged, err := e.merge(results, skipLog)
	if err != nil {
		return nil, err
	}
	merged.Categories = len(categories)
	merged.Records = records

	if err := skipLog.Close(); err != nil {
		return nil, fmt.Errorf("write skip report %s: %w", e.cfg.SkippedPath, err)
	}
	return merged, nil
}

// readCategories builds the category list from the first non-blank line
// of the categories file. An empty file yields an empty list, which
// rejects every record.
func (e *Engine) readCategories() ([]string, error) {
	f, err := os.Open(e.cfg.CategoriesPath)
	if err != nil {
		return nil, fmt.Errorf("read categories file %s: %w", e.cfg.CategoriesPath, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		return csvline.Split(line), nil
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read categories file %s: %w", e.cfg.CategoriesPath, err)
	}
	return nil, nil
}

// processRecord converts one raw line into pending statements. It only
// reads shared state; every mutation target is local to the result.
func (e *Engine) processRecord(index int, line string, categories []string) recordResult {
	fields := csvline.Split(line)
	if len(fields) > len(categories) {
		return recordResult{index: index, skipped: true, line: line}
	}

	res := recordResult{index: index, pending: make(map[string][]graph.Statement)}
	for i, field := range fields {
		raw := strings.TrimSpace(csvline.Unescape(field))
		if raw == "" {
			continue
		}
		name := e.normalizer.Normalize(raw)
		if strings.TrimSpace(name) == "" {
			continue
		}
		classIRI, ok := e.resolveCategory(categories[i])
		if !ok {
			continue
		}
		subject := e.ns + name
		res.pending[classIRI] = append(res.pending[classIRI],
			graph.Statement{Subject: subject, Predicate: vocab.RDFType, Object: classIRI},
			graph.Statement{Subject: subject, Predicate: vocab.RDFType, Object: vocab.OWLNamedIndividual},
			graph.Statement{Subject: subject, Predicate: vocab.RDFSLabel, Object: raw, Literal: true},
		)
		res.labels++
	}
	return res
}

// resolveCategory maps a raw header token to a class IRI present in the
// graph. Lookups are memoized, including misses, since every record pays
// the same resolutions.
func (e *Engine) resolveCategory(token string) (string, bool) {
	if iri, found := e.categories.Get(token); found {
		return iri, iri != ""
	}
	name := strings.TrimSpace(csvline.Unescape(token))
	resolved := ""
	if name != "" {
		if iri, ok := e.graph.Class(e.ns + name); ok {
			resolved = iri
		}
	}
	e.categories.Set(token, resolved)
	return resolved, resolved != ""
}

// merge folds the per-record partitions together: skips are written in
// input order, statements are grouped per class and committed with one
// bulk call per class.
func (e *Engine) merge(results []recordResult, skipLog *SkipLog) (*Result, error) {
	sort.Slice(results, func(i, j int) bool { return results[i].index < results[j].index })

	byClass := make(map[string][]graph.Statement)
	out := &Result{PerClass: make(map[string]int)}

	for _, res := range results {
		if res.skipped {
			if err := skipLog.Append(res.line); err != nil {
				return nil, fmt.Errorf("write skip report %s: %w", e.cfg.SkippedPath, err)
			}
			out.Skipped++
			continue
		}
		for classIRI, sts := range res.pending {
			byClass[classIRI] = append(byClass[classIRI], sts...)
		}
		out.Inserted += res.labels
	}

	classes := make([]string, 0, len(byClass))
	for classIRI := range byClass {
		classes = append(classes, classIRI)
	}
	sort.Strings(classes)
	for _, classIRI := range classes {
		e.graph.AddAll(byClass[classIRI])
		labels := 0
		for _, st := range byClass[classIRI] {
			if st.Predicate == vocab.RDFSLabel {
				labels++
			}
		}
		out.PerClass[vocab.Local(classIRI)] = labels
	}
	return out, nil
}
