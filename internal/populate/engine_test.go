package populate

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kturhan/ontofill/internal/graph"
	"github.com/kturhan/ontofill/internal/normalize"
	"github.com/kturhan/ontofill/internal/vocab"
)

const ns = "http://example.org/onto#"

func testGraph(classes ...string) *graph.Model {
	m := graph.NewModel(ns)
	for _, c := range classes {
		m.Add(graph.Statement{Subject: ns + c, Predicate: vocab.RDFType, Object: vocab.OWLClass})
	}
	return m
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func runEngine(t *testing.T, m *graph.Model, categories, instances string, workers int) (*Result, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := Config{
		CategoriesPath: writeFile(t, dir, "classes.csv", categories),
		InstancesPath:  writeFile(t, dir, "instances.csv", instances),
		SkippedPath:    filepath.Join(dir, "skipped.txt"),
		Workers:        workers,
	}
	e := NewEngine(cfg, m, normalize.New(m.NamespacePrefix(), nil))
	res, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	data, err := os.ReadFile(cfg.SkippedPath)
	if err != nil {
		t.Fatalf("read skip report: %v", err)
	}
	return res, string(data)
}

func TestEngine_EndToEnd(t *testing.T) {
	m := testGraph("A", "B", "C")

	instances := strings.Join([]string{
		"a1,b1,c1",
		"a2,b2",
		"a3,,c3",
		"x1,x2,x3,x4", // over-long: rejected whole
	}, "\n") + "\n"

	res, skipped := runEngine(t, m, "A,B,C\n", instances, 4)

	// 3 + 2 + 2 surviving fields.
	if res.Inserted != 7 {
		t.Errorf("inserted = %d, want 7", res.Inserted)
	}
	if res.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", res.Skipped)
	}
	if res.Categories != 3 || res.Records != 4 {
		t.Errorf("categories/records = %d/%d, want 3/4", res.Categories, res.Records)
	}
	if skipped != "x1,x2,x3,x4\n" {
		t.Errorf("skip report = %q, want the raw over-long line", skipped)
	}
	if res.PerClass["A"] != 3 || res.PerClass["B"] != 2 || res.PerClass["C"] != 2 {
		t.Errorf("per-class counts = %v", res.PerClass)
	}

	// Every insert carries class typing, the named-individual marker and
	// a label holding the original value.
	if !m.Has(graph.Statement{Subject: ns + "a2", Predicate: vocab.RDFType, Object: ns + "A"}) {
		t.Error("missing class typing for a2")
	}
	if !m.Has(graph.Statement{Subject: ns + "a2", Predicate: vocab.RDFType, Object: vocab.OWLNamedIndividual}) {
		t.Error("missing named-individual marker for a2")
	}
	if !m.Has(graph.Statement{Subject: ns + "a2", Predicate: vocab.RDFSLabel, Object: "a2", Literal: true}) {
		t.Error("missing label for a2")
	}
}

func TestEngine_QuotedCommasSurvive(t *testing.T) {
	m := testGraph("Dish", "Region")

	res, skipped := runEngine(t, m, "Dish,Region\n", "\"laksa, spicy\",penang\n", 2)

	if res.Inserted != 2 {
		t.Fatalf("inserted = %d, want 2 (quoted comma must not split the field)", res.Inserted)
	}
	if skipped != "" {
		t.Errorf("no record should be skipped, got %q", skipped)
	}

	// The label keeps the original comma; the identifier never does.
	if !m.Has(graph.Statement{Subject: ns + "laksa_spicy", Predicate: vocab.RDFSLabel, Object: "laksa, spicy", Literal: true}) {
		t.Errorf("expected de-escaped label with comma, model: %v", m.Statements())
	}
}

func TestEngine_QuotedCategoryHeader(t *testing.T) {
	m := graph.NewModel(ns)
	// The header token carries a protected comma; category resolution must
	// reverse it before the graph lookup.
	m.Add(graph.Statement{Subject: ns + "X,Y", Predicate: vocab.RDFType, Object: vocab.OWLClass})

	res, _ := runEngine(t, m, "\"X,Y\"\n", "value\n", 1)
	if res.Inserted != 1 {
		t.Errorf("inserted = %d, want 1 (header placeholder must be reversed)", res.Inserted)
	}
}

func TestEngine_UnknownCategorySilentlySkipsField(t *testing.T) {
	m := testGraph("Known")

	res, skipped := runEngine(t, m, "Known,Unknown\n", "a,b\n", 2)
	if res.Inserted != 1 {
		t.Errorf("inserted = %d, want 1 (unknown category drops its field only)", res.Inserted)
	}
	if skipped != "" {
		t.Errorf("unknown category is not a record rejection, got %q", skipped)
	}
}

func TestEngine_EmptyAndUnnormalizableFieldsDropped(t *testing.T) {
	m := testGraph("A", "B")

	// Second field normalizes to nothing under the baseline chain.
	res, _ := runEngine(t, m, "A,B\n", "ok,)\n", 2)
	if res.Inserted != 1 {
		t.Errorf("inserted = %d, want 1", res.Inserted)
	}
}

func TestEngine_EmptyCategoriesFileRejectsEverything(t *testing.T) {
	m := testGraph("A")

	res, skipped := runEngine(t, m, "\n   \n", "a\nb\n", 2)
	if res.Inserted != 0 {
		t.Errorf("inserted = %d, want 0", res.Inserted)
	}
	if res.Skipped != 2 {
		t.Errorf("skipped = %d, want 2", res.Skipped)
	}
	if skipped != "a\nb\n" {
		t.Errorf("skip report = %q", skipped)
	}
}

func TestEngine_SkipOrderMatchesInputOrder(t *testing.T) {
	m := testGraph("A")

	var lines []string
	for i := 0; i < 50; i++ {
		// Every other record is over-long.
		if i%2 == 0 {
			lines = append(lines, "x,y")
		} else {
			lines = append(lines, "ok")
		}
	}
	_, skipped := runEngine(t, m, "A\n", strings.Join(lines, "\n")+"\n", 8)

	got := strings.Split(strings.TrimSuffix(skipped, "\n"), "\n")
	if len(got) != 25 {
		t.Fatalf("expected 25 skipped lines, got %d", len(got))
	}
	for _, line := range got {
		if line != "x,y" {
			t.Errorf("unexpected skip line %q", line)
		}
	}
}

func TestEngine_SkipReportCreatedWhenEmpty(t *testing.T) {
	m := testGraph("A")
	_, skipped := runEngine(t, m, "A\n", "a\n", 1)
	if skipped != "" {
		t.Errorf("expected empty skip report, got %q", skipped)
	}
}

func TestEngine_MissingInstancesFile(t *testing.T) {
	dir := t.TempDir()
	m := testGraph("A")
	cfg := Config{
		CategoriesPath: writeFile(t, dir, "classes.csv", "A\n"),
		InstancesPath:  filepath.Join(dir, "missing.csv"),
		SkippedPath:    filepath.Join(dir, "skipped.txt"),
		Workers:        1,
	}
	e := NewEngine(cfg, m, normalize.New(ns, nil))
	if _, err := e.Run(context.Background()); err == nil {
		t.Error("expected error for missing instances file")
	}
}
