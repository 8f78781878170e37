package csvline

import (
	"strings"
	"sync"
	"testing"
)

func TestEvaluate_Empty(t *testing.T) {
	cases := []string{"", "   ", "\t  \t"}
	for _, in := range cases {
		if got := Evaluate(in); got != "" {
			t.Errorf("Evaluate(%q) = %q, want empty", in, got)
		}
	}
}

func TestEvaluate_NoQuotes(t *testing.T) {
	if got := Evaluate(" a line   "); got != "a line" {
		t.Errorf("expected trimmed line, got %q", got)
	}
	if got := Evaluate("a,b,c"); got != "a,b,c" {
		t.Errorf("unquoted commas must pass through, got %q", got)
	}
}

func TestEvaluate_QuotedSpans(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`"a",b`, "a,b"},
		{`"a",",b`, "a,,b"},
		{`"a",","`, "a,~"},
		{`"1" "2,3" "4,5" "6,7,8,9"`, "1 2~3 4~5 6~7,8,9"},
	}
	for _, c := range cases {
		if got := Evaluate(c.in); got != c.want {
			t.Errorf("Evaluate(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestEvaluate_OnlyQuotes(t *testing.T) {
	if got := Evaluate(`""""`); got != "" {
		t.Errorf("a line of quotes must collapse to empty, got %q", got)
	}
}

func TestEvaluate_TrailingContentAfterLastSpan(t *testing.T) {
	if got := Evaluate(`"x,y" rest,z`); got != "x~y rest,z" {
		t.Errorf("trailing content must be preserved, got %q", got)
	}
}

func TestSplit(t *testing.T) {
	fields := Split(`"a,b",c,"d"`)
	want := []string{"a~b", "c", "d"}
	if len(fields) != len(want) {
		t.Fatalf("expected %d fields, got %d (%v)", len(want), len(fields), fields)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("field %d = %q, want %q", i, fields[i], want[i])
		}
	}

	// A blank line splits like the empty string: one empty field.
	if fields := Split("   "); len(fields) != 1 || fields[0] != "" {
		t.Errorf("blank line should yield a single empty field, got %v", fields)
	}
}

func TestUnescape(t *testing.T) {
	if got := Unescape("a~b~c"); got != "a,b,c" {
		t.Errorf("Unescape = %q, want a,b,c", got)
	}
	if got := Unescape("plain"); got != "plain" {
		t.Errorf("Unescape must not touch plain values, got %q", got)
	}
}

func TestEvaluate_Concurrent(t *testing.T) {
	const line = `"first,second",third,"fourth,fifth"`
	want := Evaluate(line)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := Evaluate(line); got != want {
				t.Errorf("concurrent Evaluate diverged: %q != %q", got, want)
			}
		}()
	}
	wg.Wait()

	if strings.Count(want, string(Placeholder)) != 2 {
		t.Errorf("expected two protected commas in %q", want)
	}
}
