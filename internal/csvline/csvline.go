// Package csvline implements the quote-aware line handling used for both
// input CSV files. It is deliberately not a general CSV reader: fields may
// be wrapped in double quotes to protect embedded commas, nothing more.
//
// A protected comma is replaced with a placeholder character so the line
// survives a plain comma split; consumers reverse the substitution with
// Unescape before using a field value.
package csvline

import "strings"

// Placeholder stands in for a comma that was protected by quotes. It never
// appears in output artifacts or generated identifiers.
const Placeholder = '~'

// Evaluate resolves the quoting in a single CSV line. The empty string and
// all-whitespace lines evaluate to "". Lines without a quote character are
// returned trimmed. Otherwise quote characters are paired left to right;
// for every complete pair the first comma between them is replaced with
// Placeholder, then all quote characters are removed and the result is
// trimmed.
//
// Evaluate is a pure function and safe for concurrent use.
func Evaluate(line string) string {
	if line == "" {
		return ""
	}
	if !strings.ContainsRune(line, '"') {
		return strings.TrimSpace(line)
	}

	buf := []byte(line)

	// Pair up quote positions: even occurrence opens a span, the next one
	// closes it. An unmatched trailing quote opens no span.
	open := -1
	for i := 0; i < len(buf); i++ {
		if buf[i] != '"' {
			continue
		}
		if open < 0 {
			open = i
			continue
		}
		for j := open + 1; j < i; j++ {
			if buf[j] == ',' {
				buf[j] = Placeholder
				break
			}
		}
		open = -1
	}

	out := strings.ReplaceAll(string(buf), `"`, "")
	return strings.TrimSpace(out)
}

// Split evaluates a line and splits it on commas. Protected commas survive
// inside their fields as Placeholder bytes. A line that evaluates to ""
// yields a single empty field, matching a plain split of the empty string.
func Split(line string) []string {
	return strings.Split(Evaluate(line), ",")
}

// Unescape restores protected commas in a single field value.
func Unescape(field string) string {
	return strings.ReplaceAll(field, string(Placeholder), ",")
}
