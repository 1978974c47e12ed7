package tabular

import (
	"errors"
	"strings"
)

// ErrNoRows is returned when no data rows could be derived from the input
// (empty feed, header-only feed, or garbled text).
var ErrNoRows = errors.New("tabular: no rows parsed")

// Row is one feed line keyed by original column header
type Row map[string]string

// Table is the parsed feed: the ordered header plus one Row per data line.
// The header order matters downstream, where fallback heuristics scan row
// values "first match wins" and must do so deterministically.
type Table struct {
	Header []string
	Rows   []Row
}

// candidate delimiters in tie-break preference order
var delimiters = []rune{';', ',', '\t', '|'}

// Parse turns raw feed text into header-keyed rows without prior knowledge of
// the delimiter dialect. The delimiter is sniffed from the first non-empty
// line, quoted spans are honored, a BOM on the header is stripped, blank
// lines are skipped, and rows with the wrong column count are padded or
// truncated to header length rather than rejected. Re-parsing the same text
// always yields the same rows in the same order.
func Parse(text string) (*Table, error) {
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, ErrNoRows
	}

	headerLine := strings.TrimPrefix(lines[0], "\ufeff")
	delim := detectDelimiter(headerLine)
	header := parseLine(headerLine, delim)

	// Degenerate-header correction: exactly one header column whose text
	// still contains another candidate delimiter means the sniff was fooled,
	// typically by an export that wraps the whole header in quotes. Re-split
	// the header cell and re-parse the data with the delimiter found inside.
	if len(header) == 1 {
		if other, ok := delimiterInside(header[0], delim); ok {
			delim = other
			header = parseLine(header[0], other)
		}
	}

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		cols := parseLine(line, delim)
		row := make(Row, len(header))
		for i, h := range header {
			if i < len(cols) {
				row[h] = cols[i]
			} else {
				// short rows are zero-filled to header length
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return &Table{Header: header, Rows: rows}, nil
}

// splitLines splits on CRLF/LF and drops blank lines
func splitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// detectDelimiter counts candidate delimiters outside quoted spans on the
// header line and picks the most frequent one. Ties keep the earlier entry
// of the preference order.
func detectDelimiter(line string) rune {
	best := delimiters[0]
	bestCount := 0
	for _, d := range delimiters {
		if n := countOutsideQuotes(line, d); n > bestCount {
			best = d
			bestCount = n
		}
	}
	return best
}

func countOutsideQuotes(line string, delim rune) int {
	count := 0
	inQuotes := false
	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
		case ch == delim && !inQuotes:
			count++
		}
	}
	return count
}

// delimiterInside reports the first other candidate delimiter occurring in
// the given header cell.
func delimiterInside(cell string, current rune) (rune, bool) {
	for _, d := range delimiters {
		if d != current && strings.ContainsRune(cell, d) {
			return d, true
		}
	}
	return 0, false
}

// parseLine splits a single line on the delimiter, honoring quoted spans.
// An embedded quote is represented as a doubled "".
func parseLine(line string, delim rune) []string {
	var out []string
	var cur strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if ch == '"' {
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				cur.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
			continue
		}

		if ch == delim && !inQuotes {
			out = append(out, strings.TrimSpace(cur.String()))
			cur.Reset()
			continue
		}

		cur.WriteRune(ch)
	}

	out = append(out, strings.TrimSpace(cur.String()))
	return out
}
