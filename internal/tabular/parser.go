package tabular

import "strings"

// DefaultDelimiter separates fields when the caller does not configure one.
const DefaultDelimiter = ','

// Row maps a header name to the trimmed field value of one data line.
type Row map[string]string

// Parse splits comma-delimited text into rows keyed by the header line.
func Parse(text string) []Row {
	return ParseWithDelimiter(text, DefaultDelimiter)
}

// ParseWithDelimiter splits delimited text into rows keyed by the header line.
//
// Lines are split on '\n' only; quoted fields cannot span lines. Fields the
// line does not supply are recorded as empty strings. Text without a header
// line yields no rows rather than an error.
func ParseWithDelimiter(text string, delim rune) []Row {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	headers := ParseLine(lines[0], delim)
	for i, h := range headers {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := ParseLine(line, delim)
		rows = append(rows, buildRow(headers, values))
	}
	return rows
}

// ParseLine tokenizes a single line, honouring double-quoted fields.
// A doubled quote inside a quoted field yields one literal quote.
func ParseLine(line string, delim rune) []string {
	var values []string
	var current strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"' && !inQuotes:
			inQuotes = true
		case c == '"' && inQuotes && i+1 < len(runes) && runes[i+1] == '"':
			current.WriteRune('"')
			i++
		case c == '"' && inQuotes:
			inQuotes = false
		case c == delim && !inQuotes:
			values = append(values, current.String())
			current.Reset()
		default:
			current.WriteRune(c)
		}
	}

	return append(values, current.String())
}

func buildRow(headers, values []string) Row {
	row := make(Row, len(headers))
	for i, h := range headers {
		v := ""
		if i < len(values) {
			v = CleanValue(values[i])
		}
		row[h] = v
	}
	return row
}

// CleanValue trims whitespace and strips one leading and one trailing quote
// character (either ' or ").
func CleanValue(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && (v[0] == '"' || v[0] == '\'') {
		v = v[1:]
	}
	if v != "" && (v[len(v)-1] == '"' || v[len(v)-1] == '\'') {
		v = v[:len(v)-1]
	}
	return v
}
