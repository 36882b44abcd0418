package playlist

import "strings"

// Delimiter separates fields in a source line.
const Delimiter byte = ','

// ParseLine splits one comma-delimited line into fields.
// See ParseLineDelim.
func ParseLine(line string) []string {
	return ParseLineDelim(line, Delimiter)
}

// ParseLineDelim splits one line into fields on the single-byte delim:
//
//   - a delimiter inside double quotes does not separate fields;
//   - "" inside a quoted field is a literal quote;
//   - every field is trimmed, then one pair of wrapping quotes is stripped.
//
// An unterminated quote is not an error: the rest of the line ends up
// in the last field.
func ParseLineDelim(line string, delim byte) []string {
	var (
		fields   []string
		field    strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				field.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == delim && !inQuotes:
			fields = append(fields, unquote(field.String()))
			field.Reset()
		default:
			field.WriteByte(c)
		}
	}

	return append(fields, unquote(field.String()))
}

// unquote trims s and strips one pair of wrapping double quotes.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
