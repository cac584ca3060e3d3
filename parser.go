package halyard

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// keyPattern matches valid variable names.
var keyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Parse reads a dotenv document from r.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("halyard: read input: %w", err)
	}
	return parseLines(splitPhysicalLines(string(data)))
}

// ParseString parses a dotenv document held in a string.
func ParseString(s string) (*Document, error) {
	return parseLines(splitPhysicalLines(s))
}

// ParseFile reads and parses the dotenv file at path.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("halyard: read %s: %w", path, err)
	}
	doc, err := parseLines(splitPhysicalLines(string(data)))
	if err != nil {
		return nil, fmt.Errorf("halyard: parse %s: %w", path, err)
	}
	return doc, nil
}

// splitPhysicalLines splits input into physical lines. CRLF endings are
// normalized to LF, so a CRLF file serializes back with LF endings.
// A trailing newline does not produce a final empty line.
func splitPhysicalLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

func parseLines(lines []string) (*Document, error) {
	doc := &Document{}

	for i := 0; i < len(lines); i++ {
		text := lines[i]
		trimmed := strings.TrimSpace(text)

		switch {
		case trimmed == "":
			doc.lines = append(doc.lines, Line{Kind: LineBlank, Raw: text})

		case strings.HasPrefix(trimmed, "#"):
			doc.lines = append(doc.lines, Line{Kind: LineComment, Raw: text})

		default:
			pair, consumed, ok, err := parsePair(lines, i)
			if err != nil {
				return nil, err
			}
			if !ok {
				doc.lines = append(doc.lines, Line{Kind: LineMalformed, Raw: text})
				continue
			}
			doc.lines = append(doc.lines, Line{
				Kind: LinePair,
				Raw:  strings.Join(lines[i:i+consumed], "\n"),
				Pair: pair,
			})
			i += consumed - 1
		}
	}

	return doc, nil
}

// parsePair parses an assignment starting at lines[start]. Quoted values may
// consume additional physical lines. It reports the number of lines used and
// whether the line was a well-formed assignment at all.
func parsePair(lines []string, start int) (Pair, int, bool, error) {
	text := lines[start]
	lineno := start + 1

	eq := strings.Index(text, "=")
	if eq < 0 {
		return Pair{}, 1, false, nil
	}

	keyPart := strings.TrimSpace(text[:eq])
	export := false
	if fields := strings.Fields(keyPart); len(fields) == 2 && fields[0] == "export" {
		export = true
		keyPart = fields[1]
	}
	if !keyPattern.MatchString(keyPart) {
		return Pair{}, 1, false, nil
	}

	pair := Pair{Key: keyPart, Export: export, Lineno: lineno}

	rest := strings.TrimLeft(text[eq+1:], " \t")
	if rest == "" {
		pair.Value = ""
		pair.Quote = QuoteNone
		return pair, 1, true, nil
	}

	switch rest[0] {
	case '\'', '"':
		quote := rest[0]
		content, remainder, consumed, found := scanQuoted(quote, rest[1:], lines, start)
		if !found {
			return Pair{}, 0, false, &ParseError{Line: lineno, Msg: fmt.Sprintf("unterminated %c-quoted value for %s", quote, keyPart)}
		}
		if quote == '\'' {
			pair.Quote = QuoteSingle
			pair.Value = decodeSingle(content)
		} else {
			pair.Quote = QuoteDouble
			pair.Value = decodeDouble(content)
		}
		pair.Inline = trailingComment(remainder)
		return pair, consumed, true, nil

	default:
		// Scan the untrimmed remainder so that whitespace before a '#'
		// still marks an inline comment ("KEY= # note" has an empty value).
		value, inline := splitInlineComment(text[eq+1:])
		pair.Quote = QuoteNone
		pair.Value = strings.TrimSpace(value)
		pair.Inline = inline
		return pair, 1, true, nil
	}
}

// scanQuoted scans a quoted value body. The opening quote has already been
// consumed from rest; lines[start] is the physical line rest came from.
// Returns the raw content between the quotes, the text after the closing
// quote, the number of physical lines consumed, and whether the closing
// quote was found.
func scanQuoted(quote byte, rest string, lines []string, start int) (content, remainder string, consumed int, found bool) {
	var b strings.Builder

	current := rest
	consumed = 1
	for {
		escaped := false
		for i := 0; i < len(current); i++ {
			ch := current[i]
			if escaped {
				b.WriteByte(ch)
				escaped = false
				continue
			}
			if ch == '\\' {
				b.WriteByte(ch)
				escaped = true
				continue
			}
			if ch == quote {
				return b.String(), current[i+1:], consumed, true
			}
			b.WriteByte(ch)
		}

		// Closing quote not on this physical line: the value continues.
		next := start + consumed
		if next >= len(lines) {
			return "", "", consumed, false
		}
		b.WriteByte('\n')
		current = lines[next]
		consumed++
	}
}

// splitInlineComment splits a bare value from a trailing inline comment.
// A '#' only starts a comment when preceded by whitespace, so values such
// as "value#with#hashes" survive intact.
func splitInlineComment(s string) (value, inline string) {
	for i := 1; i < len(s); i++ {
		if s[i] == '#' && (s[i-1] == ' ' || s[i-1] == '\t') {
			return s[:i], strings.TrimSpace(strings.TrimPrefix(s[i:], "#"))
		}
	}
	return s, ""
}

// trailingComment extracts an inline comment from the text following a
// closing quote. Anything else after the quote is ignored.
func trailingComment(remainder string) string {
	remainder = strings.TrimSpace(remainder)
	if strings.HasPrefix(remainder, "#") {
		return strings.TrimSpace(strings.TrimPrefix(remainder, "#"))
	}
	return ""
}

// decodeDouble decodes escape sequences inside a double-quoted value.
// "\$" is kept intact: it marks a literal dollar for the interpolator.
func decodeDouble(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '\\' || i+1 >= len(s) {
			b.WriteByte(ch)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		case '"':
			b.WriteByte('"')
		case '\'':
			b.WriteByte('\'')
		case '$':
			b.WriteString(`\$`)
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// decodeSingle decodes a single-quoted value: only the quote itself and the
// backslash can be escaped, everything else is literal.
func decodeSingle(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch == '\\' && i+1 < len(s) && (s[i+1] == '\'' || s[i+1] == '\\') {
			i++
			b.WriteByte(s[i])
			continue
		}
		b.WriteByte(ch)
	}
	return b.String()
}
