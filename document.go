package halyard

import (
	"fmt"
	"io"
	"strings"
)

// Document is a parsed dotenv file. It keeps every line (comments, blank
// lines, malformed lines, duplicate keys) so that writing an unmodified
// document reproduces its input.
type Document struct {
	lines []Line
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Len returns the number of lines in the document.
func (d *Document) Len() int {
	return len(d.lines)
}

// Lines returns a copy of the document's lines in order.
func (d *Document) Lines() []Line {
	out := make([]Line, len(d.lines))
	copy(out, d.lines)
	return out
}

// Lookup returns the entry for key. When the key appears more than once the
// last occurrence wins, matching how shells and loaders treat the file.
func (d *Document) Lookup(key string) (Pair, bool) {
	for i := len(d.lines) - 1; i >= 0; i-- {
		if d.lines[i].Kind == LinePair && d.lines[i].Pair.Key == key {
			return d.lines[i].Pair, true
		}
	}
	return Pair{}, false
}

// Has reports whether key is defined in the document.
func (d *Document) Has(key string) bool {
	_, ok := d.Lookup(key)
	return ok
}

// Get returns the interpolated value for key, or "" if absent.
func (d *Document) Get(key string) string {
	return d.Map()[key]
}

// Keys returns defined keys in order of first appearance, without duplicates.
func (d *Document) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, ln := range d.lines {
		if ln.Kind != LinePair || seen[ln.Pair.Key] {
			continue
		}
		seen[ln.Pair.Key] = true
		keys = append(keys, ln.Pair.Key)
	}
	return keys
}

// Pairs returns every assignment in document order, duplicates included.
func (d *Document) Pairs() []Pair {
	var pairs []Pair
	for _, ln := range d.lines {
		if ln.Kind == LinePair {
			pairs = append(pairs, ln.Pair)
		}
	}
	return pairs
}

// Malformed returns the lines that could not be parsed as assignments.
func (d *Document) Malformed() []Line {
	var bad []Line
	for _, ln := range d.lines {
		if ln.Kind == LineMalformed {
			bad = append(bad, ln)
		}
	}
	return bad
}

// AppendComment appends a full-line comment. The leading '#' is added if
// text does not already carry one.
func (d *Document) AppendComment(text string) {
	if !strings.HasPrefix(text, "#") {
		text = "# " + text
	}
	d.lines = append(d.lines, Line{Kind: LineComment, Raw: text})
}

// AppendBlank appends an empty line.
func (d *Document) AppendBlank() {
	d.lines = append(d.lines, Line{Kind: LineBlank})
}

// String serializes the document. Untouched lines are emitted verbatim;
// modified or added entries are rendered from their fields. The output
// always ends with a newline and uses LF line endings regardless of the
// input's endings.
func (d *Document) String() string {
	var b strings.Builder
	for _, ln := range d.lines {
		if ln.Kind == LinePair && ln.dirty {
			b.WriteString(renderPair(ln.Pair))
		} else {
			b.WriteString(ln.Raw)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// WriteTo serializes the document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.String())
	if err != nil {
		return int64(n), fmt.Errorf("halyard: write document: %w", err)
	}
	return int64(n), nil
}

// renderPair formats an assignment line from its fields.
func renderPair(p Pair) string {
	var b strings.Builder
	if p.Export {
		b.WriteString("export ")
	}
	b.WriteString(p.Key)
	b.WriteByte('=')
	b.WriteString(encodeValue(p.Value, p.Quote))
	if p.Inline != "" {
		b.WriteString(" # ")
		b.WriteString(p.Inline)
	}
	return b.String()
}

// encodeValue renders a value in the given quoting style.
func encodeValue(v string, q QuoteKind) string {
	switch q {
	case QuoteSingle:
		return "'" + strings.ReplaceAll(v, "'", `\'`) + "'"
	case QuoteDouble:
		return `"` + encodeDouble(v) + `"`
	default:
		return v
	}
}

// encodeDouble escapes a value for double quoting. The parser keeps literal
// dollars as "\$", so they round-trip without further handling.
func encodeDouble(v string) string {
	r := strings.NewReplacer(
		`\$`, "\x00", // protect pre-escaped dollars
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\t", `\t`,
		"\r", `\r`,
	)
	return strings.ReplaceAll(r.Replace(v), "\x00", `\$`)
}
