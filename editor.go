package halyard

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// QuoteMode controls how Set renders values.
type QuoteMode int

const (
	// QuoteAlways single-quotes every value (the default, matching common
	// dotenv tooling).
	QuoteAlways QuoteMode = iota

	// QuoteAuto writes values bare and quotes only when the value needs it
	// (whitespace, '#', quotes, '$', or newlines).
	QuoteAuto

	// QuoteNever writes values bare, verbatim.
	QuoteNever

	// QuoteAlwaysDouble double-quotes every value, escaping as needed.
	QuoteAlwaysDouble
)

// SetOption configures Set behavior using the functional options pattern.
type SetOption func(*setConfig)

type setConfig struct {
	mode   QuoteMode
	export bool
}

// WithQuoteMode selects the quoting style for the written value.
func WithQuoteMode(m QuoteMode) SetOption {
	return func(cfg *setConfig) {
		cfg.mode = m
	}
}

// WithExport writes the entry with an "export " prefix.
func WithExport() SetOption {
	return func(cfg *setConfig) {
		cfg.export = true
	}
}

// Set assigns value to key. An existing key is updated on its original line,
// leaving surrounding comments, blank lines, and ordering untouched. A new
// key is appended at the end of the document.
func (d *Document) Set(key, value string, opts ...SetOption) {
	cfg := setConfig{mode: QuoteAlways}
	for _, opt := range opts {
		opt(&cfg)
	}

	quote := chooseQuote(value, cfg.mode)

	// Update the last occurrence in place: that is the one lookups see.
	for i := len(d.lines) - 1; i >= 0; i-- {
		if d.lines[i].Kind != LinePair || d.lines[i].Pair.Key != key {
			continue
		}
		p := &d.lines[i].Pair
		p.Value = value
		p.Quote = quote
		if cfg.export {
			p.Export = true
		}
		d.lines[i].dirty = true
		return
	}

	d.lines = append(d.lines, Line{
		Kind: LinePair,
		Pair: Pair{
			Key:    key,
			Value:  value,
			Quote:  quote,
			Export: cfg.export,
		},
		dirty: true,
	})
}

// Unset removes every assignment of key. It reports whether any was found.
// Comments and blank lines around removed entries stay in place.
func (d *Document) Unset(key string) bool {
	found := false
	kept := d.lines[:0]
	for _, ln := range d.lines {
		if ln.Kind == LinePair && ln.Pair.Key == key {
			found = true
			continue
		}
		kept = append(kept, ln)
	}
	d.lines = kept
	return found
}

// chooseQuote maps a quote mode and value to a concrete quoting style.
func chooseQuote(value string, mode QuoteMode) QuoteKind {
	switch mode {
	case QuoteNever:
		return QuoteNone
	case QuoteAlwaysDouble:
		return QuoteDouble
	case QuoteAuto:
		if !needsQuoting(value) {
			return QuoteNone
		}
		if strings.Contains(value, "'") {
			return QuoteDouble
		}
		return QuoteSingle
	default:
		if strings.Contains(value, "\n") && strings.Contains(value, "'") {
			return QuoteDouble
		}
		return QuoteSingle
	}
}

// needsQuoting reports whether a bare rendering of value would parse back
// differently (or not at all).
func needsQuoting(value string) bool {
	if value == "" {
		return false
	}
	if strings.TrimSpace(value) != value {
		return true
	}
	return strings.ContainsAny(value, " \t\n#'\"$")
}

// SetKey sets key in the dotenv file at path, preserving the file's layout,
// and writes the result atomically. A missing file is created.
func SetKey(path, key, value string, opts ...SetOption) error {
	doc, err := ParseFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		doc = NewDocument()
	}
	doc.Set(key, value, opts...)
	return doc.WriteFile(path)
}

// UnsetKey removes key from the dotenv file at path and writes the result
// atomically. Returns ErrKeyNotFound when the key is absent.
func UnsetKey(path, key string) error {
	doc, err := ParseFile(path)
	if err != nil {
		return err
	}
	if !doc.Unset(key) {
		return fmt.Errorf("%w: %s in %s", ErrKeyNotFound, key, path)
	}
	return doc.WriteFile(path)
}
