package halyard

import "time"

// LineKind identifies what a document line holds.
type LineKind int

const (
	// LineBlank is a line containing only whitespace.
	LineBlank LineKind = iota

	// LineComment is a full-line comment starting with '#'.
	LineComment

	// LinePair is a KEY=VALUE assignment (possibly spanning several
	// physical lines when the value is quoted).
	LinePair

	// LineMalformed is a line that is neither blank, comment, nor a valid
	// assignment. It is preserved verbatim on write.
	LineMalformed
)

// QuoteKind records how a value was quoted in the source file.
type QuoteKind int

const (
	// QuoteNone means the value was written bare.
	QuoteNone QuoteKind = iota

	// QuoteSingle means the value was single-quoted. Single-quoted values
	// are literal: no escape decoding and no interpolation.
	QuoteSingle

	// QuoteDouble means the value was double-quoted. Escape sequences are
	// decoded and ${VAR} interpolation applies.
	QuoteDouble
)

// Pair is a single KEY=VALUE entry.
type Pair struct {
	Key string

	// Value is the decoded value as written, before interpolation. One
	// exception: an escaped dollar stays as `\$` so that interpolation can
	// tell it apart from a reference. Document.Get and Document.Map return
	// fully interpolated values with the escape resolved.
	Value string

	// Quote is the quoting style used in the source (and on rewrite).
	Quote QuoteKind

	// Export reports whether the entry carried an "export " prefix.
	Export bool

	// Inline holds the trailing inline comment text, without the '#'.
	Inline string

	// Lineno is the 1-based line the entry started on when parsed.
	// Zero for entries added programmatically.
	Lineno int
}

// Line is one entry of a Document: a blank line, a comment, an assignment,
// or a malformed line kept verbatim.
type Line struct {
	Kind LineKind

	// Raw is the original source text without the trailing newline.
	// For multi-line quoted values it contains embedded newlines.
	Raw string

	// Pair is valid only when Kind is LinePair.
	Pair Pair

	// dirty marks pairs whose rendered form no longer matches Raw.
	dirty bool
}

// ChangeEvent notifies of dotenv file changes observed by Watch.
type ChangeEvent struct {
	At    time.Time
	Cause string // Description (e.g., "file-written")
}

// Resolver supplies fallback values for ${VAR} references that are not
// defined earlier in the document. The default resolver is os.LookupEnv.
type Resolver func(name string) (string, bool)
