package halyard

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_BasicValues(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   string
		want  string
	}{
		{"simple", "SIMPLE=value", "SIMPLE", "value"},
		{"spaces in value", "SPACED=hello world with spaces", "SPACED", "hello world with spaces"},
		{"double quoted", `QUOTED="quoted value"`, "QUOTED", "quoted value"},
		{"single quoted", `SINGLE='single quoted'`, "SINGLE", "single quoted"},
		{"mixed quotes", `MIXED="mixed 'quotes'"`, "MIXED", "mixed 'quotes'"},
		{"empty value", "EMPTY=", "EMPTY", ""},
		{"whitespace only value", "WS=   ", "WS", ""},
		{"value padding trimmed", "PADDED=  spaced value  ", "PADDED", "spaced value"},
		{"tab value", "TAB=\ttabbed\tvalue", "TAB", "tabbed\tvalue"},
		{"equals in value", "EQUALS=key=value=more", "EQUALS", "key=value=more"},
		{"inline comment stripped", "COMMENT=value # inline comment", "COMMENT", "value"},
		{"hash without space kept", "HASH=value#with#hashes", "HASH", "value#with#hashes"},
		{"unicode", "UNICODE=你好世界", "UNICODE", "你好世界"},
		{"emoji", "EMOJI=🚀🌟", "EMOJI", "🚀🌟"},
		{"export prefix", "export TOKEN=abc", "TOKEN", "abc"},
		{"key padding", "  KEY  =  v", "KEY", "v"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseString(tt.input)
			require.NoError(t, err)

			pair, ok := doc.Lookup(tt.key)
			require.True(t, ok, "key %s should be defined", tt.key)
			assert.Equal(t, tt.want, pair.Value)
		})
	}
}

func TestParse_QuoteKinds(t *testing.T) {
	doc, err := ParseString("BARE=a\nSINGLE='b'\nDOUBLE=\"c\"\n")
	require.NoError(t, err)

	bare, _ := doc.Lookup("BARE")
	single, _ := doc.Lookup("SINGLE")
	double, _ := doc.Lookup("DOUBLE")

	assert.Equal(t, QuoteNone, bare.Quote)
	assert.Equal(t, QuoteSingle, single.Quote)
	assert.Equal(t, QuoteDouble, double.Quote)
}

func TestParse_DoubleQuoteEscapes(t *testing.T) {
	doc, err := ParseString(`ESCAPED="line1\nline2\twith \"quotes\" and \\slash"`)
	require.NoError(t, err)

	pair, ok := doc.Lookup("ESCAPED")
	require.True(t, ok)
	assert.Equal(t, "line1\nline2\twith \"quotes\" and \\slash", pair.Value)
}

func TestParse_SingleQuoteLiteral(t *testing.T) {
	doc, err := ParseString(`LITERAL='no \n escapes here'`)
	require.NoError(t, err)

	pair, ok := doc.Lookup("LITERAL")
	require.True(t, ok)
	assert.Equal(t, `no \n escapes here`, pair.Value)
}

func TestParse_MultilineValue(t *testing.T) {
	input := "MULTILINE=\"line1\nline2\nline3\"\nAFTER=ok\n"
	doc, err := ParseString(input)
	require.NoError(t, err)

	pair, ok := doc.Lookup("MULTILINE")
	require.True(t, ok)
	assert.Equal(t, "line1\nline2\nline3", pair.Value)

	after, ok := doc.Lookup("AFTER")
	require.True(t, ok)
	assert.Equal(t, "ok", after.Value)
}

func TestParse_InlineComments(t *testing.T) {
	doc, err := ParseString("A=v # note\nB=\"q\" # quoted note\n")
	require.NoError(t, err)

	a, _ := doc.Lookup("A")
	b, _ := doc.Lookup("B")
	assert.Equal(t, "note", a.Inline)
	assert.Equal(t, "quoted note", b.Inline)
}

func TestParse_InlineCommentOnEmptyValue(t *testing.T) {
	doc, err := ParseString("EMPTY= # note\nNOT_A_COMMENT=#note\n")
	require.NoError(t, err)

	empty, ok := doc.Lookup("EMPTY")
	require.True(t, ok)
	assert.Equal(t, "", empty.Value)
	assert.Equal(t, "note", empty.Inline)

	// Without whitespace before it, '#' is part of the value.
	hash, ok := doc.Lookup("NOT_A_COMMENT")
	require.True(t, ok)
	assert.Equal(t, "#note", hash.Value)
	assert.Equal(t, "", hash.Inline)
}

func TestParse_EscapedDollarStaysRaw(t *testing.T) {
	input := "COST=\"\\$5\"\n"
	doc, err := ParseString(input)
	require.NoError(t, err)

	// Pair.Value keeps the escape; interpolation resolves it.
	pair, ok := doc.Lookup("COST")
	require.True(t, ok)
	assert.Equal(t, `\$5`, pair.Value)
	assert.Equal(t, "$5", doc.Get("COST"))

	// The escape also survives serialization untouched.
	assert.Equal(t, input, doc.String())
}

func TestParse_CommentsAndBlanks(t *testing.T) {
	input := "# Header comment\n\nVAR1=value1\n# Middle comment\nVAR2=value2\n# Footer comment\n"
	doc, err := ParseString(input)
	require.NoError(t, err)

	assert.Equal(t, 6, doc.Len())
	assert.Equal(t, []string{"VAR1", "VAR2"}, doc.Keys())
}

func TestParse_MalformedLines(t *testing.T) {
	doc, err := ParseString("GOOD=1\nnot an assignment\n9BAD=2\n")
	require.NoError(t, err)

	assert.True(t, doc.Has("GOOD"))
	assert.False(t, doc.Has("9BAD"))

	bad := doc.Malformed()
	require.Len(t, bad, 2)
	assert.Equal(t, "not an assignment", bad[0].Raw)
	assert.Equal(t, "9BAD=2", bad[1].Raw)
}

func TestParse_UnterminatedQuote(t *testing.T) {
	_, err := ParseString("A=1\nBROKEN=\"never closed\nC=3")
	require.Error(t, err)

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, 2, parseErr.Line)
}

func TestParse_DuplicateKeys_LastWins(t *testing.T) {
	doc, err := ParseString("DUP=first\nDUP=second\n")
	require.NoError(t, err)

	pair, ok := doc.Lookup("DUP")
	require.True(t, ok)
	assert.Equal(t, "second", pair.Value)

	// Both occurrences stay in the line list.
	assert.Len(t, doc.Pairs(), 2)
	assert.Equal(t, []string{"DUP"}, doc.Keys())
}

func TestParse_CRLF(t *testing.T) {
	doc, err := ParseString("A=1\r\nB=2\r\n")
	require.NoError(t, err)
	assert.Equal(t, "1", doc.Get("A"))
	assert.Equal(t, "2", doc.Get("B"))

	// CRLF endings are normalized: the document serializes with LF.
	assert.Equal(t, "A=1\nB=2\n", doc.String())
}

func TestParse_Lineno(t *testing.T) {
	doc, err := ParseString("# c\nA=1\n\nB=2\n")
	require.NoError(t, err)

	a, _ := doc.Lookup("A")
	b, _ := doc.Lookup("B")
	assert.Equal(t, 2, a.Lineno)
	assert.Equal(t, 4, b.Lineno)
}

func TestParse_Reader(t *testing.T) {
	doc, err := Parse(strings.NewReader("FROM_READER=yes\n"))
	require.NoError(t, err)
	assert.Equal(t, "yes", doc.Get("FROM_READER"))
}
