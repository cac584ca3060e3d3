package halyard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap_Interpolation(t *testing.T) {
	input := `BASE=hello
DERIVED=${BASE}_world
CHAINED=${DERIVED}!
WITH_DEFAULT=${UNDEFINED:-fallback_value}
DOUBLE="${BASE} interpolated"
SINGLE='${BASE} not interpolated'
`
	doc, err := ParseString(input)
	require.NoError(t, err)

	values := doc.MapWith(func(string) (string, bool) { return "", false })

	assert.Equal(t, "hello", values["BASE"])
	assert.Equal(t, "hello_world", values["DERIVED"])
	assert.Equal(t, "hello_world!", values["CHAINED"])
	assert.Equal(t, "fallback_value", values["WITH_DEFAULT"])
	assert.Equal(t, "hello interpolated", values["DOUBLE"])
	assert.Equal(t, "${BASE} not interpolated", values["SINGLE"])
}

func TestMap_UnresolvedExpandsEmpty(t *testing.T) {
	doc, err := ParseString("A=${NOPE}/suffix\n")
	require.NoError(t, err)

	values := doc.MapWith(func(string) (string, bool) { return "", false })
	assert.Equal(t, "/suffix", values["A"])
}

func TestMap_EmptyValueTakesDefault(t *testing.T) {
	doc, err := ParseString("EMPTY=\nX=${EMPTY:-def}\n")
	require.NoError(t, err)

	values := doc.MapWith(func(string) (string, bool) { return "", false })
	assert.Equal(t, "def", values["X"])
}

func TestMap_SelfReferenceTerminates(t *testing.T) {
	doc, err := ParseString("LOOP=${LOOP}x\n")
	require.NoError(t, err)

	// The value only sees entries defined strictly before it.
	values := doc.MapWith(func(string) (string, bool) { return "", false })
	assert.Equal(t, "x", values["LOOP"])
}

func TestMap_ForwardReferenceNotVisible(t *testing.T) {
	doc, err := ParseString("A=${B}\nB=late\n")
	require.NoError(t, err)

	values := doc.MapWith(func(string) (string, bool) { return "", false })
	assert.Equal(t, "", values["A"])
	assert.Equal(t, "late", values["B"])
}

func TestMap_FallbackResolver(t *testing.T) {
	doc, err := ParseString("URL=https://${HOST}/api\n")
	require.NoError(t, err)

	values := doc.MapWith(func(name string) (string, bool) {
		if name == "HOST" {
			return "example.com", true
		}
		return "", false
	})
	assert.Equal(t, "https://example.com/api", values["URL"])
}

func TestMap_EnvironmentFallback(t *testing.T) {
	t.Setenv("HALYARD_TEST_HOST", "env.example")

	doc, err := ParseString("URL=${HALYARD_TEST_HOST}/v1\n")
	require.NoError(t, err)

	assert.Equal(t, "env.example/v1", doc.Map()["URL"])
}

func TestMap_DocumentShadowsEnvironment(t *testing.T) {
	t.Setenv("HALYARD_TEST_SHADOW", "from-env")

	doc, err := ParseString("HALYARD_TEST_SHADOW=from-file\nREF=${HALYARD_TEST_SHADOW}\n")
	require.NoError(t, err)

	assert.Equal(t, "from-file", doc.Map()["REF"])
}

func TestExpand_Literals(t *testing.T) {
	none := func(string) (string, bool) { return "", false }

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"escaped dollar", `cost: \${PRICE}`, "cost: ${PRICE}"},
		{"bare dollar", "5$ flat", "5$ flat"},
		{"dollar at end", "trailing$", "trailing$"},
		{"unclosed brace", "x${OPEN", "x${OPEN"},
		{"empty reference", "a${}b", "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expand(tt.input, none))
		})
	}
}
