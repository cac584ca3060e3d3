package halyard

import (
	"os"
	"strings"
)

// Map returns all entries with ${VAR} references expanded. References
// resolve against entries defined earlier in the document, then against the
// process environment. Unresolvable names expand to "".
func (d *Document) Map() map[string]string {
	return d.MapWith(nil)
}

// MapWith is Map with a custom fallback resolver for names the document
// itself does not define. A nil resolver means os.LookupEnv.
func (d *Document) MapWith(fallback Resolver) map[string]string {
	if fallback == nil {
		fallback = os.LookupEnv
	}

	resolved := make(map[string]string)
	for _, ln := range d.lines {
		if ln.Kind != LinePair {
			continue
		}
		p := ln.Pair

		// Single-quoted values are literal.
		if p.Quote == QuoteSingle {
			resolved[p.Key] = p.Value
			continue
		}

		// A key's own value sees only entries strictly before it, which
		// also terminates self-references and cycles.
		resolved[p.Key] = expand(p.Value, func(name string) (string, bool) {
			if v, ok := resolved[name]; ok {
				return v, true
			}
			return fallback(name)
		})
	}
	return resolved
}

// expand substitutes ${VAR} and ${VAR:-default} references in s.
// "\$" produces a literal dollar. A '$' not followed by '{' is literal.
func expand(s string, lookup func(string) (string, bool)) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]

		if ch == '\\' && i+1 < len(s) && s[i+1] == '$' {
			b.WriteByte('$')
			i++
			continue
		}

		if ch != '$' || i+1 >= len(s) || s[i+1] != '{' {
			b.WriteByte(ch)
			continue
		}

		end := strings.IndexByte(s[i+2:], '}')
		if end < 0 {
			// Unclosed reference: keep the rest literal.
			b.WriteString(s[i:])
			break
		}

		ref := s[i+2 : i+2+end]
		i += 2 + end

		name, def, hasDefault := strings.Cut(ref, ":-")
		v, ok := lookup(name)
		if hasDefault && (!ok || v == "") {
			v = def
		}
		b.WriteString(v)
	}
	return b.String()
}
