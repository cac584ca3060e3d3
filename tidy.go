package halyard

import (
	"sort"

	"github.com/Azhovan/halyard/internal/envkey"
)

// Tidy returns a reorganized copy of the document: entries without a
// section prefix come first under a "# Global settings" header, followed by
// one block per section ("# Radarr settings" for RADARR__* variables),
// sections and entries sorted alphabetically. Duplicate keys keep their
// first occurrence. Hand-written comments and malformed lines are dropped;
// the original document is not modified.
func (d *Document) Tidy() *Document {
	var globals []Line
	sections := make(map[string][]Line)
	seen := make(map[string]bool)

	for _, ln := range d.lines {
		if ln.Kind != LinePair || seen[ln.Pair.Key] {
			continue
		}
		seen[ln.Pair.Key] = true

		if section := envkey.Section(ln.Pair.Key); section != "" {
			sections[section] = append(sections[section], ln)
		} else {
			globals = append(globals, ln)
		}
	}

	byKey := func(lines []Line) func(i, j int) bool {
		return func(i, j int) bool { return lines[i].Pair.Key < lines[j].Pair.Key }
	}
	sort.Slice(globals, byKey(globals))

	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)

	out := NewDocument()
	if len(globals) > 0 {
		out.AppendComment("Global settings")
		out.lines = append(out.lines, globals...)
	}
	for _, name := range names {
		if out.Len() > 0 {
			out.AppendBlank()
		}
		out.AppendComment(envkey.TitleCase(name) + " settings")
		lines := sections[name]
		sort.Slice(lines, byKey(lines))
		out.lines = append(out.lines, lines...)
	}
	return out
}
