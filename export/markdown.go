package export

import (
	"fmt"
	"strings"
)

// Markdown generates a settings reference document: one table per settings
// group listing name, type, default, required, and description.
type Markdown struct {
	// Title overrides the document heading. Default is the struct name.
	Title string
}

func (Markdown) Name() string { return "markdown" }

func (g Markdown) Generate(s *Settings) ([]byte, error) {
	var b strings.Builder

	title := g.Title
	if title == "" {
		title = s.Title
	}
	fmt.Fprintf(&b, "# %s\n", title)

	group := ""
	for _, f := range s.Fields {
		if f.Group != group {
			group = f.Group
			fmt.Fprintf(&b, "\n## %s\n\n", group)
			b.WriteString("| Name | Type | Default | Required | Description |\n")
			b.WriteString("|------|------|---------|----------|-------------|\n")
		}

		required := "no"
		if f.Required {
			required = "yes"
		}

		desc := f.Description
		if f.Secret {
			desc = strings.TrimSpace(desc + " (secret)")
		}
		if len(f.OneOf) > 0 {
			desc = strings.TrimSpace(desc + " One of: " + strings.Join(f.OneOf, ", ") + ".")
		}

		def := "-"
		if f.Default != "" {
			def = "`" + f.Default + "`"
		}

		fmt.Fprintf(&b, "| `%s` | %s | %s | %s | %s |\n",
			f.Name, f.Type, def, required, escapePipes(desc))
	}

	return []byte(b.String()), nil
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
