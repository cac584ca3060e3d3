package export

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// JSON generates a nested JSON document.
type JSON struct {
	// Indent is the indentation unit. Default is two spaces.
	Indent string
}

func (JSON) Name() string { return "json" }

func (g JSON) Generate(s *Settings) ([]byte, error) {
	indent := g.Indent
	if indent == "" {
		indent = "  "
	}
	data, err := json.MarshalIndent(s.Tree(), "", indent)
	if err != nil {
		return nil, fmt.Errorf("export: marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// YAML generates a nested YAML document.
type YAML struct{}

func (YAML) Name() string { return "yaml" }

func (YAML) Generate(s *Settings) ([]byte, error) {
	data, err := yaml.Marshal(s.Tree())
	if err != nil {
		return nil, fmt.Errorf("export: marshal YAML: %w", err)
	}
	return data, nil
}

// TOML generates a nested TOML document.
type TOML struct{}

func (TOML) Name() string { return "toml" }

func (TOML) Generate(s *Settings) ([]byte, error) {
	// TOML has no null: unset fields are dropped rather than serialized.
	data, err := toml.Marshal(pruneNils(s.Tree()))
	if err != nil {
		return nil, fmt.Errorf("export: marshal TOML: %w", err)
	}
	return data, nil
}

func pruneNils(tree map[string]any) map[string]any {
	out := make(map[string]any, len(tree))
	for key, value := range tree {
		switch v := value.(type) {
		case nil:
			continue
		case map[string]any:
			out[key] = pruneNils(v)
		default:
			out[key] = value
		}
	}
	return out
}
