package export

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/Azhovan/halyard/internal/envkey"
)

// Redacted replaces secret values in generated artifacts.
const Redacted = "***redacted***"

// Option configures schema extraction and export behavior.
type Option func(*config)

type config struct {
	revealSecrets bool // Emit secret values in plaintext
	includeUnset  bool // Emit fields whose pointer value is nil
}

// WithSecrets emits secret field values in plaintext instead of redacting.
func WithSecrets() Option {
	return func(cfg *config) {
		cfg.revealSecrets = true
	}
}

// WithUnset includes nil pointer fields (with empty values) in the output.
// By default unset optional fields are omitted, the way most settings
// exporters skip unset optionals.
func WithUnset() Option {
	return func(cfg *config) {
		cfg.includeUnset = true
	}
}

// Field is one exportable setting.
type Field struct {
	Name        string   // Environment variable name (e.g., "DATABASE__HOST")
	Path        string   // Struct field path (e.g., "Database.Host")
	Group       string   // Section label for grouped output (e.g., "Database")
	Type        string   // Type label (e.g., "string", "duration", "[]string")
	Value       string   // Rendered current value, redacted for secrets
	Default     string   // Default from the `default:` directive
	Description string   // From the `desc` tag
	Required    bool     // From the `required` directive
	Secret      bool     // From the `secret` directive
	Set         bool     // False for nil pointer fields
	OneOf       []string // Allowed values, if constrained
	Min         string   // Minimum constraint, if any
	Max         string   // Maximum constraint, if any

	raw any // Natural-typed value for structured generators
}

// Settings is the extracted schema of a settings struct, fields in
// declaration order.
type Settings struct {
	Title  string
	Fields []Field
}

// Schema extracts the exportable fields of a settings struct. v must be a
// struct or pointer to struct; nested structs become double-underscore
// prefixed variable groups following the usual env naming convention.
func Schema(v any, opts ...Option) (*Settings, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, fmt.Errorf("export: settings value is nil")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("export: settings must be a struct or pointer to struct, got %s", rv.Kind())
	}

	s := &Settings{Title: rv.Type().Name()}
	walkStruct(rv, nil, "", rootGroup(s.Title), cfg, &s.Fields)
	return s, nil
}

// walkStruct collects fields of one struct level. segs holds the variable
// name segments accumulated from enclosing structs.
func walkStruct(v reflect.Value, segs []string, pathPrefix, group string, cfg config, out *[]Field) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tags := parseTag(field.Tag.Get("conf"))
		desc := field.Tag.Get("desc")

		fieldPath := field.Name
		if pathPrefix != "" {
			fieldPath = pathPrefix + "." + field.Name
		}

		fv := v.Field(i)
		set := true
		if fv.Kind() == reflect.Ptr {
			if fv.IsNil() {
				set = false
			} else {
				fv = fv.Elem()
			}
		}

		// Nested settings group.
		if isGroupType(field.Type) {
			if !set {
				continue // nothing to export from a nil group
			}
			seg := envkey.FromField(field.Name)
			if tags.prefix != "" {
				seg = envkey.FromPath(tags.prefix)
			}
			walkStruct(fv, append(segs, seg), fieldPath, envkey.TitleCase(field.Name), cfg, out)
			continue
		}

		if !set && !cfg.includeUnset {
			continue
		}

		name := tags.name
		if name == "" {
			name = strings.Join(append(append([]string{}, segs...), envkey.FromField(field.Name)), "__")
		}

		f := Field{
			Name:        name,
			Path:        fieldPath,
			Group:       group,
			Type:        typeLabel(field.Type),
			Default:     tags.defValue,
			Description: desc,
			Required:    tags.required,
			Secret:      tags.secret,
			Set:         set,
			OneOf:       tags.oneof,
			Min:         tags.min,
			Max:         tags.max,
		}

		switch {
		case !set:
			f.raw = nil
		case tags.secret && !cfg.revealSecrets:
			f.Value = Redacted
			f.raw = Redacted
		default:
			f.Value = renderValue(fv)
			f.raw = rawValue(fv)
		}

		*out = append(*out, f)
	}
}

// isGroupType reports whether a field type should be walked as a settings
// group rather than rendered as a value.
func isGroupType(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct && t.PkgPath() != "time"
}

// rootGroup derives a section label for top-level fields from the struct
// type name, dropping the usual Settings/Config suffixes.
func rootGroup(title string) string {
	for _, suffix := range []string{"Settings", "Config", "Configuration"} {
		if trimmed := strings.TrimSuffix(title, suffix); trimmed != title {
			title = trimmed
			break
		}
	}
	if title == "" {
		return "Application"
	}
	return envkey.TitleCase(title)
}

// typeLabel renders a short human-readable type name for documentation.
func typeLabel(t reflect.Type) string {
	if t.Kind() == reflect.Ptr {
		return typeLabel(t.Elem())
	}
	switch t.String() {
	case "time.Duration":
		return "duration"
	case "time.Time":
		return "time"
	}
	switch t.Kind() {
	case reflect.Slice:
		return "[]" + typeLabel(t.Elem())
	case reflect.Map:
		return "map[" + typeLabel(t.Key()) + "]" + typeLabel(t.Elem())
	default:
		return t.Kind().String()
	}
}

// Tree arranges the fields as a nested map keyed by lowercased name
// segments, for the structured generators (JSON, YAML, TOML).
func (s *Settings) Tree() map[string]any {
	root := make(map[string]any)
	for _, f := range s.Fields {
		segs := strings.Split(strings.ToLower(f.Name), "__")
		node := root
		for _, seg := range segs[:len(segs)-1] {
			child, ok := node[seg].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[seg] = child
			}
			node = child
		}
		node[segs[len(segs)-1]] = f.raw
	}
	return root
}
