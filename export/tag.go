package export

import (
	"strings"
)

// tagConfig holds parsed directives from a struct field's `conf` tag.
type tagConfig struct {
	name       string   // Explicit variable name (name:DATABASE_URL)
	prefix     string   // Prefix for nested structs (prefix:database)
	defValue   string   // Default value (default:value)
	min        string   // Minimum constraint (min:N)
	max        string   // Maximum constraint (max:M)
	oneof      []string // Allowed values (oneof:a,b,c)
	required   bool     // Field is required (required or required:true)
	secret     bool     // Field is secret (secret or secret:true)
	hasDefault bool     // Whether a default directive was present
}

// parseTag parses a `conf` struct tag into a structured tagConfig.
// Tag format: "directive1:value1,directive2:value2,..."
// Boolean directives can omit `:true` (e.g., "required" == "required:true")
func parseTag(tag string) tagConfig {
	cfg := tagConfig{}

	if tag == "" {
		return cfg
	}

	for _, directive := range splitDirectives(tag) {
		directive = strings.TrimSpace(directive)
		if directive == "" {
			continue
		}

		parts := strings.SplitN(directive, ":", 2)
		name := strings.TrimSpace(parts[0])
		var value string
		if len(parts) > 1 {
			value = parts[1] // Don't trim value - empty strings may be intentional
		}

		switch name {
		case "name":
			cfg.name = value
		case "prefix":
			cfg.prefix = value
		case "default":
			cfg.defValue = value
			cfg.hasDefault = true
		case "min":
			cfg.min = value
		case "max":
			cfg.max = value
		case "oneof":
			if value != "" {
				cfg.oneof = strings.Split(value, ",")
				for i := range cfg.oneof {
					cfg.oneof[i] = strings.TrimSpace(cfg.oneof[i])
				}
			}
		case "required":
			cfg.required = parseBoolDirective(value)
		case "secret":
			cfg.secret = parseBoolDirective(value)
		}
	}

	return cfg
}

// parseBoolDirective interprets a boolean directive value. A missing or
// invalid value means true for safety.
func parseBoolDirective(value string) bool {
	return value != "false"
}

// splitDirectives splits a tag string into individual directives,
// handling the special case where oneof values contain commas.
func splitDirectives(tag string) []string {
	var directives []string
	var current strings.Builder
	inOneof := false

	for i := 0; i < len(tag); i++ {
		ch := tag[i]

		if !inOneof && i+6 <= len(tag) && tag[i:i+6] == "oneof:" {
			inOneof = true
			current.WriteString("oneof:")
			i += 5
			continue
		}

		if ch != ',' {
			current.WriteByte(ch)
			continue
		}

		if inOneof && !startsWithDirective(tag[i+1:]) {
			// This comma is part of the oneof value list.
			current.WriteByte(ch)
			continue
		}

		inOneof = false
		directives = append(directives, current.String())
		current.Reset()
	}

	if current.Len() > 0 {
		directives = append(directives, current.String())
	}

	return directives
}

// startsWithDirective checks if a string starts with a known directive name.
func startsWithDirective(s string) bool {
	s = strings.TrimSpace(s)
	directives := []string{"name:", "prefix:", "default:", "min:", "max:", "oneof:", "required", "secret"}
	for _, d := range directives {
		if strings.HasPrefix(s, d) {
			return true
		}
	}
	return false
}
