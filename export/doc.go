// Package export renders annotated settings structs into configuration
// artifacts: dotenv and shell templates, JSON/YAML/TOML documents, and a
// Markdown settings reference.
//
// Quick Start:
//
//	type Settings struct {
//	    Port     int    `conf:"default:8080,min:1024" desc:"Listen port"`
//	    Database struct {
//	        Host     string `conf:"required"`
//	        Password string `conf:"required,secret"`
//	    } `conf:"prefix:database"`
//	}
//
//	paths, err := export.NewExporter(settings).
//	    WithGenerator(export.DotEnv{}, ".env.example").
//	    WithGenerator(export.Markdown{}, "docs/settings.md").
//	    Run(context.Background())
//
// Tag directives: name:VAR, default:val, required, min:N, max:N,
// oneof:a,b,c, secret, prefix:path. Field descriptions go in a separate
// `desc` tag. Secret values are redacted unless WithSecrets is used.
package export
