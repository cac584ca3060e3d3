// Package halyard reads, edits, and writes dotenv files without losing
// comments, blank lines, ordering, or quoting style.
//
// Quick Start:
//
//	doc, err := halyard.ParseFile(".env")
//	doc.Set("API_URL", "https://api.example.com/v1")
//	err = doc.WriteFile(".env")
//
//	// Or load straight into the process environment:
//	err = halyard.Load(".env")
//
// Values support ${VAR} and ${VAR:-default} interpolation. The export
// sub-package turns annotated settings structs into dotenv, shell, JSON,
// YAML, TOML, and Markdown artifacts.
//
// See example_test.go and README.md for detailed usage.
package halyard
