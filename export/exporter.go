package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// Exporter validates a settings struct and writes one artifact per
// registered generator. Artifacts are written atomically.
type Exporter struct {
	settings any
	targets  []target
	opts     []Option
	reveal   bool
}

type target struct {
	generator Generator
	path      string
}

// NewExporter creates an Exporter for the given settings struct.
func NewExporter(settings any, opts ...Option) *Exporter {
	e := &Exporter{settings: settings, opts: opts}
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	e.reveal = cfg.revealSecrets
	return e
}

// WithGenerator registers a generator and the path its artifact goes to.
// Generators run in registration order.
func (e *Exporter) WithGenerator(g Generator, path string) *Exporter {
	e.targets = append(e.targets, target{generator: g, path: path})
	return e
}

// Run validates the settings, extracts the schema, and writes every
// registered artifact. It returns the paths written. On validation failure
// nothing is written and the error is a *ValidationError.
func (e *Exporter) Run(ctx context.Context) ([]string, error) {
	if err := Validate(e.settings); err != nil {
		return nil, err
	}

	schema, err := Schema(e.settings, e.opts...)
	if err != nil {
		return nil, err
	}

	written := make([]string, 0, len(e.targets))
	for _, t := range e.targets {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		data, err := t.generator.Generate(schema)
		if err != nil {
			return written, fmt.Errorf("export: generate %s: %w", t.generator.Name(), err)
		}
		if err := writeArtifact(t.path, data, e.reveal); err != nil {
			return written, err
		}
		written = append(written, t.path)
	}

	return written, nil
}

// writeArtifact persists one artifact atomically. Artifacts carrying
// plaintext secrets are written 0600, redacted ones 0644.
func writeArtifact(path string, data []byte, containsSecrets bool) error {
	perm := os.FileMode(0o644)
	if containsSecrets {
		perm = 0o600
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("export: create %s: %w", dir, err)
		}
	}

	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(perm))
	if err != nil {
		return fmt.Errorf("export: create pending file for %s: %w", path, err)
	}
	defer pending.Cleanup() //nolint:errcheck // cleanup after commit is a no-op

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("export: replace %s: %w", path, err)
	}
	return nil
}
