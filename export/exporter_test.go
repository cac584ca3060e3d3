package export

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type exporterSettings struct {
	Env      string `conf:"required,oneof:dev,prod"`
	Database exporterDatabase
}

type exporterDatabase struct {
	Host     string
	Password string `conf:"secret"`
}

func TestExporter_Run(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env.example")
	jsonPath := filepath.Join(dir, "settings.json")
	docPath := filepath.Join(dir, "docs", "settings.md")

	settings := &exporterSettings{
		Env:      "prod",
		Database: exporterDatabase{Host: "db", Password: "hunter2"},
	}

	written, err := NewExporter(settings).
		WithGenerator(DotEnv{Header: "Example configuration"}, envPath).
		WithGenerator(JSON{}, jsonPath).
		WithGenerator(Markdown{}, docPath).
		Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{envPath, jsonPath, docPath}, written)

	env, err := os.ReadFile(envPath)
	require.NoError(t, err)
	assert.Contains(t, string(env), "# Example configuration\n")
	assert.Contains(t, string(env), "DATABASE__PASSWORD=***redacted***\n")
	assert.NotContains(t, string(env), "hunter2")

	// The docs/ directory is created on demand.
	_, err = os.Stat(docPath)
	assert.NoError(t, err)
}

func TestExporter_ValidationFailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env.example")

	_, err := NewExporter(&exporterSettings{Env: "production"}).
		WithGenerator(DotEnv{}, path).
		Run(context.Background())
	require.Error(t, err)

	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestExporter_SecretArtifactPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permission bits")
	}

	dir := t.TempDir()
	redactedPath := filepath.Join(dir, "redacted.env")
	plainPath := filepath.Join(dir, "plain.env")

	settings := &exporterSettings{
		Env:      "dev",
		Database: exporterDatabase{Password: "hunter2"},
	}

	_, err := NewExporter(settings).
		WithGenerator(DotEnv{}, redactedPath).
		Run(context.Background())
	require.NoError(t, err)

	_, err = NewExporter(settings, WithSecrets()).
		WithGenerator(DotEnv{}, plainPath).
		Run(context.Background())
	require.NoError(t, err)

	redactedInfo, err := os.Stat(redactedPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), redactedInfo.Mode().Perm())

	plainInfo, err := os.Stat(plainPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), plainInfo.Mode().Perm())
}

func TestExporter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), ".env.example")
	written, err := NewExporter(&exporterSettings{Env: "dev"}).
		WithGenerator(DotEnv{}, path).
		Run(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, written)
}
