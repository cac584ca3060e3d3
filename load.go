package halyard

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultName is the conventional dotenv file name.
const DefaultName = ".env"

// Load parses the given dotenv files and sets their variables in the
// process environment. Variables already present in the environment are
// left untouched. With no arguments, ".env" is loaded.
func Load(paths ...string) error {
	return load(false, paths)
}

// Overload is Load but existing environment variables are overwritten.
func Overload(paths ...string) error {
	return load(true, paths)
}

func load(override bool, paths []string) error {
	if len(paths) == 0 {
		paths = []string{DefaultName}
	}
	for _, path := range paths {
		doc, err := ParseFile(path)
		if err != nil {
			return err
		}
		for key, value := range doc.Map() {
			if !override {
				if _, exists := os.LookupEnv(key); exists {
					continue
				}
			}
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("halyard: set %s: %w", key, err)
			}
		}
	}
	return nil
}

// Values parses the dotenv file at path and returns its interpolated
// entries without touching the process environment.
func Values(path string) (map[string]string, error) {
	doc, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return doc.Map(), nil
}

// Read merges the entries of several dotenv files, later files overriding
// earlier ones (".env" then ".env.local" style layering). With no
// arguments, ".env" is read.
func Read(paths ...string) (map[string]string, error) {
	if len(paths) == 0 {
		paths = []string{DefaultName}
	}
	merged := make(map[string]string)
	for _, path := range paths {
		values, err := Values(path)
		if err != nil {
			return nil, err
		}
		for key, value := range values {
			merged[key] = value
		}
	}
	return merged, nil
}

// Find walks from the working directory toward the filesystem root looking
// for a dotenv file called name ("" means ".env"). It returns the absolute
// path of the first match or ErrNotFound.
func Find(name string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("halyard: resolve working directory: %w", err)
	}
	return findFrom(dir, name)
}

func findFrom(dir, name string) (string, error) {
	if name == "" {
		name = DefaultName
	}
	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}
