package halyard

import (
	"fmt"

	"github.com/google/renameio/v2"
)

// WriteFile persists the document to path. The write is atomic and durable:
// the content goes to a temp file in the target directory, is fsynced, and
// replaces the target via rename. New files are created with 0600 since
// dotenv files routinely hold secrets; existing permissions are kept.
func (d *Document) WriteFile(path string) error {
	pending, err := renameio.NewPendingFile(path,
		renameio.WithPermissions(0o600),
		renameio.WithExistingPermissions(),
	)
	if err != nil {
		return fmt.Errorf("halyard: create pending file for %s: %w", path, err)
	}
	defer pending.Cleanup() //nolint:errcheck // cleanup after commit is a no-op

	if _, err := d.WriteTo(pending); err != nil {
		return err
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("halyard: replace %s: %w", path, err)
	}
	return nil
}
