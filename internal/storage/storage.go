// Package storage provides the blob backends that hold uploaded image files.
// Files are addressed by a flat name; the database rows decide which names are live.
package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"recipe-share-backend/internal/common"
)

// validName rejects anything that is not a plain file name
func validName(name string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: invalid file name %q", common.ErrNotFound, name)
	}
	return nil
}
