package masterdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/swagforge/swagforge-cli/internal/core/postman"
)

// SetLoginCollection stores a login collection to prepend to every converted
// collection. The collection must carry info and item fields.
func (r *Repository) SetLoginCollection(collection map[string]any) error {
	if err := postman.Validate(collection); err != nil {
		return err
	}
	r.login = collection
	return nil
}

// LoginCollection returns the stored login collection, nil when none is set.
func (r *Repository) LoginCollection() map[string]any {
	return r.login
}

// LoginItems returns the login collection's item list, nil when no login
// collection is stored.
func (r *Repository) LoginItems() []any {
	if r.login == nil {
		return nil
	}
	return postman.Items(r.login)
}

// DeleteLoginCollection removes the stored login collection, both in memory
// and on disk.
func (r *Repository) DeleteLoginCollection() error {
	if r.login == nil {
		return fmt.Errorf("login collection: %w", ErrNotFound)
	}
	r.login = nil
	if err := os.Remove(filepath.Join(r.dir, loginFile)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete login collection: %w", err)
	}
	return nil
}
