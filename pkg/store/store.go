// Package store persists saved view configurations.
//
// This package defines the Store interface with implementations for
// different backends:
//   - memory: In-memory storage for development/testing
//   - file: File-based storage for CLI usage
//   - mongo: MongoDB-backed storage for server deployments
//
// A saved view is a named view configuration plus bookkeeping metadata.
// Snapshots are not stored here: they arrive with each compose request or
// live on disk next to the CLI.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/flowboardhq/flowboard/pkg/view"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a view does not exist.
	ErrNotFound = errors.New("not found")
)

// SavedView is a persisted view configuration.
type SavedView struct {
	ID        string      `json:"id" bson:"_id"`
	Name      string      `json:"name" bson:"name"`
	Config    view.Config `json:"config" bson:"config"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" bson:"updated_at"`
}

// Store is the interface for saved-view storage backends.
type Store interface {
	// Get retrieves a view by ID. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*SavedView, error)

	// List returns all saved views sorted by name.
	List(ctx context.Context) ([]SavedView, error)

	// Save stores a view. A view without an ID gets one assigned;
	// an existing ID overwrites the stored view.
	Save(ctx context.Context, v *SavedView) error

	// Delete removes a view. Deleting a missing view returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// prepare validates the view and fills in ID and timestamps before a save.
func prepare(v *SavedView) error {
	if err := v.Config.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if v.Name == "" {
		v.Name = v.Config.Name
	}
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = now
	}
	v.UpdatedAt = now
	return nil
}
