// package models defines the data model for the replay viewer
package models

import (
	"time"
)

// Model is a record persisted by a [Repository]. Only cache entries are persisted; tracking
// samples and events live in memory for the length of a replay.
type Model interface {
	ID() string
	CreatedAt() time.Time
	UpdatedAt() time.Time
	Validate() error // Rejects a record that must not be written
}

// Repository is the CRUD surface over one persisted model type.
//
// Get, Update and Delete report [shared.ErrNotFound] for unknown ids. List filters by criteria,
// whose supported keys are documented on each implementation.
type Repository[T Model] interface {
	Create(model T) error
	Get(id string) (T, error)
	Update(model T) error
	Delete(id string) error
	List(criteria map[string]any) ([]T, error)
}
