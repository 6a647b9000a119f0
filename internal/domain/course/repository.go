package course

import (
	"context"

	"github.com/alem-hub/campus-registrar/internal/domain/shared"
)

// Repository stores courses by key.
// Implementations live in infrastructure/persistence.
type Repository interface {
	// Save inserts or replaces the course.
	Save(ctx context.Context, c *Course) error

	// GetByKey returns shared.ErrNotFound if the key is unknown.
	GetByKey(ctx context.Context, key shared.Key) (*Course, error)

	// GetByCode returns the first course with the code, or shared.ErrNotFound.
	GetByCode(ctx context.Context, code string) (*Course, error)

	// List returns all courses in insertion order.
	List(ctx context.Context) ([]*Course, error)

	// Delete releases the course. Rosters are not cascaded anywhere.
	Delete(ctx context.Context, key shared.Key) error
}
