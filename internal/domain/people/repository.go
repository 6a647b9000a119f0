package people

import (
	"context"

	"github.com/alem-hub/campus-registrar/internal/domain/shared"
)

// Repository stores members by key.
// Implementations live in infrastructure/persistence.
type Repository interface {
	// Save inserts or replaces the member.
	Save(ctx context.Context, m *Member) error

	// GetByKey returns shared.ErrNotFound if the key is unknown.
	GetByKey(ctx context.Context, key shared.Key) (*Member, error)

	// GetByPersonID returns the first member with the 5-digit ID, or
	// shared.ErrNotFound.
	GetByPersonID(ctx context.Context, id int) (*Member, error)

	// List returns all members in insertion order.
	List(ctx context.Context) ([]*Member, error)

	// Delete releases the member.
	Delete(ctx context.Context, key shared.Key) error
}
