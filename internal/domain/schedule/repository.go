package schedule

import (
	"context"

	"github.com/alem-hub/campus-registrar/internal/domain/shared"
)

// ClassroomRepository stores classrooms by key.
type ClassroomRepository interface {
	Save(ctx context.Context, c *Classroom) error

	// GetByKey returns shared.ErrNotFound if the key is unknown.
	GetByKey(ctx context.Context, key shared.Key) (*Classroom, error)

	// GetByRoomNumber returns the first classroom with the number, or
	// shared.ErrNotFound.
	GetByRoomNumber(ctx context.Context, roomNumber string) (*Classroom, error)

	List(ctx context.Context) ([]*Classroom, error)
	Delete(ctx context.Context, key shared.Key) error
}
