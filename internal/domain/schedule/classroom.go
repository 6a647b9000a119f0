// Package schedule books courses into classrooms without double-booking a
// room on the same day.
package schedule

import (
	"fmt"
	"io"

	"github.com/alem-hub/campus-registrar/internal/domain/shared"
)

// Classroom is a bookable room.
type Classroom struct {
	key          shared.Key
	roomNumber   string
	building     string
	capacity     int
	hasProjector bool
}

// NewClassroom creates a classroom with a fresh key.
func NewClassroom(roomNumber, building string, capacity int, hasProjector bool) *Classroom {
	return &Classroom{
		key:          shared.NewKey(),
		roomNumber:   roomNumber,
		building:     building,
		capacity:     capacity,
		hasProjector: hasProjector,
	}
}

func (c *Classroom) Key() shared.Key    { return c.key }
func (c *Classroom) RoomNumber() string { return c.roomNumber }
func (c *Classroom) Building() string   { return c.building }
func (c *Classroom) Capacity() int      { return c.capacity }
func (c *Classroom) HasProjector() bool { return c.hasProjector }

func (c *Classroom) SetRoomNumber(roomNumber string) error {
	if roomNumber == "" {
		return fmt.Errorf("room number: %w", shared.ErrEmptyValue)
	}
	c.roomNumber = roomNumber
	return nil
}

func (c *Classroom) SetBuilding(building string) error {
	if building == "" {
		return fmt.Errorf("building: %w", shared.ErrEmptyValue)
	}
	c.building = building
	return nil
}

func (c *Classroom) SetCapacity(capacity int) error {
	if capacity <= 0 {
		return fmt.Errorf("classroom capacity %d: %w", capacity, shared.ErrValueOutOfRange)
	}
	c.capacity = capacity
	return nil
}

func (c *Classroom) SetHasProjector(hasProjector bool) {
	c.hasProjector = hasProjector
}

// DisplayDetails writes the classroom summary.
func (c *Classroom) DisplayDetails(w io.Writer) {
	projector := "No"
	if c.hasProjector {
		projector = "Yes"
	}
	fmt.Fprintf(w, "Classroom Details:\nRoom Number: %s\nBuilding: %s\nCapacity: %d\nHas Projector: %s\n",
		c.roomNumber, c.building, c.capacity, projector)
}
