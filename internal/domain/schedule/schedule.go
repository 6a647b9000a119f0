package schedule

import (
	"errors"
	"fmt"
	"io"

	"github.com/alem-hub/campus-registrar/internal/domain/shared"
)

var (
	// ErrSlotConflict is returned when a booking overlaps another booking of
	// the same room on the same day.
	ErrSlotConflict = fmt.Errorf("time slot conflict: %w", shared.ErrConflict)

	// ErrSlotNotFound is returned when no slot matches a removal.
	ErrSlotNotFound = fmt.Errorf("time slot: %w", shared.ErrNotFound)
)

// TimeSlot is one booking. Times are compared as strings, so they must be
// fixed width and zero padded ("09:00").
type TimeSlot struct {
	Day       string
	Start     string
	End       string
	Course    shared.Key
	Classroom shared.Key
}

// Overlaps reports whether [start, end) collides with the slot's interval.
func (s TimeSlot) Overlaps(start, end string) bool {
	return (start >= s.Start && start < s.End) ||
		(end > s.Start && end <= s.End) ||
		(start <= s.Start && end >= s.End)
}

// Schedule holds time slots in insertion order. No two slots with the same
// day and classroom overlap.
type Schedule struct {
	slots []TimeSlot
}

// New creates an empty schedule.
func New() *Schedule {
	return &Schedule{}
}

// Add books a slot, or returns an error wrapping ErrSlotConflict with the
// slot it collides with.
func (s *Schedule) Add(day, start, end string, course, classroom shared.Key) (TimeSlot, error) {
	if existing, ok := s.Conflict(day, start, end, classroom); ok {
		return TimeSlot{}, &ConflictError{Existing: existing}
	}
	slot := TimeSlot{Day: day, Start: start, End: end, Course: course, Classroom: classroom}
	s.slots = append(s.slots, slot)
	return slot, nil
}

// Conflict returns the first slot of classroom on day that overlaps [start, end).
func (s *Schedule) Conflict(day, start, end string, classroom shared.Key) (TimeSlot, bool) {
	for _, slot := range s.slots {
		if slot.Day == day && slot.Classroom == classroom && slot.Overlaps(start, end) {
			return slot, true
		}
	}
	return TimeSlot{}, false
}

// Remove deletes the slot matching day, start and course exactly.
func (s *Schedule) Remove(day, start string, course shared.Key) (TimeSlot, error) {
	for i, slot := range s.slots {
		if slot.Day == day && slot.Start == start && slot.Course == course {
			s.slots = append(s.slots[:i], s.slots[i+1:]...)
			return slot, nil
		}
	}
	return TimeSlot{}, ErrSlotNotFound
}

// ForCourse returns a copy of the course's slots in insertion order.
func (s *Schedule) ForCourse(course shared.Key) []TimeSlot {
	return s.filter(func(t TimeSlot) bool { return t.Course == course })
}

// ForClassroom returns a copy of the classroom's slots in insertion order.
func (s *Schedule) ForClassroom(classroom shared.Key) []TimeSlot {
	return s.filter(func(t TimeSlot) bool { return t.Classroom == classroom })
}

// Slots returns a copy of all slots.
func (s *Schedule) Slots() []TimeSlot {
	return s.filter(func(TimeSlot) bool { return true })
}

func (s *Schedule) filter(keep func(TimeSlot) bool) []TimeSlot {
	out := make([]TimeSlot, 0)
	for _, slot := range s.slots {
		if keep(slot) {
			out = append(out, slot)
		}
	}
	return out
}

// Labeler resolves keys to the course code and room number shown in listings.
type Labeler interface {
	CourseCode(key shared.Key) string
	RoomNumber(key shared.Key) string
}

// Display writes the schedule as a tab separated table.
func (s *Schedule) Display(w io.Writer, labels Labeler) {
	if len(s.slots) == 0 {
		fmt.Fprint(w, "No Time Slots in Schedule!\n")
		return
	}
	fmt.Fprint(w, "Schedule:\nDay\tStart\tEnd\tCourse\tRoom\n")
	for _, slot := range s.slots {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			slot.Day, slot.Start, slot.End, labels.CourseCode(slot.Course), labels.RoomNumber(slot.Classroom))
	}
}

// ConflictError carries the slot a rejected booking collided with.
type ConflictError struct {
	Existing TimeSlot
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time slot conflict on %s %s-%s", e.Existing.Day, e.Existing.Start, e.Existing.End)
}

// Is matches ErrSlotConflict and shared.ErrConflict.
func (e *ConflictError) Is(target error) bool {
	return target == ErrSlotConflict || errors.Is(ErrSlotConflict, target)
}
