package memory

import (
	"io"
	"sync"

	"github.com/alem-hub/campus-registrar/internal/domain/schedule"
	"github.com/alem-hub/campus-registrar/internal/domain/shared"
)

// Timetable guards a schedule so the overlap check and the append of a
// booking happen under one lock.
type Timetable struct {
	mu sync.RWMutex
	s  *schedule.Schedule
}

// NewTimetable wraps s. A nil schedule starts empty.
func NewTimetable(s *schedule.Schedule) *Timetable {
	if s == nil {
		s = schedule.New()
	}
	return &Timetable{s: s}
}

func (t *Timetable) Add(day, start, end string, course, classroom shared.Key) (schedule.TimeSlot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.s.Add(day, start, end, course, classroom)
}

func (t *Timetable) Remove(day, start string, course shared.Key) (schedule.TimeSlot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.s.Remove(day, start, course)
}

func (t *Timetable) ForCourse(course shared.Key) []schedule.TimeSlot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.s.ForCourse(course)
}

func (t *Timetable) ForClassroom(classroom shared.Key) []schedule.TimeSlot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.s.ForClassroom(classroom)
}

func (t *Timetable) Slots() []schedule.TimeSlot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.s.Slots()
}

// Display writes the whole schedule.
func (t *Timetable) Display(w io.Writer, labels schedule.Labeler) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	t.s.Display(w, labels)
}
