// Package console prints the registrar's notices and listings for a human at
// a terminal.
package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/alem-hub/campus-registrar/internal/domain/shared"
)

// Notifier prints one line per domain event.
type Notifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewNotifier creates a notifier writing to w.
func NewNotifier(w io.Writer) *Notifier {
	return &Notifier{w: w}
}

// Attach subscribes the notifier to every event on bus.
func (n *Notifier) Attach(bus shared.EventSubscriber) error {
	return bus.SubscribeAll(n.Handle)
}

// Handle implements shared.EventHandler. Events without a notice are ignored.
func (n *Notifier) Handle(e shared.Event) error {
	msg, ok := Message(e)
	if !ok {
		return nil
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := fmt.Fprintln(n.w, msg)
	return err
}

// Message renders the notice for e.
func Message(e shared.Event) (string, bool) {
	switch ev := e.(type) {
	case shared.EnrollmentEvent:
		switch ev.EventType() {
		case shared.EventStudentEnrolled:
			return "Student Enrolled in Course Successfully!", true
		case shared.EventAlreadyEnrolled:
			return "Student Already Enrolled in this Course!", true
		case shared.EventEnrollmentRejected:
			return withDetails("Enrollment Error: "+ev.Reason, ev.Details), true
		case shared.EventStudentDropped:
			return "Student Dropped from Course Successfully!", true
		case shared.EventDropRejected:
			return withDetails("Drop Student Error: "+ev.Reason, ev.Details), true
		}
	case shared.ScheduleEvent:
		switch ev.EventType() {
		case shared.EventSlotBooked:
			return "Time Slot Added Successfully!", true
		case shared.EventSlotRejected:
			return fmt.Sprintf("Time Slot Conflict in Room %s!\nTime Slot Not Added!", ev.RoomNumber), true
		case shared.EventSlotReleased:
			return "Time Slot Removed Successfully!", true
		case shared.EventSlotMissing:
			return "Time Slot Not Found!", true
		}
	}
	return "", false
}

func withDetails(msg, details string) string {
	if details == "" {
		return msg
	}
	return msg + "\n" + details
}
