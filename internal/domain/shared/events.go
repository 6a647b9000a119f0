package shared

import (
	"time"
)

// EventType represents the type of domain event.
type EventType string

const (
	// Enrollment events
	EventStudentEnrolled    EventType = "enrollment.student_enrolled"
	EventAlreadyEnrolled    EventType = "enrollment.already_enrolled"
	EventEnrollmentRejected EventType = "enrollment.rejected"
	EventStudentDropped     EventType = "enrollment.student_dropped"
	EventDropRejected       EventType = "enrollment.drop_rejected"

	// Schedule events
	EventSlotBooked   EventType = "schedule.slot_booked"
	EventSlotRejected EventType = "schedule.slot_rejected"
	EventSlotReleased EventType = "schedule.slot_released"
	EventSlotMissing  EventType = "schedule.slot_missing"
)

// Event is the base interface for all domain events.
type Event interface {
	EventType() EventType
	OccurredAt() time.Time
	AggregateID() string
	Payload() map[string]interface{}
}

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now(),
		AggregateId: aggregateID,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Enrollment Events
// ═══════════════════════════════════════════════════════════════════════════

// EnrollmentEvent is emitted for every roster decision. Reason and Details
// are set only for rejections and carry the error message and its full
// detail line.
type EnrollmentEvent struct {
	BaseEvent
	CourseCode  string `json:"course_code"`
	StudentID   int    `json:"student_id"`
	StudentName string `json:"student_name"`
	Reason      string `json:"reason,omitempty"`
	Details     string `json:"details,omitempty"`
}

// Payload implements Event interface.
func (e EnrollmentEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"course_code":  e.CourseCode,
		"student_id":   e.StudentID,
		"student_name": e.StudentName,
		"reason":       e.Reason,
		"details":      e.Details,
	}
}

// WithDetails returns a copy of e carrying details.
func (e EnrollmentEvent) WithDetails(details string) EnrollmentEvent {
	e.Details = details
	return e
}

// NewEnrollmentEvent creates a new EnrollmentEvent keyed by the course.
func NewEnrollmentEvent(eventType EventType, courseKey Key, courseCode string, studentID int, studentName, reason string) EnrollmentEvent {
	return EnrollmentEvent{
		BaseEvent:   NewBaseEvent(eventType, courseKey.String()),
		CourseCode:  courseCode,
		StudentID:   studentID,
		StudentName: studentName,
		Reason:      reason,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Schedule Events
// ═══════════════════════════════════════════════════════════════════════════

// ScheduleEvent is emitted for every booking decision.
type ScheduleEvent struct {
	BaseEvent
	Day        string `json:"day"`
	Start      string `json:"start"`
	End        string `json:"end"`
	CourseCode string `json:"course_code"`
	RoomNumber string `json:"room_number"`
}

// Payload implements Event interface.
func (e ScheduleEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"day":         e.Day,
		"start":       e.Start,
		"end":         e.End,
		"course_code": e.CourseCode,
		"room_number": e.RoomNumber,
	}
}

// NewScheduleEvent creates a new ScheduleEvent keyed by the classroom.
func NewScheduleEvent(eventType EventType, roomKey Key, day, start, end, courseCode, roomNumber string) ScheduleEvent {
	return ScheduleEvent{
		BaseEvent:  NewBaseEvent(eventType, roomKey.String()),
		Day:        day,
		Start:      start,
		End:        end,
		CourseCode: courseCode,
		RoomNumber: roomNumber,
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Bus contracts
// ═══════════════════════════════════════════════════════════════════════════

// EventHandler is a function that handles an event.
type EventHandler func(event Event) error

// EventPublisher defines the interface for publishing events.
type EventPublisher interface {
	// Publish sends an event to subscribers.
	Publish(event Event) error
}

// EventSubscriber defines the interface for subscribing to events.
type EventSubscriber interface {
	// Subscribe registers a handler for an event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for all events.
	SubscribeAll(handler EventHandler) error
}

// EventBus combines publishing and subscribing.
type EventBus interface {
	EventPublisher
	EventSubscriber
}
