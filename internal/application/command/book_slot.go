package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/alem-hub/campus-registrar/internal/domain/course"
	"github.com/alem-hub/campus-registrar/internal/domain/schedule"
	"github.com/alem-hub/campus-registrar/internal/domain/shared"
	"github.com/alem-hub/campus-registrar/pkg/logger"
	"github.com/alem-hub/campus-registrar/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// BOOK / RELEASE TIME SLOT COMMANDS
// Unlike enrollment, scheduling failures are returned to the caller as well
// as announced.
// ══════════════════════════════════════════════════════════════════════════════

// Timetable is the guarded schedule the handlers mutate.
type Timetable interface {
	Add(day, start, end string, course, classroom shared.Key) (schedule.TimeSlot, error)
	Remove(day, start string, course shared.Key) (schedule.TimeSlot, error)
}

// ScheduleHandlerDeps are the collaborators of the slot handlers.
type ScheduleHandlerDeps struct {
	Courses    course.Repository
	Classrooms schedule.ClassroomRepository
	Timetable  Timetable
	Publisher  shared.EventPublisher
	Logger     *logger.Logger
}

// BookTimeSlotCommand books a room for a course. Times must be "HH:MM" or
// "H:MM"; "9:00" is normalized to "09:00" before comparison.
type BookTimeSlotCommand struct {
	Day        string
	Start      string
	End        string
	CourseCode string
	RoomNumber string
}

// Validate validates the command.
func (c BookTimeSlotCommand) Validate() error {
	switch {
	case c.Day == "":
		return fmt.Errorf("book_time_slot: day is required: %w", ErrValidation)
	case c.Start == "" || c.End == "":
		return fmt.Errorf("book_time_slot: start and end are required: %w", ErrValidation)
	case c.CourseCode == "" || c.RoomNumber == "":
		return fmt.Errorf("book_time_slot: course_code and room_number are required: %w", ErrValidation)
	}
	for _, v := range []string{c.Start, c.End} {
		if _, err := timeutil.ParseSlotTime(v); err != nil {
			return fmt.Errorf("book_time_slot: %v: %w", err, ErrValidation)
		}
	}
	return nil
}

// BookTimeSlotHandler handles the BookTimeSlotCommand.
type BookTimeSlotHandler struct {
	deps ScheduleHandlerDeps
	log  *logger.Logger
}

// NewBookTimeSlotHandler creates a new BookTimeSlotHandler.
func NewBookTimeSlotHandler(deps ScheduleHandlerDeps) *BookTimeSlotHandler {
	return &BookTimeSlotHandler{
		deps: deps,
		log:  orDefault(deps.Logger).With(logger.Operation("book_time_slot")),
	}
}

// Handle books the slot, or returns an error wrapping
// schedule.ErrSlotConflict when the room is taken.
func (h *BookTimeSlotHandler) Handle(ctx context.Context, cmd BookTimeSlotCommand) (schedule.TimeSlot, error) {
	if err := cmd.Validate(); err != nil {
		return schedule.TimeSlot{}, err
	}

	crs, err := h.deps.Courses.GetByCode(ctx, cmd.CourseCode)
	if err != nil {
		return schedule.TimeSlot{}, fmt.Errorf("book_time_slot: %w", err)
	}
	room, err := h.deps.Classrooms.GetByRoomNumber(ctx, cmd.RoomNumber)
	if err != nil {
		return schedule.TimeSlot{}, fmt.Errorf("book_time_slot: %w", err)
	}

	start := timeutil.NormalizeSlotTime(cmd.Start)
	end := timeutil.NormalizeSlotTime(cmd.End)
	log := h.log.With(logger.CourseCode(crs.Code()), logger.RoomNumber(room.RoomNumber()), logger.Day(cmd.Day))

	slot, err := h.deps.Timetable.Add(cmd.Day, start, end, crs.Key(), room.Key())
	if err != nil {
		var conflict *schedule.ConflictError
		if errors.As(err, &conflict) {
			log.Warn("time slot conflict",
				logger.String("existing_start", conflict.Existing.Start),
				logger.String("existing_end", conflict.Existing.End),
			)
		}
		publish(log, h.deps.Publisher, shared.NewScheduleEvent(shared.EventSlotRejected, room.Key(), cmd.Day, start, end, crs.Code(), room.RoomNumber()))
		return schedule.TimeSlot{}, fmt.Errorf("book_time_slot: %w", err)
	}

	log.Info("time slot booked", logger.String("start", start), logger.String("end", end))
	publish(log, h.deps.Publisher, shared.NewScheduleEvent(shared.EventSlotBooked, room.Key(), slot.Day, slot.Start, slot.End, crs.Code(), room.RoomNumber()))
	return slot, nil
}

// ReleaseTimeSlotCommand removes the slot a course holds at day and start.
type ReleaseTimeSlotCommand struct {
	Day        string
	Start      string
	CourseCode string
}

// Validate validates the command.
func (c ReleaseTimeSlotCommand) Validate() error {
	if c.Day == "" || c.Start == "" || c.CourseCode == "" {
		return fmt.Errorf("release_time_slot: day, start and course_code are required: %w", ErrValidation)
	}
	if _, err := timeutil.ParseSlotTime(c.Start); err != nil {
		return fmt.Errorf("release_time_slot: %v: %w", err, ErrValidation)
	}
	return nil
}

// ReleaseTimeSlotHandler handles the ReleaseTimeSlotCommand.
type ReleaseTimeSlotHandler struct {
	deps ScheduleHandlerDeps
	log  *logger.Logger
}

// NewReleaseTimeSlotHandler creates a new ReleaseTimeSlotHandler.
func NewReleaseTimeSlotHandler(deps ScheduleHandlerDeps) *ReleaseTimeSlotHandler {
	return &ReleaseTimeSlotHandler{
		deps: deps,
		log:  orDefault(deps.Logger).With(logger.Operation("release_time_slot")),
	}
}

// Handle removes the slot, or returns an error wrapping
// schedule.ErrSlotNotFound.
func (h *ReleaseTimeSlotHandler) Handle(ctx context.Context, cmd ReleaseTimeSlotCommand) (schedule.TimeSlot, error) {
	if err := cmd.Validate(); err != nil {
		return schedule.TimeSlot{}, err
	}

	crs, err := h.deps.Courses.GetByCode(ctx, cmd.CourseCode)
	if err != nil {
		return schedule.TimeSlot{}, fmt.Errorf("release_time_slot: %w", err)
	}

	start := timeutil.NormalizeSlotTime(cmd.Start)
	log := h.log.With(logger.CourseCode(crs.Code()), logger.Day(cmd.Day))

	slot, err := h.deps.Timetable.Remove(cmd.Day, start, crs.Key())
	if err != nil {
		log.Warn("time slot not found", logger.String("start", start))
		publish(log, h.deps.Publisher, shared.NewScheduleEvent(shared.EventSlotMissing, "", cmd.Day, start, "", crs.Code(), ""))
		return schedule.TimeSlot{}, fmt.Errorf("release_time_slot: %w", err)
	}

	roomNumber := "?"
	if room, err := h.deps.Classrooms.GetByKey(ctx, slot.Classroom); err == nil {
		roomNumber = room.RoomNumber()
	}
	log.Info("time slot released", logger.RoomNumber(roomNumber))
	publish(log, h.deps.Publisher, shared.NewScheduleEvent(shared.EventSlotReleased, slot.Classroom, slot.Day, slot.Start, slot.End, crs.Code(), roomNumber))
	return slot, nil
}
