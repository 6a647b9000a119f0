// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/alem-hub/campus-registrar/internal/domain/course"
	"github.com/alem-hub/campus-registrar/internal/domain/schedule"
	"github.com/alem-hub/campus-registrar/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SCHEDULE QUERIES
// Time slots of one course or one classroom, in booking order.
// ══════════════════════════════════════════════════════════════════════════════

// SlotReader is the read side of the timetable.
type SlotReader interface {
	ForCourse(course shared.Key) []schedule.TimeSlot
	ForClassroom(classroom shared.Key) []schedule.TimeSlot
}

// SlotDTO is one booking with its keys resolved.
type SlotDTO struct {
	Day        string `json:"day"`
	Start      string `json:"start"`
	End        string `json:"end"`
	CourseCode string `json:"course_code"`
	RoomNumber string `json:"room_number"`
}

// ScheduleDTO is the schedule of one course or classroom.
type ScheduleDTO struct {
	// Subject is the course code or room number the schedule belongs to.
	Subject string    `json:"subject"`
	Slots   []SlotDTO `json:"slots"`
}

// GetCourseScheduleQuery asks for a course's slots.
type GetCourseScheduleQuery struct {
	CourseCode string
}

// GetClassroomScheduleQuery asks for a classroom's slots.
type GetClassroomScheduleQuery struct {
	RoomNumber string
}

// ScheduleHandler answers both schedule queries.
type ScheduleHandler struct {
	courses    course.Repository
	classrooms schedule.ClassroomRepository
	slots      SlotReader
	labels     schedule.Labeler
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(courses course.Repository, classrooms schedule.ClassroomRepository, slots SlotReader, labels schedule.Labeler) *ScheduleHandler {
	return &ScheduleHandler{courses: courses, classrooms: classrooms, slots: slots, labels: labels}
}

// CourseSchedule returns the course's slots.
func (h *ScheduleHandler) CourseSchedule(ctx context.Context, q GetCourseScheduleQuery) (*ScheduleDTO, error) {
	if q.CourseCode == "" {
		return nil, errors.New("course_code is required")
	}
	crs, err := h.courses.GetByCode(ctx, q.CourseCode)
	if err != nil {
		return nil, fmt.Errorf("course schedule: %w", err)
	}
	return h.toDTO(crs.Code(), h.slots.ForCourse(crs.Key())), nil
}

// ClassroomSchedule returns the classroom's slots.
func (h *ScheduleHandler) ClassroomSchedule(ctx context.Context, q GetClassroomScheduleQuery) (*ScheduleDTO, error) {
	if q.RoomNumber == "" {
		return nil, errors.New("room_number is required")
	}
	room, err := h.classrooms.GetByRoomNumber(ctx, q.RoomNumber)
	if err != nil {
		return nil, fmt.Errorf("classroom schedule: %w", err)
	}
	return h.toDTO(room.RoomNumber(), h.slots.ForClassroom(room.Key())), nil
}

func (h *ScheduleHandler) toDTO(subject string, slots []schedule.TimeSlot) *ScheduleDTO {
	dto := &ScheduleDTO{Subject: subject, Slots: make([]SlotDTO, 0, len(slots))}
	for _, s := range slots {
		dto.Slots = append(dto.Slots, SlotDTO{
			Day:        s.Day,
			Start:      s.Start,
			End:        s.End,
			CourseCode: h.labels.CourseCode(s.Course),
			RoomNumber: h.labels.RoomNumber(s.Classroom),
		})
	}
	return dto
}
