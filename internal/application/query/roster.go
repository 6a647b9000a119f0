package query

import (
	"context"
	"fmt"

	"github.com/alem-hub/campus-registrar/internal/domain/course"
	"github.com/alem-hub/campus-registrar/internal/infrastructure/errorlog"
)

// ══════════════════════════════════════════════════════════════════════════════
// ROSTER QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetRosterQuery asks for a course roster. An empty code lists every course.
type GetRosterQuery struct {
	CourseCode string
}

// RosterEntryDTO is one enrolled student.
type RosterEntryDTO struct {
	StudentID int    `json:"student_id"`
	Name      string `json:"name"`
}

// RosterDTO describes a course and its roster.
type RosterDTO struct {
	CourseCode  string           `json:"course_code"`
	Title       string           `json:"title"`
	Instructor  string           `json:"instructor,omitempty"`
	MaxCapacity int              `json:"max_capacity"`
	Deadline    string           `json:"deadline"`
	Students    []RosterEntryDTO `json:"students"`
}

// Available is the number of free seats.
func (r RosterDTO) Available() int {
	return r.MaxCapacity - len(r.Students)
}

// RosterHandler answers roster queries.
type RosterHandler struct {
	courses course.Repository
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(courses course.Repository) *RosterHandler {
	return &RosterHandler{courses: courses}
}

// Handle returns the rosters matching q.
func (h *RosterHandler) Handle(ctx context.Context, q GetRosterQuery) ([]RosterDTO, error) {
	var courses []*course.Course
	if q.CourseCode != "" {
		crs, err := h.courses.GetByCode(ctx, q.CourseCode)
		if err != nil {
			return nil, fmt.Errorf("roster: %w", err)
		}
		courses = []*course.Course{crs}
	} else {
		all, err := h.courses.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("roster: %w", err)
		}
		courses = all
	}

	out := make([]RosterDTO, 0, len(courses))
	for _, c := range courses {
		dto := RosterDTO{
			CourseCode:  c.Code(),
			Title:       c.Title(),
			Instructor:  c.InstructorName(),
			MaxCapacity: c.MaxCapacity(),
			Deadline:    c.EnrollmentDeadline(),
		}
		for _, e := range c.Roster() {
			dto.Students = append(dto.Students, RosterEntryDTO{StudentID: e.PersonID, Name: e.Name})
		}
		out = append(out, dto)
	}
	return out, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// RECENT ERRORS QUERY
// ══════════════════════════════════════════════════════════════════════════════

// ErrorHistory reads recorded failures back, newest first.
type ErrorHistory interface {
	Recent(ctx context.Context, limit int) ([]errorlog.Entry, error)
}

// GetRecentErrorsQuery asks for the last Limit error log entries.
type GetRecentErrorsQuery struct {
	Limit int
}

// RecentErrorsHandler answers GetRecentErrorsQuery.
type RecentErrorsHandler struct {
	history ErrorHistory
}

// NewRecentErrorsHandler creates a new RecentErrorsHandler.
func NewRecentErrorsHandler(history ErrorHistory) *RecentErrorsHandler {
	return &RecentErrorsHandler{history: history}
}

// Handle returns up to q.Limit entries; a limit of zero means 20.
func (h *RecentErrorsHandler) Handle(ctx context.Context, q GetRecentErrorsQuery) ([]errorlog.Entry, error) {
	if q.Limit < 0 {
		return nil, fmt.Errorf("recent errors: negative limit %d", q.Limit)
	}
	if q.Limit == 0 {
		q.Limit = 20
	}
	entries, err := h.history.Recent(ctx, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("recent errors: %w", err)
	}
	return entries, nil
}
