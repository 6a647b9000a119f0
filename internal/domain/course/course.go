// Package course holds the Course entity and its Enrollment Guard: the
// capacity, date, deadline and duplicate checks in front of the roster.
package course

import (
	"fmt"

	"github.com/alem-hub/campus-registrar/internal/domain/people"
	"github.com/alem-hub/campus-registrar/internal/domain/shared"
)

// DefaultMaxCapacity is used when a course is created without a capacity.
const DefaultMaxCapacity = 30

// Enrollee is what the guard needs to know about a student.
type Enrollee interface {
	Key() shared.Key
	ID() int
	Name() string
}

// RosterEntry is a roster line. Name is captured at enrollment time.
type RosterEntry struct {
	Key      shared.Key
	PersonID int
	Name     string
}

// Course is a course offering. The roster never holds two entries with the
// same PersonID and never grows beyond MaxCapacity.
type Course struct {
	key         shared.Key
	code        string
	title       string
	description string
	credits     float64

	instructor     shared.Key
	instructorName string

	roster      []RosterEntry
	maxCapacity int
	deadline    string
}

// NewCourse creates a course. A non-positive maxCapacity falls back to
// DefaultMaxCapacity; the deadline starts at shared.DefaultEnrollmentDeadline.
func NewCourse(code, title, description string, credits float64, maxCapacity int) *Course {
	if maxCapacity <= 0 {
		maxCapacity = DefaultMaxCapacity
	}
	return &Course{
		key:         shared.NewKey(),
		code:        code,
		title:       title,
		description: description,
		credits:     credits,
		maxCapacity: maxCapacity,
		deadline:    shared.DefaultEnrollmentDeadline,
	}
}

func (c *Course) Key() shared.Key            { return c.key }
func (c *Course) Code() string               { return c.code }
func (c *Course) Title() string              { return c.title }
func (c *Course) Description() string        { return c.description }
func (c *Course) Credits() float64           { return c.credits }
func (c *Course) Instructor() shared.Key     { return c.instructor }
func (c *Course) InstructorName() string     { return c.instructorName }
func (c *Course) MaxCapacity() int           { return c.maxCapacity }
func (c *Course) EnrollmentDeadline() string { return c.deadline }

// SetCode sets a non-empty course code.
func (c *Course) SetCode(code string) error {
	if code == "" {
		return fmt.Errorf("course code: %w", shared.ErrEmptyValue)
	}
	c.code = code
	return nil
}

// SetTitle sets a non-empty title.
func (c *Course) SetTitle(title string) error {
	if title == "" {
		return fmt.Errorf("course title: %w", shared.ErrEmptyValue)
	}
	c.title = title
	return nil
}

func (c *Course) SetDescription(description string) {
	c.description = description
}

// SetCredits sets a positive credit value.
func (c *Course) SetCredits(credits float64) error {
	if credits <= 0 {
		return fmt.Errorf("course credits %g: %w", credits, shared.ErrValueOutOfRange)
	}
	c.credits = credits
	return nil
}

// SetMaxCapacity sets a positive capacity that still fits the current roster.
func (c *Course) SetMaxCapacity(capacity int) error {
	if capacity <= 0 || capacity < len(c.roster) {
		return fmt.Errorf("course capacity %d (enrolled %d): %w", capacity, len(c.roster), shared.ErrValueOutOfRange)
	}
	c.maxCapacity = capacity
	return nil
}

// SetEnrollmentDeadline sets a DD/MM/YY shaped deadline.
func (c *Course) SetEnrollmentDeadline(deadline string) error {
	if !shared.ValidateDate(deadline) {
		return fmt.Errorf("enrollment deadline %q: %w", deadline, shared.ErrInvalidFormat)
	}
	c.deadline = deadline
	return nil
}

// SetInstructor assigns a professor. A nil professor clears the instructor.
func (c *Course) SetInstructor(professor *people.Member) error {
	if professor == nil {
		c.instructor, c.instructorName = "", ""
		return nil
	}
	if !professor.Role().IsProfessor() {
		return fmt.Errorf("instructor %d is a %s: %w", professor.ID(), professor.Role(), shared.ErrConflict)
	}
	c.instructor = professor.Key()
	c.instructorName = professor.Name()
	return nil
}
