package course

import (
	"errors"
	"strconv"

	"github.com/alem-hub/campus-registrar/internal/domain/shared"
)

// ErrAlreadyEnrolled is returned when the student is already on the roster.
// It is informational and outside the tagged taxonomy.
var ErrAlreadyEnrolled = errors.New("student already enrolled in course")

// CheckEnrollment runs the guard checks in order: capacity, date shape,
// deadline, duplicate. Dates are compared as strings, so "01/01/24" is not
// past a "31/12/23" deadline.
func (c *Course) CheckEnrollment(e Enrollee, currentDate string) error {
	studentID := strconv.Itoa(e.ID())

	if len(c.roster) >= c.maxCapacity {
		return shared.NewCourseFullError(studentID, c.code, c.maxCapacity, len(c.roster))
	}
	if !shared.ValidateDate(currentDate) {
		return shared.NewMalformedDateError(studentID, c.code)
	}
	if currentDate > c.deadline {
		return shared.NewEnrollmentDeadlineError(studentID, c.code, c.deadline, currentDate)
	}
	if c.IsEnrolled(e.ID()) {
		return ErrAlreadyEnrolled
	}
	return nil
}

// Enroll appends e to the roster if CheckEnrollment passes.
func (c *Course) Enroll(e Enrollee, currentDate string) error {
	if err := c.CheckEnrollment(e, currentDate); err != nil {
		return err
	}
	c.roster = append(c.roster, RosterEntry{Key: e.Key(), PersonID: e.ID(), Name: e.Name()})
	return nil
}

// Drop removes the first roster entry with personID.
func (c *Course) Drop(personID int) (RosterEntry, error) {
	for i, entry := range c.roster {
		if entry.PersonID == personID {
			c.roster = append(c.roster[:i], c.roster[i+1:]...)
			return entry, nil
		}
	}
	return RosterEntry{}, shared.NewStudentNotFoundError(strconv.Itoa(personID), c.code)
}

// IsEnrolled reports whether personID is on the roster.
func (c *Course) IsEnrolled(personID int) bool {
	for _, entry := range c.roster {
		if entry.PersonID == personID {
			return true
		}
	}
	return false
}

// Roster returns a copy of the roster in enrollment order.
func (c *Course) Roster() []RosterEntry {
	out := make([]RosterEntry, len(c.roster))
	copy(out, c.roster)
	return out
}

// EnrolledCount returns the roster size.
func (c *Course) EnrolledCount() int {
	return len(c.roster)
}
