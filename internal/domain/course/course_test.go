package course

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/campus-registrar/internal/domain/people"
	"github.com/alem-hub/campus-registrar/internal/domain/shared"
)

type stubEnrollee struct {
	key  shared.Key
	id   int
	name string
}

func (s stubEnrollee) Key() shared.Key { return s.key }
func (s stubEnrollee) ID() int         { return s.id }
func (s stubEnrollee) Name() string    { return s.name }

func student(id int, name string) stubEnrollee {
	return stubEnrollee{key: shared.NewKey(), id: id, name: name}
}

func TestEnrollAddsOnceAndDeduplicates(t *testing.T) {
	c := NewCourse("CS101", "Intro", "", 4, 0)
	s := student(12345, "Kanan")

	require.NoError(t, c.Enroll(s, "15/09/23"))
	assert.Equal(t, 1, c.EnrolledCount())

	err := c.Enroll(s, "15/09/23")
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
	assert.Equal(t, 1, c.EnrolledCount())

	// Duplicates are detected by person ID, not by key.
	err = c.Enroll(student(12345, "Someone Else"), "15/09/23")
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)
	assert.Equal(t, 1, c.EnrolledCount())
}

func TestEnrollCapacity(t *testing.T) {
	c := NewCourse("CS101", "Intro", "", 4, 2)

	require.NoError(t, c.Enroll(student(11111, "a"), "01/01/23"))
	require.NoError(t, c.Enroll(student(22222, "b"), "01/01/23"))

	err := c.Enroll(student(33333, "c"), "01/01/23")
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrCourseFull))
	assert.True(t, errors.Is(err, shared.ErrEnrollment))
	assert.Equal(t, 2, c.EnrolledCount())

	e, ok := shared.AsError(err)
	require.True(t, ok)
	assert.Equal(t, 2, e.Payload.MaxCapacity)
	assert.Equal(t, 2, e.Payload.CurrentEnrollment)
	assert.Equal(t, "33333", e.Payload.StudentID)
}

func TestEnrollCapacityCheckedBeforeDuplicate(t *testing.T) {
	c := NewCourse("CS101", "Intro", "", 4, 1)
	s := student(11111, "a")
	require.NoError(t, c.Enroll(s, "01/01/23"))

	assert.True(t, errors.Is(c.Enroll(s, "01/01/23"), shared.ErrCourseFull))
}

func TestEnrollDateChecks(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		wantErr error
	}{
		{"before deadline", "15/09/23", nil},
		{"on deadline", "31/12/23", nil},
		// String comparison: "01/01/24" < "31/12/23".
		{"next year sorts earlier", "01/01/24", nil},
		{"calendar invalid but well shaped", "31/02/23", nil},
		{"string greater than deadline", "31/12/24", shared.ErrEnrollmentDeadline},
		{"malformed", "2023-12-01", shared.ErrMalformedDate},
		{"month out of range", "13/13/23", shared.ErrMalformedDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCourse("CS101", "Intro", "", 4, 0)
			err := c.Enroll(student(12345, "Kanan"), tt.date)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, 1, c.EnrolledCount())
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Equal(t, 0, c.EnrolledCount())
		})
	}
}

func TestEnrollDeadlinePayload(t *testing.T) {
	c := NewCourse("MAL151", "Linear Algebra", "", 4, 0)
	require.NoError(t, c.SetEnrollmentDeadline("15/06/24"))

	err := c.Enroll(student(54321, "Aditi"), "16/06/24")
	e, ok := shared.AsError(err)
	require.True(t, ok)
	assert.Equal(t, shared.CodeEnrollmentDeadline, e.Code)
	assert.Equal(t, "Error Code: 103, Message: Enrollment deadline has passed, Student ID: 54321, Course Code: MAL151, Deadline: 15/06/24, Current Date: 16/06/24", e.Details())
}

func TestEnrollMalformedDateCode(t *testing.T) {
	c := NewCourse("CS101", "Intro", "", 4, 0)
	e, ok := shared.AsError(c.Enroll(student(12345, "Kanan"), "1/1"))
	require.True(t, ok)
	assert.Equal(t, 102, e.Code)
	assert.Equal(t, "Invalid current date format", e.Message)
}

func TestDrop(t *testing.T) {
	c := NewCourse("CS101", "Intro", "", 4, 0)
	require.NoError(t, c.Enroll(student(11111, "a"), "01/01/23"))
	require.NoError(t, c.Enroll(student(22222, "b"), "01/01/23"))

	entry, err := c.Drop(11111)
	require.NoError(t, err)
	assert.Equal(t, "a", entry.Name)
	assert.False(t, c.IsEnrolled(11111))
	assert.Equal(t, []int{22222}, ids(c.Roster()))

	_, err = c.Drop(11111)
	assert.True(t, errors.Is(err, shared.ErrStudentNotFound))
	e, _ := shared.AsError(err)
	assert.Equal(t, shared.CodeStudentNotFound, e.Code)
	assert.Equal(t, "CS101", e.Payload.CourseCode)
}

func TestRosterIsSnapshot(t *testing.T) {
	c := NewCourse("CS101", "Intro", "", 4, 0)
	require.NoError(t, c.Enroll(student(11111, "a"), "01/01/23"))

	r := c.Roster()
	r[0].Name = "changed"
	assert.Equal(t, "a", c.Roster()[0].Name)
}

func TestSetters(t *testing.T) {
	c := NewCourse("CS101", "Intro", "", 4, 0)
	assert.Equal(t, DefaultMaxCapacity, c.MaxCapacity())
	assert.Equal(t, "31/12/23", c.EnrollmentDeadline())

	assert.ErrorIs(t, c.SetCode(""), shared.ErrEmptyValue)
	assert.ErrorIs(t, c.SetTitle(""), shared.ErrEmptyValue)
	assert.ErrorIs(t, c.SetCredits(0), shared.ErrValueOutOfRange)
	assert.ErrorIs(t, c.SetMaxCapacity(0), shared.ErrValueOutOfRange)
	assert.ErrorIs(t, c.SetEnrollmentDeadline("31-12-23"), shared.ErrInvalidFormat)
	assert.Equal(t, "CS101", c.Code())

	require.NoError(t, c.Enroll(student(11111, "a"), "01/01/23"))
	require.NoError(t, c.Enroll(student(22222, "b"), "01/01/23"))
	assert.ErrorIs(t, c.SetMaxCapacity(1), shared.ErrValueOutOfRange, "capacity below roster size")
	require.NoError(t, c.SetMaxCapacity(2))
}

func TestSetInstructor(t *testing.T) {
	c := NewCourse("CS101", "Intro", "", 4, 0)

	assert.ErrorIs(t, c.SetInstructor(people.NewStudent("", "", 0)), shared.ErrConflict)

	prof := people.NewProfessor("CS", "01/06/20", "ML")
	require.NoError(t, prof.SetName("Richa Singh"))
	require.NoError(t, c.SetInstructor(prof))
	assert.Equal(t, prof.Key(), c.Instructor())

	var buf bytes.Buffer
	c.DisplayDetails(&buf)
	assert.Contains(t, buf.String(), "Instructor: Richa Singh\n")
	assert.Contains(t, buf.String(), "Enrolled Students: 0\n")
}

func TestDisplayRoster(t *testing.T) {
	c := NewCourse("CS101", "Intro", "", 4, 0)

	var buf bytes.Buffer
	c.DisplayRoster(&buf)
	assert.Equal(t, "No Students Enrolled in this Course!\n", buf.String())

	require.NoError(t, c.Enroll(student(11111, "Kanan"), "01/01/23"))
	buf.Reset()
	c.DisplayRoster(&buf)
	assert.Equal(t, "Students Enrolled in Intro:\nID: 11111, Name: Kanan\n", buf.String())
}

func TestMemberIsEnrollee(t *testing.T) {
	var _ Enrollee = people.NewStudent("", "", 0)
}

func ids(entries []RosterEntry) []int {
	out := make([]int, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.PersonID)
	}
	return out
}
