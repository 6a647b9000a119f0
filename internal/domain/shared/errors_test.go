package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorDetails(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "system",
			err:  NewSystemError("Invalid enrollment date format", 500),
			want: "Error Code: 500, Message: Invalid enrollment date format",
		},
		{
			name: "course full",
			err:  NewCourseFullError("12345", "CS101", 30, 30),
			want: "Error Code: 101, Message: Course is at maximum capacity, Student ID: 12345, Course Code: CS101, Max Capacity: 30, Current Enrollment: 30",
		},
		{
			name: "malformed date",
			err:  NewMalformedDateError("12345", "CS101"),
			want: "Error Code: 102, Message: Invalid current date format, Student ID: 12345, Course Code: CS101",
		},
		{
			name: "deadline",
			err:  NewEnrollmentDeadlineError("12345", "CS101", "31/12/23", "31/12/24"),
			want: "Error Code: 103, Message: Enrollment deadline has passed, Student ID: 12345, Course Code: CS101, Deadline: 31/12/23, Current Date: 31/12/24",
		},
		{
			name: "student not found",
			err:  NewStudentNotFoundError("54321", "MAL151"),
			want: "Error Code: 104, Message: Student not found in course, Student ID: 54321, Course Code: MAL151",
		},
		{
			name: "invalid grade",
			err:  NewInvalidGradeError("12345", "CS101", 120, 0, 100),
			want: "Error Code: 201, Message: Invalid grade value, Student ID: 12345, Course Code: CS101, Invalid Grade: 120, Valid Range: 0-100",
		},
		{
			name: "requirements",
			err:  NewRequirementsIncompleteError("12345", "CS101", []string{"lab", "final"}),
			want: "Error Code: 203, Message: Student has not completed all requirements, Student ID: 12345, Course Code: CS101, Missing Requirements: lab, final",
		},
		{
			name: "payment calculation",
			err:  NewPaymentCalculationError("98765", 0, "missing role payload"),
			want: "Error Code: 301, Message: Error calculating payment, Person ID: 98765, Amount: 0.000000, Reason: missing role payload",
		},
		{
			name: "insufficient funds",
			err:  NewInsufficientFundsError("CS", 1500, 1000),
			want: "Error Code: 302, Message: Insufficient funds for payment, Person ID: CS, Amount: 1500.000000, Available Funds: 1000.000000, Shortage: 500.000000",
		},
		{
			name: "person",
			err:  NewPersonError("Name cannot be empty", "12345", 403),
			want: "Error Code: 403, Message: Name cannot be empty, Person ID: 12345",
		},
		{
			name: "invalid id",
			err:  NewInvalidIDError("0", "1234", "ID must be 5 digits"),
			want: "Error Code: 401, Message: Invalid person ID, Person ID: 0, Invalid ID: 1234, Reason: ID must be 5 digits",
		},
		{
			name: "invalid contact",
			err:  NewInvalidContactError("12345", "98172", "Contact number must be 10 digits"),
			want: "Error Code: 402, Message: Invalid contact information, Person ID: 12345, Invalid Contact: 98172, Reason: Contact number must be 10 digits",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Details())
		})
	}
}

func TestErrorIsFollowsTaxonomy(t *testing.T) {
	full := NewCourseFullError("12345", "CS101", 1, 1)

	assert.True(t, errors.Is(full, ErrCourseFull))
	assert.True(t, errors.Is(full, ErrEnrollment))
	assert.True(t, errors.Is(full, ErrSystem))
	assert.False(t, errors.Is(full, ErrEnrollmentDeadline))
	assert.False(t, errors.Is(full, ErrPerson))

	generic := NewEnrollmentError("x", "1", "C", 100)
	assert.True(t, errors.Is(generic, ErrEnrollment))
	assert.False(t, errors.Is(generic, ErrCourseFull), "a domain error is not one of its leaves")
}

func TestErrorIsThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("set id: %w", NewInvalidIDError("0", "1234", "ID must be 5 digits"))

	assert.True(t, errors.Is(wrapped, ErrInvalidID))
	assert.True(t, errors.Is(wrapped, ErrPerson))

	e, ok := AsError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeInvalidID, e.Code)
	assert.Equal(t, "1234", e.Payload.InvalidValue)
}

func TestKindParentAndDomain(t *testing.T) {
	assert.Equal(t, KindEnrollment, KindMalformedDate.Parent())
	assert.Equal(t, KindGrade, KindInvalidGrade.Parent())
	assert.Equal(t, KindPayment, KindInsufficientFunds.Parent())
	assert.Equal(t, KindPerson, KindInvalidContact.Parent())
	assert.Equal(t, KindSystem, KindPerson.Parent())
	assert.Equal(t, KindSystem, KindSystem.Parent())

	assert.Equal(t, "grade", KindRequirementsIncomplete.Domain())
	assert.Equal(t, "system", KindSystem.Domain())
}

func TestErrorMessage(t *testing.T) {
	err := NewStudentNotFoundError("1", "C")
	assert.Equal(t, "enrollment error 104: Student not found in course", err.Error())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "course_full", KindCourseFull.String())
	assert.Equal(t, "invalid_contact", KindInvalidContact.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
