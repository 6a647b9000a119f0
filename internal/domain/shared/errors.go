// Package shared contains the error taxonomy, validators, keys and domain events
// used across all domain packages of the registrar.
package shared

import (
	"errors"
	"fmt"
	"strings"
)

// Base errors for plumbing outside the tagged taxonomy: lookups and field
// validation that only needs errors.Is.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrAlreadyExists = errors.New("entity already exists")

	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrValueOutOfRange = errors.New("value out of range")
	ErrInvalidFormat   = errors.New("invalid format")

	ErrConflict = errors.New("conflict")
)

// Kind classifies an Error. Kinds form a tree: every leaf belongs to one
// domain, and every domain belongs to KindSystem.
type Kind int

const (
	KindSystem Kind = iota

	// Enrollment domain
	KindEnrollment
	KindCourseFull
	KindMalformedDate
	KindEnrollmentDeadline
	KindStudentNotFound

	// Grading domain
	KindGrade
	KindInvalidGrade
	KindRequirementsIncomplete

	// Payment domain
	KindPayment
	KindPaymentCalculation
	KindInsufficientFunds

	// Identity domain
	KindPerson
	KindInvalidID
	KindInvalidContact
)

// Default error codes per kind.
const (
	CodeSystem                 = 0
	CodeEnrollment             = 100
	CodeCourseFull             = 101
	CodeMalformedDate          = 102
	CodeEnrollmentDeadline     = 103
	CodeStudentNotFound        = 104
	CodeGrade                  = 200
	CodeInvalidGrade           = 201
	CodeInvalidGPA             = 202
	CodeRequirementsIncomplete = 203
	CodePayment                = 300
	CodePaymentCalculation     = 301
	CodeInsufficientFunds      = 302
	CodePerson                 = 400
	CodeInvalidID              = 401
	CodeInvalidContact         = 402
)

var kindNames = [...]string{
	KindSystem:                 "system",
	KindEnrollment:             "enrollment",
	KindCourseFull:             "course_full",
	KindMalformedDate:          "malformed_date",
	KindEnrollmentDeadline:     "enrollment_deadline",
	KindStudentNotFound:        "student_not_found",
	KindGrade:                  "grade",
	KindInvalidGrade:           "invalid_grade",
	KindRequirementsIncomplete: "requirements_incomplete",
	KindPayment:                "payment",
	KindPaymentCalculation:     "payment_calculation",
	KindInsufficientFunds:      "insufficient_funds",
	KindPerson:                 "person",
	KindInvalidID:              "invalid_id",
	KindInvalidContact:         "invalid_contact",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Parent returns the kind one level up the taxonomy.
// KindSystem is its own parent.
func (k Kind) Parent() Kind {
	switch k {
	case KindCourseFull, KindMalformedDate, KindEnrollmentDeadline, KindStudentNotFound:
		return KindEnrollment
	case KindInvalidGrade, KindRequirementsIncomplete:
		return KindGrade
	case KindPaymentCalculation, KindInsufficientFunds:
		return KindPayment
	case KindInvalidID, KindInvalidContact:
		return KindPerson
	default:
		return KindSystem
	}
}

// Domain returns the domain family name of the kind.
func (k Kind) Domain() string {
	switch k {
	case KindEnrollment, KindCourseFull, KindMalformedDate, KindEnrollmentDeadline, KindStudentNotFound:
		return "enrollment"
	case KindGrade, KindInvalidGrade, KindRequirementsIncomplete:
		return "grade"
	case KindPayment, KindPaymentCalculation, KindInsufficientFunds:
		return "payment"
	case KindPerson, KindInvalidID, KindInvalidContact:
		return "person"
	default:
		return "system"
	}
}

// IsA reports whether k equals ancestor or descends from it.
func (k Kind) IsA(ancestor Kind) bool {
	for {
		if k == ancestor {
			return true
		}
		if k == KindSystem {
			return false
		}
		k = k.Parent()
	}
}

// Payload carries the structured context of an Error. Which fields are
// meaningful depends on the Kind.
type Payload struct {
	StudentID  string
	CourseCode string
	PersonID   string

	MaxCapacity       int
	CurrentEnrollment int

	Deadline    string
	CurrentDate string

	InvalidGrade int
	MinGrade     int
	MaxGrade     int

	MissingRequirements []string

	Amount         float64
	AvailableFunds float64

	InvalidValue string
	Reason       string
}

// Error is the single error type of the university domain.
type Error struct {
	Kind    Kind
	Code    int
	Message string
	Payload Payload
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s error %d: %s", e.Kind.Domain(), e.Code, e.Message)
}

// Is matches any sentinel whose kind is e.Kind or one of its ancestors.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind.IsA(t.Kind)
}

// Details renders the log detail string, from the generic prefix down to the
// kind-specific suffix.
func (e *Error) Details() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Error Code: %d, Message: %s", e.Code, e.Message)

	p := e.Payload
	switch e.Kind.Domain() {
	case "enrollment", "grade":
		fmt.Fprintf(&b, ", Student ID: %s, Course Code: %s", p.StudentID, p.CourseCode)
	case "payment":
		fmt.Fprintf(&b, ", Person ID: %s, Amount: %f", p.PersonID, p.Amount)
	case "person":
		fmt.Fprintf(&b, ", Person ID: %s", p.PersonID)
	}

	switch e.Kind {
	case KindCourseFull:
		fmt.Fprintf(&b, ", Max Capacity: %d, Current Enrollment: %d", p.MaxCapacity, p.CurrentEnrollment)
	case KindEnrollmentDeadline:
		fmt.Fprintf(&b, ", Deadline: %s, Current Date: %s", p.Deadline, p.CurrentDate)
	case KindInvalidGrade:
		fmt.Fprintf(&b, ", Invalid Grade: %d, Valid Range: %d-%d", p.InvalidGrade, p.MinGrade, p.MaxGrade)
	case KindRequirementsIncomplete:
		fmt.Fprintf(&b, ", Missing Requirements: %s", strings.Join(p.MissingRequirements, ", "))
	case KindPaymentCalculation:
		fmt.Fprintf(&b, ", Reason: %s", p.Reason)
	case KindInsufficientFunds:
		fmt.Fprintf(&b, ", Available Funds: %f, Shortage: %f", p.AvailableFunds, p.Amount-p.AvailableFunds)
	case KindInvalidID:
		fmt.Fprintf(&b, ", Invalid ID: %s, Reason: %s", p.InvalidValue, p.Reason)
	case KindInvalidContact:
		fmt.Fprintf(&b, ", Invalid Contact: %s, Reason: %s", p.InvalidValue, p.Reason)
	}

	return b.String()
}

// Sentinels for errors.Is. Matching a domain sentinel matches all its leaves.
var (
	ErrSystem                 = &Error{Kind: KindSystem}
	ErrEnrollment             = &Error{Kind: KindEnrollment}
	ErrCourseFull             = &Error{Kind: KindCourseFull}
	ErrMalformedDate          = &Error{Kind: KindMalformedDate}
	ErrEnrollmentDeadline     = &Error{Kind: KindEnrollmentDeadline}
	ErrStudentNotFound        = &Error{Kind: KindStudentNotFound}
	ErrGrade                  = &Error{Kind: KindGrade}
	ErrInvalidGrade           = &Error{Kind: KindInvalidGrade}
	ErrRequirementsIncomplete = &Error{Kind: KindRequirementsIncomplete}
	ErrPayment                = &Error{Kind: KindPayment}
	ErrPaymentCalculation     = &Error{Kind: KindPaymentCalculation}
	ErrInsufficientFunds      = &Error{Kind: KindInsufficientFunds}
	ErrPerson                 = &Error{Kind: KindPerson}
	ErrInvalidID              = &Error{Kind: KindInvalidID}
	ErrInvalidContact         = &Error{Kind: KindInvalidContact}
)

// AsError extracts a *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// ═══════════════════════════════════════════════════════════════════════════
// Constructors
// ═══════════════════════════════════════════════════════════════════════════

// NewSystemError creates a generic system error.
func NewSystemError(message string, code int) *Error {
	return &Error{Kind: KindSystem, Code: code, Message: message}
}

// NewEnrollmentError creates a generic enrollment error.
func NewEnrollmentError(message, studentID, courseCode string, code int) *Error {
	return &Error{
		Kind:    KindEnrollment,
		Code:    code,
		Message: message,
		Payload: Payload{StudentID: studentID, CourseCode: courseCode},
	}
}

// NewCourseFullError reports a roster at capacity.
func NewCourseFullError(studentID, courseCode string, maxCapacity, current int) *Error {
	return &Error{
		Kind:    KindCourseFull,
		Code:    CodeCourseFull,
		Message: "Course is at maximum capacity",
		Payload: Payload{
			StudentID:         studentID,
			CourseCode:        courseCode,
			MaxCapacity:       maxCapacity,
			CurrentEnrollment: current,
		},
	}
}

// NewMalformedDateError reports an enrollment date that is not a date token.
func NewMalformedDateError(studentID, courseCode string) *Error {
	return &Error{
		Kind:    KindMalformedDate,
		Code:    CodeMalformedDate,
		Message: "Invalid current date format",
		Payload: Payload{StudentID: studentID, CourseCode: courseCode},
	}
}

// NewEnrollmentDeadlineError reports an enrollment attempted after the deadline.
func NewEnrollmentDeadlineError(studentID, courseCode, deadline, currentDate string) *Error {
	return &Error{
		Kind:    KindEnrollmentDeadline,
		Code:    CodeEnrollmentDeadline,
		Message: "Enrollment deadline has passed",
		Payload: Payload{
			StudentID:   studentID,
			CourseCode:  courseCode,
			Deadline:    deadline,
			CurrentDate: currentDate,
		},
	}
}

// NewStudentNotFoundError reports a drop for a student missing from the roster.
func NewStudentNotFoundError(studentID, courseCode string) *Error {
	return &Error{
		Kind:    KindStudentNotFound,
		Code:    CodeStudentNotFound,
		Message: "Student not found in course",
		Payload: Payload{StudentID: studentID, CourseCode: courseCode},
	}
}

// NewGradeError creates a generic grading error.
func NewGradeError(message, studentID, courseCode string, code int) *Error {
	return &Error{
		Kind:    KindGrade,
		Code:    code,
		Message: message,
		Payload: Payload{StudentID: studentID, CourseCode: courseCode},
	}
}

// NewInvalidGradeError reports a grade outside [minGrade, maxGrade].
func NewInvalidGradeError(studentID, courseCode string, grade, minGrade, maxGrade int) *Error {
	return &Error{
		Kind:    KindInvalidGrade,
		Code:    CodeInvalidGrade,
		Message: "Invalid grade value",
		Payload: Payload{
			StudentID:    studentID,
			CourseCode:   courseCode,
			InvalidGrade: grade,
			MinGrade:     minGrade,
			MaxGrade:     maxGrade,
		},
	}
}

// NewRequirementsIncompleteError lists the requirements a student still misses.
func NewRequirementsIncompleteError(studentID, courseCode string, missing []string) *Error {
	return &Error{
		Kind:    KindRequirementsIncomplete,
		Code:    CodeRequirementsIncomplete,
		Message: "Student has not completed all requirements",
		Payload: Payload{
			StudentID:           studentID,
			CourseCode:          courseCode,
			MissingRequirements: append([]string(nil), missing...),
		},
	}
}

// NewPaymentError creates a generic payment error.
func NewPaymentError(message, personID string, amount float64, code int) *Error {
	return &Error{
		Kind:    KindPayment,
		Code:    code,
		Message: message,
		Payload: Payload{PersonID: personID, Amount: amount},
	}
}

// NewPaymentCalculationError reports a payment that could not be computed.
func NewPaymentCalculationError(personID string, amount float64, reason string) *Error {
	return &Error{
		Kind:    KindPaymentCalculation,
		Code:    CodePaymentCalculation,
		Message: "Error calculating payment",
		Payload: Payload{PersonID: personID, Amount: amount, Reason: reason},
	}
}

// NewInsufficientFundsError reports a payment larger than the available funds.
func NewInsufficientFundsError(personID string, amount, available float64) *Error {
	return &Error{
		Kind:    KindInsufficientFunds,
		Code:    CodeInsufficientFunds,
		Message: "Insufficient funds for payment",
		Payload: Payload{PersonID: personID, Amount: amount, AvailableFunds: available},
	}
}

// NewPersonError creates a generic identity error.
func NewPersonError(message, personID string, code int) *Error {
	return &Error{
		Kind:    KindPerson,
		Code:    code,
		Message: message,
		Payload: Payload{PersonID: personID},
	}
}

// NewInvalidIDError reports an identifier of the wrong shape.
func NewInvalidIDError(personID, invalidID, reason string) *Error {
	return &Error{
		Kind:    KindInvalidID,
		Code:    CodeInvalidID,
		Message: "Invalid person ID",
		Payload: Payload{PersonID: personID, InvalidValue: invalidID, Reason: reason},
	}
}

// NewInvalidContactError reports a contact number of the wrong shape.
func NewInvalidContactError(personID, invalidContact, reason string) *Error {
	return &Error{
		Kind:    KindInvalidContact,
		Code:    CodeInvalidContact,
		Message: "Invalid contact information",
		Payload: Payload{PersonID: personID, InvalidValue: invalidContact, Reason: reason},
	}
}
