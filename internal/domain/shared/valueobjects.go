package shared

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ═══════════════════════════════════════════════════════════════════════════
// Keys
// ═══════════════════════════════════════════════════════════════════════════

// Key is the stable arena key of an entity. Relations between entities are
// always expressed as keys, never as pointers.
type Key string

// NewKey returns a fresh random key.
func NewKey() Key {
	return Key(uuid.NewString())
}

// String returns the string representation.
func (k Key) String() string {
	return string(k)
}

// IsZero reports whether the key is unset.
func (k Key) IsZero() bool {
	return k == ""
}

// ═══════════════════════════════════════════════════════════════════════════
// Identity validators
// ═══════════════════════════════════════════════════════════════════════════

const (
	// PersonIDDigits is the exact digit count of a person identifier.
	PersonIDDigits = 5

	// ContactDigits is the exact digit count of a contact number.
	ContactDigits = 10

	MinAge = 0
	MaxAge = 100

	MinGPA = 0.0
	MaxGPA = 4.0
)

// DigitCount counts decimal digits by repeated division. Zero has no digits.
// n must be non-negative.
func DigitCount(n int64) int {
	count := 0
	for n != 0 {
		n /= 10
		count++
	}
	return count
}

// IsValidPersonID reports whether id has exactly PersonIDDigits digits.
func IsValidPersonID(id int) bool {
	return DigitCount(int64(id)) == PersonIDDigits
}

// IsValidContact reports whether number has exactly ContactDigits digits.
func IsValidContact(number int64) bool {
	return DigitCount(number) == ContactDigits
}

// ═══════════════════════════════════════════════════════════════════════════
// Date tokens
// ═══════════════════════════════════════════════════════════════════════════

// DefaultEnrollmentDeadline is the deadline a course starts with.
const DefaultEnrollmentDeadline = "31/12/23"

// ValidateDate reports whether date looks like DD/MM/YY: three '/'-separated
// integers with day in 1..31 and month in 1..12. Day-in-month and leap years
// are not checked, so "31/02/24" is accepted.
func ValidateDate(date string) bool {
	parts := strings.Split(date, "/")
	if len(parts) != 3 {
		return false
	}

	var fields [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return false
		}
		fields[i] = n
	}

	day, month := fields[0], fields[1]
	if day < 1 || day > 31 {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}
	return true
}
