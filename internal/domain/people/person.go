// Package people models university members: a shared Person record plus a
// role payload (student or professor variants) and the role's payment rule.
package people

import (
	"strconv"

	"github.com/alem-hub/campus-registrar/internal/domain/shared"
)

// Error codes of the identity setters.
const (
	CodeEmptyName   = 403
	CodeNegativeAge = 404
	CodeAgeTooHigh  = 405
)

// Person is the base record shared by every role. The zero value is an
// unnamed person with ID 0; fields change only through validated setters.
type Person struct {
	name    string
	id      int
	contact int64
	age     int
}

// Name returns the display name.
func (p *Person) Name() string { return p.name }

// ID returns the 5-digit identifier (0 until set).
func (p *Person) ID() int { return p.id }

// Contact returns the 10-digit contact number (0 until set).
func (p *Person) Contact() int64 { return p.contact }

// Age returns the age in years.
func (p *Person) Age() int { return p.age }

func (p *Person) idString() string {
	return strconv.Itoa(p.id)
}

// SetName sets a non-empty name.
func (p *Person) SetName(name string) error {
	if name == "" {
		return shared.NewPersonError("Name cannot be empty", p.idString(), CodeEmptyName)
	}
	p.name = name
	return nil
}

// SetAge sets an age within [shared.MinAge, shared.MaxAge].
func (p *Person) SetAge(age int) error {
	if age < shared.MinAge {
		return shared.NewPersonError("Age cannot be negative", p.idString(), CodeNegativeAge)
	}
	if age > shared.MaxAge {
		return shared.NewPersonError("Age exceeds maximum allowed", p.idString(), CodeAgeTooHigh)
	}
	p.age = age
	return nil
}

// SetID sets a 5-digit identifier. id must be non-negative.
func (p *Person) SetID(id int) error {
	if !shared.IsValidPersonID(id) {
		return shared.NewInvalidIDError(p.idString(), strconv.Itoa(id), "ID must be 5 digits")
	}
	p.id = id
	return nil
}

// SetContact sets a 10-digit contact number. number must be non-negative.
func (p *Person) SetContact(number int64) error {
	if !shared.IsValidContact(number) {
		return shared.NewInvalidContactError(p.idString(), strconv.FormatInt(number, 10), "Contact number must be 10 digits")
	}
	p.contact = number
	return nil
}
