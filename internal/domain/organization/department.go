// Package organization groups professors into departments and departments
// into a university. Both hold keys only; removing a container never
// removes what it lists.
package organization

import (
	"fmt"
	"io"

	"github.com/alem-hub/campus-registrar/internal/domain/people"
	"github.com/alem-hub/campus-registrar/internal/domain/shared"
)

// StaffEntry is a department listing line.
type StaffEntry struct {
	Key      shared.Key
	PersonID int
	Name     string
}

// Department lists professors and holds the budget they are paid from.
type Department struct {
	key        shared.Key
	name       string
	location   string
	budget     float64
	professors []StaffEntry
}

func NewDepartment(name, location string, budget float64) *Department {
	return &Department{key: shared.NewKey(), name: name, location: location, budget: budget}
}

func (d *Department) Key() shared.Key  { return d.key }
func (d *Department) Name() string     { return d.name }
func (d *Department) Location() string { return d.location }
func (d *Department) Budget() float64  { return d.budget }

func (d *Department) SetName(name string)         { d.name = name }
func (d *Department) SetLocation(location string) { d.location = location }

// SetBudget sets a positive budget.
func (d *Department) SetBudget(budget float64) error {
	if budget <= 0 {
		return fmt.Errorf("department budget %g: %w", budget, shared.ErrValueOutOfRange)
	}
	d.budget = budget
	return nil
}

// AddProfessor lists a professor once.
func (d *Department) AddProfessor(m *people.Member) error {
	if !m.Role().IsProfessor() {
		return fmt.Errorf("member %d is a %s: %w", m.ID(), m.Role(), shared.ErrConflict)
	}
	for _, e := range d.professors {
		if e.Key == m.Key() {
			return fmt.Errorf("professor %d in %s: %w", m.ID(), d.name, shared.ErrAlreadyExists)
		}
	}
	d.professors = append(d.professors, StaffEntry{Key: m.Key(), PersonID: m.ID(), Name: m.Name()})
	return nil
}

// RemoveProfessor unlists the first professor with personID.
func (d *Department) RemoveProfessor(personID int) error {
	for i, e := range d.professors {
		if e.PersonID == personID {
			d.professors = append(d.professors[:i], d.professors[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("professor %d in %s: %w", personID, d.name, shared.ErrNotFound)
}

// Professors returns a copy of the listing.
func (d *Department) Professors() []StaffEntry {
	return append([]StaffEntry{}, d.professors...)
}

// ProfessorKeys returns the listed keys in order.
func (d *Department) ProfessorKeys() []shared.Key {
	keys := make([]shared.Key, len(d.professors))
	for i, e := range d.professors {
		keys[i] = e.Key
	}
	return keys
}

// PayrollLine is one professor's computed payment.
type PayrollLine struct {
	PersonID int
	Name     string
	Role     people.Role
	Amount   float64
}

// Payroll is the result of paying a department's staff.
type Payroll struct {
	Department string
	Lines      []PayrollLine
	Total      float64
	Budget     float64
}

// Payroll computes every staff payment and fails with an insufficient funds
// error when the total exceeds the budget. staff are the resolved members of
// ProfessorKeys.
func (d *Department) Payroll(staff []*people.Member) (Payroll, error) {
	p := Payroll{Department: d.name, Budget: d.budget}
	for _, m := range staff {
		amount, err := m.CalculatePayment()
		if err != nil {
			return p, err
		}
		p.Lines = append(p.Lines, PayrollLine{PersonID: m.ID(), Name: m.Name(), Role: m.Role(), Amount: amount})
		p.Total += amount
	}
	if p.Total > d.budget {
		return p, shared.NewInsufficientFundsError(d.name, p.Total, d.budget)
	}
	return p, nil
}

// DisplayProfessors writes the listing of a department. details renders
// one professor by key.
func (d *Department) DisplayProfessors(w io.Writer, details func(io.Writer, shared.Key)) {
	if len(d.professors) == 0 {
		fmt.Fprint(w, "No Professors in this Department!\n")
		return
	}
	fmt.Fprintf(w, "Professors in Department %s:\n", d.name)
	for _, e := range d.professors {
		details(w, e.Key)
		fmt.Fprint(w, "------------------------\n")
	}
}
