package organization

import (
	"fmt"
	"io"

	"github.com/alem-hub/campus-registrar/internal/domain/shared"
)

// DepartmentSource resolves department keys. Keys it cannot resolve are
// skipped, so a released department never dangles.
type DepartmentSource interface {
	Department(key shared.Key) (*Department, bool)
}

// DepartmentEntry is a university listing line. Name is captured when the
// department is added.
type DepartmentEntry struct {
	Key  shared.Key
	Name string
}

// University lists departments by key.
type University struct {
	name        string
	location    string
	departments []DepartmentEntry
}

func NewUniversity(name, location string) *University {
	return &University{name: name, location: location}
}

func (u *University) Name() string     { return u.name }
func (u *University) Location() string { return u.location }

func (u *University) SetName(name string) error {
	if name == "" {
		return fmt.Errorf("university name: %w", shared.ErrEmptyValue)
	}
	u.name = name
	return nil
}

func (u *University) SetLocation(location string) error {
	if location == "" {
		return fmt.Errorf("university location: %w", shared.ErrEmptyValue)
	}
	u.location = location
	return nil
}

// AddDepartment lists a department.
func (u *University) AddDepartment(d *Department) {
	u.departments = append(u.departments, DepartmentEntry{Key: d.Key(), Name: d.Name()})
}

// RemoveDepartment unlists the first department named name. Its professors
// are left untouched.
func (u *University) RemoveDepartment(name string) (DepartmentEntry, error) {
	for i, e := range u.departments {
		if e.Name == name {
			u.departments = append(u.departments[:i], u.departments[i+1:]...)
			return e, nil
		}
	}
	return DepartmentEntry{}, fmt.Errorf("department %s: %w", name, shared.ErrNotFound)
}

// Departments returns a copy of the listing.
func (u *University) Departments() []DepartmentEntry {
	return append([]DepartmentEntry{}, u.departments...)
}

// AllProfessors concatenates every department's staff in listing order.
func (u *University) AllProfessors(src DepartmentSource) []StaffEntry {
	var out []StaffEntry
	for _, e := range u.departments {
		if d, ok := src.Department(e.Key); ok {
			out = append(out, d.professors...)
		}
	}
	return out
}

// DisplayDepartments writes one line per department.
func (u *University) DisplayDepartments(w io.Writer, src DepartmentSource) {
	if len(u.departments) == 0 {
		fmt.Fprint(w, "No Departments in University!\n")
		return
	}
	fmt.Fprintf(w, "Departments in %s:\n", u.name)
	for _, e := range u.departments {
		if d, ok := src.Department(e.Key); ok {
			fmt.Fprintf(w, "Name: %s, Location: %s\n", d.Name(), d.Location())
		}
	}
}

// DisplayAllProfessors writes one line per professor with their department.
func (u *University) DisplayAllProfessors(w io.Writer, src DepartmentSource) {
	if len(u.AllProfessors(src)) == 0 {
		fmt.Fprint(w, "No Professors in University!\n")
		return
	}
	fmt.Fprintf(w, "All Professors in %s:\n", u.name)
	for _, e := range u.departments {
		d, ok := src.Department(e.Key)
		if !ok {
			continue
		}
		for _, p := range d.professors {
			fmt.Fprintf(w, "ID: %d, Name: %s, Department: %s\n", p.PersonID, p.Name, d.Name())
		}
	}
}
