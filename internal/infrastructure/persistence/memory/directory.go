// Package memory is the in-process arena that owns every campus entity.
// Entities reference each other by shared.Key; the Directory resolves keys
// back to entities and labels.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/alem-hub/campus-registrar/internal/domain/course"
	"github.com/alem-hub/campus-registrar/internal/domain/organization"
	"github.com/alem-hub/campus-registrar/internal/domain/people"
	"github.com/alem-hub/campus-registrar/internal/domain/schedule"
	"github.com/alem-hub/campus-registrar/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// TABLE
// ══════════════════════════════════════════════════════════════════════════════

type keyed interface {
	Key() shared.Key
}

// table is an insertion ordered map from key to entity.
type table[T keyed] struct {
	mu    sync.RWMutex
	order []shared.Key
	rows  map[shared.Key]T
}

func newTable[T keyed]() *table[T] {
	return &table[T]{rows: make(map[shared.Key]T)}
}

func (t *table[T]) save(v T) error {
	k := v.Key()
	if k.IsZero() {
		return fmt.Errorf("save: %w", shared.ErrEmptyValue)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[k]; !ok {
		t.order = append(t.order, k)
	}
	t.rows[k] = v
	return nil
}

func (t *table[T]) get(k shared.Key) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.rows[k]
	return v, ok
}

func (t *table[T]) find(match func(T) bool) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, k := range t.order {
		if v := t.rows[k]; match(v) {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func (t *table[T]) list() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.order))
	for _, k := range t.order {
		out = append(out, t.rows[k])
	}
	return out
}

func (t *table[T]) delete(k shared.Key) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[k]; !ok {
		return fmt.Errorf("key %s: %w", k, shared.ErrNotFound)
	}
	delete(t.rows, k)
	for i, o := range t.order {
		if o == k {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}

func (t *table[T]) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.order)
}

// ══════════════════════════════════════════════════════════════════════════════
// DIRECTORY
// ══════════════════════════════════════════════════════════════════════════════

// Directory owns members, courses, classrooms and departments.
type Directory struct {
	members     *MemberStore
	courses     *CourseStore
	classrooms  *ClassroomStore
	departments *DepartmentStore
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{
		members:     &MemberStore{t: newTable[*people.Member]()},
		courses:     &CourseStore{t: newTable[*course.Course]()},
		classrooms:  &ClassroomStore{t: newTable[*schedule.Classroom]()},
		departments: &DepartmentStore{t: newTable[*organization.Department]()},
	}
}

func (d *Directory) Members() *MemberStore         { return d.members }
func (d *Directory) Courses() *CourseStore         { return d.courses }
func (d *Directory) Classrooms() *ClassroomStore   { return d.classrooms }
func (d *Directory) Departments() *DepartmentStore { return d.departments }

// Department implements organization.DepartmentSource.
func (d *Directory) Department(k shared.Key) (*organization.Department, bool) {
	return d.departments.t.get(k)
}

// CourseCode implements schedule.Labeler. Unknown keys render as "?".
func (d *Directory) CourseCode(k shared.Key) string {
	if c, ok := d.courses.t.get(k); ok {
		return c.Code()
	}
	return "?"
}

// RoomNumber implements schedule.Labeler. Unknown keys render as "?".
func (d *Directory) RoomNumber(k shared.Key) string {
	if c, ok := d.classrooms.t.get(k); ok {
		return c.RoomNumber()
	}
	return "?"
}

// Member resolves a member key without a context, for display callbacks.
func (d *Directory) Member(k shared.Key) (*people.Member, bool) {
	return d.members.t.get(k)
}

// Stats reports how many entities of each kind the directory holds.
type Stats struct {
	Members     int
	Courses     int
	Classrooms  int
	Departments int
}

func (d *Directory) Stats() Stats {
	return Stats{
		Members:     d.members.t.len(),
		Courses:     d.courses.t.len(),
		Classrooms:  d.classrooms.t.len(),
		Departments: d.departments.t.len(),
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// STORES
// ══════════════════════════════════════════════════════════════════════════════

// MemberStore implements people.Repository.
type MemberStore struct{ t *table[*people.Member] }

var _ people.Repository = (*MemberStore)(nil)

func (s *MemberStore) Save(_ context.Context, m *people.Member) error { return s.t.save(m) }
func (s *MemberStore) Delete(_ context.Context, k shared.Key) error   { return s.t.delete(k) }

func (s *MemberStore) GetByKey(_ context.Context, k shared.Key) (*people.Member, error) {
	if m, ok := s.t.get(k); ok {
		return m, nil
	}
	return nil, fmt.Errorf("member %s: %w", k, shared.ErrNotFound)
}

func (s *MemberStore) GetByPersonID(_ context.Context, id int) (*people.Member, error) {
	if m, ok := s.t.find(func(m *people.Member) bool { return m.ID() == id }); ok {
		return m, nil
	}
	return nil, fmt.Errorf("member with ID %d: %w", id, shared.ErrNotFound)
}

func (s *MemberStore) List(context.Context) ([]*people.Member, error) { return s.t.list(), nil }

// CourseStore implements course.Repository.
type CourseStore struct{ t *table[*course.Course] }

var _ course.Repository = (*CourseStore)(nil)

func (s *CourseStore) Save(_ context.Context, c *course.Course) error { return s.t.save(c) }
func (s *CourseStore) Delete(_ context.Context, k shared.Key) error   { return s.t.delete(k) }

func (s *CourseStore) GetByKey(_ context.Context, k shared.Key) (*course.Course, error) {
	if c, ok := s.t.get(k); ok {
		return c, nil
	}
	return nil, fmt.Errorf("course %s: %w", k, shared.ErrNotFound)
}

func (s *CourseStore) GetByCode(_ context.Context, code string) (*course.Course, error) {
	if c, ok := s.t.find(func(c *course.Course) bool { return c.Code() == code }); ok {
		return c, nil
	}
	return nil, fmt.Errorf("course %q: %w", code, shared.ErrNotFound)
}

func (s *CourseStore) List(context.Context) ([]*course.Course, error) { return s.t.list(), nil }

// ClassroomStore implements schedule.ClassroomRepository.
type ClassroomStore struct{ t *table[*schedule.Classroom] }

var _ schedule.ClassroomRepository = (*ClassroomStore)(nil)

func (s *ClassroomStore) Save(_ context.Context, c *schedule.Classroom) error { return s.t.save(c) }
func (s *ClassroomStore) Delete(_ context.Context, k shared.Key) error        { return s.t.delete(k) }

func (s *ClassroomStore) GetByKey(_ context.Context, k shared.Key) (*schedule.Classroom, error) {
	if c, ok := s.t.get(k); ok {
		return c, nil
	}
	return nil, fmt.Errorf("classroom %s: %w", k, shared.ErrNotFound)
}

func (s *ClassroomStore) GetByRoomNumber(_ context.Context, roomNumber string) (*schedule.Classroom, error) {
	if c, ok := s.t.find(func(c *schedule.Classroom) bool { return c.RoomNumber() == roomNumber }); ok {
		return c, nil
	}
	return nil, fmt.Errorf("classroom %q: %w", roomNumber, shared.ErrNotFound)
}

func (s *ClassroomStore) List(context.Context) ([]*schedule.Classroom, error) {
	return s.t.list(), nil
}

// DepartmentStore holds departments.
type DepartmentStore struct{ t *table[*organization.Department] }

func (s *DepartmentStore) Save(_ context.Context, d *organization.Department) error {
	return s.t.save(d)
}

func (s *DepartmentStore) GetByName(_ context.Context, name string) (*organization.Department, error) {
	if d, ok := s.t.find(func(d *organization.Department) bool { return d.Name() == name }); ok {
		return d, nil
	}
	return nil, fmt.Errorf("department %q: %w", name, shared.ErrNotFound)
}

func (s *DepartmentStore) List(context.Context) ([]*organization.Department, error) {
	return s.t.list(), nil
}

func (s *DepartmentStore) Delete(_ context.Context, k shared.Key) error { return s.t.delete(k) }
