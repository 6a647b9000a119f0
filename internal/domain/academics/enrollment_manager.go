package academics

import (
	"fmt"

	"github.com/alem-hub/campus-registrar/internal/domain/shared"
)

// EnrollmentManager tracks student IDs per course code, without the
// capacity and deadline checks of a Course.
type EnrollmentManager struct {
	enrolled map[string][]string
}

func NewEnrollmentManager() *EnrollmentManager {
	return &EnrollmentManager{enrolled: make(map[string][]string)}
}

// Enroll appends studentID to the course list. It reports false when the
// student was already listed.
func (m *EnrollmentManager) Enroll(courseCode, studentID string) bool {
	for _, id := range m.enrolled[courseCode] {
		if id == studentID {
			return false
		}
	}
	m.enrolled[courseCode] = append(m.enrolled[courseCode], studentID)
	return true
}

// Drop removes studentID from the course list.
func (m *EnrollmentManager) Drop(courseCode, studentID string) error {
	ids, ok := m.enrolled[courseCode]
	if !ok {
		return fmt.Errorf("course %s: %w", courseCode, shared.ErrNotFound)
	}
	for i, id := range ids {
		if id == studentID {
			m.enrolled[courseCode] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("student %s in course %s: %w", studentID, courseCode, shared.ErrNotFound)
}

// Count returns the number of students in the course, 0 if unknown.
func (m *EnrollmentManager) Count(courseCode string) int {
	return len(m.enrolled[courseCode])
}

// Students returns a copy of the course list in enrollment order.
func (m *EnrollmentManager) Students(courseCode string) []string {
	return append([]string{}, m.enrolled[courseCode]...)
}
