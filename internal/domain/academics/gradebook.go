// Package academics keeps per-course grades and a lightweight enrollment
// ledger keyed by course code and student ID.
package academics

import (
	"fmt"
	"io"
	"sort"

	"github.com/alem-hub/campus-registrar/internal/domain/shared"
)

// Grade bounds and the default pass mark.
const (
	MinGrade        = 0
	MaxGrade        = 100
	DefaultPassMark = 33.5
)

// GradeEntry is one student's grade.
type GradeEntry struct {
	StudentID string
	Grade     int
}

// GradeBook records grades and completed requirements for one course.
type GradeBook struct {
	courseCode string
	grades     map[string]int
	required   []string
	completed  map[string]map[string]bool
}

// NewGradeBook creates a grade book. required lists the components every
// student must complete, in the order they are reported.
func NewGradeBook(courseCode string, required ...string) *GradeBook {
	return &GradeBook{
		courseCode: courseCode,
		grades:     make(map[string]int),
		required:   append([]string(nil), required...),
		completed:  make(map[string]map[string]bool),
	}
}

func (g *GradeBook) CourseCode() string { return g.courseCode }

// AddGrade sets or replaces a grade in [MinGrade, MaxGrade].
func (g *GradeBook) AddGrade(studentID string, grade int) error {
	if grade < MinGrade || grade > MaxGrade {
		return shared.NewInvalidGradeError(studentID, g.courseCode, grade, MinGrade, MaxGrade)
	}
	g.grades[studentID] = grade
	return nil
}

// Grade returns the student's grade and whether one is recorded.
func (g *GradeBook) Grade(studentID string) (int, bool) {
	v, ok := g.grades[studentID]
	return v, ok
}

// Average returns the mean grade, 0 for an empty book.
func (g *GradeBook) Average() float64 {
	if len(g.grades) == 0 {
		return 0
	}
	sum := 0
	for _, v := range g.grades {
		sum += v
	}
	return float64(sum) / float64(len(g.grades))
}

// Highest returns the best grade, 0 for an empty book.
func (g *GradeBook) Highest() int {
	best := 0
	first := true
	for _, v := range g.grades {
		if first || v > best {
			best, first = v, false
		}
	}
	return best
}

// FailingStudents returns the IDs graded below passMark, sorted.
func (g *GradeBook) FailingStudents(passMark float64) []string {
	var out []string
	for _, e := range g.Grades() {
		if float64(e.Grade) < passMark {
			out = append(out, e.StudentID)
		}
	}
	return out
}

// Grades returns all grades sorted by student ID.
func (g *GradeBook) Grades() []GradeEntry {
	out := make([]GradeEntry, 0, len(g.grades))
	for id, v := range g.grades {
		out = append(out, GradeEntry{StudentID: id, Grade: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentID < out[j].StudentID })
	return out
}

// CompleteRequirement marks a component as done for the student.
func (g *GradeBook) CompleteRequirement(studentID, component string) {
	done, ok := g.completed[studentID]
	if !ok {
		done = make(map[string]bool)
		g.completed[studentID] = done
	}
	done[component] = true
}

// CheckRequirements fails with the missing components, in required order.
func (g *GradeBook) CheckRequirements(studentID string) error {
	var missing []string
	for _, r := range g.required {
		if !g.completed[studentID][r] {
			missing = append(missing, r)
		}
	}
	if len(missing) > 0 {
		return shared.NewRequirementsIncompleteError(studentID, g.courseCode, missing)
	}
	return nil
}

// ShowGrades writes the grade table.
func (g *GradeBook) ShowGrades(w io.Writer) {
	if len(g.grades) == 0 {
		fmt.Fprint(w, "Empty Grades!\n")
		return
	}
	fmt.Fprint(w, "Student ID\tGrades\n")
	for _, e := range g.Grades() {
		fmt.Fprintf(w, "%s\t%d\n", e.StudentID, e.Grade)
	}
}
