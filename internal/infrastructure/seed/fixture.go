// Package seed loads a campus from a YAML fixture: the university, its
// departments, members, courses, classrooms and booked time slots.
package seed

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/alem-hub/campus-registrar/internal/domain/people"
	"github.com/alem-hub/campus-registrar/internal/domain/shared"
	"github.com/alem-hub/campus-registrar/pkg/timeutil"
)

// File is the YAML document. Members are referenced from courses, slots and
// departments by their 5-digit person ID.
type File struct {
	University  UniversityFixture   `yaml:"university" validate:"required"`
	Today       string              `yaml:"today" validate:"omitempty,datetoken"`
	Departments []DepartmentFixture `yaml:"departments" validate:"dive"`
	Members     []MemberFixture     `yaml:"members" validate:"dive"`
	Courses     []CourseFixture     `yaml:"courses" validate:"dive"`
	Classrooms  []ClassroomFixture  `yaml:"classrooms" validate:"dive"`
	Slots       []SlotFixture       `yaml:"slots" validate:"dive"`
}

type UniversityFixture struct {
	Name     string `yaml:"name" validate:"required"`
	Location string `yaml:"location" validate:"required"`
}

type DepartmentFixture struct {
	Name       string  `yaml:"name" validate:"required"`
	Location   string  `yaml:"location"`
	Budget     float64 `yaml:"budget" validate:"gt=0"`
	Professors []int   `yaml:"professors" validate:"dive,personid"`
}

// MemberFixture describes one person. Student roles need the student block,
// professor roles the professor block.
type MemberFixture struct {
	Role      string            `yaml:"role" validate:"required,role"`
	Name      string            `yaml:"name" validate:"required"`
	ID        int               `yaml:"id" validate:"personid"`
	Contact   int64             `yaml:"contact" validate:"omitempty,contact"`
	Age       int               `yaml:"age" validate:"min=0,max=100"`
	Student   *StudentFixture   `yaml:"student"`
	Professor *ProfessorFixture `yaml:"professor"`
}

type StudentFixture struct {
	EnrollmentDate     string  `yaml:"enrollment_date" validate:"required,datetoken"`
	Program            string  `yaml:"program" validate:"required"`
	GPA                float64 `yaml:"gpa" validate:"min=0,max=4"`
	Major              string  `yaml:"major"`
	Minor              string  `yaml:"minor"`
	ExpectedGraduation string  `yaml:"expected_graduation" validate:"omitempty,datetoken"`
	ResearchTopic      string  `yaml:"research_topic"`
	ThesisTitle        string  `yaml:"thesis_title"`
	Advisor            int     `yaml:"advisor" validate:"omitempty,personid"`

	TeachingAssistantship *AssistantshipFixture `yaml:"teaching_assistantship"`
	ResearchAssistantship *AssistantshipFixture `yaml:"research_assistantship"`
}

type AssistantshipFixture struct {
	Stipend float64 `yaml:"stipend" validate:"min=0"`
	Hours   int     `yaml:"hours" validate:"min=0"`
}

type ProfessorFixture struct {
	Department     string `yaml:"department" validate:"required"`
	HireDate       string `yaml:"hire_date" validate:"required,datetoken"`
	Specialization string `yaml:"specialization" validate:"required"`

	ContractYears     int  `yaml:"contract_years" validate:"min=0"`
	PapersPublished   int  `yaml:"papers_published" validate:"min=0"`
	PromotionEligible bool `yaml:"promotion_eligible"`

	TeachingYears  int `yaml:"teaching_years" validate:"min=0"`
	ProjectsDone   int `yaml:"projects_done" validate:"min=0"`
	StudentsGuided int `yaml:"students_guided" validate:"min=0"`

	WorkYears     int  `yaml:"work_years" validate:"min=0"`
	ForeignPapers int  `yaml:"foreign_papers" validate:"min=0"`
	IsHead        bool `yaml:"is_head"`
}

// CourseFixture describes a course. Roster lists person IDs enrolled at load
// time, dated Today (or the deadline when Today is unset).
type CourseFixture struct {
	Code        string  `yaml:"code" validate:"required"`
	Title       string  `yaml:"title" validate:"required"`
	Description string  `yaml:"description"`
	Credits     float64 `yaml:"credits" validate:"gt=0"`
	MaxCapacity int     `yaml:"max_capacity" validate:"omitempty,gt=0"`
	Deadline    string  `yaml:"deadline" validate:"omitempty,datetoken"`
	Instructor  int     `yaml:"instructor" validate:"omitempty,personid"`
	Roster      []int   `yaml:"roster" validate:"dive,personid"`
}

type ClassroomFixture struct {
	RoomNumber string `yaml:"room_number" validate:"required"`
	Building   string `yaml:"building" validate:"required"`
	Capacity   int    `yaml:"capacity" validate:"gt=0"`
	Projector  bool   `yaml:"projector"`
}

type SlotFixture struct {
	Day    string `yaml:"day" validate:"required"`
	Start  string `yaml:"start" validate:"required,slottime"`
	End    string `yaml:"end" validate:"required,slottime"`
	Course string `yaml:"course" validate:"required"`
	Room   string `yaml:"room" validate:"required"`
}

// ══════════════════════════════════════════════════════════════════════════════
// VALIDATION
// ══════════════════════════════════════════════════════════════════════════════

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	must(v.RegisterValidation("datetoken", func(fl validator.FieldLevel) bool {
		return shared.ValidateDate(fl.Field().String())
	}))
	must(v.RegisterValidation("personid", func(fl validator.FieldLevel) bool {
		return shared.IsValidPersonID(int(fl.Field().Int()))
	}))
	must(v.RegisterValidation("contact", func(fl validator.FieldLevel) bool {
		return shared.IsValidContact(fl.Field().Int())
	}))
	must(v.RegisterValidation("slottime", func(fl validator.FieldLevel) bool {
		_, err := timeutil.ParseSlotTime(fl.Field().String())
		return err == nil
	}))
	must(v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		_, ok := people.ParseRole(fl.Field().String())
		return ok
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Validate checks the fixture against its struct tags.
func (f *File) Validate() error {
	if err := newValidator().Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("seed: %w", err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s failed %q", strings.TrimPrefix(fe.Namespace(), "File."), fe.Tag()))
		}
		return fmt.Errorf("seed: invalid fixture: %s", strings.Join(msgs, "; "))
	}
	return nil
}
