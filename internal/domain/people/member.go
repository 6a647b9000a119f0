package people

import (
	"io"

	"github.com/alem-hub/campus-registrar/internal/domain/shared"
)

// Role is the closed set of member variants.
type Role int

const (
	RolePerson Role = iota
	RoleStudent
	RoleUndergraduate
	RoleGraduate
	RoleProfessor
	RoleAssistantProfessor
	RoleAssociateProfessor
	RoleFullProfessor
)

// String returns the string representation of the role.
func (r Role) String() string {
	switch r {
	case RolePerson:
		return "person"
	case RoleStudent:
		return "student"
	case RoleUndergraduate:
		return "undergraduate"
	case RoleGraduate:
		return "graduate"
	case RoleProfessor:
		return "professor"
	case RoleAssistantProfessor:
		return "assistant_professor"
	case RoleAssociateProfessor:
		return "associate_professor"
	case RoleFullProfessor:
		return "full_professor"
	default:
		return "unknown"
	}
}

// ParseRole parses the output of Role.String.
func ParseRole(s string) (Role, bool) {
	for r := RolePerson; r <= RoleFullProfessor; r++ {
		if r.String() == s {
			return r, true
		}
	}
	return RolePerson, false
}

// IsStudent reports whether the role carries a StudentProfile.
func (r Role) IsStudent() bool {
	return r == RoleStudent || r == RoleUndergraduate || r == RoleGraduate
}

// IsProfessor reports whether the role carries a ProfessorProfile.
func (r Role) IsProfessor() bool {
	return r >= RoleProfessor && r <= RoleFullProfessor
}

// Payable is the capability every member exposes regardless of role.
type Payable interface {
	DisplayDetails(w io.Writer)
	CalculatePayment() (float64, error)
}

// Member is a Person plus a role payload. The payload is one of
// *StudentProfile, *Undergraduate, *Graduate, *ProfessorProfile,
// *AssistantProfessor, *AssociateProfessor or *FullProfessor, or nil for a
// plain person.
type Member struct {
	Person

	key     shared.Key
	role    Role
	payload any
}

var _ Payable = (*Member)(nil)

func newMember(role Role, payload any) *Member {
	return &Member{key: shared.NewKey(), role: role, payload: payload}
}

// NewPerson creates a member without a role payload.
func NewPerson() *Member {
	return newMember(RolePerson, nil)
}

// NewStudent creates a plain student.
func NewStudent(enrollmentDate, program string, gpa float64) *Member {
	return newMember(RoleStudent, &StudentProfile{
		enrollmentDate: enrollmentDate,
		program:        program,
		gpa:            gpa,
	})
}

// NewUndergraduate creates an undergraduate student.
func NewUndergraduate(enrollmentDate, program string, gpa float64, major, minor, expectedGraduation string) *Member {
	return newMember(RoleUndergraduate, &Undergraduate{
		StudentProfile:     StudentProfile{enrollmentDate: enrollmentDate, program: program, gpa: gpa},
		major:              major,
		minor:              minor,
		expectedGraduation: expectedGraduation,
	})
}

// NewGraduate creates a graduate student without assistantships.
func NewGraduate(enrollmentDate, program string, gpa float64, researchTopic, thesisTitle string) *Member {
	return newMember(RoleGraduate, &Graduate{
		StudentProfile: StudentProfile{enrollmentDate: enrollmentDate, program: program, gpa: gpa},
		researchTopic:  researchTopic,
		thesisTitle:    thesisTitle,
	})
}

// NewProfessor creates a plain professor.
func NewProfessor(department, hireDate, specialization string) *Member {
	return newMember(RoleProfessor, &ProfessorProfile{
		department:     department,
		hireDate:       hireDate,
		specialization: specialization,
	})
}

// NewAssistantProfessor creates an assistant professor.
func NewAssistantProfessor(department, hireDate, specialization string, contractYears, papersPublished int, promotionEligible bool) *Member {
	return newMember(RoleAssistantProfessor, &AssistantProfessor{
		ProfessorProfile:  ProfessorProfile{department: department, hireDate: hireDate, specialization: specialization},
		contractYears:     contractYears,
		papersPublished:   papersPublished,
		promotionEligible: promotionEligible,
	})
}

// NewAssociateProfessor creates an associate professor.
func NewAssociateProfessor(department, hireDate, specialization string, teachingYears, projectsDone, studentsGuided int) *Member {
	return newMember(RoleAssociateProfessor, &AssociateProfessor{
		ProfessorProfile: ProfessorProfile{department: department, hireDate: hireDate, specialization: specialization},
		teachingYears:    teachingYears,
		projectsDone:     projectsDone,
		studentsGuided:   studentsGuided,
	})
}

// NewFullProfessor creates a full professor.
func NewFullProfessor(department, hireDate, specialization string, workYears, foreignPapers int, isHead bool) *Member {
	return newMember(RoleFullProfessor, &FullProfessor{
		ProfessorProfile: ProfessorProfile{department: department, hireDate: hireDate, specialization: specialization},
		workYears:        workYears,
		foreignPapers:    foreignPapers,
		isHead:           isHead,
	})
}

// Key returns the arena key of the member.
func (m *Member) Key() shared.Key { return m.key }

// Role returns the member's variant.
func (m *Member) Role() Role { return m.role }

// StudentProfile returns the student part of a student role, or nil.
func (m *Member) StudentProfile() *StudentProfile {
	switch p := m.payload.(type) {
	case *StudentProfile:
		return p
	case *Undergraduate:
		return &p.StudentProfile
	case *Graduate:
		return &p.StudentProfile
	default:
		return nil
	}
}

// ProfessorProfile returns the professor part of a professor role, or nil.
func (m *Member) ProfessorProfile() *ProfessorProfile {
	switch p := m.payload.(type) {
	case *ProfessorProfile:
		return p
	case *AssistantProfessor:
		return &p.ProfessorProfile
	case *AssociateProfessor:
		return &p.ProfessorProfile
	case *FullProfessor:
		return &p.ProfessorProfile
	default:
		return nil
	}
}

// Undergraduate returns the undergraduate payload, or nil.
func (m *Member) Undergraduate() *Undergraduate {
	p, _ := m.payload.(*Undergraduate)
	return p
}

// Graduate returns the graduate payload, or nil.
func (m *Member) Graduate() *Graduate {
	p, _ := m.payload.(*Graduate)
	return p
}

// AssistantProfessor returns the assistant professor payload, or nil.
func (m *Member) AssistantProfessor() *AssistantProfessor {
	p, _ := m.payload.(*AssistantProfessor)
	return p
}

// AssociateProfessor returns the associate professor payload, or nil.
func (m *Member) AssociateProfessor() *AssociateProfessor {
	p, _ := m.payload.(*AssociateProfessor)
	return p
}

// FullProfessor returns the full professor payload, or nil.
func (m *Member) FullProfessor() *FullProfessor {
	p, _ := m.payload.(*FullProfessor)
	return p
}

// SetGPA sets the GPA of a student member. GPA errors carry the owner's ID,
// so this setter lives on Member rather than StudentProfile.
func (m *Member) SetGPA(gpa float64) error {
	sp := m.StudentProfile()
	if sp == nil {
		return shared.NewSystemError("Member is not a student", CodeNotAStudent)
	}
	if gpa < shared.MinGPA || gpa > shared.MaxGPA {
		return shared.NewGradeError("Invalid GPA value", m.idString(), "", shared.CodeInvalidGPA)
	}
	sp.gpa = gpa
	return nil
}
