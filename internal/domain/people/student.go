package people

import (
	"github.com/alem-hub/campus-registrar/internal/domain/shared"
)

// Error codes of the student setters.
const (
	CodeEnrollmentDate     = 500
	CodeProgram            = 501
	CodeMajor              = 502
	CodeMinor              = 503
	CodeGraduationDate     = 504
	CodeResearchTopic      = 508
	CodeThesisTitle        = 509
	CodeAssistantship      = 510
	CodeAssistantshipHours = 511
	CodeNotAStudent        = 512
	CodeNotAProfessor      = 513
)

// ═══════════════════════════════════════════════════════════════════════════
// StudentProfile
// ═══════════════════════════════════════════════════════════════════════════

// StudentProfile is the part every student role carries.
type StudentProfile struct {
	enrollmentDate string
	program        string
	gpa            float64
	penalty        float64
}

func (s *StudentProfile) EnrollmentDate() string { return s.enrollmentDate }
func (s *StudentProfile) Program() string        { return s.program }
func (s *StudentProfile) GPA() float64           { return s.gpa }
func (s *StudentProfile) Penalty() float64       { return s.penalty }

// SetEnrollmentDate sets a DD/MM/YY shaped date.
func (s *StudentProfile) SetEnrollmentDate(date string) error {
	if !shared.ValidateDate(date) {
		return shared.NewSystemError("Invalid enrollment date format", CodeEnrollmentDate)
	}
	s.enrollmentDate = date
	return nil
}

// SetProgram sets a non-empty program name.
func (s *StudentProfile) SetProgram(program string) error {
	if program == "" {
		return shared.NewSystemError("Program cannot be empty", CodeProgram)
	}
	s.program = program
	return nil
}

// SetPenalty sets the amount added to the student's base payment.
func (s *StudentProfile) SetPenalty(amount float64) {
	s.penalty = amount
}

// ═══════════════════════════════════════════════════════════════════════════
// Undergraduate
// ═══════════════════════════════════════════════════════════════════════════

type Undergraduate struct {
	StudentProfile
	major              string
	minor              string
	expectedGraduation string
}

func (u *Undergraduate) Major() string              { return u.major }
func (u *Undergraduate) Minor() string              { return u.minor }
func (u *Undergraduate) ExpectedGraduation() string { return u.expectedGraduation }

func (u *Undergraduate) SetMajor(major string) error {
	if major == "" {
		return shared.NewSystemError("Major cannot be empty", CodeMajor)
	}
	u.major = major
	return nil
}

func (u *Undergraduate) SetMinor(minor string) error {
	if minor == "" {
		return shared.NewSystemError("Minor cannot be empty", CodeMinor)
	}
	u.minor = minor
	return nil
}

func (u *Undergraduate) SetExpectedGraduation(date string) error {
	if !shared.ValidateDate(date) {
		return shared.NewSystemError("Invalid graduation date format", CodeGraduationDate)
	}
	u.expectedGraduation = date
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Graduate
// ═══════════════════════════════════════════════════════════════════════════

// Graduate carries research data and assistantships. The advisor is kept as
// a key plus a name snapshot taken when the advisor is assigned.
type Graduate struct {
	StudentProfile
	researchTopic string
	thesisTitle   string

	advisor     shared.Key
	advisorName string

	teachingAssistant bool
	researchAssistant bool
	stipend           float64
	teachingHours     int
	researchHours     int
}

func (g *Graduate) ResearchTopic() string       { return g.researchTopic }
func (g *Graduate) ThesisTitle() string         { return g.thesisTitle }
func (g *Graduate) Advisor() shared.Key         { return g.advisor }
func (g *Graduate) AdvisorName() string         { return g.advisorName }
func (g *Graduate) TeachingAssistantship() bool { return g.teachingAssistant }
func (g *Graduate) ResearchAssistantship() bool { return g.researchAssistant }
func (g *Graduate) Stipend() float64            { return g.stipend }
func (g *Graduate) TeachingHours() int          { return g.teachingHours }
func (g *Graduate) ResearchHours() int          { return g.researchHours }

func (g *Graduate) SetResearchTopic(topic string) error {
	if topic == "" {
		return shared.NewSystemError("Research topic cannot be empty", CodeResearchTopic)
	}
	g.researchTopic = topic
	return nil
}

func (g *Graduate) SetThesisTitle(title string) error {
	if title == "" {
		return shared.NewSystemError("Thesis title cannot be empty", CodeThesisTitle)
	}
	g.thesisTitle = title
	return nil
}

// SetAdvisor assigns a professor as advisor. A nil professor clears it.
func (g *Graduate) SetAdvisor(professor *Member) error {
	if professor == nil {
		g.advisor, g.advisorName = "", ""
		return nil
	}
	if !professor.Role().IsProfessor() {
		return shared.NewSystemError("Advisor must be a professor", CodeNotAProfessor)
	}
	g.advisor = professor.Key()
	g.advisorName = professor.Name()
	return nil
}

// AssignTeachingAssistantship adds stipend to the total and sets the teaching hours.
func (g *Graduate) AssignTeachingAssistantship(stipend float64, hours int) error {
	if stipend < 0 || hours < 0 {
		return shared.NewSystemError("Stipend and hours must be positive values", CodeAssistantship)
	}
	g.teachingAssistant = true
	g.stipend += stipend
	g.teachingHours = hours
	return nil
}

// AssignResearchAssistantship adds stipend to the total and sets the research hours.
func (g *Graduate) AssignResearchAssistantship(stipend float64, hours int) error {
	if stipend < 0 || hours < 0 {
		return shared.NewSystemError("Stipend and hours must be positive values", CodeAssistantship)
	}
	g.researchAssistant = true
	g.stipend += stipend
	g.researchHours = hours
	return nil
}

// RemoveTeachingAssistantship drops the teaching share of the stipend,
// proportional to the teaching hours over all assigned hours. It reports
// whether an assistantship was held.
func (g *Graduate) RemoveTeachingAssistantship() bool {
	if !g.teachingAssistant {
		return false
	}
	g.teachingAssistant = false
	g.stipend -= g.share(g.teachingHours)
	g.teachingHours = 0
	return true
}

// RemoveResearchAssistantship is the research counterpart of
// RemoveTeachingAssistantship.
func (g *Graduate) RemoveResearchAssistantship() bool {
	if !g.researchAssistant {
		return false
	}
	g.researchAssistant = false
	g.stipend -= g.share(g.researchHours)
	g.researchHours = 0
	return true
}

// share returns the part of the stipend owed to hours. With no hours
// assigned at all nothing is deducted.
func (g *Graduate) share(hours int) float64 {
	total := g.teachingHours + g.researchHours
	if total == 0 {
		return 0
	}
	return g.stipend * float64(hours) / float64(total)
}

// UpdateAssistantshipHours replaces both hour counts.
func (g *Graduate) UpdateAssistantshipHours(teachingHours, researchHours int) error {
	if teachingHours < 0 || researchHours < 0 {
		return shared.NewSystemError("Hours must be positive values", CodeAssistantshipHours)
	}
	g.teachingHours = teachingHours
	g.researchHours = researchHours
	return nil
}
