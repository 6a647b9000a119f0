package people

import (
	"github.com/alem-hub/campus-registrar/internal/domain/shared"
)

// Error codes of the professor setters.
const (
	CodeDepartment     = 505
	CodeHireDate       = 506
	CodeSpecialization = 507
	CodeContractYears  = 514
	CodePapers         = 515
	CodeTeachingYears  = 516
	CodeProjects       = 517
	CodeStudentsGuided = 518
	CodeWorkYears      = 519
	CodeForeignPapers  = 520
)

// ProfessorProfile is the part every professor role carries.
type ProfessorProfile struct {
	department     string
	hireDate       string
	specialization string
	bonus          float64
}

func (p *ProfessorProfile) Department() string     { return p.department }
func (p *ProfessorProfile) HireDate() string       { return p.hireDate }
func (p *ProfessorProfile) Specialization() string { return p.specialization }
func (p *ProfessorProfile) Bonus() float64         { return p.bonus }

func (p *ProfessorProfile) SetDepartment(department string) error {
	if department == "" {
		return shared.NewSystemError("Department cannot be empty", CodeDepartment)
	}
	p.department = department
	return nil
}

func (p *ProfessorProfile) SetHireDate(date string) error {
	if !shared.ValidateDate(date) {
		return shared.NewSystemError("Invalid hire date format", CodeHireDate)
	}
	p.hireDate = date
	return nil
}

func (p *ProfessorProfile) SetSpecialization(specialization string) error {
	if specialization == "" {
		return shared.NewSystemError("Specialization cannot be empty", CodeSpecialization)
	}
	p.specialization = specialization
	return nil
}

// SetBonus sets the amount a plain professor earns on top of the base.
// Ranked professors ignore it.
func (p *ProfessorProfile) SetBonus(amount float64) {
	p.bonus = amount
}

func nonNegative(v int, message string, code int) error {
	if v < 0 {
		return shared.NewSystemError(message, code)
	}
	return nil
}

// ═══════════════════════════════════════════════════════════════════════════
// Ranks
// ═══════════════════════════════════════════════════════════════════════════

type AssistantProfessor struct {
	ProfessorProfile
	contractYears     int
	papersPublished   int
	promotionEligible bool
}

func (a *AssistantProfessor) ContractYears() int      { return a.contractYears }
func (a *AssistantProfessor) PapersPublished() int    { return a.papersPublished }
func (a *AssistantProfessor) PromotionEligible() bool { return a.promotionEligible }

func (a *AssistantProfessor) SetContractYears(years int) error {
	if err := nonNegative(years, "Contract years cannot be negative", CodeContractYears); err != nil {
		return err
	}
	a.contractYears = years
	return nil
}

func (a *AssistantProfessor) SetPapersPublished(count int) error {
	if err := nonNegative(count, "Papers published cannot be negative", CodePapers); err != nil {
		return err
	}
	a.papersPublished = count
	return nil
}

func (a *AssistantProfessor) SetPromotionEligible(eligible bool) {
	a.promotionEligible = eligible
}

type AssociateProfessor struct {
	ProfessorProfile
	teachingYears  int
	projectsDone   int
	studentsGuided int
}

func (a *AssociateProfessor) TeachingYears() int  { return a.teachingYears }
func (a *AssociateProfessor) ProjectsDone() int   { return a.projectsDone }
func (a *AssociateProfessor) StudentsGuided() int { return a.studentsGuided }

func (a *AssociateProfessor) SetTeachingYears(years int) error {
	if err := nonNegative(years, "Teaching years cannot be negative", CodeTeachingYears); err != nil {
		return err
	}
	a.teachingYears = years
	return nil
}

func (a *AssociateProfessor) SetProjectsDone(projects int) error {
	if err := nonNegative(projects, "Projects done cannot be negative", CodeProjects); err != nil {
		return err
	}
	a.projectsDone = projects
	return nil
}

func (a *AssociateProfessor) SetStudentsGuided(students int) error {
	if err := nonNegative(students, "Students guided cannot be negative", CodeStudentsGuided); err != nil {
		return err
	}
	a.studentsGuided = students
	return nil
}

type FullProfessor struct {
	ProfessorProfile
	workYears     int
	foreignPapers int
	isHead        bool
}

func (f *FullProfessor) WorkYears() int     { return f.workYears }
func (f *FullProfessor) ForeignPapers() int { return f.foreignPapers }
func (f *FullProfessor) IsHead() bool       { return f.isHead }

func (f *FullProfessor) SetWorkYears(years int) error {
	if err := nonNegative(years, "Work years cannot be negative", CodeWorkYears); err != nil {
		return err
	}
	f.workYears = years
	return nil
}

func (f *FullProfessor) SetForeignPapers(papers int) error {
	if err := nonNegative(papers, "Foreign papers cannot be negative", CodeForeignPapers); err != nil {
		return err
	}
	f.foreignPapers = papers
	return nil
}

func (f *FullProfessor) SetIsHead(head bool) {
	f.isHead = head
}
