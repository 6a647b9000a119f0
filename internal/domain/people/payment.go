package people

import (
	"github.com/alem-hub/campus-registrar/internal/domain/shared"
)

// Payment constants.
const (
	StudentBasePayment   = 154500.0
	ProfessorBasePayment = 100500.0

	UndergraduateSupplement = 1.0
	ResearchAssistantBonus  = 5000.0

	AssistantPaperBonus     = 5000.0
	AssistantPromotionBonus = 10000.0
	AssistantYearRate       = 0.05

	AssociateYearBonus       = 2000.0
	AssociateProjectBonus    = 10000.0
	AssociateStudentBonus    = 1000.0
	AssociateExperienceYears = 5
	AssociateExperienceRate  = 0.1

	FullYearBonus      = 5000.0
	FullForeignBonus   = 1000.0
	FullHeadBonus      = 50000.0
	FullSeniorityYears = 10
	FullSeniorityRate  = 0.2
)

// paymentFormula computes the payment of one role from its payload. ok is
// false when the payload does not belong to the role.
type paymentFormula func(payload any) (amount float64, ok bool)

// paymentTable holds one independent rule per role.
var paymentTable = map[Role]paymentFormula{
	RolePerson: func(any) (float64, bool) {
		return 0, true
	},
	RoleStudent: func(p any) (float64, bool) {
		s, ok := p.(*StudentProfile)
		if !ok {
			return 0, false
		}
		return StudentBasePayment + s.penalty, true
	},
	RoleUndergraduate: func(p any) (float64, bool) {
		u, ok := p.(*Undergraduate)
		if !ok {
			return 0, false
		}
		return StudentBasePayment + u.penalty + UndergraduateSupplement, true
	},
	RoleGraduate: func(p any) (float64, bool) {
		g, ok := p.(*Graduate)
		if !ok {
			return 0, false
		}
		amount := StudentBasePayment + g.stipend
		if g.researchAssistant {
			amount += ResearchAssistantBonus
		}
		return amount, true
	},
	RoleProfessor: func(p any) (float64, bool) {
		pr, ok := p.(*ProfessorProfile)
		if !ok {
			return 0, false
		}
		return ProfessorBasePayment + pr.bonus, true
	},
	RoleAssistantProfessor: func(p any) (float64, bool) {
		a, ok := p.(*AssistantProfessor)
		if !ok {
			return 0, false
		}
		base := ProfessorBasePayment
		amount := base + float64(a.papersPublished)*AssistantPaperBonus
		if a.promotionEligible {
			amount += AssistantPromotionBonus
		}
		if a.contractYears > 0 {
			amount += base * float64(a.contractYears) * AssistantYearRate
		}
		return amount, true
	},
	RoleAssociateProfessor: func(p any) (float64, bool) {
		a, ok := p.(*AssociateProfessor)
		if !ok {
			return 0, false
		}
		base := ProfessorBasePayment
		amount := base +
			float64(a.teachingYears)*AssociateYearBonus +
			float64(a.projectsDone)*AssociateProjectBonus +
			float64(a.studentsGuided)*AssociateStudentBonus
		if a.teachingYears > AssociateExperienceYears {
			amount += base * AssociateExperienceRate
		}
		return amount, true
	},
	RoleFullProfessor: func(p any) (float64, bool) {
		f, ok := p.(*FullProfessor)
		if !ok {
			return 0, false
		}
		base := ProfessorBasePayment
		amount := base +
			float64(f.workYears)*FullYearBonus +
			float64(f.foreignPapers)*FullForeignBonus
		if f.isHead {
			amount += FullHeadBonus
		}
		if f.workYears > FullSeniorityYears {
			amount += base * FullSeniorityRate
		}
		return amount, true
	},
}

// CalculatePayment returns the member's payment under its role's rule.
func (m *Member) CalculatePayment() (float64, error) {
	formula, ok := paymentTable[m.role]
	if !ok {
		return 0, shared.NewPaymentCalculationError(m.idString(), 0, "no payment rule for role "+m.role.String())
	}
	amount, ok := formula(m.payload)
	if !ok {
		return 0, shared.NewPaymentCalculationError(m.idString(), 0, "Error calculating "+m.role.String()+" payment")
	}
	return amount, nil
}
