package people

import (
	"fmt"
	"io"
)

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// DisplayDetails writes the person block followed by one block per role layer.
func (m *Member) DisplayDetails(w io.Writer) {
	fmt.Fprintf(w, "Person Details: \nName:\t%s\nAgeId:\t%d\nID:\t%d\nContact No:\t%d\n",
		m.name, m.age, m.id, m.contact)

	if s := m.StudentProfile(); s != nil {
		fmt.Fprintf(w, "Student Details: \nEnrollment Date:\t%s\nProgram:\t%s\nGPA:\t%g\n",
			s.enrollmentDate, s.program, s.gpa)
	}
	if p := m.ProfessorProfile(); p != nil {
		fmt.Fprintf(w, "Professor Details: \nDepartment:\t%s\nHire Date:\t%s\nSpecialization:\t%s\n",
			p.department, p.hireDate, p.specialization)
	}

	switch p := m.payload.(type) {
	case *Undergraduate:
		fmt.Fprintf(w, "Undergraduate Student Details: \nMajor:\t%s\nMinor:\t%s\nExpected Graduation Date:\t%s\n",
			p.major, p.minor, p.expectedGraduation)
	case *Graduate:
		p.display(w)
	case *AssistantProfessor:
		fmt.Fprintf(w, "Assistant Professor Details: \nContract Years:\t%d\nPapers Published:\t%d\nPromotion Eligible:\t%s\n",
			p.contractYears, p.papersPublished, yesNo(p.promotionEligible))
	case *AssociateProfessor:
		fmt.Fprintf(w, "Associate Professor Details: \nTeaching Years:\t%d\nProjects Done:\t%d\nStudents Guided:\t%d\n",
			p.teachingYears, p.projectsDone, p.studentsGuided)
	case *FullProfessor:
		fmt.Fprintf(w, "Full Professor Details: \nWork Years:\t%d\nForeign Papers:\t%d\nIs Head:\t%s\n",
			p.workYears, p.foreignPapers, yesNo(p.isHead))
	}
}

func (g *Graduate) display(w io.Writer) {
	fmt.Fprintf(w, "Graduate Student Details: \nResearch Topic:\t%s\nThesis Title:\t%s\n", g.researchTopic, g.thesisTitle)
	if g.advisor.IsZero() {
		fmt.Fprint(w, "No Advisor Assigned\n")
	} else {
		fmt.Fprintf(w, "Advisor:\t%s\n", g.advisorName)
	}

	fmt.Fprintf(w, "Teaching Assistantship:\t%s\n", yesNo(g.teachingAssistant))
	if g.teachingAssistant {
		fmt.Fprintf(w, "Teaching Hours:\t%d\n", g.teachingHours)
	}
	fmt.Fprintf(w, "Research Assistantship:\t%s\n", yesNo(g.researchAssistant))
	if g.researchAssistant {
		fmt.Fprintf(w, "Research Hours:\t%d\n", g.researchHours)
	}
	if g.teachingAssistant || g.researchAssistant {
		fmt.Fprintf(w, "Total Assistantship Stipend:\t%g\n", g.stipend)
	}
}
