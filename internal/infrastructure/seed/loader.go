package seed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alem-hub/campus-registrar/internal/domain/course"
	"github.com/alem-hub/campus-registrar/internal/domain/organization"
	"github.com/alem-hub/campus-registrar/internal/domain/people"
	"github.com/alem-hub/campus-registrar/internal/domain/schedule"
	"github.com/alem-hub/campus-registrar/internal/infrastructure/persistence/memory"
	"github.com/alem-hub/campus-registrar/pkg/timeutil"
)

// Campus is a loaded fixture: every entity lives in Directory, relations are
// keys.
type Campus struct {
	Directory  *memory.Directory
	University *organization.University
	Schedule   *schedule.Schedule

	// Today is the fixture's notion of the current date token, empty when
	// the fixture does not pin one.
	Today string
}

// Load reads, validates and builds the fixture at path.
func Load(ctx context.Context, path string) (*Campus, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return Build(ctx, f)
}

// Parse decodes and validates a fixture. Unknown keys are rejected.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("seed: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Build materializes a validated fixture. Members must be listed before any
// course, department or slot that references them; references are resolved
// by person ID, course code and room number.
func Build(ctx context.Context, f *File) (*Campus, error) {
	c := &Campus{
		Directory:  memory.NewDirectory(),
		University: organization.NewUniversity(f.University.Name, f.University.Location),
		Schedule:   schedule.New(),
		Today:      f.Today,
	}

	for i, mf := range f.Members {
		m, err := buildMember(mf)
		if err != nil {
			return nil, fmt.Errorf("seed: member %d (%d): %w", i+1, mf.ID, err)
		}
		if _, err := c.Directory.Members().GetByPersonID(ctx, mf.ID); err == nil {
			return nil, fmt.Errorf("seed: member %d: duplicate person ID %d", i+1, mf.ID)
		}
		if err := c.Directory.Members().Save(ctx, m); err != nil {
			return nil, fmt.Errorf("seed: member %d: %w", i+1, err)
		}
	}

	// Advisors are linked once every member exists.
	for _, mf := range f.Members {
		if mf.Student == nil || mf.Student.Advisor == 0 {
			continue
		}
		if err := c.linkAdvisor(ctx, mf.ID, mf.Student.Advisor); err != nil {
			return nil, fmt.Errorf("seed: member %d: %w", mf.ID, err)
		}
	}

	for _, df := range f.Departments {
		if err := c.addDepartment(ctx, df); err != nil {
			return nil, fmt.Errorf("seed: department %q: %w", df.Name, err)
		}
	}

	for _, cf := range f.Courses {
		if err := c.addCourse(ctx, cf); err != nil {
			return nil, fmt.Errorf("seed: course %q: %w", cf.Code, err)
		}
	}

	for _, rf := range f.Classrooms {
		room := schedule.NewClassroom(rf.RoomNumber, rf.Building, rf.Capacity, rf.Projector)
		if err := c.Directory.Classrooms().Save(ctx, room); err != nil {
			return nil, fmt.Errorf("seed: classroom %q: %w", rf.RoomNumber, err)
		}
	}

	for i, sf := range f.Slots {
		if err := c.addSlot(ctx, sf); err != nil {
			return nil, fmt.Errorf("seed: slot %d: %w", i+1, err)
		}
	}

	return c, nil
}

func buildMember(mf MemberFixture) (*people.Member, error) {
	role, _ := people.ParseRole(mf.Role)

	var m *people.Member
	switch {
	case role == people.RolePerson:
		m = people.NewPerson()
	case role.IsStudent():
		s := mf.Student
		if s == nil {
			return nil, fmt.Errorf("role %s needs a student block", role)
		}
		switch role {
		case people.RoleUndergraduate:
			m = people.NewUndergraduate(s.EnrollmentDate, s.Program, s.GPA, s.Major, s.Minor, s.ExpectedGraduation)
		case people.RoleGraduate:
			m = people.NewGraduate(s.EnrollmentDate, s.Program, s.GPA, s.ResearchTopic, s.ThesisTitle)
			if err := assignAssistantships(m.Graduate(), s); err != nil {
				return nil, err
			}
		default:
			m = people.NewStudent(s.EnrollmentDate, s.Program, s.GPA)
		}
	case role.IsProfessor():
		p := mf.Professor
		if p == nil {
			return nil, fmt.Errorf("role %s needs a professor block", role)
		}
		switch role {
		case people.RoleAssistantProfessor:
			m = people.NewAssistantProfessor(p.Department, p.HireDate, p.Specialization, p.ContractYears, p.PapersPublished, p.PromotionEligible)
		case people.RoleAssociateProfessor:
			m = people.NewAssociateProfessor(p.Department, p.HireDate, p.Specialization, p.TeachingYears, p.ProjectsDone, p.StudentsGuided)
		case people.RoleFullProfessor:
			m = people.NewFullProfessor(p.Department, p.HireDate, p.Specialization, p.WorkYears, p.ForeignPapers, p.IsHead)
		default:
			m = people.NewProfessor(p.Department, p.HireDate, p.Specialization)
		}
	}

	if err := m.SetName(mf.Name); err != nil {
		return nil, err
	}
	if err := m.SetID(mf.ID); err != nil {
		return nil, err
	}
	if mf.Contact != 0 {
		if err := m.SetContact(mf.Contact); err != nil {
			return nil, err
		}
	}
	if err := m.SetAge(mf.Age); err != nil {
		return nil, err
	}
	return m, nil
}

func assignAssistantships(g *people.Graduate, s *StudentFixture) error {
	if ta := s.TeachingAssistantship; ta != nil {
		if err := g.AssignTeachingAssistantship(ta.Stipend, ta.Hours); err != nil {
			return err
		}
	}
	if ra := s.ResearchAssistantship; ra != nil {
		if err := g.AssignResearchAssistantship(ra.Stipend, ra.Hours); err != nil {
			return err
		}
	}
	return nil
}

func (c *Campus) linkAdvisor(ctx context.Context, studentID, advisorID int) error {
	student, err := c.Directory.Members().GetByPersonID(ctx, studentID)
	if err != nil {
		return err
	}
	g := student.Graduate()
	if g == nil {
		return fmt.Errorf("only graduate students have an advisor, %d is a %s", studentID, student.Role())
	}
	advisor, err := c.Directory.Members().GetByPersonID(ctx, advisorID)
	if err != nil {
		return fmt.Errorf("advisor: %w", err)
	}
	return g.SetAdvisor(advisor)
}

func (c *Campus) addDepartment(ctx context.Context, df DepartmentFixture) error {
	dep := organization.NewDepartment(df.Name, df.Location, df.Budget)
	for _, id := range df.Professors {
		prof, err := c.Directory.Members().GetByPersonID(ctx, id)
		if err != nil {
			return fmt.Errorf("professor: %w", err)
		}
		if err := dep.AddProfessor(prof); err != nil {
			return err
		}
	}
	if err := c.Directory.Departments().Save(ctx, dep); err != nil {
		return err
	}
	c.University.AddDepartment(dep)
	return nil
}

func (c *Campus) addCourse(ctx context.Context, cf CourseFixture) error {
	if _, err := c.Directory.Courses().GetByCode(ctx, cf.Code); err == nil {
		return errors.New("duplicate course code")
	}

	crs := course.NewCourse(cf.Code, cf.Title, cf.Description, cf.Credits, cf.MaxCapacity)
	if cf.Deadline != "" {
		if err := crs.SetEnrollmentDeadline(cf.Deadline); err != nil {
			return err
		}
	}
	if cf.Instructor != 0 {
		prof, err := c.Directory.Members().GetByPersonID(ctx, cf.Instructor)
		if err != nil {
			return fmt.Errorf("instructor: %w", err)
		}
		if err := crs.SetInstructor(prof); err != nil {
			return err
		}
	}

	date := c.Today
	if date == "" {
		date = crs.EnrollmentDeadline()
	}
	for _, id := range cf.Roster {
		m, err := c.Directory.Members().GetByPersonID(ctx, id)
		if err != nil {
			return fmt.Errorf("roster: %w", err)
		}
		if !m.Role().IsStudent() {
			return fmt.Errorf("roster %d: member is a %s, not a student", id, m.Role())
		}
		if err := crs.Enroll(m, date); err != nil && !errors.Is(err, course.ErrAlreadyEnrolled) {
			return fmt.Errorf("roster %d: %w", id, err)
		}
	}

	return c.Directory.Courses().Save(ctx, crs)
}

func (c *Campus) addSlot(ctx context.Context, sf SlotFixture) error {
	crs, err := c.Directory.Courses().GetByCode(ctx, sf.Course)
	if err != nil {
		return err
	}
	room, err := c.Directory.Classrooms().GetByRoomNumber(ctx, sf.Room)
	if err != nil {
		return err
	}
	start := timeutil.NormalizeSlotTime(sf.Start)
	end := timeutil.NormalizeSlotTime(sf.End)
	_, err = c.Schedule.Add(sf.Day, start, end, crs.Key(), room.Key())
	return err
}
