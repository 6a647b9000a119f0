package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alem-hub/campus-registrar/internal/application/command"
	"github.com/alem-hub/campus-registrar/internal/application/query"
	"github.com/alem-hub/campus-registrar/internal/domain/academics"
	"github.com/alem-hub/campus-registrar/internal/domain/shared"
	"github.com/alem-hub/campus-registrar/internal/interface/console"
	"github.com/alem-hub/campus-registrar/pkg/logger"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Walk through enrollment, scheduling and payroll on the loaded campus",
	Long: `demo runs a fixed scenario against the campus fixture: member details and
payments, enrollments that hit every rejection, a bare enrollment ledger,
slot bookings with a conflict,
assistantship changes, grading and department payrolls.

The scenario expects the bundled campus.yaml.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, runDemo)
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n=== %s ===\n", title)
}

func runDemo(ctx context.Context, a *app) error {
	steps := []struct {
		title string
		run   func(context.Context, *app) error
	}{
		{"University", demoUniversity},
		{"Members", demoMembers},
		{"Enrollment", demoEnrollment},
		{"Enrollment Ledger", demoLedger},
		{"Scheduling", demoScheduling},
		{"Assistantships", demoAssistantships},
		{"Grades", demoGrades},
		{"Payroll", demoPayroll},
		{"Error Log", demoErrors},
	}
	for _, s := range steps {
		section(a.out, s.title)
		if err := s.run(ctx, a); err != nil {
			return fmt.Errorf("%s: %w", s.title, err)
		}
	}
	return nil
}

func demoUniversity(_ context.Context, a *app) error {
	u, dir := a.campus.University, a.campus.Directory
	fmt.Fprintf(a.out, "%s, %s\n", u.Name(), u.Location())
	u.DisplayDepartments(a.out, dir)
	u.DisplayAllProfessors(a.out, dir)
	return nil
}

func demoMembers(ctx context.Context, a *app) error {
	members, err := a.campus.Directory.Members().List(ctx)
	if err != nil {
		return err
	}
	for _, m := range members {
		fmt.Fprintln(a.out)
		m.DisplayDetails(a.out)
		amount, err := m.CalculatePayment()
		if err != nil {
			fmt.Fprintf(a.out, "Payment Error: %s\n", err)
			continue
		}
		fmt.Fprintf(a.out, "Payment:\t%.2f\n", amount)
	}
	return nil
}

func demoEnrollment(ctx context.Context, a *app) error {
	today := a.today()
	steps := []command.EnrollStudentCommand{
		{CourseCode: "CS101", StudentID: 12345, CurrentDate: today},
		{CourseCode: "CS101", StudentID: 12345, CurrentDate: today},
		{CourseCode: "CS101", StudentID: 54321, CurrentDate: today},
		{CourseCode: "CS101", StudentID: 13579, CurrentDate: today},
		{CourseCode: "MAL151", StudentID: 13579, CurrentDate: "15-12-2023"},
		{CourseCode: "MAL151", StudentID: 54321, CurrentDate: today},
		{CourseCode: "MAL151", StudentID: 13579, CurrentDate: "01/08/23"},
	}
	for _, cmd := range steps {
		fmt.Fprintf(a.out, "enroll %d in %s on %s: ", cmd.StudentID, cmd.CourseCode, cmd.CurrentDate)
		if err := a.enroll.Handle(ctx, cmd); err != nil {
			return err
		}
	}

	drops := []command.DropStudentCommand{
		{CourseCode: "MAL151", StudentID: 12345},
		{CourseCode: "CS101", StudentID: 54321},
	}
	for _, cmd := range drops {
		fmt.Fprintf(a.out, "drop %d from %s: ", cmd.StudentID, cmd.CourseCode)
		if err := a.drop.Handle(ctx, cmd); err != nil {
			return err
		}
	}

	fmt.Fprintln(a.out)
	return showRoster(ctx, a, "")
}

// demoLedger keeps a bare enrollment list beside the course rosters.
func demoLedger(_ context.Context, a *app) error {
	ledger := academics.NewEnrollmentManager()
	for _, id := range []string{"12345", "54321", "12345"} {
		if !ledger.Enroll("CS101", id) {
			fmt.Fprintf(a.out, "Student %s already listed for CS101\n", id)
		}
	}
	drops := []struct{ course, student string }{
		{"CS101", "54321"},
		{"CS101", "99999"},
		{"MAL151", "12345"},
	}
	for _, d := range drops {
		if err := ledger.Drop(d.course, d.student); err != nil {
			fmt.Fprintf(a.out, "Ledger Drop Error: %s\n", err)
			continue
		}
		fmt.Fprintf(a.out, "Student %s dropped from %s ledger\n", d.student, d.course)
	}
	fmt.Fprintf(a.out, "CS101 ledger: %d student(s) %v\n", ledger.Count("CS101"), ledger.Students("CS101"))
	return nil
}

func demoScheduling(ctx context.Context, a *app) error {
	bookings := []command.BookTimeSlotCommand{
		{Day: "Mon", Start: "09:30", End: "10:30", CourseCode: "MAL151", RoomNumber: "A-101"},
		{Day: "Mon", Start: "11:00", End: "12:00", CourseCode: "MAL151", RoomNumber: "A-101"},
		{Day: "Tue", Start: "9:00", End: "10:00", CourseCode: "CS101", RoomNumber: "A-101"},
	}
	for _, cmd := range bookings {
		fmt.Fprintf(a.out, "book %s %s-%s %s in %s: ", cmd.Day, cmd.Start, cmd.End, cmd.CourseCode, cmd.RoomNumber)
		if _, err := a.book.Handle(ctx, cmd); err != nil && !errors.Is(err, shared.ErrConflict) {
			return err
		}
	}

	releases := []command.ReleaseTimeSlotCommand{
		{Day: "Wed", Start: "14:00", CourseCode: "CS101"},
		{Day: "Fri", Start: "09:00", CourseCode: "CS101"},
	}
	for _, cmd := range releases {
		fmt.Fprintf(a.out, "release %s %s %s: ", cmd.Day, cmd.Start, cmd.CourseCode)
		if _, err := a.release.Handle(ctx, cmd); err != nil && !errors.Is(err, shared.ErrNotFound) {
			return err
		}
	}

	fmt.Fprintln(a.out)
	if err := showSchedule(ctx, a, "CS101", ""); err != nil {
		return err
	}
	if err := showSchedule(ctx, a, "", "A-101"); err != nil {
		return err
	}
	return showSchedule(ctx, a, "", "B-204")
}

func demoAssistantships(ctx context.Context, a *app) error {
	m, err := a.campus.Directory.Members().GetByPersonID(ctx, 13579)
	if err != nil {
		return err
	}
	g := m.Graduate()
	if g == nil {
		return fmt.Errorf("member %d is not a graduate student", m.ID())
	}

	report := func(label string) {
		amount, err := m.CalculatePayment()
		if err != nil {
			fmt.Fprintf(a.out, "%s: %s\n", label, err)
			return
		}
		fmt.Fprintf(a.out, "%s: stipend %.2f, teaching %dh, research %dh, payment %.2f\n",
			label, g.Stipend(), g.TeachingHours(), g.ResearchHours(), amount)
	}

	report(m.Name())
	if g.RemoveTeachingAssistantship() {
		report("Teaching assistantship removed")
	}
	if err := g.UpdateAssistantshipHours(0, -5); err != nil {
		recordAndPrint(ctx, a, err)
	}
	if g.RemoveResearchAssistantship() {
		report("Research assistantship removed")
	}
	return nil
}

func demoGrades(ctx context.Context, a *app) error {
	book := academics.NewGradeBook("CS101", "assignment", "midterm", "final")
	grades := []struct {
		student string
		grade   int
	}{
		{"12345", 87},
		{"54321", 29},
		{"13579", 150},
	}
	for _, g := range grades {
		if err := book.AddGrade(g.student, g.grade); err != nil {
			recordAndPrint(ctx, a, err)
		}
	}
	book.CompleteRequirement("12345", "assignment")
	book.CompleteRequirement("12345", "midterm")
	book.CompleteRequirement("12345", "final")
	book.CompleteRequirement("54321", "assignment")

	book.ShowGrades(a.out)
	fmt.Fprintf(a.out, "Average: %.2f, Highest: %d, Failing: %v\n",
		book.Average(), book.Highest(), book.FailingStudents(academics.DefaultPassMark))

	for _, id := range []string{"12345", "54321"} {
		if err := book.CheckRequirements(id); err != nil {
			recordAndPrint(ctx, a, err)
			continue
		}
		fmt.Fprintf(a.out, "Student %s completed all requirements\n", id)
	}
	return nil
}

func demoPayroll(ctx context.Context, a *app) error {
	for _, e := range a.campus.University.Departments() {
		fmt.Fprintln(a.out)
		err := runPayroll(ctx, a, e.Name)
		if err != nil && !errors.Is(err, shared.ErrInsufficientFunds) {
			return err
		}
	}
	return nil
}

func demoErrors(ctx context.Context, a *app) error {
	if a.recent == nil {
		fmt.Fprintln(a.out, "Error history needs the sqlite sink.")
		return nil
	}
	entries, err := a.recent.Handle(ctx, query.GetRecentErrorsQuery{Limit: 10})
	if err != nil {
		return err
	}
	return console.WriteErrors(a.out, entries)
}

// recordAndPrint appends err to the error log and prints its details.
func recordAndPrint(ctx context.Context, a *app, err error) {
	var tagged *shared.Error
	if errors.As(err, &tagged) {
		fmt.Fprintln(a.out, tagged.Details())
	} else {
		fmt.Fprintln(a.out, err)
	}
	if _, rerr := a.errlog.Record(ctx, err); rerr != nil {
		a.log.Warn("error log incomplete", logger.Err(rerr))
	}
}
