package console

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/alem-hub/campus-registrar/internal/application/query"
	"github.com/alem-hub/campus-registrar/internal/domain/organization"
	"github.com/alem-hub/campus-registrar/internal/infrastructure/errorlog"
)

// ══════════════════════════════════════════════════════════════════════════════
// LISTINGS
// ══════════════════════════════════════════════════════════════════════════════

func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// WriteRosters prints each course followed by its students.
func WriteRosters(w io.Writer, rosters []query.RosterDTO) error {
	for i, r := range rosters {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s: %s\n", r.CourseCode, r.Title)
		if r.Instructor != "" {
			fmt.Fprintf(w, "Instructor: %s\n", r.Instructor)
		}
		fmt.Fprintf(w, "Enrollment Deadline: %s\n", r.Deadline)
		fmt.Fprintf(w, "Enrolled Students: %d/%d\n", len(r.Students), r.MaxCapacity)

		if len(r.Students) == 0 {
			fmt.Fprint(w, "No Students Enrolled in this Course!\n")
			continue
		}
		tw := table(w)
		fmt.Fprintln(tw, "ID\tName")
		for _, s := range r.Students {
			fmt.Fprintf(tw, "%d\t%s\n", s.StudentID, s.Name)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// WriteSchedule prints a course or classroom schedule.
func WriteSchedule(w io.Writer, s *query.ScheduleDTO) error {
	if len(s.Slots) == 0 {
		_, err := fmt.Fprintf(w, "No Time Slots for %s!\n", s.Subject)
		return err
	}
	fmt.Fprintf(w, "Schedule for %s:\n", s.Subject)
	tw := table(w)
	fmt.Fprintln(tw, "Day\tStart\tEnd\tCourse\tRoom")
	for _, slot := range s.Slots {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", slot.Day, slot.Start, slot.End, slot.CourseCode, slot.RoomNumber)
	}
	return tw.Flush()
}

// WritePayroll prints one line per professor and the total against budget.
func WritePayroll(w io.Writer, p organization.Payroll) error {
	fmt.Fprintf(w, "Payroll for %s:\n", p.Department)
	tw := table(w)
	fmt.Fprintln(tw, "ID\tName\tRole\tPayment")
	for _, l := range p.Lines {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\n", l.PersonID, l.Name, l.Role, l.Amount)
	}
	fmt.Fprintf(tw, "\t\tTotal\t%.2f\n", p.Total)
	fmt.Fprintf(tw, "\t\tBudget\t%.2f\n", p.Budget)
	return tw.Flush()
}

// WriteErrors prints error log entries in their log line form.
func WriteErrors(w io.Writer, entries []errorlog.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprint(w, "No Errors Logged!\n")
		return err
	}
	for _, e := range entries {
		if _, err := fmt.Fprintln(w, e.Line()); err != nil {
			return err
		}
	}
	return nil
}
