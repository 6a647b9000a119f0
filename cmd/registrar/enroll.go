package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/alem-hub/campus-registrar/internal/application/command"
	"github.com/alem-hub/campus-registrar/internal/application/query"
	"github.com/alem-hub/campus-registrar/internal/interface/console"
)

var (
	rosterCourse  string
	rosterStudent int
	rosterDate    string
)

var enrollCmd = &cobra.Command{
	Use:   "enroll",
	Short: "Enroll a student in a course",
	Long: `Enroll a student in a course and print the resulting roster.

A full course, a passed deadline or a malformed date is reported as a notice
and written to the error log; the command itself still succeeds.`,
	Example: `  registrar enroll --course CS101 --student 12345
  registrar enroll --course MAL151 --student 54321 --date 15/08/23`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			date := rosterDate
			if date == "" {
				date = a.today()
			}
			if err := a.enroll.Handle(ctx, command.EnrollStudentCommand{
				CourseCode:  rosterCourse,
				StudentID:   rosterStudent,
				CurrentDate: date,
			}); err != nil {
				return err
			}
			return showRoster(ctx, a, rosterCourse)
		})
	},
}

var dropCmd = &cobra.Command{
	Use:   "drop",
	Short: "Drop a student from a course",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			if err := a.drop.Handle(ctx, command.DropStudentCommand{
				CourseCode: rosterCourse,
				StudentID:  rosterStudent,
			}); err != nil {
				return err
			}
			return showRoster(ctx, a, rosterCourse)
		})
	},
}

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "List enrolled students per course",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			return showRoster(ctx, a, rosterCourse)
		})
	},
}

func showRoster(ctx context.Context, a *app, code string) error {
	rosters, err := a.rosters.Handle(ctx, query.GetRosterQuery{CourseCode: code})
	if err != nil {
		return err
	}
	return console.WriteRosters(a.out, rosters)
}

func init() {
	for _, c := range []*cobra.Command{enrollCmd, dropCmd} {
		c.Flags().StringVar(&rosterCourse, "course", "", "course code (required)")
		c.Flags().IntVar(&rosterStudent, "student", 0, "student person ID (required)")
		c.MarkFlagRequired("course")
		c.MarkFlagRequired("student")
	}
	enrollCmd.Flags().StringVar(&rosterDate, "date", "", "enrollment date dd/mm/yy (default today)")
	rosterCmd.Flags().StringVar(&rosterCourse, "course", "", "only this course")

	rootCmd.AddCommand(enrollCmd, dropCmd, rosterCmd)
}
