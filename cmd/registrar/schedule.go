package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/alem-hub/campus-registrar/internal/application/command"
	"github.com/alem-hub/campus-registrar/internal/application/query"
	"github.com/alem-hub/campus-registrar/internal/interface/console"
)

var (
	slotDay    string
	slotStart  string
	slotEnd    string
	slotCourse string
	slotRoom   string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Show the timetable of a course or classroom",
	Example: `  registrar schedule --course CS101
  registrar schedule --room A-101`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if (slotCourse == "") == (slotRoom == "") {
			return errors.New("exactly one of --course or --room is required")
		}
		return withApp(cmd, func(ctx context.Context, a *app) error {
			return showSchedule(ctx, a, slotCourse, slotRoom)
		})
	},
}

var bookCmd = &cobra.Command{
	Use:     "book",
	Short:   "Book a classroom time slot for a course",
	Example: `  registrar schedule book --day Mon --start 11:00 --end 12:00 --course CS101 --room A-101`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			if _, err := a.book.Handle(ctx, command.BookTimeSlotCommand{
				Day:        slotDay,
				Start:      slotStart,
				End:        slotEnd,
				CourseCode: slotCourse,
				RoomNumber: slotRoom,
			}); err != nil {
				return err
			}
			return showSchedule(ctx, a, "", slotRoom)
		})
	},
}

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Release a course's time slot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			if _, err := a.release.Handle(ctx, command.ReleaseTimeSlotCommand{
				Day:        slotDay,
				Start:      slotStart,
				CourseCode: slotCourse,
			}); err != nil {
				return err
			}
			return showSchedule(ctx, a, slotCourse, "")
		})
	},
}

func showSchedule(ctx context.Context, a *app, courseCode, roomNumber string) error {
	var (
		s   *query.ScheduleDTO
		err error
	)
	if courseCode != "" {
		s, err = a.schedules.CourseSchedule(ctx, query.GetCourseScheduleQuery{CourseCode: courseCode})
	} else {
		s, err = a.schedules.ClassroomSchedule(ctx, query.GetClassroomScheduleQuery{RoomNumber: roomNumber})
	}
	if err != nil {
		return err
	}
	return console.WriteSchedule(a.out, s)
}

func init() {
	scheduleCmd.Flags().StringVar(&slotCourse, "course", "", "course code")
	scheduleCmd.Flags().StringVar(&slotRoom, "room", "", "room number")

	bookCmd.Flags().StringVar(&slotDay, "day", "", "day of week, e.g. Mon (required)")
	bookCmd.Flags().StringVar(&slotStart, "start", "", "start time HH:MM (required)")
	bookCmd.Flags().StringVar(&slotEnd, "end", "", "end time HH:MM (required)")
	bookCmd.Flags().StringVar(&slotCourse, "course", "", "course code (required)")
	bookCmd.Flags().StringVar(&slotRoom, "room", "", "room number (required)")
	for _, f := range []string{"day", "start", "end", "course", "room"} {
		bookCmd.MarkFlagRequired(f)
	}

	releaseCmd.Flags().StringVar(&slotDay, "day", "", "day of week (required)")
	releaseCmd.Flags().StringVar(&slotStart, "start", "", "start time HH:MM (required)")
	releaseCmd.Flags().StringVar(&slotCourse, "course", "", "course code (required)")
	for _, f := range []string{"day", "start", "course"} {
		releaseCmd.MarkFlagRequired(f)
	}

	scheduleCmd.AddCommand(bookCmd, releaseCmd)
	rootCmd.AddCommand(scheduleCmd)
}
