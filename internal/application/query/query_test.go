package query

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/campus-registrar/internal/domain/course"
	"github.com/alem-hub/campus-registrar/internal/domain/people"
	"github.com/alem-hub/campus-registrar/internal/domain/schedule"
	"github.com/alem-hub/campus-registrar/internal/domain/shared"
	"github.com/alem-hub/campus-registrar/internal/infrastructure/errorlog"
	"github.com/alem-hub/campus-registrar/internal/infrastructure/persistence/memory"
)

type campus struct {
	dir       *memory.Directory
	timetable *memory.Timetable
	cs, ma    *course.Course
	a, b      *schedule.Classroom
}

func newCampus(t *testing.T) *campus {
	t.Helper()
	ctx := context.Background()
	c := &campus{
		dir:       memory.NewDirectory(),
		timetable: memory.NewTimetable(nil),
		cs:        course.NewCourse("CS101", "Intro", "", 4, 2),
		ma:        course.NewCourse("MA101", "Calculus", "", 3, 30),
		a:         schedule.NewClassroom("A-101", "Main", 60, true),
		b:         schedule.NewClassroom("B-204", "Science", 40, false),
	}
	for _, crs := range []*course.Course{c.cs, c.ma} {
		require.NoError(t, c.dir.Courses().Save(ctx, crs))
	}
	for _, r := range []*schedule.Classroom{c.a, c.b} {
		require.NoError(t, c.dir.Classrooms().Save(ctx, r))
	}

	book := func(day, start, end string, crs *course.Course, room *schedule.Classroom) {
		_, err := c.timetable.Add(day, start, end, crs.Key(), room.Key())
		require.NoError(t, err)
	}
	book("Mon", "09:00", "10:00", c.cs, c.a)
	book("Mon", "10:00", "11:00", c.ma, c.a)
	book("Wed", "14:00", "15:30", c.cs, c.b)
	return c
}

func TestCourseSchedule(t *testing.T) {
	c := newCampus(t)
	h := NewScheduleHandler(c.dir.Courses(), c.dir.Classrooms(), c.timetable, c.dir)

	got, err := h.CourseSchedule(context.Background(), GetCourseScheduleQuery{CourseCode: "CS101"})
	require.NoError(t, err)
	assert.Equal(t, "CS101", got.Subject)
	assert.Equal(t, []SlotDTO{
		{Day: "Mon", Start: "09:00", End: "10:00", CourseCode: "CS101", RoomNumber: "A-101"},
		{Day: "Wed", Start: "14:00", End: "15:30", CourseCode: "CS101", RoomNumber: "B-204"},
	}, got.Slots)

	_, err = h.CourseSchedule(context.Background(), GetCourseScheduleQuery{CourseCode: "PH101"})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestClassroomSchedule(t *testing.T) {
	c := newCampus(t)
	h := NewScheduleHandler(c.dir.Courses(), c.dir.Classrooms(), c.timetable, c.dir)

	got, err := h.ClassroomSchedule(context.Background(), GetClassroomScheduleQuery{RoomNumber: "A-101"})
	require.NoError(t, err)
	require.Len(t, got.Slots, 2)
	assert.Equal(t, "CS101", got.Slots[0].CourseCode)
	assert.Equal(t, "MA101", got.Slots[1].CourseCode)

	// Snapshot: later bookings do not leak into an earlier result.
	_, err = c.timetable.Add("Fri", "08:00", "09:00", c.ma.Key(), c.a.Key())
	require.NoError(t, err)
	assert.Len(t, got.Slots, 2)

	_, err = h.ClassroomSchedule(context.Background(), GetClassroomScheduleQuery{})
	assert.Error(t, err)
}

func TestRoster(t *testing.T) {
	c := newCampus(t)
	kanan := people.NewStudent("01/09/23", "CS", 3.8)
	require.NoError(t, kanan.SetID(12345))
	require.NoError(t, kanan.SetName("Kanan"))
	require.NoError(t, c.cs.Enroll(kanan, "15/12/23"))

	h := NewRosterHandler(c.dir.Courses())

	one, err := h.Handle(context.Background(), GetRosterQuery{CourseCode: "CS101"})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, []RosterEntryDTO{{StudentID: 12345, Name: "Kanan"}}, one[0].Students)
	assert.Equal(t, 1, one[0].Available())
	assert.Equal(t, shared.DefaultEnrollmentDeadline, one[0].Deadline)

	all, err := h.Handle(context.Background(), GetRosterQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Empty(t, all[1].Students)
}

type failingHistory struct{}

func (failingHistory) Recent(context.Context, int) ([]errorlog.Entry, error) {
	return nil, errors.New("database is locked")
}

func TestRecentErrors(t *testing.T) {
	ctx := context.Background()
	sink, err := errorlog.OpenSQLite(filepath.Join(t.TempDir(), "errors.db"))
	require.NoError(t, err)
	defer sink.Close()

	at := time.Date(2023, time.December, 15, 9, 30, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		e := errorlog.NewEntry(at.Add(time.Duration(i)*time.Second), shared.NewStudentNotFoundError("12345", "CS101"))
		require.NoError(t, sink.Append(ctx, e))
	}

	h := NewRecentErrorsHandler(sink)
	got, err := h.Handle(ctx, GetRecentErrorsQuery{Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Fri Dec 15 09:30:02 2023", got[0].Stamp())
	assert.Equal(t, 104, got[0].Code)

	all, err := h.Handle(ctx, GetRecentErrorsQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = h.Handle(ctx, GetRecentErrorsQuery{Limit: -1})
	assert.Error(t, err)
	_, err = NewRecentErrorsHandler(failingHistory{}).Handle(ctx, GetRecentErrorsQuery{})
	assert.ErrorContains(t, err, "database is locked")
}
