package console

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/campus-registrar/internal/application/query"
	"github.com/alem-hub/campus-registrar/internal/domain/organization"
	"github.com/alem-hub/campus-registrar/internal/domain/people"
	"github.com/alem-hub/campus-registrar/internal/domain/shared"
	"github.com/alem-hub/campus-registrar/internal/infrastructure/errorlog"
	"github.com/alem-hub/campus-registrar/internal/infrastructure/messaging"
)

func TestMessages(t *testing.T) {
	key := shared.NewKey()
	tests := []struct {
		event shared.Event
		want  string
	}{
		{shared.NewEnrollmentEvent(shared.EventStudentEnrolled, key, "CS101", 12345, "Kanan", ""), "Student Enrolled in Course Successfully!"},
		{shared.NewEnrollmentEvent(shared.EventAlreadyEnrolled, key, "CS101", 12345, "Kanan", ""), "Student Already Enrolled in this Course!"},
		{shared.NewEnrollmentEvent(shared.EventEnrollmentRejected, key, "CS101", 12345, "Kanan", "Course is at maximum capacity"), "Enrollment Error: Course is at maximum capacity"},
		{shared.NewEnrollmentEvent(shared.EventStudentDropped, key, "CS101", 12345, "Kanan", ""), "Student Dropped from Course Successfully!"},
		{shared.NewEnrollmentEvent(shared.EventDropRejected, key, "CS101", 12345, "", "Student not found in course"), "Drop Student Error: Student not found in course"},
		{shared.NewEnrollmentEvent(shared.EventEnrollmentRejected, key, "CS101", 13579, "Raj", "Course is at maximum capacity").
			WithDetails("Error Code: 101, Message: Course is at maximum capacity, Student ID: 13579, Course Code: CS101"),
			"Enrollment Error: Course is at maximum capacity\nError Code: 101, Message: Course is at maximum capacity, Student ID: 13579, Course Code: CS101"},
		{shared.NewEnrollmentEvent(shared.EventDropRejected, key, "MAL151", 12345, "", "Student not found in course").
			WithDetails("Error Code: 104, Message: Student not found in course, Student ID: 12345, Course Code: MAL151"),
			"Drop Student Error: Student not found in course\nError Code: 104, Message: Student not found in course, Student ID: 12345, Course Code: MAL151"},
		{shared.NewScheduleEvent(shared.EventSlotBooked, key, "Mon", "09:00", "10:00", "CS101", "A-101"), "Time Slot Added Successfully!"},
		{shared.NewScheduleEvent(shared.EventSlotRejected, key, "Mon", "09:30", "10:30", "CS101", "A-101"), "Time Slot Conflict in Room A-101!\nTime Slot Not Added!"},
		{shared.NewScheduleEvent(shared.EventSlotReleased, key, "Mon", "09:00", "10:00", "CS101", "A-101"), "Time Slot Removed Successfully!"},
		{shared.NewScheduleEvent(shared.EventSlotMissing, "", "Mon", "09:00", "", "CS101", ""), "Time Slot Not Found!"},
	}

	for _, tt := range tests {
		t.Run(string(tt.event.EventType()), func(t *testing.T) {
			got, ok := Message(tt.event)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := Message(shared.NewEnrollmentEvent("enrollment.unknown", key, "CS101", 12345, "", ""))
	assert.False(t, ok)
}

func TestNotifierOnBus(t *testing.T) {
	var out bytes.Buffer
	bus := messaging.NewInMemoryEventBus(nil)
	require.NoError(t, NewNotifier(&out).Attach(bus))

	require.NoError(t, bus.Publish(shared.NewEnrollmentEvent(shared.EventStudentEnrolled, shared.NewKey(), "CS101", 12345, "Kanan", "")))
	require.NoError(t, bus.Publish(shared.NewScheduleEvent(shared.EventSlotMissing, "", "Mon", "09:00", "", "CS101", "")))

	assert.Equal(t, "Student Enrolled in Course Successfully!\nTime Slot Not Found!\n", out.String())
}

func TestWriteRosters(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteRosters(&out, []query.RosterDTO{
		{CourseCode: "CS101", Title: "Intro", Instructor: "Richa Singh", MaxCapacity: 2, Deadline: "31/12/23",
			Students: []query.RosterEntryDTO{{StudentID: 12345, Name: "Kanan"}}},
		{CourseCode: "MA101", Title: "Calculus", MaxCapacity: 30, Deadline: "31/12/23"},
	}))

	s := out.String()
	assert.Contains(t, s, "CS101: Intro\nInstructor: Richa Singh\n")
	assert.Contains(t, s, "Enrolled Students: 1/2\n")
	assert.Contains(t, s, "12345  Kanan\n")
	assert.Contains(t, s, "MA101: Calculus\nEnrollment Deadline: 31/12/23\nEnrolled Students: 0/30\nNo Students Enrolled in this Course!\n")
}

func TestWriteSchedule(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteSchedule(&out, &query.ScheduleDTO{Subject: "A-101", Slots: []query.SlotDTO{
		{Day: "Mon", Start: "09:00", End: "10:00", CourseCode: "CS101", RoomNumber: "A-101"},
	}}))
	assert.Contains(t, out.String(), "Schedule for A-101:\n")
	assert.Contains(t, out.String(), "Mon  09:00  10:00  CS101   A-101\n")

	out.Reset()
	require.NoError(t, WriteSchedule(&out, &query.ScheduleDTO{Subject: "B-204"}))
	assert.Equal(t, "No Time Slots for B-204!\n", out.String())
}

func TestWritePayroll(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WritePayroll(&out, organization.Payroll{
		Department: "CS",
		Lines:      []organization.PayrollLine{{PersonID: 98765, Name: "Richa Singh", Role: people.RoleProfessor, Amount: 100500}},
		Total:      100500,
		Budget:     500000,
	}))
	assert.Contains(t, out.String(), "Payroll for CS:\n")
	assert.Contains(t, out.String(), "professor")
	assert.Contains(t, out.String(), "100500.00")
	assert.Contains(t, out.String(), "500000.00")
}

func TestWriteErrors(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteErrors(&out, nil))
	assert.Equal(t, "No Errors Logged!\n", out.String())

	out.Reset()
	at := time.Date(2023, time.December, 15, 9, 30, 0, 0, time.UTC)
	require.NoError(t, WriteErrors(&out, []errorlog.Entry{errorlog.NewEntry(at, errors.New("disk full"))}))
	assert.Equal(t, "[Fri Dec 15 09:30:00 2023] disk full\n", out.String())
}
