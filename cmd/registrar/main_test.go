package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T, sinks string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ERROR_LOG_SINKS", sinks)
	t.Setenv("ERROR_LOG_PATH", filepath.Join(dir, "error.log"))
	t.Setenv("SQLITE_PATH", filepath.Join(dir, "registrar.db"))
	t.Setenv("REGISTRAR_SEED_FILE", "../../campus.yaml")
	t.Setenv("LOG_LEVEL", "error")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDemo(t *testing.T) {
	dir := setupEnv(t, "sqlite,file")

	out, err := execute(t, "demo")
	require.NoError(t, err)

	for _, want := range []string{
		"=== University ===",
		"Student Enrolled in Course Successfully!",
		"Student Already Enrolled in this Course!",
		"Enrollment Error: Course is at maximum capacity",
		"Enrollment Error: Invalid current date format",
		"Enrollment Error: Enrollment deadline has passed",
		"Drop Student Error: Student not found in course",
		"Error Code: 101, Message: Course is at maximum capacity, Student ID: 13579, Course Code: CS101",
		"Error Code: 104",
		"Student 12345 already listed for CS101",
		"Student 54321 dropped from CS101 ledger",
		"Ledger Drop Error: student 99999 in course CS101: ",
		"Ledger Drop Error: course MAL151: ",
		"CS101 ledger: 1 student(s) [12345]",
		"Student Dropped from Course Successfully!",
		"Time Slot Conflict in Room A-101!\nTime Slot Not Added!",
		"Time Slot Added Successfully!",
		"Time Slot Removed Successfully!",
		"Time Slot Not Found!",
		"Teaching assistantship removed",
		"Payroll for Computer Science:",
		"=== Error Log ===",
	} {
		assert.Contains(t, out, want)
	}

	data, err := os.ReadFile(filepath.Join(dir, "error.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Error Code: 101, Message: Course is at maximum capacity, Student ID: 13579, Course Code: CS101")
	assert.Contains(t, string(data), "Error Code: 104")

	out, err = execute(t, "errors", "--limit", "3")
	require.NoError(t, err)
	assert.Equal(t, 3, bytes.Count([]byte(out), []byte("\n")))
}

func TestEnrollCommand(t *testing.T) {
	setupEnv(t, "memory")

	out, err := execute(t, "enroll", "--course", "CS101", "--student", "12345", "--date", "")
	require.NoError(t, err)
	assert.Contains(t, out, "Student Enrolled in Course Successfully!")
	assert.Contains(t, out, "Enrolled Students: 1/2")

	out, err = execute(t, "enroll", "--course", "MAL151", "--student", "12345", "--date", "15/12/23")
	require.NoError(t, err)
	assert.Contains(t, out, "Enrollment Error: Enrollment deadline has passed")
}

func TestCommandErrors(t *testing.T) {
	setupEnv(t, "memory")

	_, err := execute(t, "enroll", "--course", "NOPE", "--student", "12345", "--date", "")
	require.Error(t, err)
	assert.Equal(t, ExitNotFound, exitCode(err))

	_, err = execute(t, "errors")
	require.Error(t, err)
	assert.Equal(t, ExitError, exitCode(err))

	t.Setenv("REGISTRAR_SEED_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = execute(t, "roster")
	require.Error(t, err)
	assert.Equal(t, ExitConfigError, exitCode(err))
}

func TestScheduleCommands(t *testing.T) {
	setupEnv(t, "memory")

	out, err := execute(t, "schedule", "--room", "A-101")
	require.NoError(t, err)
	assert.Contains(t, out, "Schedule for A-101:")
	assert.Contains(t, out, "MAL151")

	out, err = execute(t, "schedule", "book", "--day", "Mon", "--start", "11:00", "--end", "12:00", "--course", "CS101", "--room", "A-101")
	require.NoError(t, err)
	assert.Contains(t, out, "Time Slot Added Successfully!")

	_, err = execute(t, "schedule", "book", "--day", "Mon", "--start", "09:30", "--end", "10:30", "--course", "CS101", "--room", "A-101")
	require.Error(t, err)

	_, err = execute(t, "schedule", "--course", "CS101", "--room", "A-101")
	require.Error(t, err)
}

func TestPayrollCommand(t *testing.T) {
	setupEnv(t, "memory")

	out, err := execute(t, "payroll", "--department", "Mathematics")
	require.NoError(t, err)
	assert.Contains(t, out, "Payroll for Mathematics:")
	assert.Contains(t, out, "Rajni Mam")
}
