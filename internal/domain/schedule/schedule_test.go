package schedule

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/campus-registrar/internal/domain/shared"
)

func TestAddRejectsOverlapAndAllowsAdjacent(t *testing.T) {
	s := New()
	room := shared.NewKey()
	cs101, ma151 := shared.NewKey(), shared.NewKey()

	_, err := s.Add("Mon", "09:00", "10:00", cs101, room)
	require.NoError(t, err)

	_, err = s.Add("Mon", "09:30", "10:30", ma151, room)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.ErrorIs(t, err, shared.ErrConflict)

	var conflict *ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, "09:00", conflict.Existing.Start)

	_, err = s.Add("Mon", "10:00", "11:00", ma151, room)
	require.NoError(t, err)
	assert.Len(t, s.Slots(), 2)
}

func TestAddOverlapCases(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		overlaps   bool
	}{
		{"same interval", "09:00", "10:00", true},
		{"starts inside", "09:59", "10:30", true},
		{"ends inside", "08:30", "09:01", true},
		{"contains", "08:00", "11:00", true},
		{"inside", "09:15", "09:45", true},
		{"ends at start", "08:00", "09:00", false},
		{"starts at end", "10:00", "10:30", false},
		{"before", "07:00", "08:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			room := shared.NewKey()
			_, err := s.Add("Mon", "09:00", "10:00", shared.NewKey(), room)
			require.NoError(t, err)

			_, err = s.Add("Mon", tt.start, tt.end, shared.NewKey(), room)
			if tt.overlaps {
				assert.ErrorIs(t, err, ErrSlotConflict)
				assert.Len(t, s.Slots(), 1)
			} else {
				assert.NoError(t, err)
				assert.Len(t, s.Slots(), 2)
			}
		})
	}
}

func TestAddIgnoresOtherDaysAndRooms(t *testing.T) {
	s := New()
	r1, r2 := shared.NewKey(), shared.NewKey()
	c := shared.NewKey()

	_, err := s.Add("Mon", "09:00", "10:00", c, r1)
	require.NoError(t, err)
	_, err = s.Add("Tue", "09:00", "10:00", c, r1)
	require.NoError(t, err)
	_, err = s.Add("Mon", "09:00", "10:00", c, r2)
	require.NoError(t, err)

	assert.Len(t, s.ForCourse(c), 3)
	assert.Len(t, s.ForClassroom(r1), 2)
}

func TestRemove(t *testing.T) {
	s := New()
	room, c := shared.NewKey(), shared.NewKey()
	_, err := s.Add("Mon", "09:00", "10:00", c, room)
	require.NoError(t, err)

	_, err = s.Remove("Mon", "09:00", shared.NewKey())
	assert.ErrorIs(t, err, ErrSlotNotFound)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	removed, err := s.Remove("Mon", "09:00", c)
	require.NoError(t, err)
	assert.Equal(t, "10:00", removed.End)
	assert.Empty(t, s.Slots())

	// The room is free again.
	_, err = s.Add("Mon", "09:30", "10:30", shared.NewKey(), room)
	assert.NoError(t, err)
}

func TestQueriesReturnSnapshotsInOrder(t *testing.T) {
	s := New()
	room, c := shared.NewKey(), shared.NewKey()
	for _, start := range []string{"11:00", "09:00", "13:00"} {
		_, err := s.Add("Wed", start, start[:2]+":50", c, room)
		require.NoError(t, err)
	}

	got := s.ForCourse(c)
	require.Len(t, got, 3)
	assert.Equal(t, "11:00", got[0].Start)
	assert.Equal(t, "09:00", got[1].Start)
	assert.Equal(t, "13:00", got[2].Start)

	got[0].Start = "00:00"
	assert.Equal(t, "11:00", s.ForClassroom(room)[0].Start)
	assert.Empty(t, s.ForCourse(shared.NewKey()))
}

type labels map[shared.Key]string

func (l labels) CourseCode(k shared.Key) string { return l[k] }
func (l labels) RoomNumber(k shared.Key) string { return l[k] }

func TestDisplay(t *testing.T) {
	s := New()
	var buf bytes.Buffer
	s.Display(&buf, labels{})
	assert.Equal(t, "No Time Slots in Schedule!\n", buf.String())

	room, c := shared.NewKey(), shared.NewKey()
	_, err := s.Add("Mon", "09:00", "10:00", c, room)
	require.NoError(t, err)

	buf.Reset()
	s.Display(&buf, labels{room: "101", c: "CS101"})
	assert.Equal(t, "Schedule:\nDay\tStart\tEnd\tCourse\tRoom\nMon\t09:00\t10:00\tCS101\t101\n", buf.String())
}

func TestClassroom(t *testing.T) {
	c := NewClassroom("101", "Main", 40, true)

	assert.ErrorIs(t, c.SetRoomNumber(""), shared.ErrEmptyValue)
	assert.ErrorIs(t, c.SetBuilding(""), shared.ErrEmptyValue)
	assert.ErrorIs(t, c.SetCapacity(0), shared.ErrValueOutOfRange)
	assert.Equal(t, 40, c.Capacity())

	var buf bytes.Buffer
	c.DisplayDetails(&buf)
	assert.Equal(t, "Classroom Details:\nRoom Number: 101\nBuilding: Main\nCapacity: 40\nHas Projector: Yes\n", buf.String())
}
