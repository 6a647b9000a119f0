package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/alem-hub/campus-registrar/internal/domain/course"
	"github.com/alem-hub/campus-registrar/internal/domain/people"
	"github.com/alem-hub/campus-registrar/internal/domain/shared"
	"github.com/alem-hub/campus-registrar/pkg/logger"
	"github.com/alem-hub/campus-registrar/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENROLL STUDENT COMMAND
// Puts a student on a course roster through the enrollment guard. Guard
// rejections are written to the error log and announced, never returned.
// ══════════════════════════════════════════════════════════════════════════════

// EnrollStudentCommand contains the data to enroll a student.
type EnrollStudentCommand struct {
	// CourseCode identifies the course.
	CourseCode string

	// StudentID is the 5-digit person ID of the student.
	StudentID int

	// CurrentDate is the DD/MM/YY date token checked against the deadline.
	// Empty means today.
	CurrentDate string
}

// Validate validates the command.
func (c EnrollStudentCommand) Validate() error {
	if c.CourseCode == "" {
		return fmt.Errorf("enroll_student: course_code is required: %w", ErrValidation)
	}
	if !shared.IsValidPersonID(c.StudentID) {
		return fmt.Errorf("enroll_student: student_id %d is not a person ID: %w", c.StudentID, ErrValidation)
	}
	return nil
}

// EnrollStudentHandler handles the EnrollStudentCommand.
type EnrollStudentHandler struct {
	courses   course.Repository
	members   people.Repository
	recorder  ErrorRecorder
	publisher shared.EventPublisher
	locks     *KeyedLocks
	clock     timeutil.Clock
	log       *logger.Logger
}

// RosterHandlerDeps are the collaborators shared by enroll and drop.
type RosterHandlerDeps struct {
	Courses   course.Repository
	Members   people.Repository
	Recorder  ErrorRecorder
	Publisher shared.EventPublisher
	Locks     *KeyedLocks
	Clock     timeutil.Clock
	Logger    *logger.Logger
}

func (d RosterHandlerDeps) withDefaults() RosterHandlerDeps {
	if d.Locks == nil {
		d.Locks = NewKeyedLocks()
	}
	if d.Clock == nil {
		d.Clock = timeutil.SystemClock{}
	}
	d.Logger = orDefault(d.Logger)
	return d
}

// NewEnrollStudentHandler creates a new EnrollStudentHandler.
func NewEnrollStudentHandler(deps RosterHandlerDeps) *EnrollStudentHandler {
	deps = deps.withDefaults()
	return &EnrollStudentHandler{
		courses:   deps.Courses,
		members:   deps.Members,
		recorder:  deps.Recorder,
		publisher: deps.Publisher,
		locks:     deps.Locks,
		clock:     deps.Clock,
		log:       deps.Logger.With(logger.Operation("enroll_student")),
	}
}

// Handle executes the enroll student command. It returns an error only for
// an invalid command or an unknown course or student; the outcome of the
// guard is observable through the error log and the published events.
func (h *EnrollStudentHandler) Handle(ctx context.Context, cmd EnrollStudentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	crs, err := h.courses.GetByCode(ctx, cmd.CourseCode)
	if err != nil {
		return fmt.Errorf("enroll_student: %w", err)
	}
	student, err := h.members.GetByPersonID(ctx, cmd.StudentID)
	if err != nil {
		return fmt.Errorf("enroll_student: %w", err)
	}
	if !student.Role().IsStudent() {
		return fmt.Errorf("enroll_student: member %d is a %s, not a student: %w", student.ID(), student.Role(), ErrValidation)
	}

	date := cmd.CurrentDate
	if date == "" {
		date = timeutil.DateToken(h.clock.Now())
	}

	log := h.log.With(logger.CourseCode(crs.Code()), logger.StudentID(student.ID()))

	unlock := h.locks.Lock(crs.Key())
	err = crs.Enroll(student, date)
	enrolled := crs.EnrolledCount()
	unlock()

	switch {
	case err == nil:
		log.Info("student enrolled", logger.Int("enrolled", enrolled))
		publish(log, h.publisher, shared.NewEnrollmentEvent(shared.EventStudentEnrolled, crs.Key(), crs.Code(), student.ID(), student.Name(), ""))

	case errors.Is(err, course.ErrAlreadyEnrolled):
		log.Debug("student already enrolled")
		publish(log, h.publisher, shared.NewEnrollmentEvent(shared.EventAlreadyEnrolled, crs.Key(), crs.Code(), student.ID(), student.Name(), ""))

	default:
		tagged, ok := shared.AsError(err)
		if !ok {
			return fmt.Errorf("enroll_student: %w", err)
		}
		log.Warn("enrollment rejected", logger.ErrorCode(tagged.Code), logger.String("kind", tagged.Kind.String()))
		swallow(ctx, h.recorder, log, err)
		publish(log, h.publisher, shared.NewEnrollmentEvent(shared.EventEnrollmentRejected, crs.Key(), crs.Code(), student.ID(), student.Name(), tagged.Message).
			WithDetails(tagged.Details()))
	}

	return nil
}
