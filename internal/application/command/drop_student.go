package command

import (
	"context"
	"fmt"

	"github.com/alem-hub/campus-registrar/internal/domain/course"
	"github.com/alem-hub/campus-registrar/internal/domain/shared"
	"github.com/alem-hub/campus-registrar/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// DROP STUDENT COMMAND
// Removes a student from a roster. A student who is not on the roster is
// logged and announced like an enrollment rejection.
// ══════════════════════════════════════════════════════════════════════════════

// DropStudentCommand contains the data to drop a student.
type DropStudentCommand struct {
	CourseCode string
	StudentID  int
}

// Validate validates the command. Any ID is accepted so a malformed one is
// reported as not found.
func (c DropStudentCommand) Validate() error {
	if c.CourseCode == "" {
		return fmt.Errorf("drop_student: course_code is required: %w", ErrValidation)
	}
	return nil
}

// DropStudentHandler handles the DropStudentCommand.
type DropStudentHandler struct {
	courses   course.Repository
	recorder  ErrorRecorder
	publisher shared.EventPublisher
	locks     *KeyedLocks
	log       *logger.Logger
}

// NewDropStudentHandler creates a new DropStudentHandler. Members and Clock
// in deps are unused.
func NewDropStudentHandler(deps RosterHandlerDeps) *DropStudentHandler {
	deps = deps.withDefaults()
	return &DropStudentHandler{
		courses:   deps.Courses,
		recorder:  deps.Recorder,
		publisher: deps.Publisher,
		locks:     deps.Locks,
		log:       deps.Logger.With(logger.Operation("drop_student")),
	}
}

// Handle executes the drop student command. Only an invalid command or an
// unknown course is returned.
func (h *DropStudentHandler) Handle(ctx context.Context, cmd DropStudentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	crs, err := h.courses.GetByCode(ctx, cmd.CourseCode)
	if err != nil {
		return fmt.Errorf("drop_student: %w", err)
	}

	log := h.log.With(logger.CourseCode(crs.Code()), logger.StudentID(cmd.StudentID))

	unlock := h.locks.Lock(crs.Key())
	entry, err := crs.Drop(cmd.StudentID)
	enrolled := crs.EnrolledCount()
	unlock()

	if err != nil {
		tagged, ok := shared.AsError(err)
		if !ok {
			return fmt.Errorf("drop_student: %w", err)
		}
		log.Warn("drop rejected", logger.ErrorCode(tagged.Code))
		swallow(ctx, h.recorder, log, err)
		publish(log, h.publisher, shared.NewEnrollmentEvent(shared.EventDropRejected, crs.Key(), crs.Code(), cmd.StudentID, "", tagged.Message).
			WithDetails(tagged.Details()))
		return nil
	}

	log.Info("student dropped", logger.Int("enrolled", enrolled))
	publish(log, h.publisher, shared.NewEnrollmentEvent(shared.EventStudentDropped, crs.Key(), crs.Code(), entry.PersonID, entry.Name, ""))
	return nil
}
