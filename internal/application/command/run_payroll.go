package command

import (
	"context"
	"fmt"

	"github.com/alem-hub/campus-registrar/internal/domain/organization"
	"github.com/alem-hub/campus-registrar/internal/domain/people"
	"github.com/alem-hub/campus-registrar/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// RUN PAYROLL COMMAND
// Computes every professor's payment in a department against its budget.
// ══════════════════════════════════════════════════════════════════════════════

// DepartmentFinder resolves departments by name.
type DepartmentFinder interface {
	GetByName(ctx context.Context, name string) (*organization.Department, error)
}

// RunPayrollCommand names the department to pay.
type RunPayrollCommand struct {
	Department string
}

// RunPayrollHandler handles the RunPayrollCommand.
type RunPayrollHandler struct {
	departments DepartmentFinder
	members     people.Repository
	log         *logger.Logger
}

// NewRunPayrollHandler creates a new RunPayrollHandler.
func NewRunPayrollHandler(departments DepartmentFinder, members people.Repository, log *logger.Logger) *RunPayrollHandler {
	return &RunPayrollHandler{
		departments: departments,
		members:     members,
		log:         orDefault(log).With(logger.Operation("run_payroll")),
	}
}

// Handle returns the payroll. When the total exceeds the budget the payroll
// is returned together with a shared.ErrInsufficientFunds error.
func (h *RunPayrollHandler) Handle(ctx context.Context, cmd RunPayrollCommand) (organization.Payroll, error) {
	if cmd.Department == "" {
		return organization.Payroll{}, fmt.Errorf("run_payroll: department is required: %w", ErrValidation)
	}

	dep, err := h.departments.GetByName(ctx, cmd.Department)
	if err != nil {
		return organization.Payroll{}, fmt.Errorf("run_payroll: %w", err)
	}

	staff := make([]*people.Member, 0, len(dep.ProfessorKeys()))
	for _, k := range dep.ProfessorKeys() {
		m, err := h.members.GetByKey(ctx, k)
		if err != nil {
			// Released members stay listed in the department.
			h.log.Warn("skipping unknown professor", logger.String("key", k.String()))
			continue
		}
		staff = append(staff, m)
	}

	payroll, err := dep.Payroll(staff)
	if err != nil {
		h.log.Warn("payroll failed", logger.String("department", dep.Name()), logger.Amount(payroll.Total), logger.Err(err))
		return payroll, err
	}

	h.log.Info("payroll computed",
		logger.String("department", dep.Name()),
		logger.Int("professors", len(payroll.Lines)),
		logger.Amount(payroll.Total),
	)
	return payroll, nil
}
