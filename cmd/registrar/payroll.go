package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alem-hub/campus-registrar/internal/application/command"
	"github.com/alem-hub/campus-registrar/internal/application/query"
	"github.com/alem-hub/campus-registrar/internal/domain/shared"
	"github.com/alem-hub/campus-registrar/internal/interface/console"
)

var (
	payrollDepartment string
	errorsLimit       int
)

var payrollCmd = &cobra.Command{
	Use:   "payroll",
	Short: "Compute professor payments per department",
	Long: `Compute every professor's payment for one department, or for all
departments of the university when --department is omitted. A department
whose payroll exceeds its budget is reported and the command fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			names := []string{payrollDepartment}
			if payrollDepartment == "" {
				names = names[:0]
				for _, e := range a.campus.University.Departments() {
					names = append(names, e.Name)
				}
			}
			var errs []error
			for _, name := range names {
				if err := runPayroll(ctx, a, name); err != nil {
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		})
	},
}

// runPayroll prints one department's payroll. An insufficient funds
// failure still prints the computed lines.
func runPayroll(ctx context.Context, a *app, department string) error {
	p, err := a.payroll.Handle(ctx, command.RunPayrollCommand{Department: department})
	var tagged *shared.Error
	if err != nil && !errors.As(err, &tagged) {
		return err
	}
	if werr := console.WritePayroll(a.out, p); werr != nil {
		return werr
	}
	if tagged != nil {
		fmt.Fprintln(a.out, tagged.Message)
	}
	return err
}

var errorsCmd = &cobra.Command{
	Use:   "errors",
	Short: "Show the most recent error log entries",
	Long: `Show the most recent error log entries. Reading history needs the
sqlite sink in ERROR_LOG_SINKS.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd, func(ctx context.Context, a *app) error {
			if a.recent == nil {
				return errors.New("error history needs the sqlite sink in ERROR_LOG_SINKS")
			}
			entries, err := a.recent.Handle(ctx, query.GetRecentErrorsQuery{Limit: errorsLimit})
			if err != nil {
				return err
			}
			return console.WriteErrors(a.out, entries)
		})
	},
}

func init() {
	payrollCmd.Flags().StringVar(&payrollDepartment, "department", "", "department name (default all)")
	errorsCmd.Flags().IntVar(&errorsLimit, "limit", 20, "number of entries")

	rootCmd.AddCommand(payrollCmd, errorsCmd)
}
