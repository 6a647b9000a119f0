// Package main provides the registrar CLI entry point.
//
// Every invocation loads a campus fixture into memory, runs one operation
// against it and prints the notices. Enrollment and drop failures are not
// command errors: they go to the configured error log sinks.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alem-hub/campus-registrar/internal/domain/shared"
	"github.com/alem-hub/campus-registrar/pkg/logger"
)

// Version is set at build time via ldflags
var Version = "dev"

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration or fixture error
	ExitNotFound    = 3 // Unknown course, student, room or department
)

var (
	seedFile string
	envFile  string
	logLevel string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(exitCode(err))
	}
}

var rootCmd = &cobra.Command{
	Use:   "registrar",
	Short: "University enrollment and classroom scheduling",
	Long: `registrar enrolls students in courses, books classroom time slots and
computes department payrolls over a campus described in a YAML fixture.

Rejected enrollments and drops are appended to the error log sinks named in
ERROR_LOG_SINKS (file, redis, postgres, sqlite, memory).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&seedFile, "seed", "", "campus fixture (default $REGISTRAR_SEED_FILE or campus.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load instead of ./.env")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (default $LOG_LEVEL)")
	rootCmd.Version = Version
}

// configError marks failures to load configuration or the fixture.
type configError struct{ err error }

func (e configError) Error() string { return e.err.Error() }
func (e configError) Unwrap() error { return e.err }

// withApp loads the campus and runs fn against it.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, cmd.OutOrStdout())
	if err != nil {
		return configError{err}
	}
	defer func() {
		if cerr := a.Close(); cerr != nil {
			a.log.Warn("failed to close sinks", logger.Err(cerr))
		}
	}()
	return fn(ctx, a)
}

func exitCode(err error) int {
	var ce configError
	switch {
	case errors.As(err, &ce):
		return ExitConfigError
	case errors.Is(err, shared.ErrNotFound):
		return ExitNotFound
	default:
		return ExitError
	}
}
