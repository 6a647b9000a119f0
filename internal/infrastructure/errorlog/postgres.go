package errorlog

import (
	"context"
	"fmt"
	"time"

	"github.com/alem-hub/campus-registrar/internal/infrastructure/persistence/postgres"
	"github.com/alem-hub/campus-registrar/pkg/circuitbreaker"
	"github.com/alem-hub/campus-registrar/pkg/retry"
)

const insertErrorLogSQL = `
INSERT INTO error_log (logged_at, stamp, kind, code, details, fingerprint)
VALUES ($1, $2, $3, $4, $5, $6)`

// PostgresSink inserts entries into the error_log table created by the
// postgres migrations.
type PostgresSink struct {
	db      postgres.Execer
	timeout time.Duration
	retrier *retry.Retrier
	breaker *circuitbreaker.CircuitBreaker
}

// NewPostgresSink returns a sink writing through db. Each insert attempt
// gets timeout; zero means no deadline beyond the caller's.
func NewPostgresSink(db postgres.Execer, timeout time.Duration) *PostgresSink {
	return &PostgresSink{
		db:      db,
		timeout: timeout,
		retrier: retry.DatabaseRetrier(),
		breaker: circuitbreaker.DatabaseBreaker(nil),
	}
}

func (s *PostgresSink) Name() string { return "postgres" }

// Append inserts one row. Connection failures are retried; rejected
// statements are not.
func (s *PostgresSink) Append(ctx context.Context, e Entry) error {
	return s.breaker.Execute(ctx, func(ctx context.Context) error {
		return s.retrier.Do(ctx, func(ctx context.Context) error {
			if s.timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, s.timeout)
				defer cancel()
			}
			tag, err := s.db.Exec(ctx, insertErrorLogSQL,
				e.Time, e.Stamp(), e.Kind.String(), e.Code, e.Details, e.Fingerprint)
			if err != nil {
				if postgres.IsTransient(err) {
					return retry.Retryable(err)
				}
				return err
			}
			if tag.RowsAffected() != 1 {
				return fmt.Errorf("error_log insert affected %d rows", tag.RowsAffected())
			}
			return nil
		})
	})
}
