package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alem-hub/campus-registrar/config"
	"github.com/alem-hub/campus-registrar/internal/application/command"
	"github.com/alem-hub/campus-registrar/internal/application/query"
	"github.com/alem-hub/campus-registrar/internal/infrastructure/errorlog"
	"github.com/alem-hub/campus-registrar/internal/infrastructure/messaging"
	"github.com/alem-hub/campus-registrar/internal/infrastructure/persistence/memory"
	"github.com/alem-hub/campus-registrar/internal/infrastructure/persistence/postgres"
	redisstore "github.com/alem-hub/campus-registrar/internal/infrastructure/persistence/redis"
	"github.com/alem-hub/campus-registrar/internal/infrastructure/seed"
	"github.com/alem-hub/campus-registrar/internal/interface/console"
	"github.com/alem-hub/campus-registrar/pkg/logger"
	"github.com/alem-hub/campus-registrar/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// APPLICATION WIRING
// ══════════════════════════════════════════════════════════════════════════════

// app is one loaded campus with its handlers.
type app struct {
	cfg    *config.Config
	log    *logger.Logger
	out    io.Writer
	clock  timeutil.Clock
	campus *seed.Campus

	timetable *memory.Timetable
	bus       *messaging.InMemoryEventBus
	errlog    *errorlog.Log
	history   query.ErrorHistory

	enroll  *command.EnrollStudentHandler
	drop    *command.DropStudentHandler
	book    *command.BookTimeSlotHandler
	release *command.ReleaseTimeSlotHandler
	payroll *command.RunPayrollHandler

	schedules *query.ScheduleHandler
	rosters   *query.RosterHandler
	recent    *query.RecentErrorsHandler

	closers []func() error
}

func loadConfig() (*config.Config, error) {
	if envFile != "" {
		return config.LoadFile(envFile)
	}
	return config.Load()
}

func newLogger(cfg *config.Config) *logger.Logger {
	level := cfg.Observability.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	return logger.New(logger.Options{
		Output: os.Stderr,
		Level:  logger.ParseLevel(level),
	}).With(logger.String("app", cfg.App.Name), logger.String("env", string(cfg.App.Environment)))
}

// newApp loads configuration, opens the error log sinks, reads the campus
// fixture and wires the handlers. Notices go to out.
func newApp(ctx context.Context, out io.Writer) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	a := &app{
		cfg:   cfg,
		log:   newLogger(cfg),
		out:   out,
		clock: timeutil.SystemClock{Location: cfg.App.Location},
	}

	sinks, err := a.openSinks(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.errlog = errorlog.New(sinks,
		errorlog.WithClock(a.clock),
		errorlog.WithFingerprint(cfg.ErrorLog.Fingerprint),
		errorlog.WithLogger(a.log),
	)

	path := seedFile
	if path == "" {
		path = cfg.App.SeedFile
	}
	a.campus, err = seed.Load(ctx, path)
	if err != nil {
		a.Close()
		return nil, err
	}
	if a.campus.Today != "" {
		a.log.Debug("campus pins today", logger.String("today", a.campus.Today))
	}

	a.timetable = memory.NewTimetable(a.campus.Schedule)
	a.bus = messaging.NewInMemoryEventBus(a.log)
	if err := console.NewNotifier(out).Attach(a.bus); err != nil {
		a.Close()
		return nil, err
	}

	dir := a.campus.Directory
	roster := command.RosterHandlerDeps{
		Courses:   dir.Courses(),
		Members:   dir.Members(),
		Recorder:  a.errlog,
		Publisher: a.bus,
		Locks:     command.NewKeyedLocks(),
		Clock:     a.clock,
		Logger:    a.log,
	}
	slots := command.ScheduleHandlerDeps{
		Courses:    dir.Courses(),
		Classrooms: dir.Classrooms(),
		Timetable:  a.timetable,
		Publisher:  a.bus,
		Logger:     a.log,
	}

	a.enroll = command.NewEnrollStudentHandler(roster)
	a.drop = command.NewDropStudentHandler(roster)
	a.book = command.NewBookTimeSlotHandler(slots)
	a.release = command.NewReleaseTimeSlotHandler(slots)
	a.payroll = command.NewRunPayrollHandler(dir.Departments(), dir.Members(), a.log)
	a.schedules = query.NewScheduleHandler(dir.Courses(), dir.Classrooms(), a.timetable, dir)
	a.rosters = query.NewRosterHandler(dir.Courses())
	if a.history != nil {
		a.recent = query.NewRecentErrorsHandler(a.history)
	}

	stats := dir.Stats()
	a.log.Debug("campus loaded",
		logger.String("seed", path),
		logger.Int("members", stats.Members),
		logger.Int("courses", stats.Courses),
		logger.Int("classrooms", stats.Classrooms),
		logger.Int("departments", stats.Departments),
	)
	return a, nil
}

// today is the date token enrollment uses when the caller gives none.
func (a *app) today() string {
	if a.campus.Today != "" {
		return a.campus.Today
	}
	return timeutil.DateToken(a.clock.Now())
}

// Close releases every sink connection.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	if a.bus != nil {
		errs = append(errs, a.bus.Close())
	}
	return errors.Join(errs...)
}

// ══════════════════════════════════════════════════════════════════════════════
// ERROR LOG SINKS
// ══════════════════════════════════════════════════════════════════════════════

func (a *app) openSinks(ctx context.Context) ([]errorlog.Sink, error) {
	sinks := make([]errorlog.Sink, 0, len(a.cfg.ErrorLog.Sinks))

	for _, name := range a.cfg.ErrorLog.Sinks {
		switch name {
		case config.SinkFile:
			sinks = append(sinks, errorlog.NewFileSink(a.cfg.ErrorLog.FilePath))

		case config.SinkMemory:
			sinks = append(sinks, errorlog.NewRecorder())

		case config.SinkSQLite:
			s, err := errorlog.OpenSQLite(a.cfg.SQLite.Path)
			if err != nil {
				return nil, fmt.Errorf("sqlite sink: %w", err)
			}
			a.closers = append(a.closers, s.Close)
			a.history = s
			sinks = append(sinks, s)

		case config.SinkRedis:
			rc := redisstore.DefaultConfig()
			rc.URL = a.cfg.Redis.URL
			rc.Host = a.cfg.Redis.Host
			rc.Port = a.cfg.Redis.Port
			rc.Password = a.cfg.Redis.Password
			rc.DB = a.cfg.Redis.DB
			rc.DialTimeout = a.cfg.Redis.DialTimeout
			rc.WriteTimeout = a.cfg.Redis.WriteTimeout

			client, err := redisstore.NewClient(ctx, rc)
			if err != nil {
				return nil, fmt.Errorf("redis sink: %w", err)
			}
			a.closers = append(a.closers, client.Close)
			sinks = append(sinks, errorlog.NewRedisSink(client, a.cfg.Redis.ListKey, a.cfg.Redis.RateLimit))

		case config.SinkPostgres:
			conn, err := postgres.NewConnectionFromURL(ctx, a.cfg.Database.URL, int32(a.cfg.Database.MaxConns))
			if err != nil {
				return nil, fmt.Errorf("postgres sink: %w", err)
			}
			a.closers = append(a.closers, func() error { conn.Close(); return nil })
			if err := postgres.NewMigrator(conn).Migrate(ctx); err != nil {
				return nil, fmt.Errorf("postgres sink: %w", err)
			}
			sinks = append(sinks, errorlog.NewPostgresSink(conn, a.cfg.Database.QueryTimeout))

		default:
			return nil, fmt.Errorf("unknown error log sink %q", name)
		}

		a.log.Debug("error log sink ready", logger.Sink(name))
	}

	return sinks, nil
}
