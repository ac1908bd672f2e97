// Package scheduler runs background maintenance jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/habitual/internal/logger"
)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// cronLogger routes cron's own logging through the application logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug("cron: "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}

// Entry describes a registered job.
type Entry struct {
	ID   cron.EntryID
	Name string
	Spec string
	Next time.Time
}

// Scheduler wraps a cron runner with named jobs that report errors to the log.
type Scheduler struct {
	cron  *cron.Cron
	names map[cron.EntryID]Entry
}

// New creates a scheduler that evaluates specs in loc.
func New(loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	l := cronLogger{}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithParser(parser),
			cron.WithLogger(l),
			cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l)),
		),
		names: make(map[cron.EntryID]Entry),
	}
}

// ValidateSpec checks a five-field cron expression or descriptor such as "@daily".
func ValidateSpec(spec string) error {
	if _, err := parser.Parse(spec); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return nil
}

// Schedule registers job under spec. Errors returned by job are logged, never propagated.
func (s *Scheduler) Schedule(name, spec string, job func() error) (cron.EntryID, error) {
	if err := ValidateSpec(spec); err != nil {
		return 0, err
	}
	id, err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		if err := job(); err != nil {
			logger.Error("Scheduled job failed", "job", name, "error", err)
			return
		}
		logger.Info("Scheduled job finished", "job", name, "duration", time.Since(start))
	})
	if err != nil {
		return 0, err
	}
	s.names[id] = Entry{ID: id, Name: name, Spec: spec}
	return id, nil
}

// ScheduleDaily registers job once a day at an HH:MM wall-clock time.
func (s *Scheduler) ScheduleDaily(name, timeStr string, job func() error) (cron.EntryID, error) {
	spec, err := buildDailySpec(timeStr)
	if err != nil {
		return 0, err
	}
	return s.Schedule(name, spec, job)
}

// Entries lists registered jobs with their next run time.
func (s *Scheduler) Entries() []Entry {
	var out []Entry
	for _, e := range s.cron.Entries() {
		entry := s.names[e.ID]
		entry.Next = e.Next
		out = append(out, entry)
	}
	return out
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

func buildDailySpec(timeStr string) (string, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("invalid hour in %q", timeStr)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("invalid minute in %q", timeStr)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
