package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/mockapi"
	"github.com/julianstephens/habitual/internal/scheduler"
)

type ServeCmd struct {
	Addr           string `help:"Address to listen on." default:"${default_addr}"`
	Metrics        bool   `help:"Expose Prometheus metrics on /metrics."`
	BackupSchedule string `help:"Cron spec for automatic storage backups, e.g. \"0 3 * * *\" or \"@daily\"." placeholder:"SPEC" xor:"backup"`
	BackupAt       string `help:"Daily wall-clock time (HH:MM) for automatic storage backups." placeholder:"HH:MM" xor:"backup"`
}

func (c *ServeCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var opts []mockapi.Option
	if c.Metrics {
		opts = append(opts, mockapi.WithMetrics(mockapi.NewMetrics()))
	}
	handler := mockapi.NewRouter(mockapi.NewService(ctx.Store), opts...)

	sched, err := c.scheduler(ctx)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if sched != nil {
		sched.Start()
		defer sched.Stop(context.Background())
	}

	ctx.printf("Serving %s on http://%s\n", constants.HabitsPath, c.Addr)
	return mockapi.ListenAndServe(runCtx, c.Addr, handler)
}

// scheduler registers the backup job, or returns nil when no schedule is set.
func (c *ServeCmd) scheduler(ctx *Context) (*scheduler.Scheduler, error) {
	if c.BackupSchedule == "" && c.BackupAt == "" {
		return nil, nil
	}
	mgr, err := backup.NewManager(ctx.Store.GetConfigPath())
	if err != nil {
		return nil, fmt.Errorf("scheduled backups: %w", err)
	}

	job := func() error {
		path, err := mgr.CreateBackup()
		if err != nil {
			return err
		}
		logger.Info("Scheduled backup created", "path", path)
		return nil
	}

	sched := scheduler.New(nil)
	if c.BackupAt != "" {
		_, err = sched.ScheduleDaily("backup", c.BackupAt, job)
	} else {
		_, err = sched.Schedule("backup", c.BackupSchedule, job)
	}
	if err != nil {
		return nil, err
	}
	for _, e := range sched.Entries() {
		logger.Info("Scheduled job", "name", e.Name, "spec", e.Spec)
	}
	return sched, nil
}
