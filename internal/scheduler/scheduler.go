package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/hotelbudget/internal/domain/models"
	"github.com/mamadbah2/hotelbudget/internal/service/availability"
)

// Refresher recomputes the ledger summary from the record store.
type Refresher interface {
	Refresh(ctx context.Context) (models.FinancialSummary, error)
}

// SnapshotStore persists one summary snapshot per day.
type SnapshotStore interface {
	SaveDailyReport(ctx context.Context, report models.DailyReport) error
}

// Exporter copies a snapshot to an external sheet.
type Exporter interface {
	ExportDailyReport(ctx context.Context, report models.DailyReport) (bool, error)
}

// Notifier sends the day's summary to the manager.
type Notifier interface {
	SendDailySummary(ctx context.Context, day models.Date, summary models.FinancialSummary) error
}

// Sinks are the optional destinations of the daily close. Nil fields are skipped.
type Sinks struct {
	Snapshots SnapshotStore
	Exporter  Exporter
	Notifier  Notifier
}

// Scheduler runs the daily close on a cron schedule.
type Scheduler struct {
	cron      *cron.Cron
	schedule  string
	refresher Refresher
	sinks     Sinks
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

// NewScheduler creates a scheduler evaluating schedule in loc.
func NewScheduler(schedule string, loc *time.Location, refresher Refresher, sinks Sinks, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Scheduler{
		cron:      cron.New(cron.WithLocation(loc)),
		schedule:  schedule,
		refresher: refresher,
		sinks:     sinks,
		loc:       loc,
		now:       time.Now,
		logger:    logger,
	}
}

// Start registers the daily close and starts the cron loop.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule), zap.String("timezone", s.loc.String()))

	if _, err := s.cron.AddFunc(s.schedule, s.runDailyClose); err != nil {
		return fmt.Errorf("schedule daily close %q: %w", s.schedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runDailyClose() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := s.DailyClose(ctx); err != nil {
		s.logger.Error("daily close failed", zap.Error(err))
	}
}

// DailyClose refreshes the summary and hands it to every configured sink.
// A sink failure does not stop the others; their errors are joined.
func (s *Scheduler) DailyClose(ctx context.Context) error {
	day := availability.Today(s.now(), s.loc)
	logger := s.logger.With(zap.String("day", day.String()))
	logger.Info("running daily close")

	summary, err := s.refresher.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh summary: %w", err)
	}
	report := models.NewDailyReport(day, summary, s.now().UTC())

	var errs []error
	if s.sinks.Snapshots != nil {
		if err := s.sinks.Snapshots.SaveDailyReport(ctx, report); err != nil {
			errs = append(errs, fmt.Errorf("save snapshot: %w", err))
		} else {
			logger.Info("daily snapshot saved")
		}
	}
	if s.sinks.Exporter != nil {
		if written, err := s.sinks.Exporter.ExportDailyReport(ctx, report); err != nil {
			errs = append(errs, fmt.Errorf("export to sheet: %w", err))
		} else {
			logger.Info("daily report exported", zap.Bool("written", written))
		}
	}
	if s.sinks.Notifier != nil {
		if err := s.sinks.Notifier.SendDailySummary(ctx, day, summary); err != nil {
			errs = append(errs, fmt.Errorf("notify: %w", err))
		}
	}

	return errors.Join(errs...)
}
