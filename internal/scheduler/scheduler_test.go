package scheduler

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mamadbah2/hotelbudget/internal/domain/models"
	"github.com/mamadbah2/hotelbudget/internal/service/reporting"
)

type stubRefresher struct {
	summary models.FinancialSummary
	err     error
}

func (s stubRefresher) Refresh(context.Context) (models.FinancialSummary, error) {
	return s.summary, s.err
}

type recordingSinks struct {
	reports  []models.DailyReport
	exported []models.DailyReport
	notified []models.Date
	saveErr  error
}

func (r *recordingSinks) SaveDailyReport(_ context.Context, report models.DailyReport) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.reports = append(r.reports, report)
	return nil
}

func (r *recordingSinks) ExportDailyReport(_ context.Context, report models.DailyReport) (bool, error) {
	r.exported = append(r.exported, report)
	return true, nil
}

func (r *recordingSinks) SendDailySummary(_ context.Context, day models.Date, _ models.FinancialSummary) error {
	r.notified = append(r.notified, day)
	return nil
}

func newTestScheduler(refresher Refresher, sinks Sinks) *Scheduler {
	nairobi := time.FixedZone("EAT", 3*60*60)
	s := NewScheduler("0 23 * * *", nairobi, refresher, sinks, nil)
	// 22:30 UTC is already the next day in Nairobi.
	s.now = func() time.Time { return time.Date(2025, time.June, 1, 22, 30, 0, 0, time.UTC) }
	return s
}

func TestDailyCloseFansOut(t *testing.T) {
	summary := reporting.Summarize(
		models.Rollup{Count: 1, TotalAmount: models.AmountFromInt(1500).Decimal()},
		models.Rollup{},
		models.Rollup{Count: 1, TotalAmount: models.AmountFromInt(500).Decimal()},
		models.Rollup{},
	)
	sinks := &recordingSinks{}
	s := newTestScheduler(stubRefresher{summary: summary}, Sinks{Snapshots: sinks, Exporter: sinks, Notifier: sinks})

	if err := s.DailyClose(context.Background()); err != nil {
		t.Fatalf("DailyClose: %v", err)
	}

	if len(sinks.reports) != 1 || len(sinks.exported) != 1 || len(sinks.notified) != 1 {
		t.Fatalf("expected every sink once, got %d/%d/%d", len(sinks.reports), len(sinks.exported), len(sinks.notified))
	}
	if got := sinks.notified[0].String(); got != "2025-06-02" {
		t.Fatalf("close day = %s, want the local calendar day", got)
	}
	if sinks.reports[0].ProfitOrLoss != 1000 {
		t.Fatalf("snapshot profit = %v", sinks.reports[0].ProfitOrLoss)
	}
}

func TestDailyCloseContinuesAfterSinkFailure(t *testing.T) {
	sinks := &recordingSinks{saveErr: errors.New("mongo down")}
	s := newTestScheduler(stubRefresher{}, Sinks{Snapshots: sinks, Notifier: sinks})

	err := s.DailyClose(context.Background())
	if err == nil || !strings.Contains(err.Error(), "mongo down") {
		t.Fatalf("expected joined snapshot error, got %v", err)
	}
	if len(sinks.notified) != 1 {
		t.Fatalf("notifier should still run")
	}
}

func TestDailyCloseStopsWhenRefreshFails(t *testing.T) {
	sinks := &recordingSinks{}
	s := newTestScheduler(stubRefresher{err: errors.New("store unreachable")}, Sinks{Snapshots: sinks})

	if err := s.DailyClose(context.Background()); err == nil {
		t.Fatalf("expected refresh error")
	}
	if len(sinks.reports) != 0 {
		t.Fatalf("no snapshot should be written from a failed refresh")
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler("not a schedule", time.UTC, stubRefresher{}, Sinks{}, nil)
	if err := s.Start(); err == nil {
		s.Stop()
		t.Fatalf("expected schedule error")
	}
}
