package commands

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/hotelbudget/internal/domain/models"
	"github.com/mamadbah2/hotelbudget/internal/service/availability"
)

type fakeLedger struct {
	summary    models.FinancialSummary
	refreshErr error
	taken      map[string]bool
}

func (f *fakeLedger) Summary() models.FinancialSummary { return f.summary }

func (f *fakeLedger) Refresh(context.Context) (models.FinancialSummary, error) {
	if f.refreshErr != nil {
		return models.FinancialSummary{}, f.refreshErr
	}
	return f.summary, nil
}

func (f *fakeLedger) Availability(_ context.Context, room string, date models.Date) (availability.Result, error) {
	if f.taken[room] {
		return availability.Result{Reason: availability.ConflictReason(room, date)}, nil
	}
	return availability.Result{Available: true}, nil
}

type fakeBookings struct {
	requested models.Date
	bookings  []models.RoomBooking
}

func (f *fakeBookings) ListBookings(_ context.Context, date models.Date) ([]models.RoomBooking, error) {
	f.requested = date
	return f.bookings, nil
}

func newTestService(l *fakeLedger, b *fakeBookings) *Service {
	svc := NewService(l, b, time.UTC, nil)
	svc.now = func() time.Time { return time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestHandleSummary(t *testing.T) {
	ledger := &fakeLedger{summary: models.FinancialSummary{
		TotalIncome:  decimal.NewFromInt(2000),
		ProfitOrLoss: decimal.NewFromInt(1200),
	}}
	svc := newTestService(ledger, &fakeBookings{})

	reply, err := svc.HandleCommand(context.Background(), models.ParseCommand("/summary"), "254700000000")
	if err != nil {
		t.Fatalf("HandleCommand: %v", err)
	}
	if !strings.Contains(reply, "Daily summary 2025-06-01") || !strings.Contains(reply, "*Profit: 1200.00*") {
		t.Fatalf("reply = %q", reply)
	}

	ledger.refreshErr = &models.NetworkError{Op: "list", Err: errors.New("refused")}
	reply, err = svc.HandleCommand(context.Background(), models.ParseCommand("/summary"), "254700000000")
	if err != nil {
		t.Fatalf("HandleCommand: %v", err)
	}
	if !strings.Contains(reply, "Last known figures") {
		t.Fatalf("stale reply = %q", reply)
	}
}

func TestHandleRooms(t *testing.T) {
	bookings := &fakeBookings{bookings: []models.RoomBooking{
		{ID: 1, RoomName: "101", CustomerName: "Alice", Amount: models.AmountFromInt(1500)},
	}}
	svc := newTestService(&fakeLedger{}, bookings)

	reply, err := svc.HandleCommand(context.Background(), models.ParseCommand("/rooms today"), "")
	if err != nil {
		t.Fatalf("HandleCommand: %v", err)
	}
	if bookings.requested.String() != "2025-06-01" {
		t.Fatalf("requested %s", bookings.requested)
	}
	if !strings.Contains(reply, "101: Alice (1500.00)") {
		t.Fatalf("reply = %q", reply)
	}

	bookings.bookings = nil
	reply, _ = svc.HandleCommand(context.Background(), models.ParseCommand("/rooms 2025-06-10"), "")
	if reply != "No rooms booked for 2025-06-10." {
		t.Fatalf("empty reply = %q", reply)
	}
}

func TestHandleAvailable(t *testing.T) {
	svc := newTestService(&fakeLedger{taken: map[string]bool{"101": true}}, &fakeBookings{})

	reply, err := svc.HandleCommand(context.Background(), models.ParseCommand("/available 101 2025-06-10"), "")
	if err != nil || reply != "Room 101 is already booked for 2025-06-10." {
		t.Fatalf("taken: %q, %v", reply, err)
	}

	reply, err = svc.HandleCommand(context.Background(), models.ParseCommand("/available 102 2025-06-10"), "")
	if err != nil || reply != "Room 102 is free on 2025-06-10." {
		t.Fatalf("free: %q, %v", reply, err)
	}
}

func TestHandleInvalidArguments(t *testing.T) {
	svc := newTestService(&fakeLedger{}, &fakeBookings{})

	for _, text := range []string{"/rooms", "/rooms tomorrow", "/available 101"} {
		if _, err := svc.HandleCommand(context.Background(), models.ParseCommand(text), ""); !errors.Is(err, ErrInvalidArguments) {
			t.Fatalf("%q: expected ErrInvalidArguments, got %v", text, err)
		}
	}

	reply, err := svc.HandleCommand(context.Background(), models.ParseCommand("hello"), "")
	if err != nil || reply != HelpMessage {
		t.Fatalf("unknown: %q, %v", reply, err)
	}
}
