package reporting

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mamadbah2/hotelbudget/internal/domain/models"
)

type fakeReader struct {
	snap        models.Snapshot
	failSupply  error
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	delay       time.Duration
}

func (f *fakeReader) enter() func() {
	n := f.inFlight.Add(1)
	for {
		m := f.maxInFlight.Load()
		if n <= m || f.maxInFlight.CompareAndSwap(m, n) {
			break
		}
	}
	time.Sleep(f.delay)
	return func() { f.inFlight.Add(-1) }
}

func (f *fakeReader) ListBookings(ctx context.Context, _ models.Date) ([]models.RoomBooking, error) {
	defer f.enter()()
	return f.snap.Bookings, nil
}

func (f *fakeReader) ListFoodOrders(ctx context.Context) ([]models.FoodOrder, error) {
	defer f.enter()()
	return f.snap.FoodOrders, nil
}

func (f *fakeReader) ListSupplies(ctx context.Context) ([]models.Supply, error) {
	defer f.enter()()
	if f.failSupply != nil {
		return nil, f.failSupply
	}
	return f.snap.Supplies, nil
}

func (f *fakeReader) ListSalaries(ctx context.Context) ([]models.SalaryRecord, error) {
	defer f.enter()()
	return f.snap.Salaries, nil
}

func TestBuildSummaryReadsConcurrently(t *testing.T) {
	reader := &fakeReader{
		delay: 20 * time.Millisecond,
		snap: models.Snapshot{
			Bookings: []models.RoomBooking{{Amount: models.AmountFromInt(100)}},
			Supplies: []models.Supply{{Amount: models.AmountFromInt(40)}},
		},
	}
	svc := NewService(reader, NewEngine(FoodIncomeBeverageQuantity), nil)
	fixed := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	summary, err := svc.BuildSummary(context.Background())
	if err != nil {
		t.Fatalf("build summary: %v", err)
	}
	if !summary.ProfitOrLoss.Equal(dec("60")) {
		t.Fatalf("profit = %s, want 60", summary.ProfitOrLoss)
	}
	if summary.RefreshedAt == nil || !summary.RefreshedAt.Equal(fixed) {
		t.Fatalf("refreshedAt = %v", summary.RefreshedAt)
	}
	if reader.maxInFlight.Load() < 2 {
		t.Fatalf("expected concurrent reads, max in flight = %d", reader.maxInFlight.Load())
	}
}

func TestBuildSummaryFailsWholeOnAnyReadError(t *testing.T) {
	boom := errors.New("boom")
	reader := &fakeReader{failSupply: boom, snap: models.Snapshot{Bookings: []models.RoomBooking{{Amount: models.AmountFromInt(1)}}}}
	svc := NewService(reader, NewEngine(""), nil)

	if _, err := svc.BuildSummary(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped read error, got %v", err)
	}
}
