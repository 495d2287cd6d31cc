package reporting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/hotelbudget/internal/domain/models"
)

// Reader lists the four record collections. A zero date lists every booking.
type Reader interface {
	ListBookings(ctx context.Context, date models.Date) ([]models.RoomBooking, error)
	ListFoodOrders(ctx context.Context) ([]models.FoodOrder, error)
	ListSupplies(ctx context.Context) ([]models.Supply, error)
	ListSalaries(ctx context.Context) ([]models.SalaryRecord, error)
}

// Service reads a consistent snapshot and derives the financial summary.
type Service struct {
	reader Reader
	engine Engine
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new reporting service instance.
func NewService(reader Reader, engine Engine, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{reader: reader, engine: engine, logger: logger, now: time.Now}
}

// LoadSnapshot issues the four reads concurrently and returns only once all
// of them succeeded. Any failure discards the partial results.
func (s *Service) LoadSnapshot(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.reader.ListBookings(gctx, models.Date{})
		if err != nil {
			return fmt.Errorf("load room bookings: %w", err)
		}
		snap.Bookings = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.reader.ListFoodOrders(gctx)
		if err != nil {
			return fmt.Errorf("load food orders: %w", err)
		}
		snap.FoodOrders = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.reader.ListSupplies(gctx)
		if err != nil {
			return fmt.Errorf("load supplies: %w", err)
		}
		snap.Supplies = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.reader.ListSalaries(gctx)
		if err != nil {
			return fmt.Errorf("load salaries: %w", err)
		}
		snap.Salaries = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return models.Snapshot{}, err
	}
	return snap, nil
}

// BuildSummary reads all four categories and recomputes the summary from scratch.
func (s *Service) BuildSummary(ctx context.Context) (models.FinancialSummary, error) {
	snap, err := s.LoadSnapshot(ctx)
	if err != nil {
		return models.FinancialSummary{}, err
	}

	summary := s.engine.Summarize(snap)
	refreshedAt := s.now().UTC()
	summary.RefreshedAt = &refreshedAt

	s.logger.Debug("summary computed",
		zap.Int("bookings", summary.RoomsBooked.Count),
		zap.Int("food_orders", summary.FoodOrders.Count),
		zap.Int("supplies", summary.Supplies.Count),
		zap.Int("salaries", summary.Salaries.Count),
		zap.String("profit_or_loss", summary.ProfitOrLoss.String()))

	return summary, nil
}
