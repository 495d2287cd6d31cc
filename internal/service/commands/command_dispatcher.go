package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/hotelbudget/internal/domain/models"
	"github.com/mamadbah2/hotelbudget/internal/service/availability"
	"github.com/mamadbah2/hotelbudget/internal/service/notify"
)

// ErrInvalidArguments indicates the command payload could not be parsed.
var ErrInvalidArguments = errors.New("invalid command arguments")

// HelpMessage lists the supported manager queries.
const HelpMessage = "Supported: /summary, /rooms <date>, /available <room> <date>. Dates are YYYY-MM-DD or today."

// Ledger is the read side of the ledger the dispatcher answers from.
type Ledger interface {
	Summary() models.FinancialSummary
	Refresh(ctx context.Context) (models.FinancialSummary, error)
	Availability(ctx context.Context, room string, date models.Date) (availability.Result, error)
}

// BookingLister lists the bookings of one day.
type BookingLister interface {
	ListBookings(ctx context.Context, date models.Date) ([]models.RoomBooking, error)
}

// Dispatcher answers a parsed command with the reply text.
type Dispatcher interface {
	HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error)
}

// Service implements the Dispatcher interface.
type Service struct {
	ledger   Ledger
	bookings BookingLister
	loc      *time.Location
	logger   *zap.Logger
	now      func() time.Time
}

// NewService constructs a command dispatcher. Relative dates resolve in loc.
func NewService(ledger Ledger, bookings BookingLister, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		ledger:   ledger,
		bookings: bookings,
		loc:      loc,
		logger:   logger,
		now:      time.Now,
	}
}

// HandleCommand runs the query and renders its reply. ErrInvalidArguments is
// returned for malformed arguments so the caller can answer with help.
func (s *Service) HandleCommand(ctx context.Context, cmd models.Command, sender string) (string, error) {
	s.logger.Debug("dispatching command", zap.String("command", string(cmd.Type)), zap.String("sender", sender), zap.Strings("args", cmd.Args))

	switch cmd.Type {
	case models.CommandSummary:
		return s.summary(ctx), nil
	case models.CommandRooms:
		if len(cmd.Args) != 1 {
			return "", ErrInvalidArguments
		}
		day, err := s.parseDay(cmd.Args[0])
		if err != nil {
			return "", err
		}
		return s.rooms(ctx, day)
	case models.CommandAvailable:
		if len(cmd.Args) != 2 {
			return "", ErrInvalidArguments
		}
		day, err := s.parseDay(cmd.Args[1])
		if err != nil {
			return "", err
		}
		result, err := s.ledger.Availability(ctx, cmd.Args[0], day)
		if err != nil {
			return "", fmt.Errorf("check availability: %w", err)
		}
		if !result.Available {
			return result.Reason, nil
		}
		return fmt.Sprintf("Room %s is free on %s.", cmd.Args[0], day), nil
	default:
		return HelpMessage, nil
	}
}

func (s *Service) summary(ctx context.Context) string {
	today := availability.Today(s.now(), s.loc)

	summary, err := s.ledger.Refresh(ctx)
	if err != nil {
		s.logger.Warn("summary refresh failed, replying with last known figures", zap.Error(err))
		return notify.FormatDailySummary(today, s.ledger.Summary()) + "\n\n_Last known figures: the record store is unreachable._"
	}
	return notify.FormatDailySummary(today, summary)
}

func (s *Service) rooms(ctx context.Context, day models.Date) (string, error) {
	bookings, err := s.bookings.ListBookings(ctx, day)
	if err != nil {
		return "", fmt.Errorf("list bookings: %w", err)
	}
	if len(bookings) == 0 {
		return fmt.Sprintf("No rooms booked for %s.", day), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*Rooms booked for %s*", day)
	for _, booking := range bookings {
		fmt.Fprintf(&b, "\n%s: %s (%s)", booking.RoomName, booking.CustomerName, booking.Amount.Decimal().StringFixed(2))
	}
	return b.String(), nil
}

func (s *Service) parseDay(arg string) (models.Date, error) {
	if strings.EqualFold(arg, "today") {
		return availability.Today(s.now(), s.loc), nil
	}
	day, err := models.ParseDate(arg)
	if err != nil || day.IsZero() {
		return models.Date{}, ErrInvalidArguments
	}
	return day, nil
}
