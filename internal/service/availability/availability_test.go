package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mamadbah2/hotelbudget/internal/domain/models"
)

func TestCheckSameRoomSameDayConflicts(t *testing.T) {
	day := models.NewDate(2025, 5, 1)
	bookings := []models.RoomBooking{
		{RoomName: "Room 101", BookingDate: day},
		{RoomName: "Room 102", BookingDate: day.AddDays(1)},
	}

	cases := []struct {
		room      string
		date      models.Date
		available bool
	}{
		{"Room 101", day, false},
		{" Room 101 ", day, false},
		{"Room 101", day.AddDays(1), true},
		{"Room 102", day, true},
		{"Room 102", day.AddDays(1), false},
		{"Room 103", day, true},
	}
	for _, tc := range cases {
		got := Check(tc.room, tc.date, bookings)
		if got.Available != tc.available {
			t.Fatalf("%q on %s: available=%v, want %v", tc.room, tc.date, got.Available, tc.available)
		}
		if !got.Available && got.Reason == "" {
			t.Fatalf("%q on %s: missing conflict reason", tc.room, tc.date)
		}
	}
}

func TestCheckComparesCalendarDayNotTimestamp(t *testing.T) {
	morning, _ := models.ParseDate("2025-05-01T08:00:00Z")
	evening, _ := models.ParseDate("2025-05-01T21:30:00Z")
	res := Check("101", evening, []models.RoomBooking{{RoomName: "101", BookingDate: morning}})
	if res.Available {
		t.Fatalf("bookings on the same day must conflict")
	}
	if res.Reason != "Room 101 is already booked for 2025-05-01." {
		t.Fatalf("unexpected reason %q", res.Reason)
	}
}

func TestValidateDate(t *testing.T) {
	loc := time.FixedZone("EAT", 3*3600)
	now := time.Date(2025, 5, 1, 22, 30, 0, 0, time.UTC) // already May 2nd in EAT

	if err := ValidateDate(models.NewDate(2025, 5, 2), now, loc); err != nil {
		t.Fatalf("today should be valid, got %v", err)
	}
	if err := ValidateDate(models.NewDate(2025, 5, 1), now, loc); !models.IsValidation(err) {
		t.Fatalf("yesterday should be rejected, got %v", err)
	}
	if err := ValidateDate(models.NewDate(2025, 6, 1), now, loc); err != nil {
		t.Fatalf("future should be valid, got %v", err)
	}
	if err := ValidateDate(models.Date{}, now, loc); !models.IsValidation(err) {
		t.Fatalf("missing date should be rejected")
	}
}

type slowLister struct {
	slowDay models.Date
	release chan struct{}
	started chan struct{}
	data    map[string][]models.RoomBooking
}

func (l *slowLister) ListBookings(ctx context.Context, date models.Date) ([]models.RoomBooking, error) {
	if date.Equal(l.slowDay) {
		close(l.started)
		<-l.release // ignores cancellation on purpose: a late response still arrives
	}
	return l.data[date.String()], nil
}

func TestTrackerDiscardsStaleResponse(t *testing.T) {
	first := models.NewDate(2025, 5, 1)
	second := models.NewDate(2025, 5, 2)
	lister := &slowLister{
		slowDay: first,
		release: make(chan struct{}),
		started: make(chan struct{}),
		data: map[string][]models.RoomBooking{
			first.String():  {{RoomName: "101", BookingDate: first}},
			second.String(): {{RoomName: "202", BookingDate: second}},
		},
	}
	tr := NewTracker(lister, nil)

	staleErr := make(chan error, 1)
	go func() {
		_, err := tr.Select(context.Background(), first)
		staleErr <- err
	}()
	<-lister.started

	if _, err := tr.Select(context.Background(), second); err != nil {
		t.Fatalf("select second: %v", err)
	}
	close(lister.release)

	if err := <-staleErr; !errors.Is(err, ErrStaleSelection) {
		t.Fatalf("expected stale selection error, got %v", err)
	}

	selected, ok := tr.Selected()
	if !ok || !selected.Equal(second) {
		t.Fatalf("selection overwritten by stale response: %s", selected)
	}
	res, err := tr.Check("101")
	if err != nil || !res.Available {
		t.Fatalf("room 101 should be free on the second day: %+v %v", res, err)
	}
	res, _ = tr.Check("202")
	if res.Available {
		t.Fatalf("room 202 should be taken on the second day")
	}
}

func TestTrackerCheckBeforeSelect(t *testing.T) {
	tr := NewTracker(&slowLister{}, nil)
	if _, err := tr.Check("101"); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
}
