// Package availability decides whether a room can be booked on a given day.
//
// The answer is advisory. The record store re-checks (room, date) uniqueness
// when the booking is written, and its verdict wins.
package availability

import (
	"fmt"
	"strings"
	"time"

	"github.com/mamadbah2/hotelbudget/internal/domain/models"
)

// Result is the outcome of an availability check.
type Result struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// Check reports whether room is free on date given the known bookings.
// Bookings on other days are ignored, so callers may pass the full set.
func Check(room string, date models.Date, bookings []models.RoomBooking) Result {
	room = strings.TrimSpace(room)
	for _, b := range bookings {
		if strings.TrimSpace(b.RoomName) != room {
			continue
		}
		if !b.BookingDate.Equal(date) {
			continue
		}
		return Result{Available: false, Reason: ConflictReason(room, date)}
	}
	return Result{Available: true}
}

// ConflictReason is the message shown when a room is taken for a day.
func ConflictReason(room string, date models.Date) string {
	return fmt.Sprintf("Room %s is already booked for %s.", room, date)
}

// Today returns the current calendar day in loc.
func Today(now time.Time, loc *time.Location) models.Date {
	if loc == nil {
		loc = time.UTC
	}
	return models.DateOf(now.In(loc))
}

// ValidateDate rejects booking dates before today. Today itself is allowed.
func ValidateDate(date models.Date, now time.Time, loc *time.Location) error {
	if date.IsZero() {
		return models.NewValidationError("bookingDate", "All fields are required.")
	}
	if date.Before(Today(now, loc)) {
		return models.NewValidationError("bookingDate", fmt.Sprintf("Cannot book %s: the date is in the past.", date))
	}
	return nil
}
