package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmountUnmarshalLenient(t *testing.T) {
	cases := []struct {
		in    string
		want  string
		valid bool
	}{
		{`1500`, "1500", true},
		{`"1500"`, "1500", true},
		{`" 12.50 "`, "12.5", true},
		{`-5`, "-5", true},
		{`null`, "0", false},
		{`""`, "0", false},
		{`"abc"`, "0", false},
		{`true`, "0", false},
		{`{"x":1}`, "0", false},
		{`[1]`, "0", false},
	}
	for _, tc := range cases {
		var a Amount
		if err := json.Unmarshal([]byte(tc.in), &a); err != nil {
			t.Fatalf("%s: unexpected error %v", tc.in, err)
		}
		if a.Valid() != tc.valid {
			t.Fatalf("%s: valid=%v, want %v", tc.in, a.Valid(), tc.valid)
		}
		if !a.Decimal().Equal(decimal.RequireFromString(tc.want)) {
			t.Fatalf("%s: got %s, want %s", tc.in, a.Decimal(), tc.want)
		}
	}
}

func TestAmountInsideRecordNeverFailsDecode(t *testing.T) {
	body := `{"bookings":[{"id":1,"room_name":"101","amount":"1500","booking_date":"2025-05-01"},{"id":2,"amount":{"bad":true},"booking_date":"not a date"}]}`
	var payload struct {
		Bookings []RoomBooking `json:"bookings"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(payload.Bookings) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(payload.Bookings))
	}
	if payload.Bookings[1].Amount.Valid() || !payload.Bookings[1].BookingDate.IsZero() {
		t.Fatalf("malformed fields should decode as unset: %+v", payload.Bookings[1])
	}
}

func TestAmountMarshal(t *testing.T) {
	out, err := json.Marshal(struct {
		A Amount `json:"a"`
		B Amount `json:"b"`
	}{A: AmountFromFloat(12.5)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"a":12.5,"b":null}` {
		t.Fatalf("unexpected json %s", out)
	}
}

func TestDateParseAndCompare(t *testing.T) {
	d, err := ParseDate("2025-05-01T10:30:00Z")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.String() != "2025-05-01" {
		t.Fatalf("unexpected date %s", d)
	}
	if !d.Equal(NewDate(2025, 5, 1)) {
		t.Fatalf("dates on the same day should be equal")
	}
	if !d.AddDays(-1).Before(d) {
		t.Fatalf("previous day should be before")
	}
	if _, err := ParseDate("01/05/2025"); err == nil {
		t.Fatalf("expected error for non-ISO date")
	}
}
