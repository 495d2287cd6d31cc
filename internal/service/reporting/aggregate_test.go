package reporting

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/hotelbudget/internal/domain/models"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAggregateCountsAndSums(t *testing.T) {
	cases := []struct {
		name    string
		amounts []models.Amount
		count   int
		total   string
	}{
		{"empty", nil, 0, "0"},
		{"single", []models.Amount{models.AmountFromInt(10)}, 1, "10"},
		{"invalid counts as zero", []models.Amount{models.AmountFromInt(10), {}, models.CoerceAmount("x")}, 3, "10"},
		{"decimals are exact", []models.Amount{models.CoerceAmount("0.1"), models.CoerceAmount("0.2")}, 2, "0.3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var supplies []models.Supply
			for _, a := range tc.amounts {
				supplies = append(supplies, models.Supply{Amount: a})
			}
			got := Aggregate(supplies, supplyAmount)
			if got.Count != tc.count || !got.TotalAmount.Equal(dec(tc.total)) {
				t.Fatalf("got count=%d total=%s, want %d %s", got.Count, got.TotalAmount, tc.count, tc.total)
			}
		})
	}
}

func TestAggregateIsIdempotent(t *testing.T) {
	rows := []models.SalaryRecord{{TotalPay: models.AmountFromInt(1000)}, {TotalPay: models.CoerceAmount("250.75")}}
	first := Aggregate(rows, salaryAmount)
	second := Aggregate(rows, salaryAmount)
	if first.Count != second.Count || !first.TotalAmount.Equal(second.TotalAmount) {
		t.Fatalf("aggregation not idempotent: %+v vs %+v", first, second)
	}
}

func TestSummarizeProfitIdentity(t *testing.T) {
	cases := [][4]string{
		{"0", "0", "0", "0"},
		{"1500", "2", "500", "1000"},
		{"100.10", "0", "300.20", "0.05"},
	}
	for _, c := range cases {
		s := Summarize(
			models.Rollup{Count: 1, TotalAmount: dec(c[0])},
			models.Rollup{Count: 1, TotalAmount: dec(c[1])},
			models.Rollup{Count: 1, TotalAmount: dec(c[2])},
			models.Rollup{Count: 1, TotalAmount: dec(c[3])},
		)
		want := dec(c[0]).Add(dec(c[1])).Sub(dec(c[2]).Add(dec(c[3])))
		if !s.ProfitOrLoss.Equal(want) {
			t.Fatalf("%v: profit=%s want %s", c, s.ProfitOrLoss, want)
		}
		if !s.ProfitOrLoss.Equal(s.TotalIncome.Sub(s.TotalExpenditure)) {
			t.Fatalf("%v: profit does not match income-expenditure", c)
		}
	}
}

func TestEngineSummarizeStoreScenario(t *testing.T) {
	raw := `{
		"bookings": [{"amount": "1500"}, {"amount": null}],
		"foodOrders": [{"beverage_quantity": 2}],
		"supplies": [{"amount": 500}],
		"salaries": [{"total_pay": 1000}]
	}`
	var payload struct {
		Bookings   []models.RoomBooking  `json:"bookings"`
		FoodOrders []models.FoodOrder    `json:"foodOrders"`
		Supplies   []models.Supply       `json:"supplies"`
		Salaries   []models.SalaryRecord `json:"salaries"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}

	s := NewEngine(FoodIncomeBeverageQuantity).Summarize(models.Snapshot{
		Bookings:   payload.Bookings,
		FoodOrders: payload.FoodOrders,
		Supplies:   payload.Supplies,
		Salaries:   payload.Salaries,
	})

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"rooms", s.RoomsBooked.TotalAmount, "1500"},
		{"food", s.FoodOrders.TotalAmount, "2"},
		{"supplies", s.Supplies.TotalAmount, "500"},
		{"salaries", s.Salaries.TotalAmount, "1000"},
		{"income", s.TotalIncome, "1502"},
		{"expenditure", s.TotalExpenditure, "1500"},
		{"profit", s.ProfitOrLoss, "2"},
	}
	for _, c := range checks {
		if !c.got.Equal(dec(c.want)) {
			t.Fatalf("%s = %s, want %s", c.name, c.got, c.want)
		}
	}
	if s.RoomsBooked.Count != 2 {
		t.Fatalf("rooms count = %d, want 2", s.RoomsBooked.Count)
	}
}

func TestEngineLineTotalPolicy(t *testing.T) {
	orders := []models.FoodOrder{
		{Quantity: models.AmountFromInt(3), BeverageQuantity: models.AmountFromInt(9), PricePerUnit: models.AmountFromInt(200)},
		{Quantity: models.AmountFromInt(5), BeverageQuantity: models.AmountFromInt(1)},
	}
	s := NewEngine(FoodIncomeLineTotal).Summarize(models.Snapshot{FoodOrders: orders})
	if !s.FoodOrders.TotalAmount.Equal(dec("600")) {
		t.Fatalf("line total = %s, want 600", s.FoodOrders.TotalAmount)
	}
	if s.FoodOrders.Count != 2 {
		t.Fatalf("count = %d, want 2", s.FoodOrders.Count)
	}
}

func TestParseFoodIncomePolicy(t *testing.T) {
	if _, err := ParseFoodIncomePolicy("line_total"); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if _, err := ParseFoodIncomePolicy("price"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}
