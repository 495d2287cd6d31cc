package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Rollup is the {count, totalAmount} summary of one category.
type Rollup struct {
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// FinancialSummary is the ledger's read model. ProfitOrLoss is derived from
// the income and expenditure totals on construction and never set on its own.
// RefreshedAt stays nil until the summary has been read from the store once.
type FinancialSummary struct {
	RoomsBooked      Rollup          `json:"roomsBooked"`
	FoodOrders       Rollup          `json:"foodOrders"`
	Supplies         Rollup          `json:"supplies"`
	Salaries         Rollup          `json:"salaries"`
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpenditure decimal.Decimal `json:"totalExpenditure"`
	ProfitOrLoss     decimal.Decimal `json:"profitOrLoss"`
	RefreshedAt      *time.Time      `json:"refreshedAt,omitempty"`
}

// Rollup returns the rollup of the given category.
func (s FinancialSummary) Rollup(c Category) Rollup {
	switch c {
	case CategoryRoomBookings:
		return s.RoomsBooked
	case CategoryFoodOrders:
		return s.FoodOrders
	case CategorySupplies:
		return s.Supplies
	case CategorySalaries:
		return s.Salaries
	default:
		return Rollup{}
	}
}

// DailyReport is the end-of-day snapshot persisted to MongoDB.
type DailyReport struct {
	Date             time.Time `bson:"date" json:"date"`
	RoomsBooked      int       `bson:"rooms_booked" json:"rooms_booked"`
	RoomsIncome      float64   `bson:"rooms_income" json:"rooms_income"`
	FoodOrders       int       `bson:"food_orders" json:"food_orders"`
	FoodIncome       float64   `bson:"food_income" json:"food_income"`
	Supplies         int       `bson:"supplies" json:"supplies"`
	SuppliesCost     float64   `bson:"supplies_cost" json:"supplies_cost"`
	Salaries         int       `bson:"salaries" json:"salaries"`
	SalariesCost     float64   `bson:"salaries_cost" json:"salaries_cost"`
	TotalIncome      float64   `bson:"total_income" json:"total_income"`
	TotalExpenditure float64   `bson:"total_expenditure" json:"total_expenditure"`
	ProfitOrLoss     float64   `bson:"profit_or_loss" json:"profit_or_loss"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
}

// NewDailyReport flattens a summary into a snapshot for the given day.
func NewDailyReport(day Date, s FinancialSummary, now time.Time) DailyReport {
	return DailyReport{
		Date:             day.Time(),
		RoomsBooked:      s.RoomsBooked.Count,
		RoomsIncome:      s.RoomsBooked.TotalAmount.InexactFloat64(),
		FoodOrders:       s.FoodOrders.Count,
		FoodIncome:       s.FoodOrders.TotalAmount.InexactFloat64(),
		Supplies:         s.Supplies.Count,
		SuppliesCost:     s.Supplies.TotalAmount.InexactFloat64(),
		Salaries:         s.Salaries.Count,
		SalariesCost:     s.Salaries.TotalAmount.InexactFloat64(),
		TotalIncome:      s.TotalIncome.InexactFloat64(),
		TotalExpenditure: s.TotalExpenditure.InexactFloat64(),
		ProfitOrLoss:     s.ProfitOrLoss.InexactFloat64(),
		CreatedAt:        now,
	}
}
