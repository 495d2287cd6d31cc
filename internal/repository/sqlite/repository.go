// Package sqlite persists the record collections in a SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	sqlitedriver "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/mamadbah2/hotelbudget/internal/domain/models"
	"github.com/mamadbah2/hotelbudget/internal/repository"
)

// Repository is a RecordRepository backed by database/sql and modernc sqlite.
// Uniqueness of (room, day) and (employee, day) is enforced by the schema.
type Repository struct {
	db     *sql.DB
	logger *zap.Logger
}

var _ repository.RecordRepository = (*Repository)(nil)

// NewRepository opens dbPath, creating its directory, and migrates the schema.
func NewRepository(dbPath string, logger *zap.Logger) (*Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("sqlite record store ready", zap.String("path", dbPath))
	return &Repository{db: db, logger: logger}, nil
}

// Close releases the database handle.
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) ListBookings(ctx context.Context, date models.Date) ([]models.RoomBooking, error) {
	query := `SELECT id, room_name, customer_name, amount, booking_date FROM room_bookings`
	var args []any
	if !date.IsZero() {
		query += ` WHERE booking_date = ?`
		args = append(args, date.String())
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query room bookings: %w", err)
	}
	defer rows.Close()

	var out []models.RoomBooking
	for rows.Next() {
		var (
			b          models.RoomBooking
			amount     sql.NullString
			bookingDay string
		)
		if err := rows.Scan(&b.ID, &b.RoomName, &b.CustomerName, &amount, &bookingDay); err != nil {
			return nil, fmt.Errorf("scan room booking: %w", err)
		}
		b.Amount = amountFrom(amount)
		b.BookingDate = dateFrom(bookingDay)
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repository) ListFoodOrders(ctx context.Context) ([]models.FoodOrder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, food_type, quantity, beverage, beverage_quantity, price_per_unit, order_date
		FROM food_orders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query food orders: %w", err)
	}
	defer rows.Close()

	var out []models.FoodOrder
	for rows.Next() {
		var (
			f                  models.FoodOrder
			qty, bevQty, price sql.NullString
			orderDay           string
		)
		if err := rows.Scan(&f.ID, &f.FoodType, &qty, &f.Beverage, &bevQty, &price, &orderDay); err != nil {
			return nil, fmt.Errorf("scan food order: %w", err)
		}
		f.Quantity = amountFrom(qty)
		f.BeverageQuantity = amountFrom(bevQty)
		f.PricePerUnit = amountFrom(price)
		f.OrderDate = dateFrom(orderDay)
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *Repository) ListSupplies(ctx context.Context) ([]models.Supply, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, amount, quantity, unit, supply_date
		FROM supplies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query supplies: %w", err)
	}
	defer rows.Close()

	var out []models.Supply
	for rows.Next() {
		var (
			s           models.Supply
			amount, qty sql.NullString
			supplyDay   string
		)
		if err := rows.Scan(&s.ID, &s.Name, &amount, &qty, &s.Unit, &supplyDay); err != nil {
			return nil, fmt.Errorf("scan supply: %w", err)
		}
		s.Amount = amountFrom(amount)
		s.Quantity = amountFrom(qty)
		s.SupplyDate = dateFrom(supplyDay)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) ListSalaries(ctx context.Context) ([]models.SalaryRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, employee_name, hours_worked, total_pay, total_damages, final_total_pay, date
		FROM salaries ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query salaries: %w", err)
	}
	defer rows.Close()

	var out []models.SalaryRecord
	for rows.Next() {
		var (
			s                          models.SalaryRecord
			hours, pay, damages, final sql.NullString
			day                        string
		)
		if err := rows.Scan(&s.ID, &s.EmployeeName, &hours, &pay, &damages, &final, &day); err != nil {
			return nil, fmt.Errorf("scan salary: %w", err)
		}
		s.HoursWorked = amountFrom(hours)
		s.TotalPay = amountFrom(pay)
		s.TotalDamages = amountFrom(damages)
		s.FinalTotalPay = amountFrom(final)
		s.Date = dateFrom(day)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repository) InsertBooking(ctx context.Context, b models.RoomBooking) (models.RoomBooking, error) {
	b.RoomName = strings.TrimSpace(b.RoomName)
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO room_bookings (room_name, customer_name, amount, booking_date)
		VALUES (?, ?, ?, ?)`,
		b.RoomName, b.CustomerName, amountValue(b.Amount), b.BookingDate.String())
	if err != nil {
		if isUniqueViolation(err) {
			return models.RoomBooking{}, repository.BookingConflict(b.RoomName, b.BookingDate)
		}
		return models.RoomBooking{}, fmt.Errorf("insert room booking: %w", err)
	}

	if b.ID, err = res.LastInsertId(); err != nil {
		return models.RoomBooking{}, fmt.Errorf("room booking id: %w", err)
	}
	r.logger.Debug("room booking saved", zap.Int64("id", b.ID), zap.String("room", b.RoomName))
	return b, nil
}

func (r *Repository) InsertFoodOrder(ctx context.Context, f models.FoodOrder) (models.FoodOrder, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO food_orders (food_type, quantity, beverage, beverage_quantity, price_per_unit, order_date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		f.FoodType, amountValue(f.Quantity), f.Beverage, amountValue(f.BeverageQuantity),
		amountValue(f.PricePerUnit), f.OrderDate.String())
	if err != nil {
		return models.FoodOrder{}, fmt.Errorf("insert food order: %w", err)
	}

	if f.ID, err = res.LastInsertId(); err != nil {
		return models.FoodOrder{}, fmt.Errorf("food order id: %w", err)
	}
	return f, nil
}

func (r *Repository) InsertSupply(ctx context.Context, s models.Supply) (models.Supply, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO supplies (name, amount, quantity, unit, supply_date)
		VALUES (?, ?, ?, ?, ?)`,
		s.Name, amountValue(s.Amount), amountValue(s.Quantity), s.Unit, s.SupplyDate.String())
	if err != nil {
		return models.Supply{}, fmt.Errorf("insert supply: %w", err)
	}

	if s.ID, err = res.LastInsertId(); err != nil {
		return models.Supply{}, fmt.Errorf("supply id: %w", err)
	}
	return s, nil
}

func (r *Repository) InsertSalary(ctx context.Context, s models.SalaryRecord) (models.SalaryRecord, error) {
	s.EmployeeName = strings.TrimSpace(s.EmployeeName)
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO salaries (employee_name, hours_worked, total_pay, total_damages, final_total_pay, date)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.EmployeeName, amountValue(s.HoursWorked), amountValue(s.TotalPay),
		amountValue(s.TotalDamages), amountValue(s.FinalTotalPay), s.Date.String())
	if err != nil {
		if isUniqueViolation(err) {
			return models.SalaryRecord{}, repository.SalaryConflict(s.EmployeeName, s.Date)
		}
		return models.SalaryRecord{}, fmt.Errorf("insert salary: %w", err)
	}

	if s.ID, err = res.LastInsertId(); err != nil {
		return models.SalaryRecord{}, fmt.Errorf("salary id: %w", err)
	}
	return s, nil
}

var tables = map[models.Category]string{
	models.CategoryRoomBookings: "room_bookings",
	models.CategoryFoodOrders:   "food_orders",
	models.CategorySupplies:     "supplies",
	models.CategorySalaries:     "salaries",
}

func (r *Repository) Delete(ctx context.Context, category models.Category, id int64) error {
	table, ok := tables[category]
	if !ok {
		return fmt.Errorf("delete from %q: unknown category", category)
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete %s/%d: %w", category, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s/%d: %w", category, id, err)
	}
	if n == 0 {
		return fmt.Errorf("delete %s/%d: %w", category, id, models.ErrNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr *sqlitedriver.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}

func amountValue(a models.Amount) any {
	if !a.Valid() {
		return nil
	}
	return a.String()
}

func amountFrom(v sql.NullString) models.Amount {
	if !v.Valid {
		return models.Amount{}
	}
	return models.CoerceAmount(v.String)
}

func dateFrom(v string) models.Date {
	d, err := models.ParseDate(v)
	if err != nil {
		return models.Date{}
	}
	return d
}
