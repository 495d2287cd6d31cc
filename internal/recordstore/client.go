package recordstore

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/hotelbudget/internal/config"
	"github.com/mamadbah2/hotelbudget/internal/domain/models"
)

// Client is a resty-backed consumer of the record store REST API.
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewClient builds a record store client from configuration.
func NewClient(cfg config.RecordStoreConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)

	return &Client{httpClient: restyClient, logger: logger}
}

// apiError is the store's error body.
type apiError struct {
	Error string `json:"error"`
}

type bookingsEnvelope struct {
	Bookings []models.RoomBooking `json:"bookings"`
}

type foodOrdersEnvelope struct {
	FoodOrders []models.FoodOrder `json:"foodOrders"`
}

type suppliesEnvelope struct {
	Supplies []models.Supply `json:"supplies"`
}

type salariesEnvelope struct {
	Salaries []models.SalaryRecord `json:"salaries"`
}

// ListBookings returns the bookings of date, or every booking when date is zero.
func (c *Client) ListBookings(ctx context.Context, date models.Date) ([]models.RoomBooking, error) {
	query := map[string]string{}
	if !date.IsZero() {
		query["bookingDate"] = date.String()
	}
	out := new(bookingsEnvelope)
	if err := c.list(ctx, models.CategoryRoomBookings, query, out); err != nil {
		return nil, err
	}
	return out.Bookings, nil
}

// ListFoodOrders returns every food order.
func (c *Client) ListFoodOrders(ctx context.Context) ([]models.FoodOrder, error) {
	out := new(foodOrdersEnvelope)
	if err := c.list(ctx, models.CategoryFoodOrders, nil, out); err != nil {
		return nil, err
	}
	return out.FoodOrders, nil
}

// ListSupplies returns every supply purchase.
func (c *Client) ListSupplies(ctx context.Context) ([]models.Supply, error) {
	out := new(suppliesEnvelope)
	if err := c.list(ctx, models.CategorySupplies, nil, out); err != nil {
		return nil, err
	}
	return out.Supplies, nil
}

// ListSalaries returns every salary record.
func (c *Client) ListSalaries(ctx context.Context) ([]models.SalaryRecord, error) {
	out := new(salariesEnvelope)
	if err := c.list(ctx, models.CategorySalaries, nil, out); err != nil {
		return nil, err
	}
	return out.Salaries, nil
}

// CreateBooking posts a booking. The store rejects an already booked
// (room, date) with a ConflictError.
func (c *Client) CreateBooking(ctx context.Context, req models.BookingRequest) (models.RoomBooking, error) {
	out := new(models.RoomBooking)
	err := c.create(ctx, models.CategoryRoomBookings, req, out)
	return *out, err
}

// CreateFoodOrder posts a food order.
func (c *Client) CreateFoodOrder(ctx context.Context, req models.FoodOrderRequest) (models.FoodOrder, error) {
	out := new(models.FoodOrder)
	err := c.create(ctx, models.CategoryFoodOrders, req, out)
	return *out, err
}

// CreateSupply posts a supply purchase.
func (c *Client) CreateSupply(ctx context.Context, req models.SupplyRequest) (models.Supply, error) {
	out := new(models.Supply)
	err := c.create(ctx, models.CategorySupplies, req, out)
	return *out, err
}

// CreateSalary posts a salary record. The store rejects a second payment of
// the same employee for the same date with a ConflictError.
func (c *Client) CreateSalary(ctx context.Context, req models.SalaryRequest) (models.SalaryRecord, error) {
	out := new(models.SalaryRecord)
	err := c.create(ctx, models.CategorySalaries, req, out)
	return *out, err
}

// Delete removes one record of category by id.
func (c *Client) Delete(ctx context.Context, category models.Category, id int64) error {
	op := fmt.Sprintf("delete %s/%d", category, id)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetError(apiErr).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete("/api/" + string(category) + "/{id}")
	if err != nil {
		return &models.NetworkError{Op: op, Err: err}
	}

	return c.checkStatus(op, resp, apiErr, http.StatusOK, http.StatusNoContent)
}

// Ping checks that the store answers a cheap list request.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.ListSupplies(ctx)
	return err
}

func (c *Client) list(ctx context.Context, category models.Category, query map[string]string, out any) error {
	op := fmt.Sprintf("list %s", category)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetResult(out).
		SetError(apiErr).
		Get("/api/" + string(category))
	if err != nil {
		return &models.NetworkError{Op: op, Err: err}
	}

	return c.checkStatus(op, resp, apiErr, http.StatusOK)
}

func (c *Client) create(ctx context.Context, category models.Category, body, out any) error {
	op := fmt.Sprintf("create %s", category)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(out).
		SetError(apiErr).
		Post("/api/" + string(category))
	if err != nil {
		return &models.NetworkError{Op: op, Err: err}
	}

	return c.checkStatus(op, resp, apiErr, http.StatusCreated, http.StatusOK)
}

func (c *Client) checkStatus(op string, resp *resty.Response, apiErr *apiError, accepted ...int) error {
	code := resp.StatusCode()
	for _, ok := range accepted {
		if code == ok {
			return nil
		}
	}

	switch code {
	case http.StatusBadRequest:
		message := strings.TrimSpace(apiErr.Error)
		if message == "" {
			message = "The record store rejected the request."
		}
		c.logger.Debug("record store rejected request", zap.String("op", op), zap.String("error", message))
		return &models.ConflictError{Message: message}
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	default:
		c.logger.Warn("unexpected record store status", zap.String("op", op), zap.Int("status", code))
		return &models.NetworkError{Op: op, Err: fmt.Errorf("unexpected status %d", code)}
	}
}
