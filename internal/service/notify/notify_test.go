package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mamadbah2/hotelbudget/internal/domain/models"
	"github.com/mamadbah2/hotelbudget/internal/service/reporting"
	"github.com/mamadbah2/hotelbudget/pkg/clients/whatsapp"
)

type fakeClient struct {
	sent []whatsapp.SendTextMessageRequest
	err  error
}

func (f *fakeClient) SendTextMessage(_ context.Context, req whatsapp.SendTextMessageRequest) (*whatsapp.SendTextMessageResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, req)
	return &whatsapp.SendTextMessageResponse{}, nil
}

func rollup(count int, amount int64) models.Rollup {
	return models.Rollup{Count: count, TotalAmount: models.AmountFromInt(amount).Decimal()}
}

func TestFormatDailySummary(t *testing.T) {
	day := models.NewDate(2025, time.June, 1)

	profit := FormatDailySummary(day, reporting.Summarize(rollup(1, 1500), rollup(1, 2), rollup(1, 500), rollup(1, 1000)))
	for _, want := range []string{"Daily summary 2025-06-01", "Rooms booked: 1 (1500.00)", "Total income: 1502.00", "Total expenditure: 1500.00", "*Profit: 2.00*"} {
		if !strings.Contains(profit, want) {
			t.Fatalf("summary text missing %q:\n%s", want, profit)
		}
	}

	loss := FormatDailySummary(day, reporting.Summarize(rollup(0, 0), rollup(0, 0), rollup(1, 300), rollup(0, 0)))
	if !strings.Contains(loss, "*Loss: 300.00*") {
		t.Fatalf("expected a loss line:\n%s", loss)
	}
}

func TestSendDailySummary(t *testing.T) {
	client := &fakeClient{}
	n := NewNotifier(client, "254700000000", nil)

	err := n.SendDailySummary(context.Background(), models.NewDate(2025, time.June, 1), models.FinancialSummary{})
	if err != nil {
		t.Fatalf("SendDailySummary: %v", err)
	}
	if len(client.sent) != 1 || client.sent[0].To != "254700000000" {
		t.Fatalf("unexpected messages %+v", client.sent)
	}

	client.err = errors.New("boom")
	if err := n.SendDailySummary(context.Background(), models.NewDate(2025, time.June, 1), models.FinancialSummary{}); err == nil {
		t.Fatalf("expected error")
	}
}
