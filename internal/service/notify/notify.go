// Package notify formats the daily ledger summary and sends it over WhatsApp.
package notify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/hotelbudget/internal/domain/models"
	"github.com/mamadbah2/hotelbudget/pkg/clients/whatsapp"
)

// FormatDailySummary renders the summary as a WhatsApp text message.
func FormatDailySummary(day models.Date, s models.FinancialSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*Daily summary %s*\n\n", day)
	b.WriteString("*Income*\n")
	fmt.Fprintf(&b, "Rooms booked: %d (%s)\n", s.RoomsBooked.Count, s.RoomsBooked.TotalAmount.StringFixed(2))
	fmt.Fprintf(&b, "Food orders: %d (%s)\n", s.FoodOrders.Count, s.FoodOrders.TotalAmount.StringFixed(2))
	fmt.Fprintf(&b, "Total income: %s\n\n", s.TotalIncome.StringFixed(2))

	b.WriteString("*Expenditure*\n")
	fmt.Fprintf(&b, "Supplies: %d (%s)\n", s.Supplies.Count, s.Supplies.TotalAmount.StringFixed(2))
	fmt.Fprintf(&b, "Salaries: %d (%s)\n", s.Salaries.Count, s.Salaries.TotalAmount.StringFixed(2))
	fmt.Fprintf(&b, "Total expenditure: %s\n\n", s.TotalExpenditure.StringFixed(2))

	label := "Profit"
	if s.ProfitOrLoss.IsNegative() {
		label = "Loss"
	}
	fmt.Fprintf(&b, "*%s: %s*", label, s.ProfitOrLoss.Abs().StringFixed(2))

	return b.String()
}

// Notifier delivers daily summaries to the hotel manager.
type Notifier struct {
	client    whatsapp.Client
	recipient string
	logger    *zap.Logger
}

// NewNotifier builds a notifier sending to recipient through client.
func NewNotifier(client whatsapp.Client, recipient string, logger *zap.Logger) *Notifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Notifier{client: client, recipient: recipient, logger: logger}
}

// SendDailySummary formats and sends the summary of day.
func (n *Notifier) SendDailySummary(ctx context.Context, day models.Date, s models.FinancialSummary) error {
	resp, err := n.client.SendTextMessage(ctx, whatsapp.SendTextMessageRequest{
		To:   n.recipient,
		Body: FormatDailySummary(day, s),
	})
	if err != nil {
		return fmt.Errorf("send daily summary: %w", err)
	}

	fields := []zap.Field{zap.String("to", n.recipient), zap.String("day", day.String())}
	if len(resp.Messages) > 0 {
		fields = append(fields, zap.String("message_id", resp.Messages[0].ID))
	}
	n.logger.Info("daily summary sent", fields...)
	return nil
}
