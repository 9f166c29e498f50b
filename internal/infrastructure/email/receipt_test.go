package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edulearn/internal/application/subscription/usecases"
	"edulearn/internal/shared/logger"
)

type capturedEmail struct {
	to, subject, html, plain string
}

type fakeSender struct {
	sent []capturedEmail
	err  error
}

func (f *fakeSender) Send(_ context.Context, to, subject, htmlBody, plainBody string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, capturedEmail{to: to, subject: subject, html: htmlBody, plain: plainBody})
	return nil
}

func testReceipt() usecases.PaymentReceipt {
	paid := time.Date(2026, 3, 1, 17, 30, 0, 0, time.UTC)
	return usecases.PaymentReceipt{
		To:           "admin@greenfield.edu.vn",
		SchoolName:   "Greenfield <script>alert(1)</script> Primary",
		PlanName:     "Premium",
		BillingCycle: "Yearly",
		Amount:       3000000,
		Currency:     "VND",
		OrderCode:    "1772386200000042",
		PaidAt:       paid,
		StartDate:    paid,
		EndDate:      paid.AddDate(0, 0, 365),
	}
}

func TestReceiptNotifier_SendPaymentReceipt(t *testing.T) {
	sender := &fakeSender{}
	notifier := NewReceiptNotifier(sender, logger.NewNop())

	require.NoError(t, notifier.SendPaymentReceipt(context.Background(), testReceipt()))
	require.Len(t, sender.sent, 1)

	msg := sender.sent[0]
	assert.Equal(t, "admin@greenfield.edu.vn", msg.to)
	assert.Equal(t, "Payment receipt: Premium (Yearly)", msg.subject)
	assert.Contains(t, msg.html, "<table>")
	assert.Contains(t, msg.html, "3.000.000 ₫")
	assert.Contains(t, msg.html, "1772386200000042")
	assert.NotContains(t, msg.html, "<script>")
	// 17:30 UTC is past midnight in Ho Chi Minh City.
	assert.Contains(t, msg.plain, "02/03/2026 00:30")
}

func TestReceiptNotifier_PropagatesSendFailure(t *testing.T) {
	notifier := NewReceiptNotifier(&fakeSender{err: errors.New("smtp down")}, logger.NewNop())

	err := notifier.SendPaymentReceipt(context.Background(), testReceipt())
	assert.ErrorContains(t, err, "smtp down")
}
