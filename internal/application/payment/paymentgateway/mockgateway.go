package paymentgateway

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"edulearn/internal/shared/constants"
)

// MockGateway skips the provider and points the payer straight at the return
// URL with a successful result, so the full flow runs locally.
type MockGateway struct{}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

var _ PaymentGateway = (*MockGateway)(nil)

func (g *MockGateway) CreatePaymentLink(_ context.Context, req CreatePaymentLinkRequest) (*PaymentLink, error) {
	if req.ReturnURL == "" {
		return nil, fmt.Errorf("return url is required")
	}
	target, err := url.Parse(req.ReturnURL)
	if err != nil {
		return nil, fmt.Errorf("invalid return url: %w", err)
	}

	linkID := "mock-" + strconv.FormatInt(req.OrderCode, 10)
	q := target.Query()
	q.Set("code", constants.PayOSSuccessCode)
	q.Set("id", linkID)
	q.Set("cancel", "false")
	q.Set("status", constants.PayOSStatusPaid)
	q.Set("orderCode", strconv.FormatInt(req.OrderCode, 10))
	target.RawQuery = q.Encode()

	return &PaymentLink{
		CheckoutURL:   target.String(),
		PaymentLinkID: linkID,
	}, nil
}
