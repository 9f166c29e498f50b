// Package paymentgateway is the port to the hosted-checkout provider.
package paymentgateway

import "context"

type PaymentGateway interface {
	// CreatePaymentLink registers an order with the provider and returns the
	// page the payer is redirected to.
	CreatePaymentLink(ctx context.Context, req CreatePaymentLinkRequest) (*PaymentLink, error)
}

type CreatePaymentLinkRequest struct {
	OrderCode   int64
	Amount      int64 // whole VND
	Description string
	BuyerEmail  string
	Items       []Item
	ReturnURL   string
	CancelURL   string
}

type Item struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

type PaymentLink struct {
	CheckoutURL   string
	PaymentLinkID string
}
