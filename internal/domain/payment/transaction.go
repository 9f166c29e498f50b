package payment

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"

	vo "edulearn/internal/domain/payment/valueobjects"
)

var (
	ErrTransactionNotFound     = errors.New("payment transaction not found")
	ErrTransactionAlreadyFinal = errors.New("payment transaction is already settled")
)

// PaymentTransaction tracks one checkout attempt at the gateway. Its external
// code is the order code PayOS echoes back on the return redirect.
type PaymentTransaction struct {
	id            uuid.UUID
	ownerUserID   string
	purpose       vo.PaymentPurpose
	method        vo.PaymentMethod
	status        vo.PaymentStatus
	amount        vo.Money
	externalCode  string
	description   string
	checkoutURL   *string
	paymentLinkID *string
	buyerEmail    string
	gatewayRef    *string
	failureReason *string
	paidAt        *time.Time
	metadata      map[string]any
	version       int
	createdAt     time.Time
	updatedAt     time.Time
}

func NewPaymentTransaction(
	ownerUserID string,
	purpose vo.PaymentPurpose,
	method vo.PaymentMethod,
	amount vo.Money,
	externalCode, description, buyerEmail string,
	now time.Time,
) (*PaymentTransaction, error) {
	if ownerUserID == "" {
		return nil, fmt.Errorf("owner user ID is required")
	}
	if !purpose.IsValid() {
		return nil, fmt.Errorf("invalid payment purpose: %s", purpose)
	}
	if !method.IsValid() {
		return nil, fmt.Errorf("invalid payment method: %s", method)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}
	if externalCode == "" {
		return nil, fmt.Errorf("external transaction code is required")
	}

	created := now.UTC()
	return &PaymentTransaction{
		id:           uuid.New(),
		ownerUserID:  ownerUserID,
		purpose:      purpose,
		method:       method,
		status:       vo.PaymentStatusPending,
		amount:       amount,
		externalCode: externalCode,
		description:  description,
		buyerEmail:   buyerEmail,
		metadata:     make(map[string]any),
		version:      1,
		createdAt:    created,
		updatedAt:    created,
	}, nil
}

func ReconstructPaymentTransaction(
	id uuid.UUID,
	ownerUserID string,
	purpose vo.PaymentPurpose,
	method vo.PaymentMethod,
	status vo.PaymentStatus,
	amount vo.Money,
	externalCode, description string,
	checkoutURL, paymentLinkID *string,
	buyerEmail string,
	gatewayRef, failureReason *string,
	paidAt *time.Time,
	metadata map[string]any,
	version int,
	createdAt, updatedAt time.Time,
) (*PaymentTransaction, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("transaction ID cannot be empty")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid payment status: %s", status)
	}
	if metadata == nil {
		metadata = make(map[string]any)
	}

	return &PaymentTransaction{
		id:            id,
		ownerUserID:   ownerUserID,
		purpose:       purpose,
		method:        method,
		status:        status,
		amount:        amount,
		externalCode:  externalCode,
		description:   description,
		checkoutURL:   checkoutURL,
		paymentLinkID: paymentLinkID,
		buyerEmail:    buyerEmail,
		gatewayRef:    gatewayRef,
		failureReason: failureReason,
		paidAt:        paidAt,
		metadata:      metadata,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func (t *PaymentTransaction) ID() uuid.UUID { return t.id }
func (t *PaymentTransaction) OwnerUserID() string { return t.ownerUserID }
func (t *PaymentTransaction) Purpose() vo.PaymentPurpose { return t.purpose }
func (t *PaymentTransaction) Method() vo.PaymentMethod { return t.method }
func (t *PaymentTransaction) Status() vo.PaymentStatus { return t.status }
func (t *PaymentTransaction) Amount() vo.Money { return t.amount }
func (t *PaymentTransaction) ExternalCode() string { return t.externalCode }
func (t *PaymentTransaction) Description() string { return t.description }
func (t *PaymentTransaction) CheckoutURL() *string { return t.checkoutURL }
func (t *PaymentTransaction) PaymentLinkID() *string { return t.paymentLinkID }
func (t *PaymentTransaction) BuyerEmail() string { return t.buyerEmail }
func (t *PaymentTransaction) GatewayRef() *string { return t.gatewayRef }
func (t *PaymentTransaction) FailureReason() *string { return t.failureReason }
func (t *PaymentTransaction) PaidAt() *time.Time { return t.paidAt }
func (t *PaymentTransaction) Version() int { return t.version }
func (t *PaymentTransaction) CreatedAt() time.Time { return t.createdAt }
func (t *PaymentTransaction) UpdatedAt() time.Time { return t.updatedAt }

func (t *PaymentTransaction) Metadata() map[string]any {
	return maps.Clone(t.metadata)
}

func (t *PaymentTransaction) SetMetadata(key string, value any) {
	t.metadata[key] = value
}

// AttachCheckout stores the hosted checkout link returned by the gateway.
func (t *PaymentTransaction) AttachCheckout(checkoutURL, paymentLinkID string) error {
	if t.status != vo.PaymentStatusPending {
		return ErrTransactionAlreadyFinal
	}
	if checkoutURL == "" {
		return fmt.Errorf("checkout URL is required")
	}
	t.checkoutURL = &checkoutURL
	if paymentLinkID != "" {
		t.paymentLinkID = &paymentLinkID
	}
	t.updatedAt = time.Now().UTC()
	return nil
}

// MarkAsPaid settles the transaction. reference is the gateway's own id for
// the payment link, kept for reconciliation.
func (t *PaymentTransaction) MarkAsPaid(reference string, now time.Time) error {
	if t.status.IsFinal() {
		return ErrTransactionAlreadyFinal
	}
	paidAt := now.UTC()
	t.status = vo.PaymentStatusPaid
	t.paidAt = &paidAt
	if reference != "" {
		t.gatewayRef = &reference
	}
	t.updatedAt = paidAt
	t.version++
	return nil
}

func (t *PaymentTransaction) MarkAsFailed(reason string, now time.Time) error {
	if t.status.IsFinal() {
		return ErrTransactionAlreadyFinal
	}
	t.status = vo.PaymentStatusFailed
	t.failureReason = &reason
	t.updatedAt = now.UTC()
	t.version++
	return nil
}
