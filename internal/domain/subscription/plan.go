package subscription

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	vo "edulearn/internal/domain/subscription/valueobjects"
)

// SubscriptionPlan is catalog reference data. Prices are whole VND.
type SubscriptionPlan struct {
	id           uuid.UUID
	code         string
	name         string
	description  string
	monthlyPrice int64
	yearlyPrice  int64
	currency     string
	caps         vo.UsageCaps
	status       vo.PlanStatus
	sortOrder    int
	createdAt    time.Time
	updatedAt    time.Time
}

func NewSubscriptionPlan(code, name, description string, monthlyPrice, yearlyPrice int64, currency string, caps vo.UsageCaps, sortOrder int) (*SubscriptionPlan, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("plan code is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if monthlyPrice < 0 || yearlyPrice < 0 {
		return nil, fmt.Errorf("plan prices cannot be negative")
	}
	if currency == "" {
		return nil, fmt.Errorf("currency is required")
	}

	now := time.Now().UTC()
	return &SubscriptionPlan{
		id:           uuid.New(),
		code:         code,
		name:         name,
		description:  description,
		monthlyPrice: monthlyPrice,
		yearlyPrice:  yearlyPrice,
		currency:     currency,
		caps:         caps,
		status:       vo.PlanStatusActive,
		sortOrder:    sortOrder,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructSubscriptionPlan(
	id uuid.UUID,
	code, name, description string,
	monthlyPrice, yearlyPrice int64,
	currency string,
	caps vo.UsageCaps,
	status vo.PlanStatus,
	sortOrder int,
	createdAt, updatedAt time.Time,
) (*SubscriptionPlan, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("plan ID cannot be empty")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid plan status: %s", status)
	}

	return &SubscriptionPlan{
		id:           id,
		code:         code,
		name:         name,
		description:  description,
		monthlyPrice: monthlyPrice,
		yearlyPrice:  yearlyPrice,
		currency:     currency,
		caps:         caps,
		status:       status,
		sortOrder:    sortOrder,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (p *SubscriptionPlan) ID() uuid.UUID { return p.id }
func (p *SubscriptionPlan) Code() string { return p.code }
func (p *SubscriptionPlan) Name() string { return p.name }
func (p *SubscriptionPlan) Description() string { return p.description }
func (p *SubscriptionPlan) MonthlyPrice() int64 { return p.monthlyPrice }
func (p *SubscriptionPlan) YearlyPrice() int64 { return p.yearlyPrice }
func (p *SubscriptionPlan) Currency() string { return p.currency }
func (p *SubscriptionPlan) Caps() vo.UsageCaps { return p.caps }
func (p *SubscriptionPlan) Status() vo.PlanStatus { return p.status }
func (p *SubscriptionPlan) SortOrder() int { return p.sortOrder }
func (p *SubscriptionPlan) CreatedAt() time.Time { return p.createdAt }
func (p *SubscriptionPlan) UpdatedAt() time.Time { return p.updatedAt }

// IsActive reports whether new subscriptions may be opened on this plan.
// Archived plans stay valid for subscriptions that already reference them.
func (p *SubscriptionPlan) IsActive() bool {
	return p.status == vo.PlanStatusActive
}

func (p *SubscriptionPlan) PriceFor(cycle vo.BillingCycle) (int64, error) {
	switch cycle {
	case vo.BillingCycleMonthly:
		return p.monthlyPrice, nil
	case vo.BillingCycleYearly:
		return p.yearlyPrice, nil
	default:
		return 0, vo.ErrInvalidBillingCycle
	}
}

// annualizedPrice is twelve times the monthly-equivalent price, kept in
// integers so comparisons never round.
func (p *SubscriptionPlan) annualizedPrice(cycle vo.BillingCycle) int64 {
	if cycle == vo.BillingCycleYearly {
		return p.yearlyPrice
	}
	return p.monthlyPrice * 12
}

// MonthlyEquivalent is the per-month price for display, yearly ÷ 12 rounded down.
func (p *SubscriptionPlan) MonthlyEquivalent(cycle vo.BillingCycle) int64 {
	return p.annualizedPrice(cycle) / 12
}

func (p *SubscriptionPlan) Archive() {
	if p.status == vo.PlanStatusArchived {
		return
	}
	p.status = vo.PlanStatusArchived
	p.updatedAt = time.Now().UTC()
}

// UpdateCatalog overwrites the mutable catalog fields during a seed upsert.
func (p *SubscriptionPlan) UpdateCatalog(name, description string, monthlyPrice, yearlyPrice int64, caps vo.UsageCaps, status vo.PlanStatus, sortOrder int) {
	p.name = name
	p.description = description
	p.monthlyPrice = monthlyPrice
	p.yearlyPrice = yearlyPrice
	p.caps = caps
	p.status = status
	p.sortOrder = sortOrder
	p.updatedAt = time.Now().UTC()
}
