package valueobjects

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidBillingCycle = errors.New("invalid billing cycle")

type BillingCycle string

const (
	BillingCycleMonthly BillingCycle = "monthly"
	BillingCycleYearly  BillingCycle = "yearly"
)

// billingCycleDays is the fixed length of one paid period. EndDate is always
// StartDate plus this many days.
var billingCycleDays = map[BillingCycle]int{
	BillingCycleMonthly: 30,
	BillingCycleYearly:  365,
}

func ParseBillingCycle(value string) (BillingCycle, error) {
	cycle := BillingCycle(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := billingCycleDays[cycle]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidBillingCycle, value)
	}
	return cycle, nil
}

func (b BillingCycle) String() string {
	return string(b)
}

func (b BillingCycle) IsValid() bool {
	_, ok := billingCycleDays[b]
	return ok
}

func (b BillingCycle) Days() int {
	return billingCycleDays[b]
}

// PeriodEnd returns start plus the cycle length.
func (b BillingCycle) PeriodEnd(start time.Time) time.Time {
	return start.AddDate(0, 0, b.Days())
}

// DisplayName is used in checkout descriptions and receipts.
func (b BillingCycle) DisplayName() string {
	switch b {
	case BillingCycleMonthly:
		return "Monthly"
	case BillingCycleYearly:
		return "Yearly"
	default:
		return string(b)
	}
}
