package valueobjects

import "fmt"

// Money is an amount in the currency's minor unit. VND has no subunit, so one
// minor unit is one dong.
type Money struct {
	amount   int64
	currency string
}

func NewMoney(amount int64, currency string) Money {
	if currency == "" {
		currency = "VND"
	}
	return Money{amount: amount, currency: currency}
}

func (m Money) Amount() int64 {
	return m.amount
}

func (m Money) Currency() string {
	return m.currency
}

func (m Money) IsPositive() bool {
	return m.amount > 0
}

func (m Money) Equals(other Money) bool {
	return m.amount == other.amount && m.currency == other.currency
}

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.amount, m.currency)
}
