package payment

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

// maxOrderCode is the largest order code PayOS accepts (2^53 - 1, a safe JS integer).
const maxOrderCode int64 = 9007199254740991

// OrderCodeGenerator produces the numeric correlation code sent to the gateway.
type OrderCodeGenerator interface {
	Next(now time.Time) (int64, error)
}

// TimeOrderCodeGenerator builds codes as unix milliseconds followed by three
// random digits. Collisions need two checkouts in the same millisecond with the
// same suffix and are caught by the unique index on the code column.
type TimeOrderCodeGenerator struct{}

func NewOrderCodeGenerator() *TimeOrderCodeGenerator {
	return &TimeOrderCodeGenerator{}
}

func (g *TimeOrderCodeGenerator) Next(now time.Time) (int64, error) {
	suffix, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		return 0, err
	}
	code := now.UnixMilli()*1000 + suffix.Int64()
	if code <= 0 || code > maxOrderCode {
		code %= maxOrderCode
	}
	return code, nil
}

func FormatOrderCode(code int64) string {
	return strconv.FormatInt(code, 10)
}

// ParseOrderCode validates a code echoed back by the gateway.
func ParseOrderCode(s string) (int64, bool) {
	code, err := strconv.ParseInt(s, 10, 64)
	if err != nil || code <= 0 || code > maxOrderCode {
		return 0, false
	}
	return code, true
}
