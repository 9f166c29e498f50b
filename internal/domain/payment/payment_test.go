package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "edulearn/internal/domain/payment/valueobjects"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newTestTransaction(t *testing.T) *PaymentTransaction {
	t.Helper()
	tx, err := NewPaymentTransaction("user-1", vo.PurposeSchoolSubscription, vo.PaymentMethodPayOS,
		vo.NewMoney(250_000, "VND"), "1740819600000123", "Basic Monthly", "admin@school.vn", testNow)
	require.NoError(t, err)
	return tx
}

func TestNewPaymentTransaction(t *testing.T) {
	tx := newTestTransaction(t)

	assert.Equal(t, vo.PaymentStatusPending, tx.Status())
	assert.Equal(t, int64(250_000), tx.Amount().Amount())
	assert.Equal(t, "VND", tx.Amount().Currency())
	assert.Nil(t, tx.CheckoutURL())

	_, err := NewPaymentTransaction("user-1", vo.PurposeSchoolSubscription, vo.PaymentMethodPayOS,
		vo.NewMoney(0, "VND"), "1", "", "", testNow)
	assert.Error(t, err)

	_, err = NewPaymentTransaction("user-1", vo.PaymentPurpose("donation"), vo.PaymentMethodPayOS,
		vo.NewMoney(1, "VND"), "1", "", "", testNow)
	assert.Error(t, err)
}

func TestPaymentTransaction_Lifecycle(t *testing.T) {
	tx := newTestTransaction(t)

	require.NoError(t, tx.AttachCheckout("https://pay.payos.vn/web/abc", "abc"))
	require.NotNil(t, tx.CheckoutURL())
	assert.Equal(t, "https://pay.payos.vn/web/abc", *tx.CheckoutURL())

	require.NoError(t, tx.MarkAsPaid("abc", testNow.Add(time.Minute)))
	assert.Equal(t, vo.PaymentStatusPaid, tx.Status())
	require.NotNil(t, tx.PaidAt())

	assert.ErrorIs(t, tx.MarkAsPaid("abc", testNow), ErrTransactionAlreadyFinal)
	assert.ErrorIs(t, tx.MarkAsFailed("late", testNow), ErrTransactionAlreadyFinal)
	assert.ErrorIs(t, tx.AttachCheckout("https://x", ""), ErrTransactionAlreadyFinal)
}

func TestOrderCodeGenerator(t *testing.T) {
	gen := NewOrderCodeGenerator()

	code, err := gen.Next(testNow)
	require.NoError(t, err)

	assert.Greater(t, code, int64(0))
	assert.LessOrEqual(t, code, maxOrderCode)
	assert.Equal(t, testNow.UnixMilli(), code/1000)

	parsed, ok := ParseOrderCode(FormatOrderCode(code))
	assert.True(t, ok)
	assert.Equal(t, code, parsed)
}

func TestParseOrderCode(t *testing.T) {
	for _, in := range []string{"", "abc", "-5", "0", "9007199254740992"} {
		_, ok := ParseOrderCode(in)
		assert.False(t, ok, in)
	}
}
