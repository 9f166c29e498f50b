package usecases

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"edulearn/internal/application/payment/paymentgateway"
	paymentvo "edulearn/internal/domain/payment/valueobjects"
	"edulearn/internal/domain/school"
	"edulearn/internal/domain/subscription"
	vo "edulearn/internal/domain/subscription/valueobjects"
	apperrors "edulearn/internal/shared/errors"
	"edulearn/internal/shared/logger"
)

var baseTime = time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

type lifecycleFixture struct {
	store    *memStore
	runner   *snapshotTxRunner
	gateway  *mockGateway
	create   *CreateSubscriptionUseCase
	confirm  *ConfirmPaymentReturnUseCase
	clock    time.Time
	school   *school.School
	basic    *subscription.SubscriptionPlan
	premium  *subscription.SubscriptionPlan
	archived *subscription.SubscriptionPlan
}

func newLifecycleFixture(t *testing.T) *lifecycleFixture {
	t.Helper()
	f := &lifecycleFixture{
		store:   newMemStore(),
		gateway: &mockGateway{},
		clock:   baseTime,
	}
	f.runner = &snapshotTxRunner{store: f.store}

	var err error
	f.school, err = school.NewSchool("Greenfield Primary", "admin-1", baseTime)
	require.NoError(t, err)
	require.NoError(t, memSchoolRepo{f.store}.Create(context.Background(), f.school))

	f.basic = mustPlan(t, "basic", "Basic", 100_000, 1_000_000, 1)
	f.premium = mustPlan(t, "premium", "Premium", 300_000, 3_000_000, 2)
	f.archived = mustPlan(t, "legacy", "Legacy", 50_000, 500_000, 3)
	f.archived.Archive()
	for _, p := range []*subscription.SubscriptionPlan{f.basic, f.premium, f.archived} {
		f.store.plans[p.ID()] = p
	}

	log := logger.NewNop()
	f.create = NewCreateSubscriptionUseCase(
		memSchoolRepo{f.store}, memPlanRepo{f.store}, memSubscriptionRepo{f.store}, memTransactionRepo{f.store},
		f.gateway, &fixedOrderCodes{next: 1_000}, f.runner,
		CheckoutURLs{ReturnURL: "https://app.test/return", CancelURL: "https://app.test/cancel"},
		log,
	)
	f.create.SetClock(func() time.Time { return f.clock })

	f.confirm = NewConfirmPaymentReturnUseCase(
		memSchoolRepo{f.store}, memPlanRepo{f.store}, memSubscriptionRepo{f.store}, memTransactionRepo{f.store},
		f.runner, log,
	)
	f.confirm.SetClock(func() time.Time { return f.clock })
	return f
}

func mustPlan(t *testing.T, code, name string, monthly, yearly int64, order int) *subscription.SubscriptionPlan {
	t.Helper()
	p, err := subscription.NewSubscriptionPlan(code, name, "", monthly, yearly, "VND", vo.UsageCaps{}, order)
	require.NoError(t, err)
	return p
}

func (f *lifecycleFixture) expectCheckout() {
	f.gateway.On("CreatePaymentLink", mock.Anything, mock.Anything).
		Return(&paymentgateway.PaymentLink{CheckoutURL: "https://pay.payos.vn/web/link", PaymentLinkID: "link"}, nil)
}

func (f *lifecycleFixture) buy(t *testing.T, plan *subscription.SubscriptionPlan, cycle vo.BillingCycle) (*CreateSubscriptionResult, error) {
	t.Helper()
	return f.create.Execute(context.Background(), CreateSubscriptionCommand{
		SchoolID:            f.school.ID(),
		PlanID:              plan.ID(),
		BillingCycle:        string(cycle),
		RequestingUserID:    "admin-1",
		RequestingUserEmail: "admin@greenfield.edu.vn",
	})
}

func (f *lifecycleFixture) pay(orderCode string) (*ConfirmPaymentReturnResult, error) {
	return f.confirm.Execute(context.Background(), ConfirmPaymentReturnCommand{
		OrderCode:     orderCode,
		Code:          "00",
		Status:        "PAID",
		PaymentLinkID: "link",
	})
}

// activeSubscription buys and confirms plan on cycle at the fixture clock.
func (f *lifecycleFixture) activeSubscription(t *testing.T, plan *subscription.SubscriptionPlan, cycle vo.BillingCycle) *CreateSubscriptionResult {
	t.Helper()
	res, err := f.buy(t, plan, cycle)
	require.NoError(t, err)
	_, err = f.pay(res.OrderCode)
	require.NoError(t, err)
	return res
}

func assertAppError(t *testing.T, err error, status int, target error) {
	t.Helper()
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	require.NotNil(t, appErr, "expected AppError, got %v", err)
	assert.Equal(t, status, appErr.Code)
	if target != nil {
		assert.ErrorIs(t, err, target)
	}
}

func TestCreateSubscription_Success(t *testing.T) {
	f := newLifecycleFixture(t)
	f.expectCheckout()

	res, err := f.buy(t, f.premium, vo.BillingCycleYearly)

	require.NoError(t, err)
	assert.Equal(t, "https://pay.payos.vn/web/link", res.CheckoutURL)
	assert.Equal(t, int64(3_000_000), res.Amount)
	assert.Equal(t, "1001", res.OrderCode)
	assert.Equal(t, baseTime.AddDate(0, 0, 365), res.EndDate)

	sub := f.store.subscription(res.SubscriptionID)
	require.NotNil(t, sub)
	assert.Equal(t, vo.StatusPending, sub.Status())
	assert.Equal(t, vo.PaymentStatusPending, sub.PaymentStatus())
	assert.Equal(t, res.TransactionID, sub.TransactionID())

	txn := f.store.transactionByCode(res.OrderCode)
	require.NotNil(t, txn)
	assert.Equal(t, paymentvo.PaymentStatusPending, txn.Status())
	assert.Equal(t, paymentvo.PurposeSchoolSubscription, txn.Purpose())
	require.NotNil(t, txn.CheckoutURL())
	assert.Equal(t, res.CheckoutURL, *txn.CheckoutURL())

	f.gateway.AssertCalled(t, "CreatePaymentLink", mock.Anything, mock.MatchedBy(func(req paymentgateway.CreatePaymentLinkRequest) bool {
		return req.OrderCode == 1001 &&
			req.Amount == 3_000_000 &&
			req.Description == "Premium Yearly" &&
			req.ReturnURL == "https://app.test/return"
	}))
	assert.False(t, f.store.schoolByID(f.school.ID()).IsActive())
}

func TestCreateSubscription_Rejections(t *testing.T) {
	f := newLifecycleFixture(t)
	f.expectCheckout()

	tests := []struct {
		name   string
		cmd    CreateSubscriptionCommand
		status int
		target error
	}{
		{
			name:   "unknown school",
			cmd:    CreateSubscriptionCommand{SchoolID: uuid.New(), PlanID: f.basic.ID(), BillingCycle: "monthly", RequestingUserID: "admin-1"},
			status: http.StatusNotFound,
			target: subscription.ErrSchoolNotFound,
		},
		{
			name:   "unknown plan",
			cmd:    CreateSubscriptionCommand{SchoolID: f.school.ID(), PlanID: uuid.New(), BillingCycle: "monthly", RequestingUserID: "admin-1"},
			status: http.StatusNotFound,
			target: subscription.ErrPlanNotFound,
		},
		{
			name:   "archived plan",
			cmd:    CreateSubscriptionCommand{SchoolID: f.school.ID(), PlanID: f.archived.ID(), BillingCycle: "monthly", RequestingUserID: "admin-1"},
			status: http.StatusBadRequest,
			target: subscription.ErrPlanNotActive,
		},
		{
			name:   "bad billing cycle",
			cmd:    CreateSubscriptionCommand{SchoolID: f.school.ID(), PlanID: f.basic.ID(), BillingCycle: "weekly", RequestingUserID: "admin-1"},
			status: http.StatusBadRequest,
			target: vo.ErrInvalidBillingCycle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.create.Execute(context.Background(), tt.cmd)
			assertAppError(t, err, tt.status, tt.target)
		})
	}

	assert.Empty(t, f.store.subscriptions)
	assert.Empty(t, f.store.transactions)
	f.gateway.AssertNotCalled(t, "CreatePaymentLink", mock.Anything, mock.Anything)
}

func TestCreateSubscription_UpgradeRules(t *testing.T) {
	tests := []struct {
		name    string
		plan    func(f *lifecycleFixture) *subscription.SubscriptionPlan
		cycle   vo.BillingCycle
		wantErr error
	}{
		{name: "same plan and cycle", plan: func(f *lifecycleFixture) *subscription.SubscriptionPlan { return f.basic }, cycle: vo.BillingCycleMonthly, wantErr: subscription.ErrSubscriptionAlreadyExists},
		{name: "lower monthly equivalent", plan: func(f *lifecycleFixture) *subscription.SubscriptionPlan { return f.basic }, cycle: vo.BillingCycleYearly, wantErr: subscription.ErrDowngradeNotAllowed},
		{name: "higher plan", plan: func(f *lifecycleFixture) *subscription.SubscriptionPlan { return f.premium }, cycle: vo.BillingCycleMonthly},
		{name: "higher plan yearly", plan: func(f *lifecycleFixture) *subscription.SubscriptionPlan { return f.premium }, cycle: vo.BillingCycleYearly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLifecycleFixture(t)
			f.expectCheckout()
			current := f.activeSubscription(t, f.basic, vo.BillingCycleMonthly)
			f.clock = baseTime.Add(10 * 24 * time.Hour)

			res, err := f.buy(t, tt.plan(f), tt.cycle)

			if tt.wantErr != nil {
				assertAppError(t, err, http.StatusConflict, tt.wantErr)
				assert.Len(t, f.store.subscriptions, 1)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, vo.StatusPending, f.store.subscription(res.SubscriptionID).Status())
			assert.Equal(t, vo.StatusActive, f.store.subscription(current.SubscriptionID).Status())
		})
	}
}

func TestCreateSubscription_GatewayFailureRollsBack(t *testing.T) {
	f := newLifecycleFixture(t)
	f.gateway.On("CreatePaymentLink", mock.Anything, mock.Anything).Return(nil, errors.New("payos unavailable"))

	_, err := f.buy(t, f.basic, vo.BillingCycleMonthly)

	require.Error(t, err)
	assert.Nil(t, apperrors.GetAppError(err))
	assert.Empty(t, f.store.subscriptions)
	assert.Empty(t, f.store.transactions)
}

func TestCreateSubscription_LapsedSubscriptionIsExpiredAndRenewable(t *testing.T) {
	f := newLifecycleFixture(t)
	f.expectCheckout()
	old := f.activeSubscription(t, f.basic, vo.BillingCycleMonthly)

	cache := &mockCache{}
	cache.On("Invalidate", mock.Anything, f.school.ID()).Return(nil).Once()
	f.create.SetCache(cache)
	f.clock = old.EndDate.Add(24 * time.Hour)

	res, err := f.buy(t, f.basic, vo.BillingCycleMonthly)

	require.NoError(t, err)
	assert.Equal(t, vo.StatusExpired, f.store.subscription(old.SubscriptionID).Status())
	assert.Equal(t, vo.StatusPending, f.store.subscription(res.SubscriptionID).Status())
	cache.AssertExpectations(t)
}

func TestConfirmPaymentReturn_GatewayFailureMutatesNothing(t *testing.T) {
	f := newLifecycleFixture(t)
	f.expectCheckout()
	res, err := f.buy(t, f.basic, vo.BillingCycleMonthly)
	require.NoError(t, err)

	for _, cmd := range []ConfirmPaymentReturnCommand{
		{OrderCode: res.OrderCode, Code: "01", Status: "PAID"},
		{OrderCode: res.OrderCode, Code: "00", Status: "CANCELLED", Cancel: true},
	} {
		_, err := f.confirm.Execute(context.Background(), cmd)
		assertAppError(t, err, http.StatusPaymentRequired, subscription.ErrPaymentFailed)
	}

	sub := f.store.subscription(res.SubscriptionID)
	assert.Equal(t, vo.StatusPending, sub.Status())
	assert.Equal(t, vo.PaymentStatusPending, sub.PaymentStatus())
	assert.Equal(t, 1, f.runner.calls)
}

func TestConfirmPaymentReturn_UnknownOrder(t *testing.T) {
	f := newLifecycleFixture(t)

	_, err := f.pay("424242")
	assertAppError(t, err, http.StatusNotFound, subscription.ErrSubscriptionNotFound)

	_, err = f.pay("not-a-number")
	assertAppError(t, err, http.StatusBadRequest, nil)
}

func TestConfirmPaymentReturn_ActivatesAndSupersedes(t *testing.T) {
	f := newLifecycleFixture(t)
	f.expectCheckout()
	old := f.activeSubscription(t, f.basic, vo.BillingCycleMonthly)
	assert.True(t, f.store.schoolByID(f.school.ID()).IsActive())

	f.clock = baseTime.Add(5 * 24 * time.Hour)
	res, err := f.buy(t, f.premium, vo.BillingCycleYearly)
	require.NoError(t, err)

	cache := &mockCache{}
	cache.On("Invalidate", mock.Anything, f.school.ID()).Return(nil).Once()
	notifier := newRecordingNotifier()
	f.confirm.SetCache(cache)
	f.confirm.SetNotifier(notifier)

	got, err := f.pay(res.OrderCode)

	require.NoError(t, err)
	assert.Equal(t, res.SubscriptionID, got.SubscriptionID)
	assert.Equal(t, vo.StatusActive, got.Status)
	require.NotNil(t, got.SupersededID)
	assert.Equal(t, old.SubscriptionID, *got.SupersededID)

	assert.Equal(t, vo.StatusActive, f.store.subscription(res.SubscriptionID).Status())
	assert.Equal(t, vo.StatusExpired, f.store.subscription(old.SubscriptionID).Status())
	assert.Len(t, f.store.activeFor(f.school.ID()), 1)
	assert.Equal(t, paymentvo.PaymentStatusPaid, f.store.transactionByCode(res.OrderCode).Status())
	cache.AssertExpectations(t)

	select {
	case receipt := <-notifier.sent:
		assert.Equal(t, "admin@greenfield.edu.vn", receipt.To)
		assert.Equal(t, "Premium", receipt.PlanName)
		assert.Equal(t, int64(3_000_000), receipt.Amount)
		assert.Equal(t, "Greenfield Primary", receipt.SchoolName)
	case <-time.After(2 * time.Second):
		t.Fatal("payment receipt was not sent")
	}
}

func TestConfirmPaymentReturn_Idempotent(t *testing.T) {
	f := newLifecycleFixture(t)
	f.expectCheckout()
	res, err := f.buy(t, f.basic, vo.BillingCycleMonthly)
	require.NoError(t, err)

	_, err = f.pay(res.OrderCode)
	require.NoError(t, err)
	first := f.store.subscription(res.SubscriptionID)

	_, err = f.pay(res.OrderCode)

	assertAppError(t, err, http.StatusConflict, subscription.ErrPaymentAlreadyConfirmed)
	second := f.store.subscription(res.SubscriptionID)
	assert.Equal(t, first.Version(), second.Version())
	assert.Equal(t, first.PurchasedAt(), second.PurchasedAt())
	assert.Len(t, f.store.activeFor(f.school.ID()), 1)
}

func TestConfirmPaymentReturn_FailedCommitLeavesEverythingPending(t *testing.T) {
	f := newLifecycleFixture(t)
	f.expectCheckout()
	old := f.activeSubscription(t, f.basic, vo.BillingCycleMonthly)
	res, err := f.buy(t, f.premium, vo.BillingCycleMonthly)
	require.NoError(t, err)
	f.store.failOn["school.Update"] = errors.New("connection reset")
	// Force the school write: it is only issued while the school is inactive.
	inactive, err := school.ReconstructSchool(f.school.ID(), f.school.Name(), "admin-1", school.StatusInactive, nil, baseTime, baseTime)
	require.NoError(t, err)
	f.store.schools[f.school.ID()] = inactive

	_, err = f.pay(res.OrderCode)

	require.Error(t, err)
	assert.Equal(t, vo.StatusActive, f.store.subscription(old.SubscriptionID).Status())
	assert.Equal(t, vo.StatusPending, f.store.subscription(res.SubscriptionID).Status())
	assert.Equal(t, paymentvo.PaymentStatusPending, f.store.transactionByCode(res.OrderCode).Status())

	delete(f.store.failOn, "school.Update")
	_, err = f.pay(res.OrderCode)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusExpired, f.store.subscription(old.SubscriptionID).Status())
}

// A school on Basic/Monthly lapses by one day, buys Premium/Yearly, pays, and
// regains write access.
func TestLifecycle_RenewAfterLapse(t *testing.T) {
	f := newLifecycleFixture(t)
	f.expectCheckout()
	grace := 14 * 24 * time.Hour
	old := f.activeSubscription(t, f.basic, vo.BillingCycleMonthly)

	f.clock = old.EndDate.Add(24 * time.Hour)
	current, err := memSubscriptionRepo{f.store}.GetCurrentBySchoolID(context.Background(), f.school.ID())
	require.NoError(t, err)
	assert.Equal(t, subscription.AccessPaymentRequired,
		subscription.DecideAccess(current, vo.AccessReadWrite, f.clock, grace).Outcome)

	res, err := f.buy(t, f.premium, vo.BillingCycleYearly)
	require.NoError(t, err)
	assert.NotEmpty(t, res.CheckoutURL)
	assert.Equal(t, vo.StatusPending, f.store.subscription(res.SubscriptionID).Status())

	_, err = f.pay(res.OrderCode)
	require.NoError(t, err)

	current, err = memSubscriptionRepo{f.store}.GetCurrentBySchoolID(context.Background(), f.school.ID())
	require.NoError(t, err)
	assert.Equal(t, res.SubscriptionID, current.ID())
	assert.Equal(t, subscription.AccessAllowed,
		subscription.DecideAccess(current, vo.AccessReadWrite, f.clock, grace).Outcome)
	assert.Equal(t, vo.StatusExpired, f.store.subscription(old.SubscriptionID).Status())
	assert.Len(t, f.store.activeFor(f.school.ID()), 1)
}
