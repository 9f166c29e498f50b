package usecases

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"edulearn/internal/application/payment/paymentgateway"
	"edulearn/internal/domain/payment"
	"edulearn/internal/domain/school"
	"edulearn/internal/domain/subscription"
	vo "edulearn/internal/domain/subscription/valueobjects"
)

// memStore backs all repository fakes. It stores copies so a use case only
// changes stored state through Create/Update, like a real database.
type memStore struct {
	mu            sync.Mutex
	schools       map[uuid.UUID]*school.School
	plans         map[uuid.UUID]*subscription.SubscriptionPlan
	subscriptions map[uuid.UUID]*subscription.SchoolSubscription
	transactions  map[uuid.UUID]*payment.PaymentTransaction

	// failOn makes the named operation return the error.
	failOn map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		schools:       make(map[uuid.UUID]*school.School),
		plans:         make(map[uuid.UUID]*subscription.SubscriptionPlan),
		subscriptions: make(map[uuid.UUID]*subscription.SchoolSubscription),
		transactions:  make(map[uuid.UUID]*payment.PaymentTransaction),
		failOn:        make(map[string]error),
	}
}

func cloneSub(s *subscription.SchoolSubscription) *subscription.SchoolSubscription {
	c, err := subscription.ReconstructSchoolSubscription(
		s.ID(), s.SchoolID(), s.PlanID(), s.BillingCycle(), s.Status(), s.PaymentStatus(),
		s.StartDate(), s.EndDate(), s.AmountPaid(), s.TransactionID(), s.ExternalTransactionCode(),
		s.PurchasedAt(), s.CurrentPeriodAIUsageMinutes(), s.LastUsageResetDate(), s.Version(),
		s.CreatedAt(), s.UpdatedAt(),
	)
	if err != nil {
		panic(err)
	}
	return c
}

func cloneTxn(t *payment.PaymentTransaction) *payment.PaymentTransaction {
	c, err := payment.ReconstructPaymentTransaction(
		t.ID(), t.OwnerUserID(), t.Purpose(), t.Method(), t.Status(), t.Amount(), t.ExternalCode(),
		t.Description(), t.CheckoutURL(), t.PaymentLinkID(), t.BuyerEmail(), t.GatewayRef(),
		t.FailureReason(), t.PaidAt(), t.Metadata(), t.Version(), t.CreatedAt(), t.UpdatedAt(),
	)
	if err != nil {
		panic(err)
	}
	return c
}

func cloneSchool(s *school.School) *school.School {
	c, err := school.ReconstructSchool(s.ID(), s.Name(), s.OwnerUserID(), s.Status(), s.ActivatedAt(), s.CreatedAt(), s.UpdatedAt())
	if err != nil {
		panic(err)
	}
	return c
}

func (m *memStore) fail(op string) error {
	return m.failOn[op]
}

func (m *memStore) activeFor(schoolID uuid.UUID) []*subscription.SchoolSubscription {
	var out []*subscription.SchoolSubscription
	for _, s := range m.subscriptions {
		if s.SchoolID() == schoolID && s.Status() == vo.StatusActive {
			out = append(out, s)
		}
	}
	return out
}

func (m *memStore) subscription(id uuid.UUID) *subscription.SchoolSubscription {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.subscriptions[id]
}

func (m *memStore) schoolByID(id uuid.UUID) *school.School {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.schools[id]
}

func (m *memStore) transactionByCode(code string) *payment.PaymentTransaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.transactions {
		if t.ExternalCode() == code {
			return t
		}
	}
	return nil
}

// --- school.Repository ---

type memSchoolRepo struct{ *memStore }

func (r memSchoolRepo) Create(ctx context.Context, s *school.School) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schools[s.ID()] = cloneSchool(s)
	return nil
}

func (r memSchoolRepo) Update(ctx context.Context, s *school.School) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("school.Update"); err != nil {
		return err
	}
	r.schools[s.ID()] = cloneSchool(s)
	return nil
}

func (r memSchoolRepo) GetByID(ctx context.Context, id uuid.UUID) (*school.School, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.schools[id]; ok {
		return cloneSchool(s), nil
	}
	return nil, nil
}

func (r memSchoolRepo) GetByOwnerUserID(ctx context.Context, ownerUserID string) (*school.School, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.schools {
		if s.OwnerUserID() == ownerUserID {
			return cloneSchool(s), nil
		}
	}
	return nil, nil
}

// --- subscription.PlanRepository ---

type memPlanRepo struct{ *memStore }

func (r memPlanRepo) GetByID(ctx context.Context, id uuid.UUID) (*subscription.SubscriptionPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.plans[id], nil
}

func (r memPlanRepo) GetByCode(ctx context.Context, code string) (*subscription.SubscriptionPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.plans {
		if p.Code() == code {
			return p, nil
		}
	}
	return nil, nil
}

func (r memPlanRepo) ListActive(ctx context.Context) ([]*subscription.SubscriptionPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*subscription.SubscriptionPlan
	for _, p := range r.plans {
		if p.IsActive() {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder() < out[j].SortOrder() })
	return out, nil
}

func (r memPlanRepo) Upsert(ctx context.Context, p *subscription.SubscriptionPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[p.ID()] = p
	return nil
}

// --- subscription.SchoolSubscriptionRepository ---

type memSubscriptionRepo struct{ *memStore }

func (r memSubscriptionRepo) Create(ctx context.Context, s *subscription.SchoolSubscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("subscription.Create"); err != nil {
		return err
	}
	r.subscriptions[s.ID()] = cloneSub(s)
	return nil
}

func (r memSubscriptionRepo) Update(ctx context.Context, s *subscription.SchoolSubscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("subscription.Update"); err != nil {
		return err
	}
	r.subscriptions[s.ID()] = cloneSub(s)
	return nil
}

func (r memSubscriptionRepo) GetByID(ctx context.Context, id uuid.UUID) (*subscription.SchoolSubscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.subscriptions[id]; ok {
		return cloneSub(s), nil
	}
	return nil, nil
}

func (r memSubscriptionRepo) GetByTransactionCode(ctx context.Context, code string) (*subscription.SchoolSubscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.subscriptions {
		if s.ExternalTransactionCode() == code {
			return cloneSub(s), nil
		}
	}
	return nil, nil
}

func (r memSubscriptionRepo) GetByTransactionCodeForUpdate(ctx context.Context, code string) (*subscription.SchoolSubscription, error) {
	return r.GetByTransactionCode(ctx, code)
}

func (r memSubscriptionRepo) GetActiveBySchoolID(ctx context.Context, schoolID uuid.UUID) (*subscription.SchoolSubscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *subscription.SchoolSubscription
	for _, s := range r.activeFor(schoolID) {
		if latest == nil || s.StartDate().After(latest.StartDate()) {
			latest = s
		}
	}
	if latest == nil {
		return nil, nil
	}
	return cloneSub(latest), nil
}

func (r memSubscriptionRepo) GetCurrentBySchoolID(ctx context.Context, schoolID uuid.UUID) (*subscription.SchoolSubscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var latest *subscription.SchoolSubscription
	for _, s := range r.subscriptions {
		if s.SchoolID() != schoolID || !s.PaymentStatus().IsPaid() {
			continue
		}
		if latest == nil || s.StartDate().After(latest.StartDate()) {
			latest = s
		}
	}
	if latest == nil {
		return nil, nil
	}
	return cloneSub(latest), nil
}

func (r memSubscriptionRepo) ActivateIfPending(ctx context.Context, s *subscription.SchoolSubscription) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.subscriptions[s.ID()]
	if !ok || stored.PaymentStatus() != vo.PaymentStatusPending {
		return false, nil
	}
	r.subscriptions[s.ID()] = cloneSub(s)
	return true, nil
}

func (r memSubscriptionRepo) FindExpiredActive(ctx context.Context, now time.Time, limit int) ([]*subscription.SchoolSubscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*subscription.SchoolSubscription
	for _, s := range r.subscriptions {
		if s.Status() == vo.StatusActive && !s.EndDate().After(now) {
			out = append(out, cloneSub(s))
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r memSubscriptionRepo) ListBySchoolID(ctx context.Context, schoolID uuid.UUID) ([]*subscription.SchoolSubscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*subscription.SchoolSubscription
	for _, s := range r.subscriptions {
		if s.SchoolID() == schoolID {
			out = append(out, cloneSub(s))
		}
	}
	return out, nil
}

// --- payment.PaymentTransactionRepository ---

type memTransactionRepo struct{ *memStore }

func (r memTransactionRepo) Create(ctx context.Context, t *payment.PaymentTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("transaction.Create"); err != nil {
		return err
	}
	r.transactions[t.ID()] = cloneTxn(t)
	return nil
}

func (r memTransactionRepo) Update(ctx context.Context, t *payment.PaymentTransaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions[t.ID()] = cloneTxn(t)
	return nil
}

func (r memTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*payment.PaymentTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.transactions[id]; ok {
		return cloneTxn(t), nil
	}
	return nil, nil
}

func (r memTransactionRepo) GetByExternalCode(ctx context.Context, code string) (*payment.PaymentTransaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.transactions {
		if t.ExternalCode() == code {
			return cloneTxn(t), nil
		}
	}
	return nil, nil
}

// snapshotTxRunner restores the whole store when fn fails, which is what a
// database rollback looks like to the use case.
type snapshotTxRunner struct {
	store *memStore
	calls int
}

func (r *snapshotTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	r.calls++
	r.store.mu.Lock()
	schools := cloneMap(r.store.schools)
	plans := cloneMap(r.store.plans)
	subs := cloneMap(r.store.subscriptions)
	txns := cloneMap(r.store.transactions)
	r.store.mu.Unlock()

	if err := fn(ctx); err != nil {
		r.store.mu.Lock()
		r.store.schools, r.store.plans, r.store.subscriptions, r.store.transactions = schools, plans, subs, txns
		r.store.mu.Unlock()
		return err
	}
	return nil
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// --- collaborators ---

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreatePaymentLink(ctx context.Context, req paymentgateway.CreatePaymentLinkRequest) (*paymentgateway.PaymentLink, error) {
	args := m.Called(ctx, req)
	if link, ok := args.Get(0).(*paymentgateway.PaymentLink); ok {
		return link, args.Error(1)
	}
	return nil, args.Error(1)
}

type fixedOrderCodes struct {
	next int64
}

func (g *fixedOrderCodes) Next(now time.Time) (int64, error) {
	g.next++
	return g.next, nil
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) Get(ctx context.Context, schoolID uuid.UUID) (*subscription.SchoolSubscription, error) {
	args := m.Called(ctx, schoolID)
	if sub, ok := args.Get(0).(*subscription.SchoolSubscription); ok {
		return sub, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, sub *subscription.SchoolSubscription) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *mockCache) Invalidate(ctx context.Context, schoolID uuid.UUID) error {
	return m.Called(ctx, schoolID).Error(0)
}

type recordingNotifier struct {
	sent chan PaymentReceipt
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{sent: make(chan PaymentReceipt, 4)}
}

func (n *recordingNotifier) SendPaymentReceipt(ctx context.Context, receipt PaymentReceipt) error {
	n.sent <- receipt
	return nil
}
