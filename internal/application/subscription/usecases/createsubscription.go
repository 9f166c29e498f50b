package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"edulearn/internal/application/payment/paymentgateway"
	"edulearn/internal/domain/payment"
	paymentvo "edulearn/internal/domain/payment/valueobjects"
	"edulearn/internal/domain/school"
	"edulearn/internal/domain/subscription"
	vo "edulearn/internal/domain/subscription/valueobjects"
	"edulearn/internal/shared/biztime"
	"edulearn/internal/shared/constants"
	apperrors "edulearn/internal/shared/errors"
	"edulearn/internal/shared/logger"
	"edulearn/internal/shared/utils"
)

type CreateSubscriptionCommand struct {
	SchoolID            uuid.UUID
	PlanID              uuid.UUID
	BillingCycle        string
	RequestingUserID    string
	RequestingUserEmail string
}

type CreateSubscriptionResult struct {
	CheckoutURL    string
	TransactionID  uuid.UUID
	SubscriptionID uuid.UUID
	OrderCode      string
	Amount         int64
	Currency       string
	StartDate      time.Time
	EndDate        time.Time
}

// CheckoutURLs are the per-environment pages PayOS redirects the payer back to.
type CheckoutURLs struct {
	ReturnURL string
	CancelURL string
}

type CreateSubscriptionUseCase struct {
	schoolRepo       school.Repository
	planRepo         subscription.PlanRepository
	subscriptionRepo subscription.SchoolSubscriptionRepository
	transactionRepo  payment.PaymentTransactionRepository
	gateway          paymentgateway.PaymentGateway
	orderCodes       payment.OrderCodeGenerator
	txRunner         TransactionRunner
	cache            CurrentSubscriptionCache
	urls             CheckoutURLs
	now              func() time.Time
	logger           logger.Interface
}

func NewCreateSubscriptionUseCase(
	schoolRepo school.Repository,
	planRepo subscription.PlanRepository,
	subscriptionRepo subscription.SchoolSubscriptionRepository,
	transactionRepo payment.PaymentTransactionRepository,
	gateway paymentgateway.PaymentGateway,
	orderCodes payment.OrderCodeGenerator,
	txRunner TransactionRunner,
	urls CheckoutURLs,
	logger logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		schoolRepo:       schoolRepo,
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		transactionRepo:  transactionRepo,
		gateway:          gateway,
		orderCodes:       orderCodes,
		txRunner:         txRunner,
		urls:             urls,
		now:              biztime.NowUTC,
		logger:           logger,
	}
}

// SetCache enables invalidation when a lapsed subscription is expired on the way in.
func (uc *CreateSubscriptionUseCase) SetCache(cache CurrentSubscriptionCache) {
	uc.cache = cache
}

func (uc *CreateSubscriptionUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

// Execute opens a pending subscription and a checkout link for it. Nothing is
// activated here; the school keeps its current subscription until the payment
// return is confirmed. All rows and the gateway call form one unit: if the
// gateway rejects the order nothing is persisted.
func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*CreateSubscriptionResult, error) {
	uc.logger.Infow("executing create subscription use case",
		"school_id", cmd.SchoolID,
		"plan_id", cmd.PlanID,
		"billing_cycle", cmd.BillingCycle,
		"user_id", cmd.RequestingUserID,
	)

	cycle, err := vo.ParseBillingCycle(cmd.BillingCycle)
	if err != nil {
		return nil, toAppError(err)
	}
	if cmd.RequestingUserID == "" {
		return nil, apperrors.NewUnauthorizedError("Unauthorized. User ID or roles not found.")
	}

	now := uc.now()
	var (
		result       *CreateSubscriptionResult
		lapsedSchool bool
	)

	err = uc.txRunner.RunInTransaction(ctx, func(txCtx context.Context) error {
		s, err := uc.schoolRepo.GetByID(txCtx, cmd.SchoolID)
		if err != nil {
			return fmt.Errorf("failed to get school: %w", err)
		}
		if s == nil {
			return subscription.ErrSchoolNotFound
		}

		plan, err := uc.planRepo.GetByID(txCtx, cmd.PlanID)
		if err != nil {
			return fmt.Errorf("failed to get plan: %w", err)
		}
		if plan == nil {
			return subscription.ErrPlanNotFound
		}
		if !plan.IsActive() {
			return subscription.ErrPlanNotActive
		}

		lapsed, err := uc.checkPlanChange(txCtx, cmd.SchoolID, plan, cycle, now)
		if err != nil {
			return err
		}
		lapsedSchool = lapsed

		price, err := plan.PriceFor(cycle)
		if err != nil {
			return err
		}
		if price <= 0 {
			return apperrors.NewValidationError("Plan has no price for the selected billing cycle.")
		}

		orderCode, err := uc.orderCodes.Next(now)
		if err != nil {
			return fmt.Errorf("failed to generate order code: %w", err)
		}
		code := payment.FormatOrderCode(orderCode)
		description := checkoutDescription(plan.Name(), cycle)

		txn, err := payment.NewPaymentTransaction(
			cmd.RequestingUserID,
			paymentvo.PurposeSchoolSubscription,
			paymentvo.PaymentMethodPayOS,
			paymentvo.NewMoney(price, plan.Currency()),
			code,
			description,
			cmd.RequestingUserEmail,
			now,
		)
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}
		txn.SetMetadata("school_id", cmd.SchoolID.String())
		txn.SetMetadata("plan_id", plan.ID().String())
		txn.SetMetadata("billing_cycle", cycle.String())

		sub, err := subscription.NewPendingSubscription(cmd.SchoolID, plan.ID(), cycle, price, txn.ID(), code, now)
		if err != nil {
			return apperrors.NewValidationError(err.Error())
		}

		if err := uc.transactionRepo.Create(txCtx, txn); err != nil {
			return fmt.Errorf("failed to create payment transaction: %w", err)
		}
		if err := uc.subscriptionRepo.Create(txCtx, sub); err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}

		link, err := uc.gateway.CreatePaymentLink(txCtx, paymentgateway.CreatePaymentLinkRequest{
			OrderCode:   orderCode,
			Amount:      price,
			Description: description,
			BuyerEmail:  cmd.RequestingUserEmail,
			Items: []paymentgateway.Item{
				{Name: plan.Name() + " " + cycle.DisplayName(), Quantity: 1, Price: price},
			},
			ReturnURL: uc.urls.ReturnURL,
			CancelURL: uc.urls.CancelURL,
		})
		if err != nil {
			return fmt.Errorf("failed to create payment link: %w", err)
		}

		if err := txn.AttachCheckout(link.CheckoutURL, link.PaymentLinkID); err != nil {
			return fmt.Errorf("failed to attach checkout: %w", err)
		}
		if err := uc.transactionRepo.Update(txCtx, txn); err != nil {
			return fmt.Errorf("failed to save checkout url: %w", err)
		}

		result = &CreateSubscriptionResult{
			CheckoutURL:    link.CheckoutURL,
			TransactionID:  txn.ID(),
			SubscriptionID: sub.ID(),
			OrderCode:      code,
			Amount:         price,
			Currency:       plan.Currency(),
			StartDate:      sub.StartDate(),
			EndDate:        sub.EndDate(),
		}
		return nil
	})
	if err != nil {
		appErr := toAppError(err)
		if apperrors.IsAppError(appErr) {
			uc.logger.Warnw("subscription request rejected", "school_id", cmd.SchoolID, "error", err)
		} else {
			uc.logger.Errorw("failed to create subscription", "school_id", cmd.SchoolID, "error", err)
		}
		return nil, appErr
	}

	if lapsedSchool && uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, cmd.SchoolID); err != nil {
			uc.logger.Warnw("failed to invalidate subscription cache", "school_id", cmd.SchoolID, "error", err)
		}
	}

	uc.logger.Infow("subscription checkout created",
		"school_id", cmd.SchoolID,
		"subscription_id", result.SubscriptionID,
		"order_code", result.OrderCode,
		"amount", result.Amount,
	)

	return result, nil
}

// checkPlanChange applies the upgrade rules against the school's active row.
// An active row whose period has already ended is expired here instead, and
// the school may then buy any plan. It reports whether that happened.
func (uc *CreateSubscriptionUseCase) checkPlanChange(
	ctx context.Context,
	schoolID uuid.UUID,
	plan *subscription.SubscriptionPlan,
	cycle vo.BillingCycle,
	now time.Time,
) (bool, error) {
	current, err := uc.subscriptionRepo.GetActiveBySchoolID(ctx, schoolID)
	if err != nil {
		return false, fmt.Errorf("failed to get active subscription: %w", err)
	}
	if current == nil {
		return false, nil
	}

	if current.IsExpiredAt(now) {
		if err := current.Expire(now); err != nil {
			return false, err
		}
		if err := uc.subscriptionRepo.Update(ctx, current); err != nil {
			return false, fmt.Errorf("failed to expire lapsed subscription: %w", err)
		}
		uc.logger.Infow("expired lapsed subscription before checkout",
			"school_id", schoolID,
			"subscription_id", current.ID(),
			"end_date", current.EndDate(),
		)
		return true, nil
	}

	currentPlan, err := uc.planRepo.GetByID(ctx, current.PlanID())
	if err != nil {
		return false, fmt.Errorf("failed to get current plan: %w", err)
	}
	if currentPlan == nil {
		return false, fmt.Errorf("plan %s of active subscription %s is missing", current.PlanID(), current.ID())
	}

	return false, subscription.EvaluatePlanChange(current, currentPlan, plan, cycle)
}

// checkoutDescription fits the PayOS description limit.
func checkoutDescription(planName string, cycle vo.BillingCycle) string {
	return utils.TruncateRunes(fmt.Sprintf("%s %s", planName, cycle.DisplayName()), constants.PayOSDescMaxLength)
}
