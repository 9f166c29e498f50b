package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"edulearn/internal/domain/payment"
	"edulearn/internal/domain/school"
	"edulearn/internal/domain/subscription"
	vo "edulearn/internal/domain/subscription/valueobjects"
	"edulearn/internal/shared/biztime"
	"edulearn/internal/shared/constants"
	apperrors "edulearn/internal/shared/errors"
	"edulearn/internal/shared/goroutine"
	"edulearn/internal/shared/logger"
)

const receiptSendTimeout = 30 * time.Second

type ConfirmPaymentReturnCommand struct {
	OrderCode     string
	Code          string
	Status        string
	PaymentLinkID string
	Cancel        bool
}

type ConfirmPaymentReturnResult struct {
	SubscriptionID uuid.UUID
	SchoolID       uuid.UUID
	PlanID         uuid.UUID
	BillingCycle   vo.BillingCycle
	Status         vo.SubscriptionStatus
	StartDate      time.Time
	EndDate        time.Time
	AmountPaid     int64
	// SupersededID is the previously active subscription expired by this confirmation.
	SupersededID *uuid.UUID
}

type ConfirmPaymentReturnUseCase struct {
	schoolRepo       school.Repository
	planRepo         subscription.PlanRepository
	subscriptionRepo subscription.SchoolSubscriptionRepository
	transactionRepo  payment.PaymentTransactionRepository
	txRunner         TransactionRunner
	cache            CurrentSubscriptionCache
	notifier         ReceiptNotifier
	now              func() time.Time
	logger           logger.Interface
}

func NewConfirmPaymentReturnUseCase(
	schoolRepo school.Repository,
	planRepo subscription.PlanRepository,
	subscriptionRepo subscription.SchoolSubscriptionRepository,
	transactionRepo payment.PaymentTransactionRepository,
	txRunner TransactionRunner,
	logger logger.Interface,
) *ConfirmPaymentReturnUseCase {
	return &ConfirmPaymentReturnUseCase{
		schoolRepo:       schoolRepo,
		planRepo:         planRepo,
		subscriptionRepo: subscriptionRepo,
		transactionRepo:  transactionRepo,
		txRunner:         txRunner,
		now:              biztime.NowUTC,
		logger:           logger,
	}
}

func (uc *ConfirmPaymentReturnUseCase) SetCache(cache CurrentSubscriptionCache) {
	uc.cache = cache
}

// SetNotifier enables the payment receipt email (optional dependency injection).
func (uc *ConfirmPaymentReturnUseCase) SetNotifier(notifier ReceiptNotifier) {
	uc.notifier = notifier
}

func (uc *ConfirmPaymentReturnUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

// Execute reconciles the gateway return redirect. The redirect may be replayed
// (back button, refresh) so a second confirmation of the same order is
// rejected with a conflict and changes nothing. Activation of the new row,
// expiry of the previous active row, settlement of the transaction and
// activation of the school commit together.
func (uc *ConfirmPaymentReturnUseCase) Execute(ctx context.Context, cmd ConfirmPaymentReturnCommand) (*ConfirmPaymentReturnResult, error) {
	uc.logger.Infow("executing confirm payment return use case",
		"order_code", cmd.OrderCode,
		"code", cmd.Code,
		"status", cmd.Status,
		"cancel", cmd.Cancel,
	)

	if cmd.Code != constants.PayOSSuccessCode || cmd.Status != constants.PayOSStatusPaid {
		uc.logger.Warnw("payment return reported failure",
			"order_code", cmd.OrderCode,
			"code", cmd.Code,
			"status", cmd.Status,
		)
		return nil, toAppError(subscription.ErrPaymentFailed)
	}

	if _, ok := payment.ParseOrderCode(cmd.OrderCode); !ok {
		return nil, apperrors.NewValidationError("Invalid order code.")
	}

	now := uc.now()
	var (
		result  *ConfirmPaymentReturnResult
		receipt *PaymentReceipt
	)

	err := uc.txRunner.RunInTransaction(ctx, func(txCtx context.Context) error {
		sub, err := uc.subscriptionRepo.GetByTransactionCodeForUpdate(txCtx, cmd.OrderCode)
		if err != nil {
			return fmt.Errorf("failed to get subscription by transaction code: %w", err)
		}
		if sub == nil {
			return subscription.ErrSubscriptionNotFound
		}
		if sub.PaymentStatus().IsPaid() {
			return subscription.ErrPaymentAlreadyConfirmed
		}

		var supersededID *uuid.UUID
		previous, err := uc.subscriptionRepo.GetActiveBySchoolID(txCtx, sub.SchoolID())
		if err != nil {
			return fmt.Errorf("failed to get active subscription: %w", err)
		}
		// The previous row must leave the active state first: the unique
		// active-school index admits one active row per school.
		if previous != nil && previous.ID() != sub.ID() {
			if err := previous.Expire(now); err != nil {
				return err
			}
			if err := uc.subscriptionRepo.Update(txCtx, previous); err != nil {
				return fmt.Errorf("failed to expire previous subscription: %w", err)
			}
			id := previous.ID()
			supersededID = &id
		}

		if err := sub.ConfirmPayment(now); err != nil {
			return err
		}
		activated, err := uc.subscriptionRepo.ActivateIfPending(txCtx, sub)
		if err != nil {
			return fmt.Errorf("failed to activate subscription: %w", err)
		}
		if !activated {
			return subscription.ErrPaymentAlreadyConfirmed
		}

		txn, err := uc.transactionRepo.GetByExternalCode(txCtx, cmd.OrderCode)
		if err != nil {
			return fmt.Errorf("failed to get payment transaction: %w", err)
		}
		if txn == nil {
			return fmt.Errorf("payment transaction %s linked to subscription %s is missing", cmd.OrderCode, sub.ID())
		}
		if err := txn.MarkAsPaid(cmd.PaymentLinkID, now); err != nil {
			return err
		}
		if err := uc.transactionRepo.Update(txCtx, txn); err != nil {
			return fmt.Errorf("failed to mark transaction paid: %w", err)
		}

		s, err := uc.schoolRepo.GetByID(txCtx, sub.SchoolID())
		if err != nil {
			return fmt.Errorf("failed to get school: %w", err)
		}
		if s == nil {
			return subscription.ErrSchoolNotFound
		}
		changed, err := s.ActivateFromSubscription(now)
		if err != nil {
			return fmt.Errorf("failed to activate school: %w", err)
		}
		if changed {
			if err := uc.schoolRepo.Update(txCtx, s); err != nil {
				return fmt.Errorf("failed to update school status: %w", err)
			}
		}

		result = &ConfirmPaymentReturnResult{
			SubscriptionID: sub.ID(),
			SchoolID:       sub.SchoolID(),
			PlanID:         sub.PlanID(),
			BillingCycle:   sub.BillingCycle(),
			Status:         sub.Status(),
			StartDate:      sub.StartDate(),
			EndDate:        sub.EndDate(),
			AmountPaid:     sub.AmountPaid(),
			SupersededID:   supersededID,
		}

		if txn.BuyerEmail() != "" {
			planName := sub.PlanID().String()
			if plan, err := uc.planRepo.GetByID(txCtx, sub.PlanID()); err == nil && plan != nil {
				planName = plan.Name()
			}
			receipt = &PaymentReceipt{
				To:           txn.BuyerEmail(),
				SchoolName:   s.Name(),
				PlanName:     planName,
				BillingCycle: sub.BillingCycle().DisplayName(),
				Amount:       txn.Amount().Amount(),
				Currency:     txn.Amount().Currency(),
				OrderCode:    cmd.OrderCode,
				PaidAt:       now,
				StartDate:    sub.StartDate(),
				EndDate:      sub.EndDate(),
			}
		}
		return nil
	})
	if err != nil {
		appErr := toAppError(err)
		if apperrors.IsAppError(appErr) {
			uc.logger.Warnw("payment return rejected", "order_code", cmd.OrderCode, "error", err)
		} else {
			uc.logger.Errorw("failed to confirm payment return", "order_code", cmd.OrderCode, "error", err)
		}
		return nil, appErr
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, result.SchoolID); err != nil {
			uc.logger.Warnw("failed to invalidate subscription cache", "school_id", result.SchoolID, "error", err)
		}
	}

	uc.logger.Infow("subscription activated",
		"subscription_id", result.SubscriptionID,
		"school_id", result.SchoolID,
		"order_code", cmd.OrderCode,
		"superseded_id", result.SupersededID,
	)

	if receipt != nil && uc.notifier != nil {
		r := *receipt
		goroutine.SafeGoWithTimeout(uc.logger, "payment-receipt", receiptSendTimeout, func(sendCtx context.Context) {
			if err := uc.notifier.SendPaymentReceipt(sendCtx, r); err != nil {
				uc.logger.Warnw("failed to send payment receipt", "order_code", r.OrderCode, "error", err)
			}
		})
	}

	return result, nil
}
