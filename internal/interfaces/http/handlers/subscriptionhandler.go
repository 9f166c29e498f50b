package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	subdto "edulearn/internal/application/subscription/dto"
	"edulearn/internal/application/subscription/usecases"
	"edulearn/internal/interfaces/http/validation"
	"edulearn/internal/shared/biztime"
	"edulearn/internal/shared/constants"
	"edulearn/internal/shared/errors"
	"edulearn/internal/shared/logger"
	"edulearn/internal/shared/utils"
)

type SubscriptionHandler struct {
	createUC    createSubscriptionUseCase
	currentUC   getCurrentSubscriptionUseCase
	confirmUC   confirmPaymentReturnUseCase
	schools     schoolOwnerLookup
	mapper      *subdto.SubscriptionMapper
	gracePeriod time.Duration
	now         func() time.Time
	logger      logger.Interface
}

func NewSubscriptionHandler(
	createUC createSubscriptionUseCase,
	currentUC getCurrentSubscriptionUseCase,
	confirmUC confirmPaymentReturnUseCase,
	schools schoolOwnerLookup,
	mapper *subdto.SubscriptionMapper,
	gracePeriod time.Duration,
	logger logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		createUC:    createUC,
		currentUC:   currentUC,
		confirmUC:   confirmUC,
		schools:     schools,
		mapper:      mapper,
		gracePeriod: gracePeriod,
		now:         biztime.NowUTC,
		logger:      logger,
	}
}

type CreateSubscriptionRequest struct {
	PlanID       string `json:"plan_id" binding:"required,uuid"`
	BillingCycle string `json:"billing_cycle" binding:"required,billingcycle"`
}

// PayOSReturnQuery is what PayOS appends to the return URL after checkout.
type PayOSReturnQuery struct {
	Code      string `form:"code"`
	ID        string `form:"id"`
	Cancel    bool   `form:"cancel"`
	Status    string `form:"status"`
	OrderCode string `form:"orderCode" binding:"required,numeric"`
}

// @Summary		Create or upgrade the school subscription
// @Description	Creates a pending subscription and returns the PayOS checkout link
// @Tags			subscriptions
// @Accept			json
// @Produce		json
// @Security		Bearer
// @Param			subscription	body		CreateSubscriptionRequest						true	"Plan and billing cycle"
// @Success		200				{object}	utils.APIResponse{data=subdto.CheckoutDTO}	"Checkout link created"
// @Failure		400				{object}	utils.APIResponse							"Invalid request or downgrade"
// @Failure		404				{object}	utils.APIResponse							"School or plan not found"
// @Failure		409				{object}	utils.APIResponse							"Same plan already active"
// @Router			/subscriptions [post]
func (h *SubscriptionHandler) CreateSubscription(c *gin.Context) {
	var req CreateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create subscription", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body.", validation.Describe(err)))
		return
	}

	schoolID, err := h.resolveSchoolID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid plan ID."))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateSubscriptionCommand{
		SchoolID:            schoolID,
		PlanID:              planID,
		BillingCycle:        req.BillingCycle,
		RequestingUserID:    c.GetString(constants.ContextKeyUserID),
		RequestingUserEmail: c.GetString(constants.ContextKeyUserEmail),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Checkout link created", &subdto.CheckoutDTO{
		CheckoutURL:    result.CheckoutURL,
		TransactionID:  result.TransactionID.String(),
		SubscriptionID: result.SubscriptionID.String(),
		OrderCode:      result.OrderCode,
		Amount:         result.Amount,
		Currency:       result.Currency,
		StartDate:      result.StartDate,
		EndDate:        result.EndDate,
	})
}

// @Summary		Current school subscription
// @Description	Latest paid subscription of the caller's school with its expiry and grace state
// @Tags			subscriptions
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	utils.APIResponse{data=subdto.CurrentSubscriptionDTO}	"Subscription retrieved"
// @Failure		404	{object}	utils.APIResponse									"No subscription"
// @Router			/subscriptions/current [get]
func (h *SubscriptionHandler) GetCurrentSubscription(c *gin.Context) {
	schoolID, err := h.resolveSchoolID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	sub, err := h.currentUC.Execute(c.Request.Context(), schoolID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", h.mapper.ToCurrentDTO(sub, h.now(), h.gracePeriod))
}

// @Summary		PayOS return
// @Description	Confirms the payment PayOS redirected back with and activates the subscription
// @Tags			subscriptions
// @Produce		json
// @Param			code		query		string											false	"PayOS result code"
// @Param			id			query		string											false	"PayOS payment link id"
// @Param			cancel		query		bool											false	"Payer cancelled"
// @Param			status		query		string											false	"PayOS status"
// @Param			orderCode	query		string											true	"Order code"
// @Success		200			{object}	utils.APIResponse{data=subdto.ConfirmationDTO}	"Subscription activated"
// @Failure		400			{object}	utils.APIResponse								"Bad request"
// @Failure		402			{object}	utils.APIResponse								"Payment failed"
// @Failure		404			{object}	utils.APIResponse								"Unknown order code"
// @Failure		409			{object}	utils.APIResponse								"Payment already confirmed"
// @Router			/subscriptions/payos-return [get]
func (h *SubscriptionHandler) PayOSReturn(c *gin.Context) {
	var q PayOSReturnQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.logger.Warnw("invalid payos return query", "query", c.Request.URL.RawQuery, "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid payment return parameters.", validation.Describe(err)))
		return
	}

	result, err := h.confirmUC.Execute(c.Request.Context(), usecases.ConfirmPaymentReturnCommand{
		OrderCode:     q.OrderCode,
		Code:          q.Code,
		Status:        q.Status,
		PaymentLinkID: q.ID,
		Cancel:        q.Cancel,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription activated", &subdto.ConfirmationDTO{
		SubscriptionID: result.SubscriptionID.String(),
		SchoolID:       result.SchoolID.String(),
		PlanID:         result.PlanID.String(),
		BillingCycle:   result.BillingCycle.String(),
		Status:         result.Status.String(),
		StartDate:      result.StartDate,
		EndDate:        result.EndDate,
		AmountPaid:     result.AmountPaid,
	})
}

// resolveSchoolID prefers the school claim and falls back to the school the
// caller owns, which covers tokens minted before the school was created.
func (h *SubscriptionHandler) resolveSchoolID(c *gin.Context) (uuid.UUID, error) {
	return schoolIDFromContext(c, h.schools)
}

func schoolIDFromContext(c *gin.Context, schools schoolOwnerLookup) (uuid.UUID, error) {
	if raw := strings.TrimSpace(c.GetString(constants.ContextKeySchoolID)); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil || id == uuid.Nil {
			return uuid.Nil, errors.NewNotFoundError("School not found or invalid school ID.")
		}
		return id, nil
	}

	userID := c.GetString(constants.ContextKeyUserID)
	if userID == "" {
		return uuid.Nil, errors.NewUnauthorizedError("Unauthorized. User ID or roles not found.")
	}

	owned, err := schools.ExecuteByOwner(c.Request.Context(), userID)
	if err != nil {
		return uuid.Nil, err
	}
	return owned.ID, nil
}
