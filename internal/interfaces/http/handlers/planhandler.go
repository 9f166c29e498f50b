package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	subdto "edulearn/internal/application/subscription/dto"
	"edulearn/internal/shared/logger"
	"edulearn/internal/shared/utils"
)

var _ = subdto.PlanDTO{}

type PlanHandler struct {
	listPlansUC listPlansUseCase
	logger      logger.Interface
}

func NewPlanHandler(listPlansUC listPlansUseCase, logger logger.Interface) *PlanHandler {
	return &PlanHandler{
		listPlansUC: listPlansUC,
		logger:      logger,
	}
}

// @Summary		List plans
// @Description	Active subscription plans ordered for display, prices in VND
// @Tags			plans
// @Produce		json
// @Success		200	{object}	utils.APIResponse{data=[]subdto.PlanDTO}	"Plans retrieved successfully"
// @Failure		500	{object}	utils.APIResponse							"Internal server error"
// @Router			/plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.listPlansUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", plans)
}
