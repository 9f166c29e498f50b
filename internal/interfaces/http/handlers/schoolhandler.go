package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"edulearn/internal/application/school/usecases"
	"edulearn/internal/interfaces/http/validation"
	"edulearn/internal/shared/constants"
	"edulearn/internal/shared/errors"
	"edulearn/internal/shared/logger"
	"edulearn/internal/shared/utils"
)

type SchoolHandler struct {
	createUC createSchoolUseCase
	getUC    getSchoolUseCase
	logger   logger.Interface
}

func NewSchoolHandler(createUC createSchoolUseCase, getUC getSchoolUseCase, logger logger.Interface) *SchoolHandler {
	return &SchoolHandler{
		createUC: createUC,
		getUC:    getUC,
		logger:   logger,
	}
}

type CreateSchoolRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}

type SchoolResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	OwnerUserID string     `json:"owner_user_id"`
	Status      string     `json:"status"`
	ActivatedAt *time.Time `json:"activated_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toSchoolResponse(r *usecases.SchoolResult) *SchoolResponse {
	return &SchoolResponse{
		ID:          r.ID.String(),
		Name:        r.Name,
		OwnerUserID: r.OwnerUserID,
		Status:      string(r.Status),
		ActivatedAt: r.ActivatedAt,
		CreatedAt:   r.CreatedAt,
	}
}

// @Summary		Create school
// @Description	First-time setup for a school admin. The school is inactive until its first payment.
// @Tags			schools
// @Accept			json
// @Produce		json
// @Security		Bearer
// @Param			school	body		CreateSchoolRequest						true	"School data"
// @Success		201		{object}	utils.APIResponse{data=SchoolResponse}	"School created"
// @Failure		400		{object}	utils.APIResponse						"Bad request"
// @Failure		409		{object}	utils.APIResponse						"Caller already owns a school"
// @Router			/schools [post]
func (h *SchoolHandler) CreateSchool(c *gin.Context) {
	var req CreateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create school", "error", err)
		utils.ErrorResponseWithError(c, errors.NewValidationError("Invalid request body.", validation.Describe(err)))
		return
	}

	result, err := h.createUC.Execute(c.Request.Context(), usecases.CreateSchoolCommand{
		Name:        req.Name,
		OwnerUserID: c.GetString(constants.ContextKeyUserID),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, toSchoolResponse(result), "School created")
}

// @Summary		Current school
// @Tags			schools
// @Produce		json
// @Security		Bearer
// @Success		200	{object}	utils.APIResponse{data=SchoolResponse}	"School retrieved"
// @Failure		404	{object}	utils.APIResponse						"School not found"
// @Router			/schools/me [get]
func (h *SchoolHandler) GetMySchool(c *gin.Context) {
	var (
		result *usecases.SchoolResult
		err    error
	)

	if raw := strings.TrimSpace(c.GetString(constants.ContextKeySchoolID)); raw != "" {
		id, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			utils.ErrorResponseWithError(c, errors.NewNotFoundError("School not found or invalid school ID."))
			return
		}
		result, err = h.getUC.Execute(c.Request.Context(), id)
	} else {
		result, err = h.getUC.ExecuteByOwner(c.Request.Context(), c.GetString(constants.ContextKeyUserID))
	}
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", toSchoolResponse(result))
}
