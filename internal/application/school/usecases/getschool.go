package usecases

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"edulearn/internal/domain/school"
	apperrors "edulearn/internal/shared/errors"
	"edulearn/internal/shared/logger"
)

type GetSchoolUseCase struct {
	schoolRepo school.Repository
	logger     logger.Interface
}

func NewGetSchoolUseCase(schoolRepo school.Repository, logger logger.Interface) *GetSchoolUseCase {
	return &GetSchoolUseCase{schoolRepo: schoolRepo, logger: logger}
}

func (uc *GetSchoolUseCase) Execute(ctx context.Context, id uuid.UUID) (*SchoolResult, error) {
	s, err := uc.schoolRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Errorw("failed to get school", "school_id", id, "error", err)
		return nil, fmt.Errorf("failed to get school: %w", err)
	}
	if s == nil {
		return nil, apperrors.NewNotFoundError("School not found.")
	}
	return toSchoolResult(s), nil
}

// ExecuteByOwner resolves the school a school admin created. Tokens issued
// before the school existed carry no school claim.
func (uc *GetSchoolUseCase) ExecuteByOwner(ctx context.Context, ownerUserID string) (*SchoolResult, error) {
	s, err := uc.schoolRepo.GetByOwnerUserID(ctx, ownerUserID)
	if err != nil {
		uc.logger.Errorw("failed to get school by owner", "owner_user_id", ownerUserID, "error", err)
		return nil, fmt.Errorf("failed to get school by owner: %w", err)
	}
	if s == nil {
		return nil, apperrors.NewNotFoundError("School not found.")
	}
	return toSchoolResult(s), nil
}
