package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"edulearn/internal/domain/school"
	"edulearn/internal/shared/biztime"
	apperrors "edulearn/internal/shared/errors"
	"edulearn/internal/shared/logger"
)

type CreateSchoolCommand struct {
	Name        string
	OwnerUserID string
}

type SchoolResult struct {
	ID          uuid.UUID
	Name        string
	OwnerUserID string
	Status      school.EntityStatus
	ActivatedAt *time.Time
	CreatedAt   time.Time
}

func toSchoolResult(s *school.School) *SchoolResult {
	return &SchoolResult{
		ID:          s.ID(),
		Name:        s.Name(),
		OwnerUserID: s.OwnerUserID(),
		Status:      s.Status(),
		ActivatedAt: s.ActivatedAt(),
		CreatedAt:   s.CreatedAt(),
	}
}

// CreateSchoolUseCase is the first-time setup step for a school admin. The
// school stays inactive until its first subscription payment is confirmed.
type CreateSchoolUseCase struct {
	schoolRepo school.Repository
	now        func() time.Time
	logger     logger.Interface
}

func NewCreateSchoolUseCase(schoolRepo school.Repository, logger logger.Interface) *CreateSchoolUseCase {
	return &CreateSchoolUseCase{
		schoolRepo: schoolRepo,
		now:        biztime.NowUTC,
		logger:     logger,
	}
}

func (uc *CreateSchoolUseCase) Execute(ctx context.Context, cmd CreateSchoolCommand) (*SchoolResult, error) {
	uc.logger.Infow("executing create school use case", "owner_user_id", cmd.OwnerUserID)

	existing, err := uc.schoolRepo.GetByOwnerUserID(ctx, cmd.OwnerUserID)
	if err != nil {
		uc.logger.Errorw("failed to look up school by owner", "owner_user_id", cmd.OwnerUserID, "error", err)
		return nil, fmt.Errorf("failed to look up school: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("User already owns a school.", existing.ID().String())
	}

	s, err := school.NewSchool(cmd.Name, cmd.OwnerUserID, uc.now())
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	if err := uc.schoolRepo.Create(ctx, s); err != nil {
		if apperrors.IsDuplicateError(err) {
			return nil, apperrors.NewConflictError("User already owns a school.")
		}
		uc.logger.Errorw("failed to create school", "owner_user_id", cmd.OwnerUserID, "error", err)
		return nil, fmt.Errorf("failed to create school: %w", err)
	}

	uc.logger.Infow("school created", "school_id", s.ID(), "owner_user_id", cmd.OwnerUserID)
	return toSchoolResult(s), nil
}
