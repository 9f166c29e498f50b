package handlers

import (
	"context"

	"github.com/google/uuid"

	"edulearn/internal/application/school/usecases"
)

type createSchoolUseCase interface {
	Execute(ctx context.Context, cmd usecases.CreateSchoolCommand) (*usecases.SchoolResult, error)
}

type getSchoolUseCase interface {
	Execute(ctx context.Context, id uuid.UUID) (*usecases.SchoolResult, error)
	ExecuteByOwner(ctx context.Context, ownerUserID string) (*usecases.SchoolResult, error)
}
