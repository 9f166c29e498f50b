package school

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, school *School) error
	Update(ctx context.Context, school *School) error
	GetByID(ctx context.Context, id uuid.UUID) (*School, error)
	GetByOwnerUserID(ctx context.Context, ownerUserID string) (*School, error)
}
