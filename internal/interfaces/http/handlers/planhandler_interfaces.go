package handlers

import (
	"context"

	subdto "edulearn/internal/application/subscription/dto"
)

type listPlansUseCase interface {
	Execute(ctx context.Context) ([]*subdto.PlanDTO, error)
}
