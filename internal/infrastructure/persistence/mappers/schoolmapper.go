package mappers

import (
	"fmt"

	"github.com/google/uuid"

	"edulearn/internal/domain/school"
	"edulearn/internal/infrastructure/persistence/models"
)

func SchoolToModel(s *school.School) *models.SchoolModel {
	return &models.SchoolModel{
		ID:          s.ID().String(),
		Name:        s.Name(),
		OwnerUserID: s.OwnerUserID(),
		Status:      string(s.Status()),
		ActivatedAt: s.ActivatedAt(),
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
	}
}

func SchoolToDomain(model *models.SchoolModel) (*school.School, error) {
	id, err := uuid.Parse(model.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid school id %q: %w", model.ID, err)
	}
	return school.ReconstructSchool(id, model.Name, model.OwnerUserID,
		school.EntityStatus(model.Status), model.ActivatedAt, model.CreatedAt, model.UpdatedAt)
}
