package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"edulearn/internal/domain/school"
	"edulearn/internal/infrastructure/persistence/mappers"
	"edulearn/internal/infrastructure/persistence/models"
	"edulearn/internal/shared/db"
)

type SchoolRepository struct {
	db *gorm.DB
}

func NewSchoolRepository(db *gorm.DB) *SchoolRepository {
	return &SchoolRepository{db: db}
}

func (r *SchoolRepository) Create(ctx context.Context, s *school.School) error {
	if err := db.GetTxFromContext(ctx, r.db).Create(mappers.SchoolToModel(s)).Error; err != nil {
		return fmt.Errorf("failed to create school: %w", err)
	}
	return nil
}

func (r *SchoolRepository) Update(ctx context.Context, s *school.School) error {
	model := mappers.SchoolToModel(s)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.SchoolModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]any{
			"name":         model.Name,
			"status":       model.Status,
			"activated_at": model.ActivatedAt,
			"updated_at":   model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update school: %w", result.Error)
	}
	return nil
}

func (r *SchoolRepository) GetByID(ctx context.Context, id uuid.UUID) (*school.School, error) {
	return r.first(ctx, "id = ?", id.String())
}

func (r *SchoolRepository) GetByOwnerUserID(ctx context.Context, ownerUserID string) (*school.School, error) {
	return r.first(ctx, "owner_user_id = ?", ownerUserID)
}

func (r *SchoolRepository) first(ctx context.Context, query string, args ...any) (*school.School, error) {
	var model models.SchoolModel
	if err := db.GetTxFromContext(ctx, r.db).Where(query, args...).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get school: %w", err)
	}
	return mappers.SchoolToDomain(&model)
}
