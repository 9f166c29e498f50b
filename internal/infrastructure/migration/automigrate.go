package migration

import (
	"fmt"

	"gorm.io/gorm"

	"edulearn/internal/infrastructure/persistence/models"
	"edulearn/internal/shared/logger"
)

// AutoMigrateModels lists every persisted model, parents first.
func AutoMigrateModels() []any {
	return []any{
		&models.SchoolModel{},
		&models.SubscriptionPlanModel{},
		&models.SchoolSubscriptionModel{},
		&models.PaymentTransactionModel{},
	}
}

// GormAutoMigrateStrategy derives the schema from the gorm models. It never
// drops columns, so it is only used for local development and tests.
type GormAutoMigrateStrategy struct {
	logger logger.Interface
}

func NewGormAutoMigrateStrategy(log logger.Interface) *GormAutoMigrateStrategy {
	return &GormAutoMigrateStrategy{logger: log.Named("migration.automigrate")}
}

func (s *GormAutoMigrateStrategy) Migrate(db *gorm.DB) error {
	list := AutoMigrateModels()
	s.logger.Infow("running gorm automigrate", "models", len(list))

	if err := db.AutoMigrate(list...); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	return nil
}

func (s *GormAutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}
