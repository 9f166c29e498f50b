// Package seeds loads reference data from YAML into the database.
package seeds

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"edulearn/internal/domain/subscription"
	vo "edulearn/internal/domain/subscription/valueobjects"
	"edulearn/internal/shared/logger"
)

type PlanEntry struct {
	Code         string       `yaml:"code"`
	Name         string       `yaml:"name"`
	Description  string       `yaml:"description"`
	MonthlyPrice int64        `yaml:"monthly_price"`
	YearlyPrice  int64        `yaml:"yearly_price"`
	Currency     string       `yaml:"currency"`
	Caps         vo.UsageCaps `yaml:"caps"`
	SortOrder    int          `yaml:"sort_order"`
	Archived     bool         `yaml:"archived"`
}

type PlanCatalog struct {
	Plans []PlanEntry `yaml:"plans"`
}

// LoadPlanCatalog parses a catalog file and rejects duplicate codes.
func LoadPlanCatalog(path string) (*PlanCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan catalog %s: %w", path, err)
	}
	return ParsePlanCatalog(raw)
}

func ParsePlanCatalog(raw []byte) (*PlanCatalog, error) {
	var catalog PlanCatalog
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse plan catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(catalog.Plans))
	for _, entry := range catalog.Plans {
		if _, dup := seen[entry.Code]; dup {
			return nil, fmt.Errorf("duplicate plan code in catalog: %s", entry.Code)
		}
		seen[entry.Code] = struct{}{}
	}
	return &catalog, nil
}

// PlanSeeder writes catalog entries through the plan repository. Existing plans
// keep their IDs so subscriptions referencing them stay valid.
type PlanSeeder struct {
	planRepo subscription.PlanRepository
	logger   logger.Interface
}

func NewPlanSeeder(planRepo subscription.PlanRepository, log logger.Interface) *PlanSeeder {
	return &PlanSeeder{planRepo: planRepo, logger: log}
}

// Seed returns how many entries were created and updated.
func (s *PlanSeeder) Seed(ctx context.Context, catalog *PlanCatalog) (created, updated int, err error) {
	for _, entry := range catalog.Plans {
		status := vo.PlanStatusActive
		if entry.Archived {
			status = vo.PlanStatusArchived
		}

		existing, err := s.planRepo.GetByCode(ctx, entry.Code)
		if err != nil {
			return created, updated, fmt.Errorf("failed to look up plan %s: %w", entry.Code, err)
		}

		if existing != nil {
			existing.UpdateCatalog(entry.Name, entry.Description, entry.MonthlyPrice, entry.YearlyPrice,
				entry.Caps, status, entry.SortOrder)
			if err := s.planRepo.Upsert(ctx, existing); err != nil {
				return created, updated, err
			}
			updated++
			continue
		}

		plan, err := subscription.NewSubscriptionPlan(entry.Code, entry.Name, entry.Description,
			entry.MonthlyPrice, entry.YearlyPrice, entry.Currency, entry.Caps, entry.SortOrder)
		if err != nil {
			return created, updated, fmt.Errorf("invalid catalog entry %s: %w", entry.Code, err)
		}
		if entry.Archived {
			plan.Archive()
		}
		if err := s.planRepo.Upsert(ctx, plan); err != nil {
			return created, updated, err
		}
		created++
	}

	s.logger.Infow("plan catalog seeded", "created", created, "updated", updated)
	return created, updated, nil
}
