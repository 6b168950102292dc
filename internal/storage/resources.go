package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/bloomwell/bloom/internal/types"
)

// crisisResourceModel maps to the crisis_resources table.
type crisisResourceModel struct {
	ID            int
	Name          string `gorm:"uniqueIndex"`
	Description   string
	PhoneNumber   string
	TextNumber    string
	Website       string
	Country       string
	Availability  string
	PriorityOrder int
	IsActive      bool
}

func (crisisResourceModel) TableName() string {
	return "crisis_resources"
}

// ResourceRepo accesses crisis resource data.
type ResourceRepo struct {
	db *gorm.DB
}

// NewResourceRepo returns a ResourceRepo.
func NewResourceRepo(db *gorm.DB) *ResourceRepo {
	return &ResourceRepo{db: db}
}

// ListActive returns active crisis resources, highest priority first. A limit
// of 0 or less returns all of them.
func (r *ResourceRepo) ListActive(ctx context.Context, limit int) ([]types.CrisisResource, error) {
	query := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("priority_order ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []crisisResourceModel
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list crisis resources: %w", err)
	}

	results := make([]types.CrisisResource, 0, len(records))
	for _, record := range records {
		results = append(results, types.CrisisResource{
			ID:            record.ID,
			Name:          record.Name,
			Description:   record.Description,
			PhoneNumber:   record.PhoneNumber,
			TextNumber:    record.TextNumber,
			Website:       record.Website,
			Country:       record.Country,
			Availability:  record.Availability,
			PriorityOrder: record.PriorityOrder,
			IsActive:      record.IsActive,
		})
	}
	return results, nil
}
