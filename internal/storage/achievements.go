package storage

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bloomwell/bloom/internal/types"
)

// achievementModel maps to the achievements table.
type achievementModel struct {
	ID                int
	Name              string `gorm:"uniqueIndex"`
	Description       string
	Icon              string
	AchievementType   string `gorm:"column:achievement_type"`
	Rarity            string
	RequirementValue  int
	RequirementString string
	Points            int
	PrerequisiteID    int
	IsActive          bool
	IsHidden          bool
}

func (achievementModel) TableName() string {
	return "achievements"
}

// userAchievementModel maps to the user_achievements table. The composite
// unique index enforces at most one earned record per (user, achievement) pair;
// duplicate inserts are rejected by the database, not by application checks.
type userAchievementModel struct {
	ID            int
	UserID        string `gorm:"uniqueIndex:idx_user_achievement"`
	AchievementID int    `gorm:"uniqueIndex:idx_user_achievement"`
	EarnedAt      time.Time
	IsNew         bool
}

func (userAchievementModel) TableName() string {
	return "user_achievements"
}

// AchievementRepo accesses achievement definitions and earned records.
type AchievementRepo struct {
	db *gorm.DB
}

// NewAchievementRepo returns an AchievementRepo.
func NewAchievementRepo(db *gorm.DB) *AchievementRepo {
	return &AchievementRepo{db: db}
}

// ListActive returns active achievement definitions in a stable order.
func (r *AchievementRepo) ListActive(ctx context.Context) ([]types.Achievement, error) {
	var records []achievementModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}

	results := make([]types.Achievement, 0, len(records))
	for _, record := range records {
		results = append(results, achievementFromModel(record))
	}
	return results, nil
}

// EarnedIDs returns the set of achievement IDs the user already earned.
func (r *AchievementRepo) EarnedIDs(ctx context.Context, userID string) (map[int]bool, error) {
	var ids []int
	if err := r.db.WithContext(ctx).
		Model(&userAchievementModel{}).
		Where("user_id = ?", userID).
		Pluck("achievement_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list earned achievements: %w", err)
	}

	earned := make(map[int]bool, len(ids))
	for _, id := range ids {
		earned[id] = true
	}
	return earned, nil
}

// RecordEarned inserts earned records for the given achievements in one
// transaction. A record that already exists, including one racing in from a
// concurrent evaluation, is skipped as a harmless no-op.
func (r *AchievementRepo) RecordEarned(ctx context.Context, userID string, achievementIDs []int) error {
	if len(achievementIDs) == 0 {
		return nil
	}

	records := make([]userAchievementModel, 0, len(achievementIDs))
	now := time.Now()
	for _, id := range achievementIDs {
		records = append(records, userAchievementModel{
			UserID:        userID,
			AchievementID: id,
			EarnedAt:      now,
			IsNew:         true,
		})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
				DoNothing: true,
			}).
			Create(&records).Error
	})
	if err != nil {
		return fmt.Errorf("failed to record earned achievements: %w", err)
	}
	return nil
}

// EarnedForUser lists a user's earned achievements with their definitions,
// newest first.
func (r *AchievementRepo) EarnedForUser(ctx context.Context, userID string) ([]types.Achievement, error) {
	var records []achievementModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN user_achievements ON user_achievements.achievement_id = achievements.id").
		Where("user_achievements.user_id = ?", userID).
		Order("user_achievements.earned_at DESC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list user achievements: %w", err)
	}

	results := make([]types.Achievement, 0, len(records))
	for _, record := range records {
		results = append(results, achievementFromModel(record))
	}
	return results, nil
}

func achievementFromModel(model achievementModel) types.Achievement {
	return types.Achievement{
		ID:                model.ID,
		Name:              model.Name,
		Description:       model.Description,
		Icon:              model.Icon,
		Type:              types.AchievementType(model.AchievementType),
		Rarity:            model.Rarity,
		RequirementValue:  model.RequirementValue,
		RequirementString: model.RequirementString,
		Points:            model.Points,
		PrerequisiteID:    model.PrerequisiteID,
		IsActive:          model.IsActive,
		IsHidden:          model.IsHidden,
	}
}
