package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/bloomwell/bloom/internal/types"
)

// userProfileModel maps to the user_profiles table.
type userProfileModel struct {
	ID                 int
	UserID             string `gorm:"uniqueIndex"`
	PreferredName      string
	PersonalityID      int
	DailyStreak        int
	LongestStreak      int
	TotalConversations int
	TotalMessages      int
	WellnessScore      float64
	LastCheckIn        time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (userProfileModel) TableName() string {
	return "user_profiles"
}

// ProfileRepo accesses user profile data.
type ProfileRepo struct {
	db *gorm.DB
}

// NewProfileRepo returns a ProfileRepo.
func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// Get fetches a user's profile. A missing profile returns (nil, nil) so callers
// can fall back to defaults without treating it as a failure.
func (r *ProfileRepo) Get(ctx context.Context, userID string) (*types.UserProfile, error) {
	var record userProfileModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	result := profileFromModel(record)
	return &result, nil
}

// RecordActivity bumps message and conversation totals for one exchange,
// creating the profile row on first contact so counters are never dropped for
// users without one.
func (r *ProfileRepo) RecordActivity(ctx context.Context, userID string, newConversation bool, messages int) error {
	conversations := 0
	if newConversation {
		conversations = 1
	}
	record := userProfileModel{
		UserID:             userID,
		TotalMessages:      messages,
		TotalConversations: conversations,
	}

	assignments := map[string]any{
		"total_messages": gorm.Expr("user_profiles.total_messages + ?", messages),
	}
	if newConversation {
		assignments["total_conversations"] = gorm.Expr("user_profiles.total_conversations + 1")
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(assignments),
		}).
		Create(&record).Error; err != nil {
		return fmt.Errorf("failed to record profile activity: %w", err)
	}
	return nil
}

// UpdateStreak records a daily check-in streak value. The longest streak only
// ever ratchets upward, keeping longest_streak >= daily_streak.
func (r *ProfileRepo) UpdateStreak(ctx context.Context, userID string, streak int) error {
	if streak < 1 {
		// A gap resets the streak to 1, never 0.
		streak = 1
	}
	now := time.Now()
	record := userProfileModel{
		UserID:        userID,
		DailyStreak:   streak,
		LongestStreak: streak,
		LastCheckIn:   now,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"daily_streak":   streak,
				"longest_streak": gorm.Expr("GREATEST(user_profiles.longest_streak, ?)", streak),
				"last_check_in":  now,
			}),
		}).
		Create(&record).Error; err != nil {
		return fmt.Errorf("failed to update streak: %w", err)
	}
	return nil
}

// RecalculateWellness recomputes the wellness score from current engagement
// stats and stores it. Returns the new score.
func (r *ProfileRepo) RecalculateWellness(ctx context.Context, userID string, gratitudeCount int) (float64, error) {
	profile, err := r.Get(ctx, userID)
	if err != nil {
		return 0, err
	}
	if profile == nil {
		return 0, fmt.Errorf("no profile for user %s", userID)
	}

	score := WellnessScore(profile.DailyStreak, profile.TotalConversations, gratitudeCount)
	if err := r.db.WithContext(ctx).
		Model(&userProfileModel{}).
		Where("user_id = ?", userID).
		Update("wellness_score", score).Error; err != nil {
		return 0, fmt.Errorf("failed to store wellness score: %w", err)
	}
	return score, nil
}

// WellnessScore blends streak, conversation, and gratitude activity into a
// [0,100] score: 40 points for a 30-day streak, 30 for 50 conversations, 30 for
// 20 gratitude practices, each capped.
func WellnessScore(streak, conversations, gratitude int) float64 {
	capped := func(value, limit int) float64 {
		if value > limit {
			value = limit
		}
		if value < 0 {
			value = 0
		}
		return float64(value) / float64(limit)
	}
	score := capped(streak, 30)*40 + capped(conversations, 50)*30 + capped(gratitude, 20)*30
	if score > 100 {
		score = 100
	}
	return score
}

func profileFromModel(model userProfileModel) types.UserProfile {
	return types.UserProfile{
		UserID:             model.UserID,
		PreferredName:      model.PreferredName,
		PersonalityID:      model.PersonalityID,
		DailyStreak:        model.DailyStreak,
		LongestStreak:      model.LongestStreak,
		TotalConversations: model.TotalConversations,
		TotalMessages:      model.TotalMessages,
		WellnessScore:      model.WellnessScore,
		LastCheckIn:        model.LastCheckIn,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
}
