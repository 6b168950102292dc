package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/bloomwell/bloom/internal/types"
)

// personalityModel maps to the bot_personalities table.
type personalityModel struct {
	ID               int
	Name             string `gorm:"uniqueIndex"`
	Description      string
	IsDefault        bool
	EmpathyLevel     float64
	HumorLevel       float64
	FormalityLevel   float64
	ProactivityLevel float64

	GreetingMorning   string
	GreetingAfternoon string
	GreetingEvening   string
	FarewellMessage   string
	CrisisResponse    string
	BreathingPrompt   string
	GratitudePrompt   string
}

func (personalityModel) TableName() string {
	return "bot_personalities"
}

// PersonalityRepo accesses bot personality data.
type PersonalityRepo struct {
	db *gorm.DB
}

// NewPersonalityRepo returns a PersonalityRepo.
func NewPersonalityRepo(db *gorm.DB) *PersonalityRepo {
	return &PersonalityRepo{db: db}
}

// ForUser resolves the personality selected on the user's profile, falling back
// to the default personality row.
func (r *PersonalityRepo) ForUser(ctx context.Context, userID string) (*types.BotPersonality, error) {
	var profile userProfileModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load profile for personality: %w", err)
	}

	if profile.PersonalityID != 0 {
		var record personalityModel
		if err := r.db.WithContext(ctx).First(&record, profile.PersonalityID).Error; err == nil {
			result := personalityFromModel(record)
			return &result, nil
		}
	}
	return r.GetDefault(ctx)
}

// GetDefault fetches the personality flagged as default.
func (r *PersonalityRepo) GetDefault(ctx context.Context) (*types.BotPersonality, error) {
	var record personalityModel
	if err := r.db.WithContext(ctx).
		Where("is_default = ?", true).
		Order("id ASC").
		First(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to get default personality: %w", err)
	}
	result := personalityFromModel(record)
	return &result, nil
}

func personalityFromModel(model personalityModel) types.BotPersonality {
	return types.BotPersonality{
		ID:                model.ID,
		Name:              model.Name,
		Description:       model.Description,
		IsDefault:         model.IsDefault,
		EmpathyLevel:      model.EmpathyLevel,
		HumorLevel:        model.HumorLevel,
		FormalityLevel:    model.FormalityLevel,
		ProactivityLevel:  model.ProactivityLevel,
		GreetingMorning:   model.GreetingMorning,
		GreetingAfternoon: model.GreetingAfternoon,
		GreetingEvening:   model.GreetingEvening,
		FarewellMessage:   model.FarewellMessage,
		CrisisResponse:    model.CrisisResponse,
		BreathingPrompt:   model.BreathingPrompt,
		GratitudePrompt:   model.GratitudePrompt,
	}
}
