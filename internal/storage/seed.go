package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seed loads the initial personalities, achievements, and crisis resources.
// Rows are matched by name, so re-running against a populated database is a
// no-op and never clobbers operator edits.
func (s *Store) Seed(ctx context.Context, log zerolog.Logger) error {
	if err := s.seedPersonalities(ctx); err != nil {
		return err
	}
	if err := s.seedAchievements(ctx); err != nil {
		return err
	}
	if err := s.seedResources(ctx); err != nil {
		return err
	}
	log.Info().Msg("seed data loaded")
	return nil
}

func (s *Store) seedPersonalities(ctx context.Context) error {
	rows := []personalityModel{
		{
			Name:              "Bloom",
			Description:       "Empathetic and supportive wellness companion",
			IsDefault:         true,
			EmpathyLevel:      0.9,
			HumorLevel:        0.4,
			FormalityLevel:    0.2,
			ProactivityLevel:  0.7,
			GreetingMorning:   "Good morning, {name}! How are you feeling today?",
			GreetingAfternoon: "Good afternoon, {name}! How's your day going?",
			GreetingEvening:   "Good evening, {name}! How was your day?",
			FarewellMessage:   "Take care, {name}! Come back whenever you want to talk.",
			CrisisResponse:    "{name}, I'm concerned about you. Please reach out for support:\n{resources}",
			BreathingPrompt:   "Let's breathe together, {name}. In for 4... hold for 4... out for 4.",
			GratitudePrompt:   "I love that, {name}. What are three things you're grateful for today?",
		},
		{
			Name:              "Sunny",
			Description:       "Cheerful and optimistic personality",
			EmpathyLevel:      0.8,
			HumorLevel:        0.8,
			FormalityLevel:    0.1,
			ProactivityLevel:  0.8,
			GreetingMorning:   "Morning, {name}! Ready to make today a good one?",
			GreetingAfternoon: "Hey {name}! Hope your afternoon is treating you well!",
			GreetingEvening:   "Evening, {name}! Tell me the best part of your day!",
			FarewellMessage:   "Bye for now, {name}! You've got this!",
			CrisisResponse:    "{name}, I'm really worried about you. Please reach out for support:\n{resources}",
			BreathingPrompt:   "Okay {name}, big breath with me. In... and out. Nice and easy.",
			GratitudePrompt:   "Love it, {name}! What else made you smile today?",
		},
		{
			Name:              "Calm",
			Description:       "Peaceful and mindful personality",
			EmpathyLevel:      0.9,
			HumorLevel:        0.2,
			FormalityLevel:    0.3,
			ProactivityLevel:  0.5,
			GreetingMorning:   "Good morning, {name}. Let's begin the day gently.",
			GreetingAfternoon: "Good afternoon, {name}. Take a moment to notice how you feel.",
			GreetingEvening:   "Good evening, {name}. How is your mind this evening?",
			FarewellMessage:   "Rest well, {name}. I'll be here when you return.",
			CrisisResponse:    "{name}, I'm concerned about you. Please reach out for support:\n{resources}",
			BreathingPrompt:   "Settle in, {name}. Breathe in slowly... hold... and release.",
			GratitudePrompt:   "That's a beautiful thought, {name}. What are you grateful for right now?",
		},
	}
	if err := insertByName(s.db.WithContext(ctx), rows); err != nil {
		return fmt.Errorf("failed to seed personalities: %w", err)
	}
	return nil
}

func (s *Store) seedAchievements(ctx context.Context) error {
	rows := []achievementModel{
		{Name: "First Steps", Description: "Complete your first daily check-in", Icon: "🌱", AchievementType: "streak", Rarity: "common", RequirementValue: 1, Points: 10, IsActive: true},
		{Name: "Getting Started", Description: "Maintain a 3-day check-in streak", Icon: "🌿", AchievementType: "streak", Rarity: "common", RequirementValue: 3, Points: 25, IsActive: true},
		{Name: "Week Warrior", Description: "Maintain a 7-day check-in streak", Icon: "⭐", AchievementType: "streak", Rarity: "rare", RequirementValue: 7, Points: 50, IsActive: true},
		{Name: "Two Week Champion", Description: "Maintain a 14-day check-in streak", Icon: "🏆", AchievementType: "streak", Rarity: "rare", RequirementValue: 14, Points: 100, IsActive: true},
		{Name: "Monthly Master", Description: "Maintain a 30-day check-in streak", Icon: "💎", AchievementType: "streak", Rarity: "epic", RequirementValue: 30, Points: 200, IsActive: true},
		{Name: "Consistency Legend", Description: "Maintain a 100-day check-in streak", Icon: "👑", AchievementType: "streak", Rarity: "legendary", RequirementValue: 100, Points: 500, IsActive: true},

		{Name: "Chatty", Description: "Have your first conversation with Bloom", Icon: "💬", AchievementType: "conversation", Rarity: "common", RequirementValue: 1, Points: 10, IsActive: true},
		{Name: "Social Butterfly", Description: "Have 10 conversations with Bloom", Icon: "🦋", AchievementType: "conversation", Rarity: "common", RequirementValue: 10, Points: 50, IsActive: true},
		{Name: "Deep Thinker", Description: "Have 50 conversations with Bloom", Icon: "🧠", AchievementType: "conversation", Rarity: "rare", RequirementValue: 50, Points: 150, IsActive: true},
		{Name: "Wisdom Seeker", Description: "Have 100 conversations with Bloom", Icon: "🦉", AchievementType: "conversation", Rarity: "epic", RequirementValue: 100, Points: 300, IsActive: true},

		{Name: "Grateful Heart", Description: "Practice gratitude for the first time", Icon: "🙏", AchievementType: "gratitude", Rarity: "common", RequirementValue: 1, Points: 15, IsActive: true},
		{Name: "Thankful Soul", Description: "Practice gratitude 10 times", Icon: "✨", AchievementType: "gratitude", Rarity: "rare", RequirementValue: 10, Points: 75, IsActive: true},
		{Name: "Gratitude Guru", Description: "Practice gratitude 50 times", Icon: "🌟", AchievementType: "gratitude", Rarity: "epic", RequirementValue: 50, Points: 250, IsActive: true},

		{Name: "Marathon Chatter", Description: "Have a conversation with 20+ messages", Icon: "🏃", AchievementType: "engagement", Rarity: "rare", RequirementString: "long_conversation", Points: 100, IsActive: true},
		{Name: "Wellness Warrior", Description: "Achieve 75% wellness score", Icon: "⚡", AchievementType: "wellness", Rarity: "epic", RequirementValue: 75, Points: 200, IsActive: true},
		{Name: "Mindfulness Master", Description: "Complete 25 mindfulness exercises", Icon: "🧘", AchievementType: "mindfulness", Rarity: "epic", RequirementValue: 25, Points: 175, IsActive: true},
	}
	if err := insertByName(s.db.WithContext(ctx), rows); err != nil {
		return fmt.Errorf("failed to seed achievements: %w", err)
	}
	return nil
}

func (s *Store) seedResources(ctx context.Context) error {
	rows := []crisisResourceModel{
		{Name: "National Suicide Prevention Lifeline", PhoneNumber: "988", Website: "https://suicidepreventionlifeline.org/", Description: "24/7 suicide prevention and crisis support", Country: "US", Availability: "24/7", PriorityOrder: 1, IsActive: true},
		{Name: "Crisis Text Line", PhoneNumber: "Text HOME to 741741", Website: "https://www.crisistextline.org/", Description: "24/7 crisis support via text message", Country: "US", Availability: "24/7", PriorityOrder: 2, IsActive: true},
		{Name: "National Alliance on Mental Illness", PhoneNumber: "1-800-950-6264", Website: "https://www.nami.org/", Description: "Mental health support and information", Country: "US", Availability: "Mon-Fri 10am-10pm ET", PriorityOrder: 3, IsActive: true},
		{Name: "SAMHSA National Helpline", PhoneNumber: "1-800-662-4357", Website: "https://www.samhsa.gov/find-help/national-helpline", Description: "Substance abuse and mental health services", Country: "US", Availability: "24/7", PriorityOrder: 4, IsActive: true},
		{Name: "National Domestic Violence Hotline", PhoneNumber: "1-800-799-7233", Website: "https://www.thehotline.org/", Description: "24/7 domestic violence support", Country: "US", Availability: "24/7", PriorityOrder: 5, IsActive: true},
		{Name: "Trans Lifeline", PhoneNumber: "877-565-8860", Website: "https://translifeline.org/", Description: "Crisis support for transgender individuals", Country: "US", Availability: "24/7", PriorityOrder: 6, IsActive: true},
	}
	if err := insertByName(s.db.WithContext(ctx), rows); err != nil {
		return fmt.Errorf("failed to seed crisis resources: %w", err)
	}
	return nil
}

// insertByName inserts rows, skipping any whose unique name already exists.
func insertByName[T any](db *gorm.DB, rows []T) error {
	return db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(&rows).Error
}
