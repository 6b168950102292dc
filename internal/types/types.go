// Package types holds the persisted domain entities shared across the service.
package types

import "time"

// Sender identifies who authored a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Category classifies a chat message by the kind of support it carries.
type Category string

const (
	CategoryGeneral    Category = "general"
	CategoryCrisis     Category = "crisis"
	CategoryBreathing  Category = "breathing"
	CategoryTherapy    Category = "therapy"
	CategoryGratitude  Category = "gratitude"
	CategoryHumor      Category = "humor"
	CategoryMotivation Category = "motivation"
)

// ChatMessage is one message in a conversation session.
type ChatMessage struct {
	ID             int       `json:"id"`
	UserID         string    `json:"user_id"`
	SessionID      string    `json:"session_id"`
	Sender         Sender    `json:"sender"`
	Message        string    `json:"message"`
	Category       Category  `json:"category"`
	Sentiment      float64   `json:"sentiment"`
	Emotions       []string  `json:"emotions,omitempty"`
	Keywords       []string  `json:"keywords,omitempty"`
	ResponseTimeMS int64     `json:"response_time_ms,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// ConversationSession groups messages exchanged in one sitting.
type ConversationSession struct {
	ID           int       `json:"id"`
	SessionID    string    `json:"session_id"`
	UserID       string    `json:"user_id"`
	Title        string    `json:"title"`
	MessageCount int       `json:"message_count"`
	IsActive     bool      `json:"is_active"`
	StartTime    time.Time `json:"start_time"`
}

// UserProfile carries the engagement statistics the support engine reads and updates.
// LongestStreak never drops below DailyStreak; the streak itself resets to 1 on a
// missed day, never to 0.
type UserProfile struct {
	UserID             string    `json:"user_id"`
	PreferredName      string    `json:"preferred_name"`
	PersonalityID      int       `json:"personality_id"`
	DailyStreak        int       `json:"daily_streak"`
	LongestStreak      int       `json:"longest_streak"`
	TotalConversations int       `json:"total_conversations"`
	TotalMessages      int       `json:"total_messages"`
	WellnessScore      float64   `json:"wellness_score"`
	LastCheckIn        time.Time `json:"last_check_in"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// BotPersonality configures how the bot phrases its replies.
// Template fields may contain {name} and {resources} placeholders.
type BotPersonality struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	IsDefault        bool    `json:"is_default"`
	EmpathyLevel     float64 `json:"empathy_level"`
	HumorLevel       float64 `json:"humor_level"`
	FormalityLevel   float64 `json:"formality_level"`
	ProactivityLevel float64 `json:"proactivity_level"`

	GreetingMorning   string `json:"greeting_morning"`
	GreetingAfternoon string `json:"greeting_afternoon"`
	GreetingEvening   string `json:"greeting_evening"`
	FarewellMessage   string `json:"farewell_message"`
	CrisisResponse    string `json:"crisis_response"`
	BreathingPrompt   string `json:"breathing_prompt"`
	GratitudePrompt   string `json:"gratitude_prompt"`
}

// AchievementType groups achievement definitions by the behavior they reward.
type AchievementType string

const (
	AchievementStreak       AchievementType = "streak"
	AchievementConversation AchievementType = "conversation"
	AchievementGratitude    AchievementType = "gratitude"
	AchievementEngagement   AchievementType = "engagement"
	AchievementWellness     AchievementType = "wellness"
	AchievementMindfulness  AchievementType = "mindfulness"
	AchievementSocial       AchievementType = "social"
)

// Achievement is a configured gamification badge definition.
// Either RequirementValue or RequirementString is set, not both.
type Achievement struct {
	ID                int             `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Icon              string          `json:"icon"`
	Type              AchievementType `json:"type"`
	Rarity            string          `json:"rarity"`
	RequirementValue  int             `json:"requirement_value"`
	RequirementString string          `json:"requirement_string,omitempty"`
	Points            int             `json:"points"`
	PrerequisiteID    int             `json:"prerequisite_id,omitempty"`
	IsActive          bool            `json:"is_active"`
	IsHidden          bool            `json:"is_hidden"`
}

// UserAchievement records that a user earned an achievement. At most one record
// exists per (user, achievement) pair.
type UserAchievement struct {
	ID            int       `json:"id"`
	UserID        string    `json:"user_id"`
	AchievementID int       `json:"achievement_id"`
	EarnedAt      time.Time `json:"earned_at"`
	IsNew         bool      `json:"is_new"`
}

// CrisisResource is a hotline or support service surfaced in crisis replies.
type CrisisResource struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	PhoneNumber   string `json:"phone_number"`
	TextNumber    string `json:"text_number,omitempty"`
	Website       string `json:"website"`
	Description   string `json:"description"`
	Country       string `json:"country"`
	Availability  string `json:"availability"`
	PriorityOrder int    `json:"priority_order"`
	IsActive      bool   `json:"is_active"`
}

// EmotionPattern is one observed emotional moment, kept for trend insights.
type EmotionPattern struct {
	ID        int       `json:"id"`
	UserID    string    `json:"user_id"`
	Emotion   string    `json:"emotion"`
	Intensity float64   `json:"intensity"`
	Context   string    `json:"context"`
	Triggers  []string  `json:"triggers,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// SimilarMoment is an emotion pattern retrieved by emotional similarity.
type SimilarMoment struct {
	Emotion    string    `json:"emotion"`
	Intensity  float64   `json:"intensity"`
	Context    string    `json:"context"`
	Similarity float64   `json:"similarity"`
	Timestamp  time.Time `json:"timestamp"`
}
