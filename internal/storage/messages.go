package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/bloomwell/bloom/internal/types"
)

// chatMessageModel maps to the chat_messages table.
type chatMessageModel struct {
	ID             int
	UserID         string `gorm:"index"`
	SessionID      string `gorm:"index"`
	Sender         string
	Message        string
	Category       string
	Sentiment      float64
	Emotions       json.RawMessage `gorm:"type:jsonb"`
	Keywords       json.RawMessage `gorm:"type:jsonb"`
	ResponseTimeMS int64           `gorm:"column:response_time_ms"`
	Timestamp      time.Time       `gorm:"autoCreateTime"`
}

func (chatMessageModel) TableName() string {
	return "chat_messages"
}

// MessageRepo accesses chat message data.
type MessageRepo struct {
	db *gorm.DB
}

// NewMessageRepo returns a MessageRepo.
func NewMessageRepo(db *gorm.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// Add inserts a message and backfills its generated ID and timestamp.
func (r *MessageRepo) Add(ctx context.Context, msg *types.ChatMessage) error {
	if msg == nil {
		return fmt.Errorf("message cannot be nil")
	}
	emotions, err := marshalJSON(msg.Emotions)
	if err != nil {
		return fmt.Errorf("failed to encode message emotions: %w", err)
	}
	keywords, err := marshalJSON(msg.Keywords)
	if err != nil {
		return fmt.Errorf("failed to encode message keywords: %w", err)
	}

	record := chatMessageModel{
		UserID:         msg.UserID,
		SessionID:      msg.SessionID,
		Sender:         string(msg.Sender),
		Message:        msg.Message,
		Category:       string(msg.Category),
		Sentiment:      msg.Sentiment,
		Emotions:       emotions,
		Keywords:       keywords,
		ResponseTimeMS: msg.ResponseTimeMS,
	}
	if !msg.Timestamp.IsZero() {
		record.Timestamp = msg.Timestamp
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}
	msg.ID = record.ID
	msg.Timestamp = record.Timestamp
	return nil
}

// Recent returns the last messages of a session, oldest first.
func (r *MessageRepo) Recent(ctx context.Context, sessionID string, limit int) ([]types.ChatMessage, error) {
	var records []chatMessageModel
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query recent messages: %w", err)
	}

	results := make([]types.ChatMessage, 0, len(records))
	for _, record := range records {
		results = append(results, chatMessageFromModel(record))
	}

	// Oldest -> newest
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
	return results, nil
}

// HistoryForUser returns every message of a user, oldest first.
func (r *MessageRepo) HistoryForUser(ctx context.Context, userID string) ([]types.ChatMessage, error) {
	var records []chatMessageModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query chat history: %w", err)
	}

	results := make([]types.ChatMessage, 0, len(records))
	for _, record := range records {
		results = append(results, chatMessageFromModel(record))
	}
	return results, nil
}

// ClearForUser deletes a user's chat history.
func (r *MessageRepo) ClearForUser(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&chatMessageModel{}).Error; err != nil {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}
	return nil
}

// CountGratitudeMessages counts a user's gratitude-category messages.
func (r *MessageRepo) CountGratitudeMessages(ctx context.Context, userID string) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&chatMessageModel{}).
		Where("user_id = ?", userID).
		Where("category = ?", string(types.CategoryGratitude)).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count gratitude messages: %w", err)
	}
	return int(count), nil
}

func chatMessageFromModel(model chatMessageModel) types.ChatMessage {
	return types.ChatMessage{
		ID:             model.ID,
		UserID:         model.UserID,
		SessionID:      model.SessionID,
		Sender:         types.Sender(model.Sender),
		Message:        model.Message,
		Category:       types.Category(model.Category),
		Sentiment:      model.Sentiment,
		Emotions:       unmarshalStrings(model.Emotions),
		Keywords:       unmarshalStrings(model.Keywords),
		ResponseTimeMS: model.ResponseTimeMS,
		Timestamp:      model.Timestamp,
	}
}

func marshalJSON(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func unmarshalStrings(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
