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

// sessionModel maps to the conversation_sessions table.
type sessionModel struct {
	ID           int
	SessionID    string `gorm:"uniqueIndex"`
	UserID       string `gorm:"index"`
	Title        string
	MessageCount int
	IsActive     bool
	StartTime    time.Time `gorm:"autoCreateTime"`
}

func (sessionModel) TableName() string {
	return "conversation_sessions"
}

// SessionRepo accesses conversation session data.
type SessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo returns a SessionRepo.
func NewSessionRepo(db *gorm.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// GetOrCreate loads a session by its external ID, creating it when absent. The
// second return reports whether this call created it.
func (r *SessionRepo) GetOrCreate(ctx context.Context, userID, sessionID string) (*types.ConversationSession, bool, error) {
	var record sessionModel
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&record).Error
	if err == nil {
		result := sessionFromModel(record)
		return &result, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to query session: %w", err)
	}

	record = sessionModel{
		SessionID: sessionID,
		UserID:    userID,
		IsActive:  true,
	}
	// A concurrent create for the same session ID wins quietly; re-read after.
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "session_id"}}, DoNothing: true}).
		Create(&record).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create session: %w", err)
	}
	if record.ID == 0 {
		if err := r.db.WithContext(ctx).
			Where("session_id = ?", sessionID).
			First(&record).Error; err != nil {
			return nil, false, fmt.Errorf("failed to reload session: %w", err)
		}
		result := sessionFromModel(record)
		return &result, false, nil
	}

	result := sessionFromModel(record)
	return &result, true, nil
}

// AddMessages bumps the message counter and returns the new count. Last write
// wins under concurrent sends in the same session.
func (r *SessionRepo) AddMessages(ctx context.Context, sessionID string, delta int) (int, error) {
	if err := r.db.WithContext(ctx).
		Model(&sessionModel{}).
		Where("session_id = ?", sessionID).
		UpdateColumn("message_count", gorm.Expr("message_count + ?", delta)).Error; err != nil {
		return 0, fmt.Errorf("failed to update session message count: %w", err)
	}

	var record sessionModel
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&record).Error; err != nil {
		return 0, fmt.Errorf("failed to reload session count: %w", err)
	}
	return record.MessageCount, nil
}

// End marks a session inactive.
func (r *SessionRepo) End(ctx context.Context, sessionID string) error {
	if err := r.db.WithContext(ctx).
		Model(&sessionModel{}).
		Where("session_id = ?", sessionID).
		Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

func sessionFromModel(model sessionModel) types.ConversationSession {
	return types.ConversationSession{
		ID:           model.ID,
		SessionID:    model.SessionID,
		UserID:       model.UserID,
		Title:        model.Title,
		MessageCount: model.MessageCount,
		IsActive:     model.IsActive,
		StartTime:    model.StartTime,
	}
}
