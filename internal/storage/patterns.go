package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/bloomwell/bloom/internal/analysis"
	"github.com/bloomwell/bloom/internal/types"
)

// emotionPatternModel maps to the emotion_patterns table. The embedding holds
// per-emotion intensities in the fixed analysis.EmotionOrder layout, so cosine
// distance between rows compares emotional shape rather than text.
type emotionPatternModel struct {
	ID        int
	UserID    string `gorm:"index"`
	Emotion   string
	Intensity float64
	Context   string
	Triggers  json.RawMessage  `gorm:"type:jsonb"`
	Embedding *pgvector.Vector `gorm:"type:vector"`
	Timestamp time.Time        `gorm:"autoCreateTime"`
}

func (emotionPatternModel) TableName() string {
	return "emotion_patterns"
}

// PatternRepo accesses emotion pattern data.
type PatternRepo struct {
	db *gorm.DB
}

// NewPatternRepo returns a PatternRepo.
func NewPatternRepo(db *gorm.DB) *PatternRepo {
	return &PatternRepo{db: db}
}

// Add stores an emotion pattern alongside its intensity embedding.
func (r *PatternRepo) Add(ctx context.Context, pattern *types.EmotionPattern, intensities map[analysis.Emotion]float64) error {
	if pattern == nil {
		return fmt.Errorf("pattern cannot be nil")
	}

	triggers, err := marshalJSON(pattern.Triggers)
	if err != nil {
		return fmt.Errorf("failed to encode pattern triggers: %w", err)
	}

	var vector *pgvector.Vector
	if len(intensities) > 0 {
		v := pgvector.NewVector(embeddingFor(intensities))
		vector = &v
	}
	record := emotionPatternModel{
		UserID:    pattern.UserID,
		Emotion:   pattern.Emotion,
		Intensity: pattern.Intensity,
		Context:   pattern.Context,
		Triggers:  triggers,
		Embedding: vector,
	}
	if !pattern.Timestamp.IsZero() {
		record.Timestamp = pattern.Timestamp
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("failed to insert emotion pattern: %w", err)
	}
	pattern.ID = record.ID
	pattern.Timestamp = record.Timestamp
	return nil
}

// RecentForUser returns a user's latest emotion patterns, newest first.
func (r *PatternRepo) RecentForUser(ctx context.Context, userID string, limit int) ([]types.EmotionPattern, error) {
	var records []emotionPatternModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query emotion patterns: %w", err)
	}

	results := make([]types.EmotionPattern, 0, len(records))
	for _, record := range records {
		results = append(results, patternFromModel(record))
	}
	return results, nil
}

// SearchSimilar finds past moments of the user whose emotional shape is close
// to the given intensities, best match first.
func (r *PatternRepo) SearchSimilar(ctx context.Context, userID string, intensities map[analysis.Emotion]float64, topK int, threshold float64) ([]types.SimilarMoment, error) {
	if len(intensities) == 0 {
		return nil, nil
	}

	query := `
		SELECT emotion, intensity, context, timestamp, 1 - (embedding <=> $1) AS similarity
		FROM emotion_patterns
		WHERE user_id = $2
		  AND embedding IS NOT NULL
		  AND 1 - (embedding <=> $1) > $3
		ORDER BY similarity DESC
		LIMIT $4`

	vector := pgvector.NewVector(embeddingFor(intensities))
	var results []types.SimilarMoment
	if err := r.db.WithContext(ctx).
		Raw(query, vector, userID, threshold, topK).
		Scan(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to search similar moments: %w", err)
	}
	return results, nil
}

// embeddingFor lays intensities out in EmotionOrder so every row uses the same
// dimensions.
func embeddingFor(intensities map[analysis.Emotion]float64) []float32 {
	out := make([]float32, len(analysis.EmotionOrder))
	for i, emotion := range analysis.EmotionOrder {
		out[i] = float32(intensities[emotion])
	}
	return out
}

func patternFromModel(model emotionPatternModel) types.EmotionPattern {
	return types.EmotionPattern{
		ID:        model.ID,
		UserID:    model.UserID,
		Emotion:   model.Emotion,
		Intensity: model.Intensity,
		Context:   model.Context,
		Triggers:  unmarshalStrings(model.Triggers),
		Timestamp: model.Timestamp,
	}
}
