package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Store holds the DB pool and repositories.
type Store struct {
	db    *gorm.DB
	cache *redis.Client

	Messages      *CachedMessages
	Sessions      *SessionRepo
	Profiles      *ProfileRepo
	Personalities *PersonalityRepo
	Achievements  *AchievementRepo
	Resources     *ResourceRepo
	Patterns      *PatternRepo
}

// NewStore initializes the PostgreSQL pool, the optional redis cache, and the
// repositories. An empty redisURL disables caching.
func NewStore(ctx context.Context, databaseURL, redisURL string, log zerolog.Logger) (*Store, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	var cache *redis.Client
	if redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("failed to parse redis url: %w", err)
		}
		cache = redis.NewClient(opts)
		if err := cache.Ping(ctx).Err(); err != nil {
			// The cache is an optimization, not a dependency.
			log.Warn().Err(err).Msg("redis unreachable, running without message cache")
			_ = cache.Close()
			cache = nil
		}
	}

	store := &Store{
		db:            db,
		cache:         cache,
		Messages:      NewCachedMessages(NewMessageRepo(db), cache, log),
		Sessions:      NewSessionRepo(db),
		Profiles:      NewProfileRepo(db),
		Personalities: NewPersonalityRepo(db),
		Achievements:  NewAchievementRepo(db),
		Resources:     NewResourceRepo(db),
		Patterns:      NewPatternRepo(db),
	}
	return store, nil
}

// Migrate creates or updates the schema for every repository model.
func (s *Store) Migrate() error {
	if err := s.db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("failed to enable vector extension: %w", err)
	}
	if err := s.db.AutoMigrate(
		&chatMessageModel{},
		&sessionModel{},
		&userProfileModel{},
		&personalityModel{},
		&achievementModel{},
		&userAchievementModel{},
		&crisisResourceModel{},
		&emotionPatternModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Close() {
	if s.cache != nil {
		_ = s.cache.Close()
	}
	if s.db == nil {
		return
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return
	}
	_ = sqlDB.Close()
}
