package storage

import (
	"fmt"
	"log/slog"

	"moviedeck/internal/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type entry struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"column:value"`
}

func (entry) TableName() string { return "local_state" }

// GormStore persists client state in a single key-value table, sqlite by
// default (postgres by DSN, same as every other database in this module).
type GormStore struct {
	db  *gorm.DB
	log *slog.Logger
}

func Open(dsn string, log *slog.Logger) (*GormStore, error) {
	db, err := database.Connect(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open local state: %w", err)
	}
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate local state: %w", err)
	}
	return &GormStore{db: db, log: log}, nil
}

func (s *GormStore) Token() (string, bool) {
	return s.get(keyToken)
}

func (s *GormStore) SetToken(token string) error {
	return s.set(keyToken, token)
}

func (s *GormStore) DeleteToken() error {
	return s.delete(keyToken)
}

func (s *GormStore) FavoriteIDs() []string {
	raw, ok := s.get(keyFavoriteIDs)
	if !ok {
		return nil
	}
	ids := decodeIDs(raw)
	if ids == nil {
		s.log.Warn("discarding unreadable favorite ids")
	}
	return ids
}

func (s *GormStore) SetFavoriteIDs(ids []string) error {
	return s.set(keyFavoriteIDs, encodeIDs(ids))
}

func (s *GormStore) DeleteFavoriteIDs() error {
	return s.delete(keyFavoriteIDs)
}

func (s *GormStore) get(key string) (string, bool) {
	var e entry
	if err := s.db.Where("key = ?", key).First(&e).Error; err != nil {
		return "", false
	}
	return e.Value, true
}

func (s *GormStore) set(key, value string) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&entry{Key: key, Value: value}).Error
}

func (s *GormStore) delete(key string) error {
	return s.db.Where("key = ?", key).Delete(&entry{}).Error
}
