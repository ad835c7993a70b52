package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-frontend/models"
)

// KeyValueStore is what the session-bound stores need from browser-like storage.
type KeyValueStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// StorageService keeps the per-session local and session storage in the database.
type StorageService struct {
	DB *gorm.DB
}

func NewStorageService(db *gorm.DB) *StorageService {
	return &StorageService{DB: db}
}

// Local returns the persistent storage of a session.
func (s *StorageService) Local(sessionID string) *Storage {
	return &Storage{db: s.DB, sessionID: sessionID, scope: models.StorageScopeLocal}
}

// Session returns the storage that only lives as long as the booking flow needs it.
func (s *StorageService) Session(sessionID string) *Storage {
	return &Storage{db: s.DB, sessionID: sessionID, scope: models.StorageScopeSession}
}

// Storage is one scope of one session.
type Storage struct {
	db        *gorm.DB
	sessionID string
	scope     string
}

func (st *Storage) slot() *gorm.DB {
	return st.db.Model(&models.StorageEntry{}).
		Where("session_id = ? AND scope = ?", st.sessionID, st.scope)
}

func (st *Storage) Get(key string) (string, bool, error) {
	var entry models.StorageEntry
	err := st.slot().Where("storage_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s storage key %q: %w", st.scope, key, err)
	}
	return entry.Value, true, nil
}

func (st *Storage) Set(key, value string) error {
	entry := models.StorageEntry{
		SessionID: st.sessionID,
		Scope:     st.scope,
		Key:       key,
		Value:     value,
	}
	err := st.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "scope"}, {Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("write %s storage key %q: %w", st.scope, key, err)
	}
	return nil
}

func (st *Storage) Remove(key string) error {
	err := st.db.Where("session_id = ? AND scope = ? AND storage_key = ?", st.sessionID, st.scope, key).
		Delete(&models.StorageEntry{}).Error
	if err != nil {
		return fmt.Errorf("remove %s storage key %q: %w", st.scope, key, err)
	}
	return nil
}

// GetJSON decodes a stored JSON value into v. The bool is false when the key is absent.
func GetJSON(store KeyValueStore, key string, v interface{}) (bool, error) {
	raw, ok, err := store.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, fmt.Errorf("decode storage key %q: %w", key, err)
	}
	return true, nil
}

func SetJSON(store KeyValueStore, key string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode storage key %q: %w", key, err)
	}
	return store.Set(key, string(b))
}
