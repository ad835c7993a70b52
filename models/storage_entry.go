package models

import "time"

const (
	StorageScopeLocal   = "local"
	StorageScopeSession = "session"
)

// StorageEntry is one key of a browser session's local or session storage.
type StorageEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"size:64;uniqueIndex:idx_storage_slot" json:"sessionId"`
	Scope     string    `gorm:"size:16;uniqueIndex:idx_storage_slot" json:"scope"`
	Key       string    `gorm:"column:storage_key;size:128;uniqueIndex:idx_storage_slot" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
