package model

import "time"

// SessionEntry is one persisted client-state key when sessions are stored in MySQL.
type SessionEntry struct {
	Key       string    `gorm:"size:64;primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName pins the table name.
func (SessionEntry) TableName() string { return "session_entries" }
