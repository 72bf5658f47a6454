package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Snapshot struct {
	Id        int64          `gorm:"primaryKey;autoIncrement"`
	UserId    uuid.UUID      `gorm:"type:uuid;not null;index"` // Per-user history isolation
	Ts        time.Time      `gorm:"not null;index"`
	Following datatypes.JSON `gorm:"not null"` // Sorted array of unique usernames
	Followers datatypes.JSON `gorm:"not null"`
}

func (Snapshot) TableName() string {
	return "snapshots"
}
