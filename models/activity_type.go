// File: /models/activity_type.go
package models

import (
	"time"
)

// ActivityType is the static catalog of sports an activity can belong to.
// Seeded once at startup, never mutated through the API.
type ActivityType struct {
	ID          string    `json:"id" gorm:"primaryKey;size:191"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null;size:100"`
	Description string    `json:"description" gorm:"size:500"`
	Image       string    `json:"image" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at"`
}
