// File: /models/achievement.go
package models

import (
	"time"
)

// Achievement is a badge from the seeded catalog, granted once a cumulative
// criterion is met.
type Achievement struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null;size:255"`
	Criterion string    `json:"criterion" gorm:"not null;size:500"`
	CreatedAt time.Time `json:"created_at"`
}

type UserAchievement struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user_id" gorm:"not null;size:191;uniqueIndex:uk_user_achievements_user_achievement"`
	AchievementID string    `json:"achievement_id" gorm:"not null;size:191;uniqueIndex:uk_user_achievements_user_achievement"`
	GrantedAt     time.Time `json:"granted_at"`

	Achievement Achievement `json:"achievement" gorm:"foreignKey:AchievementID"`
}
