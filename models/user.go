// File: /models/user.go
package models

import (
	"time"
)

type User struct {
	ID       string  `json:"id" gorm:"primaryKey;size:191"`
	Name     string  `json:"name" gorm:"not null;size:255"`
	Email    string  `json:"email" gorm:"uniqueIndex;not null;size:255"`
	CPF      string  `json:"cpf" gorm:"uniqueIndex;not null;size:14"`
	Password string  `json:"-" gorm:"not null;size:255"`
	Avatar   *string `json:"avatar" gorm:"size:500"`
	Level    int     `json:"level" gorm:"default:1"`
	XP       int     `json:"xp" gorm:"default:0"`

	// Cumulative counters used by the achievement criteria. They only ever
	// grow, so earned achievements stay valid after an activity is deleted.
	ActivitiesCreated   int `json:"activities_created" gorm:"default:0"`
	ActivitiesConcluded int `json:"activities_concluded" gorm:"default:0"`
	CheckInsCount       int `json:"check_ins_count" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Preferences       []ActivityType    `json:"preferences" gorm:"many2many:user_preferences"`
	Achievements      []UserAchievement `json:"achievements" gorm:"foreignKey:UserID"`
	CreatedActivities []Activity        `json:"created_activities" gorm:"foreignKey:CreatorID"`
}

// CreatorSummary is the denormalized creator block embedded in activity
// responses so list endpoints never expose the full user record.
type CreatorSummary struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Avatar *string `json:"avatar"`
}

func (u *User) Summary() CreatorSummary {
	return CreatorSummary{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}
