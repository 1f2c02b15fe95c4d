// File: /models/activity.go
package models

import (
	"time"
)

type Activity struct {
	ID            string     `json:"id" gorm:"primaryKey;size:191"`
	Title         string     `json:"title" gorm:"not null;size:255"`
	Description   string     `json:"description" gorm:"not null;type:text"`
	TypeID        string     `json:"type_id" gorm:"not null;size:191;index"`
	CreatorID     string     `json:"creator_id" gorm:"not null;size:191;index"`
	Address       string     `json:"address" gorm:"size:500"`
	Image         *string    `json:"image" gorm:"size:500"`
	Private       bool       `json:"private" gorm:"default:false"`
	ScheduledDate time.Time  `json:"scheduled_date" gorm:"not null;index"`
	// ParticipantCount tracks approved + checked-in participations only.
	ParticipantCount int        `json:"participant_count" gorm:"default:0"`
	CompletedAt      *time.Time `json:"completed_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	Type         ActivityType    `json:"type" gorm:"foreignKey:TypeID"`
	Creator      User            `json:"creator" gorm:"foreignKey:CreatorID"`
	Participants []Participation `json:"participants" gorm:"foreignKey:ActivityID"`
}

// Concluded reports whether the activity reached its terminal state.
// CompletedAt is set exactly once, by Conclude.
func (a *Activity) Concluded() bool {
	return a.CompletedAt != nil
}
