// File: /models/participation.go
package models

import (
	"time"
)

type ParticipationStatus string

const (
	ParticipationPending   ParticipationStatus = "pending"
	ParticipationApproved  ParticipationStatus = "approved"
	ParticipationCheckedIn ParticipationStatus = "checked_in"
	ParticipationRejected  ParticipationStatus = "rejected"
)

// Participation links a user to an activity they subscribed to. The creator
// never has a row here; creator status is implicit on the activity itself.
type Participation struct {
	ID         uint                `json:"id" gorm:"primaryKey"`
	ActivityID string              `json:"activity_id" gorm:"not null;size:191;uniqueIndex:uk_participations_activity_user"`
	UserID     string              `json:"user_id" gorm:"not null;size:191;uniqueIndex:uk_participations_activity_user"`
	Status     ParticipationStatus `json:"status" gorm:"not null;size:20;default:'pending'"`
	// ConfirmationCode is issued when the participation is approved and
	// consumed by check-in. Never serialized for other participants.
	ConfirmationCode *string    `json:"confirmation_code,omitempty" gorm:"size:32"`
	ConfirmedAt      *time.Time `json:"confirmed_at"`
	CreatedAt        time.Time  `json:"created_at"`

	Activity Activity `json:"-" gorm:"foreignKey:ActivityID"`
	User     User     `json:"user" gorm:"foreignKey:UserID"`
}

// Counted reports whether this participation contributes to the activity's
// participant count.
func (p *Participation) Counted() bool {
	return p.Status == ParticipationApproved || p.Status == ParticipationCheckedIn
}
