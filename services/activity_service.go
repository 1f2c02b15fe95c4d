// File: /services/activity_service.go
package services

import (
	"crypto/rand"
	"errors"
	"math/big"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fitlink-api/models"
)

const (
	titleMinLen       = 4
	titleMaxLen       = 80
	descriptionMinLen = 4
	descriptionMaxLen = 500
)

// ActivityService is the lifecycle engine. Every mutating operation runs in
// a single transaction with row locks on the touched activity, so concurrent
// subscribes, approvals and check-ins never produce lost participant counts.
type ActivityService struct {
	db           *gorm.DB
	achievements *AchievementService
}

func NewActivityService(db *gorm.DB, achievements *AchievementService) *ActivityService {
	return &ActivityService{db: db, achievements: achievements}
}

type ActivityInput struct {
	Title         string
	Description   string
	TypeID        string
	Address       string
	Image         string
	Private       bool
	ScheduledDate time.Time
}

// Create validates the input and persists a new open activity owned by
// creatorID.
func (s *ActivityService) Create(creatorID string, in ActivityInput) (*models.Activity, error) {
	var activity models.Activity

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var creator models.User
		if err := tx.First(&creator, "id = ?", creatorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError("User not found")
			}
			return err
		}

		if err := s.validateInput(tx, in); err != nil {
			return err
		}

		activity = models.Activity{
			ID:            uuid.New().String(),
			Title:         in.Title,
			Description:   in.Description,
			TypeID:        in.TypeID,
			CreatorID:     creatorID,
			Address:       in.Address,
			Private:       in.Private,
			ScheduledDate: in.ScheduledDate,
		}
		if in.Image != "" {
			activity.Image = &in.Image
		}

		if err := tx.Create(&activity).Error; err != nil {
			return err
		}

		creator.ActivitiesCreated++
		if err := tx.Model(&creator).UpdateColumn("activities_created", creator.ActivitiesCreated).Error; err != nil {
			return err
		}

		return s.achievements.AfterActivityCreated(tx, &creator)
	})
	if err != nil {
		return nil, err
	}

	return &activity, nil
}

// Subscribe creates a participation for userID. Public activities approve
// immediately and issue the confirmation code; private ones wait for the
// creator.
func (s *ActivityService) Subscribe(activityID, userID string) (*models.Participation, error) {
	var participation models.Participation

	err := s.db.Transaction(func(tx *gorm.DB) error {
		activity, err := s.lockActivity(tx, activityID)
		if err != nil {
			return err
		}

		if activity.Concluded() {
			return InvalidStateError("Activity is already concluded")
		}
		if activity.CreatorID == userID {
			return ConflictError("The creator cannot subscribe to their own activity")
		}

		var existing models.Participation
		if err := tx.Where("activity_id = ? AND user_id = ?", activityID, userID).First(&existing).Error; err == nil {
			return ConflictError("Already subscribed to this activity")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError("User not found")
			}
			return err
		}

		participation = models.Participation{
			ActivityID: activityID,
			UserID:     userID,
			Status:     models.ParticipationPending,
		}

		if !activity.Private {
			code, err := generateConfirmationCode()
			if err != nil {
				return err
			}
			participation.Status = models.ParticipationApproved
			participation.ConfirmationCode = &code
		}

		if err := tx.Create(&participation).Error; err != nil {
			return err
		}

		if participation.Counted() {
			return s.adjustParticipantCount(tx, activityID, 1)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &participation, nil
}

// Approve resolves a pending participation. Only the creator may call it.
func (s *ActivityService) Approve(activityID, creatorID, participantID string, approved bool) (*models.Participation, error) {
	var participation models.Participation

	err := s.db.Transaction(func(tx *gorm.DB) error {
		activity, err := s.lockActivity(tx, activityID)
		if err != nil {
			return err
		}
		if activity.CreatorID != creatorID {
			return ForbiddenError("Only the creator can approve participants")
		}

		if err := tx.Where("activity_id = ? AND user_id = ? AND status = ?",
			activityID, participantID, models.ParticipationPending).First(&participation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError("No pending subscription for this participant")
			}
			return err
		}

		if !approved {
			participation.Status = models.ParticipationRejected
			return tx.Model(&participation).Update("status", participation.Status).Error
		}

		code, err := generateConfirmationCode()
		if err != nil {
			return err
		}
		participation.Status = models.ParticipationApproved
		participation.ConfirmationCode = &code

		if err := tx.Model(&participation).Updates(map[string]interface{}{
			"status":            participation.Status,
			"confirmation_code": code,
		}).Error; err != nil {
			return err
		}

		return s.adjustParticipantCount(tx, activityID, 1)
	})
	if err != nil {
		return nil, err
	}

	return &participation, nil
}

// CheckIn consumes the confirmation code, proving attendance. A second
// check-in with the same code is a conflict.
func (s *ActivityService) CheckIn(activityID, userID, code string) (*models.Participation, error) {
	var participation models.Participation

	err := s.db.Transaction(func(tx *gorm.DB) error {
		activity, err := s.lockActivity(tx, activityID)
		if err != nil {
			return err
		}
		if activity.Concluded() {
			return InvalidStateError("Activity is already concluded")
		}

		if err := tx.Where("activity_id = ? AND user_id = ?", activityID, userID).First(&participation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError("Subscription not found")
			}
			return err
		}

		if participation.Status == models.ParticipationCheckedIn {
			return ConflictError("Confirmation code already used")
		}
		if participation.Status != models.ParticipationApproved {
			return ForbiddenError("Subscription is not approved")
		}
		if participation.ConfirmationCode == nil || *participation.ConfirmationCode != code {
			return ForbiddenError("Invalid confirmation code")
		}

		now := time.Now()
		participation.Status = models.ParticipationCheckedIn
		participation.ConfirmedAt = &now

		if err := tx.Model(&participation).Updates(map[string]interface{}{
			"status":       participation.Status,
			"confirmed_at": now,
		}).Error; err != nil {
			return err
		}

		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return err
		}
		user.CheckInsCount++
		if err := tx.Model(&user).UpdateColumn("check_ins_count", user.CheckInsCount).Error; err != nil {
			return err
		}
		if err := s.achievements.AddXP(tx, &user, XPCheckIn); err != nil {
			return err
		}

		return s.achievements.AfterCheckIn(tx, &user)
	})
	if err != nil {
		return nil, err
	}

	return &participation, nil
}

// Unsubscribe removes the caller's own participation in any state.
func (s *ActivityService) Unsubscribe(activityID, userID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		activity, err := s.lockActivity(tx, activityID)
		if err != nil {
			return err
		}
		if activity.CreatorID == userID {
			return ConflictError("The creator cannot unsubscribe from their own activity")
		}

		var participation models.Participation
		if err := tx.Where("activity_id = ? AND user_id = ?", activityID, userID).First(&participation).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NotFoundError("Subscription not found")
			}
			return err
		}

		if err := tx.Delete(&participation).Error; err != nil {
			return err
		}

		if participation.Counted() {
			return s.adjustParticipantCount(tx, activityID, -1)
		}
		return nil
	})
}

// Conclude sets the terminal completed state. completedAt is written exactly
// once; a second call fails.
func (s *ActivityService) Conclude(activityID, creatorID string) (*models.Activity, error) {
	var activity *models.Activity

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		activity, err = s.lockActivity(tx, activityID)
		if err != nil {
			return err
		}
		if activity.CreatorID != creatorID {
			return ForbiddenError("Only the creator can conclude the activity")
		}
		if activity.Concluded() {
			return InvalidStateError("Activity is already concluded")
		}

		now := time.Now()
		activity.CompletedAt = &now
		if err := tx.Model(activity).Update("completed_at", now).Error; err != nil {
			return err
		}

		var creator models.User
		if err := tx.First(&creator, "id = ?", creatorID).Error; err != nil {
			return err
		}
		creator.ActivitiesConcluded++
		if err := tx.Model(&creator).UpdateColumn("activities_concluded", creator.ActivitiesConcluded).Error; err != nil {
			return err
		}
		if err := s.achievements.AddXP(tx, &creator, XPConclusion); err != nil {
			return err
		}

		return s.achievements.AfterConclusion(tx, &creator)
	})
	if err != nil {
		return nil, err
	}

	return activity, nil
}

// Delete hard-deletes the activity and cascades its participations. Concluded
// activities are kept for history.
func (s *ActivityService) Delete(activityID, creatorID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		activity, err := s.lockActivity(tx, activityID)
		if err != nil {
			return err
		}
		if activity.CreatorID != creatorID {
			return ForbiddenError("Only the creator can delete the activity")
		}
		if activity.Concluded() {
			return InvalidStateError("Cannot delete a concluded activity")
		}

		// Delete participations first
		if err := tx.Where("activity_id = ?", activityID).Delete(&models.Participation{}).Error; err != nil {
			return err
		}

		return tx.Delete(activity).Error
	})
}

// Update rewrites the mutable fields while the activity is still open.
func (s *ActivityService) Update(activityID, creatorID string, in ActivityInput) (*models.Activity, error) {
	var activity *models.Activity

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		activity, err = s.lockActivity(tx, activityID)
		if err != nil {
			return err
		}
		if activity.CreatorID != creatorID {
			return ForbiddenError("Only the creator can update the activity")
		}
		if activity.Concluded() {
			return InvalidStateError("Cannot update a concluded activity")
		}

		if err := s.validateInput(tx, in); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"title":          in.Title,
			"description":    in.Description,
			"type_id":        in.TypeID,
			"address":        in.Address,
			"private":        in.Private,
			"scheduled_date": in.ScheduledDate,
		}
		if in.Image != "" {
			updates["image"] = in.Image
		}

		if err := tx.Model(activity).Updates(updates).Error; err != nil {
			return err
		}

		return tx.First(activity, "id = ?", activityID).Error
	})
	if err != nil {
		return nil, err
	}

	return activity, nil
}

func (s *ActivityService) validateInput(tx *gorm.DB, in ActivityInput) error {
	if n := utf8.RuneCountInString(in.Title); n < titleMinLen || n > titleMaxLen {
		return ValidationError("Title must be between 4 and 80 characters")
	}
	if n := utf8.RuneCountInString(in.Description); n < descriptionMinLen || n > descriptionMaxLen {
		return ValidationError("Description must be between 4 and 500 characters")
	}
	if !in.ScheduledDate.After(time.Now()) {
		return ValidationError("Scheduled date must be in the future")
	}

	var activityType models.ActivityType
	if err := tx.First(&activityType, "id = ?", in.TypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ValidationError("Invalid activity type")
		}
		return err
	}

	return nil
}

// lockActivity reads the activity under a row lock so state checks and the
// subsequent writes are atomic.
func (s *ActivityService) lockActivity(tx *gorm.DB, activityID string) (*models.Activity, error) {
	query := tx
	// sqlite (used by the test suite) rejects FOR UPDATE; its writes are
	// serialized by the single writer anyway.
	if tx.Dialector.Name() == "mysql" {
		query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var activity models.Activity
	if err := query.First(&activity, "id = ?", activityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFoundError("Activity not found")
		}
		return nil, err
	}
	return &activity, nil
}

func (s *ActivityService) adjustParticipantCount(tx *gorm.DB, activityID string, delta int) error {
	return tx.Model(&models.Activity{}).Where("id = ?", activityID).
		UpdateColumn("participant_count", gorm.Expr("participant_count + ?", delta)).Error
}

func generateConfirmationCode() (string, error) {
	// No 0/O or 1/I, the code is typed by hand at the meetup
	const charset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	code := make([]byte, 6)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		code[i] = charset[n.Int64()]
	}
	return string(code), nil
}
