// File: /services/achievement_service.go
package services

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"fitlink-api/models"
)

// Achievement names as seeded in the catalog. Criteria read the cumulative
// counters on the user row, so re-evaluating an already satisfied criterion
// is always a no-op.
const (
	AchievementFirstActivity  = "Primeira Atividade Criada"
	AchievementExplorer       = "Explorador"
	AchievementFirstCheckIn   = "Primeiro Check-in"
	AchievementVeteran        = "Veterano"
	AchievementFirstConcluded = "Primeira Atividade Concluída"
)

// XP awarded by the lifecycle engine.
const (
	XPCheckIn    = 50
	XPConclusion = 25
)

type AchievementService struct {
	emailService *EmailService
}

// NewAchievementService creates the achievement evaluation hook. The email
// service may be nil; grants then happen silently.
func NewAchievementService(emailService *EmailService) *AchievementService {
	return &AchievementService{emailService: emailService}
}

// AfterActivityCreated runs inside the creation transaction, after the
// creator's counter has been incremented.
func (s *AchievementService) AfterActivityCreated(tx *gorm.DB, user *models.User) error {
	if user.ActivitiesCreated >= 1 {
		if err := s.grant(tx, user, AchievementFirstActivity); err != nil {
			return err
		}
	}

	var distinctTypes int64
	if err := tx.Model(&models.Activity{}).
		Where("creator_id = ?", user.ID).
		Distinct("type_id").
		Count(&distinctTypes).Error; err != nil {
		return err
	}
	if distinctTypes >= 3 {
		return s.grant(tx, user, AchievementExplorer)
	}

	return nil
}

func (s *AchievementService) AfterCheckIn(tx *gorm.DB, user *models.User) error {
	if user.CheckInsCount >= 1 {
		if err := s.grant(tx, user, AchievementFirstCheckIn); err != nil {
			return err
		}
	}
	if user.CheckInsCount >= 5 {
		return s.grant(tx, user, AchievementVeteran)
	}
	return nil
}

func (s *AchievementService) AfterConclusion(tx *gorm.DB, user *models.User) error {
	if user.ActivitiesConcluded >= 1 {
		return s.grant(tx, user, AchievementFirstConcluded)
	}
	return nil
}

// AddXP updates the user's XP and recomputes the level (one level per 100 XP).
func (s *AchievementService) AddXP(tx *gorm.DB, user *models.User, amount int) error {
	user.XP += amount
	user.Level = user.XP/100 + 1
	return tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"xp":    user.XP,
		"level": user.Level,
	}).Error
}

// grant awards the named achievement exactly once. Missing catalog entries
// are skipped so a half-seeded database never fails a lifecycle operation.
func (s *AchievementService) grant(tx *gorm.DB, user *models.User, name string) error {
	var achievement models.Achievement
	if err := tx.Where("name = ?", name).First(&achievement).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	var existing models.UserAchievement
	err := tx.Where("user_id = ? AND achievement_id = ?", user.ID, achievement.ID).First(&existing).Error
	if err == nil {
		// Already granted
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	granted := models.UserAchievement{
		UserID:        user.ID,
		AchievementID: achievement.ID,
		GrantedAt:     time.Now(),
	}
	if err := tx.Create(&granted).Error; err != nil {
		return err
	}

	log.Info().Str("user_id", user.ID).Str("achievement", name).Msg("achievement granted")

	if s.emailService != nil {
		go func(email, userName, achievementName string) {
			if err := s.emailService.SendAchievementEmail(email, userName, achievementName); err != nil {
				log.Warn().Err(err).Str("email", email).Msg("failed to send achievement email")
			}
		}(user.Email, user.Name, name)
	}

	return nil
}
