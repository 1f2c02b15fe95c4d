// File: /repositories/activity_repository.go
package repositories

import (
	"strings"

	"gorm.io/gorm"

	"fitlink-api/models"
)

// ActivityFilter narrows and orders activity listings. OrderBy is matched
// against a whitelist; anything else falls back to scheduled_date.
type ActivityFilter struct {
	TypeID  string
	OrderBy string
	Order   string
}

var orderColumns = map[string]string{
	"scheduled_date": "scheduled_date",
	"created_at":     "created_at",
	"title":          "title",
}

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// List returns one page of activities plus the unpaginated total.
func (r *ActivityRepository) List(filter ActivityFilter, page, limit int) ([]models.Activity, int64, error) {
	var total int64
	if err := r.filtered(filter).Model(&models.Activity{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit

	var activities []models.Activity
	err := r.ordered(r.filtered(filter), filter).
		Preload("Type").Preload("Creator").
		Offset(offset).Limit(limit).
		Find(&activities).Error
	if err != nil {
		return nil, 0, err
	}

	return activities, total, nil
}

func (r *ActivityRepository) ListAll(filter ActivityFilter) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.ordered(r.filtered(filter), filter).
		Preload("Type").Preload("Creator").
		Find(&activities).Error
	return activities, err
}

// FindByID loads an activity with its creator, type and participant list.
func (r *ActivityRepository) FindByID(id string) (*models.Activity, error) {
	var activity models.Activity
	err := r.db.
		Preload("Type").Preload("Creator").
		Preload("Participants").Preload("Participants.User").
		First(&activity, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &activity, nil
}

// CreatedBy lists the activities a user owns.
func (r *ActivityRepository) CreatedBy(userID string) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.
		Preload("Type").Preload("Creator").
		Where("creator_id = ?", userID).
		Order("scheduled_date ASC").
		Find(&activities).Error
	return activities, err
}

// SubscribedBy lists the activities a user participates in, any status.
func (r *ActivityRepository) SubscribedBy(userID string) ([]models.Activity, error) {
	var activities []models.Activity
	err := r.db.
		Preload("Type").Preload("Creator").
		Joins("JOIN participations ON participations.activity_id = activities.id").
		Where("participations.user_id = ?", userID).
		Order("activities.scheduled_date ASC").
		Find(&activities).Error
	return activities, err
}

// Types returns the seeded activity type catalog.
func (r *ActivityRepository) Types() ([]models.ActivityType, error) {
	var types []models.ActivityType
	err := r.db.Order("name ASC").Find(&types).Error
	return types, err
}

func (r *ActivityRepository) filtered(filter ActivityFilter) *gorm.DB {
	query := r.db.Session(&gorm.Session{})
	if filter.TypeID != "" {
		query = query.Where("type_id = ?", filter.TypeID)
	}
	return query
}

func (r *ActivityRepository) ordered(query *gorm.DB, filter ActivityFilter) *gorm.DB {
	column, ok := orderColumns[filter.OrderBy]
	if !ok {
		column = "scheduled_date"
	}
	direction := "ASC"
	if strings.EqualFold(filter.Order, "desc") {
		direction = "DESC"
	}
	return query.Order(column + " " + direction)
}
