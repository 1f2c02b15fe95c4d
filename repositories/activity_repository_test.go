// File: /repositories/activity_repository_test.go
package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fitlink-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ActivityType{},
		&models.Activity{},
		&models.Participation{},
	))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, id string) {
	t.Helper()
	require.NoError(t, db.Create(&models.User{
		ID:       id,
		Name:     "User " + id,
		Email:    id + "@example.com",
		CPF:      id,
		Password: "$2a$10$dummy",
		Level:    1,
	}).Error)
}

func seedType(t *testing.T, db *gorm.DB, id, name string) {
	t.Helper()
	require.NoError(t, db.Create(&models.ActivityType{ID: id, Name: name}).Error)
}

func seedActivity(t *testing.T, db *gorm.DB, creatorID, typeID, title string, daysAhead int) string {
	t.Helper()
	activity := models.Activity{
		ID:            uuid.New().String(),
		Title:         title,
		Description:   "Atividade de teste",
		TypeID:        typeID,
		CreatorID:     creatorID,
		Address:       "Praça Central",
		ScheduledDate: time.Now().Add(time.Duration(daysAhead) * 24 * time.Hour),
	}
	require.NoError(t, db.Create(&activity).Error)
	return activity.ID
}

func TestListFiltersByTypeAndPaginates(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActivityRepository(db)
	seedUser(t, db, "u1")
	seedType(t, db, "t1", "Corrida")
	seedType(t, db, "t2", "Ciclismo")

	for i := 0; i < 5; i++ {
		seedActivity(t, db, "u1", "t1", fmt.Sprintf("Corrida %d", i), i+1)
	}
	seedActivity(t, db, "u1", "t2", "Pedal no parque", 10)

	activities, total, err := repo.List(ActivityFilter{TypeID: "t1"}, 1, 3)
	require.NoError(t, err)
	require.Equal(t, int64(5), total)
	require.Len(t, activities, 3)
	require.Equal(t, "Corrida", activities[0].Type.Name)

	activities, total, err = repo.List(ActivityFilter{TypeID: "t1"}, 2, 3)
	require.NoError(t, err)
	require.Equal(t, int64(5), total)
	require.Len(t, activities, 2)

	activities, total, err = repo.List(ActivityFilter{}, 1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(6), total)
	require.Len(t, activities, 6)
}

func TestListOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActivityRepository(db)
	seedUser(t, db, "u1")
	seedType(t, db, "t1", "Corrida")

	seedActivity(t, db, "u1", "t1", "Banana", 3)
	seedActivity(t, db, "u1", "t1", "Abacaxi", 1)
	seedActivity(t, db, "u1", "t1", "Caju", 2)

	// Default order is scheduled_date ascending
	activities, _, err := repo.List(ActivityFilter{}, 1, 10)
	require.NoError(t, err)
	require.Equal(t, "Abacaxi", activities[0].Title)
	require.Equal(t, "Banana", activities[2].Title)

	activities, _, err = repo.List(ActivityFilter{OrderBy: "title", Order: "desc"}, 1, 10)
	require.NoError(t, err)
	require.Equal(t, "Caju", activities[0].Title)

	// Unknown columns fall back to scheduled_date instead of reaching SQL
	activities, _, err = repo.List(ActivityFilter{OrderBy: "password; DROP TABLE users"}, 1, 10)
	require.NoError(t, err)
	require.Equal(t, "Abacaxi", activities[0].Title)
}

func TestCreatedByAndSubscribedBy(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActivityRepository(db)
	seedUser(t, db, "creator")
	seedUser(t, db, "participant")
	seedType(t, db, "t1", "Corrida")

	owned := seedActivity(t, db, "creator", "t1", "Corrida da manhã", 1)
	seedActivity(t, db, "creator", "t1", "Corrida da tarde", 2)

	require.NoError(t, db.Create(&models.Participation{
		ActivityID: owned,
		UserID:     "participant",
		Status:     models.ParticipationApproved,
	}).Error)

	created, err := repo.CreatedBy("creator")
	require.NoError(t, err)
	require.Len(t, created, 2)

	subscribed, err := repo.SubscribedBy("participant")
	require.NoError(t, err)
	require.Len(t, subscribed, 1)
	require.Equal(t, owned, subscribed[0].ID)

	subscribed, err = repo.SubscribedBy("creator")
	require.NoError(t, err)
	require.Empty(t, subscribed)
}

func TestFindByIDLoadsParticipants(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActivityRepository(db)
	seedUser(t, db, "creator")
	seedUser(t, db, "participant")
	seedType(t, db, "t1", "Corrida")

	id := seedActivity(t, db, "creator", "t1", "Corrida da manhã", 1)
	require.NoError(t, db.Create(&models.Participation{
		ActivityID: id,
		UserID:     "participant",
		Status:     models.ParticipationPending,
	}).Error)

	activity, err := repo.FindByID(id)
	require.NoError(t, err)
	require.Equal(t, "creator", activity.Creator.ID)
	require.Len(t, activity.Participants, 1)
	require.Equal(t, "participant", activity.Participants[0].User.ID)

	_, err = repo.FindByID("missing")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTypesSortedByName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewActivityRepository(db)
	seedType(t, db, "t1", "Yoga")
	seedType(t, db, "t2", "Corrida")
	seedType(t, db, "t3", "Futebol")

	types, err := repo.Types()
	require.NoError(t, err)
	require.Len(t, types, 3)
	require.Equal(t, "Corrida", types[0].Name)
	require.Equal(t, "Yoga", types[2].Name)
}
