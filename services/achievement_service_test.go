// File: /services/achievement_service_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fitlink-api/models"
)

func seedAchievementCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	names := []string{
		AchievementFirstActivity,
		AchievementExplorer,
		AchievementFirstCheckIn,
		AchievementVeteran,
		AchievementFirstConcluded,
	}
	for _, name := range names {
		require.NoError(t, db.Create(&models.Achievement{
			ID:        uuid.New().String(),
			Name:      name,
			Criterion: name,
		}).Error)
	}
}

func grantedCount(t *testing.T, db *gorm.DB, userID, name string) int64 {
	t.Helper()
	var achievement models.Achievement
	if err := db.Where("name = ?", name).First(&achievement).Error; err != nil {
		return 0
	}
	var count int64
	require.NoError(t, db.Model(&models.UserAchievement{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievement.ID).
		Count(&count).Error)
	return count
}

func subscribeAndCheckIn(t *testing.T, service *ActivityService, activityID, userID string) {
	t.Helper()
	participation, err := service.Subscribe(activityID, userID)
	require.NoError(t, err)
	require.NotNil(t, participation.ConfirmationCode)
	_, err = service.CheckIn(activityID, userID, *participation.ConfirmationCode)
	require.NoError(t, err)
}

func TestFirstActivityAchievementGrantedOnce(t *testing.T) {
	db := setupTestDB(t)
	seedAchievementCatalog(t, db)
	service := newTestService(db)
	createTestUser(t, db, "u1")
	createTestType(t, db, "t1")

	_, err := service.Create("u1", validInput("t1"))
	require.NoError(t, err)
	require.Equal(t, int64(1), grantedCount(t, db, "u1", AchievementFirstActivity))

	_, err = service.Create("u1", validInput("t1"))
	require.NoError(t, err)
	require.Equal(t, int64(1), grantedCount(t, db, "u1", AchievementFirstActivity))
}

func TestExplorerRequiresThreeDistinctTypes(t *testing.T) {
	db := setupTestDB(t)
	seedAchievementCatalog(t, db)
	service := newTestService(db)
	createTestUser(t, db, "u1")
	createTestType(t, db, "t1")
	createTestType(t, db, "t2")
	createTestType(t, db, "t3")

	// Two activities of the same type do not count twice
	_, err := service.Create("u1", validInput("t1"))
	require.NoError(t, err)
	_, err = service.Create("u1", validInput("t1"))
	require.NoError(t, err)
	_, err = service.Create("u1", validInput("t2"))
	require.NoError(t, err)
	require.Zero(t, grantedCount(t, db, "u1", AchievementExplorer))

	_, err = service.Create("u1", validInput("t3"))
	require.NoError(t, err)
	require.Equal(t, int64(1), grantedCount(t, db, "u1", AchievementExplorer))
}

func TestFirstCheckInGrantedOnceAcrossActivities(t *testing.T) {
	db := setupTestDB(t)
	seedAchievementCatalog(t, db)
	service := newTestService(db)
	createTestUser(t, db, "creator")
	createTestUser(t, db, "u1")
	createTestType(t, db, "t1")

	first, err := service.Create("creator", validInput("t1"))
	require.NoError(t, err)
	second, err := service.Create("creator", validInput("t1"))
	require.NoError(t, err)

	subscribeAndCheckIn(t, service, first.ID, "u1")
	require.Equal(t, int64(1), grantedCount(t, db, "u1", AchievementFirstCheckIn))

	subscribeAndCheckIn(t, service, second.ID, "u1")
	require.Equal(t, int64(1), grantedCount(t, db, "u1", AchievementFirstCheckIn))
}

func TestVeteranAfterFiveCheckIns(t *testing.T) {
	db := setupTestDB(t)
	seedAchievementCatalog(t, db)
	service := newTestService(db)
	createTestUser(t, db, "creator")
	createTestUser(t, db, "u1")
	createTestType(t, db, "t1")

	for i := 0; i < 5; i++ {
		activity, err := service.Create("creator", validInput("t1"))
		require.NoError(t, err)
		subscribeAndCheckIn(t, service, activity.ID, "u1")

		if i < 4 {
			require.Zero(t, grantedCount(t, db, "u1", AchievementVeteran), "check-in %d", i+1)
		}
	}

	require.Equal(t, int64(1), grantedCount(t, db, "u1", AchievementVeteran))
}

func TestFirstConcludedAchievement(t *testing.T) {
	db := setupTestDB(t)
	seedAchievementCatalog(t, db)
	service := newTestService(db)
	createTestUser(t, db, "u1")
	createTestType(t, db, "t1")

	activity, err := service.Create("u1", validInput("t1"))
	require.NoError(t, err)
	_, err = service.Conclude(activity.ID, "u1")
	require.NoError(t, err)

	require.Equal(t, int64(1), grantedCount(t, db, "u1", AchievementFirstConcluded))
}

func TestXPAndLevelProgression(t *testing.T) {
	db := setupTestDB(t)
	seedAchievementCatalog(t, db)
	service := newTestService(db)
	createTestUser(t, db, "creator")
	createTestUser(t, db, "u1")
	createTestType(t, db, "t1")

	// Three check-ins at 50 XP each cross the 100 XP level boundary
	for i := 0; i < 3; i++ {
		activity, err := service.Create("creator", validInput("t1"))
		require.NoError(t, err)
		subscribeAndCheckIn(t, service, activity.ID, "u1")
	}

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", "u1").Error)
	require.Equal(t, 3*XPCheckIn, user.XP)
	require.Equal(t, 2, user.Level)

	var creator models.User
	require.NoError(t, db.First(&creator, "id = ?", "creator").Error)
	require.Zero(t, creator.XP)
}

func TestConclusionGrantsXPToCreator(t *testing.T) {
	db := setupTestDB(t)
	seedAchievementCatalog(t, db)
	service := newTestService(db)
	createTestUser(t, db, "u1")
	createTestType(t, db, "t1")

	activity, err := service.Create("u1", validInput("t1"))
	require.NoError(t, err)
	_, err = service.Conclude(activity.ID, "u1")
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", "u1").Error)
	require.Equal(t, XPConclusion, user.XP)
	require.Equal(t, 1, user.ActivitiesConcluded)
}

func TestMissingCatalogNeverFailsLifecycle(t *testing.T) {
	db := setupTestDB(t) // no achievements seeded
	service := newTestService(db)
	createTestUser(t, db, "creator")
	createTestUser(t, db, "u1")
	createTestType(t, db, "t1")

	activity, err := service.Create("creator", validInput("t1"))
	require.NoError(t, err)
	subscribeAndCheckIn(t, service, activity.ID, "u1")

	var count int64
	require.NoError(t, db.Model(&models.UserAchievement{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestCountersSurviveActivityDeletion(t *testing.T) {
	db := setupTestDB(t)
	seedAchievementCatalog(t, db)
	service := newTestService(db)
	createTestUser(t, db, "creator")
	createTestUser(t, db, "u1")
	createTestType(t, db, "t1")

	var activities []*models.Activity
	for i := 0; i < 3; i++ {
		activity, err := service.Create("creator", validInput("t1"))
		require.NoError(t, err)
		subscribeAndCheckIn(t, service, activity.ID, "u1")
		activities = append(activities, activity)
	}

	for _, activity := range activities {
		require.NoError(t, service.Delete(activity.ID, "creator"))
	}

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", "u1").Error)
	require.Equal(t, 3, user.CheckInsCount)
	require.Equal(t, int64(1), grantedCount(t, db, "u1", AchievementFirstCheckIn))
}

func TestGrantIsIdempotentUnderDirectCalls(t *testing.T) {
	db := setupTestDB(t)
	seedAchievementCatalog(t, db)
	achievements := NewAchievementService(nil)
	user := createTestUser(t, db, "u1")
	user.CheckInsCount = 1

	for i := 0; i < 3; i++ {
		require.NoError(t, achievements.AfterCheckIn(db, user), fmt.Sprintf("call %d", i+1))
	}

	require.Equal(t, int64(1), grantedCount(t, db, "u1", AchievementFirstCheckIn))
}
