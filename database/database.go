// File: /database/database.go
package database

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"fitlink-api/models"
	"fitlink-api/services"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Auto migrate all models
	err := db.AutoMigrate(
		&models.User{},
		&models.ActivityType{},
		&models.Activity{},
		&models.Participation{},
		&models.Achievement{},
		&models.UserAchievement{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Composite indexes for the hot listing queries

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_activities_type_scheduled ON activities(type_id, scheduled_date)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for activities: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_activities_creator_scheduled ON activities(creator_id, scheduled_date)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for activities by creator: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_participations_user ON participations(user_id)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for participations: %v\n", err)
	}

	return nil
}

// SeedData populates the static catalogs (activity types, achievements) and,
// on an empty database, a couple of development users.
func SeedData(db *gorm.DB) error {
	if err := seedActivityTypes(db); err != nil {
		return err
	}
	if err := seedAchievements(db); err != nil {
		return err
	}
	return seedDevUsers(db)
}

func seedActivityTypes(db *gorm.DB) error {
	var count int64
	db.Model(&models.ActivityType{}).Count(&count)
	if count > 0 {
		return nil
	}

	types := []models.ActivityType{
		{Name: "Futebol", Description: "Peladas e partidas organizadas", Image: "https://images.fitlink.app/types/futebol.jpg"},
		{Name: "Corrida", Description: "Corridas de rua e treinos em grupo", Image: "https://images.fitlink.app/types/corrida.jpg"},
		{Name: "Ciclismo", Description: "Pedais urbanos e de estrada", Image: "https://images.fitlink.app/types/ciclismo.jpg"},
		{Name: "Trilha", Description: "Caminhadas e trekking", Image: "https://images.fitlink.app/types/trilha.jpg"},
		{Name: "Natação", Description: "Treinos de natação em grupo", Image: "https://images.fitlink.app/types/natacao.jpg"},
		{Name: "Vôlei", Description: "Vôlei de quadra e de praia", Image: "https://images.fitlink.app/types/volei.jpg"},
		{Name: "Musculação", Description: "Treinos acompanhados na academia", Image: "https://images.fitlink.app/types/musculacao.jpg"},
		{Name: "Yoga", Description: "Aulas e práticas coletivas", Image: "https://images.fitlink.app/types/yoga.jpg"},
	}

	for i := range types {
		types[i].ID = uuid.New().String()
		if err := db.Create(&types[i]).Error; err != nil {
			fmt.Printf("Warning: Could not create activity type %s: %v\n", types[i].Name, err)
		}
	}

	fmt.Println("Activity type catalog seeded")
	return nil
}

func seedAchievements(db *gorm.DB) error {
	var count int64
	db.Model(&models.Achievement{}).Count(&count)
	if count > 0 {
		return nil
	}

	achievements := []models.Achievement{
		{Name: services.AchievementFirstActivity, Criterion: "Crie sua primeira atividade"},
		{Name: services.AchievementExplorer, Criterion: "Crie atividades de três tipos diferentes"},
		{Name: services.AchievementFirstCheckIn, Criterion: "Faça seu primeiro check-in em uma atividade"},
		{Name: services.AchievementVeteran, Criterion: "Acumule cinco check-ins"},
		{Name: services.AchievementFirstConcluded, Criterion: "Conclua sua primeira atividade"},
	}

	for i := range achievements {
		achievements[i].ID = uuid.New().String()
		if err := db.Create(&achievements[i]).Error; err != nil {
			fmt.Printf("Warning: Could not create achievement %s: %v\n", achievements[i].Name, err)
		}
	}

	fmt.Println("Achievement catalog seeded")
	return nil
}

func seedDevUsers(db *gorm.DB) error {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		return nil
	}

	testUsers := []models.User{
		{
			ID:       "user-1",
			Name:     "João Silva",
			Email:    "joao@example.com",
			CPF:      "52998224725",
			Password: "$2a$10$dummy", // This should be properly hashed in real scenarios
			Level:    1,
		},
		{
			ID:       "user-2",
			Name:     "Maria Souza",
			Email:    "maria@example.com",
			CPF:      "11144477735",
			Password: "$2a$10$dummy",
			Level:    1,
		},
	}

	for _, user := range testUsers {
		if err := db.Create(&user).Error; err != nil {
			fmt.Printf("Warning: Could not create test user %s: %v\n", user.Email, err)
		}
	}

	fmt.Println("Database seeded with development users")
	return nil
}
