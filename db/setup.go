package db

import (
	"github.com/CauaGLS/Projeto-de-TCC/internal/models"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	// lib/pq as the underlying driver so transaction conflicts surface
	// as *pq.Error (see tx.go).
	DB, err = gorm.Open(postgres.New(postgres.Config{
		DriverName: "postgres",
		DSN:        dsn,
	}), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	models := []interface{}{
		&models.User{},
		&models.Family{},
		&models.FamilyMembership{},
		&models.Finance{},
		&models.FinanceAttachment{},
		&models.SpendingLimit{},
		&models.Goal{},
		&models.GoalRecord{},
	}

	migrator := DB.Migrator()

	for _, model := range models {
		if !migrator.HasTable(model) {
			if err := DB.AutoMigrate(model); err != nil {
				return err
			}
		}
	}

	return nil
}
