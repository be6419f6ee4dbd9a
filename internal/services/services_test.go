package services

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/CauaGLS/Projeto-de-TCC/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})

	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = gdb.AutoMigrate(
		&models.User{},
		&models.Family{},
		&models.FamilyMembership{},
		&models.Finance{},
		&models.FinanceAttachment{},
		&models.Goal{},
		&models.GoalRecord{},
		&models.SpendingLimit{},
	)

	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return gdb
}

func createTestUser(t *testing.T, gdb *gorm.DB, name string) models.User {
	t.Helper()

	user := models.User{
		Name:         name,
		Email:        fmt.Sprintf("%s-%d@example.com", name, time.Now().UnixNano()),
		PasswordHash: "x",
	}

	if err := gdb.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %q: %v", name, err)
	}

	return user
}
