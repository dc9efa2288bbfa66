package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"warbler/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory sqlite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Warble{},
		&models.Follow{},
		&models.Like{},
	))
	return db
}

var userSeq int

// seedUser inserts a user with unique credentials and returns it.
func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	userSeq++
	user := &models.User{
		Username: fmt.Sprintf("user%d", userSeq),
		Email:    fmt.Sprintf("user%d@example.com", userSeq),
		Password: "$2a$10$notarealhashnotarealhashnotarealhash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedWarble inserts a warble for owner with the given text and age.
func seedWarble(t *testing.T, db *gorm.DB, owner *models.User, text string, age time.Duration) *models.Warble {
	t.Helper()
	warble := &models.Warble{
		Text:      text,
		UserID:    owner.ID,
		CreatedAt: time.Now().Add(-age),
	}
	require.NoError(t, db.Create(warble).Error)
	return warble
}

func ctxTODO() context.Context {
	return context.Background()
}
