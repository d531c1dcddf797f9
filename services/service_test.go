package services

import (
	"testing"
	"time"

	"foot-match-service/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory sqlite database migrated to the live
// schema. The pool is capped at one connection: each sqlite :memory:
// connection is its own database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Match{},
		&models.MatchParticipant{},
	))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()

	user := &models.User{
		ID:           uuid.New(),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "not-a-real-hash",
		Name:         "Test " + role,
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestMatch(t *testing.T, svc *MatchService, organizer *models.User, maxPlayers int) *models.MatchResponse {
	t.Helper()

	match, err := svc.Create(MatchInput{
		Title:       "Friendly five-a-side",
		Description: "Casual game, all levels welcome",
		Location:    "Riverside Pitch 2",
		MatchDate:   time.Now().Add(48 * time.Hour),
		MaxPlayers:  maxPlayers,
	}, organizer.ID, organizer.Role)
	require.NoError(t, err)
	return match
}
