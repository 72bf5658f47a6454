package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"followdiff-be/internal/entity"
	"followdiff-be/internal/model"
	"followdiff-be/internal/repository/unitofwork"
	"followdiff-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}
	if err := gormDB.AutoMigrate(&model.Snapshot{}); err != nil {
		t.Fatalf("Failed to migrate schema: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())
	assert.NotNil(t, uow.SnapshotRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	ctx := context.Background()
	userId := uuid.New()
	repo := uow.SnapshotRepository()

	t.Run("Create and read back latest", func(t *testing.T) {
		first := &entity.Snapshot{
			UserId:    userId,
			Ts:        time.Now().UTC().Add(-time.Hour),
			Following: []string{"alice", "bob"},
			Followers: []string{"bob"},
		}
		second := &entity.Snapshot{
			UserId:    userId,
			Ts:        time.Now().UTC(),
			Following: []string{"alice"},
			Followers: []string{"alice", "carol"},
		}
		assert.NoError(t, repo.Create(ctx, first))
		assert.NoError(t, repo.Create(ctx, second))

		latest, err := repo.FindLatestByUser(ctx, userId)
		assert.NoError(t, err)
		if assert.NotNil(t, latest) {
			assert.Equal(t, []string{"alice"}, latest.Following)
			assert.Equal(t, []string{"alice", "carol"}, latest.Followers)
		}
	})

	t.Run("Count and last timestamp", func(t *testing.T) {
		count, lastTs, err := repo.CountAndLastByUser(ctx, userId)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), count)
		assert.NotNil(t, lastTs)
	})

	t.Run("Retention delete", func(t *testing.T) {
		cutoff := time.Now().UTC().Add(-30 * time.Minute)
		assert.NoError(t, repo.DeleteOlderThan(ctx, userId, cutoff))

		count, _, err := repo.CountAndLastByUser(ctx, userId)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("Wipe history", func(t *testing.T) {
		assert.NoError(t, repo.DeleteAllByUser(ctx, userId))

		latest, err := repo.FindLatestByUser(ctx, userId)
		assert.NoError(t, err)
		assert.Nil(t, latest)
	})
}
