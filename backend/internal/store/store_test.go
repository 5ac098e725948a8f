package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// These tests require a running Postgres instance.
// Set POSTGRES_DSN; run with -short to skip them.

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN not set")
	}

	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&User{}, &Post{}, &Hashtag{}, &Follow{}, &Like{}, &Repost{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

func TestFollowRepository_Roundtrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewFollowRepository(db)

	follower := uuid.NewString()
	followed := uuid.NewString()
	defer db.Where("follower_id = ?", follower).Delete(&Follow{})

	exists, err := repo.Exists(ctx, follower, followed)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("Expected no edge before create")
	}

	if err := repo.Create(ctx, follower, followed); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	exists, err = repo.Exists(ctx, follower, followed)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Error("Expected edge after create")
	}

	// Direction matters
	exists, err = repo.Exists(ctx, followed, follower)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("Reverse direction should not exist")
	}

	if err := repo.Delete(ctx, follower, followed); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	// Deleting an absent edge reports success
	if err := repo.Delete(ctx, follower, followed); err != nil {
		t.Fatalf("Delete on absent edge failed: %v", err)
	}
}

func TestHashtagRepository_UsageCounts(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewHashtagRepository(db)

	tag := "tag" + uuid.NewString()[:8]
	row := &Hashtag{
		ID:         uuid.NewString(),
		Tag:        tag,
		DisplayTag: tag,
		PostCount:  1,
		LastUsedAt: time.Now().UTC(),
	}
	defer db.Where("id = ?", row.ID).Delete(&Hashtag{})

	if err := repo.Create(ctx, row); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := repo.IncrementUsage(ctx, row.ID, time.Now().UTC()); err != nil {
		t.Fatalf("IncrementUsage failed: %v", err)
	}

	rows, err := repo.FindByTags(ctx, []string{tag})
	if err != nil {
		t.Fatalf("FindByTags failed: %v", err)
	}
	if len(rows) != 1 || rows[0].PostCount != 2 {
		t.Fatalf("Expected post count 2 after increment, got %+v", rows)
	}

	// Decrement floors at zero even when applied past the count
	for i := 0; i < 3; i++ {
		if err := repo.DecrementUsage(ctx, []string{row.ID}); err != nil {
			t.Fatalf("DecrementUsage failed: %v", err)
		}
	}

	rows, err = repo.FindByTags(ctx, []string{tag})
	if err != nil {
		t.Fatalf("FindByTags failed: %v", err)
	}
	if len(rows) != 1 || rows[0].PostCount != 0 {
		t.Fatalf("Expected post count floored at 0, got %+v", rows)
	}
}

func TestUserRepository_FindByIDMissing(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)

	user, err := repo.FindByID(context.Background(), uuid.NewString())
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if user != nil {
		t.Errorf("Expected nil for missing user, got %+v", user)
	}
}
