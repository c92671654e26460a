package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopfront/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCartRecordRepositoryTest(t *testing.T) (*GormCartRecordRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateTables(db); err != nil {
		t.Fatalf("migrate cart records failed: %v", err)
	}
	return NewCartRecordRepository(db), db
}

func TestCartRecordRepositorySaveLoadRemove(t *testing.T) {
	repo, _ := setupCartRecordRepositoryTest(t)
	ctx := context.Background()

	if _, ok, err := repo.Load(ctx, "cart:s1"); err != nil || ok {
		t.Fatalf("missing key want (false, nil), got (%v, %v)", ok, err)
	}

	if err := repo.Save(ctx, "cart:s1", `[{"id":"p1","quantity":1}]`); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := repo.Save(ctx, "cart:s1", `[{"id":"p1","quantity":2}]`); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	payload, ok, err := repo.Load(ctx, "cart:s1")
	if err != nil || !ok {
		t.Fatalf("load failed: ok=%v err=%v", ok, err)
	}
	if payload != `[{"id":"p1","quantity":2}]` {
		t.Fatalf("last write should win, got %s", payload)
	}

	if err := repo.Remove(ctx, "cart:s1"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, ok, _ := repo.Load(ctx, "cart:s1"); ok {
		t.Fatalf("record should be removed")
	}
	if err := repo.Remove(ctx, "cart:s1"); err != nil {
		t.Fatalf("removing a missing key should not fail: %v", err)
	}
}

func TestCartRecordRepositoryDeleteUpdatedBefore(t *testing.T) {
	repo, db := setupCartRecordRepositoryTest(t)
	ctx := context.Background()

	if err := repo.Save(ctx, "cart:old", "[]"); err != nil {
		t.Fatalf("save old failed: %v", err)
	}
	if err := repo.Save(ctx, "cart:new", "[]"); err != nil {
		t.Fatalf("save new failed: %v", err)
	}
	stale := time.Now().Add(-48 * time.Hour)
	if err := db.Model(&models.CartRecord{}).Where("key = ?", "cart:old").Update("updated_at", stale).Error; err != nil {
		t.Fatalf("age record failed: %v", err)
	}

	deleted, err := repo.DeleteUpdatedBefore(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("want 1 purged record, got %d", deleted)
	}
	if _, ok, _ := repo.Load(ctx, "cart:old"); ok {
		t.Fatalf("stale record should be purged")
	}
	if _, ok, _ := repo.Load(ctx, "cart:new"); !ok {
		t.Fatalf("fresh record should survive")
	}
}
