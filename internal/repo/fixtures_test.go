package repo

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/game-reviews-api/internal/domain"
)

// newRepoDB opens a migrated, empty SQLite database in a temp dir.
func newRepoDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), fmt.Sprintf("repo_test_%d.db", time.Now().UnixNano()))
	db, err := OpenSQLite(path, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

var seedBase = time.Date(2021, 1, 1, 9, 0, 0, 0, time.UTC)

// seedReviews loads four categories, four users, 13 reviews (11 of them in
// "social deduction") and six comments spread over reviews 2 and 3.
func seedReviews(t *testing.T, db *gorm.DB) {
	t.Helper()

	cats := []domain.Category{
		{Slug: "euro game", Description: "Abstact games that involve little luck"},
		{Slug: "social deduction", Description: "Players attempt to uncover each other's hidden role"},
		{Slug: "dexterity", Description: "Games involving physical skill"},
		{Slug: "children's games", Description: "Games suitable for children"},
	}
	users := []domain.User{
		{Username: "mallionaire", Name: "haz"},
		{Username: "philippaclaire9", Name: "philippa"},
		{Username: "bainesface", Name: "sarah"},
		{Username: "dav3rid", Name: "dave"},
	}
	if err := db.Create(&cats).Error; err != nil {
		t.Fatalf("seed categories: %v", err)
	}
	if err := db.Create(&users).Error; err != nil {
		t.Fatalf("seed users: %v", err)
	}

	titles := []string{
		"Agricola", "Jenga", "Ultimate Werewolf", "Dolor reprehenderit",
		"Proident tempor et.", "Occaecat consequat officia in quis commodo.",
		"Mollit elit qui incididunt veniam occaecat cupidatat", "One Night Ultimate Werewolf",
		"A truly Quacking Game; Quacks of Quedlinburg", "Build you own tour de Yorkshire",
		"That's just what an evil person would say!", "Scythe; you're gonna need a bigger table!",
		"Settlers of Catan: Don't Settle For Less",
	}
	for i, title := range titles {
		cat := "social deduction"
		switch i {
		case 0:
			cat = "euro game"
		case 1:
			cat = "dexterity"
		}
		r := domain.Review{
			Title:      title,
			Category:   cat,
			Designer:   "designer",
			Owner:      users[i%len(users)].Username,
			ReviewBody: "body",
			CreatedAt:  seedBase.Add(time.Duration(i) * time.Hour),
			Votes:      i,
		}
		if err := db.Create(&r).Error; err != nil {
			t.Fatalf("seed review %d: %v", i+1, err)
		}
	}

	for i, rid := range []int64{2, 2, 2, 3, 3, 3} {
		c := domain.Comment{
			Body:      fmt.Sprintf("comment %d", i+1),
			ReviewID:  rid,
			Author:    users[i%len(users)].Username,
			Votes:     i,
			CreatedAt: seedBase.Add(time.Duration(i) * time.Minute),
		}
		if err := db.Create(&c).Error; err != nil {
			t.Fatalf("seed comment %d: %v", i+1, err)
		}
	}
}

func strp(s string) *string { return &s }
