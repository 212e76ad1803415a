package domain

import (
	"encoding/json"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newDomainDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:domain_models?mode=memory&cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Enforce FKs so cascades actually execute.
	db.Exec("PRAGMA foreign_keys=ON;")
	return db
}

func TestTableNames(t *testing.T) {
	cases := map[string]string{
		(Category{}).TableName(): "categories",
		(User{}).TableName():     "users",
		(Review{}).TableName():   "reviews",
		(Comment{}).TableName():  "comments",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("TableName() = %q; want %q", got, want)
		}
	}
}

func TestMigrations_Indexes_AndCascades(t *testing.T) {
	db := newDomainDB(t)

	if err := db.AutoMigrate(&Category{}, &User{}, &Review{}, &Comment{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	m := db.Migrator()
	for _, tbl := range []any{&Category{}, &User{}, &Review{}, &Comment{}} {
		if !m.HasTable(tbl) {
			t.Fatalf("expected table for %T to exist", tbl)
		}
	}
	if !m.HasIndex(&Review{}, "idx_reviews_category") {
		t.Fatalf("expected index idx_reviews_category on reviews")
	}
	if !m.HasIndex(&Comment{}, "idx_comments_review") {
		t.Fatalf("expected index idx_comments_review on comments")
	}

	if err := db.Create(&Category{Slug: "euro game", Description: "Abstact games that involve little luck"}).Error; err != nil {
		t.Fatalf("insert category: %v", err)
	}
	if err := db.Create(&User{Username: "mallionaire", Name: "haz"}).Error; err != nil {
		t.Fatalf("insert user: %v", err)
	}
	rv := &Review{Title: "Agricola", Category: "euro game", Designer: "Uwe Rosenberg", Owner: "mallionaire", ReviewBody: "Farmyard fun!", Votes: 1}
	if err := db.Create(rv).Error; err != nil {
		t.Fatalf("insert review: %v", err)
	}
	if rv.ReviewID == 0 {
		t.Fatalf("expected auto-increment review_id")
	}
	if err := db.Create(&Comment{Body: "I loved this game too!", ReviewID: rv.ReviewID, Author: "mallionaire", CreatedAt: time.Now().UTC()}).Error; err != nil {
		t.Fatalf("insert comment: %v", err)
	}

	// FK: a review in an unknown category is refused.
	bad := &Review{Title: "x", Category: "nope", Owner: "mallionaire", ReviewBody: "x"}
	if err := db.Create(bad).Error; err == nil {
		t.Fatalf("expected FK violation for unknown category")
	}

	// CASCADE: deleting the review deletes its comments.
	if err := db.Delete(&Review{}, "review_id = ?", rv.ReviewID).Error; err != nil {
		t.Fatalf("delete review: %v", err)
	}
	var cnt int64
	if err := db.Model(&Comment{}).Where("review_id = ?", rv.ReviewID).Count(&cnt).Error; err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if cnt != 0 {
		t.Fatalf("expected comments to cascade-delete with their review, got %d", cnt)
	}
}

func TestReviewRow_JSONIsFlat(t *testing.T) {
	row := ReviewRow{Review: Review{ReviewID: 2, Title: "Jenga"}, CommentCount: 3, TotalReviews: 13}
	b, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range []string{"review_id", "title", "comment_count", "total_reviews", "created_at"} {
		if _, ok := got[k]; !ok {
			t.Fatalf("missing key %q in %s", k, b)
		}
	}
	for _, k := range []string{"CategoryRef", "OwnerRef", "Comments", "Review"} {
		if _, ok := got[k]; ok {
			t.Fatalf("association %q must not be serialized", k)
		}
	}
}
