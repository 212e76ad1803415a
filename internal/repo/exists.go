package repo

import (
	"context"

	"gorm.io/gorm"
)

// Key names the table and column an existence probe looks at. Only the
// values declared here exist, so probe SQL never contains request input.
type Key struct {
	table  string
	column string
}

var (
	ReviewKey   = Key{table: "reviews", column: "review_id"}
	CommentKey  = Key{table: "comments", column: "comment_id"}
	CategoryKey = Key{table: "categories", column: "slug"}
	UserKey     = Key{table: "users", column: "username"}
)

func (k Key) String() string { return k.table + "." + k.column }

// Exists reports whether a row with key = value is present.
func Exists(ctx context.Context, db *gorm.DB, key Key, value any) (bool, error) {
	var found bool
	err := db.WithContext(ctx).
		Raw("SELECT EXISTS (SELECT 1 FROM "+key.table+" WHERE "+key.column+" = ?);", value).
		Scan(&found).Error
	return found, err
}
