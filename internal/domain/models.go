// Package domain defines the persistence models for categories, users,
// reviews and comments. These types are mapped with GORM and form the core
// data layer of the reviews API.
package domain

import "time"

// Category groups reviews (e.g. "strategy", "dexterity"). The slug is the
// natural key referenced by reviews.
type Category struct {
	Slug        string `json:"slug"        gorm:"type:varchar(64);primaryKey"`
	Description string `json:"description" gorm:"type:text;not null"`
}

// TableName returns the database table name for Category.
func (Category) TableName() string { return "categories" }

// User is a reviewer or commenter, keyed by username.
type User struct {
	Username  string `json:"username"   gorm:"type:varchar(64);primaryKey"`
	Name      string `json:"name"       gorm:"type:varchar(255);not null"`
	AvatarURL string `json:"avatar_url" gorm:"column:avatar_url;type:text"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Review is a user's review of a board game.
//
// Fields:
//   - ReviewID: auto-increment primary key.
//   - Category: slug of the owning category (FK, restrict on delete).
//   - Owner: username of the author (FK, restrict on delete).
//   - CreatedAt: set by the database on insert.
//   - Votes: running vote tally; may go negative.
type Review struct {
	ReviewID     int64     `json:"review_id"      gorm:"column:review_id;primaryKey;autoIncrement"`
	Title        string    `json:"title"          gorm:"type:varchar(255);not null"`
	Category     string    `json:"category"       gorm:"type:varchar(64);not null;index:idx_reviews_category"`
	Designer     string    `json:"designer"       gorm:"type:varchar(255)"`
	Owner        string    `json:"owner"          gorm:"type:varchar(64);not null;index:idx_reviews_owner"`
	ReviewBody   string    `json:"review_body"    gorm:"type:text;not null"`
	ReviewImgURL string    `json:"review_img_url" gorm:"column:review_img_url;type:text"`
	CreatedAt    time.Time `json:"created_at"     gorm:"not null;default:CURRENT_TIMESTAMP"`
	Votes        int       `json:"votes"          gorm:"not null;default:0"`

	CategoryRef Category `json:"-" gorm:"foreignKey:Category;references:Slug;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	OwnerRef    User     `json:"-" gorm:"foreignKey:Owner;references:Username;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	// Comments declares the comments.review_id foreign key; it is never loaded.
	Comments []Comment `json:"-" gorm:"foreignKey:ReviewID;references:ReviewID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Review.
func (Review) TableName() string { return "reviews" }

// Comment is a remark on a review. Comments are cascade-deleted with their
// review.
type Comment struct {
	CommentID int64     `json:"comment_id" gorm:"column:comment_id;primaryKey;autoIncrement"`
	Body      string    `json:"body"       gorm:"type:text;not null"`
	ReviewID  int64     `json:"review_id"  gorm:"column:review_id;not null;index:idx_comments_review"`
	Author    string    `json:"author"     gorm:"type:varchar(64);not null"`
	Votes     int       `json:"votes"      gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	AuthorRef User `json:"-" gorm:"foreignKey:Author;references:Username;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for Comment.
func (Comment) TableName() string { return "comments" }

// ReviewRow is one row of a review listing: the review plus the derived
// comment count and the pre-pagination total of matching reviews (the same
// value on every row of a response).
type ReviewRow struct {
	Review
	CommentCount int64 `json:"comment_count" gorm:"column:comment_count"`
	TotalReviews int64 `json:"total_reviews" gorm:"column:total_reviews"`
}

// ReviewDetail is a single review with its comment count.
type ReviewDetail struct {
	Review
	CommentCount int64 `json:"comment_count" gorm:"column:comment_count"`
}

// CommentRow is one row of a comment listing with the pre-pagination total.
type CommentRow struct {
	Comment
	TotalComments int64 `json:"total_comments" gorm:"column:total_comments"`
}
