package models

import (
	"time"

	"github.com/lib/pq"
)

// ForumPost represents a discussion thread. AuthorID holds the stored user
// id; Author is populated at read time. Comments are owned by the post and
// are removed with it.
type ForumPost struct {
	ID        string         `db:"id" json:"id"`
	Title     string         `db:"title" json:"title"`
	Content   string         `db:"content" json:"content"`
	AuthorID  string         `db:"author_id" json:"-"`
	Author    *UserRef       `db:"-" json:"author"`
	ClassName string         `db:"class_name" json:"className"`
	Tags      pq.StringArray `db:"tags" json:"tags"`
	Upvotes   int            `db:"upvotes" json:"upvotes"`
	Comments  []Comment      `db:"-" json:"comments"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time      `db:"updated_at" json:"updatedAt"`
}

// Comment is a reply embedded in a forum post's thread.
type Comment struct {
	ID        string    `db:"id" json:"id"`
	PostID    string    `db:"post_id" json:"-"`
	Content   string    `db:"content" json:"content"`
	AuthorID  string    `db:"author_id" json:"-"`
	Author    *UserRef  `db:"-" json:"author"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// ForumFilter captures the list query parameters.
type ForumFilter struct {
	ClassName string
}
