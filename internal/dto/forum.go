package dto

import (
	"github.com/lib/pq"

	"github.com/zein-dev/kelasku-api/internal/models"
)

// ForumPostRequest defines the create/update payload for a post.
type ForumPostRequest struct {
	Title     string   `json:"title" validate:"required"`
	Content   string   `json:"content" validate:"required"`
	ClassName string   `json:"className" validate:"required,class_name"`
	Tags      []string `json:"tags"`
}

// CommentRequest defines the payload for appending a comment.
type CommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// ToForumPost builds a new post model from the payload.
func (r ForumPostRequest) ToForumPost(authorID string) *models.ForumPost {
	return &models.ForumPost{
		Title:     r.Title,
		Content:   r.Content,
		AuthorID:  authorID,
		ClassName: r.ClassName,
		Tags:      pq.StringArray(r.Tags),
	}
}

// Apply overwrites the mutable fields of an existing post. Author, upvotes
// and comments are never touched here.
func (r ForumPostRequest) Apply(post *models.ForumPost) {
	post.Title = r.Title
	post.Content = r.Content
	post.ClassName = r.ClassName
	if r.Tags != nil {
		post.Tags = pq.StringArray(r.Tags)
	}
}
