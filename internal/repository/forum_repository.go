package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/zein-dev/kelasku-api/internal/models"
)

// ForumRepository provides persistence for forum posts and their comments.
// Comments live in their own table but belong to the post: the foreign key
// cascades on delete, so a thread disappears with its post.
type ForumRepository struct {
	db *sqlx.DB
}

// NewForumRepository creates the repository.
func NewForumRepository(db *sqlx.DB) *ForumRepository {
	return &ForumRepository{db: db}
}

// forumPostRow carries a post joined with its author's identity.
type forumPostRow struct {
	models.ForumPost
	AuthorName  *string `db:"author_name"`
	AuthorClass *string `db:"author_class"`
}

type commentRow struct {
	models.Comment
	AuthorName  *string `db:"author_name"`
	AuthorClass *string `db:"author_class"`
}

const forumPostSelect = `SELECT p.id, p.title, p.content, p.author_id, p.class_name, p.tags, p.upvotes, p.created_at, p.updated_at,
u.name AS author_name, u.class_name AS author_class
FROM forum_posts p
LEFT JOIN users u ON u.id = p.author_id`

const commentSelect = `SELECT c.id, c.post_id, c.content, c.author_id, c.created_at,
u.name AS author_name, u.class_name AS author_class
FROM forum_comments c
LEFT JOIN users u ON u.id = c.author_id`

// List returns posts (optionally scoped to a class) newest first, each with
// its full comment thread and all authors resolved.
func (r *ForumRepository) List(ctx context.Context, filter models.ForumFilter) ([]models.ForumPost, error) {
	query := forumPostSelect
	args := []interface{}{}
	if filter.ClassName != "" {
		query += ` WHERE p.class_name = $1`
		args = append(args, filter.ClassName)
	}
	query += ` ORDER BY p.created_at DESC`

	var rows []forumPostRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list forum posts: %w", err)
	}

	posts := make([]models.ForumPost, 0, len(rows))
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toModel())
		ids = append(ids, row.ID)
	}

	comments, err := r.commentsForPosts(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Comments = comments[posts[i].ID]
	}
	return posts, nil
}

// GetByID returns one post with its comment thread, or sql.ErrNoRows.
func (r *ForumRepository) GetByID(ctx context.Context, id string) (*models.ForumPost, error) {
	var row forumPostRow
	if err := r.db.GetContext(ctx, &row, forumPostSelect+` WHERE p.id = $1`, id); err != nil {
		return nil, err
	}
	post := row.toModel()

	comments, err := r.commentsForPosts(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	post.Comments = comments[id]
	return &post, nil
}

// Create inserts a new post.
func (r *ForumRepository) Create(ctx context.Context, post *models.ForumPost) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if post.CreatedAt.IsZero() {
		post.CreatedAt = now
	}
	post.UpdatedAt = now
	if post.Tags == nil {
		post.Tags = pq.StringArray{}
	}
	const query = `INSERT INTO forum_posts (id, title, content, author_id, class_name, tags, upvotes, created_at, updated_at)
VALUES (:id, :title, :content, :author_id, :class_name, :tags, :upvotes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, post); err != nil {
		return fmt.Errorf("create forum post: %w", err)
	}
	return nil
}

// Update modifies title/content/class/tags of an existing post.
func (r *ForumRepository) Update(ctx context.Context, post *models.ForumPost) error {
	post.UpdatedAt = time.Now().UTC()
	const query = `UPDATE forum_posts SET title = :title, content = :content, class_name = :class_name, tags = :tags, updated_at = :updated_at
WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, post); err != nil {
		return fmt.Errorf("update forum post: %w", err)
	}
	return nil
}

// Delete removes a post; the comment rows cascade.
func (r *ForumRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM forum_posts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete forum post: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete forum post rows affected: %w", err)
	}
	return affected > 0, nil
}

// AddComment appends a comment to the thread with a server-assigned id and
// timestamp. Fails with a foreign key violation if the post is gone.
func (r *ForumRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO forum_comments (id, post_id, content, author_id, created_at)
VALUES (:id, :post_id, :content, :author_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, comment); err != nil {
		return fmt.Errorf("add comment: %w", err)
	}
	return nil
}

// Upvote atomically increments the counter and reports whether the post
// exists. Repeat votes by the same caller are allowed; nothing per-user is
// recorded.
func (r *ForumRepository) Upvote(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE forum_posts SET upvotes = upvotes + 1, updated_at = $2 WHERE id = $1`, id, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("upvote forum post: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("upvote rows affected: %w", err)
	}
	return affected > 0, nil
}

func (r *ForumRepository) commentsForPosts(ctx context.Context, postIDs []string) (map[string][]models.Comment, error) {
	grouped := make(map[string][]models.Comment, len(postIDs))
	if len(postIDs) == 0 {
		return grouped, nil
	}

	query, args, err := sqlx.In(commentSelect+` WHERE c.post_id IN (?) ORDER BY c.created_at`, postIDs)
	if err != nil {
		return nil, fmt.Errorf("build comments query: %w", err)
	}
	query = r.db.Rebind(query)

	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	for _, row := range rows {
		comment := row.Comment
		comment.Author = resolveAuthor(comment.AuthorID, row.AuthorName, row.AuthorClass)
		grouped[comment.PostID] = append(grouped[comment.PostID], comment)
	}
	return grouped, nil
}

func (row forumPostRow) toModel() models.ForumPost {
	post := row.ForumPost
	post.Author = resolveAuthor(post.AuthorID, row.AuthorName, row.AuthorClass)
	post.Comments = []models.Comment{}
	return post
}

// resolveAuthor keeps deleted accounts readable the way the portal always
// rendered them.
func resolveAuthor(id string, name, class *string) *models.UserRef {
	if name == nil {
		return &models.UserRef{ID: id, Name: "Unknown User", ClassName: "N/A"}
	}
	ref := &models.UserRef{ID: id, Name: *name}
	if class != nil {
		ref.ClassName = *class
	}
	return ref
}
