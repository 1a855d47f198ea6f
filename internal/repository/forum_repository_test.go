package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zein-dev/kelasku-api/internal/models"
)

func forumPostRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "content", "author_id", "class_name", "tags", "upvotes",
		"created_at", "updated_at", "author_name", "author_class",
	})
}

func forumCommentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "post_id", "content", "author_id", "created_at", "author_name", "author_class",
	})
}

func TestForumRepositoryListResolvesThreads(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewForumRepository(db)
	posts := forumPostRows().
		AddRow("post-1", "Tips UTS", "content", "user-1", "A", "{tips}", 3, time.Now(), time.Now(), "Zein", "A").
		AddRow("post-2", "Info kost", "content", "user-gone", "B", "{}", 0, time.Now(), time.Now(), nil, nil)
	mock.ExpectQuery("SELECT p.id, p.title").
		WillReturnRows(posts)

	comments := forumCommentRows().
		AddRow("com-1", "post-1", "Mantap", "user-2", time.Now(), "Raka", "A")
	mock.ExpectQuery("SELECT c.id, c.post_id").
		WithArgs("post-1", "post-2").
		WillReturnRows(comments)

	result, err := repo.List(context.Background(), models.ForumFilter{})
	require.NoError(t, err)
	require.Len(t, result, 2)

	require.Len(t, result[0].Comments, 1)
	assert.Equal(t, "Raka", result[0].Comments[0].Author.Name)
	assert.Empty(t, result[1].Comments)

	// Deleted accounts render with the placeholder identity.
	assert.Equal(t, "Unknown User", result[1].Author.Name)
	assert.Equal(t, "N/A", result[1].Author.ClassName)
}

func TestForumRepositoryUpvote(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewForumRepository(db)
	mock.ExpectExec("UPDATE forum_posts SET upvotes").
		WithArgs("post-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := repo.Upvote(context.Background(), "post-1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestForumRepositoryUpvoteMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewForumRepository(db)
	mock.ExpectExec("UPDATE forum_posts SET upvotes").
		WithArgs("ghost", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Upvote(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestForumRepositoryAddComment(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewForumRepository(db)
	mock.ExpectExec("INSERT INTO forum_comments").
		WillReturnResult(sqlmock.NewResult(1, 1))

	comment := &models.Comment{PostID: "post-1", Content: "Mantap", AuthorID: "user-2"}
	require.NoError(t, repo.AddComment(context.Background(), comment))
	assert.NotEmpty(t, comment.ID)
	assert.False(t, comment.CreatedAt.IsZero())
}

func TestForumRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewForumRepository(db)
	mock.ExpectExec("DELETE FROM forum_posts").
		WithArgs("post-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.Delete(context.Background(), "post-1")
	require.NoError(t, err)
	assert.True(t, deleted)
}
