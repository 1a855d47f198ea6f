package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zein-dev/kelasku-api/internal/models"
)

func activityRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "title", "description", "date", "location", "organizer",
		"participants", "max_participants", "type", "created_by", "created_at", "updated_at",
	})
}

func TestActivityRepositoryListWithFilters(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewActivityRepository(db)
	rows := activityRows().
		AddRow("act-1", "Latihan", "desc", time.Now(), "Lapangan", "Himpunan",
			"{user-1}", 20, "kumpul", "admin-1", time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, title, description, date, location, organizer").
		WithArgs("kumpul").
		WillReturnRows(rows)

	items, err := repo.List(context.Background(), models.ActivityFilter{Type: "kumpul", Date: models.DateRangeUpcoming})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.ActivityKumpul, items[0].Type)
	assert.Equal(t, []string{"user-1"}, []string(items[0].Participants))
}

func TestActivityRepositoryRegisterAppendsParticipant(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewActivityRepository(db)
	rows := activityRows().
		AddRow("act-1", "Latihan", "desc", time.Now(), "Lapangan", "Himpunan",
			"{user-1,user-2}", 20, "kumpul", "admin-1", time.Now(), time.Now())
	mock.ExpectQuery("UPDATE activities").
		WithArgs("act-1", "user-2", sqlmock.AnyArg()).
		WillReturnRows(rows)

	item, err := repo.Register(context.Background(), "act-1", "user-2")
	require.NoError(t, err)
	assert.Contains(t, []string(item.Participants), "user-2")
}

func TestActivityRepositoryRegisterGuardRejected(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewActivityRepository(db)
	mock.ExpectQuery("UPDATE activities").
		WithArgs("act-1", "user-1", sqlmock.AnyArg()).
		WillReturnRows(activityRows())

	_, err := repo.Register(context.Background(), "act-1", "user-1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestActivityRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewActivityRepository(db)
	mock.ExpectExec("DELETE FROM activities").
		WithArgs("ghost").
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, deleted)
}
