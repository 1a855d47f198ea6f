package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zein-dev/kelasku-api/internal/dto"
	"github.com/zein-dev/kelasku-api/internal/models"
	appErrors "github.com/zein-dev/kelasku-api/pkg/errors"
)

type activityRepoMock struct {
	items       map[string]*models.Activity
	registerErr error
	listCalls   int
}

func newActivityRepoMock() *activityRepoMock {
	return &activityRepoMock{items: map[string]*models.Activity{}}
}

func (m *activityRepoMock) List(_ context.Context, _ models.ActivityFilter) ([]models.Activity, error) {
	m.listCalls++
	out := make([]models.Activity, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, *item)
	}
	return out, nil
}

func (m *activityRepoMock) GetByID(_ context.Context, id string) (*models.Activity, error) {
	if item, ok := m.items[id]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *activityRepoMock) Create(_ context.Context, item *models.Activity) error {
	item.ID = "act-1"
	m.items[item.ID] = item
	return nil
}

func (m *activityRepoMock) Update(_ context.Context, item *models.Activity) error {
	m.items[item.ID] = item
	return nil
}

func (m *activityRepoMock) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}

func (m *activityRepoMock) Register(_ context.Context, id, userID string) (*models.Activity, error) {
	if m.registerErr != nil {
		return nil, m.registerErr
	}
	item, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	item.Participants = append(item.Participants, userID)
	copied := *item
	return &copied, nil
}

func seedActivity(repo *activityRepoMock, participants []string, max *int) *models.Activity {
	item := &models.Activity{
		ID:              "act-1",
		Title:           "Latihan",
		Description:     "desc",
		Date:            time.Now().Add(24 * time.Hour),
		Location:        "Lapangan",
		Organizer:       "Himpunan",
		Participants:    pq.StringArray(participants),
		MaxParticipants: max,
		Type:            models.ActivityKumpul,
	}
	repo.items[item.ID] = item
	return item
}

func TestActivityRegisterSuccess(t *testing.T) {
	repo := newActivityRepoMock()
	seedActivity(repo, nil, nil)
	svc := NewActivityService(repo, nil, NewValidator(), nil)

	item, err := svc.Register(context.Background(), "act-1", "user-1")
	require.NoError(t, err)
	assert.Contains(t, []string(item.Participants), "user-1")
}

func TestActivityRegisterDuplicate(t *testing.T) {
	repo := newActivityRepoMock()
	seedActivity(repo, []string{"user-1"}, nil)
	repo.registerErr = sql.ErrNoRows
	svc := NewActivityService(repo, nil, NewValidator(), nil)

	_, err := svc.Register(context.Background(), "act-1", "user-1")
	assert.ErrorIs(t, err, appErrors.ErrAlreadyRegistered)
}

func TestActivityRegisterFull(t *testing.T) {
	repo := newActivityRepoMock()
	max := 1
	seedActivity(repo, []string{"user-1"}, &max)
	repo.registerErr = sql.ErrNoRows
	svc := NewActivityService(repo, nil, NewValidator(), nil)

	_, err := svc.Register(context.Background(), "act-1", "user-2")
	assert.ErrorIs(t, err, appErrors.ErrActivityFull)
}

func TestActivityRegisterUnknownActivity(t *testing.T) {
	repo := newActivityRepoMock()
	svc := NewActivityService(repo, nil, NewValidator(), nil)

	_, err := svc.Register(context.Background(), "ghost", "user-1")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, "Activity not found", appErr.Message)
}

func TestActivityRegisterMissingUser(t *testing.T) {
	svc := NewActivityService(newActivityRepoMock(), nil, NewValidator(), nil)

	_, err := svc.Register(context.Background(), "act-1", "")
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestActivityCreateValidatesType(t *testing.T) {
	svc := NewActivityService(newActivityRepoMock(), nil, NewValidator(), nil)

	req := dto.ActivityRequest{
		Title:       "Latihan",
		Description: "desc",
		Date:        time.Now(),
		Location:    "Lapangan",
		Organizer:   "Himpunan",
		Type:        "piknik",
	}
	_, err := svc.Create(context.Background(), req, "admin-1")
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}
