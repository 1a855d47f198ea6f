package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zein-dev/kelasku-api/internal/dto"
	"github.com/zein-dev/kelasku-api/internal/models"
	appErrors "github.com/zein-dev/kelasku-api/pkg/errors"
)

type externalInfoRepoMock struct {
	items map[string]*models.ExternalInfo
}

func newExternalInfoRepoMock() *externalInfoRepoMock {
	return &externalInfoRepoMock{items: map[string]*models.ExternalInfo{}}
}

func (m *externalInfoRepoMock) List(_ context.Context, _ models.ExternalInfoFilter) ([]models.ExternalInfo, error) {
	out := []models.ExternalInfo{}
	for _, item := range m.items {
		out = append(out, *item)
	}
	return out, nil
}

func (m *externalInfoRepoMock) GetByID(_ context.Context, id string) (*models.ExternalInfo, error) {
	if item, ok := m.items[id]; ok {
		copied := *item
		copied.Poster = &models.PosterRef{ID: item.PostedBy, Name: "Zein", Email: "zein@kelasku.id"}
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *externalInfoRepoMock) Create(_ context.Context, item *models.ExternalInfo) error {
	item.ID = "info-1"
	m.items[item.ID] = item
	return nil
}

func (m *externalInfoRepoMock) Update(_ context.Context, item *models.ExternalInfo) error {
	m.items[item.ID] = item
	return nil
}

func (m *externalInfoRepoMock) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}

func infoPayload() dto.ExternalInfoRequest {
	return dto.ExternalInfoRequest{
		Title:       "Oprec Panitia",
		Description: "desc",
		Category:    "oprec",
		Organizer:   "BEM",
		Link:        "https://example.org/oprec",
	}
}

func TestExternalInfoCreateResolvesPoster(t *testing.T) {
	svc := NewExternalInfoService(newExternalInfoRepoMock(), nil, NewValidator(), nil)

	item, err := svc.Create(context.Background(), infoPayload(), "user-1")
	require.NoError(t, err)
	require.NotNil(t, item.Poster)
	assert.Equal(t, "user-1", item.Poster.ID)
	assert.Equal(t, "zein@kelasku.id", item.Poster.Email)
}

func TestExternalInfoCreateRejectsBadLink(t *testing.T) {
	svc := NewExternalInfoService(newExternalInfoRepoMock(), nil, NewValidator(), nil)

	req := infoPayload()
	req.Link = "ftp://example.org/file"

	_, err := svc.Create(context.Background(), req, "user-1")
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestExternalInfoCreateRejectsUnknownCategory(t *testing.T) {
	svc := NewExternalInfoService(newExternalInfoRepoMock(), nil, NewValidator(), nil)

	req := infoPayload()
	req.Category = "gossip"

	_, err := svc.Create(context.Background(), req, "user-1")
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestExternalInfoGetUnknownID(t *testing.T) {
	svc := NewExternalInfoService(newExternalInfoRepoMock(), nil, NewValidator(), nil)

	_, err := svc.Get(context.Background(), "ghost")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, "Info not found", appErr.Message)
}
