package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zein-dev/kelasku-api/internal/dto"
	"github.com/zein-dev/kelasku-api/internal/models"
	appErrors "github.com/zein-dev/kelasku-api/pkg/errors"
)

type assignmentRepoMock struct {
	items map[string]*models.Assignment
}

func newAssignmentRepoMock() *assignmentRepoMock {
	return &assignmentRepoMock{items: map[string]*models.Assignment{}}
}

func (m *assignmentRepoMock) List(_ context.Context, filter models.AssignmentFilter) ([]models.Assignment, error) {
	out := []models.Assignment{}
	for _, item := range m.items {
		if filter.ClassName != "" && item.ClassName != filter.ClassName {
			continue
		}
		if filter.Completed != nil && item.Completed != *filter.Completed {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (m *assignmentRepoMock) GetByID(_ context.Context, id string) (*models.Assignment, error) {
	if item, ok := m.items[id]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *assignmentRepoMock) Create(_ context.Context, item *models.Assignment) error {
	item.ID = "asg-1"
	m.items[item.ID] = item
	return nil
}

func (m *assignmentRepoMock) Update(_ context.Context, item *models.Assignment) error {
	m.items[item.ID] = item
	return nil
}

func (m *assignmentRepoMock) SetCompleted(_ context.Context, id string, completed bool) (*models.Assignment, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	item.Completed = completed
	copied := *item
	return &copied, nil
}

func (m *assignmentRepoMock) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}

func seedAssignment(repo *assignmentRepoMock) *models.Assignment {
	item := &models.Assignment{
		ID:          "asg-1",
		Title:       "Laporan Praktikum",
		Description: "desc",
		ClassName:   "A",
		DueDate:     time.Now().Add(48 * time.Hour),
		Priority:    models.PriorityHigh,
	}
	repo.items[item.ID] = item
	return item
}

func TestAssignmentSetCompletedTogglesBothWays(t *testing.T) {
	repo := newAssignmentRepoMock()
	seedAssignment(repo)
	svc := NewAssignmentService(repo, nil, NewValidator(), nil)

	item, err := svc.SetCompleted(context.Background(), "asg-1", true)
	require.NoError(t, err)
	assert.True(t, item.Completed)

	item, err = svc.SetCompleted(context.Background(), "asg-1", false)
	require.NoError(t, err)
	assert.False(t, item.Completed)
}

func TestAssignmentSetCompletedUnknownID(t *testing.T) {
	svc := NewAssignmentService(newAssignmentRepoMock(), nil, NewValidator(), nil)

	_, err := svc.SetCompleted(context.Background(), "ghost", true)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, "Assignment not found", appErr.Message)
}

func TestAssignmentCreateValidatesPriority(t *testing.T) {
	svc := NewAssignmentService(newAssignmentRepoMock(), nil, NewValidator(), nil)

	req := dto.AssignmentRequest{
		Title:       "Laporan",
		Description: "desc",
		ClassName:   "A",
		DueDate:     time.Now(),
		Priority:    "urgent",
	}
	_, err := svc.Create(context.Background(), req, "admin-1")
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestAssignmentExportCSV(t *testing.T) {
	repo := newAssignmentRepoMock()
	seedAssignment(repo)
	svc := NewAssignmentService(repo, nil, NewValidator(), nil)

	payload, err := svc.ExportCSV(context.Background(), models.AssignmentFilter{ClassName: "A"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Title")
	assert.Contains(t, lines[1], "Laporan Praktikum")
}
