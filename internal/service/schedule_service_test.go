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

type scheduleRepoMock struct {
	items map[string]*models.Schedule
}

func newScheduleRepoMock() *scheduleRepoMock {
	return &scheduleRepoMock{items: map[string]*models.Schedule{}}
}

func (m *scheduleRepoMock) List(_ context.Context, filter models.ScheduleFilter) ([]models.Schedule, error) {
	out := []models.Schedule{}
	for _, item := range m.items {
		if filter.ClassName != "" && item.ClassName != filter.ClassName {
			continue
		}
		out = append(out, *item)
	}
	return out, nil
}

func (m *scheduleRepoMock) GetByID(_ context.Context, id string) (*models.Schedule, error) {
	if item, ok := m.items[id]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *scheduleRepoMock) Create(_ context.Context, item *models.Schedule) error {
	item.ID = "sch-1"
	m.items[item.ID] = item
	return nil
}

func (m *scheduleRepoMock) Update(_ context.Context, item *models.Schedule) error {
	m.items[item.ID] = item
	return nil
}

func (m *scheduleRepoMock) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}

func scheduleRequest() dto.ScheduleRequest {
	return dto.ScheduleRequest{
		ClassName: "A",
		Day:       "Monday",
		StartTime: "08:00",
		EndTime:   "09:40",
		Room:      "R101",
		Lecturer:  "Dr. Sari",
	}
}

func TestScheduleCreateAcceptsCourseName(t *testing.T) {
	svc := NewScheduleService(newScheduleRepoMock(), nil, NewValidator(), nil)

	req := scheduleRequest()
	req.CourseName = "Kalkulus"

	item, err := svc.Create(context.Background(), req, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, "Kalkulus", item.Course)
	assert.Equal(t, "Kalkulus", item.CourseName)
	assert.Equal(t, "admin-1", item.CreatedBy)
}

func TestScheduleCreateCourseWinsOverCourseName(t *testing.T) {
	svc := NewScheduleService(newScheduleRepoMock(), nil, NewValidator(), nil)

	req := scheduleRequest()
	req.Course = "Fisika"
	req.CourseName = "Kalkulus"

	item, err := svc.Create(context.Background(), req, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, "Fisika", item.Course)
}

func TestScheduleCreateMissingCourse(t *testing.T) {
	svc := NewScheduleService(newScheduleRepoMock(), nil, NewValidator(), nil)

	_, err := svc.Create(context.Background(), scheduleRequest(), "admin-1")
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestScheduleCreateRejectsUnknownDay(t *testing.T) {
	svc := NewScheduleService(newScheduleRepoMock(), nil, NewValidator(), nil)

	req := scheduleRequest()
	req.Course = "Kalkulus"
	req.Day = "Funday"

	_, err := svc.Create(context.Background(), req, "admin-1")
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}

func TestScheduleUpdateUnknownID(t *testing.T) {
	svc := NewScheduleService(newScheduleRepoMock(), nil, NewValidator(), nil)

	req := scheduleRequest()
	req.Course = "Kalkulus"

	_, err := svc.Update(context.Background(), "ghost", req)
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, "Schedule not found", appErr.Message)
}

func TestScheduleDeleteUnknownID(t *testing.T) {
	svc := NewScheduleService(newScheduleRepoMock(), nil, NewValidator(), nil)

	err := svc.Delete(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestScheduleExportPDF(t *testing.T) {
	repo := newScheduleRepoMock()
	repo.items["sch-1"] = &models.Schedule{
		ID: "sch-1", ClassName: "A", Course: "Kalkulus", Day: "Monday",
		StartTime: "08:00", EndTime: "09:40", Room: "R101", Lecturer: "Dr. Sari",
	}
	svc := NewScheduleService(repo, nil, NewValidator(), nil)

	payload, err := svc.ExportPDF(context.Background(), models.ScheduleFilter{ClassName: "A"})
	require.NoError(t, err)
	assert.True(t, len(payload) > 0)
	assert.Equal(t, "%PDF", string(payload[:4]))
}
