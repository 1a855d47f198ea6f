package router

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/zein-dev/kelasku-api/internal/models"
	"github.com/zein-dev/kelasku-api/internal/service"
	"github.com/zein-dev/kelasku-api/pkg/config"
	"go.uber.org/zap"
)

// In-memory repositories backing the full route table. The integration tests
// exercise the permission gate exactly as a client would: real tokens, real
// middleware chain, no role injection.

type memUserRepo struct {
	byEmail map[string]*models.User
	byID    map[string]*models.User
	audits  []*models.AuditLog
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: map[string]*models.User{}, byID: map[string]*models.User{}}
}

func (m *memUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *memUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *memUserRepo) Create(_ context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	m.byEmail[user.Email] = user
	m.byID[user.ID] = user
	return nil
}

func (m *memUserRepo) CreateAuditLog(_ context.Context, log *models.AuditLog) error {
	m.audits = append(m.audits, log)
	return nil
}

type memScheduleRepo struct {
	items map[string]*models.Schedule
}

func (m *memScheduleRepo) List(_ context.Context, _ models.ScheduleFilter) ([]models.Schedule, error) {
	out := []models.Schedule{}
	for _, item := range m.items {
		out = append(out, *item)
	}
	return out, nil
}

func (m *memScheduleRepo) GetByID(_ context.Context, id string) (*models.Schedule, error) {
	if item, ok := m.items[id]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *memScheduleRepo) Create(_ context.Context, item *models.Schedule) error {
	item.ID = "sch-1"
	m.items[item.ID] = item
	return nil
}

func (m *memScheduleRepo) Update(_ context.Context, item *models.Schedule) error {
	m.items[item.ID] = item
	return nil
}

func (m *memScheduleRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}

type memAssignmentRepo struct{}

func (memAssignmentRepo) List(_ context.Context, _ models.AssignmentFilter) ([]models.Assignment, error) {
	return []models.Assignment{}, nil
}
func (memAssignmentRepo) GetByID(_ context.Context, _ string) (*models.Assignment, error) {
	return nil, sql.ErrNoRows
}
func (memAssignmentRepo) Create(_ context.Context, _ *models.Assignment) error { return nil }
func (memAssignmentRepo) Update(_ context.Context, _ *models.Assignment) error { return nil }
func (memAssignmentRepo) SetCompleted(_ context.Context, _ string, _ bool) (*models.Assignment, error) {
	return nil, sql.ErrNoRows
}
func (memAssignmentRepo) Delete(_ context.Context, _ string) (bool, error) { return false, nil }

type memActivityRepo struct{}

func (memActivityRepo) List(_ context.Context, _ models.ActivityFilter) ([]models.Activity, error) {
	return []models.Activity{}, nil
}
func (memActivityRepo) GetByID(_ context.Context, _ string) (*models.Activity, error) {
	return nil, sql.ErrNoRows
}
func (memActivityRepo) Create(_ context.Context, _ *models.Activity) error { return nil }
func (memActivityRepo) Update(_ context.Context, _ *models.Activity) error { return nil }
func (memActivityRepo) Delete(_ context.Context, _ string) (bool, error)   { return false, nil }
func (memActivityRepo) Register(_ context.Context, _, _ string) (*models.Activity, error) {
	return nil, sql.ErrNoRows
}

type memExternalInfoRepo struct{}

func (memExternalInfoRepo) List(_ context.Context, _ models.ExternalInfoFilter) ([]models.ExternalInfo, error) {
	return []models.ExternalInfo{}, nil
}
func (memExternalInfoRepo) GetByID(_ context.Context, _ string) (*models.ExternalInfo, error) {
	return nil, sql.ErrNoRows
}
func (memExternalInfoRepo) Create(_ context.Context, _ *models.ExternalInfo) error { return nil }
func (memExternalInfoRepo) Update(_ context.Context, _ *models.ExternalInfo) error { return nil }
func (memExternalInfoRepo) Delete(_ context.Context, _ string) (bool, error)       { return false, nil }

type memForumRepo struct {
	posts map[string]*models.ForumPost
}

func (m *memForumRepo) List(_ context.Context, _ models.ForumFilter) ([]models.ForumPost, error) {
	out := []models.ForumPost{}
	for _, post := range m.posts {
		out = append(out, *post)
	}
	return out, nil
}

func (m *memForumRepo) GetByID(_ context.Context, id string) (*models.ForumPost, error) {
	if post, ok := m.posts[id]; ok {
		copied := *post
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (m *memForumRepo) Create(_ context.Context, post *models.ForumPost) error {
	post.ID = "post-1"
	m.posts[post.ID] = post
	return nil
}

func (m *memForumRepo) Update(_ context.Context, post *models.ForumPost) error {
	m.posts[post.ID] = post
	return nil
}

func (m *memForumRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := m.posts[id]; !ok {
		return false, nil
	}
	delete(m.posts, id)
	return true, nil
}

func (m *memForumRepo) AddComment(_ context.Context, comment *models.Comment) error {
	comment.ID = "com-1"
	return nil
}

func (m *memForumRepo) Upvote(_ context.Context, id string) (bool, error) {
	post, ok := m.posts[id]
	if !ok {
		return false, nil
	}
	post.Upvotes++
	return true, nil
}

type testEnv struct {
	engine   *gin.Engine
	users    *memUserRepo
	auth     *service.AuthService
	schedule *memScheduleRepo
	forum    *memForumRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := newMemUserRepo()
	scheduleRepo := &memScheduleRepo{items: map[string]*models.Schedule{}}
	forumRepo := &memForumRepo{posts: map[string]*models.ForumPost{}}

	validate := service.NewValidator()
	authSvc := service.NewAuthService(users, validate, nil, service.AuthConfig{
		TokenSecret: "test-secret",
		TokenExpiry: time.Hour,
		AdminCode:   "activation-code",
		BCryptCost:  bcrypt.MinCost,
	})

	cfg := &config.Config{Env: config.EnvDevelopment, APIPrefix: "/api"}
	engine := New(Deps{
		Config:       cfg,
		Logger:       zap.NewNop(),
		Auth:         authSvc,
		Schedule:     service.NewScheduleService(scheduleRepo, nil, validate, nil),
		Assignment:   service.NewAssignmentService(memAssignmentRepo{}, nil, validate, nil),
		Activity:     service.NewActivityService(memActivityRepo{}, nil, validate, nil),
		ExternalInfo: service.NewExternalInfoService(memExternalInfoRepo{}, nil, validate, nil),
		Forum:        service.NewForumService(forumRepo, nil, validate, nil),
		Affirmation:  service.NewAffirmationService(),
		AuditWriter:  users,
		Tokens:       authSvc,
	})

	return &testEnv{engine: engine, users: users, auth: authSvc, schedule: scheduleRepo, forum: forumRepo}
}

func (env *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	return w
}

func (env *testEnv) registerUser(t *testing.T, email string, asAdmin bool) string {
	t.Helper()
	body := map[string]interface{}{
		"name":      "Zein",
		"email":     email,
		"password":  "secret123",
		"className": "A",
	}
	if asAdmin {
		body["isAdmin"] = true
		body["adminCode"] = "activation-code"
	}

	w := env.request(t, http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code)

	var res struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"OK"}`, w.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/nope", "", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Route not found"}`, w.Body.String())
}

func TestRegisterAssignsUserRoleWithoutCode(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/auth/register", "", map[string]interface{}{
		"name": "Zein", "email": "zein@kelasku.id", "password": "secret123", "className": "A",
		"isAdmin": true, "adminCode": "wrong",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var res struct {
		User models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, models.RoleUser, res.User.Role)
}

func TestScheduleRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/schedule", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"message":"Access denied. No token provided."}`, w.Body.String())
}

func TestScheduleWriteIsAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	userToken := env.registerUser(t, "user@kelasku.id", false)
	adminToken := env.registerUser(t, "admin@kelasku.id", true)

	payload := map[string]interface{}{
		"className": "A", "courseName": "Kalkulus", "day": "Monday",
		"startTime": "08:00", "endTime": "09:40", "room": "R101", "lecturer": "Dr. Sari",
	}

	w := env.request(t, http.MethodPost, "/api/schedule", userToken, payload)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"message":"Access denied. Admins only."}`, w.Body.String())

	w = env.request(t, http.MethodPost, "/api/schedule", adminToken, payload)
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Kalkulus", created["course"])
	assert.Equal(t, "Kalkulus", created["courseName"])
}

func TestAdminMutationWritesAuditLog(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.registerUser(t, "admin@kelasku.id", true)
	audits := len(env.users.audits)

	w := env.request(t, http.MethodPost, "/api/schedule", adminToken, map[string]interface{}{
		"className": "A", "course": "Fisika", "day": "Tuesday",
		"startTime": "08:00", "endTime": "09:40", "room": "R102", "lecturer": "Dr. Budi",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	require.Len(t, env.users.audits, audits+1)
	last := env.users.audits[len(env.users.audits)-1]
	assert.Equal(t, models.AuditActionCreate, last.Action)
	assert.Equal(t, "schedule", last.Resource)
}

func TestScheduleDeleteUnknownID(t *testing.T) {
	env := newTestEnv(t)
	adminToken := env.registerUser(t, "admin@kelasku.id", true)

	w := env.request(t, http.MethodDelete, "/api/schedule/ghost", adminToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Schedule not found"}`, w.Body.String())
}

func TestForumUpdateByStrangerForbidden(t *testing.T) {
	env := newTestEnv(t)
	authorToken := env.registerUser(t, "author@kelasku.id", false)
	strangerToken := env.registerUser(t, "stranger@kelasku.id", false)

	w := env.request(t, http.MethodPost, "/api/forum/posts", authorToken, map[string]interface{}{
		"title": "Tips UTS", "content": "content", "className": "A",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodPut, "/api/forum/posts/post-1", strangerToken, map[string]interface{}{
		"title": "Hijacked", "content": "content", "className": "A",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestForumUpvoteAllowsAnonymous(t *testing.T) {
	env := newTestEnv(t)
	authorToken := env.registerUser(t, "author@kelasku.id", false)

	w := env.request(t, http.MethodPost, "/api/forum/posts", authorToken, map[string]interface{}{
		"title": "Tips UTS", "content": "content", "className": "A",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodPut, "/api/forum/posts/post-1/upvote", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var post models.ForumPost
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	assert.Equal(t, 1, post.Upvotes)
}

func TestAffirmationIsPublic(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/affirmations/daily", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var res map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.NotEmpty(t, res["affirmation"])
}

func TestProfileReturnsSafeUser(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "zein@kelasku.id", false)

	w := env.request(t, http.MethodGet, "/api/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "zein@kelasku.id", body["email"])
	_, leaked := body["password_hash"]
	assert.False(t, leaked)
}
