package auth_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/caterflow/caterflow/internal/auth"
	"github.com/caterflow/caterflow/internal/shared"
)

type stubRepo struct {
	user     *auth.User
	sessions map[string]int64
}

func (r *stubRepo) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	if r.user != nil && r.user.Email == email {
		return r.user, nil
	}
	return nil, shared.ErrInvalidCredentials
}

func (r *stubRepo) CreateUser(_ context.Context, email, name, hash string) (int64, error) {
	if r.user != nil && r.user.Email == email {
		return 0, auth.ErrEmailTaken
	}
	r.user = &auth.User{ID: 1, Email: email, Name: name, PasswordHash: hash, IsActive: true}
	return 1, nil
}

func (r *stubRepo) CreateSession(_ context.Context, id string, userID int64, _ time.Time, _, _ string) error {
	if r.sessions == nil {
		r.sessions = make(map[string]int64)
	}
	r.sessions[id] = userID
	return nil
}

func (r *stubRepo) DeleteSession(_ context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

func newAuthHandler(t *testing.T, repo auth.Repository) (*auth.Handler, *shared.SessionManager) {
	t.Helper()
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })
	sessionManager := shared.NewSessionManager(redisClient, "test_session", "secret", time.Hour, false)
	csrfManager := shared.NewCSRFManager("csrfsecret")
	handler := auth.NewHandler(nil, auth.NewService(repo), sessionManager, csrfManager)
	return handler, sessionManager
}

func withSession(t *testing.T, sm *shared.SessionManager, r *http.Request) (*http.Request, *shared.Session) {
	t.Helper()
	sess, err := sm.Load(r.Context(), r)
	require.NoError(t, err)
	return r.WithContext(shared.ContextWithSession(r.Context(), sess)), sess
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginBindsUserToSession(t *testing.T) {
	repo := &stubRepo{user: &auth.User{
		ID: 7, Email: "sales@isfc.com.sa", Name: "Sales",
		PasswordHash: hashPassword(t, "hunter22"), IsActive: true,
	}}
	handler, sm := newAuthHandler(t, repo)

	body, _ := json.Marshal(map[string]string{"email": "sales@isfc.com.sa", "password": "hunter22"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req, sess := withSession(t, sm, req)

	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", sess.User())
	assert.Contains(t, repo.sessions, sess.ID)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	repo := &stubRepo{user: &auth.User{
		ID: 7, Email: "sales@isfc.com.sa",
		PasswordHash: hashPassword(t, "hunter22"), IsActive: true,
	}}
	handler, sm := newAuthHandler(t, repo)

	body, _ := json.Marshal(map[string]string{"email": "sales@isfc.com.sa", "password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req, sess := withSession(t, sm, req)

	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, sess.User())
}

func TestLoginRejectsInactiveAccount(t *testing.T) {
	repo := &stubRepo{user: &auth.User{
		ID: 7, Email: "sales@isfc.com.sa",
		PasswordHash: hashPassword(t, "hunter22"), IsActive: false,
	}}
	handler, sm := newAuthHandler(t, repo)

	body, _ := json.Marshal(map[string]string{"email": "sales@isfc.com.sa", "password": "hunter22"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req, _ = withSession(t, sm, req)

	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := &stubRepo{user: &auth.User{ID: 1, Email: "sales@isfc.com.sa"}}
	handler, sm := newAuthHandler(t, repo)

	body, _ := json.Marshal(map[string]string{
		"email": "sales@isfc.com.sa", "name": "Dup", "password": "longenough",
	})
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req, _ = withSession(t, sm, req)

	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogoutDestroysSession(t *testing.T) {
	repo := &stubRepo{sessions: map[string]int64{}}
	handler, sm := newAuthHandler(t, repo)

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req, sess := withSession(t, sm, req)
	sess.SetUser("7")
	repo.sessions[sess.ID] = 7

	rec := httptest.NewRecorder()
	handler.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, repo.sessions, sess.ID)
}

func TestRequireSession(t *testing.T) {
	_, sm := newAuthHandler(t, &stubRepo{})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mw := auth.RequireSession(nil)(next)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	rec := httptest.NewRecorder()
	mw.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req, sess := withSession(t, sm, req)
	sess.SetUser("7")
	rec = httptest.NewRecorder()
	mw.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
