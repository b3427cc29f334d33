package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillswap/internal/store"
	"skillswap/pkg/auth"
)

type fakeAuthStore struct {
	users map[string]store.User // by email
	pws   map[string]string
}

func newFakeAuthStore() *fakeAuthStore {
	return &fakeAuthStore{users: map[string]store.User{}, pws: map[string]string{}}
}

func (f *fakeAuthStore) CreateUser(_ context.Context, name, email, password string) (store.User, error) {
	email = strings.ToLower(email)
	if _, ok := f.users[email]; ok {
		return store.User{}, errors.New("duplicate")
	}
	u := store.User{ID: "u-" + email, Name: name, Email: email}
	f.users[email] = u
	f.pws[email] = password
	return u, nil
}

func (f *fakeAuthStore) VerifyUser(_ context.Context, email, password string) (store.User, error) {
	email = strings.ToLower(email)
	u, ok := f.users[email]
	if !ok || f.pws[email] != password {
		return store.User{}, errors.New("invalid credentials")
	}
	return u, nil
}

func (f *fakeAuthStore) GetUser(_ context.Context, id string) (store.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return store.User{}, store.ErrNotFound
}

func newAuthAPI() (*AuthAPI, *fakeAuthStore) {
	db := newFakeAuthStore()
	return &AuthAPI{DB: db, JWT: auth.New("test-secret")}, db
}

func TestRegisterIssuesToken(t *testing.T) {
	api, _ := newAuthAPI()

	rec := httptest.NewRecorder()
	api.Register(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"name":"Alice","email":"alice@example.com","password":"password123"}`)))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp tokenResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice@example.com", resp.User.Email)

	uid, err := auth.New("test-secret").Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, uid)
}

func TestRegisterValidation(t *testing.T) {
	api, _ := newAuthAPI()

	cases := map[string]string{
		"no name":        `{"email":"a@b.co","password":"password123"}`,
		"bad email":      `{"name":"A","email":"nope","password":"password123"}`,
		"short password": `{"name":"A","email":"a@b.co","password":"short"}`,
	}
	for name, body := range cases {
		rec := httptest.NewRecorder()
		api.Register(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body)))
		assert.Equalf(t, http.StatusBadRequest, rec.Code, "case %q", name)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	api, _ := newAuthAPI()
	body := `{"name":"Alice","email":"alice@example.com","password":"password123"}`

	rec := httptest.NewRecorder()
	api.Register(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body)))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	api.Register(rec, httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body)))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin(t *testing.T) {
	api, db := newAuthAPI()
	_, err := db.CreateUser(context.Background(), "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	api.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"alice@example.com","password":"password123"}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	api.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"alice@example.com","password":"wrong"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe(t *testing.T) {
	api, db := newAuthAPI()
	u, err := db.CreateUser(context.Background(), "Alice", "alice@example.com", "password123")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	api.Me(rec, authedRequest(http.MethodGet, "/api/auth/me", "", u.ID))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User userDTO `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, u.ID, resp.User.ID)

	// unauthenticated context
	rec = httptest.NewRecorder()
	api.Me(rec, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
