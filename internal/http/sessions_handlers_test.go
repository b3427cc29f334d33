package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillswap/internal/store"
)

type fakeSessionStore struct {
	sessions map[string]store.Session
	skills   map[string]store.Skill
	nextID   int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]store.Session{}, skills: map[string]store.Skill{}}
}

func (f *fakeSessionStore) CreateSession(_ context.Context, skillID, requesterID string, start, end time.Time, notes string) (store.Session, error) {
	sk, ok := f.skills[skillID]
	if !ok {
		return store.Session{}, store.ErrNotFound
	}
	f.nextID++
	se := store.Session{
		ID: fmt.Sprintf("se-%d", f.nextID), SkillID: skillID,
		Participants: []string{requesterID, sk.OwnerID},
		StartTime:    start, EndTime: end, Status: store.StatusPending, Notes: notes,
		Skill: &sk,
	}
	f.sessions[se.ID] = se
	return se, nil
}

func (f *fakeSessionStore) ListSessionsFor(_ context.Context, userID string) ([]store.Session, error) {
	var out []store.Session
	for _, se := range f.sessions {
		for _, p := range se.Participants {
			if p == userID {
				out = append(out, se)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeSessionStore) GetSession(_ context.Context, id string) (store.Session, error) {
	se, ok := f.sessions[id]
	if !ok {
		return store.Session{}, store.ErrNotFound
	}
	return se, nil
}

func (f *fakeSessionStore) UpdateSessionStatus(_ context.Context, id, status string) (store.Session, error) {
	se, ok := f.sessions[id]
	if !ok {
		return store.Session{}, store.ErrNotFound
	}
	se.Status = status
	f.sessions[id] = se
	return se, nil
}

func sessionFixture(t *testing.T, db *fakeSessionStore) store.Session {
	t.Helper()
	db.skills["sk-1"] = store.Skill{ID: "sk-1", Title: "Go basics", OwnerID: "owner"}
	se, err := db.CreateSession(context.Background(), "sk-1", "learner",
		time.Now().Add(time.Hour), time.Now().Add(2*time.Hour), "")
	require.NoError(t, err)
	return se
}

func TestCreateSessionPairsRequesterWithOwner(t *testing.T) {
	db := newFakeSessionStore()
	db.skills["sk-1"] = store.Skill{ID: "sk-1", OwnerID: "owner"}
	api := &SessionsAPI{DB: db}

	body := `{"skillId":"sk-1","startTime":"2026-01-02T10:00:00Z","endTime":"2026-01-02T11:00:00Z","notes":"first one"}`
	rec := httptest.NewRecorder()
	api.Create(rec, authedRequest(http.MethodPost, "/api/sessions", body, "learner"))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Session sessionDTO `json:"session"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, store.StatusPending, resp.Session.Status)
	se := db.sessions[resp.Session.ID]
	assert.Equal(t, []string{"learner", "owner"}, se.Participants)
}

func TestCreateSessionValidation(t *testing.T) {
	api := &SessionsAPI{DB: newFakeSessionStore()}

	cases := map[string]string{
		"missing skill":  `{"startTime":"2026-01-02T10:00:00Z","endTime":"2026-01-02T11:00:00Z"}`,
		"bad start time": `{"skillId":"sk-1","startTime":"tomorrow","endTime":"2026-01-02T11:00:00Z"}`,
		"bad end time":   `{"skillId":"sk-1","startTime":"2026-01-02T10:00:00Z","endTime":""}`,
	}
	for name, body := range cases {
		rec := httptest.NewRecorder()
		api.Create(rec, authedRequest(http.MethodPost, "/api/sessions", body, "u1"))
		assert.Equalf(t, http.StatusBadRequest, rec.Code, "case %q", name)
	}

	// unknown skill -> 404
	rec := httptest.NewRecorder()
	api.Create(rec, authedRequest(http.MethodPost, "/api/sessions",
		`{"skillId":"ghost","startTime":"2026-01-02T10:00:00Z","endTime":"2026-01-02T11:00:00Z"}`, "u1"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetSessionParticipantsOnly(t *testing.T) {
	db := newFakeSessionStore()
	api := &SessionsAPI{DB: db}
	se := sessionFixture(t, db)

	req := authedRequest(http.MethodGet, "/api/sessions/"+se.ID, "", "stranger")
	req.SetPathValue("id", se.ID)
	rec := httptest.NewRecorder()
	api.Get(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	for _, uid := range []string{"learner", "owner"} {
		req = authedRequest(http.MethodGet, "/api/sessions/"+se.ID, "", uid)
		req.SetPathValue("id", se.ID)
		rec = httptest.NewRecorder()
		api.Get(rec, req)
		assert.Equalf(t, http.StatusOK, rec.Code, "participant %s", uid)
	}
}

func TestUpdateSessionStatus(t *testing.T) {
	db := newFakeSessionStore()
	api := &SessionsAPI{DB: db}
	se := sessionFixture(t, db)

	// invalid status value
	req := authedRequest(http.MethodPatch, "/api/sessions/"+se.ID+"/status", `{"status":"maybe"}`, "owner")
	req.SetPathValue("id", se.ID)
	rec := httptest.NewRecorder()
	api.UpdateStatus(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// non-participant
	req = authedRequest(http.MethodPatch, "/api/sessions/"+se.ID+"/status", `{"status":"confirmed"}`, "stranger")
	req.SetPathValue("id", se.ID)
	rec = httptest.NewRecorder()
	api.UpdateStatus(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// participant confirms
	req = authedRequest(http.MethodPatch, "/api/sessions/"+se.ID+"/status", `{"status":"confirmed"}`, "owner")
	req.SetPathValue("id", se.ID)
	rec = httptest.NewRecorder()
	api.UpdateStatus(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, store.StatusConfirmed, db.sessions[se.ID].Status)
}

func TestListSessionsForCaller(t *testing.T) {
	db := newFakeSessionStore()
	api := &SessionsAPI{DB: db}
	sessionFixture(t, db)

	rec := httptest.NewRecorder()
	api.List(rec, authedRequest(http.MethodGet, "/api/sessions", "", "learner"))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Sessions []sessionDTO `json:"sessions"`
		Count    int          `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)

	rec = httptest.NewRecorder()
	api.List(rec, authedRequest(http.MethodGet, "/api/sessions", "", "stranger"))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Zero(t, resp.Count)
}
