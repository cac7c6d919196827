package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/smz3-tracker/internal/logger"
	"github.com/jwebster45206/smz3-tracker/internal/services/sessions"
	"github.com/jwebster45206/smz3-tracker/pkg/items"
	queuePkg "github.com/jwebster45206/smz3-tracker/pkg/queue"
	"github.com/jwebster45206/smz3-tracker/pkg/settings"
	"github.com/jwebster45206/smz3-tracker/pkg/storage"
	"github.com/jwebster45206/smz3-tracker/pkg/world"
)

type fakeQueue struct {
	mu       sync.Mutex
	requests []*queuePkg.Request
	history  map[uuid.UUID][]*queuePkg.Request
	cleared  []uuid.UUID
	err      error
}

func (q *fakeQueue) EnqueueRequest(_ context.Context, req *queuePkg.Request) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return q.err
	}
	q.requests = append(q.requests, req)
	return nil
}

func (q *fakeQueue) History(_ context.Context, id uuid.UUID, limit int) ([]*queuePkg.Request, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.err != nil {
		return nil, q.err
	}
	h := q.history[id]
	if limit > 0 && len(h) > limit {
		h = h[len(h)-limit:]
	}
	return h, nil
}

func (q *fakeQueue) ClearHistory(_ context.Context, id uuid.UUID) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.cleared = append(q.cleared, id)
	delete(q.history, id)
	return nil
}

type fakeQueued struct {
	ids []string
}

func (p *fakeQueued) PublishAutoTrackQueued(_ context.Context, _ uuid.UUID, requestID, _, _ string) error {
	p.ids = append(p.ids, requestID)
	return nil
}

type testServer struct {
	handler *SessionsHandler
	store   *storage.MockStorage
	mgr     *sessions.Manager
	queue   *fakeQueue
	queued  *fakeQueued
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := storage.NewMockStorage()
	mgr := sessions.NewManager(store, logger.Discard())
	q := &fakeQueue{}
	p := &fakeQueued{}
	return &testServer{
		handler: NewSessionsHandler(mgr, q, p, logger.Discard()),
		store:   store,
		mgr:     mgr,
		queue:   q,
		queued:  p,
	}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	return rr
}

func (s *testServer) create(t *testing.T, body string) SessionResponse {
	t.Helper()
	rr := s.do(t, http.MethodPost, "/v1/sessions", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var resp SessionResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var e ErrorResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&e))
	return e.Error
}

func TestSessionsHandler_Create(t *testing.T) {
	s := newTestServer(t)

	resp := s.create(t, "")
	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, settings.KeysanityNone, resp.Settings.Keysanity)
	assert.Positive(t, resp.Counts["available"])
	assert.Positive(t, resp.Counts["out_of_logic"])

	resp = s.create(t, `{"settings":{"keysanity":"both","ganon_crystal_count":5}}`)
	assert.Equal(t, settings.KeysanityBoth, resp.Settings.Keysanity)
	assert.Equal(t, 5, resp.Settings.GanonCrystalCount)
	assert.Equal(t, 7, resp.Settings.GanonsTowerCrystalCount, "unset fields keep their defaults")

	cfg := settings.Default()
	cfg.Keysanity = settings.KeysanityZelda
	s.store.AddPreset("zelda-keys", cfg)
	resp = s.create(t, `{"preset":"zelda-keys"}`)
	assert.Equal(t, settings.KeysanityZelda, resp.Settings.Keysanity)

	ids, err := s.mgr.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, ids, 3)
}

func TestSessionsHandler_CreateErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		status   int
		contains string
	}{
		{"malformed json", `{"preset":`, http.StatusBadRequest, "Invalid JSON"},
		{"both preset and settings", `{"preset":"a","settings":{}}`, http.StatusBadRequest, "either preset or settings"},
		{"unknown preset", `{"preset":"missing"}`, http.StatusBadRequest, "preset not found"},
		{"invalid settings", `{"settings":{"tourian_boss_count":9}}`, http.StatusBadRequest, "tourian_boss_count"},
		{"unknown keysanity", `{"settings":{"keysanity":"everything"}}`, http.StatusBadRequest, "Invalid settings"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			rr := s.do(t, http.MethodPost, "/v1/sessions", tt.body)
			assert.Equal(t, tt.status, rr.Code)
			assert.Contains(t, decodeError(t, rr), tt.contains)
		})
	}
}

func TestSessionsHandler_ReadListDelete(t *testing.T) {
	s := newTestServer(t)

	rr := s.do(t, http.MethodGet, "/v1/sessions", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"sessions":[]}`, rr.Body.String())

	created := s.create(t, "")
	path := "/v1/sessions/" + created.ID.String()

	rr = s.do(t, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var got SessionResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, created.ID, got.ID)

	rr = s.do(t, http.MethodGet, "/v1/sessions", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), created.ID.String())

	rr = s.do(t, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = s.do(t, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	rr = s.do(t, http.MethodDelete, path, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSessionsHandler_Routing(t *testing.T) {
	s := newTestServer(t)
	id := s.create(t, "").ID.String()

	tests := []struct {
		name   string
		method string
		path   string
		status int
	}{
		{"bad id", http.MethodGet, "/v1/sessions/not-a-uuid", http.StatusBadRequest},
		{"nil id", http.MethodGet, "/v1/sessions/" + uuid.Nil.String(), http.StatusBadRequest},
		{"put collection", http.MethodPut, "/v1/sessions", http.StatusMethodNotAllowed},
		{"patch session", http.MethodPatch, "/v1/sessions/" + id, http.StatusMethodNotAllowed},
		{"get actions", http.MethodGet, "/v1/sessions/" + id + "/actions", http.StatusMethodNotAllowed},
		{"post locations", http.MethodPost, "/v1/sessions/" + id + "/locations", http.StatusMethodNotAllowed},
		{"unknown subresource", http.MethodGet, "/v1/sessions/" + id + "/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := s.do(t, tt.method, tt.path, "")
			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
		})
	}
}

func TestSessionsHandler_Actions(t *testing.T) {
	s := newTestServer(t)
	id := s.create(t, "").ID
	path := "/v1/sessions/" + id.String() + "/actions"

	rr := s.do(t, http.MethodPost, path, `{"type":"track","value":"progressive glove"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp ActionResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	found := false
	for _, c := range resp.Changes {
		if c.Name == "King Zora" {
			found = true
			assert.Equal(t, world.OutOfLogic, c.Previous)
			assert.Equal(t, world.Available, c.Current)
		}
	}
	assert.True(t, found, "King Zora should have changed")

	tr, err := s.mgr.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 1, tr.Progression().Count(items.ProgressiveGlove))

	rr = s.do(t, http.MethodPost, path, `{"type":"defeat_boss","value":"Kraid"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	tr, err = s.mgr.Get(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, tr.Effective().Defeated(items.Kraid))
}

func TestSessionsHandler_ActionErrors(t *testing.T) {
	s := newTestServer(t)
	id := s.create(t, "").ID
	path := "/v1/sessions/" + id.String() + "/actions"

	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"malformed", path, `{`, http.StatusBadRequest},
		{"unknown type", path, `{"type":"teleport","value":"x"}`, http.StatusBadRequest},
		{"missing value", path, `{"type":"track"}`, http.StatusBadRequest},
		{"unknown item", path, `{"type":"track","value":"Excalibur"}`, http.StatusBadRequest},
		{"unknown location", path, `{"type":"clear","target":"Nowhere"}`, http.StatusNotFound},
		{"bad medallion", path, `{"type":"medallion","value":"Hammer","target":"Misery Mire"}`, http.StatusBadRequest},
		{"missing session", "/v1/sessions/" + uuid.New().String() + "/actions", `{"type":"track","value":"Lamp"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := s.do(t, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
		})
	}

	tr, err := s.mgr.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, tr.Progression().Items(), "failed actions must not be saved")
}

func TestSessionsHandler_ActionSaveFailure(t *testing.T) {
	s := newTestServer(t)
	id := s.create(t, "").ID
	s.store.SetSaveError(errors.New("disk full"))

	rr := s.do(t, http.MethodPost, "/v1/sessions/"+id.String()+"/actions", `{"type":"track","value":"Lamp"}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Internal server error", decodeError(t, rr))
}

func TestSessionsHandler_AutoTrack(t *testing.T) {
	s := newTestServer(t)
	id := s.create(t, "").ID
	path := "/v1/sessions/" + id.String() + "/autotrack"

	rr := s.do(t, http.MethodPost, path, `{"type":"clear","target":"Link's House"}`)
	require.Equal(t, http.StatusAccepted, rr.Code, rr.Body.String())
	var resp AutoTrackResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "queued", resp.Status)

	require.Len(t, s.queue.requests, 1)
	assert.Equal(t, resp.RequestID, s.queue.requests[0].RequestID)
	assert.Equal(t, queuePkg.RequestTypeClear, s.queue.requests[0].Type)
	assert.Equal(t, id, s.queue.requests[0].SessionID)
	assert.Equal(t, []string{resp.RequestID}, s.queued.ids)

	rr = s.do(t, http.MethodPost, path, `{"type":"clear"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = s.do(t, http.MethodPost, "/v1/sessions/"+uuid.New().String()+"/autotrack", `{"type":"track","value":"Lamp"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Len(t, s.queue.requests, 1)

	s.queue.err = errors.New("redis down")
	rr = s.do(t, http.MethodPost, path, `{"type":"track","value":"Lamp"}`)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestSessionsHandler_AutoTrackHistory(t *testing.T) {
	s := newTestServer(t)
	id := s.create(t, "").ID
	path := "/v1/sessions/" + id.String() + "/autotrack"

	rr := s.do(t, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.JSONEq(t, `{"requests":[]}`, rr.Body.String())

	s.queue.history = map[uuid.UUID][]*queuePkg.Request{id: {
		queuePkg.NewRequest(id, queuePkg.RequestTypeTrack, "Lamp", ""),
		queuePkg.NewRequest(id, queuePkg.RequestTypeTrack, "Hookshot", ""),
	}}
	rr = s.do(t, http.MethodGet, path+"?limit=1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var resp AutoTrackHistoryResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp.Requests, 1)
	assert.Equal(t, "Hookshot", resp.Requests[0].Value)

	rr = s.do(t, http.MethodGet, path+"?limit=x", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr = s.do(t, http.MethodPut, path, "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	rr = s.do(t, http.MethodGet, "/v1/sessions/"+uuid.New().String()+"/autotrack", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = s.do(t, http.MethodDelete, "/v1/sessions/"+id.String(), "")
	require.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, []uuid.UUID{id}, s.queue.cleared)
}

func TestSessionsHandler_AutoTrackDisabled(t *testing.T) {
	mgr := sessions.NewManager(storage.NewMockStorage(), logger.Discard())
	h := NewSessionsHandler(mgr, nil, nil, logger.Discard())
	tr, err := mgr.Create(context.Background(), nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/sessions/"+tr.ID().String()+"/autotrack", strings.NewReader(`{"type":"track","value":"Lamp"}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestSessionsHandler_Locations(t *testing.T) {
	s := newTestServer(t)
	id := s.create(t, "").ID.String()
	base := "/v1/sessions/" + id + "/locations"

	rr := s.do(t, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var all LocationsResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&all))
	assert.Equal(t, len(all.Nodes), all.Count)
	assert.NotZero(t, all.Count)

	rr = s.do(t, http.MethodGet, base+"?kind=boss", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var bosses LocationsResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&bosses))
	assert.Less(t, bosses.Count, all.Count)
	for _, n := range bosses.Nodes {
		assert.Equal(t, world.NodeBoss, n.Node.Kind)
	}

	rr = s.do(t, http.MethodGet, base+"?accessibility=available&region="+url.QueryEscape("Eastern Palace"), "")
	require.Equal(t, http.StatusOK, rr.Code)
	var eastern LocationsResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&eastern))
	for _, n := range eastern.Nodes {
		assert.Equal(t, "Eastern Palace", n.Region)
		assert.Equal(t, world.Available, n.Accessibility)
	}

	rr = s.do(t, http.MethodGet, base+"?kind=castle", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	rr = s.do(t, http.MethodGet, base+"?accessibility=maybe", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSessionsHandler_Location(t *testing.T) {
	s := newTestServer(t)
	id := s.create(t, "").ID.String()

	rr := s.do(t, http.MethodGet, "/v1/sessions/"+id+"/locations/"+url.PathEscape("King Zora"), "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var status struct {
		Name          string              `json:"name"`
		Accessibility world.Accessibility `json:"accessibility"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&status))
	assert.Equal(t, "King Zora", status.Name)
	assert.Equal(t, world.OutOfLogic, status.Accessibility)

	rr = s.do(t, http.MethodGet, "/v1/sessions/"+id+"/locations/Atlantis", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSessionsHandler_Missing(t *testing.T) {
	s := newTestServer(t)
	id := s.create(t, "").ID.String()
	base := "/v1/sessions/" + id + "/missing"

	rr := s.do(t, http.MethodGet, base+"?location=Sahasrahla", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp MissingResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Sahasrahla", resp.Node)
	assert.Equal(t, "Green Pendant", resp.Hint)
	assert.Equal(t, [][]string{{"Green Pendant"}}, resp.Options)
	assert.False(t, resp.Satisfied)
	assert.Positive(t, resp.Probes)

	rr = s.do(t, http.MethodGet, base+"?reward="+url.QueryEscape("Tower of Hera"), "")
	require.Equal(t, http.StatusOK, rr.Code)
	resp = MissingResponse{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.NotEmpty(t, resp.Options)

	rr = s.do(t, http.MethodGet, base+"?boss=Kraid", "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = s.do(t, http.MethodGet, base+"?location="+url.QueryEscape("Link's House")+"&baseline=empty", "")
	require.Equal(t, http.StatusOK, rr.Code)
	resp = MissingResponse{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, resp.Satisfied)
}

func TestSessionsHandler_MissingFromEmptyAssumesKeys(t *testing.T) {
	s := newTestServer(t)
	query := "/missing?baseline=empty&location=" + url.QueryEscape("Palace of Darkness - Harmless Hellway")

	hasKey := func(resp MissingResponse) bool {
		for _, opt := range resp.Options {
			for _, item := range opt {
				if strings.Contains(item, "Key") {
					return true
				}
			}
		}
		return false
	}
	missing := func(id string) MissingResponse {
		rr := s.do(t, http.MethodGet, "/v1/sessions/"+id+query, "")
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		var resp MissingResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		require.NotEmpty(t, resp.Options)
		return resp
	}

	plain := missing(s.create(t, "").ID.String())
	assert.False(t, hasKey(plain), "unshuffled keys should be assumed: %v", plain.Options)
	assert.Contains(t, plain.Hint, "Moon Pearl")

	shuffled := missing(s.create(t, `{"settings":{"keysanity":"both"}}`).ID.String())
	assert.True(t, hasKey(shuffled), "shuffled keys must be found: %v", shuffled.Options)
}

func TestSessionsHandler_MissingErrors(t *testing.T) {
	s := newTestServer(t)
	id := s.create(t, "").ID.String()
	base := "/v1/sessions/" + id + "/missing"

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"no node", "", http.StatusBadRequest},
		{"two nodes", "?location=Sahasrahla&boss=Kraid", http.StatusBadRequest},
		{"unknown boss", "?boss=Bowser", http.StatusBadRequest},
		{"unknown location", "?location=Atlantis", http.StatusNotFound},
		{"unknown region", "?reward=Moon", http.StatusNotFound},
		{"bad baseline", "?location=Sahasrahla&baseline=future", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := s.do(t, http.MethodGet, base+tt.query, "")
			assert.Equal(t, tt.status, rr.Code, rr.Body.String())
		})
	}
}

func TestPresetsHandler(t *testing.T) {
	store := storage.NewMockStorage()
	mgr := sessions.NewManager(store, logger.Discard())
	h := NewPresetsHandler(mgr, logger.Discard())

	get := func(path string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		return rr
	}

	rr := get("/v1/presets")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"presets":[]}`, rr.Body.String())

	cfg := settings.Default()
	cfg.TourianBossCount = 2
	store.AddPreset("quick", cfg)
	store.AddPreset("casual", settings.Default())

	rr = get("/v1/presets")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"presets":["casual","quick"]}`, rr.Body.String())

	rr = get("/v1/presets/quick")
	require.Equal(t, http.StatusOK, rr.Code)
	var got settings.Config
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, 2, got.TourianBossCount)

	rr = get("/v1/presets/nope")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/v1/presets", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
