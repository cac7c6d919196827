package runner

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/smz3-tracker/internal/handlers"
	"github.com/jwebster45206/smz3-tracker/internal/logger"
	"github.com/jwebster45206/smz3-tracker/internal/services/events"
	"github.com/jwebster45206/smz3-tracker/internal/services/queue"
	"github.com/jwebster45206/smz3-tracker/internal/services/sessions"
	"github.com/jwebster45206/smz3-tracker/internal/worker"
	queuePkg "github.com/jwebster45206/smz3-tracker/pkg/queue"
	"github.com/jwebster45206/smz3-tracker/pkg/settings"
	"github.com/jwebster45206/smz3-tracker/pkg/storage"
)

// newStack runs the API and an auto-track worker in process.
func newStack(t *testing.T) *Runner {
	t.Helper()
	log := logger.Discard()
	mr := miniredis.RunT(t)
	client, err := queue.NewClient("redis://"+mr.Addr(), log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	store := storage.NewMockStorage()
	keysanity := settings.Default()
	keysanity.Keysanity = settings.KeysanityBoth
	store.AddPreset("keysanity", keysanity)

	autoTrack := queue.NewAutoTrackQueue(client, log)
	broadcaster := events.NewBroadcaster(client.GetRedisClient(), log)
	mgr := sessions.NewManager(store, log,
		sessions.WithPublisher(broadcaster),
		sessions.WithLocker(sessions.NewRedisLocker(client.GetRedisClient(), time.Minute, log)),
	)

	w := worker.New(autoTrack, mgr, broadcaster, log, "runner-test")
	go func() { _ = w.Start() }()
	t.Cleanup(w.Stop)

	mux := http.NewServeMux()
	sh := handlers.NewSessionsHandler(mgr, autoTrack, broadcaster, log)
	mux.Handle("/v1/sessions", sh)
	mux.Handle("/v1/sessions/", sh)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	r := NewRunner(srv.URL)
	r.Client = srv.Client()
	r.Logger = t.Logf
	return r
}

func TestRunSuite(t *testing.T) {
	r := newStack(t)
	satisfied := false

	suite := TestSuite{
		Name: "glove opens zora",
		Steps: []TestStep{
			{
				Name:   "fresh session",
				Expect: Expectations{Accessibility: map[string]string{"King Zora": "out_of_logic"}},
			},
			{
				Name:   "track glove",
				Action: &handlers.ActionRequest{Type: queuePkg.RequestTypeTrack, Value: "Progressive Glove"},
				Expect: Expectations{
					Changed:       []string{"King Zora"},
					Accessibility: map[string]string{"king zora": "available"},
				},
			},
			{
				Name:    "sahasrahla wants a pendant",
				Missing: &MissingQuery{Location: "Sahasrahla"},
				Expect:  Expectations{Satisfied: &satisfied, HintContains: []string{"green pendant"}},
			},
			{
				Name:   "unknown item",
				Action: &handlers.ActionRequest{Type: queuePkg.RequestTypeTrack, Value: "Atlantis"},
				Expect: Expectations{Status: http.StatusBadRequest},
			},
			{
				Name:      "auto-track hookshot",
				AutoTrack: &handlers.ActionRequest{Type: queuePkg.RequestTypeTrack, Value: "Hookshot"},
			},
			{
				Name:   "reset",
				Reset:  true,
				Expect: Expectations{Accessibility: map[string]string{"King Zora": "out_of_logic"}},
			},
		},
	}

	result, err := r.RunSuite(context.Background(), suite)
	require.NoError(t, err)
	require.Len(t, result.Results, len(suite.Steps))
	for _, sr := range result.Results {
		assert.True(t, sr.Success, "%s: %v", sr.StepName, sr.Error)
	}
	assert.NotEmpty(t, result.Results[4].RequestID)
	assert.True(t, result.Results[5].IsReset)

	_, err = GetSession(context.Background(), r.Client, r.BaseURL, result.Session)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Status)
}

func TestRunSuite_Failures(t *testing.T) {
	r := newStack(t)
	suite := TestSuite{
		Name: "wrong expectations",
		Steps: []TestStep{
			{Name: "bad accessibility", Expect: Expectations{Accessibility: map[string]string{"King Zora": "available"}}},
			{Name: "unknown location", Expect: Expectations{Accessibility: map[string]string{"Atlantis": "available"}}},
			{
				Name:   "unexpected success",
				Action: &handlers.ActionRequest{Type: queuePkg.RequestTypeTrack, Value: "Lamp"},
				Expect: Expectations{Status: http.StatusBadRequest},
			},
		},
	}

	result, err := r.RunSuite(context.Background(), suite)
	require.Error(t, err)
	require.Len(t, result.Results, 3)
	for _, sr := range result.Results {
		assert.False(t, sr.Success, sr.StepName)
	}

	r.ErrorHandlingMode = ErrorHandlingExit
	result, err = r.RunSuite(context.Background(), suite)
	require.Error(t, err)
	assert.Len(t, result.Results, 1)
}

func TestRunSuite_Preset(t *testing.T) {
	r := newStack(t)
	r.PresetOverride = "keysanity"
	_, err := r.RunSuite(context.Background(), TestSuite{Name: "preset"})
	require.NoError(t, err)

	r.PresetOverride = "missing"
	_, err = r.RunSuite(context.Background(), TestSuite{Name: "no such preset"})
	assert.Error(t, err)
}

func TestLoadTestSuiteWithExpansion(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}
	write("a.json", `{"name":"a","steps":[{"name":"one"}]}`)
	write("b.json", `{"name":"b","preset":"keysanity"}`)
	seq := write("seq.json", `{"name":"seq","cases":["a.json","b.json"]}`)
	loop := write("loop.json", `{"name":"loop","cases":["loop.json"]}`)
	both := write("both.json", `{"name":"both","preset":"x","settings":{"keysanity":"none"}}`)

	jobs, err := LoadTestSuiteWithExpansion(seq, dir)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, "a", jobs[0].Name)
	assert.Equal(t, "keysanity", jobs[1].Suite.Preset)

	_, err = LoadTestSuiteWithExpansion(loop, dir)
	assert.ErrorContains(t, err, "cycle")

	_, err = LoadTestSuite(both)
	assert.ErrorContains(t, err, "mutually exclusive")
}

func TestShippedCasesLoad(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "cases", "*.json"))
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, f := range files {
		_, err := LoadTestSuiteWithExpansion(f, filepath.Join("..", "cases"))
		assert.NoError(t, err, f)
	}
}
