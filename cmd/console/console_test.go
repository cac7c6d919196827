package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/smz3-tracker/internal/handlers"
	"github.com/jwebster45206/smz3-tracker/internal/logger"
	"github.com/jwebster45206/smz3-tracker/internal/services/sessions"
	queuePkg "github.com/jwebster45206/smz3-tracker/pkg/queue"
	"github.com/jwebster45206/smz3-tracker/pkg/settings"
	"github.com/jwebster45206/smz3-tracker/pkg/storage"
	"github.com/jwebster45206/smz3-tracker/pkg/world"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input  string
		action *handlers.ActionRequest
	}{
		{"track progressive glove", &handlers.ActionRequest{Type: queuePkg.RequestTypeTrack, Value: "progressive glove"}},
		{"/untrack Hookshot", &handlers.ActionRequest{Type: queuePkg.RequestTypeUntrack, Value: "Hookshot"}},
		{"DEFEAT Kraid", &handlers.ActionRequest{Type: queuePkg.RequestTypeDefeatBoss, Value: "Kraid"}},
		{"revive Phantoon", &handlers.ActionRequest{Type: queuePkg.RequestTypeReviveBoss, Value: "Phantoon"}},
		{"clear Link's House", &handlers.ActionRequest{Type: queuePkg.RequestTypeClear, Target: "Link's House"}},
		{"unclear Link's House", &handlers.ActionRequest{Type: queuePkg.RequestTypeUnclear, Target: "Link's House"}},
		{"reward Eastern Palace", &handlers.ActionRequest{Type: queuePkg.RequestTypeObtainReward, Target: "Eastern Palace"}},
		{"reward Palace of Darkness = Crystal", &handlers.ActionRequest{Type: queuePkg.RequestTypeObtainReward, Target: "Palace of Darkness", Value: "Crystal"}},
		{"lose Eastern Palace", &handlers.ActionRequest{Type: queuePkg.RequestTypeLoseReward, Target: "Eastern Palace"}},
		{"mark Ether Tablet = Ether", &handlers.ActionRequest{Type: queuePkg.RequestTypeMark, Target: "Ether Tablet", Value: "Ether"}},
		{"item Link's House=Lamp", &handlers.ActionRequest{Type: queuePkg.RequestTypeSetItem, Target: "Link's House", Value: "Lamp"}},
		{"medallion Misery Mire = Quake", &handlers.ActionRequest{Type: queuePkg.RequestTypeMedallion, Target: "Misery Mire", Value: "Quake"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cmd, err := parseCommand(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.action, cmd.action)
		})
	}
}

func TestParseCommand_Other(t *testing.T) {
	cmd, err := parseCommand("missing Sahasrahla")
	require.NoError(t, err)
	assert.Equal(t, &missingQuery{kind: "location", name: "Sahasrahla"}, cmd.missing)

	cmd, err = parseCommand("missing boss Ridley")
	require.NoError(t, err)
	assert.Equal(t, &missingQuery{kind: "boss", name: "Ridley"}, cmd.missing)

	cmd, err = parseCommand("missing reward Tower of Hera")
	require.NoError(t, err)
	assert.Equal(t, &missingQuery{kind: "reward", name: "Tower of Hera"}, cmd.missing)

	cmd, err = parseCommand("filter available with keys")
	require.NoError(t, err)
	require.NotNil(t, cmd.setFilter)
	assert.Equal(t, "available_with_keys", *cmd.setFilter)

	cmd, err = parseCommand("filter")
	require.NoError(t, err)
	require.NotNil(t, cmd.setFilter)
	assert.Empty(t, *cmd.setFilter)

	cmd, err = parseCommand("region Eastern Palace")
	require.NoError(t, err)
	require.NotNil(t, cmd.setRegion)
	assert.Equal(t, "Eastern Palace", *cmd.setRegion)

	cmd, err = parseCommand("help")
	require.NoError(t, err)
	assert.True(t, cmd.help)

	for _, bad := range []string{"", "track", "clear", "mark Ether Tablet", "medallion = Quake", "missing", "filter sometimes", "warp Ganon"} {
		_, err := parseCommand(bad)
		assert.Error(t, err, bad)
	}
}

func newAPI(t *testing.T) (*APIClient, *storage.MockStorage) {
	t.Helper()
	store := storage.NewMockStorage()
	mgr := sessions.NewManager(store, logger.Discard())
	mux := http.NewServeMux()
	mux.Handle("/health", handlers.NewHealthHandler(store, nil, logger.Discard()))
	sh := handlers.NewSessionsHandler(mgr, nil, nil, logger.Discard())
	mux.Handle("/v1/sessions", sh)
	mux.Handle("/v1/sessions/", sh)
	mux.Handle("/v1/presets", handlers.NewPresetsHandler(mgr, logger.Discard()))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewAPIClient(srv.URL, srv.Client()), store
}

func TestAPIClient(t *testing.T) {
	api, store := newAPI(t)
	assert.True(t, api.Healthy())

	cfg := settings.Default()
	cfg.Keysanity = settings.KeysanityMetroid
	store.AddPreset("metroid-keys", cfg)
	presets, err := api.ListPresets()
	require.NoError(t, err)
	assert.Equal(t, []string{"metroid-keys"}, presets)

	s, err := api.CreateSession("metroid-keys")
	require.NoError(t, err)
	assert.Equal(t, settings.KeysanityMetroid, s.Settings.Keysanity)

	_, err = api.CreateSession("nope")
	assert.ErrorContains(t, err, "preset not found")

	resp, err := api.Apply(s.ID, handlers.ActionRequest{Type: queuePkg.RequestTypeTrack, Value: "progressive glove"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Changes)
	assert.True(t, resp.Session.Progression.Glove())

	_, err = api.Apply(s.ID, handlers.ActionRequest{Type: queuePkg.RequestTypeTrack, Value: "Excalibur"})
	assert.Error(t, err)

	got, err := api.GetSession(s.ID)
	require.NoError(t, err)
	assert.True(t, got.Progression.Glove())

	locs, err := api.Locations(s.ID, url.Values{"region": {"Eastern Palace"}})
	require.NoError(t, err)
	require.NotEmpty(t, locs.Nodes)
	for _, n := range locs.Nodes {
		assert.Equal(t, "Eastern Palace", n.Region)
	}

	missing, err := api.Missing(s.ID, "location", "Sahasrahla")
	require.NoError(t, err)
	assert.Equal(t, "Green Pendant", missing.Hint)

	_, err = api.GetSession(uuid.New())
	assert.ErrorContains(t, err, "Session not found")
}

func TestTrackerUI_Render(t *testing.T) {
	api, _ := newAPI(t)
	s, err := api.CreateSession("")
	require.NoError(t, err)
	locs, err := api.Locations(s.ID, nil)
	require.NoError(t, err)

	m := NewTrackerUI(api)
	m.session = s
	m.nodes = locs.Nodes
	m.width, m.height = 120, 40
	m.showPresetModal = false
	m.layout()
	m.ready = true
	m.addLog(describeAction(handlers.ActionRequest{Type: queuePkg.RequestTypeTrack, Value: "Lamp"}, []world.Change{
		{Name: "Sewers - Dark Cross", Previous: world.OutOfLogic, Current: world.Available},
	}))
	m.render()

	view := m.View()
	assert.Contains(t, view, "SMZ3 TRACKER")
	meta := m.writeMetadata(80)
	assert.Contains(t, meta, "Sewers - Dark Cross")
	assert.True(t, strings.Contains(meta, "Keysanity: none"))

	for i := 0; i < logLimit+5; i++ {
		m.addLog("line")
	}
	assert.Len(t, m.log, logLimit)
}
