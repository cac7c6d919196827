package queue

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_Validate(t *testing.T) {
	id := uuid.New()
	tests := []struct {
		name    string
		req     Request
		wantErr bool
	}{
		{"track", Request{SessionID: id, Type: RequestTypeTrack, Value: "Hookshot"}, false},
		{"track without value", Request{SessionID: id, Type: RequestTypeTrack}, true},
		{"boss", Request{SessionID: id, Type: RequestTypeDefeatBoss, Value: "Kraid"}, false},
		{"reward", Request{SessionID: id, Type: RequestTypeObtainReward, Target: "Eastern Palace"}, false},
		{"reward with explicit type", Request{SessionID: id, Type: RequestTypeObtainReward, Value: "Green Pendant", Target: "Eastern Palace"}, false},
		{"clear without target", Request{SessionID: id, Type: RequestTypeClear, Value: "Link's House"}, true},
		{"mark", Request{SessionID: id, Type: RequestTypeMark, Value: "Lamp", Target: "Link's House"}, false},
		{"medallion without value", Request{SessionID: id, Type: RequestTypeMedallion, Target: "Misery Mire"}, true},
		{"no session", Request{Type: RequestTypeTrack, Value: "Lamp"}, true},
		{"unknown type", Request{SessionID: id, Type: "teleport", Value: "x"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequest_JSON(t *testing.T) {
	req := NewRequest(uuid.New(), RequestTypeClear, "", "Sahasrahla")
	require.NotEmpty(t, req.RequestID)
	assert.False(t, req.EnqueuedAt.IsZero())

	data, err := req.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"clear"`)
	assert.Contains(t, string(data), `"session_id":"`+req.SessionID.String()+`"`)

	got, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, req.SessionID, got.SessionID)
	assert.Equal(t, req.Target, got.Target)
	assert.True(t, req.EnqueuedAt.Equal(got.EnqueuedAt))

	_, err = FromJSON([]byte(`{"session_id":"nope"}`))
	assert.Error(t, err)
}
