package record

import (
	"encoding/json"
	"testing"
	"time"

	"secretsanta/internal/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal_PendingHasNulls(t *testing.T) {
	t.Parallel()

	e := &entities.Event{
		ID:        "evt_1",
		Name:      "Amis",
		DrawDate:  time.Date(2025, 12, 20, 18, 0, 0, 0, time.UTC),
		Status:    entities.StatusPending,
		CreatedAt: time.Date(2025, 11, 1, 9, 0, 0, 0, time.UTC),
		Participants: []entities.Participant{
			{ID: "p_1", Name: "Inès", Phone: "0611", Token: "tk_1", JoinedAt: time.Date(2025, 11, 2, 9, 0, 0, 0, time.UTC)},
		},
	}
	data, err := Marshal(e)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "pending", raw["status"])
	assert.Nil(t, raw["drawnAt"])
	assert.Equal(t, "2025-12-20T18:00:00Z", raw["drawDate"])
	p := raw["participants"].([]any)[0].(map[string]any)
	assert.Nil(t, p["assignedTo"])
	assert.Equal(t, "tk_1", p["token"])
}

func TestUnmarshal_Completed(t *testing.T) {
	t.Parallel()

	data := []byte(`{
		"id": "evt_2", "name": "Club", "drawDate": "2025-12-01T10:00:00Z",
		"status": "completed", "createdAt": "2025-11-01T10:00:00Z", "drawnAt": "2025-12-01T10:00:05Z",
		"participants": [
			{"id": "a", "name": "A", "phone": "", "token": "tk_a", "assignedTo": "b", "joinedAt": "2025-11-02T10:00:00Z"},
			{"id": "b", "name": "B", "phone": "", "token": "tk_b", "assignedTo": "a", "joinedAt": "2025-11-02T11:00:00Z"}
		]
	}`)
	e, err := Unmarshal(data)
	require.NoError(t, err)
	assert.True(t, e.IsCompleted())
	assert.Equal(t, time.Date(2025, 12, 1, 10, 0, 5, 0, time.UTC), e.DrawnAt)
	assert.Equal(t, "b", e.Participants[0].AssignedTo)
}

func TestUnmarshal_RejectsBrokenInvariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"unknown status", `{"id":"e","status":"archived","participants":[]}`},
		{"completed without drawnAt", `{"id":"e","status":"completed","drawnAt":null,"participants":[]}`},
		{"pending with drawnAt", `{"id":"e","status":"pending","drawnAt":"2025-12-01T10:00:00Z","participants":[]}`},
		{"pending with assignment", `{"id":"e","status":"pending","participants":[{"id":"a","assignedTo":"b"}]}`},
		{"completed with missing assignment", `{"id":"e","status":"completed","drawnAt":"2025-12-01T10:00:00Z","participants":[{"id":"a","assignedTo":null}]}`},
		{"not json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Unmarshal([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}
