package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationStatusTransitions(t *testing.T) {
	tests := []struct {
		from ReservationStatus
		to   ReservationStatus
		ok   bool
	}{
		{ReservationStatusPendingPayment, ReservationStatusConfirmed, true},
		{ReservationStatusPendingPayment, ReservationStatusCancelled, true},
		{ReservationStatusPendingPayment, ReservationStatusCompleted, false},
		{ReservationStatusConfirmed, ReservationStatusCompleted, true},
		{ReservationStatusConfirmed, ReservationStatusCancelled, true},
		{ReservationStatusConfirmed, ReservationStatusPendingPayment, false},
		{ReservationStatusCompleted, ReservationStatusCancelled, false},
		{ReservationStatusCancelled, ReservationStatusConfirmed, false},
		{ReservationStatusCancelled, ReservationStatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestReservationPatchDistinguishesNullFromAbsent(t *testing.T) {
	var patch ReservationPatch
	require.NoError(t, json.Unmarshal([]byte(`{"assignedGuide": null, "history": [{"type":"note","description":"called"}]}`), &patch))

	assert.True(t, patch.AssignedGuide.Set)
	assert.Nil(t, patch.AssignedGuide.Value)
	assert.False(t, patch.DailyAccommodations.Set)
	require.True(t, patch.History.Set)
	require.NotNil(t, patch.History.Value)
	assert.Len(t, *patch.History.Value, 1)
}

func TestReservationJSONOmitsAbsentSubDocuments(t *testing.T) {
	body, err := json.Marshal(Reservation{History: []HistoryEntry{}})
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &raw))
	assert.NotContains(t, raw, "assignedGuide")
	assert.NotContains(t, raw, "dailyAccommodations")
	assert.JSONEq(t, `[]`, string(raw["history"]))
}
