package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhaseFromStatus(t *testing.T) {
	tests := []struct {
		status string
		want   Phase
	}{
		{"waiting", PhaseLobby},
		{"playing", PhaseActive},
		{"finished", PhaseConcluded},
		{"", PhaseLobby},
		{"garbage", PhaseLobby},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PhaseFromStatus(tt.status), "status %q", tt.status)
	}
}

func TestPhaseTerminal(t *testing.T) {
	assert.True(t, PhaseConcluded.Terminal())
	assert.False(t, PhaseLobby.Terminal())
	assert.False(t, PhaseActive.Terminal())
	assert.False(t, PhaseUnknown.Terminal())
}

func TestFilterOwnCostume(t *testing.T) {
	costumes := []Costume{
		{CostumeID: "c-1", PlayerID: "p1"},
		{CostumeID: "c-2", PlayerID: "p2"},
		{CostumeID: "c-3", PlayerID: "p3"},
	}

	eligible := FilterOwnCostume(costumes, "p2")

	assert.Len(t, eligible, 2)
	assert.Equal(t, "c-1", eligible[0].CostumeID)
	assert.Equal(t, "c-3", eligible[1].CostumeID)
}
