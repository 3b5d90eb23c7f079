package room_api_client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spookyvote/costume-clash/go/clients"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRoom(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/room/123456", r.URL.Path)
		assert.Equal(t, "true", r.Header.Get(NgrokSkipWarningHeader))

		json.NewEncoder(w).Encode(RoomResponse{
			RoomCode: "123456",
			Status:   StatusWaiting,
			HostID:   "p1",
			Players: []Player{
				{PlayerID: "p1", Name: "Alice", CostumeUploaded: true},
			},
		})
	}))
	defer server.Close()

	client := NewRoomApiClient(server.URL)
	room, err := client.GetRoom(context.Background(), "123456")

	require.NoError(t, err)
	assert.Equal(t, StatusWaiting, room.Status)
	assert.Equal(t, "p1", room.HostID)
	require.Len(t, room.Players, 1)
	assert.Equal(t, "Alice", room.Players[0].Name)
}

func TestGetRoomNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "Room not found"})
	}))
	defer server.Close()

	client := NewRoomApiClient(server.URL)
	_, err := client.GetRoom(context.Background(), "000000")

	assert.ErrorIs(t, err, clients.ErrNotFound)
}

func TestGetRoomServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewRoomApiClient(server.URL)
	_, err := client.GetRoom(context.Background(), "123456")

	assert.ErrorIs(t, err, clients.ErrNetwork)
}

func TestGetCostumes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/costumes/123456", r.URL.Path)
		json.NewEncoder(w).Encode(CostumesResponse{
			Costumes: []Costume{
				{CostumeID: "c-1", PlayerID: "p1", PlayerName: "Alice"},
				{CostumeID: "c-2", PlayerID: "p2", PlayerName: "Bob"},
			},
		})
	}))
	defer server.Close()

	client := NewRoomApiClient(server.URL)
	costumes, err := client.GetCostumes(context.Background(), "123456")

	require.NoError(t, err)
	require.Len(t, costumes, 2)
	assert.Equal(t, "c-2", costumes[1].CostumeID)
}

func TestSubmitVotes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, SubmitVotesEndpoint, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req SubmitVotesRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "123456", req.RoomCode)
		assert.Equal(t, "p1", req.PlayerID)
		assert.Equal(t, map[string]int{"c-2": 1, "c-3": 0}, req.Votes)

		json.NewEncoder(w).Encode(SubmitVotesResponse{Success: true, AllFinished: true})
	}))
	defer server.Close()

	client := NewRoomApiClient(server.URL)
	resp, err := client.SubmitVotes(context.Background(), "123456", "p1", map[string]int{"c-2": 1, "c-3": 0})

	require.NoError(t, err)
	assert.True(t, resp.AllFinished)
}

func TestSubmitVotesRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(SubmitVotesResponse{Success: false, Error: "already voted"})
	}))
	defer server.Close()

	client := NewRoomApiClient(server.URL)
	_, err := client.SubmitVotes(context.Background(), "123456", "p1", map[string]int{"c-2": 1})

	require.Error(t, err)
	assert.ErrorIs(t, err, clients.ErrValidation)
	assert.Contains(t, err.Error(), "already voted")
}

func TestGetLeaderboard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/leaderboard/123456", r.URL.Path)
		json.NewEncoder(w).Encode(LeaderboardResponse{
			Leaderboard: []LeaderboardEntry{
				{PlayerID: "p2", PlayerName: "Bob", Votes: 5},
				{PlayerID: "p1", PlayerName: "Alice", Votes: 2},
			},
		})
	}))
	defer server.Close()

	client := NewRoomApiClient(server.URL)
	board, err := client.GetLeaderboard(context.Background(), "123456")

	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, "Bob", board[0].PlayerName)
	assert.Equal(t, 5, board[0].Votes)
}

func TestJoinRoom(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, JoinRoomEndpoint, r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "123456", req["room_code"])
		assert.Equal(t, "Alice", req["player_name"])

		json.NewEncoder(w).Encode(JoinRoomResponse{Success: true, PlayerID: "p1", IsHost: true})
	}))
	defer server.Close()

	client := NewRoomApiClient(server.URL)
	resp, err := client.JoinRoom(context.Background(), "123456", "Alice", "")

	require.NoError(t, err)
	assert.Equal(t, "p1", resp.PlayerID)
	assert.True(t, resp.IsHost)
}
