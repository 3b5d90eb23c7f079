package room_api_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/spookyvote/costume-clash/go/clients"
)

type SubmitVotesRequest struct {
	RoomCode string         `json:"room_code"`
	PlayerID string         `json:"player_id"`
	Votes    map[string]int `json:"votes"`
}

type SubmitVotesResponse struct {
	Success     bool   `json:"success"`
	AllFinished bool   `json:"all_finished"`
	Error       string `json:"error,omitempty"`
}

// SubmitVotes sends the complete vote batch for one player. The server
// tallies the scores, marks the player finished and flips the room to
// finished once every player has voted.
func (c *RoomApiClient) SubmitVotes(ctx context.Context, roomCode, playerID string, votes map[string]int) (*SubmitVotesResponse, error) {
	data, err := json.Marshal(SubmitVotesRequest{
		RoomCode: roomCode,
		PlayerID: playerID,
		Votes:    votes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal votes payload: %w", err)
	}

	body, err := c.Post(ctx, SubmitVotesEndpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to submit votes: %w", err)
	}

	var response SubmitVotesResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}
	if !response.Success {
		return nil, fmt.Errorf("%w: submit votes rejected: %s", clients.ErrValidation, response.Error)
	}

	return &response, nil
}
