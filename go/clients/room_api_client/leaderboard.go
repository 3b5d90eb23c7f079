package room_api_client

import (
	"context"
	"encoding/json"
	"fmt"
)

type LeaderboardEntry struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Votes      int    `json:"votes"`
	ImageData  string `json:"image_data"`
}

type LeaderboardResponse struct {
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// GetLeaderboard fetches the final standings, sorted by votes descending.
func (c *RoomApiClient) GetLeaderboard(ctx context.Context, roomCode string) ([]LeaderboardEntry, error) {
	body, err := c.Get(ctx, fmt.Sprintf("%s/%s", LeaderboardEndpoint, roomCode))
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	var response LeaderboardResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	return response.Leaderboard, nil
}
