package room_api_client

import (
	"context"
	"encoding/json"
	"fmt"
)

type Costume struct {
	CostumeID  string `json:"costume_id"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Filename   string `json:"filename"`
	Votes      int    `json:"votes"`
	ImageData  string `json:"image_data"`
}

type CostumesResponse struct {
	Costumes []Costume `json:"costumes"`
}

// GetCostumes fetches every costume in the room, including the caller's
// own. Filtering out the caller's submission is the voting engine's job.
func (c *RoomApiClient) GetCostumes(ctx context.Context, roomCode string) ([]Costume, error) {
	body, err := c.Get(ctx, fmt.Sprintf("%s/%s", CostumesEndpoint, roomCode))
	if err != nil {
		return nil, fmt.Errorf("failed to get costumes: %w", err)
	}

	var response CostumesResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w, raw response: %s", err, string(body))
	}

	return response.Costumes, nil
}
