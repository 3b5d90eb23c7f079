package models

// LeaderboardEntry is one row of the final standings, sorted by votes
// descending on the server.
type LeaderboardEntry struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Votes      int    `json:"votes"`
	ImageData  string `json:"image_data,omitempty"`
}
