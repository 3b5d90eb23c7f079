package models

// Player represents one participant as reported in a room snapshot.
type Player struct {
	PlayerID          string `json:"player_id"`
	Name              string `json:"name"`
	CostumeUploaded   bool   `json:"costume_uploaded"`
	HasFinishedVoting bool   `json:"has_finished_voting,omitempty"`
}

// Room is a point-in-time read of a voting room. Snapshots are ephemeral:
// each poll supersedes the previous one, they are never merged.
type Room struct {
	RoomCode string   `json:"room_code"`
	Phase    Phase    `json:"phase"`
	HostID   string   `json:"host_id"`
	Players  []Player `json:"players"`
}
