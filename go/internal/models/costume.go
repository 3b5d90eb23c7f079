package models

// Costume is one votable entry: a piece of content another player submitted.
// Immutable for the duration of a session.
type Costume struct {
	CostumeID  string `json:"costume_id"`
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	ImageData  string `json:"image_data,omitempty"`
}

// FilterOwnCostume returns the costumes eligible for playerID to vote on,
// preserving server order.
func FilterOwnCostume(costumes []Costume, playerID string) []Costume {
	eligible := make([]Costume, 0, len(costumes))
	for _, costume := range costumes {
		if costume.PlayerID != playerID {
			eligible = append(eligible, costume)
		}
	}
	return eligible
}
