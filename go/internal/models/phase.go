package models

// Phase represents the client's view of a voting room's lifecycle stage.
type Phase string

const (
	PhaseLobby     Phase = "lobby"     // waiting for players to join
	PhaseActive    Phase = "active"    // swipe voting in progress
	PhaseConcluded Phase = "concluded" // results are in; terminal
	PhaseUnknown   Phase = "unknown"
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	return string(p)
}

// Terminal reports whether the phase is sticky: once adopted, no later
// observation may replace it.
func (p Phase) Terminal() bool {
	return p == PhaseConcluded
}

// PhaseFromStatus maps a raw server status string onto a Phase. Unknown or
// missing values fall back to lobby rather than failing.
func PhaseFromStatus(status string) Phase {
	switch status {
	case "waiting":
		return PhaseLobby
	case "playing":
		return PhaseActive
	case "finished":
		return PhaseConcluded
	default:
		return PhaseLobby
	}
}
