package session

import "github.com/spookyvote/costume-clash/go/internal/models"

// View is which screen the session should currently present.
type View string

const (
	ViewLobby   View = "lobby"   // waiting for the host to start
	ViewVoting  View = "voting"  // swipe deck active
	ViewWaiting View = "waiting" // votes in, waiting for other players
	ViewResults View = "results" // final leaderboard
)

// View derives the active screen from the room phase and the submitted
// flag. The submitted flag, not the cursor, decides when voting is over for
// this player.
func (s *Session) View() View {
	switch s.Phase() {
	case models.PhaseConcluded:
		return ViewResults
	case models.PhaseActive:
		if s.Submitted() {
			return ViewWaiting
		}
		return ViewVoting
	default:
		return ViewLobby
	}
}
