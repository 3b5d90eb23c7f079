package votes

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spookyvote/costume-clash/go/clients/room_api_client"
	"github.com/spookyvote/costume-clash/go/internal/models"
)

// VotesAPI defines what the submitter needs from the room API client.
type VotesAPI interface {
	SubmitVotes(ctx context.Context, roomCode, playerID string, votes map[string]int) (*room_api_client.SubmitVotesResponse, error)
}

// Submitter sends the complete vote batch for a session at most once. The
// in-flight latch stops re-entrant completion signals from double-firing;
// it is released on failure so the user can retry manually. A successful
// submission latches permanently.
type Submitter struct {
	api      VotesAPI
	roomCode string
	playerID string

	mu        sync.Mutex
	inFlight  bool
	submitted bool
}

// NewSubmitter creates a submitter bound to one room and player.
func NewSubmitter(api VotesAPI, roomCode, playerID string) *Submitter {
	return &Submitter{
		api:      api,
		roomCode: roomCode,
		playerID: playerID,
	}
}

// Submitted reports whether a batch has been successfully sent. This flag,
// not the collector's cursor, is the source of truth for "votes are in".
func (s *Submitter) Submitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitted
}

// Submit builds the vote batch over the full costume sequence, defaulting
// undecided costumes to pass, and sends it. Calls after a success or while
// another attempt is in flight are no-ops. A failed attempt releases the
// latch and returns the error so the caller can surface it and retry.
func (s *Submitter) Submit(ctx context.Context, costumes []models.Costume, decisions map[string]int) error {
	s.mu.Lock()
	if s.submitted || s.inFlight {
		s.mu.Unlock()
		return nil
	}
	s.inFlight = true
	s.mu.Unlock()

	batch := models.BuildVoteBatch(costumes, decisions)

	resp, err := s.api.SubmitVotes(ctx, s.roomCode, s.playerID, batch)
	if err != nil {
		s.mu.Lock()
		s.inFlight = false
		s.mu.Unlock()
		log.Error().
			Err(err).
			Str("room_code", s.roomCode).
			Str("player_id", s.playerID).
			Msg("vote submission failed")
		return fmt.Errorf("failed to submit votes: %w", err)
	}

	s.mu.Lock()
	s.inFlight = false
	s.submitted = true
	s.mu.Unlock()

	log.Info().
		Str("room_code", s.roomCode).
		Str("player_id", s.playerID).
		Int("votes", len(batch)).
		Bool("all_finished", resp.AllFinished).
		Msg("votes submitted")
	return nil
}
