package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spookyvote/costume-clash/go/clients/room_api_client"
	"github.com/spookyvote/costume-clash/go/internal/models"
	"github.com/spookyvote/costume-clash/go/internal/phasesync"
	"github.com/spookyvote/costume-clash/go/internal/swipe"
	"github.com/spookyvote/costume-clash/go/internal/votes"
)

// RoomAPI defines what a session needs from the room API client.
type RoomAPI interface {
	GetRoom(ctx context.Context, roomCode string) (*room_api_client.RoomResponse, error)
	GetCostumes(ctx context.Context, roomCode string) ([]room_api_client.Costume, error)
	SubmitVotes(ctx context.Context, roomCode, playerID string, votes map[string]int) (*room_api_client.SubmitVotesResponse, error)
	GetLeaderboard(ctx context.Context, roomCode string) ([]room_api_client.LeaderboardEntry, error)
}

// Config carries the session identity and tunables.
type Config struct {
	RoomCode     string
	PlayerID     string
	PollInterval time.Duration
	Clock        clockwork.Clock

	// OnPhaseChange fires on every adopted phase transition.
	OnPhaseChange phasesync.TransitionFunc
	// OnSubmitResult fires after each submission attempt; err is nil on
	// success.
	OnSubmitResult func(err error)
}

// Session owns all state scoped to one player's run through one room:
// the phase synchronizer, the swipe deck, the vote collector and the
// submitter. Teardown cancels the polling loop and any armed timers, so a
// room change never leaks state into the next session.
type Session struct {
	api        RoomAPI
	cfg        Config
	clock      clockwork.Clock
	instanceID string // short ID for logging

	synchronizer *phasesync.Synchronizer
	submitter    *votes.Submitter

	mu          sync.Mutex
	ctx         context.Context
	cancel      context.CancelFunc
	collector   *votes.Collector
	deck        *swipe.Interpreter
	leaderboard []models.LeaderboardEntry
	boardLoaded bool
	submitErr   error
}

// NewSession creates a session. Start must be called before the engine
// does anything.
func NewSession(api RoomAPI, cfg Config) *Session {
	clock := cfg.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	s := &Session{
		api:        api,
		cfg:        cfg,
		clock:      clock,
		instanceID: uuid.New().String()[:8],
		submitter:  votes.NewSubmitter(api, cfg.RoomCode, cfg.PlayerID),
	}
	s.synchronizer = phasesync.NewSynchronizer(api, cfg.RoomCode, cfg.PollInterval, clock, s.handleTransition)
	return s
}

// InstanceID returns the short identifier used to correlate this session's
// log lines.
func (s *Session) InstanceID() string {
	return s.instanceID
}

// Start launches the polling loop. It returns immediately; the loop runs
// until the room concludes or Teardown is called.
func (s *Session) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	s.ctx = runCtx
	s.cancel = cancel
	s.mu.Unlock()

	log.Info().
		Str("instance", s.instanceID).
		Str("room_code", s.cfg.RoomCode).
		Str("player_id", s.cfg.PlayerID).
		Msg("session started")

	go func() {
		if err := s.synchronizer.Run(runCtx); err != nil {
			log.Error().Err(err).Str("instance", s.instanceID).Msg("phase synchronizer failed")
		}
	}()
}

// Teardown stops polling and cancels any armed timers. Safe to call more
// than once.
func (s *Session) Teardown() {
	s.mu.Lock()
	cancel := s.cancel
	deck := s.deck
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if deck != nil {
		deck.Reset()
	}
	log.Info().Str("instance", s.instanceID).Msg("session torn down")
}

// handleTransition reacts to adopted phase changes from the poll loop.
func (s *Session) handleTransition(from, to models.Phase) {
	log.Info().
		Str("instance", s.instanceID).
		Str("from", from.String()).
		Str("to", to.String()).
		Msg("phase transition")

	switch to {
	case models.PhaseActive:
		s.enterVoting()
	case models.PhaseConcluded:
		s.enterResults()
	}

	if s.cfg.OnPhaseChange != nil {
		s.cfg.OnPhaseChange(from, to)
	}
}

// enterVoting loads the costume sequence, drops the player's own entry and
// arms the swipe deck.
func (s *Session) enterVoting() {
	s.mu.Lock()
	ctx := s.ctx
	armed := s.collector != nil
	s.mu.Unlock()
	if armed {
		return
	}

	raw, err := s.api.GetCostumes(ctx, s.cfg.RoomCode)
	if err != nil {
		// The next poll keeps the phase at active; voting simply has
		// nothing to show until a reload succeeds.
		log.Warn().Err(err).Str("instance", s.instanceID).Msg("failed to load costumes")
		return
	}

	costumes := make([]models.Costume, 0, len(raw))
	for _, c := range raw {
		costumes = append(costumes, models.Costume{
			CostumeID:  c.CostumeID,
			PlayerID:   c.PlayerID,
			PlayerName: c.PlayerName,
			ImageData:  c.ImageData,
		})
	}
	costumes = models.FilterOwnCostume(costumes, s.cfg.PlayerID)

	if len(costumes) == 0 {
		log.Warn().Str("instance", s.instanceID).Msg("no costumes to vote on")
		return
	}

	collector := votes.NewCollector(costumes, s.handleComplete)
	deck := swipe.NewInterpreter(s.clock, func(dir swipe.Direction) {
		collector.Commit(dir.Outcome())
	})

	s.mu.Lock()
	s.collector = collector
	s.deck = deck
	s.mu.Unlock()

	log.Info().
		Str("instance", s.instanceID).
		Int("costumes", len(costumes)).
		Msg("voting armed")
}

// handleComplete fires once the cursor passes the last costume.
func (s *Session) handleComplete() {
	go s.submit()
}

// submit runs one submission attempt and records its outcome. The
// submitter's latch makes repeat completion signals no-ops after success.
func (s *Session) submit() {
	s.mu.Lock()
	ctx := s.ctx
	collector := s.collector
	s.mu.Unlock()
	if collector == nil {
		return
	}

	err := s.submitter.Submit(ctx, collector.Costumes(), collector.Decisions())

	s.mu.Lock()
	s.submitErr = err
	s.mu.Unlock()

	if s.cfg.OnSubmitResult != nil {
		s.cfg.OnSubmitResult(err)
	}
}

// RetrySubmit re-attempts a failed submission. A manual user action; does
// nothing after a success.
func (s *Session) RetrySubmit() {
	s.submit()
}

// AdvanceCard resets the swipe deck for the next costume. Call after the
// UI has played out the exit animation for a committed card.
func (s *Session) AdvanceCard() {
	s.mu.Lock()
	deck := s.deck
	s.mu.Unlock()
	if deck != nil {
		deck.Reset()
	}
}

// enterResults fetches the final leaderboard once.
func (s *Session) enterResults() {
	s.mu.Lock()
	ctx := s.ctx
	loaded := s.boardLoaded
	s.mu.Unlock()
	if loaded {
		return
	}

	raw, err := s.api.GetLeaderboard(ctx, s.cfg.RoomCode)
	if err != nil {
		log.Warn().Err(err).Str("instance", s.instanceID).Msg("failed to load leaderboard")
		return
	}

	board := make([]models.LeaderboardEntry, 0, len(raw))
	for _, e := range raw {
		board = append(board, models.LeaderboardEntry{
			PlayerID:   e.PlayerID,
			PlayerName: e.PlayerName,
			Votes:      e.Votes,
			ImageData:  e.ImageData,
		})
	}

	s.mu.Lock()
	s.leaderboard = board
	s.boardLoaded = true
	s.mu.Unlock()
}

// Phase returns the currently adopted room phase.
func (s *Session) Phase() models.Phase {
	return s.synchronizer.Phase()
}

// Snapshot returns the most recent room snapshot, or nil.
func (s *Session) Snapshot() *models.Room {
	return s.synchronizer.Snapshot()
}

// Deck returns the swipe interpreter for the active card, or nil before
// voting is armed.
func (s *Session) Deck() *swipe.Interpreter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deck
}

// Collector returns the vote collector, or nil before voting is armed.
func (s *Session) Collector() *votes.Collector {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collector
}

// Submitted reports whether the vote batch has been successfully sent.
func (s *Session) Submitted() bool {
	return s.submitter.Submitted()
}

// SubmitError returns the error from the most recent submission attempt,
// or nil.
func (s *Session) SubmitError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitErr
}

// Leaderboard returns the final standings once the room has concluded.
func (s *Session) Leaderboard() []models.LeaderboardEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.leaderboard
}
