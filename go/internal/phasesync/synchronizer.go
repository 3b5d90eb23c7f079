package phasesync

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spookyvote/costume-clash/go/clients"
	"github.com/spookyvote/costume-clash/go/clients/room_api_client"
	"github.com/spookyvote/costume-clash/go/internal/models"
)

// DefaultPollInterval is the cadence at which the room record is re-read
// while the session has not yet concluded.
const DefaultPollInterval = 2 * time.Second

// RoomFetcher defines what the synchronizer needs from the room API client.
type RoomFetcher interface {
	GetRoom(ctx context.Context, roomCode string) (*room_api_client.RoomResponse, error)
}

// TransitionFunc is invoked from the polling goroutine whenever the adopted
// phase changes. It is never invoked concurrently with itself.
type TransitionFunc func(from, to models.Phase)

// Synchronizer converges the client on a single, monotonically-advancing
// view of the room phase by polling the room record on a fixed cadence.
//
// Transition policy per poll outcome:
//   - snapshot fetched: adopt its phase, unless concluded was already
//     adopted (concluded is sticky - late or stale reads never revert it)
//   - NotFound after concluded: the room was cleaned up post-results;
//     expected, remain concluded
//   - NotFound before concluded: treat as lobby (room not created yet, or
//     a race at creation time); not surfaced as an error
//   - network failure: retain the current phase, log and retry next tick
//
// Once concluded is adopted the polling loop stops entirely.
type Synchronizer struct {
	rooms        RoomFetcher
	roomCode     string
	interval     time.Duration
	clock        clockwork.Clock
	onTransition TransitionFunc

	mu       sync.Mutex
	phase    models.Phase
	snapshot *models.Room
}

// NewSynchronizer creates a synchronizer for one room. onTransition may be
// nil. The initial phase is lobby.
func NewSynchronizer(rooms RoomFetcher, roomCode string, interval time.Duration, clock clockwork.Clock, onTransition TransitionFunc) *Synchronizer {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Synchronizer{
		rooms:        rooms,
		roomCode:     roomCode,
		interval:     interval,
		clock:        clock,
		onTransition: onTransition,
		phase:        models.PhaseLobby,
	}
}

// Phase returns the currently adopted phase.
func (s *Synchronizer) Phase() models.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Snapshot returns the most recent successfully fetched room snapshot, or
// nil if no fetch has succeeded yet.
func (s *Synchronizer) Snapshot() *models.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Run polls the room until the phase reaches concluded or ctx is cancelled.
// The first poll happens immediately, before the first tick. Cancelling ctx
// is the teardown path and returns nil.
func (s *Synchronizer) Run(ctx context.Context) error {
	log.Info().
		Str("room_code", s.roomCode).
		Dur("interval", s.interval).
		Msg("phase synchronizer started")

	if s.pollOnce(ctx) {
		return nil
	}

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Str("room_code", s.roomCode).Msg("phase synchronizer torn down")
			return nil
		case <-ticker.Chan():
			if s.pollOnce(ctx) {
				log.Info().Str("room_code", s.roomCode).Msg("room concluded - polling suppressed")
				return nil
			}
		}
	}
}

// pollOnce performs a single fetch-and-apply cycle. It reports whether the
// terminal phase has been reached and polling should stop.
func (s *Synchronizer) pollOnce(ctx context.Context) bool {
	room, err := s.rooms.GetRoom(ctx, s.roomCode)

	// A response that lands after teardown is ignored on arrival.
	if ctx.Err() != nil {
		return false
	}

	from, to := s.apply(room, err)
	if from != to && s.onTransition != nil {
		s.onTransition(from, to)
	}

	s.mu.Lock()
	terminal := s.phase.Terminal()
	s.mu.Unlock()
	return terminal
}

// apply runs one observation through the transition rules and returns the
// phase before and after.
func (s *Synchronizer) apply(room *room_api_client.RoomResponse, err error) (from, to models.Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from = s.phase

	switch {
	case err == nil:
		observed := models.PhaseFromStatus(room.Status)
		if s.phase.Terminal() && observed != s.phase {
			// Stale or regressed read after conclusion; ignored.
			log.Debug().
				Str("room_code", s.roomCode).
				Str("observed", observed.String()).
				Msg("ignoring phase observation after conclusion")
			break
		}
		s.phase = observed
		s.snapshot = snapshotFromResponse(room)

	case errors.Is(err, clients.ErrNotFound):
		if s.phase.Terminal() {
			// Room record deleted after results were delivered; expected.
			log.Debug().Str("room_code", s.roomCode).Msg("room cleaned up after conclusion")
			break
		}
		// Room not created yet, or a transient race at creation time.
		log.Debug().Str("room_code", s.roomCode).Msg("room not found - treating as lobby")
		s.phase = models.PhaseLobby

	default:
		// Connectivity trouble: retain the current phase, retry next tick.
		log.Warn().
			Err(err).
			Str("room_code", s.roomCode).
			Str("phase", s.phase.String()).
			Msg("room poll failed - retaining phase")
	}

	return from, s.phase
}

func snapshotFromResponse(room *room_api_client.RoomResponse) *models.Room {
	players := make([]models.Player, 0, len(room.Players))
	for _, p := range room.Players {
		players = append(players, models.Player{
			PlayerID:          p.PlayerID,
			Name:              p.Name,
			CostumeUploaded:   p.CostumeUploaded,
			HasFinishedVoting: p.HasFinishedVoting,
		})
	}
	return &models.Room{
		RoomCode: room.RoomCode,
		Phase:    models.PhaseFromStatus(room.Status),
		HostID:   room.HostID,
		Players:  players,
	}
}
