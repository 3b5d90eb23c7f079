package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spookyvote/costume-clash/go/clients"
	"github.com/spookyvote/costume-clash/go/clients/room_api_client"
	"github.com/spookyvote/costume-clash/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRoomAPI is an in-memory stand-in for the voting backend.
type stubRoomAPI struct {
	mu          sync.Mutex
	status      string
	costumes    []room_api_client.Costume
	leaderboard []room_api_client.LeaderboardEntry
	submitErr   error
	submissions []map[string]int
}

func newStubRoomAPI() *stubRoomAPI {
	return &stubRoomAPI{
		status: "waiting",
		costumes: []room_api_client.Costume{
			{CostumeID: "c-own", PlayerID: "p1", PlayerName: "Me"},
			{CostumeID: "c-b", PlayerID: "p2", PlayerName: "Bob"},
			{CostumeID: "c-c", PlayerID: "p3", PlayerName: "Carol"},
		},
		leaderboard: []room_api_client.LeaderboardEntry{
			{PlayerID: "p2", PlayerName: "Bob", Votes: 3},
			{PlayerID: "p1", PlayerName: "Me", Votes: 1},
		},
	}
}

func (s *stubRoomAPI) setStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

func (s *stubRoomAPI) GetRoom(ctx context.Context, roomCode string) (*room_api_client.RoomResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &room_api_client.RoomResponse{RoomCode: roomCode, Status: s.status}, nil
}

func (s *stubRoomAPI) GetCostumes(ctx context.Context, roomCode string) ([]room_api_client.Costume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.costumes, nil
}

func (s *stubRoomAPI) SubmitVotes(ctx context.Context, roomCode, playerID string, votes map[string]int) (*room_api_client.SubmitVotesResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	s.submissions = append(s.submissions, votes)
	s.status = "finished"
	return &room_api_client.SubmitVotesResponse{Success: true, AllFinished: true}, nil
}

func (s *stubRoomAPI) GetLeaderboard(ctx context.Context, roomCode string) ([]room_api_client.LeaderboardEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.leaderboard, nil
}

func (s *stubRoomAPI) submitted() []map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submissions
}

func startSession(t *testing.T, api *stubRoomAPI, clock clockwork.Clock) (*Session, chan models.Phase, chan error) {
	t.Helper()

	phaseCh := make(chan models.Phase, 8)
	resultCh := make(chan error, 8)

	sess := NewSession(api, Config{
		RoomCode:     "123456",
		PlayerID:     "p1",
		PollInterval: 2 * time.Second,
		Clock:        clock,
		OnPhaseChange: func(from, to models.Phase) {
			phaseCh <- to
		},
		OnSubmitResult: func(err error) {
			resultCh <- err
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	t.Cleanup(sess.Teardown)
	sess.Start(ctx)

	return sess, phaseCh, resultCh
}

func waitPhase(t *testing.T, ch chan models.Phase, want models.Phase) {
	t.Helper()
	select {
	case got := <-ch:
		require.Equal(t, want, got)
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for phase %s", want)
	}
}

func TestSessionFullRun(t *testing.T) {
	api := newStubRoomAPI()
	clock := clockwork.NewFakeClock()
	sess, phaseCh, resultCh := startSession(t, api, clock)

	// Lobby until the host starts the game.
	ctx := context.Background()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	assert.Equal(t, ViewLobby, sess.View())

	api.setStatus("playing")
	clock.Advance(2 * time.Second)
	waitPhase(t, phaseCh, models.PhaseActive)
	assert.Equal(t, ViewVoting, sess.View())

	// The deck is armed with the player's own costume filtered out.
	deck := sess.Deck()
	require.NotNil(t, deck)
	collector := sess.Collector()
	require.NotNil(t, collector)
	current, ok := collector.Current()
	require.True(t, ok)
	assert.Equal(t, "c-b", current.CostumeID)
	_, total := collector.Progress()
	assert.Equal(t, 2, total)

	// Card 1: threshold-crossing drag to the right.
	deck.BeginDrag(0, 0)
	deck.MoveDrag(150, 10)
	deck.EndDrag()
	sess.AdvanceCard()

	// Card 2: left action button, committed after the visual delay.
	deck.SwipeLeft()
	clock.Advance(150 * time.Millisecond)

	select {
	case err := <-resultCh:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for submission")
	}

	submissions := api.submitted()
	require.Len(t, submissions, 1)
	assert.Equal(t, map[string]int{"c-b": 1, "c-c": 0}, submissions[0])
	assert.True(t, sess.Submitted())
	assert.Equal(t, ViewWaiting, sess.View())

	// The server flipped to finished when the last vote landed; the next
	// poll concludes the session and loads the leaderboard.
	clock.Advance(2 * time.Second)
	waitPhase(t, phaseCh, models.PhaseConcluded)
	assert.Equal(t, ViewResults, sess.View())

	require.Eventually(t, func() bool {
		return len(sess.Leaderboard()) == 2
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "Bob", sess.Leaderboard()[0].PlayerName)
}

func TestSessionSubmitFailureAllowsRetry(t *testing.T) {
	api := newStubRoomAPI()
	api.submitErr = fmt.Errorf("%w: connection refused", clients.ErrNetwork)
	clock := clockwork.NewFakeClock()
	sess, phaseCh, resultCh := startSession(t, api, clock)

	ctx := context.Background()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	api.setStatus("playing")
	clock.Advance(2 * time.Second)
	waitPhase(t, phaseCh, models.PhaseActive)

	deck := sess.Deck()
	require.NotNil(t, deck)

	// Vote everything via gestures.
	for i := 0; i < 2; i++ {
		deck.BeginDrag(0, 0)
		deck.MoveDrag(200, 0)
		deck.EndDrag()
		sess.AdvanceCard()
	}

	select {
	case err := <-resultCh:
		require.Error(t, err)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for failed submission")
	}
	assert.False(t, sess.Submitted())
	assert.Error(t, sess.SubmitError())
	assert.Equal(t, ViewVoting, sess.View())

	// Manual retry after connectivity returns.
	api.mu.Lock()
	api.submitErr = nil
	api.mu.Unlock()

	sess.RetrySubmit()

	select {
	case err := <-resultCh:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for retried submission")
	}
	assert.True(t, sess.Submitted())
	require.Len(t, api.submitted(), 1)
	assert.NoError(t, sess.SubmitError())
}

func TestSessionTeardownStopsPolling(t *testing.T) {
	api := newStubRoomAPI()
	clock := clockwork.NewFakeClock()
	sess, _, _ := startSession(t, api, clock)

	ctx := context.Background()
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	sess.Teardown()

	// Give the loop a moment to exit, then confirm ticks do nothing.
	time.Sleep(20 * time.Millisecond)
	clock.Advance(10 * time.Second)
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, models.PhaseLobby, sess.Phase())
}
