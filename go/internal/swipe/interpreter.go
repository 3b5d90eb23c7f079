package swipe

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spookyvote/costume-clash/go/internal/models"
)

const (
	// CommitThreshold is the horizontal displacement a drag must exceed at
	// release for a decision to be committed.
	CommitThreshold = 100.0

	// RotationFactor derives the card rotation from the horizontal offset.
	RotationFactor = 0.1

	// VerticalDamping scales vertical motion down to bias drags toward
	// horizontal swipes.
	VerticalDamping = 0.3

	// ButtonCommitDelay is the visual delay between a directional button
	// press setting the exit target and the decision being emitted.
	ButtonCommitDelay = 150 * time.Millisecond
)

// Exit animation targets: far off-screen with exaggerated rotation for a
// committed gesture, a shorter throw for the buttons.
const (
	gestureExitX      = 500.0
	gestureExitY      = 100.0
	gestureExitRotate = 30.0

	buttonExitX      = 150.0
	buttonExitRotate = 25.0
)

// Direction is the side a card was thrown to.
type Direction int

const (
	DirectionLeft  Direction = iota // pass
	DirectionRight                  // favor
)

// Outcome maps the throw direction to the vote value sent to the server.
func (d Direction) Outcome() int {
	if d == DirectionRight {
		return models.VoteFavor
	}
	return models.VotePass
}

func (d Direction) String() string {
	if d == DirectionRight {
		return "right"
	}
	return "left"
}

// Classification is the live read of an in-progress drag.
type Classification int

const (
	Neutral Classification = iota
	CommittingLeft
	CommittingRight
)

// Position is the card's presentation state: translation plus rotation.
type Position struct {
	X      float64
	Y      float64
	Rotate float64
}

// CommitFunc receives exactly one discrete decision per card.
type CommitFunc func(dir Direction)

// Interpreter turns a stream of pointer samples for one active card into at
// most one discrete decision. Gesture releases past CommitThreshold commit
// immediately; the directional buttons set the exit target first and commit
// after ButtonCommitDelay on the injected clock. Both paths produce the
// identical decision. Reset rearms the interpreter for the next card.
type Interpreter struct {
	clock  clockwork.Clock
	commit CommitFunc

	mu        sync.Mutex
	originX   float64
	originY   float64
	position  Position
	dragging  bool
	pending   bool // a delayed button commit is armed
	committed bool // a decision was already emitted for this card
	cancelCh  chan struct{}
}

// NewInterpreter creates an interpreter in the neutral state. commit must
// not be nil.
func NewInterpreter(clock clockwork.Clock, commit CommitFunc) *Interpreter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Interpreter{
		clock:    clock,
		commit:   commit,
		cancelCh: make(chan struct{}),
	}
}

// Position returns the card's current presentation offset and rotation.
func (it *Interpreter) Position() Position {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.position
}

// Dragging reports whether a drag is in progress.
func (it *Interpreter) Dragging() bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.dragging
}

// Classify reports which side the card is currently leaning toward. A drag
// below the threshold is still neutral.
func (it *Interpreter) Classify() Classification {
	it.mu.Lock()
	defer it.mu.Unlock()
	switch {
	case it.position.X > CommitThreshold:
		return CommittingRight
	case it.position.X < -CommitThreshold:
		return CommittingLeft
	default:
		return Neutral
	}
}

// BeginDrag starts tracking a drag at the given pointer position. Ignored
// while a decision for the current card is pending or already committed.
func (it *Interpreter) BeginDrag(x, y float64) {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.pending || it.committed {
		return
	}
	it.originX = x
	it.originY = y
	it.dragging = true
}

// MoveDrag updates the offset from the drag origin. Vertical motion is
// damped and rotation follows the horizontal offset.
func (it *Interpreter) MoveDrag(x, y float64) {
	it.mu.Lock()
	defer it.mu.Unlock()
	if !it.dragging {
		return
	}
	dx := x - it.originX
	dy := y - it.originY
	it.position = Position{
		X:      dx,
		Y:      dy * VerticalDamping,
		Rotate: dx * RotationFactor,
	}
}

// EndDrag releases the drag. Past the threshold it throws the card and
// emits the decision; below it the card snaps back and nothing is emitted.
func (it *Interpreter) EndDrag() {
	it.mu.Lock()
	if !it.dragging {
		it.mu.Unlock()
		return
	}
	it.dragging = false

	dx := it.position.X
	if dx <= CommitThreshold && dx >= -CommitThreshold {
		it.position = Position{}
		it.mu.Unlock()
		return
	}

	dir := DirectionLeft
	if dx > 0 {
		dir = DirectionRight
	}
	it.position = gestureExitPosition(dir)
	it.committed = true
	it.mu.Unlock()

	log.Debug().Str("direction", dir.String()).Msg("swipe committed")
	it.commit(dir)
}

// SwipeLeft throws the card left via the action button: pass.
func (it *Interpreter) SwipeLeft() {
	it.buttonSwipe(DirectionLeft)
}

// SwipeRight throws the card right via the action button: favor.
func (it *Interpreter) SwipeRight() {
	it.buttonSwipe(DirectionRight)
}

// buttonSwipe is the named two-phase transition behind the action buttons:
// set the exit target now, emit the decision after ButtonCommitDelay.
func (it *Interpreter) buttonSwipe(dir Direction) {
	it.mu.Lock()
	if it.pending || it.committed {
		it.mu.Unlock()
		return
	}
	it.pending = true
	it.dragging = false
	it.position = buttonExitPosition(dir)
	cancel := it.cancelCh
	it.mu.Unlock()

	timer := it.clock.NewTimer(ButtonCommitDelay)
	go func() {
		select {
		case <-timer.Chan():
			it.commitDelayed(dir)
		case <-cancel:
			stopAndDrainTimer(timer)
		}
	}()
}

func (it *Interpreter) commitDelayed(dir Direction) {
	it.mu.Lock()
	if it.committed || !it.pending {
		it.mu.Unlock()
		return
	}
	it.pending = false
	it.committed = true
	it.mu.Unlock()

	log.Debug().Str("direction", dir.String()).Msg("button swipe committed")
	it.commit(dir)
}

// Reset rearms the interpreter for the next card: neutral position, no drag,
// any armed delayed commit cancelled.
func (it *Interpreter) Reset() {
	it.mu.Lock()
	defer it.mu.Unlock()
	close(it.cancelCh)
	it.cancelCh = make(chan struct{})
	it.position = Position{}
	it.dragging = false
	it.pending = false
	it.committed = false
}

func gestureExitPosition(dir Direction) Position {
	if dir == DirectionRight {
		return Position{X: gestureExitX, Y: gestureExitY, Rotate: gestureExitRotate}
	}
	return Position{X: -gestureExitX, Y: gestureExitY, Rotate: -gestureExitRotate}
}

func buttonExitPosition(dir Direction) Position {
	if dir == DirectionRight {
		return Position{X: buttonExitX, Rotate: buttonExitRotate}
	}
	return Position{X: -buttonExitX, Rotate: -buttonExitRotate}
}

// stopAndDrainTimer safely stops a timer and drains its channel so the
// goroutine waiting on it cannot leak.
func stopAndDrainTimer(timer clockwork.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.Chan():
		default:
		}
	}
}
