package votes

import (
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spookyvote/costume-clash/go/internal/models"
)

// Collector holds the per-costume decisions for one player and tracks which
// costume is currently up for voting. onComplete fires when the cursor
// advances past the last costume.
type Collector struct {
	onComplete func()

	mu        sync.Mutex
	costumes  []models.Costume
	decisions map[string]int
	cursor    int
}

// NewCollector creates a collector over an ordered costume sequence. The
// sequence must already exclude the player's own costume. onComplete may be
// nil.
func NewCollector(costumes []models.Costume, onComplete func()) *Collector {
	return &Collector{
		onComplete: onComplete,
		costumes:   costumes,
		decisions:  make(map[string]int, len(costumes)),
	}
}

// Current returns the costume the cursor points at, or false when every
// costume has been decided.
func (c *Collector) Current() (models.Costume, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cursor >= len(c.costumes) {
		return models.Costume{}, false
	}
	return c.costumes[c.cursor], true
}

// Progress returns the cursor position and the total number of costumes.
func (c *Collector) Progress() (current, total int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor, len(c.costumes)
}

// Done reports whether the cursor has advanced past the last costume.
func (c *Collector) Done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor >= len(c.costumes)
}

// Commit records the outcome for the current costume and advances the
// cursor. A commit after the last costume is a no-op. A re-decided costume
// overwrites its earlier outcome.
func (c *Collector) Commit(outcome int) {
	c.mu.Lock()
	if c.cursor >= len(c.costumes) {
		c.mu.Unlock()
		return
	}
	costume := c.costumes[c.cursor]
	c.decisions[costume.CostumeID] = outcome
	c.cursor++
	done := c.cursor >= len(c.costumes)
	c.mu.Unlock()

	log.Debug().
		Str("costume_id", costume.CostumeID).
		Int("outcome", outcome).
		Bool("done", done).
		Msg("vote recorded")

	if done && c.onComplete != nil {
		c.onComplete()
	}
}

// Decisions returns a copy of the decision map recorded so far.
func (c *Collector) Decisions() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int, len(c.decisions))
	for id, outcome := range c.decisions {
		out[id] = outcome
	}
	return out
}

// Costumes returns the full costume sequence the collector iterates over.
func (c *Collector) Costumes() []models.Costume {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.costumes
}
