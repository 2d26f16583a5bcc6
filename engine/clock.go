package engine

import (
	"math"
	"time"

	"github.com/daystram/knight/board"
)

const (
	MaxDepth = board.MaxDepth
	MaxNodes = math.MaxUint64

	DefaultMovesToGo = 30

	movetimeMargin = 50 * time.Millisecond
)

type ClockMode uint8

const (
	ClockModeInfinite ClockMode = iota
	ClockModeMovetime
	ClockModeDepth
	ClockModeNodes
)

func (m ClockMode) String() string {
	switch m {
	case ClockModeInfinite:
		return "infinite"
	case ClockModeMovetime:
		return "movetime"
	case ClockModeDepth:
		return "depth"
	case ClockModeNodes:
		return "nodes"
	default:
		return ""
	}
}

type ClockConfig struct {
	WhiteTime      time.Duration
	BlackTime      time.Duration
	WhiteIncrement time.Duration
	BlackIncrement time.Duration
	MovesToGo      int

	Movetime time.Duration

	Depth int

	Nodes uint64

	Infinite bool
}

// Clock holds the limits of one search. The deadline is fixed when the clock starts and is compared
// against the wall clock on every poll.
type Clock struct {
	mode        ClockMode
	start       time.Time
	deadline    time.Time
	allocated   time.Duration
	targetDepth int
	targetNodes uint64
}

func NewClock() *Clock {
	return &Clock{
		targetDepth: MaxDepth,
		targetNodes: MaxNodes,
	}
}

// Start computes the limits for a search by turn. With a game clock the budget is the remaining time
// divided by the moves to go, less a safety margin, plus the increment. When the mover has no clock the
// opponent's is used.
func (c *Clock) Start(now time.Time, turn board.Side, cfg *ClockConfig) {
	c.start = now
	c.deadline = time.Time{}
	c.allocated = 0
	c.targetDepth = MaxDepth
	c.targetNodes = MaxNodes
	c.mode = ClockModeInfinite

	remaining, inc := cfg.WhiteTime, cfg.WhiteIncrement
	otherRemaining, otherInc := cfg.BlackTime, cfg.BlackIncrement
	if turn == board.SideBlack {
		remaining, inc, otherRemaining, otherInc = otherRemaining, otherInc, remaining, inc
	}
	if remaining <= 0 && otherRemaining > 0 {
		// only the opponent's clock was sent, assume both sides play the same control
		remaining, inc = otherRemaining, otherInc
	}
	movesToGo := cfg.MovesToGo
	if movesToGo <= 0 {
		movesToGo = DefaultMovesToGo
	}
	if cfg.Movetime > 0 {
		remaining, movesToGo = cfg.Movetime, 1
	}

	if cfg.Depth > 0 {
		c.mode = ClockModeDepth
		c.targetDepth = min(cfg.Depth, MaxDepth)
	}
	if cfg.Nodes > 0 {
		c.mode = ClockModeNodes
		c.targetNodes = cfg.Nodes
	}
	if remaining > 0 && !cfg.Infinite {
		c.mode = ClockModeMovetime
		c.allocated = remaining/time.Duration(movesToGo) - movetimeMargin + inc
		if c.allocated < 0 {
			c.allocated = 0
		}
		c.deadline = now.Add(c.allocated)
	}
}

func (c *Clock) Mode() ClockMode {
	return c.mode
}

func (c *Clock) Allocated() time.Duration {
	return c.allocated
}

func (c *Clock) TargetDepth() int {
	return c.targetDepth
}

// Expired reports whether the time budget has run out. Clocks without a budget never expire.
func (c *Clock) Expired(now time.Time) bool {
	return !c.deadline.IsZero() && now.After(c.deadline)
}

func (c *Clock) DoneByNodes(nodes uint64) bool {
	return nodes >= c.targetNodes
}

func (c *Clock) Elapsed(now time.Time) time.Duration {
	return now.Sub(c.start)
}
