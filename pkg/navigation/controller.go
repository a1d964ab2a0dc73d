// Package navigation owns the current position within the ordered photo
// collection and reconciles position changes coming from several UI
// controls (stepper, timeline slider, grid selection).
package navigation

import (
	"sync"
	"time"

	"github.com/mstefano/lightbox/pkg/catalog"
)

// Direction is the last known browsing direction. The prefetch window is
// skewed toward it.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionForward
	DirectionBackward
)

// String returns the string representation of Direction.
func (d Direction) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	default:
		return "none"
	}
}

// State is the controller's navigation state. Stepping and Jumping are
// transient; the controller returns to Idle once the cooldown elapses.
type State int

const (
	StateIdle State = iota
	StateStepping
	StateJumping
)

// String returns the string representation of State.
func (s State) String() string {
	switch s {
	case StateStepping:
		return "stepping"
	case StateJumping:
		return "jumping"
	default:
		return "idle"
	}
}

// Source identifies which control most recently changed the position.
// It is used to suppress echo updates between controls.
type Source string

const (
	SourceStep   Source = "step"
	SourceJump   Source = "jump"
	SourceSelect Source = "select"
)

// DefaultCooldown is how long a source's explicit change holds off
// reactive updates from other sources.
const DefaultCooldown = 400 * time.Millisecond

// Controller tracks the current position in a collection.
//
// Every explicit call (Step, JumpTo, Select) records its source and arms
// a cooldown. While the cooldown is active, reactive updates from a
// different source should consult ShouldSuppress and drop themselves;
// this keeps a coarse control (the timeline slider) and a fine control
// (the stepper) from overwriting each other in a feedback loop. The
// cooldown is a heuristic, not a mutual-exclusion proof: under
// pathological timing two sources can still race, which matches the
// behavior this design is modeled on.
type Controller struct {
	mu         sync.Mutex
	collection *catalog.Collection
	index      int
	direction  Direction
	state      State
	source     Source
	deadline   time.Time
	cooldown   time.Duration
	now        func() time.Time
}

// Option configures a Controller.
type Option func(*Controller)

// WithStartIndex sets the session start position (default: first item).
func WithStartIndex(i int) Option {
	return func(c *Controller) { c.index = i }
}

// WithCooldown overrides the source cooldown duration.
func WithCooldown(d time.Duration) Option {
	return func(c *Controller) { c.cooldown = d }
}

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New creates a controller over the given collection.
// The collection may be nil or empty; navigation calls are then no-ops
// until SetCollection provides one.
func New(col *catalog.Collection, opts ...Option) *Controller {
	c := &Controller{
		collection: col,
		cooldown:   DefaultCooldown,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if n := col.Len(); n > 0 {
		c.index = clamp(c.index, n)
	} else {
		c.index = 0
	}
	return c
}

// SetCollection replaces the collection wholesale (catalog refresh).
// The current index is clamped into the new range.
func (c *Controller) SetCollection(col *catalog.Collection) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.collection = col
	if n := col.Len(); n > 0 {
		c.index = clamp(c.index, n)
	} else {
		c.index = 0
		c.direction = DirectionNone
	}
}

// Step moves the position by one in the given direction, wrapping at
// both ends of the collection. No-op on an empty collection or with
// DirectionNone.
func (c *Controller) Step(dir Direction) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.collection.Len()
	if n == 0 || dir == DirectionNone {
		return c.index
	}

	switch dir {
	case DirectionForward:
		c.index = (c.index + 1) % n
	case DirectionBackward:
		c.index = (c.index - 1 + n) % n
	}
	c.direction = dir
	c.record(SourceStep, StateStepping)
	return c.index
}

// Select sets the position directly, without search.
// Out-of-range indices and empty collections are no-ops.
func (c *Controller) Select(index int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.collection.Len()
	if n == 0 || index < 0 || index >= n {
		return c.index
	}

	if index > c.index {
		c.direction = DirectionForward
	} else if index < c.index {
		c.direction = DirectionBackward
	}
	c.index = index
	c.record(SourceSelect, StateJumping)
	return c.index
}

// Position returns the current index and last known direction.
func (c *Controller) Position() (int, Direction) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index, c.direction
}

// State returns the navigation state. Transient states decay to Idle
// once the cooldown deadline passes.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.now().After(c.deadline) {
		return StateIdle
	}
	return c.state
}

// ActiveSource returns the source of the most recent explicit change,
// or "" once the cooldown has elapsed.
func (c *Controller) ActiveSource() Source {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.now().After(c.deadline) {
		return ""
	}
	return c.source
}

// ShouldSuppress reports whether a reactive update from src must drop
// itself because a different control changed the position within the
// cooldown window.
func (c *Controller) ShouldSuppress(src Source) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.now().After(c.deadline) {
		return false
	}
	return c.source != "" && c.source != src
}

// record tags the change and arms the cooldown. Callers hold c.mu.
func (c *Controller) record(src Source, st State) {
	c.source = src
	c.state = st
	c.deadline = c.now().Add(c.cooldown)
}

func clamp(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
