package navigation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mstefano/lightbox/pkg/catalog"
)

func timelineCollection() *catalog.Collection {
	return &catalog.Collection{
		Photos: []catalog.Photo{
			{ID: "a", MediaRef: "m/a", Year: 2019, Month: 4},
			{ID: "b", MediaRef: "m/b", Year: 2021, Month: 3},
			{ID: "c", MediaRef: "m/c", Year: 2021, Month: 8},
			{ID: "d", MediaRef: "m/d", Year: 2021, Month: 11},
			{ID: "e", MediaRef: "m/e", Year: 2024, Month: 2},
		},
	}
}

// fakeClock is a manually advanced time source.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestStepForwardAndBackward(t *testing.T) {
	c := New(timelineCollection())

	assert.Equal(t, 1, c.Step(DirectionForward))
	assert.Equal(t, 2, c.Step(DirectionForward))
	assert.Equal(t, 1, c.Step(DirectionBackward))

	idx, dir := c.Position()
	assert.Equal(t, 1, idx)
	assert.Equal(t, DirectionBackward, dir)
}

func TestStepWrapsAtBothEnds(t *testing.T) {
	c := New(timelineCollection())

	assert.Equal(t, 4, c.Step(DirectionBackward))
	assert.Equal(t, 0, c.Step(DirectionForward))
}

func TestStepNoneIsNoop(t *testing.T) {
	c := New(timelineCollection())

	assert.Equal(t, 0, c.Step(DirectionNone))
	assert.Equal(t, StateIdle, c.State())
}

func TestStepEmptyCollection(t *testing.T) {
	c := New(nil)

	assert.Equal(t, 0, c.Step(DirectionForward))
	assert.Equal(t, 0, c.JumpTo(2021.5))
	assert.Equal(t, 0, c.Select(3))
}

func TestSelectSetsDirection(t *testing.T) {
	c := New(timelineCollection(), WithStartIndex(2))

	assert.Equal(t, 4, c.Select(4))
	_, dir := c.Position()
	assert.Equal(t, DirectionForward, dir)

	assert.Equal(t, 0, c.Select(0))
	_, dir = c.Position()
	assert.Equal(t, DirectionBackward, dir)
}

func TestSelectOutOfRangeIsNoop(t *testing.T) {
	c := New(timelineCollection(), WithStartIndex(2))

	assert.Equal(t, 2, c.Select(-1))
	assert.Equal(t, 2, c.Select(5))
}

func TestSetCollectionClampsIndex(t *testing.T) {
	c := New(timelineCollection(), WithStartIndex(4))

	c.SetCollection(&catalog.Collection{
		Photos: []catalog.Photo{
			{ID: "a", MediaRef: "m/a", Year: 2020, Month: 1},
			{ID: "b", MediaRef: "m/b", Year: 2020, Month: 2},
		},
	})

	idx, _ := c.Position()
	assert.Equal(t, 1, idx)
}

func TestSetCollectionEmptyResets(t *testing.T) {
	c := New(timelineCollection(), WithStartIndex(3))

	c.SetCollection(nil)
	idx, dir := c.Position()
	assert.Equal(t, 0, idx)
	assert.Equal(t, DirectionNone, dir)
}

func TestStateDecaysAfterCooldown(t *testing.T) {
	clock := newFakeClock()
	c := New(timelineCollection(),
		WithCooldown(100*time.Millisecond),
		WithClock(clock.Now))

	c.Step(DirectionForward)
	assert.Equal(t, StateStepping, c.State())
	assert.Equal(t, SourceStep, c.ActiveSource())

	clock.Advance(150 * time.Millisecond)
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, Source(""), c.ActiveSource())
}

func TestShouldSuppressOtherSourcesDuringCooldown(t *testing.T) {
	clock := newFakeClock()
	c := New(timelineCollection(),
		WithCooldown(100*time.Millisecond),
		WithClock(clock.Now))

	c.JumpTo(2021.5)

	// The originating control is never suppressed; others are until the
	// cooldown elapses.
	assert.False(t, c.ShouldSuppress(SourceJump))
	assert.True(t, c.ShouldSuppress(SourceStep))
	assert.True(t, c.ShouldSuppress(SourceSelect))

	clock.Advance(150 * time.Millisecond)
	assert.False(t, c.ShouldSuppress(SourceStep))
}

func TestCooldownRearmsOnEveryChange(t *testing.T) {
	clock := newFakeClock()
	c := New(timelineCollection(),
		WithCooldown(100*time.Millisecond),
		WithClock(clock.Now))

	c.Step(DirectionForward)
	clock.Advance(80 * time.Millisecond)
	c.Step(DirectionForward)
	clock.Advance(80 * time.Millisecond)

	// 160ms after the first step but only 80ms after the second.
	assert.True(t, c.ShouldSuppress(SourceSelect))
}

func TestJumpFractionalYear(t *testing.T) {
	c := New(timelineCollection())

	// 2021 + 7/12 ~ 2021.5833 is July; nearest month in 2021 is August.
	assert.Equal(t, 2, c.JumpTo(2021+7.0/12.0))
}

func TestJumpExactMonthMatch(t *testing.T) {
	c := New(timelineCollection())

	// 2021 + 3/12 is exactly March 2021.
	assert.Equal(t, 1, c.JumpTo(2021+3.0/12.0))
}

func TestJumpNearestMonthInYear(t *testing.T) {
	c := New(timelineCollection())

	// December 2021: nearest photo that year is November.
	assert.Equal(t, 3, c.JumpTo(2021.99))
}

func TestJumpNearestYear(t *testing.T) {
	c := New(timelineCollection())

	// No photos in 2023; 2024 is closer than 2021.
	assert.Equal(t, 4, c.JumpTo(2023.9))

	// 2018 snaps to the first photo of 2019.
	assert.Equal(t, 0, c.JumpTo(2018.0))
}

func TestJumpZeroFractionMeansJanuary(t *testing.T) {
	c := New(&catalog.Collection{
		Photos: []catalog.Photo{
			{ID: "a", MediaRef: "m/a", Year: 2021, Month: 1},
			{ID: "b", MediaRef: "m/b", Year: 2021, Month: 12},
		},
	})

	assert.Equal(t, 0, c.JumpTo(2021.0))
}

func TestJumpSetsDirection(t *testing.T) {
	c := New(timelineCollection(), WithStartIndex(0))

	c.JumpTo(2024.0)
	_, dir := c.Position()
	assert.Equal(t, DirectionForward, dir)

	c.JumpTo(2019.0)
	_, dir = c.Position()
	assert.Equal(t, DirectionBackward, dir)
}

func TestSplitTarget(t *testing.T) {
	tests := []struct {
		target    float64
		wantYear  int
		wantMonth int
	}{
		{2021.0, 2021, 1},
		{2021 + 7.0/12.0, 2021, 7},
		{2021.5, 2021, 6},
		{2021.99, 2021, 12},
		{2021.04, 2021, 1},
		{1999.999, 1999, 12},
	}

	for _, tt := range tests {
		year, month := splitTarget(tt.target)
		assert.Equal(t, tt.wantYear, year, "target %v", tt.target)
		assert.Equal(t, tt.wantMonth, month, "target %v", tt.target)
	}
}
