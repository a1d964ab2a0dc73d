package prefetch

import "github.com/mstefano/lightbox/pkg/navigation"

// Window computes the set of indices whose resources should be loaded
// for a window of the given size around position, in a collection of
// length items.
//
// The result always contains position (when length > 0) and treats the
// collection as circular. With a known direction the window is skewed:
// size indices ahead get loaded plus size/2 behind, since a user moving
// steadily in one direction benefits far more from look-ahead than
// look-behind. With DirectionNone the window is symmetric, size on each
// side.
//
// The returned slice is ordered by priority: position first, then the
// leading side, then the trailing side. Duplicates from wrapping in
// small collections are removed.
func Window(position int, dir navigation.Direction, length, size int) []int {
	if length <= 0 || size < 0 {
		return nil
	}

	pos := mod(position, length)
	seen := make(map[int]bool, 2*size+1)
	out := make([]int, 0, 2*size+1)

	add := func(i int) {
		idx := mod(i, length)
		if !seen[idx] {
			seen[idx] = true
			out = append(out, idx)
		}
	}

	add(pos)
	switch dir {
	case navigation.DirectionForward:
		for i := 1; i <= size; i++ {
			add(pos + i)
		}
		for i := 1; i <= size/2; i++ {
			add(pos - i)
		}
	case navigation.DirectionBackward:
		for i := 1; i <= size; i++ {
			add(pos - i)
		}
		for i := 1; i <= size/2; i++ {
			add(pos + i)
		}
	default:
		for i := 1; i <= size; i++ {
			add(pos + i)
			add(pos - i)
		}
	}
	return out
}

// mod is the positive modulo used for circular indexing.
func mod(i, n int) int {
	return ((i % n) + n) % n
}
