package navigation

import "math"

// monthsPerYear is the fine-grained granularity of a jump target:
// the fractional part of a target year is rounded to whole months.
const monthsPerYear = 12

// JumpTo moves the position to the photo closest to the target, a
// fractional year such as 2021.5833 (July 2021). No-op on an empty
// collection.
//
// Search order: an exact (year, month) match wins; otherwise the photo
// in the target year with the nearest month; otherwise the first photo
// in the nearest year.
func (c *Controller) JumpTo(target float64) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.collection.Len()
	if n == 0 {
		return c.index
	}

	year, month := splitTarget(target)
	idx := c.findNearest(year, month)

	if idx > c.index {
		c.direction = DirectionForward
	} else if idx < c.index {
		c.direction = DirectionBackward
	}
	c.index = idx
	c.record(SourceJump, StateJumping)
	return c.index
}

// splitTarget decomposes a fractional year into (year, month). The
// fraction is rounded to the nearest month; an exact-zero fraction maps
// to month 1, the first subdivision.
func splitTarget(target float64) (int, int) {
	year := int(math.Floor(target))
	frac := target - math.Floor(target)

	month := int(math.Round(frac * monthsPerYear))
	if month < 1 {
		month = 1
	}
	if month > monthsPerYear {
		month = monthsPerYear
	}
	return year, month
}

// findNearest locates the best index for (year, month).
// Callers hold c.mu and guarantee a non-empty collection.
func (c *Controller) findNearest(year, month int) int {
	photos := c.collection.Photos

	// Exact match, then nearest month within the target year.
	bestInYear := -1
	bestMonthDist := 0
	for i, p := range photos {
		if p.Year != year {
			continue
		}
		if p.Month == month {
			return i
		}
		d := abs(p.Month - month)
		if bestInYear == -1 || d < bestMonthDist {
			bestInYear = i
			bestMonthDist = d
		}
	}
	if bestInYear >= 0 {
		return bestInYear
	}

	// No photo in that year: first photo of the nearest year.
	best := 0
	bestYearDist := abs(photos[0].Year - year)
	for i, p := range photos {
		if d := abs(p.Year - year); d < bestYearDist {
			best = i
			bestYearDist = d
		}
	}
	return best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
