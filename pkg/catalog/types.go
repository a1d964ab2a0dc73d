// Package catalog provides the photo collection model and the catalog
// cache that fetches and revalidates it.
//
// The collection is produced by an external upload pipeline that writes
// media objects and a manifest describing them. This package is the only
// component that talks to the manifest source; everything else consumes
// the immutable Collection it returns.
package catalog

import (
	"sort"
	"time"
)

// Photo is a single item in the ordered collection.
//
// MediaRef points at the full-resolution object, ThumbRef at its
// lightweight twin. Year and Month position the photo on the timeline
// and drive proximity matching for jumps. Photos are immutable once
// loaded into a Collection.
type Photo struct {
	ID       string `json:"id"`
	MediaRef string `json:"mediaRef"`
	ThumbRef string `json:"thumbRef"`
	Year     int    `json:"year"`
	Month    int    `json:"month"` // 1..12
}

// Period summarizes how many photos fall in a single year.
// Periods are derived, read-only views of the collection.
type Period struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

// Collection is an ordered sequence of photos plus derived periods and
// the generation token identifying this exact content version.
//
// Ordering invariant: photos are non-decreasing by (Year, Month).
// A Collection is never mutated in place; revalidation replaces it
// wholesale.
type Collection struct {
	Photos  []Photo  `json:"photos"`
	Periods []Period `json:"periods"`
	Token   string   `json:"generationToken"`
}

// Len returns the number of photos in the collection.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Photos)
}

// Photo returns the photo at index i.
// The index must be in range; callers validate against Len.
func (c *Collection) Photo(i int) Photo {
	return c.Photos[i]
}

// newCollection builds a Collection from a validated manifest,
// establishing the (Year, Month) ordering invariant.
func newCollection(m *Manifest) *Collection {
	photos := make([]Photo, len(m.Photos))
	copy(photos, m.Photos)
	sort.SliceStable(photos, func(i, j int) bool {
		if photos[i].Year != photos[j].Year {
			return photos[i].Year < photos[j].Year
		}
		return photos[i].Month < photos[j].Month
	})

	periods := make([]Period, len(m.Periods))
	copy(periods, m.Periods)
	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].Year < periods[j].Year
	})

	return &Collection{
		Photos:  photos,
		Periods: periods,
		Token:   m.token(),
	}
}

// snapshot is the persisted form of a collection: the collection itself,
// its generation token, and when the full fetch happened.
type snapshot struct {
	Collection *Collection `json:"collection"`
	Token      string      `json:"token"`
	FetchedAt  time.Time   `json:"fetchedAt"`
}
