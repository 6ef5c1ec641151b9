// Package seed ships the demo trips that exist without a row in the trip store.
package seed

import (
	"sort"
	"time"

	"wanderlust/internal/domain"
)

// Catalog is a read-only set of demo trips and their authors.
type Catalog struct {
	trips   map[string]domain.Trip
	authors map[string]domain.Author
	order   []string
}

// NewCatalog builds a catalog from trips and authors. Trips are listed newest first.
func NewCatalog(trips []domain.Trip, authors []domain.Author) *Catalog {
	c := &Catalog{
		trips:   make(map[string]domain.Trip, len(trips)),
		authors: make(map[string]domain.Author, len(authors)),
	}
	for _, a := range authors {
		c.authors[a.ID] = a
	}
	for _, t := range trips {
		t.Stops = domain.NormalizeStops(t.ID, t.Stops)
		c.trips[t.ID] = t
		c.order = append(c.order, t.ID)
	}
	sort.SliceStable(c.order, func(i, j int) bool {
		return c.trips[c.order[i]].CreatedAt.After(c.trips[c.order[j]].CreatedAt)
	})
	return c
}

// Get returns a copy of the demo trip with id and its author card.
func (c *Catalog) Get(id string) (domain.Trip, *domain.Author, bool) {
	t, ok := c.trips[id]
	if !ok {
		return domain.Trip{}, nil, false
	}
	t.Stops = append([]domain.Stop(nil), t.Stops...)

	var author *domain.Author
	if a, ok := c.authors[t.AuthorID]; ok {
		author = &a
	}
	return t, author, true
}

// IDs returns every demo trip id, newest first.
func (c *Catalog) IDs() []string {
	return append([]string(nil), c.order...)
}

// Has reports whether id is a demo trip.
func (c *Catalog) Has(id string) bool {
	_, ok := c.trips[id]
	return ok
}

func coord(v float64) *float64 { return &v }

func day(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
