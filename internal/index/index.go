// Package index keeps named patterns in memory and answers nearest-pattern
// queries against them.
//
// An Index can be given a small set of pivot patterns. The distance from
// every stored pattern to every pivot is computed once on insertion; a query
// then measures its own pivot distances and skips any candidate for which the
// triangle inequality already proves it lies outside the search radius.
package index

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/ironsheep/image-pattern-mcp/internal/pattern"
)

// ErrNotFound is returned when an ID is not in the index.
var ErrNotFound = errors.New("pattern not found in index")

// ErrEmptyID is returned when adding a pattern without an ID.
var ErrEmptyID = errors.New("pattern ID must not be empty")

// Match is one search result.
type Match struct {
	ID    string        `json:"id"`
	Score pattern.Score `json:"score"`
}

type entry struct {
	p         *pattern.Pattern
	pivotDist []float64
}

// Index is a concurrency-safe in-memory store of patterns of one size and space.
type Index struct {
	mu      sync.RWMutex
	cmp     *pattern.Comparer
	size    int
	entries map[string]*entry
	pivots  []*pattern.Pattern
}

// New creates an empty index for size×size patterns compared with cmp.
func New(cmp *pattern.Comparer, size int) *Index {
	return &Index{
		cmp:     cmp,
		size:    size,
		entries: make(map[string]*entry),
	}
}

// Add stores p under id, replacing any pattern already stored there.
func (ix *Index) Add(id string, p *pattern.Pattern) error {
	if id == "" {
		return ErrEmptyID
	}
	if p.Size() != ix.size {
		return fmt.Errorf("%w: got %dx%d, index holds %dx%d", pattern.ErrSizeMismatch, p.Size(), p.Size(), ix.size, ix.size)
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	dist, err := ix.pivotDistances(p)
	if err != nil {
		return err
	}
	ix.entries[id] = &entry{p: p, pivotDist: dist}
	return nil
}

// Remove deletes the pattern stored under id.
func (ix *Index) Remove(id string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if _, ok := ix.entries[id]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	delete(ix.entries, id)
	return nil
}

// Get returns the pattern stored under id.
func (ix *Index) Get(id string) (*pattern.Pattern, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	e, ok := ix.entries[id]
	if !ok {
		return nil, false
	}
	return e.p, true
}

// Len returns the number of stored patterns.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.entries)
}

// IDs returns the stored IDs in ascending order.
func (ix *Index) IDs() []string {
	ix.mu.RLock()
	ids := make([]string, 0, len(ix.entries))
	for id := range ix.entries {
		ids = append(ids, id)
	}
	ix.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

// SetPivots replaces the pivot set and recomputes the cached pivot distance
// of every stored pattern. Passing no pivots disables pruning.
func (ix *Index) SetPivots(pivots []*pattern.Pattern) error {
	for i, p := range pivots {
		if p.Size() != ix.size {
			return fmt.Errorf("%w: pivot %d is %dx%d, index holds %dx%d", pattern.ErrSizeMismatch, i, p.Size(), p.Size(), ix.size, ix.size)
		}
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.pivots = append([]*pattern.Pattern(nil), pivots...)
	for _, e := range ix.entries {
		dist, err := ix.pivotDistances(e.p)
		if err != nil {
			return err
		}
		e.pivotDist = dist
	}
	return nil
}

// Pivots returns the number of pivots in use.
func (ix *Index) Pivots() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.pivots)
}

// pivotDistances must be called with ix.mu held.
func (ix *Index) pivotDistances(p *pattern.Pattern) ([]float64, error) {
	if len(ix.pivots) == 0 {
		return nil, nil
	}
	out := make([]float64, len(ix.pivots))
	for i, pv := range ix.pivots {
		d, err := ix.cmp.Distance(p, pv)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// Search returns the stored patterns within radius of query, nearest first.
// Equal distances are ordered by ID. A negative radius matches everything and
// a limit of zero or less returns every match.
func (ix *Index) Search(query *pattern.Pattern, radius float64, limit int) ([]Match, error) {
	if query.Size() != ix.size {
		return nil, fmt.Errorf("%w: query is %dx%d, index holds %dx%d", pattern.ErrSizeMismatch, query.Size(), query.Size(), ix.size, ix.size)
	}
	if radius < 0 {
		radius = math.Inf(1)
	}

	ix.mu.RLock()
	defer ix.mu.RUnlock()

	qdist, err := ix.pivotDistances(query)
	if err != nil {
		return nil, err
	}

	var matches []Match
	for id, e := range ix.entries {
		if pruned(qdist, e.pivotDist, radius) {
			continue
		}
		d, err := ix.cmp.Distance(query, e.p)
		if err != nil {
			return nil, err
		}
		if d > radius {
			continue
		}
		matches = append(matches, Match{ID: id, Score: ix.cmp.ScoreOf(d, ix.size)})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score.Distance != matches[j].Score.Distance {
			return matches[i].Score.Distance < matches[j].Score.Distance
		}
		return matches[i].ID < matches[j].ID
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// pruned reports whether some pivot proves the candidate is further than
// radius from the query.
func pruned(query, candidate []float64, radius float64) bool {
	for i := range query {
		if math.Abs(query[i]-candidate[i]) > radius {
			return true
		}
	}
	return false
}
