// Dorkroom Core
// Copyright (c) 2026 The Dorkroom Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Dorkroom Core.
//
// Dorkroom Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dorkroom Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dorkroom Core.  If not, see <http://www.gnu.org/licenses/>.

package catalog

import (
	"fmt"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/narrowstacks/dorkroom-core/pkg/catalog/matcher"
	"github.com/narrowstacks/dorkroom-core/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
)

// Collections is the full set of records handed to Load.
type Collections struct {
	Films        []Film
	Developers   []Developer
	Combinations []Combination
}

// Policies holds the scoring policy for each record kind.
type Policies struct {
	Film        matcher.Policy
	Developer   matcher.Policy
	Combination matcher.Policy
}

// DefaultPolicies are the five-signal policies: films and developers are
// bonused on their primary text, combinations on the name plus the film
// and developer names they reference.
func DefaultPolicies() Policies {
	return Policies{
		Film:        matcher.CompositePolicy(matcher.FilmThreshold, matcher.BonusPrimary),
		Developer:   matcher.CompositePolicy(matcher.DeveloperThreshold, matcher.BonusPrimary),
		Combination: matcher.CompositePolicy(matcher.CombinationThreshold, matcher.BonusCombined),
	}
}

// SimplePolicies uses the two-signal policy with one threshold for every
// kind.
func SimplePolicies(threshold float64) Policies {
	p := matcher.SimplePolicy(threshold)
	return Policies{Film: p, Developer: p, Combination: p}
}

// Options configures an Index. Zero values select the defaults.
type Options struct {
	Matcher  *matcher.Matcher
	Clock    clockwork.Clock
	NewID    func() string
	Policies *Policies
}

// Index is the in-memory catalog. Readers always see one complete
// snapshot; Load and the Add methods publish a new snapshot and never
// modify a published one.
type Index struct {
	snap     atomic.Pointer[snapshot]
	matcher  *matcher.Matcher
	clock    clockwork.Clock
	newID    func() string
	policies Policies
	writeMu  syncutil.Mutex
}

// NewIndex returns an empty Index. Every query fails with ErrNotLoaded
// until Load succeeds.
func NewIndex(opts Options) *Index {
	idx := &Index{
		matcher:  opts.Matcher,
		clock:    opts.Clock,
		newID:    opts.NewID,
		policies: DefaultPolicies(),
	}
	if idx.matcher == nil {
		idx.matcher = matcher.NewDefault()
	}
	if idx.clock == nil {
		idx.clock = clockwork.NewRealClock()
	}
	if idx.newID == nil {
		idx.newID = uuid.NewString
	}
	if opts.Policies != nil {
		idx.policies = *opts.Policies
	}
	return idx
}

type snapshot struct {
	filmByID        map[string]int
	developerByID   map[string]int
	combinationByID map[string]int
	memo            *memo
	films           []Film
	developers      []Developer
	combinations    []Combination
}

func buildSnapshot(c Collections) (*snapshot, error) {
	s := &snapshot{
		films:           c.Films,
		developers:      c.Developers,
		combinations:    c.Combinations,
		filmByID:        make(map[string]int, len(c.Films)),
		developerByID:   make(map[string]int, len(c.Developers)),
		combinationByID: make(map[string]int, len(c.Combinations)),
		memo:            newMemo(),
	}
	names := make(map[string]string, len(c.Films)+len(c.Developers))
	for i, f := range s.films {
		if err := addKey(s.filmByID, f, i); err != nil {
			return nil, err
		}
		if err := addName(names, f, f.Brand, f.Name); err != nil {
			return nil, err
		}
	}
	for i, d := range s.developers {
		if err := addKey(s.developerByID, d, i); err != nil {
			return nil, err
		}
		if err := addName(names, d, d.Manufacturer, d.Name); err != nil {
			return nil, err
		}
	}
	for i := range s.combinations {
		if err := addKey(s.combinationByID, s.combinations[i], i); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func addKey(m map[string]int, r Record, i int) error {
	if err := Validate(r); err != nil {
		return err
	}
	if _, exists := m[r.RecordID()]; exists {
		return fmt.Errorf("%w: %s id %q appears more than once", ErrDuplicate, r.Kind(), r.RecordID())
	}
	m[r.RecordID()] = i
	return nil
}

// addName enforces that no two films share a brand and name, and no two
// developers a manufacturer and name, ignoring case.
func addName(names map[string]string, r Record, maker, name string) error {
	key := string(r.Kind()) + "\x00" + strings.ToLower(maker) + "\x00" + strings.ToLower(name)
	if other, exists := names[key]; exists {
		return fmt.Errorf("%w: %s %q is used by both %q and %q",
			ErrDuplicate, r.Kind(), maker+" "+name, other, r.RecordID())
	}
	names[key] = r.RecordID()
	return nil
}

// Load replaces the whole catalog. Every record is validated, ids must be
// unique within their collection, and film brand/name and developer
// manufacturer/name pairs must be unique ignoring case; on error the
// previous catalog stays in place. The records are deep-copied, so callers
// may reuse or modify the collections afterwards.
func (idx *Index) Load(c Collections) error {
	owned := Collections{
		Films:        cloneAll(c.Films),
		Developers:   cloneAll(c.Developers),
		Combinations: cloneAll(c.Combinations),
	}
	s, err := buildSnapshot(owned)
	if err != nil {
		return fmt.Errorf("failed to build catalog index: %w", err)
	}

	idx.writeMu.Lock()
	idx.snap.Store(s)
	idx.writeMu.Unlock()

	for _, comb := range s.combinations {
		if _, ok := s.filmByID[comb.FilmStockID]; !ok {
			log.Debug().Str("combination", comb.ID).Str("film", comb.FilmStockID).
				Msg("combination references unknown film")
		}
		if _, ok := s.developerByID[comb.DeveloperID]; !ok {
			log.Debug().Str("combination", comb.ID).Str("developer", comb.DeveloperID).
				Msg("combination references unknown developer")
		}
	}

	log.Info().
		Int("films", len(s.films)).
		Int("developers", len(s.developers)).
		Int("combinations", len(s.combinations)).
		Msg("catalog loaded")
	return nil
}

// Loaded reports whether a catalog has been loaded.
func (idx *Index) Loaded() bool {
	return idx.snap.Load() != nil
}

func (idx *Index) current() (*snapshot, error) {
	s := idx.snap.Load()
	if s == nil {
		return nil, ErrNotLoaded
	}
	return s, nil
}

// Stats is the number of records in each collection.
type Stats struct {
	Films        int `json:"films"`
	Developers   int `json:"developers"`
	Combinations int `json:"combinations"`
}

// Stats returns the collection sizes of the current catalog.
func (idx *Index) Stats() (Stats, error) {
	s, err := idx.current()
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Films:        len(s.films),
		Developers:   len(s.developers),
		Combinations: len(s.combinations),
	}, nil
}

// GetFilm looks up a film by id.
func (idx *Index) GetFilm(id string) (Film, bool, error) {
	s, err := idx.current()
	if err != nil {
		return Film{}, false, err
	}
	f, ok := s.film(id)
	return f.clone(), ok, nil
}

// GetDeveloper looks up a developer by id.
func (idx *Index) GetDeveloper(id string) (Developer, bool, error) {
	s, err := idx.current()
	if err != nil {
		return Developer{}, false, err
	}
	d, ok := s.developer(id)
	return d.clone(), ok, nil
}

// GetCombination looks up a combination by id.
func (idx *Index) GetCombination(id string) (Combination, bool, error) {
	s, err := idx.current()
	if err != nil {
		return Combination{}, false, err
	}
	i, ok := s.combinationByID[id]
	if !ok {
		return Combination{}, false, nil
	}
	return s.combinations[i].clone(), true, nil
}

// Films returns every film in catalog order.
func (idx *Index) Films() ([]Film, error) {
	s, err := idx.current()
	if err != nil {
		return nil, err
	}
	return cloneAll(s.films), nil
}

// Developers returns every developer in catalog order.
func (idx *Index) Developers() ([]Developer, error) {
	s, err := idx.current()
	if err != nil {
		return nil, err
	}
	return cloneAll(s.developers), nil
}

// Combinations returns every combination in catalog order.
func (idx *Index) Combinations() ([]Combination, error) {
	s, err := idx.current()
	if err != nil {
		return nil, err
	}
	return cloneAll(s.combinations), nil
}

// CombinationsForFilm returns the combinations that use a film.
func (idx *Index) CombinationsForFilm(filmID string) ([]Combination, error) {
	s, err := idx.current()
	if err != nil {
		return nil, err
	}
	var out []Combination
	for _, c := range s.combinations {
		if c.FilmStockID == filmID {
			out = append(out, c.clone())
		}
	}
	return out, nil
}

// CombinationsForDeveloper returns the combinations that use a developer.
func (idx *Index) CombinationsForDeveloper(developerID string) ([]Combination, error) {
	s, err := idx.current()
	if err != nil {
		return nil, err
	}
	var out []Combination
	for _, c := range s.combinations {
		if c.DeveloperID == developerID {
			out = append(out, c.clone())
		}
	}
	return out, nil
}

func (s *snapshot) film(id string) (Film, bool) {
	i, ok := s.filmByID[id]
	if !ok {
		return Film{}, false
	}
	return s.films[i], true
}

func (s *snapshot) developer(id string) (Developer, bool) {
	i, ok := s.developerByID[id]
	if !ok {
		return Developer{}, false
	}
	return s.developers[i], true
}

// with returns a new snapshot holding the records of s plus copies of the
// given ones. Records already in s are never modified, so the two
// snapshots share them. The memo starts empty.
func (s *snapshot) with(films []Film, developers []Developer, combinations []Combination) (*snapshot, error) {
	next, err := buildSnapshot(Collections{
		Films:        append(slices.Clip(s.films), cloneAll(films)...),
		Developers:   append(slices.Clip(s.developers), cloneAll(developers)...),
		Combinations: append(slices.Clip(s.combinations), cloneAll(combinations)...),
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}
