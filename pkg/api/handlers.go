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

package api

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/narrowstacks/dorkroom-core/pkg/catalog"
	"github.com/narrowstacks/dorkroom-core/pkg/catalog/exposure"
)

var errBadParam = errors.New("invalid parameter")

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (s *Server) limit(r *http.Request) (int, error) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return s.searchLimit, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: limit %q", catalog.ErrInvalidNumeric, v)
	}
	return n, nil
}

func colorTypeParam(r *http.Request) (catalog.ColorType, error) {
	ct := catalog.ColorType(r.URL.Query().Get("colorType"))
	switch ct {
	case "", catalog.ColorTypeBW, catalog.ColorTypeColor, catalog.ColorTypeSlide:
		return ct, nil
	default:
		return "", fmt.Errorf("%w: colorType %q", errBadParam, ct)
	}
}

func (s *Server) handleListFilms(w http.ResponseWriter, r *http.Request) {
	ct, err := colorTypeParam(r)
	if err != nil {
		writeError(w, err)
		return
	}
	films, err := s.idx.SearchFilms(r.URL.Query().Get("q"), ct)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(films))
}

func (s *Server) handleSearchFilms(w http.ResponseWriter, r *http.Request) {
	limit, err := s.limit(r)
	if err != nil {
		writeError(w, err)
		return
	}
	results, err := s.idx.FuzzySearchFilms(r.URL.Query().Get("q"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	s.metrics.observeSearch(catalog.KindFilm, len(results))
	writeJSON(w, http.StatusOK, orEmpty(results))
}

func (s *Server) handleGetFilm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	film, ok, err := s.idx.GetFilm(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeError(w, fmt.Errorf("%w: film %q", catalog.ErrNotFound, id))
		return
	}
	writeJSON(w, http.StatusOK, film)
}

func (s *Server) handleFilmCombinations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_, ok, err := s.idx.GetFilm(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeError(w, fmt.Errorf("%w: film %q", catalog.ErrNotFound, id))
		return
	}
	combs, err := s.idx.CombinationsForFilm(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(combs))
}

func (s *Server) handleListDevelopers(w http.ResponseWriter, r *http.Request) {
	devs, err := s.idx.SearchDevelopers(r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(devs))
}

func (s *Server) handleSearchDevelopers(w http.ResponseWriter, r *http.Request) {
	limit, err := s.limit(r)
	if err != nil {
		writeError(w, err)
		return
	}
	results, err := s.idx.FuzzySearchDevelopers(r.URL.Query().Get("q"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	s.metrics.observeSearch(catalog.KindDeveloper, len(results))
	writeJSON(w, http.StatusOK, orEmpty(results))
}

func (s *Server) handleGetDeveloper(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	dev, ok, err := s.idx.GetDeveloper(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeError(w, fmt.Errorf("%w: developer %q", catalog.ErrNotFound, id))
		return
	}
	writeJSON(w, http.StatusOK, dev)
}

func (s *Server) handleDeveloperCombinations(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_, ok, err := s.idx.GetDeveloper(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeError(w, fmt.Errorf("%w: developer %q", catalog.ErrNotFound, id))
		return
	}
	combs, err := s.idx.CombinationsForDeveloper(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(combs))
}

func (s *Server) handleListCombinations(w http.ResponseWriter, _ *http.Request) {
	combs, err := s.idx.Combinations()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(combs))
}

func (s *Server) handleSearchCombinations(w http.ResponseWriter, r *http.Request) {
	limit, err := s.limit(r)
	if err != nil {
		writeError(w, err)
		return
	}
	results, err := s.idx.FuzzySearchCombinations(r.URL.Query().Get("q"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	s.metrics.observeSearch(catalog.KindCombination, len(results))
	writeJSON(w, http.StatusOK, orEmpty(results))
}

func (s *Server) handleGetCombination(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, ok, err := s.idx.GetCombination(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeError(w, fmt.Errorf("%w: combination %q", catalog.ErrNotFound, id))
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleSearchAll(w http.ResponseWriter, r *http.Request) {
	limit, err := s.limit(r)
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.idx.SearchAll(r.URL.Query().Get("q"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	res.Films = orEmpty(res.Films)
	res.Developers = orEmpty(res.Developers)
	res.Combinations = orEmpty(res.Combinations)
	s.metrics.observeSearch(catalog.KindFilm, len(res.Films))
	s.metrics.observeSearch(catalog.KindDeveloper, len(res.Developers))
	s.metrics.observeSearch(catalog.KindCombination, len(res.Combinations))
	writeJSON(w, http.StatusOK, res)
}

type resolvedFilm struct {
	ID string `json:"id"`
}

func (s *Server) handleResolveFilm(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	id, ok, err := s.idx.ResolveFilm(q.Get("brand"), q.Get("name"))
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeError(w, fmt.Errorf("%w: film %s %s", catalog.ErrNotFound, q.Get("brand"), q.Get("name")))
		return
	}
	writeJSON(w, http.StatusOK, resolvedFilm{ID: id})
}

func (s *Server) handleResolveDeveloper(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	m, ok, err := s.idx.ResolveDeveloperAndDilution(q.Get("manufacturer"), q.Get("name"), q.Get("dilution"))
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeError(w, fmt.Errorf("%w: developer %s %s", catalog.ErrNotFound, q.Get("manufacturer"), q.Get("name")))
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type stopsResponse struct {
	Description string  `json:"description"`
	BoxISO      float64 `json:"boxIso"`
	ShootingISO float64 `json:"shootingIso"`
	Stops       int     `json:"stops"`
}

// handleStops takes box and either shooting (an exposure index) or stops.
func (s *Server) handleStops(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	box, err := catalog.ParseNumber(q.Get("box"))
	if err != nil {
		writeError(w, fmt.Errorf("box: %w", err))
		return
	}

	resp := stopsResponse{BoxISO: box}
	if stopsText := q.Get("stops"); stopsText != "" && q.Get("shooting") == "" {
		stops, err := catalog.ParseNumber(stopsText)
		if err != nil {
			writeError(w, fmt.Errorf("stops: %w", err))
			return
		}
		if math.Abs(stops) > exposure.MaxStops {
			writeError(w, fmt.Errorf("stops: %w: %s is beyond %d stops",
				catalog.ErrInvalidNumeric, stopsText, exposure.MaxStops))
			return
		}
		resp.Stops = int(stops)
		resp.ShootingISO = exposure.ShootingISO(box, resp.Stops)
		if math.IsInf(resp.ShootingISO, 0) {
			writeError(w, fmt.Errorf("box: %w: shooting speed out of range", catalog.ErrInvalidNumeric))
			return
		}
	} else {
		shooting, err := catalog.ParseNumber(q.Get("shooting"))
		if err != nil {
			writeError(w, fmt.Errorf("shooting: %w", err))
			return
		}
		resp.ShootingISO = shooting
		resp.Stops = exposure.ComputeStops(box, shooting)
	}
	resp.Description = exposure.Describe(resp.Stops)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	stats, err := s.idx.Stats()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.load == nil {
		writeJSON(w, http.StatusNotImplemented, errorResponse{Error: "reload is not available"})
		return
	}
	if err := s.Reload(r.Context()); err != nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	s.handleStats(w, r)
}
