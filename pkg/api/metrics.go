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
	"net/http"

	"github.com/narrowstacks/dorkroom-core/pkg/catalog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are the API's Prometheus collectors.
type Metrics struct {
	searches *prometheus.CounterVec
	results  *prometheus.HistogramVec
	records  *prometheus.GaugeVec
	loads    *prometheus.CounterVec
	handler  http.Handler
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dorkroom",
			Name:      "search_requests_total",
			Help:      "Fuzzy search requests by record kind.",
		}, []string{"kind"}),
		results: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dorkroom",
			Name:      "search_results",
			Help:      "Number of results returned by fuzzy searches.",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50},
		}, []string{"kind"}),
		records: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "dorkroom",
			Name:      "catalog_records",
			Help:      "Records in the loaded catalog by kind.",
		}, []string{"kind"}),
		loads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dorkroom",
			Name:      "catalog_reloads_total",
			Help:      "Catalog reload attempts by result.",
		}, []string{"result"}),
		handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return m.handler
}

func (m *Metrics) observeSearch(kind catalog.Kind, n int) {
	m.searches.WithLabelValues(string(kind)).Inc()
	m.results.WithLabelValues(string(kind)).Observe(float64(n))
}

func (m *Metrics) observeStats(s catalog.Stats) {
	m.records.WithLabelValues(string(catalog.KindFilm)).Set(float64(s.Films))
	m.records.WithLabelValues(string(catalog.KindDeveloper)).Set(float64(s.Developers))
	m.records.WithLabelValues(string(catalog.KindCombination)).Set(float64(s.Combinations))
}

func (m *Metrics) observeLoad(err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	m.loads.WithLabelValues(result).Inc()
}
