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

package cli

import (
	"context"
	"fmt"

	"github.com/narrowstacks/dorkroom-core/pkg/api"
	"github.com/narrowstacks/dorkroom-core/pkg/catalog"
	"github.com/narrowstacks/dorkroom-core/pkg/source"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		listen string
		watch  bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog over a JSON HTTP API",
		Long: `Serve loads the catalog and answers search, lookup and resolve
requests over HTTP. POST /reload fetches the catalog again without
restarting; Prometheus metrics are served on /metrics.`,
		Example: `  dorkroom serve --listen :7480
  dorkroom serve --base-url https://example.com/dorkroom-data/`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("listen") {
				a.cfg.SetListen(listen)
			}
			src, err := a.source()
			if err != nil {
				return err
			}

			idx := a.newIndex()
			if err := source.LoadInto(cmd.Context(), src, idx); err != nil {
				return err
			}

			perMinute, burst := a.cfg.RateLimit()
			srv := api.NewServer(api.Options{
				Index: idx,
				Load: func(ctx context.Context) (catalog.Collections, error) {
					return source.Load(ctx, src)
				},
				AllowedOrigins:    a.cfg.AllowedOrigins(),
				RequestsPerMinute: perMinute,
				Burst:             burst,
				SearchLimit:       a.cfg.SearchLimit(),
			})

			g, ctx := errgroup.WithContext(cmd.Context())
			if watch {
				dir, ok := src.(*source.DirSource)
				if !ok {
					return fmt.Errorf("%w: --watch needs local files", errNeedsDataDir)
				}
				g.Go(func() error {
					return source.Watch(ctx, dir.Dir(), source.DefaultDebounce, func() {
						if err := srv.Reload(ctx); err != nil {
							log.Error().Err(err).Msg("failed to reload changed catalog")
						}
					})
				})
			}

			log.Info().Str("listen", a.cfg.Listen()).Msg("serving catalog")
			g.Go(func() error {
				return srv.Serve(ctx, a.cfg.Listen())
			})
			if err := g.Wait(); err != nil {
				return fmt.Errorf("serve failed: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "address to listen on (default from config)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload when the catalog files in the data directory change")
	return cmd
}
