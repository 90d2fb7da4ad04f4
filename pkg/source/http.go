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

package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxRetries is the number of retries after the first attempt.
	DefaultMaxRetries = 3
	// DefaultRetryWait is the base of the exponential backoff.
	DefaultRetryWait = 300 * time.Millisecond
)

// HTTPOptions configures an HTTPSource. Zero values select the defaults.
type HTTPOptions struct {
	Transport http.RoundTripper
	Timeout   time.Duration
	// MaxRetries below zero disables retrying.
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// HTTPSource fetches collection files relative to a base URL, retrying
// connection failures and gateway errors with exponential backoff.
type HTTPSource struct {
	client  *retryablehttp.Client
	baseURL *url.URL
}

// NewHTTPSource returns an HTTPSource for baseURL, which must be an
// absolute http or https URL.
func NewHTTPSource(baseURL string, opts HTTPOptions) (*HTTPSource, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid base url: %q", baseURL)
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	} else if opts.MaxRetries == 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.RetryWaitMin <= 0 {
		opts.RetryWaitMin = DefaultRetryWait
	}
	if opts.RetryWaitMax < opts.RetryWaitMin {
		opts.RetryWaitMax = opts.RetryWaitMin * 10
	}

	client := retryablehttp.NewClient()
	client.HTTPClient = &http.Client{Timeout: opts.Timeout}
	if opts.Transport != nil {
		client.HTTPClient.Transport = opts.Transport
	}
	client.RetryMax = opts.MaxRetries
	client.RetryWaitMin = opts.RetryWaitMin
	client.RetryWaitMax = opts.RetryWaitMax
	client.CheckRetry = retryGatewayErrors
	client.Logger = retryLogger{}

	return &HTTPSource{client: client, baseURL: u}, nil
}

// retryGatewayErrors retries connection failures and 502, 503 and 504
// responses. Any other status is final.
func retryGatewayErrors(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}
	switch resp.StatusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true, nil
	default:
		return false, nil
	}
}

// URL returns the address a collection file is fetched from.
func (s *HTTPSource) URL(name string) string {
	return s.baseURL.JoinPath(name).String()
}

func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	target := s.URL(name)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: error creating request: %w", ErrFetch, name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetch, name, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("error closing response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: invalid status code: %d", ErrFetch, name, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: error reading body: %w", ErrFetch, name, err)
	}
	log.Debug().Str("url", target).Int("bytes", len(data)).Msg("fetched collection")
	return data, nil
}

// retryLogger sends retryablehttp's messages to the global zerolog logger.
type retryLogger struct{}

func (retryLogger) Error(msg string, keysAndValues ...any) {
	log.Error().Fields(keysAndValues).Msg(msg)
}

func (retryLogger) Warn(msg string, keysAndValues ...any) {
	log.Warn().Fields(keysAndValues).Msg(msg)
}

func (retryLogger) Info(msg string, keysAndValues ...any) {
	log.Debug().Fields(keysAndValues).Msg(msg)
}

func (retryLogger) Debug(msg string, keysAndValues ...any) {
	log.Trace().Fields(keysAndValues).Msg(msg)
}
