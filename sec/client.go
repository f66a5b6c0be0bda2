// Copyright 2024-2025
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package sec

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"

	"github.com/quarterly-sec/qs-api/common"
	"github.com/quarterly-sec/qs-api/observability/opentelemetry"
)

// Client fetches EDGAR structured data endpoints. EDGAR requires a
// descriptive User-Agent and enforces a fair-access limit of 10 requests per
// second; the client paces itself slightly under that and retries transient
// failures with exponential backoff.
type Client struct {
	UserAgent string

	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient builds a client from viper configuration. sec.user_agent must be
// set to a contact string EDGAR can reach you at.
func NewClient() *Client {
	rps := viper.GetFloat64("sec.rate_limit")
	if rps == 0 {
		rps = 8
	}

	return &Client{
		UserAgent: viper.GetString("sec.user_agent"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// WithHTTPClient substitutes the transport; used by tests
func (c *Client) WithHTTPClient(client *http.Client) *Client {
	c.httpClient = client
	return c
}

// getJSON fetches a URL, consulting the compressed cache first. Responses are
// cached by URL so a rebuild of multiple tickers touches EDGAR once per
// entity per run.
func (c *Client) getJSON(ctx context.Context, url string) ([]byte, error) {
	ctx, span := otel.Tracer(opentelemetry.Name).Start(ctx, "sec.getJSON")
	defer span.End()

	subLog := log.With().Str("Source", "sec").Str("Url", url).Logger()

	if body, err := common.CacheGet(url); err == nil {
		return body, nil
	}

	var body []byte
	operation := func() error {
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", c.UserAgent)
		req.Header.Set("Accept-Encoding", "gzip, deflate")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			subLog.Warn().Err(err).Msg("transport error; retrying")
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return backoff.Permanent(ErrNotFound)
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			subLog.Warn().Int("StatusCode", resp.StatusCode).Msg("retryable status; backing off")
			return fmt.Errorf("%w: %d", ErrInvalidStatus, resp.StatusCode)
		case resp.StatusCode >= 400:
			return backoff.Permanent(fmt.Errorf("%w: %d", ErrInvalidStatus, resp.StatusCode))
		}

		body, err = ioutil.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 4), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		subLog.Error().Stack().Err(err).Msg("could not fetch EDGAR resource")
		return nil, err
	}

	if err := common.CacheSet(url, body); err != nil {
		subLog.Warn().Err(err).Msg("could not cache EDGAR response")
	}

	return body, nil
}
