// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metadata provides the rate-limited HTTP client shared by the
// EC2-compatible and OpenStack-native metadata fetchers.
package metadata

import (
	"context"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/Neve/ohai/pkg/defaults"
	"github.com/Neve/ohai/pkg/errors"
)

const (
	// DefaultAddress is the link-local address of the metadata service.
	DefaultAddress = "169.254.169.254"
	// DefaultPort is the metadata service HTTP port.
	DefaultPort = 80
)

// BaseURL returns the http URL of the metadata service at address:port.
func BaseURL(address string, port int) string {
	return "http://" + net.JoinHostPort(address, strconv.Itoa(port))
}

// Response is a metadata service reply.
type Response struct {
	Status int
	Body   []byte
}

// OK reports whether the service answered 200.
func (r *Response) OK() bool {
	return r != nil && r.Status == http.StatusOK
}

// Client issues GET requests against one metadata service.
type Client struct {
	baseURL string
	http    *resty.Client
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	requestTimeout    time.Duration
	requestsPerSecond float64
	burst             int
	maxResponseSize   int
	httpClient        *http.Client
}

// WithRequestTimeout bounds every request.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		if d > 0 {
			o.requestTimeout = d
		}
	}
}

// WithRateLimit sets the steady request rate and burst. A non-positive rate
// disables limiting.
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(o *clientOptions) {
		o.requestsPerSecond = requestsPerSecond
		if burst > 0 {
			o.burst = burst
		}
	}
}

// WithMaxResponseSize caps the size of a response body.
func WithMaxResponseSize(n int) Option {
	return func(o *clientOptions) {
		if n > 0 {
			o.maxResponseSize = n
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = c
	}
}

// NewClient returns a Client for the service rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	o := clientOptions{
		requestTimeout:    defaults.MetadataRequestTimeout,
		requestsPerSecond: defaults.MetadataRateLimit,
		burst:             defaults.MetadataRateBurst,
		maxResponseSize:   defaults.MetadataMaxResponseSize,
	}
	for _, opt := range opts {
		opt(&o)
	}

	hc := o.httpClient
	if hc == nil {
		hc = &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: defaults.HTTPConnectTimeout,
				}).DialContext,
				ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
				IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
			},
		}
	}

	limit := rate.Inf
	if o.requestsPerSecond > 0 {
		limit = rate.Limit(o.requestsPerSecond)
	}

	rc := resty.NewWithClient(hc).
		SetBaseURL(baseURL).
		SetTimeout(o.requestTimeout).
		SetResponseBodyLimit(o.maxResponseSize).
		SetHeader("Accept", "*/*")

	return &Client{
		baseURL: baseURL,
		http:    rc,
		limiter: rate.NewLimiter(limit, o.burst),
	}
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get fetches path relative to the base URL. Any HTTP status is returned as a
// Response; only transport failures produce an error.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("metadata rate limiter: %w", err)
	}

	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		code := errors.ErrCodeUnavailable
		if stderrors.Is(err, context.DeadlineExceeded) {
			code = errors.ErrCodeTimeout
		}
		return nil, errors.WrapWithContext(code, "metadata request failed", err,
			map[string]any{"url": c.baseURL + path})
	}

	return &Response{Status: resp.StatusCode(), Body: resp.Body()}, nil
}
