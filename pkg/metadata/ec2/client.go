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

package ec2

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Neve/ohai/pkg/attribute"
	"github.com/Neve/ohai/pkg/defaults"
	"github.com/Neve/ohai/pkg/errors"
	"github.com/Neve/ohai/pkg/metadata"
)

// LatestVersion is requested when the service lists no supported version.
const LatestVersion = "latest"

// SupportedVersions are the EC2 metadata API versions the client understands,
// oldest first.
var SupportedVersions = []string{
	"1.0",
	"2007-01-19",
	"2007-03-01",
	"2007-08-29",
	"2007-10-10",
	"2007-12-15",
	"2008-02-01",
	"2008-09-01",
	"2009-04-04",
	"2011-01-01",
	"2011-05-01",
	"2012-01-12",
}

// arrayValues are leaves whose newline separated body becomes a list.
var arrayValues = map[string]bool{
	"security-groups": true,
}

// maxDepth bounds directory recursion.
const maxDepth = 8

var (
	assignmentRe  = regexp.MustCompile(`=.*$`)
	dotSegmentRe  = regexp.MustCompile(`/\.\.?(?:/|$)`)
	leadingDotsRe = regexp.MustCompile(`^\.\.?(?:/|$)`)
)

// Client reads the EC2-compatible metadata tree.
type Client struct {
	address        string
	port           int
	connectTimeout time.Duration
	concurrency    int
	http           *metadata.Client
}

// Option configures a Client.
type Option func(*Client)

// WithConnectTimeout bounds the reachability check.
func WithConnectTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.connectTimeout = d
		}
	}
}

// WithConcurrency caps in-flight leaf requests per directory listing.
func WithConcurrency(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithHTTPClient sets the metadata HTTP client.
func WithHTTPClient(hc *metadata.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// NewClient returns a Client for the metadata service at address:port.
func NewClient(address string, port int, opts ...Option) *Client {
	c := &Client{
		address:        address,
		port:           port,
		connectTimeout: defaults.MetadataConnectTimeout,
		concurrency:    defaults.MetadataFetchConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = metadata.NewClient(metadata.BaseURL(address, port))
	}
	return c
}

// CanConnect reports whether a TCP connection to the metadata service can be
// opened within the connect timeout.
func (c *Client) CanConnect(ctx context.Context) bool {
	addr := net.JoinHostPort(c.address, strconv.Itoa(c.port))
	d := net.Dialer{Timeout: c.connectTimeout}

	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		slog.Debug("metadata service not reachable", "address", addr, "error", err)
		return false
	}
	if err := conn.Close(); err != nil {
		slog.Debug("failed to close probe connection", "address", addr, "error", err)
	}
	return true
}

// APIVersion returns the newest supported API version the service lists at
// its root, or LatestVersion when it lists none.
func (c *Client) APIVersion(ctx context.Context) (string, error) {
	resp, err := c.http.Get(ctx, "/")
	if err != nil {
		return "", err
	}
	switch resp.Status {
	case http.StatusOK:
	case http.StatusNotFound:
		return LatestVersion, nil
	default:
		return "", statusError("failed to list metadata API versions", "/", resp.Status)
	}

	version := LatestVersion
	for _, line := range splitLines(string(resp.Body)) {
		if !slices.Contains(SupportedVersions, line) {
			continue
		}
		if version == LatestVersion || line > version {
			version = line
		}
	}
	return version, nil
}

// FetchAll walks /<version>/meta-data/ and returns a flat map whose keys are
// the metadata paths with '-' and '/' replaced by '_'.
func (c *Client) FetchAll(ctx context.Context) (*attribute.Map, error) {
	version, err := c.APIVersion(ctx)
	if err != nil {
		return nil, err
	}
	slog.Debug("fetching ec2 metadata", "url", c.http.BaseURL(), "version", version)

	return c.fetchDir(ctx, version, "", 0)
}

type entry struct {
	path    string
	dir     bool
	present bool
	value   any
	sub     *attribute.Map
}

func (c *Client) fetchDir(ctx context.Context, version, id string, depth int) (*attribute.Map, error) {
	out := attribute.New()
	if depth > maxDepth {
		slog.Warn("metadata tree too deep, skipping", "path", id)
		return out, nil
	}

	body, found, err := c.get(ctx, version, id)
	if err != nil || !found {
		return out, err
	}

	var entries []*entry
	for _, line := range splitLines(body) {
		path := expandPath(id + line)
		switch {
		case !strings.HasSuffix(path, "/"):
			entries = append(entries, &entry{path: path})
		case path != id && path != "/":
			entries = append(entries, &entry{path: path, dir: true})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for _, e := range entries {
		if e.dir {
			continue
		}
		g.Go(func() error {
			value, found, err := c.get(gctx, version, e.path)
			if err != nil {
				return err
			}
			if !found {
				slog.Debug("metadata leaf not found", "path", e.path)
				return nil
			}
			e.present = true
			if arrayValues[e.path] {
				e.value = toList(splitLines(value))
			} else {
				e.value = value
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, e := range entries {
		if !e.dir {
			continue
		}
		sub, err := c.fetchDir(ctx, version, e.path, depth+1)
		if err != nil {
			return nil, err
		}
		e.sub = sub
	}

	for _, e := range entries {
		switch {
		case e.dir:
			e.sub.Range(func(k string, v any) bool {
				out.Set(k, v)
				return true
			})
		case e.present:
			out.Set(Key(e.path), e.value)
		}
	}
	return out, nil
}

// get returns the body at /<version>/meta-data/<path>; found is false on 404.
func (c *Client) get(ctx context.Context, version, path string) (string, bool, error) {
	uri := "/" + version + "/meta-data/" + path
	resp, err := c.http.Get(ctx, uri)
	if err != nil {
		return "", false, err
	}
	switch resp.Status {
	case http.StatusOK:
		return string(resp.Body), true, nil
	case http.StatusNotFound:
		return "", false, nil
	default:
		return "", false, statusError("failed to fetch ec2 metadata", uri, resp.Status)
	}
}

// Key converts a metadata path to an attribute key.
func Key(path string) string {
	return strings.NewReplacer("-", "_", "/", "_").Replace(path)
}

// expandPath turns listing entries into request paths. "0=name" becomes the
// directory "0/"; "." and ".." segments are dropped.
func expandPath(name string) string {
	p := assignmentRe.ReplaceAllString(name, "/")
	p = dotSegmentRe.ReplaceAllString(p, "/")
	p = leadingDotsRe.ReplaceAllString(p, "")
	if p == "" {
		return "/"
	}
	return p
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func toList(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}

func statusError(msg, uri string, status int) error {
	return errors.NewWithContext(errors.ErrCodeUnavailable,
		fmt.Sprintf("%s (HTTP %d)", msg, status),
		map[string]any{"path": uri, "status": status})
}
