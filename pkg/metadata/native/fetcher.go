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

// Package native fetches the OpenStack-native instance metadata document
// (meta_data.json).
package native

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Neve/ohai/pkg/attribute"
	"github.com/Neve/ohai/pkg/errors"
	"github.com/Neve/ohai/pkg/metadata"
)

// Path is the location of the native metadata document.
const Path = "/openstack/latest/meta_data.json"

// Fetcher retrieves meta_data.json from the metadata service.
type Fetcher struct {
	http *metadata.Client
}

// NewFetcher returns a Fetcher that uses c.
func NewFetcher(c *metadata.Client) *Fetcher {
	return &Fetcher{http: c}
}

// Fetch returns the native document as an ordered map. Any status other than
// 200 is an ErrCodeUnavailable error carrying the status; a body that is not a
// JSON object is an ErrCodeInvalidResponse error.
func (f *Fetcher) Fetch(ctx context.Context) (*attribute.Map, error) {
	resp, err := f.http.Get(ctx, Path)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, errors.NewWithContext(errors.ErrCodeUnavailable,
			"encountered error retrieving OpenStack metadata",
			map[string]any{"path": Path, "status": resp.Status})
	}

	doc, err := attribute.ParseJSON(resp.Body)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidResponse,
			"failed to parse OpenStack metadata", err,
			map[string]any{"path": Path})
	}

	checkUUID(doc)
	slog.Debug("fetched openstack metadata", "keys", doc.Len())
	return doc, nil
}

func checkUUID(doc *attribute.Map) {
	v, ok := doc.Get("uuid")
	if !ok {
		return
	}
	s, ok := v.(string)
	if !ok {
		slog.Warn("openstack metadata uuid is not a string", "uuid", v)
		return
	}
	if err := uuid.Validate(s); err != nil {
		slog.Warn("openstack metadata uuid is not a valid UUID", "uuid", s, "error", err)
	}
}
