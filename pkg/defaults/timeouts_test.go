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

package defaults

import (
	"testing"
	"time"
)

func TestTimeoutConstants(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		minValue time.Duration
		maxValue time.Duration
	}{
		// Collector timeouts
		{"CollectTimeout", CollectTimeout, 30 * time.Second, 5 * time.Minute},
		{"ProbeTimeout", ProbeTimeout, 1 * time.Second, 30 * time.Second},

		// Metadata timeouts
		{"MetadataConnectTimeout", MetadataConnectTimeout, 500 * time.Millisecond, 10 * time.Second},
		{"MetadataRequestTimeout", MetadataRequestTimeout, 1 * time.Second, 60 * time.Second},

		// HTTP client timeouts
		{"HTTPConnectTimeout", HTTPConnectTimeout, 500 * time.Millisecond, 15 * time.Second},
		{"HTTPResponseHeaderTimeout", HTTPResponseHeaderTimeout, 1 * time.Second, 30 * time.Second},
		{"HTTPIdleConnTimeout", HTTPIdleConnTimeout, 10 * time.Second, 120 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.timeout < tt.minValue {
				t.Errorf("%s (%v) is below minimum expected value (%v)", tt.name, tt.timeout, tt.minValue)
			}
			if tt.timeout > tt.maxValue {
				t.Errorf("%s (%v) exceeds maximum expected value (%v)", tt.name, tt.timeout, tt.maxValue)
			}
		})
	}
}

func TestTimeoutRelationships(t *testing.T) {
	if MetadataConnectTimeout >= MetadataRequestTimeout {
		t.Errorf("MetadataConnectTimeout (%v) should be less than MetadataRequestTimeout (%v)",
			MetadataConnectTimeout, MetadataRequestTimeout)
	}
	if ProbeTimeout >= CollectTimeout {
		t.Errorf("ProbeTimeout (%v) should be less than CollectTimeout (%v)",
			ProbeTimeout, CollectTimeout)
	}
}

func TestMetadataLimits(t *testing.T) {
	if MetadataRateBurst < 1 {
		t.Errorf("MetadataRateBurst = %d, want >= 1", MetadataRateBurst)
	}
	if MetadataFetchConcurrency < 1 {
		t.Errorf("MetadataFetchConcurrency = %d, want >= 1", MetadataFetchConcurrency)
	}
	if MetadataMaxResponseSize <= 0 {
		t.Errorf("MetadataMaxResponseSize = %d, want > 0", MetadataMaxResponseSize)
	}
}
