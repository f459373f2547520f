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

// Package collector wires cloud collectors to their production dependencies.
//
// The Factory interface abstracts collector creation so commands can be
// tested with fakes:
//
//	type Factory interface {
//	    CreateOpenStackCollector() Collector
//	    CreateDetector() Detector
//	}
//
// DefaultFactory builds the collectors from a config.Config:
//
//	cfg, err := config.Load("/etc/ohai/ohai.yaml")
//	if err != nil {
//	    return err
//	}
//	factory := collector.NewDefaultFactory(collector.WithConfig(cfg))
//	res, err := factory.CreateOpenStackCollector().Collect(ctx)
//
// The probe runner is restricted to the configured extra paths, hints are
// read from the static list and the hint directories, and the EC2 and native
// fetchers share one rate-limited metadata client.
package collector
