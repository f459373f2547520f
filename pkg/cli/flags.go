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

package cli

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/Neve/ohai/pkg/config"
	"github.com/Neve/ohai/pkg/serializer"
)

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
		Sources: cli.EnvVars("OHAI_OUTPUT"),
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Usage: fmt.Sprintf("output format (supported values: %s)",
			strings.Join(serializer.SupportedFormats(), ", ")),
		Sources: cli.EnvVars("OHAI_FORMAT"),
	}
}

// probeFlags configure detection. Shared by collect and detect.
func probeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to the YAML configuration file",
			Sources: cli.EnvVars("OHAI_CONFIG"),
		},
		&cli.StringSliceFlag{
			Name:    "hint",
			Usage:   "treat hint NAME as present (openstack, hp); can be repeated",
			Sources: cli.EnvVars("OHAI_HINTS"),
		},
		&cli.StringSliceFlag{
			Name:  "hints-dir",
			Usage: "directory holding <name>.json hint files; can be repeated (default: /etc/chef/ohai/hints)",
		},
		&cli.StringSliceFlag{
			Name:    "path",
			Usage:   "extra directory searched for probe commands; can be repeated",
			Sources: cli.EnvVars("OHAI_PATH"),
		},
		&cli.DurationFlag{
			Name:  "probe-timeout",
			Usage: "timeout of a single probe command",
		},
	}
}

// metadataFlags configure the metadata service clients.
func metadataFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "merge-mode",
			Usage:   "how native metadata is merged (full, selective)",
			Sources: cli.EnvVars("OHAI_MERGE_MODE"),
		},
		&cli.StringFlag{
			Name:    "metadata-address",
			Usage:   "metadata service address (default: 169.254.169.254)",
			Sources: cli.EnvVars("OHAI_METADATA_ADDRESS"),
		},
		&cli.IntFlag{
			Name:    "metadata-port",
			Usage:   "metadata service port (default: 80)",
			Sources: cli.EnvVars("OHAI_METADATA_PORT"),
		},
	}
}

// parseOutputFormat returns the --format value, inferring it from the
// --output extension when unset.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	raw := cmd.String("format")
	if raw == "" {
		return serializer.FormatFromPath(cmd.String("output")), nil
	}
	f := serializer.Format(strings.ToLower(raw))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", raw)
	}
	return f, nil
}

// loadConfig reads --config (or the defaults) and applies flag overrides.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg := config.Default()
	if path := cmd.String("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	err := cfg.Apply(
		config.WithHints(cmd.StringSlice("hint")...),
		config.WithHintPaths(cmd.StringSlice("hints-dir")...),
		config.WithExtraPaths(cmd.StringSlice("path")...),
		config.WithProbeTimeout(cmd.Duration("probe-timeout")),
		config.WithMergeMode(cmd.String("merge-mode")),
		config.WithMetadataAddress(cmd.String("metadata-address")),
		config.WithMetadataPort(int(cmd.Int("metadata-port"))),
	)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
