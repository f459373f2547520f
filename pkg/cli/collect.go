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
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v3"

	"github.com/Neve/ohai/pkg/collector"
	"github.com/Neve/ohai/pkg/defaults"
	"github.com/Neve/ohai/pkg/inventory"
	"github.com/Neve/ohai/pkg/serializer"
)

func collectCmd() *cli.Command {
	flags := slices.Concat(
		probeFlags(),
		metadataFlags(),
		[]cli.Flag{
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "timeout of the whole collection run",
				Value:   defaults.CollectTimeout,
				Sources: cli.EnvVars("OHAI_TIMEOUT"),
			},
			&cli.StringFlag{
				Name:    "metrics-file",
				Usage:   "write collection metrics in Prometheus text format to this file",
				Sources: cli.EnvVars("OHAI_METRICS_FILE"),
			},
			outputFlag(),
			formatFlag(),
		},
	)

	return &cli.Command{
		Name:                  "collect",
		EnableShellCompletion: true,
		Usage:                 "Collect OpenStack instance attributes",
		Description: `Detect OpenStack and collect the instance attributes:
  - EC2-compatible metadata tree (http://169.254.169.254/<version>/meta-data/)
  - OpenStack native metadata (/openstack/latest/meta_data.json)
  - hypervisor vendor (lscpu) and cloud version (DMI product_version)

Detection succeeds when the openstack or hp hint is present or the DMI product
name mentions OpenStack. Other hosts produce a document without the openstack
section.

The inventory can be output in JSON, YAML, or table format.

# Examples

  ohai collect --format yaml
  ohai collect --hint openstack --merge-mode selective --output inventory.json
  ohai collect --config /etc/ohai/ohai.yaml --metrics-file /var/lib/node_exporter/ohai.prom`,
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if timeout := cmd.Duration("timeout"); timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if cerr := w.Close(); cerr != nil {
					slog.Warn("failed to close output", "error", cerr)
				}
			}()

			n := inventory.Inventorier{
				Version:    version,
				Factory:    collector.NewDefaultFactory(collector.WithConfig(cfg)),
				Serializer: w,
			}

			_, err = n.Collect(ctx)

			if path := cmd.String("metrics-file"); path != "" {
				if merr := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); merr != nil {
					slog.Error("failed to write metrics file", "path", path, "error", merr)
					if err == nil {
						err = fmt.Errorf("failed to write metrics file: %w", merr)
					}
				}
			}
			return err
		},
	}
}
