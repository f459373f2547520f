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

	"github.com/urfave/cli/v3"

	"github.com/Neve/ohai/pkg/collector"
	"github.com/Neve/ohai/pkg/inventory"
	"github.com/Neve/ohai/pkg/serializer"
)

const notOpenStack = "not-openstack"

func detectCmd() *cli.Command {
	return &cli.Command{
		Name:                  "detect",
		EnableShellCompletion: true,
		Usage:                 "Report whether the host runs on OpenStack",
		Description: `Run only the detection step and print the provider (openstack or hp),
or not-openstack. The metadata service is not contacted.

With --format the result is written as an OpenStackDetection document.`,
		Flags: slices.Concat(probeFlags(), []cli.Flag{outputFlag(), formatFlag()}),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			factory := collector.NewDefaultFactory(collector.WithConfig(cfg))

			if cmd.String("format") == "" && cmd.String("output") == "" {
				provider, ok, err := factory.CreateDetector().Detect(ctx)
				if err != nil {
					return err
				}
				result := notOpenStack
				if ok {
					result = provider.String()
				}
				_, err = fmt.Fprintln(cmd.Root().Writer, result)
				return err
			}

			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}
			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if cerr := w.Close(); cerr != nil {
					slog.Warn("failed to close output", "error", cerr)
				}
			}()

			n := inventory.Inventorier{Version: version, Factory: factory, Serializer: w}
			_, err = n.Detect(ctx)
			return err
		},
	}
}
