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

// Package cli implements the ohai command line.
//
// # Commands
//
// collect - detect OpenStack and write an OpenStackInventory document:
//
//	ohai collect [--config FILE] [--hint NAME]... [--hints-dir DIR]... [--path DIR]...
//	             [--merge-mode full|selective] [--metadata-address ADDR] [--metadata-port PORT]
//	             [--timeout DURATION] [--metrics-file FILE] [--output FILE] [--format json|yaml|table]
//
// detect - print the provider (openstack, hp) or not-openstack:
//
//	ohai detect [--hint NAME]... [--hints-dir DIR]... [--format json|yaml|table]
//
// # Global Flags
//
//	--log-level    Logging verbosity: debug, info, warn, error (default: info)
//	--help, -h     Show command help
//	--version, -v  Show version information
//
// Flags override values from the configuration file. Without --format the
// format is inferred from the --output extension and defaults to JSON.
//
// # Environment Variables
//
//	LOG_LEVEL              Logging verbosity
//	OHAI_CONFIG            Configuration file
//	OHAI_HINTS             Comma separated hints
//	OHAI_PATH              Extra probe search directories
//	OHAI_MERGE_MODE        full or selective
//	OHAI_METADATA_ADDRESS  Metadata service address
//	OHAI_METADATA_PORT     Metadata service port
//	OHAI_TIMEOUT           Collection timeout
//	OHAI_METRICS_FILE      Prometheus textfile output
//	OHAI_OUTPUT            Output file
//	OHAI_FORMAT            Output format
//
// # Exit Codes
//
//	0  Success, including hosts that are not OpenStack
//	1  Invalid arguments or configuration, or a run that could not complete
package cli
