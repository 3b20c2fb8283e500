// Copyright 2021 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kunai",
		Short: "Parse build manifests and dependency listings",
		Long: `kunai is a front end for the ninja manifest format. It parses
manifests (and the Makefile-flavored dependency files compilers write)
without building anything, so errors surface with exact line and
column information.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(
		newParseCommand(),
		newDepsCommand(),
		newWatchCommand(),
		newVersionCommand(),
	)
	return cmd
}
