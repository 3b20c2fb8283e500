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
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/kunai-build/kunai"
)

func newParseCommand() *cobra.Command {
	dump := false
	cmd := &cobra.Command{
		Use:   "parse [manifest]",
		Short: "Parse a manifest and report what it declares",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "build.ninja"
			if len(args) == 1 {
				path = args[0]
			}
			return runParse(cmd, path, dump)
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "print every rule, build statement and default target")
	return cmd
}

func runParse(cmd *cobra.Command, path string, dump bool) error {
	state := kunai.NewState()
	parser := kunai.NewManifestParser(state, kunai.DiskFileReader{})
	if err := parser.Load(path); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d rules, %d build statements, %d pools\n",
		path, len(state.Rules), len(state.Edges), len(state.Pools))
	if !dump {
		return nil
	}

	names := make([]string, 0, len(state.Rules))
	for name := range state.Rules {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(out, state.Rules[name])
	}
	for _, edge := range state.Edges {
		fmt.Fprintln(out, edge)
	}
	for _, node := range state.Defaults {
		fmt.Fprintln(out, "default "+node.Path)
	}
	return nil
}
