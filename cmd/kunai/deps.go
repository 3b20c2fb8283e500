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
	"os"

	"github.com/spf13/cobra"

	"github.com/kunai-build/kunai"
)

func newDepsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deps <depfile>",
		Short: "Parse a compiler-written dependency file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			contents, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			parser := kunai.NewMakefileParser()
			if err := parser.Parse(contents); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, parser.Out)
			for _, in := range parser.Ins {
				fmt.Fprintln(out, "  "+in)
			}
			return nil
		},
	}
}
