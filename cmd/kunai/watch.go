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
	"path/filepath"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/kunai-build/kunai"
)

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [manifest]",
		Short: "Re-parse a manifest whenever it changes",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "build.ninja"
			if len(args) == 1 {
				path = args[0]
			}
			return runWatch(cmd, path)
		},
	}
}

func runWatch(cmd *cobra.Command, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// Watch the directory rather than the file: editors that replace
	// the file on save would otherwise silently drop the watch.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	ok := color.New(color.FgGreen)
	bad := color.New(color.FgRed)
	reparse := func() {
		state := kunai.NewState()
		parser := kunai.NewManifestParser(state, kunai.DiskFileReader{})
		if err := parser.Load(path); err != nil {
			bad.Fprintln(cmd.ErrOrStderr(), err)
			return
		}
		ok.Fprintf(cmd.OutOrStdout(), "%s: %d rules, %d build statements\n",
			path, len(state.Rules), len(state.Edges))
	}

	reparse()
	for {
		select {
		case ev, open := <-watcher.Events:
			if !open {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			reparse()
		case err, open := <-watcher.Errors:
			if !open {
				return nil
			}
			bad.Fprintln(cmd.ErrOrStderr(), err)
		}
	}
}
