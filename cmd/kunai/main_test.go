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
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.ninja")
	manifest := "rule cc\n  command = gcc -c $in -o $out\nbuild foo.o: cc foo.c\ndefault foo.o\n"
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o600))

	out, err := runCommand(t, "parse", path)
	require.NoError(t, err)
	assert.Equal(t, path+": 1 rules, 1 build statements, 0 pools\n", out)

	out, err = runCommand(t, "parse", "--dump", path)
	require.NoError(t, err)
	assert.Contains(t, out, "rule cc{command:[gcc -c ][$in][ -o ][$out]}\n")
	assert.Contains(t, out, "build foo.o: cc foo.c\n")
	assert.Contains(t, out, "default foo.o\n")
}

func TestParseCommandError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.ninja")
	require.NoError(t, os.WriteFile(path, []byte("build x: nope\n"), 0o600))

	_, err := runCommand(t, "parse", path)
	require.Error(t, err)
	assert.Equal(t, "line 1, column 10: unknown build rule 'nope'", err.Error())
}

func TestDepsCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "foo.d")
	require.NoError(t, os.WriteFile(path, []byte("foo.o: foo.c \\\n foo.h\n"), 0o600))

	out, err := runCommand(t, "deps", path)
	require.NoError(t, err)
	assert.Equal(t, "foo.o\n  foo.c\n  foo.h\n", out)
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "1.1.0\n", out)
}
