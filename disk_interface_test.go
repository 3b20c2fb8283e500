// Copyright 2011 Google Inc. All Rights Reserved.
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

package kunai

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskFileReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build.ninja")
	require.NoError(t, os.WriteFile(path, []byte("rule cc\n"), 0o600))

	var fr FileReader = DiskFileReader{}
	contents, err := fr.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "rule cc\n", string(contents))

	_, err = fr.ReadFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestVirtualFileSystem(t *testing.T) {
	fs := NewVirtualFileSystem()
	fs.Create("b.ninja", "x = 1\n")
	fs.Create("a.ninja", "y = 2\n")

	contents, err := fs.ReadFile("a.ninja")
	require.NoError(t, err)
	assert.Equal(t, "y = 2\n", string(contents))

	_, err = fs.ReadFile("missing.ninja")
	require.Error(t, err)
	assert.Equal(t, "file not found", err.Error())

	// Reads are recorded in order, including failed ones.
	assert.Equal(t, []string{"a.ninja", "missing.ninja"}, fs.FilesRead)
	assert.Equal(t, []string{"a.ninja", "b.ninja"}, fs.Paths())
}
