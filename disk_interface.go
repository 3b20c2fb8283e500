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
	"errors"
	"os"
	"sort"
)

// FileReader reads files from some store. It is injected into parsers
// at construction so tests and tools can substitute an in-memory
// implementation.
type FileReader interface {
	// ReadFile reads a file and returns its content.
	ReadFile(path string) ([]byte, error)
}

// DiskFileReader reads files from the local filesystem.
type DiskFileReader struct{}

func (DiskFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// VirtualFileSystem is an in-memory FileReader. It records reads, so
// tests can assert which files a parse touched and in what order.
type VirtualFileSystem struct {
	files     map[string]string
	FilesRead []string
}

func NewVirtualFileSystem() *VirtualFileSystem {
	return &VirtualFileSystem{files: map[string]string{}}
}

// Create sets the contents for path.
func (v *VirtualFileSystem) Create(path, contents string) {
	v.files[path] = contents
}

func (v *VirtualFileSystem) ReadFile(path string) ([]byte, error) {
	v.FilesRead = append(v.FilesRead, path)
	contents, ok := v.files[path]
	if !ok {
		return nil, errors.New("file not found")
	}
	return []byte(contents), nil
}

// Paths returns every file path in the filesystem, sorted.
func (v *VirtualFileSystem) Paths() []string {
	out := make([]string, 0, len(v.files))
	for p := range v.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
