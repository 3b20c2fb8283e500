// Copyright 2013 Google Inc. All Rights Reserved.
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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckRequiredVersion(t *testing.T) {
	assert.NoError(t, checkRequiredVersion("1.0"))
	assert.NoError(t, checkRequiredVersion("1.1"))
	assert.NoError(t, checkRequiredVersion("1.1.0"))
	assert.NoError(t, checkRequiredVersion(ManifestVersion))

	err := checkRequiredVersion("1.2")
	assert.EqualError(t, err, "manifest requires ninja version 1.2, this parser implements 1.1.0")

	err = checkRequiredVersion("99.0")
	assert.EqualError(t, err, "manifest requires ninja version 99.0, this parser implements 1.1.0")

	err = checkRequiredVersion("fuzzy")
	assert.EqualError(t, err, "invalid ninja_required_version 'fuzzy'")
}
