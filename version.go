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
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// ManifestVersion is the highest ninja_required_version this front-end
// understands.
const ManifestVersion = "1.1.0"

// checkRequiredVersion fails when a manifest declares a
// ninja_required_version newer than what this parser implements.
// Partial versions like "1.1" are accepted.
func checkRequiredVersion(required string) error {
	req, err := semver.NewVersion(required)
	if err != nil {
		return fmt.Errorf("invalid ninja_required_version '%s'", required)
	}
	if req.GreaterThan(semver.MustParse(ManifestVersion)) {
		return fmt.Errorf("manifest requires ninja version %s, this parser implements %s", required, ManifestVersion)
	}
	return nil
}
