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

import "fmt"

// SourceLocation is a user-understandable position within a source
// buffer. Line and Column are both 1-based.
type SourceLocation struct {
	Line   int
	Column int
}

// Error builds a diagnostic for message at this location. It always
// represents a failure; there is no warning path.
func (s SourceLocation) Error(message string) error {
	return fmt.Errorf("line %d, column %d: %s", s.Line, s.Column, message)
}
