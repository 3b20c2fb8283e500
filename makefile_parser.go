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

// MakefileParser parses the simple Makefiles written by compilers in
// "generate dependency list" mode: one "target: prerequisite*"
// statement, possibly spread over backslash-continued lines.
//
// Only the first statement in the buffer is honored; anything after it
// is ignored, matching the single-target output the producing tools
// emit. Prerequisites keep their source order and are not
// deduplicated.
type MakefileParser struct {
	tokenizer Tokenizer

	Out string
	Ins []string
}

func NewMakefileParser() *MakefileParser {
	return &MakefileParser{tokenizer: Tokenizer{dialect: DialectMakefile}}
}

// Parse reads the first dependency statement from input.
func (m *MakefileParser) Parse(input []byte) error {
	m.tokenizer.Start(input)

	m.tokenizer.SkipWhitespace(true)
	if !m.tokenizer.ReadIdent(&m.Out) {
		return m.tokenizer.errorExpected("output filename")
	}
	if err := m.tokenizer.ExpectToken(TokenColon); err != nil {
		return err
	}
	for m.tokenizer.PeekToken() == TokenIdent {
		in := ""
		m.tokenizer.ReadIdent(&in)
		m.Ins = append(m.Ins, in)
	}
	if tok := m.tokenizer.PeekToken(); tok != TokenNewline && tok != TokenEOF {
		return m.tokenizer.errorExpected("newline")
	}
	return nil
}
