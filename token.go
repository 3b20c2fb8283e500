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

// TokenKind classifies a single token in an input stream.
type TokenKind int32

const (
	TokenNone TokenKind = iota
	TokenUnknown
	TokenIdent
	TokenNewline
	TokenEquals
	TokenColon
	TokenPipe
	TokenPipe2
	TokenIndent
	TokenOutdent
	TokenEOF
)

func (t TokenKind) String() string {
	switch t {
	case TokenNone:
		return "none"
	case TokenUnknown:
		return "unknown"
	case TokenIdent:
		return "identifier"
	case TokenNewline:
		return "newline"
	case TokenEquals:
		return "'='"
	case TokenColon:
		return "':'"
	case TokenPipe:
		return "'|'"
	case TokenPipe2:
		return "'||'"
	case TokenIndent:
		return "indent"
	case TokenOutdent:
		return "outdent"
	case TokenEOF:
		return "eof"
	}
	return ""
}

// Token is a single parsed token. Pos and End are offsets into the
// buffer passed to Tokenizer.Start; a Token never copies text and is
// only valid while that buffer is alive.
type Token struct {
	Kind TokenKind
	Pos  int
	End  int
}

// Dialect selects which of the two accepted textual grammars the
// Tokenizer scans. It is a plain mode switch, not a subtype: the two
// dialects share one token engine and differ only in whether
// indentation is significant and which character continues a line.
type Dialect int32

const (
	// DialectManifest scans build manifests. Indentation opens and
	// closes binding blocks, and '$' before a newline joins physical
	// lines.
	DialectManifest Dialect = iota
	// DialectMakefile scans compiler-generated dependency listings.
	// Indentation is plain whitespace and a trailing backslash joins
	// physical lines.
	DialectMakefile
)

// Identifiers double as path names, so the character set includes the
// punctuation commonly found in file paths.
func isIdentChar(c byte) bool {
	return 'a' <= c && c <= 'z' ||
		'A' <= c && c <= 'Z' ||
		'0' <= c && c <= '9' ||
		c == '_' || c == '-' || c == '.' || c == '/' ||
		c == '+' || c == ',' || c == '@' || c == '~'
}

// Variable names referenced as $name without curly braces.
func isSimpleVarChar(c byte) bool {
	return 'a' <= c && c <= 'z' ||
		'A' <= c && c <= 'Z' ||
		'0' <= c && c <= '9' ||
		c == '_' || c == '-'
}

// Variable names referenced as ${name} additionally allow dots.
func isVarChar(c byte) bool {
	return isSimpleVarChar(c) || c == '.'
}
