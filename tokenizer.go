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

// Tokenizer processes an input buffer into Tokens, one physical pass
// with a single token of lookahead.
//
// A Tokenizer is created fresh per buffer via Start and holds no
// cross-file state. By default it scans manifests; set dialect to
// DialectMakefile for dependency listings.
type Tokenizer struct {
	dialect Dialect

	buf     []byte
	cur     int
	curLine int // offset of the start of the current physical line

	token      Token
	lineNumber int
	// The indentation column established for the enclosing block, and
	// the one measured for the current line (-1 until measured).
	lastIndent int
	curIndent  int
}

// NewTokenizer returns a Tokenizer for the given dialect. Start must
// be called before scanning.
func NewTokenizer(dialect Dialect) *Tokenizer {
	return &Tokenizer{dialect: dialect}
}

// Start resets all state to scan buf from its first character. An
// empty buffer yields a single eof token.
func (t *Tokenizer) Start(buf []byte) {
	t.buf = buf
	t.cur = 0
	t.curLine = 0
	t.token = Token{Kind: TokenNone}
	t.lineNumber = 0
	t.lastIndent = 0
	t.curIndent = -1
}

// The character that, immediately before a newline, joins two physical
// lines into one logical line.
func (t *Tokenizer) continuation() byte {
	if t.dialect == DialectMakefile {
		return '\\'
	}
	return '$'
}

// startLine records that the cursor crossed onto a new physical line.
func (t *Tokenizer) startLine() {
	t.curLine = t.cur
	t.lineNumber++
	t.curIndent = -1
}

// foldContinuation advances past a continuation pair. The logical line
// keeps the indentation of its first physical line, so curIndent is
// left alone.
func (t *Tokenizer) foldContinuation() {
	t.cur += 2
	t.curLine = t.cur
	t.lineNumber++
}

// Location reports the position of the current token.
func (t *Tokenizer) Location() SourceLocation {
	return SourceLocation{Line: t.lineNumber + 1, Column: t.token.Pos - t.curLine + 1}
}

// Error builds a diagnostic pointing at the current token.
func (t *Tokenizer) Error(message string) error {
	return t.Location().Error(message)
}

// errorExpected builds an "expected foo, got bar" diagnostic.
func (t *Tokenizer) errorExpected(expected string) error {
	return t.Error("expected " + expected + ", got " + t.tokenString())
}

// tokenString describes the current token for diagnostics.
func (t *Tokenizer) tokenString() string {
	switch t.token.Kind {
	case TokenIdent:
		return "'" + string(t.buf[t.token.Pos:t.token.End]) + "'"
	case TokenUnknown:
		return "unknown '" + string(t.buf[t.token.Pos:t.token.End]) + "'"
	}
	return t.token.Kind.String()
}

// TokenText returns the text of the current (peeked) token.
func (t *Tokenizer) TokenText() string {
	return string(t.buf[t.token.Pos:t.token.End])
}

// SkipWhitespace advances over spaces, tabs and line continuations.
// With newline set it also consumes blank lines and comment lines, so
// they never reach the indentation machinery.
func (t *Tokenizer) SkipWhitespace(newline bool) {
	if newline && t.token.Kind == TokenNewline {
		t.ConsumeToken()
	}
	cont := t.continuation()
	for t.cur < len(t.buf) {
		c := t.buf[t.cur]
		switch {
		case c == ' ' || c == '\t':
			t.cur++
		case c == cont && t.cur+1 < len(t.buf) && t.buf[t.cur+1] == '\n':
			t.foldContinuation()
		case newline && c == '\n':
			t.cur++
			t.startLine()
		case newline && c == '#':
			for t.cur < len(t.buf) && t.buf[t.cur] != '\n' {
				t.cur++
			}
		default:
			return
		}
	}
}

// PeekToken scans and caches the next token if none is cached, and
// returns its kind. Peeking repeatedly without consuming is
// idempotent.
func (t *Tokenizer) PeekToken() TokenKind {
	if t.token.Kind != TokenNone {
		return t.token.Kind
	}

	// Measure the line's indentation at its first non-whitespace
	// character. A '#' as that first character makes the whole line a
	// comment, which produces no token at all; restart on the following
	// line. '#' anywhere later in a line is just an unknown character.
	for {
		if t.curIndent == -1 {
			t.SkipWhitespace(false)
			t.curIndent = t.cur - t.curLine
		}
		if t.cur < len(t.buf) && t.buf[t.cur] == '#' && t.cur == t.curLine+t.curIndent {
			for t.cur < len(t.buf) && t.buf[t.cur] != '\n' {
				t.cur++
			}
			if t.cur < len(t.buf) {
				t.cur++
				t.startLine()
				continue
			}
		}
		break
	}

	t.token.Pos = t.cur
	t.token.End = t.cur

	// Translate an indentation change into a block token. The makefile
	// grammar has no block nesting, so the machinery is disabled there.
	if t.dialect == DialectManifest && t.curIndent != t.lastIndent {
		if t.curIndent > t.lastIndent {
			t.token.Kind = TokenIndent
		} else {
			t.token.Kind = TokenOutdent
		}
		t.lastIndent = t.curIndent
		return t.token.Kind
	}

	if t.cur >= len(t.buf) {
		t.token.Kind = TokenEOF
		return TokenEOF
	}

	switch c := t.buf[t.cur]; {
	case isIdentChar(c):
		for t.cur < len(t.buf) && isIdentChar(t.buf[t.cur]) {
			t.cur++
		}
		t.token.Kind = TokenIdent
	case c == '=':
		t.cur++
		t.token.Kind = TokenEquals
	case c == ':':
		t.cur++
		t.token.Kind = TokenColon
	case c == '|':
		if t.cur+1 < len(t.buf) && t.buf[t.cur+1] == '|' {
			t.cur += 2
			t.token.Kind = TokenPipe2
		} else {
			t.cur++
			t.token.Kind = TokenPipe
		}
	case c == '\n':
		t.cur++
		t.token.Kind = TokenNewline
	default:
		t.cur++
		t.token.Kind = TokenUnknown
	}
	t.token.End = t.cur

	// Leave the cursor at the start of the next token, so raw reads
	// like ReadToNewline begin at real content.
	if t.token.Kind != TokenNewline && t.token.Kind != TokenEOF {
		t.SkipWhitespace(false)
	}
	return t.token.Kind
}

// ConsumeToken discards the cached token, forcing the next Peek to
// scan fresh. Crossing a newline is accounted for here so diagnostics
// on a peeked newline still point at the line that contains it.
func (t *Tokenizer) ConsumeToken() {
	if t.token.Kind == TokenNewline {
		t.startLine()
	}
	t.token.Kind = TokenNone
}

// ExpectToken consumes the next token if its kind matches, and
// otherwise fails with a diagnostic at the current token.
func (t *Tokenizer) ExpectToken(expected TokenKind) error {
	if t.PeekToken() != expected {
		return t.errorExpected(expected.String())
	}
	t.ConsumeToken()
	return nil
}

// ExpectIdent consumes the next token if it is an identifier with the
// given text.
func (t *Tokenizer) ExpectIdent(expected string) error {
	if t.PeekToken() != TokenIdent || t.TokenText() != expected {
		return t.errorExpected("'" + expected + "'")
	}
	t.ConsumeToken()
	return nil
}

// Newline expects and consumes exactly one newline token.
func (t *Tokenizer) Newline() error {
	return t.ExpectToken(TokenNewline)
}

// ReadIdent consumes one identifier token and writes its text to out.
// It returns false if the next token is not an identifier.
func (t *Tokenizer) ReadIdent(out *string) bool {
	if t.PeekToken() != TokenIdent {
		return false
	}
	*out = t.TokenText()
	t.ConsumeToken()
	return true
}

// ReadToNewline appends raw characters to out up to, but not
// including, the next newline, folding line continuations along the
// way. Reading more than maxLength characters is a failure. The token
// cache must be empty when called; it is left empty, positioned at the
// line's terminating newline.
func (t *Tokenizer) ReadToNewline(out *string, maxLength int) error {
	if t.curIndent == -1 {
		t.curIndent = t.cur - t.curLine
	}
	cont := t.continuation()
	for t.cur < len(t.buf) && t.buf[t.cur] != '\n' {
		c := t.buf[t.cur]
		take := 1
		if c == cont && t.cur+1 < len(t.buf) {
			switch t.buf[t.cur+1] {
			case cont:
				// A doubled continuation character ("$$", "\\" in a
				// makefile) is an escape; consume the pair whole so its
				// second half cannot read as the start of a fold.
				take = 2
			case '\n':
				t.foldContinuation()
				// The joined line reads as one; its leading whitespace
				// is not part of the value.
				for t.cur < len(t.buf) && (t.buf[t.cur] == ' ' || t.buf[t.cur] == '\t') {
					t.cur++
				}
				continue
			}
		}
		if len(*out)+take > maxLength {
			t.token.Pos = t.cur
			t.token.End = t.cur
			return t.Error("line too long")
		}
		*out += string(t.buf[t.cur : t.cur+take])
		t.cur += take
	}
	t.token = Token{Kind: TokenNone, Pos: t.cur, End: t.cur}
	return nil
}
