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
	"fmt"
	"math"
	"strconv"
)

// ManifestParser parses build manifests and registers their
// declarations with a State.
//
// Parsing is fail-fast: the first error aborts the whole call tree
// with a single diagnostic. Declarations registered before the failure
// point are not retracted.
type ManifestParser struct {
	state      *State
	fileReader FileReader

	env       *BindingEnv
	tokenizer Tokenizer
}

// NewManifestParser returns a parser registering into state and
// reading included files through fileReader.
func NewManifestParser(state *State, fileReader FileReader) *ManifestParser {
	return &ManifestParser{
		state:      state,
		fileReader: fileReader,
		env:        state.Bindings,
	}
}

// Load reads and parses a manifest file, recursing into any files it
// includes. Nested loads run depth-first, to completion, in textual
// encounter order.
func (m *ManifestParser) Load(filename string) error {
	contents, err := m.fileReader.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("loading '%s': %s", filename, err)
	}
	return m.Parse(contents)
}

// Parse parses a manifest, given its contents as a byte buffer. The
// buffer must outlive the parse; tokens borrow from it.
func (m *ManifestParser) Parse(input []byte) error {
	m.tokenizer.Start(input)

	m.tokenizer.SkipWhitespace(true)
	for {
		switch m.tokenizer.PeekToken() {
		case TokenEOF:
			return nil
		case TokenNewline:
			m.tokenizer.ConsumeToken()
		case TokenIdent:
			var err error
			switch m.tokenizer.TokenText() {
			case "rule":
				err = m.parseRule()
			case "build":
				err = m.parseEdge()
			case "pool":
				err = m.parsePool()
			case "default":
				err = m.parseDefault()
			case "include":
				err = m.parseFileInclude(false)
			case "subninja":
				err = m.parseFileInclude(true)
			default:
				err = m.parseBinding()
			}
			if err != nil {
				return err
			}
		default:
			return m.tokenizer.errorExpected("'rule', 'build', or eof")
		}
		m.tokenizer.SkipWhitespace(true)
	}
}

// parseRule parses "rule NAME" followed by an indented block of
// key=value bindings, registering the rule with its bindings left
// unexpanded.
func (m *ManifestParser) parseRule() error {
	if err := m.tokenizer.ExpectIdent("rule"); err != nil {
		return err
	}
	name := ""
	if !m.tokenizer.ReadIdent(&name) {
		return m.tokenizer.errorExpected("rule name")
	}
	if m.state.LookupRule(name) != nil {
		return m.tokenizer.Error("duplicate rule '" + name + "'")
	}
	if err := m.tokenizer.Newline(); err != nil {
		return err
	}

	if err := m.tokenizer.ExpectToken(TokenIndent); err != nil {
		return err
	}
	rule := NewRule(name)
	for m.tokenizer.PeekToken() != TokenOutdent {
		key, value, err := m.parseLet()
		if err != nil {
			return err
		}
		rule.Bindings[key] = &value
		if err := m.tokenizer.Newline(); err != nil {
			return err
		}
	}
	m.tokenizer.ConsumeToken() // the outdent

	m.state.AddRule(rule)
	return nil
}

// parsePool parses "pool NAME" with its single mandatory "depth ="
// binding.
func (m *ManifestParser) parsePool() error {
	if err := m.tokenizer.ExpectIdent("pool"); err != nil {
		return err
	}
	name := ""
	if !m.tokenizer.ReadIdent(&name) {
		return m.tokenizer.errorExpected("pool name")
	}
	if m.state.Pools[name] != nil {
		return m.tokenizer.Error("duplicate pool '" + name + "'")
	}
	if err := m.tokenizer.Newline(); err != nil {
		return err
	}

	if err := m.tokenizer.ExpectToken(TokenIndent); err != nil {
		return err
	}
	depth := -1
	for m.tokenizer.PeekToken() != TokenOutdent {
		key, value, err := m.parseLet()
		if err != nil {
			return err
		}
		if key != "depth" {
			return m.tokenizer.Error("unexpected variable '" + key + "'")
		}
		if depth, err = strconv.Atoi(value.Evaluate(m.env)); depth < 0 || err != nil {
			return m.tokenizer.Error("invalid pool depth")
		}
		if err := m.tokenizer.Newline(); err != nil {
			return err
		}
	}
	m.tokenizer.ConsumeToken() // the outdent

	m.state.AddPool(NewPool(name, depth))
	return nil
}

// parseEdge parses a "build OUT+ : RULE IN* [| IMPLICIT*]
// [|| ORDERONLY*]" line plus its optional indented override block, and
// registers the edge. No duplicate-output or cycle checking happens
// here; that is the graph consumer's responsibility.
func (m *ManifestParser) parseEdge() error {
	if err := m.tokenizer.ExpectIdent("build"); err != nil {
		return err
	}

	var outs []string
	for m.tokenizer.PeekToken() == TokenIdent {
		outs = append(outs, m.tokenizer.TokenText())
		m.tokenizer.ConsumeToken()
	}
	if len(outs) == 0 {
		return m.tokenizer.errorExpected("output name")
	}
	if err := m.tokenizer.ExpectToken(TokenColon); err != nil {
		return err
	}

	ruleName := ""
	if !m.tokenizer.ReadIdent(&ruleName) {
		return m.tokenizer.errorExpected("rule name")
	}
	rule := m.state.LookupRule(ruleName)
	if rule == nil {
		return m.tokenizer.Error("unknown build rule '" + ruleName + "'")
	}

	var ins []string
	for m.tokenizer.PeekToken() == TokenIdent {
		ins = append(ins, m.tokenizer.TokenText())
		m.tokenizer.ConsumeToken()
	}

	implicit := 0
	if m.tokenizer.PeekToken() == TokenPipe {
		m.tokenizer.ConsumeToken()
		for m.tokenizer.PeekToken() == TokenIdent {
			ins = append(ins, m.tokenizer.TokenText())
			m.tokenizer.ConsumeToken()
			implicit++
		}
		if implicit == 0 {
			return m.tokenizer.errorExpected("input name")
		}
	}

	orderOnly := 0
	if m.tokenizer.PeekToken() == TokenPipe2 {
		m.tokenizer.ConsumeToken()
		for m.tokenizer.PeekToken() == TokenIdent {
			ins = append(ins, m.tokenizer.TokenText())
			m.tokenizer.ConsumeToken()
			orderOnly++
		}
		if orderOnly == 0 {
			return m.tokenizer.errorExpected("input name")
		}
	}

	if err := m.tokenizer.Newline(); err != nil {
		return err
	}

	// Bindings on edges are rare, so allocate a per-edge scope only
	// when an override block follows. Overrides are expanded in the
	// enclosing scope, not in the fresh one.
	env := m.env
	if m.tokenizer.PeekToken() == TokenIndent {
		m.tokenizer.ConsumeToken()
		env = NewBindingEnv(m.env)
		for m.tokenizer.PeekToken() != TokenOutdent {
			key, value, err := m.parseLet()
			if err != nil {
				return err
			}
			env.Define(key, &value, m.env)
			if err := m.tokenizer.Newline(); err != nil {
				return err
			}
		}
		m.tokenizer.ConsumeToken() // the outdent
	}

	edge := m.state.AddEdge(rule)
	edge.Env = env
	for _, out := range outs {
		m.state.AddOut(edge, out)
	}
	for _, in := range ins {
		m.state.AddIn(edge, in)
	}
	edge.ImplicitDeps = implicit
	edge.OrderOnlyDeps = orderOnly
	return nil
}

// parseDefault parses a "default NAME+" line.
func (m *ManifestParser) parseDefault() error {
	if err := m.tokenizer.ExpectIdent("default"); err != nil {
		return err
	}
	count := 0
	for m.tokenizer.PeekToken() == TokenIdent {
		m.state.AddDefault(m.tokenizer.TokenText())
		m.tokenizer.ConsumeToken()
		count++
	}
	if count == 0 {
		return m.tokenizer.errorExpected("target name")
	}
	return m.tokenizer.Newline()
}

// parseBinding parses a top-level "KEY = VALUE" statement into the
// current scope.
func (m *ManifestParser) parseBinding() error {
	name, value, err := m.parseLet()
	if err != nil {
		return err
	}
	m.env.Define(name, &value, m.env)
	if name == "ninja_required_version" {
		if err := checkRequiredVersion(m.env.LookupVariable(name)); err != nil {
			return m.tokenizer.Error(err.Error())
		}
	}
	return m.tokenizer.Newline()
}

// parseLet parses the "key = value" body of a binding, leaving the
// terminating newline for the caller. The value comes back decomposed
// but unevaluated.
func (m *ManifestParser) parseLet() (string, EvalString, error) {
	var value EvalString
	key := ""
	if !m.tokenizer.ReadIdent(&key) {
		return "", value, m.tokenizer.errorExpected("variable name")
	}
	if err := m.tokenizer.ExpectToken(TokenEquals); err != nil {
		return "", value, err
	}
	err := m.parseLetValue(&value)
	return key, value, err
}

// parseLetValue reads the raw remainder of the line and decomposes it
// into literal runs and variable references, without expanding
// anything.
func (m *ManifestParser) parseLetValue(eval *EvalString) error {
	// Keep a copy of the tokenizer so a decomposition error can be
	// reported at the offending character rather than at end of line.
	backup := m.tokenizer

	value := ""
	if err := m.tokenizer.ReadToNewline(&value, math.MaxInt); err != nil {
		return err
	}
	if errIndex, err := eval.Parse(value); err != nil {
		// Replay the saved tokenizer up to the error index so the
		// diagnostic points at the right column.
		sink := ""
		_ = backup.ReadToNewline(&sink, errIndex)
		return backup.Error(err.Error())
	}
	return nil
}

// parseFileInclude parses an "include PATH" or "subninja PATH" line
// and loads the named file in place. Unlike ordinary values, the path
// is expanded eagerly against the current scope. include merges the
// file into the current scope; subninja parses it against a fresh
// child scope.
func (m *ManifestParser) parseFileInclude(newScope bool) error {
	kind := ""
	if !m.tokenizer.ReadIdent(&kind) {
		return m.tokenizer.errorExpected("'include' or 'subninja'")
	}
	ls := m.tokenizer.Location()

	var eval EvalString
	if err := m.parseLetValue(&eval); err != nil {
		return err
	}
	path := eval.Evaluate(m.env)
	if path == "" {
		return ls.Error("expected path to " + kind)
	}
	if err := m.tokenizer.Newline(); err != nil {
		return err
	}

	contents, err := m.fileReader.ReadFile(path)
	if err != nil {
		return ls.Error(fmt.Sprintf("loading '%s': %s", path, err))
	}

	subparser := NewManifestParser(m.state, m.fileReader)
	if newScope {
		subparser.env = NewBindingEnv(m.env)
	} else {
		subparser.env = m.env
	}
	// Errors inside the included file propagate unwrapped; they
	// already carry their own location.
	return subparser.Parse(contents)
}
