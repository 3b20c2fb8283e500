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
	"sort"
	"strings"
)

// Env is a scope for variable (e.g. "$foo") lookups.
type Env interface {
	LookupVariable(v string) string
}

// ValueItem is one run of an unevaluated value: either literal text or
// a variable reference.
type ValueItem struct {
	Value     string
	IsSpecial bool
}

// EvalString is a tokenized value that may contain variable
// references, kept unevaluated until expanded against an Env.
type EvalString struct {
	Parsed []ValueItem
}

func (e *EvalString) AddText(text string) {
	e.Parsed = append(e.Parsed, ValueItem{text, false})
}

func (e *EvalString) AddSpecial(text string) {
	e.Parsed = append(e.Parsed, ValueItem{text, true})
}

// Parse decomposes a raw value into ordered literal runs and
// $-prefixed variable references. "$$" is a literal dollar; "$name"
// and "${name}" are references. Line continuations are assumed to
// have been folded away already. On failure, the returned offset
// points at the bad escape within s.
func (e *EvalString) Parse(s string) (int, error) {
	for i := 0; i < len(s); {
		dollar := strings.IndexByte(s[i:], '$')
		if dollar == -1 {
			e.AddText(s[i:])
			break
		}
		if dollar > 0 {
			e.AddText(s[i : i+dollar])
		}
		i += dollar
		if i+1 == len(s) {
			return i, errors.New("bad $-escape (literal $ must be written as $$)")
		}
		switch c := s[i+1]; {
		case c == '$':
			e.AddText("$")
			i += 2
		case c == '{':
			end := strings.IndexByte(s[i+2:], '}')
			if end == -1 {
				return i, errors.New("expected closing curly after ${")
			}
			name := s[i+2 : i+2+end]
			if !isVarNameString(name) {
				return i, errors.New("bad $-escape (literal $ must be written as $$)")
			}
			e.AddSpecial(name)
			i += 3 + end
		case isSimpleVarChar(c):
			j := i + 1
			for j < len(s) && isSimpleVarChar(s[j]) {
				j++
			}
			e.AddSpecial(s[i+1 : j])
			i = j
		default:
			return i, errors.New("bad $-escape (literal $ must be written as $$)")
		}
	}
	return -1, nil
}

func isVarNameString(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isVarChar(s[i]) {
			return false
		}
	}
	return true
}

// Evaluate returns the value with references expanded using env.
func (e *EvalString) Evaluate(env Env) string {
	var out strings.Builder
	for _, p := range e.Parsed {
		if p.IsSpecial {
			out.WriteString(env.LookupVariable(p.Value))
		} else {
			out.WriteString(p.Value)
		}
	}
	return out.String()
}

// Serialize builds a human-readable representation of the parsed
// state, for use in tests.
func (e *EvalString) Serialize() string {
	result := ""
	for _, i := range e.Parsed {
		result += "["
		if i.IsSpecial {
			result += "$"
		}
		result += i.Value
		result += "]"
	}
	return result
}

//

// Rule is a named, reusable template of bindings (e.g. the command
// line) instantiated by edges. Bindings stay unexpanded; they are only
// evaluated much later, in the scope of a concrete edge.
type Rule struct {
	Name     string
	Bindings map[string]*EvalString
}

func NewRule(name string) *Rule {
	return &Rule{
		Name:     name,
		Bindings: map[string]*EvalString{},
	}
}

// Binding returns the raw, unexpanded value bound to key, or nil.
func (r *Rule) Binding(key string) *EvalString {
	return r.Bindings[key]
}

func (r *Rule) String() string {
	out := "rule " + r.Name + "{"
	names := make([]string, 0, len(r.Bindings))
	for n := range r.Bindings {
		names = append(names, n)
	}
	sort.Strings(names)
	for i, n := range names {
		if i != 0 {
			out += ","
		}
		out += n + ":" + r.Bindings[n].Serialize()
	}
	out += "}"
	return out
}

//

// BindingEnv maps variable names to values and chains to a parent
// scope for lookups.
type BindingEnv struct {
	Bindings map[string]string
	Parent   *BindingEnv
}

func NewBindingEnv(parent *BindingEnv) *BindingEnv {
	return &BindingEnv{
		Bindings: map[string]string{},
		Parent:   parent,
	}
}

// Define binds key to eval expanded against scope. Expansion happens
// at definition time: redefining a referenced variable afterwards does
// not rewrite bindings made earlier.
func (b *BindingEnv) Define(key string, eval *EvalString, scope Env) {
	b.Bindings[key] = eval.Evaluate(scope)
}

func (b *BindingEnv) LookupVariable(v string) string {
	if i, ok := b.Bindings[v]; ok {
		return i
	}
	if b.Parent != nil {
		return b.Parent.LookupVariable(v)
	}
	return ""
}
