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

// Node is a single path in the build graph, interned so that every
// mention of a path resolves to the same object.
type Node struct {
	Path string

	// The edge that produces this node, if any.
	InEdge *Edge

	// All edges that consume this node as an input.
	OutEdges []*Edge
}

// Pool is a named concurrency-limiting resource declaration. Only the
// declaration is recorded here; enforcing the depth is the build
// scheduler's concern.
type Pool struct {
	Name  string
	Depth int
}

func NewPool(name string, depth int) *Pool {
	return &Pool{Name: name, Depth: depth}
}

// Edge is one build statement: a set of outputs produced from a set of
// inputs by a rule. Inputs holds the explicit, implicit and order-only
// inputs contiguously; the two counters delimit the latter groups at
// its tail.
type Edge struct {
	Rule    *Rule
	Env     *BindingEnv
	Outputs []*Node
	Inputs  []*Node

	ImplicitDeps  int
	OrderOnlyDeps int
}

func (e *Edge) String() string {
	out := "build"
	for _, n := range e.Outputs {
		out += " " + n.Path
	}
	out += ": " + e.Rule.Name
	explicit := len(e.Inputs) - e.ImplicitDeps - e.OrderOnlyDeps
	for i, n := range e.Inputs {
		if i == explicit && e.ImplicitDeps > 0 {
			out += " |"
		}
		if i == explicit+e.ImplicitDeps && e.OrderOnlyDeps > 0 {
			out += " ||"
		}
		out += " " + n.Path
	}
	return out
}

// State is the root of everything a parse registers: nodes, edges,
// rules, pools, default targets and the root binding scope.
//
// Registration only: duplicate-output detection, cycle detection and
// any other graph validation belong to the consumer of a State, not to
// the parsers that fill it in.
type State struct {
	Paths    map[string]*Node
	Edges    []*Edge
	Rules    map[string]*Rule
	Pools    map[string]*Pool
	Defaults []*Node
	Bindings *BindingEnv
}

func NewState() *State {
	return &State{
		Paths:    map[string]*Node{},
		Rules:    map[string]*Rule{},
		Pools:    map[string]*Pool{},
		Bindings: NewBindingEnv(nil),
	}
}

// GetNode returns the node for path, creating it on first use.
func (s *State) GetNode(path string) *Node {
	if n := s.Paths[path]; n != nil {
		return n
	}
	n := &Node{Path: path}
	s.Paths[path] = n
	return n
}

func (s *State) AddRule(rule *Rule) {
	s.Rules[rule.Name] = rule
}

func (s *State) LookupRule(name string) *Rule {
	return s.Rules[name]
}

// AddEdge registers a new empty edge bound to rule; outputs and inputs
// are attached afterwards.
func (s *State) AddEdge(rule *Rule) *Edge {
	edge := &Edge{Rule: rule, Env: s.Bindings}
	s.Edges = append(s.Edges, edge)
	return edge
}

func (s *State) AddOut(edge *Edge, path string) {
	node := s.GetNode(path)
	edge.Outputs = append(edge.Outputs, node)
	node.InEdge = edge
}

func (s *State) AddIn(edge *Edge, path string) {
	node := s.GetNode(path)
	edge.Inputs = append(edge.Inputs, node)
	node.OutEdges = append(node.OutEdges, edge)
}

func (s *State) AddPool(pool *Pool) {
	s.Pools[pool.Name] = pool
}

func (s *State) AddDefault(path string) {
	s.Defaults = append(s.Defaults, s.GetNode(path))
}
