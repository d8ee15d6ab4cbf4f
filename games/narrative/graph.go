// Package narrative implements the branching story: a closed graph of
// nodes whose choices move the reader and adjust three bounded stats.
package narrative

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed story.yaml
var storyYAML []byte

var (
	ErrNoEntry       = errors.New("entry node not found")
	ErrDuplicateNode = errors.New("duplicate node id")
	ErrUnknownTarget = errors.New("choice targets unknown node")
	ErrNoChoices     = errors.New("node has no choices")
	ErrDeadEnd       = errors.New("node cannot return to entry")
)

// Effect is a stat delta carried by a choice
type Effect struct {
	Depth   int `yaml:"depth"`
	Signal  int `yaml:"signal"`
	Entropy int `yaml:"entropy"`
}

// Choice moves the reader to Next; Reset zeroes all stats regardless of Effect
type Choice struct {
	Label  string `yaml:"label"`
	Next   string `yaml:"next"`
	Effect Effect `yaml:"effect"`
	Reset  bool   `yaml:"reset"`
}

// Node is one story location
type Node struct {
	ID      string   `yaml:"id"`
	Text    []string `yaml:"text"`
	Choices []Choice `yaml:"choices"`
}

// Graph is an immutable story graph
type Graph struct {
	Entry string `yaml:"entry"`
	Nodes []Node `yaml:"nodes"`

	index map[string]int
}

// DefaultGraph parses the bundled story
func DefaultGraph() (*Graph, error) {
	return LoadGraph(storyYAML)
}

// LoadGraph parses and validates a YAML story
func LoadGraph(data []byte) (*Graph, error) {
	var g Graph
	if err := yaml.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("parse story: %w", err)
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &g, nil
}

func (g *Graph) buildIndex() error {
	g.index = make(map[string]int, len(g.Nodes))
	for i, n := range g.Nodes {
		if _, dup := g.index[n.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateNode, n.ID)
		}
		g.index[n.ID] = i
	}
	return nil
}

// Validate checks that every choice resolves and that every node reachable
// from the entry has a path back to it
func (g *Graph) Validate() error {
	if err := g.buildIndex(); err != nil {
		return err
	}
	if _, ok := g.index[g.Entry]; !ok {
		return fmt.Errorf("%w: %q", ErrNoEntry, g.Entry)
	}
	for _, n := range g.Nodes {
		if len(n.Choices) == 0 {
			return fmt.Errorf("%w: %s", ErrNoChoices, n.ID)
		}
		for _, c := range n.Choices {
			if _, ok := g.index[c.Next]; !ok {
				return fmt.Errorf("%w: %s -> %s", ErrUnknownTarget, n.ID, c.Next)
			}
		}
	}

	// Nodes that can reach the entry, found by walking edges backwards
	reverse := make(map[string][]string, len(g.Nodes))
	for _, n := range g.Nodes {
		for _, c := range n.Choices {
			reverse[c.Next] = append(reverse[c.Next], n.ID)
		}
	}
	returns := walk(g.Entry, func(id string) []string { return reverse[id] })

	for id := range g.Reachable() {
		if !returns[id] {
			return fmt.Errorf("%w: %s", ErrDeadEnd, id)
		}
	}
	return nil
}

// Reachable returns the ids reachable from the entry, entry included
func (g *Graph) Reachable() map[string]bool {
	return walk(g.Entry, func(id string) []string {
		n, ok := g.Node(id)
		if !ok {
			return nil
		}
		next := make([]string, len(n.Choices))
		for i, c := range n.Choices {
			next[i] = c.Next
		}
		return next
	})
}

func walk(start string, edges func(string) []string) map[string]bool {
	seen := map[string]bool{start: true}
	stack := []string{start}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range edges(id) {
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return seen
}

// Node looks up a node by id
func (g *Graph) Node(id string) (Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return Node{}, false
	}
	return g.Nodes[i], true
}

// Len returns the node count
func (g *Graph) Len() int { return len(g.Nodes) }

// Stats are the three bounded counters
type Stats struct {
	Depth   int `json:"depth"`
	Signal  int `json:"signal"`
	Entropy int `json:"entropy"`
}

// Apply returns s moved by e with each stat clamped to [lo, hi]
func (s Stats) Apply(e Effect, lo, hi int) Stats {
	return Stats{
		Depth:   clamp(s.Depth+e.Depth, lo, hi),
		Signal:  clamp(s.Signal+e.Signal, lo, hi),
		Entropy: clamp(s.Entropy+e.Entropy, lo, hi),
	}
}

func (s Stats) within(lo, hi int) bool {
	return s.Depth >= lo && s.Depth <= hi &&
		s.Signal >= lo && s.Signal <= hi &&
		s.Entropy >= lo && s.Entropy <= hi
}

func clamp(n, lo, hi int) int {
	return max(lo, min(hi, n))
}
