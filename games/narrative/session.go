package narrative

import (
	"log"

	"github.com/jonboulle/clockwork"

	"github.com/lixenwraith/termfolio/constants"
	"github.com/lixenwraith/termfolio/engine"
	"github.com/lixenwraith/termfolio/store"
)

// ShardToast is shown after collecting a signal shard
const ShardToast = "signal +1"

// Session tracks the reader's position and stats and persists them
type Session struct {
	graph    *Graph
	store    store.Store
	clock    clockwork.Clock
	dispatch engine.Dispatcher
	statMax  int

	node  string
	stats Stats
	toast string
	timer *engine.Task
}

// NewSession starts at the entry node with zero stats; call Restore to resume saved progress
func NewSession(g *Graph, s store.Store, clock clockwork.Clock, dispatch engine.Dispatcher, statMax int) *Session {
	return &Session{
		graph:    g,
		store:    s,
		clock:    clock,
		dispatch: dispatch,
		statMax:  statMax,
		node:     g.Entry,
	}
}

// Restore loads saved progress, falling back per key to the entry node and zero stats
func (s *Session) Restore() {
	s.node = s.graph.Entry
	if id, ok := s.store.Get(store.KeyNarrativeNode); ok {
		if _, exists := s.graph.Node(id); exists {
			s.node = id
		}
	}

	s.stats = Stats{}
	var saved Stats
	if store.GetJSON(s.store, store.KeyNarrativeStats, &saved) && saved.within(constants.StatMin, s.statMax) {
		s.stats = saved
	}
}

// Current returns the node being read
func (s *Session) Current() Node {
	n, _ := s.graph.Node(s.node)
	return n
}

// Stats returns the current counters
func (s *Session) Stats() Stats { return s.stats }

// Toast returns the transient notice, empty when none is shown
func (s *Session) Toast() string { return s.toast }

// Choose follows choice i of the current node
func (s *Session) Choose(i int) bool {
	n := s.Current()
	if i < 0 || i >= len(n.Choices) {
		return false
	}
	c := n.Choices[i]

	if c.Reset {
		s.stats = Stats{}
	} else {
		s.stats = s.stats.Apply(c.Effect, constants.StatMin, s.statMax)
	}
	s.node = c.Next
	s.persist()
	return true
}

func (s *Session) persist() {
	if err := s.store.Set(store.KeyNarrativeNode, s.node); err != nil {
		log.Printf("narrative: persist node: %v", err)
	}
	if err := store.SetJSON(s.store, store.KeyNarrativeStats, s.stats); err != nil {
		log.Printf("narrative: persist stats: %v", err)
	}
}

// CollectShard adds one signal and shows a short toast
func (s *Session) CollectShard() {
	s.stats = s.stats.Apply(Effect{Signal: 1}, constants.StatMin, s.statMax)
	s.toast = ShardToast
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = engine.After(s.clock, s.dispatch, constants.ToastDuration, func() {
		s.toast = ""
	})
}

// Close cancels the pending toast timer
func (s *Session) Close() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
