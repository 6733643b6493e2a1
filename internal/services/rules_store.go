package services

import "sync/atomic"

// RulesStore holds the active rule set. Readers take a snapshot per request, so a
// reload never changes the rules halfway through a report.
type RulesStore struct {
	p atomic.Pointer[Rules]
}

func NewRulesStore(r Rules) *RulesStore {
	s := &RulesStore{}
	s.Set(r)
	return s
}

func (s *RulesStore) Rules() Rules { return *s.p.Load() }

func (s *RulesStore) Set(r Rules) { s.p.Store(&r) }
