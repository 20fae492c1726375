package catalog

import "sync"

// Sequencer orders responses to repeated fetches of one resource. Each fetch
// takes a token from Begin; its result may only be applied if Accept returns
// true, so a slow older response never replaces a newer one.
type Sequencer struct {
	mu       sync.Mutex
	issued   uint64
	accepted uint64
}

func (s *Sequencer) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Accept records token as applied. It reports false when a later token was
// already accepted.
func (s *Sequencer) Accept(token uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token <= s.accepted || token > s.issued {
		return false
	}
	s.accepted = token
	return true
}

// Supersede rejects every token issued so far. Fetches begun afterwards are
// unaffected.
func (s *Sequencer) Supersede() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accepted = s.issued
}

// Latest is the most recently accepted token, 0 before any.
func (s *Sequencer) Latest() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accepted
}
