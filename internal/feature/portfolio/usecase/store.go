package usecase

import (
	"sync"

	"wealthwise_gateway/internal/feature/portfolio/domain/entity"
)

// Op identifies a holdings store command.
type Op int

const (
	// OpReplaceAll discards the current sequence and installs a new one.
	OpReplaceAll Op = iota
	// OpInsert prepends one holding.
	OpInsert
	// OpRemove deletes at most one holding by id.
	OpRemove
)

// Command is the tagged mutation consumed by the store's single transition
// function. Only the field matching Op is read.
type Command struct {
	Op       Op
	Holdings []entity.Holding // OpReplaceAll
	Holding  entity.Holding   // OpInsert
	ID       string           // OpRemove
}

// Store owns the ordered holdings sequence. It performs no validation;
// callers insert only validated records. Registered subscribers are notified
// after every applied command.
type Store struct {
	mu       sync.RWMutex
	holdings []entity.Holding
	subs     []func()
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{}
}

// Apply runs one command against the sequence and notifies subscribers.
// Unknown ops are ignored.
func (s *Store) Apply(cmd Command) {
	s.mu.Lock()
	switch cmd.Op {
	case OpReplaceAll:
		s.holdings = append([]entity.Holding(nil), cmd.Holdings...)
	case OpInsert:
		s.holdings = append([]entity.Holding{cmd.Holding}, s.holdings...)
	case OpRemove:
		for i, h := range s.holdings {
			if h.ID == cmd.ID {
				s.holdings = append(s.holdings[:i:i], s.holdings[i+1:]...)
				break
			}
		}
	}
	subs := append([](func())(nil), s.subs...)
	s.mu.Unlock()

	// Callbacks run outside the lock so subscribers may read the store.
	for _, fn := range subs {
		fn()
	}
}

// ReplaceAll discards the previous sequence entirely. Used after every
// successful backend fetch; there is no partial merge.
func (s *Store) ReplaceAll(holdings []entity.Holding) {
	s.Apply(Command{Op: OpReplaceAll, Holdings: holdings})
}

// Insert prepends, so new holdings appear first.
func (s *Store) Insert(h entity.Holding) {
	s.Apply(Command{Op: OpInsert, Holding: h})
}

// Remove deletes at most one holding matching id. Removing a non-existent id
// is a no-op, not an error.
func (s *Store) Remove(id string) {
	s.Apply(Command{Op: OpRemove, ID: id})
}

// Holdings returns a copy of the current ordered sequence.
func (s *Store) Holdings() []entity.Holding {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.Holding(nil), s.holdings...)
}

// Len returns the number of holdings.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.holdings)
}

// Subscribe registers fn to run after every applied command.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}
