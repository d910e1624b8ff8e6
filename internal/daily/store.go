package daily

import (
	"slices"
	"sync"

	"github.com/Nway-Yadanar/BloomGarden-Urban-Gardening-Assistant/internal/wallet"
)

// Store holds today's state and the cached wallet snapshot. The sync
// engine is its only writer; the view layer only reads.
type Store struct {
	mu     sync.RWMutex
	state  State
	wallet wallet.Snapshot
}

func NewStore() *Store {
	return &Store{}
}

// Replace overwrites the whole state, as after a today fetch. The
// server's all_done flag is taken verbatim here; SetDone recomputes it
// locally on every toggle.
func (s *Store) Replace(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st.Tasks = slices.Clone(st.Tasks)
	s.state = st
}

// SetDone sets one task's done flag and recomputes AllDone from the
// tasks actually present, so the bonus gate follows the current view
// rather than a stale server flag. It reports the task's previous flag
// and whether the task exists.
func (s *Store) SetDone(id string, done bool) (prev bool, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Tasks {
		if s.state.Tasks[i].ID != id {
			continue
		}
		prev = s.state.Tasks[i].Done
		s.state.Tasks[i].Done = done
		s.state.AllDone = allDone(s.state.Tasks)
		return prev, true
	}
	return false, false
}

// MarkDone flips a task to done.
func (s *Store) MarkDone(id string) bool {
	_, ok := s.SetDone(id, true)
	return ok
}

// ApplyWallet overwrites the displayed balances with a
// server-confirmed snapshot.
func (s *Store) ApplyWallet(w wallet.Snapshot) {
	s.mu.Lock()
	s.wallet = w
	s.mu.Unlock()
}

// State returns a copy of today's state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	st.Tasks = slices.Clone(st.Tasks)
	return st
}

func (s *Store) Wallet() wallet.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wallet
}

func (s *Store) Task(id string) (Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.state.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

func (s *Store) AllDone() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.AllDone
}
