package session

import (
	"sync"

	"finbot/internal/domain"
)

// State is the user's position in a dialog.
type State int

const (
	// StateIdle means no dialog is in progress; an absent registry entry
	// reads as StateIdle.
	StateIdle State = iota
	StateChoosingCategory
	StateEnteringAmount
	StateEnteringDescription
	StateConfirming
)

// Data is the field bag accumulated across the turns of one entry dialog.
type Data struct {
	Kind        domain.Kind
	Category    string
	Amount      float64
	Description string
	Date        string
}

type posKey struct {
	userID int64
	chatID int64
}

// Store keeps dialog positions per (user, chat) and session bags per user.
// The store mutex guards only map access; handlers serialize a user's
// events with the per-user lock from Lock.
type Store struct {
	mu        sync.RWMutex
	positions map[posKey]State
	sessions  map[int64]*Data
	locks     map[int64]*sync.Mutex
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		positions: make(map[posKey]State),
		sessions:  make(map[int64]*Data),
		locks:     make(map[int64]*sync.Mutex),
	}
}

// Lock returns the mutex serializing all dialog processing for one user.
func (s *Store) Lock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}

// Position returns the user's dialog state in the given chat.
func (s *Store) Position(userID, chatID int64) State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.positions[posKey{userID, chatID}]
}

// SetPosition moves the user to a new dialog state in the given chat.
func (s *Store) SetPosition(userID, chatID int64, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[posKey{userID, chatID}] = state
}

// ClearPosition removes the dialog position; the pair reads as StateIdle
// afterwards.
func (s *Store) ClearPosition(userID, chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.positions, posKey{userID, chatID})
}

// Session returns the user's session bag, creating it if missing. The
// caller must hold the user's lock while mutating the returned data.
func (s *Store) Session(userID int64) *Data {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.sessions[userID]
	if !ok {
		data = &Data{}
		s.sessions[userID] = data
	}
	return data
}

// ClearSession discards the user's session bag.
func (s *Store) ClearSession(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}

// Reset drops both the session bag and the dialog position, returning the
// user to the main menu with nothing pending.
func (s *Store) Reset(userID, chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	delete(s.positions, posKey{userID, chatID})
}

// ActiveSessions reports how many users currently have a session bag.
func (s *Store) ActiveSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
