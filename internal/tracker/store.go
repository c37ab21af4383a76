package tracker

import (
	"sort"

	"github.com/nmthang/awaybot/internal/models"
)

// Store holds the in-memory session rows, the source of truth for who is
// currently away. It is not safe for concurrent use on its own; the
// Controller serializes every access behind its mutation lock.
type Store struct {
	sessions map[string]*models.Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*models.Session)}
}

// Get returns the session row for userID, or nil if the user is unknown.
func (s *Store) Get(userID string) *models.Session {
	return s.sessions[userID]
}

// GetOrCreate returns the row for userID, creating an idle one on first use.
func (s *Store) GetOrCreate(userID string) *models.Session {
	if sess, ok := s.sessions[userID]; ok {
		return sess
	}
	sess := &models.Session{UserID: userID, Status: models.StatusIdle}
	s.sessions[userID] = sess
	return sess
}

// Load replaces the store contents with restored rows.
func (s *Store) Load(sessions []models.Session) {
	s.sessions = make(map[string]*models.Session, len(sessions))
	for i := range sessions {
		sess := sessions[i]
		s.sessions[sess.UserID] = &sess
	}
}

// All returns every row ordered by user id.
func (s *Store) All() []*models.Session {
	out := make([]*models.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

// Active returns every currently active row ordered by user id.
func (s *Store) Active() []*models.Session {
	out := make([]*models.Session, 0)
	for _, sess := range s.All() {
		if sess.Active() {
			out = append(out, sess)
		}
	}
	return out
}
