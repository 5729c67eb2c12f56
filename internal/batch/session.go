package batch

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"wordflow/pkg/models"
)

// Status enumerates the lifecycle of a batch session.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Session tracks one group of independently processed image jobs. Workers
// mutate the counters concurrently; every mutation happens under the mutex
// so processed == successful + failed holds at every observable point.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	status     Status
	total      int
	processed  int
	successful int
	failed     int
	results    []models.BatchItemResult
}

// NewSession creates a pending session for the given number of jobs.
func NewSession(total int) *Session {
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		status:    StatusPending,
		total:     total,
	}
}

// Begin marks the session as processing.
func (s *Session) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = StatusProcessing
}

// RecordSuccess stores one job's result and advances the counters
// atomically. The session becomes terminal when the last job lands.
func (s *Session) RecordSuccess(result models.BatchItemResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed++
	s.successful++
	s.results = append(s.results, result)
	s.finishLocked()
}

// RecordFailure stores one job's failure without affecting sibling jobs.
func (s *Session) RecordFailure(result models.BatchItemResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.processed++
	s.failed++
	s.results = append(s.results, result)
	s.finishLocked()
}

func (s *Session) finishLocked() {
	if s.processed < s.total {
		return
	}
	if s.successful == 0 && s.total > 0 {
		s.status = StatusFailed
	} else {
		s.status = StatusCompleted
	}
}

// Terminal reports whether all jobs have landed.
func (s *Session) Terminal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processed == s.total
}

// View snapshots the session for serialization. Results are included only
// once the session is terminal.
func (s *Session) View() models.BatchSessionView {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := models.BatchSessionView{
		SessionID: s.ID,
		Status:    string(s.status),
		Progress: models.BatchProgress{
			Total:      s.total,
			Processed:  s.processed,
			Successful: s.successful,
			Failed:     s.failed,
		},
	}
	if s.processed == s.total {
		view.Results = append([]models.BatchItemResult(nil), s.results...)
	}
	return view
}

// SessionStore keeps sessions in memory until they expire.
type SessionStore struct {
	ttl time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Add registers a session and prunes expired ones.
func (st *SessionStore) Add(session *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()

	cutoff := time.Now().Add(-st.ttl)
	for id, s := range st.sessions {
		if s.CreatedAt.Before(cutoff) && s.Terminal() {
			delete(st.sessions, id)
		}
	}
	st.sessions[session.ID] = session
}

// Get returns the session with the given id, or nil.
func (st *SessionStore) Get(id string) *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[id]
}
