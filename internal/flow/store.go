package flow

import (
	"errors"
	"sync"
	"time"

	"docsense/internal/logging"
)

// ErrFlowNotFound is returned for unknown or expired session ids
var ErrFlowNotFound = errors.New("flow not found")

// Store keeps flows in memory and expires idle ones
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session
	ttl      time.Duration
	logger   logging.Logger
	now      func() time.Time

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

type session struct {
	mu       sync.Mutex
	flow     *Flow
	lastUsed time.Time
}

// NewStore creates a store. A positive cleanupInterval starts a goroutine
// that drops sessions idle for longer than ttl; stop it with Close.
func NewStore(ttl, cleanupInterval time.Duration, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Nop()
	}
	s := &Store{
		sessions: make(map[string]*session),
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	if cleanupInterval > 0 && ttl > 0 {
		go s.cleanupLoop(cleanupInterval)
	} else {
		close(s.done)
	}
	return s
}

// Put registers a flow under its id
func (s *Store) Put(f *Flow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[f.ID()] = &session{flow: f, lastUsed: s.now()}
}

// With runs fn with exclusive access to the flow. Calls for different ids
// run in parallel; calls for the same id are serialized.
func (s *Store) With(id string, fn func(*Flow) error) error {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return ErrFlowNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.flow == nil {
		// removed while we waited
		return ErrFlowNotFound
	}
	sess.lastUsed = s.now()
	return fn(sess.flow)
}

// Snapshot is a read-only With
func (s *Store) Snapshot(id string) (Snapshot, error) {
	var snap Snapshot
	err := s.With(id, func(f *Flow) error {
		snap = f.Snapshot()
		return nil
	})
	return snap, err
}

// Delete removes a flow
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return ErrFlowNotFound
	}

	sess.mu.Lock()
	sess.flow = nil
	sess.mu.Unlock()
	return nil
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Cleanup drops sessions idle for longer than the ttl and returns how many
func (s *Store) Cleanup() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		// sessions in use are skipped and picked up on a later pass
		if !sess.mu.TryLock() {
			continue
		}
		if sess.lastUsed.Before(cutoff) {
			sess.flow = nil
			delete(s.sessions, id)
			removed++
		}
		sess.mu.Unlock()
	}
	return removed
}

func (s *Store) cleanupLoop(interval time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.Cleanup(); n > 0 {
				s.logger.Info("flow.cleanup", map[string]interface{}{
					"removed":   n,
					"remaining": s.Len(),
				})
			}
		case <-s.stop:
			return
		}
	}
}

// Close stops the cleanup goroutine and waits for it to exit
func (s *Store) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}
