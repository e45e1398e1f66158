package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MemoryHandleStore is an in-process HandleStore safe for concurrent use.
type MemoryHandleStore struct {
	mu      sync.RWMutex
	handles map[uuid.UUID]Handle
}

// NewMemoryHandleStore creates an empty MemoryHandleStore.
func NewMemoryHandleStore() *MemoryHandleStore {
	return &MemoryHandleStore{handles: make(map[uuid.UUID]Handle)}
}

func (s *MemoryHandleStore) Get(id uuid.UUID) (Handle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	handle, ok := s.handles[id]
	return handle, ok
}

func (s *MemoryHandleStore) Set(id uuid.UUID, handle Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handles[id] = handle
}

func (s *MemoryHandleStore) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.handles, id)
}

// ScheduledAlert is one pending alert held by MemoryScheduler.
type ScheduledAlert struct {
	At      time.Time
	Content Content
}

// MemoryScheduler is an in-process Scheduler. It records alerts instead of
// delivering them; delivery belongs to the device-side notification
// capability this package stands in for.
type MemoryScheduler struct {
	mu     sync.RWMutex
	alerts map[Handle]ScheduledAlert
}

// NewMemoryScheduler creates an empty MemoryScheduler.
func NewMemoryScheduler() *MemoryScheduler {
	return &MemoryScheduler{alerts: make(map[Handle]ScheduledAlert)}
}

// ScheduleOneShot records the alert and returns a fresh handle.
func (s *MemoryScheduler) ScheduleOneShot(at time.Time, content Content) (Handle, error) {
	handle := Handle(uuid.New().String())

	s.mu.Lock()
	s.alerts[handle] = ScheduledAlert{At: at, Content: content}
	s.mu.Unlock()

	log.Debug().
		Str("handle", string(handle)).
		Time("at", at).
		Str("title", content.Title).
		Msg("One-shot alert scheduled")

	return handle, nil
}

// Cancel removes the alert. Cancelling an unknown handle is a no-op.
func (s *MemoryScheduler) Cancel(handle Handle) error {
	s.mu.Lock()
	delete(s.alerts, handle)
	s.mu.Unlock()
	return nil
}

// Scheduled returns the pending alert for a handle, for inspection in tests.
func (s *MemoryScheduler) Scheduled(handle Handle) (ScheduledAlert, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	alert, ok := s.alerts[handle]
	return alert, ok
}

// PendingCount returns the number of alerts currently scheduled.
func (s *MemoryScheduler) PendingCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.alerts)
}
