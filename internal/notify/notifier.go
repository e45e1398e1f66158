// Package notify models the local notification capability the mobile client
// exposes: schedule a one-shot alert at an instant, cancel it by handle.
package notify

import (
	"time"

	"github.com/google/uuid"
)

// Handle identifies a scheduled one-shot alert for later cancellation.
type Handle string

// Content is the user-visible payload of an alert.
type Content struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Scheduler schedules and cancels one-shot alerts.
type Scheduler interface {
	ScheduleOneShot(at time.Time, content Content) (Handle, error)
	Cancel(handle Handle) error
}

// HandleStore maps a recurring transaction id to the handle of its scheduled
// reminder. It is an explicit keyed store so callers can swap the backing
// state; nothing in this package holds package-level state.
type HandleStore interface {
	Get(id uuid.UUID) (Handle, bool)
	Set(id uuid.UUID, handle Handle)
	Delete(id uuid.UUID)
}
