package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/manatly/manatly-backend/internal/domain"
	"github.com/manatly/manatly-backend/internal/notify"
	"github.com/rs/zerolog/log"
)

// reminderHour is the local hour of day reminders fire at.
const reminderHour = 10

// ReminderService turns transaction reminders into scheduled one-shot alerts
// and keeps the recurring-transaction-id to handle mapping so a reminder can
// be cancelled when its transaction changes or goes away.
type ReminderService struct {
	scheduler notify.Scheduler
	handles   notify.HandleStore
	now       func() time.Time
}

// NewReminderService creates a new ReminderService
func NewReminderService(scheduler notify.Scheduler, handles notify.HandleStore) *ReminderService {
	return &ReminderService{
		scheduler: scheduler,
		handles:   handles,
		now:       time.Now,
	}
}

// alertInstant pins date to the reminder hour in date's location. An instant
// already in the past moves forward by exactly one day, never further.
func (s *ReminderService) alertInstant(date time.Time) time.Time {
	at := time.Date(date.Year(), date.Month(), date.Day(), reminderHour, 0, 0, 0, date.Location())
	if !at.After(s.now()) {
		at = at.AddDate(0, 0, 1)
	}
	return at
}

// ScheduleReminder schedules a one-shot alert for the given date at the
// reminder hour and returns the scheduler's handle.
func (s *ReminderService) ScheduleReminder(kind domain.TransactionType, date time.Time, title, body string) (notify.Handle, error) {
	at := s.alertInstant(date)

	handle, err := s.scheduler.ScheduleOneShot(at, notify.Content{Title: title, Body: body})
	if err != nil {
		return "", err
	}

	log.Debug().
		Str("kind", string(kind)).
		Time("at", at).
		Str("handle", string(handle)).
		Msg("Reminder scheduled")

	return handle, nil
}

// ScheduleRecurringReminder schedules a reminder for a recurring transaction
// and records the id-to-handle mapping for later cancellation.
func (s *ReminderService) ScheduleRecurringReminder(recurringID uuid.UUID, kind domain.TransactionType, date time.Time, title, body string) (notify.Handle, error) {
	handle, err := s.ScheduleReminder(kind, date, title, body)
	if err != nil {
		return "", err
	}
	s.handles.Set(recurringID, handle)
	return handle, nil
}

// CancelReminder cancels the reminder scheduled for a recurring transaction.
// No-op when no mapping exists.
func (s *ReminderService) CancelReminder(recurringID uuid.UUID) error {
	handle, ok := s.handles.Get(recurringID)
	if !ok {
		return nil
	}

	if err := s.scheduler.Cancel(handle); err != nil {
		return err
	}
	s.handles.Delete(recurringID)

	log.Debug().
		Str("recurring_id", recurringID.String()).
		Str("handle", string(handle)).
		Msg("Reminder cancelled")

	return nil
}
