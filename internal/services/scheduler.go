package services

import (
	"errors"
	"time"

	"tendertrack/internal/database"
	"tendertrack/internal/models"
	"tendertrack/internal/repository"
)

// deadlineLeadTimes maps each auto-scheduled reminder type to how many days
// before the due date it fires. check_bid_opening is deliberately absent:
// bid opening has no fixed offset from the due date, so that type is only
// ever created by hand through the reminder create endpoint.
var deadlineLeadTimes = []struct {
	reminderType models.ReminderType
	daysBefore   int
}{
	{models.ReminderDeadline7Days, 7},
	{models.ReminderDeadline3Days, 3},
	{models.ReminderDeadline1Day, 1},
}

// Scheduler derives the canonical set of reminders a tender should have and
// reconciles the reminder table against it
type Scheduler struct {
	tenders   TenderGetter
	reminders ReminderStore
	now       Clock
}

func NewScheduler() *Scheduler {
	db := database.GetDB()
	return &Scheduler{
		tenders:   repository.NewTenderRepository(db),
		reminders: repository.NewReminderRepository(db),
		now:       time.Now,
	}
}

// ScheduleResult reports what one reconciliation pass created
type ScheduleResult struct {
	Scheduled int               `json:"scheduled"`
	Reminders []models.Reminder `json:"reminders,omitempty"`
}

// Schedule creates the deadline reminders a tender is missing. Calling it
// twice is safe: existing types are skipped, as is any candidate whose
// trigger date is not strictly after the start of the current day — a
// reminder that would fire immediately is noise, not a notification.
func (s *Scheduler) Schedule(tenderID string) (*ScheduleResult, error) {
	tender, err := s.tenders.GetTender(tenderID)
	if err != nil {
		return nil, err
	}
	if tender.Status.IsTerminal() {
		return nil, models.ErrTenderFinalized
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	existing, err := s.reminders.List(models.ReminderFilter{TenderID: tenderID})
	if err != nil {
		return nil, err
	}
	existingTypes := make(map[models.ReminderType]bool, len(existing))
	for _, r := range existing {
		existingTypes[r.ReminderType] = true
	}

	result := &ScheduleResult{}
	for _, lead := range deadlineLeadTimes {
		if existingTypes[lead.reminderType] {
			continue
		}
		scheduledDate := tender.DueDate.AddDate(0, 0, -lead.daysBefore)
		if !scheduledDate.After(today) {
			continue
		}

		reminder, err := s.reminders.Create(tenderID, lead.reminderType, scheduledDate)
		if err != nil {
			// A concurrent Schedule call won the race on this type; the
			// unique index did its job and there is nothing to correct.
			if errors.Is(err, models.ErrDuplicateReminder) {
				continue
			}
			return nil, err
		}
		result.Scheduled++
		result.Reminders = append(result.Reminders, *reminder)
	}

	return result, nil
}

// ClearPending drops every unsent reminder for a tender. Callers invoke this
// before rescheduling when a due date changes, and when a tender reaches a
// terminal status.
func (s *Scheduler) ClearPending(tenderID string) (int64, error) {
	return s.reminders.DeletePending(tenderID)
}
