package services

import (
	"time"

	"tendertrack/internal/models"
)

// Clock supplies "now" so scheduling and dispatch logic can be tested with a
// fixed time. Production code wires time.Now.
type Clock func() time.Time

// TenderGetter is the slice of the tender CRUD layer the scheduler needs
type TenderGetter interface {
	GetTender(id string) (*models.Tender, error)
}

// ReminderStore is persistence access for reminder rows
type ReminderStore interface {
	List(filter models.ReminderFilter) ([]models.PendingReminder, error)
	Create(tenderID string, reminderType models.ReminderType, scheduledDate time.Time) (*models.Reminder, error)
	MarkSent(id string) error
	Delete(id string) error
	DeletePending(tenderID string) (int64, error)
}

// NotificationSender delivers one rendered notification to one recipient
type NotificationSender interface {
	Send(toEmail, subject, plainContent, htmlContent string) error
}
