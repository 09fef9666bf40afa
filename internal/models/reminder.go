package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReminderType identifies which notification a reminder carries
type ReminderType string

const (
	ReminderDeadline7Days   ReminderType = "deadline_7days"
	ReminderDeadline3Days   ReminderType = "deadline_3days"
	ReminderDeadline1Day    ReminderType = "deadline_1day"
	ReminderCheckBidOpening ReminderType = "check_bid_opening"
)

func ValidReminderType(t ReminderType) bool {
	switch t {
	case ReminderDeadline7Days, ReminderDeadline3Days, ReminderDeadline1Day, ReminderCheckBidOpening:
		return true
	default:
		return false
	}
}

// Reminder represents one scheduled notification for a tender.
// The unique index on (tender_id, reminder_type) is the source of truth for
// deduplication; the existence check before insert is only a fast path.
type Reminder struct {
	ID            string       `gorm:"primaryKey;size:36" json:"id"`
	TenderID      string       `gorm:"size:36;not null;uniqueIndex:idx_reminder_tender_type" json:"tender_id"`
	ReminderType  ReminderType `gorm:"size:20;not null;uniqueIndex:idx_reminder_tender_type" json:"reminder_type"`
	ScheduledDate time.Time    `gorm:"not null;index" json:"scheduled_date"`
	Sent          bool         `gorm:"not null;default:false" json:"sent"`
	SentAt        *time.Time   `json:"sent_at"`
	CreatedAt     time.Time    `gorm:"not null" json:"created_at"`
}

// BeforeCreate hook generates the reminder ID
func (r *Reminder) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// TableName specifies the table name for the Reminder model
func (Reminder) TableName() string {
	return "reminder"
}

// PendingReminder is a reminder row joined with the tender and company fields
// the dispatcher needs. The joined columns are nullable so a reminder whose
// tender was deleted after scheduling still comes back and can be reported as
// a per-item failure instead of poisoning the batch.
type PendingReminder struct {
	Reminder
	TenderTitle      *string    `json:"tender_title"`
	TenderDueDate    *time.Time `json:"tender_due_date"`
	OrganizationName *string    `json:"organization_name"`
	RecipientEmail   *string    `json:"recipient_email"`
}

// ReminderFilter narrows a reminder listing
type ReminderFilter struct {
	TenderID    string
	PendingOnly bool
	Now         time.Time // cutoff for PendingOnly; zero means time.Now
}

// CreateReminderRequest represents the data needed to create a reminder by hand
type CreateReminderRequest struct {
	TenderID      string    `json:"tender_id" binding:"required"`
	ReminderType  string    `json:"reminder_type" binding:"required"`
	ScheduledDate time.Time `json:"scheduled_date" binding:"required"`
}

// ScheduleRemindersRequest asks the scheduler to reconcile one tender
type ScheduleRemindersRequest struct {
	TenderID string `json:"tender_id" binding:"required"`
}
