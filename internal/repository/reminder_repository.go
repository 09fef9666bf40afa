package repository

import (
	"errors"
	"time"

	"tendertrack/internal/models"

	"gorm.io/gorm"
)

// ReminderRepository is raw persistence access for reminder rows
type ReminderRepository struct {
	db *gorm.DB
}

func NewReminderRepository(db *gorm.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// List returns reminders ordered by scheduled date, each joined with the
// owning tender's title and due date, the issuing organization's name and the
// company contact email. LEFT JOINs keep orphaned reminders visible so the
// dispatcher can report them per-item.
func (r *ReminderRepository) List(filter models.ReminderFilter) ([]models.PendingReminder, error) {
	q := r.db.Table("reminder").
		Select(`reminder.*,
			tender.title AS tender_title,
			tender.due_date AS tender_due_date,
			organization.name AS organization_name,
			company.contact_email AS recipient_email`).
		Joins(`LEFT JOIN tender ON tender.id = reminder.tender_id`).
		Joins(`LEFT JOIN organization ON organization.id = tender.organization_id`).
		Joins(`LEFT JOIN company ON company.id = tender.company_id`)

	if filter.TenderID != "" {
		q = q.Where("reminder.tender_id = ?", filter.TenderID)
	}
	if filter.PendingOnly {
		now := filter.Now
		if now.IsZero() {
			now = time.Now()
		}
		q = q.Where("reminder.sent = ? AND reminder.scheduled_date <= ?", false, now)
	}

	reminders := make([]models.PendingReminder, 0)
	if err := q.Order("reminder.scheduled_date ASC").Scan(&reminders).Error; err != nil {
		return nil, err
	}
	return reminders, nil
}

// Create inserts one unsent reminder. The existence check is a fast path; the
// unique index on (tender_id, reminder_type) catches the race where two
// callers pass the check before either inserts.
func (r *ReminderRepository) Create(tenderID string, reminderType models.ReminderType, scheduledDate time.Time) (*models.Reminder, error) {
	var count int64
	err := r.db.Model(&models.Reminder{}).
		Where("tender_id = ? AND reminder_type = ?", tenderID, reminderType).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, models.ErrDuplicateReminder
	}

	reminder := models.Reminder{
		TenderID:      tenderID,
		ReminderType:  reminderType,
		ScheduledDate: scheduledDate,
		Sent:          false,
	}
	if err := r.db.Create(&reminder).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrDuplicateReminder
		}
		return nil, err
	}
	return &reminder, nil
}

// MarkSent flips the reminder to sent exactly once
func (r *ReminderRepository) MarkSent(id string) error {
	now := time.Now()
	res := r.db.Model(&models.Reminder{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"sent": true, "sent_at": now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrReminderNotFound
	}
	return nil
}

// Delete removes one reminder by id
func (r *ReminderRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&models.Reminder{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrReminderNotFound
	}
	return nil
}

// DeletePending removes every unsent reminder for a tender and reports how
// many went away. Sent reminders stay behind as an audit trail.
func (r *ReminderRepository) DeletePending(tenderID string) (int64, error) {
	res := r.db.Where("tender_id = ? AND sent = ?", tenderID, false).Delete(&models.Reminder{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
