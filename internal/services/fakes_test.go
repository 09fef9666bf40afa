package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"tendertrack/internal/models"
)

// fakeTenderStore serves tenders from a map
type fakeTenderStore struct {
	tenders map[string]*models.Tender
}

func (f *fakeTenderStore) GetTender(id string) (*models.Tender, error) {
	tender, ok := f.tenders[id]
	if !ok {
		return nil, models.ErrTenderNotFound
	}
	return tender, nil
}

// fakeReminderStore keeps reminder rows in memory and mirrors the repository
// semantics: uniqueness per (tender, type), pending filter, audit-trail
// deletes
type fakeReminderStore struct {
	rows         []models.PendingReminder
	nextID       int
	joined       map[string]joinedTender // tenderID -> joined fields for List
	failMarkSent map[string]error
}

type joinedTender struct {
	title          string
	dueDate        time.Time
	organization   string
	recipientEmail string
}

func newFakeReminderStore() *fakeReminderStore {
	return &fakeReminderStore{
		joined:       make(map[string]joinedTender),
		failMarkSent: make(map[string]error),
	}
}

func (f *fakeReminderStore) setJoined(tenderID, title string, dueDate time.Time, org, email string) {
	f.joined[tenderID] = joinedTender{title: title, dueDate: dueDate, organization: org, recipientEmail: email}
}

func (f *fakeReminderStore) List(filter models.ReminderFilter) ([]models.PendingReminder, error) {
	out := make([]models.PendingReminder, 0)
	for _, row := range f.rows {
		if filter.TenderID != "" && row.TenderID != filter.TenderID {
			continue
		}
		if filter.PendingOnly {
			now := filter.Now
			if now.IsZero() {
				now = time.Now()
			}
			if row.Sent || row.ScheduledDate.After(now) {
				continue
			}
		}
		row := row
		if j, ok := f.joined[row.TenderID]; ok {
			title, due, org, email := j.title, j.dueDate, j.organization, j.recipientEmail
			row.TenderTitle = &title
			row.TenderDueDate = &due
			if org != "" {
				row.OrganizationName = &org
			}
			if email != "" {
				row.RecipientEmail = &email
			}
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledDate.Before(out[j].ScheduledDate) })
	return out, nil
}

func (f *fakeReminderStore) Create(tenderID string, reminderType models.ReminderType, scheduledDate time.Time) (*models.Reminder, error) {
	for _, row := range f.rows {
		if row.TenderID == tenderID && row.ReminderType == reminderType {
			return nil, models.ErrDuplicateReminder
		}
	}
	f.nextID++
	reminder := models.Reminder{
		ID:            fmt.Sprintf("reminder-%d", f.nextID),
		TenderID:      tenderID,
		ReminderType:  reminderType,
		ScheduledDate: scheduledDate,
		CreatedAt:     time.Now(),
	}
	f.rows = append(f.rows, models.PendingReminder{Reminder: reminder})
	return &reminder, nil
}

func (f *fakeReminderStore) MarkSent(id string) error {
	if err, ok := f.failMarkSent[id]; ok {
		return err
	}
	for i := range f.rows {
		if f.rows[i].ID == id {
			now := time.Now()
			f.rows[i].Sent = true
			f.rows[i].SentAt = &now
			return nil
		}
	}
	return models.ErrReminderNotFound
}

func (f *fakeReminderStore) Delete(id string) error {
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return models.ErrReminderNotFound
}

func (f *fakeReminderStore) DeletePending(tenderID string) (int64, error) {
	var kept []models.PendingReminder
	var deleted int64
	for _, row := range f.rows {
		if row.TenderID == tenderID && !row.Sent {
			deleted++
			continue
		}
		kept = append(kept, row)
	}
	f.rows = kept
	return deleted, nil
}

func (f *fakeReminderStore) get(id string) *models.PendingReminder {
	for i := range f.rows {
		if f.rows[i].ID == id {
			return &f.rows[i]
		}
	}
	return nil
}

// fakeSender records deliveries and can be told to fail
type fakeSender struct {
	sent    []sentEmail
	failAll bool
}

type sentEmail struct {
	to      string
	subject string
	plain   string
	html    string
}

func (f *fakeSender) Send(toEmail, subject, plainContent, htmlContent string) error {
	if f.failAll {
		return errors.New("provider rejected the message")
	}
	f.sent = append(f.sent, sentEmail{to: toEmail, subject: subject, plain: plainContent, html: htmlContent})
	return nil
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}
