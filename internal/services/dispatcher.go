package services

import (
	"fmt"
	"log"
	"time"

	"tendertrack/internal/config"
	"tendertrack/internal/database"
	"tendertrack/internal/models"
	"tendertrack/internal/repository"
)

// Dispatcher finds reminders whose time has come and delivers them, isolating
// per-reminder failures so one bad row never blocks the rest of the batch
type Dispatcher struct {
	reminders ReminderStore
	emailer   NotificationSender
	baseURL   string
	now       Clock
}

func NewDispatcher(cfg *config.Config) *Dispatcher {
	var sender NotificationSender
	if cfg.Channel == "whatsapp" {
		sender = NewWhatsAppService()
	} else {
		sender = NewEmailService(cfg.SendGrid)
	}
	return &Dispatcher{
		reminders: repository.NewReminderRepository(database.GetDB()),
		emailer:   sender,
		baseURL:   cfg.AppBaseURL,
		now:       time.Now,
	}
}

// ItemFailure records why one reminder in a batch was not delivered
type ItemFailure struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// DispatchDetails lists the per-reminder outcome of one batch
type DispatchDetails struct {
	Success []string      `json:"success"`
	Failed  []ItemFailure `json:"failed"`
}

// DispatchResult summarizes one SendPending run
type DispatchResult struct {
	Sent    int             `json:"sent"`
	Failed  int             `json:"failed"`
	Details DispatchDetails `json:"details"`
}

// SendPending scans for due, unsent reminders and attempts delivery of each.
// A reminder that fails stays unsent and is picked up again on the next run;
// that re-scan is the whole retry mechanism. Marking sent happens after the
// send, so a failure between the two can produce a duplicate email on a later
// run — at-least-once delivery is accepted here, not corrected.
func (d *Dispatcher) SendPending() (*DispatchResult, error) {
	now := d.now()

	pending, err := d.reminders.List(models.ReminderFilter{PendingOnly: true, Now: now})
	if err != nil {
		return nil, err
	}

	result := &DispatchResult{
		Details: DispatchDetails{
			Success: make([]string, 0),
			Failed:  make([]ItemFailure, 0),
		},
	}
	if len(pending) == 0 {
		return result, nil
	}

	for _, reminder := range pending {
		if reminder.TenderTitle == nil || reminder.TenderDueDate == nil {
			result.Failed++
			result.Details.Failed = append(result.Details.Failed, ItemFailure{ID: reminder.ID, Error: "Tender not found"})
			continue
		}
		if reminder.RecipientEmail == nil || *reminder.RecipientEmail == "" {
			result.Failed++
			result.Details.Failed = append(result.Details.Failed, ItemFailure{ID: reminder.ID, Error: "No recipient email found"})
			continue
		}

		orgName := ""
		if reminder.OrganizationName != nil {
			orgName = *reminder.OrganizationName
		}

		daysRemaining := int(reminder.TenderDueDate.Sub(now).Hours() / 24)
		if daysRemaining < 0 {
			daysRemaining = 0
		}

		subject, plain, html := d.renderNotification(reminder.Reminder, *reminder.TenderTitle, orgName, *reminder.TenderDueDate, daysRemaining)

		if err := d.emailer.Send(*reminder.RecipientEmail, subject, plain, html); err != nil {
			log.Printf("Error: Failed to send reminder %s: %v", reminder.ID, err)
			result.Failed++
			result.Details.Failed = append(result.Details.Failed, ItemFailure{ID: reminder.ID, Error: err.Error()})
			continue
		}

		if err := d.reminders.MarkSent(reminder.ID); err != nil {
			// The email is out but the row still reads unsent, so a later run
			// may send it again. Known duplicate-send window.
			log.Printf("Error: Reminder %s sent but not marked: %v", reminder.ID, err)
			result.Failed++
			result.Details.Failed = append(result.Details.Failed, ItemFailure{ID: reminder.ID, Error: "Email sent but failed to update status"})
			continue
		}

		result.Sent++
		result.Details.Success = append(result.Details.Success, reminder.ID)
	}

	return result, nil
}

// renderNotification builds subject and body for one reminder
func (d *Dispatcher) renderNotification(reminder models.Reminder, title, orgName string, dueDate time.Time, daysRemaining int) (subject, plain, html string) {
	dueStr := dueDate.Format("Mon Jan 2, 2006")
	link := fmt.Sprintf("%s/tenders/%s", d.baseURL, reminder.TenderID)

	remaining := fmt.Sprintf("%d days remaining", daysRemaining)
	if daysRemaining == 0 {
		remaining = "due today"
	}

	switch reminder.ReminderType {
	case models.ReminderDeadline1Day:
		subject = fmt.Sprintf("URGENT: %s is due tomorrow", title)
		plain = fmt.Sprintf("Final call: the tender %q from %s is due on %s (%s). Submit your bid now: %s",
			title, orgName, dueStr, remaining, link)
		html = fmt.Sprintf("<p><strong>Final call:</strong> the tender <strong>%s</strong> from %s is due on %s (%s).</p><p><a href=%q>Submit your bid now</a></p>",
			title, orgName, dueStr, remaining, link)
	case models.ReminderCheckBidOpening:
		subject = fmt.Sprintf("Bid opening: %s", title)
		plain = fmt.Sprintf("The bid opening for %q (%s) should have taken place. Please log the results: %s",
			title, orgName, link)
		html = fmt.Sprintf("<p>The bid opening for <strong>%s</strong> (%s) should have taken place.</p><p><a href=%q>Please log the results</a></p>",
			title, orgName, link)
	case models.ReminderDeadline3Days:
		subject = fmt.Sprintf("Reminder: %s closes in 3 days", title)
		plain = fmt.Sprintf("The tender %q from %s is due on %s (%s). Time to finalize your bid: %s",
			title, orgName, dueStr, remaining, link)
		html = fmt.Sprintf("<p>The tender <strong>%s</strong> from %s is due on %s (%s).</p><p><a href=%q>Time to finalize your bid</a></p>",
			title, orgName, dueStr, remaining, link)
	default: // deadline_7days
		subject = fmt.Sprintf("Reminder: %s is due in one week", title)
		plain = fmt.Sprintf("The tender %q from %s is due on %s (%s). Review your preparation: %s",
			title, orgName, dueStr, remaining, link)
		html = fmt.Sprintf("<p>The tender <strong>%s</strong> from %s is due on %s (%s).</p><p><a href=%q>Review your preparation</a></p>",
			title, orgName, dueStr, remaining, link)
	}
	return subject, plain, html
}
