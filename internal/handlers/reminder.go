package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"tendertrack/internal/database"
	"tendertrack/internal/models"
	"tendertrack/internal/repository"
	"tendertrack/internal/services"
	"tendertrack/internal/utils"

	"github.com/gin-gonic/gin"
)

// GetReminders handles listing reminders, optionally scoped to one tender
// and/or restricted to due-and-unsent rows
func GetReminders(c *gin.Context) {
	repo := repository.NewReminderRepository(database.GetDB())

	filter := models.ReminderFilter{
		TenderID:    c.Query("tender_id"),
		PendingOnly: c.Query("pending") == "true",
	}

	reminders, err := repo.List(filter)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch reminders", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminders": reminders})
}

// CreateReminder handles manual creation of a single reminder. This is how
// check_bid_opening reminders come to exist; the scheduler never creates them.
func CreateReminder(c *gin.Context) {
	var request models.CreateReminderRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		log.Printf("Error: Invalid input: %s", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	reminderType := models.ReminderType(request.ReminderType)
	if !models.ValidReminderType(reminderType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reminder type: " + request.ReminderType})
		return
	}

	repo := repository.NewReminderRepository(database.GetDB())
	reminder, err := repo.Create(request.TenderID, reminderType, request.ScheduledDate)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateReminder) {
			handleError(c, http.StatusConflict, "A reminder of this type already exists for the tender", err)
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to create reminder", err)
		return
	}

	log.Printf("Reminder %s (%s) created manually from %s", reminder.ID, reminder.ReminderType, utils.GetRealClientIP(c))
	c.JSON(http.StatusCreated, gin.H{"reminder": reminder})
}

// DeleteReminder handles removing a single reminder by id
func DeleteReminder(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing reminder id"})
		return
	}

	repo := repository.NewReminderRepository(database.GetDB())
	if err := repo.Delete(id); err != nil {
		if errors.Is(err, models.ErrReminderNotFound) {
			handleError(c, http.StatusNotFound, "Reminder not found", err)
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to delete reminder", err)
		return
	}

	log.Printf("Reminder %s deleted from %s", id, utils.GetRealClientIP(c))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ScheduleReminders reconciles the deadline reminders for one tender
func ScheduleReminders(c *gin.Context) {
	var request models.ScheduleRemindersRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		log.Printf("Error: Invalid input: %s", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	result, err := services.NewScheduler().Schedule(request.TenderID)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrTenderNotFound):
			handleError(c, http.StatusNotFound, "Tender not found", err)
		case errors.Is(err, models.ErrTenderFinalized):
			handleError(c, http.StatusBadRequest, "Reminders are not scheduled for closed tenders", err)
		default:
			handleError(c, http.StatusInternalServerError, "Failed to schedule reminders", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   fmt.Sprintf("Scheduled %d reminders", result.Scheduled),
		"scheduled": result.Scheduled,
		"reminders": result.Reminders,
	})
}

// ClearScheduledReminders drops all unsent reminders for a tender. Callers
// use this before rescheduling when a due date moves.
func ClearScheduledReminders(c *gin.Context) {
	tenderID := c.Query("tender_id")
	if tenderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing tender_id"})
		return
	}

	deleted, err := services.NewScheduler().ClearPending(tenderID)
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to clear pending reminders", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Deleted %d pending reminders", deleted),
		"deleted": deleted,
	})
}

// SendReminders runs one dispatch pass over due reminders. Intended to be
// invoked by an external scheduler; partial failure is the expected steady
// state, so the response is 200 with per-item detail regardless of how many
// items failed.
func SendReminders(c *gin.Context) {
	result, err := services.NewDispatcher(cfg).SendPending()
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to dispatch reminders", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Sent %d reminders, %d failed", result.Sent, result.Failed),
		"sent":    result.Sent,
		"failed":  result.Failed,
		"details": result.Details,
	})
}
