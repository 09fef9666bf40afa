package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"tendertrack/internal/database"
	"tendertrack/internal/models"
	"tendertrack/internal/repository"
	"tendertrack/internal/services"

	"github.com/gin-gonic/gin"
)

// CreateTender handles the creation of a new tender and schedules its
// deadline reminders in the same request
func CreateTender(c *gin.Context) {
	var request models.CreateTenderRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		log.Printf("Error: Invalid input: %s", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	status := models.StatusIdentified
	if request.Status != "" {
		status = models.TenderStatus(request.Status)
		if !models.ValidTenderStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tender status: " + request.Status})
			return
		}
	}

	tender := models.Tender{
		Title:          request.Title,
		ReferenceNo:    request.ReferenceNo,
		DueDate:        request.DueDate,
		Status:         status,
		EstimatedValue: request.EstimatedValue,
		OrganizationID: request.OrganizationID,
		CompanyID:      request.CompanyID,
		Notes:          request.Notes,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	repo := repository.NewTenderRepository(database.GetDB())
	if err := repo.CreateTender(&tender); err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create tender", err)
		return
	}

	// Scheduling failures should not fail tender creation; the client can
	// re-invoke the schedule endpoint.
	if !tender.Status.IsTerminal() {
		if _, err := services.NewScheduler().Schedule(tender.ID); err != nil {
			log.Printf("Warning: Failed to schedule reminders for tender %s: %v", tender.ID, err)
		}
	}

	c.JSON(http.StatusCreated, tender)
}

// GetTenders handles listing tenders with filtering, sorting, and pagination
func GetTenders(c *gin.Context) {
	if status := c.Query("status"); status != "" && !models.ValidTenderStatus(models.TenderStatus(status)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tender status: " + status})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil {
		limit = 10
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		offset = 0
	}

	repo := repository.NewTenderRepository(database.GetDB())
	tenders, err := repo.ListTenders(repository.TenderListFilter{
		Status:         c.Query("status"),
		OrganizationID: c.Query("organization_id"),
		CompanyID:      c.Query("company_id"),
		DueFrom:        c.Query("due_from"),
		DueTo:          c.Query("due_to"),
		Limit:          limit,
		Offset:         offset,
		SortBy:         c.DefaultQuery("sort_by", "due_date"),
		SortOrder:      c.DefaultQuery("sort_order", "asc"),
	})
	if err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch tenders", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tenders": tenders})
}

// GetTender handles fetching a single tender by id
func GetTender(c *gin.Context) {
	repo := repository.NewTenderRepository(database.GetDB())
	tender, err := repo.GetTender(c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrTenderNotFound) {
			handleError(c, http.StatusNotFound, "Tender not found", err)
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to fetch tender", err)
		return
	}

	c.JSON(http.StatusOK, tender)
}

// UpdateTender handles partial tender updates. Reminder bookkeeping rides
// along: a due-date change clears the stale pending reminders and reschedules
// against the new date, and a move to a terminal status clears them for good.
func UpdateTender(c *gin.Context) {
	var request models.UpdateTenderRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		log.Printf("Error: Invalid input: %s", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	repo := repository.NewTenderRepository(database.GetDB())
	tender, err := repo.GetTender(c.Param("id"))
	if err != nil {
		if errors.Is(err, models.ErrTenderNotFound) {
			handleError(c, http.StatusNotFound, "Tender not found", err)
			return
		}
		handleError(c, http.StatusInternalServerError, "Failed to fetch tender", err)
		return
	}

	dueDateChanged := false
	becameTerminal := false

	if request.Title != nil {
		tender.Title = *request.Title
	}
	if request.ReferenceNo != nil {
		tender.ReferenceNo = *request.ReferenceNo
	}
	if request.DueDate != nil && !request.DueDate.Equal(tender.DueDate) {
		tender.DueDate = *request.DueDate
		dueDateChanged = true
	}
	if request.Status != nil {
		status := models.TenderStatus(*request.Status)
		if !models.ValidTenderStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tender status: " + *request.Status})
			return
		}
		becameTerminal = status.IsTerminal() && !tender.Status.IsTerminal()
		tender.Status = status
	}
	if request.EstimatedValue != nil {
		tender.EstimatedValue = *request.EstimatedValue
	}
	if request.Notes != nil {
		tender.Notes = *request.Notes
	}
	tender.UpdatedAt = time.Now()

	if err := repo.UpdateTender(tender); err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to update tender", err)
		return
	}

	scheduler := services.NewScheduler()
	if becameTerminal || dueDateChanged {
		if _, err := scheduler.ClearPending(tender.ID); err != nil {
			log.Printf("Warning: Failed to clear pending reminders for tender %s: %v", tender.ID, err)
		}
	}
	if dueDateChanged && !tender.Status.IsTerminal() {
		if _, err := scheduler.Schedule(tender.ID); err != nil {
			log.Printf("Warning: Failed to reschedule reminders for tender %s: %v", tender.ID, err)
		}
	}

	c.JSON(http.StatusOK, tender)
}
