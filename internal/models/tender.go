package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TenderStatus represents where a tender is in its lifecycle
type TenderStatus string

const (
	StatusIdentified      TenderStatus = "identified"
	StatusEvaluating      TenderStatus = "evaluating"
	StatusPreparing       TenderStatus = "preparing"
	StatusSubmitted       TenderStatus = "submitted"
	StatusBidOpening      TenderStatus = "bid_opening"
	StatusUnderEvaluation TenderStatus = "under_evaluation"
	StatusWon             TenderStatus = "won"
	StatusLost            TenderStatus = "lost"
	StatusAbandoned       TenderStatus = "abandoned"
)

func ValidTenderStatus(s TenderStatus) bool {
	switch s {
	case StatusIdentified, StatusEvaluating, StatusPreparing, StatusSubmitted,
		StatusBidOpening, StatusUnderEvaluation, StatusWon, StatusLost, StatusAbandoned:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further work (or reminders) applies to the tender
func (s TenderStatus) IsTerminal() bool {
	switch s {
	case StatusWon, StatusLost, StatusAbandoned:
		return true
	default:
		return false
	}
}

// Tender represents a bid opportunity being tracked
type Tender struct {
	ID             string       `gorm:"primaryKey;size:36" json:"id"`
	Title          string       `gorm:"size:255;not null" json:"title"`
	ReferenceNo    string       `gorm:"size:100" json:"reference_no"`
	DueDate        time.Time    `gorm:"not null;index" json:"due_date"`
	Status         TenderStatus `gorm:"size:20;not null;default:identified;index" json:"status"`
	EstimatedValue float64      `gorm:"type:decimal(15,2)" json:"estimated_value"`
	OrganizationID string       `gorm:"size:36;not null;index" json:"organization_id"`
	CompanyID      string       `gorm:"size:36;not null;index" json:"company_id"`
	Notes          string       `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null" json:"updated_at"`
}

// BeforeCreate hook generates the tender ID
func (t *Tender) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TableName specifies the table name for the Tender model
func (Tender) TableName() string {
	return "tender"
}

// CreateTenderRequest represents the data needed to create a new tender
type CreateTenderRequest struct {
	Title          string    `json:"title" binding:"required"`
	ReferenceNo    string    `json:"reference_no"`
	DueDate        time.Time `json:"due_date" binding:"required"`
	Status         string    `json:"status"`
	EstimatedValue float64   `json:"estimated_value"`
	OrganizationID string    `json:"organization_id" binding:"required"`
	CompanyID      string    `json:"company_id" binding:"required"`
	Notes          string    `json:"notes"`
}

// UpdateTenderRequest represents a partial tender update
type UpdateTenderRequest struct {
	Title          *string    `json:"title"`
	ReferenceNo    *string    `json:"reference_no"`
	DueDate        *time.Time `json:"due_date"`
	Status         *string    `json:"status"`
	EstimatedValue *float64   `json:"estimated_value"`
	Notes          *string    `json:"notes"`
}
