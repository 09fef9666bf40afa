package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Organization represents the body issuing a tender
type Organization struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Sector    string    `gorm:"size:100" json:"sector"`
	Website   string    `gorm:"size:255" json:"website"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (o *Organization) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// TableName specifies the table name for the Organization model
func (Organization) TableName() string {
	return "organization"
}

// Company represents the tenant whose bids are tracked; its contact email
// receives reminder notifications
type Company struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	ContactEmail string    `gorm:"size:255" json:"contact_email"`
	ContactPhone string    `gorm:"size:50" json:"contact_phone"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// TableName specifies the table name for the Company model
func (Company) TableName() string {
	return "company"
}

// CreateOrganizationRequest represents the data needed to create an organization
type CreateOrganizationRequest struct {
	Name    string `json:"name" binding:"required"`
	Sector  string `json:"sector"`
	Website string `json:"website"`
}

// CreateCompanyRequest represents the data needed to create a company
type CreateCompanyRequest struct {
	Name         string `json:"name" binding:"required"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone string `json:"contact_phone"`
}
