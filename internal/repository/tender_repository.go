package repository

import (
	"errors"
	"fmt"

	"tendertrack/internal/models"

	"gorm.io/gorm"
)

// TenderRepository is persistence access for tenders
type TenderRepository struct {
	db *gorm.DB
}

func NewTenderRepository(db *gorm.DB) *TenderRepository {
	return &TenderRepository{db: db}
}

// GetTender loads one tender by id
func (r *TenderRepository) GetTender(id string) (*models.Tender, error) {
	var tender models.Tender
	if err := r.db.Where("id = ?", id).First(&tender).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrTenderNotFound
		}
		return nil, err
	}
	return &tender, nil
}

// TenderListFilter narrows a tender listing
type TenderListFilter struct {
	Status         string
	OrganizationID string
	CompanyID      string
	DueFrom        string
	DueTo          string
	Limit          int
	Offset         int
	SortBy         string
	SortOrder      string
}

// ListTenders returns tenders with filtering, sorting and pagination
func (r *TenderRepository) ListTenders(filter TenderListFilter) ([]models.Tender, error) {
	query := r.db.Model(&models.Tender{})

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.OrganizationID != "" {
		query = query.Where("organization_id = ?", filter.OrganizationID)
	}
	if filter.CompanyID != "" {
		query = query.Where("company_id = ?", filter.CompanyID)
	}
	if filter.DueFrom != "" {
		query = query.Where("due_date >= ?", filter.DueFrom)
	}
	if filter.DueTo != "" {
		query = query.Where("due_date <= ?", filter.DueTo)
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "due_date"
	}
	sortOrder := filter.SortOrder
	if sortOrder != "desc" {
		sortOrder = "asc"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	var tenders []models.Tender
	if err := query.Limit(limit).Offset(offset).Find(&tenders).Error; err != nil {
		return nil, err
	}
	return tenders, nil
}

// CreateTender inserts one tender
func (r *TenderRepository) CreateTender(tender *models.Tender) error {
	return r.db.Create(tender).Error
}

// UpdateTender persists the full tender row. Save writes every column, so a
// field cleared to its zero value ("" notes, 0 estimated value) reaches SQL
// instead of being skipped the way struct-based Updates would skip it.
func (r *TenderRepository) UpdateTender(tender *models.Tender) error {
	res := r.db.Save(tender)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrTenderNotFound
	}
	return nil
}
