package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"tendertrack/internal/database"
	"tendertrack/internal/models"

	"github.com/gin-gonic/gin"
)

// CreateOrganization handles creating an issuing organization
func CreateOrganization(c *gin.Context) {
	var request models.CreateOrganizationRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		log.Printf("Error: Invalid input: %s", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	org := models.Organization{
		Name:      request.Name,
		Sector:    request.Sector,
		Website:   request.Website,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := database.GetDB().Create(&org).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create organization", err)
		return
	}

	c.JSON(http.StatusCreated, org)
}

// GetOrganizations handles listing organizations
func GetOrganizations(c *gin.Context) {
	var orgs []models.Organization
	if err := database.GetDB().Order("name ASC").Find(&orgs).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch organizations", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"organizations": orgs})
}

// CreateCompany handles creating the tenant company whose contact email
// receives reminder notifications
func CreateCompany(c *gin.Context) {
	var request models.CreateCompanyRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		log.Printf("Error: Invalid input: %s", err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid input: %s", err.Error())})
		return
	}

	company := models.Company{
		Name:         request.Name,
		ContactEmail: request.ContactEmail,
		ContactPhone: request.ContactPhone,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := database.GetDB().Create(&company).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to create company", err)
		return
	}

	c.JSON(http.StatusCreated, company)
}

// GetCompanies handles listing companies
func GetCompanies(c *gin.Context) {
	var companies []models.Company
	if err := database.GetDB().Order("name ASC").Find(&companies).Error; err != nil {
		handleError(c, http.StatusInternalServerError, "Failed to fetch companies", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"companies": companies})
}
