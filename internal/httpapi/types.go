package httpapi

import (
	"jobportal-api/internal/listing"
	"jobportal-api/internal/models"
)

type SubmitDataRequest struct {
	Company models.Company `json:"company"`
	Roles   []models.Role  `json:"roles"`
}

type CheckCompanyRequest struct {
	CompanyName  string   `json:"companyName"`
	NamesToCheck []string `json:"namesToCheck"`
}

type UpdateJobRequest struct {
	Data listing.Patch `json:"data"`
}

type UpdateCompanyRequest struct {
	UID     string          `json:"uid"`
	Company *models.Company `json:"company"`
	Roles   *[]models.Role  `json:"roles"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateAdminRequest struct {
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

type UpdateTempAdminRequest struct {
	Username    string `json:"username"`
	IsTempAdmin bool   `json:"isTempAdmin"`
}
