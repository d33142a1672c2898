package models

import "gorm.io/gorm"

// PartnerRole distinguishes partner accounts from plain customers.
type PartnerRole string

const (
	RolePartner  PartnerRole = "partner"
	RoleCustomer PartnerRole = "customer"
)

// B2BUser is an authenticated partner session.
type B2BUser struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Token        string      `json:"token"`
	Role         PartnerRole `json:"role"`
	Organization string      `json:"organization,omitempty"`
}

// Partner is an account in the offline partner directory.
type Partner struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email        string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Name         string `json:"name" gorm:"type:varchar(100)" validate:"required,min=2,max=100"`
	Organization string `json:"organization" gorm:"type:varchar(100)"`
	Password     string `gorm:"type:varchar(255)" validate:"required,min=6"` // No json tag for security
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
