package repositories

import "lablink/internal/models"

// PartnerRepository defines the interface for partner directory access.
type PartnerRepository interface {
	Create(partner *models.Partner) error
	GetByEmail(email string) (*models.Partner, error)
	GetByID(id string) (*models.Partner, error)
}
