package repositories

import (
	"errors"
	"fmt"
	"strings"

	"lablink/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMPartnerRepository is a GORM implementation of PartnerRepository.
type GORMPartnerRepository struct {
	db *gorm.DB
}

// NewGORMPartnerRepository creates a new instance of GORMPartnerRepository.
func NewGORMPartnerRepository(db *gorm.DB) *GORMPartnerRepository {
	return &GORMPartnerRepository{
		db: db,
	}
}

// Create creates a new partner in the database.
func (r *GORMPartnerRepository) Create(partner *models.Partner) error {
	if partner.ID == "" {
		partner.ID = uuid.New().String()
	}
	partner.Email = strings.ToLower(partner.Email)
	if err := r.db.Create(partner).Error; err != nil {
		return fmt.Errorf("failed to create partner: %w", err)
	}
	return nil
}

// GetByEmail retrieves a partner by email from the database.
func (r *GORMPartnerRepository) GetByEmail(email string) (*models.Partner, error) {
	var partner models.Partner
	if err := r.db.First(&partner, "email = ?", strings.ToLower(email)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("partner with email %s not found", email)
		}
		return nil, fmt.Errorf("failed to get partner by email %s: %w", email, err)
	}
	return &partner, nil
}

// GetByID retrieves a partner by ID from the database.
func (r *GORMPartnerRepository) GetByID(id string) (*models.Partner, error) {
	var partner models.Partner
	if err := r.db.First(&partner, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("partner with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get partner by ID %s: %w", id, err)
	}
	return &partner, nil
}
