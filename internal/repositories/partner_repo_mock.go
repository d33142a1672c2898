package repositories

import (
	"fmt"
	"strings"
	"sync"

	"lablink/internal/models"

	"github.com/google/uuid"
)

// MockPartnerRepository is an in-memory implementation of PartnerRepository.
type MockPartnerRepository struct {
	partners map[string]models.Partner
	mu       sync.RWMutex
}

// NewMockPartnerRepository creates a new instance of MockPartnerRepository.
func NewMockPartnerRepository() *MockPartnerRepository {
	return &MockPartnerRepository{
		partners: make(map[string]models.Partner),
	}
}

// Create adds a new partner.
func (r *MockPartnerRepository) Create(partner *models.Partner) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	partner.Email = strings.ToLower(partner.Email)
	for _, p := range r.partners {
		if p.Email == partner.Email {
			return fmt.Errorf("partner with email %s already exists", partner.Email)
		}
	}
	if partner.ID == "" {
		partner.ID = uuid.New().String()
	}
	r.partners[partner.ID] = *partner
	return nil
}

// GetByEmail returns a partner by email.
func (r *MockPartnerRepository) GetByEmail(email string) (*models.Partner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(email)
	for _, p := range r.partners {
		if p.Email == email {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("partner with email %s not found", email)
}

// GetByID returns a partner by ID.
func (r *MockPartnerRepository) GetByID(id string) (*models.Partner, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.partners[id]
	if !ok {
		return nil, fmt.Errorf("partner with ID %s not found", id)
	}
	return &p, nil
}
