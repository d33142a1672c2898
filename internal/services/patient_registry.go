package services

import (
	"lablink/internal/models"

	"github.com/google/uuid"
)

// PatientRegistry is the list of saved patient profiles.
type PatientRegistry struct {
	patients []models.Patient
	newID    func() string
}

// NewPatientRegistry returns a registry seeded with patients.
func NewPatientRegistry(patients []models.Patient) *PatientRegistry {
	return &PatientRegistry{
		patients: append([]models.Patient(nil), patients...),
		newID:    uuid.NewString,
	}
}

// Add appends p under a freshly generated id and returns the stored copy.
func (r *PatientRegistry) Add(p models.Patient) models.Patient {
	p.ID = r.newID()
	r.patients = append(r.patients, p)
	return p
}

// Remove drops the patient with id and reports whether one existed.
func (r *PatientRegistry) Remove(id string) bool {
	for i, p := range r.patients {
		if p.ID == id {
			r.patients = append(r.patients[:i:i], r.patients[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the patient with id.
func (r *PatientRegistry) Get(id string) (models.Patient, bool) {
	for _, p := range r.patients {
		if p.ID == id {
			return p, true
		}
	}
	return models.Patient{}, false
}

// List returns a copy of all patients in insertion order.
func (r *PatientRegistry) List() []models.Patient {
	return append([]models.Patient(nil), r.patients...)
}
