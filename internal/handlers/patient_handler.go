package handlers

import (
	"lablink/internal/models"
	"lablink/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PatientHandler manages saved patients.
type PatientHandler struct {
	store *services.Store
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(store *services.Store) *PatientHandler {
	return &PatientHandler{store: store}
}

// RegisterRoutes registers the patient routes.
func (h *PatientHandler) RegisterRoutes(router fiber.Router) {
	patients := router.Group("/patients")
	patients.Get("/", h.HandleListPatients)
	patients.Post("/", h.HandleAddPatient)
	patients.Delete("/:id", h.HandleRemovePatient)
	patients.Post("/:id/select", h.HandleSelectPatient)
}

// HandleListPatients lists saved patients.
func (h *PatientHandler) HandleListPatients(c *fiber.Ctx) error {
	patients := h.store.Patients()
	if patients == nil {
		patients = []models.Patient{}
	}
	return c.JSON(patients)
}

// HandleAddPatient saves a new patient. Any client-sent id is replaced.
func (h *PatientHandler) HandleAddPatient(c *fiber.Ctx) error {
	var p models.Patient
	if err := c.BodyParser(&p); err != nil {
		return badBody(c, err)
	}
	saved, err := h.store.AddPatient(c.UserContext(), p)
	if err != nil {
		return serviceError(c, err, "Could not add patient")
	}
	return c.Status(fiber.StatusCreated).JSON(saved)
}

// HandleRemovePatient deletes a saved patient.
func (h *PatientHandler) HandleRemovePatient(c *fiber.Ctx) error {
	h.store.RemovePatient(c.UserContext(), c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleSelectPatient copies a saved patient into the checkout draft.
func (h *PatientHandler) HandleSelectPatient(c *fiber.Ctx) error {
	user, err := h.store.SelectPatient(c.UserContext(), c.Params("id"))
	if err != nil {
		return serviceError(c, err, "Could not select patient")
	}
	return c.JSON(user)
}
