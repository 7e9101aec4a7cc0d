package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blood-bank-service/internal/api/dto"
	"github.com/spec-kit/blood-bank-service/internal/service"
)

// AppointmentsHandler exposes the caller's appointments.
type AppointmentsHandler struct {
	appointments *service.AppointmentService
}

// NewAppointmentsHandler constructs handler.
func NewAppointmentsHandler(appointments *service.AppointmentService) *AppointmentsHandler {
	return &AppointmentsHandler{appointments: appointments}
}

// List handles GET /appointments.
func (h *AppointmentsHandler) List(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	items, err := h.appointments.List(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAppointmentList(items))
}

// Create handles POST /appointments.
func (h *AppointmentsHandler) Create(c *fiber.Ctx) error {
	id, err := currentIdentity(c)
	if err != nil {
		return err
	}
	var req dto.CreateAppointmentRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	appt, err := h.appointments.Create(c.UserContext(), id, service.AppointmentCreateInput{
		Date:      req.Date,
		Time:      req.Time,
		Location:  req.Location,
		Notes:     req.Notes,
		BloodType: req.BloodType,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewAppointmentResponse(*appt))
}
