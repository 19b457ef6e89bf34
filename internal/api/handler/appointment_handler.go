package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bloodlink/donation-system/internal/core/domain"
	"github.com/bloodlink/donation-system/internal/core/ports"
)

// AppointmentHandler handles HTTP requests for appointment operations.
type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type createAppointmentRequest struct {
	BloodType       string    `json:"blood_type"       validate:"required"`
	AppointmentDate time.Time `json:"appointment_date" validate:"required"`
	Location        string    `json:"location,omitempty"`
}

type updateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Create handles POST /v1/appointments. The slot is booked for the acting
// user and always starts Pending.
//
// @Summary      Book a donation appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAppointmentRequest  true  "Appointment details"
// @Success      201   {object}  domain.Appointment
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/appointments [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	var req createAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	appointment, err := h.service.Create(c.Request().Context(), ports.CreateAppointmentInput{
		BloodType:       req.BloodType,
		AppointmentDate: req.AppointmentDate,
		Location:        req.Location,
	}, username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, appointment)
}

// List handles GET /v1/appointments. Regular users see their own
// appointments; admins see everything.
//
// @Summary      List appointments
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Appointment
// @Router       /v1/appointments [get]
func (h *AppointmentHandler) List(c echo.Context) error {
	username, role, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var appointments []*domain.Appointment
	if domain.Role(role).CanAdminister() {
		appointments, err = h.service.All(c.Request().Context())
	} else {
		appointments, err = h.service.ByUser(c.Request().Context(), username)
	}
	if err != nil {
		return err
	}

	if appointments == nil {
		appointments = []*domain.Appointment{}
	}
	return c.JSON(http.StatusOK, appointments)
}

// UpdateStatus handles PATCH /v1/appointments/:id/status.
//
// @Summary      Set an appointment's status
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                          true  "Appointment id"
// @Param        body  body      updateAppointmentStatusRequest  true  "New status"
// @Success      200   {object}  domain.Appointment
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/appointments/{id}/status [patch]
func (h *AppointmentHandler) UpdateStatus(c echo.Context) error {
	var req updateAppointmentStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	appointment, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appointment)
}
