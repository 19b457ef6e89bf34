package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bloodlink/donation-system/internal/api/metrics"
	"github.com/bloodlink/donation-system/internal/core/domain"
	"github.com/bloodlink/donation-system/internal/core/ports"
)

// DonationHandler handles HTTP requests for donation operations.
type DonationHandler struct {
	service ports.DonationService
}

func NewDonationHandler(service ports.DonationService) *DonationHandler {
	return &DonationHandler{service: service}
}

// Create handles POST /v1/donations. The acting user becomes the donor.
//
// @Summary      Register a donation
// @Tags         donations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDonationRequest  true  "Donation details"
// @Success      201   {object}  domain.Donation
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/donations [post]
func (h *DonationHandler) Create(c echo.Context) error {
	var req createDonationRequest
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

	var date time.Time
	if req.DonationDate != nil {
		date = *req.DonationDate
	}

	donation, err := h.service.Create(c.Request().Context(), ports.CreateDonationInput{
		BloodType:    req.BloodType,
		Amount:       req.Amount,
		DonationDate: date,
		Location:     req.Location,
		Notes:        req.Notes,
		Available:    req.Available,
	}, username)
	if err != nil {
		return err
	}

	metrics.DonationsCreatedTotal.WithLabelValues(donation.BloodType).Inc()
	return c.JSON(http.StatusCreated, donation)
}

// Get handles GET /v1/donations/:id.
//
// @Summary      Get a donation by id
// @Tags         donations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Donation id"
// @Success      200  {object}  domain.Donation
// @Failure      404  {object}  errorResponse
// @Router       /v1/donations/{id} [get]
func (h *DonationHandler) Get(c echo.Context) error {
	donation, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, donation)
}

// List handles GET /v1/donations. Optional filters: available=true,
// blood_type=<type>, donor=<username>.
//
// @Summary      List donations
// @Tags         donations
// @Produce      json
// @Security     BearerAuth
// @Param        available   query     bool    false  "Only available donations"
// @Param        blood_type  query     string  false  "Filter by blood type"
// @Param        donor       query     string  false  "Filter by donor username"
// @Success      200         {array}   domain.Donation
// @Router       /v1/donations [get]
func (h *DonationHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		donations []*domain.Donation
		err       error
	)
	switch {
	case c.QueryParam("blood_type") != "":
		donations, err = h.service.ByBloodType(ctx, c.QueryParam("blood_type"))
	case c.QueryParam("donor") != "":
		donations, err = h.service.ByUser(ctx, c.QueryParam("donor"))
	case c.QueryParam("available") == "true":
		donations, err = h.service.Available(ctx)
	default:
		donations, err = h.service.All(ctx)
	}
	if err != nil {
		return err
	}

	if donations == nil {
		donations = []*domain.Donation{}
	}
	return c.JSON(http.StatusOK, donations)
}

// Recent handles GET /v1/donations/recent.
//
// @Summary      List the most recent donations
// @Tags         donations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Donation
// @Router       /v1/donations/recent [get]
func (h *DonationHandler) Recent(c echo.Context) error {
	donations, err := h.service.Recent(c.Request().Context())
	if err != nil {
		return err
	}
	if donations == nil {
		donations = []*domain.Donation{}
	}
	return c.JSON(http.StatusOK, donations)
}

// Update handles PATCH /v1/donations/:id.
//
// @Summary      Update a donation
// @Tags         donations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Donation id"
// @Param        body  body      updateDonationRequest  true  "Fields to change"
// @Success      200   {object}  domain.Donation
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/donations/{id} [patch]
func (h *DonationHandler) Update(c echo.Context) error {
	var req updateDonationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	donation, err := h.service.Update(c.Request().Context(), c.Param("id"), domain.DonationPatch{
		BloodType:    req.BloodType,
		Amount:       req.Amount,
		DonationDate: req.DonationDate,
		Location:     req.Location,
		Notes:        req.Notes,
		Available:    req.Available,
		DonorID:      req.DonorID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, donation)
}

// Delete handles DELETE /v1/donations/:id.
//
// @Summary      Delete a donation
// @Tags         donations
// @Security     BearerAuth
// @Param        id  path  string  true  "Donation id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/donations/{id} [delete]
func (h *DonationHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// MarkUsed handles PATCH /v1/donations/:id/use.
//
// @Summary      Mark a donation as used
// @Tags         donations
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Donation id"
// @Success      200  {object}  domain.Donation
// @Failure      404  {object}  errorResponse
// @Router       /v1/donations/{id}/use [patch]
func (h *DonationHandler) MarkUsed(c echo.Context) error {
	donation, err := h.service.MarkUsed(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, donation)
}

// Eligibility handles GET /v1/donations/eligibility. It reports whether the
// acting user may donate today.
//
// @Summary      Check donation eligibility
// @Tags         donations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  eligibilityResponse
// @Router       /v1/donations/eligibility [get]
func (h *DonationHandler) Eligibility(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	eligible, err := h.service.CanDonate(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, eligibilityResponse{Username: username, Eligible: eligible})
}

// Donors handles GET /v1/donors, the donor directory.
//
// @Summary      List registered donors
// @Tags         donations
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   userResponse
// @Router       /v1/donors [get]
func (h *DonationHandler) Donors(c echo.Context) error {
	donors, err := h.service.Donors(c.Request().Context())
	if err != nil {
		return err
	}

	resp := make([]userResponse, 0, len(donors))
	for _, d := range donors {
		resp = append(resp, toUserResponse(d))
	}
	return c.JSON(http.StatusOK, resp)
}

// AvailableCount handles GET /v1/donations/count/:blood_type.
//
// @Summary      Count available donations for a blood type
// @Tags         donations
// @Produce      json
// @Security     BearerAuth
// @Param        blood_type  path      string  true  "Blood type (e.g. O+)"
// @Success      200         {object}  countResponse
// @Failure      400         {object}  errorResponse
// @Router       /v1/donations/count/{blood_type} [get]
func (h *DonationHandler) AvailableCount(c echo.Context) error {
	bloodType := c.Param("blood_type")
	count, err := h.service.AvailableCountByBloodType(c.Request().Context(), bloodType)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, countResponse{BloodType: bloodType, Count: count})
}
