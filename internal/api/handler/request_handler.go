package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bloodlink/donation-system/internal/api/metrics"
	"github.com/bloodlink/donation-system/internal/core/domain"
	"github.com/bloodlink/donation-system/internal/core/ports"
)

// RequestHandler handles HTTP requests for blood request operations.
type RequestHandler struct {
	service ports.RequestService
}

func NewRequestHandler(service ports.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// Create handles POST /v1/requests. The acting user becomes the requester.
//
// @Summary      Open a blood request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRequestRequest  true  "Request details"
// @Success      201   {object}  domain.BloodRequest
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/requests [post]
func (h *RequestHandler) Create(c echo.Context) error {
	var req createRequestRequest
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
	if req.RequestDate != nil {
		date = *req.RequestDate
	}

	request, err := h.service.Create(c.Request().Context(), ports.CreateRequestInput{
		BloodType:     req.BloodType,
		Amount:        req.Amount,
		Urgency:       req.Urgency,
		RequesterName: req.RequesterName,
		HospitalName:  req.HospitalName,
		Reason:        req.Reason,
		NeededByDate:  req.NeededByDate,
		RequestDate:   date,
		Status:        req.Status,
	}, username)
	if err != nil {
		return err
	}

	metrics.RequestsCreatedTotal.WithLabelValues(string(request.Urgency)).Inc()
	return c.JSON(http.StatusCreated, request)
}

// Get handles GET /v1/requests/:id.
//
// @Summary      Get a request by id
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  domain.BloodRequest
// @Failure      404  {object}  errorResponse
// @Router       /v1/requests/{id} [get]
func (h *RequestHandler) Get(c echo.Context) error {
	request, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, request)
}

// List handles GET /v1/requests. Optional filters: blood_type, pending=true,
// urgent=true, requester=<username>, hospital=<name>.
//
// @Summary      List blood requests
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        blood_type  query     string  false  "Filter by blood type"
// @Param        pending     query     bool    false  "Only pending requests"
// @Param        urgent      query     bool    false  "Only urgent pending requests"
// @Param        requester   query     string  false  "Filter by requester username"
// @Param        hospital    query     string  false  "Filter by hospital name"
// @Success      200         {array}   domain.BloodRequest
// @Router       /v1/requests [get]
func (h *RequestHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	var (
		requests []*domain.BloodRequest
		err      error
	)
	switch {
	case c.QueryParam("blood_type") != "":
		requests, err = h.service.ByBloodType(ctx, c.QueryParam("blood_type"))
	case c.QueryParam("requester") != "":
		requests, err = h.service.ByUser(ctx, c.QueryParam("requester"))
	case c.QueryParam("hospital") != "":
		requests, err = h.service.ByHospital(ctx, c.QueryParam("hospital"))
	case c.QueryParam("urgent") == "true":
		requests, err = h.service.Urgent(ctx)
	case c.QueryParam("pending") == "true":
		requests, err = h.service.Pending(ctx)
	default:
		requests, err = h.service.All(ctx)
	}
	if err != nil {
		return err
	}

	if requests == nil {
		requests = []*domain.BloodRequest{}
	}
	return c.JSON(http.StatusOK, requests)
}

// Recent handles GET /v1/requests/recent.
//
// @Summary      List the most recent requests
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.BloodRequest
// @Router       /v1/requests/recent [get]
func (h *RequestHandler) Recent(c echo.Context) error {
	requests, err := h.service.Recent(c.Request().Context())
	if err != nil {
		return err
	}
	if requests == nil {
		requests = []*domain.BloodRequest{}
	}
	return c.JSON(http.StatusOK, requests)
}

// Overdue handles GET /v1/requests/overdue.
//
// @Summary      List pending requests past their needed-by date
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.BloodRequest
// @Router       /v1/requests/overdue [get]
func (h *RequestHandler) Overdue(c echo.Context) error {
	requests, err := h.service.Overdue(c.Request().Context())
	if err != nil {
		return err
	}
	if requests == nil {
		requests = []*domain.BloodRequest{}
	}
	return c.JSON(http.StatusOK, requests)
}

// Update handles PATCH /v1/requests/:id.
//
// @Summary      Update a blood request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Request id"
// @Param        body  body      updateRequestRequest  true  "Fields to change"
// @Success      200   {object}  domain.BloodRequest
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/requests/{id} [patch]
func (h *RequestHandler) Update(c echo.Context) error {
	var req updateRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	request, err := h.service.Update(c.Request().Context(), c.Param("id"), domain.RequestPatch{
		BloodType:     req.BloodType,
		Amount:        req.Amount,
		Urgency:       req.Urgency,
		RequesterName: req.RequesterName,
		HospitalName:  req.HospitalName,
		Reason:        req.Reason,
		NeededByDate:  req.NeededByDate,
		Status:        req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, request)
}

// Delete handles DELETE /v1/requests/:id.
//
// @Summary      Delete a blood request
// @Tags         requests
// @Security     BearerAuth
// @Param        id  path  string  true  "Request id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /v1/requests/{id} [delete]
func (h *RequestHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Fulfill handles PATCH /v1/requests/:id/fulfill.
//
// @Summary      Fulfill a pending request
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  domain.BloodRequest
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/requests/{id}/fulfill [patch]
func (h *RequestHandler) Fulfill(c echo.Context) error {
	request, err := h.service.Fulfill(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.RequestTransitionsTotal.WithLabelValues(string(domain.RequestFulfilled)).Inc()
	return c.JSON(http.StatusOK, request)
}

// Cancel handles PATCH /v1/requests/:id/cancel. Only the owning requester or
// an admin may cancel.
//
// @Summary      Cancel a pending request
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request id"
// @Success      200  {object}  domain.BloodRequest
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/requests/{id}/cancel [patch]
func (h *RequestHandler) Cancel(c echo.Context) error {
	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	request, err := h.service.Cancel(c.Request().Context(), c.Param("id"), username)
	if err != nil {
		return err
	}

	metrics.RequestTransitionsTotal.WithLabelValues(string(domain.RequestCancelled)).Inc()
	return c.JSON(http.StatusOK, request)
}

// CountByStatus handles GET /v1/requests/count/:status.
//
// @Summary      Count requests in a given status
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        status  path      string  true  "Status (Pending, Fulfilled, Cancelled)"
// @Success      200     {object}  statusCountResponse
// @Failure      400     {object}  errorResponse
// @Router       /v1/requests/count/{status} [get]
func (h *RequestHandler) CountByStatus(c echo.Context) error {
	status := c.Param("status")
	count, err := h.service.CountByStatus(c.Request().Context(), status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusCountResponse{Status: status, Count: count})
}

// UrgentCount handles GET /v1/requests/urgent/count.
//
// @Summary      Count urgent pending requests
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  urgentCountResponse
// @Router       /v1/requests/urgent/count [get]
func (h *RequestHandler) UrgentCount(c echo.Context) error {
	count, err := h.service.UrgentCount(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, urgentCountResponse{Count: count})
}
