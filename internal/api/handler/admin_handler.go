package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bloodlink/donation-system/internal/core/ports"
)

// AdminHandler serves admin-only aggregates.
type AdminHandler struct {
	stats ports.StatsService
}

func NewAdminHandler(stats ports.StatsService) *AdminHandler {
	return &AdminHandler{stats: stats}
}

// Stats handles GET /v1/admin/stats. Numbers may be a few seconds stale
// when served from the cache.
//
// @Summary      Dashboard statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardStats
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.stats.Dashboard(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
