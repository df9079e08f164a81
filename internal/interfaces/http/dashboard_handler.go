package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/merchbydz/backoffice/internal/application/analytics"
	"github.com/merchbydz/backoffice/internal/application/dto"
)

// DashboardHandler maneja los endpoints del tablero financiero.
type DashboardHandler struct {
	uc     *appanalytics.DashboardUseCase
	report *appanalytics.ReportUseCase
}

// NewDashboardHandler report puede ser nil (sin PDF).
func NewDashboardHandler(uc *appanalytics.DashboardUseCase, report *appanalytics.ReportUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc, report: report}
}

// GetSummary godoc
// @Summary      Cascada hasta la posición neta del período
// @Description  recognized + expected + adhoc_net − loss − charges − marketing.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.SummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	r, err := parseRange(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Summary(c.UserContext(), r)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetChannels GET /api/dashboard/channels
func (h *DashboardHandler) GetChannels(c *fiber.Ctx) error {
	r, err := parseRange(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Channels(c.UserContext(), r)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(out))
}

// GetSuppliers GET /api/dashboard/suppliers
func (h *DashboardHandler) GetSuppliers(c *fiber.Ctx) error {
	r, err := parseRange(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Suppliers(c.UserContext(), r)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(out))
}

// GetSellers GET /api/dashboard/sellers
func (h *DashboardHandler) GetSellers(c *fiber.Ctx) error {
	r, err := parseRange(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Sellers(c.UserContext(), r)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewListResponse(out))
}

// GetInventory stock actual, sin rango. GET /api/dashboard/inventory
func (h *DashboardHandler) GetInventory(c *fiber.Ctx) error {
	out, err := h.uc.Inventory(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetCredits GET /api/dashboard/credits
func (h *DashboardHandler) GetCredits(c *fiber.Ctx) error {
	r, err := parseRange(c)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Credits(c.UserContext(), r)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetRouting tabla categoría → proveedores elegibles. GET /api/suppliers/routing
func (h *DashboardHandler) GetRouting(c *fiber.Ctx) error {
	return c.JSON(dto.NewRoutingDTO(h.uc.Routing()))
}

// GetReportPDF godoc
// @Summary      Informe PDF del tablero
// @Tags         dashboard
// @Security     Bearer
// @Produce      application/pdf
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/dashboard/report.pdf [get]
func (h *DashboardHandler) GetReportPDF(c *fiber.Ctx) error {
	if h.report == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "UNAVAILABLE", Message: "generador PDF no configurado"})
	}
	r, err := parseRange(c)
	if err != nil {
		return writeError(c, err)
	}
	pdf, err := h.report.DashboardPDF(c.UserContext(), r)
	if err != nil {
		return writeError(c, err)
	}
	name := "tableau-de-bord"
	if !r.IsUnbounded() {
		name += "_" + strings.NewReplacer("..", "_", "*", "").Replace(r.Key())
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", name+".pdf"))
	return c.Send(pdf)
}
