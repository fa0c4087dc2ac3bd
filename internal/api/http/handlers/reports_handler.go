package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/case-service/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportsHandler serves dashboards and exports.
type ReportsHandler struct {
	reports *service.ReportService
	now     func() time.Time
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reports *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reports: reports, now: time.Now}
}

// Summary GET /reports/summary.
func (h *ReportsHandler) Summary(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	summary, err := h.reports.Summary(c.UserContext(), user, parseCaseQuery(c))
	if err != nil {
		return err
	}
	return ok(c, summary)
}

// Export GET /reports/cases.xlsx.
func (h *ReportsHandler) Export(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	content, err := h.reports.Export(c.UserContext(), user, parseCaseQuery(c))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="cases-%s.xlsx"`, h.now().Format("20060102")))
	return c.Send(content)
}
