package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/case-service/internal/api/dto"
	"github.com/spec-kit/case-service/internal/domain"
	"github.com/spec-kit/case-service/internal/media"
	"github.com/spec-kit/case-service/internal/service"
	apperrors "github.com/spec-kit/case-service/pkg/util/errorutil"
)

// CasesHandler exposes submitted cases and their review workflow.
type CasesHandler struct {
	cases *service.CaseService
}

// NewCasesHandler constructs handler.
func NewCasesHandler(caseService *service.CaseService) *CasesHandler {
	return &CasesHandler{cases: caseService}
}

// List GET /cases.
func (h *CasesHandler) List(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	cases, err := h.cases.List(c.UserContext(), user, parseCaseQuery(c))
	if err != nil {
		return err
	}
	items := make([]dto.CaseSummary, 0, len(cases))
	for i := range cases {
		items = append(items, dto.NewCaseSummary(&cases[i]))
	}
	return ok(c, items)
}

// Get GET /cases/:id.
func (h *CasesHandler) Get(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	caseID, err := uuidParam(c, "id", "case")
	if err != nil {
		return err
	}
	found, err := h.cases.Get(c.UserContext(), user, caseID)
	if err != nil {
		return err
	}
	return ok(c, dto.NewCaseResponse(found))
}

// Edit POST /cases/:id/edit opens or resumes an edit session on the case.
func (h *CasesHandler) Edit(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	caseID, err := uuidParam(c, "id", "case")
	if err != nil {
		return err
	}
	session, err := h.cases.OpenEditSession(c.UserContext(), user, caseID)
	if err != nil {
		return err
	}
	return ok(c, draftResponse(session))
}

// Review POST /cases/:id/review.
func (h *CasesHandler) Review(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	caseID, err := uuidParam(c, "id", "case")
	if err != nil {
		return err
	}
	var req dto.ReviewRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Action == "" {
		return apperrors.NewValidationError("action required", nil)
	}
	updated, err := h.cases.Review(c.UserContext(), user, caseID, req.Action, req.Comment)
	if err != nil {
		return err
	}
	return ok(c, dto.NewCaseResponse(updated))
}

// ReviewVictim POST /cases/:id/victims/:index/review.
func (h *CasesHandler) ReviewVictim(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	caseID, err := uuidParam(c, "id", "case")
	if err != nil {
		return err
	}
	index, err := intParam(c, "index")
	if err != nil {
		return err
	}
	var req dto.VictimReviewRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	updated, err := h.cases.ReviewVictim(c.UserContext(), user, caseID, index, service.VictimReviewInput{
		Status:         req.Status,
		ApprovedAmount: req.ApprovedAmount,
		Comment:        req.Comment,
	})
	if err != nil {
		return err
	}
	return ok(c, dto.NewCaseResponse(updated))
}

// Assign POST /cases/:id/assign.
func (h *CasesHandler) Assign(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	caseID, err := uuidParam(c, "id", "case")
	if err != nil {
		return err
	}
	var req dto.AssignRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	updated, err := h.cases.AssignInspector(c.UserContext(), user, caseID, req.InspectorID)
	if err != nil {
		return err
	}
	return ok(c, dto.NewCaseResponse(updated))
}

// History GET /cases/:id/history.
func (h *CasesHandler) History(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	caseID, err := uuidParam(c, "id", "case")
	if err != nil {
		return err
	}
	entries, err := h.cases.ListHistory(c.UserContext(), user, caseID)
	if err != nil {
		return err
	}
	items := make([]dto.HistoryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, dto.NewHistoryResponse(&entries[i]))
	}
	return ok(c, items)
}

// ListMedia GET /cases/:id/media.
func (h *CasesHandler) ListMedia(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	caseID, err := uuidParam(c, "id", "case")
	if err != nil {
		return err
	}
	items, err := h.cases.ListMedia(c.UserContext(), user, caseID)
	if err != nil {
		return err
	}
	out := make([]dto.MediaResponse, 0, len(items))
	for i := range items {
		out = append(out, dto.NewMediaResponse(&items[i], false))
	}
	return ok(c, out)
}

// GetMedia GET /cases/:id/media/:mediaId.
func (h *CasesHandler) GetMedia(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	caseID, err := uuidParam(c, "id", "case")
	if err != nil {
		return err
	}
	mediaID, err := uuidParam(c, "mediaId", "media")
	if err != nil {
		return err
	}
	item, err := h.cases.GetMedia(c.UserContext(), user, caseID, mediaID)
	if err != nil {
		return err
	}
	return ok(c, dto.NewMediaResponse(item, true))
}

// MediaContent GET /cases/:id/media/:mediaId/content streams the stored file.
func (h *CasesHandler) MediaContent(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	caseID, err := uuidParam(c, "id", "case")
	if err != nil {
		return err
	}
	mediaID, err := uuidParam(c, "mediaId", "media")
	if err != nil {
		return err
	}
	item, err := h.cases.GetMedia(c.UserContext(), user, caseID, mediaID)
	if err != nil {
		return err
	}
	return sendMediaContent(c, item)
}

func sendMediaContent(c *fiber.Ctx, item *domain.CaseMedia) error {
	mimeType, raw, err := media.DecodeDataURL(item.Data)
	if err != nil {
		return apperrors.NewInternalError(fmt.Errorf("media %s: %w", item.ID, err))
	}
	if mimeType == "" {
		mimeType = item.MimeType
	}
	c.Set(fiber.HeaderContentType, mimeType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", item.FileName))
	return c.Send(raw)
}

// DeleteMedia DELETE /cases/:id/media/:mediaId.
func (h *CasesHandler) DeleteMedia(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	caseID, err := uuidParam(c, "id", "case")
	if err != nil {
		return err
	}
	mediaID, err := uuidParam(c, "mediaId", "media")
	if err != nil {
		return err
	}
	if err := h.cases.DeleteMedia(c.UserContext(), user, caseID, mediaID); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
