package handlers

import (
	"errors"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/case-service/internal/api/dto"
	"github.com/spec-kit/case-service/internal/casework"
	"github.com/spec-kit/case-service/internal/domain"
	"github.com/spec-kit/case-service/internal/media"
	"github.com/spec-kit/case-service/internal/service"
	apperrors "github.com/spec-kit/case-service/pkg/util/errorutil"
)

const uploadField = "files"

// DraftsHandler drives authoring sessions. Every mutation restores the session
// named in the path, applies one change and stores the result.
type DraftsHandler struct {
	drafts *service.DraftService
	cases  *service.CaseService
}

// NewDraftsHandler constructs handler.
func NewDraftsHandler(drafts *service.DraftService, cases *service.CaseService) *DraftsHandler {
	return &DraftsHandler{drafts: drafts, cases: cases}
}

// Create POST /drafts.
func (h *DraftsHandler) Create(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.CreateDraftRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return err
		}
	}
	session, err := h.drafts.Start(c.UserContext(), user, req.Form, req.Local)
	if err != nil {
		return err
	}
	return created(c, draftResponse(session))
}

// List GET /drafts.
func (h *DraftsHandler) List(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	drafts, err := h.drafts.List(c.UserContext(), user)
	if err != nil {
		return err
	}
	items := make([]dto.DraftSummary, 0, len(drafts))
	for i := range drafts {
		items = append(items, dto.NewDraftSummary(&drafts[i]))
	}
	return ok(c, items)
}

// Get GET /drafts/:id.
func (h *DraftsHandler) Get(c *fiber.Ctx) error {
	user, ref, err := h.target(c)
	if err != nil {
		return err
	}
	session, err := h.drafts.Restore(c.UserContext(), user, ref)
	if err != nil {
		return err
	}
	return ok(c, draftResponse(session))
}

// Delete DELETE /drafts/:id.
func (h *DraftsHandler) Delete(c *fiber.Ctx) error {
	user, ref, err := h.target(c)
	if err != nil {
		return err
	}
	if err := h.drafts.DiscardRef(c.UserContext(), user, ref); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Save POST /drafts/:id/save stores the session durably. A local session gets a
// new handle.
func (h *DraftsHandler) Save(c *fiber.Ctx) error {
	user, ref, err := h.target(c)
	if err != nil {
		return err
	}
	ctx := c.UserContext()
	session, err := h.drafts.Restore(ctx, user, ref)
	if err != nil {
		return err
	}
	if _, err := h.drafts.Snapshot(ctx, user, session, true); err != nil {
		return err
	}
	return ok(c, draftResponse(session))
}

// UpdateForm PUT /drafts/:id/form.
func (h *DraftsHandler) UpdateForm(c *fiber.Ctx) error {
	var form domain.CaseForm
	if err := parseBody(c, &form); err != nil {
		return err
	}
	return h.mutate(c, func(s *casework.Session) error {
		s.Form = form
		return nil
	})
}

// AddBlock POST /drafts/:id/blocks.
func (h *DraftsHandler) AddBlock(c *fiber.Ctx) error {
	var req dto.AddBlockRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if !req.Category.Valid() {
		return apperrors.NewValidationError("invalid victim category", map[string]any{"category": req.Category})
	}
	return h.mutate(c, func(s *casework.Session) error {
		s.AddBlock(req.Category)
		return nil
	})
}

// UpdateBlock PUT /drafts/:id/blocks/:blockId.
func (h *DraftsHandler) UpdateBlock(c *fiber.Ctx) error {
	var victim domain.Victim
	if err := parseBody(c, &victim); err != nil {
		return err
	}
	blockID := c.Params("blockId")
	return h.mutate(c, func(s *casework.Session) error {
		return s.UpdateBlock(blockID, victim)
	})
}

// SaveBlock POST /drafts/:id/blocks/:blockId/save.
func (h *DraftsHandler) SaveBlock(c *fiber.Ctx) error {
	blockID := c.Params("blockId")
	return h.mutate(c, func(s *casework.Session) error {
		return s.SaveBlock(blockID)
	})
}

// RemoveBlock DELETE /drafts/:id/blocks/:blockId.
func (h *DraftsHandler) RemoveBlock(c *fiber.Ctx) error {
	blockID := c.Params("blockId")
	return h.mutate(c, func(s *casework.Session) error {
		return s.RemoveBlock(blockID)
	})
}

// EditSaved POST /drafts/:id/saved/:index/edit.
func (h *DraftsHandler) EditSaved(c *fiber.Ctx) error {
	index, err := intParam(c, "index")
	if err != nil {
		return err
	}
	return h.mutate(c, func(s *casework.Session) error {
		_, err := s.EditSavedBlock(index)
		return err
	})
}

// RemoveSaved DELETE /drafts/:id/saved/:index.
func (h *DraftsHandler) RemoveSaved(c *fiber.Ctx) error {
	index, err := intParam(c, "index")
	if err != nil {
		return err
	}
	return h.mutate(c, func(s *casework.Session) error {
		return s.RemoveSavedBlock(index)
	})
}

// AddMedia POST /drafts/:id/blocks/:blockId/media/:kind accepts a multipart
// upload with one or more files. Rejected files are reported alongside the
// ones that were attached.
func (h *DraftsHandler) AddMedia(c *fiber.Ctx) error {
	user, ref, err := h.target(c)
	if err != nil {
		return err
	}
	kind, err := mediaKindParam(c)
	if err != nil {
		return err
	}
	form, err := c.MultipartForm()
	if err != nil {
		return apperrors.NewValidationError("multipart form required", nil)
	}
	headers := form.File[uploadField]
	if len(headers) == 0 {
		return apperrors.NewValidationError("no files uploaded", map[string]any{"field": uploadField})
	}
	caption := c.FormValue("caption")
	files := make([]media.File, 0, len(headers))
	for _, fh := range headers {
		content, err := readUpload(fh)
		if err != nil {
			return apperrors.NewValidationError("unreadable upload", map[string]any{"file_name": fh.Filename})
		}
		files = append(files, media.File{
			Name:     fh.Filename,
			MimeType: fh.Header.Get("Content-Type"),
			Caption:  caption,
			Content:  content,
		})
	}

	blockID := c.Params("blockId")
	var (
		added    []domain.Attachment
		rejected []media.Rejection
	)
	session, err := h.drafts.Mutate(c.UserContext(), user, ref, func(s *casework.Session) error {
		b, found := s.Block(blockID)
		if !found {
			return casework.ErrBlockNotFound
		}
		added, rejected = b.Media(kind).AddFiles(files)
		return nil
	})
	if err != nil {
		return err
	}
	if added == nil {
		added = []domain.Attachment{}
	}
	if rejected == nil {
		rejected = []media.Rejection{}
	}
	return ok(c, dto.UploadResponse{Draft: draftResponse(session), Added: added, Rejected: rejected})
}

// RemoveMedia DELETE /drafts/:id/blocks/:blockId/media/:kind/:mediaId.
func (h *DraftsHandler) RemoveMedia(c *fiber.Ctx) error {
	kind, err := mediaKindParam(c)
	if err != nil {
		return err
	}
	blockID, mediaID := c.Params("blockId"), c.Params("mediaId")
	return h.mutate(c, func(s *casework.Session) error {
		b, found := s.Block(blockID)
		if !found {
			return casework.ErrBlockNotFound
		}
		if !b.Media(kind).RemoveFile(mediaID) {
			return apperrors.NewNotFound("attachment", map[string]any{"id": mediaID})
		}
		return nil
	})
}

// ViewMedia GET /drafts/:id/blocks/:blockId/media/:kind/:mediaId opens the
// viewer on one attachment of a block.
func (h *DraftsHandler) ViewMedia(c *fiber.Ctx) error {
	user, ref, err := h.target(c)
	if err != nil {
		return err
	}
	kind, err := mediaKindParam(c)
	if err != nil {
		return err
	}
	session, err := h.drafts.Restore(c.UserContext(), user, ref)
	if err != nil {
		return err
	}
	b, found := session.Block(c.Params("blockId"))
	if !found {
		return apperrors.NewNotFound("victim block", nil)
	}
	viewer, err := b.Media(kind).OpenViewer(c.Params("mediaId"))
	if err != nil {
		if errors.Is(err, media.ErrNotFound) {
			return apperrors.NewNotFound("attachment", map[string]any{"id": c.Params("mediaId")})
		}
		return err
	}
	return ok(c, viewer)
}

// Submit POST /drafts/:id/submit.
func (h *DraftsHandler) Submit(c *fiber.Ctx) error {
	user, ref, err := h.target(c)
	if err != nil {
		return err
	}
	var req dto.SubmitRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return err
		}
	}
	ctx := c.UserContext()
	session, err := h.drafts.Restore(ctx, user, ref)
	if err != nil {
		return err
	}
	submitted, err := h.cases.Submit(ctx, user, session, service.SubmitInput{ExternalCaseNumber: req.ExternalCaseNumber})
	if err != nil {
		return err
	}
	status := fiber.StatusOK
	if ref.CaseID == "" {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"success": true, "data": dto.NewCaseResponse(submitted)})
}

func (h *DraftsHandler) target(c *fiber.Ctx) (*domain.User, service.DraftRef, error) {
	user, err := currentUser(c)
	if err != nil {
		return nil, service.DraftRef{}, err
	}
	ref, err := service.ParseDraftHandle(c.Params("id"))
	if err != nil {
		return nil, service.DraftRef{}, err
	}
	for _, id := range []string{ref.DraftID, ref.CaseID} {
		if id == "" {
			continue
		}
		if _, err := uuid.Parse(id); err != nil {
			return nil, service.DraftRef{}, apperrors.NewNotFound("draft", map[string]any{"id": c.Params("id")})
		}
	}
	return user, ref, nil
}

func (h *DraftsHandler) mutate(c *fiber.Ctx, fn func(*casework.Session) error) error {
	user, ref, err := h.target(c)
	if err != nil {
		return err
	}
	session, err := h.drafts.Mutate(c.UserContext(), user, ref, fn)
	if err != nil {
		return err
	}
	return ok(c, draftResponse(session))
}

func draftResponse(s *casework.Session) dto.DraftResponse {
	return dto.NewDraftResponse(service.RefOf(s).Handle(), s)
}

func mediaKindParam(c *fiber.Ctx) (domain.MediaKind, error) {
	kind := domain.MediaKind(c.Params("kind"))
	if !kind.Valid() {
		return "", apperrors.NewValidationError("invalid media kind", map[string]any{"kind": kind})
	}
	return kind, nil
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
