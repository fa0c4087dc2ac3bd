package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/case-service/internal/domain"
	"github.com/spec-kit/case-service/internal/media"
	apperrors "github.com/spec-kit/case-service/pkg/util/errorutil"
)

func TestSendMediaContent(t *testing.T) {
	content := []byte("%PDF-1.7 police report")
	stored := &domain.CaseMedia{
		ID:       "6f1c2a7e-3b44-4a57-9a8e-0d2b1c9f0e11",
		FileName: "report.pdf",
		MimeType: "application/pdf",
		Data:     media.DataURL("application/pdf", content),
	}
	broken := &domain.CaseMedia{ID: "m-2", Data: "https://example.com/report.pdf"}

	app := fiber.New()
	app.Get("/ok", func(c *fiber.Ctx) error { return sendMediaContent(c, stored) })
	app.Get("/broken", func(c *fiber.Ctx) error { return sendMediaContent(c, broken) })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ok", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, content, body)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, `inline; filename="report.pdf"`, resp.Header.Get(fiber.HeaderContentDisposition))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/broken", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestUUIDParam(t *testing.T) {
	var got error
	app := fiber.New()
	app.Get("/cases/:id", func(c *fiber.Ctx) error {
		_, got = uuidParam(c, "id", "case")
		return c.SendStatus(http.StatusNoContent)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/cases/abc", nil))
	require.NoError(t, err)
	resp.Body.Close()
	de := apperrors.ToDomainError(got)
	require.NotNil(t, de)
	assert.Equal(t, "NOT_FOUND", de.Code)
	assert.Equal(t, "abc", de.Details["id"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/cases/6f1c2a7e-3b44-4a57-9a8e-0d2b1c9f0e11", nil))
	require.NoError(t, err)
	resp.Body.Close()
	assert.NoError(t, got)
}
