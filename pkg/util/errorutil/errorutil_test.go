package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainError(t *testing.T) {
	assert.Nil(t, ToDomainError(nil))

	notFound := ToDomainError(fmt.Errorf("lookup: %w", pgx.ErrNoRows))
	require.NotNil(t, notFound)
	assert.Equal(t, "NOT_FOUND", notFound.Code)
	assert.Equal(t, http.StatusNotFound, notFound.HTTPStatus)

	conflict := NewConflict("duplicate", map[string]any{"case_number": "AVA2501-00001"})
	wrapped := fmt.Errorf("create: %w", conflict)
	assert.Same(t, conflict, ToDomainError(wrapped))

	internal := ToDomainError(errors.New("boom"))
	assert.Equal(t, "INTERNAL_ERROR", internal.Code)
	assert.Equal(t, http.StatusInternalServerError, internal.HTTPStatus)
	assert.EqualError(t, internal, "internal server error: boom")
}

func TestPersistenceFailedUnwraps(t *testing.T) {
	cause := errors.New("redis down")
	err := NewPersistenceFailed("draft", cause)

	assert.ErrorIs(t, err, cause)
	de := ToDomainError(err)
	assert.Equal(t, "PERSISTENCE_FAILED", de.Code)
	assert.Equal(t, http.StatusServiceUnavailable, de.HTTPStatus)
	assert.Equal(t, "draft", de.Details["operation"])
}

func TestMalformedValueIsValidationError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`}

	de := ToDomainError(fmt.Errorf("get case: %w", pgErr))

	assert.Equal(t, "VALIDATION_FAILED", de.Code)
	assert.Equal(t, http.StatusBadRequest, de.HTTPStatus)
	assert.ErrorIs(t, de, pgErr)

	other := ToDomainError(&pgconn.PgError{Code: "23505"})
	assert.Equal(t, "INTERNAL_ERROR", other.Code)
}
