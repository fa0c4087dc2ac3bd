package service

import (
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/case-service/internal/casework"
	"github.com/spec-kit/case-service/internal/domain"
	"github.com/spec-kit/case-service/internal/repository"
	apperrors "github.com/spec-kit/case-service/pkg/util/errorutil"
)

// mapCaseworkError translates session and store errors into DomainErrors.
func mapCaseworkError(err error) error {
	if err == nil {
		return nil
	}
	var validation *casework.ValidationError
	if errors.As(err, &validation) {
		return apperrors.NewValidationError(validation.Error(), map[string]any{
			"victim_index": validation.VictimIndex,
			"block_id":     validation.BlockID,
			"fields":       validation.Fields,
		})
	}
	var persistence *casework.PersistenceError
	if errors.As(err, &persistence) {
		return apperrors.NewPersistenceFailed(persistence.Op, persistence.Err)
	}
	switch {
	case errors.Is(err, casework.ErrBlockNotFound):
		return apperrors.NewNotFound("victim block", nil)
	case errors.Is(err, casework.ErrSavedIndexOutOfRange):
		return apperrors.NewValidationError(err.Error(), nil)
	case errors.Is(err, repository.ErrLocalDraftNotFound), errors.Is(err, pgx.ErrNoRows):
		return apperrors.NewNotFound("draft", nil)
	}
	return err
}

func notFoundOr(err error, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, nil)
	}
	return err
}

// canAccessCase reports whether actor may read or edit c.
func canAccessCase(actor *domain.User, c *domain.Case) bool {
	if actor == nil {
		return false
	}
	if actor.Role.IsAdmin() {
		return true
	}
	if c.CreatedBy == actor.ID {
		return true
	}
	return c.AssignedInspectorID != nil && *c.AssignedInspectorID == actor.ID
}
