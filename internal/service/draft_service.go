package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/case-service/internal/casework"
	"github.com/spec-kit/case-service/internal/domain"
	"github.com/spec-kit/case-service/internal/media"
	"github.com/spec-kit/case-service/internal/observability"
	"github.com/spec-kit/case-service/internal/repository"
	apperrors "github.com/spec-kit/case-service/pkg/util/errorutil"
)

const (
	caseHandlePrefix  = "case:"
	localHandlePrefix = "local:"
)

// DraftRef names the record a session is stored in. Exactly one field is set.
type DraftRef struct {
	DraftID   string
	CaseID    string
	SessionID string
}

// Handle renders the ref as an opaque path segment.
func (r DraftRef) Handle() string {
	switch {
	case r.DraftID != "":
		return r.DraftID
	case r.CaseID != "":
		return caseHandlePrefix + r.CaseID
	default:
		return localHandlePrefix + r.SessionID
	}
}

// ParseDraftHandle is the inverse of DraftRef.Handle.
func ParseDraftHandle(handle string) (DraftRef, error) {
	handle = strings.TrimSpace(handle)
	switch {
	case strings.HasPrefix(handle, caseHandlePrefix):
		if id := strings.TrimPrefix(handle, caseHandlePrefix); id != "" {
			return DraftRef{CaseID: id}, nil
		}
	case strings.HasPrefix(handle, localHandlePrefix):
		if id := strings.TrimPrefix(handle, localHandlePrefix); id != "" {
			return DraftRef{SessionID: id}, nil
		}
	case handle != "":
		return DraftRef{DraftID: handle}, nil
	}
	return DraftRef{}, apperrors.NewValidationError("invalid draft handle", map[string]any{"handle": handle})
}

// RefOf returns where session is currently stored.
func RefOf(s *casework.Session) DraftRef {
	switch {
	case s.EditingCase():
		return DraftRef{CaseID: *s.CaseID}
	case s.DraftID != nil:
		return DraftRef{DraftID: *s.DraftID}
	default:
		return DraftRef{SessionID: s.ID}
	}
}

// DraftService snapshots and restores authoring sessions.
type DraftService struct {
	drafts  repository.DraftRepository
	local   repository.LocalDraftStore
	limits  media.Limits
	logger  *zap.Logger
	metrics *observability.Metrics
}

// DraftDependencies bundles collaborators for the draft service.
type DraftDependencies struct {
	DraftRepo  repository.DraftRepository
	LocalStore repository.LocalDraftStore
	Limits     media.Limits
	Logger     *zap.Logger
	Metrics    *observability.Metrics
}

// NewDraftService constructs the service.
func NewDraftService(deps DraftDependencies) *DraftService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftService{
		drafts:  deps.DraftRepo,
		local:   deps.LocalStore,
		limits:  deps.Limits,
		logger:  logger,
		metrics: deps.Metrics,
	}
}

func (s *DraftService) sessionOptions() casework.Options {
	return casework.Options{
		Limits: s.limits,
		OnBlockReady: func(b *casework.Block) {
			s.logger.Debug("victim block ready", zap.String("block_id", b.ID))
		},
		OnBlockSaved: func(session *casework.Session) {
			s.recordEvent("victim_block_saved")
		},
		OnReconcile: func(blockID, reason string) {
			s.logger.Info("draft entry dropped on restore",
				zap.String("block_id", blockID),
				zap.String("reason", reason))
			s.recordEvent("draft_reconciled")
		},
	}
}

func (s *DraftService) recordEvent(name string) {
	if s.metrics != nil {
		s.metrics.RecordEvent(name)
	}
}

// Start opens a new authoring session. Unless local is set the draft is stored
// durably right away.
func (s *DraftService) Start(ctx context.Context, actor *domain.User, form domain.CaseForm, local bool) (*casework.Session, error) {
	session := casework.NewSession(uuid.NewString(), s.sessionOptions())
	session.OwnerID = actor.ID
	session.Form = form
	if _, err := s.Snapshot(ctx, actor, session, !local); err != nil {
		return nil, err
	}
	return session, nil
}

// OpenCase starts or resumes an in-place edit of a stored case.
func (s *DraftService) OpenCase(ctx context.Context, actor *domain.User, c *domain.Case) (*casework.Session, error) {
	caseID := c.ID
	stored, err := s.local.Load(ctx, caseLocalKey(caseID, actor.ID))
	switch {
	case err == nil:
		return casework.Restore(*stored, s.sessionOptions()), nil
	case !errors.Is(err, repository.ErrLocalDraftNotFound):
		return nil, mapCaseworkError(&casework.PersistenceError{Op: "load draft", Err: err})
	}

	session := casework.Restore(domain.Draft{
		OwnerID:     actor.ID,
		CaseID:      &caseID,
		SessionID:   uuid.NewString(),
		Form:        c.Form(),
		SavedBlocks: c.Victims,
	}, s.sessionOptions())
	if _, err := s.Snapshot(ctx, actor, session, false); err != nil {
		return nil, err
	}
	return session, nil
}

// Snapshot writes session to its record. Sessions editing a case always go to a
// local record keyed by the case; sessions with a durable draft overwrite it;
// otherwise an explicit save creates a durable draft and an implicit one stays
// local. A failed write leaves the session untouched.
func (s *DraftService) Snapshot(ctx context.Context, actor *domain.User, session *casework.Session, explicit bool) (DraftRef, error) {
	if session.OwnerID == "" {
		session.OwnerID = actor.ID
	}
	draft := session.Snapshot()

	switch {
	case session.EditingCase():
		if err := s.local.Save(ctx, localKey(session), &draft); err != nil {
			return DraftRef{}, mapCaseworkError(&casework.PersistenceError{Op: "save draft", Err: err})
		}
	case session.DraftID != nil:
		if err := s.drafts.Update(ctx, &draft); err != nil {
			return DraftRef{}, mapCaseworkError(&casework.PersistenceError{Op: "save draft", Err: err})
		}
	case explicit:
		if err := s.drafts.Create(ctx, &draft); err != nil {
			return DraftRef{}, mapCaseworkError(&casework.PersistenceError{Op: "save draft", Err: err})
		}
		id := draft.ID
		session.DraftID = &id
		// the local copy is superseded by the durable draft
		if err := s.local.Discard(ctx, sessionLocalKey(session.OwnerID, session.ID)); err != nil {
			s.logger.Warn("discard superseded local draft failed", zap.String("session_id", session.ID), zap.Error(err))
		}
	default:
		if err := s.local.Save(ctx, localKey(session), &draft); err != nil {
			return DraftRef{}, mapCaseworkError(&casework.PersistenceError{Op: "save draft", Err: err})
		}
	}
	s.recordEvent("draft_snapshot")
	return RefOf(session), nil
}

// Restore loads the session stored under ref.
func (s *DraftService) Restore(ctx context.Context, actor *domain.User, ref DraftRef) (*casework.Session, error) {
	var (
		draft *domain.Draft
		err   error
	)
	switch {
	case ref.DraftID != "":
		draft, err = s.drafts.GetByID(ctx, ref.DraftID)
		if err == nil && draft.OwnerID != actor.ID {
			return nil, apperrors.NewNotFound("draft", map[string]any{"id": ref.DraftID})
		}
	case ref.CaseID != "":
		draft, err = s.local.Load(ctx, caseLocalKey(ref.CaseID, actor.ID))
	case ref.SessionID != "":
		draft, err = s.local.Load(ctx, sessionLocalKey(actor.ID, ref.SessionID))
	default:
		return nil, apperrors.NewValidationError("draft reference required", nil)
	}
	if err != nil {
		return nil, mapCaseworkError(err)
	}
	return casework.Restore(*draft, s.sessionOptions()), nil
}

// Mutate restores the session under ref, applies fn and stores the result. The
// stored record is left alone when fn fails.
func (s *DraftService) Mutate(ctx context.Context, actor *domain.User, ref DraftRef, fn func(*casework.Session) error) (*casework.Session, error) {
	session, err := s.Restore(ctx, actor, ref)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, mapCaseworkError(err)
	}
	if _, err := s.Snapshot(ctx, actor, session, false); err != nil {
		return nil, err
	}
	return session, nil
}

// Discard removes every record held for session.
func (s *DraftService) Discard(ctx context.Context, _ *domain.User, session *casework.Session) error {
	var errs []error
	if session.DraftID != nil {
		if err := s.drafts.Delete(ctx, *session.DraftID); err != nil && !errors.Is(err, pgx.ErrNoRows) {
			errs = append(errs, err)
		}
	}
	if err := s.local.Discard(ctx, localKey(session)); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return &casework.PersistenceError{Op: "discard draft", Err: errors.Join(errs...)}
	}
	return nil
}

// DiscardRef restores then discards the session under ref.
func (s *DraftService) DiscardRef(ctx context.Context, actor *domain.User, ref DraftRef) error {
	session, err := s.Restore(ctx, actor, ref)
	if err != nil {
		return err
	}
	return mapCaseworkError(s.Discard(ctx, actor, session))
}

// List returns the caller's durable drafts.
func (s *DraftService) List(ctx context.Context, actor *domain.User) ([]domain.Draft, error) {
	return s.drafts.ListByOwner(ctx, actor.ID)
}

func localKey(session *casework.Session) string {
	if session.EditingCase() {
		return caseLocalKey(*session.CaseID, session.OwnerID)
	}
	return sessionLocalKey(session.OwnerID, session.ID)
}

func caseLocalKey(caseID, ownerID string) string {
	return "case:" + caseID + ":" + ownerID
}

func sessionLocalKey(ownerID, sessionID string) string {
	return "session:" + ownerID + ":" + sessionID
}
