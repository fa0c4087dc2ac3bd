package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/case-service/internal/casework"
	"github.com/spec-kit/case-service/internal/domain"
	"github.com/spec-kit/case-service/internal/events"
	"github.com/spec-kit/case-service/internal/repository"
	apperrors "github.com/spec-kit/case-service/pkg/util/errorutil"
)

// NumberGenerator issues case numbers.
type NumberGenerator interface {
	Next(ctx context.Context, now time.Time) (string, error)
}

// SessionStore opens and discards authoring sessions.
type SessionStore interface {
	OpenCase(ctx context.Context, actor *domain.User, c *domain.Case) (*casework.Session, error)
	Discard(ctx context.Context, actor *domain.User, session *casework.Session) error
}

// CaseService coordinates submission and review of cases.
type CaseService struct {
	cases      repository.CaseRepository
	media      repository.CaseMediaRepository
	history    repository.CaseHistoryRepository
	users      repository.UserRepository
	hospitals  repository.HospitalRepository
	tx         repository.TxRunner
	numbers    NumberGenerator
	sessions   SessionStore
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// CaseDependencies bundles collaborators for the case service.
type CaseDependencies struct {
	CaseRepo     repository.CaseRepository
	MediaRepo    repository.CaseMediaRepository
	HistoryRepo  repository.CaseHistoryRepository
	UserRepo     repository.UserRepository
	HospitalRepo repository.HospitalRepository
	TxRunner     repository.TxRunner
	Numbers      NumberGenerator
	Sessions     SessionStore
	Dispatcher   events.Dispatcher
	Logger       *zap.Logger
	Now          func() time.Time
}

// SubmitInput carries submission options that are not part of the form.
type SubmitInput struct {
	ExternalCaseNumber *string
}

// CaseListFilter describes case listing filters.
type CaseListFilter struct {
	Statuses    []domain.CaseStatus
	HospitalID  *string
	InspectorID *string
	SearchTerm  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// VictimReviewInput is a decision on one victim.
type VictimReviewInput struct {
	Status         domain.CaseStatus
	ApprovedAmount *float64
	Comment        string
}

// NewCaseService constructs the service.
func NewCaseService(deps CaseDependencies) *CaseService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &CaseService{
		cases:      deps.CaseRepo,
		media:      deps.MediaRepo,
		history:    deps.HistoryRepo,
		users:      deps.UserRepo,
		hospitals:  deps.HospitalRepo,
		tx:         deps.TxRunner,
		numbers:    deps.Numbers,
		sessions:   deps.Sessions,
		dispatcher: deps.Dispatcher,
		logger:     logger,
		now:        now,
	}
}

// Submit turns a session into a stored case with its media. The case row, its
// media rows and the history entry are written in one transaction; the draft is
// discarded only after that commits.
func (s *CaseService) Submit(ctx context.Context, actor *domain.User, session *casework.Session, input SubmitInput) (*domain.Case, error) {
	victims, err := session.CollectAll()
	if err != nil {
		return nil, mapCaseworkError(err)
	}
	if len(victims) == 0 && actor.Role == domain.RoleInspector {
		return nil, apperrors.NewValidationError("at least one victim is required", map[string]any{
			"fields": []string{"victims"},
		})
	}
	for i, v := range victims {
		if missing := casework.ValidateForSubmit(v); len(missing) > 0 {
			return nil, mapCaseworkError(&casework.ValidationError{BlockID: v.LocalID, VictimIndex: i, Fields: missing})
		}
	}
	if err := s.checkHospital(ctx, session.Form.HospitalID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	var (
		c       *domain.Case
		before  map[string]any
		created bool
	)
	if session.EditingCase() {
		existing, err := s.cases.GetByID(ctx, *session.CaseID)
		if err != nil {
			return nil, notFoundOr(err, "case")
		}
		if !canAccessCase(actor, existing) {
			return nil, apperrors.NewForbidden("case not accessible")
		}
		if err := checkEditable(actor, existing); err != nil {
			return nil, err
		}
		before = caseSnapshot(existing)
		c = existing
		if actor.Role == domain.RoleInspector {
			c.Status = domain.StatusInspected
		}
	} else {
		number, err := s.numbers.Next(ctx, now)
		if err != nil {
			return nil, err
		}
		c = &domain.Case{CaseNumber: number, Status: domain.StatusNew, CreatedBy: actor.ID}
		created = true
	}

	applyForm(c, session.Form, input)
	c.Victims = victims
	c.PrimaryVictimName, c.PrimaryVictimIDNumber = "", ""
	if len(victims) > 0 {
		c.PrimaryVictimName = victims[0].Name
		c.PrimaryVictimIDNumber = victims[0].IDNumber
	}
	c.SubmittedAt = &now

	var (
		mediaCount   int
		removedMedia []domain.CaseMedia
	)
	err = s.tx.WithinTx(ctx, func(store repository.CaseStore) error {
		if created {
			if err := store.Cases.Create(ctx, c); err != nil {
				return err
			}
		} else if err := store.Cases.Update(ctx, c); err != nil {
			return err
		}

		stored, n, err := persistAttachments(ctx, store.Media, c.ID, actor.ID, c.Victims)
		if err != nil {
			return err
		}
		mediaCount = n
		if n > 0 {
			c.Victims = stored
			if err := store.Cases.Update(ctx, c); err != nil {
				return err
			}
		}
		if !created {
			if removedMedia, err = reconcileMedia(ctx, store, c, actor.ID); err != nil {
				return err
			}
		}

		action := domain.HistoryUpdated
		if created {
			action = domain.HistoryCreated
		}
		return store.History.Create(ctx, &domain.CaseHistory{
			CaseID:  c.ID,
			Action:  action,
			ActorID: &actor.ID,
			Before:  before,
			After:   caseSnapshot(c),
		})
	})
	if err != nil {
		return nil, err
	}

	if s.sessions != nil {
		if err := s.sessions.Discard(ctx, actor, session); err != nil {
			s.logger.Warn("discard draft after submit failed",
				zap.String("case_id", c.ID),
				zap.String("session_id", session.ID),
				zap.Error(err))
		}
	}

	for _, m := range removedMedia {
		s.publishEvent(ctx, events.Event{
			Type:    events.EventMediaDeleted,
			CaseID:  c.ID,
			ActorID: actor.ID,
			Payload: events.MediaDeletedPayload{MediaID: m.ID, Kind: m.Kind, FileName: m.FileName},
		})
	}

	eventType := events.EventCaseUpdated
	if created {
		eventType = events.EventCaseSubmitted
	}
	s.publishEvent(ctx, events.Event{
		Type:    eventType,
		CaseID:  c.ID,
		ActorID: actor.ID,
		Payload: events.CaseSubmittedPayload{
			CaseNumber:  c.CaseNumber,
			HospitalID:  c.HospitalID,
			VictimCount: len(c.Victims),
			MediaCount:  mediaCount,
		},
	})
	return c, nil
}

// OpenEditSession starts an in-place edit of a stored case.
func (s *CaseService) OpenEditSession(ctx context.Context, actor *domain.User, caseID string) (*casework.Session, error) {
	c, err := s.Get(ctx, actor, caseID)
	if err != nil {
		return nil, err
	}
	if err := checkEditable(actor, c); err != nil {
		return nil, err
	}
	return s.sessions.OpenCase(ctx, actor, c)
}

// checkEditable reports whether actor may rewrite the case. Closed cases are
// frozen; an inspector's rewrite moves the case to inspected, so it is only
// allowed from statuses the workflow lets return there.
func checkEditable(actor *domain.User, c *domain.Case) error {
	if c.Status.Terminal() {
		return apperrors.NewConflict("case is closed", map[string]any{"case_id": c.ID})
	}
	if actor.Role == domain.RoleInspector && !isAllowedTransition(c.Status, domain.StatusInspected) {
		return apperrors.NewConflict("case is under review", map[string]any{
			"case_id": c.ID,
			"status":  c.Status,
		})
	}
	return nil
}

// Review applies an admin decision to the case status.
func (s *CaseService) Review(ctx context.Context, actor *domain.User, caseID string, action domain.ReviewAction, comment string) (*domain.Case, error) {
	if !actor.Role.IsAdmin() {
		return nil, apperrors.NewForbidden("admin role required")
	}
	target, ok := action.TargetStatus()
	if !ok {
		return nil, apperrors.NewValidationError("unknown review action", map[string]any{"action": action})
	}
	c, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, notFoundOr(err, "case")
	}
	if !isAllowedTransition(c.Status, target) {
		return nil, apperrors.NewConflict("status transition not allowed", map[string]any{
			"from": c.Status,
			"to":   target,
		})
	}

	oldStatus := c.Status
	c.Status = target
	err = s.tx.WithinTx(ctx, func(store repository.CaseStore) error {
		if err := store.Cases.Update(ctx, c); err != nil {
			return err
		}
		after := map[string]any{"status": target, "action": action}
		if comment = strings.TrimSpace(comment); comment != "" {
			after["comment"] = comment
		}
		return store.History.Create(ctx, &domain.CaseHistory{
			CaseID:  c.ID,
			Action:  domain.HistoryStatusChanged,
			ActorID: &actor.ID,
			Before:  map[string]any{"status": oldStatus},
			After:   after,
		})
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventCaseStatusChanged,
		CaseID:  c.ID,
		ActorID: actor.ID,
		Payload: events.CaseStatusChangedPayload{
			CaseNumber: c.CaseNumber,
			OldStatus:  oldStatus,
			NewStatus:  target,
			Comment:    comment,
		},
	})
	return c, nil
}

// ReviewVictim records a decision or comment on one victim. Inspectors may only
// comment; admins also set the victim status and approved amount.
func (s *CaseService) ReviewVictim(ctx context.Context, actor *domain.User, caseID string, index int, input VictimReviewInput) (*domain.Case, error) {
	c, err := s.Get(ctx, actor, caseID)
	if err != nil {
		return nil, err
	}
	if c.Status.Terminal() {
		return nil, apperrors.NewConflict("case is closed", map[string]any{"case_id": c.ID})
	}
	if index < 0 || index >= len(c.Victims) {
		return nil, apperrors.NewValidationError("victim index out of range", map[string]any{"victim_index": index})
	}

	v := &c.Victims[index]
	oldStatus := v.Status
	comment := strings.TrimSpace(input.Comment)

	if !actor.Role.IsAdmin() {
		if input.Status != "" || input.ApprovedAmount != nil {
			return nil, apperrors.NewForbidden("admin role required")
		}
		if comment != "" {
			v.InspectorComment = comment
		}
	} else {
		if input.Status != "" {
			if !input.Status.IsVictimStatus() {
				return nil, apperrors.NewValidationError("invalid victim status", map[string]any{"status": input.Status})
			}
			v.Status = input.Status
		}
		if input.ApprovedAmount != nil {
			if *input.ApprovedAmount < 0 {
				return nil, apperrors.NewValidationError("approved amount must not be negative", nil)
			}
			if v.Status != domain.StatusApproved {
				return nil, apperrors.NewValidationError("approved amount requires approved status", nil)
			}
			amount := *input.ApprovedAmount
			v.ApprovedAmount = &amount
		}
		if comment != "" {
			v.AdminComment = comment
		}
	}

	err = s.tx.WithinTx(ctx, func(store repository.CaseStore) error {
		if err := store.Cases.Update(ctx, c); err != nil {
			return err
		}
		after := map[string]any{"victim_index": index, "status": v.Status}
		if v.ApprovedAmount != nil {
			after["approved_amount"] = *v.ApprovedAmount
		}
		if comment != "" {
			after["comment"] = comment
		}
		return store.History.Create(ctx, &domain.CaseHistory{
			CaseID:  c.ID,
			Action:  domain.HistoryVictimReviewed,
			ActorID: &actor.ID,
			Before:  map[string]any{"victim_index": index, "status": oldStatus},
			After:   after,
		})
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventVictimReviewed,
		CaseID:  c.ID,
		ActorID: actor.ID,
		Payload: events.VictimReviewedPayload{VictimIndex: index, OldStatus: oldStatus, NewStatus: v.Status},
	})
	return c, nil
}

// AssignInspector sets or clears the inspector responsible for a case.
func (s *CaseService) AssignInspector(ctx context.Context, actor *domain.User, caseID string, inspectorID *string) (*domain.Case, error) {
	if !actor.Role.IsAdmin() {
		return nil, apperrors.NewForbidden("admin role required")
	}
	if inspectorID != nil && *inspectorID == "" {
		inspectorID = nil
	}
	if inspectorID != nil {
		inspector, err := s.users.GetByID(ctx, *inspectorID)
		if err != nil {
			return nil, notFoundOr(err, "inspector")
		}
		if inspector.Role != domain.RoleInspector || !inspector.Active {
			return nil, apperrors.NewValidationError("assignee must be an active inspector", map[string]any{"inspector_id": *inspectorID})
		}
	}

	c, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, notFoundOr(err, "case")
	}
	before := map[string]any{"assigned_inspector_id": c.AssignedInspectorID}
	c.AssignedInspectorID = inspectorID

	err = s.tx.WithinTx(ctx, func(store repository.CaseStore) error {
		if err := store.Cases.Update(ctx, c); err != nil {
			return err
		}
		return store.History.Create(ctx, &domain.CaseHistory{
			CaseID:  c.ID,
			Action:  domain.HistoryAssigned,
			ActorID: &actor.ID,
			Before:  before,
			After:   map[string]any{"assigned_inspector_id": inspectorID},
		})
	})
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventCaseAssigned,
		CaseID:  c.ID,
		ActorID: actor.ID,
		Payload: events.CaseAssignedPayload{InspectorID: inspectorID},
	})
	return c, nil
}

// Get fetches a case the actor may see.
func (s *CaseService) Get(ctx context.Context, actor *domain.User, caseID string) (*domain.Case, error) {
	c, err := s.cases.GetByID(ctx, caseID)
	if err != nil {
		return nil, notFoundOr(err, "case")
	}
	if !canAccessCase(actor, c) {
		return nil, apperrors.NewForbidden("case not accessible")
	}
	return c, nil
}

// List returns cases visible to the actor.
func (s *CaseService) List(ctx context.Context, actor *domain.User, filter CaseListFilter) ([]domain.Case, error) {
	repoFilter := repository.CaseFilter{
		Statuses:    filter.Statuses,
		HospitalID:  filter.HospitalID,
		InspectorID: filter.InspectorID,
		SearchTerm:  filter.SearchTerm,
		CreatedFrom: filter.CreatedFrom,
		CreatedTo:   filter.CreatedTo,
		Limit:       filter.Limit,
		Offset:      filter.Offset,
	}
	if !actor.Role.IsAdmin() {
		repoFilter.VisibleTo = &actor.ID
	}
	return s.cases.List(ctx, repoFilter)
}

// ListHistory returns the audit trail of a case.
func (s *CaseService) ListHistory(ctx context.Context, actor *domain.User, caseID string) ([]domain.CaseHistory, error) {
	if _, err := s.Get(ctx, actor, caseID); err != nil {
		return nil, err
	}
	return s.history.ListByCase(ctx, caseID)
}

// ListMedia returns attachment metadata of a case.
func (s *CaseService) ListMedia(ctx context.Context, actor *domain.User, caseID string) ([]domain.CaseMedia, error) {
	if _, err := s.Get(ctx, actor, caseID); err != nil {
		return nil, err
	}
	return s.media.ListByCase(ctx, caseID)
}

// GetMedia returns one attachment including its content.
func (s *CaseService) GetMedia(ctx context.Context, actor *domain.User, caseID, mediaID string) (*domain.CaseMedia, error) {
	if _, err := s.Get(ctx, actor, caseID); err != nil {
		return nil, err
	}
	m, err := s.media.GetByID(ctx, mediaID)
	if err != nil {
		return nil, notFoundOr(err, "media")
	}
	if m.CaseID != caseID {
		return nil, apperrors.NewNotFound("media", map[string]any{"id": mediaID})
	}
	return m, nil
}

// DeleteMedia removes a stored attachment and its reference on the victim.
func (s *CaseService) DeleteMedia(ctx context.Context, actor *domain.User, caseID, mediaID string) error {
	c, err := s.Get(ctx, actor, caseID)
	if err != nil {
		return err
	}
	if c.Status.Terminal() {
		return apperrors.NewConflict("case is closed", map[string]any{"case_id": c.ID})
	}
	m, err := s.media.GetByID(ctx, mediaID)
	if err != nil {
		return notFoundOr(err, "media")
	}
	if m.CaseID != caseID {
		return apperrors.NewNotFound("media", map[string]any{"id": mediaID})
	}

	err = s.tx.WithinTx(ctx, func(store repository.CaseStore) error {
		if err := store.Media.Delete(ctx, mediaID); err != nil {
			return err
		}
		if victims, removed := withoutAttachment(c.Victims, mediaID); removed {
			c.Victims = victims
			if err := store.Cases.Update(ctx, c); err != nil {
				return err
			}
		}
		return store.History.Create(ctx, &domain.CaseHistory{
			CaseID:  c.ID,
			Action:  domain.HistoryMediaDeleted,
			ActorID: &actor.ID,
			Before: map[string]any{
				"media_id":     m.ID,
				"kind":         m.Kind,
				"file_name":    m.FileName,
				"victim_index": m.VictimIndex,
			},
		})
	})
	if err != nil {
		return notFoundOr(err, "media")
	}

	s.publishEvent(ctx, events.Event{
		Type:    events.EventMediaDeleted,
		CaseID:  c.ID,
		ActorID: actor.ID,
		Payload: events.MediaDeletedPayload{MediaID: m.ID, Kind: m.Kind, FileName: m.FileName},
	})
	return nil
}

func (s *CaseService) checkHospital(ctx context.Context, hospitalID string) error {
	if hospitalID == "" || s.hospitals == nil {
		return nil
	}
	h, err := s.hospitals.GetByID(ctx, hospitalID)
	if err != nil {
		return notFoundOr(err, "hospital")
	}
	if !h.Active {
		return apperrors.NewValidationError("hospital inactive", map[string]any{"hospital_id": hospitalID})
	}
	return nil
}

func (s *CaseService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Debug("event delivered with failures", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

// persistAttachments writes one CaseMedia row per attachment not stored yet and
// returns a copy of victims pointing at the stored rows. The input is not modified.
func persistAttachments(ctx context.Context, repo repository.CaseMediaRepository, caseID, uploaderID string, victims []domain.Victim) ([]domain.Victim, int, error) {
	out := make([]domain.Victim, len(victims))
	created := 0
	for i, v := range victims {
		for _, kind := range domain.MediaKinds {
			items := v.AttachmentsOf(kind)
			if len(items) == 0 {
				continue
			}
			stored := make([]domain.Attachment, len(items))
			for j, att := range items {
				if att.Persisted {
					stored[j] = att
					continue
				}
				victimIndex := i
				record := &domain.CaseMedia{
					CaseID:      caseID,
					VictimIndex: &victimIndex,
					Kind:        kind,
					FileName:    att.FileName,
					MimeType:    att.MimeType,
					SizeBytes:   att.SizeBytes,
					Data:        att.Data,
					Caption:     att.Caption,
					UploadedBy:  uploaderID,
				}
				if err := repo.Create(ctx, record); err != nil {
					return nil, 0, err
				}
				created++
				att.ID = record.ID
				att.Kind = kind
				att.Data = ""
				att.Persisted = true
				stored[j] = att
			}
			v.SetAttachments(kind, stored)
		}
		out[i] = v
	}
	return out, created, nil
}

// reconcileMedia aligns the stored media rows of an edited case with its victims.
// Rows follow their victim to its current index; rows no victim references any
// more are deleted and recorded in the history.
func reconcileMedia(ctx context.Context, store repository.CaseStore, c *domain.Case, actorID string) ([]domain.CaseMedia, error) {
	owner := make(map[string]int)
	for i, v := range c.Victims {
		for _, kind := range domain.MediaKinds {
			for _, att := range v.AttachmentsOf(kind) {
				owner[att.ID] = i
			}
		}
	}

	rows, err := store.Media.ListByCase(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	var removed []domain.CaseMedia
	for _, m := range rows {
		if m.VictimIndex == nil {
			continue
		}
		index, kept := owner[m.ID]
		if kept {
			if *m.VictimIndex != index {
				if err := store.Media.UpdateVictimIndex(ctx, m.ID, index); err != nil {
					return nil, err
				}
			}
			continue
		}
		if err := store.Media.Delete(ctx, m.ID); err != nil {
			return nil, err
		}
		if err := store.History.Create(ctx, &domain.CaseHistory{
			CaseID:  c.ID,
			Action:  domain.HistoryMediaDeleted,
			ActorID: &actorID,
			Before: map[string]any{
				"media_id":     m.ID,
				"kind":         m.Kind,
				"file_name":    m.FileName,
				"victim_index": *m.VictimIndex,
			},
		}); err != nil {
			return nil, err
		}
		removed = append(removed, m)
	}
	return removed, nil
}

func withoutAttachment(victims []domain.Victim, mediaID string) ([]domain.Victim, bool) {
	out := make([]domain.Victim, len(victims))
	removed := false
	for i, v := range victims {
		for _, kind := range domain.MediaKinds {
			items := v.AttachmentsOf(kind)
			kept := make([]domain.Attachment, 0, len(items))
			for _, att := range items {
				if att.ID == mediaID {
					removed = true
					continue
				}
				kept = append(kept, att)
			}
			if len(kept) != len(items) {
				v.SetAttachments(kind, kept)
			}
		}
		out[i] = v
	}
	return out, removed
}

func applyForm(c *domain.Case, form domain.CaseForm, input SubmitInput) {
	c.HospitalID = form.HospitalID
	c.Accident = form.Accident
	c.Vehicle = form.Vehicle
	c.Notes = strings.TrimSpace(form.Notes)

	external := strings.TrimSpace(form.ExternalCaseNumber)
	if input.ExternalCaseNumber != nil {
		external = strings.TrimSpace(*input.ExternalCaseNumber)
	}
	c.ExternalCaseNumber = nil
	if external != "" {
		c.ExternalCaseNumber = &external
	}
}

func caseSnapshot(c *domain.Case) map[string]any {
	var claimTotal float64
	for _, v := range c.Victims {
		if v.ClaimAmount != nil {
			claimTotal += *v.ClaimAmount
		}
	}
	snapshot := map[string]any{
		"case_number":         c.CaseNumber,
		"status":              c.Status,
		"hospital_id":         c.HospitalID,
		"victim_count":        len(c.Victims),
		"primary_victim_name": c.PrimaryVictimName,
		"claim_total":         claimTotal,
	}
	if c.ExternalCaseNumber != nil {
		snapshot["external_case_number"] = *c.ExternalCaseNumber
	}
	return snapshot
}

// allowedTransitions lists review decisions and, as StatusInspected, the statuses
// an inspector may re-submit from.
var allowedTransitions = map[domain.CaseStatus][]domain.CaseStatus{
	domain.StatusNew: {
		domain.StatusInspected, domain.StatusPendingRevision, domain.StatusPendingConsideration, domain.StatusRejected, domain.StatusClosed,
	},
	domain.StatusInspected: {
		domain.StatusInspected, domain.StatusPendingRevision, domain.StatusPendingConsideration, domain.StatusDataVerification,
		domain.StatusApproved, domain.StatusRejected, domain.StatusClosed,
	},
	domain.StatusPendingRevision: {
		domain.StatusInspected, domain.StatusPendingConsideration, domain.StatusRejected, domain.StatusClosed,
	},
	domain.StatusPendingConsideration: {
		domain.StatusPendingRevision, domain.StatusDataVerification, domain.StatusApproved,
		domain.StatusRejected, domain.StatusClosed,
	},
	domain.StatusDataVerification: {
		domain.StatusPendingRevision, domain.StatusApproved, domain.StatusRejected, domain.StatusClosed,
	},
	domain.StatusApproved: {domain.StatusClosed},
	domain.StatusRejected: {domain.StatusPendingConsideration, domain.StatusClosed},
}

func isAllowedTransition(current, next domain.CaseStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
