package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/case-service/internal/domain"
)

// DraftRepository persists durable drafts.
type DraftRepository interface {
	Create(ctx context.Context, draft *domain.Draft) error
	Update(ctx context.Context, draft *domain.Draft) error
	GetByID(ctx context.Context, id string) (*domain.Draft, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Draft, error)
	Delete(ctx context.Context, id string) error
}

type draftRepository struct {
	db DBTX
}

// NewDraftRepository returns a Postgres-backed draft store.
func NewDraftRepository(db DBTX) DraftRepository {
	return &draftRepository{db: db}
}

func (r *draftRepository) Create(ctx context.Context, draft *domain.Draft) error {
	form, saved, active, err := encodeDraftJSON(draft)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO drafts (owner_id, case_id, session_id, form, saved_blocks, active_blocks)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		draft.OwnerID,
		draft.CaseID,
		draft.SessionID,
		form,
		saved,
		active,
	).Scan(&draft.ID, &draft.CreatedAt, &draft.UpdatedAt)
}

// Update overwrites the stored snapshot; the last writer wins.
func (r *draftRepository) Update(ctx context.Context, draft *domain.Draft) error {
	form, saved, active, err := encodeDraftJSON(draft)
	if err != nil {
		return err
	}
	const query = `
        UPDATE drafts SET session_id=$1, form=$2, saved_blocks=$3, active_blocks=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`

	return r.db.QueryRow(ctx, query,
		draft.SessionID,
		form,
		saved,
		active,
		draft.ID,
	).Scan(&draft.UpdatedAt)
}

func (r *draftRepository) GetByID(ctx context.Context, id string) (*domain.Draft, error) {
	const query = `
        SELECT id, owner_id, case_id, session_id, form, saved_blocks, active_blocks, created_at, updated_at
        FROM drafts WHERE id=$1`
	return scanDraft(r.db.QueryRow(ctx, query, id))
}

func (r *draftRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Draft, error) {
	const query = `
        SELECT id, owner_id, case_id, session_id, form, saved_blocks, active_blocks, created_at, updated_at
        FROM drafts WHERE owner_id=$1 ORDER BY updated_at DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Draft
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *d)
	}
	return result, rows.Err()
}

func (r *draftRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM drafts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanDraft(row pgx.Row) (*domain.Draft, error) {
	var (
		d                   domain.Draft
		form, saved, active []byte
	)
	if err := row.Scan(
		&d.ID,
		&d.OwnerID,
		&d.CaseID,
		&d.SessionID,
		&form,
		&saved,
		&active,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(form, &d.Form); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(saved, &d.SavedBlocks); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(active, &d.ActiveBlocks); err != nil {
		return nil, err
	}
	return &d, nil
}

func encodeDraftJSON(d *domain.Draft) (form, saved, active []byte, err error) {
	if form, err = marshalJSON(d.Form); err != nil {
		return nil, nil, nil, err
	}
	savedBlocks := d.SavedBlocks
	if savedBlocks == nil {
		savedBlocks = []domain.Victim{}
	}
	if saved, err = marshalJSON(savedBlocks); err != nil {
		return nil, nil, nil, err
	}
	activeBlocks := d.ActiveBlocks
	if activeBlocks == nil {
		activeBlocks = []domain.DraftBlock{}
	}
	if active, err = marshalJSON(activeBlocks); err != nil {
		return nil, nil, nil, err
	}
	return form, saved, active, nil
}
