package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/case-service/internal/domain"
)

// CaseMediaRepository manages stored attachments.
type CaseMediaRepository interface {
	Create(ctx context.Context, media *domain.CaseMedia) error
	ListByCase(ctx context.Context, caseID string) ([]domain.CaseMedia, error)
	GetByID(ctx context.Context, id string) (*domain.CaseMedia, error)
	UpdateVictimIndex(ctx context.Context, id string, index int) error
	Delete(ctx context.Context, id string) error
}

type caseMediaRepository struct {
	db DBTX
}

// NewCaseMediaRepository returns repository instance.
func NewCaseMediaRepository(db DBTX) CaseMediaRepository {
	return &caseMediaRepository{db: db}
}

func (r *caseMediaRepository) Create(ctx context.Context, media *domain.CaseMedia) error {
	const query = `
        INSERT INTO case_media (case_id, victim_index, kind, file_name, mime_type, size_bytes, data, caption, uploaded_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		media.CaseID,
		media.VictimIndex,
		media.Kind,
		media.FileName,
		media.MimeType,
		media.SizeBytes,
		media.Data,
		media.Caption,
		media.UploadedBy,
	).Scan(&media.ID, &media.CreatedAt)
}

// ListByCase omits the data column; callers fetch content by id.
func (r *caseMediaRepository) ListByCase(ctx context.Context, caseID string) ([]domain.CaseMedia, error) {
	const query = `
        SELECT id, case_id, victim_index, kind, file_name, mime_type, size_bytes, '' AS data, caption, uploaded_by, created_at
        FROM case_media WHERE case_id=$1 ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CaseMedia
	for rows.Next() {
		m, err := scanCaseMedia(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *m)
	}
	return result, rows.Err()
}

func (r *caseMediaRepository) GetByID(ctx context.Context, id string) (*domain.CaseMedia, error) {
	const query = `
        SELECT id, case_id, victim_index, kind, file_name, mime_type, size_bytes, data, caption, uploaded_by, created_at
        FROM case_media WHERE id=$1`
	return scanCaseMedia(r.db.QueryRow(ctx, query, id))
}

func (r *caseMediaRepository) UpdateVictimIndex(ctx context.Context, id string, index int) error {
	cmd, err := r.db.Exec(ctx, `UPDATE case_media SET victim_index=$2 WHERE id=$1`, id, index)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *caseMediaRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM case_media WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanCaseMedia(row pgx.Row) (*domain.CaseMedia, error) {
	var m domain.CaseMedia
	if err := row.Scan(
		&m.ID,
		&m.CaseID,
		&m.VictimIndex,
		&m.Kind,
		&m.FileName,
		&m.MimeType,
		&m.SizeBytes,
		&m.Data,
		&m.Caption,
		&m.UploadedBy,
		&m.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}
