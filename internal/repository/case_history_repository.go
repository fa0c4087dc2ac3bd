package repository

import (
	"context"

	"github.com/spec-kit/case-service/internal/domain"
)

// CaseHistoryRepository records the case audit trail.
type CaseHistoryRepository interface {
	Create(ctx context.Context, entry *domain.CaseHistory) error
	ListByCase(ctx context.Context, caseID string) ([]domain.CaseHistory, error)
}

type caseHistoryRepository struct {
	db DBTX
}

// NewCaseHistoryRepository creates repository.
func NewCaseHistoryRepository(db DBTX) CaseHistoryRepository {
	return &caseHistoryRepository{db: db}
}

func (r *caseHistoryRepository) Create(ctx context.Context, entry *domain.CaseHistory) error {
	before, err := marshalNullableJSON(entry.Before)
	if err != nil {
		return err
	}
	after, err := marshalNullableJSON(entry.After)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO case_history (case_id, action, actor_id, before, after)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at`

	return r.db.QueryRow(ctx, query,
		entry.CaseID,
		entry.Action,
		entry.ActorID,
		before,
		after,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *caseHistoryRepository) ListByCase(ctx context.Context, caseID string) ([]domain.CaseHistory, error) {
	const query = `
        SELECT id, case_id, action, actor_id, before, after, created_at
        FROM case_history WHERE case_id=$1 ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, caseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CaseHistory
	for rows.Next() {
		var (
			entry         domain.CaseHistory
			before, after []byte
		)
		if err := rows.Scan(
			&entry.ID,
			&entry.CaseID,
			&entry.Action,
			&entry.ActorID,
			&before,
			&after,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		if err := unmarshalJSON(before, &entry.Before); err != nil {
			return nil, err
		}
		if err := unmarshalJSON(after, &entry.After); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
