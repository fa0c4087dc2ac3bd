package repository

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/case-service/internal/domain"
)

// HospitalRepository provides hospital reference data.
type HospitalRepository interface {
	Create(ctx context.Context, hospital *domain.Hospital) error
	Update(ctx context.Context, hospital *domain.Hospital) error
	GetByID(ctx context.Context, id string) (*domain.Hospital, error)
	List(ctx context.Context, activeOnly bool) ([]domain.Hospital, error)
}

type hospitalRepository struct {
	db DBTX
}

// NewHospitalRepository constructs the repository.
func NewHospitalRepository(db DBTX) HospitalRepository {
	return &hospitalRepository{db: db}
}

func (r *hospitalRepository) Create(ctx context.Context, hospital *domain.Hospital) error {
	const query = `
        INSERT INTO hospitals (code, name, province, active_flag)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		hospital.Code,
		hospital.Name,
		hospital.Province,
		hospital.Active,
	).Scan(&hospital.ID, &hospital.CreatedAt, &hospital.UpdatedAt)
}

func (r *hospitalRepository) Update(ctx context.Context, hospital *domain.Hospital) error {
	const query = `
        UPDATE hospitals SET code=$1, name=$2, province=$3, active_flag=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.db.Exec(ctx, query,
		hospital.Code,
		hospital.Name,
		hospital.Province,
		hospital.Active,
		hospital.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *hospitalRepository) GetByID(ctx context.Context, id string) (*domain.Hospital, error) {
	const query = `
        SELECT id, code, name, province, active_flag, created_at, updated_at
        FROM hospitals WHERE id=$1`
	var h domain.Hospital
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&h.ID, &h.Code, &h.Name, &h.Province, &h.Active, &h.CreatedAt, &h.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *hospitalRepository) List(ctx context.Context, activeOnly bool) ([]domain.Hospital, error) {
	query := `SELECT id, code, name, province, active_flag, created_at, updated_at FROM hospitals`
	if activeOnly {
		query += ` WHERE active_flag = TRUE`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Hospital
	for rows.Next() {
		var h domain.Hospital
		if err := rows.Scan(&h.ID, &h.Code, &h.Name, &h.Province, &h.Active, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, h)
	}
	return result, rows.Err()
}
