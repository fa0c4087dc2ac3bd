package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/case-service/internal/domain"
)

// CaseFilter captures case search parameters.
type CaseFilter struct {
	Statuses    []domain.CaseStatus
	HospitalID  *string
	CreatedBy   *string
	InspectorID *string
	// VisibleTo limits results to cases created by or assigned to this user.
	VisibleTo   *string
	SearchTerm  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// CaseRepository encapsulates case persistence.
type CaseRepository interface {
	Create(ctx context.Context, c *domain.Case) error
	Update(ctx context.Context, c *domain.Case) error
	GetByID(ctx context.Context, id string) (*domain.Case, error)
	ExistsCaseNumber(ctx context.Context, number string) (bool, error)
	CountCaseNumbers(ctx context.Context, prefix string) (int64, error)
	List(ctx context.Context, filter CaseFilter) ([]domain.Case, error)
}

type caseRepository struct {
	db DBTX
}

// NewCaseRepository instantiates repository.
func NewCaseRepository(db DBTX) CaseRepository {
	return &caseRepository{db: db}
}

const caseColumns = `id, case_number, external_case_number, status, COALESCE(hospital_id::text, '') AS hospital_id, accident, vehicle, notes,
               primary_victim_name, primary_victim_id_number, victims, created_by, assigned_inspector_id,
               created_at, updated_at, submitted_at`

func (r *caseRepository) Create(ctx context.Context, c *domain.Case) error {
	accident, vehicle, victims, err := encodeCaseJSON(c)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO cases (case_number, external_case_number, status, hospital_id, accident, vehicle, notes,
            primary_victim_name, primary_victim_id_number, victims, created_by, assigned_inspector_id, submitted_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING id, created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		c.CaseNumber,
		c.ExternalCaseNumber,
		c.Status,
		nullableString(c.HospitalID),
		accident,
		vehicle,
		c.Notes,
		c.PrimaryVictimName,
		c.PrimaryVictimIDNumber,
		victims,
		c.CreatedBy,
		c.AssignedInspectorID,
		c.SubmittedAt,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *caseRepository) Update(ctx context.Context, c *domain.Case) error {
	accident, vehicle, victims, err := encodeCaseJSON(c)
	if err != nil {
		return err
	}
	const query = `
        UPDATE cases SET external_case_number=$1, status=$2, hospital_id=$3, accident=$4, vehicle=$5, notes=$6,
            primary_victim_name=$7, primary_victim_id_number=$8, victims=$9, assigned_inspector_id=$10,
            submitted_at=$11, updated_at=NOW()
        WHERE id=$12
        RETURNING updated_at`
	err = r.db.QueryRow(ctx, query,
		c.ExternalCaseNumber,
		c.Status,
		nullableString(c.HospitalID),
		accident,
		vehicle,
		c.Notes,
		c.PrimaryVictimName,
		c.PrimaryVictimIDNumber,
		victims,
		c.AssignedInspectorID,
		c.SubmittedAt,
		c.ID,
	).Scan(&c.UpdatedAt)
	return err
}

func (r *caseRepository) GetByID(ctx context.Context, id string) (*domain.Case, error) {
	query := `SELECT ` + caseColumns + ` FROM cases WHERE id=$1`
	return scanCase(r.db.QueryRow(ctx, query, id))
}

func (r *caseRepository) ExistsCaseNumber(ctx context.Context, number string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM cases WHERE case_number=$1)`
	var exists bool
	if err := r.db.QueryRow(ctx, query, number).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *caseRepository) CountCaseNumbers(ctx context.Context, prefix string) (int64, error) {
	const query = `SELECT COUNT(*) FROM cases WHERE case_number LIKE $1`
	var count int64
	if err := r.db.QueryRow(ctx, query, escapeLike(prefix)+"%").Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *caseRepository) List(ctx context.Context, filter CaseFilter) ([]domain.Case, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.HospitalID != nil {
		args = append(args, *filter.HospitalID)
		clauses = append(clauses, fmt.Sprintf("hospital_id=$%d", len(args)))
	}
	if filter.CreatedBy != nil {
		args = append(args, *filter.CreatedBy)
		clauses = append(clauses, fmt.Sprintf("created_by=$%d", len(args)))
	}
	if filter.InspectorID != nil {
		args = append(args, *filter.InspectorID)
		clauses = append(clauses, fmt.Sprintf("assigned_inspector_id=$%d", len(args)))
	}
	if filter.VisibleTo != nil {
		args = append(args, *filter.VisibleTo)
		p := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(created_by=%s OR assigned_inspector_id=%s)", p, p))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(escapeLike(strings.TrimSpace(*filter.SearchTerm))) + "%"
		args = append(args, search)
		p := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf(
			"(LOWER(case_number) LIKE %s OR LOWER(COALESCE(external_case_number,'')) LIKE %s OR LOWER(primary_victim_name) LIKE %s OR primary_victim_id_number LIKE %s)",
			p, p, p, p))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM cases WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		caseColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}

func scanCase(row pgx.Row) (*domain.Case, error) {
	var (
		c                            domain.Case
		accident, vehicle, victimsJS []byte
	)
	if err := row.Scan(
		&c.ID,
		&c.CaseNumber,
		&c.ExternalCaseNumber,
		&c.Status,
		&c.HospitalID,
		&accident,
		&vehicle,
		&c.Notes,
		&c.PrimaryVictimName,
		&c.PrimaryVictimIDNumber,
		&victimsJS,
		&c.CreatedBy,
		&c.AssignedInspectorID,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.SubmittedAt,
	); err != nil {
		return nil, err
	}
	if err := unmarshalJSON(accident, &c.Accident); err != nil {
		return nil, fmt.Errorf("decode accident: %w", err)
	}
	if err := unmarshalJSON(vehicle, &c.Vehicle); err != nil {
		return nil, fmt.Errorf("decode vehicle: %w", err)
	}
	if err := unmarshalJSON(victimsJS, &c.Victims); err != nil {
		return nil, fmt.Errorf("decode victims: %w", err)
	}
	return &c, nil
}

func encodeCaseJSON(c *domain.Case) (accident, vehicle, victims []byte, err error) {
	if accident, err = marshalJSON(c.Accident); err != nil {
		return nil, nil, nil, err
	}
	if vehicle, err = marshalJSON(c.Vehicle); err != nil {
		return nil, nil, nil, err
	}
	list := c.Victims
	if list == nil {
		list = []domain.Victim{}
	}
	if victims, err = marshalJSON(list); err != nil {
		return nil, nil, nil, err
	}
	return accident, vehicle, victims, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
