package repository

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxBeginner can open a transaction.
type TxBeginner interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// CaseStore bundles the repositories written together when a case changes.
type CaseStore struct {
	Cases   CaseRepository
	Media   CaseMediaRepository
	History CaseHistoryRepository
}

// NewCaseStore binds the case repositories to db.
func NewCaseStore(db DBTX) CaseStore {
	return CaseStore{
		Cases:   NewCaseRepository(db),
		Media:   NewCaseMediaRepository(db),
		History: NewCaseHistoryRepository(db),
	}
}

// TxRunner runs a unit of work atomically.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(CaseStore) error) error
}

type pgTxRunner struct {
	db TxBeginner
}

// NewTxRunner returns a runner that opens one Postgres transaction per call.
func NewTxRunner(db TxBeginner) TxRunner {
	return &pgTxRunner{db: db}
}

func (r *pgTxRunner) WithinTx(ctx context.Context, fn func(CaseStore) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	if err := fn(NewCaseStore(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	committed = true
	return nil
}

func marshalJSON(v any) ([]byte, error) {
	return json.Marshal(v)
}

func marshalNullableJSON(v map[string]any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func unmarshalJSON(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
