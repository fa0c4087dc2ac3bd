package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/case-service/internal/domain"
)

var caseColumnNames = []string{
	"id", "case_number", "external_case_number", "status", "hospital_id", "accident", "vehicle", "notes",
	"primary_victim_name", "primary_victim_id_number", "victims", "created_by", "assigned_inspector_id",
	"created_at", "updated_at", "submitted_at",
}

func TestCaseRepositoryCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO cases`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("case-1", now, now))

	repo := NewCaseRepository(mock)
	c := &domain.Case{
		CaseNumber: "AVA2501-00001",
		Status:     domain.StatusNew,
		CreatedBy:  "user-1",
		Victims:    []domain.Victim{{Name: "A", IDNumber: "1", Consent: true}},
	}
	require.NoError(t, repo.Create(context.Background(), c))

	assert.Equal(t, "case-1", c.ID)
	assert.Equal(t, now, c.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCaseRepositoryGetByIDDecodesVictims(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	rows := pgxmock.NewRows(caseColumnNames).AddRow(
		"case-1", "AVA2501-00001", nil, domain.StatusPendingConsideration, "hosp-1",
		[]byte(`{"location":"Km 12"}`), []byte(`{"plate_number":"1AB-234"}`), "",
		"Somchai", "1100", []byte(`[{"local_id":"v1","name":"Somchai","id_number":"1100","consent":true,"claim_amount":2000}]`),
		"user-1", nil, now, now, nil,
	)
	mock.ExpectQuery(`SELECT .* FROM cases WHERE id=\$1`).WithArgs("case-1").WillReturnRows(rows)

	c, err := NewCaseRepository(mock).GetByID(context.Background(), "case-1")
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPendingConsideration, c.Status)
	assert.Equal(t, "hosp-1", c.HospitalID)
	assert.Equal(t, "Km 12", c.Accident.Location)
	assert.Equal(t, "1AB-234", c.Vehicle.PlateNumber)
	require.Len(t, c.Victims, 1)
	require.NotNil(t, c.Victims[0].ClaimAmount)
	assert.Equal(t, 2000.0, *c.Victims[0].ClaimAmount)
	assert.Nil(t, c.AssignedInspectorID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCaseRepositoryCountCaseNumbersUsesPrefix(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM cases WHERE case_number LIKE \$1`).
		WithArgs("AVA2501-%").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))

	count, err := NewCaseRepository(mock).CountCaseNumbers(context.Background(), "AVA2501-")
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunnerCommitsOnSuccess(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO case_history`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow("h-1", now))
	mock.ExpectCommit()

	err = NewTxRunner(mock).WithinTx(context.Background(), func(store CaseStore) error {
		return store.History.Create(context.Background(), &domain.CaseHistory{
			CaseID: "case-1",
			Action: domain.HistoryCreated,
			After:  map[string]any{"status": "new"},
		})
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxRunnerRollsBackOnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO case_media`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err = NewTxRunner(mock).WithinTx(context.Background(), func(store CaseStore) error {
		return store.Media.Create(context.Background(), &domain.CaseMedia{CaseID: "case-1", Kind: domain.MediaPhoto})
	})
	assert.EqualError(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCaseMediaDeleteMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM case_media`).WithArgs("m-1").WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err = NewCaseMediaRepository(mock).Delete(context.Background(), "m-1")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCaseMediaUpdateVictimIndex(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`UPDATE case_media SET victim_index`).WithArgs("m-1", 0).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE case_media SET victim_index`).WithArgs("m-2", 1).WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewCaseMediaRepository(mock)
	require.NoError(t, repo.UpdateVictimIndex(context.Background(), "m-1", 0))
	assert.ErrorIs(t, repo.UpdateVictimIndex(context.Background(), "m-2", 1), pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
