package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/case-service/internal/domain"
)

func TestReportSummaryAndExport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	first := submitOne(t, f, f.inspector)
	submitOne(t, f, f.other)

	approved := 750.0
	_, err := f.cases.ReviewVictim(ctx, f.admin, first.ID, 0, VictimReviewInput{Status: domain.StatusApproved, ApprovedAmount: &approved})
	require.NoError(t, err)

	reports := NewReportService(&memCaseRepo{db: f.db})

	summary, err := reports.Summary(ctx, f.admin, CaseListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalCases)
	assert.Equal(t, 2, summary.TotalVictims)
	assert.Equal(t, 2, summary.ByStatus[domain.StatusNew])
	assert.Equal(t, 2000.0, summary.ClaimRequested)
	assert.Equal(t, 750.0, summary.ClaimApproved)
	assert.Equal(t, 1, summary.VictimsApproved)

	scoped, err := reports.Summary(ctx, f.inspector, CaseListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, scoped.TotalCases)

	payload, err := reports.Export(ctx, f.admin, CaseListFilter{})
	require.NoError(t, err)

	book, err := excelize.OpenReader(bytes.NewReader(payload))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Cases")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, ExportHeader[0], rows[0][0])
	assert.Equal(t, first.CaseNumber, rows[1][0])
	assert.Equal(t, "Anan", rows[1][9])
}
