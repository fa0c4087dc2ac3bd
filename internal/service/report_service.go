package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/case-service/internal/domain"
	"github.com/spec-kit/case-service/internal/repository"
)

const reportPageSize = 500

// ReportSummary aggregates case figures for the dashboard.
type ReportSummary struct {
	TotalCases      int                       `json:"total_cases"`
	TotalVictims    int                       `json:"total_victims"`
	ByStatus        map[domain.CaseStatus]int `json:"by_status"`
	ByHospital      map[string]int            `json:"by_hospital"`
	ClaimRequested  float64                   `json:"claim_requested"`
	ClaimApproved   float64                   `json:"claim_approved"`
	VictimsApproved int                       `json:"victims_approved"`
	VictimsRejected int                       `json:"victims_rejected"`
}

// ExportHeader lists the columns of the case workbook, one row per victim.
var ExportHeader = []string{
	"Case Number",
	"External Case Number",
	"Case Status",
	"Hospital ID",
	"Accident Date",
	"Accident Location",
	"Plate Number",
	"Victim #",
	"Category",
	"Victim Name",
	"ID Number",
	"Victim Status",
	"Claim Amount",
	"Approved Amount",
	"Submitted At",
}

// ReportService builds dashboards and spreadsheet exports.
type ReportService struct {
	cases repository.CaseRepository
}

// NewReportService constructs the service.
func NewReportService(cases repository.CaseRepository) *ReportService {
	return &ReportService{cases: cases}
}

// Summary aggregates every case visible to actor matching filter.
func (s *ReportService) Summary(ctx context.Context, actor *domain.User, filter CaseListFilter) (*ReportSummary, error) {
	summary := &ReportSummary{
		ByStatus:   map[domain.CaseStatus]int{},
		ByHospital: map[string]int{},
	}
	err := s.each(ctx, actor, filter, func(c *domain.Case) {
		summary.TotalCases++
		summary.ByStatus[c.Status]++
		summary.ByHospital[c.HospitalID]++
		for _, v := range c.Victims {
			summary.TotalVictims++
			if v.ClaimAmount != nil {
				summary.ClaimRequested += *v.ClaimAmount
			}
			if v.ApprovedAmount != nil {
				summary.ClaimApproved += *v.ApprovedAmount
			}
			switch v.Status {
			case domain.StatusApproved:
				summary.VictimsApproved++
			case domain.StatusRejected:
				summary.VictimsRejected++
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// Export renders matching cases as an xlsx workbook.
func (s *ReportService) Export(ctx context.Context, actor *domain.User, filter CaseListFilter) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Cases"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	header := make([]any, len(ExportHeader))
	for i, h := range ExportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(ExportHeader))
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, err
	}

	row := 2
	var writeErr error
	err = s.each(ctx, actor, filter, func(c *domain.Case) {
		if writeErr != nil {
			return
		}
		for i, v := range c.Victims {
			cell, _ := excelize.CoordinatesToCellName(1, row)
			values := exportRow(c, i, v)
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				writeErr = err
				return
			}
			row++
		}
	})
	if err != nil {
		return nil, err
	}
	if writeErr != nil {
		return nil, writeErr
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *ReportService) each(ctx context.Context, actor *domain.User, filter CaseListFilter, fn func(*domain.Case)) error {
	repoFilter := repository.CaseFilter{
		Statuses:    filter.Statuses,
		HospitalID:  filter.HospitalID,
		InspectorID: filter.InspectorID,
		SearchTerm:  filter.SearchTerm,
		CreatedFrom: filter.CreatedFrom,
		CreatedTo:   filter.CreatedTo,
		Limit:       reportPageSize,
	}
	if !actor.Role.IsAdmin() {
		repoFilter.VisibleTo = &actor.ID
	}
	for {
		page, err := s.cases.List(ctx, repoFilter)
		if err != nil {
			return err
		}
		for i := range page {
			fn(&page[i])
		}
		if len(page) < reportPageSize {
			return nil
		}
		repoFilter.Offset += len(page)
	}
}

func exportRow(c *domain.Case, index int, v domain.Victim) []any {
	external := ""
	if c.ExternalCaseNumber != nil {
		external = *c.ExternalCaseNumber
	}
	occurred := ""
	if c.Accident.OccurredAt != nil {
		occurred = c.Accident.OccurredAt.Format("2006-01-02 15:04")
	}
	submitted := ""
	if c.SubmittedAt != nil {
		submitted = c.SubmittedAt.Format(time.RFC3339)
	}
	return []any{
		c.CaseNumber,
		external,
		string(c.Status),
		c.HospitalID,
		occurred,
		c.Accident.Location,
		c.Vehicle.PlateNumber,
		index + 1,
		string(v.Category),
		v.Name,
		v.IDNumber,
		string(v.Status),
		amountOrBlank(v.ClaimAmount),
		amountOrBlank(v.ApprovedAmount),
		submitted,
	}
}

func amountOrBlank(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
