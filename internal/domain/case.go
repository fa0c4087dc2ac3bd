package domain

import "time"

// AccidentInfo describes the accident event.
type AccidentInfo struct {
	OccurredAt  *time.Time `json:"occurred_at,omitempty"`
	Location    string     `json:"location,omitempty"`
	Province    string     `json:"province,omitempty"`
	Description string     `json:"description,omitempty"`
}

// VehicleInfo describes the vehicle involved.
type VehicleInfo struct {
	PlateNumber   string `json:"plate_number,omitempty"`
	PlateProvince string `json:"plate_province,omitempty"`
	Type          string `json:"type,omitempty"`
	Brand         string `json:"brand,omitempty"`
	PolicyNumber  string `json:"policy_number,omitempty"`
}

// CaseForm holds the top-level fields of a case form.
type CaseForm struct {
	HospitalID         string       `json:"hospital_id,omitempty"`
	ExternalCaseNumber string       `json:"external_case_number,omitempty"`
	Accident           AccidentInfo `json:"accident"`
	Vehicle            VehicleInfo  `json:"vehicle"`
	Notes              string       `json:"notes,omitempty"`
}

// Case is the aggregate for one accident verification workflow.
type Case struct {
	ID                    string
	CaseNumber            string
	ExternalCaseNumber    *string
	Status                CaseStatus
	HospitalID            string
	Accident              AccidentInfo
	Vehicle               VehicleInfo
	Notes                 string
	PrimaryVictimName     string
	PrimaryVictimIDNumber string
	Victims               []Victim
	CreatedBy             string
	AssignedInspectorID   *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
	SubmittedAt           *time.Time
}

// Form returns the top-level fields of the case.
func (c *Case) Form() CaseForm {
	form := CaseForm{
		HospitalID: c.HospitalID,
		Accident:   c.Accident,
		Vehicle:    c.Vehicle,
		Notes:      c.Notes,
	}
	if c.ExternalCaseNumber != nil {
		form.ExternalCaseNumber = *c.ExternalCaseNumber
	}
	return form
}
