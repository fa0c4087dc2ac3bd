package domain

import "time"

// VictimCategory tags the role a victim had in the accident.
type VictimCategory string

const (
	CategoryDriver     VictimCategory = "driver"
	CategoryPassenger  VictimCategory = "passenger"
	CategoryPedestrian VictimCategory = "pedestrian"
)

// Valid reports whether c is a known category.
func (c VictimCategory) Valid() bool {
	switch c {
	case CategoryDriver, CategoryPassenger, CategoryPedestrian:
		return true
	}
	return false
}

// Address is a victim's postal address; sub-district depends on district depends on province.
type Address struct {
	Line        string `json:"line,omitempty"`
	SubDistrict string `json:"sub_district,omitempty"`
	District    string `json:"district,omitempty"`
	Province    string `json:"province,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
}

// Victim is one injured party within a case.
type Victim struct {
	LocalID          string         `json:"local_id"`
	Category         VictimCategory `json:"category"`
	Name             string         `json:"name"`
	IDNumber         string         `json:"id_number"`
	BirthDate        *time.Time     `json:"birth_date,omitempty"`
	Phone            string         `json:"phone,omitempty"`
	Address          Address        `json:"address"`
	InjuryDetail     string         `json:"injury_detail,omitempty"`
	ClaimAmount      *float64       `json:"claim_amount,omitempty"`
	ApprovedAmount   *float64       `json:"approved_amount,omitempty"`
	Consent          bool           `json:"consent"`
	Signature        string         `json:"signature,omitempty"`
	Status           CaseStatus     `json:"status,omitempty"`
	HospitalComment  string         `json:"hospital_comment,omitempty"`
	InspectorComment string         `json:"inspector_comment,omitempty"`
	AdminComment     string         `json:"admin_comment,omitempty"`
	Photos           []Attachment   `json:"photos,omitempty"`
	Videos           []Attachment   `json:"videos,omitempty"`
	Documents        []Attachment   `json:"documents,omitempty"`
}

// AttachmentsOf returns the victim's list for the given kind.
func (v *Victim) AttachmentsOf(kind MediaKind) []Attachment {
	switch kind {
	case MediaPhoto:
		return v.Photos
	case MediaVideo:
		return v.Videos
	case MediaDocument:
		return v.Documents
	}
	return nil
}

// SetAttachments replaces the victim's list for the given kind.
func (v *Victim) SetAttachments(kind MediaKind, items []Attachment) {
	switch kind {
	case MediaPhoto:
		v.Photos = items
	case MediaVideo:
		v.Videos = items
	case MediaDocument:
		v.Documents = items
	}
}
