package casework

import (
	"strings"

	"github.com/spec-kit/case-service/internal/domain"
)

// Field names reported in validation errors.
const (
	FieldName        = "name"
	FieldIDNumber    = "id_number"
	FieldConsent     = "consent"
	FieldClaimAmount = "claim_amount"
	FieldSignature   = "signature"
)

// ValidateVictim returns the required fields missing from v for a block save.
func ValidateVictim(v domain.Victim) []string {
	var missing []string
	if strings.TrimSpace(v.Name) == "" {
		missing = append(missing, FieldName)
	}
	if strings.TrimSpace(v.IDNumber) == "" {
		missing = append(missing, FieldIDNumber)
	}
	if !v.Consent {
		missing = append(missing, FieldConsent)
	}
	if v.ClaimAmount == nil || *v.ClaimAmount < 0 {
		missing = append(missing, FieldClaimAmount)
	}
	return missing
}

// ValidateForSubmit extends ValidateVictim with what a final submission needs.
func ValidateForSubmit(v domain.Victim) []string {
	missing := ValidateVictim(v)
	if strings.TrimSpace(v.Signature) == "" {
		missing = append(missing, FieldSignature)
	}
	return missing
}
