package domain

// CaseStatus enumerates lifecycle states shared by cases and victims.
type CaseStatus string

const (
	StatusNew                  CaseStatus = "new"
	StatusInspected            CaseStatus = "inspected"
	StatusPendingRevision      CaseStatus = "pending_revision"
	StatusPendingConsideration CaseStatus = "pending_consideration"
	StatusDataVerification     CaseStatus = "data_verification"
	StatusApproved             CaseStatus = "approved"
	StatusRejected             CaseStatus = "rejected"
	StatusClosed               CaseStatus = "closed"
)

// Valid reports whether s is a known case status.
func (s CaseStatus) Valid() bool {
	switch s {
	case StatusNew, StatusInspected, StatusPendingRevision, StatusPendingConsideration,
		StatusDataVerification, StatusApproved, StatusRejected, StatusClosed:
		return true
	}
	return false
}

// IsVictimStatus reports whether s may be carried by a single victim.
func (s CaseStatus) IsVictimStatus() bool {
	switch s {
	case StatusNew, StatusPendingRevision, StatusPendingConsideration, StatusApproved, StatusRejected:
		return true
	case StatusInspected, StatusDataVerification, StatusClosed:
		return false
	}
	return false
}

// Terminal reports whether no further review is possible.
func (s CaseStatus) Terminal() bool {
	return s == StatusClosed
}

// ReviewAction enumerates reviewer decisions on a case.
type ReviewAction string

const (
	ActionRequestRevision     ReviewAction = "request_revision"
	ActionSendToConsideration ReviewAction = "send_to_consideration"
	ActionVerifyData          ReviewAction = "verify_data"
	ActionApprove             ReviewAction = "approve"
	ActionReject              ReviewAction = "reject"
	ActionClose               ReviewAction = "close"
)

// TargetStatus maps a review action onto the status it leads to.
func (a ReviewAction) TargetStatus() (CaseStatus, bool) {
	switch a {
	case ActionRequestRevision:
		return StatusPendingRevision, true
	case ActionSendToConsideration:
		return StatusPendingConsideration, true
	case ActionVerifyData:
		return StatusDataVerification, true
	case ActionApprove:
		return StatusApproved, true
	case ActionReject:
		return StatusRejected, true
	case ActionClose:
		return StatusClosed, true
	}
	return "", false
}
