package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReviewActionTargets(t *testing.T) {
	cases := map[ReviewAction]CaseStatus{
		ActionRequestRevision:     StatusPendingRevision,
		ActionSendToConsideration: StatusPendingConsideration,
		ActionVerifyData:          StatusDataVerification,
		ActionApprove:             StatusApproved,
		ActionReject:              StatusRejected,
		ActionClose:               StatusClosed,
	}
	for action, want := range cases {
		got, ok := action.TargetStatus()
		assert.True(t, ok, action)
		assert.Equal(t, want, got, action)
		assert.True(t, got.Valid())
	}

	_, ok := ReviewAction("escalate").TargetStatus()
	assert.False(t, ok)
}

func TestVictimStatusSubset(t *testing.T) {
	assert.True(t, StatusApproved.IsVictimStatus())
	assert.True(t, StatusPendingRevision.IsVictimStatus())
	assert.False(t, StatusInspected.IsVictimStatus())
	assert.False(t, StatusClosed.IsVictimStatus())
	assert.False(t, CaseStatus("archived").Valid())
}

func TestVictimAttachmentsByKind(t *testing.T) {
	var v Victim
	v.SetAttachments(MediaVideo, []Attachment{{ID: "a"}})
	assert.Len(t, v.AttachmentsOf(MediaVideo), 1)
	assert.Empty(t, v.AttachmentsOf(MediaPhoto))
	assert.Nil(t, v.AttachmentsOf(MediaKind("audio")))
}
