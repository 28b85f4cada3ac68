package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range AllStatuses {
		parsed, err := ParseStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	_, err := ParseStatus("pending")
	assert.Error(t, err)
}

func TestMatchStatus_MissingCase(t *testing.T) {
	_, err := MatchStatus(StatusApproved, StatusCases[int]{
		Draft: func() int { return 0 },
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "approved")
}

func TestMatchStatus_UnknownStatus(t *testing.T) {
	_, err := MatchStatus(Status("archived"), StatusCases[bool]{
		Draft:      func() bool { return false },
		Submitting: func() bool { return false },
		Submitted:  func() bool { return false },
		Approved:   func() bool { return false },
		Rejected:   func() bool { return false },
	})
	assert.Error(t, err)
}

func TestClaimsPlace(t *testing.T) {
	tests := []struct {
		status Status
		claims bool
	}{
		{StatusDraft, false},
		{StatusSubmitting, true},
		{StatusSubmitted, true},
		{StatusApproved, true},
		{StatusRejected, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			claims, err := tt.status.ClaimsPlace()
			require.NoError(t, err)
			assert.Equal(t, tt.claims, claims)
		})
	}
}
