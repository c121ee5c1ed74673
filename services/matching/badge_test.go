package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveStatusBadgeEmpty(t *testing.T) {
	badge := DeriveStatusBadge("")
	assert.Equal(t, "red", badge.Color)
	assert.Equal(t, "Not Requested", badge.Label)
	assert.True(t, badge.ShowRequestCT)
}

func TestDeriveStatusBadgeUnderReview(t *testing.T) {
	badge := DeriveStatusBadge("under review: a@y.com")
	assert.Equal(t, "yellow", badge.Color)
	assert.Equal(t, "Under Review by: a@y.com", badge.Label)
	assert.False(t, badge.ShowRequestCT)
}

func TestDeriveStatusBadgeUnderReviewCaseInsensitive(t *testing.T) {
	badge := DeriveStatusBadge("Under Review: a@y.com")
	assert.Equal(t, "yellow", badge.Color)
	assert.Equal(t, "Under Review by: a@y.com", badge.Label)
}

func TestDeriveStatusBadgeAccepted(t *testing.T) {
	badge := DeriveStatusBadge("accepted: a@y.com")
	assert.Equal(t, "green", badge.Color)
	assert.Equal(t, "Accepted by: accepted: a@y.com", badge.Label)
	assert.False(t, badge.ShowRequestCT)
}

func TestDeriveStatusBadgeAnyNonEmptyIsGreen(t *testing.T) {
	badge := DeriveStatusBadge("assigned externally")
	assert.Equal(t, "green", badge.Color)
	assert.Equal(t, "Accepted by: assigned externally", badge.Label)
}

func TestDeriveStatusBadgeIsPure(t *testing.T) {
	first := DeriveStatusBadge("under review: x@y.com")
	second := DeriveStatusBadge("under review: x@y.com")
	assert.Equal(t, first, second)
}
