package matching

import "strings"

const underReviewPrefix = "under review: "

// StatusBadge is the display rendering of a case's aid-assignment status.
type StatusBadge struct {
	Color         string `json:"color"`
	Label         string `json:"label"`
	ShowRequestCT bool   `json:"showRequestButton"`
}

// DeriveStatusBadge maps the legacy legalAid status string onto its display
// badge. Empty means no request has been made; an "under review: " prefix
// (matched case-insensitively) carries the provider under consideration; any
// other non-empty value is an acceptance.
func DeriveStatusBadge(legalAid string) StatusBadge {
	if legalAid == "" {
		return StatusBadge{Color: "red", Label: "Not Requested", ShowRequestCT: true}
	}
	if len(legalAid) >= len(underReviewPrefix) &&
		strings.EqualFold(legalAid[:len(underReviewPrefix)], underReviewPrefix) {
		provider := legalAid[len(underReviewPrefix):]
		return StatusBadge{Color: "yellow", Label: "Under Review by: " + provider}
	}
	return StatusBadge{Color: "green", Label: "Accepted by: " + legalAid}
}
