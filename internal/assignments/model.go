package assignments

import "time"

// Assignment grants a bidder access to a profile.
type Assignment struct {
	ID         string    `json:"id"`
	ProfileID  string    `json:"profileId"`
	BidderID   string    `json:"bidderId"`
	AssignedBy string    `json:"assignedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}
