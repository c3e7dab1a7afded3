package entity

import (
	"time"

	"github.com/google/uuid"
)

// Lifecycle is the claimable life of a listing.
type Lifecycle string

const (
	// LifecycleDraft: items still being appended, not visible to anyone.
	LifecycleDraft Lifecycle = "draft"
	// LifecyclePublished: broadcast to demand users, open for claiming.
	LifecyclePublished Lifecycle = "published"
	// LifecycleDeactivated: withdrawn by the owner, still viewable by them.
	LifecycleDeactivated Lifecycle = "deactivated"
	// LifecycleBooked: claimed by exactly one demand user, awaiting decision.
	LifecycleBooked Lifecycle = "booked"
	// LifecycleApproved: owner confirmed the claim.
	LifecycleApproved Lifecycle = "approved"
	// LifecycleTaken: food handed over; kept for history.
	LifecycleTaken Lifecycle = "taken"
)

// Listing is a food offer posted by a supply user.
type Listing struct {
	ID          string    `json:"id" bson:"_id"`
	OwnerID     string    `json:"owner_id" bson:"owner_id"`
	Items       []string  `json:"items" bson:"items"`
	TakeTime    string    `json:"take_time" bson:"take_time"`
	ClaimedBy   string    `json:"claimed_by" bson:"claimed_by"`
	Lifecycle   Lifecycle `json:"lifecycle" bson:"lifecycle"`
	PublishedAt time.Time `json:"published_at" bson:"published_at"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// NewListing creates a draft with its first item.
func NewListing(ownerID, firstItem string) *Listing {
	return &Listing{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Items:     []string{firstItem},
		Lifecycle: LifecycleDraft,
		CreatedAt: time.Now().UTC(),
	}
}

// IsClaimed reports whether a demand user holds the listing.
func (l *Listing) IsClaimed() bool {
	return l.ClaimedBy != ""
}

// IsOpen reports whether the listing can still be claimed.
func (l *Listing) IsOpen() bool {
	return l.Lifecycle == LifecyclePublished && !l.IsClaimed()
}
