package engine

import (
	"context"
	"errors"
	"time"

	"foodshare/entity"
)

// ErrNoPending is returned when a continuation is loaded but nothing was
// saved. Reaching it through user action is a data defect, not a normal case.
var ErrNoPending = errors.New("no pending command saved")

// ErrNotFound is returned for missing users or listings.
var ErrNotFound = errors.New("not found")

// Store is the storage collaborator consumed by the conversation core.
// Implementations: internal/database (Mongo) and internal/database/memory.
type Store interface {
	// GetOrCreateUser resolves the actor, creating it with defaulted profile
	// fields on first contact. Re-contact reactivates the actor and refreshes
	// its chat address and username.
	GetOrCreateUser(ctx context.Context, id entity.Identity, chatID int64, username string) (*entity.User, error)
	GetUserByKey(ctx context.Context, key string) (*entity.User, error)
	GetUser(ctx context.Context, id entity.Identity) (*entity.User, error)
	DeleteUser(ctx context.Context, user *entity.User) error

	SetInfo(ctx context.Context, user *entity.User, field entity.UserInfoField, value any) error
	UnsetInfo(ctx context.Context, user *entity.User, field entity.UserInfoField) error
	SetState(ctx context.Context, user *entity.User, state string) error
	SetActive(ctx context.Context, user *entity.User, active bool) error
	SetInactiveByChat(ctx context.Context, provider entity.Provider, workflow entity.Workflow, chatID int64) error

	SavePending(ctx context.Context, user *entity.User, cmd entity.Command) error
	LoadPending(ctx context.Context, user *entity.User) (entity.Command, error)

	SetEditingListing(ctx context.Context, user *entity.User, listingID string) error
	CreateListing(ctx context.Context, owner *entity.User, firstItem string) (*entity.Listing, error)
	AppendListingItem(ctx context.Context, listingID, item string) error
	SetListingTakeTime(ctx context.Context, listingID, takeTime string) error
	PublishListing(ctx context.Context, listingID string, at time.Time) error
	SetListingLifecycle(ctx context.Context, listingID string, lifecycle entity.Lifecycle) error
	GetListing(ctx context.Context, listingID string) (*entity.Listing, error)
	ListRecentListings(ctx context.Context, owner *entity.User, since time.Time) ([]*entity.Listing, error)

	// ClaimListing is the single atomic compare-and-set booking primitive:
	// it assigns the listing to the demand user only when no one holds it,
	// and reports whether the write took effect.
	ClaimListing(ctx context.Context, listingID, demandUserKey string) (bool, error)
	// ReleaseClaim clears the claim and reopens the listing.
	ReleaseClaim(ctx context.Context, listingID string) error

	ListActiveUsers(ctx context.Context, workflow entity.Workflow) ([]*entity.User, error)
	ListAdminUsers(ctx context.Context) ([]*entity.User, error)
}

// MessageRef points at the inbound message a reply may edit or delete.
type MessageRef struct {
	MessageID int64
	HasText   bool
}

// Outbox hands replies off for asynchronous delivery. Implementations must
// never block on, or propagate errors from, actual delivery.
type Outbox interface {
	QueueReplies(ctx context.Context, workflow entity.Workflow, chatID int64, origin *MessageRef, replies ...entity.Reply)
}

// Event is a normalized inbound chat event: free text, a callback token,
// shared coordinates, or a platform /command.
type Event struct {
	Text        string
	Token       string
	Coordinates *entity.Coordinates
	Slash       string
}

// State is one row of a workflow state table. Intro must be idempotent and
// side-effect free; Handle is the sole side-effecting entry point.
type State interface {
	Intro(ctx context.Context, user *entity.User) entity.Reply
	Handle(ctx context.Context, user *entity.User, ev Event) (entity.Reply, error)
}

// Inbound is one normalized webhook update. CallbackID, when set, is the
// platform callback waiting for a synchronous acknowledgment.
type Inbound struct {
	Identity   entity.Identity
	ChatID     int64
	Username   string
	Event      Event
	Origin     *MessageRef
	CallbackID string
}
