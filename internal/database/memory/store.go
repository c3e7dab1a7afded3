// Package memory is an in-process Store used in local mode and in engine
// tests. It honors the same claim-exclusivity contract as the Mongo
// implementation: the booking claim is one atomic compare-and-set under the
// store lock, never a read-then-write from the caller.
package memory

import (
	"context"
	"sync"
	"time"

	"foodshare/bot/engine"
	"foodshare/entity"
)

type Store struct {
	mu       sync.Mutex
	users    map[string]*entity.User
	listings map[string]*entity.Listing
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]*entity.User),
		listings: make(map[string]*entity.Listing),
	}
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.Info = make(map[entity.UserInfoField]any, len(u.Info))
	for k, v := range u.Info {
		c.Info[k] = v
	}
	if u.Pending != nil {
		p := *u.Pending
		c.Pending = &p
	}
	return &c
}

func cloneListing(l *entity.Listing) *entity.Listing {
	c := *l
	c.Items = append([]string(nil), l.Items...)
	return &c
}

func (s *Store) GetOrCreateUser(ctx context.Context, id entity.Identity, chatID int64, username string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id.Key()]
	if !ok {
		u = entity.NewUser(id, chatID, username)
		s.users[id.Key()] = u
	}
	u.ChatID = chatID
	u.Active = true
	return cloneUser(u), nil
}

func (s *Store) GetUserByKey(ctx context.Context, key string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[key]
	if !ok {
		return nil, engine.ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *Store) GetUser(ctx context.Context, id entity.Identity) (*entity.User, error) {
	return s.GetUserByKey(ctx, id.Key())
}

func (s *Store) DeleteUser(ctx context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, user.Key())
	return nil
}

// Seed inserts a user as-is, for tests and local bootstrapping.
func (s *Store) Seed(user *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.Key()] = cloneUser(user)
}

func (s *Store) onUser(user *entity.User, f func(u *entity.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[user.Key()]
	if !ok {
		return engine.ErrNotFound
	}
	f(u)
	return nil
}

func (s *Store) SetInfo(ctx context.Context, user *entity.User, field entity.UserInfoField, value any) error {
	err := s.onUser(user, func(u *entity.User) {
		if u.Info == nil {
			u.Info = make(map[entity.UserInfoField]any)
		}
		u.Info[field] = value
	})
	if err != nil {
		return err
	}
	if user.Info == nil {
		user.Info = make(map[entity.UserInfoField]any)
	}
	user.Info[field] = value
	return nil
}

func (s *Store) UnsetInfo(ctx context.Context, user *entity.User, field entity.UserInfoField) error {
	err := s.onUser(user, func(u *entity.User) {
		delete(u.Info, field)
	})
	if err != nil {
		return err
	}
	delete(user.Info, field)
	return nil
}

func (s *Store) SetState(ctx context.Context, user *entity.User, state string) error {
	err := s.onUser(user, func(u *entity.User) { u.State = state })
	if err != nil {
		return err
	}
	user.State = state
	return nil
}

func (s *Store) SetActive(ctx context.Context, user *entity.User, active bool) error {
	err := s.onUser(user, func(u *entity.User) { u.Active = active })
	if err != nil {
		return err
	}
	user.Active = active
	return nil
}

func (s *Store) SetInactiveByChat(ctx context.Context, provider entity.Provider, workflow entity.Workflow, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Provider == provider && u.Workflow == workflow && u.ChatID == chatID {
			u.Active = false
		}
	}
	return nil
}

func (s *Store) SavePending(ctx context.Context, user *entity.User, cmd entity.Command) error {
	err := s.onUser(user, func(u *entity.User) {
		c := cmd
		u.Pending = &c
	})
	if err != nil {
		return err
	}
	c := cmd
	user.Pending = &c
	return nil
}

func (s *Store) LoadPending(ctx context.Context, user *entity.User) (entity.Command, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[user.Key()]
	if !ok || u.Pending == nil {
		return entity.Command{}, engine.ErrNoPending
	}
	return *u.Pending, nil
}

func (s *Store) SetEditingListing(ctx context.Context, user *entity.User, listingID string) error {
	err := s.onUser(user, func(u *entity.User) { u.EditingID = listingID })
	if err != nil {
		return err
	}
	user.EditingID = listingID
	return nil
}

func (s *Store) CreateListing(ctx context.Context, owner *entity.User, firstItem string) (*entity.Listing, error) {
	listing := entity.NewListing(owner.Key(), firstItem)

	s.mu.Lock()
	s.listings[listing.ID] = listing
	s.mu.Unlock()

	if err := s.SetEditingListing(ctx, owner, listing.ID); err != nil {
		return nil, err
	}
	return cloneListing(listing), nil
}

func (s *Store) onListing(listingID string, f func(l *entity.Listing)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.listings[listingID]
	if !ok {
		return engine.ErrNotFound
	}
	f(l)
	return nil
}

func (s *Store) AppendListingItem(ctx context.Context, listingID, item string) error {
	return s.onListing(listingID, func(l *entity.Listing) {
		l.Items = append(l.Items, item)
	})
}

func (s *Store) SetListingTakeTime(ctx context.Context, listingID, takeTime string) error {
	return s.onListing(listingID, func(l *entity.Listing) { l.TakeTime = takeTime })
}

func (s *Store) PublishListing(ctx context.Context, listingID string, at time.Time) error {
	return s.onListing(listingID, func(l *entity.Listing) {
		l.Lifecycle = entity.LifecyclePublished
		l.PublishedAt = at
	})
}

func (s *Store) SetListingLifecycle(ctx context.Context, listingID string, lifecycle entity.Lifecycle) error {
	return s.onListing(listingID, func(l *entity.Listing) { l.Lifecycle = lifecycle })
}

func (s *Store) ClaimListing(ctx context.Context, listingID, demandUserKey string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.listings[listingID]
	if !ok {
		return false, engine.ErrNotFound
	}
	if l.ClaimedBy != "" || l.Lifecycle != entity.LifecyclePublished {
		return false, nil
	}
	l.ClaimedBy = demandUserKey
	l.Lifecycle = entity.LifecycleBooked
	return true, nil
}

func (s *Store) ReleaseClaim(ctx context.Context, listingID string) error {
	return s.onListing(listingID, func(l *entity.Listing) {
		l.ClaimedBy = ""
		l.Lifecycle = entity.LifecyclePublished
	})
}

func (s *Store) GetListing(ctx context.Context, listingID string) (*entity.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.listings[listingID]
	if !ok {
		return nil, engine.ErrNotFound
	}
	return cloneListing(l), nil
}

func (s *Store) ListRecentListings(ctx context.Context, owner *entity.User, since time.Time) ([]*entity.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*entity.Listing
	for _, l := range s.listings {
		if l.OwnerID != owner.Key() || l.Lifecycle == entity.LifecycleDraft {
			continue
		}
		if l.PublishedAt.Before(since) {
			continue
		}
		out = append(out, cloneListing(l))
	}
	return out, nil
}

func (s *Store) ListActiveUsers(ctx context.Context, workflow entity.Workflow) ([]*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*entity.User
	for _, u := range s.users {
		if u.Workflow == workflow && u.Active {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (s *Store) ListAdminUsers(ctx context.Context) ([]*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*entity.User
	for _, u := range s.users {
		if u.Admin {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}
