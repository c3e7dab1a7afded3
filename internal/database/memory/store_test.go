package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"foodshare/bot/engine"
	"foodshare/entity"
)

func supplier(t *testing.T, s *Store) *entity.User {
	t.Helper()
	id := entity.Identity{Provider: entity.ProviderTelegram, Workflow: entity.WorkflowSupply, UserID: "owner"}
	user, err := s.GetOrCreateUser(context.Background(), id, 1, "owner")
	if err != nil {
		t.Fatalf("GetOrCreateUser: %v", err)
	}
	return user
}

func publishedListing(t *testing.T, s *Store, owner *entity.User) *entity.Listing {
	t.Helper()
	ctx := context.Background()
	listing, err := s.CreateListing(ctx, owner, "bread")
	if err != nil {
		t.Fatalf("CreateListing: %v", err)
	}
	if err := s.PublishListing(ctx, listing.ID, time.Now().UTC()); err != nil {
		t.Fatalf("PublishListing: %v", err)
	}
	return listing
}

func TestClaimIsExclusive(t *testing.T) {
	t.Parallel()

	s := NewStore()
	ctx := context.Background()
	listing := publishedListing(t, s, supplier(t, s))

	const contenders = 32
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		winners []string
	)
	for i := 0; i < contenders; i++ {
		key := fmt.Sprintf("telegram-demand-%d", i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			won, err := s.ClaimListing(ctx, listing.ID, key)
			if err != nil {
				t.Errorf("ClaimListing(%s): %v", key, err)
				return
			}
			if won {
				mu.Lock()
				winners = append(winners, key)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(winners) != 1 {
		t.Fatalf("winners = %v, want exactly one", winners)
	}

	got, err := s.GetListing(ctx, listing.ID)
	if err != nil {
		t.Fatalf("GetListing: %v", err)
	}
	if got.ClaimedBy != winners[0] {
		t.Fatalf("claimed_by = %q, want %q", got.ClaimedBy, winners[0])
	}
	if got.Lifecycle != entity.LifecycleBooked {
		t.Fatalf("lifecycle = %q, want booked", got.Lifecycle)
	}
}

func TestClaimRequiresPublished(t *testing.T) {
	t.Parallel()

	s := NewStore()
	ctx := context.Background()
	owner := supplier(t, s)

	draft, err := s.CreateListing(ctx, owner, "soup")
	if err != nil {
		t.Fatalf("CreateListing: %v", err)
	}
	if won, err := s.ClaimListing(ctx, draft.ID, "telegram-demand-1"); err != nil || won {
		t.Fatalf("claim on draft: won=%t err=%v, want lost", won, err)
	}

	if err := s.SetListingLifecycle(ctx, draft.ID, entity.LifecycleDeactivated); err != nil {
		t.Fatalf("SetListingLifecycle: %v", err)
	}
	if won, _ := s.ClaimListing(ctx, draft.ID, "telegram-demand-1"); won {
		t.Fatal("claim on deactivated listing must lose")
	}
}

func TestReleaseReopensListing(t *testing.T) {
	t.Parallel()

	s := NewStore()
	ctx := context.Background()
	listing := publishedListing(t, s, supplier(t, s))

	if won, err := s.ClaimListing(ctx, listing.ID, "telegram-demand-1"); err != nil || !won {
		t.Fatalf("first claim: won=%t err=%v", won, err)
	}
	if won, _ := s.ClaimListing(ctx, listing.ID, "telegram-demand-2"); won {
		t.Fatal("second claim must lose while held")
	}

	if err := s.ReleaseClaim(ctx, listing.ID); err != nil {
		t.Fatalf("ReleaseClaim: %v", err)
	}
	if won, err := s.ClaimListing(ctx, listing.ID, "telegram-demand-2"); err != nil || !won {
		t.Fatalf("claim after release: won=%t err=%v", won, err)
	}
}

func TestGetOrCreateUserReactivates(t *testing.T) {
	t.Parallel()

	s := NewStore()
	ctx := context.Background()
	id := entity.Identity{Provider: entity.ProviderTelegram, Workflow: entity.WorkflowDemand, UserID: "55"}

	user, err := s.GetOrCreateUser(ctx, id, 100, "old_name")
	if err != nil {
		t.Fatalf("GetOrCreateUser: %v", err)
	}
	if err := s.SetInactiveByChat(ctx, id.Provider, id.Workflow, 100); err != nil {
		t.Fatalf("SetInactiveByChat: %v", err)
	}

	again, err := s.GetOrCreateUser(ctx, id, 200, "new_name")
	if err != nil {
		t.Fatalf("GetOrCreateUser again: %v", err)
	}
	if !again.Active {
		t.Fatal("re-contact must reactivate the user")
	}
	if again.ChatID != 200 {
		t.Fatalf("chat_id = %d, want refreshed 200", again.ChatID)
	}
	if again.Key() != user.Key() {
		t.Fatalf("key changed: %q vs %q", again.Key(), user.Key())
	}
}

func TestListActiveUsersFiltersWorkflowAndActivity(t *testing.T) {
	t.Parallel()

	s := NewStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		id := entity.Identity{Provider: entity.ProviderTelegram, Workflow: entity.WorkflowDemand, UserID: fmt.Sprint(i)}
		if _, err := s.GetOrCreateUser(ctx, id, int64(10+i), ""); err != nil {
			t.Fatalf("GetOrCreateUser: %v", err)
		}
	}
	supplier(t, s)
	if err := s.SetInactiveByChat(ctx, entity.ProviderTelegram, entity.WorkflowDemand, 10); err != nil {
		t.Fatalf("SetInactiveByChat: %v", err)
	}

	active, err := s.ListActiveUsers(ctx, entity.WorkflowDemand)
	if err != nil {
		t.Fatalf("ListActiveUsers: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("active demand users = %d, want 2", len(active))
	}
	for _, u := range active {
		if u.Workflow != entity.WorkflowDemand {
			t.Fatalf("unexpected workflow %q in result", u.Workflow)
		}
	}
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()

	s := NewStore()
	ctx := context.Background()
	user := supplier(t, s)

	if err := s.DeleteUser(ctx, user); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := s.GetUser(ctx, user.Identity); !errors.Is(err, engine.ErrNotFound) {
		t.Fatalf("GetUser after delete: err = %v, want ErrNotFound", err)
	}
}
