package demand_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"foodshare/bot/command"
	"foodshare/bot/demand"
	"foodshare/bot/engine"
	"foodshare/bot/notify"
	"foodshare/bot/supply"
	"foodshare/entity"
	"foodshare/internal/database/memory"
	"foodshare/internal/geo"
	"foodshare/internal/queue"
)

// captureQueue records envelopes synchronously so assertions need no
// draining.
type captureQueue struct {
	mu   sync.Mutex
	envs []queue.Envelope
}

func (q *captureQueue) Put(_ context.Context, envs ...queue.Envelope) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.envs = append(q.envs, envs...)
}

func (q *captureQueue) PutBroadcast(_ context.Context, envs []queue.Envelope) {
	q.Put(context.Background(), envs...)
}

func (q *captureQueue) forChat(chatID int64) []queue.Envelope {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []queue.Envelope
	for _, env := range q.envs {
		if env.ChatID == chatID {
			out = append(out, env)
		}
	}
	return out
}

func (q *captureQueue) lastText(t *testing.T, chatID int64) string {
	t.Helper()
	envs := q.forChat(chatID)
	if len(envs) == 0 {
		t.Fatalf("no envelopes for chat %d", chatID)
	}
	return envs[len(envs)-1].Reply.Text
}

type fixture struct {
	store  *memory.Store
	queue  *captureQueue
	engine *engine.Engine
	owner  *entity.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	cq := &captureQueue{}
	notifier := notify.New(store, cq, log)
	resolver := geo.NewResolver(nil, nil, log)

	eng := engine.New(store, notifier, log)
	eng.Register(supply.New(store, notifier, resolver, "@feedback", log).Workflow())
	eng.Register(demand.New(store, notifier, log).Workflow())

	owner := entity.NewUser(entity.Identity{
		Provider: entity.ProviderTelegram,
		Workflow: entity.WorkflowSupply,
		UserID:   "100",
	}, 100, "cafe_owner")
	owner.State = entity.SupplyReadyToPost
	owner.Info[entity.InfoName] = "Good Cafe"
	owner.Info[entity.InfoLocation] = "by:minsk"
	owner.Info[entity.InfoAddress] = "Main street 1"
	owner.Info[entity.InfoPhone] = "+375291112233"
	owner.Info[entity.InfoApprovedSupply] = true
	store.Seed(owner)

	return &fixture{store: store, queue: cq, engine: eng, owner: owner}
}

func (f *fixture) publish(t *testing.T, item string) *entity.Listing {
	t.Helper()
	ctx := context.Background()
	listing, err := f.store.CreateListing(ctx, f.owner, item)
	if err != nil {
		t.Fatalf("CreateListing: %v", err)
	}
	if err := f.store.SetListingTakeTime(ctx, listing.ID, "18:00-20:00"); err != nil {
		t.Fatalf("SetListingTakeTime: %v", err)
	}
	if err := f.store.PublishListing(ctx, listing.ID, time.Now().UTC()); err != nil {
		t.Fatalf("PublishListing: %v", err)
	}
	return listing
}

func (f *fixture) demandInbound(userID string, chatID int64, ev engine.Event) engine.Inbound {
	return engine.Inbound{
		Identity: entity.Identity{
			Provider: entity.ProviderTelegram,
			Workflow: entity.WorkflowDemand,
			UserID:   userID,
		},
		ChatID:   chatID,
		Username: "user" + userID,
		Event:    ev,
	}
}

func takeToken(owner *entity.User, listing *entity.Listing) string {
	return command.EncodeDemand(command.DemandTake,
		string(owner.Provider), owner.UserID, listing.ID)
}

func finishToken(owner *entity.User, listing *entity.Listing) string {
	return command.EncodeDemand(command.DemandFinishTake,
		string(owner.Provider), owner.UserID, listing.ID)
}

func TestBookingRaceHasOneWinner(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	listing := f.publish(t, "ten sandwiches")

	// Both see the review screen first.
	for _, u := range []struct {
		id   string
		chat int64
	}{{"201", 201}, {"202", 202}} {
		in := f.demandInbound(u.id, u.chat, engine.Event{Token: takeToken(f.owner, listing)})
		if err := f.engine.HandleInbound(ctx, in); err != nil {
			t.Fatalf("take for %s: %v", u.id, err)
		}
	}

	// Both confirm.
	for _, u := range []struct {
		id   string
		chat int64
	}{{"201", 201}, {"202", 202}} {
		in := f.demandInbound(u.id, u.chat, engine.Event{Token: finishToken(f.owner, listing)})
		if err := f.engine.HandleInbound(ctx, in); err != nil {
			t.Fatalf("confirm for %s: %v", u.id, err)
		}
	}

	got, err := f.store.GetListing(ctx, listing.ID)
	if err != nil {
		t.Fatalf("GetListing: %v", err)
	}
	if got.Lifecycle != entity.LifecycleBooked {
		t.Fatalf("lifecycle = %q, want booked", got.Lifecycle)
	}
	if got.ClaimedBy != "telegram-demand-201" {
		t.Fatalf("claimed_by = %q, want first confirmer", got.ClaimedBy)
	}

	if text := f.queue.lastText(t, 201); !strings.Contains(text, "Done!") {
		t.Fatalf("winner reply = %q", text)
	}
	if text := f.queue.lastText(t, 202); !strings.Contains(text, "ALREADY TAKEN") {
		t.Fatalf("loser reply = %q", text)
	}

	// The owner hears about the booking exactly once.
	ownerEnvs := f.queue.forChat(100)
	if len(ownerEnvs) != 1 {
		t.Fatalf("owner notifications = %d, want 1", len(ownerEnvs))
	}
	if ownerEnvs[0].Workflow != entity.WorkflowSupply {
		t.Fatalf("owner notified on %q workflow", ownerEnvs[0].Workflow)
	}
}

func TestPhoneSubDialogResumesReview(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	listing := f.publish(t, "soup")

	// Open the review, detour into the phone dialog, then finish it.
	steps := []engine.Event{
		{Token: takeToken(f.owner, listing)},
		{Token: command.EncodeDemand(command.DemandEditPhone)},
		{Text: "+375291234567"},
	}
	for _, ev := range steps {
		if err := f.engine.HandleInbound(ctx, f.demandInbound("300", 300, ev)); err != nil {
			t.Fatalf("step %+v: %v", ev, err)
		}
	}

	user, err := f.store.GetUser(ctx, entity.Identity{
		Provider: entity.ProviderTelegram,
		Workflow: entity.WorkflowDemand,
		UserID:   "300",
	})
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if user.State != entity.DemandDefault {
		t.Fatalf("state = %q, want back at default", user.State)
	}
	if user.InfoString(entity.InfoPhone) != "+375291234567" {
		t.Fatalf("phone = %q", user.InfoString(entity.InfoPhone))
	}

	envs := f.queue.forChat(300)
	last := envs[len(envs)-1].Reply
	if !strings.Contains(last.Text, "+375291234567") {
		t.Fatalf("resumed review text = %q, want it to show the new phone", last.Text)
	}
	confirm := finishToken(f.owner, listing)
	found := false
	for _, row := range last.Buttons {
		for _, btn := range row {
			if btn.Data == confirm {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("resumed review lacks the confirm button, buttons = %+v", last.Buttons)
	}
}

func TestBadPhoneIsRejectedAndDialogStays(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	listing := f.publish(t, "rice")

	steps := []engine.Event{
		{Token: takeToken(f.owner, listing)},
		{Token: command.EncodeDemand(command.DemandEditPhone)},
		{Text: "12345"},
	}
	for _, ev := range steps {
		if err := f.engine.HandleInbound(ctx, f.demandInbound("301", 301, ev)); err != nil {
			t.Fatalf("step %+v: %v", ev, err)
		}
	}

	user, err := f.store.GetUser(ctx, entity.Identity{
		Provider: entity.ProviderTelegram,
		Workflow: entity.WorkflowDemand,
		UserID:   "301",
	})
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if user.State != entity.DemandEditPhone {
		t.Fatalf("state = %q, want to stay in the phone dialog", user.State)
	}
	if user.InfoIsSet(entity.InfoPhone) {
		t.Fatal("invalid phone must not be stored")
	}
}

func TestStaleReviewButtonWithoutPendingRecovers(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	// A username toggle with no saved claim intent is a defect path: the
	// user gets the safe reply, not a crash.
	in := f.demandInbound("302", 302, engine.Event{
		Token: command.EncodeDemand(command.DemandEnableUsername),
	})
	if err := f.engine.HandleInbound(ctx, in); err != nil {
		t.Fatalf("HandleInbound: %v", err)
	}
	if text := f.queue.lastText(t, 302); !strings.Contains(text, "something went wrong") {
		t.Fatalf("reply = %q, want the safe reply", text)
	}
}

func TestTakeOnClaimedListingShowsTaken(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	listing := f.publish(t, "pasta")

	if won, err := f.store.ClaimListing(ctx, listing.ID, "telegram-demand-999"); err != nil || !won {
		t.Fatalf("setup claim: won=%t err=%v", won, err)
	}

	in := f.demandInbound("303", 303, engine.Event{Token: takeToken(f.owner, listing)})
	if err := f.engine.HandleInbound(ctx, in); err != nil {
		t.Fatalf("HandleInbound: %v", err)
	}
	if text := f.queue.lastText(t, 303); !strings.Contains(text, "ALREADY TAKEN") {
		t.Fatalf("reply = %q", text)
	}
}
