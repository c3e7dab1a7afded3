package supply_test

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

	return &fixture{store: store, queue: cq, engine: eng}
}

func (f *fixture) seedApprovedOwner(chatID int64) *entity.User {
	owner := entity.NewUser(entity.Identity{
		Provider: entity.ProviderTelegram,
		Workflow: entity.WorkflowSupply,
		UserID:   "100",
	}, chatID, "cafe_owner")
	owner.State = entity.SupplyReadyToPost
	owner.Info[entity.InfoName] = "Good Cafe"
	owner.Info[entity.InfoLocation] = "by:minsk"
	owner.Info[entity.InfoAddress] = "Main street 1"
	owner.Info[entity.InfoPhone] = "+375291112233"
	owner.Info[entity.InfoApprovedCoordinates] = false
	owner.Info[entity.InfoApprovedSupply] = true
	f.store.Seed(owner)
	return owner
}

func (f *fixture) supplyInbound(userID string, chatID int64, ev engine.Event) engine.Inbound {
	return engine.Inbound{
		Identity: entity.Identity{
			Provider: entity.ProviderTelegram,
			Workflow: entity.WorkflowSupply,
			UserID:   userID,
		},
		ChatID:   chatID,
		Username: "supplier" + userID,
		Event:    ev,
	}
}

func (f *fixture) supplyUser(t *testing.T, userID string) *entity.User {
	t.Helper()
	user, err := f.store.GetUser(context.Background(), entity.Identity{
		Provider: entity.ProviderTelegram,
		Workflow: entity.WorkflowSupply,
		UserID:   userID,
	})
	if err != nil {
		t.Fatalf("GetUser(%s): %v", userID, err)
	}
	return user
}

func TestOnboardingChain(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	steps := []engine.Event{
		{Slash: "start"},
		{Text: "Soup Kitchen"},
		{Token: "by:minsk"},
		{Text: "Niamiha street 3"},
		{Coordinates: &entity.Coordinates{Latitude: "53.9", Longitude: "27.55"}},
		{Text: "+375441234567"},
	}
	wantStates := []string{
		entity.SupplyForceName,
		entity.SupplyForceLocation,
		entity.SupplyForceAddress,
		entity.SupplyForceCoordinates,
		entity.SupplyInitialEditPhone,
		entity.SupplyReadyToPost,
	}
	for i, ev := range steps {
		if err := f.engine.HandleInbound(ctx, f.supplyInbound("500", 500, ev)); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if user := f.supplyUser(t, "500"); user.State != wantStates[i] {
			t.Fatalf("after step %d state = %q, want %q", i, user.State, wantStates[i])
		}
	}

	user := f.supplyUser(t, "500")
	if user.InfoString(entity.InfoName) != "Soup Kitchen" {
		t.Fatalf("name = %q", user.InfoString(entity.InfoName))
	}
	if user.InfoString(entity.InfoLocation) != "by:minsk" {
		t.Fatalf("location = %q", user.InfoString(entity.InfoLocation))
	}
	if got := user.ApprovedCoordinates(); len(got) != 2 || got[0] != "53.9" {
		t.Fatalf("approved coordinates = %v", got)
	}
	if user.InfoString(entity.InfoPhone) != "+375441234567" {
		t.Fatalf("phone = %q", user.InfoString(entity.InfoPhone))
	}
	// Moderation was requested, verdict still open.
	if !user.ApprovedSupplyIsSet() {
		t.Fatal("moderation marker missing after onboarding")
	}
	if text := f.queue.lastText(t, 500); !strings.Contains(text, "waiting for approval") {
		t.Fatalf("home screen = %q, want the pending-approval note", text)
	}
}

func TestPublishBroadcastsToActiveDemandUsers(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	f.seedApprovedOwner(100)

	demandChats := []int64{901, 902, 903}
	for i, chat := range demandChats {
		id := entity.Identity{
			Provider: entity.ProviderTelegram,
			Workflow: entity.WorkflowDemand,
			UserID:   string(rune('a' + i)),
		}
		if _, err := f.store.GetOrCreateUser(ctx, id, chat, ""); err != nil {
			t.Fatalf("seed demand user: %v", err)
		}
	}

	steps := []engine.Event{
		{Text: "ten sandwiches"},
		{Token: "set-time"},
		{Text: "today 18:00-20:00"},
	}
	for i, ev := range steps {
		if err := f.engine.HandleInbound(ctx, f.supplyInbound("100", 100, ev)); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	owner := f.supplyUser(t, "100")
	if owner.State != entity.SupplyReadyToPost {
		t.Fatalf("owner state = %q, want back home", owner.State)
	}
	if owner.EditingID != "" {
		t.Fatalf("editing id = %q, want cleared after publish", owner.EditingID)
	}

	listings, err := f.store.ListRecentListings(ctx, owner, time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("ListRecentListings: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("listings = %d, want 1", len(listings))
	}
	listing := listings[0]
	if listing.Lifecycle != entity.LifecyclePublished {
		t.Fatalf("lifecycle = %q", listing.Lifecycle)
	}
	if listing.TakeTime != "today 18:00-20:00" {
		t.Fatalf("take_time = %q", listing.TakeTime)
	}

	for _, chat := range demandChats {
		envs := f.queue.forChat(chat)
		if len(envs) != 1 {
			t.Fatalf("chat %d got %d envelopes, want 1", chat, len(envs))
		}
		env := envs[0]
		if env.Workflow != entity.WorkflowDemand {
			t.Fatalf("broadcast on %q workflow", env.Workflow)
		}
		if !strings.Contains(env.Reply.Text, "ten sandwiches") {
			t.Fatalf("broadcast text = %q", env.Reply.Text)
		}
		takeData := command.EncodeDemand(command.DemandTake, "telegram", "100", listing.ID)
		if env.Reply.Buttons[0][0].Data != takeData {
			t.Fatalf("take button = %q, want %q", env.Reply.Buttons[0][0].Data, takeData)
		}
	}
}

func TestPublishRequiresCitySpecificLocation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedApprovedOwner(100)
	if err := f.store.SetInfo(ctx, owner, entity.InfoLocation, "other"); err != nil {
		t.Fatalf("SetInfo: %v", err)
	}

	steps := []engine.Event{
		{Text: "pierogi"},
		{Token: "set-time"},
		{Text: "tomorrow noon"},
	}
	for i, ev := range steps {
		if err := f.engine.HandleInbound(ctx, f.supplyInbound("100", 100, ev)); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	listings, err := f.store.ListRecentListings(ctx, owner, time.Now().UTC().Add(-time.Hour))
	if err != nil {
		t.Fatalf("ListRecentListings: %v", err)
	}
	if len(listings) != 0 {
		t.Fatalf("published %d listings despite country-level location", len(listings))
	}
	if user := f.supplyUser(t, "100"); user.State != entity.SupplyViewInfo {
		t.Fatalf("state = %q, want the profile screen", user.State)
	}
}

func TestRejectBookingWithReasonReopens(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedApprovedOwner(100)

	claimerID := entity.Identity{
		Provider: entity.ProviderTelegram,
		Workflow: entity.WorkflowDemand,
		UserID:   "700",
	}
	if _, err := f.store.GetOrCreateUser(ctx, claimerID, 700, "hungry"); err != nil {
		t.Fatalf("seed claimer: %v", err)
	}

	listing, err := f.store.CreateListing(ctx, owner, "bread")
	if err != nil {
		t.Fatalf("CreateListing: %v", err)
	}
	if err := f.store.PublishListing(ctx, listing.ID, time.Now().UTC()); err != nil {
		t.Fatalf("PublishListing: %v", err)
	}
	if won, err := f.store.ClaimListing(ctx, listing.ID, claimerID.Key()); err != nil || !won {
		t.Fatalf("setup claim: won=%t err=%v", won, err)
	}
	if err := f.store.SetEditingListing(ctx, owner, ""); err != nil {
		t.Fatalf("SetEditingListing: %v", err)
	}

	steps := []engine.Event{
		{Token: command.EncodeSupply(command.SupplyCancelBooking, listing.ID)},
		{Text: "Sorry, we closed early today"},
	}
	for i, ev := range steps {
		if err := f.engine.HandleInbound(ctx, f.supplyInbound("100", 100, ev)); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	got, err := f.store.GetListing(ctx, listing.ID)
	if err != nil {
		t.Fatalf("GetListing: %v", err)
	}
	if got.Lifecycle != entity.LifecyclePublished || got.ClaimedBy != "" {
		t.Fatalf("listing after reject: lifecycle=%q claimed_by=%q", got.Lifecycle, got.ClaimedBy)
	}

	text := f.queue.lastText(t, 700)
	if !strings.Contains(text, "Sorry, we closed early today") {
		t.Fatalf("claimer reply = %q, want the quoted reason", text)
	}
	if user := f.supplyUser(t, "100"); user.State != entity.SupplyReadyToPost {
		t.Fatalf("owner state = %q", user.State)
	}
}

func TestApproveBookingNotifiesClaimer(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	owner := f.seedApprovedOwner(100)

	claimerID := entity.Identity{
		Provider: entity.ProviderTelegram,
		Workflow: entity.WorkflowDemand,
		UserID:   "701",
	}
	if _, err := f.store.GetOrCreateUser(ctx, claimerID, 701, "hungry"); err != nil {
		t.Fatalf("seed claimer: %v", err)
	}
	listing, err := f.store.CreateListing(ctx, owner, "cake")
	if err != nil {
		t.Fatalf("CreateListing: %v", err)
	}
	if err := f.store.PublishListing(ctx, listing.ID, time.Now().UTC()); err != nil {
		t.Fatalf("PublishListing: %v", err)
	}
	if won, err := f.store.ClaimListing(ctx, listing.ID, claimerID.Key()); err != nil || !won {
		t.Fatalf("setup claim: won=%t err=%v", won, err)
	}

	in := f.supplyInbound("100", 100, engine.Event{
		Token: command.EncodeSupply(command.SupplyApproveBooking, listing.ID),
	})
	if err := f.engine.HandleInbound(ctx, in); err != nil {
		t.Fatalf("HandleInbound: %v", err)
	}

	got, err := f.store.GetListing(ctx, listing.ID)
	if err != nil {
		t.Fatalf("GetListing: %v", err)
	}
	if got.Lifecycle != entity.LifecycleApproved {
		t.Fatalf("lifecycle = %q, want approved", got.Lifecycle)
	}
	if text := f.queue.lastText(t, 701); !strings.Contains(text, "Good Cafe") {
		t.Fatalf("claimer reply = %q", text)
	}
}

func TestSupplierModeration(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	admin := entity.NewUser(entity.Identity{
		Provider: entity.ProviderTelegram,
		Workflow: entity.WorkflowSupply,
		UserID:   "1",
	}, 10, "the_admin")
	admin.Admin = true
	f.store.Seed(admin)

	// A fresh supplier walks the whole onboarding.
	steps := []engine.Event{
		{Slash: "start"},
		{Text: "New Bakery"},
		{Token: "by:minsk"},
		{Text: "Side street 9"},
		{Token: "skip-coordinates"},
		{Text: "+375251000000"},
	}
	for i, ev := range steps {
		if err := f.engine.HandleInbound(ctx, f.supplyInbound("600", 600, ev)); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}

	adminEnvs := f.queue.forChat(10)
	if len(adminEnvs) != 1 {
		t.Fatalf("admin notifications = %d, want 1", len(adminEnvs))
	}
	supplierKey := "telegram-supply-600"
	approveData := command.EncodeSupply(command.SupplyApproveSupplier, supplierKey)
	found := false
	for _, row := range adminEnvs[0].Reply.Buttons {
		for _, btn := range row {
			if btn.Data == approveData {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("moderation request lacks approve button: %+v", adminEnvs[0].Reply.Buttons)
	}

	// The admin approves; the supplier is unlocked and congratulated.
	in := f.supplyInbound("1", 10, engine.Event{Token: approveData})
	if err := f.engine.HandleInbound(ctx, in); err != nil {
		t.Fatalf("approve: %v", err)
	}

	supplier := f.supplyUser(t, "600")
	if !supplier.InfoBool(entity.InfoApprovedSupply) {
		t.Fatal("supplier not approved after admin verdict")
	}
	found = false
	for _, env := range f.queue.forChat(600) {
		if strings.Contains(env.Reply.Text, "approved") {
			found = true
		}
	}
	if !found {
		t.Fatal("supplier never told about the approval")
	}
}

func TestModerationByNonAdminIsRefused(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	f.seedApprovedOwner(100)

	target := entity.NewUser(entity.Identity{
		Provider: entity.ProviderTelegram,
		Workflow: entity.WorkflowSupply,
		UserID:   "601",
	}, 601, "newbie")
	f.store.Seed(target)

	in := f.supplyInbound("100", 100, engine.Event{
		Token: command.EncodeSupply(command.SupplyApproveSupplier, target.Key()),
	})
	if err := f.engine.HandleInbound(ctx, in); err != nil {
		t.Fatalf("HandleInbound: %v", err)
	}

	got, err := f.store.GetUser(ctx, target.Identity)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if got.ApprovedSupplyIsSet() {
		t.Fatal("non-admin verdict must not stick")
	}
	if text := f.queue.lastText(t, 100); !strings.Contains(text, "something went wrong") {
		t.Fatalf("reply = %q, want the safe reply", text)
	}
}
