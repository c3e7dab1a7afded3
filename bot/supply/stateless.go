package supply

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"foodshare/bot/command"
	"foodshare/bot/messages"
	"foodshare/entity"
	"foodshare/internal/translation"
)

func (f *Flow) ownListing(ctx context.Context, user *entity.User, listingID string) (*entity.Listing, error) {
	listing, err := f.store.GetListing(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != user.Key() {
		return nil, fmt.Errorf("listing %s is not owned by %s", listingID, user.Key())
	}
	return listing, nil
}

func (f *Flow) approveBooking(ctx context.Context, user *entity.User, listingID string) (entity.Reply, bool, error) {
	lang := user.Language()
	listing, err := f.ownListing(ctx, user, listingID)
	if err != nil {
		return entity.Reply{}, true, err
	}
	if listing.Lifecycle != entity.LifecycleBooked {
		return entity.Reply{Text: translation.T(lang,
			"This request is no longer pending.")}, true, nil
	}
	if err := f.store.SetListingLifecycle(ctx, listingID, entity.LifecycleApproved); err != nil {
		return entity.Reply{}, true, err
	}
	if err := f.notify.DemandApproved(ctx, user, listing); err != nil {
		return entity.Reply{}, true, err
	}
	return entity.Reply{
		Text: translation.T(lang, "The request is approved."),
		Buttons: [][]entity.Button{entity.Row(entity.Button{
			Text: translation.T(lang, "🤝 Food is handed over"),
			Data: command.EncodeSupply(command.SupplyCompleteHandover, listingID),
		})},
	}, true, nil
}

func (f *Flow) completeHandover(ctx context.Context, user *entity.User, listingID string) (entity.Reply, bool, error) {
	lang := user.Language()
	listing, err := f.ownListing(ctx, user, listingID)
	if err != nil {
		return entity.Reply{}, true, err
	}
	if listing.Lifecycle != entity.LifecycleApproved {
		return entity.Reply{Text: translation.T(lang,
			"This request is no longer pending.")}, true, nil
	}
	if err := f.store.SetListingLifecycle(ctx, listingID, entity.LifecycleTaken); err != nil {
		return entity.Reply{}, true, err
	}
	if err := f.notify.DemandTaken(ctx, user, listing); err != nil {
		return entity.Reply{}, true, err
	}
	return entity.Reply{Text: translation.T(lang, "Great, the handover is recorded. Thank you!")}, true, nil
}

// listListings shows the supplier's recent posts as one button per listing.
func (f *Flow) listListings(ctx context.Context, user *entity.User) (entity.Reply, bool, error) {
	lang := user.Language()
	listings, err := f.store.ListRecentListings(ctx, user, time.Now().UTC().Add(-listingHistory))
	if err != nil {
		return entity.Reply{}, true, err
	}
	if len(listings) == 0 {
		return entity.Reply{Text: translation.T(lang,
			"You have no messages in the last days.")}, true, nil
	}

	rows := make([][]entity.Button, 0, len(listings))
	for _, listing := range listings {
		name := command.SupplyShowOpen
		if listing.IsClaimed() {
			name = command.SupplyShowBooked
		}
		rows = append(rows, entity.Row(entity.Button{
			Text: listingButtonLabel(lang, listing),
			Data: command.EncodeSupply(name, listing.ID),
		}))
	}
	return entity.Reply{
		Text:    translation.T(lang, "Your messages:"),
		Buttons: rows,
	}, true, nil
}

func listingButtonLabel(lang string, listing *entity.Listing) string {
	label := ""
	if len(listing.Items) > 0 {
		label = listing.Items[0]
	}
	if r := []rune(label); len(r) > 32 {
		label = string(r[:32]) + "…"
	}
	var status string
	switch listing.Lifecycle {
	case entity.LifecyclePublished:
		status = translation.T(lang, "open")
	case entity.LifecycleBooked:
		status = translation.T(lang, "requested")
	case entity.LifecycleApproved:
		status = translation.T(lang, "approved")
	case entity.LifecycleTaken:
		status = translation.T(lang, "taken")
	default:
		status = string(listing.Lifecycle)
	}
	return fmt.Sprintf("%s (%s)", label, status)
}

func (f *Flow) showBooked(ctx context.Context, user *entity.User, listingID string) (entity.Reply, bool, error) {
	lang := user.Language()
	listing, err := f.ownListing(ctx, user, listingID)
	if err != nil {
		return entity.Reply{}, true, err
	}
	if !listing.IsClaimed() {
		return f.showOpen(ctx, user, listingID)
	}
	demand, err := f.store.GetUserByKey(ctx, listing.ClaimedBy)
	if err != nil {
		return entity.Reply{}, true, err
	}

	if listing.Lifecycle == entity.LifecycleBooked {
		return messages.SupplyBookedMessage(lang, demand, listing), true, nil
	}
	reply := entity.Reply{
		Text: messages.BookedForOwnerText(lang, demand, listing),
	}
	if listing.Lifecycle == entity.LifecycleApproved {
		reply.Buttons = [][]entity.Button{entity.Row(entity.Button{
			Text: translation.T(lang, "🤝 Food is handed over"),
			Data: command.EncodeSupply(command.SupplyCompleteHandover, listingID),
		})}
	}
	return reply, true, nil
}

func (f *Flow) showOpen(ctx context.Context, user *entity.User, listingID string) (entity.Reply, bool, error) {
	lang := user.Language()
	listing, err := f.ownListing(ctx, user, listingID)
	if err != nil {
		return entity.Reply{}, true, err
	}

	reply := entity.Reply{Text: messages.ListingText(lang, listing)}
	if listing.IsOpen() {
		reply.Buttons = [][]entity.Button{entity.Row(entity.Button{
			Text: translation.T(lang, "🚫 Deactivate"),
			Data: command.EncodeSupply(command.SupplyDeactivateListing, listingID),
		})}
	}
	return reply, true, nil
}

func (f *Flow) deactivate(ctx context.Context, user *entity.User, listingID string) (entity.Reply, bool, error) {
	lang := user.Language()
	listing, err := f.ownListing(ctx, user, listingID)
	if err != nil {
		return entity.Reply{}, true, err
	}
	if !listing.IsOpen() {
		return entity.Reply{Text: translation.T(lang,
			"The message cannot be deactivated anymore.")}, true, nil
	}
	if err := f.store.SetListingLifecycle(ctx, listingID, entity.LifecycleDeactivated); err != nil {
		return entity.Reply{}, true, err
	}
	return entity.Reply{Text: translation.T(lang, "The message is deactivated.")}, true, nil
}

// moderateSupplier records an admin verdict and notifies the supplier.
func (f *Flow) moderateSupplier(ctx context.Context, admin *entity.User, supplierKey string, approved bool) (entity.Reply, bool, error) {
	lang := admin.Language()
	if !admin.Admin {
		f.log.Warn("supplier moderation by non-admin",
			slog.String("user", admin.Key()),
			slog.String("target", supplierKey),
		)
		return entity.Reply{}, true, fmt.Errorf("user %s is not an admin", admin.Key())
	}

	supplier, err := f.store.GetUserByKey(ctx, supplierKey)
	if err != nil {
		return entity.Reply{}, true, err
	}
	if err := f.store.SetInfo(ctx, supplier, entity.InfoApprovedSupply, approved); err != nil {
		return entity.Reply{}, true, err
	}

	if approved {
		f.notify.SupplierApproved(ctx, supplier)
		return entity.Reply{Text: messages.SupplierApprovedText(lang, supplier)}, true, nil
	}
	f.notify.SupplierDeclined(ctx, supplier, f.feedbackBot)
	return entity.Reply{Text: messages.SupplierDeclinedText(lang, supplier)}, true, nil
}
