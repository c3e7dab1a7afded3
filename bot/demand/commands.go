package demand

import (
	"context"
	"log/slog"

	"foodshare/bot/command"
	"foodshare/bot/messages"
	"foodshare/entity"
	"foodshare/internal/translation"
)

// reviewReply is the pre-claim confirmation screen: the listing, the
// profile exactly as the supplier will see it, and the sub-dialog entries
// for fixing it up.
func reviewReply(lang string, user, supply *entity.User, listing *entity.Listing) entity.Reply {
	ref := []string{string(supply.Provider), supply.UserID, listing.ID}

	rows := [][]entity.Button{
		entity.Row(entity.Button{
			Text: translation.T(lang, "✏️ Name"),
			Data: command.EncodeDemand(command.DemandEditName),
		}),
	}
	if user.InfoString(entity.InfoUsername) != "" {
		if user.InfoBool(entity.InfoDisplayUsername) {
			rows = append(rows, entity.Row(entity.Button{
				Text: translation.T(lang, "Hide my Telegram username"),
				Data: command.EncodeDemand(command.DemandDisableUsername),
			}))
		} else {
			rows = append(rows, entity.Row(entity.Button{
				Text: translation.T(lang, "Share my Telegram username"),
				Data: command.EncodeDemand(command.DemandEnableUsername),
			}))
		}
	}
	rows = append(rows,
		entity.Row(entity.Button{
			Text: translation.T(lang, "🌱 Social status"),
			Data: command.EncodeDemand(command.DemandEditSocialStatus),
		}),
		entity.Row(entity.Button{
			Text: translation.T(lang, "📞 Phone"),
			Data: command.EncodeDemand(command.DemandEditPhone),
		}),
	)
	if supply.ApprovedCoordinates() != nil {
		rows = append(rows, entity.Row(entity.Button{
			Text: translation.T(lang, "🌍 Map"),
			Data: command.EncodeDemand(command.DemandMapTake, ref...),
		}))
	}
	rows = append(rows, entity.Row(
		entity.Button{
			Text: translation.T(lang, "Cancel"),
			Data: command.EncodeDemand(command.DemandDefault),
		},
		entity.Button{
			Text: translation.T(lang, "Confirm ✅"),
			Data: command.EncodeDemand(command.DemandFinishTake, ref...),
		},
	))

	return entity.Reply{
		Text: translation.T(lang,
			"You are requesting:\n%s\n------\nThe supplier will see:\n\n%s",
			messages.ListingText(lang, listing),
			messages.DemandDescription(lang, user),
		),
		Buttons: rows,
	}
}

// startTake saves the claim intent as the continuation and shows the
// review screen. Sub-dialogs re-render it from the saved command.
func (f *Flow) startTake(ctx context.Context, user *entity.User, cmd entity.Command) (entity.Reply, bool, error) {
	lang := user.Language()
	supply, listing, err := f.listingRef(ctx, cmd)
	if err != nil {
		return entity.Reply{}, true, err
	}
	if !listing.IsOpen() {
		return messages.FoodTakenMessage(lang, user, listing,
			messages.ListingText(lang, listing)), true, nil
	}
	if err := f.store.SavePending(ctx, user, cmd); err != nil {
		return entity.Reply{}, true, err
	}
	return reviewReply(lang, user, supply, listing), true, nil
}

// resumeReview re-renders the review screen after a profile sub-dialog
// from the saved continuation.
func (f *Flow) resumeReview(ctx context.Context, user *entity.User) (entity.Reply, error) {
	cmd, err := f.store.LoadPending(ctx, user)
	if err != nil {
		return entity.Reply{}, err
	}
	supply, listing, err := f.listingRef(ctx, cmd)
	if err != nil {
		return entity.Reply{}, err
	}
	lang := user.Language()
	if !listing.IsOpen() {
		return messages.FoodTakenMessage(lang, user, listing,
			messages.ListingText(lang, listing)).WithNext(entity.DemandDefault), nil
	}
	return reviewReply(lang, user, supply, listing).WithNext(entity.DemandDefault), nil
}

// finishTake is the claim itself. The conditional write decides the race;
// everyone but the winner gets the taken screen.
func (f *Flow) finishTake(ctx context.Context, user *entity.User, cmd entity.Command) (entity.Reply, bool, error) {
	lang := user.Language()
	supply, listing, err := f.listingRef(ctx, cmd)
	if err != nil {
		return entity.Reply{}, true, err
	}

	won, err := f.store.ClaimListing(ctx, listing.ID, user.Key())
	if err != nil {
		return entity.Reply{}, true, err
	}
	if !won {
		listing, err = f.store.GetListing(ctx, listing.ID)
		if err != nil {
			return entity.Reply{}, true, err
		}
		return messages.FoodTakenMessage(lang, user, listing,
			messages.ListingText(lang, listing)), true, nil
	}

	listing.ClaimedBy = user.Key()
	listing.Lifecycle = entity.LifecycleBooked
	f.notify.SupplyBooked(ctx, supply, user, listing)
	f.log.Info("listing claimed",
		slog.String("listing", listing.ID),
		slog.String("by", user.Key()),
	)

	reply := messages.DemandBookedMessage(lang, supply, listing,
		translation.T(lang, "Done! The supplier will confirm your request soon."))
	return reply, true, nil
}

// fullInfo is the expanded listing view with the supplier's description.
func (f *Flow) fullInfo(ctx context.Context, user *entity.User, cmd entity.Command) (entity.Reply, bool, error) {
	lang := user.Language()
	supply, listing, err := f.listingRef(ctx, cmd)
	if err != nil {
		return entity.Reply{}, true, err
	}
	if !listing.IsOpen() {
		return messages.FoodTakenMessage(lang, user, listing,
			messages.DemandFullText(lang, supply, listing)), true, nil
	}

	ref := []string{string(supply.Provider), supply.UserID, listing.ID}
	rows := [][]entity.Button{entity.Row(
		entity.Button{
			Text: translation.T(lang, "Take it"),
			Data: command.EncodeDemand(command.DemandTake, ref...),
		},
		entity.Button{
			Text: translation.T(lang, "Less"),
			Data: command.EncodeDemand(command.DemandShortInfo, ref...),
		},
	)}
	if supply.ApprovedCoordinates() != nil {
		rows = append(rows, entity.Row(entity.Button{
			Text: translation.T(lang, "🌍 Map"),
			Data: command.EncodeDemand(command.DemandMapInfo, ref...),
		}))
	}
	return entity.Reply{
		Text:    messages.DemandFullText(lang, supply, listing),
		Buttons: rows,
	}, true, nil
}

// shortInfo collapses back to the broadcast teaser.
func (f *Flow) shortInfo(ctx context.Context, user *entity.User, cmd entity.Command) (entity.Reply, bool, error) {
	lang := user.Language()
	supply, listing, err := f.listingRef(ctx, cmd)
	if err != nil {
		return entity.Reply{}, true, err
	}
	if !listing.IsOpen() {
		return messages.FoodTakenMessage(lang, user, listing,
			messages.ListingText(lang, listing)), true, nil
	}
	return messages.DemandShortMessage(lang, supply, listing), true, nil
}

// mapView shows the supplier's confirmed position with a way back to the
// view the user came from.
func (f *Flow) mapView(ctx context.Context, user *entity.User, cmd entity.Command, backCommand string) (entity.Reply, bool, error) {
	lang := user.Language()
	supply, listing, err := f.listingRef(ctx, cmd)
	if err != nil {
		return entity.Reply{}, true, err
	}
	coords := supply.ApprovedCoordinates()
	if coords == nil {
		return entity.Reply{Text: translation.T(lang,
			"The supplier has no confirmed position on the map.")}, true, nil
	}
	back := entity.Button{
		Text: translation.T(lang, "Back"),
		Data: command.EncodeDemand(backCommand,
			string(supply.Provider), supply.UserID, listing.ID),
	}
	return messages.MapReply(coords, back), true, nil
}

// bookedView re-renders the held listing.
func (f *Flow) bookedView(ctx context.Context, user *entity.User, cmd entity.Command) (entity.Reply, bool, error) {
	lang := user.Language()
	supply, listing, err := f.listingRef(ctx, cmd)
	if err != nil {
		return entity.Reply{}, true, err
	}
	return messages.DemandBookedMessage(lang, supply, listing, ""), true, nil
}

func (f *Flow) setSocialStatus(ctx context.Context, user *entity.User, status string) (entity.Reply, bool, error) {
	valid := false
	for _, s := range entity.SocialStatuses {
		if string(s) == status {
			valid = true
			break
		}
	}
	if !valid {
		return entity.Reply{}, true, nil
	}
	if err := f.store.SetInfo(ctx, user, entity.InfoSocialStatus, status); err != nil {
		return entity.Reply{}, true, err
	}
	reply, err := f.resumeReview(ctx, user)
	return reply, true, err
}

func (f *Flow) toggleUsername(ctx context.Context, user *entity.User, show bool) (entity.Reply, bool, error) {
	if err := f.store.SetInfo(ctx, user, entity.InfoDisplayUsername, show); err != nil {
		return entity.Reply{}, true, err
	}
	reply, err := f.resumeReview(ctx, user)
	return reply, true, err
}
