package supply

import (
	"context"
	"time"

	"foodshare/bot/command"
	"foodshare/bot/engine"
	"foodshare/bot/messages"
	"foodshare/bot/validate"
	"foodshare/entity"
	"foodshare/internal/geo"
	"foodshare/internal/translation"
)

// readyToPostState is the supplier home screen. Typed text starts a new
// draft when the account is approved.
type readyToPostState struct{ *Flow }

func (s *readyToPostState) Intro(ctx context.Context, user *entity.User) entity.Reply {
	lang := user.Language()
	switch approval(user) {
	case approvalPending, approvalNotRequested:
		return entity.Reply{Text: translation.T(lang,
			"Your account is waiting for approval. We will notify you.")}
	case approvalDeclined:
		return entity.Reply{Text: translation.T(lang,
			"Your account was declined. Please, contact %s for any clarifications.",
			s.feedbackBot)}
	}
	return entity.Reply{
		Text: translation.T(lang,
			"Enter the description of the food and when to take it, and I will send it to people:"),
		Buttons: [][]entity.Button{
			entity.Row(entity.Button{
				Text: translation.T(lang, "🗂 My info"),
				Data: "view-info",
			}),
			entity.Row(entity.Button{
				Text: translation.T(lang, "📋 View all messages"),
				Data: command.EncodeSupply(command.SupplyListListings),
			}),
		},
	}
}

func (s *readyToPostState) Handle(ctx context.Context, user *entity.User, ev engine.Event) (entity.Reply, error) {
	if ev.Token == "view-info" {
		return entity.Transition(entity.SupplyViewInfo), nil
	}
	if ev.Text == "" {
		return s.Intro(ctx, user), nil
	}
	if approval(user) != approvalGranted {
		return s.Intro(ctx, user), nil
	}

	if _, err := s.store.CreateListing(ctx, user, ev.Text); err != nil {
		return entity.Reply{}, err
	}
	return entity.Transition(entity.SupplyPosting), nil
}

// postingState accumulates draft lines until the supplier is done.
type postingState struct{ *Flow }

func (s *postingState) draftReply(ctx context.Context, user *entity.User) (entity.Reply, error) {
	lang := user.Language()
	listing, err := s.store.GetListing(ctx, user.EditingID)
	if err != nil {
		return entity.Reply{}, err
	}
	return entity.Reply{
		Text: translation.T(lang, "Your message so far:\n\n%s\n\nAdd more lines or continue.",
			messages.DraftText(lang, listing)),
		Buttons: [][]entity.Button{
			entity.Row(entity.Button{Text: translation.T(lang, "⏰ Set time and send"), Data: "set-time"}),
			entity.Row(entity.Button{Text: translation.T(lang, "❌ Cancel"), Data: "cancel"}),
		},
	}, nil
}

func (s *postingState) Intro(ctx context.Context, user *entity.User) entity.Reply {
	reply, err := s.draftReply(ctx, user)
	if err != nil {
		return entity.Reply{}
	}
	return reply
}

func (s *postingState) Handle(ctx context.Context, user *entity.User, ev engine.Event) (entity.Reply, error) {
	switch {
	case ev.Token == "set-time":
		return entity.Transition(entity.SupplySetTime), nil

	case ev.Token == "cancel":
		if user.EditingID != "" {
			if err := s.store.SetListingLifecycle(ctx, user.EditingID, entity.LifecycleDeactivated); err != nil {
				return entity.Reply{}, err
			}
			if err := s.store.SetEditingListing(ctx, user, ""); err != nil {
				return entity.Reply{}, err
			}
		}
		return entity.Reply{
			Text: translation.T(user.Language(), "The message is discarded."),
		}.WithNext(entity.SupplyReadyToPost), nil

	case ev.Text != "":
		if err := s.store.AppendListingItem(ctx, user.EditingID, ev.Text); err != nil {
			return entity.Reply{}, err
		}
		return s.draftReply(ctx, user)
	}
	return s.Intro(ctx, user), nil
}

// setTimeState collects the pickup window and publishes. Publication is the
// point where account and location preconditions are enforced.
type setTimeState struct{ *Flow }

func (s *setTimeState) Intro(ctx context.Context, user *entity.User) entity.Reply {
	lang := user.Language()
	return entity.Reply{
		Text: translation.T(lang, "When will the food be available? (for example: today 18:00-20:00)"),
		Buttons: [][]entity.Button{entity.Row(entity.Button{
			Text: translation.T(lang, "⬅️ Back"),
			Data: "back-to-posting",
		})},
	}
}

func (s *setTimeState) Handle(ctx context.Context, user *entity.User, ev engine.Event) (entity.Reply, error) {
	lang := user.Language()

	if ev.Token == "back-to-posting" {
		return entity.Transition(entity.SupplyPosting), nil
	}
	if ev.Text == "" {
		return s.Intro(ctx, user), nil
	}

	if approval(user) != approvalGranted {
		return entity.Reply{
			Text: translation.T(lang, "Your account is waiting for approval. We will notify you."),
		}.WithNext(entity.SupplyReadyToPost), nil
	}
	if !geo.IsCitySpecific(user.InfoString(entity.InfoLocation)) {
		return entity.Reply{
			Text: translation.T(lang,
				"Posting requires your city. Please, choose it in your info first."),
		}.WithNext(entity.SupplyViewInfo), nil
	}

	listingID := user.EditingID
	if err := s.store.SetListingTakeTime(ctx, listingID, ev.Text); err != nil {
		return entity.Reply{}, err
	}
	if err := s.store.PublishListing(ctx, listingID, time.Now().UTC()); err != nil {
		return entity.Reply{}, err
	}
	listing, err := s.store.GetListing(ctx, listingID)
	if err != nil {
		return entity.Reply{}, err
	}
	if err := s.notify.PublishListing(ctx, user, listing); err != nil {
		return entity.Reply{}, err
	}
	if err := s.store.SetEditingListing(ctx, user, ""); err != nil {
		return entity.Reply{}, err
	}
	return entity.Reply{
		Text: translation.T(lang, "Information is sent."),
	}.WithNext(entity.SupplyReadyToPost), nil
}

// viewInfoState shows the profile with per-field edit entries.
type viewInfoState struct{ *Flow }

func (s *viewInfoState) Intro(ctx context.Context, user *entity.User) entity.Reply {
	lang := user.Language()
	text := messages.SupplyDescription(lang, user)
	if location := user.InfoString(entity.InfoLocation); location != "" {
		text += "\n" + translation.T(lang, "Location: %s", geo.LocationName(location))
	}
	return entity.Reply{
		Text: text,
		Buttons: [][]entity.Button{
			entity.Row(entity.Button{Text: translation.T(lang, "Change name"), Data: "edit-name"}),
			entity.Row(entity.Button{Text: translation.T(lang, "Change location"), Data: "edit-location"}),
			entity.Row(entity.Button{Text: translation.T(lang, "Change address"), Data: "edit-address"}),
			entity.Row(entity.Button{Text: translation.T(lang, "Change map position"), Data: "edit-coordinates"}),
			entity.Row(entity.Button{Text: translation.T(lang, "Change phone"), Data: "edit-phone"}),
			entity.Row(entity.Button{Text: translation.T(lang, "🌐 Language"), Data: "choose-language"}),
			entity.Row(entity.Button{Text: translation.T(lang, "🗑 Delete my profile"), Data: "delete-profile"}),
			entity.Row(entity.Button{Text: translation.T(lang, "⬅️ Back"), Data: "back"}),
		},
	}
}

func (s *viewInfoState) Handle(ctx context.Context, user *entity.User, ev engine.Event) (entity.Reply, error) {
	lang := user.Language()
	switch ev.Token {
	case "edit-name":
		return entity.Transition(entity.SupplyEditName), nil
	case "edit-location":
		return entity.Transition(entity.SupplyEditLocation), nil
	case "edit-address":
		return entity.Transition(entity.SupplyEditAddress), nil
	case "edit-coordinates":
		return entity.Transition(entity.SupplyEditCoordinates), nil
	case "edit-phone":
		return entity.Transition(entity.SupplyEditPhone), nil
	case "choose-language":
		return messages.ChooseLanguage(lang, entity.WorkflowSupply).
			WithNext(entity.SupplyNoState), nil
	case "delete-profile":
		return entity.Reply{
			Text: translation.T(lang, "Delete your profile and all your data?"),
			Buttons: [][]entity.Button{entity.Row(
				entity.Button{Text: translation.T(lang, "Yes, delete"), Data: "delete-confirm"},
				entity.Button{Text: translation.T(lang, "⬅️ Back"), Data: "back"},
			)},
		}, nil
	case "delete-confirm":
		if err := s.store.DeleteUser(ctx, user); err != nil {
			return entity.Reply{}, err
		}
		return entity.Reply{Text: translation.T(lang,
			"Your profile was removed. Send /start to begin again.")}, nil
	case "back":
		return entity.Transition(entity.SupplyReadyToPost), nil
	}
	return s.Intro(ctx, user), nil
}

type editNameState struct{ *Flow }

func (s *editNameState) Intro(ctx context.Context, user *entity.User) entity.Reply {
	return promptWithBack(user.Language(), "Enter the new name of your place:")
}

func (s *editNameState) Handle(ctx context.Context, user *entity.User, ev engine.Event) (entity.Reply, error) {
	if ev.Token == "cancel-edit" {
		return entity.Transition(entity.SupplyViewInfo), nil
	}
	if ev.Text == "" {
		return s.Intro(ctx, user), nil
	}
	if err := s.store.SetInfo(ctx, user, entity.InfoName, ev.Text); err != nil {
		return entity.Reply{}, err
	}
	return entity.Transition(entity.SupplyViewInfo), nil
}

// editLocationState changes the location and forces a re-entry of the
// address, since the old one no longer applies.
type editLocationState struct{ *Flow }

func (s *editLocationState) Intro(ctx context.Context, user *entity.User) entity.Reply {
	lang := user.Language()
	buttons := locationKeyboard(lang)
	buttons = append(buttons, entity.Row(entity.Button{
		Text: translation.T(lang, "⬅️ Back"),
		Data: "cancel-edit",
	}))
	return entity.Reply{
		Text:    translation.T(lang, "Where are you located?"),
		Buttons: buttons,
	}
}

func (s *editLocationState) Handle(ctx context.Context, user *entity.User, ev engine.Event) (entity.Reply, error) {
	if ev.Token == "cancel-edit" {
		return entity.Transition(entity.SupplyViewInfo), nil
	}
	if ev.Token == "" || !validLocation(ev.Token) {
		return s.Intro(ctx, user), nil
	}
	if err := s.store.SetInfo(ctx, user, entity.InfoLocation, ev.Token); err != nil {
		return entity.Reply{}, err
	}
	return entity.Transition(entity.SupplyEditAddress), nil
}

type editAddressState struct{ *Flow }

func (s *editAddressState) Intro(ctx context.Context, user *entity.User) entity.Reply {
	return promptWithBack(user.Language(), "Enter the new address of the place:")
}

func (s *editAddressState) Handle(ctx context.Context, user *entity.User, ev engine.Event) (entity.Reply, error) {
	if ev.Token == "cancel-edit" {
		return entity.Transition(entity.SupplyViewInfo), nil
	}
	if ev.Text == "" {
		return s.Intro(ctx, user), nil
	}
	if err := s.storeAddress(ctx, user, ev.Text); err != nil {
		return entity.Reply{}, err
	}
	return entity.Transition(entity.SupplyEditCoordinates), nil
}

// editPhoneState uses a text keyboard: the platform contact button only
// works there.
type editPhoneState struct{ *Flow }

func (s *editPhoneState) Intro(ctx context.Context, user *entity.User) entity.Reply {
	lang := user.Language()
	return entity.Reply{
		Text: translation.T(lang, "Enter or send the new phone number:"),
		Buttons: [][]entity.Button{
			entity.Row(entity.Button{Text: translation.T(lang, "📞 Send phone"), RequestContact: true}),
			entity.Row(
				entity.Button{Text: translation.T(lang, "❌ Delete phone")},
				entity.Button{Text: translation.T(lang, "⬅️ Back")},
			),
		},
		IsTextButtons: true,
	}
}

func (s *editPhoneState) Handle(ctx context.Context, user *entity.User, ev engine.Event) (entity.Reply, error) {
	lang := user.Language()
	switch ev.Text {
	case "":
		return s.Intro(ctx, user), nil
	case translation.T(lang, "⬅️ Back"):
		return entity.Transition(entity.SupplyViewInfo), nil
	case translation.T(lang, "❌ Delete phone"):
		if err := s.store.UnsetInfo(ctx, user, entity.InfoPhone); err != nil {
			return entity.Reply{}, err
		}
		return entity.Reply{
			Text: translation.T(lang, "The phone number is removed."),
		}.WithNext(entity.SupplyViewInfo), nil
	}
	if err := validate.Phone(ev.Text); err != nil {
		return entity.Reply{Text: translation.T(lang,
			"The phone number doesn't look right. Try again, please:")}, nil
	}
	if err := s.store.SetInfo(ctx, user, entity.InfoPhone, ev.Text); err != nil {
		return entity.Reply{}, err
	}
	return entity.Transition(entity.SupplyViewInfo), nil
}

// cancelReasonState collects the free-text reason before a booking is
// rejected and the listing reopened.
type cancelReasonState struct{ *Flow }

func (s *cancelReasonState) Intro(ctx context.Context, user *entity.User) entity.Reply {
	return entity.Reply{Text: translation.T(user.Language(),
		"Please, describe shortly why you are rejecting the request:")}
}

func (s *cancelReasonState) Handle(ctx context.Context, user *entity.User, ev engine.Event) (entity.Reply, error) {
	lang := user.Language()
	if ev.Text == "" {
		return s.Intro(ctx, user), nil
	}

	listing, err := s.store.GetListing(ctx, user.EditingID)
	if err != nil {
		return entity.Reply{}, err
	}
	if err := s.notify.DemandRejected(ctx, user, listing, ev.Text); err != nil {
		return entity.Reply{}, err
	}
	if err := s.store.ReleaseClaim(ctx, listing.ID); err != nil {
		return entity.Reply{}, err
	}
	if err := s.store.SetEditingListing(ctx, user, ""); err != nil {
		return entity.Reply{}, err
	}
	return entity.Reply{
		Text: translation.T(lang, "The request is rejected and your message is opened again."),
	}.WithNext(entity.SupplyReadyToPost), nil
}

// noState parks the conversation while an out-of-band choice (language) is
// pending. Any activity returns the user to the normal flow.
type noState struct{ *Flow }

func (s *noState) Intro(ctx context.Context, user *entity.User) entity.Reply {
	return entity.Reply{}
}

func (s *noState) Handle(ctx context.Context, user *entity.User, ev engine.Event) (entity.Reply, error) {
	return entity.Transition(s.nextOnboardingState(user)), nil
}

func promptWithBack(lang, source string) entity.Reply {
	return entity.Reply{
		Text: translation.T(lang, source),
		Buttons: [][]entity.Button{entity.Row(entity.Button{
			Text: translation.T(lang, "⬅️ Back"),
			Data: "cancel-edit",
		})},
	}
}
