// Package supply implements the supplier-side conversation: onboarding,
// profile editing, listing drafting and publication, and booking moderation.
package supply

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"foodshare/bot/command"
	"foodshare/bot/engine"
	"foodshare/bot/messages"
	"foodshare/bot/notify"
	"foodshare/entity"
	"foodshare/internal/geo"
	"foodshare/internal/lib/sl"
	"foodshare/internal/translation"
)

// listingHistory bounds the "my listings" overview.
const listingHistory = 7 * 24 * time.Hour

// Flow wires the supply state table to its collaborators.
type Flow struct {
	store       engine.Store
	notify      *notify.Service
	geo         *geo.Resolver
	feedbackBot string
	log         *slog.Logger
}

func New(store engine.Store, n *notify.Service, resolver *geo.Resolver, feedbackBot string, log *slog.Logger) *Flow {
	return &Flow{
		store:       store,
		notify:      n,
		geo:         resolver,
		feedbackBot: feedbackBot,
		log:         log.With(sl.Module("supply")),
	}
}

// Workflow builds the immutable supply state table.
func (f *Flow) Workflow() *engine.Workflow {
	return &engine.Workflow{
		Name: entity.WorkflowSupply,
		States: map[string]engine.State{
			entity.SupplyDefault:             &defaultState{f},
			entity.SupplyForceName:           &forceNameState{f},
			entity.SupplyForceLocation:       &forceLocationState{f},
			entity.SupplyForceAddress:        &forceAddressState{f},
			entity.SupplyForceCoordinates:    &coordinatesState{Flow: f, next: nil},
			entity.SupplyInitialEditPhone:    &initialPhoneState{f},
			entity.SupplyReadyToPost:         &readyToPostState{f},
			entity.SupplyPosting:             &postingState{f},
			entity.SupplySetTime:             &setTimeState{f},
			entity.SupplyViewInfo:            &viewInfoState{f},
			entity.SupplyEditName:            &editNameState{f},
			entity.SupplyEditLocation:        &editLocationState{f},
			entity.SupplyEditAddress:         &editAddressState{f},
			entity.SupplyEditCoordinates:     &coordinatesState{Flow: f, next: fixed(entity.SupplyViewInfo)},
			entity.SupplyEditPhone:           &editPhoneState{f},
			entity.SupplyBookingCancelReason: &cancelReasonState{f},
			entity.SupplyNoState:             &noState{f},
		},
		Stateless: f.stateless,
		Slash:     f.slash,
		Recover: func(user *entity.User) entity.Reply {
			return messages.SafeReply(user.Language(), entity.WorkflowSupply)
		},
	}
}

func fixed(state string) func(*entity.User) string {
	return func(*entity.User) string { return state }
}

// nextOnboardingState walks the required-profile chain and returns the first
// state whose field is still missing, or the posting home screen.
func (f *Flow) nextOnboardingState(user *entity.User) string {
	switch {
	case !user.InfoIsSet(entity.InfoName):
		return entity.SupplyForceName
	case !user.InfoIsSet(entity.InfoLocation):
		return entity.SupplyForceLocation
	case !user.InfoIsSet(entity.InfoAddress):
		return entity.SupplyForceAddress
	case !user.InfoIsSet(entity.InfoApprovedCoordinates):
		return entity.SupplyForceCoordinates
	case !user.InfoIsSet(entity.InfoPhone):
		return entity.SupplyInitialEditPhone
	}
	return entity.SupplyReadyToPost
}

func (f *Flow) slash(ctx context.Context, user *entity.User, name string) (entity.Reply, bool, error) {
	switch name {
	case "start":
		return entity.Transition(f.nextOnboardingState(user)), true, nil
	case "language":
		return messages.ChooseLanguage(user.Language(), entity.WorkflowSupply).
			WithNext(entity.SupplyNoState), true, nil
	}
	return entity.Reply{}, false, nil
}

func (f *Flow) stateless(ctx context.Context, user *entity.User, token string) (entity.Reply, bool, error) {
	if !command.IsSupplyToken(token) {
		return entity.Reply{}, false, nil
	}
	cmd, err := command.DecodeSupply(token)
	if err != nil {
		return entity.Reply{}, false, err
	}

	switch cmd.Name {
	case command.SupplyApproveBooking:
		return f.approveBooking(ctx, user, cmd.Arg(0))
	case command.SupplyCancelBooking:
		if err := f.store.SetEditingListing(ctx, user, cmd.Arg(0)); err != nil {
			return entity.Reply{}, true, err
		}
		return entity.Transition(entity.SupplyBookingCancelReason), true, nil
	case command.SupplyCompleteHandover:
		return f.completeHandover(ctx, user, cmd.Arg(0))
	case command.SupplyListListings:
		return f.listListings(ctx, user)
	case command.SupplyShowBooked:
		return f.showBooked(ctx, user, cmd.Arg(0))
	case command.SupplyShowOpen:
		return f.showOpen(ctx, user, cmd.Arg(0))
	case command.SupplyDeactivateListing:
		return f.deactivate(ctx, user, cmd.Arg(0))
	case command.SupplyApproveSupplier:
		return f.moderateSupplier(ctx, user, cmd.Arg(0), true)
	case command.SupplyDeclineSupplier:
		return f.moderateSupplier(ctx, user, cmd.Arg(0), false)
	case command.SupplySetLanguage:
		return f.setLanguage(ctx, user, cmd.Arg(0))
	case command.SupplySetState:
		if _, ok := stateNames[cmd.Arg(0)]; !ok {
			return entity.Reply{}, true, fmt.Errorf("set_state: unknown state %q", cmd.Arg(0))
		}
		return entity.Transition(cmd.Arg(0)), true, nil
	}
	// Unreachable: DecodeSupply rejects names outside the closed set.
	return entity.Reply{}, true, fmt.Errorf("unrouted supply command %q", cmd.Name)
}

// stateNames guards set_state arguments against arbitrary transitions.
var stateNames = map[string]struct{}{
	entity.SupplyDefault:             {},
	entity.SupplyForceName:           {},
	entity.SupplyForceLocation:       {},
	entity.SupplyForceAddress:        {},
	entity.SupplyForceCoordinates:    {},
	entity.SupplyInitialEditPhone:    {},
	entity.SupplyReadyToPost:         {},
	entity.SupplyPosting:             {},
	entity.SupplySetTime:             {},
	entity.SupplyViewInfo:            {},
	entity.SupplyEditName:            {},
	entity.SupplyEditLocation:        {},
	entity.SupplyEditAddress:         {},
	entity.SupplyEditCoordinates:     {},
	entity.SupplyEditPhone:           {},
	entity.SupplyBookingCancelReason: {},
	entity.SupplyNoState:             {},
}

func (f *Flow) setLanguage(ctx context.Context, user *entity.User, lang string) (entity.Reply, bool, error) {
	if !translation.IsSupported(lang) {
		return entity.Reply{}, true, fmt.Errorf("unsupported language %q", lang)
	}
	if err := f.store.SetInfo(ctx, user, entity.InfoLanguage, lang); err != nil {
		return entity.Reply{}, true, err
	}
	if err := f.store.SetInfo(ctx, user, entity.InfoApprovedLanguage, true); err != nil {
		return entity.Reply{}, true, err
	}
	return entity.Reply{
		Text: translation.T(lang, "The language is set."),
	}.WithNext(f.nextOnboardingState(user)), true, nil
}

// approvalState is the tri-state moderation verdict derived from the profile.
type approvalState int

const (
	approvalNotRequested approvalState = iota
	approvalPending
	approvalDeclined
	approvalGranted
)

func approval(user *entity.User) approvalState {
	if !user.ApprovedSupplyIsSet() {
		return approvalNotRequested
	}
	if b, ok := user.Info[entity.InfoApprovedSupply].(bool); ok {
		if b {
			return approvalGranted
		}
		return approvalDeclined
	}
	return approvalPending
}
