// Package demand implements the receiver-side conversation: reacting to
// broadcast listings, the claim review with its profile sub-dialogs, and
// the race-safe claim itself.
package demand

import (
	"context"
	"fmt"
	"log/slog"

	"foodshare/bot/command"
	"foodshare/bot/engine"
	"foodshare/bot/messages"
	"foodshare/bot/notify"
	"foodshare/entity"
	"foodshare/internal/lib/sl"
	"foodshare/internal/translation"
)

// Flow wires the demand state table to its collaborators.
type Flow struct {
	store  engine.Store
	notify *notify.Service
	log    *slog.Logger
}

func New(store engine.Store, n *notify.Service, log *slog.Logger) *Flow {
	return &Flow{
		store:  store,
		notify: n,
		log:    log.With(sl.Module("demand")),
	}
}

// Workflow builds the immutable demand state table.
func (f *Flow) Workflow() *engine.Workflow {
	return &engine.Workflow{
		Name: entity.WorkflowDemand,
		States: map[string]engine.State{
			entity.DemandDefault:          &defaultState{f},
			entity.DemandEditName:         &editNameState{f},
			entity.DemandEditPhone:        &editPhoneState{f},
			entity.DemandEditSocialStatus: &editSocialStatusState{f},
		},
		Stateless: f.stateless,
		Slash:     f.slash,
		Recover: func(user *entity.User) entity.Reply {
			return messages.SafeReply(user.Language(), entity.WorkflowDemand)
		},
	}
}

func (f *Flow) slash(ctx context.Context, user *entity.User, name string) (entity.Reply, bool, error) {
	lang := user.Language()
	switch name {
	case "start":
		return entity.Reply{
			Text: translation.T(lang,
				"Hello! When someone shares food nearby, I will send it to you here."),
		}.WithNext(entity.DemandDefault), true, nil
	case "language":
		return messages.ChooseLanguage(lang, entity.WorkflowDemand), true, nil
	}
	return entity.Reply{}, false, nil
}

// stateless routes every callback token: on the demand side the whole
// command namespace is reachable regardless of state.
func (f *Flow) stateless(ctx context.Context, user *entity.User, token string) (entity.Reply, bool, error) {
	cmd, err := command.DecodeDemand(token)
	if err != nil {
		return entity.Reply{}, false, err
	}

	switch cmd.Name {
	case command.DemandTake:
		return f.startTake(ctx, user, cmd)
	case command.DemandFinishTake:
		return f.finishTake(ctx, user, cmd)
	case command.DemandInfo:
		return f.fullInfo(ctx, user, cmd)
	case command.DemandShortInfo:
		return f.shortInfo(ctx, user, cmd)
	case command.DemandMapInfo:
		return f.mapView(ctx, user, cmd, command.DemandInfo)
	case command.DemandMapTake:
		return f.mapView(ctx, user, cmd, command.DemandTake)
	case command.DemandMapBooked:
		return f.mapView(ctx, user, cmd, command.DemandBooked)
	case command.DemandBooked:
		return f.bookedView(ctx, user, cmd)
	case command.DemandEditName:
		return entity.Transition(entity.DemandEditName), true, nil
	case command.DemandEditPhone:
		return entity.Transition(entity.DemandEditPhone), true, nil
	case command.DemandEditSocialStatus:
		return entity.Transition(entity.DemandEditSocialStatus), true, nil
	case command.DemandSetSocialStatus:
		return f.setSocialStatus(ctx, user, cmd.Arg(0))
	case command.DemandEnableUsername:
		return f.toggleUsername(ctx, user, true)
	case command.DemandDisableUsername:
		return f.toggleUsername(ctx, user, false)
	case command.DemandSetLanguage:
		return f.setLanguage(ctx, user, cmd.Arg(0))
	case command.DemandDefault:
		return entity.Reply{
			Text: translation.T(user.Language(),
				"OK! When someone shares food, I will send it to you here."),
		}.WithNext(entity.DemandDefault), true, nil
	}
	// Unreachable: DecodeDemand rejects names outside the closed set.
	return entity.Reply{}, true, fmt.Errorf("unrouted demand command %q", cmd.Name)
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
	return entity.Reply{Text: translation.T(lang, "The language is set.")}, true, nil
}

// listingRef resolves the [provider, supply user, listing] triple every
// listing-scoped command carries.
func (f *Flow) listingRef(ctx context.Context, cmd entity.Command) (*entity.User, *entity.Listing, error) {
	id := entity.Identity{
		Provider: entity.Provider(cmd.Arg(0)),
		Workflow: entity.WorkflowSupply,
		UserID:   cmd.Arg(1),
	}
	supply, err := f.store.GetUser(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("resolving supplier %s: %w", id.Key(), err)
	}
	listing, err := f.store.GetListing(ctx, cmd.Arg(2))
	if err != nil {
		return nil, nil, fmt.Errorf("resolving listing %s: %w", cmd.Arg(2), err)
	}
	return supply, listing, nil
}
