package messages

import (
	"foodshare/bot/command"
	"foodshare/entity"
	"foodshare/internal/translation"
)

// DemandShortMessage is the broadcast teaser with take/info buttons.
func DemandShortMessage(lang string, supply *entity.User, listing *entity.Listing) entity.Reply {
	ref := []string{string(supply.Provider), supply.UserID, listing.ID}
	return entity.Reply{
		Text: translation.T(lang, "%s can share the following:\n%s",
			supply.InfoString(entity.InfoName),
			ListingText(lang, listing),
		),
		Buttons: [][]entity.Button{entity.Row(
			entity.Button{
				Text: translation.T(lang, "Take it"),
				Data: command.EncodeDemand(command.DemandTake, ref...),
			},
			entity.Button{
				Text: translation.T(lang, "Info"),
				Data: command.EncodeDemand(command.DemandInfo, ref...),
			},
		)},
	}
}

// DemandBookedMessage is the full view of a listing the viewer holds.
// An empty intro is derived from the listing's lifecycle.
func DemandBookedMessage(lang string, supply *entity.User, listing *entity.Listing, intro string) entity.Reply {
	if intro == "" {
		switch listing.Lifecycle {
		case entity.LifecycleTaken, entity.LifecycleDeactivated:
			intro = translation.T(lang, "The message is no longer relevant")
		case entity.LifecycleApproved:
			intro = translation.T(lang, "%s is waiting for you", supply.InfoString(entity.InfoName))
		default:
			intro = translation.T(lang, "You've booked this")
		}
	}

	text := intro + "\n------\n" + DemandFullText(lang, supply, listing)

	var buttons [][]entity.Button
	if supply.ApprovedCoordinates() != nil {
		buttons = append(buttons, entity.Row(entity.Button{
			Text: translation.T(lang, "🌍 Map"),
			Data: command.EncodeDemand(command.DemandMapBooked,
				string(supply.Provider), supply.UserID, listing.ID),
		}))
	}
	return entity.Reply{Text: text, Buttons: buttons}
}

// FoodTakenMessage tells a viewer the listing is out of reach, or reminds
// them they hold it themselves.
func FoodTakenMessage(lang string, viewer *entity.User, listing *entity.Listing, info string) entity.Reply {
	if listing.Lifecycle == entity.LifecycleDeactivated {
		return entity.Reply{
			Text: translation.T(lang, "The message is no longer relevant") + "\n\n" + info,
		}
	}
	if listing.ClaimedBy == viewer.Key() {
		return entity.Reply{
			Text: translation.T(lang, "You've already taken it.\n\n%s", info),
		}
	}
	return entity.Reply{
		Text: translation.T(lang, "SOMEONE HAS ALREADY TAKEN IT!\n\n%s", info),
	}
}

// SupplyBookedMessage notifies the owner of a fresh claim with the
// approve/reject choice.
func SupplyBookedMessage(lang string, demand *entity.User, listing *entity.Listing) entity.Reply {
	return entity.Reply{
		Text: BookedForOwnerText(lang, demand, listing),
		Buttons: [][]entity.Button{
			entity.Row(
				entity.Button{
					Text: translation.T(lang, "Reject"),
					Data: command.EncodeSupply(command.SupplyCancelBooking, listing.ID),
				},
				entity.Button{
					Text: translation.T(lang, "Approve"),
					Data: command.EncodeSupply(command.SupplyApproveBooking, listing.ID),
				},
			),
			entity.Row(entity.Button{
				Text: translation.T(lang, "View all messages"),
				Data: command.EncodeSupply(command.SupplyListListings),
			}),
		},
	}
}

// NewSupplierNotification is the admin moderation request.
func NewSupplierNotification(lang string, supply *entity.User) entity.Reply {
	return entity.Reply{
		Text: NewSupplierText(lang, supply),
		Buttons: [][]entity.Button{entity.Row(
			entity.Button{
				Text: translation.T(lang, "Approve"),
				Data: command.EncodeSupply(command.SupplyApproveSupplier, supply.Key()),
			},
			entity.Button{
				Text: translation.T(lang, "Decline"),
				Data: command.EncodeSupply(command.SupplyDeclineSupplier, supply.Key()),
			},
		)},
	}
}

// MapReply carries a coordinates payload with contextual action buttons.
func MapReply(coordinates []string, buttons ...entity.Button) entity.Reply {
	reply := entity.Reply{
		Coordinates: &entity.Coordinates{
			Latitude:  coordinates[0],
			Longitude: coordinates[1],
		},
	}
	if len(buttons) > 0 {
		reply.Buttons = [][]entity.Button{buttons}
	}
	return reply
}

// ChooseLanguage is the shared language menu; the back button returns to
// the workflow's home flow.
func ChooseLanguage(lang string, workflow entity.Workflow) entity.Reply {
	var rows [][]entity.Button
	for _, code := range translation.Supported {
		var data string
		if workflow == entity.WorkflowSupply {
			data = command.EncodeSupply(command.SupplySetLanguage, code)
		} else {
			data = command.EncodeDemand(command.DemandSetLanguage, code)
		}
		rows = append(rows, entity.Row(entity.Button{Text: translation.LangName[code], Data: data}))
	}

	var back string
	if workflow == entity.WorkflowSupply {
		back = command.EncodeSupply(command.SupplySetState, entity.SupplyReadyToPost)
	} else {
		back = command.EncodeDemand(command.DemandDefault)
	}
	rows = append(rows, entity.Row(entity.Button{
		Text: translation.T(lang, "Back"),
		Data: back,
	}))

	return entity.Reply{
		Text:    translation.T(lang, "Choose the bot language:"),
		Buttons: rows,
	}
}

// SafeReply is the generic recovery message with a button back home.
func SafeReply(lang string, workflow entity.Workflow) entity.Reply {
	var home string
	if workflow == entity.WorkflowSupply {
		home = command.EncodeSupply(command.SupplySetState, entity.SupplyReadyToPost)
	} else {
		home = command.EncodeDemand(command.DemandDefault)
	}
	return entity.Reply{
		Text: translation.T(lang, "Sorry, something went wrong."),
		Buttons: [][]entity.Button{entity.Row(entity.Button{
			Text: translation.T(lang, "Back"),
			Data: home,
		})},
	}
}
