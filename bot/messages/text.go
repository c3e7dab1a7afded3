// Package messages builds the outgoing texts and keyboards for both
// workflows. Builders are pure: callers fetch records and pass them in.
package messages

import (
	"strings"

	"foodshare/entity"
	"foodshare/internal/geo"
	"foodshare/internal/translation"
)

// ListingText renders the item list plus the pickup window.
func ListingText(lang string, listing *entity.Listing) string {
	lines := make([]string, 0, len(listing.Items))
	for _, item := range listing.Items {
		if item != "" {
			lines = append(lines, item)
		}
	}
	text := strings.Join(lines, "\n")
	if listing.TakeTime != "" {
		text += translation.T(lang, "\nTime: %s", listing.TakeTime)
	}
	return text
}

// DraftText renders a draft as a bullet list while the owner keeps adding
// items.
func DraftText(lang string, listing *entity.Listing) string {
	lines := make([]string, 0, len(listing.Items))
	for _, item := range listing.Items {
		lines = append(lines, "* "+item)
	}
	return strings.Join(lines, "\n")
}

// SupplyDescription renders a supply user's public contact card.
func SupplyDescription(lang string, supply *entity.User) string {
	text := translation.T(lang, "Restaurant name: %s\nAddress: %s",
		supply.InfoString(entity.InfoName),
		supply.InfoString(entity.InfoAddress),
	)
	if phone := supply.InfoString(entity.InfoPhone); phone != "" {
		text += translation.T(lang, "\nPhone: %s", phone)
	}
	return text
}

// DemandFullText is the complete listing view shown to demand users.
func DemandFullText(lang string, supply *entity.User, listing *entity.Listing) string {
	return SupplyDescription(lang, supply) + "\n\n\n" + ListingText(lang, listing)
}

// DemandDescription renders the claimer's contact card for the owner.
func DemandDescription(lang string, demand *entity.User) string {
	var b strings.Builder
	b.WriteString(translation.T(lang, "%s will take the food.\n", demand.InfoString(entity.InfoName)))

	hasContact := false
	if phone := demand.InfoString(entity.InfoPhone); phone != "" {
		b.WriteString(translation.T(lang, "Phone: %s\n", phone))
		hasContact = true
	}
	if demand.InfoIsSet(entity.InfoUsername) && demand.InfoBool(entity.InfoDisplayUsername) {
		b.WriteString(translation.T(lang, "Telegram: @%s\n", demand.InfoString(entity.InfoUsername)))
		hasContact = true
	}
	if !hasContact {
		b.WriteString(translation.T(lang, "No contact info was provided.\n"))
	}
	if status := demand.SocialStatus(); status != "" {
		b.WriteString(translation.T(lang, "Social status: %s", SocialStatusLabel(lang, status)))
	}
	return b.String()
}

// BookedForOwnerText combines the claimer's card with the claimed listing.
func BookedForOwnerText(lang string, demand *entity.User, listing *entity.Listing) string {
	return translation.T(lang, "%s\n\nYour message was:\n\n%s",
		DemandDescription(lang, demand),
		ListingText(lang, listing),
	)
}

// SocialStatusLabel translates a social status for display.
func SocialStatusLabel(lang string, status entity.SocialStatus) string {
	labels := map[entity.SocialStatus]string{
		entity.SocialStatusBigFamily:  "Big family",
		entity.SocialStatusDisability: "Disability",
		entity.SocialStatusHomeless:   "Homeless",
		entity.SocialStatusHardTimes:  "Hard times",
		entity.SocialStatusEmigrant:   "Emigrant",
		entity.SocialStatusOther:      "Other",
	}
	label, ok := labels[status]
	if !ok {
		return string(status)
	}
	return translation.T(lang, label)
}

// LocationLabel renders a stored location value for keyboards.
func LocationLabel(location string) string {
	return geo.LocationName(location)
}

func introduceUser(lang string, user *entity.User) string {
	if username := user.InfoString(entity.InfoUsername); username != "" {
		return translation.T(lang, "User @%s", username)
	}
	return translation.T(lang, "New user")
}

// NewSupplierText is the moderation request sent to admins.
func NewSupplierText(lang string, supply *entity.User) string {
	return translation.T(lang,
		"%s wants to join as a supplier. Provided description is:\n\n%s",
		introduceUser(lang, supply),
		SupplyDescription(lang, supply),
	)
}

// SupplierApprovedText confirms moderation to the deciding admin.
func SupplierApprovedText(lang string, supply *entity.User) string {
	return translation.T(lang,
		"%s was APPROVED as a supplier. Provided description was:\n\n%s\n\nDB id: %s",
		introduceUser(lang, supply),
		SupplyDescription(lang, supply),
		supply.Key(),
	)
}

// SupplierDeclinedText confirms a decline to the deciding admin.
func SupplierDeclinedText(lang string, supply *entity.User) string {
	return translation.T(lang,
		"%s was DECLINED as a supplier. Provided description was:\n\n%s\n\nDB id: %s",
		introduceUser(lang, supply),
		SupplyDescription(lang, supply),
		supply.Key(),
	)
}
