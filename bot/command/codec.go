// Package command encodes bot actions into opaque callback tokens and back.
//
// Wire format: name|arg0|arg1|... for demand commands and c|name|arg0|...
// for the stateless supply command set. The prefix disambiguates supply
// commands from free text, because supply dialogs accept arbitrary text as
// data in the same turn a button might be pressed.
package command

import (
	"fmt"
	"strings"

	"foodshare/entity"
)

// Delim joins the command name and its arguments. Arguments are identifiers
// only and must never contain the delimiter; buttons round-trip tokens
// verbatim through the chat platform.
const Delim = "|"

// SupplyPrefix marks a token as belonging to the stateless supply namespace.
const SupplyPrefix = "c"

// Demand command names. The set is closed; decode rejects anything else.
const (
	DemandTake             = "take"
	DemandInfo             = "info"
	DemandShortInfo        = "sinf"
	DemandMapInfo          = "mapi"
	DemandMapTake          = "mapt"
	DemandMapBooked        = "mapb"
	DemandBooked           = "bkd"
	DemandFinishTake       = "f_take"
	DemandEditName         = "edit_name"
	DemandEditPhone        = "edit_phone"
	DemandEditSocialStatus = "edit_ss"
	DemandSetSocialStatus  = "set_ss"
	DemandEnableUsername   = "enable-username"
	DemandDisableUsername  = "disable-username"
	DemandSetLanguage      = "set_lang"
	DemandDefault          = "default"
)

// Stateless supply command names.
const (
	SupplyApproveBooking    = "approve_booking"
	SupplyCancelBooking     = "cancel_booking"
	SupplyCompleteHandover  = "complete_handover"
	SupplyListListings      = "list_messages"
	SupplyShowBooked        = "sdm"
	SupplyShowOpen          = "show_ndm"
	SupplyDeactivateListing = "deactivate"
	SupplyApproveSupplier   = "approve_supplier"
	SupplyDeclineSupplier   = "decline_supplier"
	SupplySetLanguage       = "set_lang"
	SupplySetState          = "set_state"
)

var demandNames = map[string]struct{}{
	DemandTake:             {},
	DemandInfo:             {},
	DemandShortInfo:        {},
	DemandMapInfo:          {},
	DemandMapTake:          {},
	DemandMapBooked:        {},
	DemandBooked:           {},
	DemandFinishTake:       {},
	DemandEditName:         {},
	DemandEditPhone:        {},
	DemandEditSocialStatus: {},
	DemandSetSocialStatus:  {},
	DemandEnableUsername:   {},
	DemandDisableUsername:  {},
	DemandSetLanguage:      {},
	DemandDefault:          {},
}

var supplyNames = map[string]struct{}{
	SupplyApproveBooking:    {},
	SupplyCancelBooking:     {},
	SupplyCompleteHandover:  {},
	SupplyListListings:      {},
	SupplyShowBooked:        {},
	SupplyShowOpen:          {},
	SupplyDeactivateListing: {},
	SupplyApproveSupplier:   {},
	SupplyDeclineSupplier:   {},
	SupplySetLanguage:       {},
	SupplySetState:          {},
}

// EncodeDemand builds a demand-namespace token.
func EncodeDemand(name string, args ...string) string {
	return strings.Join(append([]string{name}, args...), Delim)
}

// EncodeSupply builds a supply-namespace token with the leading marker.
func EncodeSupply(name string, args ...string) string {
	return strings.Join(append([]string{SupplyPrefix, name}, args...), Delim)
}

// Encode serializes an already-built command for its workflow.
func Encode(workflow entity.Workflow, cmd entity.Command) string {
	if workflow == entity.WorkflowSupply {
		return EncodeSupply(cmd.Name, cmd.Args...)
	}
	return EncodeDemand(cmd.Name, cmd.Args...)
}

// DecodeDemand parses a demand token. It fails loudly on unknown names
// rather than coercing: a bad token is a defect, not user input.
func DecodeDemand(token string) (entity.Command, error) {
	parts := strings.Split(token, Delim)
	if _, ok := demandNames[parts[0]]; !ok {
		return entity.Command{}, fmt.Errorf("unknown demand command %q", parts[0])
	}
	return entity.Command{Name: parts[0], Args: parts[1:]}, nil
}

// DecodeSupply parses a supply-namespace token. The token must carry the
// namespace prefix; anything else is reported as not a supply command.
func DecodeSupply(token string) (entity.Command, error) {
	parts := strings.Split(token, Delim)
	if len(parts) < 2 || parts[0] != SupplyPrefix {
		return entity.Command{}, fmt.Errorf("not a supply command token: %q", token)
	}
	if _, ok := supplyNames[parts[1]]; !ok {
		return entity.Command{}, fmt.Errorf("unknown supply command %q", parts[1])
	}
	return entity.Command{Name: parts[1], Args: parts[2:]}, nil
}

// IsSupplyToken reports whether the payload carries the supply marker.
// It does not validate the command name.
func IsSupplyToken(token string) bool {
	return token == SupplyPrefix || strings.HasPrefix(token, SupplyPrefix+Delim)
}
