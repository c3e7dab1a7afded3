package entity

// Provider identifies the chat platform a user talks through.
type Provider string

const (
	ProviderTelegram Provider = "telegram"
	ProviderViber    Provider = "viber"
)

// Workflow selects which state table applies to a user.
type Workflow string

const (
	WorkflowSupply Workflow = "supply"
	WorkflowDemand Workflow = "demand"
)

// Supply-side state names. The empty string is the distinguished initial state.
const (
	SupplyDefault             = ""
	SupplyReadyToPost         = "ready_to_post"
	SupplyPosting             = "posting"
	SupplySetTime             = "set_time"
	SupplyViewInfo            = "view_info"
	SupplyEditName            = "edit_name"
	SupplyEditLocation        = "edit_location"
	SupplyEditAddress         = "edit_address"
	SupplyEditCoordinates     = "edit_coordinates"
	SupplyEditPhone           = "edit_phone"
	SupplyForceName           = "force_name"
	SupplyForceLocation       = "force_location"
	SupplyForceAddress        = "force_address"
	SupplyForceCoordinates    = "force_coordinates"
	SupplyInitialEditPhone    = "initial_edit_phone"
	SupplyBookingCancelReason = "booking_cancel_reason"
	SupplyNoState             = "no_state"
)

// Demand-side state names.
const (
	DemandDefault          = ""
	DemandEditName         = "edit_name"
	DemandEditPhone        = "edit_phone"
	DemandEditSocialStatus = "edit_social_status"
)

// SocialStatus is the demand-side self-declared status.
type SocialStatus string

const (
	SocialStatusBigFamily  SocialStatus = "big_family"
	SocialStatusDisability SocialStatus = "disability"
	SocialStatusHomeless   SocialStatus = "homeless"
	SocialStatusHardTimes  SocialStatus = "hard_times"
	SocialStatusEmigrant   SocialStatus = "emigrant"
	SocialStatusOther      SocialStatus = "other"
)

// SocialStatuses lists all selectable statuses in display order.
var SocialStatuses = []SocialStatus{
	SocialStatusBigFamily,
	SocialStatusDisability,
	SocialStatusHomeless,
	SocialStatusHardTimes,
	SocialStatusEmigrant,
	SocialStatusOther,
}
