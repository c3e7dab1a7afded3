package entity

import (
	"fmt"
)

// UserInfoField names a profile field. No field is structurally required;
// state-specific validation decides what must be filled.
type UserInfoField string

const (
	InfoUsername            UserInfoField = "username"
	InfoName                UserInfoField = "name"
	InfoAddress             UserInfoField = "address"
	InfoLocation            UserInfoField = "location"
	InfoCoordinates         UserInfoField = "coordinates"
	InfoPhone               UserInfoField = "phone"
	InfoDisplayUsername     UserInfoField = "display_username"
	InfoLanguage            UserInfoField = "language"
	InfoApprovedCoordinates UserInfoField = "is_approved_coordinates"
	InfoApprovedLanguage    UserInfoField = "is_approved_language"
	InfoSocialStatus        UserInfoField = "social_status"
	InfoApprovedSupply      UserInfoField = "is_approved_supply"
)

// Identity is the composite natural key of a user. The same person can exist
// under several providers, and separately per workflow.
type Identity struct {
	Provider Provider `json:"provider" bson:"provider"`
	Workflow Workflow `json:"workflow" bson:"workflow"`
	UserID   string   `json:"user_id" bson:"user_id"`
}

// Key builds the storage identifier for the identity.
func (i Identity) Key() string {
	return fmt.Sprintf("%s-%s-%s", i.Provider, i.Workflow, i.UserID)
}

// User is a chat-platform identity participating in one of the two workflows.
type User struct {
	Identity  `bson:",inline"`
	ChatID    int64                 `json:"chat_id" bson:"chat_id"`
	State     string                `json:"state" bson:"state"`
	Info      map[UserInfoField]any `json:"info" bson:"info"`
	Pending   *Command              `json:"pending" bson:"pending"`
	EditingID string                `json:"editing_listing_id" bson:"editing_listing_id"`
	Active    bool                  `json:"active" bson:"active"`
	Admin     bool                  `json:"is_admin" bson:"is_admin"`
}

// NewUser creates a user with defaulted profile fields.
func NewUser(id Identity, chatID int64, username string) *User {
	return &User{
		Identity: id,
		ChatID:   chatID,
		Active:   true,
		Info: map[UserInfoField]any{
			InfoUsername:        username,
			InfoDisplayUsername: username != "",
		},
	}
}

// InfoString returns a profile field as a string, empty when unset.
func (u *User) InfoString(field UserInfoField) string {
	if u.Info == nil {
		return ""
	}
	if s, ok := u.Info[field].(string); ok {
		return s
	}
	return ""
}

// InfoBool returns a boolean profile field; unset reads as false.
func (u *User) InfoBool(field UserInfoField) bool {
	if u.Info == nil {
		return false
	}
	if b, ok := u.Info[field].(bool); ok {
		return b
	}
	return false
}

// InfoIsSet reports whether the field carries any non-empty value.
func (u *User) InfoIsSet(field UserInfoField) bool {
	if u.Info == nil {
		return false
	}
	v, ok := u.Info[field]
	if !ok || v == nil {
		return false
	}
	if s, isStr := v.(string); isStr {
		return s != ""
	}
	return true
}

// Coordinates returns the stored [lat, lon] pair, nil when unset.
func (u *User) Coordinates() []string {
	if u.Info == nil {
		return nil
	}
	switch v := u.Info[InfoCoordinates].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, x := range v {
			s, ok := x.(string)
			if !ok {
				return nil
			}
			out = append(out, s)
		}
		return out
	}
	return nil
}

// ApprovedCoordinates returns coordinates only when the user confirmed them.
func (u *User) ApprovedCoordinates() []string {
	if !u.InfoBool(InfoApprovedCoordinates) {
		return nil
	}
	return u.Coordinates()
}

// Language returns the user's bot language, defaulting to English.
func (u *User) Language() string {
	if lang := u.InfoString(InfoLanguage); lang != "" {
		return lang
	}
	return "en"
}

// ApprovedSupplyIsSet reports whether the moderation field exists at all,
// including the nil "pending review" marker set when admins were notified.
func (u *User) ApprovedSupplyIsSet() bool {
	if u.Info == nil {
		return false
	}
	_, ok := u.Info[InfoApprovedSupply]
	return ok
}

// SocialStatus returns the selected status, empty when not chosen yet.
func (u *User) SocialStatus() SocialStatus {
	return SocialStatus(u.InfoString(InfoSocialStatus))
}
