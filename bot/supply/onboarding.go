package supply

import (
	"context"

	"foodshare/bot/engine"
	"foodshare/bot/messages"
	"foodshare/bot/validate"
	"foodshare/entity"
	"foodshare/internal/geo"
	"foodshare/internal/translation"
)

// defaultState is where brand-new suppliers land. It immediately forwards
// to the first missing profile step.
type defaultState struct{ *Flow }

func (s *defaultState) Intro(ctx context.Context, user *entity.User) entity.Reply {
	return entity.Reply{}
}

func (s *defaultState) Handle(ctx context.Context, user *entity.User, ev engine.Event) (entity.Reply, error) {
	return entity.Transition(s.nextOnboardingState(user)), nil
}

type forceNameState struct{ *Flow }

func (s *forceNameState) Intro(ctx context.Context, user *entity.User) entity.Reply {
	return entity.Reply{Text: translation.T(user.Language(),
		"Hello! I will post the food you share. To start, enter the name of your place:")}
}

func (s *forceNameState) Handle(ctx context.Context, user *entity.User, ev engine.Event) (entity.Reply, error) {
	if ev.Text == "" {
		return s.Intro(ctx, user), nil
	}
	if err := s.store.SetInfo(ctx, user, entity.InfoName, ev.Text); err != nil {
		return entity.Reply{}, err
	}
	return entity.Transition(s.nextOnboardingState(user)), nil
}

func locationKeyboard(lang string) [][]entity.Button {
	rows := make([][]entity.Button, 0, len(geo.Cities)+1)
	for _, city := range geo.Cities {
		rows = append(rows, entity.Row(entity.Button{
			Text: city.Name,
			Data: city.CountryCode + ":" + city.Code,
		}))
	}
	rows = append(rows, entity.Row(entity.Button{
		Text: translation.T(lang, "Other"),
		Data: "other",
	}))
	return rows
}

func validLocation(token string) bool {
	for _, city := range geo.Cities {
		if token == city.CountryCode+":"+city.Code {
			return true
		}
	}
	for _, country := range geo.Countries {
		if token == country.Code {
			return true
		}
	}
	return false
}

type forceLocationState struct{ *Flow }

func (s *forceLocationState) Intro(ctx context.Context, user *entity.User) entity.Reply {
	lang := user.Language()
	return entity.Reply{
		Text:    translation.T(lang, "Where are you located?"),
		Buttons: locationKeyboard(lang),
	}
}

func (s *forceLocationState) Handle(ctx context.Context, user *entity.User, ev engine.Event) (entity.Reply, error) {
	if ev.Token == "" || !validLocation(ev.Token) {
		return s.Intro(ctx, user), nil
	}
	if err := s.store.SetInfo(ctx, user, entity.InfoLocation, ev.Token); err != nil {
		return entity.Reply{}, err
	}
	return entity.Transition(s.nextOnboardingState(user)), nil
}

type forceAddressState struct{ *Flow }

func (s *forceAddressState) Intro(ctx context.Context, user *entity.User) entity.Reply {
	return entity.Reply{Text: translation.T(user.Language(),
		"Please, enter the address of the place:")}
}

func (s *forceAddressState) Handle(ctx context.Context, user *entity.User, ev engine.Event) (entity.Reply, error) {
	if ev.Text == "" {
		return s.Intro(ctx, user), nil
	}
	if err := s.storeAddress(ctx, user, ev.Text); err != nil {
		return entity.Reply{}, err
	}
	return entity.Transition(entity.SupplyForceCoordinates), nil
}

// storeAddress saves the address and tries to geocode it. A geocoding miss
// is not an error: the coordinates step falls back to a manual location
// share.
func (f *Flow) storeAddress(ctx context.Context, user *entity.User, address string) error {
	if err := f.store.SetInfo(ctx, user, entity.InfoAddress, address); err != nil {
		return err
	}
	if err := f.store.SetInfo(ctx, user, entity.InfoApprovedCoordinates, false); err != nil {
		return err
	}

	result, err := f.geo.Resolve(ctx, address, user.InfoString(entity.InfoLocation))
	if err != nil || result == nil {
		return f.store.UnsetInfo(ctx, user, entity.InfoCoordinates)
	}
	return f.store.SetInfo(ctx, user, entity.InfoCoordinates,
		[]string{result.Latitude, result.Longitude})
}

// coordinatesState confirms geocoded coordinates or accepts a manually
// shared location. next selects where to continue; nil means the onboarding
// chain.
type coordinatesState struct {
	*Flow
	next func(*entity.User) string
}

func (s *coordinatesState) continueTo(user *entity.User) string {
	if s.next != nil {
		return s.next(user)
	}
	return s.nextOnboardingState(user)
}

func (s *coordinatesState) Intro(ctx context.Context, user *entity.User) entity.Reply {
	lang := user.Language()
	skip := entity.Button{Text: translation.T(lang, "Later ⏰"), Data: "skip-coordinates"}

	coords := user.Coordinates()
	if coords == nil {
		return entity.Reply{
			Text: translation.T(lang,
				"I could not find the address on the map. Send your location, please."),
			Buttons: [][]entity.Button{entity.Row(skip)},
		}
	}
	reply := messages.MapReply(coords,
		entity.Button{Text: translation.T(lang, "Yes ✅"), Data: "approve-coordinates"},
		entity.Button{Text: translation.T(lang, "Change 📍"), Data: "change-coordinates"},
		skip,
	)
	reply.Text = translation.T(lang, "Is this where people should come for the food?")
	return reply
}

func (s *coordinatesState) Handle(ctx context.Context, user *entity.User, ev engine.Event) (entity.Reply, error) {
	lang := user.Language()

	switch {
	case ev.Coordinates != nil:
		pair := []string{ev.Coordinates.Latitude, ev.Coordinates.Longitude}
		if err := s.store.SetInfo(ctx, user, entity.InfoCoordinates, pair); err != nil {
			return entity.Reply{}, err
		}
		if err := s.store.SetInfo(ctx, user, entity.InfoApprovedCoordinates, true); err != nil {
			return entity.Reply{}, err
		}
		return entity.Reply{
			Text: translation.T(lang, "The location is saved."),
		}.WithNext(s.continueTo(user)), nil

	case ev.Token == "approve-coordinates":
		if user.Coordinates() == nil {
			return s.Intro(ctx, user), nil
		}
		if err := s.store.SetInfo(ctx, user, entity.InfoApprovedCoordinates, true); err != nil {
			return entity.Reply{}, err
		}
		return entity.Transition(s.continueTo(user)), nil

	case ev.Token == "change-coordinates":
		return entity.Reply{Text: translation.T(lang, "Send your location, please.")}, nil

	case ev.Token == "skip-coordinates":
		if err := s.store.SetInfo(ctx, user, entity.InfoApprovedCoordinates, false); err != nil {
			return entity.Reply{}, err
		}
		return entity.Transition(s.continueTo(user)), nil
	}

	return s.Intro(ctx, user), nil
}

// initialPhoneState collects the contact phone once, at the end of
// onboarding. Completing it triggers the moderation request to admins.
type initialPhoneState struct{ *Flow }

func (s *initialPhoneState) Intro(ctx context.Context, user *entity.User) entity.Reply {
	lang := user.Language()
	return entity.Reply{
		Text: translation.T(lang, "Enter or send your contact phone number, please:"),
		Buttons: [][]entity.Button{entity.Row(entity.Button{
			Text:           translation.T(lang, "📞 Send phone"),
			RequestContact: true,
		})},
		IsTextButtons: true,
	}
}

func (s *initialPhoneState) Handle(ctx context.Context, user *entity.User, ev engine.Event) (entity.Reply, error) {
	lang := user.Language()
	if ev.Text == "" {
		return s.Intro(ctx, user), nil
	}
	if err := validate.Phone(ev.Text); err != nil {
		return entity.Reply{Text: translation.T(lang,
			"The phone number doesn't look right. Try again, please:")}, nil
	}
	if err := s.store.SetInfo(ctx, user, entity.InfoPhone, ev.Text); err != nil {
		return entity.Reply{}, err
	}

	if err := s.notify.AdminsNewSupplier(ctx, user); err != nil {
		return entity.Reply{}, err
	}
	return entity.Reply{
		Text: translation.T(lang,
			"Thank you! We will check your information and let you know when you can start posting."),
	}.WithNext(entity.SupplyReadyToPost), nil
}
