package demand

import (
	"context"

	"foodshare/bot/command"
	"foodshare/bot/engine"
	"foodshare/bot/messages"
	"foodshare/bot/validate"
	"foodshare/entity"
	"foodshare/internal/translation"
)

// defaultState is the receiver's resting position; the bot talks first.
type defaultState struct{ *Flow }

func (s *defaultState) Intro(ctx context.Context, user *entity.User) entity.Reply {
	return entity.Reply{}
}

func (s *defaultState) Handle(ctx context.Context, user *entity.User, ev engine.Event) (entity.Reply, error) {
	if ev.Text == "" {
		return entity.Reply{}, nil
	}
	return entity.Reply{Text: translation.T(user.Language(),
		"When someone shares food, I will send it to you here. You don't need to do anything.")}, nil
}

// editNameState is a sub-dialog of the claim review.
type editNameState struct{ *Flow }

func (s *editNameState) Intro(ctx context.Context, user *entity.User) entity.Reply {
	return entity.Reply{Text: translation.T(user.Language(), "What is your name?")}
}

func (s *editNameState) Handle(ctx context.Context, user *entity.User, ev engine.Event) (entity.Reply, error) {
	if ev.Text == "" {
		return s.Intro(ctx, user), nil
	}
	if err := s.store.SetInfo(ctx, user, entity.InfoName, ev.Text); err != nil {
		return entity.Reply{}, err
	}
	return s.resumeReview(ctx, user)
}

type editPhoneState struct{ *Flow }

func (s *editPhoneState) Intro(ctx context.Context, user *entity.User) entity.Reply {
	lang := user.Language()
	return entity.Reply{
		Text: translation.T(lang, "Enter or send the phone number the supplier can reach you at:"),
		Buttons: [][]entity.Button{
			entity.Row(entity.Button{Text: translation.T(lang, "📞 Send phone"), RequestContact: true}),
			entity.Row(entity.Button{Text: translation.T(lang, "❌ Delete phone")}),
		},
		IsTextButtons: true,
	}
}

func (s *editPhoneState) Handle(ctx context.Context, user *entity.User, ev engine.Event) (entity.Reply, error) {
	lang := user.Language()
	switch ev.Text {
	case "":
		return s.Intro(ctx, user), nil
	case translation.T(lang, "❌ Delete phone"):
		if err := s.store.UnsetInfo(ctx, user, entity.InfoPhone); err != nil {
			return entity.Reply{}, err
		}
		return s.resumeReview(ctx, user)
	}
	if err := validate.Phone(ev.Text); err != nil {
		return entity.Reply{Text: translation.T(lang,
			"The phone number doesn't look right. Try again, please:")}, nil
	}
	if err := s.store.SetInfo(ctx, user, entity.InfoPhone, ev.Text); err != nil {
		return entity.Reply{}, err
	}
	return s.resumeReview(ctx, user)
}

// editSocialStatusState offers the closed status list; the chosen value
// arrives back as a set_ss token.
type editSocialStatusState struct{ *Flow }

func (s *editSocialStatusState) Intro(ctx context.Context, user *entity.User) entity.Reply {
	lang := user.Language()
	rows := make([][]entity.Button, 0, len(entity.SocialStatuses))
	for _, status := range entity.SocialStatuses {
		rows = append(rows, entity.Row(entity.Button{
			Text: messages.SocialStatusLabel(lang, status),
			Data: command.EncodeDemand(command.DemandSetSocialStatus, string(status)),
		}))
	}
	return entity.Reply{
		Text:    translation.T(lang, "Which of these describes you best?"),
		Buttons: rows,
	}
}

func (s *editSocialStatusState) Handle(ctx context.Context, user *entity.User, ev engine.Event) (entity.Reply, error) {
	return s.Intro(ctx, user), nil
}
