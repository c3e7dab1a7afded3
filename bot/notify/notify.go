// Package notify turns state-change events into queued deliveries: direct
// replies, one-to-one notifications and the published-listing broadcast.
package notify

import (
	"context"
	"log/slog"
	"math/rand"

	"foodshare/bot/command"
	"foodshare/bot/engine"
	"foodshare/bot/messages"
	"foodshare/entity"
	"foodshare/internal/lib/sl"
	"foodshare/internal/queue"
	"foodshare/internal/translation"
)

// Service composes the store and the fan-out queue. It implements
// engine.Outbox for the engine's own replies.
type Service struct {
	store engine.Store
	queue queue.Queue
	log   *slog.Logger
}

func New(store engine.Store, q queue.Queue, log *slog.Logger) *Service {
	return &Service{
		store: store,
		queue: q,
		log:   log.With(sl.Module("notify")),
	}
}

// QueueReplies enqueues a dispatch result. The first textual reply replaces
// the triggering message when the platform allows it; the rest are fresh
// sends.
func (s *Service) QueueReplies(ctx context.Context, workflow entity.Workflow, chatID int64, origin *engine.MessageRef, replies ...entity.Reply) {
	envs := make([]queue.Envelope, 0, len(replies))
	editID := int64(0)
	if origin != nil && origin.HasText {
		editID = origin.MessageID
	}
	for _, reply := range replies {
		if reply.IsZero() {
			continue
		}
		env := queue.Envelope{ChatID: chatID, Workflow: workflow, Reply: reply}
		if editID != 0 && !reply.IsTextButtons {
			if reply.Coordinates != nil {
				// A location cannot edit a text message; remove the original
				// instead so its keyboard does not linger.
				env.DeleteMessageID = editID
				editID = 0
			} else if reply.Text != "" {
				env.EditMessageID = editID
				editID = 0
			}
		}
		envs = append(envs, env)
	}
	if len(envs) > 0 {
		s.queue.Put(ctx, envs...)
	}
}

// QueueTo enqueues point-to-point replies without an originating message.
func (s *Service) QueueTo(ctx context.Context, workflow entity.Workflow, chatID int64, replies ...entity.Reply) {
	s.QueueReplies(ctx, workflow, chatID, nil, replies...)
}

// PublishListing broadcasts a freshly published listing to every active
// demand user. Recipients are shuffled so popular listings do not
// systematically favor the same people.
func (s *Service) PublishListing(ctx context.Context, supply *entity.User, listing *entity.Listing) error {
	users, err := s.store.ListActiveUsers(ctx, entity.WorkflowDemand)
	if err != nil {
		return err
	}
	rand.Shuffle(len(users), func(i, j int) {
		users[i], users[j] = users[j], users[i]
	})

	envs := make([]queue.Envelope, 0, len(users))
	for _, u := range users {
		envs = append(envs, queue.Envelope{
			ChatID:   u.ChatID,
			Workflow: entity.WorkflowDemand,
			Reply:    messages.DemandShortMessage(u.Language(), supply, listing),
		})
	}
	s.queue.PutBroadcast(ctx, envs)
	s.log.Info("listing broadcast staged",
		slog.String("listing", listing.ID),
		slog.Int("recipients", len(envs)),
	)
	return nil
}

// SupplyBooked tells the owner their listing was claimed, with the
// approve/reject choice attached.
func (s *Service) SupplyBooked(ctx context.Context, supply, demand *entity.User, listing *entity.Listing) {
	reply := messages.SupplyBookedMessage(supply.Language(), demand, listing)
	s.QueueTo(ctx, entity.WorkflowSupply, supply.ChatID, reply)
}

// DemandApproved tells the claimer the owner confirmed.
func (s *Service) DemandApproved(ctx context.Context, supply *entity.User, listing *entity.Listing) error {
	demand, err := s.store.GetUserByKey(ctx, listing.ClaimedBy)
	if err != nil {
		return err
	}
	lang := demand.Language()
	reply := messages.DemandBookedMessage(lang, supply, listing,
		translation.T(lang, "Your request was approved"))
	s.QueueTo(ctx, entity.WorkflowDemand, demand.ChatID, reply)
	return nil
}

// DemandRejected tells the claimer the owner declined, quoting the reason.
func (s *Service) DemandRejected(ctx context.Context, supply *entity.User, listing *entity.Listing, reason string) error {
	demand, err := s.store.GetUserByKey(ctx, listing.ClaimedBy)
	if err != nil {
		return err
	}
	lang := demand.Language()
	text := translation.T(lang,
		"Your request was rejected with the following words:\n%s\n\nRequest was:\n%s",
		reason,
		messages.DemandFullText(lang, supply, listing),
	)
	s.QueueTo(ctx, entity.WorkflowDemand, demand.ChatID, entity.Reply{Text: text})
	return nil
}

// DemandTaken tells the claimer the handover is recorded.
func (s *Service) DemandTaken(ctx context.Context, supply *entity.User, listing *entity.Listing) error {
	demand, err := s.store.GetUserByKey(ctx, listing.ClaimedBy)
	if err != nil {
		return err
	}
	lang := demand.Language()
	s.QueueTo(ctx, entity.WorkflowDemand, demand.ChatID, entity.Reply{
		Text: translation.T(lang, "%s marked the food as handed over. Enjoy!",
			supply.InfoString(entity.InfoName)),
	})
	return nil
}

// AdminsNewSupplier asks admins to moderate a new supplier, once: the
// pending-review marker is written so repeated intros stay quiet.
func (s *Service) AdminsNewSupplier(ctx context.Context, supply *entity.User) error {
	if supply.ApprovedSupplyIsSet() {
		s.log.Debug("admins already notified", slog.String("user", supply.Key()))
		return nil
	}

	admins, err := s.store.ListAdminUsers(ctx)
	if err != nil {
		return err
	}
	if len(admins) == 0 {
		s.log.Error("no admin users in db")
		return nil
	}

	for _, admin := range admins {
		if admin.Workflow != entity.WorkflowSupply {
			s.log.Warn("admin is not a supplier, skipping",
				slog.String("admin", admin.Key()),
			)
			continue
		}
		s.QueueTo(ctx, entity.WorkflowSupply, admin.ChatID,
			messages.NewSupplierNotification(admin.Language(), supply))
	}

	return s.store.SetInfo(ctx, supply, entity.InfoApprovedSupply, nil)
}

// SupplierApproved congratulates a moderated supplier.
func (s *Service) SupplierApproved(ctx context.Context, supply *entity.User) {
	lang := supply.Language()
	s.QueueTo(ctx, entity.WorkflowSupply, supply.ChatID, entity.Reply{
		Text: translation.T(lang, "Your account is approved!"),
		Buttons: [][]entity.Button{entity.Row(entity.Button{
			Text: translation.T(lang, "OK ✅"),
			Data: command.EncodeSupply(command.SupplySetState, entity.SupplyReadyToPost),
		})},
	})
}

// SupplierDeclined points a declined supplier at the feedback channel.
func (s *Service) SupplierDeclined(ctx context.Context, supply *entity.User, feedbackBot string) {
	lang := supply.Language()
	s.QueueTo(ctx, entity.WorkflowSupply, supply.ChatID, entity.Reply{
		Text: translation.T(lang,
			"Your account was declined. Please, contact %s for any clarifications.", feedbackBot),
	})
}
