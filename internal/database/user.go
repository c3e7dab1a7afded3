package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"foodshare/bot/engine"
	"foodshare/entity"
)

// userDoc wraps entity.User with the storage identifier.
type userDoc struct {
	Key         string `bson:"_id"`
	entity.User `bson:",inline"`
}

// GetOrCreateUser upserts the actor in one round trip. Any inbound contact
// refreshes the chat address and flips the actor back to active.
func (m *MongoDB) GetOrCreateUser(ctx context.Context, id entity.Identity, chatID int64, username string) (*entity.User, error) {
	fresh := entity.NewUser(id, chatID, username)

	filter := bson.D{{Key: "_id", Value: id.Key()}}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "chat_id", Value: chatID},
			{Key: "active", Value: true},
		}},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "provider", Value: fresh.Provider},
			{Key: "workflow", Value: fresh.Workflow},
			{Key: "user_id", Value: fresh.UserID},
			{Key: "state", Value: fresh.State},
			{Key: "info", Value: fresh.Info},
			{Key: "is_admin", Value: false},
		}},
	}

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc userDoc
	if err := m.users().FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		return nil, fmt.Errorf("mongodb upsert user error: %w", err)
	}
	return &doc.User, nil
}

// GetUserByKey resolves a user by its storage identifier.
func (m *MongoDB) GetUserByKey(ctx context.Context, key string) (*entity.User, error) {
	var doc userDoc
	err := m.users().FindOne(ctx, bson.D{{Key: "_id", Value: key}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, engine.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb find user error: %w", err)
	}
	return &doc.User, nil
}

func (m *MongoDB) GetUser(ctx context.Context, id entity.Identity) (*entity.User, error) {
	return m.GetUserByKey(ctx, id.Key())
}

func (m *MongoDB) DeleteUser(ctx context.Context, user *entity.User) error {
	if _, err := m.users().DeleteOne(ctx, bson.D{{Key: "_id", Value: user.Key()}}); err != nil {
		return fmt.Errorf("mongodb delete user error: %w", err)
	}
	return nil
}

func (m *MongoDB) updateUser(ctx context.Context, user *entity.User, update bson.D) error {
	if _, err := m.users().UpdateOne(ctx, bson.D{{Key: "_id", Value: user.Key()}}, update); err != nil {
		return fmt.Errorf("mongodb update user error: %w", err)
	}
	return nil
}

func (m *MongoDB) SetInfo(ctx context.Context, user *entity.User, field entity.UserInfoField, value any) error {
	if err := m.updateUser(ctx, user, bson.D{
		{Key: "$set", Value: bson.D{{Key: "info." + string(field), Value: value}}},
	}); err != nil {
		return err
	}
	if user.Info == nil {
		user.Info = make(map[entity.UserInfoField]any)
	}
	user.Info[field] = value
	return nil
}

func (m *MongoDB) UnsetInfo(ctx context.Context, user *entity.User, field entity.UserInfoField) error {
	if err := m.updateUser(ctx, user, bson.D{
		{Key: "$unset", Value: bson.D{{Key: "info." + string(field), Value: ""}}},
	}); err != nil {
		return err
	}
	delete(user.Info, field)
	return nil
}

func (m *MongoDB) SetState(ctx context.Context, user *entity.User, state string) error {
	if err := m.updateUser(ctx, user, bson.D{
		{Key: "$set", Value: bson.D{{Key: "state", Value: state}}},
	}); err != nil {
		return err
	}
	user.State = state
	return nil
}

func (m *MongoDB) SetActive(ctx context.Context, user *entity.User, active bool) error {
	if err := m.updateUser(ctx, user, bson.D{
		{Key: "$set", Value: bson.D{{Key: "active", Value: active}}},
	}); err != nil {
		return err
	}
	user.Active = active
	return nil
}

// SetInactiveByChat mutes an actor identified only by its delivery address,
// used when the transport reports the recipient unreachable.
func (m *MongoDB) SetInactiveByChat(ctx context.Context, provider entity.Provider, workflow entity.Workflow, chatID int64) error {
	filter := bson.D{
		{Key: "provider", Value: provider},
		{Key: "workflow", Value: workflow},
		{Key: "chat_id", Value: chatID},
	}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "active", Value: false}}}}
	if _, err := m.users().UpdateMany(ctx, filter, update); err != nil {
		return fmt.Errorf("mongodb set inactive error: %w", err)
	}
	return nil
}

// SavePending overwrites the actor's single continuation slot.
func (m *MongoDB) SavePending(ctx context.Context, user *entity.User, cmd entity.Command) error {
	if err := m.updateUser(ctx, user, bson.D{
		{Key: "$set", Value: bson.D{{Key: "pending", Value: cmd}}},
	}); err != nil {
		return err
	}
	user.Pending = &cmd
	return nil
}

// LoadPending returns the saved continuation. Absence is a data defect:
// no legitimate user action leads here without a prior save.
func (m *MongoDB) LoadPending(ctx context.Context, user *entity.User) (entity.Command, error) {
	if user.Pending == nil {
		return entity.Command{}, engine.ErrNoPending
	}
	return *user.Pending, nil
}

func (m *MongoDB) SetEditingListing(ctx context.Context, user *entity.User, listingID string) error {
	if err := m.updateUser(ctx, user, bson.D{
		{Key: "$set", Value: bson.D{{Key: "editing_listing_id", Value: listingID}}},
	}); err != nil {
		return err
	}
	user.EditingID = listingID
	return nil
}

func (m *MongoDB) listUsers(ctx context.Context, filter bson.D) ([]*entity.User, error) {
	cursor, err := m.users().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("mongodb list users error: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*entity.User
	for cursor.Next(ctx) {
		var doc userDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("mongodb decode user error: %w", err)
		}
		u := doc.User
		out = append(out, &u)
	}
	return out, cursor.Err()
}

func (m *MongoDB) ListActiveUsers(ctx context.Context, workflow entity.Workflow) ([]*entity.User, error) {
	return m.listUsers(ctx, bson.D{
		{Key: "workflow", Value: workflow},
		{Key: "active", Value: true},
	})
}

func (m *MongoDB) ListAdminUsers(ctx context.Context) ([]*entity.User, error) {
	return m.listUsers(ctx, bson.D{{Key: "is_admin", Value: true}})
}
