package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"foodshare/bot/engine"
	"foodshare/entity"
)

// CreateListing starts a draft and points the owner's editing reference at it.
func (m *MongoDB) CreateListing(ctx context.Context, owner *entity.User, firstItem string) (*entity.Listing, error) {
	listing := entity.NewListing(owner.Key(), firstItem)

	if _, err := m.listings().InsertOne(ctx, listing); err != nil {
		return nil, fmt.Errorf("mongodb insert listing error: %w", err)
	}
	if err := m.SetEditingListing(ctx, owner, listing.ID); err != nil {
		return nil, err
	}
	return listing, nil
}

func (m *MongoDB) updateListing(ctx context.Context, listingID string, update bson.D) error {
	res, err := m.listings().UpdateOne(ctx, bson.D{{Key: "_id", Value: listingID}}, update)
	if err != nil {
		return fmt.Errorf("mongodb update listing error: %w", err)
	}
	if res.MatchedCount == 0 {
		return engine.ErrNotFound
	}
	return nil
}

// AppendListingItem appends one line to a draft. Items are append-only.
func (m *MongoDB) AppendListingItem(ctx context.Context, listingID, item string) error {
	return m.updateListing(ctx, listingID, bson.D{
		{Key: "$push", Value: bson.D{{Key: "items", Value: item}}},
	})
}

func (m *MongoDB) SetListingTakeTime(ctx context.Context, listingID, takeTime string) error {
	return m.updateListing(ctx, listingID, bson.D{
		{Key: "$set", Value: bson.D{{Key: "take_time", Value: takeTime}}},
	})
}

// PublishListing opens the listing for claiming. Publication time and
// booking eligibility begin together.
func (m *MongoDB) PublishListing(ctx context.Context, listingID string, at time.Time) error {
	return m.updateListing(ctx, listingID, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "lifecycle", Value: entity.LifecyclePublished},
			{Key: "published_at", Value: at},
		}},
	})
}

func (m *MongoDB) SetListingLifecycle(ctx context.Context, listingID string, lifecycle entity.Lifecycle) error {
	return m.updateListing(ctx, listingID, bson.D{
		{Key: "$set", Value: bson.D{{Key: "lifecycle", Value: lifecycle}}},
	})
}

// ClaimListing performs the compare-and-set booking claim as one conditional
// update on the server. Two racing claimers hit the same filter and only one
// matches; a read-then-write here would break claim exclusivity.
func (m *MongoDB) ClaimListing(ctx context.Context, listingID, demandUserKey string) (bool, error) {
	filter := bson.D{
		{Key: "_id", Value: listingID},
		{Key: "claimed_by", Value: ""},
		{Key: "lifecycle", Value: entity.LifecyclePublished},
	}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "claimed_by", Value: demandUserKey},
		{Key: "lifecycle", Value: entity.LifecycleBooked},
	}}}

	err := m.listings().FindOneAndUpdate(ctx, filter, update).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("mongodb claim listing error: %w", err)
	}
	return true, nil
}

// ReleaseClaim reopens a listing after an explicit cancellation.
func (m *MongoDB) ReleaseClaim(ctx context.Context, listingID string) error {
	return m.updateListing(ctx, listingID, bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "claimed_by", Value: ""},
			{Key: "lifecycle", Value: entity.LifecyclePublished},
		}},
	})
}

func (m *MongoDB) GetListing(ctx context.Context, listingID string) (*entity.Listing, error) {
	var listing entity.Listing
	err := m.listings().FindOne(ctx, bson.D{{Key: "_id", Value: listingID}}).Decode(&listing)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, engine.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("mongodb find listing error: %w", err)
	}
	return &listing, nil
}

// ListRecentListings returns the owner's non-draft listings, newest first.
// Deactivated and taken listings stay visible to their owner.
func (m *MongoDB) ListRecentListings(ctx context.Context, owner *entity.User, since time.Time) ([]*entity.Listing, error) {
	filter := bson.D{
		{Key: "owner_id", Value: owner.Key()},
		{Key: "lifecycle", Value: bson.D{{Key: "$ne", Value: entity.LifecycleDraft}}},
		{Key: "published_at", Value: bson.D{{Key: "$gte", Value: since}}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}})

	cursor, err := m.listings().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb list listings error: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*entity.Listing
	for cursor.Next(ctx) {
		var l entity.Listing
		if err := cursor.Decode(&l); err != nil {
			return nil, fmt.Errorf("mongodb decode listing error: %w", err)
		}
		out = append(out, &l)
	}
	return out, cursor.Err()
}
