package repository

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"foodshare/internal/config"
	"foodshare/internal/lib/sl"
)

const (
	usersCollection    = "users"
	listingsCollection = "listings"
)

// MongoDB implements the engine's Store on top of a Mongo database.
type MongoDB struct {
	client   *mongo.Client
	database string
	log      *slog.Logger
}

func NewMongoClient(ctx context.Context, conf *config.Config, logger *slog.Logger) (*MongoDB, error) {
	if !conf.Mongo.Enabled {
		return nil, nil
	}
	connectionUri := fmt.Sprintf("mongodb://%s:%s", conf.Mongo.Host, conf.Mongo.Port)
	clientOptions := options.Client().ApplyURI(connectionUri)
	if conf.Mongo.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username:   conf.Mongo.User,
			Password:   conf.Mongo.Password,
			AuthSource: conf.Mongo.Database,
		})
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect error: %w", err)
	}

	return &MongoDB{
		client:   client,
		database: conf.Mongo.Database,
		log:      logger.With(sl.Module("mongodb")),
	}, nil
}

func (m *MongoDB) Disconnect(ctx context.Context) {
	_ = m.client.Disconnect(ctx)
}

func (m *MongoDB) users() *mongo.Collection {
	return m.client.Database(m.database).Collection(usersCollection)
}

func (m *MongoDB) listings() *mongo.Collection {
	return m.client.Database(m.database).Collection(listingsCollection)
}
