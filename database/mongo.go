// database/mongo.go
package database

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trya20205-hub/SpinNRewardsbackend/models"
)

// MongoStore persists user records as documents in the users collection of
// spinnrewards_db, keyed by the numeric user_id field.
type MongoStore struct {
	client *mongo.Client
	users  *mongo.Collection
}

// NewMongoStore connects and pings with a short timeout.
func NewMongoStore(ctx context.Context, uri string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{
		client: client,
		users:  client.Database("spinnrewards_db").Collection("users"),
	}, nil
}

func (ms *MongoStore) Get(ctx context.Context, id string) (*models.User, error) {
	uid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad user id %q: %w", id, err)
	}

	var u models.User
	err = ms.users.FindOne(ctx, bson.M{"user_id": uid}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user %s: %w", id, err)
	}
	return &u, nil
}

func (ms *MongoStore) Put(ctx context.Context, id string, user *models.User) error {
	uid, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return fmt.Errorf("bad user id %q: %w", id, err)
	}
	user.TelegramID = uid

	opts := options.Update().SetUpsert(true)
	_, err = ms.users.UpdateOne(ctx, bson.M{"user_id": uid}, bson.M{"$set": user}, opts)
	if err != nil {
		return fmt.Errorf("upsert user %s: %w", id, err)
	}
	return nil
}

func (ms *MongoStore) All(ctx context.Context) (map[string]*models.User, error) {
	cur, err := ms.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	out := make(map[string]*models.User)
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		out[strconv.FormatInt(u.TelegramID, 10)] = &u
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}

func (ms *MongoStore) Count(ctx context.Context) (int64, error) {
	n, err := ms.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (ms *MongoStore) Close(ctx context.Context) error {
	return ms.client.Disconnect(ctx)
}
