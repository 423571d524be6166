package repository

import (
	"context"
	"errors"
	"fmt"

	"kisan_backend/platform/apperr"
	"kisan_backend/platform/config"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const userNotFoundMessage = "User not found"

// Repo implements the Repository interface with MongoDB.
type Repo struct {
	doctors *mongo.Collection
	users   *mongo.Collection
	crops   *mongo.Collection
}

// New creates a directory repository over the configured collections of db.
func New(db *mongo.Database, cfg config.MongoConfig) *Repo {
	return &Repo{
		doctors: db.Collection(cfg.GetDoctorsCollection()),
		users:   db.Collection(cfg.GetUsersCollection()),
		crops:   db.Collection(cfg.GetCropsCollection()),
	}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// ListDoctors returns every doctor document in store iteration order.
func (r *Repo) ListDoctors(ctx context.Context) ([]Doctor, error) {
	cursor, err := r.doctors.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	defer cursor.Close(ctx)

	doctors := []Doctor{}
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("decode doctors: %w", err)
	}
	return doctors, nil
}

// GetUser loads a user by document id. Ids that look like ObjectIDs match
// either representation.
func (r *Repo) GetUser(ctx context.Context, id string) (User, error) {
	var user User
	err := r.users.FindOne(ctx, userFilter(id)).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, apperr.NotFound(userNotFoundMessage)
		}
		return User{}, fmt.Errorf("get user by id: %w", err)
	}
	user.ID = id
	return user, nil
}

// ListCropsByUser returns the crop documents whose userid equals userID.
func (r *Repo) ListCropsByUser(ctx context.Context, userID string) ([]Crop, error) {
	cursor, err := r.crops.Find(ctx, bson.D{{Key: "userid", Value: userID}})
	if err != nil {
		return nil, fmt.Errorf("list crops by user: %w", err)
	}
	defer cursor.Close(ctx)

	crops := []Crop{}
	if err := cursor.All(ctx, &crops); err != nil {
		return nil, fmt.Errorf("decode crops: %w", err)
	}
	return crops, nil
}

func userFilter(id string) bson.D {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: bson.A{oid, id}}}}}
	}
	return bson.D{{Key: "_id", Value: id}}
}
