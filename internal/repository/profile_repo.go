package repository

import (
	"context"
	"errors"
	"regexp"

	"trustledger-backend/internal/database"
	"trustledger-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ProfileRepo stores one document per profile with its ledger embedded,
// newest entry first.
type ProfileRepo struct {
	collection *mongo.Collection
}

func NewProfileRepo() *ProfileRepo {
	return &ProfileRepo{
		collection: database.GetCollection("profiles"),
	}
}

// NewProfileRepoWithCollection is used by tests that point at a throwaway
// database.
func NewProfileRepoWithCollection(c *mongo.Collection) *ProfileRepo {
	return &ProfileRepo{collection: c}
}

func (r *ProfileRepo) FindByID(ctx context.Context, id string) (*models.UserProfile, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ProfileRepo) FindByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	return r.findOne(ctx, bson.M{"email_key": EmailKey(email)})
}

func (r *ProfileRepo) findOne(ctx context.Context, filter bson.M) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.collection.FindOne(ctx, filter).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	if profile.Feedback == nil {
		profile.Feedback = []models.FeedbackEntry{}
	}
	return &profile, nil
}

// SearchByName relies on UUIDv7 ids: sorting by _id is insertion order.
func (r *ProfileRepo) SearchByName(ctx context.Context, query string) ([]models.UserProfile, error) {
	filter := bson.M{"name": bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"}}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	profiles := make([]models.UserProfile, 0)
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, err
	}
	for i := range profiles {
		if profiles[i].Feedback == nil {
			profiles[i].Feedback = []models.FeedbackEntry{}
		}
	}
	return profiles, nil
}

func (r *ProfileRepo) Create(ctx context.Context, profile *models.UserProfile) error {
	doc := profile.Clone()
	doc.EmailKey = EmailKey(profile.Email)
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	profile.EmailKey = doc.EmailKey
	return nil
}

// Update rewrites the mutable fields. email and email_key are never changed
// after creation.
func (r *ProfileRepo) Update(ctx context.Context, profile *models.UserProfile) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": profile.ID}, bson.M{
		"$set": bson.M{
			"name":           profile.Name,
			"avatar_url":     profile.AvatarURL,
			"bio":            profile.Bio,
			"average_rating": profile.AverageRating,
			"feedback":       profile.Feedback,
			"updated_at":     profile.UpdatedAt,
		},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProfileRepo) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates necessary indexes for the profiles collection
func (r *ProfileRepo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email_key", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "name", Value: 1}},
		},
	}
	_, err := r.collection.Indexes().CreateMany(ctx, indexes)
	return err
}
