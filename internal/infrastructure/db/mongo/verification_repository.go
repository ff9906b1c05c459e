package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mercatto/account-service/internal/core/domain"
)

const verificationCollection = "verifications"

type MongoVerificationRepository struct {
	coll *mongo.Collection
}

func NewVerificationRepository(db *mongo.Database) *MongoVerificationRepository {
	return &MongoVerificationRepository{coll: db.Collection(verificationCollection)}
}

// expires_at is stored as a BSON date so the TTL index can act on it.
type mongoVerification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"user_id"`
	Email     string             `bson:"email"`
	Code      string             `bson:"code"`
	ExpiresAt time.Time          `bson:"expires_at"`
	Verified  bool               `bson:"verified"`
	CreatedAt int64              `bson:"created_at"`
}

func (r *MongoVerificationRepository) Insert(ctx context.Context, v *domain.Verification) (*domain.Verification, error) {
	doc := mongoVerification{
		UserID:    v.UserID,
		Email:     v.Email,
		Code:      v.Code,
		ExpiresAt: v.ExpiresAt.UTC(),
		Verified:  v.Verified,
		CreatedAt: v.CreatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert verification: %w", err)
	}

	created := *v
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoVerificationRepository) FindActive(ctx context.Context, userID, code string, now time.Time) (*domain.Verification, error) {
	filter := bson.M{
		"user_id":    userID,
		"code":       code,
		"expires_at": bson.M{"$gt": now.UTC()},
	}

	var mv mongoVerification
	if err := r.coll.FindOne(ctx, filter).Decode(&mv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCodeInvalidOrExpired
		}
		return nil, fmt.Errorf("find verification: %w", err)
	}

	return &domain.Verification{
		ID:        mv.ID.Hex(),
		UserID:    mv.UserID,
		Email:     mv.Email,
		Code:      mv.Code,
		ExpiresAt: mv.ExpiresAt.UTC(),
		Verified:  mv.Verified,
		CreatedAt: unixToTime(mv.CreatedAt),
	}, nil
}

func (r *MongoVerificationRepository) Update(ctx context.Context, v *domain.Verification) error {
	oid, err := primitive.ObjectIDFromHex(v.ID)
	if err != nil {
		return domain.ErrCodeInvalidOrExpired
	}

	update := bson.M{"$set": bson.M{"verified": v.Verified}}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update); err != nil {
		return fmt.Errorf("update verification: %w", err)
	}
	return nil
}

func (r *MongoVerificationRepository) DeleteByUserID(ctx context.Context, userID string) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"user_id": userID}); err != nil {
		return fmt.Errorf("delete verifications: %w", err)
	}
	return nil
}
