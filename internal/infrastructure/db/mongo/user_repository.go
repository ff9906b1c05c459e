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

const userCollection = "users"

type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(userCollection)}
}

type mongoUser struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Email            string             `bson:"email"`
	PasswordHash     string             `bson:"password_hash"`
	FirstName        string             `bson:"first_name"`
	LastName         string             `bson:"last_name"`
	IsVerified       bool               `bson:"is_verified"`
	IsSeller         bool               `bson:"is_seller"`
	AddressIDs       []string           `bson:"address_ids"`
	DefaultAddressID string             `bson:"default_address_id,omitempty"`
	CreatedAt        int64              `bson:"created_at"`
	UpdatedAt        int64              `bson:"updated_at"`
}

func (r *MongoUserRepository) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	res, err := r.coll.InsertOne(ctx, toUserDoc(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return fromUserDoc(&mu), nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mu); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return fromUserDoc(&mu), nil
}

func (r *MongoUserRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	doc := toUserDoc(user)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUserNotFound
	}

	updated := *user
	return &updated, nil
}

func (r *MongoUserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func toUserDoc(user *domain.User) mongoUser {
	doc := mongoUser{
		Email:            user.Email,
		PasswordHash:     user.PasswordHash,
		FirstName:        user.FirstName,
		LastName:         user.LastName,
		IsVerified:       user.IsVerified,
		IsSeller:         user.IsSeller,
		AddressIDs:       user.AddressIDs,
		DefaultAddressID: user.DefaultAddressID,
		CreatedAt:        user.CreatedAt.Unix(),
		UpdatedAt:        user.UpdatedAt.Unix(),
	}
	if user.ID != "" {
		if oid, err := primitive.ObjectIDFromHex(user.ID); err == nil {
			doc.ID = oid
		}
	}
	return doc
}

func fromUserDoc(mu *mongoUser) *domain.User {
	return &domain.User{
		ID:               mu.ID.Hex(),
		Email:            mu.Email,
		PasswordHash:     mu.PasswordHash,
		FirstName:        mu.FirstName,
		LastName:         mu.LastName,
		IsVerified:       mu.IsVerified,
		IsSeller:         mu.IsSeller,
		AddressIDs:       mu.AddressIDs,
		DefaultAddressID: mu.DefaultAddressID,
		CreatedAt:        unixToTime(mu.CreatedAt),
		UpdatedAt:        unixToTime(mu.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
