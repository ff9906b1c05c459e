package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mercatto/account-service/internal/core/domain"
)

const addressCollection = "addresses"

type MongoAddressRepository struct {
	coll *mongo.Collection
}

func NewAddressRepository(db *mongo.Database) *MongoAddressRepository {
	return &MongoAddressRepository{coll: db.Collection(addressCollection)}
}

type mongoAddress struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	CityName     string             `bson:"city_name"`
	CountyName   string             `bson:"county_name"`
	DistrictName string             `bson:"district_name"`
	AddressText  string             `bson:"address_text"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (r *MongoAddressRepository) Insert(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	res, err := r.coll.InsertOne(ctx, toAddressDoc(address))
	if err != nil {
		return nil, fmt.Errorf("insert address: %w", err)
	}

	created := *address
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoAddressRepository) FindByID(ctx context.Context, id string) (*domain.Address, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAddressNotFound
	}

	var ma mongoAddress
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ma); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrAddressNotFound
		}
		return nil, fmt.Errorf("find address: %w", err)
	}
	return fromAddressDoc(&ma), nil
}

// FindByIDs resolves the given ids, preserving input order. Ids that no
// longer resolve are skipped rather than failing the join.
func (r *MongoAddressRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Address, error) {
	if len(ids) == 0 {
		return []domain.Address{}, nil
	}

	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}

	cursor, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find addresses: %w", err)
	}
	defer cursor.Close(ctx)

	byID := make(map[string]domain.Address, len(ids))
	for cursor.Next(ctx) {
		var ma mongoAddress
		if err := cursor.Decode(&ma); err != nil {
			return nil, fmt.Errorf("decode address: %w", err)
		}
		byID[ma.ID.Hex()] = *fromAddressDoc(&ma)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate addresses: %w", err)
	}

	ordered := make([]domain.Address, 0, len(ids))
	for _, id := range ids {
		if address, ok := byID[id]; ok {
			ordered = append(ordered, address)
		}
	}
	return ordered, nil
}

func (r *MongoAddressRepository) Update(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	oid, err := primitive.ObjectIDFromHex(address.ID)
	if err != nil {
		return nil, domain.ErrAddressNotFound
	}

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, toAddressDoc(address))
	if err != nil {
		return nil, fmt.Errorf("update address: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrAddressNotFound
	}

	updated := *address
	return &updated, nil
}

func (r *MongoAddressRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAddressNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAddressNotFound
	}
	return nil
}

func toAddressDoc(address *domain.Address) mongoAddress {
	doc := mongoAddress{
		CityName:     address.CityName,
		CountyName:   address.CountyName,
		DistrictName: address.DistrictName,
		AddressText:  address.AddressText,
		CreatedAt:    address.CreatedAt.Unix(),
		UpdatedAt:    address.UpdatedAt.Unix(),
	}
	if address.ID != "" {
		if oid, err := primitive.ObjectIDFromHex(address.ID); err == nil {
			doc.ID = oid
		}
	}
	return doc
}

func fromAddressDoc(ma *mongoAddress) *domain.Address {
	return &domain.Address{
		ID:           ma.ID.Hex(),
		CityName:     ma.CityName,
		CountyName:   ma.CountyName,
		DistrictName: ma.DistrictName,
		AddressText:  ma.AddressText,
		CreatedAt:    unixToTime(ma.CreatedAt),
		UpdatedAt:    unixToTime(ma.UpdatedAt),
	}
}
