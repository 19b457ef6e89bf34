package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bloodlink/donation-system/internal/core/domain"
)

const collectionDonations = "donations"

// DonationRepository implements ports.DonationRepository using MongoDB.
type DonationRepository struct {
	col *mongo.Collection
}

func NewDonationRepository(db *mongo.Database) *DonationRepository {
	return &DonationRepository{col: db.Collection(collectionDonations)}
}

type donationDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	BloodType     string             `bson:"blood_type"`
	Amount        int                `bson:"amount"`
	Available     bool               `bson:"available"`
	DonationDate  time.Time          `bson:"donation_date"`
	Location      string             `bson:"location,omitempty"`
	Notes         string             `bson:"notes,omitempty"`
	DonorID       string             `bson:"donor_id"`
	DonorUsername string             `bson:"donor_username"`
}

func (d donationDoc) toDomain() *domain.Donation {
	return &domain.Donation{
		ID:            d.ID.Hex(),
		BloodType:     d.BloodType,
		Amount:        d.Amount,
		Available:     d.Available,
		DonationDate:  d.DonationDate,
		Location:      d.Location,
		Notes:         d.Notes,
		DonorID:       d.DonorID,
		DonorUsername: d.DonorUsername,
	}
}

func (r *DonationRepository) Insert(ctx context.Context, d *domain.Donation) (*domain.Donation, error) {
	doc := donationDoc{
		BloodType:     d.BloodType,
		Amount:        d.Amount,
		Available:     d.Available,
		DonationDate:  d.DonationDate.UTC(),
		Location:      d.Location,
		Notes:         d.Notes,
		DonorID:       d.DonorID,
		DonorUsername: d.DonorUsername,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert donation: %w", err)
	}
	d.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return d, nil
}

func (r *DonationRepository) FindByID(ctx context.Context, id string) (*domain.Donation, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var doc donationDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find donation: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *DonationRepository) Update(ctx context.Context, d *domain.Donation) (*domain.Donation, error) {
	oid, err := primitive.ObjectIDFromHex(d.ID)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	doc := donationDoc{
		ID:            oid,
		BloodType:     d.BloodType,
		Amount:        d.Amount,
		Available:     d.Available,
		DonationDate:  d.DonationDate.UTC(),
		Location:      d.Location,
		Notes:         d.Notes,
		DonorID:       d.DonorID,
		DonorUsername: d.DonorUsername,
	}
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update donation: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func (r *DonationRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete donation: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *DonationRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*domain.Donation, error) {
	cur, err := r.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find donations: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Donation
	for cur.Next(ctx) {
		var doc donationDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode donation: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *DonationRepository) FindAll(ctx context.Context) ([]*domain.Donation, error) {
	return r.find(ctx, bson.M{})
}

func (r *DonationRepository) FindAvailable(ctx context.Context) ([]*domain.Donation, error) {
	return r.find(ctx, bson.M{"available": true})
}

func (r *DonationRepository) FindAvailableByBloodType(ctx context.Context, bloodType string) ([]*domain.Donation, error) {
	return r.find(ctx, bson.M{"blood_type": bloodType, "available": true})
}

func (r *DonationRepository) FindByDonorID(ctx context.Context, donorID string) ([]*domain.Donation, error) {
	return r.find(ctx, bson.M{"donor_id": donorID})
}

func (r *DonationRepository) FindRecent(ctx context.Context, limit int64) ([]*domain.Donation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "donation_date", Value: -1}}).SetLimit(limit)
	return r.find(ctx, bson.M{}, opts)
}

func (r *DonationRepository) CountAvailableByBloodType(ctx context.Context, bloodType string) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"blood_type": bloodType, "available": true})
}

// EnsureIndexes creates the donation query indexes.
func (r *DonationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "donor_id", Value: 1}}},
		{Keys: bson.D{{Key: "blood_type", Value: 1}, {Key: "available", Value: 1}}},
		{Keys: bson.D{{Key: "donation_date", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
