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

const collectionRequests = "blood_requests"

// RequestRepository implements ports.RequestRepository using MongoDB.
type RequestRepository struct {
	col *mongo.Collection
}

func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{col: db.Collection(collectionRequests)}
}

type requestDoc struct {
	ID                primitive.ObjectID `bson:"_id,omitempty"`
	BloodType         string             `bson:"blood_type"`
	Amount            int                `bson:"amount"`
	Urgency           string             `bson:"urgency"`
	RequesterName     string             `bson:"requester_name,omitempty"`
	HospitalName      string             `bson:"hospital_name,omitempty"`
	Reason            string             `bson:"reason,omitempty"`
	NeededByDate      *time.Time         `bson:"needed_by_date,omitempty"`
	RequestDate       time.Time          `bson:"request_date"`
	Status            string             `bson:"status"`
	RequesterID       string             `bson:"requester_id"`
	RequesterUsername string             `bson:"requester_username"`
}

func toRequestDoc(r *domain.BloodRequest) requestDoc {
	return requestDoc{
		BloodType:         r.BloodType,
		Amount:            r.Amount,
		Urgency:           string(r.Urgency),
		RequesterName:     r.RequesterName,
		HospitalName:      r.HospitalName,
		Reason:            r.Reason,
		NeededByDate:      r.NeededByDate,
		RequestDate:       r.RequestDate.UTC(),
		Status:            string(r.Status),
		RequesterID:       r.RequesterID,
		RequesterUsername: r.RequesterUsername,
	}
}

func (d requestDoc) toDomain() *domain.BloodRequest {
	return &domain.BloodRequest{
		ID:                d.ID.Hex(),
		BloodType:         d.BloodType,
		Amount:            d.Amount,
		Urgency:           domain.Urgency(d.Urgency),
		RequesterName:     d.RequesterName,
		HospitalName:      d.HospitalName,
		Reason:            d.Reason,
		NeededByDate:      d.NeededByDate,
		RequestDate:       d.RequestDate,
		Status:            domain.RequestStatus(d.Status),
		RequesterID:       d.RequesterID,
		RequesterUsername: d.RequesterUsername,
	}
}

func (r *RequestRepository) Insert(ctx context.Context, req *domain.BloodRequest) (*domain.BloodRequest, error) {
	res, err := r.col.InsertOne(ctx, toRequestDoc(req))
	if err != nil {
		return nil, fmt.Errorf("insert request: %w", err)
	}
	req.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return req, nil
}

func (r *RequestRepository) FindByID(ctx context.Context, id string) (*domain.BloodRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var doc requestDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find request: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *RequestRepository) Update(ctx context.Context, req *domain.BloodRequest) (*domain.BloodRequest, error) {
	oid, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	doc := toRequestDoc(req)
	doc.ID = oid
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update request: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNotFound
	}
	return req, nil
}

func (r *RequestRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotFound
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RequestRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*domain.BloodRequest, error) {
	cur, err := r.col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find requests: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.BloodRequest
	for cur.Next(ctx) {
		var doc requestDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode request: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *RequestRepository) FindAll(ctx context.Context) ([]*domain.BloodRequest, error) {
	return r.find(ctx, bson.M{})
}

func (r *RequestRepository) FindByBloodType(ctx context.Context, bloodType string) ([]*domain.BloodRequest, error) {
	return r.find(ctx, bson.M{"blood_type": bloodType})
}

func (r *RequestRepository) FindByStatus(ctx context.Context, status domain.RequestStatus) ([]*domain.BloodRequest, error) {
	return r.find(ctx, bson.M{"status": string(status)})
}

func (r *RequestRepository) FindByUrgencyAndStatus(ctx context.Context, urgency domain.Urgency, status domain.RequestStatus) ([]*domain.BloodRequest, error) {
	return r.find(ctx, bson.M{"urgency": string(urgency), "status": string(status)})
}

func (r *RequestRepository) FindByRequesterID(ctx context.Context, requesterID string) ([]*domain.BloodRequest, error) {
	return r.find(ctx, bson.M{"requester_id": requesterID})
}

func (r *RequestRepository) FindByHospital(ctx context.Context, hospitalName string) ([]*domain.BloodRequest, error) {
	return r.find(ctx, bson.M{"hospital_name": hospitalName})
}

func (r *RequestRepository) FindOverdue(ctx context.Context, before time.Time) ([]*domain.BloodRequest, error) {
	return r.find(ctx, bson.M{
		"needed_by_date": bson.M{"$lt": before.UTC()},
		"status":         string(domain.RequestPending),
	})
}

func (r *RequestRepository) FindRecent(ctx context.Context, limit int64) ([]*domain.BloodRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "request_date", Value: -1}}).SetLimit(limit)
	return r.find(ctx, bson.M{}, opts)
}

func (r *RequestRepository) CountByStatus(ctx context.Context, status domain.RequestStatus) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"status": string(status)})
}

func (r *RequestRepository) CountByUrgencyAndStatus(ctx context.Context, urgency domain.Urgency, status domain.RequestStatus) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"urgency": string(urgency), "status": string(status)})
}

// EnsureIndexes creates the request query indexes.
func (r *RequestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "urgency", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "requester_id", Value: 1}}},
		{Keys: bson.D{{Key: "request_date", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
