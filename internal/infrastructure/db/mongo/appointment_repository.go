package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bloodlink/donation-system/internal/core/domain"
)

const collectionAppointments = "appointments"

// AppointmentRepository implements ports.AppointmentRepository using MongoDB.
type AppointmentRepository struct {
	col *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{col: db.Collection(collectionAppointments)}
}

type appointmentDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	BloodType       string             `bson:"blood_type"`
	AppointmentDate time.Time          `bson:"appointment_date"`
	Location        string             `bson:"location,omitempty"`
	Status          string             `bson:"status"`
	UserID          string             `bson:"user_id"`
	Username        string             `bson:"username"`
}

func (d appointmentDoc) toDomain() *domain.Appointment {
	return &domain.Appointment{
		ID:              d.ID.Hex(),
		BloodType:       d.BloodType,
		AppointmentDate: d.AppointmentDate,
		Location:        d.Location,
		Status:          domain.AppointmentStatus(d.Status),
		UserID:          d.UserID,
		Username:        d.Username,
	}
}

func (r *AppointmentRepository) Insert(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	doc := appointmentDoc{
		BloodType:       a.BloodType,
		AppointmentDate: a.AppointmentDate.UTC(),
		Location:        a.Location,
		Status:          string(a.Status),
		UserID:          a.UserID,
		Username:        a.Username,
	}
	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert appointment: %w", err)
	}
	a.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return a, nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var doc appointmentDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AppointmentRepository) Update(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(a.ID)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	doc := appointmentDoc{
		ID:              oid,
		BloodType:       a.BloodType,
		AppointmentDate: a.AppointmentDate.UTC(),
		Location:        a.Location,
		Status:          string(a.Status),
		UserID:          a.UserID,
		Username:        a.Username,
	}
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func (r *AppointmentRepository) find(ctx context.Context, filter bson.M) ([]*domain.Appointment, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find appointments: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Appointment
	for cur.Next(ctx) {
		var doc appointmentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode appointment: %w", err)
		}
		out = append(out, doc.toDomain())
	}
	return out, cur.Err()
}

func (r *AppointmentRepository) FindByUserID(ctx context.Context, userID string) ([]*domain.Appointment, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *AppointmentRepository) FindAll(ctx context.Context) ([]*domain.Appointment, error) {
	return r.find(ctx, bson.M{})
}

func (r *AppointmentRepository) CountAll(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *AppointmentRepository) CountByStatus(ctx context.Context, status domain.AppointmentStatus) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"status": string(status)})
}

// EnsureIndexes creates the appointment query indexes.
func (r *AppointmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
