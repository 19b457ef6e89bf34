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

const collectionUsers = "users"

// UserRepository implements ports.UserRepository using MongoDB.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{col: db.Collection(collectionUsers)}
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	Age          *int               `bson:"age,omitempty"`
	Contact      string             `bson:"contact,omitempty"`
	BloodType    string             `bson:"blood_type,omitempty"`
	OTPCode      string             `bson:"otp_code,omitempty"`
	OTPExpiry    *time.Time         `bson:"otp_expiry,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func toUserDoc(u *domain.User) (userDoc, error) {
	doc := userDoc{
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Age:          u.Age,
		Contact:      u.Contact,
		BloodType:    u.BloodType,
		OTPCode:      u.OTPCode,
		OTPExpiry:    u.OTPExpiry,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if u.ID != "" {
		oid, err := primitive.ObjectIDFromHex(u.ID)
		if err != nil {
			return userDoc{}, fmt.Errorf("bad user id %q: %w", u.ID, err)
		}
		doc.ID = oid
	}
	return doc, nil
}

func (d userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         domain.Role(d.Role),
		Age:          d.Age,
		Contact:      d.Contact,
		BloodType:    d.BloodType,
		OTPCode:      d.OTPCode,
		OTPExpiry:    d.OTPExpiry,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M, missing error) (*domain.User, error) {
	var doc userDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, missing
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username}, domain.ErrUnknownUser)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, domain.ErrUnknownEmail)
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUnknownUser
	}
	return r.findOne(ctx, bson.M{"_id": oid}, domain.ErrUnknownUser)
}

// Save inserts the user when its ID is empty, otherwise replaces the stored
// record. The unique indexes on username and email turn races on identity
// into domain.ErrDuplicateIdentity.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	user.UpdatedAt = now

	if user.ID == "" {
		user.CreatedAt = now
		doc, err := toUserDoc(user)
		if err != nil {
			return nil, err
		}
		res, err := r.col.InsertOne(ctx, doc)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, domain.ErrDuplicateIdentity
			}
			return nil, fmt.Errorf("insert user: %w", err)
		}
		user.ID = res.InsertedID.(primitive.ObjectID).Hex()
		return user, nil
	}

	doc, err := toUserDoc(user)
	if err != nil {
		return nil, err
	}
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateIdentity
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrUnknownUser
	}
	return user, nil
}

func (r *UserRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUnknownUser
	}
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUnknownUser
	}
	return nil
}

func (r *UserRepository) FindByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	cur, err := r.col.Find(ctx, bson.M{"role": string(role)})
	if err != nil {
		return nil, fmt.Errorf("find users by role: %w", err)
	}
	defer cur.Close(ctx)

	var users []*domain.User
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, doc.toDomain())
	}
	return users, cur.Err()
}

func (r *UserRepository) CountAll(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates the unique identity indexes.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
