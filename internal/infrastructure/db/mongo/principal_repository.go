package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shoporbit/console-gateway/internal/core/domain"
	"github.com/shoporbit/console-gateway/internal/core/ports"
)

const principalCollection = "principals"

// MongoPrincipalRepository persists console accounts in MongoDB.
type MongoPrincipalRepository struct {
	coll *mongo.Collection
}

func NewPrincipalRepository(db *mongo.Database) *MongoPrincipalRepository {
	return &MongoPrincipalRepository{coll: db.Collection(principalCollection)}
}

type mongoPrincipal struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	IsActive     bool               `bson:"is_active"`
	CreatedAt    int64              `bson:"created_at"`
}

func (r *MongoPrincipalRepository) Create(ctx context.Context, rec *ports.PrincipalRecord) (*ports.PrincipalRecord, error) {
	doc := mongoPrincipal{
		Name:         rec.Principal.Name,
		Email:        rec.Principal.Email,
		PasswordHash: rec.PasswordHash,
		Role:         string(rec.Principal.Role),
		IsActive:     rec.Principal.IsActive,
		CreatedAt:    rec.Principal.CreatedAt.Unix(),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrPrincipalExists
		}
		return nil, fmt.Errorf("insert principal: %w", err)
	}

	return r.FindByEmail(ctx, rec.Principal.Email)
}

func (r *MongoPrincipalRepository) FindByEmail(ctx context.Context, email string) (*ports.PrincipalRecord, error) {
	var mp mongoPrincipal
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&mp); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("find principal: %w", err)
	}

	return &ports.PrincipalRecord{
		Principal: domain.Principal{
			ID:        mp.ID.Hex(),
			Name:      mp.Name,
			Email:     mp.Email,
			Role:      domain.Role(mp.Role),
			IsActive:  mp.IsActive,
			CreatedAt: unixToTime(mp.CreatedAt),
		},
		PasswordHash: mp.PasswordHash,
	}, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
