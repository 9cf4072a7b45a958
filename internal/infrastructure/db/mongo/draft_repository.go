package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/servicehub/portal/internal/core/domain"
)

const collectionDrafts = "drafts"

// draftDocument stores the draft as its JSON encoding so that item
// references survive the round trip unchanged.
type draftDocument struct {
	Key       string    `bson:"_id"`
	Kind      string    `bson:"kind"`
	UserID    int64     `bson:"user_id"`
	EntityID  int64     `bson:"entity_id"`
	Payload   []byte    `bson:"payload"`
	UpdatedAt time.Time `bson:"updated_at"`
}

type DraftRepository struct {
	col *mongo.Collection
	ttl time.Duration
}

func NewDraftRepository(db *mongo.Database, ttl time.Duration) *DraftRepository {
	return &DraftRepository{col: db.Collection(collectionDrafts), ttl: ttl}
}

// Get retrieves a draft by key.
func (r *DraftRepository) Get(ctx context.Context, key string) (*domain.Draft, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc draftDocument
	err := r.col.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDraftNotFound
		}
		return nil, err
	}

	var d domain.Draft
	if err := json.Unmarshal(doc.Payload, &d); err != nil {
		return nil, fmt.Errorf("draft decode: %w", err)
	}
	return &d, nil
}

// Put upserts the draft.
func (r *DraftRepository) Put(ctx context.Context, d *domain.Draft) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	payload, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("draft encode: %w", err)
	}
	doc := draftDocument{
		Key:       d.Key,
		Kind:      string(d.Kind),
		UserID:    d.UserID,
		EntityID:  d.EntityID,
		Payload:   payload,
		UpdatedAt: d.UpdatedAt,
	}
	_, err = r.col.ReplaceOne(ctx, bson.M{"_id": d.Key}, doc, options.Replace().SetUpsert(true))
	return err
}

func (r *DraftRepository) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteOne(ctx, bson.M{"_id": key})
	return err
}

func (r *DraftRepository) Ping(ctx context.Context) error {
	return r.col.Database().Client().Ping(ctx, readpref.Primary())
}

// EnsureIndexes creates the TTL index that expires abandoned drafts and
// the lookup index by user.
func (r *DraftRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(r.ttl.Seconds())),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "kind", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
