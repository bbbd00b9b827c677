package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"slotwise/pkg/config"
	"slotwise/pkg/model"
)

const LockCollectionName = "Slot_locks"

// SlotLockRepository provides operations for advisory slot locks. A lock is
// acquired by inserting a document whose _id encodes the business and date;
// the unique index makes a second insert fail with a duplicate key error,
// which serializes competing bookings for the same day.
type SlotLockRepository interface {
	Create(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error)
	Delete(ctx context.Context, lockID string) error
}

type mongoSlotLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewSlotLockRepository(cfg *config.Config) SlotLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSlotLockRepository{
		cfg:        cfg,
		collection: db.Collection(LockCollectionName),
	}
}

// Create returns a duplicate key error when the lock is already held. The
// expires_at TTL index reaps locks orphaned by a crashed process.
func (r *mongoSlotLockRepository) Create(ctx context.Context, lock *model.SlotLock) (*model.SlotLock, error) {
	now := time.Now().UTC()
	lock.CreatedAt = now
	lock.ExpiresAt = now.Add(r.cfg.SlotLockTTL)

	_, err := r.collection.InsertOne(ctx, lock)
	if err != nil {
		return nil, err
	}

	return lock, nil
}

func (r *mongoSlotLockRepository) Delete(ctx context.Context, lockID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID})
	return err
}
