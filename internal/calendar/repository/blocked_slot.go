package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	calendarerrors "slotwise/internal/calendar/errors"
	"slotwise/pkg/config"
	"slotwise/pkg/model"
)

const BlockedCollectionName = "Blocked_slots"

type mongoBlockedSlotRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type BlockedSlotRepository interface {
	Create(ctx context.Context, slot *model.BlockedTimeSlot) error
	FindByID(ctx context.Context, id string) (*model.BlockedTimeSlot, error)
	FindByBusiness(ctx context.Context, businessID string, limit int, offset int64) ([]*model.BlockedTimeSlot, error)
	FindActiveByBusiness(ctx context.Context, businessID string) ([]*model.BlockedTimeSlot, error)
	Deactivate(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

func NewMongoBlockedSlotRepository(cfg *config.Config) BlockedSlotRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBlockedSlotRepository{
		cfg:        cfg,
		collection: db.Collection(BlockedCollectionName),
	}
}

func (r *mongoBlockedSlotRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoBlockedSlotRepository) Create(ctx context.Context, slot *model.BlockedTimeSlot) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	slot.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	result, err := r.collection.InsertOne(ctx, slot)
	if err != nil {
		return fmt.Errorf("failed to create blocked slot: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		slot.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBlockedSlotRepository) FindByID(ctx context.Context, id string) (*model.BlockedTimeSlot, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", calendarerrors.ErrInvalidID, id)
	}

	var slot model.BlockedTimeSlot
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&slot)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, calendarerrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find blocked slot: %w", err)
	}

	return &slot, nil
}

func (r *mongoBlockedSlotRepository) FindByBusiness(ctx context.Context, businessID string, limit int, offset int64) ([]*model.BlockedTimeSlot, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_time", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{"business_id": businessID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find blocked slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []*model.BlockedTimeSlot
	if err = cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode blocked slots: %w", err)
	}

	return slots, nil
}

// FindActiveByBusiness feeds the availability resolver. Recurrence filtering
// happens in memory because a recurring rule's anchor date says nothing
// about which future dates it covers.
func (r *mongoBlockedSlotRepository) FindActiveByBusiness(ctx context.Context, businessID string) ([]*model.BlockedTimeSlot, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{
		"business_id": businessID,
		"active":      true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find active blocked slots: %w", err)
	}
	defer cursor.Close(ctx)

	var slots []*model.BlockedTimeSlot
	if err = cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("failed to decode blocked slots: %w", err)
	}

	return slots, nil
}

func (r *mongoBlockedSlotRepository) Deactivate(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", calendarerrors.ErrInvalidID, id)
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"active": false}},
	)
	if err != nil {
		return fmt.Errorf("failed to deactivate blocked slot: %w", err)
	}
	if result.MatchedCount == 0 {
		return calendarerrors.ErrNotFound
	}

	return nil
}

func (r *mongoBlockedSlotRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", calendarerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete blocked slot: %w", err)
	}
	if result.DeletedCount == 0 {
		return calendarerrors.ErrNotFound
	}

	return nil
}
