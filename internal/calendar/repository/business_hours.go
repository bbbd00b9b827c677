package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	calendarerrors "slotwise/internal/calendar/errors"
	"slotwise/pkg/config"
	"slotwise/pkg/model"
)

const HoursCollectionName = "Business_hours"

type mongoBusinessHoursRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type BusinessHoursRepository interface {
	Upsert(ctx context.Context, hours *model.BusinessHours) error
	FindByBusinessAndWeekday(ctx context.Context, businessID, weekday string) (*model.BusinessHours, error)
	FindByBusiness(ctx context.Context, businessID string) ([]*model.BusinessHours, error)
	Delete(ctx context.Context, businessID, weekday string) error
}

func NewMongoBusinessHoursRepository(cfg *config.Config) BusinessHoursRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBusinessHoursRepository{
		cfg:        cfg,
		collection: db.Collection(HoursCollectionName),
	}
}

func (r *mongoBusinessHoursRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

// Upsert keys on (business_id, weekday): one document per business per
// day-of-week, hence calendar edits are idempotent.
func (r *mongoBusinessHoursRepository) Upsert(ctx context.Context, hours *model.BusinessHours) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	hours.UpdatedAt = now

	filter := bson.M{
		"business_id": hours.BusinessID,
		"weekday":     hours.Weekday,
	}
	update := bson.M{
		"$set": bson.M{
			"is_open":    hours.IsOpen,
			"open_time":  hours.OpenTime,
			"close_time": hours.CloseTime,
			"breaks":     hours.Breaks,
			"updated_at": hours.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"business_id": hours.BusinessID,
			"weekday":     hours.Weekday,
			"created_at":  now,
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to upsert business hours: %w", err)
	}
	return nil
}

func (r *mongoBusinessHoursRepository) FindByBusinessAndWeekday(ctx context.Context, businessID, weekday string) (*model.BusinessHours, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var hours model.BusinessHours
	err := r.collection.FindOne(ctx, bson.M{
		"business_id": businessID,
		"weekday":     weekday,
	}).Decode(&hours)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Missing hours means the business never opened that weekday.
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find business hours: %w", err)
	}

	return &hours, nil
}

func (r *mongoBusinessHoursRepository) FindByBusiness(ctx context.Context, businessID string) ([]*model.BusinessHours, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"business_id": businessID})
	if err != nil {
		return nil, fmt.Errorf("failed to find business hours: %w", err)
	}
	defer cursor.Close(ctx)

	var hours []*model.BusinessHours
	if err = cursor.All(ctx, &hours); err != nil {
		return nil, fmt.Errorf("failed to decode business hours: %w", err)
	}

	return hours, nil
}

func (r *mongoBusinessHoursRepository) Delete(ctx context.Context, businessID, weekday string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{
		"business_id": businessID,
		"weekday":     weekday,
	})
	if err != nil {
		return fmt.Errorf("failed to delete business hours: %w", err)
	}
	if result.DeletedCount == 0 {
		return calendarerrors.ErrNotFound
	}

	return nil
}
