package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/fields"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/repository"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/models"
)

func NewOutboxDAO(db *mongo.Database, logger *zap.Logger) *OutboxDAO {
	return &OutboxDAO{
		collection: db.Collection(CollectionOutbox),
		logger:     logger.Named("OutboxDAO"),
	}
}

type OutboxDAO struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func (d *OutboxDAO) Create(ctx context.Context, message *models.OutboxMessage) error {
	_, err := d.collection.InsertOne(ctx, message)
	if err != nil {
		d.logger.Error("Create: InsertOne failed", zap.Error(err))
		return err
	}
	return nil
}

// ClaimAndFetchEvents claims a batch of pending events in three phases: a
// lightweight ID scan, an UpdateMany that flips the batch to PROCESSING under
// a fresh claim_id, and a fetch of the claimed documents. The status filter in
// phase two is the optimistic lock; a batch stolen by another worker simply
// comes back empty.
func (d *OutboxDAO) ClaimAndFetchEvents(ctx context.Context, limit int) ([]*models.OutboxMessage, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: fields.FieldCreatedAt, Value: 1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{fields.FieldObjectId: 1})

	cursor, err := d.collection.Find(ctx, bson.M{fields.FieldStatus: models.OutboxStatusPending}, findOptions)
	if err != nil {
		d.logger.Error("ClaimAndFetchEvents: candidate scan failed", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var candidates []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err = cursor.All(ctx, &candidates); err != nil {
		d.logger.Error("ClaimAndFetchEvents: candidate decoding failed", zap.Error(err))
		return nil, err
	}
	if len(candidates) == 0 {
		return []*models.OutboxMessage{}, nil
	}

	ids := make([]primitive.ObjectID, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ID
	}

	claimID := primitive.NewObjectID()
	updateFilter := bson.M{
		fields.FieldObjectId: bson.M{"$in": ids},
		fields.FieldStatus:   models.OutboxStatusPending,
	}
	update := bson.M{
		"$set": bson.M{
			fields.FieldStatus:    models.OutboxStatusProcessing,
			"claim_id":            claimID,
			fields.FieldUpdatedAt: time.Now(),
		},
	}
	updateResult, err := d.collection.UpdateMany(ctx, updateFilter, update)
	if err != nil {
		d.logger.Error("ClaimAndFetchEvents: claim update failed", zap.Error(err))
		return nil, err
	}
	if updateResult.ModifiedCount == 0 {
		// Another worker claimed the candidates between the scan and the
		// update. Not an error.
		return []*models.OutboxMessage{}, nil
	}

	claimedCursor, err := d.collection.Find(ctx, bson.M{"claim_id": claimID})
	if err != nil {
		d.logger.Error("ClaimAndFetchEvents: claimed fetch failed", zap.Error(err))
		return nil, err
	}

	var claimed []*models.OutboxMessage
	if err = claimedCursor.All(ctx, &claimed); err != nil {
		d.logger.Error("ClaimAndFetchEvents: claimed decoding failed", zap.Error(err))
		return nil, err
	}

	return claimed, nil
}

func (d *OutboxDAO) MarkAsProcessed(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{
		"$set": bson.M{
			fields.FieldStatus: models.OutboxStatusProcessed,
			"processed_at":     time.Now(),
		},
	}
	_, err := d.collection.UpdateOne(ctx, bson.M{fields.FieldObjectId: id}, update)
	return err
}

func (d *OutboxDAO) IncrementRetry(ctx context.Context, id primitive.ObjectID, errorMessage string) error {
	update := bson.M{
		"$set": bson.M{
			fields.FieldStatus: models.OutboxStatusPending,
			"error":            errorMessage,
		},
		"$inc": bson.M{"retries": 1},
	}
	_, err := d.collection.UpdateOne(ctx, bson.M{fields.FieldObjectId: id}, update)
	return err
}

// ReleaseStaleClaims flips PROCESSING events whose claim is older than the
// given age back to PENDING so the next poll can retry them.
func (d *OutboxDAO) ReleaseStaleClaims(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	filter := bson.M{
		fields.FieldStatus:    models.OutboxStatusProcessing,
		fields.FieldUpdatedAt: bson.M{"$lt": cutoff},
	}
	update := bson.M{
		"$set": bson.M{
			fields.FieldStatus:    models.OutboxStatusPending,
			fields.FieldUpdatedAt: time.Now(),
		},
		"$unset": bson.M{"claim_id": ""},
	}
	result, err := d.collection.UpdateMany(ctx, filter, update)
	if err != nil {
		d.logger.Error("ReleaseStaleClaims: UpdateMany failed", zap.Error(err))
		return 0, err
	}
	return result.ModifiedCount, nil
}

var _ repository.OutboxRepository = (*OutboxDAO)(nil)
