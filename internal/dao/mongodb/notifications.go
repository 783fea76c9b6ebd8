package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/fields"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/repository"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/models"
)

func NewNotificationsDAO(db *mongo.Database, logger *zap.Logger) *NotificationsDAO {
	return &NotificationsDAO{
		collection: db.Collection(CollectionNotifications),
		logger:     logger.Named("NotificationsDAO"),
	}
}

type NotificationsDAO struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// InsertNotifications writes a fan-out batch unordered so one bad document
// does not sink the rest. It returns the indexes of the documents that failed
// to insert; the batch error itself is only returned for total failures.
func (d *NotificationsDAO) InsertNotifications(ctx context.Context, notifications []*models.Notification) ([]int, error) {
	if len(notifications) == 0 {
		return nil, nil
	}

	docs := make([]interface{}, len(notifications))
	for i, n := range notifications {
		docs[i] = n
	}

	_, err := d.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		var bulkErr mongo.BulkWriteException
		if errors.As(err, &bulkErr) {
			failed := make([]int, 0, len(bulkErr.WriteErrors))
			for _, writeErr := range bulkErr.WriteErrors {
				failed = append(failed, writeErr.Index)
			}
			d.logger.Error("InsertNotifications: partial batch failure",
				zap.Int("failed", len(failed)),
				zap.Int("total", len(notifications)),
				zap.Error(err),
			)
			return failed, nil
		}
		d.logger.Error("InsertNotifications: InsertMany failed", zap.Error(err))
		return nil, err
	}

	return nil, nil
}

func (d *NotificationsDAO) GetNotification(ctx context.Context, id primitive.ObjectID) (*models.Notification, error) {
	var notification models.Notification
	err := d.collection.FindOne(ctx, bson.M{fields.FieldObjectId: id}).Decode(&notification)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		d.logger.Error("GetNotification: FindOne failed", zap.Error(err), zap.Stringer("notificationID", id))
		return nil, err
	}
	return &notification, nil
}

// SetNotificationRead marks a notification read only when it belongs to
// userID; the ownership check lives in the filter so it is atomic.
func (d *NotificationsDAO) SetNotificationRead(ctx context.Context, id, userID primitive.ObjectID) (int64, error) {
	filter := bson.M{
		fields.FieldObjectId:           id,
		fields.FieldNotificationUserID: userID,
	}
	update := bson.M{"$set": bson.M{fields.FieldNotificationRead: true}}

	result, err := d.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		d.logger.Error("SetNotificationRead: UpdateOne failed", zap.Error(err), zap.Stringer("notificationID", id))
		return 0, err
	}
	return result.MatchedCount, nil
}

// ListNotificationsByUser pages newest-first using a (created_at, _id) cursor
// so the sequence is restartable from any page token.
func (d *NotificationsDAO) ListNotificationsByUser(ctx context.Context, params *repository.ListNotificationsParams) ([]*models.Notification, error) {
	filter := bson.M{fields.FieldNotificationUserID: params.UserID}
	if !params.CursorCreatedAt.IsZero() {
		filter["$or"] = bson.A{
			bson.M{fields.FieldCreatedAt: bson.M{"$lt": params.CursorCreatedAt}},
			bson.M{
				fields.FieldCreatedAt: params.CursorCreatedAt,
				fields.FieldObjectId:  bson.M{"$lt": params.CursorID},
			},
		}
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: fields.FieldCreatedAt, Value: -1}, {Key: fields.FieldObjectId, Value: -1}}).
		SetLimit(params.Limit)

	cursor, err := d.collection.Find(ctx, filter, findOptions)
	if err != nil {
		d.logger.Error("ListNotificationsByUser: Find failed", zap.Error(err), zap.Stringer("userID", params.UserID))
		return nil, err
	}
	defer cursor.Close(ctx)

	var notifications []*models.Notification
	if err := cursor.All(ctx, &notifications); err != nil {
		d.logger.Error("ListNotificationsByUser: cursor decoding failed", zap.Error(err))
		return nil, err
	}

	return notifications, nil
}

var _ repository.NotificationsRepository = (*NotificationsDAO)(nil)
