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

func NewChangeLogsDAO(db *mongo.Database, logger *zap.Logger) *ChangeLogsDAO {
	return &ChangeLogsDAO{
		collection: db.Collection(CollectionChangeLogs),
		logger:     logger.Named("ChangeLogsDAO"),
	}
}

type ChangeLogsDAO struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func (d *ChangeLogsDAO) InsertChangeLogs(ctx context.Context, entries []*models.ChangeLogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	docs := make([]interface{}, len(entries))
	for i, e := range entries {
		docs[i] = e
	}
	_, err := d.collection.InsertMany(ctx, docs)
	if err != nil {
		d.logger.Error("InsertChangeLogs: InsertMany failed", zap.Error(err))
		return err
	}
	return nil
}

func (d *ChangeLogsDAO) GetChangeLogEntry(ctx context.Context, id primitive.ObjectID) (*models.ChangeLogEntry, error) {
	var entry models.ChangeLogEntry
	err := d.collection.FindOne(ctx, bson.M{fields.FieldObjectId: id}).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		d.logger.Error("GetChangeLogEntry: FindOne failed", zap.Error(err), zap.Stringer("entryID", id))
		return nil, err
	}
	return &entry, nil
}

// SetChangeLogStatus performs a compare-and-swap on an entry's status. The
// filter on ExpectedStatus serializes a concurrent approve against a
// concurrent comment: whichever write lands second matches zero documents.
func (d *ChangeLogsDAO) SetChangeLogStatus(ctx context.Context, params *repository.SetChangeLogStatusParams) (int64, error) {
	filter := bson.M{
		fields.FieldObjectId: params.EntryID,
		fields.FieldStatus:   params.ExpectedStatus,
	}

	set := bson.M{fields.FieldStatus: params.NewStatus}
	if params.ReviewedBy != nil {
		set[fields.FieldChangeReviewedBy] = params.ReviewedBy
	}
	if params.ReviewedAt != nil {
		set[fields.FieldChangeReviewedAt] = params.ReviewedAt
	}

	result, err := d.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		d.logger.Error("SetChangeLogStatus: UpdateOne failed", zap.Error(err), zap.Stringer("entryID", params.EntryID))
		return 0, err
	}
	return result.MatchedCount, nil
}

func (d *ChangeLogsDAO) ListChangeLogs(ctx context.Context, params *repository.ListChangeLogsParams) ([]*models.ChangeLogEntry, int64, error) {
	filter := bson.M{}
	if params.RecordID != nil {
		filter[fields.FieldChangeRecordID] = *params.RecordID
	}
	if params.Status != "" {
		filter[fields.FieldStatus] = params.Status
	}

	total, err := d.collection.CountDocuments(ctx, filter)
	if err != nil {
		d.logger.Error("ListChangeLogs: CountDocuments failed", zap.Error(err))
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: fields.FieldCreatedAt, Value: -1}}).
		SetSkip(int64(params.Page.GetOffset())).
		SetLimit(int64(params.Page.GetLimit()))

	cursor, err := d.collection.Find(ctx, filter, findOptions)
	if err != nil {
		d.logger.Error("ListChangeLogs: Find failed", zap.Error(err))
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var entries []*models.ChangeLogEntry
	if err := cursor.All(ctx, &entries); err != nil {
		d.logger.Error("ListChangeLogs: cursor decoding failed", zap.Error(err))
		return nil, 0, err
	}

	return entries, total, nil
}

var _ repository.ChangeLogsRepository = (*ChangeLogsDAO)(nil)
