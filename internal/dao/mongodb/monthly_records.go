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

func NewMonthlyRecordsDAO(db *mongo.Database, logger *zap.Logger) *MonthlyRecordsDAO {
	return &MonthlyRecordsDAO{
		collection: db.Collection(CollectionMonthlyRecords),
		logger:     logger.Named("MonthlyRecordsDAO"),
	}
}

type MonthlyRecordsDAO struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func (d *MonthlyRecordsDAO) GetMonthlyRecord(ctx context.Context, id primitive.ObjectID) (*models.MonthlyRecord, error) {
	var record models.MonthlyRecord
	err := d.collection.FindOne(ctx, bson.M{fields.FieldObjectId: id}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		d.logger.Error("GetMonthlyRecord: FindOne failed", zap.Error(err), zap.Stringer("recordID", id))
		return nil, err
	}
	return &record, nil
}

// UpdateRecordFields applies a submit-edit write. The filter includes the
// updated_at the caller's diff was computed against, so a record touched by a
// concurrent edit no longer matches and the call fails with ErrStaleRecord.
func (d *MonthlyRecordsDAO) UpdateRecordFields(ctx context.Context, params *repository.UpdateRecordFieldsParams) error {
	set := bson.M{
		fields.FieldStatus:    params.NewStatus,
		fields.FieldUpdatedAt: params.NewUpdatedAt,
	}
	for name, amount := range params.Amounts {
		set[name] = amount
	}

	filter := bson.M{
		fields.FieldObjectId:  params.RecordID,
		fields.FieldUpdatedAt: params.SnapshotUpdatedAt,
	}

	result, err := d.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		d.logger.Error("UpdateRecordFields: UpdateOne failed", zap.Error(err), zap.Stringer("recordID", params.RecordID))
		return err
	}
	if result.MatchedCount == 0 {
		return ErrStaleRecord
	}
	return nil
}

func (d *MonthlyRecordsDAO) ListRecordsByMonth(ctx context.Context, params *repository.ListRecordsParams) ([]*models.MonthlyRecord, int64, error) {
	filter := bson.M{}
	if !params.Month.IsZero() {
		filter[fields.FieldRecordMonth] = params.Month
	}

	total, err := d.collection.CountDocuments(ctx, filter)
	if err != nil {
		d.logger.Error("ListRecordsByMonth: CountDocuments failed", zap.Error(err))
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: fields.FieldRecordMemberID, Value: 1}}).
		SetSkip(int64(params.Page.GetOffset())).
		SetLimit(int64(params.Page.GetLimit()))

	cursor, err := d.collection.Find(ctx, filter, findOptions)
	if err != nil {
		d.logger.Error("ListRecordsByMonth: Find failed", zap.Error(err))
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var records []*models.MonthlyRecord
	if err := cursor.All(ctx, &records); err != nil {
		d.logger.Error("ListRecordsByMonth: cursor decoding failed", zap.Error(err))
		return nil, 0, err
	}

	return records, total, nil
}

// CreateRecords bulk-inserts pending month rows. The insert is unordered so a
// duplicate (member_id, month) collision skips that row instead of aborting
// the batch; duplicate-key errors are not surfaced to the caller.
func (d *MonthlyRecordsDAO) CreateRecords(ctx context.Context, records []*models.MonthlyRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, len(records))
	for i, r := range records {
		docs[i] = r
	}

	result, err := d.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		var bulkErr mongo.BulkWriteException
		if errors.As(err, &bulkErr) {
			for _, writeErr := range bulkErr.WriteErrors {
				if !mongo.IsDuplicateKeyError(writeErr) {
					d.logger.Error("CreateRecords: InsertMany failed", zap.Error(err))
					return len(result.InsertedIDs), err
				}
			}
			return len(result.InsertedIDs), nil
		}
		d.logger.Error("CreateRecords: InsertMany failed", zap.Error(err))
		return 0, err
	}

	return len(result.InsertedIDs), nil
}

var _ repository.MonthlyRecordsRepository = (*MonthlyRecordsDAO)(nil)
