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

func NewMembersDAO(db *mongo.Database, logger *zap.Logger) *MembersDAO {
	return &MembersDAO{
		collection: db.Collection(CollectionMembers),
		logger:     logger.Named("MembersDAO"),
	}
}

type MembersDAO struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func (d *MembersDAO) GetMember(ctx context.Context, id primitive.ObjectID) (*models.Member, error) {
	var member models.Member
	err := d.collection.FindOne(ctx, bson.M{fields.FieldObjectId: id}).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		d.logger.Error("GetMember: FindOne failed", zap.Error(err), zap.Stringer("memberID", id))
		return nil, err
	}
	return &member, nil
}

func (d *MembersDAO) ListMembers(ctx context.Context, params *repository.ListMembersParams) ([]*models.Member, int64, error) {
	filter := bson.M{}

	total, err := d.collection.CountDocuments(ctx, filter)
	if err != nil {
		d.logger.Error("ListMembers: CountDocuments failed", zap.Error(err))
		return nil, 0, err
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: fields.FieldMemberEmployeeID, Value: 1}}).
		SetSkip(int64(params.Page.GetOffset())).
		SetLimit(int64(params.Page.GetLimit()))

	cursor, err := d.collection.Find(ctx, filter, findOptions)
	if err != nil {
		d.logger.Error("ListMembers: Find failed", zap.Error(err))
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var members []*models.Member
	if err := cursor.All(ctx, &members); err != nil {
		d.logger.Error("ListMembers: cursor decoding failed", zap.Error(err))
		return nil, 0, err
	}

	return members, total, nil
}

var _ repository.MembersRepository = (*MembersDAO)(nil)
