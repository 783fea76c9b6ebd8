package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/fields"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/dao/repository"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/models"
)

func NewCommentsDAO(db *mongo.Database, logger *zap.Logger) *CommentsDAO {
	return &CommentsDAO{
		collection: db.Collection(CollectionChangeComments),
		logger:     logger.Named("CommentsDAO"),
	}
}

type CommentsDAO struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func (d *CommentsDAO) InsertComment(ctx context.Context, comment *models.Comment) error {
	_, err := d.collection.InsertOne(ctx, comment)
	if err != nil {
		d.logger.Error("InsertComment: InsertOne failed", zap.Error(err), zap.Stringer("changeLogID", comment.ChangeLogID))
		return err
	}
	return nil
}

func (d *CommentsDAO) ListCommentsByChangeLog(ctx context.Context, changeLogID primitive.ObjectID) ([]*models.Comment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: fields.FieldCreatedAt, Value: 1}})

	cursor, err := d.collection.Find(ctx, bson.M{fields.FieldCommentChangeLogID: changeLogID}, findOptions)
	if err != nil {
		d.logger.Error("ListCommentsByChangeLog: Find failed", zap.Error(err), zap.Stringer("changeLogID", changeLogID))
		return nil, err
	}
	defer cursor.Close(ctx)

	var comments []*models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		d.logger.Error("ListCommentsByChangeLog: cursor decoding failed", zap.Error(err))
		return nil, err
	}

	return comments, nil
}

var _ repository.CommentsRepository = (*CommentsDAO)(nil)
