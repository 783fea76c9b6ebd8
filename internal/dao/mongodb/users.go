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

func NewUsersDAO(db *mongo.Database, logger *zap.Logger) *UsersDAO {
	return &UsersDAO{
		collection: db.Collection(CollectionUsers),
		logger:     logger.Named("UsersDAO"),
	}
}

type UsersDAO struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

func (d *UsersDAO) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := d.collection.FindOne(ctx, bson.M{fields.FieldObjectId: id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		d.logger.Error("GetUser: FindOne failed", zap.Error(err), zap.Stringer("userID", id))
		return nil, err
	}
	return &user, nil
}

func (d *UsersDAO) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := d.collection.FindOne(ctx, bson.M{fields.FieldUserEmail: email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		d.logger.Error("GetUserByEmail: FindOne failed", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (d *UsersDAO) CreateUser(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	result, err := d.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrDuplicateEmail
		}
		d.logger.Error("CreateUser: InsertOne failed", zap.Error(err))
		return primitive.NilObjectID, err
	}
	return result.InsertedID.(primitive.ObjectID), nil
}

func (d *UsersDAO) UpdateUser(ctx context.Context, id primitive.ObjectID, opts ...repository.UpdateOption) error {
	updateOptions := repository.NewUpdateOptions()
	for _, opt := range opts {
		opt(updateOptions)
	}
	if len(updateOptions.SetFields) == 0 {
		return nil
	}

	result, err := d.collection.UpdateOne(ctx, bson.M{fields.FieldObjectId: id}, bson.M{"$set": updateOptions.SetFields})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		d.logger.Error("UpdateUser: UpdateOne failed", zap.Error(err), zap.Stringer("userID", id))
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *UsersDAO) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	result, err := d.collection.DeleteOne(ctx, bson.M{fields.FieldObjectId: id})
	if err != nil {
		d.logger.Error("DeleteUser: DeleteOne failed", zap.Error(err), zap.Stringer("userID", id))
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *UsersDAO) ListUsers(ctx context.Context) ([]*models.User, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: fields.FieldUserEmail, Value: 1}})

	cursor, err := d.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		d.logger.Error("ListUsers: Find failed", zap.Error(err))
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []*models.User
	if err := cursor.All(ctx, &users); err != nil {
		d.logger.Error("ListUsers: cursor decoding failed", zap.Error(err))
		return nil, err
	}

	return users, nil
}

var _ repository.UsersRepository = (*UsersDAO)(nil)
