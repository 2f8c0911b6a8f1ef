package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studio/models"
)

type MongoCommentRepository struct {
	coll *mongo.Collection
}

func NewMongoCommentRepository(coll *mongo.Collection) *MongoCommentRepository {
	return &MongoCommentRepository{coll: coll}
}

func (r *MongoCommentRepository) Save(ctx context.Context, comment *models.Comment) error {
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
		if comment.CreatedAt.IsZero() {
			comment.CreatedAt = time.Now().UTC()
		}
		_, err := r.coll.InsertOne(ctx, comment)
		return err
	}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": comment.ID}, comment)
	return err
}

func (r *MongoCommentRepository) FindByPostID(ctx context.Context, postID primitive.ObjectID) ([]*models.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"postId": postID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []*models.Comment{}
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *MongoCommentRepository) DeleteByPostID(ctx context.Context, postID primitive.ObjectID) error {
	_, err := r.coll.DeleteMany(ctx, bson.M{"postId": postID})
	return err
}
