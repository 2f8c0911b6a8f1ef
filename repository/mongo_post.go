package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studio/models"
)

type MongoPostRepository struct {
	coll *mongo.Collection
}

func NewMongoPostRepository(coll *mongo.Collection) *MongoPostRepository {
	return &MongoPostRepository{coll: coll}
}

func (r *MongoPostRepository) Save(ctx context.Context, post *models.Post) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
		if post.CreatedAt.IsZero() {
			post.CreatedAt = time.Now().UTC()
		}
		_, err := r.coll.InsertOne(ctx, post)
		return err
	}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": post.ID}, post)
	return err
}

func (r *MongoPostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *MongoPostRepository) FindAll(ctx context.Context) ([]*models.Post, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoPostRepository) FindByTitleContaining(ctx context.Context, q string) ([]*models.Post, error) {
	filter := bson.M{"title": bson.M{"$regex": regexp.QuoteMeta(q), "$options": "i"}}
	return r.find(ctx, filter)
}

func (r *MongoPostRepository) find(ctx context.Context, filter bson.M) ([]*models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []*models.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *MongoPostRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *MongoPostRepository) IncrementLikes(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return r.increment(ctx, id, "likes")
}

func (r *MongoPostRepository) IncrementDislikes(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return r.increment(ctx, id, "dislikes")
}

// increment bumps the counter with an atomic $inc so concurrent reactions
// never lose updates.
func (r *MongoPostRepository) increment(ctx context.Context, id primitive.ObjectID, field string) (*models.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.Post
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{field: 1}}, opts).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}
