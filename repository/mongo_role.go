package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"studio/models"
)

type MongoRoleRepository struct {
	coll *mongo.Collection
}

func NewMongoRoleRepository(coll *mongo.Collection) *MongoRoleRepository {
	return &MongoRoleRepository{coll: coll}
}

func (r *MongoRoleRepository) FindByName(ctx context.Context, name string) (*models.Role, error) {
	var role models.Role
	err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&role)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *MongoRoleRepository) Save(ctx context.Context, role *models.Role) error {
	if role.ID.IsZero() {
		role.ID = primitive.NewObjectID()
		_, err := r.coll.InsertOne(ctx, role)
		return err
	}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": role.ID}, role)
	return err
}
