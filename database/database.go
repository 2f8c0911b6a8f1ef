package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studio/config"
	"studio/models"
	"studio/repository"
)

// DB bundles the Mongo client and the collections the repositories run on.
type DB struct {
	Client   *mongo.Client
	Users    *mongo.Collection
	Roles    *mongo.Collection
	Posts    *mongo.Collection
	Comments *mongo.Collection
}

func Connect(cfg *config.Config) (*DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(cfg.DatabaseName)
	return &DB{
		Client:   client,
		Users:    db.Collection("users"),
		Roles:    db.Collection("roles"),
		Posts:    db.Collection("posts"),
		Comments: db.Collection("comments"),
	}, nil
}

func (db *DB) Disconnect() error {
	if db == nil || db.Client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return db.Client.Disconnect(ctx)
}

// EnsureIndexes creates the unique index on users.email; email uniqueness is
// enforced by the store.
func (db *DB) EnsureIndexes(ctx context.Context) error {
	_, err := db.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// SeedRoles inserts the USER and ADMIN roles if they are missing. Safe to
// run on every startup.
func SeedRoles(ctx context.Context, roles repository.RoleRepository) error {
	for _, name := range []string{models.RoleUser, models.RoleAdmin} {
		existing, err := roles.FindByName(ctx, name)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := roles.Save(ctx, &models.Role{Name: name}); err != nil {
			return err
		}
		log.Printf("[SeedRoles] created role %s", name)
	}
	return nil
}
