package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"studio/models"
)

// Store contracts. Lookups return (nil, nil) when the entity is absent; an
// error always means the store itself failed.

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// Save inserts the user when its id is zero, assigning one, and
	// replaces the stored document otherwise.
	Save(ctx context.Context, user *models.User) error
}

type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*models.Role, error)
	Save(ctx context.Context, role *models.Role) error
}

type PostRepository interface {
	Save(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	FindAll(ctx context.Context) ([]*models.Post, error)
	// FindByTitleContaining matches a case-insensitive substring of the title.
	FindByTitleContaining(ctx context.Context, q string) ([]*models.Post, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	// IncrementLikes and IncrementDislikes bump the counter atomically and
	// return the updated post, or (nil, nil) when the post is absent.
	IncrementLikes(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	IncrementDislikes(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
}

type CommentRepository interface {
	Save(ctx context.Context, comment *models.Comment) error
	FindByPostID(ctx context.Context, postID primitive.ObjectID) ([]*models.Comment, error)
	DeleteByPostID(ctx context.Context, postID primitive.ObjectID) error
}
