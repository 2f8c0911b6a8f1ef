package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Moderation statuses. New posts default to pending unless the creator
// explicitly asks for approved.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	Likes     int                `bson:"likes" json:"likes"`
	Dislikes  int                `bson:"dislikes" json:"dislikes"`

	// Author fields are a snapshot taken at creation time, never re-synced
	// with the user record.
	AuthorName      string `bson:"authorName" json:"authorName"`
	AuthorEmail     string `bson:"authorEmail" json:"authorEmail"`
	AuthorAvatarURL string `bson:"authorAvatarUrl" json:"authorAvatarUrl"`

	Topic    string `bson:"topic,omitempty" json:"topic"`
	ImageURL string `bson:"imageUrl,omitempty" json:"imageUrl"`
	Status   string `bson:"status" json:"status"`
}

type Comment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PostID      primitive.ObjectID `bson:"postId" json:"postId"`
	AuthorName  string             `bson:"authorName" json:"authorName"`
	AuthorEmail string             `bson:"authorEmail" json:"authorEmail"`
	Content     string             `bson:"content" json:"content"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
