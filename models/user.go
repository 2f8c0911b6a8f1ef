package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role names seeded at startup. Roles live in their own collection and are
// referenced from users by name.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	FullName     string             `bson:"fullName" json:"fullName"`
	PhotoURL     string             `bson:"photoUrl" json:"photoUrl"`
	Roles        []string           `bson:"roles" json:"roles"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

type Role struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
}

// RoleLabel derives the externally visible role label for a set of role
// names: "admin" if any of them is ADMIN (case-insensitive), else "user".
// Every user-facing view goes through this one function.
func RoleLabel(roles []string) string {
	for _, r := range roles {
		if strings.EqualFold(r, RoleAdmin) {
			return "admin"
		}
	}
	return "user"
}
