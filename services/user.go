package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"studio/models"
	"studio/repository"
)

type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.findUser(ctx, id)
}

// UpdateProfile applies the provided fields. A blank full name counts as
// "not provided"; a photo URL pointer always applies, empty string included.
func (s *UserService) UpdateProfile(ctx context.Context, id, fullName string, photoURL *string) (*models.User, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(fullName) != "" {
		user.FullName = fullName
	}
	if photoURL != nil {
		user.PhotoURL = *photoURL
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return ErrInvalidCredentials
	}
	if len(newPassword) < 6 {
		return ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	return s.users.Save(ctx, user)
}

func (s *UserService) findUser(ctx context.Context, id string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	user, err := s.users.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}
