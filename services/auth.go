package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"studio/models"
	"studio/repository"
)

// Claims is the JWT payload: subject carries the user id, plus an email
// claim alongside the registered issued-at/expiry fields.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type AuthService struct {
	users    repository.UserRepository
	roles    repository.RoleRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(users repository.UserRepository, roles repository.RoleRepository, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		roles:    roles,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password, fullName string) (*models.AuthResponse, error) {
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FullName:     fullName,
	}

	// Default USER role, if the registry has been seeded.
	role, err := s.roles.FindByName(ctx, models.RoleUser)
	if err != nil {
		return nil, err
	}
	if role != nil {
		user.Roles = []string{role.Name}
	} else {
		log.Printf("[Register] role %s missing, registering %s without roles", models.RoleUser, email)
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: UserView(user)}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	// Unknown email and wrong password fail identically so callers cannot
	// probe which emails are registered.
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: UserView(user)}, nil
}

func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature and expiry and returns the subject user id.
func (s *AuthService) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidCredentials
	}
	return claims.Subject, nil
}

// UserView is the canonical user projection; the role label is derived in
// exactly one place.
func UserView(user *models.User) models.UserView {
	return models.UserView{
		ID:          user.ID.Hex(),
		Email:       user.Email,
		DisplayName: user.FullName,
		PhotoURL:    user.PhotoURL,
		Role:        models.RoleLabel(user.Roles),
	}
}
