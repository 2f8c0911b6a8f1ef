// Package memory holds mutex-guarded map implementations of the repository
// contracts, used by the service and handler tests.
package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"studio/models"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*models.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[primitive.ObjectID]*models.User)}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *UserRepository) Save(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
		if user.CreatedAt.IsZero() {
			user.CreatedAt = time.Now().UTC()
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

type RoleRepository struct {
	mu    sync.RWMutex
	roles map[primitive.ObjectID]*models.Role
}

func NewRoleRepository() *RoleRepository {
	return &RoleRepository{roles: make(map[primitive.ObjectID]*models.Role)}
}

func (r *RoleRepository) FindByName(ctx context.Context, name string) (*models.Role, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, role := range r.roles {
		if role.Name == name {
			copied := *role
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *RoleRepository) Save(ctx context.Context, role *models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if role.ID.IsZero() {
		role.ID = primitive.NewObjectID()
	}
	copied := *role
	r.roles[role.ID] = &copied
	return nil
}

// Count reports how many roles are stored, for seeding tests.
func (r *RoleRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.roles)
}

type PostRepository struct {
	mu    sync.RWMutex
	posts map[primitive.ObjectID]*models.Post
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[primitive.ObjectID]*models.Post)}
}

func (r *PostRepository) Save(ctx context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
		if post.CreatedAt.IsZero() {
			post.CreatedAt = time.Now().UTC()
		}
	}
	copied := *post
	r.posts[post.ID] = &copied
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (r *PostRepository) FindAll(ctx context.Context) ([]*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*models.Post{}
	for _, p := range r.posts {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (r *PostRepository) FindByTitleContaining(ctx context.Context, q string) ([]*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	needle := strings.ToLower(q)
	out := []*models.Post{}
	for _, p := range r.posts {
		if strings.Contains(strings.ToLower(p.Title), needle) {
			copied := *p
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *PostRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, id)
	return nil
}

func (r *PostRepository) IncrementLikes(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return r.increment(id, func(p *models.Post) { p.Likes++ })
}

func (r *PostRepository) IncrementDislikes(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	return r.increment(id, func(p *models.Post) { p.Dislikes++ })
}

func (r *PostRepository) increment(id primitive.ObjectID, bump func(*models.Post)) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	bump(p)
	copied := *p
	return &copied, nil
}

type CommentRepository struct {
	mu       sync.RWMutex
	comments map[primitive.ObjectID]*models.Comment
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[primitive.ObjectID]*models.Comment)}
}

func (r *CommentRepository) Save(ctx context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if comment.ID.IsZero() {
		comment.ID = primitive.NewObjectID()
		if comment.CreatedAt.IsZero() {
			comment.CreatedAt = time.Now().UTC()
		}
	}
	copied := *comment
	r.comments[comment.ID] = &copied
	return nil
}

func (r *CommentRepository) FindByPostID(ctx context.Context, postID primitive.ObjectID) ([]*models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*models.Comment{}
	for _, c := range r.comments {
		if c.PostID == postID {
			copied := *c
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *CommentRepository) DeleteByPostID(ctx context.Context, postID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.comments {
		if c.PostID == postID {
			delete(r.comments, id)
		}
	}
	return nil
}
