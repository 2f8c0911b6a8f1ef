package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"studio/models"
	"studio/repository"
)

// AnonymousAuthor is the author name recorded when none is supplied.
const AnonymousAuthor = "Anonymous"

type PostService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
}

func NewPostService(posts repository.PostRepository, comments repository.CommentRepository) *PostService {
	return &PostService{posts: posts, comments: comments}
}

func (s *PostService) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	if post.Status == "" {
		post.Status = models.StatusPending
	}
	if post.AuthorName == "" {
		post.AuthorName = AnonymousAuthor
	}
	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	return s.findPost(ctx, id)
}

// List returns posts filtered by a case-insensitive title substring when q
// is given, then by status. Public listings default to approved only.
func (s *PostService) List(ctx context.Context, q, status string) ([]*models.Post, error) {
	var (
		posts []*models.Post
		err   error
	)
	if q != "" {
		posts, err = s.posts.FindByTitleContaining(ctx, q)
	} else {
		posts, err = s.posts.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	if status == "" {
		status = models.StatusApproved
	}
	filtered := posts[:0]
	for _, p := range posts {
		if p.Status == status {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (s *PostService) UpdateStatus(ctx context.Context, id, status string) (*models.Post, error) {
	if status != models.StatusApproved && status != models.StatusPending {
		return nil, ErrInvalidInput
	}
	post, err := s.findPost(ctx, id)
	if err != nil {
		return nil, err
	}
	post.Status = status
	if err := s.posts.Save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Like(ctx context.Context, id string) (*models.Post, error) {
	return s.react(ctx, id, s.posts.IncrementLikes)
}

func (s *PostService) Dislike(ctx context.Context, id string) (*models.Post, error) {
	return s.react(ctx, id, s.posts.IncrementDislikes)
}

func (s *PostService) react(ctx context.Context, id string, inc func(context.Context, primitive.ObjectID) (*models.Post, error)) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	post, err := inc(ctx, oid)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

func (s *PostService) AddComment(ctx context.Context, postID, authorName, authorEmail, content string) (*models.Comment, error) {
	if content == "" {
		return nil, ErrInvalidInput
	}
	post, err := s.findPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if authorName == "" {
		authorName = AnonymousAuthor
	}
	comment := &models.Comment{
		PostID:      post.ID,
		AuthorName:  authorName,
		AuthorEmail: authorEmail,
		Content:     content,
	}
	if err := s.comments.Save(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes the post and cascades to its comments.
func (s *PostService) Delete(ctx context.Context, id string) error {
	post, err := s.findPost(ctx, id)
	if err != nil {
		return err
	}
	if err := s.comments.DeleteByPostID(ctx, post.ID); err != nil {
		return err
	}
	return s.posts.DeleteByID(ctx, post.ID)
}

// PostView is the canonical post projection. It always re-fetches the
// post's comments so the embedded list is current.
func (s *PostService) PostView(ctx context.Context, post *models.Post) (models.PostView, error) {
	comments, err := s.comments.FindByPostID(ctx, post.ID)
	if err != nil {
		return models.PostView{}, err
	}
	views := make([]models.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, CommentView(c))
	}

	var avatarURL *string
	if post.AuthorAvatarURL != "" {
		avatarURL = &post.AuthorAvatarURL
	}
	return models.PostView{
		ID: post.ID.Hex(),
		Author: models.AuthorView{
			Name:      post.AuthorName,
			AvatarURL: avatarURL,
			Email:     post.AuthorEmail,
		},
		Topic:     post.Topic,
		Title:     post.Title,
		ImageURL:  post.ImageURL,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
		Status:    post.Status,
		Likes:     post.Likes,
		Dislikes:  post.Dislikes,
		Comments:  views,
	}, nil
}

// CommentView is the canonical comment projection; comment authors never
// carry an avatar.
func CommentView(comment *models.Comment) models.CommentView {
	return models.CommentView{
		ID:        comment.ID.Hex(),
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		Author: models.AuthorView{
			Name:      comment.AuthorName,
			AvatarURL: nil,
			Email:     comment.AuthorEmail,
		},
	}
}

func (s *PostService) findPost(ctx context.Context, id string) (*models.Post, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	post, err := s.posts.FindByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}
