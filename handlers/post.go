package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"studio/models"
	"studio/services"
)

type PostHandler struct {
	posts *services.PostService
}

func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// CreatePostRequest mirrors the PostView shape clients already hold.
type CreatePostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
	Author  *struct {
		Name      string `json:"name"`
		AvatarURL string `json:"avatarUrl"`
		Email     string `json:"email"`
	} `json:"author"`
	Topic    string `json:"topic"`
	ImageURL string `json:"imageUrl"`
	Status   string `json:"status"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type AddCommentRequest struct {
	Content     string `json:"content"`
	AuthorName  string `json:"authorName"`
	AuthorEmail string `json:"authorEmail"`
}

func (h *PostHandler) List(c *gin.Context) {
	q := c.Query("q")
	status := c.Query("status")
	// userId is accepted for compatibility but does not filter anything.
	if userID := c.Query("userId"); userID != "" {
		log.Printf("[ListPosts] ignoring userId=%s", userID)
	}

	ctx, cancel := requestContext()
	defer cancel()

	posts, err := h.posts.List(ctx, q, status)
	if err != nil {
		respondError(c, "ListPosts", err)
		return
	}

	views := make([]models.PostView, 0, len(posts))
	for _, p := range posts {
		view, err := h.posts.PostView(ctx, p)
		if err != nil {
			respondError(c, "ListPosts", err)
			return
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, views)
}

func (h *PostHandler) Get(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	post, err := h.posts.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, "GetPost", err)
		return
	}

	view, err := h.posts.PostView(ctx, post)
	if err != nil {
		respondError(c, "GetPost", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *PostHandler) Create(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := &models.Post{
		Title:    req.Title,
		Content:  req.Content,
		Topic:    req.Topic,
		ImageURL: req.ImageURL,
		Status:   req.Status,
	}
	if req.Author != nil {
		post.AuthorName = req.Author.Name
		post.AuthorEmail = req.Author.Email
		post.AuthorAvatarURL = req.Author.AvatarURL
	}

	ctx, cancel := requestContext()
	defer cancel()

	created, err := h.posts.Create(ctx, post)
	if err != nil {
		respondError(c, "CreatePost", err)
		return
	}
	log.Printf("[CreatePost] created post %s", created.ID.Hex())

	view, err := h.posts.PostView(ctx, created)
	if err != nil {
		respondError(c, "CreatePost", err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

func (h *PostHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	post, err := h.posts.UpdateStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		respondError(c, "UpdateStatus", err)
		return
	}
	log.Printf("[UpdateStatus] post %s -> %s", post.ID.Hex(), post.Status)

	view, err := h.posts.PostView(ctx, post)
	if err != nil {
		respondError(c, "UpdateStatus", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *PostHandler) Like(c *gin.Context) {
	h.reaction(c, "Like", h.posts.Like)
}

func (h *PostHandler) Dislike(c *gin.Context) {
	h.reaction(c, "Dislike", h.posts.Dislike)
}

func (h *PostHandler) reaction(c *gin.Context, tag string, react func(context.Context, string) (*models.Post, error)) {
	ctx, cancel := requestContext()
	defer cancel()

	post, err := react(ctx, c.Param("id"))
	if err != nil {
		respondError(c, tag, err)
		return
	}

	view, err := h.posts.PostView(ctx, post)
	if err != nil {
		respondError(c, tag, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *PostHandler) AddComment(c *gin.Context) {
	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	comment, err := h.posts.AddComment(ctx, c.Param("id"), req.AuthorName, req.AuthorEmail, req.Content)
	if err != nil {
		respondError(c, "AddComment", err)
		return
	}

	c.JSON(http.StatusCreated, services.CommentView(comment))
}

func (h *PostHandler) Delete(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	if err := h.posts.Delete(ctx, c.Param("id")); err != nil {
		respondError(c, "DeletePost", err)
		return
	}
	log.Printf("[DeletePost] deleted post %s", c.Param("id"))

	c.Status(http.StatusNoContent)
}
