package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studio/config"
	"studio/database"
	"studio/handlers"
	"studio/models"
	"studio/repository/memory"
	"studio/routes"
	"studio/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:     "test-secret",
		TokenTTL:      time.Hour,
		UploadDir:     t.TempDir(),
		UploadBaseURL: "http://localhost:8080",
		AllowOrigins:  []string{"http://localhost:3000"},
	}

	users := memory.NewUserRepository()
	roles := memory.NewRoleRepository()
	posts := memory.NewPostRepository()
	comments := memory.NewCommentRepository()

	require.NoError(t, database.SeedRoles(context.Background(), roles))

	authService := services.NewAuthService(users, roles, cfg.JWTSecret, cfg.TokenTTL)
	userService := services.NewUserService(users)
	postService := services.NewPostService(posts, comments)

	return routes.SetupRouter(cfg, authService,
		handlers.NewAuthHandler(authService),
		handlers.NewUserHandler(userService),
		handlers.NewPostHandler(postService),
		handlers.NewUploadHandler(cfg),
	)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func TestRegisterAndLogin(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "a@x.com", "password": "secret1", "fullName": "Ann",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reg models.AuthResponse
	decode(t, w, &reg)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "user", reg.User.Role)

	// Duplicate email is a 400 no matter the password.
	w = doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "a@x.com", "password": "different", "fullName": "Other",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "a@x.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "a@x.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/user/64b0c8f2a2b3c4d5e6f70809", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/user/64b0c8f2a2b3c4d5e6f70809", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileAndPasswordFlow(t *testing.T) {
	router := newTestRouter(t)

	var reg models.AuthResponse
	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "a@x.com", "password": "secret1", "fullName": "Ann",
	})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &reg)

	base := "/api/user/" + reg.User.ID

	w = doJSON(t, router, http.MethodGet, base, reg.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPut, base+"/profile", reg.Token, gin.H{
		"fullName": "Ann Lee", "photoUrl": "https://cdn.example.com/ann.png",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var view models.UserView
	decode(t, w, &view)
	assert.Equal(t, "Ann Lee", view.DisplayName)
	assert.Equal(t, "https://cdn.example.com/ann.png", view.PhotoURL)

	w = doJSON(t, router, http.MethodPut, base+"/password", reg.Token, gin.H{
		"currentPassword": "wrong", "newPassword": "secret2",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPut, base+"/password", reg.Token, gin.H{
		"currentPassword": "secret1", "newPassword": "abc",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPut, base+"/password", reg.Token, gin.H{
		"currentPassword": "secret1", "newPassword": "secret2",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "a@x.com", "password": "secret2",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

// End-to-end moderation and engagement pass: pending by default, hidden from
// the public listing, approved by a moderator, then liked and commented on.
func TestPostLifecycle(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/posts", "", gin.H{
		"title": "Hi", "content": "body",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.PostView
	decode(t, w, &created)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, services.AnonymousAuthor, created.Author.Name)

	// Pending posts are absent from the default listing.
	w = doJSON(t, router, http.MethodGet, "/api/posts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []models.PostView
	decode(t, w, &listed)
	assert.Empty(t, listed)

	// The unused userId parameter changes nothing.
	w = doJSON(t, router, http.MethodGet, "/api/posts?userId=12345", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &listed)
	assert.Empty(t, listed)

	w = doJSON(t, router, http.MethodPut, "/api/posts/"+created.ID+"/status", "", gin.H{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/posts/"+created.ID+"/status", "", gin.H{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/posts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	for i := 0; i < 2; i++ {
		w = doJSON(t, router, http.MethodPost, "/api/posts/"+created.ID+"/like", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	var liked models.PostView
	decode(t, w, &liked)
	assert.Equal(t, 2, liked.Likes)

	w = doJSON(t, router, http.MethodPost, "/api/posts/"+created.ID+"/comments", "", gin.H{"content": "nice"})
	require.Equal(t, http.StatusCreated, w.Code)
	var comment models.CommentView
	decode(t, w, &comment)
	assert.Equal(t, services.AnonymousAuthor, comment.Author.Name)

	w = doJSON(t, router, http.MethodGet, "/api/posts/"+created.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var full models.PostView
	decode(t, w, &full)
	require.Len(t, full.Comments, 1)
	assert.Equal(t, "nice", full.Comments[0].Content)

	w = doJSON(t, router, http.MethodPost, "/api/posts/"+created.ID+"/comments", "", gin.H{"content": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/posts/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/posts/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/posts/"+created.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpload_LocalDisk(t *testing.T) {
	router := newTestRouter(t)

	var reg models.AuthResponse
	w := doJSON(t, router, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "a@x.com", "password": "secret1", "fullName": "Ann",
	})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &reg)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "avatar.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("not really a png"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+reg.Token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp struct {
		URL string `json:"url"`
	}
	decode(t, rec, &resp)
	assert.Contains(t, resp.URL, "http://localhost:8080/uploads/")
	assert.Contains(t, resp.URL, ".png")

	// Missing file part is a 400.
	req = httptest.NewRequest(http.MethodPost, "/api/uploads", bytes.NewReader(nil))
	req.Header.Set("Authorization", "Bearer "+reg.Token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
