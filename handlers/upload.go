package handlers

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"studio/config"
)

// UploadHandler stores uploaded files under a random name and hands back a
// retrievable URL. Files go to Cloudinary when CLOUDINARY_URL is set,
// otherwise to local disk behind the /uploads static mount.
type UploadHandler struct {
	cfg *config.Config
}

func NewUploadHandler(cfg *config.Config) *UploadHandler {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Printf("[Upload] could not create upload dir %s: %v", cfg.UploadDir, err)
	}
	return &UploadHandler{cfg: cfg}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}

	if h.cfg.CloudinaryURL != "" {
		h.uploadCloudinary(c, file)
		return
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	target := filepath.Join(h.cfg.UploadDir, name)
	if err := c.SaveUploadedFile(file, target); err != nil {
		log.Printf("[Upload] failed to store %s: %v", target, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot store file"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": fmt.Sprintf("%s/uploads/%s", h.cfg.UploadBaseURL, name)})
}

func (h *UploadHandler) uploadCloudinary(c *gin.Context, file *multipart.FileHeader) {
	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	defer src.Close()

	cld, err := cloudinary.NewFromURL(h.cfg.CloudinaryURL)
	if err != nil {
		log.Printf("[Upload] cloudinary configuration error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot store file"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	result, err := cld.Upload.Upload(ctx, src, uploader.UploadParams{
		Folder:   "studio/uploads",
		PublicID: uuid.NewString(),
	})
	if err != nil {
		log.Printf("[Upload] cloudinary upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot store file"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": result.SecureURL})
}
