package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// errFileType is returned for uploads that are not one of allowedImageExts.
var errFileType = errors.New("file type not allowed")

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// saveImage stores an uploaded image under UploadDir and returns the path
// it is served from. Files are named <slug>-<uuid>.<ext> so the original
// name stays readable but can never collide or escape the directory.
func (h *Handlers) saveImage(c *gin.Context, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", errFileType
	}

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	base := slug.Make(strings.TrimSuffix(filepath.Base(file.Filename), filepath.Ext(file.Filename)))
	if base == "" {
		base = "image"
	}
	newFilename := fmt.Sprintf("%s-%s%s", base, uuid.New().String(), ext)

	if err := c.SaveUploadedFile(file, filepath.Join(h.UploadDir, newFilename)); err != nil {
		return "", fmt.Errorf("save upload: %w", err)
	}
	return "/uploads/" + newFilename, nil
}

// UploadFile handles POST /upload
// It saves the file to the upload folder and returns its public URL.
func (h *Handlers) UploadFile(c *gin.Context) {
	// 1. Get the file from the request
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	// 2. Save it
	path, err := h.saveImage(c, file)
	if err != nil {
		if errors.Is(err, errFileType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "File type not allowed"})
			return
		}
		h.serverError(c, err, "Failed to save file")
		return
	}

	// 3. Return the public URL
	c.JSON(http.StatusOK, gin.H{
		"url":  strings.TrimSuffix(h.BaseURL, "/") + path,
		"path": path,
	})
}
