package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// allowedExtensions whitelists upload file types per kind.
var allowedExtensions = map[string]map[string]bool{
	"document": {".pdf": true, ".png": true, ".jpg": true, ".jpeg": true},
	"photo":    {".png": true, ".jpg": true, ".jpeg": true},
}

// Upload stores a student document or photo on disk under a random name
// and returns its path. Kind is "document" or "photo".
func (h *Handler) Upload(c *gin.Context) {
	if _, ok := h.currentStudent(c); !ok {
		return
	}

	kind := c.Param("kind")
	allowed, ok := allowedExtensions[kind]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be document or photo"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}
	if file.Size > h.cfg.Uploads.MaxSizeBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowed[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file type not allowed"})
		return
	}

	dir := filepath.Join(h.cfg.Uploads.Dir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to prepare upload directory"})
		return
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(dir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"kind": kind, "filename": name, "path": dst})
}
