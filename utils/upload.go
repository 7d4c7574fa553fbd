package utils

import (
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Angelb777/done-backend/models"
)

func UploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "uploads"
}

// SaveUploadedFiles stores multipart files under the upload dir and returns
// stable attachment references for them.
func SaveUploadedFiles(c *gin.Context, files []*multipart.FileHeader) ([]models.Attachment, error) {
	dir := UploadDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	refs := make([]models.Attachment, 0, len(files))
	for _, f := range files {
		name := uuid.New().String() + filepath.Ext(f.Filename)
		if err := c.SaveUploadedFile(f, filepath.Join(dir, name)); err != nil {
			return nil, err
		}
		mime := f.Header.Get("Content-Type")
		if mime == "" {
			mime = "application/octet-stream"
		}
		refs = append(refs, models.Attachment{
			URL:  "/uploads/" + name,
			Name: f.Filename,
			Mime: mime,
			Size: f.Size,
		})
	}
	return refs, nil
}
