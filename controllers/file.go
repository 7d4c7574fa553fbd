package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Angelb777/done-backend/utils"
)

// FileController is the file-store boundary: it turns uploaded bytes into
// stable attachment references that messages, tasks and comments embed.
type FileController struct{}

func (fc *FileController) UploadFiles(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files uploaded"})
		return
	}
	if len(files) > 10 {
		files = files[:10]
	}

	refs, err := utils.SaveUploadedFiles(c, files)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"attachments": refs})
}
