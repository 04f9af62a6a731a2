package controllers

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"marketplace/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadSize = 5 << 20 // 5 MB

var allowedUploadExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// saveUpload stores an uploaded image under the upload dir with a generated
// filename and returns the stored path. Callers on non-critical paths log
// the error and continue.
func saveUpload(c *gin.Context, file *multipart.FileHeader, prefix string) (string, error) {
	if file.Size > maxUploadSize {
		return "", fmt.Errorf("file too large: %d bytes", file.Size)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadExts[ext] {
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}

	name := fmt.Sprintf("%s-%s%s", prefix, uuid.NewString(), ext)
	dst := filepath.Join(config.UploadDir(), name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return dst, nil
}
