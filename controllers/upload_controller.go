// File: /controllers/upload_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitlink-api/services"
	"fitlink-api/utils"
)

type UploadController struct {
	storageService *services.StorageService
}

func NewUploadController(storageService *services.StorageService) *UploadController {
	return &UploadController{storageService: storageService}
}

// UploadImage stores an activity image and returns its public URL. The URL
// is then passed back in the activity create/update payload.
func (uc *UploadController) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := uc.storageService.Store(c.Request.Context(), "activities", fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
