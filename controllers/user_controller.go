// File: /controllers/user_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fitlink-api/models"
	"fitlink-api/services"
	"fitlink-api/utils"
)

type UserController struct {
	db             *gorm.DB
	storageService *services.StorageService
}

func NewUserController(db *gorm.DB, storageService *services.StorageService) *UserController {
	return &UserController{db: db, storageService: storageService}
}

type UpdateProfileRequest struct {
	Name   string `json:"name" binding:"required"`
	Avatar string `json:"avatar"`
}

type DefinePreferencesRequest struct {
	TypeIDs []string `json:"type_ids" binding:"required"`
}

func (uc *UserController) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := uc.db.
		Preload("Preferences").
		Preload("Achievements").Preload("Achievements.Achievement").
		First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	updates := map[string]interface{}{"name": req.Name}
	if req.Avatar != "" {
		updates["avatar"] = req.Avatar
	}

	if err := uc.db.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user})
}

// UploadAvatar stores the multipart image and points the profile at the new
// URL.
func (uc *UserController) UploadAvatar(c *gin.Context) {
	userID := c.GetString("user_id")

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
	url, err := uc.storageService.Store(c.Request.Context(), "avatars", fileHeader.Filename, file, fileHeader.Size, contentType)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	if err := uc.db.Model(&models.User{}).Where("id = ?", userID).Update("avatar", url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update avatar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar": url})
}

func (uc *UserController) GetPreferences(c *gin.Context) {
	userID := c.GetString("user_id")

	var user models.User
	if err := uc.db.Preload("Preferences").First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user.Preferences)
}

// DefinePreferences replaces the user's preferred activity types. Every id
// must reference the seeded catalog.
func (uc *UserController) DefinePreferences(c *gin.Context) {
	userID := c.GetString("user_id")

	var req DefinePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := uc.db.First(&user, "id = ?", userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var types []models.ActivityType
	if len(req.TypeIDs) > 0 {
		if err := uc.db.Where("id IN ?", req.TypeIDs).Find(&types).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity types"})
			return
		}
		if len(types) != len(req.TypeIDs) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "One or more activity types are invalid"})
			return
		}
	}

	if err := uc.db.Model(&user).Association("Preferences").Replace(types); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Preferences updated successfully", "preferences": types})
}

func (uc *UserController) GetAchievements(c *gin.Context) {
	userID := c.GetString("user_id")

	var achievements []models.UserAchievement
	if err := uc.db.Preload("Achievement").Where("user_id = ?", userID).Find(&achievements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch achievements"})
		return
	}

	c.JSON(http.StatusOK, achievements)
}
