// File: /controllers/activity_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fitlink-api/models"
	"fitlink-api/repositories"
	"fitlink-api/services"
	"fitlink-api/utils"
)

type ActivityController struct {
	service *services.ActivityService
	repo    *repositories.ActivityRepository
}

func NewActivityController(service *services.ActivityService, repo *repositories.ActivityRepository) *ActivityController {
	return &ActivityController{service: service, repo: repo}
}

type CreateActivityRequest struct {
	Title         string    `json:"title" binding:"required"`
	Description   string    `json:"description" binding:"required"`
	TypeID        string    `json:"type_id" binding:"required"`
	Address       string    `json:"address" binding:"required"`
	Image         string    `json:"image"`
	Private       bool      `json:"private"`
	ScheduledDate time.Time `json:"scheduled_date" binding:"required"`
}

type ApproveRequest struct {
	ParticipantID string `json:"participant_id" binding:"required"`
	Approved      *bool  `json:"approved" binding:"required"`
}

type CheckInRequest struct {
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

// ActivityResponse carries the denormalized creator summary instead of the
// full user record.
type ActivityResponse struct {
	ID               string                `json:"id"`
	Title            string                `json:"title"`
	Description      string                `json:"description"`
	Type             models.ActivityType   `json:"type"`
	Address          string                `json:"address"`
	Image            *string               `json:"image"`
	Private          bool                  `json:"private"`
	ScheduledDate    time.Time             `json:"scheduled_date"`
	ParticipantCount int                   `json:"participant_count"`
	CompletedAt      *time.Time            `json:"completed_at"`
	CreatedAt        time.Time             `json:"created_at"`
	Creator          models.CreatorSummary `json:"creator"`
}

type ParticipantResponse struct {
	UserID           string                     `json:"user_id"`
	Name             string                     `json:"name"`
	Avatar           *string                    `json:"avatar"`
	Status           models.ParticipationStatus `json:"status"`
	ConfirmationCode *string                    `json:"confirmation_code,omitempty"`
	ConfirmedAt      *time.Time                 `json:"confirmed_at"`
}

func newActivityResponse(a models.Activity) ActivityResponse {
	return ActivityResponse{
		ID:               a.ID,
		Title:            a.Title,
		Description:      a.Description,
		Type:             a.Type,
		Address:          a.Address,
		Image:            a.Image,
		Private:          a.Private,
		ScheduledDate:    a.ScheduledDate,
		ParticipantCount: a.ParticipantCount,
		CompletedAt:      a.CompletedAt,
		CreatedAt:        a.CreatedAt,
		Creator:          a.Creator.Summary(),
	}
}

func newActivityResponses(activities []models.Activity) []ActivityResponse {
	responses := make([]ActivityResponse, len(activities))
	for i, a := range activities {
		responses[i] = newActivityResponse(a)
	}
	return responses
}

// GetActivities returns one page of activities, optionally filtered by type.
func (ac *ActivityController) GetActivities(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 50 {
		pageSize = 10
	}

	filter := repositories.ActivityFilter{
		TypeID:  c.Query("typeId"),
		OrderBy: c.Query("orderBy"),
		Order:   c.Query("order"),
	}

	activities, total, err := ac.repo.List(filter, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activities"})
		return
	}

	utils.SendPaginated(c, newActivityResponses(activities), page, pageSize, total)
}

// GetAllActivities returns the unpaginated list.
func (ac *ActivityController) GetAllActivities(c *gin.Context) {
	filter := repositories.ActivityFilter{
		TypeID:  c.Query("typeId"),
		OrderBy: c.Query("orderBy"),
		Order:   c.Query("order"),
	}

	activities, err := ac.repo.ListAll(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activities"})
		return
	}

	c.JSON(http.StatusOK, newActivityResponses(activities))
}

func (ac *ActivityController) GetActivityTypes(c *gin.Context) {
	types, err := ac.repo.Types()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity types"})
		return
	}

	c.JSON(http.StatusOK, types)
}

func (ac *ActivityController) CreateActivity(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activity, err := ac.service.Create(userID, services.ActivityInput{
		Title:         req.Title,
		Description:   req.Description,
		TypeID:        req.TypeID,
		Address:       req.Address,
		Image:         req.Image,
		Private:       req.Private,
		ScheduledDate: req.ScheduledDate,
	})
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, activity)
}

// GetActivity returns the detail view, including participants. Confirmation
// codes belong to their owners: every other caller sees them stripped.
func (ac *ActivityController) GetActivity(c *gin.Context) {
	userID := c.GetString("user_id")
	activityID := c.Param("id")

	activity, err := ac.repo.FindByID(activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity"})
		return
	}

	participants := make([]ParticipantResponse, len(activity.Participants))
	for i, p := range activity.Participants {
		participants[i] = ParticipantResponse{
			UserID:      p.UserID,
			Name:        p.User.Name,
			Avatar:      p.User.Avatar,
			Status:      p.Status,
			ConfirmedAt: p.ConfirmedAt,
		}
		if p.UserID == userID {
			participants[i].ConfirmationCode = p.ConfirmationCode
		}
	}

	response := gin.H{
		"activity":     newActivityResponse(*activity),
		"participants": participants,
	}
	c.JSON(http.StatusOK, response)
}

func (ac *ActivityController) UpdateActivity(c *gin.Context) {
	userID := c.GetString("user_id")
	activityID := c.Param("id")

	var req CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	activity, err := ac.service.Update(activityID, userID, services.ActivityInput{
		Title:         req.Title,
		Description:   req.Description,
		TypeID:        req.TypeID,
		Address:       req.Address,
		Image:         req.Image,
		Private:       req.Private,
		ScheduledDate: req.ScheduledDate,
	})
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, activity)
}

func (ac *ActivityController) DeleteActivity(c *gin.Context) {
	userID := c.GetString("user_id")
	activityID := c.Param("id")

	if err := ac.service.Delete(activityID, userID); err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Activity deleted successfully"})
}

func (ac *ActivityController) Subscribe(c *gin.Context) {
	userID := c.GetString("user_id")
	activityID := c.Param("id")

	participation, err := ac.service.Subscribe(activityID, userID)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, participation)
}

func (ac *ActivityController) Approve(c *gin.Context) {
	userID := c.GetString("user_id")
	activityID := c.Param("id")

	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participation, err := ac.service.Approve(activityID, userID, req.ParticipantID, *req.Approved)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	// The code is for the participant, not the creator
	participation.ConfirmationCode = nil

	c.JSON(http.StatusOK, participation)
}

func (ac *ActivityController) CheckIn(c *gin.Context) {
	userID := c.GetString("user_id")
	activityID := c.Param("id")

	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participation, err := ac.service.CheckIn(activityID, userID, req.ConfirmationCode)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, participation)
}

func (ac *ActivityController) Conclude(c *gin.Context) {
	userID := c.GetString("user_id")
	activityID := c.Param("id")

	activity, err := ac.service.Conclude(activityID, userID)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, activity)
}

func (ac *ActivityController) Unsubscribe(c *gin.Context) {
	userID := c.GetString("user_id")
	activityID := c.Param("id")

	if err := ac.service.Unsubscribe(activityID, userID); err != nil {
		utils.SendServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully unsubscribed"})
}

func (ac *ActivityController) GetCreatedActivities(c *gin.Context) {
	userID := c.GetString("user_id")

	activities, err := ac.repo.CreatedBy(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch created activities"})
		return
	}

	c.JSON(http.StatusOK, newActivityResponses(activities))
}

func (ac *ActivityController) GetSubscribedActivities(c *gin.Context) {
	userID := c.GetString("user_id")

	activities, err := ac.repo.SubscribedBy(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch subscribed activities"})
		return
	}

	c.JSON(http.StatusOK, newActivityResponses(activities))
}
