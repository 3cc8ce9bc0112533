package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/pbw78/Rentalmasters/internal/middleware"
	"github.com/pbw78/Rentalmasters/internal/model"
	"github.com/pbw78/Rentalmasters/pkg/database"
	"github.com/pbw78/Rentalmasters/pkg/logger"
	"github.com/pbw78/Rentalmasters/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// UserRequest defines the structure for user update requests
type UserRequest struct {
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	ProfileImageURL string `json:"profile_image_url"`
	Role            string `json:"role"`
}

// ListUsers handles retrieving all users. Admin only.
func ListUsers(c echo.Context) error {
	log := logger.FromContext(c)

	var users []model.User

	defer prometheus.TrackDBOperation("query")(time.Now())
	result := database.GetDB().Find(&users)
	if result.Error != nil {
		log.Error("Failed to list users", zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve users",
		})
	}

	log.Info("Users retrieved successfully", zap.Int("count", len(users)))
	return c.JSON(http.StatusOK, users)
}

// GetUser handles retrieving a single user by ID. Admin only.
func GetUser(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var user model.User
	result := database.GetDB().First(&user, id)
	if result.Error != nil {
		log.Warn("User not found", zap.String("user_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "User not found",
		})
	}

	return c.JSON(http.StatusOK, user)
}

// UpdateUser handles updating a user's profile and role. Admin only.
func UpdateUser(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	var req UserRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.String("user_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	if req.Role != "" && req.Role != model.RoleUser && req.Role != model.RoleAdmin {
		log.Warn("Invalid role", zap.String("role", req.Role))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "role must be user or admin",
		})
	}

	var user model.User
	result := database.GetDB().First(&user, id)
	if result.Error != nil {
		log.Warn("User not found for update", zap.String("user_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "User not found",
		})
	}

	// Check if email is changed and already taken
	if req.Email != "" && req.Email != user.Email {
		var count int64
		database.GetDB().Model(&model.User{}).Where("email = ? AND id != ?", req.Email, id).Count(&count)
		if count > 0 {
			log.Warn("User with this email already exists", zap.String("email", req.Email))
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "User with this email already exists",
			})
		}
		user.Email = req.Email
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.ProfileImageURL = req.ProfileImageURL
	if req.Role != "" {
		user.Role = req.Role
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	result = database.GetDB().Save(&user)
	if result.Error != nil {
		log.Error("Failed to update user",
			zap.String("user_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update user",
		})
	}

	prometheus.RecordEntityOperation("user", "update")
	log.Info("User updated successfully",
		zap.String("user_id", id),
		zap.String("role", user.Role))
	return c.JSON(http.StatusOK, user)
}

// DeleteUser handles deleting a user. Admin only. Deleting the currently
// authenticated user's own account is rejected regardless of role.
func DeleteUser(c echo.Context) error {
	log := logger.FromContext(c)
	id := c.Param("id")

	// Self-delete guard
	callerID, ok := middleware.GetUserIDFromContext(c)
	if ok {
		if targetID, err := strconv.ParseUint(id, 10, 64); err == nil && uint(targetID) == callerID {
			log.Warn("Self-delete attempt rejected", zap.Uint("user_id", callerID))
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "You cannot delete your own account",
			})
		}
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())
	result := database.GetDB().Delete(&model.User{}, id)
	if result.Error != nil {
		log.Error("Failed to delete user",
			zap.String("user_id", id),
			zap.Error(result.Error))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete user",
		})
	}

	if result.RowsAffected == 0 {
		log.Warn("User not found for deletion", zap.String("user_id", id))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "User not found",
		})
	}

	prometheus.RecordEntityOperation("user", "delete")
	log.Info("User deleted successfully", zap.String("user_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "User deleted successfully",
	})
}
