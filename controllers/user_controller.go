package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/finchley/plume/models"
	"github.com/finchley/plume/utils"
)

// UserController exposes the administrative user surface.
type UserController struct {
	db *gorm.DB
}

// NewUserController creates a UserController.
func NewUserController(db *gorm.DB) *UserController {
	return &UserController{db: db}
}

// ListUsers returns all accounts, newest first.
func (u *UserController) ListUsers(ctx *gin.Context) {
	var users []models.User
	if err := u.db.Order("created_at DESC").Find(&users).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to retrieve users")
		return
	}
	utils.Success(ctx, "Users fetched successfully", users)
}

// DeleteUser removes an account. The user's posts are intentionally left in
// place; a missing author resolves to an empty name on read.
func (u *UserController) DeleteUser(ctx *gin.Context) {
	userID := strings.TrimSpace(ctx.Param("userId"))
	if userID == "" {
		utils.Error(ctx, http.StatusBadRequest, "missing user id")
		return
	}

	var user models.User
	if err := u.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to load user")
		return
	}

	if err := u.db.Delete(&user).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to delete user")
		return
	}

	utils.Success(ctx, "User removed successfully", gin.H{})
}
