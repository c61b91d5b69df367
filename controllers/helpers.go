package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/finchley/plume/config"
	"github.com/finchley/plume/middleware"
	"github.com/finchley/plume/models"
	"github.com/finchley/plume/store"
	"github.com/finchley/plume/utils"
)

func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}

func isAdmin(db *gorm.DB, userID uint) bool {
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		return false
	}
	cfg := config.Get()
	for _, admin := range cfg.AdminEmails {
		if strings.EqualFold(strings.TrimSpace(admin), user.Email) {
			return true
		}
	}
	return false
}

// handleAggregateError maps aggregate mutation failures onto the error taxonomy.
func handleAggregateError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrPostNotFound):
		utils.Error(ctx, http.StatusNotFound, "post not found")
	case errors.Is(err, models.ErrCommentNotFound):
		utils.Error(ctx, http.StatusNotFound, "comment not found")
	case errors.Is(err, models.ErrReplyNotFound):
		utils.Error(ctx, http.StatusNotFound, "reply not found")
	case errors.Is(err, models.ErrReactionNotFound):
		utils.Error(ctx, http.StatusNotFound, "reaction not found")
	case errors.Is(err, models.ErrInvalidReactionType):
		utils.Error(ctx, http.StatusBadRequest, "invalid reaction type")
	case errors.Is(err, models.ErrNotReactionOwner):
		utils.Error(ctx, http.StatusUnauthorized, "user not authorized")
	case errors.Is(err, store.ErrStaleAggregate):
		utils.Error(ctx, http.StatusInternalServerError, "concurrent update, please retry")
	default:
		utils.Error(ctx, http.StatusInternalServerError, fallback)
	}
}

