package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/finchley/plume/models"
	"github.com/finchley/plume/store"
	"github.com/finchley/plume/utils"
)

// ReactionController applies reactions uniformly to posts, comments and
// replies. Every route carries the full id chain of its target; no identifier
// is ever inferred from another.
type ReactionController struct {
	db    *gorm.DB
	posts *store.PostStore
}

// NewReactionController creates a ReactionController.
func NewReactionController(db *gorm.DB) *ReactionController {
	return &ReactionController{db: db, posts: store.NewPostStore(db)}
}

// SetPostReaction sets the caller's reaction on a post.
func (r *ReactionController) SetPostReaction(ctx *gin.Context) {
	r.setReaction(ctx, "", "")
}

// RemovePostReaction removes the caller's reaction from a post.
func (r *ReactionController) RemovePostReaction(ctx *gin.Context) {
	r.removeReaction(ctx, "", "")
}

// SetCommentReaction sets the caller's reaction on a comment.
func (r *ReactionController) SetCommentReaction(ctx *gin.Context) {
	r.setReaction(ctx, ctx.Param("commentId"), "")
}

// RemoveCommentReaction removes the caller's reaction from a comment.
func (r *ReactionController) RemoveCommentReaction(ctx *gin.Context) {
	r.removeReaction(ctx, ctx.Param("commentId"), "")
}

// SetReplyReaction sets the caller's reaction on a reply.
func (r *ReactionController) SetReplyReaction(ctx *gin.Context) {
	r.setReaction(ctx, ctx.Param("commentId"), ctx.Param("replyId"))
}

// RemoveReplyReaction removes the caller's reaction from a reply.
func (r *ReactionController) RemoveReplyReaction(ctx *gin.Context) {
	r.removeReaction(ctx, ctx.Param("commentId"), ctx.Param("replyId"))
}

func (r *ReactionController) setReaction(ctx *gin.Context, commentID, replyID string) {
	var req struct {
		Type string `json:"type" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "reaction type is required")
		return
	}

	// Validate before touching the aggregate: fail fast, no partial writes.
	kind := models.ReactionType(req.Type)
	if !kind.Valid() {
		utils.Error(ctx, http.StatusBadRequest, "invalid reaction type")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	postID := ctx.Param("id")
	var reactions []models.Reaction
	_, err := r.posts.Mutate(ctx.Request.Context(), postID, func(post *models.Post) error {
		var err error
		reactions, err = post.SetReaction(commentID, replyID, userID, kind)
		return err
	})
	if err != nil {
		handleAggregateError(ctx, err, "failed to update reactions")
		return
	}

	utils.InvalidateByPrefix(postDetailCachePrefix + postID)

	utils.Success(ctx, "Reaction added successfully", reactions)
}

func (r *ReactionController) removeReaction(ctx *gin.Context, commentID, replyID string) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	postID := ctx.Param("id")
	reactionID := ctx.Param("reactionId")

	var reactions []models.Reaction
	_, err := r.posts.Mutate(ctx.Request.Context(), postID, func(post *models.Post) error {
		var err error
		reactions, err = post.RemoveReaction(commentID, replyID, reactionID, userID)
		return err
	})
	if err != nil {
		handleAggregateError(ctx, err, "failed to update reactions")
		return
	}

	utils.InvalidateByPrefix(postDetailCachePrefix + postID)

	utils.Success(ctx, "Reaction removed successfully", reactions)
}
