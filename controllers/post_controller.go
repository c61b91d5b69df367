package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/finchley/plume/models"
	"github.com/finchley/plume/store"
	"github.com/finchley/plume/utils"
)

const (
	postListCacheKey      = "cache:posts:list"
	postDetailCachePrefix = "cache:post:detail:"
)

// PostController manages the post aggregate: posts, comments and replies.
type PostController struct {
	db    *gorm.DB
	posts *store.PostStore
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db, posts: store.NewPostStore(db)}
}

// CreatePost allows authenticated users to create new posts.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "title and content are required")
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, "title cannot be empty")
		return
	}
	content := utils.Sanitize(strings.TrimSpace(req.Content))
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, "content cannot be empty")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	post := models.Post{
		UserID:  userID,
		Title:   title,
		Content: content,
	}

	if err := p.posts.Create(ctx.Request.Context(), &post); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to create post")
		return
	}

	// Resolve the author for the response payload.
	var author models.User
	if err := p.db.First(&author, userID).Error; err == nil {
		post.User = author
	}

	utils.InvalidateByPrefix(postListCacheKey)

	utils.Success(ctx, "Post created successfully", post)
}

// ListPosts returns all posts newest first with author information. An empty
// platform yields an empty list, not an error.
func (p *PostController) ListPosts(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(postListCacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	posts, err := p.posts.List(ctx.Request.Context())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, "failed to list posts")
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	envelope := utils.Envelope{Success: true, Message: "Posts fetched successfully", Data: posts}
	utils.CacheSetJSON(postListCacheKey, envelope, time.Hour)
	utils.Success(ctx, "Posts fetched successfully", posts)
}

// GetPost returns a single post with its full comment/reply/reaction document.
func (p *PostController) GetPost(ctx *gin.Context) {
	postID := ctx.Param("id")

	if b, ok := utils.CacheGetBytes(postDetailCachePrefix + postID); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	post, err := p.posts.GetByID(ctx.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			utils.Error(ctx, http.StatusNotFound, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to load post")
		return
	}

	envelope := utils.Envelope{Success: true, Message: "Post fetched successfully", Data: post}
	utils.CacheSetJSON(postDetailCachePrefix+postID, envelope, time.Hour)
	utils.Success(ctx, "Post fetched successfully", post)
}

// DeletePost removes a post and everything nested in it. Existence is checked
// before ownership so a non-owner deleting a missing post sees not-found.
func (p *PostController) DeletePost(ctx *gin.Context) {
	postID := ctx.Param("id")

	post, err := p.posts.GetByID(ctx.Request.Context(), postID)
	if err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			utils.Error(ctx, http.StatusNotFound, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to load post")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	if post.UserID != userID && !isAdmin(p.db, userID) {
		utils.Error(ctx, http.StatusUnauthorized, "user not authorized")
		return
	}

	if err := p.posts.Delete(ctx.Request.Context(), postID); err != nil {
		if errors.Is(err, store.ErrPostNotFound) {
			utils.Error(ctx, http.StatusNotFound, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, "failed to delete post")
		return
	}

	utils.InvalidateByPrefix(postListCacheKey)
	utils.InvalidateByPrefix(postDetailCachePrefix + postID)

	utils.Success(ctx, "Post removed successfully", gin.H{})
}

// CreateComment prepends a comment to the post and returns the full updated
// comment sequence.
func (p *PostController) CreateComment(ctx *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "content is required")
		return
	}

	content := utils.Sanitize(strings.TrimSpace(req.Content))
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, "content cannot be empty")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	var author models.User
	if err := p.db.First(&author, userID).Error; err != nil {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	postID := ctx.Param("id")
	var comments []models.Comment
	_, err := p.posts.Mutate(ctx.Request.Context(), postID, func(post *models.Post) error {
		comments = post.PrependComment(userID, author.Name, content)
		return nil
	})
	if err != nil {
		handleAggregateError(ctx, err, "failed to add comment")
		return
	}

	utils.InvalidateByPrefix(postListCacheKey)
	utils.InvalidateByPrefix(postDetailCachePrefix + postID)

	utils.Success(ctx, "Comment added successfully", comments)
}

// CreateReply prepends a reply to a comment and returns the full updated
// reply sequence.
func (p *PostController) CreateReply(ctx *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}

	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, "content is required")
		return
	}

	content := utils.Sanitize(strings.TrimSpace(req.Content))
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, "content cannot be empty")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	var author models.User
	if err := p.db.First(&author, userID).Error; err != nil {
		utils.Error(ctx, http.StatusUnauthorized, "unauthorized")
		return
	}

	postID := ctx.Param("postId")
	commentID := ctx.Param("commentId")

	var replies []models.Reply
	_, err := p.posts.Mutate(ctx.Request.Context(), postID, func(post *models.Post) error {
		var err error
		replies, err = post.PrependReply(commentID, userID, author.Name, content)
		return err
	})
	if err != nil {
		handleAggregateError(ctx, err, "failed to add reply")
		return
	}

	utils.InvalidateByPrefix(postDetailCachePrefix + postID)

	utils.Success(ctx, "Reply added successfully", replies)
}
