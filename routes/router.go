package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/finchley/plume/config"
	"github.com/finchley/plume/controllers"
	"github.com/finchley/plume/middleware"
	"github.com/finchley/plume/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}

	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, "ok", gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	postController := controllers.NewPostController(db)
	reactionController := controllers.NewReactionController(db)
	userController := controllers.NewUserController(db)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.GET("/profile", middleware.AuthRequired(), authController.Profile)
	authGroup.PUT("/profile", middleware.AuthRequired(), authController.UpdateProfile)

	postsGroup := api.Group("/posts")
	postsGroup.GET("", postController.ListPosts)
	postsGroup.GET("/:id", postController.GetPost)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())
	protected.POST("/posts", postController.CreatePost)
	protected.DELETE("/posts/:id", postController.DeletePost)
	protected.POST("/posts/comment/:id", postController.CreateComment)
	protected.POST("/posts/comment/reply/:postId/:commentId", postController.CreateReply)
	protected.POST("/posts/:id/reactions", reactionController.SetPostReaction)
	protected.DELETE("/posts/:id/reactions/:reactionId", reactionController.RemovePostReaction)
	protected.POST("/posts/:id/comments/:commentId/reactions", reactionController.SetCommentReaction)
	protected.DELETE("/posts/:id/comments/:commentId/reactions/:reactionId", reactionController.RemoveCommentReaction)
	protected.POST("/posts/:id/comments/:commentId/replies/:replyId/reactions", reactionController.SetReplyReaction)
	protected.DELETE("/posts/:id/comments/:commentId/replies/:replyId/reactions/:reactionId", reactionController.RemoveReplyReaction)

	adminGroup := api.Group("/users")
	adminGroup.Use(middleware.AuthRequired(), middleware.AdminRequired(db))
	adminGroup.GET("", userController.ListUsers)
	adminGroup.DELETE("/:userId", userController.DeleteUser)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, "route not found")
	})

	return r
}
