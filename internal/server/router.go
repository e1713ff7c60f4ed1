package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/ntvhs/portal-backend/internal/handlers"
	"github.com/ntvhs/portal-backend/internal/middleware"
	"github.com/ntvhs/portal-backend/internal/platform/logger"
	"github.com/ntvhs/portal-backend/internal/services"
)

type Deps struct {
	Log        *logger.Logger
	Auth       services.AuthService
	Quizzes    services.AssignmentService
	Activities services.AssignmentService
	Worksheets services.AssignmentService
	Videos     services.VideoService
	Books      services.BookService
}

// NewRouter wires every route. Login and the healthcheck are public;
// everything under /api requires a valid admin token.
func NewRouter(deps Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition", "Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := handlers.NewAuthHandler(deps.Log, deps.Auth)
	videoHandler := handlers.NewVideoHandler(deps.Log, deps.Videos)
	bookHandler := handlers.NewBookHandler(deps.Log, deps.Books)

	router.GET("/healthcheck", handlers.Healthcheck)
	router.POST("/login", authHandler.Login)

	api := router.Group("/api")
	api.Use(middleware.RequireAdmin(deps.Auth))

	api.POST("/logout", authHandler.Logout)

	assignments := map[string]services.AssignmentService{
		"quizzes":    deps.Quizzes,
		"activities": deps.Activities,
		"worksheets": deps.Worksheets,
	}
	for path, svc := range assignments {
		h := handlers.NewAssignmentHandler(deps.Log, svc)
		group := api.Group("/" + path)
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.PUT("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}

	videos := api.Group("/videos")
	videos.GET("", videoHandler.List)
	videos.GET("/:id", videoHandler.Get)
	videos.POST("", videoHandler.Upload)
	videos.PUT("/:id", videoHandler.UpdateInfo)
	videos.DELETE("/:id", videoHandler.Delete)
	videos.GET("/:id/download", videoHandler.Download)

	books := api.Group("/library")
	books.GET("", bookHandler.List)
	books.GET("/:id", bookHandler.Get)
	books.POST("", bookHandler.Upload)
	books.PUT("/:id", bookHandler.UpdateInfo)
	books.DELETE("/:id", bookHandler.Delete)
	books.GET("/:id/download", bookHandler.Download)

	return router
}
