package server

import (
	"net/http"
	"time"

	"social-hub/domain/repository"
	httpHandler "social-hub/interfaces/http"
	"social-hub/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitiateRouter(
	userHandler httpHandler.IUserHandler,
	postHandler httpHandler.IPostHandler,
	platformHandler httpHandler.IPlatformHandler,
	analyticsHandler httpHandler.IAnalyticsHandler,
	userRepository repository.IUser,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:4200", "http://localhost:3000", "https://localhost:4200"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.POST("/login", userHandler.Login)
	router.POST("/register", userHandler.Register)
	router.POST("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("api")
	api.Use(middleware.Auth(userRepository))

	posts := api.Group("/posts")
	{
		posts.POST("/sync", postHandler.Sync)
		posts.GET("", postHandler.List)
		posts.GET("/:id", postHandler.GetByID)
	}

	platforms := api.Group("/platforms")
	{
		platforms.GET("/accounts", platformHandler.ListAccounts)
		platforms.POST("/connect", platformHandler.Connect)
		platforms.DELETE("/disconnect/:platform", platformHandler.Disconnect)
	}

	analytics := api.Group("/analytics")
	{
		analytics.GET("/overview", analyticsHandler.Overview)
		analytics.POST("/sync", analyticsHandler.Sync)
	}

	return router
}
