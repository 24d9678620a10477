package server

import (
	"time"

	"github.com/acidderek/acid-concepts-automation-sub002/domain/repository"
	httpHandler "github.com/acidderek/acid-concepts-automation-sub002/interfaces/http"
	"github.com/acidderek/acid-concepts-automation-sub002/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func InitiateRouter(
	userHandler httpHandler.IUserHandler,
	oauthHandler httpHandler.IOAuthHandler,
	campaignHandler httpHandler.ICampaignHandler,
	discoveryHandler httpHandler.IDiscoveryHandler,
	userRepository repository.IUser,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.POST("/login", userHandler.Login)
	router.POST("/register", userHandler.Register)

	// OAuth browser entry points (the provider redirects back here, so no
	// bearer token is available on the callback).
	router.GET("/auth/reddit", oauthHandler.GetAuthURL)
	router.GET("/auth/reddit/callback", oauthHandler.Callback)

	api := router.Group("api")
	api.Use(middleware.Auth(userRepository))
	api.POST("/oauth", oauthHandler.Dispatch)
	api.POST("/campaigns", campaignHandler.Dispatch)
	api.POST("/discovery", discoveryHandler.Dispatch)

	return router
}
