package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"demo-user-service/internal/adapter/gin/handler"
	"demo-user-service/internal/adapter/gin/middleware"
)

// Options carries the cross-cutting dependencies shared by both services.
type Options struct {
	Logger      *zap.Logger
	RedisClient *redis.Client
	RateLimit   middleware.RateLimiterConfig
	ServiceName string
}

func newEngine(opts Options) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(opts.Logger))
	r.Use(middleware.AccessLog(opts.Logger))
	r.Use(middleware.RateLimit(opts.RedisClient, opts.RateLimit, opts.Logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": opts.ServiceName,
		})
	})

	return r
}

// NewDemo1Router configures the demo1 route table: user CRUD plus the
// diagnostic endpoints.
func NewDemo1Router(userHandler *handler.UserHandler, helloHandler *handler.HelloHandler, opts Options) *gin.Engine {
	r := newEngine(opts)

	r.GET("/hello", helloHandler.Hello)
	r.GET("/errors/:type", helloHandler.GenerateError)

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/json-tree", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.POST("", userHandler.CreateUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}
	}

	return r
}

// NewDemo2Router configures the demo2 route table: the peer greeting only.
func NewDemo2Router(peerHandler *handler.PeerHandler, opts Options) *gin.Engine {
	r := newEngine(opts)

	r.GET("/hello", peerHandler.Hello)

	return r
}
