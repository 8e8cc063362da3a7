package api

import (
	"github.com/gin-gonic/gin"
	"github.com/i-a-n/basic-birthdays-app/internal/util"
	"github.com/i-a-n/basic-birthdays-app/internal/worker"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	router          *gin.Engine
	taskDistributor worker.TaskDistributor
	taskInspector   worker.TaskInspector
	redisClient     *redis.Client
	config          *util.Config
}

// NewServer creates the ops HTTP server and set up routing.
func NewServer(taskDistributor worker.TaskDistributor, taskInspector worker.TaskInspector, redisClient *redis.Client, config *util.Config) *Server {
	server := &Server{
		taskDistributor: taskDistributor,
		taskInspector:   taskInspector,
		redisClient:     redisClient,
		config:          config,
	}

	server.setupRouter()
	return server
}

// setupRouter configures the HTTP server routes.
func (server *Server) setupRouter() {
	router := gin.Default()

	router.GET("/healthz", server.healthCheck)

	v1 := router.Group("/v1")

	v1.POST("/digest/runs", server.triggerDigestRun)
	v1.GET("/digest/tasks/:id", server.getDigestTask)
	v1.DELETE("/digest/tasks/:id", server.deleteDigestTask)

	server.router = router
}

// Start runs the HTTP server on a specific address.
func (server *Server) Start(address string) error {
	return server.router.Run(address)
}
