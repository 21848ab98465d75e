package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	v1 "github.com/taskboard-api/api/v1"
	"github.com/taskboard-api/config"
	"github.com/taskboard-api/database"
	"github.com/taskboard-api/events"
	"github.com/taskboard-api/gateway"
	"github.com/taskboard-api/gql"
	"github.com/taskboard-api/repositories"
	"github.com/taskboard-api/services"
)

func main() {
	// Load environment and connect to the database
	config.LoadEnv()
	database.Initialize()

	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	// The bus is a single in-process broker shared by the mutation services
	// and the subscription gateway.
	bus := events.NewInMemoryBus()

	projectRepo := repositories.NewProjectRepository()
	taskRepo := repositories.NewTaskRepository()
	userRepo := repositories.NewUserRepository()

	projectService := services.NewProjectService(projectRepo, bus)
	taskService := services.NewTaskService(taskRepo, projectRepo, userRepo, bus)
	userService := services.NewUserService(userRepo, bus)
	authService := services.NewAuthService(userRepo, bus)

	resolver := gql.NewResolver(projectService, taskService, userService, authService)
	schema, err := gql.NewSchema(resolver)
	if err != nil {
		log.Fatalf("Failed to build GraphQL schema: %v", err)
	}

	// API server
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Correlation-ID"},
		AllowCredentials: true,
	}))
	v1.RegisterRoutes(router.Group("/api"), schema)

	// Subscription server on its own port
	wsRouter := gin.New()
	wsRouter.Use(gin.Recovery())
	gw := gateway.New(bus)
	wsRouter.GET("/api/graphql", gw.Handle)

	wsPort := config.WSPort()
	go func() {
		log.Printf("Subscription endpoint listening on port %s", wsPort)
		if err := wsRouter.Run(":" + wsPort); err != nil {
			log.Fatalf("Failed to start subscription server: %v", err)
		}
	}()

	port := config.Port()
	log.Printf("Taskboard API starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
