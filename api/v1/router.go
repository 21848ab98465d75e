package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/taskboard-api/middleware"
)

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.RouterGroup, schema graphql.Schema) {
	// Health check endpoint
	router.GET("/health", HealthCheck)

	// Single GraphQL endpoint for queries and mutations. AuthMiddleware
	// never rejects: unauthenticated requests run with an anonymous
	// context and role gating happens in the service layer.
	router.POST("/graphql", middleware.AuthMiddleware(), NewGraphQLHandler(schema))
}
