package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/taskboard-api/gql"
	"github.com/taskboard-api/models"
	"github.com/taskboard-api/services"
)

// GraphQLRequest is the standard GraphQL-over-HTTP request body
type GraphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// NewGraphQLHandler returns the handler for POST /api/graphql. It moves the
// identity and correlation id resolved by AuthMiddleware onto the execution
// context and runs the operation against the schema. Resolver errors come
// back in the standard errors array with a 200 status.
func NewGraphQLHandler(schema graphql.Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req GraphQLRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"errors": []gin.H{{"message": "Invalid request body: " + err.Error()}},
			})
			return
		}

		ctx := c.Request.Context()

		var actor *services.Actor
		if userID, exists := c.Get("userId"); exists {
			email, _ := c.Get("email")
			role, _ := c.Get("role")
			actor = &services.Actor{
				ID:    userID.(string),
				Email: email.(string),
				Role:  models.Role(role.(string)),
			}
		}
		ctx = gql.WithActor(ctx, actor)

		if corr, exists := c.Get("correlationId"); exists {
			ctx = gql.WithCorrelationID(ctx, corr.(string))
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			OperationName:  req.OperationName,
			VariableValues: req.Variables,
			Context:        ctx,
		})

		c.JSON(http.StatusOK, result)
	}
}
