package controllers

import (
	"hotel/dto"
	"hotel/response"
	"hotel/services/logger"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
)

type GraphQLController struct {
	schema graphql.Schema
	log    logger.Logger
}

func NewGraphQLController(schema graphql.Schema, log logger.Logger) *GraphQLController {
	if log == nil {
		log = logger.NewNop()
	}
	return &GraphQLController{schema: schema, log: log}
}

// Execute runs one GraphQL operation. Operation errors travel in the body
// with status 200, as GraphQL-over-HTTP expects.
func (gc *GraphQLController) Execute(c *gin.Context) {
	var req dto.GraphQLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		gc.log.Debug("malformed graphql request", map[string]interface{}{"error": err.Error()})
		response.ValidationError(c)
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         gc.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        c.Request.Context(),
	})
	response.Success(c, result)
}
