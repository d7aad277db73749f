package routes

import (
	"net/http"

	"hotel/controllers"
	middlewares "hotel/middleware"
	"hotel/models"
	"hotel/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(router *gin.Engine, tokens services.TokenIssuer, graphqlController *controllers.GraphQLController, notificationController *controllers.NotificationController) {
	router.Use(middlewares.RequestIDMiddleware(), middlewares.MetricsMiddleware())

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := middlewares.AuthMiddleware(tokens)
	router.POST("/graphql", auth, graphqlController.Execute)
	router.GET("/ws", auth, middlewares.RoleMiddleware(models.RoleAdmin), notificationController.Subscribe)
}
