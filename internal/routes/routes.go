package routes

import (
	"financeflow_backend/internal/handlers"
	"financeflow_backend/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes wires the API, health, metrics and swagger endpoints.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers, checks HealthChecks) {
	ginRouter.GET("/health", HealthHandler(checks))
	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))
	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.ProfileHandler.RegisterRoutes(api)
		appHandlers.PlanHandler.RegisterRoutes(api)
		appHandlers.ApplicationHandler.RegisterRoutes(api)
		appHandlers.AdviceHandler.RegisterRoutes(api)
		appHandlers.ContactHandler.RegisterRoutes(api)
		appHandlers.AdminHandler.RegisterRoutes(api)
	}

	logger.Info("routes registered", "count", len(ginRouter.Routes()))
}
