package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes registers the diagnostic API under rg.
//
// Endpoints:
//
//	POST /v1/cycle            compute a cycle state
//	POST /v1/diagnose         full diagnostic report
//	POST /v1/diagnose/batch   reports for many readings
//	GET  /v1/refrigerants     refrigerant catalog
//	GET  /v1/signatures       fault signature catalog
//	GET  /v1/health           liveness and catalog sizes
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	v1 := rg.Group("/v1")
	{
		v1.POST("/cycle", handlers.HandleCycle)
		v1.POST("/diagnose", handlers.HandleDiagnose)
		v1.POST("/diagnose/batch", handlers.HandleDiagnoseBatch)

		v1.GET("/refrigerants", handlers.HandleRefrigerants)
		v1.GET("/signatures", handlers.HandleSignatures)

		v1.GET("/health", handlers.HandleHealth)
	}
}

// NewRouter builds the gin engine with the API and /metrics.
func NewRouter(handlers *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestIDMiddleware())

	RegisterRoutes(&router.RouterGroup, handlers)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
