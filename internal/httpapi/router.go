// Package httpapi exposes the retrieval service over HTTP using gin.
package httpapi

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter assembles the gin engine with recovery, request IDs, and
// request logging, and mounts all API routes.
func NewRouter(handler *Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(logger))

	router.GET("/", handler.Info)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handler.Health)
		v1.GET("/shipments", handler.Shipments)
		v1.GET("/purchase-orders", handler.PurchaseOrders)
		v1.GET("/inventory", handler.Inventory)
		v1.GET("/dates/available", handler.AvailableDates)
	}

	return router
}
