// Package api wires the HTTP surface of the service: gin routes, request
// DTOs, middleware and error mapping. All allocation rules live in the
// engine; this layer only binds, delegates and renders.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/quicksplit/internal/auth"
	"github.com/mmynk/quicksplit/internal/metrics"
	"github.com/mmynk/quicksplit/internal/service"
)

// NewRouter builds the gin engine with all routes registered.
func NewRouter(svc *service.ReceiptService, authn auth.Authenticator, jwtManager *auth.JWTManager) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(), Metrics())

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := r.Group("/v1")
	v1.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	authHandlers := NewAuthHandlers(authn, jwtManager)
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandlers.Register)
	authGroup.POST("/login", authHandlers.Login)

	receiptHandlers := NewReceiptHandlers(svc)
	receipts := v1.Group("/receipts", RequireAuth(jwtManager))
	receipts.POST("", receiptHandlers.Create)
	receipts.GET("", receiptHandlers.List)
	receipts.GET("/:id", receiptHandlers.Get)
	receipts.DELETE("/:id", receiptHandlers.Delete)
	receipts.PUT("/:id/config", receiptHandlers.UpdateConfig)

	receipts.POST("/:id/items", receiptHandlers.AddItem)
	receipts.POST("/:id/items/import", receiptHandlers.ImportItems)
	receipts.DELETE("/:id/items/:itemID", receiptHandlers.RemoveItem)
	receipts.PUT("/:id/items/:itemID/claims", receiptHandlers.ShareItem)
	receipts.DELETE("/:id/claims/:claimID", receiptHandlers.RemoveClaim)

	receipts.POST("/:id/participants", receiptHandlers.AddParticipant)
	receipts.PATCH("/:id/participants/:participantID", receiptHandlers.RenameParticipant)
	receipts.DELETE("/:id/participants/:participantID", receiptHandlers.RemoveParticipant)
	receipts.GET("/:id/participants/:participantID/total", receiptHandlers.ParticipantTotal)
	receipts.GET("/:id/splits", receiptHandlers.Splits)

	return r
}
