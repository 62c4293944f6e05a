package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	addressControllers "github.com/sn0wstorm20202/blinkit-clone/controllers/address"
	cartControllers "github.com/sn0wstorm20202/blinkit-clone/controllers/cart"
	eventControllers "github.com/sn0wstorm20202/blinkit-clone/controllers/events"
	orderControllers "github.com/sn0wstorm20202/blinkit-clone/controllers/order"
	userControllers "github.com/sn0wstorm20202/blinkit-clone/controllers/user"
	voiceControllers "github.com/sn0wstorm20202/blinkit-clone/controllers/voice"
	"github.com/sn0wstorm20202/blinkit-clone/middleware"
	"github.com/sn0wstorm20202/blinkit-clone/voice"
)

// SetupAccountRoutes registers every session-protected "/api/*" endpoint:
// profile, addresses, cart, orders, the voice agent, and the cart event
// websocket.
func SetupAccountRoutes(r *gin.Engine, db *gorm.DB, agent *voice.Agent, dispatcher *voice.Dispatcher, limiter voice.Limiter) {
	api := r.Group("/api")
	api.Use(middleware.RequireSession(db))
	{
		// ──────────────── Profile ────────────────
		api.GET("/me", userControllers.GetMe(db))    // GET /api/me
		api.PUT("/me", userControllers.UpdateMe(db)) // PUT /api/me

		// ──────────────── Address Book ────────────────
		addressGroup := api.Group("/addresses")
		{
			addressGroup.GET("", addressControllers.ListHandler(db))
			addressGroup.POST("", addressControllers.CreateHandler(db))
			addressGroup.PUT("/:id", addressControllers.UpdateHandler(db))
			addressGroup.DELETE("/:id", addressControllers.DeleteHandler(db))
			addressGroup.PUT("/:id/set-default", addressControllers.SetDefaultHandler(db))
		}

		// ──────────────── Shopping Cart ────────────────
		cartGroup := api.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetCartHandler(db))
			cartGroup.DELETE("", cartControllers.ClearCartHandler(db))
			cartGroup.POST("/items", cartControllers.AddItemHandler(db))
			cartGroup.PUT("/items/:id", cartControllers.UpdateItemQuantityHandler(db))
			cartGroup.DELETE("/items/:id", cartControllers.RemoveItemHandler(db))
		}

		// ──────────────── Orders ────────────────
		orderGroup := api.Group("/orders")
		{
			orderGroup.GET("", orderControllers.ListOrdersHandler(db))
			orderGroup.POST("", orderControllers.PlaceOrderHandler(db))
			orderGroup.GET("/:id", orderControllers.GetOrderHandler(db))
		}

		// ──────────────── Voice Agent ────────────────
		api.POST("/voice-agent", voiceControllers.VoiceAgentHandler(agent, dispatcher, limiter)) // POST /api/voice-agent

		// ──────────────── Cart Events ────────────────
		api.GET("/ws", eventControllers.DefaultHub.Handler) // GET /api/ws
	}
}
