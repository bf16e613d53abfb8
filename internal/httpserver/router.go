package httpserver

import (
	"log"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsAllowOrigins string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(corsConfig(corsAllowOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := &cartHandler{svc: deps.CartSvc}
	api := router.Group("/cart/user/:userID")
	{
		api.GET("", h.getCart)
		api.DELETE("", h.clearCart)
		api.POST("/product/:productID", h.addProduct)
		api.DELETE("/product/:productID", h.removeProduct)
		api.PUT("/product/:productID", h.changeQuantity)
	}

	return router
}

func corsConfig(allowOrigins string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	if allowOrigins == "" || allowOrigins == "*" {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = strings.Split(allowOrigins, ",")
	return cfg
}
