package main

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/ecommerce-platform/internal/config"
	"github.com/MikeMC777/ecommerce-platform/internal/httpx"
	"github.com/MikeMC777/ecommerce-platform/internal/order"
	"github.com/MikeMC777/ecommerce-platform/internal/product"
)

func newRouter(cfg config.Config, log *slog.Logger, products *product.Service, orders *order.Service) *gin.Engine {
	r := gin.New()
	r.Use(httpx.RequestID(), httpx.Logger(log), httpx.Recovery())

	// Root stays open; everything under the version prefix is keyed.
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"app":     "Ecommerce Platform",
			"version": "1.0",
			"status":  "Ok",
		})
	})

	v1 := r.Group("/v1/ecommerce", httpx.APIKey(cfg.APIKey))
	v1.GET("/products", listProductsHandler(products))
	v1.POST("/products", createProductHandler(products))
	v1.POST("/orders", createOrderHandler(orders))
	v1.GET("/orders/:id", getOrderHandler(orders))
	return r
}
