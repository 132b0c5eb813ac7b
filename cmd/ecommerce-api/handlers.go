package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MikeMC777/ecommerce-platform/internal/httpx"
	"github.com/MikeMC777/ecommerce-platform/internal/order"
	"github.com/MikeMC777/ecommerce-platform/internal/product"
)

// queryInt parses an int query param, reporting range violations in the
// field-path message format.
func queryInt(c *gin.Context, name string, def, min, max int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("Field %q - must be an integer", name)
	}
	if v < min || v > max {
		return 0, fmt.Errorf("Field %q - must be between %d and %d", name, min, max)
	}
	return v, nil
}

func listProductsHandler(svc *product.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		const maxInt = int(^uint(0) >> 1)
		skip, err := queryInt(c, "skip", 0, 0, maxInt)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpx.Envelope{StatusCode: http.StatusBadRequest, Message: err.Error()})
			return
		}
		limit, err := queryInt(c, "limit", 10, 1, 100)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpx.Envelope{StatusCode: http.StatusBadRequest, Message: err.Error()})
			return
		}

		products, err := svc.List(c.Request.Context(), skip, limit)
		switch {
		case errors.Is(err, product.ErrNoProducts):
			c.JSON(http.StatusNotFound, httpx.Envelope{
				StatusCode: http.StatusNotFound,
				Message:    err.Error(),
			})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "Internal server error",
				"detail":  err.Error(),
			})
		default:
			out := make([]product.Response, 0, len(products))
			for i := range products {
				out = append(out, products[i].Response())
			}
			c.JSON(http.StatusOK, out)
		}
	}
}

func createProductHandler(svc *product.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req product.CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, httpx.Envelope{
				StatusCode: http.StatusBadRequest,
				Message:    httpx.BindingMessage(err),
			})
			return
		}
		p, err := svc.Create(c.Request.Context(), req)
		switch {
		case errors.Is(err, product.ErrInvalidPrice), errors.Is(err, product.ErrInvalidStock):
			c.JSON(http.StatusBadRequest, httpx.Envelope{
				StatusCode: http.StatusBadRequest,
				Message:    err.Error(),
			})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "Internal server error",
				"detail":  err.Error(),
			})
		default:
			c.JSON(http.StatusOK, p.Response())
		}
	}
}

func createOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req order.CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, httpx.Envelope{
				StatusCode: http.StatusBadRequest,
				Message:    httpx.BindingMessage(err),
			})
			return
		}

		o, lines, err := svc.Place(c.Request.Context(), req)
		var invalid *order.InvalidOrderError
		var persistence *order.PersistenceError
		switch {
		case errors.Is(err, order.ErrEmptyOrder):
			c.JSON(http.StatusBadRequest, httpx.Envelope{
				StatusCode: http.StatusBadRequest,
				Message:    err.Error(),
			})
		case errors.As(err, &invalid):
			c.JSON(http.StatusBadRequest, httpx.Envelope{
				StatusCode:     http.StatusBadRequest,
				Message:        invalid.Error(),
				RequestPayload: invalid.Payload,
				Errors:         invalid.Errors,
			})
		case errors.As(err, &persistence):
			c.JSON(http.StatusInternalServerError, httpx.Envelope{
				StatusCode: http.StatusInternalServerError,
				Message:    "An error occurred while processing the order",
				Errors:     []string{persistence.Err.Error()},
			})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "Internal server error",
				"detail":  err.Error(),
			})
		default:
			c.JSON(http.StatusOK, order.Response{
				ID:         o.ID,
				TotalPrice: o.TotalPrice,
				Status:     o.Status,
				Products:   lines,
			})
		}
	}
}

func getOrderHandler(svc *order.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, httpx.Envelope{
				StatusCode: http.StatusBadRequest,
				Message:    `Field "id" - must be an integer`,
			})
			return
		}
		o, lines, err := svc.Get(c.Request.Context(), id)
		switch {
		case errors.Is(err, order.ErrNotFound):
			c.JSON(http.StatusNotFound, httpx.Envelope{
				StatusCode: http.StatusNotFound,
				Message:    "Order not found",
			})
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "Internal server error",
				"detail":  err.Error(),
			})
		default:
			c.JSON(http.StatusOK, order.Response{
				ID:         o.ID,
				TotalPrice: o.TotalPrice,
				Status:     o.Status,
				Products:   lines,
			})
		}
	}
}
