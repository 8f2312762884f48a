package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/internal/domain"
)

func listCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lines, err := svc.List(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			jsonError(c, http.StatusInternalServerError, "failed to load cart")
			return
		}
		c.JSON(http.StatusOK, lines)
	}
}

func addCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			ProductID string `json:"product_id"`
			Quantity  int    `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&in); err != nil || in.ProductID == "" {
			jsonError(c, http.StatusBadRequest, "product_id required")
			return
		}
		line, err := svc.Add(c.Request.Context(), currentUser(c).ID, in.ProductID, in.Quantity)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				jsonError(c, http.StatusNotFound, "product not found")
				return
			}
			jsonError(c, http.StatusBadRequest, err.Error())
			return
		}
		c.JSON(http.StatusCreated, line)
	}
}

func updateCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Quantity int `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			jsonError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		line, err := svc.UpdateQuantity(c.Request.Context(), currentUser(c).ID, c.Param("id"), in.Quantity)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				jsonError(c, http.StatusNotFound, "cart line not found")
				return
			}
			jsonError(c, http.StatusBadRequest, err.Error())
			return
		}
		c.JSON(http.StatusOK, line)
	}
}

func removeCartHandler(svc cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Remove(c.Request.Context(), currentUser(c).ID, c.Param("id")); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				jsonError(c, http.StatusNotFound, "cart line not found")
				return
			}
			jsonError(c, http.StatusInternalServerError, "failed to remove cart line")
			return
		}
		c.Status(http.StatusNoContent)
	}
}
