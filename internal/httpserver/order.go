package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/internal/domain"
)

func listOrdersHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListForUser(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			jsonError(c, http.StatusInternalServerError, "failed to list orders")
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func getOrderHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, err := svc.Get(c.Request.Context(), currentUser(c).ID, c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				jsonError(c, http.StatusNotFound, "order not found")
				return
			}
			jsonError(c, http.StatusInternalServerError, "failed to load order")
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

func deleteOrderHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), currentUser(c).ID, c.Param("id")); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				jsonError(c, http.StatusNotFound, "order not found")
				return
			}
			jsonError(c, http.StatusInternalServerError, "failed to delete order")
			return
		}
		c.Status(http.StatusNoContent)
	}
}
