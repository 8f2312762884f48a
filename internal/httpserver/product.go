package httpserver

import (
	"errors"
	"log"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace/internal/domain"
	productsvc "marketplace/internal/service/product"
)

// productRequest is the seller-facing product payload. Price arrives as
// a decimal amount and is converted to cents before it reaches storage.
type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Currency    string  `json:"currency"`
	ImageURL    string  `json:"image_url"`
	Stock       int     `json:"stock"`
}

func (r productRequest) toInput() productsvc.Input {
	return productsvc.Input{
		Name:        r.Name,
		Description: r.Description,
		PriceCents:  int64(math.Round(r.Price * 100)),
		Currency:    r.Currency,
		ImageURL:    r.ImageURL,
		Stock:       r.Stock,
	}
}

func listProductsHandler(svc productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.List(c.Request.Context())
		if err != nil {
			jsonError(c, http.StatusInternalServerError, "failed to list products")
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func getProductHandler(svc productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				jsonError(c, http.StatusNotFound, "product not found")
				return
			}
			jsonError(c, http.StatusInternalServerError, "failed to load product")
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func sellerProductsHandler(svc productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.ListByOwner(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			jsonError(c, http.StatusInternalServerError, "failed to list products")
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func createProductHandler(svc productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			jsonError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		p, err := svc.Create(c.Request.Context(), currentUser(c).ID, req.toInput())
		if err != nil {
			jsonError(c, http.StatusBadRequest, err.Error())
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

func updateProductHandler(svc productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			jsonError(c, http.StatusBadRequest, "invalid request body")
			return
		}
		p, err := svc.Update(c.Request.Context(), currentUser(c).ID, c.Param("id"), req.toInput())
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				jsonError(c, http.StatusNotFound, "product not found")
				return
			}
			jsonError(c, http.StatusBadRequest, err.Error())
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func deleteProductHandler(svc productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), currentUser(c).ID, c.Param("id")); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				jsonError(c, http.StatusNotFound, "product not found")
				return
			}
			jsonError(c, http.StatusInternalServerError, "failed to delete product")
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func uploadImageHandler(media mediaStore, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if media == nil {
			jsonError(c, http.StatusServiceUnavailable, "media storage not configured")
			return
		}
		file, err := c.FormFile("image")
		if err != nil {
			jsonError(c, http.StatusBadRequest, "image file required")
			return
		}
		url, err := media.Save(file)
		if err != nil {
			logger.Printf("media: save %s err=%v", file.Filename, err)
			jsonError(c, http.StatusBadRequest, err.Error())
			return
		}
		c.JSON(http.StatusCreated, gin.H{"url": url})
	}
}

func sellerOverviewHandler(svc productService) gin.HandlerFunc {
	return func(c *gin.Context) {
		overview, err := svc.OverviewFor(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			jsonError(c, http.StatusInternalServerError, "failed to build overview")
			return
		}
		c.JSON(http.StatusOK, overview)
	}
}
