package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dulces-storefront/internal/domain"
)

func listProductsHandler(catalog CatalogProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Query("new") == "1" {
			c.JSON(http.StatusOK, productList(catalog.NewArrivals()))
			return
		}
		if raw := c.Query("category"); raw != "" {
			cat := domain.Category(raw)
			if !cat.Valid() {
				errorResponse(c, http.StatusBadRequest, errors.New("unknown category"))
				return
			}
			c.JSON(http.StatusOK, productList(catalog.ByCategory(cat)))
			return
		}
		c.JSON(http.StatusOK, productList(catalog.List()))
	}
}

func getProductHandler(catalog CatalogProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := catalog.Get(c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				errorResponse(c, http.StatusNotFound, errors.New("product not found"))
				return
			}
			errorResponse(c, http.StatusInternalServerError, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func productList(products []domain.Product) []domain.Product {
	if products == nil {
		return []domain.Product{}
	}
	return products
}
