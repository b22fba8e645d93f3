package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dulces-storefront/internal/domain"
)

type cartView struct {
	Items  []domain.CartItem `json:"items"`
	Total  int64             `json:"cartTotal"`
	Count  int               `json:"cartCount"`
	IsOpen bool              `json:"isCartOpen"`
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

type setOpenRequest struct {
	Open bool `json:"open"`
}

func toCartView(cart CartStore) cartView {
	items := cart.Items()
	if items == nil {
		items = []domain.CartItem{}
	}
	return cartView{
		Items:  items,
		Total:  cart.Total(),
		Count:  cart.Count(),
		IsOpen: cart.IsOpen(),
	}
}

func getCartHandler(cart CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, toCartView(cart))
	}
}

func addCartItemHandler(cart CartStore, catalog CatalogProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, errors.New("productId required"))
			return
		}
		product, err := catalog.Get(req.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				errorResponse(c, http.StatusNotFound, errors.New("product not found"))
				return
			}
			errorResponse(c, http.StatusInternalServerError, err)
			return
		}
		cart.Add(c.Request.Context(), *product)
		c.JSON(http.StatusCreated, toCartView(cart))
	}
}

func updateCartItemHandler(cart CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, errors.New("quantity required"))
			return
		}
		cart.UpdateQuantity(c.Request.Context(), c.Param("id"), req.Quantity)
		c.JSON(http.StatusOK, toCartView(cart))
	}
}

func removeCartItemHandler(cart CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart.Remove(c.Request.Context(), c.Param("id"))
		c.JSON(http.StatusOK, toCartView(cart))
	}
}

func clearCartHandler(cart CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart.Clear(c.Request.Context())
		c.JSON(http.StatusOK, toCartView(cart))
	}
}

func setCartOpenHandler(cart CartStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req setOpenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, errors.New("open flag required"))
			return
		}
		cart.SetOpen(req.Open)
		c.JSON(http.StatusOK, toCartView(cart))
	}
}
