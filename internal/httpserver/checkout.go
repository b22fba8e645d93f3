package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"dulces-storefront/internal/domain"
	checkoutsvc "dulces-storefront/internal/service/checkout"
)

type checkoutView struct {
	Step    checkoutsvc.Step    `json:"step"`
	Data    domain.CheckoutData `json:"data"`
	Summary checkoutsvc.Summary `json:"summary"`
}

type deliveryMethodRequest struct {
	DeliveryMethod domain.DeliveryMethod `json:"deliveryMethod" binding:"required"`
}

func toCheckoutView(flow CheckoutFlow) checkoutView {
	return checkoutView{
		Step:    flow.Current(),
		Data:    flow.Data(),
		Summary: flow.Summary(),
	}
}

// checkoutErrStatus maps flow errors onto HTTP statuses: gating failures are
// unprocessable input, precondition and transition violations are conflicts.
func checkoutErrStatus(err error) int {
	switch {
	case errors.Is(err, checkoutsvc.ErrContactRequired),
		errors.Is(err, checkoutsvc.ErrAddressRequired),
		errors.Is(err, checkoutsvc.ErrUnknownDeliveryMethod):
		return http.StatusUnprocessableEntity
	case errors.Is(err, checkoutsvc.ErrEmptyCart),
		errors.Is(err, checkoutsvc.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func getCheckoutHandler(flow CheckoutFlow) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := flow.CanCheckout(); err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "redirect": "/"})
			return
		}
		c.JSON(http.StatusOK, toCheckoutView(flow))
	}
}

func setContactHandler(flow CheckoutFlow) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutsvc.ContactInput
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, err)
			return
		}
		flow.SetContact(c.Request.Context(), req)
		c.JSON(http.StatusOK, toCheckoutView(flow))
	}
}

func setDeliveryAddressHandler(flow CheckoutFlow) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req checkoutsvc.AddressInput
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, err)
			return
		}
		flow.SetDeliveryAddress(c.Request.Context(), req)
		c.JSON(http.StatusOK, toCheckoutView(flow))
	}
}

type savedAddressRequest struct {
	AddressID string `json:"addressId" binding:"required"`
}

func useSavedAddressHandler(flow CheckoutFlow, auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req savedAddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, errors.New("addressId required"))
			return
		}
		user, err := auth.Current(c.Request.Context())
		if err != nil {
			errorResponse(c, http.StatusUnauthorized, err)
			return
		}
		for _, addr := range user.Addresses {
			if addr.ID == req.AddressID {
				flow.UseSavedAddress(c.Request.Context(), addr)
				c.JSON(http.StatusOK, toCheckoutView(flow))
				return
			}
		}
		errorResponse(c, http.StatusNotFound, errors.New("address not found"))
	}
}

func setDeliveryMethodHandler(flow CheckoutFlow) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req deliveryMethodRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errorResponse(c, http.StatusBadRequest, errors.New("deliveryMethod required"))
			return
		}
		if err := flow.SetDeliveryMethod(c.Request.Context(), req.DeliveryMethod); err != nil {
			errorResponse(c, checkoutErrStatus(err), err)
			return
		}
		c.JSON(http.StatusOK, toCheckoutView(flow))
	}
}

func checkoutSummaryHandler(flow CheckoutFlow) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, flow.Summary())
	}
}

func checkoutNextHandler(flow CheckoutFlow) gin.HandlerFunc {
	return func(c *gin.Context) {
		step, err := flow.Next(c.Request.Context())
		if err != nil {
			errorResponse(c, checkoutErrStatus(err), err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"step": step})
	}
}

func checkoutBackHandler(flow CheckoutFlow) gin.HandlerFunc {
	return func(c *gin.Context) {
		step, err := flow.Back(c.Request.Context())
		if err != nil {
			if errors.Is(err, checkoutsvc.ErrExit) {
				c.JSON(http.StatusOK, gin.H{"step": step, "exited": true, "redirect": "/"})
				return
			}
			errorResponse(c, checkoutErrStatus(err), err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"step": step})
	}
}

func checkoutSubmitHandler(flow CheckoutFlow) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := flow.Submit(c.Request.Context())
		if err != nil {
			errorResponse(c, checkoutErrStatus(err), err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

func checkoutResetHandler(flow CheckoutFlow) gin.HandlerFunc {
	return func(c *gin.Context) {
		flow.Reset(c.Request.Context())
		c.JSON(http.StatusOK, toCheckoutView(flow))
	}
}
