package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"dulces-storefront/internal/domain"
	checkoutsvc "dulces-storefront/internal/service/checkout"
)

// CatalogProvider is the read-only product list.
type CatalogProvider interface {
	List() []domain.Product
	Get(id string) (*domain.Product, error)
	ByCategory(cat domain.Category) []domain.Product
	NewArrivals() []domain.Product
}

// CartStore is the cart owned by the storefront session.
type CartStore interface {
	Add(ctx context.Context, product domain.Product)
	Remove(ctx context.Context, productID string)
	UpdateQuantity(ctx context.Context, productID string, quantity int)
	Clear(ctx context.Context)
	Items() []domain.CartItem
	Total() int64
	Count() int
	IsOpen() bool
	SetOpen(open bool)
}

// CheckoutFlow is the step machine behind the checkout endpoints.
type CheckoutFlow interface {
	Current() checkoutsvc.Step
	Data() domain.CheckoutData
	Summary() checkoutsvc.Summary
	CanCheckout() error
	SetContact(ctx context.Context, in checkoutsvc.ContactInput)
	SetDeliveryAddress(ctx context.Context, in checkoutsvc.AddressInput)
	UseSavedAddress(ctx context.Context, addr domain.Address)
	SetDeliveryMethod(ctx context.Context, m domain.DeliveryMethod) error
	Next(ctx context.Context) (checkoutsvc.Step, error)
	Back(ctx context.Context) (checkoutsvc.Step, error)
	Submit(ctx context.Context) (*domain.Order, error)
	Reset(ctx context.Context)
}

// AuthService is the mock identity collaborator.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
	LoginAsGuest(ctx context.Context) *domain.User
	Logout(ctx context.Context)
	Current(ctx context.Context) (*domain.User, error)
	RequestReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

// Deps carries the collaborators handlers need.
type Deps struct {
	Catalog  CatalogProvider
	Cart     CartStore
	Checkout CheckoutFlow
	Auth     AuthService
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *zap.SugaredLogger, deps Deps, allowedOrigins []string) (*gin.Engine, error) {
	switch {
	case deps.Catalog == nil:
		return nil, errors.New("catalog dependency required")
	case deps.Cart == nil:
		return nil, errors.New("cart dependency required")
	case deps.Checkout == nil:
		return nil, errors.New("checkout dependency required")
	case deps.Auth == nil:
		return nil, errors.New("auth dependency required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)

	api := router.Group("/api")
	{
		api.GET("/products", listProductsHandler(deps.Catalog))
		api.GET("/products/:id", getProductHandler(deps.Catalog))

		api.GET("/cart", getCartHandler(deps.Cart))
		api.POST("/cart/items", addCartItemHandler(deps.Cart, deps.Catalog))
		api.PUT("/cart/items/:id", updateCartItemHandler(deps.Cart))
		api.DELETE("/cart/items/:id", removeCartItemHandler(deps.Cart))
		api.DELETE("/cart", clearCartHandler(deps.Cart))
		api.PUT("/cart/open", setCartOpenHandler(deps.Cart))

		api.GET("/checkout", getCheckoutHandler(deps.Checkout))
		api.PUT("/checkout/contact", setContactHandler(deps.Checkout))
		api.PUT("/checkout/delivery", setDeliveryAddressHandler(deps.Checkout))
		api.PUT("/checkout/delivery/saved", useSavedAddressHandler(deps.Checkout, deps.Auth))
		api.PUT("/checkout/delivery-method", setDeliveryMethodHandler(deps.Checkout))
		api.GET("/checkout/summary", checkoutSummaryHandler(deps.Checkout))
		api.POST("/checkout/next", checkoutNextHandler(deps.Checkout))
		api.POST("/checkout/back", checkoutBackHandler(deps.Checkout))
		api.POST("/checkout/submit", checkoutSubmitHandler(deps.Checkout))
		api.POST("/checkout/reset", checkoutResetHandler(deps.Checkout))

		api.POST("/auth/login", loginHandler(deps.Auth))
		api.POST("/auth/register", registerHandler(deps.Auth))
		api.POST("/auth/guest", guestHandler(deps.Auth))
		api.POST("/auth/logout", logoutHandler(deps.Auth))
		api.GET("/auth/me", meHandler(deps.Auth))
		api.POST("/auth/reset/request", requestResetHandler(deps.Auth))
		api.POST("/auth/reset/confirm", confirmResetHandler(deps.Auth))
	}

	return router, nil
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func requestLogger(logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Infow("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func errorResponse(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}
