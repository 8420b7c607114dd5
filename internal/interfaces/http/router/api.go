package router

import (
	"net/http"

	"github.com/foodhub/backend/internal/infrastructure/cache"
	"github.com/foodhub/backend/internal/infrastructure/logger"
	"github.com/foodhub/backend/internal/interfaces/http/dto"
	"github.com/foodhub/backend/internal/interfaces/http/handler"
	"github.com/foodhub/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// Config holds the cross-cutting dependencies of the API engine
type Config struct {
	Logger         *zap.Logger
	Authenticator  middleware.Authenticator
	Idempotency    *cache.IdempotencyStore
	Meter          metric.Meter
	Tracing        middleware.TracingConfig
	CORS           middleware.CORSConfig
	Security       middleware.SecurityConfig
	TrustedProxies []string
	BodyLimit      int64
}

// Handlers groups the API handlers
type Handlers struct {
	Auth        *handler.AuthHandler
	Restaurants *handler.RestaurantHandler
	Orders      *handler.OrderHandler
	Reviews     *handler.ReviewHandler
	Cart        *handler.CartHandler
	Merchant    *handler.MerchantHandler
	Health      *handler.HealthHandler
}

// NewEngine builds the gin engine with the middleware chain and every route
func NewEngine(cfg Config, h Handlers) (*gin.Engine, error) {
	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, err
	}
	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = middleware.DefaultBodyLimit
	}
	middleware.SetupValidator()

	engine.Use(
		logger.Recovery(cfg.Logger),
		middleware.RequestID(),
		middleware.TracingWithConfig(cfg.Tracing),
		middleware.SpanErrorMarker(),
		logger.GinMiddleware(cfg.Logger),
		middleware.HTTPMetrics(cfg.Meter),
		middleware.SecureWithConfig(cfg.Security),
		middleware.CORSWithConfig(cfg.CORS),
		middleware.BodyLimit(cfg.BodyLimit),
	)
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrCodeRouteNotFound, "Route not found", middleware.GetRequestID(c)))
	})
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.NewErrorResponse(dto.ErrCodeMethodNotAllowed, "Method not allowed", middleware.GetRequestID(c)))
	})

	engine.GET("/health", h.Health.Health)

	// Swagger documentation endpoint
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	NewRouter(engine).
		Register(apiGroups(cfg, h)...).
		Setup()
	return engine, nil
}

func apiGroups(cfg Config, h Handlers) []RouteRegistrar {
	requireAuth := middleware.RequireAuth(cfg.Authenticator)
	traceUser := middleware.TracingAttributeInjector()
	idempotent := middleware.Idempotency(cfg.Idempotency)

	auth := NewDomainGroup("auth", "/auth").
		POST("/register", h.Auth.Register).
		POST("/login", h.Auth.Login).
		POST("/refresh", h.Auth.Refresh).
		POST("/logout", requireAuth, traceUser, h.Auth.Logout).
		GET("/profile", requireAuth, traceUser, h.Auth.Profile)

	restaurants := NewDomainGroup("restaurants", "/restaurants").
		GET("", h.Restaurants.List).
		GET("/:restaurantId", h.Restaurants.Get).
		GET("/:restaurantId/menu", h.Restaurants.Menu)

	orders := NewDomainGroup("orders", "/orders").
		Use(requireAuth, traceUser).
		POST("", idempotent, h.Orders.Create).
		GET("", h.Orders.ListMine)

	reviews := NewDomainGroup("reviews", "/reviews").
		Use(requireAuth, traceUser).
		POST("", h.Reviews.Submit)

	cart := NewDomainGroup("cart", "/cart").
		Use(requireAuth, traceUser).
		GET("", h.Cart.View).
		DELETE("", h.Cart.Clear).
		POST("/items", h.Cart.AddItem).
		PUT("/items/:itemId", h.Cart.UpdateItem).
		DELETE("/items/:itemId", h.Cart.RemoveItem).
		POST("/checkout", idempotent, h.Cart.Checkout)

	merchant := NewDomainGroup("merchant", "/merchant").
		Use(requireAuth, traceUser, middleware.RequireMerchant()).
		GET("/restaurant", h.Merchant.GetRestaurant).
		POST("/restaurant", h.Merchant.CreateRestaurant).
		PUT("/restaurant", h.Merchant.UpdateRestaurant).
		GET("/menu", h.Merchant.ListMenu).
		POST("/menu", h.Merchant.CreateMenuItem).
		PUT("/menu/:itemId", h.Merchant.UpdateMenuItem).
		DELETE("/menu/:itemId", h.Merchant.DeleteMenuItem).
		GET("/orders", h.Merchant.ListOrders).
		PUT("/orders/:orderId/status", h.Merchant.UpdateOrderStatus).
		GET("/reviews", h.Merchant.ListReviews).
		GET("/stats", h.Merchant.Stats)

	return []RouteRegistrar{auth, restaurants, orders, reviews, cart, merchant}
}
