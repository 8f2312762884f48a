package httpserver

import (
	"context"
	"errors"
	"log"
	"mime/multipart"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketplace/internal/domain"
	checkoutsvc "marketplace/internal/service/checkout"
	productsvc "marketplace/internal/service/product"
	usersvc "marketplace/internal/service/user"
)

type userService interface {
	Signup(ctx context.Context, in usersvc.SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	AccessTTLSeconds() int
}

type productService interface {
	List(ctx context.Context) ([]domain.Product, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, ownerID string, in productsvc.Input) (*domain.Product, error)
	Update(ctx context.Context, ownerID, id string, in productsvc.Input) (*domain.Product, error)
	Delete(ctx context.Context, ownerID, id string) error
	OverviewFor(ctx context.Context, ownerID string) (*productsvc.Overview, error)
}

type cartService interface {
	List(ctx context.Context, userID string) ([]domain.CartLine, error)
	Add(ctx context.Context, userID, productID string, quantity int) (*domain.CartLine, error)
	UpdateQuantity(ctx context.Context, userID, lineID string, quantity int) (*domain.CartLine, error)
	Remove(ctx context.Context, userID, lineID string) error
}

type checkoutService interface {
	Initiate(ctx context.Context, in checkoutsvc.InitiateInput) (string, error)
	Finalize(ctx context.Context, sessionID string) (string, error)
}

type orderService interface {
	ListForUser(ctx context.Context, userID string) ([]domain.Order, error)
	Get(ctx context.Context, userID, id string) (*domain.Order, error)
	Delete(ctx context.Context, userID, id string) error
}

type mediaStore interface {
	Save(file *multipart.FileHeader) (string, error)
}

// Deps bundles the services the router depends on.
type Deps struct {
	UserSvc     userService
	ProductSvc  productService
	CartSvc     cartService
	CheckoutSvc checkoutService
	OrderSvc    orderService
	Media       mediaStore
}

// Options carries router-level configuration.
type Options struct {
	CORSOrigins []string
	MediaDir    string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, opts Options) (*gin.Engine, error) {
	if deps.UserSvc == nil || deps.ProductSvc == nil || deps.CartSvc == nil || deps.CheckoutSvc == nil || deps.OrderSvc == nil {
		return nil, errors.New("httpserver: missing service dependency")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(opts.CORSOrigins) > 0 {
		corsCfg := cors.DefaultConfig()
		corsCfg.AllowOrigins = opts.CORSOrigins
		corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
		router.Use(cors.New(corsCfg))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	if opts.MediaDir != "" {
		router.Static("/media", opts.MediaDir)
	}

	router.POST("/signup", signupHandler(deps.UserSvc))
	router.POST("/login", loginHandler(deps.UserSvc))

	router.GET("/products", listProductsHandler(deps.ProductSvc))
	router.GET("/products/:id", getProductHandler(deps.ProductSvc))

	router.POST("/checkout", checkoutHandler(deps.CheckoutSvc, logger))
	router.POST("/checkout/success", checkoutSuccessHandler(deps.CheckoutSvc, logger))

	authed := router.Group("", authMiddleware(deps.UserSvc))
	authed.GET("/me", meHandler())

	buyer := authed.Group("", requireRole(domain.RoleBuyer))
	buyer.GET("/cart", listCartHandler(deps.CartSvc))
	buyer.POST("/cart", addCartHandler(deps.CartSvc))
	buyer.PATCH("/cart/:id", updateCartHandler(deps.CartSvc))
	buyer.DELETE("/cart/:id", removeCartHandler(deps.CartSvc))
	buyer.GET("/orders", listOrdersHandler(deps.OrderSvc))
	buyer.GET("/orders/:id", getOrderHandler(deps.OrderSvc))
	buyer.DELETE("/orders/:id", deleteOrderHandler(deps.OrderSvc))

	seller := authed.Group("/seller", requireRole(domain.RoleSeller))
	seller.GET("/products", sellerProductsHandler(deps.ProductSvc))
	seller.POST("/products", createProductHandler(deps.ProductSvc))
	seller.PUT("/products/:id", updateProductHandler(deps.ProductSvc))
	seller.DELETE("/products/:id", deleteProductHandler(deps.ProductSvc))
	seller.POST("/products/image", uploadImageHandler(deps.Media, logger))
	seller.GET("/overview", sellerOverviewHandler(deps.ProductSvc))

	return router, nil
}
