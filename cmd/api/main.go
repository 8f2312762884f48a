package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"

	"marketplace/internal/config"
	"marketplace/internal/db"
	"marketplace/internal/events"
	"marketplace/internal/httpserver"
	"marketplace/internal/media"
	"marketplace/internal/payment"
	cartrepo "marketplace/internal/repository/cart"
	checkoutrepo "marketplace/internal/repository/checkout"
	orderrepo "marketplace/internal/repository/order"
	productrepo "marketplace/internal/repository/product"
	tokenrepo "marketplace/internal/repository/token"
	userrepo "marketplace/internal/repository/user"
	cartsvc "marketplace/internal/service/cart"
	checkoutsvc "marketplace/internal/service/checkout"
	ordersvc "marketplace/internal/service/order"
	productsvc "marketplace/internal/service/product"
	usersvc "marketplace/internal/service/user"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	userRepo := userrepo.NewPostgres(dbpool, logger)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)
	checkoutRepo := checkoutrepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)

	userService := usersvc.New(userRepo, tokenRepo)
	productService := productsvc.New(productRepo, orderRepo)
	cartService := cartsvc.New(cartRepo, productRepo)
	orderService := ordersvc.New(orderRepo)

	var publisher *events.Publisher
	if cfg.AMQPURL != "" {
		conn, err := amqp.Dial(cfg.AMQPURL)
		if err != nil {
			logger.Fatalf("connect to amqp: %v", err)
		}
		defer conn.Close()
		publisher, err = events.NewPublisher(conn)
		if err != nil {
			logger.Fatalf("init publisher: %v", err)
		}
		defer publisher.Close()
	} else {
		logger.Println("AMQP_URL not set, order events disabled")
	}

	checkoutService := checkoutsvc.New(
		payment.NewStripe(cfg.StripeSecretKey),
		checkoutRepo,
		orderRepo,
		cartRepo,
		checkoutPublisher(publisher),
		cfg.SiteURL,
		logger,
	)

	mediaStore, err := media.NewStore(cfg.MediaDir, cfg.MediaURLHost)
	if err != nil {
		logger.Fatalf("init media store: %v", err)
	}

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		UserSvc:     userService,
		ProductSvc:  productService,
		CartSvc:     cartService,
		CheckoutSvc: checkoutService,
		OrderSvc:    orderService,
		Media:       mediaStore,
	}, httpserver.Options{
		CORSOrigins: cfg.CORSOrigins,
		MediaDir:    mediaStore.Dir(),
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}

// checkoutPublisher keeps the checkout service's publisher interface nil
// when no broker is configured, instead of a non-nil interface holding a
// nil *events.Publisher.
func checkoutPublisher(p *events.Publisher) checkoutsvc.OrderPublisher {
	if p == nil {
		return nil
	}
	return p
}
