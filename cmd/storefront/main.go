package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	cartservice "github.com/TheMiningKing/crypto-shopping-cart/internal/cart/service"
	"github.com/TheMiningKing/crypto-shopping-cart/internal/cart/session"
	catalogrepo "github.com/TheMiningKing/crypto-shopping-cart/internal/catalog/repository"
	checkoutservice "github.com/TheMiningKing/crypto-shopping-cart/internal/checkout/service"
	h "github.com/TheMiningKing/crypto-shopping-cart/internal/http"
	"github.com/TheMiningKing/crypto-shopping-cart/internal/mailer"
	"github.com/TheMiningKing/crypto-shopping-cart/internal/orders/publisher"
	ordersrepo "github.com/TheMiningKing/crypto-shopping-cart/internal/orders/repository"
	"github.com/TheMiningKing/crypto-shopping-cart/pkg/currency"
	"github.com/TheMiningKing/crypto-shopping-cart/pkg/logger"
)

type Config struct {
	Env      string
	HTTPPort string

	MongoURI string
	MongoDB  string

	RedisAddr string

	PostgresHost     string
	PostgresPort     int
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	MigrationsPath   string

	KafkaBrokers []string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPUseTLS   bool

	VendorEmail       string
	ImagesDir         string
	PreferredCurrency string
	ResetPaidCarts    bool

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		Env:      getEnv("ENV", "development"),
		HTTPPort: getEnv("HTTP_PORT", "8080"),

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "crypto_shopping_cart"),

		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnvInt("POSTGRES_PORT", 5432),
		PostgresUser:     getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getEnv("POSTGRES_DB", "orders"),
		MigrationsPath:   getEnv("MIGRATIONS_PATH", "migrations"),

		KafkaBrokers: []string{getEnv("KAFKA_BROKERS", "localhost:9092")},

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnvInt("SMTP_PORT", 25),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:   getEnvBool("SMTP_USE_TLS", false),

		VendorEmail:       getEnv("VENDOR_EMAIL", "vendor@localhost"),
		ImagesDir:         getEnv("IMAGES_DIR", "public/images/products"),
		PreferredCurrency: getEnv("PREFERRED_CURRENCY", "ETH"),
		ResetPaidCarts:    getEnvBool("RESET_PAID_CARTS", false),

		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Catalog (MongoDB)
	mongoDB, err := catalogrepo.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		zlog.Fatal("mongodb connect", zap.Error(err))
	}
	defer mongoDB.Client().Disconnect(context.Background())

	catalog := catalogrepo.NewMongoRepository(mongoDB)

	// Cart sessions (Redis)
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		zlog.Fatal("redis connect", zap.Error(err))
	}
	defer redisClient.Close()

	ledger := cartservice.NewLedger(currency.Display)
	carts := session.NewManager(session.NewRedisStore(redisClient), ledger, cfg.PreferredCurrency)

	// Order archive (Postgres)
	pgCred := &ordersrepo.Credentials{
		Host:              cfg.PostgresHost,
		Port:              cfg.PostgresPort,
		User:              cfg.PostgresUser,
		Password:          cfg.PostgresPassword,
		DBName:            cfg.PostgresDB,
		MigrationsDirPath: cfg.MigrationsPath,
	}
	archive, err := ordersrepo.NewRepository(pgCred)
	if err != nil {
		zlog.Fatal("postgres connect", zap.Error(err))
	}
	defer archive.Close()

	if err := archive.RunMigrations(pgCred); err != nil {
		zlog.Fatal("postgres migrations", zap.Error(err))
	}

	// Order events (Kafka)
	events := publisher.NewPublisher(cfg.KafkaBrokers...)
	defer events.Close()

	// Notifications (SMTP)
	sender, err := mailer.NewSMTPSender(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		UseTLS:   cfg.SMTPUseTLS,
	})
	if err != nil {
		zlog.Fatal("smtp client", zap.Error(err))
	}

	notifier := mailer.New(sender, catalog, cfg.VendorEmail, cfg.ImagesDir, zlog)

	coordinator := checkoutservice.NewCoordinator(
		ledger,
		checkoutservice.NewValidator(checkoutservice.DefaultFieldConfig()),
		notifier,
		checkoutservice.Policy{ResetPaidCarts: cfg.ResetPaidCarts},
		zlog,
	)

	cartHandler := h.NewCartHandler(carts, ledger, catalog, cfg.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(carts, ledger, coordinator, archive, events, zlog, cfg.RequestTimeout)
	productHandler := h.NewProductHandler(catalog, cfg.RequestTimeout)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Get("/{product}", productHandler.GetProduct)
		})
		r.Get("/wallets", productHandler.ListWallets)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
			r.Put("/currency", cartHandler.SetCurrency)
			r.Post("/checkout", checkoutHandler.Submit)
			r.Get("/receipt", checkoutHandler.Receipt)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info("storefront starting", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited")
}
