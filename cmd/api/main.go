package main

import (
	"context"
	"net/http"
	"os"

	"github.com/foodgo/food-go-backend/api/routes"
	"github.com/foodgo/food-go-backend/internal/auth"
	"github.com/foodgo/food-go-backend/internal/cart"
	"github.com/foodgo/food-go-backend/internal/devices"
	"github.com/foodgo/food-go-backend/internal/orders"
	"github.com/foodgo/food-go-backend/internal/paymentcards"
	"github.com/foodgo/food-go-backend/internal/storage"
	"github.com/foodgo/food-go-backend/internal/users"
	"github.com/foodgo/food-go-backend/pkg/config"
	"github.com/foodgo/food-go-backend/pkg/db"
	"github.com/foodgo/food-go-backend/pkg/db/models"
	"github.com/foodgo/food-go-backend/pkg/logger"
	"github.com/foodgo/food-go-backend/pkg/redis"
	"github.com/joho/godotenv"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if cfg.FeatureFlags.AutoMigrate {
		err := dbClient.DB().AutoMigrate(
			&models.User{},
			&models.PaymentCard{},
			&models.Order{},
			&models.OrderLineItem{},
		)
		if err != nil {
			logg.Error(context.Background(), "failed to run auto migration", err)
			os.Exit(1)
		}
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	pricing, err := cart.PricingFromConfig(cfg.Pricing)
	if err != nil {
		logg.Error(context.Background(), "invalid pricing config", err)
		os.Exit(1)
	}

	deviceStorage, err := storage.NewRedis(redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create device storage", err)
		os.Exit(1)
	}
	deviceManager, err := devices.NewManager(devices.ManagerParams{
		KV:      deviceStorage,
		Keyer:   deviceStorage,
		Pricing: pricing,
		Logger:  logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create device manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:  userRepo,
		JWTConfig: cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		DB:             dbClient,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create register service", err)
		os.Exit(1)
	}

	passwordResetService, err := auth.NewPasswordResetService(auth.PasswordResetParams{
		UserRepo:       userRepo,
		Codes:          redisClient,
		ResetConfig:    cfg.PasswordReset,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create password reset service", err)
		os.Exit(1)
	}

	profileService, err := users.NewService(users.ServiceParams{UserRepo: userRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create profile service", err)
		os.Exit(1)
	}

	cardService, err := paymentcards.NewService(paymentcards.ServiceParams{
		CardRepo: paymentcards.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create card service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.ServiceParams{
		OrderRepo: orders.NewRepository(dbClient.DB()),
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:               cfg,
			Logger:               logg,
			DB:                   dbClient,
			Redis:                redisClient,
			DeviceManager:        deviceManager,
			AuthService:          authService,
			RegisterService:      registerService,
			PasswordResetService: passwordResetService,
			ProfileService:       profileService,
			CardService:          cardService,
			OrderService:         orderService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
