package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/auth"
	appevents "github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/events"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/moderation"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/orderflow"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/sales"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/usecase"
	infrakafka "github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/infrastructure/kafka"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/infrastructure/postgres"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/infrastructure/redisx"
	httpRouter "github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/interfaces/http"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/pkg/config"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	accountRepo := postgres.NewAccountRepository(pool)
	listingRepo := postgres.NewListingRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cache de identidad (opcional): sin REDIS_ADDR toda lectura va a la DB.
	var identityCache *redisx.IdentityCache
	if cfg.Redis.Addr != "" {
		rdb := redisx.New(cfg.Redis.Addr)
		identityCache = redisx.NewIdentityCache(rdb, time.Duration(cfg.Redis.TTLMinutes)*time.Minute)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("cache de identidad activo")
	}

	// Publicador de eventos de transición (opcional).
	var publisher appevents.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		kp := infrakafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() { _ = kp.Close() }()
		publisher = kp
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publicador de eventos activo")
	}

	authUC := auth.NewAuthUseCase(accountRepo, cacheOrNil(identityCache), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	accountUC := usecase.NewAccountUseCase(accountRepo)
	listingUC := usecase.NewListingUseCase(listingRepo)
	accountModUC := moderation.NewAccountModerationUseCase(accountRepo, invalidatorOrNil(identityCache), publisher)
	listingModUC := moderation.NewListingModerationUseCase(listingRepo, publisher)
	orderFlowUC := orderflow.NewOrderFlowUseCase(orderRepo, txRunner, publisher)
	salesUC := sales.NewSalesUseCase(orderRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Opticien Marketplace API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		AccountUC:    accountUC,
		ListingUC:    listingUC,
		AccountModUC: accountModUC,
		ListingModUC: listingModUC,
		OrderFlowUC:  orderFlowUC,
		SalesUC:      salesUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	// Apagado ordenado con SIGINT/SIGTERM
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info().Msg("apagando servidor")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
	if err := app.Listen(cfg.HTTP.Addr()); err != nil {
		log.Fatal().Err(err).Msg("servidor HTTP")
	}
}

// cacheOrNil evita pasar un puntero tipado nil como interfaz no-nil.
func cacheOrNil(c *redisx.IdentityCache) auth.IdentityCache {
	if c == nil {
		return nil
	}
	return c
}

func invalidatorOrNil(c *redisx.IdentityCache) moderation.IdentityInvalidator {
	if c == nil {
		return nil
	}
	return c
}
