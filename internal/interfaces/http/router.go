package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/auth"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/moderation"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/orderflow"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/sales"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/application/usecase"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	AccountUC    *usecase.AccountUseCase
	ListingUC    *usecase.ListingUseCase
	AccountModUC *moderation.AccountModerationUseCase
	ListingModUC *moderation.ListingModerationUseCase
	OrderFlowUC  *orderflow.OrderFlowUseCase
	SalesUC      *sales.SalesUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Directorios públicos: solo contenido approved
	accountHandler := NewAccountHandler(deps.AccountUC)
	listingHandler := NewListingHandler(deps.ListingUC)
	api.Get("/opticiens", accountHandler.Directory)
	api.Get("/listings", listingHandler.Directory)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/me", authHandler.Me)

	// Router de sesión: aterrizaje y guard con identidad fresca
	sessionHandler := NewSessionHandler(deps.AuthUC)
	protected.Get("/session/route", sessionHandler.Route)
	protected.Get("/session/guard", sessionHandler.Guard)

	// Listings del opticien autenticado
	protected.Post("/listings", listingHandler.Create)
	protected.Get("/listings/mine", listingHandler.Mine)
	protected.Get("/listings/:id", listingHandler.GetByID)

	// Feeds de órdenes
	orderHandler := NewOrderHandler(deps.OrderFlowUC, deps.SalesUC)
	protected.Get("/orders/purchases", orderHandler.Purchases)
	protected.Get("/orders/sales", orderHandler.Sales)
	protected.Get("/orders/:id", orderHandler.GetByID)

	// Zona admin: moderación y ciclo de vida de órdenes
	admin := protected.Group("/admin", RequireRole(string(entity.RoleAdmin)))
	moderationHandler := NewModerationHandler(deps.AccountModUC, deps.ListingModUC)
	admin.Get("/accounts/pending", accountHandler.PendingQueue)
	admin.Patch("/accounts/:id/approve", moderationHandler.ApproveAccount)
	admin.Patch("/accounts/:id/reject", moderationHandler.RejectAccount)
	admin.Get("/listings/pending", listingHandler.PendingQueue)
	admin.Patch("/listings/:id/approve", moderationHandler.ApproveListing)
	admin.Patch("/listings/:id/reject", moderationHandler.RejectListing)
	admin.Get("/orders", orderHandler.AllSales)
	admin.Put("/orders/:id/validate", orderHandler.Validate)
	admin.Put("/orders/:id/refuse", orderHandler.Refuse)
	admin.Put("/orders/:id/complete", orderHandler.Complete)
}
