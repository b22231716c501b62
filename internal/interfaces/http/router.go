package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/estudiobarro/taller-api/internal/application/auth"
	"github.com/estudiobarro/taller-api/internal/application/ledger"
	"github.com/estudiobarro/taller-api/internal/application/production"
	"github.com/estudiobarro/taller-api/internal/application/usecase"
	"github.com/estudiobarro/taller-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	ColorUC      *usecase.ColorUseCase
	TransitionUC *production.TransitionUseCase
	QueryUC      *production.QueryUseCase
	LedgerUC     *ledger.UseCase
	AuthUC       *auth.AuthUseCase
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

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido; escritura solo admin)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireRole(entity.RoleAdmin), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole(entity.RoleAdmin), productHandler.Update)

	// Color variants (protegido; escritura solo admin)
	colors := protected.Group("/colors")
	colorHandler := NewColorHandler(deps.ColorUC)
	colors.Post("/", RequireRole(entity.RoleAdmin), colorHandler.Create)
	colors.Get("/", colorHandler.List)

	// Production (protegido; mutaciones solo taller y admin)
	prod := protected.Group("/production")
	productionHandler := NewProductionHandler(deps.TransitionUC, deps.QueryUC)
	mutator := RequireRole(entity.RoleTaller, entity.RoleAdmin)
	prod.Post("/input", mutator, productionHandler.Input)
	prod.Post("/advance", mutator, productionHandler.Advance)
	prod.Post("/adjustment", mutator, productionHandler.Adjustment)
	prod.Post("/shrinkage", mutator, productionHandler.Shrinkage)
	prod.Get("/inventory", productionHandler.CurrentInventory)
	prod.Get("/movements", productionHandler.MovementHistory)

	// Ledger (protegido; solo admin)
	ledgerGroup := protected.Group("/ledger", RequireRole(entity.RoleAdmin))
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	ledgerGroup.Post("/entries", ledgerHandler.CreateEntry)
	ledgerGroup.Get("/entries", ledgerHandler.ListEntries)
	ledgerGroup.Get("/balance", ledgerHandler.Balance)
}
