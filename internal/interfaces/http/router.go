package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmkadima/facturier-api/internal/application/auth"
	"github.com/jmkadima/facturier-api/internal/application/billing"
	"github.com/jmkadima/facturier-api/internal/application/catalogue"
	"github.com/jmkadima/facturier-api/internal/application/rapports"
	"github.com/jmkadima/facturier-api/internal/application/stock"
	"github.com/jmkadima/facturier-api/internal/application/supply"
)

// RouterDeps dépendances du router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProduitUC   *catalogue.ProduitUseCase
	CategorieUC *catalogue.CategorieUseCase
	UniteUC     *catalogue.UniteMesureUseCase
	StockUC     *stock.StockUseCase
	ClientUC    *billing.ClientUseCase
	FactureUC   *billing.FactureUseCase
	ApproUC     *supply.ApproUseCase
	RapportsUC  *rapports.RapportsUseCase
	JWTSecret   string
}

// Router enregistre les routes de l'API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Routes protégées (Bearer Token requis)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catalogue
	produits := protected.Group("/produits")
	produitHandler := NewProduitHandler(deps.ProduitUC)
	stockHandler := NewStockHandler(deps.StockUC, deps.RapportsUC)
	produits.Post("/", produitHandler.Create)
	produits.Get("/", produitHandler.List)
	produits.Get("/check-code", produitHandler.VerifierCode)
	produits.Get("/:id", produitHandler.GetByID)
	produits.Put("/:id", produitHandler.Update)
	produits.Delete("/:id", produitHandler.Delete)
	produits.Get("/:id/mouvements", stockHandler.Historique)

	categories := protected.Group("/categories")
	categorieHandler := NewCategorieHandler(deps.CategorieUC)
	categories.Post("/", categorieHandler.Create)
	categories.Get("/", categorieHandler.List)
	categories.Put("/:id", categorieHandler.Update)
	categories.Delete("/:id", categorieHandler.Delete)

	unites := protected.Group("/unites")
	uniteHandler := NewUniteHandler(deps.UniteUC)
	unites.Post("/", uniteHandler.Create)
	unites.Get("/", uniteHandler.List)
	unites.Put("/:id", uniteHandler.Update)
	unites.Delete("/:id", uniteHandler.Delete)

	// Grand livre de stock
	stockGroup := protected.Group("/stock")
	stockGroup.Get("/", stockHandler.EtatStock)
	stockGroup.Post("/mouvements", stockHandler.EnregistrerMouvement)

	// Clients
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)

	// Factures et avoirs
	factures := protected.Group("/factures")
	factureHandler := NewFactureHandler(deps.FactureUC)
	factures.Post("/", factureHandler.Create)
	factures.Get("/", factureHandler.List)
	factures.Get("/:id", factureHandler.GetByID)
	factures.Put("/:id", factureHandler.Update)
	factures.Post("/:id/avoir", factureHandler.ConvertirEnAvoir)
	factures.Get("/:id/pdf", factureHandler.GenererPDF)

	// Approvisionnements
	appros := protected.Group("/approvisionnements")
	approHandler := NewApprovisionnementHandler(deps.ApproUC)
	appros.Post("/", approHandler.Create)
	appros.Get("/", approHandler.List)
	appros.Get("/:id", approHandler.GetByID)
	appros.Post("/:id/recevoir", approHandler.Recevoir)
	appros.Post("/:id/annuler", approHandler.Annuler)

	// Rapports
	rapportsGroup := protected.Group("/rapports")
	rapportsHandler := NewRapportsHandler(deps.RapportsUC)
	rapportsGroup.Get("/clients", rapportsHandler.RapportTousClients)
	rapportsGroup.Get("/clients/:id", rapportsHandler.RapportClient)
	rapportsGroup.Get("/stock", rapportsHandler.RapportStock)
}
