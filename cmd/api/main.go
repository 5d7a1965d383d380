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

	"github.com/jmkadima/facturier-api/internal/application/auth"
	"github.com/jmkadima/facturier-api/internal/application/billing"
	"github.com/jmkadima/facturier-api/internal/application/catalogue"
	"github.com/jmkadima/facturier-api/internal/application/rapports"
	"github.com/jmkadima/facturier-api/internal/application/stock"
	"github.com/jmkadima/facturier-api/internal/application/supply"
	infrapdf "github.com/jmkadima/facturier-api/internal/infrastructure/pdf"
	"github.com/jmkadima/facturier-api/internal/infrastructure/postgres"
	httpRouter "github.com/jmkadima/facturier-api/internal/interfaces/http"
	"github.com/jmkadima/facturier-api/pkg/config"
	"github.com/jmkadima/facturier-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("charger la configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("démarrage de l'application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connexion à PostgreSQL")
	}
	defer pool.Close()

	produitRepo := postgres.NewProduitRepository(pool)
	mouvementRepo := postgres.NewMouvementStockRepository(pool)
	categorieRepo := postgres.NewCategorieRepository(pool)
	uniteRepo := postgres.NewUniteMesureRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	factureRepo := postgres.NewFactureRepository(pool)
	approRepo := postgres.NewApprovisionnementRepository(pool)
	utilisateurRepo := postgres.NewUtilisateurRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockUC := stock.NewStockUseCase(txRunner, produitRepo, mouvementRepo)
	produitUC := catalogue.NewProduitUseCase(
		txRunner, stockUC, produitRepo, categorieRepo, uniteRepo, mouvementRepo, factureRepo,
	)
	categorieUC := catalogue.NewCategorieUseCase(categorieRepo)
	uniteUC := catalogue.NewUniteMesureUseCase(uniteRepo)
	clientUC := billing.NewClientUseCase(clientRepo)

	pdfGenerator := infrapdf.NewMarotoFactureGenerator()
	factureUC := billing.NewFactureUseCase(
		txRunner, factureRepo, clientRepo, produitRepo, uniteRepo, pdfGenerator,
	)
	approUC := supply.NewApproUseCase(txRunner, stockUC, approRepo, produitRepo)
	rapportsUC := rapports.NewRapportsUseCase(factureRepo, clientRepo, produitRepo)
	authUC := auth.NewAuthUseCase(utilisateurRepo, cfg.JWT)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local : http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Facturier API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProduitUC:   produitUC,
		CategorieUC: categorieUC,
		UniteUC:     uniteUC,
		StockUC:     stockUC,
		ClientUC:    clientUC,
		FactureUC:   factureUC,
		ApproUC:     approUC,
		RapportsUC:  rapportsUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("serveur HTTP terminé")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("signal d'arrêt reçu, fermeture du serveur...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("arrêt du serveur")
	}

	log.Info().Msg("application arrêtée")
}
