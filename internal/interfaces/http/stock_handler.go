package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmkadima/facturier-api/internal/application/dto"
	"github.com/jmkadima/facturier-api/internal/application/rapports"
	"github.com/jmkadima/facturier-api/internal/application/stock"
)

// StockHandler requêtes HTTP du grand livre de stock (protégé).
type StockHandler struct {
	stockUC    *stock.StockUseCase
	rapportsUC *rapports.RapportsUseCase
}

// NewStockHandler construit le handler.
func NewStockHandler(stockUC *stock.StockUseCase, rapportsUC *rapports.RapportsUseCase) *StockHandler {
	return &StockHandler{stockUC: stockUC, rapportsUC: rapportsUC}
}

// EnregistrerMouvement godoc
// @Summary      Enregistrer un mouvement de stock
// @Description  entree ajoute, sortie retranche (bornée à zéro), ajustement fixe le stock à la quantité donnée.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EnregistrerMouvementRequest  true  "Mouvement"
// @Success      201   {object}  dto.MouvementView
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/mouvements [post]
func (h *StockHandler) EnregistrerMouvement(c *fiber.Ctx) error {
	var in dto.EnregistrerMouvementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.stockUC.EnregistrerMouvement(c.Context(), stock.MouvementInput{
		ProduitID:   in.ProduitID,
		Type:        in.Type,
		Quantite:    in.Quantite,
		Commentaire: in.Commentaire,
		Utilisateur: GetNom(c),
	})
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Historique godoc
// @Summary      Historique des mouvements d'un produit
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID du produit"
// @Success      200  {object}  dto.HistoriqueResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/produits/{id}/mouvements [get]
func (h *StockHandler) Historique(c *fiber.Ctx) error {
	out, err := h.stockUC.Historique(c.Context(), c.Params("id"))
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	return c.JSON(out)
}

// EtatStock godoc
// @Summary      État du stock valorisé
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RapportStockResponse
// @Router       /api/stock [get]
func (h *StockHandler) EtatStock(c *fiber.Ctx) error {
	out, err := h.rapportsUC.RapportStock(c.Context())
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	return c.JSON(out)
}
