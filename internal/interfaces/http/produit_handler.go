package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmkadima/facturier-api/internal/application/catalogue"
	"github.com/jmkadima/facturier-api/internal/application/dto"
)

// ProduitHandler requêtes HTTP du catalogue produits (protégé).
type ProduitHandler struct {
	uc *catalogue.ProduitUseCase
}

// NewProduitHandler construit le handler.
func NewProduitHandler(uc *catalogue.ProduitUseCase) *ProduitHandler {
	return &ProduitHandler{uc: uc}
}

// Create godoc
// @Summary      Créer un produit
// @Tags         produits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProduitRequest  true  "Produit"
// @Success      201   {object}  dto.ProduitResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/produits [post]
func (h *ProduitHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProduitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Lister les produits
// @Tags         produits
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Recherche (nom ou code)"
// @Param        limit   query  int     false  "Limite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.ProduitListResponse
// @Router       /api/produits [get]
func (h *ProduitHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.List(c.Query("q"), limit, offset)
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtenir un produit
// @Tags         produits
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID du produit"
// @Success      200  {object}  dto.ProduitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/produits/{id} [get]
func (h *ProduitHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "produit introuvable"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modifier un produit
// @Tags         produits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID du produit"
// @Param        body  body  dto.UpdateProduitRequest  true  "Champs à modifier"
// @Success      200   {object}  dto.ProduitResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/produits/{id} [put]
func (h *ProduitHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProduitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "produit introuvable"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Supprimer un produit
// @Tags         produits
// @Security     Bearer
// @Param        id  path  string  true  "ID du produit"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse  "Produit référencé par des mouvements ou des factures"
// @Router       /api/produits/{id} [delete]
func (h *ProduitHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return erreurVersHTTP(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// VerifierCode godoc
// @Summary      Vérifier la disponibilité d'un code produit
// @Tags         produits
// @Security     Bearer
// @Produce      json
// @Param        code  query  string  false  "Code à vérifier"
// @Param        nom   query  string  false  "Nom (pour dériver le code si absent)"
// @Success      200   {object}  dto.CheckCodeResponse
// @Router       /api/produits/check-code [get]
func (h *ProduitHandler) VerifierCode(c *fiber.Ctx) error {
	out, err := h.uc.VerifierCode(c.Query("code"), c.Query("nom"))
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	return c.JSON(out)
}
