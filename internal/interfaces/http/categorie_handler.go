package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmkadima/facturier-api/internal/application/catalogue"
	"github.com/jmkadima/facturier-api/internal/application/dto"
)

// CategorieHandler requêtes HTTP des catégories (protégé).
type CategorieHandler struct {
	uc *catalogue.CategorieUseCase
}

// NewCategorieHandler construit le handler.
func NewCategorieHandler(uc *catalogue.CategorieUseCase) *CategorieHandler {
	return &CategorieHandler{uc: uc}
}

// Create godoc
// @Summary      Créer une catégorie
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategorieRequest  true  "Catégorie"
// @Success      201   {object}  dto.CategorieResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategorieHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategorieRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Lister les catégories
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategorieResponse
// @Router       /api/categories [get]
func (h *CategorieHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modifier une catégorie
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la catégorie"
// @Param        body  body  dto.CreateCategorieRequest  true  "Champs"
// @Success      200   {object}  dto.CategorieResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CategorieHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateCategorieRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "catégorie introuvable"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Supprimer une catégorie
// @Tags         categories
// @Security     Bearer
// @Param        id  path  string  true  "ID de la catégorie"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse  "Catégorie utilisée par des produits"
// @Router       /api/categories/{id} [delete]
func (h *CategorieHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return erreurVersHTTP(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
