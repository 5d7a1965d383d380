package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmkadima/facturier-api/internal/application/catalogue"
	"github.com/jmkadima/facturier-api/internal/application/dto"
)

// UniteHandler requêtes HTTP des unités de mesure (protégé).
type UniteHandler struct {
	uc *catalogue.UniteMesureUseCase
}

// NewUniteHandler construit le handler.
func NewUniteHandler(uc *catalogue.UniteMesureUseCase) *UniteHandler {
	return &UniteHandler{uc: uc}
}

// Create godoc
// @Summary      Créer une unité de mesure
// @Tags         unites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUniteMesureRequest  true  "Unité"
// @Success      201   {object}  dto.UniteMesureResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/unites [post]
func (h *UniteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUniteMesureRequest
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
// @Summary      Lister les unités de mesure
// @Tags         unites
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UniteMesureResponse
// @Router       /api/unites [get]
func (h *UniteHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modifier une unité de mesure
// @Tags         unites
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de l'unité"
// @Param        body  body  dto.CreateUniteMesureRequest  true  "Champs"
// @Success      200   {object}  dto.UniteMesureResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/unites/{id} [put]
func (h *UniteHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateUniteMesureRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "unité introuvable"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Supprimer une unité de mesure
// @Tags         unites
// @Security     Bearer
// @Param        id  path  string  true  "ID de l'unité"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse  "Unité utilisée par des produits"
// @Router       /api/unites/{id} [delete]
func (h *UniteHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return erreurVersHTTP(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
