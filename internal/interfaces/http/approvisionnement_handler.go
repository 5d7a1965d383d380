package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmkadima/facturier-api/internal/application/dto"
	"github.com/jmkadima/facturier-api/internal/application/supply"
)

// ApprovisionnementHandler requêtes HTTP des approvisionnements (protégé).
type ApprovisionnementHandler struct {
	uc *supply.ApproUseCase
}

// NewApprovisionnementHandler construit le handler.
func NewApprovisionnementHandler(uc *supply.ApproUseCase) *ApprovisionnementHandler {
	return &ApprovisionnementHandler{uc: uc}
}

// Create godoc
// @Summary      Créer un approvisionnement
// @Description  Créé au statut en_attente ; le stock ne bouge qu'à la réception.
// @Tags         approvisionnements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateApproRequest  true  "Approvisionnement"
// @Success      201   {object}  dto.ApproResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/approvisionnements [post]
func (h *ApprovisionnementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateApproRequest
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
// @Summary      Lister les approvisionnements
// @Tags         approvisionnements
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.ApproListResponse
// @Router       /api/approvisionnements [get]
func (h *ApprovisionnementHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtenir un approvisionnement avec ses lignes
// @Tags         approvisionnements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de l'approvisionnement"
// @Success      200  {object}  dto.ApproResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/approvisionnements/{id} [get]
func (h *ApprovisionnementHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "approvisionnement introuvable"})
	}
	return c.JSON(out)
}

// Recevoir godoc
// @Summary      Recevoir un approvisionnement
// @Description  Une entrée de stock par ligne puis statut recu, atomiquement. Refusé (409) depuis recu ou annule.
// @Tags         approvisionnements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de l'approvisionnement"
// @Success      200  {object}  dto.ApproResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/approvisionnements/{id}/recevoir [post]
func (h *ApprovisionnementHandler) Recevoir(c *fiber.Ctx) error {
	out, err := h.uc.Recevoir(c.Context(), c.Params("id"), GetNom(c))
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	return c.JSON(out)
}

// Annuler godoc
// @Summary      Annuler un approvisionnement en attente
// @Tags         approvisionnements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de l'approvisionnement"
// @Success      200  {object}  dto.ApproResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/approvisionnements/{id}/annuler [post]
func (h *ApprovisionnementHandler) Annuler(c *fiber.Ctx) error {
	out, err := h.uc.Annuler(c.Context(), c.Params("id"))
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	return c.JSON(out)
}
