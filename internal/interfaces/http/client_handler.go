package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmkadima/facturier-api/internal/application/billing"
	"github.com/jmkadima/facturier-api/internal/application/dto"
)

// ClientHandler requêtes HTTP des clients (protégé).
type ClientHandler struct {
	uc *billing.ClientUseCase
}

// NewClientHandler construit le handler.
func NewClientHandler(uc *billing.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create godoc
// @Summary      Créer un client
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateClientRequest  true  "Client"
// @Success      201   {object}  dto.ClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClientRequest
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
// @Summary      Lister les clients
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Recherche (nom ou prénom)"
// @Param        limit   query  int     false  "Limite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.ClientListResponse
// @Router       /api/clients [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.List(c.Query("q"), limit, offset)
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtenir un client
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID du client"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [get]
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "client introuvable"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modifier un client
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID du client"
// @Param        body  body  dto.UpdateClientRequest  true  "Champs à modifier"
// @Success      200   {object}  dto.ClientResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [put]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "client introuvable"})
	}
	return c.JSON(out)
}
