package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmkadima/facturier-api/internal/application/dto"
	"github.com/jmkadima/facturier-api/internal/application/rapports"
)

// RapportsHandler requêtes HTTP des rapports (protégé).
type RapportsHandler struct {
	uc *rapports.RapportsUseCase
}

// NewRapportsHandler construit le handler.
func NewRapportsHandler(uc *rapports.RapportsUseCase) *RapportsHandler {
	return &RapportsHandler{uc: uc}
}

// RapportClient godoc
// @Summary      Rapport d'un client sur une période
// @Tags         rapports
// @Security     Bearer
// @Produce      json
// @Param        id          path   string  true   "ID du client"
// @Param        date_debut  query  string  false  "Date début (2006-01-02)"
// @Param        date_fin    query  string  false  "Date fin (2006-01-02, incluse)"
// @Success      200  {object}  dto.RapportClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/rapports/clients/{id} [get]
func (h *RapportsHandler) RapportClient(c *fiber.Ctx) error {
	periode := dto.PeriodeRequest{
		DateDebut: c.Query("date_debut"),
		DateFin:   c.Query("date_fin"),
	}
	out, err := h.uc.RapportClient(c.Context(), c.Params("id"), periode)
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	return c.JSON(out)
}

// RapportTousClients godoc
// @Summary      Rapport agrégé par client sur une période
// @Tags         rapports
// @Security     Bearer
// @Produce      json
// @Param        date_debut  query  string  false  "Date début (2006-01-02)"
// @Param        date_fin    query  string  false  "Date fin (2006-01-02, incluse)"
// @Success      200  {object}  dto.RapportTousClientsResponse
// @Router       /api/rapports/clients [get]
func (h *RapportsHandler) RapportTousClients(c *fiber.Ctx) error {
	periode := dto.PeriodeRequest{
		DateDebut: c.Query("date_debut"),
		DateFin:   c.Query("date_fin"),
	}
	out, err := h.uc.RapportTousClients(c.Context(), periode)
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	return c.JSON(out)
}

// RapportStock godoc
// @Summary      État du stock valorisé
// @Tags         rapports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RapportStockResponse
// @Router       /api/rapports/stock [get]
func (h *RapportsHandler) RapportStock(c *fiber.Ctx) error {
	out, err := h.uc.RapportStock(c.Context())
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	return c.JSON(out)
}
