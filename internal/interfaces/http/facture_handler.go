package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jmkadima/facturier-api/internal/application/billing"
	"github.com/jmkadima/facturier-api/internal/application/dto"
	"github.com/jmkadima/facturier-api/internal/domain/repository"
)

// FactureHandler requêtes HTTP des factures et avoirs (protégé).
type FactureHandler struct {
	uc *billing.FactureUseCase
}

// NewFactureHandler construit le handler.
func NewFactureHandler(uc *billing.FactureUseCase) *FactureHandler {
	return &FactureHandler{uc: uc}
}

// Create godoc
// @Summary      Créer une facture ou un avoir
// @Tags         factures
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFactureRequest  true  "Facture"
// @Success      201   {object}  dto.FactureResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/factures [post]
func (h *FactureHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFactureRequest
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
// @Summary      Lister les factures avec statistiques
// @Tags         factures
// @Security     Bearer
// @Produce      json
// @Param        q              query  string  false  "Recherche (numéro ou client)"
// @Param        type_document  query  string  false  "facture ou avoir"
// @Param        etat           query  string  false  "État"
// @Param        paiement       query  string  false  "Mode de paiement"
// @Param        date_debut     query  string  false  "Date début (2006-01-02)"
// @Param        date_fin       query  string  false  "Date fin (2006-01-02)"
// @Param        limit          query  int     false  "Limite"   default(20)
// @Param        offset         query  int     false  "Offset"   default(0)
// @Success      200  {object}  dto.FactureListResponse
// @Router       /api/factures [get]
func (h *FactureHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	filtres := repository.FiltresFacture{
		Recherche:    c.Query("q"),
		TypeDocument: c.Query("type_document"),
		Etat:         c.Query("etat"),
		Paiement:     c.Query("paiement"),
	}
	if s := c.Query("date_debut"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date_debut invalide"})
		}
		filtres.DateDebut = &d
	}
	if s := c.Query("date_fin"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date_fin invalide"})
		}
		fin := d.Add(24*time.Hour - time.Nanosecond)
		filtres.DateFin = &fin
	}
	out, err := h.uc.List(filtres, limit, offset)
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtenir une facture avec ses lignes
// @Tags         factures
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la facture"
// @Success      200  {object}  dto.FactureResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/factures/{id} [get]
func (h *FactureHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "facture introuvable"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modifier une facture
// @Description  Les lignes fournies remplacent les anciennes et le total est recalculé.
// @Tags         factures
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la facture"
// @Param        body  body  dto.UpdateFactureRequest  true  "Champs"
// @Success      200   {object}  dto.FactureResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/factures/{id} [put]
func (h *FactureHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFactureRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "facture introuvable"})
	}
	return c.JSON(out)
}

// ConvertirEnAvoir godoc
// @Summary      Convertir une facture en avoir
// @Description  Crée l'avoir miroir (quantités négatives, total opposé). Un avoir ne se convertit pas.
// @Tags         factures
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la facture"
// @Success      201  {object}  dto.FactureResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/factures/{id}/avoir [post]
func (h *FactureHandler) ConvertirEnAvoir(c *fiber.Ctx) error {
	out, err := h.uc.ConvertirEnAvoir(c.Context(), c.Params("id"))
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GenererPDF godoc
// @Summary      Télécharger la facture en PDF
// @Tags         factures
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la facture"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/factures/{id}/pdf [get]
func (h *FactureHandler) GenererPDF(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "facture introuvable"})
	}
	pdfBytes, err := h.uc.GenererPDF(c.Context(), out.ID)
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s.pdf", out.Numero))
	return c.Send(pdfBytes)
}
