package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmkadima/facturier-api/internal/application/auth"
	"github.com/jmkadima/facturier-api/internal/application/dto"
)

// AuthHandler requêtes HTTP d'authentification (public).
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construit le handler.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Connexion
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Identifiants"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	return c.JSON(out)
}

// Register godoc
// @Summary      Créer un compte
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  object{nom=string,email=string,password=string}  true  "Compte"
// @Success      201   {object}  dto.UtilisateurResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in struct {
		Nom      string `json:"nom"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corps invalide"})
	}
	out, err := h.uc.Register(in.Nom, in.Email, in.Password)
	if err != nil {
		return erreurVersHTTP(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
