package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jmkadima/facturier-api/internal/application/dto"
	"github.com/jmkadima/facturier-api/pkg/jwt"
)

// Clés Locals pour l'utilisateur connecté.
const (
	LocalUserID = "user_id"
	LocalNom    = "nom"
)

// AuthMiddleware valide le Bearer Token JWT et place user_id et nom dans c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "header Authorization requis"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "format attendu : Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vide"})
		}
		userID, nom, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token invalide ou expiré"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalNom, nom)
		return c.Next()
	}
}

// GetUserID renvoie l'ID de l'utilisateur du contexte (après le middleware).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetNom renvoie le nom affiché de l'utilisateur du contexte, repris comme
// champ `utilisateur` sur les mouvements de stock.
func GetNom(c *fiber.Ctx) string {
	v := c.Locals(LocalNom)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
