package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/AgriConnect-api/internal/application/dto"
	"github.com/jhoicas/AgriConnect-api/internal/domain/entity"
)

// roleChecker es el contrato mínimo que necesita el middleware para consultar roles.
// Lo implementa *identity.AccountManager.
type roleChecker interface {
	Roles(ctx context.Context, accountID string) ([]entity.Role, error)
}

// RequireRole devuelve un middleware que deja pasar solo a cuentas con alguno de los roles.
// Los roles se consultan en cada petición, así un cambio del administrador aplica de inmediato.
// Debe usarse DESPUÉS de AuthMiddleware.
//
//   - 401 si no hay cuenta en el contexto.
//   - 403 FORBIDDEN si la cuenta no tiene ninguno de los roles.
//   - 503 si falla la consulta de roles.
func RequireRole(checker roleChecker, allowed ...entity.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "inicie sesión para continuar",
			})
		}

		roles, err := checker.Roles(c.UserContext(), userID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "ROLE_CHECK_FAILED",
				Message: "no se pudieron verificar los permisos, intente más tarde",
			})
		}

		for _, r := range allowed {
			if entity.HasRole(roles, r) {
				c.Locals(LocalRoles, roles)
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "no tiene permisos para acceder a este recurso",
		})
	}
}

// GetRoles roles cargados por RequireRole.
func GetRoles(c *fiber.Ctx) []entity.Role {
	roles, _ := c.Locals(LocalRoles).([]entity.Role)
	return roles
}
