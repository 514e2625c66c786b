package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/AgriConnect-api/internal/application/dto"
	"github.com/jhoicas/AgriConnect-api/pkg/jwt"
)

// Locals keys para la cuenta autenticada en Fiber.
const (
	LocalUserID = "user_id"
	LocalEmail  = "email"
	LocalRoles  = "roles"
)

// AuthConfig token de sesión: secreto de firma y cookie donde viaja.
type AuthConfig struct {
	JWTSecret    string
	CookieName   string
	CookieSecure bool
	ExpMinutes   int
}

// tokenFrom busca el JWT en la cookie de sesión y, si no está, en la cabecera Bearer.
func tokenFrom(c *fiber.Ctx, cookieName string) (string, string) {
	if tok := c.Cookies(cookieName); tok != "" {
		return tok, ""
	}
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", "MISSING_TOKEN"
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "INVALID_TOKEN"
	}
	tok := strings.TrimSpace(parts[1])
	if tok == "" {
		return "", "MISSING_TOKEN"
	}
	return tok, ""
}

// AuthMiddleware exige una sesión válida (cookie o Bearer) y carga la cuenta en c.Locals.
func AuthMiddleware(cfg AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok, code := tokenFrom(c, cfg.CookieName)
		if tok == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: "inicie sesión para continuar"})
		}
		userID, email, err := jwt.Parse(cfg.JWTSecret, tok)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalEmail, email)
		return c.Next()
	}
}

// OptionalAuth como AuthMiddleware pero deja pasar peticiones anónimas o con token inválido.
func OptionalAuth(cfg AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tok, _ := tokenFrom(c, cfg.CookieName); tok != "" {
			if userID, email, err := jwt.Parse(cfg.JWTSecret, tok); err == nil {
				c.Locals(LocalUserID, userID)
				c.Locals(LocalEmail, email)
			}
		}
		return c.Next()
	}
}

// setAuthCookie establece la sesión en una cookie HttpOnly.
func setAuthCookie(c *fiber.Ctx, cfg AuthConfig, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(time.Duration(cfg.ExpMinutes) * time.Minute),
		HTTPOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearAuthCookie(c *fiber.Ctx, cfg AuthConfig) {
	c.Cookie(&fiber.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// GetUserID devuelve el id de la cuenta del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetEmail devuelve el email de la cuenta del contexto.
func GetEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}
