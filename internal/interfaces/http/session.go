package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/AgriConnect-api/internal/application/dto"
)

// Nombres de cookies, cabeceras y claves de sesión.
const (
	SessionCookieName = "agri_session"
	CSRFCookieName    = "agri_csrf"
	CSRFHeader        = "X-CSRF-Token"
	CSRFFormField     = "_csrf"
	localCSRFToken    = "csrf_token"

	flashKindKey    = "flash_kind"
	flashMessageKey = "flash_message"
)

// Tipos de mensaje flash.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashError   = "error"
)

// SessionConfig opciones de las cookies de sesión y anti-falsificación.
type SessionConfig struct {
	CookieSecure bool
	Expiration   time.Duration
}

// NewSessionStore sesiones en memoria, usadas para los mensajes flash y el token CSRF.
func NewSessionStore(cfg SessionConfig) *session.Store {
	exp := cfg.Expiration
	if exp <= 0 {
		exp = 24 * time.Hour
	}
	return session.New(session.Config{
		Expiration:     exp,
		KeyLookup:      "cookie:" + SessionCookieName,
		CookieHTTPOnly: true,
		CookieSecure:   cfg.CookieSecure,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		KeyGenerator:   utils.UUIDv4,
	})
}

// CSRFMiddleware exige el token anti-falsificación en toda petición que modifica estado.
// El token se acepta en la cabecera X-CSRF-Token o en el campo de formulario _csrf.
func CSRFMiddleware(store *session.Store, cfg SessionConfig) fiber.Handler {
	fromHeader := csrf.CsrfFromHeader(CSRFHeader)
	fromForm := csrf.CsrfFromForm(CSRFFormField)
	return csrf.New(csrf.Config{
		CookieName:     CSRFCookieName,
		CookieSameSite: fiber.CookieSameSiteLaxMode,
		CookieSecure:   cfg.CookieSecure,
		CookieHTTPOnly: true,
		Expiration:     time.Hour,
		Session:        store,
		ContextKey:     localCSRFToken,
		Extractor: func(c *fiber.Ctx) (string, error) {
			if token, err := fromHeader(c); err == nil && token != "" {
				return token, nil
			}
			return fromForm(c)
		},
		ErrorHandler: func(c *fiber.Ctx, _ error) error {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "CSRF",
				Message: "token anti-falsificación ausente o inválido",
			})
		},
	})
}

// csrfToken token CSRF vigente para incluirlo en los formularios.
func csrfToken(c *fiber.Ctx) string {
	s, _ := c.Locals(localCSRFToken).(string)
	return s
}

// flasher guarda y consume mensajes de un solo uso en la sesión.
type flasher struct {
	store *session.Store
}

func (f flasher) set(c *fiber.Ctx, kind, message string) error {
	sess, err := f.store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(flashKindKey, kind)
	sess.Set(flashMessageKey, message)
	return sess.Save()
}

// pop devuelve el flash pendiente y lo borra; nil si no hay.
func (f flasher) pop(c *fiber.Ctx) *dto.Flash {
	sess, err := f.store.Get(c)
	if err != nil {
		return nil
	}
	msg, _ := sess.Get(flashMessageKey).(string)
	if msg == "" {
		return nil
	}
	kind, _ := sess.Get(flashKindKey).(string)
	sess.Delete(flashKindKey)
	sess.Delete(flashMessageKey)
	if err := sess.Save(); err != nil {
		return nil
	}
	return &dto.Flash{Kind: kind, Message: msg}
}
