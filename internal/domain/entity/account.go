package entity

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Account identidad de inicio de sesión, independiente del perfil de dominio.
type Account struct {
	ID              string    `db:"id"`
	UserName        string    `db:"user_name"`
	Email           string    `db:"email"`
	NormalizedEmail string    `db:"normalized_email"`
	PasswordHash    string    `db:"password_hash"` // bcrypt, nunca en claro
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// NormalizeEmail forma canónica del email para búsquedas sin distinguir mayúsculas.
// Usa case folding Unicode, no solo ToLower.
func NormalizeEmail(email string) string {
	return cases.Fold().String(strings.TrimSpace(email))
}

// SameEmail compara dos emails sin distinguir mayúsculas.
func SameEmail(a, b string) bool {
	return NormalizeEmail(a) == NormalizeEmail(b)
}
