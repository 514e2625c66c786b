package identity

import "unicode/utf8"

// MinPasswordLength longitud mínima exigida por la política de contraseñas.
const MinPasswordLength = 6

// MaxPasswordBytes límite de bcrypt: no acepta contraseñas de más de 72 bytes.
const MaxPasswordBytes = 72

// ReasonPasswordTooLong motivo devuelto cuando la contraseña supera MaxPasswordBytes.
const ReasonPasswordTooLong = "La contraseña no puede superar los 72 bytes."

// CheckPasswordPolicy devuelve cada regla que la contraseña incumple (vacío si la cumple).
func CheckPasswordPolicy(password string) []string {
	var reasons []string
	if utf8.RuneCountInString(password) < MinPasswordLength {
		reasons = append(reasons, "La contraseña debe tener al menos 6 caracteres.")
	}
	if len(password) > MaxPasswordBytes {
		reasons = append(reasons, ReasonPasswordTooLong)
	}
	var digit, lower, upper, other bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		default:
			other = true
		}
	}
	if !other {
		reasons = append(reasons, "La contraseña debe tener al menos un carácter no alfanumérico.")
	}
	if !digit {
		reasons = append(reasons, "La contraseña debe tener al menos un dígito ('0'-'9').")
	}
	if !lower {
		reasons = append(reasons, "La contraseña debe tener al menos una minúscula ('a'-'z').")
	}
	if !upper {
		reasons = append(reasons, "La contraseña debe tener al menos una mayúscula ('A'-'Z').")
	}
	return reasons
}
