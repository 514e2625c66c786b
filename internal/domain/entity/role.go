package entity

import (
	"fmt"

	"github.com/jhoicas/AgriConnect-api/internal/domain"
)

// Role conjunto cerrado de roles del sistema. El valor cero no es un rol válido.
type Role uint8

const (
	RoleAdmin Role = iota + 1
	RoleFarmer
	RoleEmployee
)

// AllRoles roles en el orden en que se siembran y se listan.
var AllRoles = []Role{RoleAdmin, RoleFarmer, RoleEmployee}

// SignupRoles roles que un usuario puede elegir al registrarse (Admin nunca).
var SignupRoles = []Role{RoleFarmer, RoleEmployee}

// String devuelve el nombre persistido del rol.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleFarmer:
		return "Farmer"
	case RoleEmployee:
		return "Employee"
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

// Valid indica si r es uno de los roles definidos.
func (r Role) Valid() bool {
	return r >= RoleAdmin && r <= RoleEmployee
}

// SignupSelectable indica si el rol se ofrece en el formulario de registro.
func (r Role) SignupSelectable() bool {
	return r == RoleFarmer || r == RoleEmployee
}

// ParseRole convierte el nombre persistido en Role. Nombres desconocidos devuelven ErrUnknownRole.
func ParseRole(name string) (Role, error) {
	for _, r := range AllRoles {
		if r.String() == name {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", domain.ErrUnknownRole, name)
}

// HasRole indica si roles contiene r.
func HasRole(roles []Role, r Role) bool {
	for _, x := range roles {
		if x == r {
			return true
		}
	}
	return false
}
