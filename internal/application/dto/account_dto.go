package dto

import "time"

// RegisterRequest formulario de registro. Los campos de perfil dependen del rol elegido.
type RegisterRequest struct {
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required,min=6,max=100"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"eqfield=Password"`
	Role            string `json:"role" form:"role" validate:"required,oneof=Farmer Employee"`

	FarmerFirstName     string `json:"farmer_first_name" form:"farmer_first_name" validate:"max=100"`
	FarmerLastName      string `json:"farmer_last_name" form:"farmer_last_name" validate:"max=100"`
	FarmerContactNumber string `json:"farmer_contact_number" form:"farmer_contact_number" validate:"max=20,phone"`
	FarmerAddress       string `json:"farmer_address" form:"farmer_address" validate:"max=200"`

	EmployeeFirstName     string `json:"employee_first_name" form:"employee_first_name" validate:"max=100"`
	EmployeeLastName      string `json:"employee_last_name" form:"employee_last_name" validate:"max=100"`
	EmployeeContactNumber string `json:"employee_contact_number" form:"employee_contact_number" validate:"max=20,phone"`

	ReturnURL string `json:"return_url" form:"return_url" query:"returnUrl"`
}

// Redacted copia del formulario sin contraseñas, para devolverla al re-mostrarlo.
func (r RegisterRequest) Redacted() RegisterRequest {
	r.Password = ""
	r.ConfirmPassword = ""
	return r
}

// RegisterForm datos para mostrar el formulario de registro.
type RegisterForm struct {
	Roles     []string         `json:"roles"`
	CSRFToken string           `json:"csrf_token,omitempty"`
	ReturnURL string           `json:"return_url,omitempty"`
	Input     *RegisterRequest `json:"input,omitempty"`
}

// RegisterResult resultado de un registro correcto: la sesión ya queda establecida.
type RegisterResult struct {
	Token      string          `json:"-"`
	Account    AccountResponse `json:"account"`
	RedirectTo string          `json:"redirect_to"`
	Message    string          `json:"message"`
}

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Email     string `json:"email" form:"email" validate:"required,email"`
	Password  string `json:"password" form:"password" validate:"required"`
	ReturnURL string `json:"return_url" form:"return_url" query:"returnUrl"`
}

// LoginResponse token y cuenta autenticada. El token también se entrega en cookie HttpOnly.
type LoginResponse struct {
	Token      string          `json:"token"`
	Account    AccountResponse `json:"account"`
	RedirectTo string          `json:"redirect_to"`
}

// AccountResponse vista de una cuenta.
type AccountResponse struct {
	ID        string    `json:"id"`
	UserName  string    `json:"user_name"`
	Email     string    `json:"email"`
	Roles     []string  `json:"roles,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UpdateUserRequest edición administrativa de una cuenta.
type UpdateUserRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	UserName string `json:"user_name" form:"user_name" validate:"max=256"`
}

// RoleSelection un rol y si la cuenta lo tiene.
type RoleSelection struct {
	Name       string `json:"name"`
	IsSelected bool   `json:"is_selected"`
}

// UserRolesResponse roles de una cuenta para la pantalla de gestión.
type UserRolesResponse struct {
	UserID string          `json:"user_id"`
	Email  string          `json:"email"`
	Roles  []RoleSelection `json:"roles"`
}

// UpdateUserRolesRequest roles seleccionados; los no incluidos se quitan.
type UpdateUserRolesRequest struct {
	Roles []string `json:"roles" form:"roles"`
}

// AdminDashboardResponse resumen para el administrador.
type AdminDashboardResponse struct {
	Users int            `json:"users"`
	ByRole map[string]int `json:"by_role"`
}
