package dto

import "time"

// FarmerRequest alta de agricultor desde el panel del empleado.
type FarmerRequest struct {
	FirstName     string `json:"first_name" form:"first_name" validate:"required,max=100"`
	LastName      string `json:"last_name" form:"last_name" validate:"required,max=100"`
	ContactNumber string `json:"contact_number" form:"contact_number" validate:"required,max=20,phone"`
	Email         string `json:"email" form:"email" validate:"required,email"`
	Address       string `json:"address" form:"address" validate:"required,max=200"`
}

// FarmerResponse vista de un agricultor.
type FarmerResponse struct {
	ID               int64     `json:"id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	FullName         string    `json:"full_name"`
	ContactNumber    string    `json:"contact_number"`
	Email            string    `json:"email"`
	Address          string    `json:"address"`
	RegistrationDate time.Time `json:"registration_date"`
}

// FarmerDashboardResponse panel del agricultor autenticado. Farmer es nil si la cuenta no tiene perfil.
type FarmerDashboardResponse struct {
	Farmer       *FarmerResponse `json:"farmer,omitempty"`
	ProductCount int             `json:"product_count"`
	Message      string          `json:"message,omitempty"`
}

// FarmerProductsResponse productos de un agricultor concreto (vista del empleado).
type FarmerProductsResponse struct {
	Farmer   FarmerResponse    `json:"farmer"`
	Products []ProductResponse `json:"products"`
}

// EmployeeDashboardResponse resumen para el empleado.
type EmployeeDashboardResponse struct {
	Farmers    int      `json:"farmers"`
	Categories []string `json:"categories"`
}
