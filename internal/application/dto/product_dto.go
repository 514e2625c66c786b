package dto

import "time"

// ProductRequest campos de producto que el cliente puede enviar. El dueño y la fecha de alta
// no forman parte del formulario. ID solo se usa al editar y debe coincidir con la ruta.
type ProductRequest struct {
	ID             int64  `json:"id" form:"id"`
	Name           string `json:"name" form:"name" validate:"required,max=100"`
	Category       string `json:"category" form:"category" validate:"max=50"`
	ProductionDate string `json:"production_date" form:"production_date" validate:"required"`
	Description    string `json:"description" form:"description" validate:"max=500"`
}

// ProductResponse vista de un producto.
type ProductResponse struct {
	ID             int64     `json:"id"`
	FarmerID       int64     `json:"farmer_id"`
	FarmerName     string    `json:"farmer_name,omitempty"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	ProductionDate time.Time `json:"production_date"`
	Description    string    `json:"description"`
	AddedDate      time.Time `json:"added_date"`
}

// ProductListResponse listado de productos con un mensaje informativo opcional.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Message  string            `json:"message,omitempty"`
}

// ProductFilterRequest filtros opcionales (fechas en formato 2006-01-02).
type ProductFilterRequest struct {
	Category string `json:"category" form:"category" query:"category"`
	FromDate string `json:"from_date" form:"from_date" query:"fromDate"`
	ToDate   string `json:"to_date" form:"to_date" query:"toDate"`
}

// FilterProductsResponse resultado del filtrado junto con los filtros aplicados.
type FilterProductsResponse struct {
	Filter   ProductFilterRequest `json:"filter"`
	Products []ProductResponse    `json:"products"`
}
