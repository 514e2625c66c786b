package entity

import "time"

// Farmer perfil de dominio del agricultor. Es dueño de sus Products.
// AccountID enlaza el perfil con la cuenta que lo registró; es nil para agricultores
// sembrados o dados de alta por un empleado.
type Farmer struct {
	ID               int64     `db:"id"`
	AccountID        *string   `db:"account_id"`
	FirstName        string    `db:"first_name"`
	LastName         string    `db:"last_name"`
	ContactNumber    string    `db:"contact_number"`
	Email            string    `db:"email"`
	Address          string    `db:"address"`
	RegistrationDate time.Time `db:"registration_date"`
}

// FullName nombre para mostrar.
func (f *Farmer) FullName() string {
	return f.FirstName + " " + f.LastName
}

// Owns indica si el producto pertenece a este agricultor.
func (f *Farmer) Owns(p *Product) bool {
	return f != nil && p != nil && p.FarmerID == f.ID
}
