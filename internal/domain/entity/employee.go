package entity

// Employee perfil de dominio del empleado: 1-1 con su Account (borrado en cascada)
// y opcionalmente asociado a un Farmer. Los datos personales se pueden completar después.
type Employee struct {
	ID            int64   `db:"id"`
	AccountID     string  `db:"account_id"`
	FarmerID      *int64  `db:"farmer_id"`
	FirstName     *string `db:"first_name"`
	LastName      *string `db:"last_name"`
	ContactNumber *string `db:"contact_number"`
	Email         *string `db:"email"`
}
