package entity

import "time"

// Product producto registrado por un agricultor. FarmerID y AddedDate los fija el servidor.
type Product struct {
	ID             int64     `db:"id"`
	FarmerID       int64     `db:"farmer_id"`
	Name           string    `db:"name"`
	Category       string    `db:"category"`
	ProductionDate time.Time `db:"production_date"`
	Description    string    `db:"description"`
	AddedDate      time.Time `db:"added_date"`

	// Farmer se carga solo en los listados que incluyen al dueño.
	Farmer *Farmer `db:"-"`
}

// ProductFilter criterios del listado filtrado de productos.
// Un límite nil significa "sin límite" por ese lado.
type ProductFilter struct {
	Category string
	From     *time.Time
	To       *time.Time
}

// LowerBound límite inferior inclusivo (tal cual se recibió).
func (f ProductFilter) LowerBound() *time.Time {
	return f.From
}

// UpperBound límite superior inclusivo: el final del día de To, para que una fecha
// sin hora incluya el día completo.
func (f ProductFilter) UpperBound() *time.Time {
	if f.To == nil {
		return nil
	}
	end := EndOfDay(*f.To)
	return &end
}

// EndOfDay último instante representable del día calendario de t (inicio del día siguiente menos 1ns).
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
