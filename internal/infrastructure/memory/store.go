// Package memory implementa los repositorios en memoria. Sirve como driver de demostración
// (STORE_DRIVER=memory) y como almacén de los tests de casos de uso y de HTTP.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/AgriConnect-api/internal/domain/entity"
	"github.com/jhoicas/AgriConnect-api/internal/domain/repository"
)

type state struct {
	accounts  map[string]entity.Account
	roles     map[entity.Role]bool
	members   map[string]map[entity.Role]bool
	farmers   map[int64]entity.Farmer
	employees map[int64]entity.Employee
	products  map[int64]entity.Product

	nextFarmer, nextEmployee, nextProduct int64
}

func newState() *state {
	return &state{
		accounts:  make(map[string]entity.Account),
		roles:     make(map[entity.Role]bool),
		members:   make(map[string]map[entity.Role]bool),
		farmers:   make(map[int64]entity.Farmer),
		employees: make(map[int64]entity.Employee),
		products:  make(map[int64]entity.Product),
	}
}

func (st *state) clone() *state {
	c := newState()
	for k, v := range st.accounts {
		c.accounts[k] = v
	}
	for k, v := range st.roles {
		c.roles[k] = v
	}
	for k, set := range st.members {
		m := make(map[entity.Role]bool, len(set))
		for r, ok := range set {
			m[r] = ok
		}
		c.members[k] = m
	}
	for k, v := range st.farmers {
		c.farmers[k] = v
	}
	for k, v := range st.employees {
		c.employees[k] = v
	}
	for k, v := range st.products {
		c.products[k] = v
	}
	c.nextFarmer, c.nextEmployee, c.nextProduct = st.nextFarmer, st.nextEmployee, st.nextProduct
	return c
}

// Store almacén en memoria seguro para uso concurrente. Las transacciones trabajan sobre
// una copia del estado y la publican al confirmar.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// NewSeededStore crea un almacén con los mismos datos iniciales que la migración de semilla.
func NewSeededStore() *Store {
	s := NewStore()
	s.Seed()
	return s
}

// Seed carga roles, dos agricultores y dos productos de ejemplo.
func (s *Store) Seed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.st
	for _, r := range entity.AllRoles {
		st.roles[r] = true
	}
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	st.farmers[1] = entity.Farmer{ID: 1, FirstName: "John", LastName: "Doe", ContactNumber: "1234567890",
		Email: "john@example.com", Address: "123 Farm Lane", RegistrationDate: day(2024, 1, 10)}
	st.farmers[2] = entity.Farmer{ID: 2, FirstName: "Jane", LastName: "Smith", ContactNumber: "0987654321",
		Email: "jane@example.com", Address: "456 Field Road", RegistrationDate: day(2024, 2, 15)}
	st.products[1] = entity.Product{ID: 1, FarmerID: 1, Name: "Corn", Category: "Grains",
		ProductionDate: day(2024, 3, 1), Description: "Fresh corn from John's farm.", AddedDate: day(2024, 3, 5)}
	st.products[2] = entity.Product{ID: 2, FarmerID: 2, Name: "Milk", Category: "Dairy",
		ProductionDate: day(2024, 3, 2), Description: "Organic milk from Jane.", AddedDate: day(2024, 3, 6)}
	if st.nextFarmer < 2 {
		st.nextFarmer = 2
	}
	if st.nextProduct < 2 {
		st.nextProduct = 2
	}
}

// handle da acceso al estado: el compartido (con lock) o el de una transacción en curso.
type handle struct {
	store *Store
	tx    *state
}

func (h handle) read(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if h.tx != nil {
		return fn(h.tx)
	}
	h.store.mu.RLock()
	defer h.store.mu.RUnlock()
	return fn(h.store.st)
}

func (h handle) write(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if h.tx != nil {
		return fn(h.tx)
	}
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	return fn(h.store.st)
}

func (s *Store) Accounts() repository.AccountRepository   { return &AccountRepository{h: handle{store: s}} }
func (s *Store) Roles() repository.RoleRepository         { return &RoleRepository{h: handle{store: s}} }
func (s *Store) Farmers() repository.FarmerRepository     { return &FarmerRepository{h: handle{store: s}} }
func (s *Store) Employees() repository.EmployeeRepository { return &EmployeeRepository{h: handle{store: s}} }
func (s *Store) Products() repository.ProductRepository   { return &ProductRepository{h: handle{store: s}} }

// RunIdentity ejecuta fn sobre una copia del estado; si fn termina sin error la copia
// reemplaza al estado compartido. Las transacciones se serializan.
func (s *Store) RunIdentity(ctx context.Context, fn func(
	accountRepo repository.AccountRepository,
	roleRepo repository.RoleRepository,
	farmerRepo repository.FarmerRepository,
	employeeRepo repository.EmployeeRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := s.st.clone()
	h := handle{store: s, tx: tx}
	if err := fn(&AccountRepository{h: h}, &RoleRepository{h: h}, &FarmerRepository{h: h}, &EmployeeRepository{h: h}); err != nil {
		return err
	}
	s.st = tx
	return nil
}
