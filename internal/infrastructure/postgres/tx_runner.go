package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/AgriConnect-api/internal/application/identity"
	"github.com/jhoicas/AgriConnect-api/internal/domain/repository"
)

var _ identity.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	db DB
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(db DB) *TxRunner {
	return &TxRunner{db: db}
}

// RunIdentity inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunIdentity(ctx context.Context, fn func(
	accountRepo repository.AccountRepository,
	roleRepo repository.RoleRepository,
	farmerRepo repository.FarmerRepository,
	employeeRepo repository.EmployeeRepository,
) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewAccountRepository(tx),
		NewRoleRepository(tx),
		NewFarmerRepository(tx),
		NewEmployeeRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
