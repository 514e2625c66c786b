package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/AgriConnect-api/internal/domain"
	"github.com/jhoicas/AgriConnect-api/internal/domain/entity"
	"github.com/jhoicas/AgriConnect-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

var productColumns = []string{"id", "farmer_id", "name", "category", "production_date", "description", "added_date"}

// productWithFarmer fila del listado de productos con los datos de su agricultor.
type productWithFarmer struct {
	entity.Product
	FarmerAccountID        *string   `db:"farmer_account_id"`
	FarmerFirstName        string    `db:"farmer_first_name"`
	FarmerLastName         string    `db:"farmer_last_name"`
	FarmerContactNumber    string    `db:"farmer_contact_number"`
	FarmerEmail            string    `db:"farmer_email"`
	FarmerAddress          string    `db:"farmer_address"`
	FarmerRegistrationDate time.Time `db:"farmer_registration_date"`
}

func (row *productWithFarmer) toEntity() *entity.Product {
	p := row.Product
	p.Farmer = &entity.Farmer{
		ID:               p.FarmerID,
		AccountID:        row.FarmerAccountID,
		FirstName:        row.FarmerFirstName,
		LastName:         row.FarmerLastName,
		ContactNumber:    row.FarmerContactNumber,
		Email:            row.FarmerEmail,
		Address:          row.FarmerAddress,
		RegistrationDate: row.FarmerRegistrationDate,
	}
	return &p
}

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto y asigna el id generado.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query, args, err := psql.Insert("products").
		Columns(productColumns[1:]...).
		Values(p.FarmerID, p.Name, p.Category, p.ProductionDate, p.Description, p.AddedDate).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert product: %w", err)
	}
	if err := r.q.QueryRow(ctx, query, args...).Scan(&p.ID); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: agricultor %d", domain.ErrInvalidInput, p.FarmerID)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID, sin su agricultor. (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query, args, err := psql.Select(productColumns...).From("products").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select product: %w", err)
	}
	var p entity.Product
	if err := pgxscan.Get(ctx, r.q, &p, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("product exists: %w", err)
	}
	return ok, nil
}

func (r *ProductRepo) CountByFarmer(ctx context.Context, farmerID int64) (int, error) {
	query, args, err := psql.Select("COUNT(*)").From("products").Where(squirrel.Eq{"farmer_id": farmerID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count products: %w", err)
	}
	var n int
	if err := r.q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// selectWithFarmer consulta base de los listados: productos con su agricultor, ordenados por id.
func selectWithFarmer() squirrel.SelectBuilder {
	return psql.Select(
		"p.id", "p.farmer_id", "p.name", "p.category", "p.production_date", "p.description", "p.added_date",
		"f.account_id AS farmer_account_id",
		"f.first_name AS farmer_first_name",
		"f.last_name AS farmer_last_name",
		"f.contact_number AS farmer_contact_number",
		"f.email AS farmer_email",
		"f.address AS farmer_address",
		"f.registration_date AS farmer_registration_date",
	).
		From("products p").
		Join("farmers f ON f.id = p.farmer_id").
		OrderBy("p.id")
}

func (r *ProductRepo) list(ctx context.Context, qb squirrel.SelectBuilder) ([]*entity.Product, error) {
	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list products: %w", err)
	}
	var rows []*productWithFarmer
	if err := pgxscan.Select(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	out := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

func (r *ProductRepo) ListByFarmer(ctx context.Context, farmerID int64) ([]*entity.Product, error) {
	return r.list(ctx, selectWithFarmer().Where(squirrel.Eq{"p.farmer_id": farmerID}))
}

// Filter aplica categoría exacta y rango inclusivo de fecha de producción.
func (r *ProductRepo) Filter(ctx context.Context, f entity.ProductFilter) ([]*entity.Product, error) {
	qb := selectWithFarmer()
	if f.Category != "" {
		qb = qb.Where(squirrel.Eq{"p.category": f.Category})
	}
	if lower := f.LowerBound(); lower != nil {
		qb = qb.Where(squirrel.GtOrEq{"p.production_date": *lower})
	}
	if upper := f.UpperBound(); upper != nil {
		qb = qb.Where(squirrel.LtOrEq{"p.production_date": *upper})
	}
	return r.list(ctx, qb)
}

// Update modifica los campos editables solo si la fila sigue siendo de p.FarmerID.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query, args, err := psql.Update("products").
		Set("name", p.Name).
		Set("category", p.Category).
		Set("production_date", p.ProductionDate).
		Set("description", p.Description).
		Where(squirrel.Eq{"id": p.ID}).
		Where(squirrel.Eq{"farmer_id": p.FarmerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update product: %w", err)
	}
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id, farmerID int64) error {
	query, args, err := psql.Delete("products").
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"farmer_id": farmerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete product: %w", err)
	}
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}
