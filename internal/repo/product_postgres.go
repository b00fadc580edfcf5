package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rogerio-castellano/inventory-insights/internal/models"
)

const uniqueViolation = "23505"

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

const productColumns = `p.id, p.name, p.category, p.current_stock, p.min_stock, p.max_stock, p.price, p.lead_time, p.location, p.image_url,
	s.id, s.name, s.contact, s.email, s.category, s.rating`

const productFrom = ` FROM products p LEFT JOIN suppliers s ON s.id = p.supplier_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (models.Product, error) {
	var (
		p                                         models.Product
		location                                  string
		supID, supName, supContact, supEmail, cat sql.NullString
		rating                                    sql.NullFloat64
	)
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.CurrentStock, &p.MinStock, &p.MaxStock, &p.Price, &p.LeadTime, &location, &p.ImageURL,
		&supID, &supName, &supContact, &supEmail, &cat, &rating)
	if err != nil {
		return models.Product{}, err
	}
	p.Location = models.Location(location)
	if supID.Valid {
		p.Supplier = &models.Supplier{
			ID:       supID.String,
			Name:     supName.String,
			Contact:  supContact.String,
			Email:    supEmail.String,
			Category: cat.String,
			Rating:   rating.Float64,
		}
	}
	return p, nil
}

// upsertSupplier makes sure the product's supplier row exists and returns the value for products.supplier_id.
func upsertSupplier(ctx context.Context, tx *sql.Tx, s *models.Supplier) (sql.NullString, error) {
	if s == nil {
		return sql.NullString{}, nil
	}
	_, err := tx.ExecContext(ctx,
		`INSERT INTO suppliers (id, name, contact, email, category, rating) VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (id) DO NOTHING`,
		s.ID, s.Name, s.Contact, s.Email, s.Category, s.Rating)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to insert supplier: %w", err)
	}
	return sql.NullString{String: s.ID, Valid: true}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Create inserts the product with its supplier and sales history, assigning an id when none is given.
func (r *PostgresProductRepository) Create(p models.Product) (models.Product, error) {
	if p.ID == "" {
		p.ID = NewProductID()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	supplierID, err := upsertSupplier(ctx, tx, p.Supplier)
	if err != nil {
		return models.Product{}, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO products (id, name, category, current_stock, min_stock, max_stock, price, lead_time, location, supplier_id, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.Name, p.Category, p.CurrentStock, p.MinStock, p.MaxStock, p.Price, p.LeadTime, string(p.Location), supplierID, p.ImageURL)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Product{}, ErrDuplicatedValueUnique
		}
		return models.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}

	for _, s := range p.HistoricalSales {
		if _, err := tx.ExecContext(ctx, `INSERT INTO sales_points (product_id, sale_date, quantity) VALUES ($1, $2, $3)`, p.ID, s.Date, s.Quantity); err != nil {
			return models.Product{}, fmt.Errorf("failed to insert sales point: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Product{}, fmt.Errorf("failed to commit product: %w", err)
	}
	return p, nil
}

func (r *PostgresProductRepository) GetAll() ([]models.Product, error) {
	products, _, err := r.Filter(ProductFilter{})
	return products, err
}

func (r *PostgresProductRepository) GetByID(id string) (models.Product, error) {
	return r.getOne(`WHERE p.id = $1`, id)
}

func (r *PostgresProductRepository) GetByName(name string) (models.Product, error) {
	return r.getOne(`WHERE lower(p.name) = lower($1)`, name)
}

func (r *PostgresProductRepository) getOne(where string, arg any) (models.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, `SELECT `+productColumns+productFrom+` `+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, err
	}

	products := []models.Product{p}
	if err := r.attachSales(ctx, products); err != nil {
		return models.Product{}, err
	}
	return products[0], nil
}

// Update writes every mutable column, supplier included. Sales history is append-only and not touched here.
func (r *PostgresProductRepository) Update(p models.Product) (models.Product, error) {
	query := `UPDATE products SET name = $1, category = $2, current_stock = $3, min_stock = $4, max_stock = $5,
		price = $6, lead_time = $7, location = $8, image_url = $9, supplier_id = $10 WHERE id = $11`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	supplierID, err := upsertSupplier(ctx, tx, p.Supplier)
	if err != nil {
		return models.Product{}, err
	}

	res, err := tx.ExecContext(ctx, query, p.Name, p.Category, p.CurrentStock, p.MinStock, p.MaxStock,
		p.Price, p.LeadTime, string(p.Location), p.ImageURL, supplierID, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Product{}, ErrDuplicatedValueUnique
		}
		return models.Product{}, fmt.Errorf("failed to update product: %w", err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Product{}, ErrProductNotFound
	}

	if err := tx.Commit(); err != nil {
		return models.Product{}, fmt.Errorf("failed to commit product: %w", err)
	}
	return p, nil
}

func (r *PostgresProductRepository) Filter(pf ProductFilter) ([]models.Product, int, error) {
	conditions, args, argIdx := filterConditions(pf)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM products p WHERE 1=1" + conditions
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + productFrom + ` WHERE 1=1` + conditions + ` ORDER BY p.id`
	if pf.Limit != nil && *pf.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *pf.Limit)
		argIdx++
	}
	if pf.Offset != nil && *pf.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *pf.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if err := r.attachSales(ctx, products); err != nil {
		return nil, 0, err
	}
	return products, totalCount, nil
}

func filterConditions(pf ProductFilter) (string, []any, int) {
	query := ""
	argIdx := 1
	args := []any{}

	if pf.Name != "" {
		query += fmt.Sprintf(" AND p.name ILIKE $%d", argIdx)
		args = append(args, "%"+pf.Name+"%")
		argIdx++
	}
	if !isAll(pf.Category) {
		query += fmt.Sprintf(" AND lower(p.category) = lower($%d)", argIdx)
		args = append(args, pf.Category)
		argIdx++
	}
	if !isAll(string(pf.Location)) {
		query += fmt.Sprintf(" AND lower(p.location) = lower($%d)", argIdx)
		args = append(args, string(pf.Location))
		argIdx++
	}

	return query, args, argIdx
}

// attachSales loads the sales history of every product in one query.
func (r *PostgresProductRepository) attachSales(ctx context.Context, products []models.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]string, len(products))
	index := make(map[string]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
		index[p.ID] = i
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, sale_date, quantity FROM sales_points WHERE product_id = ANY($1) ORDER BY product_id, sale_date`, ids)
	if err != nil {
		return fmt.Errorf("failed to load sales history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			productID string
			date      time.Time
			qty       int
		)
		if err := rows.Scan(&productID, &date, &qty); err != nil {
			return err
		}
		i, ok := index[productID]
		if !ok {
			continue
		}
		products[i].HistoricalSales = append(products[i].HistoricalSales, models.SalesPoint{Date: date.Format(time.DateOnly), Quantity: qty})
	}
	return rows.Err()
}
