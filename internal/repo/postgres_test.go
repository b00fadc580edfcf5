package repo

import (
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rogerio-castellano/inventory-insights/internal/models"
)

// passthrough lets slice arguments reach the mock the way the pgx driver accepts them.
type passthrough struct{}

func (passthrough) ConvertValue(v any) (driver.Value, error) { return v, nil }

func newMock(t *testing.T) (sqlmock.Sqlmock, *PostgresProductRepository, *PostgresTransferRepository) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.ValueConverterOption(passthrough{}))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return mock, NewPostgresProductRepository(db), NewPostgresTransferRepository(db)
}

// supplierArg matches the nullable supplier_id argument.
type supplierArg struct {
	id    string
	valid bool
}

func (a supplierArg) Match(v driver.Value) bool {
	ns, ok := v.(sql.NullString)
	return ok && ns.Valid == a.valid && ns.String == a.id
}

var productRowColumns = []string{"id", "name", "category", "current_stock", "min_stock", "max_stock", "price", "lead_time", "location", "image_url",
	"s_id", "s_name", "s_contact", "s_email", "s_category", "s_rating"}

func TestPostgresProductRepository_GetByID(t *testing.T) {
	mock, products, _ := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.id = $1")).
		WithArgs("1").
		WillReturnRows(sqlmock.NewRows(productRowColumns).
			AddRow("1", "Hydraulic Pump", "Hardware", 12, 20, 100, 450.0, 7, "North", "", "S1", "Global Parts Inc.", "John Doe", "orders@globalparts.com", "Hardware", 4.8))
	mock.ExpectQuery(regexp.QuoteMeta("FROM sales_points WHERE product_id = ANY($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "sale_date", "quantity"}).
			AddRow("1", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 4).
			AddRow("1", time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC), 6))

	p, err := products.GetByID("1")
	require.NoError(t, err)
	assert.Equal(t, "Hydraulic Pump", p.Name)
	assert.Equal(t, models.LocationNorth, p.Location)
	require.NotNil(t, p.Supplier)
	assert.Equal(t, "Global Parts Inc.", p.Supplier.Name)
	assert.Equal(t, []models.SalesPoint{{Date: "2024-02-01", Quantity: 4}, {Date: "2024-02-02", Quantity: 6}}, p.HistoricalSales)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProductRepository_GetByIDNotFound(t *testing.T) {
	mock, products, _ := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE p.id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(productRowColumns))

	_, err := products.GetByID("missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProductRepository_CreateDuplicate(t *testing.T) {
	mock, products, _ := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO products")).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err := products.Create(models.Product{ID: "1", Name: "Hydraulic Pump", Location: models.LocationNorth})
	assert.ErrorIs(t, err, ErrDuplicatedValueUnique)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProductRepository_CreateWithSupplierAndSales(t *testing.T) {
	mock, products, _ := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO suppliers")).
		WithArgs("S1", "Global Parts Inc.", "", "", "", 0.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO products")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sales_points")).
		WithArgs("1", "2024-02-01", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := products.Create(models.Product{
		ID:              "1",
		Name:            "Hydraulic Pump",
		Location:        models.LocationNorth,
		Supplier:        &models.Supplier{ID: "S1", Name: "Global Parts Inc."},
		HistoricalSales: []models.SalesPoint{{Date: "2024-02-01", Quantity: 3}},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProductRepository_CreateAssignsID(t *testing.T) {
	mock, products, _ := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO products")).
		WithArgs(sqlmock.AnyArg(), "Valve", "", 0, 0, 0, 0.0, 0, "South", supplierArg{}, "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	p, err := products.Create(models.Product{Name: "Valve", Location: models.LocationSouth})
	require.NoError(t, err)
	assert.Len(t, p.ID, 8)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProductRepository_UpdateNotFound(t *testing.T) {
	mock, products, _ := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := products.Update(models.Product{ID: "missing", Location: models.LocationEast})
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProductRepository_UpdateWritesSupplier(t *testing.T) {
	mock, products, _ := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO suppliers")).
		WithArgs("S2", "Prime Valves", "", "", "Hardware", 4.1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("supplier_id = $10 WHERE id = $11")).
		WithArgs("Hydraulic Pump", "Hardware", 12, 20, 100, 450.0, 7, "North", "",
			supplierArg{id: "S2", valid: true}, "1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	p, err := products.Update(models.Product{
		ID: "1", Name: "Hydraulic Pump", Category: "Hardware", CurrentStock: 12, MinStock: 20, MaxStock: 100,
		Price: 450, LeadTime: 7, Location: models.LocationNorth,
		Supplier: &models.Supplier{ID: "S2", Name: "Prime Valves", Category: "Hardware", Rating: 4.1},
	})
	require.NoError(t, err)
	assert.Equal(t, "S2", p.Supplier.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProductRepository_UpdateClearsSupplier(t *testing.T) {
	mock, products, _ := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("supplier_id = $10 WHERE id = $11")).
		WithArgs("Hydraulic Pump", "", 0, 0, 0, 0.0, 0, "North", "", supplierArg{}, "1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := products.Update(models.Product{ID: "1", Name: "Hydraulic Pump", Location: models.LocationNorth})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProductRepository_UpdateDuplicateName(t *testing.T) {
	mock, products, _ := newMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE products SET")).
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err := products.Update(models.Product{ID: "2", Name: "Hydraulic Pump", Location: models.LocationEast})
	assert.ErrorIs(t, err, ErrDuplicatedValueUnique)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresProductRepository_FilterBuildsConditions(t *testing.T) {
	mock, products, _ := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM products p WHERE 1=1 AND p.name ILIKE $1 AND lower(p.location) = lower($2)")).
		WithArgs("%pump%", "North").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("AND lower(p.location) = lower($2) ORDER BY p.id LIMIT $3")).
		WithArgs("%pump%", "North", 5).
		WillReturnRows(sqlmock.NewRows(productRowColumns))

	got, total, err := products.Filter(ProductFilter{Name: "pump", Category: "All", Location: models.LocationNorth, Limit: intPtr(5)})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTransferRepository_Log(t *testing.T) {
	mock, _, transfers := newMock(t)
	at := time.Date(2024, 2, 3, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transfers")).
		WithArgs("t1", "1", "North", "South", 12, at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := transfers.Log(models.TransferRecord{ID: "t1", ProductID: "1", From: models.LocationNorth, To: models.LocationSouth, Quantity: 12, CreatedAt: at})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTransferRepository_GetByProductID(t *testing.T) {
	mock, _, transfers := newMock(t)
	at := time.Date(2024, 2, 3, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM transfers WHERE product_id = $1")).
		WithArgs("1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC LIMIT $2")).
		WithArgs("1", 100).
		WillReturnRows(sqlmock.NewRows([]string{"id", "product_id", "from_location", "to_location", "quantity", "created_at"}).
			AddRow("t1", "1", "North", "South", 12, at))

	got, total, err := transfers.GetByProductID("1", TransferFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, got, 1)
	assert.Equal(t, models.LocationSouth, got[0].To)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTransferRepository_NegativeOffset(t *testing.T) {
	_, _, transfers := newMock(t)

	_, _, err := transfers.GetByProductID("1", TransferFilter{Offset: intPtr(-1)})
	assert.Error(t, err)
}

func newSupplierMock(t *testing.T) (sqlmock.Sqlmock, *PostgresSupplierRepository) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return mock, NewPostgresSupplierRepository(db)
}

var supplierRowColumns = []string{"id", "name", "contact", "email", "category", "rating"}

func TestPostgresSupplierRepository_GetAll(t *testing.T) {
	mock, suppliers := newSupplierMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM suppliers ORDER BY id")).
		WillReturnRows(sqlmock.NewRows(supplierRowColumns).
			AddRow("S1", "Global Parts Inc.", "John Doe", "orders@globalparts.com", "Hardware", 4.8).
			AddRow("S2", "Prime Valves", "", "", "Hardware", 4.1))

	got, err := suppliers.GetAll()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.Supplier{ID: "S1", Name: "Global Parts Inc.", Contact: "John Doe", Email: "orders@globalparts.com", Category: "Hardware", Rating: 4.8}, got[0])
	assert.Equal(t, 4.1, got[1].Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSupplierRepository_GetByID(t *testing.T) {
	mock, suppliers := newSupplierMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM suppliers WHERE id = $1")).
		WithArgs("S1").
		WillReturnRows(sqlmock.NewRows(supplierRowColumns).
			AddRow("S1", "Global Parts Inc.", "John Doe", "orders@globalparts.com", "Hardware", 4.8))
	mock.ExpectQuery(regexp.QuoteMeta("FROM suppliers WHERE id = $1")).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(supplierRowColumns))

	s, err := suppliers.GetByID("S1")
	require.NoError(t, err)
	assert.Equal(t, "Global Parts Inc.", s.Name)

	_, err = suppliers.GetByID("missing")
	assert.ErrorIs(t, err, ErrSupplierNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
