package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rogerio-castellano/inventory-insights/internal/models"
)

type PostgresTransferRepository struct {
	db *sql.DB
}

func NewPostgresTransferRepository(db *sql.DB) *PostgresTransferRepository {
	return &PostgresTransferRepository{db: db}
}

// Log inserts a new relocation record
func (r *PostgresTransferRepository) Log(t models.TransferRecord) error {
	query := `INSERT INTO transfers (id, product_id, from_location, to_location, quantity, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, query, t.ID, t.ProductID, string(t.From), string(t.To), t.Quantity, t.CreatedAt.UTC()); err != nil {
		return fmt.Errorf("failed to insert transfer: %w", err)
	}
	return nil
}

const defaultLimit = 100

// GetByProductID returns the relocations of a product, newest first
func (r *PostgresTransferRepository) GetByProductID(productID string, tf TransferFilter) ([]models.TransferRecord, int, error) {
	if tf.Offset != nil && *tf.Offset < 0 {
		return nil, 0, fmt.Errorf("offset must be non-negative")
	}

	whereClause, args := r.buildWhereClause(productID, tf)

	total, err := r.getTotal(whereClause, args)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get total count: %w", err)
	}

	if tf.Offset != nil && *tf.Offset >= total {
		return []models.TransferRecord{}, total, nil
	}

	query, queryArgs := r.buildMainQuery(whereClause, args, tf)
	transfers, err := r.executeQuery(query, queryArgs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute query: %w", err)
	}

	return transfers, total, nil
}

func (r *PostgresTransferRepository) buildWhereClause(productID string, tf TransferFilter) (string, []any) {
	args := []any{productID}
	whereClause := "WHERE product_id = $1"
	argIndex := 2

	if tf.Since != nil {
		whereClause += fmt.Sprintf(" AND created_at >= $%d", argIndex)
		args = append(args, *tf.Since)
		argIndex++
	}

	if tf.Until != nil {
		whereClause += fmt.Sprintf(" AND created_at <= $%d", argIndex)
		args = append(args, *tf.Until)
	}

	return whereClause, args
}

func (r *PostgresTransferRepository) buildMainQuery(whereClause string, baseArgs []any, tf TransferFilter) (string, []any) {
	query := fmt.Sprintf("SELECT id, product_id, from_location, to_location, quantity, created_at FROM transfers %s ORDER BY created_at DESC", whereClause)
	args := make([]any, len(baseArgs))
	copy(args, baseArgs)
	argIndex := len(baseArgs) + 1

	limit := defaultLimit
	if tf.Limit != nil && *tf.Limit > 0 {
		limit = min(*tf.Limit, defaultLimit)
	}
	query += fmt.Sprintf(" LIMIT $%d", argIndex)
	args = append(args, limit)
	argIndex++

	if tf.Offset != nil && *tf.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, *tf.Offset)
	}

	return query, args
}

func (r *PostgresTransferRepository) getTotal(whereClause string, args []any) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var total int
	err := r.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM transfers %s", whereClause), args...).Scan(&total)
	return total, err
}

func (r *PostgresTransferRepository) executeQuery(query string, args []any) ([]models.TransferRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transfers := []models.TransferRecord{}
	for rows.Next() {
		var (
			t        models.TransferRecord
			from, to string
		)
		if err := rows.Scan(&t.ID, &t.ProductID, &from, &to, &t.Quantity, &t.CreatedAt); err != nil {
			return nil, err
		}
		t.From, t.To = models.Location(from), models.Location(to)
		transfers = append(transfers, t)
	}

	return transfers, rows.Err()
}
