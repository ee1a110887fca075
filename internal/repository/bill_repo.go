package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/billed-app/billed-server/internal/domain/entity"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BillRepository persists Bill records in the bills table.
type BillRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBillRepository creates a new bill repository
func NewBillRepository(db *sql.DB, logger *zap.Logger) *BillRepository {
	return &BillRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a new bill. The store assigns the identifier; the
// bill's ID field is set on return.
func (r *BillRepository) Create(ctx context.Context, bill *entity.Bill) error {
	if bill.ID == "" {
		bill.ID = uuid.NewString()
	}
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = time.Now().UTC()
	}

	// Receipt fields are set together or not at all.
	if (bill.FileURL == "") != (bill.FileName == "") {
		return fmt.Errorf("bill %s has mismatched receipt fields", bill.ID)
	}

	query := `
		INSERT INTO bills (
			id, email, type, name, amount, date, vat, pct,
			commentary, file_url, file_name, status, comment_admin, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		bill.ID,
		bill.Email,
		bill.Type,
		bill.Name,
		bill.Amount,
		bill.Date,
		bill.VAT,
		bill.Pct,
		bill.Commentary,
		bill.FileURL,
		bill.FileName,
		bill.Status,
		bill.CommentAdmin,
		bill.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create bill", zap.Error(err))
		return fmt.Errorf("failed to create bill: %w", err)
	}

	return nil
}

// GetAll retrieves every bill document in the store. Filtering by owner
// happens client-side in the list service.
func (r *BillRepository) GetAll(ctx context.Context) ([]*entity.Bill, error) {
	query := `
		SELECT id, email, type, name, amount, date, vat, pct,
			commentary, file_url, file_name, status, comment_admin, created_at
		FROM bills
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to query bills", zap.Error(err))
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer rows.Close()

	var bills []*entity.Bill
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bills: %w", err)
	}

	return bills, nil
}

// GetByID retrieves a bill by ID, or nil when no such bill exists.
func (r *BillRepository) GetByID(ctx context.Context, id string) (*entity.Bill, error) {
	query := `
		SELECT id, email, type, name, amount, date, vat, pct,
			commentary, file_url, file_name, status, comment_admin, created_at
		FROM bills
		WHERE id = ?
	`

	bill, err := scanBill(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get bill by ID", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	return bill, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBill(row rowScanner) (*entity.Bill, error) {
	var bill entity.Bill
	err := row.Scan(
		&bill.ID,
		&bill.Email,
		&bill.Type,
		&bill.Name,
		&bill.Amount,
		&bill.Date,
		&bill.VAT,
		&bill.Pct,
		&bill.Commentary,
		&bill.FileURL,
		&bill.FileName,
		&bill.Status,
		&bill.CommentAdmin,
		&bill.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan bill: %w", err)
	}
	return &bill, nil
}
