package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mmynk/quicksplit/internal/models"
	"github.com/mmynk/quicksplit/internal/storage"
)

// CreateReceipt persists a new receipt with its full graph.
func (s *SQLiteStore) CreateReceipt(ctx context.Context, receipt *models.Receipt) error {
	// Generate IDs if not set
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if receipt.CreatedAt == 0 {
		receipt.CreatedAt = time.Now().Unix()
	}
	if receipt.Label == "" {
		receipt.Label = generateLabel(receipt.CreatedAt)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertReceiptRow(ctx, tx, receipt); err != nil {
		return err
	}
	if err := insertChildren(ctx, tx, receipt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateReceipt replaces the stored state of an existing receipt. Child rows
// are rewritten wholesale; the receipt graph is small and single-writer, so
// a diff is not worth its complexity.
func (s *SQLiteStore) UpdateReceipt(ctx context.Context, receipt *models.Receipt) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE receipts
		 SET label = ?, subtotal = ?, tax_amount = ?, tip_amount = ?, grand_total = ?,
		     tax_enabled = ?, tax_rate = ?, tip_rate = ?
		 WHERE id = ?`,
		receipt.Label,
		receipt.Subtotal.String(), receipt.TaxAmount.String(),
		receipt.TipAmount.String(), receipt.GrandTotal.String(),
		boolToInt(receipt.TaxEnabled), receipt.TaxRate.String(), receipt.TipRate.String(),
		receipt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update receipt: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	// Claims cascade from items, so dropping items and participants clears
	// the whole child graph.
	if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE receipt_id = ?", receipt.ID); err != nil {
		return fmt.Errorf("failed to clear items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM participants WHERE receipt_id = ?", receipt.ID); err != nil {
		return fmt.Errorf("failed to clear participants: %w", err)
	}
	if err := insertChildren(ctx, tx, receipt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetReceipt retrieves a receipt by ID, including items, claims and
// participants in insertion order.
func (s *SQLiteStore) GetReceipt(ctx context.Context, receiptID string) (*models.Receipt, error) {
	receipt, err := s.scanReceiptRow(s.db.QueryRowContext(ctx,
		`SELECT id, label, owner_id, subtotal, tax_amount, tip_amount, grand_total,
		        tax_enabled, tax_rate, tip_rate, created_at
		 FROM receipts WHERE id = ?`,
		receiptID,
	))
	if err != nil {
		return nil, err
	}
	if err := s.loadChildren(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// DeleteReceipt removes a receipt; items, participants and claims cascade.
func (s *SQLiteStore) DeleteReceipt(ctx context.Context, receiptID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM receipts WHERE id = ?", receiptID)
	if err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ListReceipts returns all receipts owned by the given user, newest first.
func (s *SQLiteStore) ListReceipts(ctx context.Context, ownerID string) ([]*models.Receipt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, label, owner_id, subtotal, tax_amount, tip_amount, grand_total,
		        tax_enabled, tax_rate, tip_rate, created_at
		 FROM receipts WHERE owner_id = ? ORDER BY created_at DESC, id`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer rows.Close()

	var receipts []*models.Receipt
	for rows.Next() {
		receipt, err := s.scanReceiptRow(rows)
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receipts: %w", err)
	}

	for _, receipt := range receipts {
		if err := s.loadChildren(ctx, receipt); err != nil {
			return nil, err
		}
	}
	return receipts, nil
}

// scanner abstracts sql.Row and sql.Rows for shared scanning.
type scanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteStore) scanReceiptRow(row scanner) (*models.Receipt, error) {
	receipt := &models.Receipt{}
	var subtotal, taxAmount, tipAmount, grandTotal, taxRate, tipRate string
	var taxEnabled int

	err := row.Scan(
		&receipt.ID, &receipt.Label, &receipt.OwnerID,
		&subtotal, &taxAmount, &tipAmount, &grandTotal,
		&taxEnabled, &taxRate, &tipRate, &receipt.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan receipt: %w", err)
	}

	receipt.TaxEnabled = taxEnabled != 0
	for _, field := range []struct {
		dst *decimal.Decimal
		src string
	}{
		{&receipt.Subtotal, subtotal},
		{&receipt.TaxAmount, taxAmount},
		{&receipt.TipAmount, tipAmount},
		{&receipt.GrandTotal, grandTotal},
		{&receipt.TaxRate, taxRate},
		{&receipt.TipRate, tipRate},
	} {
		d, err := decimal.NewFromString(field.src)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stored amount %q: %w", field.src, err)
		}
		*field.dst = d
	}
	return receipt, nil
}

func (s *SQLiteStore) loadChildren(ctx context.Context, receipt *models.Receipt) error {
	// Participants
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name FROM participants WHERE receipt_id = ? ORDER BY position",
		receipt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		receipt.Participants = append(receipt.Participants, p)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}

	// Items with their claims
	itemRows, err := s.db.QueryContext(ctx,
		"SELECT id, name, unit_price, quantity FROM items WHERE receipt_id = ? ORDER BY position",
		receipt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.LineItem
		var unitPrice string
		if err := itemRows.Scan(&item.ID, &item.Name, &unitPrice, &item.Quantity); err != nil {
			return fmt.Errorf("failed to scan item: %w", err)
		}
		item.UnitPrice, err = decimal.NewFromString(unitPrice)
		if err != nil {
			return fmt.Errorf("failed to parse stored unit price %q: %w", unitPrice, err)
		}

		claimRows, err := s.db.QueryContext(ctx,
			`SELECT id, participant_id, kind, portions, claimed_at
			 FROM claims WHERE item_id = ? ORDER BY position`,
			item.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to get claims: %w", err)
		}
		for claimRows.Next() {
			var c models.Claim
			var kind string
			if err := claimRows.Scan(&c.ID, &c.ParticipantID, &kind, &c.Portions, &c.ClaimedAt); err != nil {
				claimRows.Close()
				return fmt.Errorf("failed to scan claim: %w", err)
			}
			c.Kind = models.ClaimKind(kind)
			item.Claims = append(item.Claims, c)
		}
		claimRows.Close()
		if err := claimRows.Err(); err != nil {
			return fmt.Errorf("failed to iterate claims: %w", err)
		}

		receipt.Items = append(receipt.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return fmt.Errorf("failed to iterate items: %w", err)
	}
	return nil
}

func insertReceiptRow(ctx context.Context, tx *sql.Tx, receipt *models.Receipt) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO receipts (id, label, owner_id, subtotal, tax_amount, tip_amount,
		                       grand_total, tax_enabled, tax_rate, tip_rate, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		receipt.ID, receipt.Label, receipt.OwnerID,
		receipt.Subtotal.String(), receipt.TaxAmount.String(),
		receipt.TipAmount.String(), receipt.GrandTotal.String(),
		boolToInt(receipt.TaxEnabled), receipt.TaxRate.String(), receipt.TipRate.String(),
		receipt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}
	return nil
}

func insertChildren(ctx context.Context, tx *sql.Tx, receipt *models.Receipt) error {
	for pos, p := range receipt.Participants {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO participants (id, receipt_id, name, position) VALUES (?, ?, ?, ?)",
			p.ID, receipt.ID, p.Name, pos,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	for pos := range receipt.Items {
		item := &receipt.Items[pos]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO items (id, receipt_id, name, unit_price, quantity, position) VALUES (?, ?, ?, ?, ?, ?)",
			item.ID, receipt.ID, item.Name, item.UnitPrice.String(), item.Quantity, pos,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		for cpos, c := range item.Claims {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO claims (id, item_id, participant_id, kind, portions, claimed_at, position)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				c.ID, item.ID, c.ParticipantID, string(c.Kind), c.Portions, c.ClaimedAt, cpos,
			)
			if err != nil {
				return fmt.Errorf("failed to insert claim: %w", err)
			}
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// generateLabel creates a fallback label for receipts created without one.
func generateLabel(createdAt int64) string {
	return fmt.Sprintf("Receipt - %s", time.Unix(createdAt, 0).Format("Jan 2, 2006"))
}
