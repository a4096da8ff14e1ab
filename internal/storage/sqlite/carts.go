package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/dentaldesk/internal/models"
	"github.com/mmynk/dentaldesk/internal/storage"
)

// CreateCart persists a new cart session along with any initial items.
func (s *SQLiteStore) CreateCart(ctx context.Context, cart *models.CartSession) error {
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if cart.CreatedAt == 0 {
		cart.CreatedAt = now
	}
	if cart.UpdatedAt == 0 {
		cart.UpdatedAt = cart.CreatedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO carts (id, patient_id, created_at, updated_at) VALUES (?, ?, ?, ?)",
		cart.ID, nullablePatient(cart.PatientID), cart.CreatedAt, cart.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert cart: %w", err)
	}

	if err := insertItems(ctx, tx, cart); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetCart retrieves a cart session with its items in insertion order.
func (s *SQLiteStore) GetCart(ctx context.Context, cartID string) (*models.CartSession, error) {
	cart := &models.CartSession{}
	var patientID sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT id, patient_id, created_at, updated_at FROM carts WHERE id = ?", cartID,
	).Scan(&cart.ID, &patientID, &cart.CreatedAt, &cart.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("cart %s: %w", cartID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	cart.PatientID = patientID.Int64

	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.name, p.code, p.unit_price_cents, p.category, ci.quantity
		FROM cart_items ci
		JOIN procedures p ON p.id = ci.procedure_id
		WHERE ci.cart_id = ?
		ORDER BY ci.position
	`, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item  models.LineItem
			cents int64
		)
		if err := rows.Scan(&item.Procedure.ID, &item.Procedure.Name, &item.Procedure.Code,
			&cents, &item.Procedure.Category, &item.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		item.Procedure.UnitPrice = models.Money(cents)
		cart.Items = append(cart.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cart items: %w", err)
	}

	return cart, nil
}

// SaveCart replaces the patient and items of an existing cart.
func (s *SQLiteStore) SaveCart(ctx context.Context, cart *models.CartSession) error {
	cart.UpdatedAt = time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE carts SET patient_id = ?, updated_at = ? WHERE id = ?",
		nullablePatient(cart.PatientID), cart.UpdatedAt, cart.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update cart: %w", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	} else if n == 0 {
		return fmt.Errorf("cart %s: %w", cart.ID, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM cart_items WHERE cart_id = ?", cart.ID); err != nil {
		return fmt.Errorf("failed to delete cart items: %w", err)
	}
	if err := insertItems(ctx, tx, cart); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteCart removes a cart session. Items are removed by the cascade.
func (s *SQLiteStore) DeleteCart(ctx context.Context, cartID string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM carts WHERE id = ?", cartID)
	if err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("cart %s: %w", cartID, storage.ErrNotFound)
	}
	return nil
}

func insertItems(ctx context.Context, tx *sql.Tx, cart *models.CartSession) error {
	for i, item := range cart.Items {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO cart_items (cart_id, procedure_id, quantity, position) VALUES (?, ?, ?, ?)",
			cart.ID, item.Procedure.ID, item.Quantity, i,
		)
		if err != nil {
			return fmt.Errorf("failed to insert cart item: %w", err)
		}
	}
	return nil
}

func nullablePatient(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}
