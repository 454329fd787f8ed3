package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marishandmade/storefront/internal/admin"
	"github.com/marishandmade/storefront/internal/catalog"
)

var (
	ErrProductNotFound    = errors.New("remote: product not found")
	ErrOrderNotFound      = errors.New("remote: order not found")
	ErrDuplicateProductID = errors.New("remote: product with this id already exists")
)

// PostgresMirror mirrors the store straight into a Postgres database,
// bypassing the REST layer. It speaks the same schema as the Supabase tables
// (see migrations/). It implements admin.Mirror.
type PostgresMirror struct {
	db *pgxpool.Pool
}

func NewPostgresMirror(db *pgxpool.Pool) *PostgresMirror {
	return &PostgresMirror{db: db}
}

func (m *PostgresMirror) FetchProducts(ctx context.Context) ([]catalog.Product, error) {
	query := `
		SELECT id, name, price, image, description, scent_notes, category
		FROM products
		WHERE in_stock
		ORDER BY created_at DESC
	`

	rows, err := m.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("remote: failed to query products: %w", err)
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		var rec ProductRecord
		err := rows.Scan(&rec.ID, &rec.Name, &rec.Price, &rec.Image, &rec.Description, &rec.ScentNotes, &rec.Category)
		if err != nil {
			return nil, fmt.Errorf("remote: failed to scan product: %w", err)
		}
		products = append(products, productFromRecord(rec))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("remote: error iterating products: %w", err)
	}

	return products, nil
}

func (m *PostgresMirror) CreateProduct(ctx context.Context, p catalog.Product) error {
	rec := productToRecord(p)
	query := `
		INSERT INTO products (id, name, price, image, description, scent_notes, category, featured, in_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
	`

	_, err := m.db.Exec(ctx, query,
		rec.ID, rec.Name, rec.Price, rec.Image, rec.Description, rec.ScentNotes, rec.Category, rec.Featured, rec.InStock, time.Now().UTC(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateProductID
		}
		return fmt.Errorf("remote: failed to insert product %s: %w", p.ID, err)
	}
	return nil
}

func (m *PostgresMirror) UpdateProduct(ctx context.Context, p catalog.Product) error {
	rec := productToRecord(p)
	query := `
		UPDATE products
		SET name = $1, price = $2, image = $3, description = $4, scent_notes = $5, category = $6, updated_at = $7
		WHERE id = $8
	`

	tag, err := m.db.Exec(ctx, query,
		rec.Name, rec.Price, rec.Image, rec.Description, rec.ScentNotes, rec.Category, time.Now().UTC(), rec.ID,
	)
	if err != nil {
		return fmt.Errorf("remote: failed to update product %s: %w", p.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (m *PostgresMirror) DeleteProduct(ctx context.Context, id string) error {
	_, err := m.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("remote: failed to delete product %s: %w", id, err)
	}
	return nil
}

func (m *PostgresMirror) CreateOrder(ctx context.Context, o admin.Order) error {
	rec := orderToRecord(o)

	items, err := json.Marshal(rec.Items)
	if err != nil {
		return fmt.Errorf("remote: failed to encode order items for %s: %w", o.ID, err)
	}

	query := `
		INSERT INTO orders (id, customer_name, customer_email, shipping_address, shipping_city, shipping_postcode,
			items, subtotal, shipping, total, is_gift, gift_message, status, stripe_payment_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err = m.db.Exec(ctx, query,
		rec.ID, rec.CustomerName, rec.CustomerEmail, rec.ShippingAddress, rec.ShippingCity, rec.ShippingPostcode,
		items, rec.Subtotal, rec.Shipping, rec.Total, rec.IsGift, rec.GiftMessage, rec.Status, rec.StripePaymentID, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("remote: failed to insert order %s: %w", o.ID, err)
	}
	return nil
}

func (m *PostgresMirror) FetchOrders(ctx context.Context) ([]admin.Order, error) {
	query := `
		SELECT id, customer_name, customer_email, shipping_address, shipping_city, shipping_postcode,
			items, subtotal, shipping, total, is_gift, gift_message, status, stripe_payment_id, created_at
		FROM orders
		ORDER BY created_at DESC
	`

	rows, err := m.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("remote: failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []admin.Order
	for rows.Next() {
		var rec OrderRecord
		var items []byte
		err := rows.Scan(
			&rec.ID, &rec.CustomerName, &rec.CustomerEmail, &rec.ShippingAddress, &rec.ShippingCity, &rec.ShippingPostcode,
			&items, &rec.Subtotal, &rec.Shipping, &rec.Total, &rec.IsGift, &rec.GiftMessage, &rec.Status, &rec.StripePaymentID, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("remote: failed to scan order: %w", err)
		}
		if err := json.Unmarshal(items, &rec.Items); err != nil {
			return nil, fmt.Errorf("remote: failed to decode items for order %s: %w", rec.ID, err)
		}
		orders = append(orders, orderFromRecord(rec))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("remote: error iterating orders: %w", err)
	}

	return orders, nil
}

func (m *PostgresMirror) UpdateOrderStatus(ctx context.Context, id string, status admin.OrderStatus) error {
	tag, err := m.db.Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status.String(), id)
	if err != nil {
		return fmt.Errorf("remote: failed to update order status %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}
