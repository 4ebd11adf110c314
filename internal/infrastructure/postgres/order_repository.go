package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para órdenes. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, buyer_id, status, total_price, admin_note, created_at, validated_at, updated_at`
const itemColumns = `id, order_id, listing_id, vendor_id, quantity, unit_price, subtotal`

// Create persiste la orden con sus items (checkout externo y seeds de test).
func (r *OrderRepo) Create(order *entity.Order) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		order.ID, order.BuyerID, order.Status, order.TotalPrice, order.AdminNote,
		order.CreatedAt, order.ValidatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	for _, it := range order.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO order_items (`+itemColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, order.ID, it.ListingID, it.VendorID, it.Quantity, it.UnitPrice, it.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una orden con todos sus items.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.BuyerID, &o.Status, &o.TotalPrice, &o.AdminNote,
		&o.CreatedAt, &o.ValidatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := r.itemsFor([]string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return &o, nil
}

// MarkValidated check-and-set pending -> validated. No toca stock.
func (r *OrderRepo) MarkValidated(id, note string, at time.Time) (bool, error) {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE orders SET status = $2, admin_note = $3, validated_at = $4, updated_at = $4
		WHERE id = $1 AND status = $5`,
		id, entity.OrderValidated, note, at, entity.OrderPending,
	)
	if err != nil {
		return false, fmt.Errorf("mark order validated: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// MarkRefused check-and-set pending -> refused. El caso de uso lo ejecuta en
// la misma tx que la restauración de stock; el WHERE sobre status garantiza
// que el perdedor de una doble invocación no restaure stock dos veces.
func (r *OrderRepo) MarkRefused(id, reason string, at time.Time) (bool, error) {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE orders SET status = $2, admin_note = $3, updated_at = $4
		WHERE id = $1 AND status = $5`,
		id, entity.OrderRefused, reason, at, entity.OrderPending,
	)
	if err != nil {
		return false, fmt.Errorf("mark order refused: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// MarkCompleted check-and-set validated -> completed.
func (r *OrderRepo) MarkCompleted(id string, at time.Time) (bool, error) {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE orders SET status = $2, updated_at = $3
		WHERE id = $1 AND status = $4`,
		id, entity.OrderCompleted, at, entity.OrderValidated,
	)
	if err != nil {
		return false, fmt.Errorf("mark order completed: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// ListByBuyer órdenes del comprador, con items.
func (r *OrderRepo) ListByBuyer(buyerID string, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + ` FROM orders
		WHERE buyer_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.listWithItems(query, buyerID, limit, offset)
}

// ListByVendor órdenes que contienen al menos un item del vendedor, con TODOS
// sus items: la proyección por vendedor se hace en memoria (SalesAggregator).
func (r *OrderRepo) ListByVendor(vendorID string, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT DISTINCT o.id, o.buyer_id, o.status, o.total_price, o.admin_note, o.created_at, o.validated_at, o.updated_at
		FROM orders o
		JOIN order_items i ON i.order_id = o.id
		WHERE i.vendor_id = $1
		ORDER BY o.created_at DESC LIMIT $2 OFFSET $3`
	return r.listWithItems(query, vendorID, limit, offset)
}

// ListAll todas las órdenes (vista admin), con items.
func (r *OrderRepo) ListAll(limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + ` FROM orders
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	return r.listWithItems(query, limit, offset)
}

func (r *OrderRepo) listWithItems(query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	var ids []string
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.BuyerID, &o.Status, &o.TotalPrice, &o.AdminNote,
			&o.CreatedAt, &o.ValidatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}
	items, err := r.itemsFor(ids)
	if err != nil {
		return nil, err
	}
	for _, o := range list {
		o.Items = items[o.ID]
	}
	return list, nil
}

// itemsFor carga los items de un conjunto de órdenes en una sola consulta.
func (r *OrderRepo) itemsFor(orderIDs []string) (map[string][]entity.OrderItem, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT `+itemColumns+` FROM order_items
		WHERE order_id = ANY($1) ORDER BY id`,
		orderIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]entity.OrderItem)
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ListingID, &it.VendorID,
			&it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, rows.Err()
}
