package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/entity"
	"github.com/abderrahim97-alpha/opticien-frontend-sub000/internal/domain/repository"
)

var _ repository.ListingRepository = (*ListingRepo)(nil)

// ListingRepo implementación del puerto ListingRepository sobre PostgreSQL (usable con pool o tx).
type ListingRepo struct {
	q Querier
}

// NewListingRepository construye el adaptador de persistencia para listings. Pasar pool o tx (Querier).
func NewListingRepository(q Querier) *ListingRepo {
	return &ListingRepo{q: q}
}

const listingColumns = `id, owner_id, name, description, price, stock, status, reject_reason, created_at, updated_at`

// Create persiste un listing nuevo (nace pending).
func (r *ListingRepo) Create(listing *entity.Listing) error {
	query := `
		INSERT INTO listings (` + listingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		listing.ID, listing.OwnerID, listing.Name, listing.Description, listing.Price,
		listing.Stock, listing.Status, listing.RejectReason, listing.CreatedAt, listing.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}
	return nil
}

// GetByID obtiene un listing por ID.
func (r *ListingRepo) GetByID(id string) (*entity.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`
	var l entity.Listing
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.OwnerID, &l.Name, &l.Description, &l.Price, &l.Stock,
		&l.Status, &l.RejectReason, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return &l, nil
}

// UpdateStatusFromPending check-and-set de moderación, mismo contrato que cuentas.
func (r *ListingRepo) UpdateStatusFromPending(id string, to entity.ModerationStatus, reason string, at time.Time) (bool, error) {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE listings SET status = $2, reject_reason = $3, updated_at = $4
		WHERE id = $1 AND status = $5`,
		id, to, reason, at, entity.StatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("update listing status: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// AdjustStock suma delta al stock. El WHERE preserva el invariante stock >= 0
// a nivel del sistema de registro; cero filas afectadas significa listing
// inexistente o ajuste que dejaría stock negativo.
func (r *ListingRepo) AdjustStock(listingID string, delta int) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE listings SET stock = stock + $2, updated_at = now()
		WHERE id = $1 AND stock + $2 >= 0`,
		listingID, delta,
	)
	if err != nil {
		return fmt.Errorf("adjust listing stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListApproved directorio público.
func (r *ListingRepo) ListApproved(limit, offset int) ([]*entity.Listing, error) {
	query := `
		SELECT ` + listingColumns + ` FROM listings
		WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, entity.StatusApproved, limit, offset)
}

// ListByOwner listings de un opticien, todos los estados.
func (r *ListingRepo) ListByOwner(ownerID string, limit, offset int) ([]*entity.Listing, error) {
	query := `
		SELECT ` + listingColumns + ` FROM listings
		WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	return r.list(query, ownerID, limit, offset)
}

// ListByStatus cola de moderación.
func (r *ListingRepo) ListByStatus(status entity.ModerationStatus, limit, offset int) ([]*entity.Listing, error) {
	query := `
		SELECT ` + listingColumns + ` FROM listings
		WHERE status = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`
	return r.list(query, status, limit, offset)
}

func (r *ListingRepo) list(query string, args ...any) ([]*entity.Listing, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()
	var list []*entity.Listing
	for rows.Next() {
		var l entity.Listing
		if err := rows.Scan(&l.ID, &l.OwnerID, &l.Name, &l.Description, &l.Price, &l.Stock,
			&l.Status, &l.RejectReason, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
