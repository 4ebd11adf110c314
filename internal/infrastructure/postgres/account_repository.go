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

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo implementación del puerto AccountRepository sobre PostgreSQL (usable con pool o tx).
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador de persistencia para cuentas. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

const accountColumns = `id, email, password_hash, name, role, status, reject_reason, created_at, updated_at`

// Create persiste una cuenta nueva.
func (r *AccountRepo) Create(account *entity.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		account.ID, account.Email, account.PasswordHash, account.Name,
		account.Role, account.Status, account.RejectReason, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta por ID.
func (r *AccountRepo) GetByID(id string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// FindByEmail obtiene una cuenta por email (para registro y login).
func (r *AccountRepo) FindByEmail(email string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, email))
}

// UpdateStatusFromPending check-and-set de moderación: muta solo si el estado
// actual sigue siendo pending. Cero filas afectadas = carrera perdida.
func (r *AccountRepo) UpdateStatusFromPending(id string, to entity.ModerationStatus, reason string, at time.Time) (bool, error) {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE accounts SET status = $2, reject_reason = $3, updated_at = $4
		WHERE id = $1 AND status = $5`,
		id, to, reason, at, entity.StatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("update account status: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// ListByStatus lista cuentas por estado con paginación (cola de moderación).
func (r *AccountRepo) ListByStatus(status entity.ModerationStatus, limit, offset int) ([]*entity.Account, error) {
	query := `
		SELECT ` + accountColumns + ` FROM accounts
		WHERE status = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`
	return r.list(query, status, limit, offset)
}

// ListApprovedOpticiens directorio público de opticiens aprobados.
func (r *AccountRepo) ListApprovedOpticiens(limit, offset int) ([]*entity.Account, error) {
	query := `
		SELECT ` + accountColumns + ` FROM accounts
		WHERE status = $1 AND role = $2 ORDER BY name ASC LIMIT $3 OFFSET $4`
	return r.list(query, entity.StatusApproved, entity.RoleOpticien, limit, offset)
}

func (r *AccountRepo) list(query string, args ...any) ([]*entity.Account, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.Account
	for rows.Next() {
		var a entity.Account
		if err := rows.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.Role, &a.Status,
			&a.RejectReason, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

func (r *AccountRepo) scanOne(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.Role, &a.Status,
		&a.RejectReason, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}
