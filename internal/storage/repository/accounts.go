package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fitflow/fitflow-api/internal/models"
)

// pgUniqueViolation код ошибки PostgreSQL при нарушении уникального индекса.
const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// CreateAccount сохраняет новую учётную запись и возвращает её ID.
// Уникальность email обеспечивается индексом по lower(email): при гонке
// двух одновременных регистраций вторая получает ErrDuplicate.
func (s *Storage) CreateAccount(ctx context.Context, account models.Account) (int64, error) {
	const op = "storage.CreateAccount"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int64
	query := `INSERT INTO accounts (email, password_hash, role, first_name, last_name, phone, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		account.Email, account.PasswordHash, account.Role, account.FirstName,
		account.LastName, account.Phone, account.IsActive).Scan(&newID); err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetAccountByEmail возвращает учётную запись по email, сравнение без учёта регистра.
func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	const op = "storage.GetAccountByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, password_hash, role, first_name, last_name, phone,
			      is_active, created_at
			  FROM accounts
			  WHERE lower(email) = lower($1)`
	return s.scanAccount(s.DB.QueryRowContext(ctx, query, email), op)
}

// GetAccountByID возвращает учётную запись по её ID.
func (s *Storage) GetAccountByID(ctx context.Context, id int64) (*models.Account, error) {
	const op = "storage.GetAccountByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, password_hash, role, first_name, last_name, phone,
			      is_active, created_at
			  FROM accounts
			  WHERE id = $1`
	return s.scanAccount(s.DB.QueryRowContext(ctx, query, id), op)
}

func (s *Storage) scanAccount(row *sql.Row, op string) (*models.Account, error) {
	a := &models.Account{}
	var phone sql.NullString
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.FirstName,
		&a.LastName, &phone, &a.IsActive, &a.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if phone.Valid {
		a.Phone = &phone.String
	}
	return a, nil
}

// UpdateAccountProfile обновляет имя, фамилию и телефон учётной записи.
func (s *Storage) UpdateAccountProfile(ctx context.Context, id int64, firstName, lastName string, phone *string) error {
	const op = "storage.UpdateAccountProfile"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE accounts
			  SET first_name = $1, last_name = $2, phone = $3
			  WHERE id = $4`
	res, err := s.DB.ExecContext(ctx, query, firstName, lastName, phone, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.requireAffected(res, op)
}

// UpdateAccountPassword заменяет хэш пароля учётной записи.
func (s *Storage) UpdateAccountPassword(ctx context.Context, id int64, passwordHash string) error {
	const op = "storage.UpdateAccountPassword"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE accounts
			  SET password_hash = $1
			  WHERE id = $2`
	res, err := s.DB.ExecContext(ctx, query, passwordHash, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.requireAffected(res, op)
}

// DeactivateAccount выключает учётную запись. Физическое удаление не поддерживается.
func (s *Storage) DeactivateAccount(ctx context.Context, id int64) error {
	const op = "storage.DeactivateAccount"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE accounts
			  SET is_active = FALSE
			  WHERE id = $1`
	res, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.requireAffected(res, op)
}

func (s *Storage) requireAffected(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
