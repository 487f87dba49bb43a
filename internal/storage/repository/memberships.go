package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fitflow/fitflow-api/internal/models"
)

// CreateMembershipPeriod сохраняет новый период членства и возвращает его ID.
func (s *Storage) CreateMembershipPeriod(ctx context.Context, period models.MembershipPeriod) (int64, error) {
	const op = "storage.CreateMembershipPeriod"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int64
	query := `INSERT INTO membership_periods (account_id, plan_type_id, start_date, end_date, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		period.AccountID, period.PlanTypeID, period.StartDate, period.EndDate,
		period.Status).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetMembershipPeriod возвращает период членства по его ID.
func (s *Storage) GetMembershipPeriod(ctx context.Context, id int64) (*models.MembershipPeriod, error) {
	const op = "storage.GetMembershipPeriod"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, account_id, plan_type_id, start_date, end_date, status
			  FROM membership_periods
			  WHERE id = $1`
	p := &models.MembershipPeriod{}
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.AccountID,
		&p.PlanTypeID, &p.StartDate, &p.EndDate, &p.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ListActivePeriodsByAccount возвращает периоды со статусом active для
// учётной записи, отсортированные по убыванию end_date, при равенстве —
// по убыванию id. Первый элемент — кандидат на текущее членство;
// истёк ли он фактически, решает бизнес-логика по датам.
func (s *Storage) ListActivePeriodsByAccount(ctx context.Context, accountID int64) ([]*models.MembershipPeriod, error) {
	const op = "storage.ListActivePeriodsByAccount"
	return s.listPeriods(ctx, op, `
		SELECT id, account_id, plan_type_id, start_date, end_date, status
		FROM membership_periods
		WHERE account_id = $1 AND status = 'active'
		ORDER BY end_date DESC, id DESC`, accountID)
}

// ListPeriodsByAccount возвращает всю историю периодов членства учётной записи.
func (s *Storage) ListPeriodsByAccount(ctx context.Context, accountID int64) ([]*models.MembershipPeriod, error) {
	const op = "storage.ListPeriodsByAccount"
	return s.listPeriods(ctx, op, `
		SELECT id, account_id, plan_type_id, start_date, end_date, status
		FROM membership_periods
		WHERE account_id = $1
		ORDER BY end_date DESC, id DESC`, accountID)
}

func (s *Storage) listPeriods(ctx context.Context, op, query string, args ...any) ([]*models.MembershipPeriod, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.MembershipPeriod
	for rows.Next() {
		p := &models.MembershipPeriod{}
		if err = rows.Scan(&p.ID, &p.AccountID, &p.PlanTypeID,
			&p.StartDate, &p.EndDate, &p.Status); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateMembershipStatus записывает новый сохранённый статус периода.
// Используется только для административных переходов active <-> suspended.
func (s *Storage) UpdateMembershipStatus(ctx context.Context, id int64, status string) error {
	const op = "storage.UpdateMembershipStatus"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE membership_periods
			  SET status = $1
			  WHERE id = $2`
	res, err := s.DB.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.requireAffected(res, op)
}

// FindMembershipsExpiringTomorrow находит активные членства, истекающие завтра,
// для рассылки напоминаний. Статусы при этом не изменяются.
func (s *Storage) FindMembershipsExpiringTomorrow(ctx context.Context) ([]*models.ExpiringMembershipInfo, error) {
	const op = "storage.FindMembershipsExpiringTomorrow"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT a.email, a.first_name, pt.name, mp.end_date
			  FROM membership_periods mp
			  JOIN accounts a ON a.id = mp.account_id
			  JOIN plan_types pt ON pt.id = mp.plan_type_id
			  WHERE mp.status = 'active'
			    AND a.is_active = TRUE
			    AND mp.end_date = CURRENT_DATE + INTERVAL '1 day';`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ExpiringMembershipInfo
	for rows.Next() {
		info := &models.ExpiringMembershipInfo{}
		if err = rows.Scan(&info.Email, &info.FirstName, &info.PlanName, &info.EndDate); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, info)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
