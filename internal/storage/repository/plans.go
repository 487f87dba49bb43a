package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fitflow/fitflow-api/internal/models"
)

// CreatePlanType сохраняет новый тариф и возвращает его ID.
// Повторное имя тарифа приводит к ErrDuplicate.
func (s *Storage) CreatePlanType(ctx context.Context, plan models.PlanType) (int64, error) {
	const op = "storage.CreatePlanType"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int64
	query := `INSERT INTO plan_types (name, price, duration_days, max_classes, description, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		plan.Name, plan.Price, plan.DurationDays, plan.MaxClasses,
		plan.Description, plan.IsActive).Scan(&newID); err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, ErrDuplicate)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetPlanType возвращает тариф по его ID.
func (s *Storage) GetPlanType(ctx context.Context, id int64) (*models.PlanType, error) {
	const op = "storage.GetPlanType"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, duration_days, max_classes, description, is_active
			  FROM plan_types
			  WHERE id = $1`
	p := &models.PlanType{}
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &p.Price,
		&p.DurationDays, &p.MaxClasses, &p.Description, &p.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// ListActivePlanTypes возвращает все активные тарифы, отсортированные по цене.
func (s *Storage) ListActivePlanTypes(ctx context.Context) ([]*models.PlanType, error) {
	const op = "storage.ListActivePlanTypes"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, duration_days, max_classes, description, is_active
			  FROM plan_types
			  WHERE is_active = TRUE
			  ORDER BY price`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.PlanType
	for rows.Next() {
		p := &models.PlanType{}
		if err = rows.Scan(&p.ID, &p.Name, &p.Price, &p.DurationDays,
			&p.MaxClasses, &p.Description, &p.IsActive); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeactivatePlanType выключает тариф. Тарифы, на которые уже оформлены
// членства, не изменяются и не удаляются — только деактивируются.
func (s *Storage) DeactivatePlanType(ctx context.Context, id int64) error {
	const op = "storage.DeactivatePlanType"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE plan_types
			  SET is_active = FALSE
			  WHERE id = $1`
	res, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.requireAffected(res, op)
}
