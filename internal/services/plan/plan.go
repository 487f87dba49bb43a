// Package plan управляет каталогом тарифов членства.
// Список активных тарифов читается часто и меняется редко,
// поэтому кэшируется в Redis и инвалидируется при любой мутации.
package plan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fitflow/fitflow-api/internal/cache"
	"github.com/fitflow/fitflow-api/internal/lib/sl"
	"github.com/fitflow/fitflow-api/internal/models"
	"github.com/fitflow/fitflow-api/internal/storage/repository"
)

const (
	activePlansCacheKey = "plan_types:active"
	cacheTTL            = time.Hour
)

// Доменные ошибки каталога тарифов.
var (
	// ErrDuplicateName тариф с таким названием уже существует.
	ErrDuplicateName = errors.New("plan type name already exists")
	// ErrPlanNotFound тариф не найден.
	ErrPlanNotFound = errors.New("plan type not found")
)

// Repository описывает контракт для работы с тарифами в хранилище.
type Repository interface {
	// CreatePlanType сохраняет тариф и возвращает его ID.
	CreatePlanType(ctx context.Context, plan models.PlanType) (int64, error)
	// GetPlanType возвращает тариф по ID.
	GetPlanType(ctx context.Context, id int64) (*models.PlanType, error)
	// ListActivePlanTypes возвращает активные тарифы по возрастанию цены.
	ListActivePlanTypes(ctx context.Context) ([]*models.PlanType, error)
	// DeactivatePlanType выключает тариф из продажи.
	DeactivatePlanType(ctx context.Context, id int64) error
}

// Service реализует операции каталога тарифов поверх хранилища и кэша.
type Service struct {
	repo  Repository
	cache *cache.Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, c *cache.Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: c,
		log:   log,
	}
}

// Create добавляет новый тариф в каталог и сбрасывает кэш списка.
func (s *Service) Create(ctx context.Context, plan models.PlanType) (*models.PlanType, error) {
	const op = "plan.Create"

	id, err := s.repo.CreatePlanType(ctx, plan)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateName
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	plan.ID = id
	plan.IsActive = true

	s.invalidateList(ctx)
	s.log.Info("plan type created", slog.Int64("plan_type_id", id), slog.String("name", plan.Name))
	return &plan, nil
}

// Get возвращает тариф по ID.
func (s *Service) Get(ctx context.Context, id int64) (*models.PlanType, error) {
	const op = "plan.Get"

	plan, err := s.repo.GetPlanType(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return plan, nil
}

// ListActive возвращает активные тарифы. Ответ кэшируется; ошибки кэша
// не фатальны, запрос обслуживается из базы.
func (s *Service) ListActive(ctx context.Context) ([]*models.PlanType, error) {
	const op = "plan.ListActive"

	var cached []*models.PlanType
	found, err := s.cache.Get(ctx, activePlansCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read plan cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	plans, err := s.repo.ListActivePlanTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, activePlansCacheKey, plans, cacheTTL); err != nil {
		s.log.Warn("failed to write plan cache", sl.Err(err))
	}
	return plans, nil
}

// Deactivate выключает тариф из продажи и сбрасывает кэш списка.
// Уже проданные по нему членства продолжают действовать.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	const op = "plan.Deactivate"

	if err := s.repo.DeactivatePlanType(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidateList(ctx)
	s.log.Info("plan type deactivated", slog.Int64("plan_type_id", id))
	return nil
}

func (s *Service) invalidateList(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, activePlansCacheKey); err != nil {
		s.log.Warn("failed to invalidate plan cache", sl.Err(err))
	}
}
