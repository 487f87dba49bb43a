// Package membership содержит бизнес-логику жизненного цикла членств.
//
// Переход active -> expired управляется только датой окончания и вычисляется
// лениво при каждом чтении: фонового процесса, переводящего статусы, нет,
// сохранённое поле status для активных периодов может отставать от даты.
// Сохранённому статусу доверяем лишь как административному override
// (suspended); для active дата всегда главнее.
package membership

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fitflow/fitflow-api/internal/models"
	"github.com/fitflow/fitflow-api/internal/storage/repository"
)

// ExpiringSoonDays окно предупреждения о скором окончании членства.
const ExpiringSoonDays = 7

const dateLayout = "2006-01-02"

// Доменные ошибки жизненного цикла членств.
var (
	// ErrPlanNotFound тариф не найден.
	ErrPlanNotFound = errors.New("plan type not found")
	// ErrPlanInactive тариф выключен и не продаётся.
	ErrPlanInactive = errors.New("plan type is not active")
	// ErrPeriodNotFound период членства не найден.
	ErrPeriodNotFound = errors.New("membership period not found")
	// ErrInvalidTransition недопустимый переход статуса.
	ErrInvalidTransition = errors.New("invalid membership status transition")
)

// Repository описывает контракт для работы с периодами членства и тарифами.
type Repository interface {
	// CreateMembershipPeriod сохраняет новый период и возвращает его ID.
	CreateMembershipPeriod(ctx context.Context, period models.MembershipPeriod) (int64, error)
	// GetMembershipPeriod возвращает период по ID.
	GetMembershipPeriod(ctx context.Context, id int64) (*models.MembershipPeriod, error)
	// ListActivePeriodsByAccount возвращает active-периоды, end_date DESC, id DESC.
	ListActivePeriodsByAccount(ctx context.Context, accountID int64) ([]*models.MembershipPeriod, error)
	// ListPeriodsByAccount возвращает всю историю периодов.
	ListPeriodsByAccount(ctx context.Context, accountID int64) ([]*models.MembershipPeriod, error)
	// UpdateMembershipStatus записывает сохранённый статус периода.
	UpdateMembershipStatus(ctx context.Context, id int64, status string) error
	// GetPlanType возвращает тариф по ID.
	GetPlanType(ctx context.Context, id int64) (*models.PlanType, error)
}

// Service реализует вычисление эффективного статуса и операции жизненного цикла.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysRemaining возвращает число календарных дней до окончания периода:
// 0 при end_date == сегодня, отрицательное значение для уже истёкших.
func DaysRemaining(period *models.MembershipPeriod, today time.Time) int {
	end := dateOnly(period.EndDate)
	day := dateOnly(today)
	return int(end.Sub(day).Hours() / 24)
}

// EffectiveStatus возвращает фактический статус периода на указанную дату.
// Suspended — единственный сохранённый статус, которому доверяем как
// override; active с истёкшей датой читается как expired.
func EffectiveStatus(period *models.MembershipPeriod, today time.Time) string {
	if period.Status == models.StatusSuspended {
		return models.StatusSuspended
	}
	if period.Status == models.StatusActive && DaysRemaining(period, today) < 0 {
		return models.StatusExpired
	}
	return period.Status
}

// IsExpiringSoon сообщает, истекает ли активный период в ближайшие
// ExpiringSoonDays дней. На границах: false при 0 оставшихся дней
// (истекает сегодня, это не "скоро"), false при ExpiringSoonDays+1.
func IsExpiringSoon(period *models.MembershipPeriod, today time.Time) bool {
	if EffectiveStatus(period, today) != models.StatusActive {
		return false
	}
	days := DaysRemaining(period, today)
	return days > 0 && days <= ExpiringSoonDays
}

// StatusDescription возвращает человеко-читаемое описание статуса для ответов API.
func StatusDescription(period *models.MembershipPeriod, today time.Time) string {
	switch EffectiveStatus(period, today) {
	case models.StatusSuspended:
		return "suspended"
	case models.StatusExpired:
		return "expired"
	}
	if IsExpiringSoon(period, today) {
		return "expiring soon"
	}
	return "valid"
}

// ActiveMembership возвращает текущее членство учётной записи или nil.
// Кандидат — период со статусом active и наибольшей end_date; при равных
// датах детерминированно берётся больший id (сортировка в запросе).
// Если у кандидата дата уже прошла, членства нет: залежавшийся active
// считается отсутствующим, а не показывается как активный.
func (s *Service) ActiveMembership(ctx context.Context, accountID int64, today time.Time) (*models.MembershipPeriod, error) {
	const op = "membership.ActiveMembership"

	periods, err := s.repo.ListActivePeriodsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(periods) == 0 {
		return nil, nil
	}
	current := periods[0]
	if DaysRemaining(current, today) < 0 {
		return nil, nil
	}
	return current, nil
}

// HasActiveMembership сообщает, есть ли у учётной записи действующее членство.
func (s *Service) HasActiveMembership(ctx context.Context, accountID int64) (bool, error) {
	period, err := s.ActiveMembership(ctx, accountID, time.Now())
	if err != nil {
		return false, err
	}
	return period != nil, nil
}

// Summary строит агрегированное представление периода с тарифом
// и вычисленным эффективным статусом.
func (s *Service) Summary(ctx context.Context, period *models.MembershipPeriod, today time.Time) (*models.MembershipSummary, error) {
	const op = "membership.Summary"

	plan, err := s.repo.GetPlanType(ctx, period.PlanTypeID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &models.MembershipSummary{
		ID:                period.ID,
		PlanType:          plan,
		StartDate:         period.StartDate.Format(dateLayout),
		EndDate:           period.EndDate.Format(dateLayout),
		Status:            EffectiveStatus(period, today),
		DaysRemaining:     DaysRemaining(period, today),
		StatusDescription: StatusDescription(period, today),
	}, nil
}

// ActiveSummary возвращает представление текущего членства для ответов
// login/me или nil, если действующего членства нет.
func (s *Service) ActiveSummary(ctx context.Context, accountID int64) (*models.MembershipSummary, error) {
	today := time.Now()
	period, err := s.ActiveMembership(ctx, accountID, today)
	if err != nil || period == nil {
		return nil, err
	}
	return s.Summary(ctx, period, today)
}

// History возвращает все периоды членства учётной записи, новые первыми.
func (s *Service) History(ctx context.Context, accountID int64) ([]*models.MembershipSummary, error) {
	const op = "membership.History"

	periods, err := s.repo.ListPeriodsByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	today := time.Now()
	result := make([]*models.MembershipSummary, 0, len(periods))
	for _, p := range periods {
		summary, err := s.Summary(ctx, p, today)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, summary)
	}
	return result, nil
}

// Purchase оформляет новый период членства по активному тарифу.
// Дата окончания включительная: start + duration_days - 1, поэтому
// end_date >= start_date всегда выполняется (duration_days >= 1).
func (s *Service) Purchase(ctx context.Context, accountID, planTypeID int64, startDate time.Time) (*models.MembershipSummary, error) {
	const op = "membership.Purchase"

	plan, err := s.repo.GetPlanType(ctx, planTypeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !plan.IsActive {
		return nil, ErrPlanInactive
	}

	start := dateOnly(startDate)
	period := models.MembershipPeriod{
		AccountID:  accountID,
		PlanTypeID: planTypeID,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, plan.DurationDays-1),
		Status:     models.StatusActive,
	}
	id, err := s.repo.CreateMembershipPeriod(ctx, period)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	period.ID = id

	s.log.Info("membership purchased",
		slog.Int64("account_id", accountID),
		slog.Int64("plan_type_id", planTypeID),
		slog.Int64("period_id", id))

	return s.Summary(ctx, &period, time.Now())
}

// Suspend переводит действующий период в suspended. Разрешён только
// переход из эффективного active: истёкший период приостановить нельзя.
func (s *Service) Suspend(ctx context.Context, periodID int64) error {
	const op = "membership.Suspend"

	period, err := s.getPeriod(ctx, periodID)
	if err != nil {
		return err
	}
	if EffectiveStatus(period, time.Now()) != models.StatusActive {
		return ErrInvalidTransition
	}
	if err := s.repo.UpdateMembershipStatus(ctx, periodID, models.StatusSuspended); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("membership suspended", slog.Int64("period_id", periodID))
	return nil
}

// Resume возвращает приостановленный период в active. Если дата окончания
// уже прошла, период сразу же читается как expired по правилу дат.
func (s *Service) Resume(ctx context.Context, periodID int64) error {
	const op = "membership.Resume"

	period, err := s.getPeriod(ctx, periodID)
	if err != nil {
		return err
	}
	if period.Status != models.StatusSuspended {
		return ErrInvalidTransition
	}
	if err := s.repo.UpdateMembershipStatus(ctx, periodID, models.StatusActive); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("membership resumed", slog.Int64("period_id", periodID))
	return nil
}

func (s *Service) getPeriod(ctx context.Context, periodID int64) (*models.MembershipPeriod, error) {
	const op = "membership.getPeriod"

	period, err := s.repo.GetMembershipPeriod(ctx, periodID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPeriodNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return period, nil
}
