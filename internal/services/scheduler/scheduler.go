// Package scheduler находит членства, истекающие завтра,
// и публикует уведомления в RabbitMQ.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/fitflow/fitflow-api/internal/lib/sl"
	"github.com/fitflow/fitflow-api/internal/models"
	"github.com/fitflow/fitflow-api/internal/rabbitmq"
)

// MembershipRepository описывает выборку истекающих членств.
type MembershipRepository interface {
	FindMembershipsExpiringTomorrow(ctx context.Context) ([]*models.ExpiringMembershipInfo, error)
}

// Service периодически опрашивает хранилище и отправляет задания на уведомления.
type Service struct {
	repo MembershipRepository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo MembershipRepository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// FindExpiringMemberships запускает цикл поиска: первый проход сразу,
// далее каждые 12 часов, до отмены контекста.
func (s *Service) FindExpiringMemberships(ctx context.Context, channel *amqp.Channel) {
	s.runFindExpiringMemberships(ctx, channel)

	ticker := time.NewTicker(12 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runFindExpiringMemberships(ctx, channel)
		}
	}
}

func (s *Service) runFindExpiringMemberships(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting service to find expiring memberships")
	expiring, err := s.repo.FindMembershipsExpiringTomorrow(ctx)
	if err != nil {
		s.log.Error("failed to find expiring memberships", sl.Err(err))
		return
	}
	if len(expiring) == 0 {
		s.log.Info("no expiring memberships found")
		return
	}
	s.log.Info("found expiring memberships", "count", len(expiring))
	for _, info := range expiring {
		err = rabbitmq.PublishMessage(channel, rabbitmq.NotificationsExchange, rabbitmq.MembershipExpiringRoutingKey, info)
		if err != nil {
			s.log.Error("failed to publish message", sl.Err(err))
		}
	}
}
