// Package sender отправляет письма-напоминания об истекающих членствах.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fitflow/fitflow-api/internal/lib/sl"
	smtptransport "github.com/fitflow/fitflow-api/internal/lib/smtp"
	"github.com/fitflow/fitflow-api/internal/models"
)

// Service отправляет письма через SMTP транспорт.
type Service struct {
	transport smtptransport.TransportInterface
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(transport smtptransport.TransportInterface, log *slog.Logger) *Service {
	return &Service{
		transport: transport,
		log:       log,
	}
}

// SendMembershipExpiringEmail разбирает сообщение из очереди
// и отправляет владельцу членства напоминание об окончании.
func (s *Service) SendMembershipExpiringEmail(body []byte) error {
	var message models.ExpiringMembershipInfo
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("failed to unmarshal message body", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.Email}
	subject := "Ваш абонемент скоро закончится"
	bodyText := fmt.Sprintf("Здравствуйте, %s!\n\nВаш абонемент «%s» заканчивается завтра, %s.\n\nПродлите его заранее, чтобы не потерять доступ в зал.",
		message.FirstName, message.PlanName, message.EndDate)

	return s.sendEmail(to, subject, bodyText)
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("failed to connect to SMTP server", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("failed to get data writer", sl.Err(err))
		return err
	}

	if _, err = wc.Write([]byte(msg)); err != nil {
		s.log.Error("failed to write email body", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("failed to close data writer", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("failed to quit SMTP client", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
