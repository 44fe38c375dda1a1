package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/Paudel3101/meditrack/internal/model"
	"github.com/Paudel3101/meditrack/pkg/logger"
)

// Service sends transactional mail. Failures are the caller's to log;
// sending is always best-effort and never blocks a request outcome.
type Service interface {
	SendWelcome(staff *model.Staff) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Enabled  bool
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewService(cfg Config, log *logger.Logger) Service {
	if !cfg.Enabled || cfg.Host == "" {
		log.Info("email delivery disabled")
		return &noopService{logger: log}
	}
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendWelcome(staff *model.Staff) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", staff.Email)
	m.SetHeader("Subject", "Welcome to MediTrack")
	m.SetBody("text/plain", fmt.Sprintf(
		"Hi %s,\n\nYour MediTrack account has been created with the %s role. You can sign in with this email address.\n",
		staff.FirstName, staff.Role,
	))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	return nil
}

// noopService logs instead of sending when SMTP is not configured.
type noopService struct {
	logger *logger.Logger
}

func (s *noopService) SendWelcome(staff *model.Staff) error {
	s.logger.Debug("skipping welcome email", "to", staff.Email)
	return nil
}
