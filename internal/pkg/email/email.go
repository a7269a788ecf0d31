package email

import (
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for outbound notification mail
type EmailService interface {
	SendCredentials(toEmail, login, password string) error
	SendStudentAddedNotification(fullName, departmentName, groupName, email string) error
	SendTeacherAddedNotification(fullName, position, email string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	FromEmail  string
	AdminEmail string
}

// EmailServiceImpl implements EmailService over plain SMTP
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// SendCredentials mails generated credentials to a newly provisioned account
func (s *EmailServiceImpl) SendCredentials(toEmail, login, password string) error {
	subject := "Your login credentials"
	body := fmt.Sprintf("Your login: %s\nYour password: %s\nPlease change the password after the first login.", login, password)
	return s.send(toEmail, subject, body)
}

// SendStudentAddedNotification notifies the admin mailbox about a new student
func (s *EmailServiceImpl) SendStudentAddedNotification(fullName, departmentName, groupName, email string) error {
	subject := "New student added"
	body := fmt.Sprintf("A new student was added:\nName: %s\nDepartment: %s\nGroup: %s\nEmail: %s", fullName, departmentName, groupName, email)
	return s.send(s.config.AdminEmail, subject, body)
}

// SendTeacherAddedNotification notifies the admin mailbox about a new teacher
func (s *EmailServiceImpl) SendTeacherAddedNotification(fullName, position, email string) error {
	subject := "New teacher added"
	body := fmt.Sprintf("A new teacher was added:\nName: %s\nPosition: %s\nEmail: %s", fullName, position, email)
	return s.send(s.config.AdminEmail, subject, body)
}

func (s *EmailServiceImpl) send(toEmail, subject, body string) error {
	// Without credentials the message is logged instead of sent, which keeps
	// development environments working without a mailbox.
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SMTP credentials not configured - email not sent")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	message := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.config.FromEmail, toEmail, subject, body)

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)
	if err := smtp.SendMail(serverAddress, auth, s.config.FromEmail, []string{toEmail}, []byte(message)); err != nil {
		s.logger.Error().Err(err).Str("toEmail", toEmail).Str("subject", subject).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
