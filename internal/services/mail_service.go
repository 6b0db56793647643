package services

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"simak/internal/apperrors"

	"gopkg.in/gomail.v2"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// MailService sends rendered reports as email attachments over SMTP.
// The configured sender credentials belong to the admin account; a user
// must hand in their own.
type MailService struct {
	host           string
	port           int
	senderEmail    string
	senderPassword string
}

// NewMailService creates a new MailService. senderEmail/senderPassword may
// be empty when no admin credentials are configured.
func NewMailService(host string, port int, senderEmail, senderPassword string) *MailService {
	return &MailService{
		host:           host,
		port:           port,
		senderEmail:    senderEmail,
		senderPassword: senderPassword,
	}
}

// SendReport mails the report to the recipient. When senderEmail is empty
// the configured admin credentials are used; when those are missing too the
// send is rejected before dialing.
func (s *MailService) SendReport(to, format string, report *Report, senderEmail, senderPassword string) error {
	if !emailPattern.MatchString(to) {
		return apperrors.Validation("recipient email address is not valid")
	}

	if senderEmail == "" {
		senderEmail = s.senderEmail
		senderPassword = s.senderPassword
	}
	if senderEmail == "" || senderPassword == "" {
		return apperrors.Validation("sender email or app password is missing")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", senderEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Student Data (%s) - %s",
		strings.ToUpper(format), time.Now().Format("2006-01-02")))
	m.SetBody("text/plain", fmt.Sprintf("Attached is the student data in %s format.", strings.ToUpper(format)))
	m.Attach(report.Filename, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(report.Data)
		return err
	}))

	d := gomail.NewDialer(s.host, s.port, senderEmail, senderPassword)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
