package notifications

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"github.com/you/timetablesvc/domain"
)

// MailServiceImpl implements domain.Mailer over SMTP
type MailServiceImpl struct {
	dialer *gomail.Dialer
	host   string
	from   string
}

// NewMailService creates a new SMTP mail service
func NewMailService(host string, port int, username, password, from string) domain.Mailer {
	return &MailServiceImpl{
		dialer: gomail.NewDialer(host, port, username, password),
		host:   host,
		from:   from,
	}
}

func (m *MailServiceImpl) send(to, subject, htmlBody string) error {
	// Without an SMTP host the message is logged instead of sent, so local
	// development works without mail credentials.
	if m.host == "" {
		log.Printf("[MOCK EMAIL] To: %s, Subject: %s", to, subject)
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMailDelivery, err)
	}
	return nil
}

// SendVerificationEmail implements domain.Mailer
func (m *MailServiceImpl) SendVerificationEmail(to, firstName, verificationURL string) error {
	body := fmt.Sprintf(`
		<h2>Hi %s,</h2>
		<p>Thank you for registering with the Timetable Management System.
		Please verify your email address by clicking the link below:</p>
		<p><a href="%s">Verify Email Address</a></p>
		<p>Or copy and paste this link into your browser:</p>
		<p>%s</p>
		<p>If you didn't create an account, please ignore this email.</p>`,
		firstName, verificationURL, verificationURL)
	return m.send(to, "Verify Your Email Address", body)
}

// SendPasswordResetEmail implements domain.Mailer
func (m *MailServiceImpl) SendPasswordResetEmail(to, firstName, resetURL string) error {
	body := fmt.Sprintf(`
		<h2>Hi %s,</h2>
		<p>We received a request to reset your password. Click the link below
		to choose a new one:</p>
		<p><a href="%s">Reset Password</a></p>
		<p>Or copy and paste this link into your browser:</p>
		<p>%s</p>
		<p>If you didn't request a password reset, you can safely ignore this
		email; your password will not change.</p>`,
		firstName, resetURL, resetURL)
	return m.send(to, "Password Reset Request", body)
}

// SendPasswordChangedEmail implements domain.Mailer
func (m *MailServiceImpl) SendPasswordChangedEmail(to, firstName string) error {
	body := fmt.Sprintf(`
		<h2>Hi %s,</h2>
		<p>This is a confirmation that the password for your account has just
		been changed.</p>
		<p>If you did not make this change, please contact support
		immediately.</p>`,
		firstName)
	return m.send(to, "Your Password Has Been Changed", body)
}
