package mocks

import "sync"

// SentMail records one delivered message for assertions.
type SentMail struct {
	Kind      string
	To        string
	FirstName string
	URL       string
}

// MockMailer implements domain.Mailer for testing and records every send.
type MockMailer struct {
	SendVerificationEmailFunc   func(to, firstName, verificationURL string) error
	SendPasswordResetEmailFunc  func(to, firstName, resetURL string) error
	SendPasswordChangedEmailFunc func(to, firstName string) error

	mu   sync.Mutex
	Sent []SentMail
}

// NewMockMailer creates a new MockMailer
func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) record(mail SentMail) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, mail)
}

func (m *MockMailer) SendVerificationEmail(to, firstName, verificationURL string) error {
	if m.SendVerificationEmailFunc != nil {
		return m.SendVerificationEmailFunc(to, firstName, verificationURL)
	}
	m.record(SentMail{Kind: "verification", To: to, FirstName: firstName, URL: verificationURL})
	return nil
}

func (m *MockMailer) SendPasswordResetEmail(to, firstName, resetURL string) error {
	if m.SendPasswordResetEmailFunc != nil {
		return m.SendPasswordResetEmailFunc(to, firstName, resetURL)
	}
	m.record(SentMail{Kind: "reset", To: to, FirstName: firstName, URL: resetURL})
	return nil
}

func (m *MockMailer) SendPasswordChangedEmail(to, firstName string) error {
	if m.SendPasswordChangedEmailFunc != nil {
		return m.SendPasswordChangedEmailFunc(to, firstName)
	}
	m.record(SentMail{Kind: "changed", To: to, FirstName: firstName})
	return nil
}

// LastSent returns the most recently recorded mail, if any.
func (m *MockMailer) LastSent() (SentMail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return SentMail{}, false
	}
	return m.Sent[len(m.Sent)-1], true
}
