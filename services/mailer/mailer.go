package mailer

import (
	"fmt"
	"time"

	"nyayamitra/config"
	"nyayamitra/utils"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer sends transactional emails to case parties and their families.
type Mailer interface {
	// CaseAccepted notifies a prisoner's family that a provider accepted
	// their case for review.
	CaseAccepted(to string, caseNumber int, providerEmail string) error
	// TrialDateSet notifies a prisoner's family of a scheduled hearing.
	TrialDateSet(to string, caseNumber int, trialDate time.Time) error
	// TrialReminder reminds a prisoner's family the day before a hearing.
	TrialReminder(to string, caseNumber int, trialDate time.Time) error
	// FeedbackPosted notifies a prisoner's family that a judge recorded
	// feedback after a hearing.
	FeedbackPosted(to string, caseNumber int, judgeEmail string) error
}

// SMTPMailer implements Mailer over an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a Mailer from the SMTP settings in cfg.
func NewSMTPMailer(cfg *config.Config) Mailer {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	return &SMTPMailer{dialer: dialer, from: cfg.SMTPFrom}
}

func (m *SMTPMailer) send(to, subject, body string) error {
	logger := utils.GetLogger()

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		logger.Error("Failed to send email",
			zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	logger.Info("Email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// CaseAccepted notifies a prisoner's family that a provider accepted the case.
func (m *SMTPMailer) CaseAccepted(to string, caseNumber int, providerEmail string) error {
	subject := fmt.Sprintf("Case Accepted: CASE-%d", caseNumber)
	body := fmt.Sprintf("Your case has been accepted for review by %s.", providerEmail)
	return m.send(to, subject, body)
}

// TrialDateSet notifies a prisoner's family of a scheduled hearing.
func (m *SMTPMailer) TrialDateSet(to string, caseNumber int, trialDate time.Time) error {
	subject := fmt.Sprintf("Trial Date Scheduled: CASE-%d", caseNumber)
	body := fmt.Sprintf("A trial date has been scheduled for your case on %s.",
		trialDate.Format("02 Jan 2006"))
	return m.send(to, subject, body)
}

// TrialReminder reminds a prisoner's family the day before a hearing.
func (m *SMTPMailer) TrialReminder(to string, caseNumber int, trialDate time.Time) error {
	subject := fmt.Sprintf("Hearing Reminder: CASE-%d", caseNumber)
	body := fmt.Sprintf("This is a reminder that your case is scheduled for hearing on %s.",
		trialDate.Format("02 Jan 2006"))
	return m.send(to, subject, body)
}

// FeedbackPosted notifies a prisoner's family that a judge recorded feedback.
func (m *SMTPMailer) FeedbackPosted(to string, caseNumber int, judgeEmail string) error {
	subject := fmt.Sprintf("Court Feedback Recorded: CASE-%d", caseNumber)
	body := fmt.Sprintf("The court has recorded feedback on your case from %s.", judgeEmail)
	return m.send(to, subject, body)
}
