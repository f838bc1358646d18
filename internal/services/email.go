package services

import (
	"context"
	"fmt"
	"html"
	"log"
	"net/smtp"
	"strings"

	"placement-panic/internal/models"
)

type EmailConfig struct {
	Provider     string // "smtp" or "ses"
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPass     string
	SMTPFrom     string
	SESRegion    string
	SESFromEmail string
	SESFromName  string
	FrontendURL  string
}

type mailSender interface {
	send(ctx context.Context, to, subject, htmlBody, textBody string) error
}

type EmailService struct {
	sender      mailSender
	frontendURL string
	devMode     bool
}

// NewEmailService picks a transport from cfg. Without SMTP credentials (or an
// SES sender address) it runs in dev mode and logs messages instead.
func NewEmailService(ctx context.Context, cfg EmailConfig) (*EmailService, error) {
	s := &EmailService{frontendURL: strings.TrimRight(cfg.FrontendURL, "/")}

	switch cfg.Provider {
	case "ses":
		if cfg.SESFromEmail == "" {
			s.devMode = true
			break
		}
		sender, err := newSESSender(ctx, cfg.SESRegion, cfg.SESFromEmail, cfg.SESFromName)
		if err != nil {
			return nil, err
		}
		s.sender = sender
		log.Printf("✓ Email via SES: from=%s, region=%s", cfg.SESFromEmail, cfg.SESRegion)
	case "smtp", "":
		if cfg.SMTPHost == "" || cfg.SMTPUser == "" {
			s.devMode = true
			break
		}
		s.sender = &smtpSender{
			host: cfg.SMTPHost,
			port: cfg.SMTPPort,
			user: cfg.SMTPUser,
			pass: cfg.SMTPPass,
			from: cfg.SMTPFrom,
		}
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}

	if s.devMode {
		log.Println("⚠ Email service running in DEV MODE (logging to console)")
		s.sender = logSender{}
	}
	return s, nil
}

func (s *EmailService) SendWelcomeEmail(ctx context.Context, to, name string) error {
	subject := "Welcome to Placement Panic"
	startURL := s.frontendURL + "/interview/setup"

	htmlBody := emailLayout("Welcome aboard, "+html.EscapeString(name)+"!", fmt.Sprintf(`
      <p style="color: #64748b; font-size: 14px; line-height: 1.6; margin: 0 0 24px;">
        Placement interviews get easier with practice. Pick a category, set a timer and rate how confident you felt on each question.
        Your dashboard tracks how your confidence grows.
      </p>
      <a href="%s" style="display: inline-block; background: #6366f1; color: white; text-decoration: none; padding: 12px 32px; border-radius: 8px; font-weight: 600; font-size: 14px;">
        Start a mock interview
      </a>`, startURL))

	textBody := fmt.Sprintf(`Welcome aboard, %s!

Placement interviews get easier with practice. Pick a category, set a timer and rate how confident you felt on each question.

Start a mock interview: %s
`, name, startURL)

	return s.sender.send(ctx, to, subject, htmlBody, textBody)
}

// SendSessionReport emails the feedback for one completed interview.
func (s *EmailService) SendSessionReport(ctx context.Context, to, name string, iv *models.Interview, fb *models.Feedback) error {
	subject := fmt.Sprintf("Your %s interview report", iv.Category)
	reportURL := fmt.Sprintf("%s/interview/%s/feedback", s.frontendURL, iv.ID)

	var b strings.Builder
	fmt.Fprintf(&b, `
      <p style="color: #64748b; font-size: 14px; margin: 0 0 8px;">Hi %s,</p>
      <p style="color: #1e293b; font-size: 14px; line-height: 1.6; margin: 0 0 16px;">%s</p>
      <p style="color: #64748b; font-size: 13px; margin: 0 0 16px;">
        %s · %s · answered %d of %d · average confidence %d/5
      </p>`,
		html.EscapeString(name), html.EscapeString(fb.OverallMessage),
		html.EscapeString(iv.Category), html.EscapeString(iv.Difficulty),
		iv.QuestionsAnswered, iv.TotalQuestions, iv.AverageRating)
	writeHTMLList(&b, "Strengths", fb.Strengths)
	writeHTMLList(&b, "Areas to improve", fb.Improvements)
	writeHTMLList(&b, "Tips", fb.Tips)
	fmt.Fprintf(&b, `
      <a href="%s" style="display: inline-block; background: #6366f1; color: white; text-decoration: none; padding: 12px 32px; border-radius: 8px; font-weight: 600; font-size: 14px;">
        View full report
      </a>`, reportURL)

	htmlBody := emailLayout("Interview report", b.String())

	var t strings.Builder
	fmt.Fprintf(&t, "Hi %s,\n\n%s\n\n%s / %s, answered %d of %d, average confidence %d/5\n",
		name, fb.OverallMessage, iv.Category, iv.Difficulty, iv.QuestionsAnswered, iv.TotalQuestions, iv.AverageRating)
	writeTextList(&t, "Strengths", fb.Strengths)
	writeTextList(&t, "Areas to improve", fb.Improvements)
	writeTextList(&t, "Tips", fb.Tips)
	fmt.Fprintf(&t, "\nView full report: %s\n", reportURL)

	return s.sender.send(ctx, to, subject, htmlBody, t.String())
}

func writeHTMLList(b *strings.Builder, title string, items []string) {
	fmt.Fprintf(b, `
      <h3 style="margin: 16px 0 8px; font-size: 15px; color: #1e293b;">%s</h3>
      <ul style="color: #475569; font-size: 14px; line-height: 1.6; margin: 0 0 8px; padding-left: 20px;">`, title)
	for _, item := range items {
		fmt.Fprintf(b, "\n        <li>%s</li>", html.EscapeString(item))
	}
	b.WriteString("\n      </ul>")
}

func writeTextList(b *strings.Builder, title string, items []string) {
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}

func emailLayout(heading, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: 'Segoe UI', Arial, sans-serif; margin: 0; padding: 0; background-color: #f8fafc;">
  <div style="max-width: 520px; margin: 40px auto; background: white; border-radius: 12px; box-shadow: 0 4px 24px rgba(0,0,0,0.08); overflow: hidden;">
    <div style="background: linear-gradient(135deg, #6366f1 0%%, #8b5cf6 100%%); padding: 32px; text-align: center;">
      <h1 style="color: white; margin: 0; font-size: 24px; font-weight: 700;">Placement Panic</h1>
      <p style="color: rgba(255,255,255,0.85); margin: 8px 0 0; font-size: 14px;">Practice until it stops being scary</p>
    </div>
    <div style="padding: 32px;">
      <h2 style="margin: 0 0 16px; font-size: 20px; color: #1e293b;">%s</h2>%s
    </div>
  </div>
</body>
</html>`, heading, content)
}

type logSender struct{}

func (logSender) send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	log.Printf("📧 [DEV EMAIL] To: %s | Subject: %s", to, subject)
	log.Printf("📧 Body:\n%s", textBody)
	return nil
}

type smtpSender struct {
	host string
	port string
	user string
	pass string
	from string
}

func (s *smtpSender) send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	headers := []string{
		fmt.Sprintf("From: %s", s.from),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}

	message := strings.Join(headers, "\r\n") + "\r\n\r\n" + htmlBody

	auth := smtp.PlainAuth("", s.user, s.pass, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)

	err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(message))
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	log.Printf("📧 Email sent to %s: %s", to, subject)
	return nil
}
