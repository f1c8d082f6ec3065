package infra

import (
	"fmt"
	"net/smtp"

	"shopforge/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending notification emails.
type Mailer struct {
	host     string
	port     int
	user     string
	password string
	addr     string
	from     string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		from:     cfg.SMTPUser,
	}
}

// SendLowStockAlert notifies the operations inbox that a product crossed its
// alert threshold.
func (m *Mailer) SendLowStockAlert(to, productName string, stock, threshold int) error {
	subject := fmt.Sprintf("Low stock: %s (%d left)", productName, stock)
	body := fmt.Sprintf(
		"Product %q is down to %d units (alert threshold: %d).\n\nRestock soon to avoid going out of stock.\n",
		productName, stock, threshold,
	)
	return m.send(to, subject, body, "")
}

// SendDigest sends the periodic low-stock summary.
func (m *Mailer) SendDigest(to, subject, body string) error {
	return m.send(to, subject, body, "")
}

// SendReport sends an email with a generated PDF report attached.
func (m *Mailer) SendReport(to, subject, body, pdfPath string) error {
	return m.send(to, subject, body, pdfPath)
}

func (m *Mailer) send(to, subject, body, attachmentPath string) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if attachmentPath != "" {
		if _, err := e.AttachFile(attachmentPath); err != nil {
			return fmt.Errorf("mailer: attach file: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}
