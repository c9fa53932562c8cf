package mailer

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/rice-apps/rice-bikes-go/config"
	"github.com/rice-apps/rice-bikes-go/models"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	TemplateReceipt = "receipt"
	TemplatePickup  = "pickup"
)

// Mailer renders and delivers customer notifications over SMTP, recording
// every attempt as an EmailRecord. Delivery problems never reach the
// business caller.
type Mailer struct {
	cfg       config.SMTPSettings
	db        *gorm.DB
	log       *zap.Logger
	templates *template.Template

	// sendMail is swapped out in tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func New(cfg config.SMTPSettings, db *gorm.DB, log *zap.Logger) *Mailer {
	return &Mailer{
		cfg:       cfg,
		db:        db,
		log:       log,
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
		sendMail:  smtp.SendMail,
	}
}

// SendAsync delivers on its own goroutine so HTTP responses never wait on
// SMTP.
func (m *Mailer) SendAsync(templateName, recipient, subject string, data any) {
	go func() {
		if err := m.Send(templateName, recipient, subject, data); err != nil {
			m.log.Warn("email delivery failed",
				zap.String("template", templateName),
				zap.String("recipient", recipient),
				zap.Error(err),
			)
		}
	}()
}

func (m *Mailer) Send(templateName, recipient, subject string, data any) error {
	messageID := uuid.NewString()

	var body bytes.Buffer
	if err := m.templates.ExecuteTemplate(&body, templateName+".html", data); err != nil {
		m.record(messageID, templateName, recipient, subject, data, models.EmailStatusFailed, err)
		return fmt.Errorf("render %s: %w", templateName, err)
	}

	if m.cfg.Host == "" {
		m.log.Info("smtp not configured, skipping delivery",
			zap.String("template", templateName),
			zap.String("recipient", recipient),
		)
		m.record(messageID, templateName, recipient, subject, data, models.EmailStatusSkipped, nil)
		return nil
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: Rice Bikes <%s>\r\n", m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", recipient)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "Message-ID: <%s@ricebikes>\r\n", messageID)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.Write(body.Bytes())

	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	addr := m.cfg.Host + ":" + m.cfg.Port

	if err := m.sendMail(addr, auth, m.cfg.From, []string{recipient}, msg.Bytes()); err != nil {
		m.record(messageID, templateName, recipient, subject, data, models.EmailStatusFailed, err)
		return fmt.Errorf("send %s to %s: %w", templateName, recipient, err)
	}
	m.record(messageID, templateName, recipient, subject, data, models.EmailStatusSent, nil)
	return nil
}

func (m *Mailer) record(messageID, templateName, recipient, subject string, data any, status models.EmailStatus, sendErr error) {
	payload, err := json.Marshal(data)
	if err != nil {
		payload = []byte("{}")
	}
	rec := models.EmailRecord{
		MessageID: messageID,
		Template:  templateName,
		Recipient: recipient,
		Subject:   subject,
		Payload:   datatypes.JSON(payload),
		Status:    status,
	}
	if sendErr != nil {
		rec.Error = sendErr.Error()
	}
	if err := m.db.Create(&rec).Error; err != nil {
		m.log.Error("failed to record email attempt",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
	}
}
