package notify

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"log"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"

	"internwatch/internal/config"
	"internwatch/internal/domain"
	"internwatch/internal/secrets"
)

// Mailer delivers the new-postings report over SMTP with STARTTLS. A
// disabled mailer is a no-op so the pipeline's output contract doesn't
// depend on delivery being configured.
type Mailer struct {
	cfg config.Notify
	now func() time.Time
}

func NewMailer(cfg config.Notify) *Mailer {
	return &Mailer{cfg: cfg, now: time.Now}
}

func (m *Mailer) Send(postings []domain.ClassifiedPosting) error {
	if !m.cfg.Enabled || len(postings) == 0 {
		return nil
	}

	password, err := secrets.GetSMTPPassword(m.cfg.Username)
	if err != nil {
		return fmt.Errorf("notify: %w", err)
	}

	msg, err := m.compose(postings)
	if err != nil {
		return fmt.Errorf("notify compose: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	auth := sasl.NewPlainClient("", m.cfg.Username, password)
	if err := smtp.SendMail(addr, auth, m.cfg.From, m.cfg.To, bytes.NewReader(msg)); err != nil {
		return fmt.Errorf("notify send: %w", err)
	}

	log.Printf("[notify] sent %d posting(s) to %d recipient(s)", len(postings), len(m.cfg.To))
	return nil
}

func (m *Mailer) compose(postings []domain.ClassifiedPosting) ([]byte, error) {
	var h mail.Header
	h.SetDate(m.now())
	h.SetSubject(fmt.Sprintf("%d new internship posting(s) found", len(postings)))

	from := []*mail.Address{{Address: m.cfg.From}}
	to := make([]*mail.Address, 0, len(m.cfg.To))
	for _, rcpt := range m.cfg.To {
		to = append(to, &mail.Address{Address: rcpt})
	}
	h.SetAddressList("From", from)
	h.SetAddressList("To", to)

	var buf bytes.Buffer
	mw, err := mail.CreateWriter(&buf, h)
	if err != nil {
		return nil, err
	}

	var th mail.InlineHeader
	th.SetContentType("text/html", nil)
	w, err := mw.CreateSingleInline(th)
	if err != nil {
		return nil, err
	}
	if _, err := io.WriteString(w, m.htmlBody(postings)); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (m *Mailer) htmlBody(postings []domain.ClassifiedPosting) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "<html><body><h2>New internship postings</h2><p>Found <strong>%d</strong> new posting(s):</p>", len(postings))

	for _, p := range postings {
		fmt.Fprintf(&b, `<div style="border:1px solid #ddd;padding:12px;margin:8px 0;border-radius:5px;">`)
		fmt.Fprintf(&b, `<div style="font-size:16px;font-weight:bold;">%s</div>`, html.EscapeString(p.Title))
		if age, ok := p.Age(m.now()); ok {
			fmt.Fprintf(&b, `<div style="color:#27ae60;font-size:12px;">posted %s ago</div>`, formatAge(age))
		}
		fmt.Fprintf(&b, `<div style="color:#7f8c8d;">%s</div>`, html.EscapeString(p.CompanyName))
		fmt.Fprintf(&b, `<div style="color:#95a5a6;font-size:12px;">%s</div>`, html.EscapeString(p.Location))
		fmt.Fprintf(&b, `<div><a href="%s">View posting</a></div>`, html.EscapeString(p.URL))
		fmt.Fprintf(&b, `</div>`)
	}

	b.WriteString("</body></html>")
	return b.String()
}

func formatAge(age time.Duration) string {
	if age < time.Hour {
		return fmt.Sprintf("%d minute(s)", int(age.Minutes()))
	}
	return fmt.Sprintf("%.1f hour(s)", age.Hours())
}
