package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net"
	"net/smtp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/tazhibayda/inventory-service/internal/config"
	"github.com/tazhibayda/inventory-service/internal/helper"
	"github.com/tazhibayda/inventory-service/internal/log"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	TemplateActivation = "activation"
	TemplateWelcome    = "welcome"
)

type Message struct {
	To       string
	Template string
	Data     any
}

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type Sender struct {
	addr  string
	auth  smtp.Auth
	from  string
	send  SendFunc
	tmpls map[string]*template.Template
}

func NewSender(cfg config.Config) (*Sender, error) {
	s := &Sender{
		addr:  net.JoinHostPort(cfg.SMTPHost, strconv.Itoa(cfg.SMTPPort)),
		from:  cfg.SMTPFrom,
		send:  smtp.SendMail,
		tmpls: map[string]*template.Template{},
	}
	if cfg.SMTPHost == "" {
		s.send = nil
	} else if cfg.SMTPUser != "" {
		s.auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPHost)
	}
	for _, name := range []string{TemplateActivation, TemplateWelcome} {
		t, err := template.ParseFS(templatesFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		s.tmpls[name] = t
	}
	return s, nil
}

// WithSendFunc replaces the transport, mostly for tests.
func (s *Sender) WithSendFunc(fn SendFunc) *Sender {
	s.send = fn
	return s
}

func (s *Sender) render(m Message) (subject string, body []byte, err error) {
	t, ok := s.tmpls[m.Template]
	if !ok {
		return "", nil, fmt.Errorf("unknown template %q", m.Template)
	}
	var sb, bb bytes.Buffer
	if err := t.ExecuteTemplate(&sb, "subject", m.Data); err != nil {
		return "", nil, err
	}
	if err := t.ExecuteTemplate(&bb, "body", m.Data); err != nil {
		return "", nil, err
	}
	return strings.TrimSpace(sb.String()), bb.Bytes(), nil
}

func (s *Sender) Send(ctx context.Context, m Message) error {
	subject, body, err := s.render(m)
	if err != nil {
		return err
	}
	l := log.WithDD(ctx, log.L(), zap.String("to_hash", helper.Hash8(m.To)), zap.String("template", m.Template))

	if s.send == nil {
		l.Info("smtp not configured, mail logged only", zap.String("subject", subject))
		return nil
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", m.To)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	msg.Write(body)

	if err := s.send(s.addr, s.auth, s.from, []string{m.To}, msg.Bytes()); err != nil {
		l.Error("mail send failed", zap.Error(err))
		return err
	}
	l.Info("mail sent")
	return nil
}
