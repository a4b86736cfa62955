// Package mailer отправляет транзакционные письма (приветствие, сброс пароля) по SMTP.
package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log"
	"time"

	"github.com/wneessen/go-mail"
)

const (
	defaultAppName = "Social Media App"
	defaultFrom    = `"Social Media App" <noreply@socialmedia.com>`

	welcomeSubject = "Welcome to Social Media App!"
	resetSubject   = "Reset Your Password - Social Media App"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Mailer отправляет письма пользователям.
type Mailer interface {
	SendWelcomeEmail(ctx context.Context, to, username string) error
	SendPasswordResetEmail(ctx context.Context, to, username, resetURL string) error
}

// Config - параметры SMTP-сервера.
type Config struct {
	Host        string
	Port        int
	Username    string
	Password    string
	From        string
	Secure      bool   // Неявный TLS (обычно порт 465)
	FrontendURL string // Используется в ссылках писем
}

// Enabled сообщает, заданы ли учетные данные для отправки.
func (c Config) Enabled() bool {
	return c.Username != "" && c.Password != ""
}

// sender - часть mail.Client, используемая SMTPMailer.
type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPMailer реализует Mailer поверх go-mail.
type SMTPMailer struct {
	client      sender
	from        string
	frontendURL string
	welcome     *template.Template
	reset       *template.Template
	now         func() time.Time
}

// New возвращает SMTPMailer, либо NoopMailer, если учетные данные не заданы.
func New(cfg Config) (Mailer, error) {
	if !cfg.Enabled() {
		log.Printf("[Mailer] Учетные данные почты не заданы, отправка писем отключена")
		return NoopMailer{}, nil
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	}
	if cfg.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания SMTP-клиента: %w", err)
	}
	return newSMTPMailer(client, cfg)
}

func newSMTPMailer(client sender, cfg Config) (*SMTPMailer, error) {
	welcome, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/welcome.html")
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора шаблона приветствия: %w", err)
	}
	reset, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/password_reset.html")
	if err != nil {
		return nil, fmt.Errorf("ошибка разбора шаблона сброса пароля: %w", err)
	}

	from := cfg.From
	if from == "" {
		from = defaultFrom
	}

	return &SMTPMailer{
		client:      client,
		from:        from,
		frontendURL: cfg.FrontendURL,
		welcome:     welcome,
		reset:       reset,
		now:         time.Now,
	}, nil
}

type templateData struct {
	Title       string
	AppName     string
	Year        int
	Username    string
	FrontendURL string
	ResetURL    string
}

// SendWelcomeEmail отправляет приветственное письмо после регистрации.
func (m *SMTPMailer) SendWelcomeEmail(ctx context.Context, to, username string) error {
	data := m.data(welcomeSubject, username)
	if err := m.send(ctx, to, welcomeSubject, m.welcome, data); err != nil {
		return err
	}
	log.Printf("[Mailer] Приветственное письмо отправлено на %s", to)
	return nil
}

// SendPasswordResetEmail отправляет ссылку для сброса пароля.
func (m *SMTPMailer) SendPasswordResetEmail(ctx context.Context, to, username, resetURL string) error {
	data := m.data(resetSubject, username)
	data.ResetURL = resetURL
	if err := m.send(ctx, to, resetSubject, m.reset, data); err != nil {
		return err
	}
	log.Printf("[Mailer] Письмо для сброса пароля отправлено на %s", to)
	return nil
}

func (m *SMTPMailer) data(title, username string) templateData {
	return templateData{
		Title:       title,
		AppName:     defaultAppName,
		Year:        m.now().Year(),
		Username:    username,
		FrontendURL: m.frontendURL,
	}
}

func (m *SMTPMailer) send(ctx context.Context, to, subject string, tmpl *template.Template, data templateData) error {
	body, err := render(tmpl, data)
	if err != nil {
		return err
	}

	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("некорректный адрес отправителя: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("некорректный адрес получателя: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("ошибка отправки письма на %s: %w", to, err)
	}
	return nil
}

func render(tmpl *template.Template, data templateData) (string, error) {
	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, "layout", data); err != nil {
		return "", fmt.Errorf("ошибка рендеринга письма: %w", err)
	}
	return body.String(), nil
}

// NoopMailer пропускает отправку, когда SMTP не настроен.
type NoopMailer struct{}

func (NoopMailer) SendWelcomeEmail(_ context.Context, to, _ string) error {
	log.Printf("[Mailer] Почта не настроена, приветственное письмо для %s пропущено", to)
	return nil
}

func (NoopMailer) SendPasswordResetEmail(_ context.Context, to, _, _ string) error {
	log.Printf("[Mailer] Почта не настроена, письмо для сброса пароля для %s пропущено", to)
	return nil
}
