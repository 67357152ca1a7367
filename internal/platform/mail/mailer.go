// Package mail delivers the out-of-band emails of the auth flows over SMTP.
package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/url"

	portssvc "github.com/biblioteca-multimedia/bm_backend/internal/core/ports/services"
	"github.com/biblioteca-multimedia/bm_backend/internal/middleware"
	"github.com/biblioteca-multimedia/bm_backend/internal/platform/config"
	"gopkg.in/gomail.v2"
)

// Mailer sends email through SMTP with gomail. When no SMTP host is
// configured it degrades to logging the would-be message and dropping it,
// which keeps local development working without a mail account.
type Mailer struct {
	dialer          *gomail.Dialer
	from            string
	frontendBaseURL string
}

var _ portssvc.EmailDispatcher = (*Mailer)(nil)

// NewMailer builds a Mailer from config. A missing SMTP host disables delivery.
func NewMailer(cfg *config.Config) *Mailer {
	m := &Mailer{
		from:            cfg.SMTPFrom,
		frontendBaseURL: cfg.FrontendBaseURL,
	}
	if cfg.SMTPHost != "" {
		m.dialer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	}
	return m
}

// SendVerificationEmail mails the account-activation link.
func (m *Mailer) SendVerificationEmail(ctx context.Context, to, name, token string) {
	link := fmt.Sprintf("%s/confirmar?token=%s&mail=%s", m.frontendBaseURL, url.QueryEscape(token), url.QueryEscape(to))
	m.dispatch(ctx, to, "Biblioteca Multimedia - Confirma tu cuenta", verificationTmpl, mailData{
		Name: name,
		Link: link,
	})
}

// SendResetEmail mails the password-reset link.
func (m *Mailer) SendResetEmail(ctx context.Context, to, name, token string) {
	link := fmt.Sprintf("%s/restablecer-password?token=%s&mail=%s", m.frontendBaseURL, url.QueryEscape(token), url.QueryEscape(to))
	m.dispatch(ctx, to, "Biblioteca Multimedia - Restablece tu contrasena", resetTmpl, mailData{
		Name: name,
		Link: link,
	})
}

// SendWelcomeEmail greets a freshly auto-provisioned federated account.
func (m *Mailer) SendWelcomeEmail(ctx context.Context, to, name string) {
	m.dispatch(ctx, to, "Bienvenido a Biblioteca Multimedia", welcomeTmpl, mailData{
		Name: name,
		Link: m.frontendBaseURL,
	})
}

type mailData struct {
	Name string
	Link string
}

// dispatch renders and sends on a detached goroutine. Delivery failures are
// logged and dropped so a slow or broken SMTP server never stalls a request.
func (m *Mailer) dispatch(ctx context.Context, to, subject string, tmpl *template.Template, data mailData) {
	logger := middleware.GetLoggerFromCtx(ctx).With(
		slog.String("to", to),
		slog.String("subject", subject),
	)

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		logger.Error("Failed to render email template", slog.String("error", err.Error()))
		return
	}

	if m.dialer == nil {
		logger.Info("SMTP not configured, dropping email", slog.String("link", data.Link))
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body.String())

	go func() {
		if err := m.dialer.DialAndSend(msg); err != nil {
			logger.Warn("Failed to send email", slog.String("error", err.Error()))
		}
	}()
}

var verificationTmpl = template.Must(template.New("verification").Parse(`
<p>Hola {{.Name}},</p>
<p>Gracias por registrarte en Biblioteca Multimedia. Tu cuenta ya casi esta lista,
solo debes confirmarla en el siguiente enlace:</p>
<p><a href="{{.Link}}">Confirmar cuenta</a></p>
<p>El enlace caduca en 30 minutos. Si tu no creaste esta cuenta, puedes ignorar este mensaje.</p>
`))

var resetTmpl = template.Must(template.New("reset").Parse(`
<p>Hola {{.Name}},</p>
<p>Has solicitado restablecer tu contrasena. Genera una nueva en el siguiente enlace:</p>
<p><a href="{{.Link}}">Restablecer contrasena</a></p>
<p>El enlace caduca en 1 hora y solo puede usarse una vez.
Si tu no solicitaste este cambio, puedes ignorar este mensaje.</p>
`))

var welcomeTmpl = template.Must(template.New("welcome").Parse(`
<p>Hola {{.Name}},</p>
<p>Tu cuenta de Biblioteca Multimedia quedo creada con tu identidad de Google.
Ya puedes empezar a registrar tus libros, peliculas y series:</p>
<p><a href="{{.Link}}">Ir a Biblioteca Multimedia</a></p>
`))
