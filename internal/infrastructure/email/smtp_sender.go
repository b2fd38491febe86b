package email

import (
	"context"
	"fmt"
	"html"

	"github.com/rs/zerolog"
	"github.com/wneessen/go-mail"
)

// SMTPSender delivers verification emails over SMTP.
type SMTPSender struct {
	lg zerolog.Logger

	host string
	port int
	user string
	pass string
	from string

	baseURL string // public base URL used to build verification links
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	BaseURL  string
}

func NewSMTPSender(cfg SMTPConfig, lg zerolog.Logger) *SMTPSender {
	return &SMTPSender{
		lg:      lg.With().Str("component", "smtp_sender").Logger(),
		host:    cfg.Host,
		port:    cfg.Port,
		user:    cfg.Username,
		pass:    cfg.Password,
		from:    cfg.From,
		baseURL: cfg.BaseURL,
	}
}

// VerificationLink builds the URL embedded in the email body.
func VerificationLink(baseURL, token string) string {
	return baseURL + "/api/users/verify/" + token
}

func (s *SMTPSender) SendVerificationEmail(ctx context.Context, toEmail, verificationToken string) error {
	url := VerificationLink(s.baseURL, verificationToken)
	subject := "User verification"
	text := fmt.Sprintf("Please open this link to verify your email:\n\n%s\n", url)
	htmlBody := fmt.Sprintf(`<a href=%q>Please click here to verify your email</a>`, html.EscapeString(url))

	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(toEmail); err != nil {
		return fmt.Errorf("invalid to address: %w", err)
	}
	m.Subject(subject)
	m.SetBodyString(mail.TypeTextPlain, text)
	m.AddAlternativeString(mail.TypeTextHTML, htmlBody)

	opts := []mail.Option{
		mail.WithPort(s.port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if s.user != "" {
		opts = append(opts, mail.WithSMTPAuth(mail.SMTPAuthPlain), mail.WithUsername(s.user), mail.WithPassword(s.pass))
	}

	c, err := mail.NewClient(s.host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}

	s.lg.Info().Str("to", toEmail).Msg("verification email sent")
	return nil
}
