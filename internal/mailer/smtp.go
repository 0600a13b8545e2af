package mailer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/sony/gobreaker/v2"
	"github.com/wneessen/go-mail"
)

// SMTPConfig mirrors the historical deployments: gmail-style authenticated
// relay in production, a bare local postfix in development, so auth and TLS
// are both optional.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	UseTLS   bool
}

// SMTPSender delivers composed messages over SMTP. Sends run through a
// circuit breaker so a dead relay fails fast instead of stalling checkouts.
type SMTPSender struct {
	client  *mail.Client
	breaker *gobreaker.CircuitBreaker[any]
}

func NewSMTPSender(cfg SMTPConfig) (*SMTPSender, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	if !cfg.UseTLS {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name: "smtp-send",
	})

	return &SMTPSender{client: client, breaker: breaker}, nil
}

func (s *SMTPSender) Send(ctx context.Context, msg *Message) error {
	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("invalid to address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Text)
	m.AddAlternativeString(mail.TypeTextHTML, msg.HTML)

	for _, embed := range msg.Embeds {
		if embed.Path != "" {
			m.EmbedFile(embed.Path, mail.WithFileName(embed.Name))
			continue
		}
		if err := m.EmbedReader(embed.Name, bytes.NewReader(embed.Content),
			mail.WithFileContentType(mail.ContentType(embed.ContentType))); err != nil {
			return fmt.Errorf("embed %s: %w", embed.Name, err)
		}
	}

	_, err := s.breaker.Execute(func() (any, error) {
		return nil, s.client.DialAndSendWithContext(ctx, m)
	})
	if err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
