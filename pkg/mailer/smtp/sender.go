package smtp

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/dmitrymomot/launchdigest/pkg/mailer"
)

const defaultTimeout = 10 * time.Second

// Sender implements mailer.Sender over an SMTP session.
// Every Send opens a connection, delivers one message and quits.
type Sender struct {
	now    func() time.Time
	tls    *tls.Config
	config Config
}

// Option configures a Sender.
type Option func(*Sender)

// WithTLSConfig overrides the TLS client configuration.
func WithTLSConfig(c *tls.Config) Option {
	return func(s *Sender) {
		s.tls = c
	}
}

// New creates an SMTP sender.
func New(cfg Config, opts ...Option) *Sender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.TLS == "" {
		cfg.TLS = TLSImplicit
	}
	if cfg.SenderEmail == "" {
		cfg.SenderEmail = cfg.Username
	}

	s := &Sender{
		now:    time.Now,
		config: cfg,
		tls: &tls.Config{
			ServerName: cfg.Host,
			MinVersion: tls.VersionTLS12,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if err := email.Validate(); err != nil {
		return err
	}

	from := email.From
	if from == "" {
		if s.config.SenderEmail == "" {
			return ErrNoSender
		}
		from = mailer.Address(s.config.SenderName, s.config.SenderEmail)
	}
	envelopeFrom := s.config.SenderEmail
	if email.From != "" {
		envelopeFrom = email.From
		if addr, err := parseAddress(email.From); err == nil {
			envelopeFrom = addr
		}
	}

	msg, err := buildMessage(email, from, s.now())
	if err != nil {
		return fmt.Errorf("smtp: build message: %w", err)
	}

	c, err := s.dial(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := s.authenticate(c); err != nil {
		return err
	}

	if err := c.Mail(envelopeFrom); err != nil {
		return errors.Join(ErrRejected, fmt.Errorf("MAIL FROM: %w", err))
	}
	for _, rcpt := range email.To {
		addr := rcpt
		if parsed, err := parseAddress(rcpt); err == nil {
			addr = parsed
		}
		if err := c.Rcpt(addr); err != nil {
			return errors.Join(ErrRejected, fmt.Errorf("RCPT TO %s: %w", addr, err))
		}
	}

	w, err := c.Data()
	if err != nil {
		return errors.Join(ErrRejected, fmt.Errorf("DATA: %w", err))
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return errors.Join(ErrRejected, fmt.Errorf("write body: %w", err))
	}
	if err := w.Close(); err != nil {
		return errors.Join(ErrRejected, fmt.Errorf("end of data: %w", err))
	}

	// The message is accepted once DATA completes; a failed QUIT is not a delivery failure.
	_ = c.Quit()
	return nil
}

// dial connects, secures the session according to the TLS mode and
// returns a client that has completed the EHLO exchange.
func (s *Sender) dial(ctx context.Context) (*smtp.Client, error) {
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))

	dialer := net.Dialer{Timeout: s.config.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, errors.Join(ErrDial, err)
	}

	deadline := time.Now().Add(s.config.Timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetDeadline(deadline)

	if s.config.TLS == TLSImplicit {
		tlsConn := tls.Client(conn, s.tls)
		if err := tlsConn.HandshakeContext(ctx); err != nil {
			_ = conn.Close()
			return nil, errors.Join(ErrTLS, err)
		}
		conn = tlsConn
	}

	c, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		_ = conn.Close()
		return nil, errors.Join(ErrDial, err)
	}

	if s.config.TLS == TLSStartTLS {
		if ok, _ := c.Extension("STARTTLS"); !ok {
			_ = c.Close()
			return nil, errors.Join(ErrTLS, errors.New("server does not support STARTTLS"))
		}
		if err := c.StartTLS(s.tls); err != nil {
			_ = c.Close()
			return nil, errors.Join(ErrTLS, err)
		}
	}

	return c, nil
}

// authenticate logs in when credentials are configured. A server that does
// not offer AUTH is an error then, the message is never sent unauthenticated.
// net/smtp refuses PLAIN over an unencrypted connection to a non-local host.
func (s *Sender) authenticate(c *smtp.Client) error {
	if s.config.Username == "" {
		return nil
	}
	if ok, _ := c.Extension("AUTH"); !ok {
		return errors.Join(ErrAuth, errors.New("server does not support AUTH"))
	}
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	if err := c.Auth(auth); err != nil {
		return errors.Join(ErrAuth, err)
	}
	return nil
}

var _ mailer.Sender = (*Sender)(nil)
