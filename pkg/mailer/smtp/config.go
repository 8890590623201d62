package smtp

import "time"

// TLSMode selects how the connection is secured.
type TLSMode string

const (
	// TLSImplicit wraps the connection in TLS before the SMTP greeting (port 465).
	TLSImplicit TLSMode = "implicit"
	// TLSStartTLS upgrades a plain connection with STARTTLS (port 587).
	TLSStartTLS TLSMode = "starttls"
	// TLSNone sends in clear text. Only for local relays and tests.
	TLSNone TLSMode = "none"
)

// Config holds SMTP provider configuration.
type Config struct {
	Host     string        `env:"SMTP_HOST"`
	Username string        `env:"SMTP_USER"`
	Password string        `env:"SMTP_PASS"`
	TLS      TLSMode       `env:"SMTP_TLS" envDefault:"implicit"`
	Port     int           `env:"SMTP_PORT"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT" envDefault:"10s"`

	// SenderEmail is the default From address. Falls back to Username.
	SenderEmail string `env:"MAIL_FROM"`
	SenderName  string `env:"MAIL_FROM_NAME"`
}
