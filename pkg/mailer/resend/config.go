package resend

// Config holds Resend provider configuration.
type Config struct {
	APIKey      string `env:"RESEND_API_KEY"`
	SenderEmail string `env:"MAIL_FROM"`
	SenderName  string `env:"MAIL_FROM_NAME"`
}
