package config_test

import (
	"maps"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/launchdigest/internal/config"
	"github.com/dmitrymomot/launchdigest/pkg/mailer/smtp"
)

func requiredVars() map[string]string {
	return map[string]string{
		"SMTP_HOST":  "smtp.example.com",
		"SMTP_PORT":  "465",
		"SMTP_USER":  "digest@example.com",
		"SMTP_PASS":  "app-password",
		"DEST_EMAIL": "ops@example.com",
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFrom(requiredVars())
	require.NoError(t, err)

	require.Equal(t, "smtp.example.com", cfg.SMTP.Host)
	require.Equal(t, 465, cfg.SMTP.Port)
	require.Equal(t, "digest@example.com", cfg.SMTP.Username)
	require.Equal(t, "app-password", cfg.SMTP.Password)
	require.Equal(t, "ops@example.com", cfg.DestEmail)

	require.Equal(t, config.ProviderSMTP, cfg.Provider)
	require.Equal(t, smtp.TLSImplicit, cfg.SMTP.TLS)
	require.Equal(t, 10*time.Second, cfg.SMTP.Timeout)
	require.Equal(t, "Vandenberg", cfg.Digest.Site)
	require.Equal(t, 21*24*time.Hour, cfg.Digest.Horizon)
	require.Equal(t, "0 15 * * 1", cfg.Digest.Schedule)
	require.False(t, cfg.Digest.SkipEmpty)
	require.Equal(t, "America/Los_Angeles", cfg.Location().String())
	require.Equal(t, "info", cfg.Logger.Level)
	require.Equal(t, "json", cfg.Logger.Format)
	require.Equal(t, "digest@example.com", cfg.FromAddress())
}

func TestLoadFrom_MissingRequired(t *testing.T) {
	t.Parallel()

	for name := range requiredVars() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			vars := maps.Clone(requiredVars())
			delete(vars, name)

			cfg, err := config.LoadFrom(vars)
			require.ErrorIs(t, err, config.ErrMissingEnv)
			require.ErrorContains(t, err, name)
			require.Nil(t, cfg)
		})
	}
}

func TestLoadFrom_ReportsAllMissing(t *testing.T) {
	t.Parallel()

	_, err := config.LoadFrom(map[string]string{})
	require.ErrorIs(t, err, config.ErrMissingEnv)
	for name := range requiredVars() {
		require.ErrorContains(t, err, name)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "port not a number", key: "SMTP_PORT", val: "smtp"},
		{name: "port out of range", key: "SMTP_PORT", val: "70000"},
		{name: "tls mode", key: "SMTP_TLS", val: "ssl3"},
		{name: "provider", key: "MAIL_PROVIDER", val: "carrier-pigeon"},
		{name: "timezone", key: "DIGEST_TIMEZONE", val: "Mars/Olympus_Mons"},
		{name: "schedule", key: "DIGEST_SCHEDULE", val: "every monday"},
		{name: "horizon", key: "DIGEST_HORIZON", val: "-1h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			vars := requiredVars()
			vars[tt.key] = tt.val

			_, err := config.LoadFrom(vars)
			require.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestLoadFrom_ResendProvider(t *testing.T) {
	t.Parallel()

	vars := map[string]string{
		"MAIL_PROVIDER":  "resend",
		"RESEND_API_KEY": "re_123",
		"MAIL_FROM":      "digest@example.com",
		"DEST_EMAIL":     "ops@example.com",
	}

	cfg, err := config.LoadFrom(vars)
	require.NoError(t, err)
	require.Equal(t, config.ProviderResend, cfg.Provider)
	require.Equal(t, "digest@example.com", cfg.FromAddress())

	delete(vars, "RESEND_API_KEY")
	_, err = config.LoadFrom(vars)
	require.ErrorIs(t, err, config.ErrMissingEnv)
	require.ErrorContains(t, err, "RESEND_API_KEY")
}

func TestLoadFrom_Overrides(t *testing.T) {
	t.Parallel()

	vars := requiredVars()
	vars["SMTP_TLS"] = "starttls"
	vars["DIGEST_SITE"] = "Cape Canaveral"
	vars["DIGEST_HORIZON"] = "168h"
	vars["DIGEST_SKIP_EMPTY"] = "true"
	vars["MAIL_FROM"] = "launches@example.com"

	cfg, err := config.LoadFrom(vars)
	require.NoError(t, err)
	require.Equal(t, smtp.TLSStartTLS, cfg.SMTP.TLS)
	require.Equal(t, "Cape Canaveral", cfg.Digest.Site)
	require.Equal(t, 7*24*time.Hour, cfg.Digest.Horizon)
	require.True(t, cfg.Digest.SkipEmpty)
	require.Equal(t, "launches@example.com", cfg.FromAddress())
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	dotenv := "SMTP_HOST=smtp.example.com\nSMTP_PORT=587\nSMTP_USER=digest@example.com\n" +
		"SMTP_PASS=app-password\nSMTP_TLS=starttls\nDEST_EMAIL=file@example.com\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(dotenv), 0o600))

	// Start from a clean slate; cleanup restores the original values.
	for _, key := range []string{"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "SMTP_TLS", "MAIL_PROVIDER"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv("DEST_EMAIL", "env@example.com")
	t.Chdir(dir)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, 587, cfg.SMTP.Port)
	require.Equal(t, smtp.TLSStartTLS, cfg.SMTP.TLS)
	require.Equal(t, "env@example.com", cfg.DestEmail)
}

func TestLoad_WithoutDotEnvFile(t *testing.T) {
	for key, value := range requiredVars() {
		t.Setenv(key, value)
	}
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "ops@example.com", cfg.DestEmail)
}
