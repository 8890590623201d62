package digest

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/dmitrymomot/launchdigest/pkg/launch"
	"github.com/dmitrymomot/launchdigest/pkg/logger"
	"github.com/dmitrymomot/launchdigest/pkg/mailer"
)

// DefaultTemplate is the markdown template used for the HTML part.
const DefaultTemplate = "digest.md"

// Mailer is the subset of mailer.Mailer the service needs.
type Mailer interface {
	Send(ctx context.Context, params mailer.SendParams) error
}

// Config describes one digest.
type Config struct {
	Location  *time.Location // Display timezone. Default: UTC
	To        string         // Recipient
	Site      string         // Launch site shown in the email
	Template  string         // Default: DefaultTemplate
	Horizon   time.Duration  // How far ahead to look
	SkipEmpty bool           // Do not send when nothing is scheduled
}

// Entry is a launch as passed to the template.
type Entry struct {
	When     string
	Name     string
	PatchURL string
}

// TemplateData is the data the digest template is executed with.
type TemplateData struct {
	Site     string
	Horizon  string
	Timezone string
	Launches []Entry
}

// Result summarizes a run.
type Result struct {
	Launches int
	Sent     bool
}

// Service fetches launches and sends the digest.
type Service struct {
	source launch.Source
	mailer Mailer
	logger *slog.Logger
	now    func() time.Time
	config Config
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used to compute the window.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// NewService creates a digest service.
func NewService(source launch.Source, m Mailer, cfg Config, opts ...Option) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Template == "" {
		cfg.Template = DefaultTemplate
	}

	s := &Service{
		source: source,
		mailer: m,
		logger: logger.NewNope(),
		now:    time.Now,
		config: cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run performs one fetch, format and send cycle.
func (s *Service) Run(ctx context.Context) (Result, error) {
	window := launch.NewWindow(s.now(), s.config.Horizon)

	records, err := s.source.Fetch(ctx, window)
	if err != nil {
		return Result{}, errors.Join(ErrFetch, err)
	}

	s.logger.InfoContext(ctx, "launches fetched",
		slog.Int("launches", len(records)),
		slog.Time("until", window.To),
	)

	if len(records) == 0 && s.config.SkipEmpty {
		s.logger.InfoContext(ctx, "no launches scheduled, digest skipped")
		return Result{}, nil
	}

	params := mailer.SendParams{
		To:       s.config.To,
		Template: s.config.Template,
		Data:     s.templateData(records),
		Text:     FormatText(records, s.config.Location, s.config.Site, s.config.Horizon),
		Tags: mailer.Tags{
			"digest":   struct{}{},
			"launches": strconv.Itoa(len(records)),
		},
	}
	if err := s.mailer.Send(ctx, params); err != nil {
		return Result{Launches: len(records)}, errors.Join(ErrSend, err)
	}

	s.logger.InfoContext(ctx, "digest sent",
		slog.Int("launches", len(records)),
		slog.String("to", s.config.To),
	)
	return Result{Launches: len(records), Sent: true}, nil
}

func (s *Service) templateData(records []launch.Record) TemplateData {
	entries := make([]Entry, len(records))
	for i, r := range records {
		entries[i] = Entry{
			When:     FormatWhen(r, s.config.Location),
			Name:     r.Name,
			PatchURL: r.PatchURL,
		}
	}
	return TemplateData{
		Site:     s.config.Site,
		Horizon:  HorizonLabel(s.config.Horizon),
		Timezone: s.config.Location.String(),
		Launches: entries,
	}
}
