package launch

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/launchdigest/pkg/sanitizer"
)

// DefaultLaunchLibraryURL is the base URL of The Space Devs Launch Library API.
const DefaultLaunchLibraryURL = "https://ll.thespacedevs.com"

// LaunchLibraryConfig configures the Launch Library 2 source.
type LaunchLibraryConfig struct {
	BaseURL  string // Default: DefaultLaunchLibraryURL
	Provider string // Launch service provider name. Default: "SpaceX"
	Site     string // Matched case-insensitively against the location name
}

// LaunchLibrary fetches upcoming launches from Launch Library 2.
type LaunchLibrary struct {
	client *http.Client
	config LaunchLibraryConfig
}

// NewLaunchLibrary creates a Launch Library source.
// A nil client uses NewHTTPClient with DefaultTimeout.
func NewLaunchLibrary(cfg LaunchLibraryConfig, client *http.Client) *LaunchLibrary {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultLaunchLibraryURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Provider == "" {
		cfg.Provider = "SpaceX"
	}
	if client == nil {
		client = NewHTTPClient(DefaultTimeout)
	}
	return &LaunchLibrary{client: client, config: cfg}
}

// Name implements Source.
func (l *LaunchLibrary) Name() string { return "launchlibrary" }

type llResponse struct {
	Results []struct {
		Name        string `json:"name"`
		WindowStart string `json:"window_start"`
		Image       string `json:"image"`
	} `json:"results"`
}

// Fetch implements Source.
func (l *LaunchLibrary) Fetch(ctx context.Context, w Window) ([]Record, error) {
	params := url.Values{}
	params.Set("lsp__name", l.config.Provider)
	if l.config.Site != "" {
		params.Set("location__name__icontains", l.config.Site)
	}
	params.Set("window_start__lte", w.To.UTC().Format(time.RFC3339))

	var resp llResponse
	if err := doJSON(ctx, l.client, l.config.BaseURL+"/2.2.0/launch/upcoming/?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(resp.Results))
	for _, r := range resp.Results {
		t, err := ParseTime(r.WindowStart)
		if err != nil {
			return nil, err
		}
		records = append(records, Record{
			Name:      sanitizer.Text(r.Name),
			Time:      t,
			Precision: PrecisionHour,
			PatchURL:  sanitizer.URL(r.Image),
			Provider:  l.Name(),
		})
	}

	records = filterWindow(records, w)
	SortByTime(records)
	return records, nil
}

var _ Source = (*LaunchLibrary)(nil)
