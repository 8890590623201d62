package launch

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/launchdigest/pkg/cache"
	"github.com/dmitrymomot/launchdigest/pkg/sanitizer"
)

// DefaultSpaceXURL is the base URL of the public SpaceX API.
const DefaultSpaceXURL = "https://api.spacexdata.com"

// SpaceXConfig configures the SpaceX v4 source.
type SpaceXConfig struct {
	BaseURL string // Default: DefaultSpaceXURL
	Site    string // Launch pad locality prefix, e.g. "Vandenberg"
	PadTTL  time.Duration
}

// SpaceXOption configures optional SpaceX source dependencies.
type SpaceXOption func(*SpaceX)

// WithSpaceXClient sets the HTTP client used for API calls.
func WithSpaceXClient(c *http.Client) SpaceXOption {
	return func(s *SpaceX) {
		if c != nil {
			s.client = c
		}
	}
}

// WithPadCache caches resolved launch pad IDs.
// Pads change rarely, so repeated runs can skip the /launchpads call.
func WithPadCache(c cache.Cache[[]string]) SpaceXOption {
	return func(s *SpaceX) {
		s.pads = c
	}
}

// SpaceX fetches upcoming launches from the SpaceX v4 API.
type SpaceX struct {
	client *http.Client
	pads   cache.Cache[[]string]
	config SpaceXConfig
}

// NewSpaceX creates a SpaceX source.
func NewSpaceX(cfg SpaceXConfig, opts ...SpaceXOption) *SpaceX {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultSpaceXURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	s := &SpaceX{
		client: NewHTTPClient(DefaultTimeout),
		config: cfg,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Source.
func (s *SpaceX) Name() string { return "spacex" }

type spacexPad struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Locality string `json:"locality"`
}

type spacexQuery struct {
	Query   map[string]any `json:"query"`
	Options map[string]any `json:"options"`
}

type spacexLaunch struct {
	Name          string `json:"name"`
	DateUTC       string `json:"date_utc"`
	DatePrecision string `json:"date_precision"`
	Links         struct {
		Patch struct {
			Small string `json:"small"`
		} `json:"patch"`
	} `json:"links"`
}

type spacexQueryResult struct {
	Docs []spacexLaunch `json:"docs"`
}

// Fetch implements Source.
func (s *SpaceX) Fetch(ctx context.Context, w Window) ([]Record, error) {
	padIDs, err := s.padIDs(ctx)
	if err != nil {
		return nil, err
	}
	if len(padIDs) == 0 {
		return []Record{}, nil
	}

	query := spacexQuery{
		Query: map[string]any{
			"upcoming":  true,
			"launchpad": map[string]any{"$in": padIDs},
		},
		Options: map[string]any{
			"sort":       map[string]string{"date_utc": "asc"},
			"select":     []string{"name", "date_utc", "date_precision", "links.patch.small"},
			"pagination": false,
		},
	}

	var result spacexQueryResult
	if err := doJSON(ctx, s.client, s.config.BaseURL+"/v4/launches/query", query, &result); err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(result.Docs))
	for _, doc := range result.Docs {
		t, err := ParseTime(doc.DateUTC)
		if err != nil {
			return nil, err
		}
		precision := Precision(doc.DatePrecision)
		if precision == "" {
			precision = PrecisionHour
		}
		records = append(records, Record{
			Name:      sanitizer.Text(doc.Name),
			Time:      t,
			Precision: precision,
			PatchURL:  sanitizer.URL(doc.Links.Patch.Small),
			Provider:  s.Name(),
		})
	}

	records = filterWindow(records, w)
	SortByTime(records)
	return records, nil
}

// padIDs returns the IDs of launch pads whose locality starts with the configured site.
func (s *SpaceX) padIDs(ctx context.Context) ([]string, error) {
	if s.pads == nil {
		return s.fetchPadIDs(ctx)
	}
	return cache.GetOrSet(ctx, s.pads, "pads:"+strings.ToLower(s.config.Site),
		func(ctx context.Context) ([]string, time.Duration, error) {
			ids, err := s.fetchPadIDs(ctx)
			return ids, s.config.PadTTL, err
		})
}

func (s *SpaceX) fetchPadIDs(ctx context.Context) ([]string, error) {
	var pads []spacexPad
	if err := doJSON(ctx, s.client, s.config.BaseURL+"/v4/launchpads", nil, &pads); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(pads))
	for _, p := range pads {
		if strings.HasPrefix(p.Locality, s.config.Site) {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

var _ Source = (*SpaceX)(nil)
