// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ads resolves author:yy:page citation keys against the NASA
// Astrophysics Data System and returns BibTeX entries for unique matches.
package ads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/time/rate"

	"github.com/pdiddy/auto-bibtex/internal/httputil"
	"github.com/pdiddy/auto-bibtex/pkg/types"
)

// searchFormat is the custom ADS output format: one line per record with
// first-author surname, year, first page and bibcode.
const searchFormat = "author=%za1 , year=%Y , page=%p , bibcode=%R"

var (
	// ErrNoEntry is returned when the record endpoint answers without a BibTeX entry.
	ErrNoEntry = errors.New("no BibTeX entry in response")

	// ErrSkippedLines is returned by Search together with the readable
	// candidates when some result lines could not be parsed.
	ErrSkippedLines = errors.New("search response has unreadable result lines")
)

// Client talks to the ADS search and record endpoints. It is safe for
// concurrent use; all requests share one rate limiter.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     hclog.Logger
	cfg        types.ADSConfig
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for retry and parse warnings.
func WithLogger(l hclog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates an ADS client from cfg. Missing endpoint settings fall
// back to the public ADS defaults.
func NewClient(cfg types.ADSConfig, opts ...ClientOption) *Client {
	if cfg.SearchURL == "" {
		cfg.SearchURL = types.DefaultSearchURL
	}
	if cfg.RecordURL == "" {
		cfg.RecordURL = types.DefaultRecordURL
	}
	if cfg.DBKey == "" {
		cfg.DBKey = types.DefaultDBKey
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = types.DefaultUserAgent
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(limit, 1),
		logger:     hclog.NewNullLogger(),
		cfg:        cfg,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search lists the records whose first author starts with author and that
// were published in year. When some result lines are malformed the
// readable candidates are returned with an error wrapping ErrSkippedLines,
// since a skipped line may hold another match.
func (c *Client) Search(ctx context.Context, author string, year int) ([]Candidate, error) {
	params := url.Values{}
	params.Set("db_key", c.cfg.DBKey)
	params.Set("data_type", "Custom")
	params.Set("format", searchFormat)
	params.Set("author", "^"+author)
	params.Set("start_year", strconv.Itoa(year))
	params.Set("end_year", strconv.Itoa(year))

	body, err := c.get(ctx, c.cfg.SearchURL, params)
	if err != nil {
		return nil, fmt.Errorf("ADS search: %w", err)
	}

	candidates, err := ParseCandidates(strings.NewReader(body))
	if err != nil {
		var merr *multierror.Error
		if !errors.As(err, &merr) {
			return nil, fmt.Errorf("parsing ADS search response: %w", err)
		}
		c.logger.Debug("skipped malformed search result lines", "author", author, "year", year, "lines", len(merr.Errors))
		return candidates, fmt.Errorf("%w: %w", ErrSkippedLines, merr)
	}
	return candidates, nil
}

// FetchBibTeX downloads the BibTeX entry for bibcode. Any preamble before
// the first '@' is dropped.
func (c *Client) FetchBibTeX(ctx context.Context, bibcode string) (string, error) {
	params := url.Values{}
	params.Set("db_key", c.cfg.DBKey)
	params.Set("data_type", "BIBTEX")
	params.Set("bibcode", bibcode)

	body, err := c.get(ctx, c.cfg.RecordURL, params)
	if err != nil {
		return "", fmt.Errorf("ADS record %s: %w", bibcode, err)
	}

	i := strings.IndexByte(body, '@')
	if i < 0 {
		return "", fmt.Errorf("ADS record %s: %w", bibcode, ErrNoEntry)
	}
	return body[i:], nil
}

func (c *Client) get(ctx context.Context, base string, params url.Values) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.cfg.MaxRetries, c.logger)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	return string(data), nil
}
