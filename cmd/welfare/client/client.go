package client

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/SanteonNL/welfare/cmd/welfare/parser"
	"github.com/SanteonNL/welfare/models/welfare"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	DefaultTimeout = 30 * time.Second
	maxBodySize    = 16 << 20
)

// Options configures a WelfareClient.
type Options struct {
	BaseURL  string
	APIKey   string    // Decoded service key
	Variants []Variant // Defaults to DefaultVariants
	Timeout  time.Duration
	MaxRPS   float64 // 0 means unlimited
	Log      zerolog.Logger
}

// WelfareClient queries the central welfare service list endpoint.
type WelfareClient struct {
	baseURL  string
	apiKey   string
	variants []Variant
	timeout  time.Duration
	limiter  *rate.Limiter
	log      zerolog.Logger
}

// Result is the outcome of a successful probe.
type Result struct {
	Body     []byte
	Records  []welfare.ServiceRecord
	Variant  Variant          // Variant that produced the records
	Failures []AttemptFailure // Variants tried before it
}

func NewWelfareClient(opts Options) (*WelfareClient, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if opts.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	variants := opts.Variants
	if len(variants) == 0 {
		variants = DefaultVariants
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	limit := rate.Inf
	if opts.MaxRPS > 0 {
		limit = rate.Limit(opts.MaxRPS)
	}

	return &WelfareClient{
		baseURL:  opts.BaseURL,
		apiKey:   opts.APIKey,
		variants: variants,
		timeout:  timeout,
		limiter:  rate.NewLimiter(limit, 1),
		log:      opts.Log,
	}, nil
}

// BuildQuery returns the canonical query of a list request. Filter codes are
// only included when set.
func BuildQuery(apiKey string, filter welfare.SearchFilter) url.Values {
	query := url.Values{}
	query.Set("serviceKey", apiKey)
	query.Set("callTp", "L")
	query.Set("pageNo", strconv.Itoa(filter.PageNumber))
	query.Set("numOfRows", strconv.Itoa(filter.PageSize))
	query.Set("srchKeyCode", "001")
	for param, code := range filter.Codes() {
		query.Set(param, code)
	}
	return query
}

// Fetch tries every transport variant in order and returns the first response
// that yields at least one record. When none does, the error is a
// *TransportExhaustedError listing every failure.
func (c *WelfareClient) Fetch(ctx context.Context, filter welfare.SearchFilter) (*Result, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("invalid search filter: %w", err)
	}
	query := BuildQuery(c.apiKey, filter)

	var failures []AttemptFailure
	for _, variant := range c.variants {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		log := c.log.With().Str("variant", variant.String()).Int("page", filter.PageNumber).Logger()
		body, err := c.attempt(ctx, variant, query, log)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			log.Warn().Err(err).Msg("Transport variant failed")
			failures = append(failures, AttemptFailure{Variant: variant, Err: err})
			continue
		}

		records, err := parser.Parse(body)
		if err != nil {
			log.Warn().Err(err).Msg("Response could not be parsed")
			failures = append(failures, AttemptFailure{Variant: variant, Err: err})
			continue
		}
		if len(records) == 0 {
			log.Debug().Msg("Response contained no records")
			failures = append(failures, AttemptFailure{Variant: variant, Err: ErrNoRecords})
			continue
		}

		log.Info().Int("records", len(records)).Int("failed_variants", len(failures)).Msg("Fetched welfare services")
		return &Result{
			Body:     body,
			Records:  records,
			Variant:  variant,
			Failures: failures,
		}, nil
	}

	return nil, &TransportExhaustedError{Attempts: failures}
}

// attempt issues one GET using the session settings of variant.
func (c *WelfareClient) attempt(ctx context.Context, variant Variant, query url.Values, log zerolog.Logger) ([]byte, error) {
	endpoint, err := endpointFor(c.baseURL, variant.Scheme, query)
	if err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	variant.setHeaders(req.Header)

	httpClient, transport := c.newHTTPClient(variant, log)
	defer transport.CloseIdleConnections()

	resp, err := httpClient.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			urlErr.URL = redactURL(urlErr.URL)
		}
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// newHTTPClient builds a fresh session for one attempt. Retries are disabled:
// the variant list is the only fallback.
func (c *WelfareClient) newHTTPClient(variant Variant, log zerolog.Logger) (*retryablehttp.Client, *http.Transport) {
	transport := cleanhttp.DefaultTransport()
	if !variant.TLSVerify {
		// Trust downgrade for endpoints serving broken certificate chains,
		// scoped to this transport only.
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		log.Debug().Msg("TLS certificate verification disabled for this attempt")
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.HTTPClient = &http.Client{
		Transport: transport,
		Timeout:   c.timeout,
	}
	retryClient.Logger = leveledLogger{log: log}
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return retryClient, transport
}

// endpointFor rewrites the base URL to scheme and merges query into it.
func endpointFor(baseURL, scheme string, query url.Values) (string, error) {
	if !strings.Contains(baseURL, "://") {
		baseURL = scheme + "://" + strings.TrimPrefix(baseURL, "//")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Host == "" {
		return "", errors.New("base URL has no host")
	}
	u.Scheme = scheme

	merged := u.Query()
	for k, v := range query {
		merged[k] = v
	}
	u.RawQuery = merged.Encode()
	return u.String(), nil
}
