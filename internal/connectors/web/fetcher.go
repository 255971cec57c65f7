package web

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
	"github.com/custodia-labs/regscan/internal/logger"
)

const (
	// MaxAttempts bounds retries of a rate-limited request.
	MaxAttempts = 3

	// MaxBodySize caps a single download. Larger bodies fail with ErrFetch.
	MaxBodySize = 256 << 20
)

// Verify interface compliance.
var _ driven.DocumentSource = (*Fetcher)(nil)

// Config configures a Fetcher.
type Config struct {
	// BaseURL is prefixed to links that are not absolute.
	BaseURL string

	// UserAgent is sent with every request.
	UserAgent string

	// Timeout caps a single request. Zero means no timeout.
	Timeout time.Duration

	// Rate and Burst configure the shared token bucket.
	Rate  float64
	Burst int
}

// Fetcher downloads the PDF fragments of a record.
type Fetcher struct {
	client    *http.Client
	limiter   *RateLimiter
	baseURL   string
	userAgent string
	maxBody   int64
}

// NewFetcher creates a fetcher from cfg.
func NewFetcher(cfg Config) *Fetcher {
	return NewFetcherWithClient(cfg, &http.Client{Timeout: cfg.Timeout})
}

// NewFetcherWithClient creates a fetcher using the given HTTP client.
func NewFetcherWithClient(cfg Config, client *http.Client) *Fetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultFEDBaseURL
	}
	if cfg.Rate <= 0 {
		cfg.Rate = domain.DefaultFetchRate
	}
	return &Fetcher{
		client:    client,
		limiter:   NewRateLimiter(cfg.Rate, cfg.Burst),
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		maxBody:   MaxBodySize,
	}
}

// ResolveLink returns link unchanged when it is an absolute http(s) URL
// and prefixes the base URL otherwise.
func (f *Fetcher) ResolveLink(link string) string {
	link = strings.TrimSpace(link)
	lower := strings.ToLower(link)
	if strings.HasPrefix(lower, "https://") || strings.HasPrefix(lower, "http://") {
		return link
	}
	return strings.TrimSuffix(f.baseURL, "/") + "/" + strings.TrimPrefix(link, "/")
}

// Fetch downloads the document behind record.Link.
func (f *Fetcher) Fetch(ctx context.Context, record domain.SourceRecord) (domain.SourceDocument, error) {
	if record.Link == "" {
		return domain.SourceDocument{}, fmt.Errorf("%w: record %s has no link", domain.ErrInvalidInput, record.RecordID)
	}
	link := f.ResolveLink(record.Link)

	// 1. Download the link itself
	body, contentType, err := f.get(ctx, link)
	if err != nil {
		return domain.SourceDocument{}, fmt.Errorf("fetch record %s: %w", record.RecordID, err)
	}

	doc := domain.SourceDocument{
		RecordID: record.RecordID,
		Link:     link,
	}

	// 2. A direct PDF is the whole document
	if !isHTML(link, contentType) {
		doc.Origin = domain.OriginDirect
		doc.Fragments = [][]byte{body}
		logger.Debug("fetched %s (%d bytes)", link, len(body))
		return doc, nil
	}

	// 3. An HTML page lists the fragments
	base, err := url.Parse(link)
	if err != nil {
		return domain.SourceDocument{}, fmt.Errorf("%w: parse link %q: %v", domain.ErrFetch, link, err)
	}
	pdfLinks, err := ExtractPDFLinks(bytes.NewReader(body), base)
	if err != nil {
		return domain.SourceDocument{}, fmt.Errorf("%w: parse page %s: %v", domain.ErrFetch, link, err)
	}
	if len(pdfLinks) == 0 {
		return domain.SourceDocument{}, fmt.Errorf("%w: no PDF links on %s", domain.ErrFetch, link)
	}
	logger.Debug("page %s links %d PDFs", link, len(pdfLinks))

	doc.Origin = domain.OriginHTMLPage
	doc.Fragments = make([][]byte, 0, len(pdfLinks))
	for i, pdfLink := range pdfLinks {
		fragment, _, err := f.get(ctx, pdfLink)
		if err != nil {
			return domain.SourceDocument{}, fmt.Errorf("fetch record %s fragment %d: %w", record.RecordID, i+1, err)
		}
		doc.Fragments = append(doc.Fragments, fragment)
	}
	return doc, nil
}

// get performs a rate-limited GET, retrying a 429 after the pause the
// server asked for.
func (f *Fetcher) get(ctx context.Context, link string) ([]byte, string, error) {
	var lastErr error
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, "", err
		}

		body, contentType, err := f.do(ctx, link)
		if err == nil {
			return body, contentType, nil
		}

		var rle *RateLimitError
		if !errors.As(err, &rle) {
			return nil, "", err
		}
		lastErr = err
		logger.Warn("rate limited by %s (attempt %d/%d)", link, attempt, MaxAttempts)
	}
	return nil, "", lastErr
}

func (f *Fetcher) do(ctx context.Context, link string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, http.NoBody)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrFetch, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, "", ctxErr
		}
		return nil, "", fmt.Errorf("%w: GET %s: %v", domain.ErrFetch, link, err)
	}
	defer resp.Body.Close()

	// A 503 still blocks the limiter but surfaces as a plain status error.
	var rle *RateLimitError
	if err := f.limiter.CheckRateLimit(resp); errors.As(err, &rle) && rle.Retryable() {
		return nil, "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &StatusError{URL: link, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, "", fmt.Errorf("%w: read %s: %v", domain.ErrFetch, link, err)
	}
	if int64(len(body)) > f.maxBody {
		return nil, "", fmt.Errorf("%w: %s: document too large (over %d bytes)", domain.ErrFetch, link, f.maxBody)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func isHTML(link, contentType string) bool {
	if u, err := url.Parse(link); err == nil {
		p := strings.ToLower(u.Path)
		if strings.HasSuffix(p, ".htm") || strings.HasSuffix(p, ".html") {
			return true
		}
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "text/html"
}
