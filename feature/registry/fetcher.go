package registry

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"registry-ingest/core/utils"

	"go.uber.org/zap"
)

// PageResult is one fetched page. Total is the record count the source
// reports; only the first page's value is authoritative. Raw is the body
// exactly as received, for archival.
type PageResult struct {
	Page    int
	Total   int
	Records []Record
	Raw     []byte
}

// Client fetches pages from the remote registry endpoint.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// NewClient creates a page fetcher for the configured source.
func NewClient(cfg SourceConfig, log *zap.Logger) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 15
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: time.Duration(timeout) * time.Second},
		log:     log,
	}
}

// FetchPage retrieves one page of records. Network failures, timeouts,
// non-success statuses and undecodable bodies return a *TransportError.
// A decodable body missing the results collection is logged and returned
// as an empty page, keeping whatever total it reported.
func (c *Client) FetchPage(ctx context.Context, page, pageSize int) (*PageResult, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, &TransportError{URL: c.baseURL, Err: err}
	}
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("page_size", strconv.Itoa(pageSize))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &TransportError{URL: u.String(), Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{URL: u.String(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: u.String(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{URL: u.String(), StatusCode: resp.StatusCode}
	}

	result, err := decodePage(body, page)
	if err != nil {
		var malformed *MalformedPageError
		if errors.As(err, &malformed) {
			c.log.Warn("page missing results collection, treating as empty",
				zap.Int("page", page),
				zap.String("reason", malformed.Reason),
			)
			return result, nil
		}
		return nil, &TransportError{URL: u.String(), Err: err}
	}

	return result, nil
}

// pageEnvelope mirrors the source's wire format. Total is decoded
// permissively because the reported value is untrusted.
type pageEnvelope struct {
	Total   any               `json:"total"`
	Results []json.RawMessage `json:"results"`
}

// decodePage parses a page body. A body that is not JSON at all is a hard
// error; a JSON body without a results array degrades to an empty page and
// reports a *MalformedPageError alongside it.
func decodePage(body []byte, page int) (*PageResult, error) {
	var envelope pageEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}

	result := &PageResult{
		Page:  page,
		Total: utils.ToInt(envelope.Total),
		Raw:   body,
	}

	if envelope.Results == nil {
		return result, &MalformedPageError{Page: page, Reason: "results collection absent"}
	}

	result.Records = make([]Record, 0, len(envelope.Results))
	for _, raw := range envelope.Results {
		result.Records = append(result.Records, ParseRecord(raw))
	}
	return result, nil
}
