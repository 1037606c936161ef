package attio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"log/slog"

	"github.com/leadpipe/leadpipe/internal/schema"
	"github.com/leadpipe/leadpipe/pkg/retry"
)

const (
	defaultBaseURL   = "https://api.attio.com/v2"
	defaultUserAgent = "leadpipe/0.1"
)

// DomainFinder resolves a company's website domain for enrichment. The
// lookup is best-effort: errors and empty results both mean "no domain".
type DomainFinder interface {
	FindDomain(ctx context.Context, companyName string) (string, error)
}

// Config controls how the CRM client behaves.
type Config struct {
	BaseURL      string
	APIKey       string
	ListID       string
	Timeout      time.Duration
	Policy       retry.Policy
	HTTPClient   *http.Client
	Logger       *slog.Logger
	UserAgent    string
	DomainFinder DomainFinder
}

// Client writes lead payloads to the Attio CRM REST API.
type Client struct {
	apiKey       string
	baseURL      string
	listID       string
	httpClient   *http.Client
	policy       retry.Policy
	logger       *slog.Logger
	userAgent    string
	domainFinder DomainFinder
}

// New creates a configured Client with sane defaults.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("attio: API key is required")
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	policy := cfg.Policy
	if policy.MaxAttempts <= 0 {
		policy = retry.Default(nil)
	}
	policy.Retryable = retryableSubmission
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		apiKey:       cfg.APIKey,
		baseURL:      baseURL,
		listID:       cfg.ListID,
		httpClient:   httpClient,
		policy:       policy,
		logger:       logger,
		userAgent:    userAgent,
		domainFinder: cfg.DomainFinder,
	}, nil
}

// Submit writes the payloads strictly in order and returns one result per
// payload, in the same order. When a company creation precedes a person,
// the created (or already existing) company id is linked into the person
// payload before it is sent. A failed company makes dependent person
// payloads report a dependency failure instead of being sent.
func (c *Client) Submit(ctx context.Context, payloads []Payload) []SubmissionResult {
	results := make([]SubmissionResult, 0, len(payloads))

	var companyID string
	var companyFailed bool

	for _, p := range payloads {
		if p.ObjectType == schema.ObjectPerson && companyFailed {
			results = append(results, SubmissionResult{
				ObjectType: p.ObjectType,
				Outcome:    OutcomeRejected,
				Detail:     "dependency failed",
			})
			continue
		}
		if p.ObjectType == schema.ObjectPerson && companyID != "" {
			p.Attributes["company"] = []map[string]any{{
				"target_object":    "companies",
				"target_record_id": companyID,
			}}
		}
		if p.ObjectType == schema.ObjectCompany {
			c.enrichCompanyDomain(ctx, p)
		}

		res := c.submitOne(ctx, p)
		results = append(results, res)

		if p.ObjectType == schema.ObjectCompany {
			switch res.Outcome {
			case OutcomeCreated, OutcomeDuplicate:
				companyID = res.RecordID
			default:
				companyFailed = true
			}
		}
	}
	return results
}

// submitOne creates a single record, interpreting the response into a
// SubmissionResult. Transient failures are retried, duplicates are
// first-class outcomes, and other client errors are final.
func (c *Client) submitOne(ctx context.Context, p Payload) SubmissionResult {
	slug := Slug(p.ObjectType)
	if slug == "" {
		return SubmissionResult{
			ObjectType: p.ObjectType,
			Outcome:    OutcomeRejected,
			Detail:     fmt.Sprintf("unknown object type %q", p.ObjectType),
		}
	}

	body, err := json.Marshal(map[string]any{
		"data": map[string]any{"values": p.Attributes},
	})
	if err != nil {
		return SubmissionResult{
			ObjectType: p.ObjectType,
			Outcome:    OutcomeRejected,
			Detail:     fmt.Sprintf("marshal payload: %v", err),
		}
	}

	var created createdRecord
	err = c.policy.Do(ctx, func(ctx context.Context) error {
		return c.post(ctx, "/objects/"+slug+"/records", body, &created)
	})
	if err != nil {
		return c.interpretFailure(p.ObjectType, err)
	}

	c.logger.Info("record created",
		"object_type", string(p.ObjectType),
		"record_id", created.Data.ID.RecordID,
	)
	c.addToList(ctx, p.List, created.Data.ID.RecordID)

	return SubmissionResult{
		ObjectType: p.ObjectType,
		Outcome:    OutcomeCreated,
		RecordID:   created.Data.ID.RecordID,
	}
}

// interpretFailure folds an API error into the non-exceptional outcome
// vocabulary. The detail string carries the CRM's message, never the
// credential.
func (c *Client) interpretFailure(objectType schema.ObjectType, err error) SubmissionResult {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		if apiErr.duplicate() {
			c.logger.Info("record already exists",
				"object_type", string(objectType),
				"record_id", apiErr.ExistingRecordID,
			)
			return SubmissionResult{
				ObjectType: objectType,
				Outcome:    OutcomeDuplicate,
				RecordID:   apiErr.ExistingRecordID,
				Detail:     apiErr.Message,
			}
		}
		if apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 && apiErr.StatusCode != http.StatusTooManyRequests {
			c.logger.Warn("record rejected",
				"object_type", string(objectType),
				"status", apiErr.StatusCode,
				"detail", apiErr.Message,
			)
			return SubmissionResult{
				ObjectType: objectType,
				Outcome:    OutcomeRejected,
				Detail:     apiErr.Error(),
			}
		}
	}
	c.logger.Error("record submission failed",
		"object_type", string(objectType),
		"error", err,
	)
	return SubmissionResult{
		ObjectType: objectType,
		Outcome:    OutcomeTransient,
		Detail:     err.Error(),
	}
}

// enrichCompanyDomain attaches a looked-up website domain to a company
// payload that does not already carry one. Lookup failures are logged and
// otherwise ignored.
func (c *Client) enrichCompanyDomain(ctx context.Context, p Payload) {
	if c.domainFinder == nil {
		return
	}
	if _, ok := p.Attributes["domains"]; ok {
		return
	}
	name, _ := p.Attributes["name"].(string)
	if name == "" {
		return
	}
	domain, err := c.domainFinder.FindDomain(ctx, name)
	if err != nil {
		c.logger.Warn("company domain lookup failed", "company", name, "error", err)
		return
	}
	if domain != "" {
		p.Attributes["domains"] = []map[string]any{{"domain": domain}}
	}
}

// addToList appends a freshly created record to the configured list. This
// is best-effort and never changes the submission outcome.
func (c *Client) addToList(ctx context.Context, list, recordID string) {
	if list == "" {
		list = c.listID
	}
	if list == "" || recordID == "" {
		return
	}
	body, err := json.Marshal(map[string]any{
		"data": map[string]any{
			"parent_record_id": recordID,
			"parent_object":    "records",
			"entry_values":     map[string]any{},
		},
	})
	if err != nil {
		return
	}
	if err := c.post(ctx, "/lists/"+list+"/entries", body, nil); err != nil {
		c.logger.Warn("list entry creation failed",
			"list", list,
			"record_id", recordID,
			"error", err,
		)
	}
}

func (c *Client) post(ctx context.Context, path string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("attio: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("attio: http error: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("attio: read response: %w", err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out != nil {
			if err := json.Unmarshal(data, out); err != nil {
				return fmt.Errorf("attio: decode response: %w", err)
			}
		}
		return nil
	}
	return decodeAPIError(resp.StatusCode, data)
}

// retryableSubmission reports whether a submission attempt is worth
// repeating: network timeouts, 429, and 5xx responses. Duplicates and
// other 4xx responses are final.
func retryableSubmission(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusTooManyRequests {
			return true
		}
		return apiErr.StatusCode >= 500 && apiErr.StatusCode <= 599
	}
	// Per-request client timeouts also satisfy context.DeadlineExceeded,
	// so the transport check must come before the caller-context one.
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return strings.Contains(err.Error(), "attio: http error")
}

// createdRecord is the CRM's record-creation response envelope.
type createdRecord struct {
	Data struct {
		ID struct {
			RecordID string `json:"record_id"`
		} `json:"id"`
	} `json:"data"`
}

type apiError struct {
	StatusCode       int    `json:"-"`
	Type             string `json:"type,omitempty"`
	Code             string `json:"code,omitempty"`
	Message          string `json:"message,omitempty"`
	ExistingRecordID string `json:"existing_record_id,omitempty"`
}

func (e *apiError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("attio: %s (status=%d)", e.Message, e.StatusCode)
	}
	return fmt.Sprintf("attio: http status %d", e.StatusCode)
}

// duplicate reports whether the error is the CRM's existing-record
// conflict rather than a true failure.
func (e *apiError) duplicate() bool {
	if e.StatusCode == http.StatusConflict {
		return true
	}
	return e.Code == "duplicate" || strings.Contains(strings.ToLower(e.Message), "already exists")
}

func decodeAPIError(status int, body []byte) error {
	var parsed apiError
	if err := json.Unmarshal(body, &parsed); err != nil {
		return &apiError{StatusCode: status, Message: string(body)}
	}
	parsed.StatusCode = status
	return &parsed
}
