// Package openfda implements the recall lookup against the openFDA food
// enforcement endpoint.
package openfda

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"recall-notes-backend/internal/application/ports"
	"recall-notes-backend/internal/domain"
	"recall-notes-backend/internal/infrastructure/observability"
	appErrors "recall-notes-backend/pkg/errors"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the public food enforcement endpoint.
	DefaultBaseURL = "https://api.fda.gov/food/enforcement.json"

	// DefaultTimeout bounds a single upstream call.
	DefaultTimeout = 10 * time.Second

	serviceName = "openFDA"
)

// BreakerConfig configures the circuit breaker placed in front of the
// upstream. Only transport failures and 5xx responses count as failures.
type BreakerConfig struct {
	Enabled          bool
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerConfig returns the default thresholds. The breaker itself is
// off unless Enabled is set.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Enabled:          false,
		MaxRequests:      5,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// Config configures a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Breaker BreakerConfig
}

// Client queries openFDA and normalizes the results.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	metrics    *observability.Collector
	logger     *zap.Logger
	tracer     trace.Tracer
}

var _ ports.RecallLookup = (*Client)(nil)

// NewClient creates a client. httpClient and metrics may be nil.
func NewClient(cfg Config, httpClient *http.Client, metrics *observability.Collector, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		baseURL:    cfg.BaseURL,
		timeout:    cfg.Timeout,
		httpClient: httpClient,
		metrics:    metrics,
		logger:     logger.Named("openfda"),
		tracer:     otel.Tracer("recall-notes-backend/openfda"),
	}
	if cfg.Breaker.Enabled {
		c.breaker = newBreaker(cfg.Breaker, c.logger)
	}
	return c
}

func newBreaker(cfg BreakerConfig, logger *zap.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        serviceName,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			// Upstream 4xx answers mean the service is up.
			if appErr := appErrors.GetAppError(err); appErr != nil && appErr.Type == appErrors.ErrorTypeUpstream {
				return appErr.HTTPStatus < http.StatusInternalServerError
			}
			return false
		},
	})
}

// enforcementResponse is the subset of the openFDA envelope we read.
// Results stay raw so one odd field cannot fail the whole lookup.
type enforcementResponse struct {
	Results []map[string]json.RawMessage `json:"results"`
}

// Lookup searches recalls whose product description matches foodQuery.
// limit and skip are forwarded as-is. The call is detached from the caller's
// cancellation and bounded by the client timeout; it is never retried.
func (c *Client) Lookup(ctx context.Context, foodQuery string, limit, skip int) ([]domain.RecallRecord, error) {
	if strings.TrimSpace(foodQuery) == "" {
		return nil, appErrors.NewValidationError("food_query must not be blank")
	}

	search := BuildSearchQuery(foodQuery)

	ctx, span := c.tracer.Start(ctx, "openfda.Lookup",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("openfda.search", search),
			attribute.Int("openfda.limit", limit),
			attribute.Int("openfda.skip", skip),
		),
	)
	defer span.End()

	start := time.Now()
	records, err := c.execute(ctx, search, limit, skip)
	duration := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.metrics.RecordUpstreamCall(outcomeOf(err), duration)
		c.logger.Warn("Recall lookup failed",
			zap.String("search", search),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return nil, err
	}

	span.SetAttributes(attribute.Int("openfda.results", len(records)))
	c.metrics.RecordUpstreamCall("success", duration)
	c.logger.Debug("Recall lookup completed",
		zap.String("search", search),
		zap.Int("results", len(records)),
		zap.Duration("duration", duration),
	)
	return records, nil
}

func (c *Client) execute(ctx context.Context, search string, limit, skip int) ([]domain.RecallRecord, error) {
	if c.breaker == nil {
		return c.fetch(ctx, search, limit, skip)
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, search, limit, skip)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, appErrors.NewUpstreamUnavailableError(serviceName, err).
				WithDetails(map[string]interface{}{"circuit_breaker": c.breaker.State().String()})
		}
		return nil, err
	}
	return result.([]domain.RecallRecord), nil
}

func (c *Client) fetch(ctx context.Context, search string, limit, skip int) ([]domain.RecallRecord, error) {
	reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("search", search)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("skip", strconv.Itoa(skip))

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, appErrors.NewUpstreamUnavailableError(serviceName, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, appErrors.NewUpstreamUnavailableError(serviceName, err)
	}
	defer resp.Body.Close()

	// Any answer that is not JSON, error pages included, is a bad gateway.
	var body json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, appErrors.NewUpstreamUnavailableError(serviceName, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, appErrors.NewUpstreamError(serviceName, resp.StatusCode)
	}

	var payload enforcementResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, appErrors.NewUpstreamUnavailableError(serviceName, err)
	}

	return normalizeRecords(payload.Results), nil
}

// normalizeRecords keeps the five recall fields of each result. A field that
// is absent or not a string is reported as null.
func normalizeRecords(items []map[string]json.RawMessage) []domain.RecallRecord {
	records := make([]domain.RecallRecord, 0, len(items))
	for _, item := range items {
		records = append(records, domain.RecallRecord{
			ProductDescription:   stringField(item, "product_description"),
			RecallingFirm:        stringField(item, "recalling_firm"),
			ReasonForRecall:      stringField(item, "reason_for_recall"),
			Classification:       stringField(item, "classification"),
			RecallInitiationDate: stringField(item, "recall_initiation_date"),
		})
	}
	return records
}

func stringField(item map[string]json.RawMessage, key string) *string {
	raw, ok := item[key]
	if !ok {
		return nil
	}
	var value *string
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil
	}
	return value
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "circuit_open"
	case errors.Is(err, appErrors.ErrUpstream):
		return "upstream_error"
	case errors.Is(err, appErrors.ErrUpstreamUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
