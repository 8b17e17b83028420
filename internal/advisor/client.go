// Package advisor talks to the generative AI service that produces investment advice.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"financeflow_backend/internal/config"
	"financeflow_backend/internal/logger"
	"financeflow_backend/internal/metrics"

	"github.com/xeipuuv/gojsonschema"
)

var (
	ErrTimeout     = errors.New("advice service timed out")
	ErrUnavailable = errors.New("advice service failed")
)

const responseSchema = `{
	"type": "object",
	"required": ["text"],
	"properties": {
		"text": {"type": "string", "minLength": 1},
		"confidence": {"type": "number", "minimum": 0, "maximum": 1},
		"sources": {"type": "array", "items": {"type": "string"}}
	}
}`

var responseSchemaLoader = gojsonschema.NewStringLoader(responseSchema)

// Advice is the validated answer of the service.
type Advice struct {
	Text       string   `json:"text"`
	Confidence *float64 `json:"confidence,omitempty"`
	Sources    []string `json:"sources,omitempty"`
}

type Client struct {
	baseURL     string
	apiKey      string
	timeout     time.Duration
	maxTokens   int
	temperature float64
	httpClient  *http.Client
}

func NewClient(cfg config.GenAIConfig) *Client {
	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:      cfg.APIKey,
		timeout:     time.Duration(cfg.Timeout) * time.Millisecond,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{},
	}
}

// Recommend sends one request for the given monthly income. There is no retry.
func (c *Client) Recommend(ctx context.Context, income float64) (*Advice, error) {
	start := time.Now()
	advice, err := c.recommend(ctx, income)
	metrics.AdviceDuration.Observe(time.Since(start).Seconds())

	switch {
	case err == nil:
		metrics.AdviceRequests.WithLabelValues("success").Inc()
	case errors.Is(err, ErrTimeout):
		metrics.AdviceRequests.WithLabelValues("timeout").Inc()
	default:
		metrics.AdviceRequests.WithLabelValues("failure").Inc()
	}
	return advice, err
}

func (c *Client) recommend(ctx context.Context, income float64) (*Advice, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(map[string]interface{}{
		"prompt":      buildPrompt(income),
		"max_tokens":  c.maxTokens,
		"temperature": c.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/ai/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	advice, err := parseAdvice(raw)
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "advice generated", "source_count", len(advice.Sources))
	return advice, nil
}

func parseAdvice(raw []byte) (*Advice, error) {
	result, err := gojsonschema.Validate(responseSchemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: invalid response: %s", ErrUnavailable, strings.Join(msgs, "; "))
	}

	var advice Advice
	if err := json.Unmarshal(raw, &advice); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	advice.Text = strings.TrimSpace(advice.Text)
	if advice.Text == "" {
		return nil, fmt.Errorf("%w: empty recommendation", ErrUnavailable)
	}
	return &advice, nil
}

func buildPrompt(income float64) string {
	var b strings.Builder
	b.WriteString("You are a financial advisor for a retail bank. ")
	b.WriteString("The bank offers investment plans, health insurance, fixed deposits and home loans.\n")
	fmt.Fprintf(&b, "A customer has a monthly income of %.2f.\n", income)
	b.WriteString("Recommend a suitable mix of these products for the customer and explain the reasoning briefly. ")
	b.WriteString("Keep the answer under 200 words.")
	return b.String()
}
