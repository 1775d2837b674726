package insight

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"context"

	"spendwise/internal"
	"spendwise/internal/expense"
)

// Client calls the hosted generateContent endpoint and normalizes the reply
// into an Insight. Any deviation from the two-field schema is a failure.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg internal.AIConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// expenseProjection is the compact per-record view sent to the collaborator.
type expenseProjection struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

type generateRequest struct {
	Contents         []requestContent `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"responseMimeType"`
	ResponseSchema   *responseSchema `json:"responseSchema,omitempty"`
}

type responseSchema struct {
	Type        string                     `json:"type"`
	Description string                     `json:"description,omitempty"`
	Properties  map[string]*responseSchema `json:"properties,omitempty"`
	Items       *responseSchema            `json:"items,omitempty"`
	Required    []string                   `json:"required,omitempty"`
}

func insightSchema() *responseSchema {
	return &responseSchema{
		Type: "OBJECT",
		Properties: map[string]*responseSchema{
			"analysis": {
				Type:        "STRING",
				Description: "A detailed summary of spending habits",
			},
			"recommendations": {
				Type:        "ARRAY",
				Items:       &responseSchema{Type: "STRING"},
				Description: "List of actionable financial tips",
			},
		},
		Required: []string{"analysis", "recommendations"},
	}
}

// Analyze sends one request for the given records and parses the structured
// reply. Timeout and cancellation propagate through ctx.
func (c *Client) Analyze(ctx context.Context, expenses []*expense.Expense) (*Insight, error) {
	payload, err := json.Marshal(c.buildRequest(expenses))
	if err != nil {
		return nil, fmt.Errorf("marshal analysis request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("analysis request failed", "error", err)
		return nil, fmt.Errorf("ai collaborator unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("analysis request rejected", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("ai collaborator error: %d", resp.StatusCode)
	}

	return parseInsightResponse(resp.Body)
}

func (c *Client) buildRequest(expenses []*expense.Expense) generateRequest {
	projections := make([]expenseProjection, len(expenses))
	for i, e := range expenses {
		projections[i] = expenseProjection{
			Amount:      e.Amount,
			Category:    e.Category,
			Description: e.Description,
			Date:        e.Date.Format(time.RFC3339),
		}
	}

	summary, _ := json.Marshal(projections)

	prompt := fmt.Sprintf(`
    Analyze these expenses and provide financial insights:
    %s

    Return a professional financial analysis focusing on:
    1. Where the most money is being spent.
    2. Any unusual patterns or potential savings.
    3. Actionable advice to save more this month.
  `, summary)

	return generateRequest{
		Contents: []requestContent{
			{Parts: []requestPart{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   insightSchema(),
		},
	}
}

// parseInsightResponse decodes the collaborator envelope, then the JSON
// document embedded in its text part. A reply missing either schema field
// is a failure, never a partial success.
func parseInsightResponse(body io.Reader) (*Insight, error) {
	var envelope struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode analysis response: %w", err)
	}

	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return nil, errors.New("analysis response has no content")
	}

	text := envelope.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return nil, errors.New("analysis response is empty")
	}

	var parsed struct {
		Analysis        *string   `json:"analysis"`
		Recommendations *[]string `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return nil, fmt.Errorf("analysis response is not valid JSON: %w", err)
	}
	if parsed.Analysis == nil {
		return nil, errors.New("analysis response missing analysis")
	}
	if parsed.Recommendations == nil {
		return nil, errors.New("analysis response missing recommendations")
	}

	return &Insight{
		Analysis:        *parsed.Analysis,
		Recommendations: *parsed.Recommendations,
	}, nil
}
