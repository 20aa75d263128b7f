package llm

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const (
	// DefaultBaseURL is the Groq OpenAI-compatible API endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1"

	// DefaultModel is the fastest small model; quick turns matter more
	// than quality for holding a scammer's attention.
	DefaultModel = "llama-3.1-8b-instant"

	defaultTimeout     = 5 * time.Second
	defaultTemperature = 0.7
	defaultMaxTokens   = 400
)

// GroqConfig holds configuration for the Groq client.
type GroqConfig struct {
	BaseURL string
	Model   string
	// APIKeys are tried as alternate credentials: one is picked at
	// random per call and the remaining keys serve as backups.
	APIKeys []string
	Timeout time.Duration
}

// GroqClient implements Generator against Groq's chat-completions API.
type GroqClient struct {
	cfg        GroqConfig
	httpClient *http.Client
	logger     *slog.Logger
}

// NewGroqClient creates a Groq-backed generator. Empty keys are
// dropped; at least one non-empty key is required to generate.
func NewGroqClient(cfg GroqConfig, logger *slog.Logger) *GroqClient {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	keys := make([]string, 0, len(cfg.APIKeys))
	for _, k := range cfg.APIKeys {
		if strings.TrimSpace(k) != "" {
			keys = append(keys, k)
		}
	}
	cfg.APIKeys = keys

	return &GroqClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Generate runs one chat completion. It picks a random API key first
// and falls back to each remaining key in turn on failure, so quota
// exhaustion on one credential does not stall the conversation.
func (c *GroqClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if len(c.cfg.APIKeys) == 0 {
		return "", ErrNoBackend
	}

	order := keyOrder(len(c.cfg.APIKeys))

	var lastErr error
	for attempt, idx := range order {
		text, err := c.generateOnce(ctx, c.cfg.APIKeys[idx], systemPrompt, userPrompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		c.logger.Warn("generation attempt failed, switching credential",
			"attempt", attempt+1, "error", err)
	}
	return "", fmt.Errorf("all credentials exhausted: %w", lastErr)
}

func (c *GroqClient) generateOnce(ctx context.Context, apiKey, systemPrompt, userPrompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := strings.TrimSuffix(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("groq returned status %d: %s", resp.StatusCode, truncate(string(raw), 200))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("groq error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", ErrEmptyCompletion
	}
	return parsed.Choices[0].Message.Content, nil
}

// keyOrder returns 0..n-1 starting from a random index so load spreads
// across credentials while every key still gets tried.
func keyOrder(n int) []int {
	start := rand.Intn(n)
	order := make([]int, 0, n)
	for i := 0; i < n; i++ {
		order = append(order, (start+i)%n)
	}
	return order
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
