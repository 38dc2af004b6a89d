package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// DefaultOllamaURL is where a local Ollama server listens
	DefaultOllamaURL = "http://localhost:11434"
	// FallbackModel is used when discovery finds nothing suitable
	FallbackModel = "llama3:latest"
)

// preferredModels are matched by substring against discovered model names
var preferredModels = []string{"llama3", "command-r", "qwen"}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// OllamaClient talks to the Ollama chat API
type OllamaClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger

	mu    sync.Mutex
	model string
}

// NewOllamaClient creates a client for the server at baseURL. An empty
// model is resolved from the server's installed models on first use.
func NewOllamaClient(baseURL, model string, logger *log.Logger) *OllamaClient {
	if baseURL == "" {
		baseURL = DefaultOllamaURL
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &OllamaClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger.WithPrefix("ollama"),
		model:      model,
	}
}

// Models lists the models installed on the server
func (c *OllamaClient) Models(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("creating tags request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("listing models: unexpected status %s", resp.Status)
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("decoding model list: %w", err)
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// Model returns the model used for chat requests, discovering it once
func (c *OllamaClient) Model(ctx context.Context) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.model != "" {
		return c.model
	}

	names, err := c.Models(ctx)
	if err != nil {
		c.logger.Warn("Model discovery failed", "error", err, "fallback", FallbackModel)
		// Leave unresolved so a later call can retry discovery.
		return FallbackModel
	}

	c.model = SelectModel(names)
	c.logger.Info("Using model for poker decisions", "model", c.model)
	return c.model
}

// SelectModel picks the first installed model matching a preferred family
func SelectModel(names []string) string {
	for _, name := range names {
		for _, family := range preferredModels {
			if strings.Contains(name, family) {
				return name
			}
		}
	}
	return FallbackModel
}

// Complete sends prompt as a single user message and returns the reply
func (c *OllamaClient) Complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:    c.Model(ctx),
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   false,
	})
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("chat request: unexpected status %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	return strings.TrimSpace(chat.Message.Content), nil
}
