// ollama.go
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"mood-relay/internal/config"
)

// OllamaProvider talks to a local Ollama server via its generate API
// (the chat API is not used).
type OllamaProvider struct {
	baseURL    string
	model      string
	numPredict int
	client     *http.Client
}

func NewOllamaProvider(cfg *config.Config) *OllamaProvider {
	timeout := cfg.OllamaTimeout
	if timeout <= 0 {
		timeout = 600 * time.Second // local models can be slow
	}
	numPredict := cfg.NumPredict
	if numPredict <= 0 {
		numPredict = 350
	}
	return &OllamaProvider{
		baseURL:    strings.TrimRight(cfg.OllamaURL, "/"),
		model:      cfg.OllamaModel,
		numPredict: numPredict,
		client:     &http.Client{Timeout: timeout},
	}
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	NumPredict int `json:"num_predict"`
}

type generateResponse struct {
	Response string `json:"response"`
}

func (p *OllamaProvider) Generate(ctx context.Context, prompt string) (string, error) {
	payload := generateRequest{
		Model:   p.model,
		Prompt:  prompt,
		Stream:  false,
		Options: generateOptions{NumPredict: p.numPredict},
	}
	bodyBytes, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/generate", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("status=%d body=%s", resp.StatusCode, string(respBody))
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal: %w", err)
	}

	return strings.TrimSpace(parsed.Response), nil
}

// Ping probes the server's model listing. Used once at startup for a
// log-only health check.
func (p *OllamaProvider) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama status %d", resp.StatusCode)
	}
	return nil
}
