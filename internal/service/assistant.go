package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/glowhire/sunshine/internal/domain"
)

// AssistantRequest is the wire request to the remote text-generation service.
type AssistantRequest struct {
	Message         string          `json:"message"`
	UserID          string          `json:"user_id"`
	UserName        string          `json:"user_name,omitempty"`
	Language        domain.Language `json:"language"`
	IsAuthenticated bool            `json:"is_authenticated"`
}

// AssistantUsage carries optional token accounting attached to a reply.
type AssistantUsage struct {
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalCost        float64 `json:"total_cost"`
}

// AssistantReply is the wire response.
type AssistantReply struct {
	Response string          `json:"response"`
	Usage    *AssistantUsage `json:"usage,omitempty"`
}

// Assistant is the remote collaborator port. One attempt per call; retries
// and backoff are not part of the contract.
type Assistant interface {
	Generate(ctx context.Context, req AssistantRequest) (*AssistantReply, error)
}

// HTTPAssistant calls the remote assistant over plain HTTP JSON. The client
// owns its own timeout; callers do not add one.
type HTTPAssistant struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

func NewHTTPAssistant(url, apiKey string, timeout time.Duration) *HTTPAssistant {
	return &HTTPAssistant{
		url:        url,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (a *HTTPAssistant) Generate(ctx context.Context, areq AssistantRequest) (*AssistantReply, error) {
	payload, err := json.Marshal(areq)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if a.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.apiKey)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assistant request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("assistant rate limited (429)")
	}
	if resp.StatusCode >= 500 {
		return nil, fmt.Errorf("assistant unavailable (%d)", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("assistant returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var reply AssistantReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if reply.Response == "" {
		return nil, fmt.Errorf("assistant returned empty response")
	}

	return &reply, nil
}
