// internal/clients/genai_client.go
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// NotificationDraft describes the notification the secretary wants drafted.
type NotificationDraft struct {
	Topic    string `json:"topic"`
	Audience string `json:"audience"` // ALL, DEFAULTERS, ADMINS
	Tone     string `json:"tone"`     // FORMAL, URGENT, CELEBRATORY
	Language string `json:"language"` // EN, TI
}

// GenAIClient calls the external generative-text service that drafts
// member notifications. The core never depends on it; failures stop at the
// handler.
type GenAIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewGenAIClient(baseURL, apiKey string) *GenAIClient {
	return &GenAIClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// DraftNotification asks the service for a short, culturally appropriate
// notification message for the association's members.
func (c *GenAIClient) DraftNotification(ctx context.Context, draft NotificationDraft) (string, error) {
	body, err := json.Marshal(draft)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/notifications/draft", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("draft notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("draft notification: unexpected status code: %d", resp.StatusCode)
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Text, nil
}
