// Package telegram is a minimal Bot API client: sendMessage plus the update
// types the webhook needs.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultAPIURL = "https://api.telegram.org"

// ParseMode used for every outgoing message.
const ParseMode = "Markdown"

var ErrNoToken = errors.New("telegram bot token not configured")

type Client struct {
	token      string
	apiURL     string
	httpClient *http.Client
}

func NewClient(token, apiURL string) *Client {
	if strings.TrimSpace(apiURL) == "" {
		apiURL = DefaultAPIURL
	}
	return &Client{
		token:      strings.TrimSpace(token),
		apiURL:     strings.TrimRight(apiURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Configured reports whether a bot token is set.
func (c *Client) Configured() bool {
	return c != nil && c.token != ""
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage posts text to one chat. Any non-2xx answer is an error.
func (c *Client) SendMessage(ctx context.Context, chatID, text string) error {
	if !c.Configured() {
		return ErrNoToken
	}

	body, err := json.Marshal(sendMessageRequest{ChatID: chatID, Text: text, ParseMode: ParseMode})
	if err != nil {
		return fmt.Errorf("encode sendMessage: %w", err)
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", c.apiURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// the url embeds the token, keep it out of logs
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return fmt.Errorf("telegram request to chat %s failed: %w", chatID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("telegram error %s for chat %s: %s", resp.Status, chatID, strings.TrimSpace(string(respBody)))
	}
	return nil
}
