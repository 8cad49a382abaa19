// Package whatsapp sends outbound text messages through an HTTP WhatsApp gateway.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Sender is what notification delivery depends on.
type Sender interface {
	Send(ctx context.Context, phone, text string) error
}

type Client struct {
	URL     string
	Token   string
	Enabled bool

	http *http.Client
	log  zerolog.Logger
}

func NewClient(url, token string, enabled bool, log zerolog.Logger) *Client {
	return &Client{
		URL:     url,
		Token:   token,
		Enabled: enabled,
		http:    &http.Client{Timeout: 10 * time.Second},
		log:     log,
	}
}

type sendRequest struct {
	ChatID  string `json:"chatId"`
	Message string `json:"message"`
}

type sendResponse struct {
	IDMessage string `json:"idMessage"`
	Error     string `json:"error,omitempty"`
}

// Send delivers text to a Saudi mobile number. A disabled client only logs.
func (c *Client) Send(ctx context.Context, phone, text string) error {
	chatID := ChatID(phone)
	if !c.Enabled {
		c.log.Debug().Str("chat_id", chatID).Msg("whatsapp disabled, message skipped")
		return nil
	}

	body, err := json.Marshal(sendRequest{ChatID: chatID, Message: text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp send: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp send failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var out sendResponse
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &out); err != nil {
			return fmt.Errorf("whatsapp decode response: %w", err)
		}
	}
	if out.Error != "" {
		return fmt.Errorf("whatsapp error: %s", out.Error)
	}

	c.log.Info().Str("chat_id", chatID).Str("message_id", out.IDMessage).Msg("whatsapp message sent")
	return nil
}

// ChatID converts 05XXXXXXXX to the gateway's 9665XXXXXXXX@c.us form.
func ChatID(phone string) string {
	p := strings.TrimSpace(phone)
	p = strings.TrimPrefix(p, "+")
	if strings.HasPrefix(p, "0") {
		p = "966" + strings.TrimPrefix(p, "0")
	}
	return p + "@c.us"
}
