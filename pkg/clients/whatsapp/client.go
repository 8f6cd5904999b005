// Package whatsapp is a minimal WhatsApp Cloud API client for text replies.
package whatsapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/buffercalc/internal/config"
)

// MaxBodyLength is the longest text body the Cloud API accepts.
const MaxBodyLength = 4096

// ErrEmptyBody is returned when there is nothing to send.
var ErrEmptyBody = errors.New("empty message body")

// Client sends chat replies.
type Client interface {
	SendText(ctx context.Context, msg TextMessage) (string, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	http          *resty.Client
	phoneNumberID string
}

// NewClient builds a WhatsApp API client from configuration.
func NewClient(cfg config.WhatsAppConfig) *APIClient {
	base := strings.TrimSuffix(cfg.BaseURL, "/")

	rc := resty.New().
		SetBaseURL(fmt.Sprintf("%s/%s", base, cfg.APIVersion)).
		SetAuthToken(cfg.AccessToken).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIClient{http: rc, phoneNumberID: cfg.PhoneNumberID}
}

// TextMessage is a plain text reply. ReplyTo quotes the inbound message id.
type TextMessage struct {
	To      string
	Body    string
	ReplyTo string
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

type apiError struct {
	Error struct {
		Message   string `json:"message"`
		Type      string `json:"type"`
		Code      int    `json:"code"`
		FBTraceID string `json:"fbtrace_id"`
	} `json:"error"`
}

// SendText posts one text message and returns the id Meta assigned to it.
// Bodies longer than MaxBodyLength are truncated.
func (c *APIClient) SendText(ctx context.Context, msg TextMessage) (string, error) {
	body := strings.TrimSpace(msg.Body)
	if body == "" {
		return "", ErrEmptyBody
	}

	payload := map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                msg.To,
		"type":              "text",
		"text":              map[string]any{"body": Truncate(body, MaxBodyLength), "preview_url": false},
	}
	if msg.ReplyTo != "" {
		payload["context"] = map[string]string{"message_id": msg.ReplyTo}
	}

	result := new(sendResponse)
	apiErr := new(apiError)

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(result).
		SetError(apiErr).
		Post(fmt.Sprintf("%s/messages", c.phoneNumberID))
	if err != nil {
		return "", fmt.Errorf("send whatsapp message: %w", err)
	}

	if resp.IsError() {
		code := resp.StatusCode()
		if apiErr.Error.Code != 0 {
			code = apiErr.Error.Code
		}
		return "", fmt.Errorf("whatsapp api error: code=%d, message=%s", code, apiErr.Error.Message)
	}

	if len(result.Messages) == 0 {
		return "", nil
	}
	return result.Messages[0].ID, nil
}

// Truncate cuts s to at most limit runes, marking the cut with an ellipsis.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= 1 {
		return string(runes[:limit])
	}
	return string(runes[:limit-1]) + "…"
}
