// Package whatsapp is a client for the WhatsApp Business Cloud API
// (Meta Graph API). It sends pre-approved template messages with positional
// text parameters and standalone document messages.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rootments/whatsapp-notification-backend/internal/brands"
)

// APIError is a provider-reported rejection (invalid credential, unknown
// template, parameter-count mismatch, ...). Message carries the provider's
// own error text when it could be parsed.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("whatsapp request failed with status %d", e.StatusCode)
}

// SendResponse carries the provider message id of an accepted send.
type SendResponse struct {
	MessageID string
}

// Client is a WhatsApp Cloud API client. One outbound call per send; no
// retries beyond the transport default.
type Client struct {
	apiURL     string
	registry   *brands.Registry
	httpClient *http.Client
}

// NewClient creates a new Client against the given Graph API base URL.
func NewClient(apiURL string, registry *brands.Registry) *Client {
	return &Client{
		apiURL:   apiURL,
		registry: registry,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type textParameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type documentLink struct {
	Link     string `json:"link"`
	Caption  string `json:"caption,omitempty"`
	Filename string `json:"filename,omitempty"`
}

type component struct {
	Type       string        `json:"type"`
	Parameters []interface{} `json:"parameters"`
}

// SendTemplate sends a template message with positional text parameters in
// the given order. When documentURL is non-empty a document header component
// is attached ahead of the body.
func (c *Client) SendTemplate(ctx context.Context, brand, templateName, recipientPhone string, values []string, documentURL string) (*SendResponse, error) {
	brandConfig, err := c.registry.Get(brand)
	if err != nil {
		return nil, err
	}

	var components []component
	if documentURL != "" {
		components = append(components, component{
			Type: "header",
			Parameters: []interface{}{
				map[string]interface{}{
					"type":     "document",
					"document": documentLink{Link: documentURL},
				},
			},
		})
	}

	body := component{Type: "body", Parameters: make([]interface{}, 0, len(values))}
	for _, value := range values {
		body.Parameters = append(body.Parameters, textParameter{Type: "text", Text: value})
	}
	components = append(components, body)

	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                recipientPhone,
		"type":              "template",
		"template": map[string]interface{}{
			"name":       templateName,
			"language":   map[string]string{"code": "en"},
			"components": components,
		},
	}

	return c.post(ctx, brandConfig, payload)
}

// SendDocument sends a standalone document message.
func (c *Client) SendDocument(ctx context.Context, brand, recipientPhone, documentURL, caption, filename string) (*SendResponse, error) {
	brandConfig, err := c.registry.Get(brand)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                recipientPhone,
		"type":              "document",
		"document": documentLink{
			Link:     documentURL,
			Caption:  caption,
			Filename: filename,
		},
	}

	return c.post(ctx, brandConfig, payload)
}

func (c *Client) post(ctx context.Context, brand brands.Brand, payload map[string]interface{}) (*SendResponse, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.apiURL, brand.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", brand.AccessToken))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    parseErrorMessage(respBody),
		}
	}

	var response struct {
		Messages []struct {
			ID string `json:"id"`
		} `json:"messages"`
	}
	if err := json.Unmarshal(respBody, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(response.Messages) == 0 {
		return nil, fmt.Errorf("whatsapp response contained no message id")
	}

	return &SendResponse{MessageID: response.Messages[0].ID}, nil
}

// parseErrorMessage pulls the provider's error text out of a Graph API error
// body. Callers get a generic message when the body is not in the expected
// shape.
func parseErrorMessage(body []byte) string {
	var errResp struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil || errResp.Error.Message == "" {
		return "Failed to send WhatsApp message"
	}
	return errResp.Error.Message
}
