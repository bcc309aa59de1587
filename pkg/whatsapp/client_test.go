package whatsapp

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rootments/whatsapp-notification-backend/internal/brands"
	"github.com/rootments/whatsapp-notification-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRegistry() *brands.Registry {
	return brands.NewRegistry(config.WhatsAppConfig{
		Brands: map[string]config.BrandConfig{
			"suitorguy": {DisplayName: "SuitorGuy", PhoneNumberID: "111", AccessToken: "token-a", BusinessPhone: "8943300097"},
		},
	})
}

type capturedRequest struct {
	path string
	auth string
	body map[string]interface{}
}

func newGraphAPIServer(t *testing.T, status int, response string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.auth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &captured.body)
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server, captured
}

func TestSendTemplate(t *testing.T) {
	server, captured := newGraphAPIServer(t, http.StatusOK, `{"messages":[{"id":"wamid.ABC"}]}`)
	client := NewClient(server.URL, testRegistry())

	resp, err := client.SendTemplate(context.Background(), "suitorguy", "booking_summary_nodisc",
		"918590292642", []string{"John Doe", "BK12345"}, "")
	require.NoError(t, err)
	assert.Equal(t, "wamid.ABC", resp.MessageID)

	assert.Equal(t, "/111/messages", captured.path)
	assert.Equal(t, "Bearer token-a", captured.auth)
	assert.Equal(t, "whatsapp", captured.body["messaging_product"])
	assert.Equal(t, "918590292642", captured.body["to"])
	assert.Equal(t, "template", captured.body["type"])

	template := captured.body["template"].(map[string]interface{})
	assert.Equal(t, "booking_summary_nodisc", template["name"])
	assert.Equal(t, map[string]interface{}{"code": "en"}, template["language"])

	components := template["components"].([]interface{})
	require.Len(t, components, 1)
	body := components[0].(map[string]interface{})
	assert.Equal(t, "body", body["type"])

	params := body["parameters"].([]interface{})
	require.Len(t, params, 2)
	first := params[0].(map[string]interface{})
	assert.Equal(t, "text", first["type"])
	assert.Equal(t, "John Doe", first["text"])
	second := params[1].(map[string]interface{})
	assert.Equal(t, "BK12345", second["text"])
}

func TestSendTemplateWithDocumentHeader(t *testing.T) {
	server, captured := newGraphAPIServer(t, http.StatusOK, `{"messages":[{"id":"wamid.ABC"}]}`)
	client := NewClient(server.URL, testRegistry())

	_, err := client.SendTemplate(context.Background(), "suitorguy", "pdf_test_template",
		"918590292642", nil, "https://example.com/doc.pdf")
	require.NoError(t, err)

	template := captured.body["template"].(map[string]interface{})
	components := template["components"].([]interface{})
	require.Len(t, components, 2)

	header := components[0].(map[string]interface{})
	assert.Equal(t, "header", header["type"])
	headerParams := header["parameters"].([]interface{})
	require.Len(t, headerParams, 1)
	docParam := headerParams[0].(map[string]interface{})
	assert.Equal(t, "document", docParam["type"])
	doc := docParam["document"].(map[string]interface{})
	assert.Equal(t, "https://example.com/doc.pdf", doc["link"])

	body := components[1].(map[string]interface{})
	assert.Equal(t, "body", body["type"])
}

func TestSendDocument(t *testing.T) {
	server, captured := newGraphAPIServer(t, http.StatusOK, `{"messages":[{"id":"wamid.DOC"}]}`)
	client := NewClient(server.URL, testRegistry())

	resp, err := client.SendDocument(context.Background(), "suitorguy", "918590292642",
		"https://example.com/invoice.pdf", "Invoice for BK12345", "BK12345_invoice.pdf")
	require.NoError(t, err)
	assert.Equal(t, "wamid.DOC", resp.MessageID)

	assert.Equal(t, "document", captured.body["type"])
	doc := captured.body["document"].(map[string]interface{})
	assert.Equal(t, "https://example.com/invoice.pdf", doc["link"])
	assert.Equal(t, "Invoice for BK12345", doc["caption"])
	assert.Equal(t, "BK12345_invoice.pdf", doc["filename"])
}

func TestSendTemplateProviderError(t *testing.T) {
	server, _ := newGraphAPIServer(t, http.StatusUnauthorized, `{"error":{"message":"Invalid OAuth access token"}}`)
	client := NewClient(server.URL, testRegistry())

	_, err := client.SendTemplate(context.Background(), "suitorguy", "booking_summary_nodisc",
		"918590292642", []string{"A"}, "")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid OAuth access token", apiErr.Message)
}

func TestSendTemplateUnparseableErrorBody(t *testing.T) {
	server, _ := newGraphAPIServer(t, http.StatusInternalServerError, `<html>gateway timeout</html>`)
	client := NewClient(server.URL, testRegistry())

	_, err := client.SendTemplate(context.Background(), "suitorguy", "booking_summary_nodisc",
		"918590292642", []string{"A"}, "")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Failed to send WhatsApp message", apiErr.Message)
}

func TestSendTemplateUnknownBrand(t *testing.T) {
	server, captured := newGraphAPIServer(t, http.StatusOK, `{"messages":[{"id":"wamid.ABC"}]}`)
	client := NewClient(server.URL, testRegistry())

	_, err := client.SendTemplate(context.Background(), "nonexistent", "booking_summary_nodisc",
		"918590292642", []string{"A"}, "")

	assert.ErrorIs(t, err, brands.ErrUnknownBrand)
	assert.Empty(t, captured.path, "unknown brand must not reach the provider")
}
