package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/itchan-dev/postadmin/shared/api"
	internal_errors "github.com/itchan-dev/postadmin/shared/errors"
)

// maxErrorBody bounds how much of an error response is read into a message.
const maxErrorBody = 4 << 10

// APIClient handles all communication with the remote posts API.
type APIClient struct {
	BaseURL    string
	Token      string // sent as a bearer token when set
	HttpClient *http.Client
}

func New(baseURL, token string, timeout time.Duration) *APIClient {
	return &APIClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HttpClient: &http.Client{Timeout: timeout},
	}
}

// do is the single helper for making API requests.
func (c *APIClient) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create API request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend unavailable: %w", err)
	}
	return resp, nil
}

// backendError turns a non-2xx response into an ErrorWithStatusCode.
// The API reports failures as {"message": ...} or {"error": ...}; anything else
// is passed through as text.
func backendError(resp *http.Response, action string) error {
	bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	msg := strings.TrimSpace(string(bodyBytes))
	var envelope api.ErrorResponse
	if err := json.Unmarshal(bodyBytes, &envelope); err == nil {
		switch {
		case envelope.Message != "":
			msg = envelope.Message
		case envelope.Error != "":
			msg = envelope.Error
		}
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	return &internal_errors.ErrorWithStatusCode{
		Message:    fmt.Sprintf("failed to %s: %s", action, msg),
		StatusCode: resp.StatusCode,
	}
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
