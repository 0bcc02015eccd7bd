package firebase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var (
	// ErrInvalidConfig is returned when the client configuration is incomplete
	ErrInvalidConfig = errors.New("invalid firebase client configuration")

	// ErrTokenInvalid is returned when the id token fails verification
	ErrTokenInvalid = errors.New("firebase id token invalid")

	// ErrNetworkError is returned when there's a network communication error
	ErrNetworkError = errors.New("network error")
)

// Config represents the configuration for the Firebase token verifier
type Config struct {
	// ProjectID is the Firebase project; when set, the token audience must match
	ProjectID string

	// TokenInfoURL is the Google tokeninfo endpoint used for verification
	TokenInfoURL string
}

// TokenInfo represents the verified identity extracted from an id token
type TokenInfo struct {
	Subject  string `json:"sub"`
	Audience string `json:"aud"`
	Email    string `json:"email"`
	Name     string `json:"name"`
}

// Client verifies Firebase id tokens against the Google tokeninfo endpoint.
// Delegating verification keeps key rotation on Google's side.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new Firebase token verifier
func NewClient(config Config) (*Client, error) {
	if config.TokenInfoURL == "" {
		return nil, fmt.Errorf("invalid config: %w", ErrInvalidConfig)
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// VerifyIDToken verifies an id token and returns the identity it carries
func (c *Client) VerifyIDToken(ctx context.Context, idToken string) (*TokenInfo, error) {
	if idToken == "" {
		return nil, ErrTokenInvalid
	}

	endpoint := fmt.Sprintf("%s?id_token=%s", c.config.TokenInfoURL, url.QueryEscape(idToken))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrTokenInvalid, resp.StatusCode)
	}

	var info TokenInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tokeninfo response: %w", err)
	}
	if info.Subject == "" {
		return nil, ErrTokenInvalid
	}
	if c.config.ProjectID != "" && info.Audience != c.config.ProjectID {
		return nil, fmt.Errorf("%w: audience mismatch", ErrTokenInvalid)
	}

	return &info, nil
}
