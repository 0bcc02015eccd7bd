package kakao

// Config represents the configuration for the Kakao OAuth client
type Config struct {
	// ClientID is the Kakao REST API key
	ClientID string

	// ClientSecret is optional; Kakao only requires it when enabled for the app
	ClientSecret string

	// RedirectURI must match the URI registered in the Kakao console
	RedirectURI string

	// AuthBaseURL is the authorization server (token exchange)
	AuthBaseURL string

	// APIBaseURL is the resource server (user profile)
	APIBaseURL string
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return ErrInvalidConfig
	}
	if c.RedirectURI == "" {
		return ErrInvalidConfig
	}
	if c.AuthBaseURL == "" {
		return ErrInvalidConfig
	}
	if c.APIBaseURL == "" {
		return ErrInvalidConfig
	}
	return nil
}
