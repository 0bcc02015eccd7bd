package kakao

import "errors"

var (
	// ErrInvalidConfig is returned when the client configuration is incomplete
	ErrInvalidConfig = errors.New("invalid kakao client configuration")

	// ErrTokenExchangeFailed is returned when the authorization code could not
	// be exchanged for an access token
	ErrTokenExchangeFailed = errors.New("kakao token exchange failed")

	// ErrProfileFetchFailed is returned when the user profile request fails
	ErrProfileFetchFailed = errors.New("kakao profile fetch failed")

	// ErrNetworkError is returned when there's a network communication error
	ErrNetworkError = errors.New("network error")
)
