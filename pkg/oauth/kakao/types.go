package kakao

import "fmt"

// TokenResponse represents the token exchange response
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	Scope        string `json:"scope"`
}

// Profile represents the subset of the /v2/user/me response this service uses
type Profile struct {
	ID           int64        `json:"id"`
	KakaoAccount KakaoAccount `json:"kakao_account"`
}

// KakaoAccount holds account-level fields of a Kakao profile
type KakaoAccount struct {
	Email   string         `json:"email"`
	Profile AccountProfile `json:"profile"`
}

// AccountProfile holds display fields of a Kakao profile
type AccountProfile struct {
	Nickname string `json:"nickname"`
}

// ErrorResponse represents an error response from the Kakao APIs
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Code             int    `json:"code"`
	Message          string `json:"msg"`
}

func (e *ErrorResponse) String() string {
	if e.Error != "" {
		return fmt.Sprintf("error=%s, description=%s", e.Error, e.ErrorDescription)
	}
	return fmt.Sprintf("code=%d, msg=%s", e.Code, e.Message)
}
