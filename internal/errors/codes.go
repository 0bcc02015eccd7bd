package errors

import "net/http"

// Code identifies an API error. The set is closed: every error the API can
// return is enumerated here, and each code carries its HTTP status and a
// default user-facing message. 프론트엔드는 이 코드를 기반으로 메시지를 매핑함.
type Code string

const (
	// 검증 (VALIDATION_)
	ValidationFailed  Code = "VALIDATION_FAILED"   // 잘못된 요청 본문
	InvalidQueryParam Code = "INVALID_QUERY_PARAM" // 잘못된 쿼리 파라미터

	// 인증/인가 (AUTH_)
	AuthNoToken            Code = "AUTH_NO_TOKEN"            // 토큰 없음
	AuthInvalidCredentials Code = "AUTH_INVALID_CREDENTIALS" // 잘못된 이메일/비밀번호
	AuthTokenExpired       Code = "AUTH_TOKEN_EXPIRED"       // 토큰 만료
	AuthTokenInvalid       Code = "AUTH_TOKEN_INVALID"       // 잘못된 토큰
	AuthRefreshInvalid     Code = "AUTH_REFRESH_INVALID"     // 리프레시 토큰 무효
	AuthEmailExists        Code = "AUTH_EMAIL_EXISTS"        // 이메일 중복
	AuthForbidden          Code = "AUTH_FORBIDDEN"           // 접근 권한 없음

	// 리소스 (NOT_FOUND)
	UserNotFound     Code = "USER_NOT_FOUND"      // 사용자 없음
	ItemNotFound     Code = "ITEM_NOT_FOUND"      // 아이템 없음
	OrderNotFound    Code = "ORDER_NOT_FOUND"     // 주문 없음
	CartItemNotFound Code = "CART_ITEM_NOT_FOUND" // 장바구니 항목 없음

	// 비즈니스 로직
	CartEmpty           Code = "CART_EMPTY"           // 빈 장바구니 주문 불가
	SocialLoginFailed   Code = "SOCIAL_LOGIN_FAILED"  // 소셜 로그인 실패
	UnprocessableEntity Code = "UNPROCESSABLE_ENTITY" // 처리할 수 없는 요청
	RateLimitExceeded   Code = "RATE_LIMIT_EXCEEDED"  // 요청 한도 초과

	// 내부 오류 (INTERNAL_)
	InternalServerError Code = "INTERNAL_SERVER_ERROR" // 서버 오류
	DatabaseError       Code = "DATABASE_ERROR"        // DB 오류
)

// Definition binds a code to its transport-level representation
type Definition struct {
	Status  int
	Message string
}

var definitions = map[Code]Definition{
	ValidationFailed:  {http.StatusBadRequest, "입력값이 올바르지 않습니다"},
	InvalidQueryParam: {http.StatusBadRequest, "쿼리 파라미터가 올바르지 않습니다"},

	AuthNoToken:            {http.StatusUnauthorized, "로그인이 필요합니다"},
	AuthInvalidCredentials: {http.StatusUnauthorized, "이메일 또는 비밀번호가 올바르지 않습니다"},
	AuthTokenExpired:       {http.StatusUnauthorized, "로그인이 만료되었습니다"},
	AuthTokenInvalid:       {http.StatusUnauthorized, "유효하지 않은 인증 토큰입니다"},
	AuthRefreshInvalid:     {http.StatusUnauthorized, "리프레시 토큰이 유효하지 않습니다"},
	AuthEmailExists:        {http.StatusConflict, "이미 사용 중인 이메일입니다"},
	AuthForbidden:          {http.StatusForbidden, "접근 권한이 없습니다"},

	UserNotFound:     {http.StatusNotFound, "사용자를 찾을 수 없습니다"},
	ItemNotFound:     {http.StatusNotFound, "아이템을 찾을 수 없습니다"},
	OrderNotFound:    {http.StatusNotFound, "주문을 찾을 수 없습니다"},
	CartItemNotFound: {http.StatusNotFound, "장바구니 항목을 찾을 수 없습니다"},

	CartEmpty:           {http.StatusBadRequest, "장바구니가 비어 있습니다"},
	SocialLoginFailed:   {http.StatusUnprocessableEntity, "소셜 로그인에 실패했습니다"},
	UnprocessableEntity: {http.StatusUnprocessableEntity, "요청을 처리할 수 없습니다"},
	RateLimitExceeded:   {http.StatusTooManyRequests, "요청이 너무 많습니다. 잠시 후 다시 시도해주세요"},

	InternalServerError: {http.StatusInternalServerError, "서버 오류가 발생했습니다. 잠시 후 다시 시도해주세요"},
	DatabaseError:       {http.StatusInternalServerError, "데이터 처리 중 오류가 발생했습니다"},
}

// Define returns the status and default message for a code. Unknown codes
// fall back to the internal server error definition so a miswired call site
// can never leak a zero status.
func Define(code Code) Definition {
	if def, ok := definitions[code]; ok {
		return def
	}
	return definitions[InternalServerError]
}

// Status returns the HTTP status bound to a code
func (c Code) Status() int {
	return Define(c).Status
}

// Message returns the default user-facing message bound to a code
func (c Code) Message() string {
	return Define(c).Message
}
