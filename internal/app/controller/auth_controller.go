package controller

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jmlee/fantasy-shop-backend/internal/app/service"
	apperrors "github.com/jmlee/fantasy-shop-backend/internal/errors"
	"github.com/jmlee/fantasy-shop-backend/internal/middleware"
)

type AuthController struct {
	authService service.AuthService
	kakaoURL    KakaoURLBuilder
}

// KakaoURLBuilder builds the Kakao authorize redirect URL
type KakaoURLBuilder interface {
	AuthorizeURL(state string) string
}

func NewAuthController(authService service.AuthService, kakaoURL KakaoURLBuilder) *AuthController {
	return &AuthController{
		authService: authService,
		kakaoURL:    kakaoURL,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Nickname string `json:"nickname" binding:"required,min=2,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LogoutRequest names the session to end. Omitting the token ends every
// session of the user.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type KakaoLoginRequest struct {
	Code string `json:"code" binding:"required"`
}

type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// Register handles user registration
// POST /api/auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.Respond(c, apperrors.ValidationFailed)
		return
	}

	user, err := ctrl.authService.Register(c.Request.Context(), req.Email, req.Password, req.Nickname)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			log.Warn("Registration failed: email already exists", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.Respond(c, apperrors.AuthEmailExists)
			return
		}
		log.Error("Registration failed", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.Respond(c, apperrors.InternalServerError)
		return
	}

	log.Info("User registered successfully", map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
	})

	apperrors.RespondCreated(c, gin.H{
		"id":       user.ID,
		"email":    user.Email,
		"nickname": user.Nickname,
		"role":     user.Role,
	})
}

// Login handles local email/password login
// POST /api/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.Respond(c, apperrors.ValidationFailed)
		return
	}

	user, tokens, err := ctrl.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			log.Warn("Login failed: invalid credentials", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.Respond(c, apperrors.AuthInvalidCredentials)
			return
		}
		log.Error("Login failed", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.Respond(c, apperrors.InternalServerError)
		return
	}

	apperrors.RespondSuccess(c, gin.H{
		"user":         user,
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}

// Refresh rotates a refresh token into a fresh pair
// POST /api/auth/refresh
func (ctrl *AuthController) Refresh(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid refresh request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.Respond(c, apperrors.ValidationFailed)
		return
	}

	tokens, err := ctrl.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrRefreshTokenInvalid) {
			log.Warn("Token refresh rejected", nil)
			apperrors.Respond(c, apperrors.AuthRefreshInvalid)
			return
		}
		log.Error("Token refresh failed", err, nil)
		apperrors.Respond(c, apperrors.InternalServerError)
		return
	}

	apperrors.RespondSuccess(c, gin.H{
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}

// Logout revokes the presented refresh token, or all of the user's tokens
// when none is presented
// POST /api/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Respond(c, apperrors.AuthNoToken)
		return
	}

	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid logout request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.Respond(c, apperrors.ValidationFailed)
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), userID, req.RefreshToken); err != nil {
		log.Error("Logout failed", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.Respond(c, apperrors.InternalServerError)
		return
	}

	apperrors.RespondSuccess(c, gin.H{
		"loggedOut": true,
	})
}

// GetMe returns the authenticated user
// GET /api/auth/me
func (ctrl *AuthController) GetMe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, exists := middleware.GetUserID(c)
	if !exists {
		apperrors.Respond(c, apperrors.AuthNoToken)
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.Respond(c, apperrors.UserNotFound)
			return
		}
		log.Error("Failed to fetch user", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.Respond(c, apperrors.InternalServerError)
		return
	}

	apperrors.RespondSuccess(c, user)
}

// GetKakaoLoginURL returns the Kakao authorize redirect URL
// GET /api/auth/kakao/login
func (ctrl *AuthController) GetKakaoLoginURL(c *gin.Context) {
	if ctrl.kakaoURL == nil {
		apperrors.Respond(c, apperrors.SocialLoginFailed)
		return
	}
	apperrors.RespondSuccess(c, gin.H{
		"loginUrl": ctrl.kakaoURL.AuthorizeURL(c.Query("state")),
	})
}

// KakaoLogin exchanges a Kakao authorization code posted by the client
// POST /api/auth/kakao
func (ctrl *AuthController) KakaoLogin(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req KakaoLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid Kakao login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.Respond(c, apperrors.ValidationFailed)
		return
	}

	ctrl.completeKakaoLogin(c, req.Code)
}

// KakaoCallback handles the Kakao OAuth redirect
// GET /api/auth/kakao/callback
func (ctrl *AuthController) KakaoCallback(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	code := c.Query("code")
	if code == "" {
		log.Warn("Kakao callback without authorization code", nil)
		apperrors.Respond(c, apperrors.ValidationFailed)
		return
	}

	ctrl.completeKakaoLogin(c, code)
}

func (ctrl *AuthController) completeKakaoLogin(c *gin.Context, code string) {
	log := middleware.GetLoggerFromContext(c)

	user, tokens, err := ctrl.authService.KakaoLogin(c.Request.Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrSocialLoginFailed) {
			log.Warn("Kakao login failed", nil)
			apperrors.Respond(c, apperrors.SocialLoginFailed)
			return
		}
		log.Error("Kakao login failed", err, nil)
		apperrors.Respond(c, apperrors.InternalServerError)
		return
	}

	log.Info("Kakao login successful", map[string]interface{}{
		"user_id": user.ID,
	})

	apperrors.RespondSuccess(c, gin.H{
		"user":         user,
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}

// FirebaseLogin verifies a Firebase ID token posted by the client
// POST /api/auth/firebase
func (ctrl *AuthController) FirebaseLogin(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req FirebaseLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid Firebase login request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.Respond(c, apperrors.ValidationFailed)
		return
	}

	user, tokens, err := ctrl.authService.FirebaseLogin(c.Request.Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, service.ErrSocialLoginFailed) {
			log.Warn("Firebase login failed", nil)
			apperrors.Respond(c, apperrors.SocialLoginFailed)
			return
		}
		log.Error("Firebase login failed", err, nil)
		apperrors.Respond(c, apperrors.InternalServerError)
		return
	}

	log.Info("Firebase login successful", map[string]interface{}{
		"user_id": user.ID,
	})

	apperrors.RespondSuccess(c, gin.H{
		"user":         user,
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
	})
}
